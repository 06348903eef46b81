// Package compile is the tree compiler: it walks the visual graph
// from its entry point, enforces the structural grammar, and produces
// a fresh IR program. Every compilation allocates brand-new node
// metadata; editing the graph invalidates all previously recorded
// spans.
package compile

import (
	"github.com/twinedit/twinedit/debug"
	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ident"
	"github.com/twinedit/twinedit/ir"
	"github.com/twinedit/twinedit/patterns"
)

// Compiler compiles one graph into IR programs.
type Compiler struct {
	g           *graph.Graph
	ids         *ident.Allocator
	table       *patterns.Table
	indentWidth int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTable overrides the builtin-call pattern table.
func WithTable(t *patterns.Table) Option {
	return func(c *Compiler) { c.table = t }
}

// WithIndentWidth sets the program's indent width (default 4).
func WithIndentWidth(w int) Option {
	return func(c *Compiler) { c.indentWidth = w }
}

// New returns a compiler reading g and drawing identities from ids.
func New(g *graph.Graph, ids *ident.Allocator, opts ...Option) *Compiler {
	c := &Compiler{
		g:           g,
		ids:         ids,
		table:       patterns.Default(),
		indentWidth: 4,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compile walks the graph and produces a fresh IR program, or a
// *StructuralError when the graph's shape violates the grammar.
func (c *Compiler) Compile() (*ir.Program, error) {
	if bad := c.g.FindType(graph.TypeSyncError); len(bad) > 0 {
		return nil, errAt(KindSyncErrorPresent, bad[0], "last text sync failed; graph content is stale")
	}

	entries := c.g.FindType(graph.TypeEntry)
	if len(entries) > 1 {
		return nil, errAt(KindMultipleEntry, entries[1], "%d entry nodes", len(entries))
	}

	var chains []*graph.Node
	if len(entries) == 1 {
		entry := entries[0]
		for _, r := range c.g.Roots() {
			if r == entry {
				continue
			}
			switch r.Type() {
			case graph.TypeElif, graph.TypeElse:
				return nil, errAt(KindContinuationWithoutIf, r, "%s node with no preceding if", r.Type())
			case graph.TypeCase:
				return nil, errAt(KindCaseOutsideMatch, r, "case node outside a match")
			default:
				return nil, errAt(KindStrayTopLevel, r, "%s chain outside the entry chain", r.Type())
			}
		}
		if entry.Next() != nil {
			chains = append(chains, entry.Next())
		}
	} else {
		// No entry node: independent chains compile top-to-bottom
		// by vertical position.
		for _, r := range c.g.Roots() {
			switch r.Type() {
			case graph.TypeElif, graph.TypeElse:
				return nil, errAt(KindContinuationWithoutIf, r, "%s node with no preceding if", r.Type())
			case graph.TypeCase:
				return nil, errAt(KindCaseOutsideMatch, r, "case node outside a match")
			}
			chains = append(chains, r)
		}
	}

	body := &ir.Block{Meta: c.meta()}
	for _, start := range chains {
		stmts, err := c.chain(start, 0)
		if err != nil {
			if debug.Compile() {
				debug.Logf("compile: %v", err)
			}
			return nil, err
		}
		body.Stmts = append(body.Stmts, stmts...)
	}
	if debug.Compile() {
		debug.Logf("compile: %d chains, %d top-level statements", len(chains), len(body.Stmts))
	}
	return &ir.Program{
		Body:        body,
		IndentWidth: c.indentWidth,
	}, nil
}

// meta mints fresh metadata. Compiled IR has identities but no spans:
// spans only exist for text-originated trees.
func (c *Compiler) meta() ir.Meta {
	return ir.Meta{ID: c.ids.Next()}
}

// chain compiles one statement chain in encounter order. If chains
// consume their elif/else continuations; the walk resumes past them.
func (c *Compiler) chain(start *graph.Node, indent int) ([]ir.Stmt, error) {
	var stmts []ir.Stmt
	n := start
	for n != nil {
		switch n.Type() {
		case graph.TypeSyncError:
			return nil, errAt(KindSyncErrorPresent, n, "last text sync failed; graph content is stale")
		case graph.TypeEntry:
			return nil, errAt(KindBadShape, n, "entry node inside a chain")
		case graph.TypeElif, graph.TypeElse:
			return nil, errAt(KindContinuationWithoutIf, n, "%s does not follow an if", n.Type())
		case graph.TypeCase:
			return nil, errAt(KindCaseOutsideMatch, n, "case node in a statement chain")
		}
		s, next, err := c.stmt(n, indent)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		n = next
	}
	return stmts, nil
}

// block compiles the chain attached to a body slot.
func (c *Compiler) block(n *graph.Node, slot string, indent int) (*ir.Block, error) {
	head := n.Input(slot)
	b := &ir.Block{Meta: c.meta(), Indent: indent}
	if head == nil {
		return b, nil
	}
	stmts, err := c.chain(head, indent)
	if err != nil {
		return nil, err
	}
	b.Stmts = stmts
	return b, nil
}

// optBlock is block for optional bodies: nil when the slot is empty.
func (c *Compiler) optBlock(n *graph.Node, slot string, indent int) (*ir.Block, error) {
	if n.Input(slot) == nil {
		return nil, nil
	}
	return c.block(n, slot, indent)
}
