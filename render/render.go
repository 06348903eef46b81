// Package render is the graph compiler: it deterministically
// rebuilds the visual node graph from an IR program. Rebuilds are
// idempotent against unchanged input so keystroke-triggered reparses
// do not destroy user selection or scroll state.
package render

import (
	"bytes"
	"fmt"

	"github.com/twinedit/twinedit/debug"
	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
	"github.com/twinedit/twinedit/patterns"
)

// Compiler rebuilds one graph from IR programs. It owns the
// serialized-body memo and the span side table; the node objects
// themselves are never augmented with out-of-band data.
type Compiler struct {
	g        *graph.Graph
	table    *patterns.Table
	last     []byte
	spans    map[graph.NodeID]ir.Span
	vars     []string
	funcs    []string
	rebuilds int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTable overrides the builtin-call pattern table.
func WithTable(t *patterns.Table) Option {
	return func(c *Compiler) { c.table = t }
}

// New returns a compiler bound to g.
func New(g *graph.Graph, opts ...Option) *Compiler {
	c := &Compiler{
		g:     g,
		table: patterns.Default(),
		spans: map[graph.NodeID]ir.Span{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Build replaces the graph's content with a rendering of p. If the
// serialized program is byte-identical to the previously installed
// one, the graph is left untouched. Malformed IR is a contract
// violation and panics: IR reaching this compiler is always
// internally produced.
func (c *Compiler) Build(p *ir.Program) {
	body, err := ir.MarshalProgram(p)
	if err != nil {
		panic(fmt.Sprintf("render: %v", err))
	}
	if bytes.Equal(body, c.last) {
		if debug.Render() {
			debug.Logf("render: unchanged body, skipping rebuild")
		}
		return
	}
	c.rebuilds++
	if debug.Render() {
		debug.Logf("render: rebuild %d, %d top-level statements", c.rebuilds, len(p.Body.Stmts))
	}

	on := c.g.EventsEnabled()
	c.g.SetEventsEnabled(false)
	defer c.g.SetEventsEnabled(on)

	vp := c.g.Viewport()
	c.g.Clear()
	c.spans = map[graph.NodeID]ir.Span{}

	entry := c.g.NewNode(graph.TypeEntry)
	cur := entry
	for _, s := range p.Body.Stmts {
		head, tail := c.stmt(s)
		c.recordSpan(head, tail, s.NodeMeta().Span)
		cur.Chain(head)
		cur = tail
	}

	c.g.SetViewport(vp)
	c.refreshNames()
	c.last = body
}

// recordSpan stores the originating statement's source span for
// every chain node the statement produced (an if statement produces
// its continuation nodes too).
func (c *Compiler) recordSpan(head, tail *graph.Node, span ir.Span) {
	for n := head; n != nil; n = n.Next() {
		c.spans[n.ID()] = span
		if n == tail {
			break
		}
	}
}

// Spans returns the side table mapping chain node identity to the
// source span of the statement it renders.
func (c *Compiler) Spans() map[graph.NodeID]ir.Span {
	return c.spans
}

// Rebuilds counts structural rebuilds actually performed; idempotent
// calls do not increment it.
func (c *Compiler) Rebuilds() int { return c.rebuilds }

// Invalidate drops the serialized memo so the next Build rebuilds
// unconditionally. The controller calls this after installing the
// sync-error placeholder.
func (c *Compiler) Invalidate() { c.last = nil }

// DeclaredNames returns the variable and function names declared in
// the last rendering, for derived read-only category lists.
func (c *Compiler) DeclaredNames() (vars, funcs []string) {
	return append([]string(nil), c.vars...), append([]string(nil), c.funcs...)
}

func (c *Compiler) refreshNames() {
	c.vars = c.vars[:0]
	c.funcs = c.funcs[:0]
	seen := map[string]bool{}
	for _, n := range c.g.Nodes() {
		switch n.Type() {
		case graph.TypeAssign:
			for _, s := range n.Slots() {
				child := n.Input(s)
				if s != "value" && child != nil && child.Type() == graph.TypeName {
					if id := child.FieldString("id"); id != "" && !seen["v:"+id] {
						seen["v:"+id] = true
						c.vars = append(c.vars, id)
					}
				}
			}
		case graph.TypeFuncDef:
			if name := n.FieldString("name"); name != "" && !seen["f:"+name] {
				seen["f:"+name] = true
				c.funcs = append(c.funcs, name)
			}
		}
	}
}

// chain renders a block's statements as a statement chain and
// returns its head, or nil for an empty block.
func (c *Compiler) chain(b *ir.Block) *graph.Node {
	if b == nil || len(b.Stmts) == 0 {
		return nil
	}
	var head, cur *graph.Node
	for _, s := range b.Stmts {
		h, t := c.stmt(s)
		if head == nil {
			head = h
		} else {
			cur.Chain(h)
		}
		cur = t
	}
	return head
}

func (c *Compiler) attachChain(n *graph.Node, slot string, b *ir.Block) {
	if h := c.chain(b); h != nil {
		n.Attach(slot, h)
	}
}
