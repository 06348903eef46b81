// Package engine is the synchronization controller: the state machine
// that keeps one text document and one visual graph describing the
// same program. Text→graph runs through the external parser behind a
// debounce window; graph→text runs through the tree compiler and the
// external generator. A single busy flag covers both directions, so
// at most one conversion is in flight and the two sides can never
// rewrite each other concurrently.
package engine

import (
	"context"
	"regexp"
	"strconv"

	"go.lsp.dev/protocol"

	"github.com/twinedit/twinedit/compile"
	"github.com/twinedit/twinedit/ctxlog"
	"github.com/twinedit/twinedit/debug"
	"github.com/twinedit/twinedit/editor"
	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ident"
	"github.com/twinedit/twinedit/ir"
	"github.com/twinedit/twinedit/langsvc"
	"github.com/twinedit/twinedit/patterns"
	"github.com/twinedit/twinedit/render"
)

// State is the controller's sync phase.
type State int

const (
	StateIdle State = iota
	StateBusy
)

// Controller owns all mutable sync state for one editor session:
// allocator, render memo, span side-table, busy flag, pending source.
// It is not safe for concurrent use: every entry point, including the
// debounced parse callback, must run on the host's single event
// thread. The default wall-clock debouncer fires on its own
// goroutine; hosts with an event loop inject one that fires there.
type Controller struct {
	svc   langsvc.Service
	ed    editor.Editor
	g     *graph.Graph
	ids   *ident.Allocator
	rc    *render.Compiler
	table *patterns.Table

	debounce Debouncer
	persist  func(text string) error
	output   func(msg string)

	state       State
	pending     *string
	indentWidth int
	errShown    bool
}

type Option func(*Controller)

// WithDebouncer replaces the real timer, for tests.
func WithDebouncer(d Debouncer) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithPersist sets the callback invoked after a graph→text write.
func WithPersist(fn func(text string) error) Option {
	return func(c *Controller) { c.persist = fn }
}

// WithOutput sets the sink for user-visible error messages.
func WithOutput(fn func(msg string)) Option {
	return func(c *Controller) { c.output = fn }
}

// WithTable overrides the builtin-call pattern table on both
// compilers.
func WithTable(t *patterns.Table) Option {
	return func(c *Controller) { c.table = t }
}

func New(svc langsvc.Service, ed editor.Editor, g *graph.Graph, opts ...Option) *Controller {
	c := &Controller{
		svc:         svc,
		ed:          ed,
		g:           g,
		ids:         ident.New(),
		table:       patterns.Default(),
		debounce:    NewDebouncer(DefaultDebounce),
		output:      func(string) {},
		indentWidth: 4,
	}
	for _, o := range opts {
		o(c)
	}
	c.rc = render.New(g, render.WithTable(c.table))
	return c
}

// Attach subscribes the controller to its editor and graph. ctx is
// the session context every conversion runs under.
func (c *Controller) Attach(ctx context.Context) {
	c.ed.OnChange(func(text string) {
		c.TextChanged(ctx, text)
	})
	c.g.Subscribe(func(ev graph.Event) {
		c.GraphChanged(ctx, ev)
	})
}

func (c *Controller) State() State { return c.state }

// Spans exposes the recorded node→source-span side table.
func (c *Controller) Spans() map[graph.NodeID]ir.Span {
	return c.rc.Spans()
}

// TextChanged records a keystroke. The parse fires only after the
// debounce window passes without another edit; each call restarts
// the window and supersedes the previously pending content.
func (c *Controller) TextChanged(ctx context.Context, text string) {
	c.debounce.Trigger(func() {
		c.syncText(ctx, text)
	})
}

// syncText drives text→graph. While a sync is in flight the newest
// source replaces any earlier pending one; when the in-flight pass
// finishes it re-runs itself until nothing is pending.
func (c *Controller) syncText(ctx context.Context, text string) {
	if c.state == StateBusy {
		c.pending = &text
		return
	}
	c.state = StateBusy
	// text is newer than anything still parked from an earlier busy
	// window; the parked copy must never replay after it.
	c.pending = nil
	for {
		c.parseOnce(ctx, text)
		if c.pending == nil {
			break
		}
		text = *c.pending
		c.pending = nil
	}
	c.state = StateIdle
}

func (c *Controller) parseOnce(ctx context.Context, text string) {
	log := ctxlog.FromContext(ctx)
	p, err := c.svc.Parse(ctx, text)
	if err != nil {
		log.Debug("parse failed", "err", err)
		c.output(err.Error())
		c.ed.ClearDecorations()
		if line := ErrorLine(err.Error()); line > 0 {
			c.ed.Decorate(protocol.Range{
				Start: protocol.Position{Line: uint32(line - 1)},
				End:   protocol.Position{Line: uint32(line)},
			})
		}
		c.installPlaceholder(err.Error())
		c.errShown = true
		return
	}
	c.ids.Reconcile(p)
	c.indentWidth = p.IndentWidth
	c.rc.Build(p)
	if c.errShown {
		c.output("")
		c.ed.ClearDecorations()
		c.errShown = false
	}
}

// installPlaceholder replaces the graph content with the single
// sync-error node so stale structure cannot be edited as if current.
func (c *Controller) installPlaceholder(msg string) {
	on := c.g.EventsEnabled()
	c.g.SetEventsEnabled(false)
	defer c.g.SetEventsEnabled(on)
	c.g.Clear()
	n := c.g.NewNode(graph.TypeSyncError)
	n.SetField("message", msg)
	c.rc.Invalidate()
}

// GraphChanged reacts to one graph event. Selection projects spans to
// decorations; other cosmetic events are ignored; structural events
// start a graph→text sync.
func (c *Controller) GraphChanged(ctx context.Context, ev graph.Event) {
	switch ev.Kind {
	case graph.EventSelect:
		c.highlight(ev.Node)
		return
	case graph.EventDeselect:
		c.ed.ClearDecorations()
		return
	}
	if ev.Kind.Cosmetic() {
		return
	}
	c.syncGraph(ctx)
}

// highlight projects the selected node's recorded source span onto
// the editor. Nodes without a span (graph-born, never rendered from
// text) clear the highlight instead.
func (c *Controller) highlight(id graph.NodeID) {
	c.ed.ClearDecorations()
	span, ok := c.rc.Spans()[id]
	if !ok || span.IsZero() {
		return
	}
	c.ed.Decorate(protocol.Range{
		Start: protocol.Position{Line: uint32(span.Start.Line - 1), Character: uint32(span.Start.Col)},
		End:   protocol.Position{Line: uint32(span.End.Line - 1), Character: uint32(span.End.Col)},
	})
}

// syncGraph drives graph→text. A request arriving while busy is
// dropped, not queued: the next structural event re-triggers.
func (c *Controller) syncGraph(ctx context.Context) {
	log := ctxlog.FromContext(ctx)
	if c.state == StateBusy {
		if debug.Sync() {
			debug.Logf("sync: graph change dropped while busy")
		}
		log.Debug("graph change dropped while busy")
		return
	}
	c.state = StateBusy
	// A text edit whose debounce fired during this sync is parked in
	// pending; run it once the flag drops or it would be lost.
	defer func() {
		c.state = StateIdle
		if c.pending != nil {
			text := *c.pending
			c.pending = nil
			c.syncText(ctx, text)
		}
	}()

	tc := compile.New(c.g, c.ids,
		compile.WithTable(c.table),
		compile.WithIndentWidth(c.indentWidth))
	p, err := tc.Compile()
	if err != nil {
		log.Debug("compile failed", "err", err)
		c.output(err.Error())
		return
	}
	text, err := c.svc.Generate(ctx, p)
	if err != nil {
		log.Debug("generate failed", "err", err)
		c.output(err.Error())
		return
	}
	if text == c.ed.Content() {
		return
	}
	c.ed.SetContent(text)
	if c.persist != nil {
		if err := c.persist(text); err != nil {
			c.output(err.Error())
		}
	}
}

var lineRe = regexp.MustCompile(`line (\d+):`)

// ErrorLine extracts the 1-based line number from a service
// diagnostic of the form "line <N>: ...". Zero when absent.
func ErrorLine(msg string) int {
	m := lineRe.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
