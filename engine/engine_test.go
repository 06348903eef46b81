package engine

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"

	"github.com/twinedit/twinedit/editor"
	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
	"github.com/twinedit/twinedit/langsvc"
)

// stubService is an in-process language service. The parse and
// generate hooks are swappable mid-test.
type stubService struct {
	parse    func(text string) (*ir.Program, error)
	generate func(p *ir.Program) (string, error)
	parsed   []string
	gens     int
}

func (s *stubService) Parse(ctx context.Context, text string) (*ir.Program, error) {
	s.parsed = append(s.parsed, text)
	return s.parse(text)
}

func (s *stubService) Generate(ctx context.Context, p *ir.Program) (string, error) {
	s.gens++
	return s.generate(p)
}

func assignProgram(span ir.Span) *ir.Program {
	return &ir.Program{
		IndentWidth: 4,
		Body: &ir.Block{Stmts: []ir.Stmt{
			&ir.Assign{
				Meta:    ir.Meta{Span: span},
				Targets: []ir.Expr{&ir.Name{ID: "x"}},
				Value:   &ir.Literal{Kind: ir.LitNumber, Num: "1"},
			},
		}},
	}
}

// okService parses everything into a one-assign program and
// generates a statement count.
func okService() *stubService {
	return &stubService{
		parse: func(string) (*ir.Program, error) {
			return assignProgram(ir.Span{}), nil
		},
		generate: func(p *ir.Program) (string, error) {
			return strconv.Itoa(len(p.Body.Stmts)) + " stmts", nil
		},
	}
}

type fixture struct {
	svc     *stubService
	buf     *editor.Buffer
	g       *graph.Graph
	deb     *ManualDebouncer
	ctrl    *Controller
	outputs []string
	saved   []string
}

func newFixture(t *testing.T, svc *stubService) *fixture {
	t.Helper()
	f := &fixture{
		svc: svc,
		buf: editor.NewBuffer(""),
		g:   graph.New(),
		deb: &ManualDebouncer{},
	}
	f.ctrl = New(svc, f.buf, f.g,
		WithDebouncer(f.deb),
		WithOutput(func(msg string) { f.outputs = append(f.outputs, msg) }),
		WithPersist(func(text string) error {
			f.saved = append(f.saved, text)
			return nil
		}),
	)
	f.ctrl.Attach(context.Background())
	return f
}

func (f *fixture) lastOutput() string {
	if len(f.outputs) == 0 {
		return ""
	}
	return f.outputs[len(f.outputs)-1]
}

func TestDebounceCoalesces(t *testing.T) {
	f := newFixture(t, okService())
	f.buf.Edit("x")
	f.buf.Edit("x ")
	f.buf.Edit("x = 1")
	if len(f.svc.parsed) != 0 {
		t.Fatalf("parsed before debounce fired: %v", f.svc.parsed)
	}
	f.deb.Fire()
	if len(f.svc.parsed) != 1 || f.svc.parsed[0] != "x = 1" {
		t.Fatalf("parsed = %v, want one parse of the final text", f.svc.parsed)
	}
	if f.deb.Triggers != 3 {
		t.Fatalf("triggers = %d, want 3", f.deb.Triggers)
	}
	if f.ctrl.State() != StateIdle {
		t.Fatalf("state = %v, want idle", f.ctrl.State())
	}
}

func TestParseErrorInstallsPlaceholder(t *testing.T) {
	svc := okService()
	fail := true
	svc.parse = func(text string) (*ir.Program, error) {
		if fail {
			return nil, &langsvc.ParseError{Msg: "line 3: unexpected token"}
		}
		return assignProgram(ir.Span{}), nil
	}
	f := newFixture(t, svc)

	f.buf.Edit("x = = 1")
	f.deb.Fire()

	if got := f.lastOutput(); got != "line 3: unexpected token" {
		t.Fatalf("output = %q, want the raw diagnostic", got)
	}
	decs := f.buf.Decorations()
	if len(decs) != 1 {
		t.Fatalf("decorations = %d, want 1", len(decs))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 2},
		End:   protocol.Position{Line: 3},
	}
	if decs[0] != want {
		t.Fatalf("decoration = %v, want %v", decs[0], want)
	}
	bad := f.g.FindType(graph.TypeSyncError)
	if len(bad) != 1 {
		t.Fatalf("sync-error nodes = %d, want 1", len(bad))
	}
	if msg := bad[0].FieldString("message"); !strings.Contains(msg, "line 3") {
		t.Fatalf("placeholder message = %q", msg)
	}

	// The next clean parse clears the diagnostic and the placeholder.
	fail = false
	f.buf.Edit("x = 1")
	f.deb.Fire()
	if got := f.lastOutput(); got != "" {
		t.Fatalf("output after recovery = %q, want cleared", got)
	}
	if len(f.buf.Decorations()) != 0 {
		t.Fatalf("decorations not cleared: %v", f.buf.Decorations())
	}
	if left := f.g.FindType(graph.TypeSyncError); len(left) != 0 {
		t.Fatalf("placeholder survived recovery")
	}
	if len(f.g.FindType(graph.TypeAssign)) != 1 {
		t.Fatalf("graph not rebuilt after recovery")
	}
}

func TestPendingTextSupersedes(t *testing.T) {
	svc := okService()
	f := newFixture(t, svc)
	reentered := false
	svc.parse = func(text string) (*ir.Program, error) {
		if !reentered {
			reentered = true
			// Edits landing mid-parse queue behind the busy flag.
			f.ctrl.TextChanged(context.Background(), "second")
			f.ctrl.TextChanged(context.Background(), "third")
			f.deb.Fire()
		}
		return assignProgram(ir.Span{}), nil
	}

	f.buf.Edit("first")
	f.deb.Fire()

	if diff := cmp.Diff([]string{"first", "third"}, f.svc.parsed); diff != "" {
		t.Fatalf("parsed texts (-want +got):\n%s", diff)
	}
	if f.ctrl.State() != StateIdle {
		t.Fatalf("state = %v, want idle", f.ctrl.State())
	}
}

// A text edit whose debounce fires while a graph sync holds the busy
// flag must run as soon as the flag drops, not wait for another
// keystroke.
func TestTextParkedDuringGraphSyncRuns(t *testing.T) {
	svc := okService()
	f := newFixture(t, svc)
	injected := false
	svc.generate = func(*ir.Program) (string, error) {
		if !injected {
			injected = true
			f.ctrl.TextChanged(context.Background(), "mid-sync edit")
			f.deb.Fire()
		}
		return "gen", nil
	}

	f.g.NewNode(graph.TypeEntry)

	if diff := cmp.Diff([]string{"mid-sync edit"}, f.svc.parsed); diff != "" {
		t.Fatalf("parsed texts (-want +got):\n%s", diff)
	}
	if f.ctrl.State() != StateIdle {
		t.Fatalf("state = %v, want idle", f.ctrl.State())
	}
}

// A parked edit is stale the moment a newer edit's window fires; it
// must be dropped, never replayed after the newer text.
func TestParkedTextSuperseded(t *testing.T) {
	f := newFixture(t, okService())
	stale := "older edit"
	f.ctrl.pending = &stale

	f.buf.Edit("newer edit")
	f.deb.Fire()

	if diff := cmp.Diff([]string{"newer edit"}, f.svc.parsed); diff != "" {
		t.Fatalf("parsed texts (-want +got):\n%s", diff)
	}
	if f.ctrl.pending != nil {
		t.Fatalf("stale pending survived: %q", *f.ctrl.pending)
	}
}

func TestGraphChangeRegeneratesText(t *testing.T) {
	f := newFixture(t, okService())

	entry := f.g.NewNode(graph.TypeEntry)
	es := f.g.NewNode(graph.TypeExprStmt)
	nm := f.g.NewNode(graph.TypeName)
	nm.SetField("id", "x")
	es.Attach("value", nm)
	entry.Chain(es)

	if got := f.buf.Content(); got != "1 stmts" {
		t.Fatalf("content = %q, want %q", got, "1 stmts")
	}
	if len(f.saved) == 0 || f.saved[len(f.saved)-1] != "1 stmts" {
		t.Fatalf("persist calls = %v, want final %q", f.saved, "1 stmts")
	}
}

func TestGraphChangeSkipsWriteWhenUnchanged(t *testing.T) {
	svc := okService()
	svc.generate = func(*ir.Program) (string, error) { return "same", nil }
	f := newFixture(t, svc)
	f.buf.SetContent("same")

	f.g.NewNode(graph.TypeEntry)
	if f.svc.gens == 0 {
		t.Fatal("generator never ran")
	}
	if len(f.saved) != 0 {
		t.Fatalf("persisted despite unchanged text: %v", f.saved)
	}
}

func TestStructuralErrorLeavesTextAlone(t *testing.T) {
	f := newFixture(t, okService())
	f.buf.SetContent("x = 1")

	f.g.SetEventsEnabled(false)
	entry := f.g.NewNode(graph.TypeEntry)
	elif := f.g.NewNode(graph.TypeElif)
	f.g.SetEventsEnabled(true)
	entry.Chain(elif)

	if !strings.Contains(f.lastOutput(), "continuation without if") {
		t.Fatalf("output = %q, want continuation error", f.lastOutput())
	}
	if got := f.buf.Content(); got != "x = 1" {
		t.Fatalf("content rewritten to %q on structural error", got)
	}
}

func TestGraphChangeDroppedWhileBusy(t *testing.T) {
	svc := okService()
	f := newFixture(t, svc)
	svc.parse = func(string) (*ir.Program, error) {
		f.ctrl.GraphChanged(context.Background(), graph.Event{Kind: graph.EventNodeCreate})
		return assignProgram(ir.Span{}), nil
	}
	f.buf.Edit("x = 1")
	f.deb.Fire()
	if f.svc.gens != 0 {
		t.Fatalf("generate ran %d times during a text sync, want 0", f.svc.gens)
	}
}

func TestSelectionHighlight(t *testing.T) {
	span := ir.Span{
		Start: ir.Pos{Line: 2, Col: 0},
		End:   ir.Pos{Line: 2, Col: 5},
	}
	svc := okService()
	svc.parse = func(string) (*ir.Program, error) {
		return assignProgram(span), nil
	}
	f := newFixture(t, svc)
	f.buf.Edit("pass\nx = 1")
	f.deb.Fire()

	assigns := f.g.FindType(graph.TypeAssign)
	if len(assigns) != 1 {
		t.Fatalf("assign nodes = %d, want 1", len(assigns))
	}
	f.g.Select(assigns[0].ID())
	decs := f.buf.Decorations()
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 0},
		End:   protocol.Position{Line: 1, Character: 5},
	}
	if len(decs) != 1 || decs[0] != want {
		t.Fatalf("decorations = %v, want [%v]", decs, want)
	}

	f.g.Deselect()
	if len(f.buf.Decorations()) != 0 {
		t.Fatalf("decorations survive deselect: %v", f.buf.Decorations())
	}

	// A node with no recorded span has nothing to highlight.
	f.g.Select(f.g.FindType(graph.TypeEntry)[0].ID())
	if len(f.buf.Decorations()) != 0 {
		t.Fatalf("spanless selection decorated: %v", f.buf.Decorations())
	}
}

func TestCosmeticEventsIgnored(t *testing.T) {
	f := newFixture(t, okService())
	f.buf.Edit("x = 1")
	f.deb.Fire()
	before := f.svc.gens

	f.g.SetViewport(graph.Viewport{X: 10, Y: 20, Zoom: 2})
	if f.svc.gens != before {
		t.Fatalf("viewport change triggered %d syncs", f.svc.gens-before)
	}
}

func TestErrorLine(t *testing.T) {
	cases := []struct {
		msg  string
		want int
	}{
		{"line 3: unexpected token", 3},
		{"parse: line 12: bad indent", 12},
		{"no location here", 0},
		{"line : missing number", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ErrorLine(c.msg); got != c.want {
			t.Errorf("ErrorLine(%q) = %d, want %d", c.msg, got, c.want)
		}
	}
}
