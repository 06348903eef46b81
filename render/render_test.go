package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
)

func name(id string) *ir.Name { return &ir.Name{ID: id} }
func num(text string) *ir.Literal {
	return &ir.Literal{Kind: ir.LitNumber, Num: text}
}
func str(s string) *ir.Literal {
	return &ir.Literal{Kind: ir.LitString, Str: s}
}
func block(indent int, stmts ...ir.Stmt) *ir.Block {
	return &ir.Block{Indent: indent, Stmts: stmts}
}

func call(fn string, args ...ir.Expr) *ir.Call {
	return &ir.Call{Func: name(fn), Args: args}
}

func prog(stmts ...ir.Stmt) *ir.Program {
	return &ir.Program{IndentWidth: 4, Body: block(0, stmts...)}
}

// chainTypes walks the entry chain and returns the node types in
// order, entry excluded.
func chainTypes(t *testing.T, g *graph.Graph) []graph.Type {
	t.Helper()
	entries := g.FindType(graph.TypeEntry)
	if len(entries) != 1 {
		t.Fatalf("entry nodes = %d, want 1", len(entries))
	}
	var out []graph.Type
	for n := entries[0].Next(); n != nil; n = n.Next() {
		out = append(out, n.Type())
	}
	return out
}

func TestBuildChain(t *testing.T) {
	g := graph.New()
	c := New(g)
	c.Build(prog(
		&ir.Assign{Targets: []ir.Expr{name("x")}, Value: num("1")},
		&ir.ExprStmt{Value: call("print", str("hi"))},
		&ir.Pass{},
	))
	want := []graph.Type{graph.TypeAssign, "call_print", graph.TypePass}
	if diff := cmp.Diff(want, chainTypes(t, g)); diff != "" {
		t.Fatalf("chain (-want +got):\n%s", diff)
	}
}

func TestBuildIdempotent(t *testing.T) {
	g := graph.New()
	c := New(g)
	p := prog(&ir.Assign{Targets: []ir.Expr{name("x")}, Value: num("1")})

	c.Build(p)
	before := g.FindType(graph.TypeAssign)[0].ID()
	c.Build(p)
	if c.Rebuilds() != 1 {
		t.Fatalf("rebuilds = %d, want 1", c.Rebuilds())
	}
	if got := g.FindType(graph.TypeAssign)[0].ID(); got != before {
		t.Fatalf("node replaced on identical build: id %d -> %d", before, got)
	}

	c.Build(prog(&ir.Assign{Targets: []ir.Expr{name("y")}, Value: num("2")}))
	if c.Rebuilds() != 2 {
		t.Fatalf("rebuilds after changed input = %d, want 2", c.Rebuilds())
	}
}

func TestInvalidateForcesRebuild(t *testing.T) {
	g := graph.New()
	c := New(g)
	p := prog(&ir.Pass{})
	c.Build(p)
	c.Invalidate()
	c.Build(p)
	if c.Rebuilds() != 2 {
		t.Fatalf("rebuilds = %d, want 2", c.Rebuilds())
	}
}

func TestCallSpecialization(t *testing.T) {
	cases := []struct {
		name string
		expr ir.Expr
		typ  graph.Type
		slot string
	}{
		{"print", call("print", str("hi")), "call_print", "value"},
		{"range one arg", call("range", num("10")), "builtin_range", "stop"},
		{"range two args", call("range", num("1"), num("10")), "builtin_range_from", "start"},
		{"math attr", &ir.Call{
			Func: &ir.Attribute{Value: name("math"), Attr: "sqrt"},
			Args: []ir.Expr{num("2")},
		}, "math_sqrt", "value"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := graph.New()
			rc := New(g)
			rc.Build(prog(&ir.ExprStmt{Value: c.expr}))
			ns := g.FindType(c.typ)
			if len(ns) != 1 {
				t.Fatalf("%s nodes = %d, want 1", c.typ, len(ns))
			}
			if ns[0].Input(c.slot) == nil {
				t.Fatalf("slot %q empty", c.slot)
			}
			// The dedicated node takes the statement's chain position
			// itself; no exprstmt wrapper in between.
			if got := g.FindType(graph.TypeExprStmt); len(got) != 0 {
				t.Fatalf("exprstmt wrapper around %s", c.typ)
			}
			if ns[0].Prev() == nil || ns[0].Prev().Type() != graph.TypeEntry {
				t.Fatalf("%s not chained from entry", c.typ)
			}
		})
	}
}

func TestCallWithKwargsStaysGeneric(t *testing.T) {
	g := graph.New()
	c := New(g)
	c.Build(prog(&ir.ExprStmt{Value: &ir.Call{
		Func:   name("print"),
		Args:   []ir.Expr{str("hi")},
		Kwargs: []*ir.Kwarg{{Name: "end", Value: str("")}},
	}}))
	if got := g.FindType("call_print"); len(got) != 0 {
		t.Fatalf("kwarg call specialized, want generic")
	}
	ns := g.FindType(graph.TypeCall)
	if len(ns) != 1 {
		t.Fatalf("call nodes = %d, want 1", len(ns))
	}
	n := ns[0]
	if n.FieldInt("kwargs") != 1 || n.FieldString("kwname0") != "end" {
		t.Fatalf("kwargs not recorded: %v %q", n.Field("kwargs"), n.FieldString("kwname0"))
	}
}

func TestIfContinuations(t *testing.T) {
	g := graph.New()
	c := New(g)
	span := ir.Span{Start: ir.Pos{Line: 3}, End: ir.Pos{Line: 8}}
	c.Build(prog(&ir.If{
		Meta: ir.Meta{Span: span},
		Cond: name("a"),
		Body: block(1, &ir.Pass{}),
		Elifs: []*ir.Elif{
			{Cond: name("b"), Body: block(1, &ir.Pass{})},
		},
		Else: block(1, &ir.Pass{}),
	}))

	want := []graph.Type{graph.TypeIf, graph.TypeElif, graph.TypeElse}
	if diff := cmp.Diff(want, chainTypes(t, g)); diff != "" {
		t.Fatalf("chain (-want +got):\n%s", diff)
	}

	// Every continuation node maps back to the statement's span.
	spans := c.Spans()
	entry := g.FindType(graph.TypeEntry)[0]
	for n := entry.Next(); n != nil; n = n.Next() {
		if spans[n.ID()] != span {
			t.Fatalf("span for %s = %v, want %v", n.Type(), spans[n.ID()], span)
		}
	}
}

func TestDeclaredNames(t *testing.T) {
	g := graph.New()
	c := New(g)
	c.Build(prog(
		&ir.Assign{Targets: []ir.Expr{name("x")}, Value: num("1")},
		&ir.Assign{Targets: []ir.Expr{name("y"), name("x")}, Value: num("2")},
		&ir.FuncDef{Name: "f", Body: block(1, &ir.Pass{})},
	))
	vars, funcs := c.DeclaredNames()
	if len(vars) != 2 || vars[0] != "x" || vars[1] != "y" {
		t.Fatalf("vars = %v, want [x y]", vars)
	}
	if len(funcs) != 1 || funcs[0] != "f" {
		t.Fatalf("funcs = %v, want [f]", funcs)
	}
}

func TestViewportPreserved(t *testing.T) {
	g := graph.New()
	c := New(g)
	c.Build(prog(&ir.Pass{}))
	vp := graph.Viewport{X: 40, Y: 80, Zoom: 1.5}
	g.SetViewport(vp)
	c.Build(prog(&ir.Pass{}, &ir.Pass{}))
	if g.Viewport() != vp {
		t.Fatalf("viewport = %v, want %v", g.Viewport(), vp)
	}
}

func TestBuildEmitsNoEvents(t *testing.T) {
	g := graph.New()
	var events []graph.Event
	g.Subscribe(func(ev graph.Event) { events = append(events, ev) })
	c := New(g)
	c.Build(prog(
		&ir.Assign{Targets: []ir.Expr{name("x")}, Value: num("1")},
		&ir.ExprStmt{Value: call("print", name("x"))},
	))
	if len(events) != 0 {
		t.Fatalf("events during build = %d, want 0", len(events))
	}
}
