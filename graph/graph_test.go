package graph

import (
	"testing"
)

func TestCountFieldRegeneratesSlots(t *testing.T) {
	g := New()
	n := g.NewNode(TypeCall)
	n.SetField("args", 2)
	want := []string{"func", "arg0", "arg1"}
	got := n.Slots()
	if len(got) != len(want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slots = %v, want %v", got, want)
		}
	}

	a := g.NewNode(TypeName)
	b := g.NewNode(TypeName)
	n.Attach("arg0", a)
	n.Attach("arg1", b)

	// Shrinking detaches surplus children.
	n.SetField("args", 1)
	if n.Input("arg0") != a {
		t.Errorf("arg0 lost across regeneration")
	}
	if n.Input("arg1") != nil {
		t.Errorf("arg1 still attached after shrink")
	}
	if b.Parent() != nil {
		t.Errorf("surplus child keeps its parent")
	}
}

func TestPairedCountSlots(t *testing.T) {
	g := New()
	n := g.NewNode(TypeDict)
	n.SetField("items", 2)
	want := map[string]bool{"key0": true, "value0": true, "key1": true, "value1": true}
	for _, s := range n.Slots() {
		if !want[s] {
			t.Fatalf("unexpected slot %q", s)
		}
		delete(want, s)
	}
	if len(want) != 0 {
		t.Fatalf("missing slots: %v", want)
	}
}

func TestAttachDetach(t *testing.T) {
	g := New()
	ifn := g.NewNode(TypeIf)
	cond := g.NewNode(TypeName)
	ifn.Attach("cond", cond)
	if cond.Parent() != ifn || cond.ParentSlot() != "cond" {
		t.Fatalf("attach did not set parentage")
	}
	ifn.Detach("cond")
	if cond.Parent() != nil || ifn.Input("cond") != nil {
		t.Fatalf("detach left wiring behind")
	}
}

func TestChainUnchain(t *testing.T) {
	g := New()
	a := g.NewNode(TypePass)
	b := g.NewNode(TypePass)
	c := g.NewNode(TypePass)
	a.Chain(b)
	b.Chain(c)
	if a.Next() != b || b.Prev() != a || b.Next() != c {
		t.Fatalf("chain wiring wrong")
	}
	b.Unchain()
	if b.Next() != nil || c.Prev() != nil {
		t.Fatalf("unchain left b -> c wired")
	}
	if a.Next() != b {
		t.Fatalf("unchain severed the wrong link")
	}
	a.Unchain()
	if a.Next() != nil || b.Prev() != nil {
		t.Fatalf("unchain left a -> b wired")
	}
}

func TestRootsOrderedByPosition(t *testing.T) {
	g := New()
	low := g.NewNode(TypePass)
	low.SetPosition(Position{X: 0, Y: 300})
	high := g.NewNode(TypePass)
	high.SetPosition(Position{X: 0, Y: 10})
	mid := g.NewNode(TypePass)
	mid.SetPosition(Position{X: 50, Y: 150})

	// chained and parented nodes are not roots
	tail := g.NewNode(TypePass)
	high.Chain(tail)
	ifn := g.NewNode(TypeIf)
	ifn.SetPosition(Position{X: 0, Y: 600})
	child := g.NewNode(TypeName)
	ifn.Attach("cond", child)

	roots := g.Roots()
	wantOrder := []*Node{high, mid, low, ifn}
	if len(roots) != len(wantOrder) {
		t.Fatalf("got %d roots, want %d", len(roots), len(wantOrder))
	}
	for i, want := range wantOrder {
		if roots[i] != want {
			t.Fatalf("roots[%d] = node %d, want node %d", i, roots[i].ID(), want.ID())
		}
	}
}

func TestEvents(t *testing.T) {
	g := New()
	var kinds []EventKind
	g.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	})
	n := g.NewNode(TypePass)
	n.SetField("synthetic", true)
	n.SetPosition(Position{Y: 5})
	g.Select(n.ID())
	g.Deselect()
	g.SetViewport(Viewport{Zoom: 2})

	want := []EventKind{EventNodeCreate, EventFieldChange, EventMove, EventSelect, EventDeselect, EventViewport}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestEventGating(t *testing.T) {
	g := New()
	fired := 0
	g.Subscribe(func(Event) { fired++ })
	g.SetEventsEnabled(false)
	n := g.NewNode(TypePass)
	n.SetField("synthetic", true)
	g.Clear()
	g.SetEventsEnabled(true)
	if fired != 0 {
		t.Fatalf("%d events fired while disabled", fired)
	}
	g.NewNode(TypePass)
	if fired != 1 {
		t.Fatalf("events did not resume: %d", fired)
	}
}

func TestCosmeticClassification(t *testing.T) {
	cosmetic := []EventKind{EventSelect, EventDeselect, EventViewport, EventClick, EventToolbox}
	structural := []EventKind{EventNodeCreate, EventNodeDelete, EventFieldChange, EventConnect, EventDisconnect, EventMove}
	for _, k := range cosmetic {
		if !k.Cosmetic() {
			t.Errorf("%v should be cosmetic", k)
		}
	}
	for _, k := range structural {
		if k.Cosmetic() {
			t.Errorf("%v should be structural", k)
		}
	}
}

func TestImportNamesAreFields(t *testing.T) {
	g := New()
	n := g.NewNode(TypeImport)
	n.SetField("names", 2)
	n.SetField("name0", "sqrt")
	n.SetField("as0", "root")
	n.SetField("name1", "floor")
	if !KnownType(TypeImport) {
		t.Fatal("import not a known type")
	}
	if got := n.Slots(); len(got) != 0 {
		t.Fatalf("slots = %v, want none: import names are data fields", got)
	}
	if n.FieldString("name0") != "sqrt" || n.FieldString("as0") != "root" {
		t.Fatalf("name fields lost: %v", n.FieldNames())
	}
}

func TestClear(t *testing.T) {
	g := New()
	g.NewNode(TypePass)
	g.NewNode(TypePass)
	g.Clear()
	if len(g.Nodes()) != 0 {
		t.Fatalf("clear left %d nodes", len(g.Nodes()))
	}
	// identities keep climbing after a clear
	n := g.NewNode(TypePass)
	if n.ID() <= 2 {
		t.Fatalf("node id %d reused after clear", n.ID())
	}
}
