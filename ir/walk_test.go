package ir

import "testing"

func TestChildrenSkipsNil(t *testing.T) {
	s := &Return{}
	if got := Children(s); len(got) != 0 {
		t.Fatalf("nil value produced children: %v", got)
	}
	r := &Return{Value: name("x")}
	if got := Children(r); len(got) != 1 {
		t.Fatalf("got %d children, want 1", len(got))
	}
}

func TestWalkVisitsAll(t *testing.T) {
	p := testProgram()
	count := 0
	WalkProgram(p, func(Node) bool {
		count++
		return true
	})
	if count < 50 {
		t.Fatalf("walk visited %d nodes, suspiciously few", count)
	}
}

func TestWalkPrune(t *testing.T) {
	p := &Program{Body: block(0,
		&If{Cond: name("a"), Body: block(1, &Pass{}, &Pass{}, &Pass{})},
	)}
	count := 0
	WalkProgram(p, func(n Node) bool {
		count++
		_, isIf := n.(*If)
		return !isIf
	})
	// root block + the if; nothing below it
	if count != 2 {
		t.Fatalf("pruned walk visited %d nodes, want 2", count)
	}
}

func TestMaxID(t *testing.T) {
	p := &Program{Body: block(0,
		&Assign{Meta: Meta{ID: 3}, Targets: []Expr{&Name{Meta: Meta{ID: 7}, ID: "x"}}, Value: &Literal{Meta: Meta{ID: 5}, Kind: LitNumber, Num: "1"}},
	)}
	if got := MaxID(p); got != 7 {
		t.Fatalf("MaxID = %d, want 7", got)
	}
}
