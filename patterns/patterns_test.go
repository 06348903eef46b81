package patterns

import (
	"testing"

	"github.com/twinedit/twinedit/graph"
)

func TestDefaultLookups(t *testing.T) {
	tbl := Default()
	tests := []struct {
		module string
		fn     string
		arity  int
		node   graph.Type
	}{
		{fn: "random", arity: 0, node: "call_random"},
		{fn: "print", arity: 1, node: "call_print"},
		{fn: "range", arity: 1, node: "builtin_range"},
		{fn: "range", arity: 2, node: "builtin_range_from"},
		{fn: "range", arity: 3, node: "builtin_range_step"},
		{module: "math", fn: "sqrt", arity: 1, node: "math_sqrt"},
		{fn: "isinstance", arity: 2, node: "builtin_isinstance"},
	}
	for _, tc := range tests {
		e, ok := tbl.ByCall(tc.module, tc.fn, tc.arity)
		if !ok {
			t.Errorf("ByCall(%q, %q, %d): not found", tc.module, tc.fn, tc.arity)
			continue
		}
		if e.Node != tc.node {
			t.Errorf("ByCall(%q, %q, %d) = %s, want %s", tc.module, tc.fn, tc.arity, e.Node, tc.node)
		}
		back, ok := tbl.ByNode(tc.node)
		if !ok || back != e {
			t.Errorf("ByNode(%s) does not invert ByCall", tc.node)
		}
	}
}

func TestArityDiscriminates(t *testing.T) {
	tbl := Default()
	if _, ok := tbl.ByCall("", "range", 4); ok {
		t.Errorf("range/4 should not match")
	}
	if _, ok := tbl.ByCall("", "sqrt", 1); ok {
		t.Errorf("bare sqrt should not match the math.sqrt entry")
	}
}

func TestSpecializedTypesRegistered(t *testing.T) {
	tbl := Default()
	for _, e := range tbl.Entries() {
		if !graph.KnownType(e.Node) {
			t.Errorf("node type %s not registered", e.Node)
		}
	}
}

func TestWithout(t *testing.T) {
	tbl := Default().Without(func(fn string) bool {
		return fn == "print" || fn == "range"
	})
	if _, ok := tbl.ByCall("", "print", 1); ok {
		t.Errorf("print survived the toggle")
	}
	for _, arity := range []int{1, 2, 3} {
		if _, ok := tbl.ByCall("", "range", arity); ok {
			t.Errorf("range/%d survived the toggle", arity)
		}
	}
	if _, ok := tbl.ByNode("call_print"); ok {
		t.Errorf("ByNode still resolves a disabled pattern")
	}
	if _, ok := tbl.ByCall("", "round", 1); !ok {
		t.Errorf("unrelated pattern dropped")
	}
	if len(Default().Entries()) == len(tbl.Entries()) {
		t.Errorf("entry list unchanged")
	}
}

func TestLoadRejectsSlotMismatch(t *testing.T) {
	_, err := Load([]byte(`
patterns:
  - func: f
    arity: 2
    node: call_f
    slots: [only]
`))
	if err == nil {
		t.Fatalf("slot/arity mismatch accepted")
	}
}
