package ir

import (
	"bytes"
	"errors"
	"testing"
)

func name(id string) *Name {
	return &Name{ID: id}
}

func num(text string) *Literal {
	return &Literal{Kind: LitNumber, Num: text}
}

func str(s string) *Literal {
	return &Literal{Kind: LitString, Str: s}
}

func block(indent int, stmts ...Stmt) *Block {
	return &Block{Indent: indent, Stmts: stmts}
}

// testProgram covers one of most shape families.
func testProgram() *Program {
	return &Program{
		IndentWidth: 4,
		Body: block(0,
			&Assign{
				Meta:    Meta{ID: 1, Span: Span{Start: Pos{Line: 1, Col: 0, Off: 0}, End: Pos{Line: 1, Col: 5, Off: 5}}},
				Targets: []Expr{name("x")},
				Value:   num("1"),
			},
			&FuncDef{
				Name: "f",
				Params: []*Param{
					{Name: "a", Kind: ParamNormal},
					{Name: "b", Kind: ParamNormal, Default: num("2")},
					{Name: "rest", Kind: ParamStar},
				},
				Body: block(1,
					&If{
						Cond: name("a"),
						Body: block(2, &Return{Value: &BinOp{Op: "+", Left: name("a"), Right: name("b")}}),
						Elifs: []*Elif{
							{Cond: name("b"), Body: block(2, &Pass{})},
						},
						Else: block(2,
							&While{
								Cond: &Literal{Kind: LitBool, Bool: true},
								Body: block(3, &Break{}),
							},
						),
					},
				),
			},
			&ExprStmt{
				Value: &Call{
					Func: name("print"),
					Args: []Expr{str("hi")},
					Kwargs: []*Kwarg{
						{Name: "sep", Value: str(", ")},
					},
				},
			},
			&For{
				Target: name("i"),
				Iter:   &Call{Func: name("range"), Args: []Expr{num("10")}},
				Body: block(1,
					&ExprStmt{Value: &Subscript{Value: name("xs"), Index: &Slice{Lower: num("1"), Upper: nil, Step: num("2")}}},
				),
			},
			&Match{
				Subject: name("x"),
				Cases: []*MatchCase{
					{Pattern: &LiteralPattern{Value: num("1")}, Body: block(1, &Pass{})},
					{Pattern: &CapturePattern{Name: "y"}, Body: block(1, &Pass{})},
					{Pattern: &WildcardPattern{}, Body: block(1, &Pass{})},
				},
			},
			&Try{
				Body: block(1, &Raise{Exc: &Call{Func: name("ValueError"), Args: []Expr{str("no")}}}),
				Handlers: []*ExceptHandler{
					{Type: name("ValueError"), Name: "e", Body: block(1, &Pass{})},
				},
				Finally: block(1, &Pass{}),
			},
			&ExprStmt{
				Value: &Comprehension{
					Kind: CompList,
					Elt:  &BinOp{Op: "*", Left: name("i"), Right: name("i")},
					Clauses: []*CompClause{
						{Target: name("i"), Iter: name("xs"), Ifs: []Expr{&Compare{Left: name("i"), Ops: []string{">"}, Comparators: []Expr{num("0")}}}},
					},
				},
			},
			&ExprStmt{
				Value: &FString{Parts: []*FStringPart{
					{Literal: "x is "},
					{Expr: name("x"), Format: ".2f"},
				}},
			},
			&Import{FromImport: true, From: "math", Names: []*ImportName{{Name: "sqrt", As: "root"}}},
			&With{Items: []*WithItem{{Expr: &Call{Func: name("open"), Args: []Expr{str("f")}}, As: name("fh")}}, Body: block(1, &Pass{})},
		),
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	p := testProgram()
	d, err := MarshalProgram(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	q, err := UnmarshalProgram(d)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !Equal(p, q) {
		t.Fatalf("program changed across marshal round trip")
	}
	if q.IndentWidth != 4 {
		t.Errorf("indent width: got %d, want 4", q.IndentWidth)
	}
}

// Optional block fields are nil pointers, and a nil *Block boxed
// into the Node interface is not the nil interface; these shapes
// must still encode.
func TestMarshalAbsentOptionalBlocks(t *testing.T) {
	p := &Program{
		IndentWidth: 4,
		Body: block(0,
			&If{Cond: name("a"), Body: block(1, &Pass{})},
			&While{Cond: name("b"), Body: block(1, &Break{})},
			&For{Target: name("i"), Iter: name("xs"), Body: block(1, &Pass{})},
			&Try{
				Body:     block(1, &Pass{}),
				Handlers: []*ExceptHandler{{Body: block(1, &Pass{})}},
			},
		),
	}
	d, err := MarshalProgram(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	q, err := UnmarshalProgram(d)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !Equal(p, q) {
		t.Fatalf("program changed across marshal round trip")
	}
	got := q.Body.Stmts[0].(*If)
	if got.Else != nil {
		t.Fatalf("absent else decoded as %v", got.Else)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	p := testProgram()
	a, err := MarshalProgram(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalProgram(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("two marshals of one program differ")
	}
}

func TestMarshalPreservesMeta(t *testing.T) {
	p := testProgram()
	d, err := MarshalProgram(p)
	if err != nil {
		t.Fatal(err)
	}
	q, err := UnmarshalProgram(d)
	if err != nil {
		t.Fatal(err)
	}
	got := q.Body.Stmts[0].(*Assign)
	if got.ID != 1 {
		t.Errorf("id: got %d, want 1", got.ID)
	}
	if got.Span.Start.Line != 1 || got.Span.End.Off != 5 {
		t.Errorf("span: got %+v", got.Span)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	for _, in := range []string{
		``,
		`{`,
		`{"body":{"kind":"nope"}}`,
		`{"body":{"kind":"name"}}`,
	} {
		if _, err := UnmarshalProgram([]byte(in)); !errors.Is(err, ErrDecode) {
			t.Errorf("%q: got %v, want ErrDecode", in, err)
		}
	}
}
