package ir

import (
	"encoding/json"
	"fmt"
)

// wire is the JSON shape of one IR node: a kind discriminator, the
// node metadata, scalar payloads, and named child slots. Maps
// marshal with sorted keys, so the encoding is deterministic and
// usable as an idempotence memo.
type wire struct {
	Kind     string             `json:"kind"`
	ID       int                `json:"id,omitempty"`
	Span     *Span              `json:"span,omitempty"`
	Tokens   *TokenRange        `json:"tokens,omitempty"`
	Leading  []Trivia           `json:"leading,omitempty"`
	Trailing []Trivia           `json:"trailing,omitempty"`
	Sub      string             `json:"sub,omitempty"`
	Text     string             `json:"text,omitempty"`
	Text2    string             `json:"text2,omitempty"`
	Flag     bool               `json:"flag,omitempty"`
	Int      int                `json:"int,omitempty"`
	Strs     []string           `json:"strs,omitempty"`
	Kids     map[string]*wire   `json:"kids,omitempty"`
	Seqs     map[string][]*wire `json:"seqs,omitempty"`
}

type wireProgram struct {
	IndentWidth int   `json:"indent_width"`
	Dirty       bool  `json:"dirty,omitempty"`
	Body        *wire `json:"body"`
}

// MarshalProgram renders a program in the stable JSON encoding.
func MarshalProgram(p *Program) ([]byte, error) {
	if p == nil || p.Body == nil {
		return nil, fmt.Errorf("%w: nil program", ErrEncode)
	}
	wp := &wireProgram{
		IndentWidth: p.IndentWidth,
		Dirty:       p.Dirty,
		Body:        encodeNode(p.Body),
	}
	return json.Marshal(wp)
}

// UnmarshalProgram is the inverse of MarshalProgram.
func UnmarshalProgram(d []byte) (*Program, error) {
	wp := &wireProgram{}
	if err := json.Unmarshal(d, wp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if wp.Body == nil {
		return nil, fmt.Errorf("%w: program without body", ErrDecode)
	}
	body, err := decodeNode(wp.Body)
	if err != nil {
		return nil, err
	}
	block, ok := body.(*Block)
	if !ok {
		return nil, fmt.Errorf("%w: program body is %s, not block", ErrDecode, wp.Body.Kind)
	}
	return &Program{
		IndentWidth: wp.IndentWidth,
		Dirty:       wp.Dirty,
		Body:        block,
	}, nil
}

func (w *wire) meta(m *Meta) {
	w.ID = m.ID
	if !m.Span.IsZero() {
		s := m.Span
		w.Span = &s
	}
	if m.Tokens != (TokenRange{}) {
		t := m.Tokens
		w.Tokens = &t
	}
	w.Leading = m.Leading
	w.Trailing = m.Trailing
}

func (w *wire) kid(name string, n Node) {
	if n == nil {
		return
	}
	if w.Kids == nil {
		w.Kids = map[string]*wire{}
	}
	w.Kids[name] = encodeNode(n)
}

// blk is kid for block fields. A nil *Block boxed into Node is not
// the nil interface, so the guard must run before the conversion.
func (w *wire) blk(name string, b *Block) {
	if b == nil {
		return
	}
	w.kid(name, b)
}

func (w *wire) seq(name string, ns []Node) {
	if len(ns) == 0 {
		return
	}
	if w.Seqs == nil {
		w.Seqs = map[string][]*wire{}
	}
	ws := make([]*wire, len(ns))
	for i, n := range ns {
		ws[i] = encodeNode(n)
	}
	w.Seqs[name] = ws
}

func exprNodes(es []Expr) []Node {
	ns := make([]Node, len(es))
	for i, e := range es {
		ns[i] = e
	}
	return ns
}

func encodeNode(n Node) *wire {
	w := encodeShape(n)
	w.meta(n.NodeMeta())
	return w
}

// stripMeta clears identity, span, token and trivia data from a wire
// tree, leaving only shape and values.
func stripMeta(w *wire) {
	w.ID = 0
	w.Span = nil
	w.Tokens = nil
	w.Leading = nil
	w.Trailing = nil
	for _, k := range w.Kids {
		stripMeta(k)
	}
	for _, s := range w.Seqs {
		for _, k := range s {
			stripMeta(k)
		}
	}
}

func encodeShape(n Node) *wire {
	switch v := n.(type) {
	case *Block:
		w := &wire{Kind: "block", Int: v.Indent}
		w.seq("stmts", stmtNodes(v.Stmts))
		return w
	case *Name:
		return &wire{Kind: "name", Text: v.ID}
	case *Literal:
		w := &wire{Kind: "literal", Sub: string(v.Kind)}
		switch v.Kind {
		case LitNumber:
			w.Text = v.Num
		case LitString:
			w.Text = v.Str
		case LitBool:
			w.Flag = v.Bool
		}
		return w
	case *BinOp:
		w := &wire{Kind: "binop", Text: v.Op}
		w.kid("left", v.Left)
		w.kid("right", v.Right)
		return w
	case *UnaryOp:
		w := &wire{Kind: "unaryop", Text: v.Op}
		w.kid("operand", v.Operand)
		return w
	case *BoolOp:
		w := &wire{Kind: "boolop", Text: v.Op}
		w.seq("values", exprNodes(v.Values))
		return w
	case *Compare:
		w := &wire{Kind: "compare", Strs: v.Ops}
		w.kid("left", v.Left)
		w.seq("comparators", exprNodes(v.Comparators))
		return w
	case *Lambda:
		w := &wire{Kind: "lambda"}
		w.seq("params", paramNodes(v.Params))
		w.kid("body", v.Body)
		return w
	case *IfExp:
		w := &wire{Kind: "ifexp"}
		w.kid("body", v.Body)
		w.kid("cond", v.Cond)
		w.kid("else", v.Else)
		return w
	case *Kwarg:
		w := &wire{Kind: "kwarg", Text: v.Name}
		w.kid("value", v.Value)
		return w
	case *Call:
		w := &wire{Kind: "call"}
		w.kid("func", v.Func)
		w.seq("args", exprNodes(v.Args))
		if len(v.Kwargs) > 0 {
			ns := make([]Node, len(v.Kwargs))
			for i, kw := range v.Kwargs {
				ns[i] = kw
			}
			w.seq("kwargs", ns)
		}
		return w
	case *Tuple:
		w := &wire{Kind: "tuple"}
		w.seq("elts", exprNodes(v.Elts))
		return w
	case *List:
		w := &wire{Kind: "list"}
		w.seq("elts", exprNodes(v.Elts))
		return w
	case *Set:
		w := &wire{Kind: "set"}
		w.seq("elts", exprNodes(v.Elts))
		return w
	case *Dict:
		w := &wire{Kind: "dict"}
		w.seq("keys", exprNodes(v.Keys))
		w.seq("values", exprNodes(v.Values))
		return w
	case *Attribute:
		w := &wire{Kind: "attribute", Text: v.Attr}
		w.kid("value", v.Value)
		return w
	case *Subscript:
		w := &wire{Kind: "subscript"}
		w.kid("value", v.Value)
		w.kid("index", v.Index)
		return w
	case *Slice:
		w := &wire{Kind: "slice"}
		w.kid("lower", v.Lower)
		w.kid("upper", v.Upper)
		w.kid("step", v.Step)
		return w
	case *CompClause:
		w := &wire{Kind: "compclause", Flag: v.Async}
		w.kid("target", v.Target)
		w.kid("iter", v.Iter)
		w.seq("ifs", exprNodes(v.Ifs))
		return w
	case *Comprehension:
		w := &wire{Kind: "comprehension", Sub: string(v.Kind)}
		w.kid("elt", v.Elt)
		w.kid("key", v.Key)
		w.kid("value", v.Value)
		ns := make([]Node, len(v.Clauses))
		for i, cl := range v.Clauses {
			ns[i] = cl
		}
		w.seq("clauses", ns)
		return w
	case *Group:
		w := &wire{Kind: "group"}
		w.kid("value", v.Value)
		return w
	case *FStringPart:
		w := &wire{Kind: "fstringpart", Text: v.Literal, Text2: v.Format}
		w.kid("expr", v.Expr)
		return w
	case *FString:
		w := &wire{Kind: "fstring"}
		ns := make([]Node, len(v.Parts))
		for i, p := range v.Parts {
			ns[i] = p
		}
		w.seq("parts", ns)
		return w
	case *Named:
		w := &wire{Kind: "named"}
		w.kid("target", v.Target)
		w.kid("value", v.Value)
		return w
	case *Yield:
		w := &wire{Kind: "yield", Flag: v.From}
		w.kid("value", v.Value)
		return w
	case *Await:
		w := &wire{Kind: "await"}
		w.kid("value", v.Value)
		return w
	case *Param:
		w := &wire{Kind: "param", Text: v.Name, Sub: string(v.Kind)}
		w.kid("annotation", v.Annotation)
		w.kid("default", v.Default)
		return w
	case *Elif:
		w := &wire{Kind: "elif"}
		w.kid("cond", v.Cond)
		w.blk("body", v.Body)
		return w
	case *If:
		w := &wire{Kind: "if"}
		w.kid("cond", v.Cond)
		w.blk("body", v.Body)
		if len(v.Elifs) > 0 {
			ns := make([]Node, len(v.Elifs))
			for i, e := range v.Elifs {
				ns[i] = e
			}
			w.seq("elifs", ns)
		}
		w.blk("else", v.Else)
		return w
	case *While:
		w := &wire{Kind: "while"}
		w.kid("cond", v.Cond)
		w.blk("body", v.Body)
		w.blk("else", v.Else)
		return w
	case *For:
		w := &wire{Kind: "for", Flag: v.Async}
		w.kid("target", v.Target)
		w.kid("iter", v.Iter)
		w.blk("body", v.Body)
		w.blk("else", v.Else)
		return w
	case *MatchCase:
		w := &wire{Kind: "case"}
		if v.Pattern != nil {
			w.kid("pattern", v.Pattern)
		}
		w.blk("body", v.Body)
		return w
	case *Match:
		w := &wire{Kind: "match"}
		w.kid("subject", v.Subject)
		ns := make([]Node, len(v.Cases))
		for i, c := range v.Cases {
			ns[i] = c
		}
		w.seq("cases", ns)
		return w
	case *FuncDef:
		w := &wire{Kind: "funcdef", Text: v.Name, Flag: v.Async}
		w.seq("decorators", exprNodes(v.Decorators))
		w.seq("params", paramNodes(v.Params))
		w.kid("returns", v.Returns)
		w.blk("body", v.Body)
		return w
	case *ClassDef:
		w := &wire{Kind: "classdef", Text: v.Name}
		w.seq("decorators", exprNodes(v.Decorators))
		w.seq("bases", exprNodes(v.Bases))
		w.blk("body", v.Body)
		return w
	case *Assign:
		w := &wire{Kind: "assign"}
		w.seq("targets", exprNodes(v.Targets))
		w.kid("value", v.Value)
		return w
	case *AnnAssign:
		w := &wire{Kind: "annassign"}
		w.kid("target", v.Target)
		w.kid("annotation", v.Annotation)
		w.kid("value", v.Value)
		return w
	case *AugAssign:
		w := &wire{Kind: "augassign", Text: v.Op}
		w.kid("target", v.Target)
		w.kid("value", v.Value)
		return w
	case *ExprStmt:
		w := &wire{Kind: "exprstmt"}
		w.kid("value", v.Value)
		return w
	case *Pass:
		return &wire{Kind: "pass"}
	case *Return:
		w := &wire{Kind: "return"}
		w.kid("value", v.Value)
		return w
	case *Break:
		return &wire{Kind: "break"}
	case *Continue:
		return &wire{Kind: "continue"}
	case *ImportName:
		return &wire{Kind: "importname", Text: v.Name, Text2: v.As}
	case *Import:
		w := &wire{Kind: "import", Flag: v.FromImport, Text: v.From}
		ns := make([]Node, len(v.Names))
		for i, nm := range v.Names {
			ns[i] = nm
		}
		w.seq("names", ns)
		return w
	case *ExceptHandler:
		w := &wire{Kind: "except", Text: v.Name}
		w.kid("type", v.Type)
		w.blk("body", v.Body)
		return w
	case *Try:
		w := &wire{Kind: "try"}
		w.blk("body", v.Body)
		if len(v.Handlers) > 0 {
			ns := make([]Node, len(v.Handlers))
			for i, h := range v.Handlers {
				ns[i] = h
			}
			w.seq("handlers", ns)
		}
		w.blk("else", v.Else)
		w.blk("finally", v.Finally)
		return w
	case *WithItem:
		w := &wire{Kind: "withitem"}
		w.kid("expr", v.Expr)
		w.kid("as", v.As)
		return w
	case *With:
		w := &wire{Kind: "with", Flag: v.Async}
		ns := make([]Node, len(v.Items))
		for i, it := range v.Items {
			ns[i] = it
		}
		w.seq("items", ns)
		w.blk("body", v.Body)
		return w
	case *Assert:
		w := &wire{Kind: "assert"}
		w.kid("cond", v.Cond)
		w.kid("msg", v.Msg)
		return w
	case *Raise:
		w := &wire{Kind: "raise"}
		w.kid("exc", v.Exc)
		w.kid("cause", v.Cause)
		return w
	case *Del:
		w := &wire{Kind: "del"}
		w.seq("targets", exprNodes(v.Targets))
		return w
	case *Global:
		return &wire{Kind: "global", Strs: v.Names}
	case *Nonlocal:
		return &wire{Kind: "nonlocal", Strs: v.Names}
	case *Empty:
		return &wire{Kind: "empty", Flag: v.Synthetic}
	case *WildcardPattern:
		return &wire{Kind: "wildcard"}
	case *CapturePattern:
		return &wire{Kind: "capture", Text: v.Name}
	case *LiteralPattern:
		w := &wire{Kind: "litpattern"}
		if v.Value != nil {
			w.kid("value", v.Value)
		}
		return w
	}
	panic(fmt.Sprintf("ir: unencodable node %T", n))
}

func stmtNodes(ss []Stmt) []Node {
	ns := make([]Node, len(ss))
	for i, s := range ss {
		ns[i] = s
	}
	return ns
}

func paramNodes(ps []*Param) []Node {
	ns := make([]Node, len(ps))
	for i, p := range ps {
		ns[i] = p
	}
	return ns
}
