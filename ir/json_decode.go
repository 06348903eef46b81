package ir

import "fmt"

func (w *wire) decodeMeta(m *Meta) {
	m.ID = w.ID
	if w.Span != nil {
		m.Span = *w.Span
	}
	if w.Tokens != nil {
		m.Tokens = *w.Tokens
	}
	m.Leading = w.Leading
	m.Trailing = w.Trailing
}

func (w *wire) expr(name string) (Expr, error) {
	k, ok := w.Kids[name]
	if !ok || k == nil {
		return nil, nil
	}
	n, err := decodeNode(k)
	if err != nil {
		return nil, err
	}
	e, ok := n.(Expr)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s holds %s, want expression", ErrDecode, w.Kind, name, k.Kind)
	}
	return e, nil
}

func (w *wire) needExpr(name string) (Expr, error) {
	e, err := w.expr(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s missing %s", ErrDecode, w.Kind, name)
	}
	return e, nil
}

func (w *wire) block(name string) (*Block, error) {
	k, ok := w.Kids[name]
	if !ok || k == nil {
		return nil, nil
	}
	n, err := decodeNode(k)
	if err != nil {
		return nil, err
	}
	b, ok := n.(*Block)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s holds %s, want block", ErrDecode, w.Kind, name, k.Kind)
	}
	return b, nil
}

func (w *wire) needBlock(name string) (*Block, error) {
	b, err := w.block(name)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s missing %s", ErrDecode, w.Kind, name)
	}
	return b, nil
}

func (w *wire) exprs(name string) ([]Expr, error) {
	ws := w.Seqs[name]
	if len(ws) == 0 {
		return nil, nil
	}
	out := make([]Expr, len(ws))
	for i, k := range ws {
		n, err := decodeNode(k)
		if err != nil {
			return nil, err
		}
		e, ok := n.(Expr)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s[%d] holds %s, want expression", ErrDecode, w.Kind, name, i, k.Kind)
		}
		out[i] = e
	}
	return out, nil
}

func (w *wire) params(name string) ([]*Param, error) {
	ws := w.Seqs[name]
	if len(ws) == 0 {
		return nil, nil
	}
	out := make([]*Param, len(ws))
	for i, k := range ws {
		n, err := decodeNode(k)
		if err != nil {
			return nil, err
		}
		p, ok := n.(*Param)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s[%d] holds %s, want param", ErrDecode, w.Kind, name, i, k.Kind)
		}
		out[i] = p
	}
	return out, nil
}

func decodeNode(w *wire) (Node, error) {
	n, err := decodeShape(w)
	if err != nil {
		return nil, err
	}
	w.decodeMeta(n.NodeMeta())
	return n, nil
}

func decodeShape(w *wire) (Node, error) {
	switch w.Kind {
	case "block":
		b := &Block{Indent: w.Int}
		for i, k := range w.Seqs["stmts"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			s, ok := n.(Stmt)
			if !ok {
				return nil, fmt.Errorf("%w: block.stmts[%d] holds %s, want statement", ErrDecode, i, k.Kind)
			}
			b.Stmts = append(b.Stmts, s)
		}
		return b, nil
	case "name":
		return &Name{ID: w.Text}, nil
	case "literal":
		l := &Literal{Kind: LiteralKind(w.Sub)}
		switch l.Kind {
		case LitNumber:
			l.Num = w.Text
		case LitString:
			l.Str = w.Text
		case LitBool:
			l.Bool = w.Flag
		case LitNone:
		default:
			return nil, fmt.Errorf("%w: unknown literal kind %q", ErrDecode, w.Sub)
		}
		return l, nil
	case "binop":
		left, err := w.needExpr("left")
		if err != nil {
			return nil, err
		}
		right, err := w.needExpr("right")
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: w.Text, Left: left, Right: right}, nil
	case "unaryop":
		op, err := w.needExpr("operand")
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: w.Text, Operand: op}, nil
	case "boolop":
		vals, err := w.exprs("values")
		if err != nil {
			return nil, err
		}
		return &BoolOp{Op: w.Text, Values: vals}, nil
	case "compare":
		left, err := w.needExpr("left")
		if err != nil {
			return nil, err
		}
		comps, err := w.exprs("comparators")
		if err != nil {
			return nil, err
		}
		return &Compare{Left: left, Ops: w.Strs, Comparators: comps}, nil
	case "lambda":
		params, err := w.params("params")
		if err != nil {
			return nil, err
		}
		body, err := w.needExpr("body")
		if err != nil {
			return nil, err
		}
		return &Lambda{Params: params, Body: body}, nil
	case "ifexp":
		body, err := w.needExpr("body")
		if err != nil {
			return nil, err
		}
		cond, err := w.needExpr("cond")
		if err != nil {
			return nil, err
		}
		els, err := w.needExpr("else")
		if err != nil {
			return nil, err
		}
		return &IfExp{Body: body, Cond: cond, Else: els}, nil
	case "kwarg":
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &Kwarg{Name: w.Text, Value: val}, nil
	case "call":
		fn, err := w.needExpr("func")
		if err != nil {
			return nil, err
		}
		args, err := w.exprs("args")
		if err != nil {
			return nil, err
		}
		c := &Call{Func: fn, Args: args}
		for i, k := range w.Seqs["kwargs"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			kw, ok := n.(*Kwarg)
			if !ok {
				return nil, fmt.Errorf("%w: call.kwargs[%d] holds %s", ErrDecode, i, k.Kind)
			}
			c.Kwargs = append(c.Kwargs, kw)
		}
		return c, nil
	case "tuple":
		elts, err := w.exprs("elts")
		if err != nil {
			return nil, err
		}
		return &Tuple{Elts: elts}, nil
	case "list":
		elts, err := w.exprs("elts")
		if err != nil {
			return nil, err
		}
		return &List{Elts: elts}, nil
	case "set":
		elts, err := w.exprs("elts")
		if err != nil {
			return nil, err
		}
		return &Set{Elts: elts}, nil
	case "dict":
		keys, err := w.exprs("keys")
		if err != nil {
			return nil, err
		}
		vals, err := w.exprs("values")
		if err != nil {
			return nil, err
		}
		if len(keys) != len(vals) {
			return nil, fmt.Errorf("%w: dict with %d keys, %d values", ErrDecode, len(keys), len(vals))
		}
		return &Dict{Keys: keys, Values: vals}, nil
	case "attribute":
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &Attribute{Value: val, Attr: w.Text}, nil
	case "subscript":
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		idx, err := w.needExpr("index")
		if err != nil {
			return nil, err
		}
		return &Subscript{Value: val, Index: idx}, nil
	case "slice":
		lo, err := w.expr("lower")
		if err != nil {
			return nil, err
		}
		hi, err := w.expr("upper")
		if err != nil {
			return nil, err
		}
		st, err := w.expr("step")
		if err != nil {
			return nil, err
		}
		return &Slice{Lower: lo, Upper: hi, Step: st}, nil
	case "compclause":
		target, err := w.needExpr("target")
		if err != nil {
			return nil, err
		}
		iter, err := w.needExpr("iter")
		if err != nil {
			return nil, err
		}
		ifs, err := w.exprs("ifs")
		if err != nil {
			return nil, err
		}
		return &CompClause{Target: target, Iter: iter, Ifs: ifs, Async: w.Flag}, nil
	case "comprehension":
		c := &Comprehension{Kind: CompKind(w.Sub)}
		var err error
		if c.Elt, err = w.expr("elt"); err != nil {
			return nil, err
		}
		if c.Key, err = w.expr("key"); err != nil {
			return nil, err
		}
		if c.Value, err = w.expr("value"); err != nil {
			return nil, err
		}
		for i, k := range w.Seqs["clauses"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			cl, ok := n.(*CompClause)
			if !ok {
				return nil, fmt.Errorf("%w: comprehension.clauses[%d] holds %s", ErrDecode, i, k.Kind)
			}
			c.Clauses = append(c.Clauses, cl)
		}
		if len(c.Clauses) == 0 {
			return nil, fmt.Errorf("%w: comprehension without for clause", ErrDecode)
		}
		return c, nil
	case "group":
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &Group{Value: val}, nil
	case "fstringpart":
		e, err := w.expr("expr")
		if err != nil {
			return nil, err
		}
		return &FStringPart{Literal: w.Text, Format: w.Text2, Expr: e}, nil
	case "fstring":
		f := &FString{}
		for i, k := range w.Seqs["parts"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			p, ok := n.(*FStringPart)
			if !ok {
				return nil, fmt.Errorf("%w: fstring.parts[%d] holds %s", ErrDecode, i, k.Kind)
			}
			f.Parts = append(f.Parts, p)
		}
		return f, nil
	case "named":
		target, err := w.needExpr("target")
		if err != nil {
			return nil, err
		}
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &Named{Target: target, Value: val}, nil
	case "yield":
		val, err := w.expr("value")
		if err != nil {
			return nil, err
		}
		return &Yield{From: w.Flag, Value: val}, nil
	case "await":
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &Await{Value: val}, nil
	case "param":
		p := &Param{Name: w.Text, Kind: ParamKind(w.Sub)}
		if p.Kind == "" {
			p.Kind = ParamNormal
		}
		var err error
		if p.Annotation, err = w.expr("annotation"); err != nil {
			return nil, err
		}
		if p.Default, err = w.expr("default"); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return decodeStmtShape(w)
	}
}
