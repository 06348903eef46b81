package compile

import (
	"fmt"

	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
	"github.com/twinedit/twinedit/patterns"
)

// need compiles a required input slot.
func (c *Compiler) need(n *graph.Node, slot string) (ir.Expr, error) {
	in := n.Input(slot)
	if in == nil {
		return nil, errAt(KindBadShape, n, "%s node is missing its %s input", n.Type(), slot)
	}
	return c.expr(in)
}

// opt compiles an optional input slot; nil when unconnected.
func (c *Compiler) opt(n *graph.Node, slot string) (ir.Expr, error) {
	in := n.Input(slot)
	if in == nil {
		return nil, nil
	}
	return c.expr(in)
}

// exprList compiles a counted slot family: the count field names how
// many prefix-indexed inputs to read, and each must be connected.
func (c *Compiler) exprList(n *graph.Node, countField, prefix string) ([]ir.Expr, error) {
	count := n.FieldInt(countField)
	if count == 0 {
		return nil, nil
	}
	out := make([]ir.Expr, 0, count)
	for i := 0; i < count; i++ {
		e, err := c.need(n, fmt.Sprintf("%s%d", prefix, i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Compiler) expr(n *graph.Node) (ir.Expr, error) {
	if e, ok := c.table.ByNode(n.Type()); ok {
		return c.expand(n, e)
	}
	switch n.Type() {
	case graph.TypeName:
		id := n.FieldString("id")
		if id == "" {
			return nil, errAt(KindBadShape, n, "name node without an identifier")
		}
		return &ir.Name{Meta: c.meta(), ID: id}, nil
	case graph.TypeNumber:
		return &ir.Literal{Meta: c.meta(), Kind: ir.LitNumber, Num: n.FieldString("value")}, nil
	case graph.TypeString:
		return &ir.Literal{Meta: c.meta(), Kind: ir.LitString, Str: n.FieldString("value")}, nil
	case graph.TypeBool:
		return &ir.Literal{Meta: c.meta(), Kind: ir.LitBool, Bool: n.FieldBool("value")}, nil
	case graph.TypeNone:
		return &ir.Literal{Meta: c.meta(), Kind: ir.LitNone}, nil
	case graph.TypeBinOp:
		left, err := c.need(n, "left")
		if err != nil {
			return nil, err
		}
		right, err := c.need(n, "right")
		if err != nil {
			return nil, err
		}
		return &ir.BinOp{Meta: c.meta(), Op: n.FieldString("op"), Left: left, Right: right}, nil
	case graph.TypeUnaryOp:
		operand, err := c.need(n, "operand")
		if err != nil {
			return nil, err
		}
		return &ir.UnaryOp{Meta: c.meta(), Op: n.FieldString("op"), Operand: operand}, nil
	case graph.TypeBoolOp:
		values, err := c.exprList(n, "operands", "operand")
		if err != nil {
			return nil, err
		}
		if len(values) < 2 {
			return nil, errAt(KindBadShape, n, "boolean op needs at least two operands")
		}
		return &ir.BoolOp{Meta: c.meta(), Op: n.FieldString("op"), Values: values}, nil
	case graph.TypeCompare:
		left, err := c.need(n, "left")
		if err != nil {
			return nil, err
		}
		e := &ir.Compare{Meta: c.meta(), Left: left}
		count := n.FieldInt("comparisons")
		if count == 0 {
			return nil, errAt(KindBadShape, n, "comparison without comparators")
		}
		for i := 0; i < count; i++ {
			cmp, err := c.need(n, fmt.Sprintf("comparator%d", i))
			if err != nil {
				return nil, err
			}
			e.Ops = append(e.Ops, n.FieldString(fmt.Sprintf("op%d", i)))
			e.Comparators = append(e.Comparators, cmp)
		}
		return e, nil
	case graph.TypeLambda:
		e := &ir.Lambda{Meta: c.meta()}
		count := n.FieldInt("params")
		for i := 0; i < count; i++ {
			pn := n.Input(fmt.Sprintf("param%d", i))
			if pn == nil {
				return nil, errAt(KindBadShape, n, "param slot %d is empty", i)
			}
			p, err := c.param(pn)
			if err != nil {
				return nil, err
			}
			e.Params = append(e.Params, p)
		}
		var err error
		if e.Body, err = c.need(n, "body"); err != nil {
			return nil, err
		}
		return e, nil
	case graph.TypeIfExp:
		body, err := c.need(n, "body")
		if err != nil {
			return nil, err
		}
		cond, err := c.need(n, "cond")
		if err != nil {
			return nil, err
		}
		els, err := c.need(n, "else")
		if err != nil {
			return nil, err
		}
		return &ir.IfExp{Meta: c.meta(), Body: body, Cond: cond, Else: els}, nil
	case graph.TypeCall:
		return c.call(n)
	case graph.TypeTuple:
		return c.elts(n, func(elts []ir.Expr) ir.Expr { return &ir.Tuple{Meta: c.meta(), Elts: elts} })
	case graph.TypeList:
		return c.elts(n, func(elts []ir.Expr) ir.Expr { return &ir.List{Meta: c.meta(), Elts: elts} })
	case graph.TypeSet:
		return c.elts(n, func(elts []ir.Expr) ir.Expr { return &ir.Set{Meta: c.meta(), Elts: elts} })
	case graph.TypeDict:
		e := &ir.Dict{Meta: c.meta()}
		count := n.FieldInt("items")
		for i := 0; i < count; i++ {
			k, err := c.need(n, fmt.Sprintf("key%d", i))
			if err != nil {
				return nil, err
			}
			v, err := c.need(n, fmt.Sprintf("value%d", i))
			if err != nil {
				return nil, err
			}
			e.Keys = append(e.Keys, k)
			e.Values = append(e.Values, v)
		}
		return e, nil
	case graph.TypeAttribute:
		val, err := c.need(n, "value")
		if err != nil {
			return nil, err
		}
		attr := n.FieldString("attr")
		if attr == "" {
			return nil, errAt(KindBadShape, n, "attribute node without an attribute name")
		}
		return &ir.Attribute{Meta: c.meta(), Value: val, Attr: attr}, nil
	case graph.TypeSubscript:
		val, err := c.need(n, "value")
		if err != nil {
			return nil, err
		}
		idx, err := c.need(n, "index")
		if err != nil {
			return nil, err
		}
		return &ir.Subscript{Meta: c.meta(), Value: val, Index: idx}, nil
	case graph.TypeSlice:
		lower, err := c.opt(n, "lower")
		if err != nil {
			return nil, err
		}
		upper, err := c.opt(n, "upper")
		if err != nil {
			return nil, err
		}
		step, err := c.opt(n, "step")
		if err != nil {
			return nil, err
		}
		return &ir.Slice{Meta: c.meta(), Lower: lower, Upper: upper, Step: step}, nil
	case graph.TypeComp:
		return c.comprehension(n)
	case graph.TypeGroup:
		val, err := c.need(n, "value")
		if err != nil {
			return nil, err
		}
		return &ir.Group{Meta: c.meta(), Value: val}, nil
	case graph.TypeFString:
		e := &ir.FString{Meta: c.meta()}
		count := n.FieldInt("parts")
		for i := 0; i < count; i++ {
			pn := n.Input(fmt.Sprintf("part%d", i))
			if pn == nil {
				return nil, errAt(KindBadShape, n, "part slot %d is empty", i)
			}
			if pn.Type() != graph.TypeFStringPart {
				return nil, errAt(KindBadShape, pn, "%s node in an fstring part slot", pn.Type())
			}
			part := &ir.FStringPart{
				Meta:    c.meta(),
				Literal: pn.FieldString("literal"),
				Format:  pn.FieldString("format"),
			}
			var err error
			if part.Expr, err = c.opt(pn, "expr"); err != nil {
				return nil, err
			}
			e.Parts = append(e.Parts, part)
		}
		return e, nil
	case graph.TypeNamed:
		target, err := c.need(n, "target")
		if err != nil {
			return nil, err
		}
		val, err := c.need(n, "value")
		if err != nil {
			return nil, err
		}
		return &ir.Named{Meta: c.meta(), Target: target, Value: val}, nil
	case graph.TypeYield:
		val, err := c.opt(n, "value")
		if err != nil {
			return nil, err
		}
		return &ir.Yield{Meta: c.meta(), From: n.FieldBool("from"), Value: val}, nil
	case graph.TypeAwait:
		val, err := c.need(n, "value")
		if err != nil {
			return nil, err
		}
		return &ir.Await{Meta: c.meta(), Value: val}, nil
	}
	return nil, errAt(KindBadShape, n, "%s node in an expression slot", n.Type())
}

// expand rebuilds the canonical call a dedicated node stands for.
func (c *Compiler) expand(n *graph.Node, e *patterns.Entry) (ir.Expr, error) {
	var callee ir.Expr
	if e.Module != "" {
		callee = &ir.Attribute{
			Meta:  c.meta(),
			Value: &ir.Name{Meta: c.meta(), ID: e.Module},
			Attr:  e.Func,
		}
	} else {
		callee = &ir.Name{Meta: c.meta(), ID: e.Func}
	}
	call := &ir.Call{Meta: c.meta(), Func: callee}
	for _, slot := range e.Slots {
		a, err := c.need(n, slot)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, a)
	}
	return call, nil
}

func (c *Compiler) call(n *graph.Node) (ir.Expr, error) {
	fn, err := c.need(n, "func")
	if err != nil {
		return nil, err
	}
	e := &ir.Call{Meta: c.meta(), Func: fn}
	args := n.FieldInt("args")
	for i := 0; i < args; i++ {
		a, err := c.need(n, fmt.Sprintf("arg%d", i))
		if err != nil {
			return nil, err
		}
		e.Args = append(e.Args, a)
	}
	kwargs := n.FieldInt("kwargs")
	for i := 0; i < kwargs; i++ {
		name := n.FieldString(fmt.Sprintf("kwname%d", i))
		if name == "" {
			return nil, errAt(KindBadShape, n, "keyword argument %d without a name", i)
		}
		v, err := c.need(n, fmt.Sprintf("kwvalue%d", i))
		if err != nil {
			return nil, err
		}
		e.Kwargs = append(e.Kwargs, &ir.Kwarg{Meta: c.meta(), Name: name, Value: v})
	}
	return e, nil
}

func (c *Compiler) elts(n *graph.Node, build func([]ir.Expr) ir.Expr) (ir.Expr, error) {
	elts, err := c.exprList(n, "elts", "elt")
	if err != nil {
		return nil, err
	}
	return build(elts), nil
}

func (c *Compiler) comprehension(n *graph.Node) (ir.Expr, error) {
	e := &ir.Comprehension{Meta: c.meta(), Kind: ir.CompKind(n.FieldString("kind"))}
	var err error
	if e.Elt, err = c.opt(n, "elt"); err != nil {
		return nil, err
	}
	if e.Key, err = c.opt(n, "key"); err != nil {
		return nil, err
	}
	if e.Value, err = c.opt(n, "value"); err != nil {
		return nil, err
	}
	if e.Kind == ir.CompDict {
		if e.Key == nil || e.Value == nil {
			return nil, errAt(KindBadShape, n, "dict comprehension needs key and value")
		}
	} else if e.Elt == nil {
		return nil, errAt(KindBadShape, n, "comprehension without an element")
	}
	count := n.FieldInt("clauses")
	if count == 0 {
		return nil, errAt(KindBadShape, n, "comprehension without for clauses")
	}
	for i := 0; i < count; i++ {
		cn := n.Input(fmt.Sprintf("clause%d", i))
		if cn == nil {
			return nil, errAt(KindBadShape, n, "clause slot %d is empty", i)
		}
		if cn.Type() != graph.TypeCompClause {
			return nil, errAt(KindBadShape, cn, "%s node in a clause slot", cn.Type())
		}
		cl := &ir.CompClause{Meta: c.meta(), Async: cn.FieldBool("async")}
		if cl.Target, err = c.need(cn, "target"); err != nil {
			return nil, err
		}
		if cl.Iter, err = c.need(cn, "iter"); err != nil {
			return nil, err
		}
		if cl.Ifs, err = c.exprList(cn, "ifs", "if"); err != nil {
			return nil, err
		}
		e.Clauses = append(e.Clauses, cl)
	}
	return e, nil
}
