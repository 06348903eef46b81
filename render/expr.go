package render

import (
	"fmt"

	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
)

// expr renders one expression subtree. nil in, nil out: optional
// slots stay unconnected.
func (c *Compiler) expr(e ir.Expr) *graph.Node {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *ir.Name:
		n := c.g.NewNode(graph.TypeName)
		n.SetField("id", v.ID)
		return n
	case *ir.Literal:
		return c.literal(v)
	case *ir.BinOp:
		n := c.g.NewNode(graph.TypeBinOp)
		n.SetField("op", v.Op)
		n.Attach("left", c.expr(v.Left))
		n.Attach("right", c.expr(v.Right))
		return n
	case *ir.UnaryOp:
		n := c.g.NewNode(graph.TypeUnaryOp)
		n.SetField("op", v.Op)
		n.Attach("operand", c.expr(v.Operand))
		return n
	case *ir.BoolOp:
		n := c.g.NewNode(graph.TypeBoolOp)
		n.SetField("op", v.Op)
		n.SetField("operands", len(v.Values))
		for i, o := range v.Values {
			n.Attach(fmt.Sprintf("operand%d", i), c.expr(o))
		}
		return n
	case *ir.Compare:
		n := c.g.NewNode(graph.TypeCompare)
		n.Attach("left", c.expr(v.Left))
		n.SetField("comparisons", len(v.Comparators))
		for i, cmp := range v.Comparators {
			n.SetField(fmt.Sprintf("op%d", i), v.Ops[i])
			n.Attach(fmt.Sprintf("comparator%d", i), c.expr(cmp))
		}
		return n
	case *ir.Lambda:
		n := c.g.NewNode(graph.TypeLambda)
		n.SetField("params", len(v.Params))
		for i, p := range v.Params {
			n.Attach(fmt.Sprintf("param%d", i), c.param(p))
		}
		n.Attach("body", c.expr(v.Body))
		return n
	case *ir.IfExp:
		n := c.g.NewNode(graph.TypeIfExp)
		n.Attach("body", c.expr(v.Body))
		n.Attach("cond", c.expr(v.Cond))
		n.Attach("else", c.expr(v.Else))
		return n
	case *ir.Call:
		return c.call(v)
	case *ir.Tuple:
		return c.elts(graph.TypeTuple, v.Elts)
	case *ir.List:
		return c.elts(graph.TypeList, v.Elts)
	case *ir.Set:
		return c.elts(graph.TypeSet, v.Elts)
	case *ir.Dict:
		n := c.g.NewNode(graph.TypeDict)
		n.SetField("items", len(v.Keys))
		for i := range v.Keys {
			n.Attach(fmt.Sprintf("key%d", i), c.expr(v.Keys[i]))
			n.Attach(fmt.Sprintf("value%d", i), c.expr(v.Values[i]))
		}
		return n
	case *ir.Attribute:
		n := c.g.NewNode(graph.TypeAttribute)
		n.SetField("attr", v.Attr)
		n.Attach("value", c.expr(v.Value))
		return n
	case *ir.Subscript:
		n := c.g.NewNode(graph.TypeSubscript)
		n.Attach("value", c.expr(v.Value))
		n.Attach("index", c.expr(v.Index))
		return n
	case *ir.Slice:
		n := c.g.NewNode(graph.TypeSlice)
		n.Attach("lower", c.expr(v.Lower))
		n.Attach("upper", c.expr(v.Upper))
		n.Attach("step", c.expr(v.Step))
		return n
	case *ir.Comprehension:
		n := c.g.NewNode(graph.TypeComp)
		n.SetField("kind", string(v.Kind))
		n.Attach("elt", c.expr(v.Elt))
		n.Attach("key", c.expr(v.Key))
		n.Attach("value", c.expr(v.Value))
		n.SetField("clauses", len(v.Clauses))
		for i, cl := range v.Clauses {
			cn := c.g.NewNode(graph.TypeCompClause)
			cn.SetField("async", cl.Async)
			cn.Attach("target", c.expr(cl.Target))
			cn.Attach("iter", c.expr(cl.Iter))
			cn.SetField("ifs", len(cl.Ifs))
			for j, cond := range cl.Ifs {
				cn.Attach(fmt.Sprintf("if%d", j), c.expr(cond))
			}
			n.Attach(fmt.Sprintf("clause%d", i), cn)
		}
		return n
	case *ir.Group:
		n := c.g.NewNode(graph.TypeGroup)
		n.Attach("value", c.expr(v.Value))
		return n
	case *ir.FString:
		n := c.g.NewNode(graph.TypeFString)
		n.SetField("parts", len(v.Parts))
		for i, p := range v.Parts {
			pn := c.g.NewNode(graph.TypeFStringPart)
			pn.SetField("literal", p.Literal)
			pn.SetField("format", p.Format)
			pn.Attach("expr", c.expr(p.Expr))
			n.Attach(fmt.Sprintf("part%d", i), pn)
		}
		return n
	case *ir.Named:
		n := c.g.NewNode(graph.TypeNamed)
		n.Attach("target", c.expr(v.Target))
		n.Attach("value", c.expr(v.Value))
		return n
	case *ir.Yield:
		n := c.g.NewNode(graph.TypeYield)
		n.SetField("from", v.From)
		n.Attach("value", c.expr(v.Value))
		return n
	case *ir.Await:
		n := c.g.NewNode(graph.TypeAwait)
		n.Attach("value", c.expr(v.Value))
		return n
	}
	panic(fmt.Sprintf("render: unknown expression %T", e))
}

func (c *Compiler) literal(l *ir.Literal) *graph.Node {
	switch l.Kind {
	case ir.LitNumber:
		n := c.g.NewNode(graph.TypeNumber)
		n.SetField("value", l.Num)
		return n
	case ir.LitString:
		n := c.g.NewNode(graph.TypeString)
		n.SetField("value", l.Str)
		return n
	case ir.LitBool:
		n := c.g.NewNode(graph.TypeBool)
		n.SetField("value", l.Bool)
		return n
	case ir.LitNone:
		return c.g.NewNode(graph.TypeNone)
	}
	panic(fmt.Sprintf("render: unknown literal kind %q", l.Kind))
}

func (c *Compiler) elts(t graph.Type, elts []ir.Expr) *graph.Node {
	n := c.g.NewNode(t)
	n.SetField("elts", len(elts))
	for i, e := range elts {
		n.Attach(fmt.Sprintf("elt%d", i), c.expr(e))
	}
	return n
}

// call renders a call expression. Recognized canonical patterns
// (plain or single-module-attribute callee, positional args only)
// become dedicated nodes; everything else is a generic call node.
func (c *Compiler) call(v *ir.Call) *graph.Node {
	if n := c.specialized(v); n != nil {
		return n
	}
	n := c.g.NewNode(graph.TypeCall)
	n.Attach("func", c.expr(v.Func))
	n.SetField("args", len(v.Args))
	for i, a := range v.Args {
		n.Attach(fmt.Sprintf("arg%d", i), c.expr(a))
	}
	n.SetField("kwargs", len(v.Kwargs))
	for i, kw := range v.Kwargs {
		n.SetField(fmt.Sprintf("kwname%d", i), kw.Name)
		n.Attach(fmt.Sprintf("kwvalue%d", i), c.expr(kw.Value))
	}
	return n
}

// specialized renders v as its dedicated pattern node, or nil when
// the call does not match the table.
func (c *Compiler) specialized(v *ir.Call) *graph.Node {
	if len(v.Kwargs) != 0 {
		return nil
	}
	module, fn, ok := calleeName(v.Func)
	if !ok {
		return nil
	}
	e, found := c.table.ByCall(module, fn, len(v.Args))
	if !found {
		return nil
	}
	n := c.g.NewNode(e.Node)
	for i, a := range v.Args {
		n.Attach(e.Slots[i], c.expr(a))
	}
	return n
}

// calleeName extracts the callee shape pattern matching understands:
// a bare name, or a single attribute access on a bare name.
func calleeName(f ir.Expr) (module, fn string, ok bool) {
	switch v := f.(type) {
	case *ir.Name:
		return "", v.ID, true
	case *ir.Attribute:
		if base, isName := v.Value.(*ir.Name); isName {
			return base.ID, v.Attr, true
		}
	}
	return "", "", false
}
