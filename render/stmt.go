package render

import (
	"fmt"

	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
)

// stmt renders one statement and returns the head and tail of the
// chain segment it produced. Only if statements produce more than one
// chain node: their elif/else arms become continuation nodes.
func (c *Compiler) stmt(s ir.Stmt) (head, tail *graph.Node) {
	switch v := s.(type) {
	case *ir.If:
		n := c.g.NewNode(graph.TypeIf)
		n.Attach("cond", c.expr(v.Cond))
		c.attachChain(n, "body", v.Body)
		cur := n
		for _, e := range v.Elifs {
			en := c.g.NewNode(graph.TypeElif)
			en.Attach("cond", c.expr(e.Cond))
			c.attachChain(en, "body", e.Body)
			cur.Chain(en)
			cur = en
		}
		if v.Else != nil {
			en := c.g.NewNode(graph.TypeElse)
			c.attachChain(en, "body", v.Else)
			cur.Chain(en)
			cur = en
		}
		return n, cur
	case *ir.While:
		n := c.g.NewNode(graph.TypeWhile)
		n.Attach("cond", c.expr(v.Cond))
		c.attachChain(n, "body", v.Body)
		c.attachChain(n, "else", v.Else)
		return n, n
	case *ir.For:
		n := c.g.NewNode(graph.TypeFor)
		n.SetField("async", v.Async)
		n.Attach("target", c.expr(v.Target))
		n.Attach("iter", c.expr(v.Iter))
		c.attachChain(n, "body", v.Body)
		c.attachChain(n, "else", v.Else)
		return n, n
	case *ir.Match:
		n := c.g.NewNode(graph.TypeMatch)
		n.Attach("subject", c.expr(v.Subject))
		n.SetField("cases", len(v.Cases))
		for i, mc := range v.Cases {
			cn := c.g.NewNode(graph.TypeCase)
			if mc.Pattern != nil {
				cn.Attach("pattern", c.pattern(mc.Pattern))
			}
			c.attachChain(cn, "body", mc.Body)
			n.Attach(fmt.Sprintf("case%d", i), cn)
		}
		return n, n
	case *ir.FuncDef:
		n := c.g.NewNode(graph.TypeFuncDef)
		n.SetField("name", v.Name)
		n.SetField("async", v.Async)
		n.SetField("decorators", len(v.Decorators))
		for i, d := range v.Decorators {
			n.Attach(fmt.Sprintf("decorator%d", i), c.expr(d))
		}
		n.SetField("params", len(v.Params))
		for i, p := range v.Params {
			n.Attach(fmt.Sprintf("param%d", i), c.param(p))
		}
		n.Attach("returns", c.expr(v.Returns))
		c.attachChain(n, "body", v.Body)
		return n, n
	case *ir.ClassDef:
		n := c.g.NewNode(graph.TypeClassDef)
		n.SetField("name", v.Name)
		n.SetField("decorators", len(v.Decorators))
		for i, d := range v.Decorators {
			n.Attach(fmt.Sprintf("decorator%d", i), c.expr(d))
		}
		n.SetField("bases", len(v.Bases))
		for i, b := range v.Bases {
			n.Attach(fmt.Sprintf("base%d", i), c.expr(b))
		}
		c.attachChain(n, "body", v.Body)
		return n, n
	case *ir.Assign:
		n := c.g.NewNode(graph.TypeAssign)
		n.SetField("targets", len(v.Targets))
		for i, t := range v.Targets {
			n.Attach(fmt.Sprintf("target%d", i), c.expr(t))
		}
		n.Attach("value", c.expr(v.Value))
		return n, n
	case *ir.AnnAssign:
		n := c.g.NewNode(graph.TypeAnnAssign)
		n.Attach("target", c.expr(v.Target))
		n.Attach("annotation", c.expr(v.Annotation))
		n.Attach("value", c.expr(v.Value))
		return n, n
	case *ir.AugAssign:
		n := c.g.NewNode(graph.TypeAugAssign)
		n.SetField("op", v.Op)
		n.Attach("target", c.expr(v.Target))
		n.Attach("value", c.expr(v.Value))
		return n, n
	case *ir.ExprStmt:
		// A canonical call used as a statement becomes its dedicated
		// node directly in the chain, not an exprstmt wrapper.
		if call, ok := v.Value.(*ir.Call); ok {
			if n := c.specialized(call); n != nil {
				return n, n
			}
		}
		n := c.g.NewNode(graph.TypeExprStmt)
		n.Attach("value", c.expr(v.Value))
		return n, n
	case *ir.Pass:
		n := c.g.NewNode(graph.TypePass)
		return n, n
	case *ir.Return:
		n := c.g.NewNode(graph.TypeReturn)
		n.Attach("value", c.expr(v.Value))
		return n, n
	case *ir.Break:
		n := c.g.NewNode(graph.TypeBreak)
		return n, n
	case *ir.Continue:
		n := c.g.NewNode(graph.TypeContinue)
		return n, n
	case *ir.Import:
		n := c.g.NewNode(graph.TypeImport)
		n.SetField("from_import", v.FromImport)
		n.SetField("from", v.From)
		n.SetField("names", len(v.Names))
		for i, nm := range v.Names {
			n.SetField(fmt.Sprintf("name%d", i), nm.Name)
			if nm.As != "" {
				n.SetField(fmt.Sprintf("as%d", i), nm.As)
			}
		}
		return n, n
	case *ir.Try:
		n := c.g.NewNode(graph.TypeTry)
		c.attachChain(n, "body", v.Body)
		n.SetField("handlers", len(v.Handlers))
		for i, h := range v.Handlers {
			hn := c.g.NewNode(graph.TypeExcept)
			hn.SetField("name", h.Name)
			hn.Attach("type", c.expr(h.Type))
			c.attachChain(hn, "body", h.Body)
			n.Attach(fmt.Sprintf("handler%d", i), hn)
		}
		c.attachChain(n, "else", v.Else)
		c.attachChain(n, "finally", v.Finally)
		return n, n
	case *ir.With:
		n := c.g.NewNode(graph.TypeWith)
		n.SetField("async", v.Async)
		n.SetField("items", len(v.Items))
		for i, it := range v.Items {
			wn := c.g.NewNode(graph.TypeWithItem)
			wn.Attach("expr", c.expr(it.Expr))
			wn.Attach("as", c.expr(it.As))
			n.Attach(fmt.Sprintf("item%d", i), wn)
		}
		c.attachChain(n, "body", v.Body)
		return n, n
	case *ir.Assert:
		n := c.g.NewNode(graph.TypeAssert)
		n.Attach("cond", c.expr(v.Cond))
		n.Attach("msg", c.expr(v.Msg))
		return n, n
	case *ir.Raise:
		n := c.g.NewNode(graph.TypeRaise)
		n.Attach("exc", c.expr(v.Exc))
		n.Attach("cause", c.expr(v.Cause))
		return n, n
	case *ir.Del:
		n := c.g.NewNode(graph.TypeDel)
		n.SetField("targets", len(v.Targets))
		for i, t := range v.Targets {
			n.Attach(fmt.Sprintf("target%d", i), c.expr(t))
		}
		return n, n
	case *ir.Global:
		n := c.g.NewNode(graph.TypeGlobal)
		c.nameFields(n, v.Names)
		return n, n
	case *ir.Nonlocal:
		n := c.g.NewNode(graph.TypeNonlocal)
		c.nameFields(n, v.Names)
		return n, n
	case *ir.Empty:
		n := c.g.NewNode(graph.TypeEmpty)
		n.SetField("synthetic", v.Synthetic)
		return n, n
	}
	panic(fmt.Sprintf("render: unknown statement %T", s))
}

func (c *Compiler) nameFields(n *graph.Node, names []string) {
	n.SetField("count", len(names))
	for i, nm := range names {
		n.SetField(fmt.Sprintf("name%d", i), nm)
	}
}

func (c *Compiler) param(p *ir.Param) *graph.Node {
	n := c.g.NewNode(graph.TypeParam)
	n.SetField("name", p.Name)
	n.SetField("kind", string(p.Kind))
	n.Attach("annotation", c.expr(p.Annotation))
	n.Attach("default", c.expr(p.Default))
	return n
}

func (c *Compiler) pattern(p ir.Pattern) *graph.Node {
	n := c.g.NewNode(graph.TypePattern)
	switch v := p.(type) {
	case *ir.WildcardPattern:
		n.SetField("kind", "wildcard")
	case *ir.CapturePattern:
		n.SetField("kind", "capture")
		n.SetField("name", v.Name)
	case *ir.LiteralPattern:
		n.SetField("kind", "literal")
		if v.Value != nil {
			n.Attach("value", c.expr(v.Value))
		}
	default:
		panic(fmt.Sprintf("render: unknown pattern %T", p))
	}
	return n
}
