package compile

import (
	"fmt"

	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ir"
)

// stmt compiles one chain node into a statement and returns the node
// the walk resumes at. Only if nodes consume more than themselves:
// their elif/else continuations merge into the one If statement.
func (c *Compiler) stmt(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	// A dedicated pattern node in chain position is a canonical call
	// used as a statement.
	if e, ok := c.table.ByNode(n.Type()); ok {
		call, err := c.expand(n, e)
		if err != nil {
			return nil, nil, err
		}
		return &ir.ExprStmt{Meta: c.meta(), Value: call}, n.Next(), nil
	}
	switch n.Type() {
	case graph.TypeIf:
		return c.ifChain(n, indent)
	case graph.TypeWhile:
		cond, err := c.need(n, "cond")
		if err != nil {
			return nil, nil, err
		}
		body, err := c.block(n, "body", indent+1)
		if err != nil {
			return nil, nil, err
		}
		els, err := c.optBlock(n, "else", indent+1)
		if err != nil {
			return nil, nil, err
		}
		return &ir.While{Meta: c.meta(), Cond: cond, Body: body, Else: els}, n.Next(), nil
	case graph.TypeFor:
		target, err := c.need(n, "target")
		if err != nil {
			return nil, nil, err
		}
		iter, err := c.need(n, "iter")
		if err != nil {
			return nil, nil, err
		}
		body, err := c.block(n, "body", indent+1)
		if err != nil {
			return nil, nil, err
		}
		els, err := c.optBlock(n, "else", indent+1)
		if err != nil {
			return nil, nil, err
		}
		s := &ir.For{Meta: c.meta(), Async: n.FieldBool("async"), Target: target, Iter: iter, Body: body, Else: els}
		return s, n.Next(), nil
	case graph.TypeMatch:
		return c.match(n, indent)
	case graph.TypeFuncDef:
		return c.funcDef(n, indent)
	case graph.TypeClassDef:
		return c.classDef(n, indent)
	case graph.TypeAssign:
		count := n.FieldInt("targets")
		if count == 0 {
			return nil, nil, errAt(KindBadShape, n, "assignment without targets")
		}
		s := &ir.Assign{Meta: c.meta()}
		for i := 0; i < count; i++ {
			t, err := c.need(n, fmt.Sprintf("target%d", i))
			if err != nil {
				return nil, nil, err
			}
			s.Targets = append(s.Targets, t)
		}
		var err error
		if s.Value, err = c.need(n, "value"); err != nil {
			return nil, nil, err
		}
		return s, n.Next(), nil
	case graph.TypeAnnAssign:
		target, err := c.need(n, "target")
		if err != nil {
			return nil, nil, err
		}
		ann, err := c.need(n, "annotation")
		if err != nil {
			return nil, nil, err
		}
		val, err := c.opt(n, "value")
		if err != nil {
			return nil, nil, err
		}
		return &ir.AnnAssign{Meta: c.meta(), Target: target, Annotation: ann, Value: val}, n.Next(), nil
	case graph.TypeAugAssign:
		target, err := c.need(n, "target")
		if err != nil {
			return nil, nil, err
		}
		val, err := c.need(n, "value")
		if err != nil {
			return nil, nil, err
		}
		return &ir.AugAssign{Meta: c.meta(), Target: target, Op: n.FieldString("op"), Value: val}, n.Next(), nil
	case graph.TypeExprStmt:
		val, err := c.need(n, "value")
		if err != nil {
			return nil, nil, err
		}
		return &ir.ExprStmt{Meta: c.meta(), Value: val}, n.Next(), nil
	case graph.TypePass:
		return &ir.Pass{Meta: c.meta()}, n.Next(), nil
	case graph.TypeReturn:
		val, err := c.opt(n, "value")
		if err != nil {
			return nil, nil, err
		}
		return &ir.Return{Meta: c.meta(), Value: val}, n.Next(), nil
	case graph.TypeBreak:
		return &ir.Break{Meta: c.meta()}, n.Next(), nil
	case graph.TypeContinue:
		return &ir.Continue{Meta: c.meta()}, n.Next(), nil
	case graph.TypeImport:
		s := &ir.Import{
			Meta:       c.meta(),
			FromImport: n.FieldBool("from_import"),
			From:       n.FieldString("from"),
		}
		count := n.FieldInt("names")
		for i := 0; i < count; i++ {
			s.Names = append(s.Names, &ir.ImportName{
				Meta: c.meta(),
				Name: n.FieldString(fmt.Sprintf("name%d", i)),
				As:   n.FieldString(fmt.Sprintf("as%d", i)),
			})
		}
		if len(s.Names) == 0 {
			return nil, nil, errAt(KindBadShape, n, "import without names")
		}
		return s, n.Next(), nil
	case graph.TypeTry:
		return c.try(n, indent)
	case graph.TypeWith:
		return c.with(n, indent)
	case graph.TypeAssert:
		cond, err := c.need(n, "cond")
		if err != nil {
			return nil, nil, err
		}
		msg, err := c.opt(n, "msg")
		if err != nil {
			return nil, nil, err
		}
		return &ir.Assert{Meta: c.meta(), Cond: cond, Msg: msg}, n.Next(), nil
	case graph.TypeRaise:
		exc, err := c.opt(n, "exc")
		if err != nil {
			return nil, nil, err
		}
		cause, err := c.opt(n, "cause")
		if err != nil {
			return nil, nil, err
		}
		return &ir.Raise{Meta: c.meta(), Exc: exc, Cause: cause}, n.Next(), nil
	case graph.TypeDel:
		s := &ir.Del{Meta: c.meta()}
		count := n.FieldInt("targets")
		for i := 0; i < count; i++ {
			t, err := c.need(n, fmt.Sprintf("target%d", i))
			if err != nil {
				return nil, nil, err
			}
			s.Targets = append(s.Targets, t)
		}
		if len(s.Targets) == 0 {
			return nil, nil, errAt(KindBadShape, n, "del without targets")
		}
		return s, n.Next(), nil
	case graph.TypeGlobal:
		return &ir.Global{Meta: c.meta(), Names: nameList(n)}, n.Next(), nil
	case graph.TypeNonlocal:
		return &ir.Nonlocal{Meta: c.meta(), Names: nameList(n)}, n.Next(), nil
	case graph.TypeEmpty:
		return &ir.Empty{Meta: c.meta(), Synthetic: n.FieldBool("synthetic")}, n.Next(), nil
	}
	return nil, nil, errAt(KindBadShape, n, "%s node in a statement chain", n.Type())
}

func nameList(n *graph.Node) []string {
	count := n.FieldInt("count")
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		names = append(names, n.FieldString(fmt.Sprintf("name%d", i)))
	}
	return names
}

// ifChain merges an if node and its trailing elif/else continuations
// into one If statement and advances past everything it consumed.
func (c *Compiler) ifChain(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	cond, err := c.need(n, "cond")
	if err != nil {
		return nil, nil, err
	}
	body, err := c.block(n, "body", indent+1)
	if err != nil {
		return nil, nil, err
	}
	s := &ir.If{Meta: c.meta(), Cond: cond, Body: body}

	cur := n.Next()
	for cur != nil && cur.Type() == graph.TypeElif {
		econd, err := c.need(cur, "cond")
		if err != nil {
			return nil, nil, err
		}
		ebody, err := c.block(cur, "body", indent+1)
		if err != nil {
			return nil, nil, err
		}
		s.Elifs = append(s.Elifs, &ir.Elif{Meta: c.meta(), Cond: econd, Body: ebody})
		cur = cur.Next()
	}
	if cur != nil && cur.Type() == graph.TypeElse {
		ebody, err := c.block(cur, "body", indent+1)
		if err != nil {
			return nil, nil, err
		}
		s.Else = ebody
		cur = cur.Next()
	}
	return s, cur, nil
}

func (c *Compiler) match(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	subject, err := c.need(n, "subject")
	if err != nil {
		return nil, nil, err
	}
	s := &ir.Match{Meta: c.meta(), Subject: subject}
	count := n.FieldInt("cases")
	if count == 0 {
		return nil, nil, errAt(KindEmptyMatch, n, "match with no cases")
	}
	for i := 0; i < count; i++ {
		cn := n.Input(fmt.Sprintf("case%d", i))
		if cn == nil {
			return nil, nil, errAt(KindEmptyMatch, n, "case slot %d is empty", i)
		}
		if cn.Type() != graph.TypeCase {
			return nil, nil, errAt(KindBadShape, cn, "%s node in a case slot", cn.Type())
		}
		mc := &ir.MatchCase{Meta: c.meta()}
		if pn := cn.Input("pattern"); pn != nil {
			p, err := c.pattern(pn)
			if err != nil {
				return nil, nil, err
			}
			mc.Pattern = p
		}
		if mc.Body, err = c.block(cn, "body", indent+1); err != nil {
			return nil, nil, err
		}
		s.Cases = append(s.Cases, mc)
	}
	return s, n.Next(), nil
}

func (c *Compiler) funcDef(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	s := &ir.FuncDef{
		Meta:  c.meta(),
		Name:  n.FieldString("name"),
		Async: n.FieldBool("async"),
	}
	if s.Name == "" {
		return nil, nil, errAt(KindBadShape, n, "function without a name")
	}
	var err error
	if s.Decorators, err = c.exprList(n, "decorators", "decorator"); err != nil {
		return nil, nil, err
	}
	count := n.FieldInt("params")
	for i := 0; i < count; i++ {
		pn := n.Input(fmt.Sprintf("param%d", i))
		if pn == nil {
			return nil, nil, errAt(KindBadShape, n, "param slot %d is empty", i)
		}
		p, err := c.param(pn)
		if err != nil {
			return nil, nil, err
		}
		s.Params = append(s.Params, p)
	}
	if s.Returns, err = c.opt(n, "returns"); err != nil {
		return nil, nil, err
	}
	if s.Body, err = c.block(n, "body", indent+1); err != nil {
		return nil, nil, err
	}
	return s, n.Next(), nil
}

func (c *Compiler) classDef(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	s := &ir.ClassDef{Meta: c.meta(), Name: n.FieldString("name")}
	if s.Name == "" {
		return nil, nil, errAt(KindBadShape, n, "class without a name")
	}
	var err error
	if s.Decorators, err = c.exprList(n, "decorators", "decorator"); err != nil {
		return nil, nil, err
	}
	if s.Bases, err = c.exprList(n, "bases", "base"); err != nil {
		return nil, nil, err
	}
	if s.Body, err = c.block(n, "body", indent+1); err != nil {
		return nil, nil, err
	}
	return s, n.Next(), nil
}

func (c *Compiler) try(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	s := &ir.Try{Meta: c.meta()}
	var err error
	if s.Body, err = c.block(n, "body", indent+1); err != nil {
		return nil, nil, err
	}
	count := n.FieldInt("handlers")
	for i := 0; i < count; i++ {
		hn := n.Input(fmt.Sprintf("handler%d", i))
		if hn == nil {
			return nil, nil, errAt(KindBadShape, n, "handler slot %d is empty", i)
		}
		if hn.Type() != graph.TypeExcept {
			return nil, nil, errAt(KindBadShape, hn, "%s node in a handler slot", hn.Type())
		}
		h := &ir.ExceptHandler{Meta: c.meta(), Name: hn.FieldString("name")}
		if h.Type, err = c.opt(hn, "type"); err != nil {
			return nil, nil, err
		}
		if h.Body, err = c.block(hn, "body", indent+1); err != nil {
			return nil, nil, err
		}
		s.Handlers = append(s.Handlers, h)
	}
	if s.Else, err = c.optBlock(n, "else", indent+1); err != nil {
		return nil, nil, err
	}
	if s.Finally, err = c.optBlock(n, "finally", indent+1); err != nil {
		return nil, nil, err
	}
	if len(s.Handlers) == 0 && s.Finally == nil {
		return nil, nil, errAt(KindBadShape, n, "try without handlers or finally")
	}
	return s, n.Next(), nil
}

func (c *Compiler) with(n *graph.Node, indent int) (ir.Stmt, *graph.Node, error) {
	s := &ir.With{Meta: c.meta(), Async: n.FieldBool("async")}
	count := n.FieldInt("items")
	if count == 0 {
		return nil, nil, errAt(KindBadShape, n, "with without context items")
	}
	var err error
	for i := 0; i < count; i++ {
		wn := n.Input(fmt.Sprintf("item%d", i))
		if wn == nil {
			return nil, nil, errAt(KindBadShape, n, "item slot %d is empty", i)
		}
		it := &ir.WithItem{Meta: c.meta()}
		if it.Expr, err = c.need(wn, "expr"); err != nil {
			return nil, nil, err
		}
		if it.As, err = c.opt(wn, "as"); err != nil {
			return nil, nil, err
		}
		s.Items = append(s.Items, it)
	}
	if s.Body, err = c.block(n, "body", indent+1); err != nil {
		return nil, nil, err
	}
	return s, n.Next(), nil
}

func (c *Compiler) param(pn *graph.Node) (*ir.Param, error) {
	if pn.Type() != graph.TypeParam {
		return nil, errAt(KindBadShape, pn, "%s node in a param slot", pn.Type())
	}
	p := &ir.Param{
		Meta: c.meta(),
		Name: pn.FieldString("name"),
		Kind: ir.ParamKind(pn.FieldString("kind")),
	}
	if p.Name == "" {
		return nil, errAt(KindBadShape, pn, "parameter without a name")
	}
	if p.Kind == "" {
		p.Kind = ir.ParamNormal
	}
	var err error
	if p.Annotation, err = c.opt(pn, "annotation"); err != nil {
		return nil, err
	}
	if p.Default, err = c.opt(pn, "default"); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Compiler) pattern(pn *graph.Node) (ir.Pattern, error) {
	if pn.Type() != graph.TypePattern {
		return nil, errAt(KindBadShape, pn, "%s node in a pattern slot", pn.Type())
	}
	switch kind := pn.FieldString("kind"); kind {
	case "wildcard":
		return &ir.WildcardPattern{Meta: c.meta()}, nil
	case "capture":
		name := pn.FieldString("name")
		if name == "" {
			return nil, errAt(KindBadShape, pn, "capture pattern without a name")
		}
		return &ir.CapturePattern{Meta: c.meta(), Name: name}, nil
	case "literal":
		vn := pn.Input("value")
		if vn == nil {
			return nil, errAt(KindBadShape, pn, "literal pattern without a value")
		}
		e, err := c.expr(vn)
		if err != nil {
			return nil, err
		}
		lit, ok := e.(*ir.Literal)
		if !ok {
			return nil, errAt(KindBadShape, vn, "pattern value must be a literal")
		}
		return &ir.LiteralPattern{Meta: c.meta(), Value: lit}, nil
	default:
		return nil, errAt(KindBadShape, pn, "unknown pattern kind %q", kind)
	}
}
