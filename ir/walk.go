package ir

// Children returns the direct child nodes of n in source order.
// Helper nodes (params, clauses, handlers, blocks) are included so a
// walk visits every Meta in the tree.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addExprs := func(es []Expr) {
		for _, e := range es {
			if e != nil {
				out = append(out, e)
			}
		}
	}
	addBlock := func(b *Block) {
		if b != nil {
			out = append(out, b)
		}
	}

	switch v := n.(type) {
	case *Block:
		for _, s := range v.Stmts {
			out = append(out, s)
		}
	case *Name, *Literal, *Pass, *Break, *Continue, *Global, *Nonlocal, *Empty,
		*WildcardPattern, *CapturePattern, *ImportName:
	case *LiteralPattern:
		if v.Value != nil {
			out = append(out, v.Value)
		}
	case *BinOp:
		add(v.Left, v.Right)
	case *UnaryOp:
		add(v.Operand)
	case *BoolOp:
		addExprs(v.Values)
	case *Compare:
		add(v.Left)
		addExprs(v.Comparators)
	case *Lambda:
		for _, p := range v.Params {
			out = append(out, p)
		}
		add(v.Body)
	case *IfExp:
		add(v.Body, v.Cond, v.Else)
	case *Kwarg:
		add(v.Value)
	case *Call:
		add(v.Func)
		addExprs(v.Args)
		for _, kw := range v.Kwargs {
			out = append(out, kw)
		}
	case *Tuple:
		addExprs(v.Elts)
	case *List:
		addExprs(v.Elts)
	case *Set:
		addExprs(v.Elts)
	case *Dict:
		for i := range v.Keys {
			add(v.Keys[i], v.Values[i])
		}
	case *Attribute:
		add(v.Value)
	case *Subscript:
		add(v.Value, v.Index)
	case *Slice:
		add(v.Lower, v.Upper, v.Step)
	case *CompClause:
		add(v.Target, v.Iter)
		addExprs(v.Ifs)
	case *Comprehension:
		add(v.Elt, v.Key, v.Value)
		for _, cl := range v.Clauses {
			out = append(out, cl)
		}
	case *Group:
		add(v.Value)
	case *FStringPart:
		add(v.Expr)
	case *FString:
		for _, p := range v.Parts {
			out = append(out, p)
		}
	case *Named:
		add(v.Target, v.Value)
	case *Yield:
		add(v.Value)
	case *Await:
		add(v.Value)
	case *Param:
		add(v.Annotation, v.Default)
	case *Elif:
		add(v.Cond)
		addBlock(v.Body)
	case *If:
		add(v.Cond)
		addBlock(v.Body)
		for _, e := range v.Elifs {
			out = append(out, e)
		}
		addBlock(v.Else)
	case *While:
		add(v.Cond)
		addBlock(v.Body)
		addBlock(v.Else)
	case *For:
		add(v.Target, v.Iter)
		addBlock(v.Body)
		addBlock(v.Else)
	case *MatchCase:
		if v.Pattern != nil {
			out = append(out, v.Pattern)
		}
		addBlock(v.Body)
	case *Match:
		add(v.Subject)
		for _, c := range v.Cases {
			out = append(out, c)
		}
	case *FuncDef:
		addExprs(v.Decorators)
		for _, p := range v.Params {
			out = append(out, p)
		}
		add(v.Returns)
		addBlock(v.Body)
	case *ClassDef:
		addExprs(v.Decorators)
		addExprs(v.Bases)
		addBlock(v.Body)
	case *Assign:
		addExprs(v.Targets)
		add(v.Value)
	case *AnnAssign:
		add(v.Target, v.Annotation, v.Value)
	case *AugAssign:
		add(v.Target, v.Value)
	case *ExprStmt:
		add(v.Value)
	case *Return:
		add(v.Value)
	case *Import:
		for _, nm := range v.Names {
			out = append(out, nm)
		}
	case *ExceptHandler:
		add(v.Type)
		addBlock(v.Body)
	case *Try:
		addBlock(v.Body)
		for _, h := range v.Handlers {
			out = append(out, h)
		}
		addBlock(v.Else)
		addBlock(v.Finally)
	case *WithItem:
		add(v.Expr, v.As)
	case *With:
		for _, it := range v.Items {
			out = append(out, it)
		}
		addBlock(v.Body)
	case *Assert:
		add(v.Cond, v.Msg)
	case *Raise:
		add(v.Exc, v.Cause)
	case *Del:
		addExprs(v.Targets)
	}
	return out
}

// Walk visits n and all nodes below it, pre-order. The walk does not
// descend below a node for which f returns false.
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, f)
	}
}

// WalkProgram walks every node of a program.
func WalkProgram(p *Program, f func(Node) bool) {
	if p == nil || p.Body == nil {
		return
	}
	Walk(p.Body, f)
}

// MaxID returns the largest node identity appearing in the program,
// or 0 for an empty tree.
func MaxID(p *Program) int {
	maxID := 0
	WalkProgram(p, func(n Node) bool {
		if id := n.NodeMeta().ID; id > maxID {
			maxID = id
		}
		return true
	})
	return maxID
}
