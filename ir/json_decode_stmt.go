package ir

import "fmt"

func decodeStmtShape(w *wire) (Node, error) {
	switch w.Kind {
	case "elif":
		cond, err := w.needExpr("cond")
		if err != nil {
			return nil, err
		}
		body, err := w.needBlock("body")
		if err != nil {
			return nil, err
		}
		return &Elif{Cond: cond, Body: body}, nil
	case "if":
		cond, err := w.needExpr("cond")
		if err != nil {
			return nil, err
		}
		body, err := w.needBlock("body")
		if err != nil {
			return nil, err
		}
		s := &If{Cond: cond, Body: body}
		for i, k := range w.Seqs["elifs"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			e, ok := n.(*Elif)
			if !ok {
				return nil, fmt.Errorf("%w: if.elifs[%d] holds %s", ErrDecode, i, k.Kind)
			}
			s.Elifs = append(s.Elifs, e)
		}
		if s.Else, err = w.block("else"); err != nil {
			return nil, err
		}
		return s, nil
	case "while":
		cond, err := w.needExpr("cond")
		if err != nil {
			return nil, err
		}
		body, err := w.needBlock("body")
		if err != nil {
			return nil, err
		}
		els, err := w.block("else")
		if err != nil {
			return nil, err
		}
		return &While{Cond: cond, Body: body, Else: els}, nil
	case "for":
		target, err := w.needExpr("target")
		if err != nil {
			return nil, err
		}
		iter, err := w.needExpr("iter")
		if err != nil {
			return nil, err
		}
		body, err := w.needBlock("body")
		if err != nil {
			return nil, err
		}
		els, err := w.block("else")
		if err != nil {
			return nil, err
		}
		return &For{Async: w.Flag, Target: target, Iter: iter, Body: body, Else: els}, nil
	case "case":
		s := &MatchCase{}
		if k, ok := w.Kids["pattern"]; ok {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			p, ok := n.(Pattern)
			if !ok {
				return nil, fmt.Errorf("%w: case.pattern holds %s", ErrDecode, k.Kind)
			}
			s.Pattern = p
		}
		var err error
		if s.Body, err = w.needBlock("body"); err != nil {
			return nil, err
		}
		return s, nil
	case "match":
		subject, err := w.needExpr("subject")
		if err != nil {
			return nil, err
		}
		s := &Match{Subject: subject}
		for i, k := range w.Seqs["cases"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			c, ok := n.(*MatchCase)
			if !ok {
				return nil, fmt.Errorf("%w: match.cases[%d] holds %s", ErrDecode, i, k.Kind)
			}
			s.Cases = append(s.Cases, c)
		}
		return s, nil
	case "funcdef":
		s := &FuncDef{Name: w.Text, Async: w.Flag}
		var err error
		if s.Decorators, err = w.exprs("decorators"); err != nil {
			return nil, err
		}
		if s.Params, err = w.params("params"); err != nil {
			return nil, err
		}
		if s.Returns, err = w.expr("returns"); err != nil {
			return nil, err
		}
		if s.Body, err = w.needBlock("body"); err != nil {
			return nil, err
		}
		return s, nil
	case "classdef":
		s := &ClassDef{Name: w.Text}
		var err error
		if s.Decorators, err = w.exprs("decorators"); err != nil {
			return nil, err
		}
		if s.Bases, err = w.exprs("bases"); err != nil {
			return nil, err
		}
		if s.Body, err = w.needBlock("body"); err != nil {
			return nil, err
		}
		return s, nil
	case "assign":
		targets, err := w.exprs("targets")
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("%w: assign without targets", ErrDecode)
		}
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &Assign{Targets: targets, Value: val}, nil
	case "annassign":
		target, err := w.needExpr("target")
		if err != nil {
			return nil, err
		}
		ann, err := w.needExpr("annotation")
		if err != nil {
			return nil, err
		}
		val, err := w.expr("value")
		if err != nil {
			return nil, err
		}
		return &AnnAssign{Target: target, Annotation: ann, Value: val}, nil
	case "augassign":
		target, err := w.needExpr("target")
		if err != nil {
			return nil, err
		}
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &AugAssign{Target: target, Op: w.Text, Value: val}, nil
	case "exprstmt":
		val, err := w.needExpr("value")
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Value: val}, nil
	case "pass":
		return &Pass{}, nil
	case "return":
		val, err := w.expr("value")
		if err != nil {
			return nil, err
		}
		return &Return{Value: val}, nil
	case "break":
		return &Break{}, nil
	case "continue":
		return &Continue{}, nil
	case "importname":
		return &ImportName{Name: w.Text, As: w.Text2}, nil
	case "import":
		s := &Import{FromImport: w.Flag, From: w.Text}
		for i, k := range w.Seqs["names"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			nm, ok := n.(*ImportName)
			if !ok {
				return nil, fmt.Errorf("%w: import.names[%d] holds %s", ErrDecode, i, k.Kind)
			}
			s.Names = append(s.Names, nm)
		}
		return s, nil
	case "except":
		s := &ExceptHandler{Name: w.Text}
		var err error
		if s.Type, err = w.expr("type"); err != nil {
			return nil, err
		}
		if s.Body, err = w.needBlock("body"); err != nil {
			return nil, err
		}
		return s, nil
	case "try":
		s := &Try{}
		var err error
		if s.Body, err = w.needBlock("body"); err != nil {
			return nil, err
		}
		for i, k := range w.Seqs["handlers"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			h, ok := n.(*ExceptHandler)
			if !ok {
				return nil, fmt.Errorf("%w: try.handlers[%d] holds %s", ErrDecode, i, k.Kind)
			}
			s.Handlers = append(s.Handlers, h)
		}
		if s.Else, err = w.block("else"); err != nil {
			return nil, err
		}
		if s.Finally, err = w.block("finally"); err != nil {
			return nil, err
		}
		return s, nil
	case "withitem":
		e, err := w.needExpr("expr")
		if err != nil {
			return nil, err
		}
		as, err := w.expr("as")
		if err != nil {
			return nil, err
		}
		return &WithItem{Expr: e, As: as}, nil
	case "with":
		s := &With{Async: w.Flag}
		for i, k := range w.Seqs["items"] {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			it, ok := n.(*WithItem)
			if !ok {
				return nil, fmt.Errorf("%w: with.items[%d] holds %s", ErrDecode, i, k.Kind)
			}
			s.Items = append(s.Items, it)
		}
		var err error
		if s.Body, err = w.needBlock("body"); err != nil {
			return nil, err
		}
		return s, nil
	case "assert":
		cond, err := w.needExpr("cond")
		if err != nil {
			return nil, err
		}
		msg, err := w.expr("msg")
		if err != nil {
			return nil, err
		}
		return &Assert{Cond: cond, Msg: msg}, nil
	case "raise":
		exc, err := w.expr("exc")
		if err != nil {
			return nil, err
		}
		cause, err := w.expr("cause")
		if err != nil {
			return nil, err
		}
		return &Raise{Exc: exc, Cause: cause}, nil
	case "del":
		targets, err := w.exprs("targets")
		if err != nil {
			return nil, err
		}
		return &Del{Targets: targets}, nil
	case "global":
		return &Global{Names: w.Strs}, nil
	case "nonlocal":
		return &Nonlocal{Names: w.Strs}, nil
	case "empty":
		return &Empty{Synthetic: w.Flag}, nil
	case "wildcard":
		return &WildcardPattern{}, nil
	case "capture":
		return &CapturePattern{Name: w.Text}, nil
	case "litpattern":
		s := &LiteralPattern{}
		if k, ok := w.Kids["value"]; ok {
			n, err := decodeNode(k)
			if err != nil {
				return nil, err
			}
			l, ok := n.(*Literal)
			if !ok {
				return nil, fmt.Errorf("%w: litpattern.value holds %s", ErrDecode, k.Kind)
			}
			s.Value = l
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown node kind %q", ErrDecode, w.Kind)
}
