package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/twinedit/twinedit/ir"
)

type colors struct {
	kw   func(string, ...any) string
	name func(string, ...any) string
	num  func(string, ...any) string
	str  func(string, ...any) string
	lit  func(string, ...any) string
	meta func(string, ...any) string
}

func newColors() *colors {
	return &colors{
		kw:   color.New(color.FgMagenta).SprintfFunc(),
		name: color.RGB(128, 168, 196).SprintfFunc(),
		num:  color.RGB(128, 216, 236).SprintfFunc(),
		str:  color.RGB(8, 196, 16).SprintfFunc(),
		lit:  color.CyanString,
		meta: color.RGB(96, 96, 96).SprintfFunc(),
	}
}

func plain(s string, args ...any) string {
	return fmt.Sprintf(s, args...)
}

type dumper struct {
	w       io.Writer
	colors  *colors
	showIDs bool
}

func (d *dumper) paint(pick func(*colors) func(string, ...any) string) func(string, ...any) string {
	if d.colors == nil {
		return plain
	}
	return pick(d.colors)
}

func (d *dumper) node(n ir.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(d.w, "%s%s", indent, d.label(n))
	if d.showIDs {
		fmt.Fprintf(d.w, " %s", d.paint(func(c *colors) func(string, ...any) string { return c.meta })("#%d", n.NodeMeta().ID))
	}
	fmt.Fprintln(d.w)
	for _, child := range ir.Children(n) {
		d.node(child, depth+1)
	}
}

func (d *dumper) label(n ir.Node) string {
	kw := d.paint(func(c *colors) func(string, ...any) string { return c.kw })
	name := d.paint(func(c *colors) func(string, ...any) string { return c.name })
	num := d.paint(func(c *colors) func(string, ...any) string { return c.num })
	str := d.paint(func(c *colors) func(string, ...any) string { return c.str })
	lit := d.paint(func(c *colors) func(string, ...any) string { return c.lit })

	switch v := n.(type) {
	case *ir.Name:
		return name("%s", v.ID)
	case *ir.Literal:
		switch v.Kind {
		case ir.LitNumber:
			return num("%s", v.Num)
		case ir.LitString:
			return str("%q", v.Str)
		case ir.LitBool:
			return lit("%v", v.Bool)
		default:
			return lit("None")
		}
	case *ir.BinOp:
		return kw("binop") + " " + v.Op
	case *ir.UnaryOp:
		return kw("unaryop") + " " + v.Op
	case *ir.BoolOp:
		return kw("boolop") + " " + v.Op
	case *ir.Compare:
		return kw("compare") + " " + strings.Join(v.Ops, " ")
	case *ir.AugAssign:
		return kw("augassign") + " " + v.Op
	case *ir.FuncDef:
		label := kw("def") + " " + name("%s", v.Name)
		if v.Async {
			label = kw("async") + " " + label
		}
		return label
	case *ir.ClassDef:
		return kw("class") + " " + name("%s", v.Name)
	case *ir.Import:
		if v.FromImport {
			return kw("from") + " " + name("%s", v.From) + " " + kw("import") + " " + importNames(v.Names)
		}
		return kw("import") + " " + importNames(v.Names)
	case *ir.Attribute:
		return kw("attribute") + " ." + v.Attr
	case *ir.Param:
		label := name("%s", v.Name)
		switch v.Kind {
		case ir.ParamStar:
			label = "*" + label
		case ir.ParamDoubleStar:
			label = "**" + label
		}
		return kw("param") + " " + label
	case *ir.Kwarg:
		return kw("kwarg") + " " + name("%s", v.Name)
	case *ir.Comprehension:
		return kw("comprehension") + " " + string(v.Kind)
	case *ir.FStringPart:
		if v.Expr == nil {
			return kw("fstringpart") + " " + str("%q", v.Literal)
		}
		return kw("fstringpart")
	case *ir.Global:
		return kw("global") + " " + strings.Join(v.Names, ", ")
	case *ir.Nonlocal:
		return kw("nonlocal") + " " + strings.Join(v.Names, ", ")
	case *ir.ExceptHandler:
		if v.Name != "" {
			return kw("except") + " " + kw("as") + " " + name("%s", v.Name)
		}
		return kw("except")
	case *ir.CapturePattern:
		return kw("capture") + " " + name("%s", v.Name)
	case *ir.WildcardPattern:
		return kw("wildcard")
	case *ir.Block:
		return kw("block")
	}
	return kw("%s", kindName(n))
}

func importNames(names []*ir.ImportName) string {
	parts := make([]string, 0, len(names))
	for _, in := range names {
		if in.As != "" {
			parts = append(parts, in.Name+" as "+in.As)
		} else {
			parts = append(parts, in.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// kindName strips the package path and pointer marker off a node's
// dynamic type.
func kindName(n ir.Node) string {
	s := fmt.Sprintf("%T", n)
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return strings.ToLower(s)
}
