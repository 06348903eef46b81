package ir

// LiteralKind discriminates Literal values.
type LiteralKind string

const (
	LitNumber LiteralKind = "number"
	LitString LiteralKind = "string"
	LitBool   LiteralKind = "bool"
	LitNone   LiteralKind = "none"
)

// Name is an identifier reference.
type Name struct {
	Meta
	ID string
}

// Literal is a number, string, bool or none literal. Numbers keep
// their source text so 0x10, 1_000 and 1e3 regenerate exactly.
type Literal struct {
	Meta
	Kind LiteralKind
	Num  string
	Str  string
	Bool bool
}

// BinOp is a binary operation. Op is the operator lexeme as written
// in source; the engine never interprets it.
type BinOp struct {
	Meta
	Op    string
	Left  Expr
	Right Expr
}

type UnaryOp struct {
	Meta
	Op      string
	Operand Expr
}

// BoolOp is an and/or chain with two or more operands.
type BoolOp struct {
	Meta
	Op     string
	Values []Expr
}

// Compare is a comparison chain: Left Ops[0] Comparators[0] Ops[1] ...
type Compare struct {
	Meta
	Left        Expr
	Ops         []string
	Comparators []Expr
}

type Lambda struct {
	Meta
	Params []*Param
	Body   Expr
}

// IfExp is a conditional expression: Body if Cond else Else.
type IfExp struct {
	Meta
	Body Expr
	Cond Expr
	Else Expr
}

// Kwarg is a keyword argument in a call.
type Kwarg struct {
	Meta
	Name  string
	Value Expr
}

type Call struct {
	Meta
	Func   Expr
	Args   []Expr
	Kwargs []*Kwarg
}

type Tuple struct {
	Meta
	Elts []Expr
}

type List struct {
	Meta
	Elts []Expr
}

type Set struct {
	Meta
	Elts []Expr
}

// Dict pairs Keys[i] with Values[i].
type Dict struct {
	Meta
	Keys   []Expr
	Values []Expr
}

type Attribute struct {
	Meta
	Value Expr
	Attr  string
}

type Subscript struct {
	Meta
	Value Expr
	Index Expr
}

// Slice is a subscript index of the form Lower:Upper:Step, any part
// optional.
type Slice struct {
	Meta
	Lower Expr
	Upper Expr
	Step  Expr
}

// CompKind discriminates comprehension flavors.
type CompKind string

const (
	CompList CompKind = "list"
	CompSet  CompKind = "set"
	CompDict CompKind = "dict"
	CompGen  CompKind = "generator"
)

// CompClause is one "for target in iter [if cond]..." clause.
type CompClause struct {
	Meta
	Target Expr
	Iter   Expr
	Ifs    []Expr
	Async  bool
}

// Comprehension covers list/set/dict/generator comprehensions. Dict
// comprehensions use Key and Value; the others use Elt.
type Comprehension struct {
	Meta
	Kind    CompKind
	Elt     Expr
	Key     Expr
	Value   Expr
	Clauses []*CompClause
}

// Group is a parenthesized expression, kept so grouping survives the
// round trip.
type Group struct {
	Meta
	Value Expr
}

// FStringPart is either a literal run (Expr nil) or an embedded
// expression with an optional format spec.
type FStringPart struct {
	Meta
	Literal string
	Expr    Expr
	Format  string
}

type FString struct {
	Meta
	Parts []*FStringPart
}

// Named is a walrus expression: Target := Value.
type Named struct {
	Meta
	Target Expr
	Value  Expr
}

// Yield covers yield and yield-from; From distinguishes them.
type Yield struct {
	Meta
	From  bool
	Value Expr
}

type Await struct {
	Meta
	Value Expr
}

func (*Name) exprNode()          {}
func (*Literal) exprNode()       {}
func (*BinOp) exprNode()         {}
func (*UnaryOp) exprNode()       {}
func (*BoolOp) exprNode()        {}
func (*Compare) exprNode()       {}
func (*Lambda) exprNode()        {}
func (*IfExp) exprNode()         {}
func (*Call) exprNode()          {}
func (*Tuple) exprNode()         {}
func (*List) exprNode()          {}
func (*Set) exprNode()           {}
func (*Dict) exprNode()          {}
func (*Attribute) exprNode()     {}
func (*Subscript) exprNode()     {}
func (*Slice) exprNode()         {}
func (*Comprehension) exprNode() {}
func (*Group) exprNode()         {}
func (*FString) exprNode()       {}
func (*Named) exprNode()         {}
func (*Yield) exprNode()         {}
func (*Await) exprNode()         {}
