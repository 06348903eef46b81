package ir

// Block is an ordered statement sequence at one indent level.
type Block struct {
	Meta
	Indent int
	Stmts  []Stmt
}

// Program is the root block plus rendering settings. Dirty signals
// generator output not yet written back to the text buffer.
type Program struct {
	Body        *Block
	IndentWidth int
	Dirty       bool
}

// Elif is one "elif cond:" arm of an If.
type Elif struct {
	Meta
	Cond Expr
	Body *Block
}

// If is a complete if/elif*/else chain, merged into one node.
type If struct {
	Meta
	Cond  Expr
	Body  *Block
	Elifs []*Elif
	Else  *Block
}

type While struct {
	Meta
	Cond Expr
	Body *Block
	Else *Block
}

type For struct {
	Meta
	Async  bool
	Target Expr
	Iter   Expr
	Body   *Block
	Else   *Block
}

// MatchCase is one "case pattern:" arm.
type MatchCase struct {
	Meta
	Pattern Pattern
	Body    *Block
}

type Match struct {
	Meta
	Subject Expr
	Cases   []*MatchCase
}

// ParamKind distinguishes ordinary parameters from *args / **kwargs.
type ParamKind string

const (
	ParamNormal     ParamKind = "normal"
	ParamStar       ParamKind = "star"
	ParamDoubleStar ParamKind = "doublestar"
)

type Param struct {
	Meta
	Name       string
	Kind       ParamKind
	Annotation Expr
	Default    Expr
}

type FuncDef struct {
	Meta
	Async      bool
	Name       string
	Params     []*Param
	Decorators []Expr
	Returns    Expr
	Body       *Block
}

type ClassDef struct {
	Meta
	Name       string
	Bases      []Expr
	Decorators []Expr
	Body       *Block
}

// Assign covers simple and multi-target assignment: a = b = value.
type Assign struct {
	Meta
	Targets []Expr
	Value   Expr
}

// AnnAssign is an annotated assignment; Value may be nil.
type AnnAssign struct {
	Meta
	Target     Expr
	Annotation Expr
	Value      Expr
}

type AugAssign struct {
	Meta
	Target Expr
	Op     string
	Value  Expr
}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	Meta
	Value Expr
}

type Pass struct{ Meta }

type Return struct {
	Meta
	Value Expr
}

type Break struct{ Meta }

type Continue struct{ Meta }

// ImportName is one imported name with an optional alias.
type ImportName struct {
	Meta
	Name string
	As   string
}

// Import covers both "import a, b" and "from m import a, b";
// FromImport selects the latter, with From the module.
type Import struct {
	Meta
	FromImport bool
	From       string
	Names      []*ImportName
}

// ExceptHandler is one except arm; Type and Name are optional.
type ExceptHandler struct {
	Meta
	Type Expr
	Name string
	Body *Block
}

type Try struct {
	Meta
	Body     *Block
	Handlers []*ExceptHandler
	Else     *Block
	Finally  *Block
}

// WithItem is one context manager with an optional binding.
type WithItem struct {
	Meta
	Expr Expr
	As   Expr
}

type With struct {
	Meta
	Async bool
	Items []*WithItem
	Body  *Block
}

type Assert struct {
	Meta
	Cond Expr
	Msg  Expr
}

type Raise struct {
	Meta
	Exc   Expr
	Cause Expr
}

type Del struct {
	Meta
	Targets []Expr
}

type Global struct {
	Meta
	Names []string
}

type Nonlocal struct {
	Meta
	Names []string
}

// Empty is a blank-line placeholder. Synthetic marks generator-inserted
// blanks to distinguish them from blank lines present in source.
type Empty struct {
	Meta
	Synthetic bool
}

func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*For) stmtNode()       {}
func (*Match) stmtNode()     {}
func (*FuncDef) stmtNode()   {}
func (*ClassDef) stmtNode()  {}
func (*Assign) stmtNode()    {}
func (*AnnAssign) stmtNode() {}
func (*AugAssign) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*Pass) stmtNode()      {}
func (*Return) stmtNode()    {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*Import) stmtNode()    {}
func (*Try) stmtNode()       {}
func (*With) stmtNode()      {}
func (*Assert) stmtNode()    {}
func (*Raise) stmtNode()     {}
func (*Del) stmtNode()       {}
func (*Global) stmtNode()    {}
func (*Nonlocal) stmtNode()  {}
func (*Empty) stmtNode()     {}

// WildcardPattern matches anything: case _.
type WildcardPattern struct{ Meta }

// CapturePattern binds the subject to a name.
type CapturePattern struct {
	Meta
	Name string
}

// LiteralPattern matches a literal value.
type LiteralPattern struct {
	Meta
	Value *Literal
}

func (*WildcardPattern) patternNode() {}
func (*CapturePattern) patternNode()  {}
func (*LiteralPattern) patternNode()  {}
