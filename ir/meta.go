package ir

// TriviaKind classifies non-semantic source material.
type TriviaKind string

const (
	TriviaComment    TriviaKind = "comment"
	TriviaBlank      TriviaKind = "blank"
	TriviaWhitespace TriviaKind = "whitespace"
)

// Trivia is a piece of source text that carries no meaning but must
// survive round-tripping: a comment, a blank line, raw whitespace.
type Trivia struct {
	Kind TriviaKind `json:"kind"`
	Text string     `json:"text"`
}

// Meta is the per-node metadata every IR node carries. ID is unique
// within one tree; Span covers the spans of all child nodes.
type Meta struct {
	ID       int
	Span     Span
	Tokens   TokenRange
	Leading  []Trivia
	Trailing []Trivia
}

// NodeMeta implements Node for every type embedding Meta.
func (m *Meta) NodeMeta() *Meta { return m }

// Node is implemented by all IR nodes.
type Node interface {
	NodeMeta() *Meta
}

// Expr is the closed set of expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is the closed set of match-arm patterns, deliberately a
// small subset of expression shapes.
type Pattern interface {
	Node
	patternNode()
}
