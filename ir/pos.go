package ir

import "fmt"

// Pos is a point in source text. Line is 1-based, Col is a 0-based
// column, Off an absolute byte offset.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
	Off  int `json:"off"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d(+%d)", p.Line, p.Col, p.Off)
}

// Span is a node's exact source extent.
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (s Span) IsZero() bool {
	return s == Span{}
}

// Contains reports whether o lies within s, by byte offset.
func (s Span) Contains(o Span) bool {
	return s.Start.Off <= o.Start.Off && o.End.Off <= s.End.Off
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// TokenRange is the half-open token index range covered by a node.
type TokenRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}
