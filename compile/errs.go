package compile

import (
	"errors"
	"fmt"

	"github.com/twinedit/twinedit/graph"
)

// ErrStructural is the sentinel every StructuralError wraps.
var ErrStructural = errors.New("structural error")

// ErrorKind classifies graph-shape violations.
type ErrorKind int

const (
	// KindMultipleEntry: more than one entry node in the graph.
	KindMultipleEntry ErrorKind = iota
	// KindStrayTopLevel: an entry node exists but another statement
	// chain starts outside it.
	KindStrayTopLevel
	// KindContinuationWithoutIf: an elif/else node does not directly
	// follow an if or another continuation in its chain.
	KindContinuationWithoutIf
	// KindCaseOutsideMatch: a case node somewhere other than a match
	// node's case slot.
	KindCaseOutsideMatch
	// KindEmptyMatch: a match node with no cases.
	KindEmptyMatch
	// KindSyncErrorPresent: the sync-error placeholder is in the
	// graph; it marks a failed text sync and must never compile.
	KindSyncErrorPresent
	// KindBadShape: a node is missing a required input or field.
	KindBadShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindMultipleEntry:
		return "multiple entry nodes"
	case KindStrayTopLevel:
		return "stray top-level statement"
	case KindContinuationWithoutIf:
		return "continuation without if"
	case KindCaseOutsideMatch:
		return "case outside match"
	case KindEmptyMatch:
		return "empty match"
	case KindSyncErrorPresent:
		return "sync error placeholder present"
	case KindBadShape:
		return "malformed node"
	}
	return "structural error"
}

// StructuralError reports a graph whose shape violates the structural
// grammar. The controller matches on Kind; Node locates the offender.
type StructuralError struct {
	Kind ErrorKind
	Node graph.NodeID
	Msg  string
}

func (e *StructuralError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s (node %d)", e.Kind, e.Node)
	}
	return fmt.Sprintf("%s: %s (node %d)", e.Kind, e.Msg, e.Node)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

func errAt(kind ErrorKind, n *graph.Node, format string, args ...any) error {
	e := &StructuralError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Node = n.ID()
	}
	return e
}
