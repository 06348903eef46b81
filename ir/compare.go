package ir

import (
	"bytes"
	"encoding/json"
)

// Equal reports whether two programs are structurally equal: same
// shape and same literal values, ignoring identities, spans, token
// ranges and trivia. This is the equality the round-trip guarantee is
// stated in.
func Equal(a, b *Program) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IndentWidth != b.IndentWidth {
		return false
	}
	return bytes.Equal(shapeBytes(a.Body), shapeBytes(b.Body))
}

// EqualNode is Equal over single nodes.
func EqualNode(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return bytes.Equal(shapeBytes(a), shapeBytes(b))
}

func shapeBytes(n Node) []byte {
	if n == nil {
		return nil
	}
	w := encodeNode(n)
	stripMeta(w)
	d, err := json.Marshal(w)
	if err != nil {
		// wire holds only marshalable types
		panic(err)
	}
	return d
}
