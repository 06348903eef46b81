package langsvc

import (
	"errors"
	"fmt"
)

var (
	ErrService = errors.New("language service error")
)

// ParseError carries the service's diagnostic for rejected source.
// The message is the service's own text, e.g. "line 3: unexpected
// token"; callers that want the line number extract it from there.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Unwrap() error { return ErrService }

// GenerationError reports a program the service could not print.
type GenerationError struct {
	Msg string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate: %s", e.Msg)
}

func (e *GenerationError) Unwrap() error { return ErrService }
