// Package langsvc talks to the external language service that owns
// the concrete syntax. Parsing text into a program and generating
// text back out both happen on the far side of a JSON-RPC boundary;
// this package moves serialized programs across it and hands back
// decoded trees.
package langsvc

import (
	"context"

	"github.com/twinedit/twinedit/ir"
)

// Mode selects how much source fidelity the service preserves.
type Mode string

const (
	// ModeLossless keeps trivia and token ranges through a round trip.
	ModeLossless Mode = "lossless"
)

// MethodParse and MethodGenerate are the service's RPC methods.
const (
	MethodParse    = "twinedit/parse"
	MethodGenerate = "twinedit/generate"
)

// Parser turns source text into a program.
type Parser interface {
	Parse(ctx context.Context, text string) (*ir.Program, error)
}

// Generator turns a program back into source text.
type Generator interface {
	Generate(ctx context.Context, p *ir.Program) (string, error)
}

// Service is a full language service.
type Service interface {
	Parser
	Generator
}
