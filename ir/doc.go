// Package ir defines the intermediate representation shared by the two
// structural compilers: a statement/expression tree with enough per-node
// metadata (identity, source span, token range, trivia) for lossless
// round-tripping between text and the visual graph.
//
// IR trees are never mutated in place. Every conversion, in either
// direction, builds a fresh tree.
package ir
