// Package patterns holds the canonical call patterns the graph
// renders as dedicated nodes instead of generic calls: zero-arg
// random(), one-arg round/sleep/print, and the builtin family
// (range, len, input, conversions, enumerate, zip, sorted, reversed,
// math functions, isinstance, type). This is presentation-level
// sugar, not IR grammar: the tree compiler expands every specialized
// node back to a generic call.
package patterns

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/twinedit/twinedit/graph"
)

//go:embed table.yaml
var tableYAML []byte

// Entry describes one specialized call shape.
type Entry struct {
	Func   string     `yaml:"func"`
	Module string     `yaml:"module,omitempty"`
	Arity  int        `yaml:"arity"`
	Node   graph.Type `yaml:"node"`
	Slots  []string   `yaml:"slots,omitempty"`
}

// Table indexes entries both ways: call shape to node type for the
// graph compiler, node type to call shape for the tree compiler.
type Table struct {
	entries []Entry
	byCall  map[callKey]*Entry
	byNode  map[graph.Type]*Entry
}

type callKey struct {
	module string
	fn     string
	arity  int
}

type tableFile struct {
	Patterns []Entry `yaml:"patterns"`
}

// Load builds a table from YAML and registers each specialized node
// type with the graph vocabulary.
func Load(d []byte) (*Table, error) {
	tf := tableFile{}
	if err := yaml.Unmarshal(d, &tf); err != nil {
		return nil, fmt.Errorf("pattern table: %w", err)
	}
	t := &Table{
		entries: tf.Patterns,
		byCall:  map[callKey]*Entry{},
		byNode:  map[graph.Type]*Entry{},
	}
	for i := range t.entries {
		e := &t.entries[i]
		if len(e.Slots) != e.Arity {
			return nil, fmt.Errorf("pattern table: %s/%d has %d slots", e.Func, e.Arity, len(e.Slots))
		}
		t.byCall[callKey{e.Module, e.Func, e.Arity}] = e
		t.byNode[e.Node] = e
		graph.RegisterType(e.Node, e.Slots)
	}
	return t, nil
}

var def *Table

// Default returns the table embedded in the binary.
func Default() *Table {
	if def == nil {
		t, err := Load(tableYAML)
		if err != nil {
			panic(err)
		}
		def = t
	}
	return def
}

// Without returns a table with the named functions removed, for the
// config-level pattern toggles. Their node types stay registered so
// old snapshots still load; they just stop being produced.
func (t *Table) Without(disabled func(fn string) bool) *Table {
	out := &Table{
		byCall: map[callKey]*Entry{},
		byNode: map[graph.Type]*Entry{},
	}
	for _, e := range t.entries {
		if !disabled(e.Func) {
			out.entries = append(out.entries, e)
		}
	}
	for i := range out.entries {
		e := &out.entries[i]
		out.byCall[callKey{e.Module, e.Func, e.Arity}] = e
		out.byNode[e.Node] = e
	}
	return out
}

// ByCall finds the entry for a plain call f(...) with the given
// positional arity, or a module call m.f(...) when module is set.
func (t *Table) ByCall(module, fn string, arity int) (*Entry, bool) {
	e, ok := t.byCall[callKey{module, fn, arity}]
	return e, ok
}

// ByNode finds the entry behind a specialized node type.
func (t *Table) ByNode(nt graph.Type) (*Entry, bool) {
	e, ok := t.byNode[nt]
	return e, ok
}

// Entries returns all entries, in table order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}
