// Package ident issues unique integer identities for IR nodes. Text
// originated trees carry identities assigned by the external parser;
// Reconcile advances the allocator past them so graph-originated
// nodes never collide in the shared id space used for span and
// highlight correlation.
package ident

import "github.com/twinedit/twinedit/ir"

// Allocator is an in-memory counter. It is owned by one controller
// instance, not process-global, so independent editor sessions do not
// share id spaces.
type Allocator struct {
	next int
}

// New returns an allocator whose first id is 1.
func New() *Allocator {
	return &Allocator{next: 1}
}

// Next returns a strictly increasing id above any id previously seen.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Reconcile scans an externally produced tree for its maximum id and
// advances the allocator past it.
func (a *Allocator) Reconcile(p *ir.Program) {
	if maxID := ir.MaxID(p); maxID >= a.next {
		a.next = maxID + 1
	}
}
