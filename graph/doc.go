// Package graph is the visual node graph the structural compilers
// read and replace. Nodes are typed by a fixed vocabulary, one type
// per IR variant plus structural types for program entry, elif/else
// continuation, match cases and the sync-error placeholder.
//
// Nodes relate three ways: statement chaining (previous/next), named
// child-slot containment, and purely positional placement used to
// order independent top-level chains. The graph is long-lived and
// mutated incrementally by user interaction; compilers replace its
// content wholesale, never patch it.
package graph
