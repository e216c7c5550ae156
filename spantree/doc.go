/*
Package spantree provides a mutable, summarized B+ tree over text spans.

The tree is the indexing backbone of a span buffer: it resolves global
character locations to owning spans in O(log n) and keeps every node's cached
subtree summary in sync with each structural change. The package is
intentionally not a generic container; it is specialized for sequence storage
with positional editing.

Leaves store spans, internal nodes store child pointers; the children of a
node are homogeneous. Nodes hold between Base and 2*Base entries, with the
usual relaxation for the root. The order of children is the only source of
truth for character order.

All mutation is in place and single-threaded; concurrent callers must
serialize access externally.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package spantree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'spans'
func tracer() tracing.Trace {
	return tracing.Select("spans")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
