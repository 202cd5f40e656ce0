package syntax

import "svfront/internal/sourcemap"

// CoverChildren returns the smallest span covering every child's span,
// skipping any NoNodeID entries (an omitted optional child). It returns
// the zero Span if children is empty or every entry is NoNodeID, letting a
// caller fall back to a synthesized point span for an empty node.
func CoverChildren(t *Tree, children ...NodeID) sourcemap.Span {
	var span sourcemap.Span
	started := false
	for _, id := range children {
		n := t.Get(id)
		if n == nil {
			continue
		}
		if !started {
			span = n.Span
			started = true
			continue
		}
		span = span.Cover(n.Span)
	}
	return span
}
