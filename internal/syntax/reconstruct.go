package syntax

import (
	"io"
	"strings"
)

// Write reconstructs the exact source text spanned by id: every KindToken
// leaf reachable under it contributes its leading trivia followed by its
// own text (skipped for a Missing token, which has none), in the order the
// leaves were interned. Composite nodes have no text of their own, so this
// is just a left-to-right walk down to the leaves.
func Write(w io.Writer, t *Tree, id NodeID) error {
	n := t.Get(id)
	if n == nil {
		return nil
	}
	if n.Kind == KindToken {
		for _, tr := range n.Tok.Leading {
			if _, err := io.WriteString(w, tr.Text); err != nil {
				return err
			}
		}
		if n.Tok.Missing {
			return nil
		}
		_, err := io.WriteString(w, n.Tok.Text)
		return err
	}
	for _, child := range n.Children {
		if err := Write(w, t, child); err != nil {
			return err
		}
	}
	return nil
}

// Text returns Write's output as a string, for callers that don't need
// streaming reconstruction (tests, formatters comparing round trips).
func Text(t *Tree, id NodeID) string {
	var sb strings.Builder
	_ = Write(&sb, t, id)
	return sb.String()
}

// Walk visits id and every descendant in pre-order, calling visit on each.
// visit returns false to stop descending into that node's children (the
// walk still continues with the node's siblings).
func Walk(t *Tree, id NodeID, visit func(NodeID, *Node) bool) {
	n := t.Get(id)
	if n == nil {
		return
	}
	if !visit(id, n) {
		return
	}
	for _, child := range n.Children {
		Walk(t, child, visit)
	}
}

// Find returns the first descendant of id (id included) whose Kind is
// kind, in pre-order, or NoNodeID if none matches.
func Find(t *Tree, id NodeID, kind Kind) NodeID {
	var found NodeID
	Walk(t, id, func(nid NodeID, n *Node) bool {
		if found.IsValid() {
			return false
		}
		if n.Kind == kind {
			found = nid
			return false
		}
		return true
	})
	return found
}
