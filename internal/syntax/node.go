package syntax

import (
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

// Node is a single syntax tree node. A leaf (Kind == KindToken) carries the
// underlying token.Token, trivia and all; a composite node carries an
// ordered list of children and no token. Every child of a composite node
// appears in the same order it did in source, so Write below can recover
// the exact original text (including macro-expanded text and, for a node
// synthesized during error recovery, nothing at all) by concatenating
// leaves left to right.
type Node struct {
	Kind     Kind
	Span     sourcemap.Span
	Children []NodeID
	Tok      token.Token
}

// Tree owns the arena backing a parsed compilation unit, and every node
// interned while parsing a subtree (a single expression or statement, via
// parseExpression/parseMember-style entry points) shares the same arena so
// nodes can be composed across separate parse calls without copying.
type Tree struct {
	arena *Arena[Node]
	root  NodeID
}

// NewTree creates an empty Tree with capHint preallocated node slots.
func NewTree(capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 10
	}
	return &Tree{arena: NewArena[Node](capHint)}
}

// NewToken interns tok as a leaf node and returns its ID.
func (t *Tree) NewToken(tok token.Token) NodeID {
	return NodeID(t.arena.Allocate(Node{Kind: KindToken, Span: tok.Span, Tok: tok}))
}

// NewNode interns a composite node of the given kind over children, whose
// span is not implicitly computed: callers pass the covering span (usually
// the first child's start covered with the last child's end) so a node
// with only optional/omitted children still gets a meaningful span.
func (t *Tree) NewNode(kind Kind, span sourcemap.Span, children ...NodeID) NodeID {
	return NodeID(t.arena.Allocate(Node{
		Kind:     kind,
		Span:     span,
		Children: append([]NodeID(nil), children...),
	}))
}

// NewMissing interns a zero-width KindMissing node standing in for a
// required construct that error recovery could not find in source.
func (t *Tree) NewMissing(span sourcemap.Span) NodeID {
	return NodeID(t.arena.Allocate(Node{Kind: KindMissing, Span: span}))
}

// NewError interns a KindError node covering tokens skipped during error
// recovery that could not be attached to any expected construct.
func (t *Tree) NewError(span sourcemap.Span, skipped ...NodeID) NodeID {
	return NodeID(t.arena.Allocate(Node{
		Kind:     KindError,
		Span:     span,
		Children: append([]NodeID(nil), skipped...),
	}))
}

// Get returns the node at id, or nil for NoNodeID or a dangling id.
func (t *Tree) Get(id NodeID) *Node {
	return t.arena.Get(uint32(id))
}

// Token returns the token wrapped by a KindToken leaf, and false for any
// other kind or an invalid id.
func (t *Tree) Token(id NodeID) (token.Token, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != KindToken {
		return token.Token{}, false
	}
	return n.Tok, true
}

// SetRoot records the compilation unit's root node.
func (t *Tree) SetRoot(id NodeID) { t.root = id }

// Root returns the compilation unit's root node.
func (t *Tree) Root() NodeID { return t.root }

// Len reports how many nodes have been interned.
func (t *Tree) Len() int { return t.arena.Len() }
