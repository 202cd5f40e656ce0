package syntax

import (
	"testing"

	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

func tok(kind token.Kind, text string, start, end uint32) token.Token {
	return token.Token{Kind: kind, Text: text, Span: sourcemap.Span{Start: start, End: end}}
}

func TestArenaOneBasedIndexing(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must never resolve to a value")
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first Allocate = %d, want 1", id)
	}
	got := a.Get(id)
	if got == nil || *got != 42 {
		t.Fatalf("Get(%d) = %v, want 42", id, got)
	}
	if a.Get(id+1) != nil {
		t.Fatalf("out-of-range index must resolve to nil")
	}
}

func TestNoNodeIDIsInvalid(t *testing.T) {
	if NoNodeID.IsValid() {
		t.Fatalf("NoNodeID must not be valid")
	}
	tr := NewTree(0)
	id := tr.NewToken(tok(token.Ident, "clk", 0, 3))
	if !id.IsValid() {
		t.Fatalf("an allocated node must be valid")
	}
}

func TestTreeTokenRoundTrip(t *testing.T) {
	tr := NewTree(0)
	leadTrivia := []token.Trivia{{Kind: token.TriviaWhitespace, Text: "  "}}
	id := tr.NewToken(token.Token{Kind: token.KwModule, Text: "module", Leading: leadTrivia})
	got, ok := tr.Token(id)
	if !ok {
		t.Fatalf("Token() on a KindToken leaf must succeed")
	}
	if got.Text != "module" {
		t.Fatalf("Text = %q, want %q", got.Text, "module")
	}
	if _, ok := tr.Token(NoNodeID); ok {
		t.Fatalf("Token() on NoNodeID must fail")
	}
}

func TestWriteReconstructsSourceText(t *testing.T) {
	tr := NewTree(0)
	kw := tr.NewToken(token.Token{Kind: token.KwModule, Text: "module"})
	sp := tr.NewToken(token.Token{
		Kind:    token.Ident,
		Text:    "counter",
		Leading: []token.Trivia{{Kind: token.TriviaWhitespace, Text: " "}},
	})
	semi := tr.NewToken(token.Token{
		Kind:    token.Semicolon,
		Text:    ";",
		Leading: []token.Trivia{{Kind: token.TriviaWhitespace, Text: ""}},
	})
	root := tr.NewNode(KindModuleDecl, CoverChildren(tr, kw, sp, semi), kw, sp, semi)
	tr.SetRoot(root)

	got := Text(tr, tr.Root())
	want := "module counter;"
	if got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}

func TestWriteSkipsMissingTokenText(t *testing.T) {
	tr := NewTree(0)
	present := tr.NewToken(token.Token{Kind: token.Ident, Text: "x"})
	missing := tr.NewToken(token.Token{Kind: token.Semicolon, Text: "", Missing: true})
	root := tr.NewNode(KindExprStmt, CoverChildren(tr, present, missing), present, missing)

	got := Text(tr, root)
	if got != "x" {
		t.Fatalf("Text() = %q, want %q (a missing token contributes no text)", got, "x")
	}
}

func TestWalkVisitsInPreOrder(t *testing.T) {
	tr := NewTree(0)
	leaf1 := tr.NewToken(token.Token{Kind: token.Ident, Text: "a"})
	leaf2 := tr.NewToken(token.Token{Kind: token.Ident, Text: "b"})
	inner := tr.NewNode(KindConcatExpr, CoverChildren(tr, leaf1, leaf2), leaf1, leaf2)
	outer := tr.NewNode(KindParenExpr, CoverChildren(tr, inner), inner)

	var order []Kind
	Walk(tr, outer, func(_ NodeID, n *Node) bool {
		order = append(order, n.Kind)
		return true
	})
	want := []Kind{KindParenExpr, KindConcatExpr, KindToken, KindToken}
	if len(order) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(order), len(want))
	}
	for i, k := range want {
		if order[i] != k {
			t.Fatalf("order[%d] = %v, want %v", i, order[i], k)
		}
	}
}

func TestFindReturnsFirstMatch(t *testing.T) {
	tr := NewTree(0)
	name := tr.NewToken(token.Token{Kind: token.Ident, Text: "req"})
	ident := tr.NewNode(KindIdentExpr, CoverChildren(tr, name), name)
	call := tr.NewNode(KindCallExpr, CoverChildren(tr, ident), ident)

	found := Find(tr, call, KindIdentExpr)
	if found != ident {
		t.Fatalf("Find returned %d, want %d", found, ident)
	}
	if Find(tr, call, KindBinaryExpr).IsValid() {
		t.Fatalf("Find must return NoNodeID when nothing matches")
	}
}

func TestMissingAndErrorNodes(t *testing.T) {
	tr := NewTree(0)
	span := sourcemap.Span{Start: 5, End: 5}
	m := tr.NewMissing(span)
	got := tr.Get(m)
	if got.Kind != KindMissing || got.Span != span || len(got.Children) != 0 {
		t.Fatalf("NewMissing produced %+v", got)
	}

	skipped := tr.NewToken(token.Token{Kind: token.Invalid, Text: "@"})
	e := tr.NewError(sourcemap.Span{Start: 5, End: 6}, skipped)
	gotErr := tr.Get(e)
	if gotErr.Kind != KindError || len(gotErr.Children) != 1 || gotErr.Children[0] != skipped {
		t.Fatalf("NewError produced %+v", gotErr)
	}
}

func TestKindClassification(t *testing.T) {
	if !KindBinaryExpr.IsExpr() {
		t.Fatalf("KindBinaryExpr should be classified as an expression")
	}
	if KindIfStmt.IsExpr() {
		t.Fatalf("KindIfStmt should not be classified as an expression")
	}
	if !KindIfStmt.IsStmt() {
		t.Fatalf("KindIfStmt should be classified as a statement")
	}
	if !KindModuleDecl.IsDesignUnit() {
		t.Fatalf("KindModuleDecl should be classified as a design unit")
	}
	if KindPortDecl.IsDesignUnit() {
		t.Fatalf("KindPortDecl should not be classified as a design unit")
	}
	if !KindPortDecl.IsMember() {
		t.Fatalf("KindPortDecl should be classified as a member")
	}
}
