package token

import "testing"

func TestLookupKeywordRespectsVersion(t *testing.T) {
	if _, ok := LookupKeyword("logic", KeywordsVerilog1995); ok {
		t.Fatalf("'logic' should not be a keyword under Verilog-1995")
	}
	k, ok := LookupKeyword("logic", KeywordsSystemVerilog2005)
	if !ok || k != KwLogic {
		t.Fatalf("'logic' should be KwLogic under SystemVerilog-2005")
	}
}

func TestLookupKeywordUnknownIdentifier(t *testing.T) {
	if _, ok := LookupKeyword("frobnicate", KeywordsDefault); ok {
		t.Fatalf("unknown identifier should not resolve as a keyword")
	}
}

func TestLookupKeywordCaseSensitive(t *testing.T) {
	if _, ok := LookupKeyword("MODULE", KeywordsDefault); ok {
		t.Fatalf("keyword lookup must be case-sensitive")
	}
}

func TestTrailingTriviaStopsAfterFirstNewline(t *testing.T) {
	leading := []Trivia{
		{Kind: TriviaWhitespace, Text: "  "},
		{Kind: TriviaNewline, Text: "\n"},
		{Kind: TriviaLineComment, Text: "// next line"},
	}
	trailing := TrailingTrivia(leading)
	if len(trailing) != 2 {
		t.Fatalf("TrailingTrivia returned %d items, want 2 (up to and including the newline)", len(trailing))
	}
}

func TestTrailingTriviaNoNewline(t *testing.T) {
	leading := []Trivia{{Kind: TriviaWhitespace, Text: " "}}
	if got := TrailingTrivia(leading); got != nil {
		t.Fatalf("TrailingTrivia = %v, want nil when no newline present", got)
	}
}
