package token

import (
	"svfront/internal/sourcemap"
)

// Token is a single lexical token together with its location, raw text, and
// any trivia that preceded it. Full trivia preservation (§4.A, §4.D) means
// Leading captures every whitespace run, comment, and inert directive text
// between the previous token and this one, so the original source can be
// reconstructed byte-for-byte from a token stream plus its trivia.
type Token struct {
	Kind Kind
	Span sourcemap.Span
	// Text is the token's raw spelling, exactly as it appeared in source
	// (after macro expansion, if any). For literals, Value holds the
	// interpreted payload; Text is kept for diagnostics and reconstruction.
	Text string
	// Leading holds trivia between the previous token and this one.
	Leading []Trivia
	// Value holds the literal's decoded payload: an *svint.Value for
	// IntLit/UnbasedUnsizedLit, a float64 for RealLit/TimeLit, or a decoded
	// Go string for StringLit. nil for all other kinds.
	Value any
	// Missing marks a token synthesized by parser error recovery rather
	// than lexed from source; it has zero length at the point of insertion.
	Missing bool
}

func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }
func (t Token) IsIdent() bool   { return t.Kind.IsIdent() }

// TrailingTrivia scans forward through nextLeading (the following token's
// leading trivia) and returns the prefix up to and including the first
// newline — the portion conventionally rendered as "trailing" the current
// token rather than "leading" the next one. Used by formatting-sensitive
// consumers; the syntax tree itself always attaches trivia as leading,
// per §4.F.
func TrailingTrivia(nextLeading []Trivia) []Trivia {
	for i, tr := range nextLeading {
		if tr.Kind == TriviaNewline {
			return nextLeading[:i+1]
		}
	}
	return nil
}
