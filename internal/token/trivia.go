package token

import "svfront/internal/sourcemap"

// TriviaKind classifies a run of non-significant (or directive) text
// attached to a token (§4.A, §4.D).
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaDirectiveText marks source text belonging to a preprocessor
	// directive line that the lexer hands to the preprocessor rather than
	// interpreting itself.
	TriviaDirectiveText
	// TriviaDisabledText marks source text skipped because it fell inside
	// an inactive `` `ifdef ``/`` `ifndef `` branch (§4.E). It is lumped as
	// a single trivia span rather than re-lexed, since it may not even be
	// valid SystemVerilog.
	TriviaDisabledText
	// TriviaLineContinuation marks a backslash-newline pair inside a
	// macro body or string literal.
	TriviaLineContinuation
)

// Trivia is one contiguous run of non-token source text.
type Trivia struct {
	Kind TriviaKind
	Span sourcemap.Span
	Text string
}
