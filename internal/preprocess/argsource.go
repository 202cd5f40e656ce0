package preprocess

import (
	"svfront/internal/lexer"
	"svfront/internal/token"
)

// argSource is one frame of the preprocessor's input stack: either a live
// lexer reading from a source buffer, or a previously-captured token list
// being re-fed to the preprocessor (a macro's expansion, or an argument's
// substitution). Draining a tokenFrame before falling back to the frame
// beneath it is what lets a nested macro invocation read its arguments
// uniformly regardless of whether they originate from source text or from
// an in-flight outer expansion.
type argSource interface {
	// next returns the next token and true, or a zero token and false once
	// the frame is exhausted.
	next() (token.Token, bool)
}

// lexerFrame reads tokens directly from a source buffer.
type lexerFrame struct {
	lx *lexer.Lexer
	// isFile marks a frame pushed by `include (or the top-level source),
	// as opposed to one pushed for a macro's own directive-mode scan; only
	// isFile frames count against the include-depth limit.
	isFile bool
	// path identifies the buffer for `include cycle detection; empty for
	// non-file frames.
	path string
}

func (f *lexerFrame) next() (token.Token, bool) {
	t := f.lx.Next()
	if t.Kind == token.EOF {
		return t, false
	}
	return t, true
}

// tokenFrame replays a captured token list: a macro's substituted
// expansion, or a single actual argument being read back for further
// substitution.
type tokenFrame struct {
	toks []token.Token
	pos  int
	// macroName is non-empty when this frame is a macro's expansion body,
	// so the expansion-site stack can be popped once it drains.
	macroName string
}

func (f *tokenFrame) next() (token.Token, bool) {
	if f.pos >= len(f.toks) {
		return token.Token{}, false
	}
	t := f.toks[f.pos]
	f.pos++
	return t, true
}
