package lexer

import (
	"svfront/internal/diag"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

// maxTokenLength bounds a single token's byte length, so a malformed
// unterminated construct (a giant identifier, an unterminated string near
// end of file) cannot make the lexer allocate proportionally to a hostile
// input.
const maxTokenLength = 1 << 16

// maxErrors is the default number of diagnostics a Lexer will raise before
// it stops reporting further lexical errors (scanning itself continues),
// mirroring the diag.Bag cap so a single pathological file cannot flood
// the sink.
const maxErrors = 200

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. Nil is allowed: diagnostics
	// are silently dropped but scanning still proceeds normally.
	Reporter diag.Reporter
	// KeywordVersion selects the initial reserved-word set. Mid-file
	// changes from `` `begin_keywords ``/`` `end_keywords `` are applied
	// by the caller via Lexer.SetKeywordVersion, since only the
	// preprocessor tracks that directive's stack.
	KeywordVersion token.KeywordVersion
	// MaxErrors overrides maxErrors; zero keeps the default.
	MaxErrors int
}

func (lx *Lexer) errLex(code diag.Code, sp sourcemap.Span, msg string) {
	if lx.errCount >= lx.maxErrorsAllowed() {
		return
	}
	lx.errCount++
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
	if lx.errCount == lx.maxErrorsAllowed() && lx.opts.Reporter != nil {
		diag.ReportInfo(lx.opts.Reporter, diag.LimitMaxDiagnostics, sp,
			"maximum lexical diagnostic count reached; suppressing further lexical errors").Emit()
	}
}

func (lx *Lexer) maxErrorsAllowed() int {
	if lx.opts.MaxErrors > 0 {
		return lx.opts.MaxErrors
	}
	return maxErrors
}
