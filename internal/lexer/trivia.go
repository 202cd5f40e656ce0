package lexer

import (
	"svfront/internal/diag"
	"svfront/internal/token"
)

// collectLeadingTrivia accumulates the run of trivia preceding the next
// significant token into lx.hold:
//   - ' ' and '\t' coalesce into one TriviaWhitespace
//   - runs of '\n' coalesce into one TriviaNewline, EXCEPT in ModeDirective,
//     where an unescaped newline ends the directive line and is left for
//     Next to turn into an EndOfDirective token instead of being consumed
//     here
//   - "\\\n" (backslash-newline) is always a TriviaLineContinuation, in any
//     mode, and never ends a directive line
//   - "//..." to end of line is a TriviaLineComment
//   - "/* ... */" is a TriviaBlockComment; SystemVerilog block comments do
//     not nest, so an inner "/*" is reported once and otherwise ignored
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.appendTrivia(token.TriviaWhitespace, start)
			continue
		}

		if b == '\\' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '\\' && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.appendTrivia(token.TriviaLineContinuation, start)
				continue
			}
		}

		if b == '\n' {
			if lx.mode == ModeDirective {
				break
			}
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.appendTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

func (lx *Lexer) appendTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.cursor.Buf.Content[sp.Start:sp.End]),
	})
}

// scanCommentIntoHold scans "//..." or "/*...*/" starting at the cursor. It
// returns false, leaving the cursor unmoved, if the '/' does not start a
// comment (so it can fall through to operator scanning).
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.appendTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		warnedNested := false
		for !lx.cursor.EOF() {
			b0, b1, ok := lx.cursor.Peek2()
			if ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.appendTrivia(token.TriviaBlockComment, start)
				return true
			}
			if ok && b0 == '/' && b1 == '*' && !warnedNested {
				sp := lx.cursor.SpanFrom(lx.cursor.Mark())
				lx.errLex(diag.LexNestedBlockComment, sp, "'/*' inside block comment is not nested")
				warnedNested = true
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		lx.appendTrivia(token.TriviaBlockComment, start)
		return true

	default:
		lx.cursor.Reset(start)
		return false
	}
}
