package lexer

import (
	"svfront/internal/diag"
	"svfront/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans a bare [Ident] and classifies it against the
// active keyword table. Keyword recognition is case-sensitive; Token.Text
// is always the exact source spelling. Identifiers are ASCII-only (§4.D);
// a non-ASCII byte is never reached here since Next() routes it to
// scanNonASCII before this function is called.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	ch := lx.cursor.Peek()
	if lx.cursor.EOF() || !isIdentStartByte(ch) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "identifier exceeds maximum token length")
		lx.skipToEOF()
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	text := string(lx.cursor.Buf.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text, lx.keywordVersion); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanEscapedIdent scans a `\`-escaped identifier: everything from the
// backslash up to (but not including) the first whitespace byte or EOF.
func (lx *Lexer) scanEscapedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	for {
		b := lx.cursor.Peek()
		if lx.cursor.EOF() || b == ' ' || b == '\t' || b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() <= 1 {
		lx.errLex(diag.LexBadEscapedIdentifier, sp, "escaped identifier has no name")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.cursor.Buf.Content[sp.Start:sp.End])}
	}
	text := string(lx.cursor.Buf.Content[sp.Start:sp.End])
	return token.Token{Kind: token.EscapedIdent, Span: sp, Text: text}
}

// scanSystemIdent scans a `$`-prefixed system task/function name: '$'
// immediately followed by an identifier, no intervening whitespace.
func (lx *Lexer) scanSystemIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	if !isIdentStartByte(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Dollar, Span: sp, Text: string(lx.cursor.Buf.Content[sp.Start:sp.End])}
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.SystemIdent, Span: sp, Text: string(lx.cursor.Buf.Content[sp.Start:sp.End])}
}

// scanNonASCII consumes one full UTF-8 sequence (or, for a byte that does
// not start a valid sequence, just that one byte) and reports it as a
// single Invalid token, per §4.D: "reject non-ASCII inside source...
// producing a single Unknown token... skipping the full sequence".
// Non-ASCII letters are not accepted as identifier characters; only bytes
// below 0x80 ever reach scanIdentOrKeyword.
func (lx *Lexer) scanNonASCII() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexNonASCIIByte, sp, "non-ASCII byte sequence is not permitted in source text")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.cursor.Buf.Content[sp.Start:sp.End])}
}
