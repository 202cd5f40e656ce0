// Package lexer implements the SystemVerilog tokenizer (component D,
// §4.D): it turns raw buffer bytes into a stream of token.Token values with
// full trivia attached, ahead of preprocessing and parsing.
package lexer

import (
	"svfront/internal/diag"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

// Mode selects how the next token is scanned. The preprocessor drives mode
// transitions; the lexer itself never enters ModeDirective or
// ModeIncludeFileName on its own.
type Mode uint8

const (
	// ModeNormal scans ordinary SystemVerilog source text.
	ModeNormal Mode = iota
	// ModeDirective scans the body of a compiler directive or macro
	// invocation/definition: an unescaped newline ends the directive and
	// yields an EndOfDirective token instead of ordinary trivia.
	ModeDirective
	// ModeIncludeFileName scans exactly one token as an `` `include ``
	// path, either "quoted" or <angle-bracketed>, then reverts to
	// ModeNormal.
	ModeIncludeFileName
)

// Lexer tokenizes one sourcemap.Buffer.
type Lexer struct {
	cursor         Cursor
	opts           Options
	mode           Mode
	keywordVersion token.KeywordVersion
	look           *token.Token
	hold           []token.Trivia
	errCount       int
}

// New creates a Lexer over buf. If buf had its BOM stripped on load, New
// raises the required diagnostic once, up front, so callers never see a BOM
// byte in the token stream (§4.D).
func New(buf *sourcemap.Buffer, opts Options) *Lexer {
	lx := &Lexer{
		cursor:         NewCursor(buf),
		opts:           opts,
		keywordVersion: opts.KeywordVersion,
	}
	if lx.keywordVersion == 0 {
		lx.keywordVersion = token.KeywordsDefault
	}
	if buf.Flags&sourcemap.BufferHadBOM != 0 {
		lx.errLex(diag.LexUnicodeBOMRejected, lx.emptySpan(), "byte order mark is not permitted in source text")
	}
	return lx
}

// SetMode switches scanning mode for the next call to Next. Used by the
// preprocessor to read a macro/directive body (ModeDirective) or an
// `` `include `` path (ModeIncludeFileName).
func (lx *Lexer) SetMode(m Mode) {
	lx.mode = m
}

func (lx *Lexer) Mode() Mode {
	return lx.mode
}

// SetKeywordVersion changes which identifiers lex as keywords, effective
// starting with the next token. Driven by `` `begin_keywords ``/
// `` `end_keywords ``.
func (lx *Lexer) SetKeywordVersion(v token.KeywordVersion) {
	lx.keywordVersion = v
}

// Next returns the next significant token, with any preceding trivia
// attached as Leading. Once EOF is reached it is returned on every
// subsequent call, always carrying whatever trailing trivia remained
// unattached at end of buffer.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.mode == ModeDirective && (lx.cursor.EOF() || lx.cursor.Peek() == '\n') {
		tok := token.Token{Kind: token.EndOfDirective, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		lx.mode = ModeNormal
		return tok
	}

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	if lx.mode == ModeIncludeFileName {
		tok := lx.scanIncludePath()
		lx.mode = ModeNormal
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\'':
		tok = lx.scanApostropheLiteral()
	case ch == '\\':
		tok = lx.scanEscapedIdent()
	case ch == '$':
		tok = lx.scanSystemIdent()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanNonASCII()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() sourcemap.Span {
	return sourcemap.Span{Buffer: lx.cursor.Buf.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// skipToEOF discards the remainder of the buffer after an unrecoverable
// lexical error (e.g. a token past maxTokenLength), so the caller's next
// Next() call lands cleanly on EOF instead of re-scanning garbage.
func (lx *Lexer) skipToEOF() {
	lx.cursor.Off = lx.cursor.Limit
}
