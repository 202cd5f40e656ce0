// Package parser implements component G: a recursive-descent parser that
// drives a preprocessed token stream into a syntax.Tree. Every entry point
// (ParseCompilationUnit, ParseStatement, ParseExpression, ParseDataType)
// interns its result into the same arena, so a subtree parsed in isolation
// (an expression evaluated by a REPL, a single statement re-parsed for an
// incremental edit) composes with a full compilation unit without copying.
package parser

import (
	"svfront/internal/diag"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

const (
	// DefaultMaxDepth bounds recursive-descent nesting (expression and
	// statement recursion share one counter), mirroring
	// lexer.Options.MaxErrors and preprocess.DefaultMaxMacroDepth as a
	// backstop against pathological or adversarial input rather than a
	// real language limit.
	DefaultMaxDepth = 250
	// maxDiagnostics bounds how many diagnostics report emits before
	// falling silent, matching the lexer and preprocessor.
	maxDiagnostics = 200
)

// TokenSource is the minimal contract the parser needs from its input: a
// preprocess.Preprocessor in production, or a bare lexer.Lexer / a fixed
// slice-backed stub in tests that don't need directive handling.
type TokenSource interface {
	Next() token.Token
}

// Options configures a Parser.
type Options struct {
	// Reporter receives parser diagnostics. Nil drops them.
	Reporter diag.Reporter
	// MaxDepth overrides DefaultMaxDepth; zero keeps it.
	MaxDepth int
}

// Parser holds the state for parsing one token stream into one Tree.
type Parser struct {
	toks TokenSource
	tree *syntax.Tree
	opts Options

	peeked   *token.Token
	peeked2  *token.Token
	lastSpan sourcemap.Span
	depth    int
	errCount int
}

// New creates a Parser reading toks, interning nodes into tree. Passing an
// existing, non-empty tree lets a caller compose a subtree (e.g. a single
// re-parsed statement) into an already-built compilation unit's arena.
func New(toks TokenSource, tree *syntax.Tree, opts Options) *Parser {
	if tree == nil {
		tree = syntax.NewTree(0)
	}
	return &Parser{toks: toks, tree: tree, opts: opts}
}

// Tree returns the arena nodes have been interned into.
func (p *Parser) Tree() *syntax.Tree { return p.tree }

func (p *Parser) maxDepth() int {
	if p.opts.MaxDepth > 0 {
		return p.opts.MaxDepth
	}
	return DefaultMaxDepth
}

// peek returns the next token without consuming it.
func (p *Parser) peek() token.Token {
	if p.peeked == nil {
		t := p.toks.Next()
		p.peeked = &t
	}
	return *p.peeked
}

// peek2 returns the token after the one peek returns, without consuming
// either. Used only where a two-token sequence (like the +: / -: indexed
// part-select operators, which the lexer emits as two ordinary punctuation
// tokens) must be told apart from its prefix appearing alone.
func (p *Parser) peek2() token.Token {
	p.peek()
	if p.peeked2 == nil {
		t := p.toks.Next()
		p.peeked2 = &t
	}
	return *p.peeked2
}

// bump consumes and interns the next token as a leaf node, regardless of
// its kind.
func (p *Parser) bump() syntax.NodeID {
	t := p.peek()
	p.peeked = p.peeked2
	p.peeked2 = nil
	if t.Kind != token.EOF {
		p.lastSpan = t.Span
	}
	return p.tree.NewToken(t)
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atAny(kinds ...token.Kind) bool {
	pk := p.peek().Kind
	for _, k := range kinds {
		if pk == k {
			return true
		}
	}
	return false
}

// diagSpan picks the best span to attach a diagnostic to: the current
// token's span, or a zero-width span just past the last consumed token
// when the current token is a zero-width EOF/Invalid (so "expected ';'
// at end of file" points at end of file, not at offset 0).
func (p *Parser) diagSpan() sourcemap.Span {
	pk := p.peek()
	if (pk.Kind == token.EOF || pk.Kind == token.Invalid) && pk.Span.Empty() && p.lastSpan.End > 0 {
		return sourcemap.Span{Buffer: p.lastSpan.Buffer, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return pk.Span
}

func (p *Parser) report(code diag.Code, sp sourcemap.Span, msg string) {
	if p.opts.Reporter == nil || p.errCount >= maxDiagnostics {
		return
	}
	p.errCount++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	if p.errCount == maxDiagnostics {
		diag.ReportInfo(p.opts.Reporter, diag.LimitMaxDiagnostics, sp,
			"maximum parser diagnostic count reached; suppressing further diagnostics").Emit()
	}
}

// reportWithFix behaves like report but attaches a suggested fix, for the
// handful of diagnostics (a mismatched end label) where the parser can
// name the exact correction.
func (p *Parser) reportWithFix(code diag.Code, sp sourcemap.Span, msg, fixTitle string, edits ...diag.FixEdit) {
	if p.opts.Reporter == nil || p.errCount >= maxDiagnostics {
		return
	}
	p.errCount++
	diag.ReportError(p.opts.Reporter, code, sp, msg).WithFix(fixTitle, edits...).Emit()
	if p.errCount == maxDiagnostics {
		diag.ReportInfo(p.opts.Reporter, diag.LimitMaxDiagnostics, sp,
			"maximum parser diagnostic count reached; suppressing further diagnostics").Emit()
	}
}

// expectEndLabel parses the identifier following a ':' that closes a
// begin/end, subroutine, or design-unit body. openName is the NodeID of
// the name that opened the construct, or syntax.NoNodeID if it opened
// without one (an unlabeled 'begin'); when both are identifiers and their
// text differs, this reports SynMismatchedEndLabel with a fix that
// replaces the end label with the opening name, rather than the plain
// "expected an identifier" expect() reports when the label is missing
// outright.
func (p *Parser) expectEndLabel(openName syntax.NodeID, what string) syntax.NodeID {
	if !p.at(token.Ident) {
		return p.expect(token.Ident, diag.SynMismatchedEndLabel, "expected "+what+" after ':'")
	}
	end := p.bump()
	if openName == syntax.NoNodeID {
		return end
	}
	openTok, ok1 := p.tree.Token(openName)
	endTok, ok2 := p.tree.Token(end)
	if ok1 && ok2 && !openTok.Missing && openTok.Text != endTok.Text {
		p.reportWithFix(diag.SynMismatchedEndLabel, endTok.Span,
			"end label '"+endTok.Text+"' does not match "+what+" '"+openTok.Text+"'",
			"rename end label to '"+openTok.Text+"'",
			diag.FixEdit{Span: endTok.Span, NewText: openTok.Text})
	}
	return end
}

// expect consumes and interns the next token if it has kind k, else
// reports code/msg and synthesizes a zero-width Missing leaf in its place
// so the tree still has a slot for the required construct.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) syntax.NodeID {
	if p.at(k) {
		return p.bump()
	}
	sp := p.diagSpan()
	p.report(code, sp, msg)
	return p.tree.NewToken(token.Token{Kind: k, Span: sp, Missing: true})
}

// enterDepth increments the shared recursion counter, reporting and
// returning false once maxDepth is exceeded. Every recursive expression,
// statement, and member entry point calls this on entry and exitDepth on
// every return path.
func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > p.maxDepth() {
		p.report(diag.SynMaxRecursionDepth, p.diagSpan(), "parser recursion depth exceeded")
		return false
	}
	return true
}

func (p *Parser) exitDepth() { p.depth-- }
