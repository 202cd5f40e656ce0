package preprocess

import (
	"svfront/internal/diag"
	"svfront/internal/lexer"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

// handleDefine parses the body of a `` `define `` directive into a Macro
// and installs it in the table. The macro name and, if present, its
// parenthesized formal list must be scanned in lexer.ModeDirective so a
// bare newline (rather than a matching `)`) can never silently swallow the
// rest of the file.
func handleDefine(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	lx := lf.lx

	nameTok := lx.Next()
	if nameTok.Kind != token.Ident && nameTok.Kind != token.EscapedIdent {
		p.skipRestOfDirective()
		return
	}

	m := &Macro{Name: nameTok.Text, DefSpan: graveSpan.Cover(nameTok.Span)}

	next := lx.Peek()
	if next.Kind == token.LParen && len(next.Leading) == 0 {
		lx.Next()
		m.HasParams = true
		if !parseFormalList(p, lx, m) {
			p.skipRestOfDirective()
			return
		}
	}

	m.Body = readDirectiveBody(lx)
	m.DefSpan = m.DefSpan.Cover(lastSpan(m.Body, m.DefSpan))

	if p.macros.Define(m) {
		p.report(diag.MacroRedefinedDifferent, m.DefSpan, "macro `"+m.Name+"` redefined with a different body")
	}
}

func lastSpan(toks []token.Token, fallback sourcemap.Span) sourcemap.Span {
	if len(toks) == 0 {
		return fallback
	}
	return toks[len(toks)-1].Span
}

func readDirectiveBody(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		if t.Kind == token.EndOfDirective || t.Kind == token.EOF {
			return out
		}
		out = append(out, t)
	}
}

// parseFormalList reads a function-like macro's parameter list, the
// opening `(` already consumed. Each formal may carry a default value,
// itself a balanced (bracket/brace/paren-aware) token run up to its
// terminating `,` or `)`.
func parseFormalList(p *Preprocessor, lx *lexer.Lexer, m *Macro) bool {
	if lx.Peek().Kind == token.RParen {
		lx.Next()
		return true
	}
	for {
		t := lx.Next()
		if t.Kind != token.Ident {
			return false
		}
		param := Param{Name: t.Text}
		if lx.Peek().Kind == token.Assign {
			lx.Next()
			param.Default = readBalancedFromLexer(lx, token.Comma, token.RParen)
			if param.Default == nil {
				param.Default = []token.Token{}
			}
		}
		m.Params = append(m.Params, param)
		sep := lx.Next()
		switch sep.Kind {
		case token.Comma:
			continue
		case token.RParen:
			return true
		default:
			return false
		}
	}
}

// readBalancedFromLexer reads tokens up to (but not including) the first
// unnested occurrence of stopA or stopB, honoring `(`/`[`/`{` nesting so
// commas or close-parens inside a nested group don't end the run early.
func readBalancedFromLexer(lx *lexer.Lexer, stopA, stopB token.Kind) []token.Token {
	var out []token.Token
	depth := 0
	for {
		t := lx.Peek()
		if t.Kind == token.EndOfDirective || t.Kind == token.EOF {
			return out
		}
		if depth == 0 && (t.Kind == stopA || t.Kind == stopB) {
			return out
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		out = append(out, lx.Next())
	}
}
