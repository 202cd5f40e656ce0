package preprocess

import (
	"strconv"
	"strings"

	"svfront/internal/diag"
	"svfront/internal/lexer"
	"svfront/internal/sourcemap"
	"svfront/internal/svint"
	"svfront/internal/token"
)

// expandMacroInvocation drives one use of a user macro or intrinsic: for a
// function-like macro it reads the actual argument list, then applies the
// three rewrites (formal substitution, paste, stringify) left to right and
// pushes the result as a new tokenFrame so it is re-scanned for further
// (nested) macro invocations. fromLexer distinguishes a use found live in
// source, whose lexer mode must be switched back to ModeNormal before
// reading a parenthesized argument list that may span multiple lines, from
// a use found while replaying an outer macro's own body.
func (p *Preprocessor) expandMacroInvocation(m *Macro, graveSpan sourcemap.Span, nameTok token.Token, fromLexer bool) {
	useSpan := graveSpan.Cover(nameTok.Span)

	// The name itself was scanned in ModeDirective (set by handleGrave) so a
	// bare newline can't be mistaken for part of the name. Nothing past this
	// point consumes further directive-mode tokens from this frame, so the
	// mode must be restored before any of it runs, or a live invocation
	// leaves the frame stuck in ModeDirective until the next newline or EOF
	// manufactures a stray EndOfDirective token.
	if fromLexer {
		p.currentLexerFrame().lx.SetMode(lexer.ModeNormal)
	}

	if m.Intrinsic != IntrinsicNone {
		p.expandIntrinsic(m, useSpan)
		return
	}

	for _, active := range p.expansionStack {
		if active == m.Name {
			p.report(diag.MacroRecursiveExpansion, useSpan, "macro `"+m.Name+"` is self-referential")
			return
		}
	}
	if len(p.expansionStack) >= p.maxMacroDepth() {
		p.report(diag.LimitMaxMacroDepth, useSpan, "maximum macro expansion depth reached")
		return
	}

	var argMap map[string][]token.Token
	if m.HasParams {
		args, unterminated, hadParens := readActualArgs(p)
		if !hadParens {
			p.report(diag.MacroMissingArgList, useSpan, "macro `"+m.Name+"` requires an argument list")
			return
		}
		if unterminated {
			p.report(diag.MacroUnterminatedArgList, useSpan, "unterminated argument list for macro `"+m.Name+"`")
			return
		}
		argMap = bindArgs(p, m, args, useSpan)
	}

	body := substituteAndRewrite(p, m, argMap, useSpan)
	if len(body) == 0 {
		return
	}
	p.expansionStack = append(p.expansionStack, m.Name)
	p.frames = append(p.frames, &tokenFrame{toks: body, macroName: m.Name})
}

func bindArgs(p *Preprocessor, m *Macro, args [][]token.Token, useSpan sourcemap.Span) map[string][]token.Token {
	if len(args) == 1 && len(args[0]) == 0 && len(m.Params) == 0 {
		args = nil
	}
	if len(args) > len(m.Params) {
		p.report(diag.MacroArgCountMismatch, useSpan, "macro `"+m.Name+"` invoked with too many arguments")
		args = args[:len(m.Params)]
	}
	argMap := make(map[string][]token.Token, len(m.Params))
	tooFew := false
	for i, param := range m.Params {
		var actual []token.Token
		var supplied bool
		if i < len(args) {
			actual = args[i]
			supplied = len(actual) > 0
		}
		switch {
		case supplied:
			argMap[param.Name] = actual
		case param.Default != nil:
			// an omitted, or explicitly empty, actual falls back to the
			// formal's default when one was declared.
			argMap[param.Name] = param.Default
		default:
			// the actual was either omitted entirely or present but
			// explicitly empty, and the formal has no default to fall
			// back to either way.
			tooFew = true
			argMap[param.Name] = nil
		}
	}
	if tooFew {
		p.report(diag.MacroArgCountMismatch, useSpan, "macro `"+m.Name+"` invoked with too few arguments")
	}
	return argMap
}

// readActualArgs reads a parenthesized, comma-separated actual argument
// list from whatever source is currently on top of the frame stack. Each
// argument is a balanced run of tokens: nested `(`/`[`/`{` groups protect
// their own commas from splitting the outer list.
func readActualArgs(p *Preprocessor) (args [][]token.Token, unterminated bool, hadParens bool) {
	t, ok := p.rawNext()
	if !ok {
		return nil, false, false
	}
	if t.Kind != token.LParen {
		// the next non-trivia token must be '(' for this to be a
		// function-like call; whitespace or a comment before it is fine.
		p.pushBack(t)
		return nil, false, false
	}
	for {
		arg, term, ok := readOneArg(p)
		if !ok {
			return args, true, true
		}
		args = append(args, arg)
		if term == token.RParen {
			return args, false, true
		}
	}
}

func readOneArg(p *Preprocessor) (arg []token.Token, term token.Kind, ok bool) {
	depth := 0
	for {
		t, has := p.rawNext()
		if !has {
			return arg, token.EOF, false
		}
		if depth == 0 && (t.Kind == token.Comma || t.Kind == token.RParen) {
			return arg, t.Kind, true
		}
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		arg = append(arg, t)
	}
}

// substituteAndRewrite applies formal substitution and stringification in
// one left-to-right pass over the macro body (stringify needs argMap
// directly, since its operand was already folded into a single StringLit
// token at `` `define `` time and the parameter reference lives inside its
// decoded text rather than as a separate Ident token), then applies
// token-paste over the result.
func substituteAndRewrite(p *Preprocessor, m *Macro, argMap map[string][]token.Token, useSpan sourcemap.Span) []token.Token {
	out := make([]token.Token, 0, len(m.Body))
	for i := 0; i < len(m.Body); i++ {
		t := m.Body[i]

		// A `` `"...`" `` stringify operand is scanned, at `` `define ``
		// time, as a lone Grave followed by an ordinary StringLit: the
		// scanner has no notion of the closing `` `" `` marker, so it
		// keeps consuming raw text until the next literal '"', which
		// happens to be the quote half of that closing marker. Its
		// backtick half ends up as the string's own last decoded byte
		// instead of a separate token.
		if t.Kind == token.Grave && i+1 < len(m.Body) && m.Body[i+1].Kind == token.StringLit {
			if raw, ok := m.Body[i+1].Value.(string); ok && strings.HasSuffix(raw, "`") {
				out = append(out, stringifyOperand(p, m.Body[i+1], strings.TrimSuffix(raw, "`"), argMap))
				i++
				continue
			}
		}

		if argMap != nil && t.Kind == token.Ident {
			if idx := m.paramIndex(t.Text); idx >= 0 {
				out = append(out, argMap[m.Params[idx].Name]...)
				continue
			}
		}

		out = append(out, t)
	}
	return applyPaste(p, out, useSpan)
}

func stringifyOperand(p *Preprocessor, strTok token.Token, text string, argMap map[string][]token.Token) token.Token {
	for name, actual := range argMap {
		text = replaceWord(text, name, joinTokenText(actual))
	}
	return token.Token{Kind: token.StringLit, Span: strTok.Span, Text: strconv.Quote(text), Value: text}
}

func joinTokenText(toks []token.Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// replaceWord replaces whole-word occurrences of word in s: word must not
// be immediately preceded or followed by another identifier byte.
func replaceWord(s, word, repl string) string {
	if word == "" {
		return s
	}
	var out strings.Builder
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], word) {
			var before, after byte
			if i > 0 {
				before = s[i-1]
			}
			end := i + len(word)
			if end < len(s) {
				after = s[end]
			}
			if !isIdentByte(before) && !isIdentByte(after) {
				out.WriteString(repl)
				i = end
				continue
			}
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// applyPaste resolves every `` `` `` token-concatenation operator in toks,
// merging the tokens flanking it by re-lexing their joined text. A merge
// that fails to produce a single valid token falls back to leaving both
// operands as adjacent tokens and raises MacroPasteFailure.
func applyPaste(p *Preprocessor, toks []token.Token, useSpan sourcemap.Span) []token.Token {
	out := make([]token.Token, 0, len(toks))
	i := 0
	for i < len(toks) {
		if i+2 < len(toks) && len(out) > 0 &&
			toks[i].Kind == token.Grave && toks[i+1].Kind == token.Grave {
			left := out[len(out)-1]
			right := toks[i+2]
			merged, ok := pasteTokens(p, left, right)
			if ok {
				out[len(out)-1] = merged
			} else {
				p.report(diag.MacroPasteFailure, useSpan,
					"token paste `` "+left.Text+" `` "+right.Text+" `` did not produce a single valid token")
				out = append(out, toks[i], toks[i+1], right)
			}
			i += 3
			continue
		}
		out = append(out, toks[i])
		i++
	}
	return out
}

func pasteTokens(p *Preprocessor, left, right token.Token) (token.Token, bool) {
	text := left.Text + right.Text
	if text == "" {
		return token.Token{}, false
	}
	id := p.sm.AddVirtual("<paste>", []byte(text))
	bag := diag.NewBag(4)
	lx := lexer.New(p.sm.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	first := lx.Next()
	if bag.HasErrors() || first.Kind == token.Invalid || first.Kind == token.EOF {
		return token.Token{}, false
	}
	second := lx.Next()
	if second.Kind != token.EOF {
		return token.Token{}, false
	}
	first.Span = left.Span.Cover(right.Span)
	return first, true
}

// expandIntrinsic renders __LINE__/__FILE__ relative to useSpan, honoring
// any `line directive override active at that offset (§4.A, §4.E).
func (p *Preprocessor) expandIntrinsic(m *Macro, useSpan sourcemap.Span) {
	loc := p.sm.ReportedLocation(useSpan.Buffer, useSpan.Start)
	var tok token.Token
	switch m.Intrinsic {
	case IntrinsicLine:
		val := svint.FromUint64(unsizedIntWidth, false, uint64(loc.Line))
		tok = token.Token{Kind: token.IntLit, Span: useSpan, Text: strconv.FormatUint(uint64(loc.Line), 10), Value: &val}
	case IntrinsicFile:
		tok = token.Token{Kind: token.StringLit, Span: useSpan, Text: strconv.Quote(loc.File), Value: loc.File}
	}
	p.pending = append(p.pending, tok)
}
