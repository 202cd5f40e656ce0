package preprocess

import (
	"svfront/internal/diag"
	"svfront/internal/lexer"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

const (
	// DefaultMaxIncludeDepth bounds `include nesting.
	DefaultMaxIncludeDepth = 32
	// DefaultMaxMacroDepth bounds total nested macro expansion frames, as
	// a backstop against pathological (but non-self-referential) chains
	// of distinct macros expanding into one another.
	DefaultMaxMacroDepth = 64
	// unsizedIntWidth is the width IEEE 1800 assigns to an unsized
	// decimal literal, used to render __LINE__.
	unsizedIntWidth = 32
	// maxDiagnostics bounds how many diagnostics report will emit before
	// falling silent, mirroring lexer.Options.MaxErrors.
	maxDiagnostics = 200
)

// Options configures a Preprocessor.
type Options struct {
	// Reporter receives preprocessor diagnostics. Nil drops them, mirroring
	// lexer.Options.Reporter.
	Reporter diag.Reporter
	// IncludeResolver resolves `include operands to file content; nil
	// makes every `include fail with DirIncludeNotFound.
	IncludeResolver IncludeResolver
	// KeywordVersion seeds the keyword set every pushed lexer starts with,
	// before any `begin_keywords directive is seen.
	KeywordVersion token.KeywordVersion
	// MaxIncludeDepth overrides DefaultMaxIncludeDepth; zero keeps it.
	MaxIncludeDepth int
	// MaxMacroDepth overrides DefaultMaxMacroDepth; zero keeps it.
	MaxMacroDepth int
	// Predefine installs text macros before the first token is pulled,
	// as if by a `+define+NAME=VALUE` command-line switch.
	Predefine map[string]string
	// PredefineFiles overrides the synthetic file name attributed to
	// diagnostics raised while lexing a Predefine entry's text; entries
	// absent here fall back to "<command-line define NAME>".
	PredefineFiles map[string]string
}

// Preprocessor is a pull-based token stream (component E): Next drives a
// stack of lexer/token frames, interpreting compiler directives and macro
// invocations along the way so callers only ever see ordinary tokens.
type Preprocessor struct {
	sm   *sourcemap.SourceMap
	opts Options

	macros *MacroTable
	cond   *condStack
	frames []argSource

	expansionStack []string
	includeDepth   int
	includeStack   []string

	keywordStack []token.KeywordVersion

	timescale        string
	defaultNetType   string
	unconnectedDrive string
	celldefineDepth  int

	// pending holds tokens produced ahead of Next's caller: pushed-back
	// lookahead during argument parsing, intrinsic expansions, and the
	// literal Grave+name fallthrough inside an inert macro body.
	pending []token.Token

	// disabledSpan accumulates the source span skipped inside an inactive
	// `ifdef/`ifndef branch; it is attached as leading trivia to the next
	// token actually returned.
	disabledSpan *sourcemap.Span

	errCount                 int
	reportedUnterminatedCond bool
}

// New creates a Preprocessor reading top from sm, starting active.
func New(sm *sourcemap.SourceMap, top sourcemap.BufferID, opts Options) *Preprocessor {
	if opts.KeywordVersion == 0 {
		// A zero token.KeywordVersion names no version (the constants start
		// at one); resolve an unset Options.KeywordVersion to the language
		// default here, the same promotion lexer.New applies, so a later
		// `end_keywords popping back to "no override" restores the right
		// version instead of the zero value.
		opts.KeywordVersion = token.KeywordsDefault
	}
	p := &Preprocessor{
		sm:     sm,
		opts:   opts,
		macros: NewMacroTable(),
		cond:   newCondStack(),
	}
	p.macros.Define(&Macro{Name: "__LINE__", Intrinsic: IntrinsicLine})
	p.macros.Define(&Macro{Name: "__FILE__", Intrinsic: IntrinsicFile})
	for name, value := range opts.Predefine {
		file := opts.PredefineFiles[name]
		if file == "" {
			file = "<command-line define " + name + ">"
		}
		p.predefineText(name, value, file)
	}
	p.pushLexerFrame(top, true)
	return p
}

// predefineText installs a zero-argument macro whose body is a single raw
// text blob, the way a `+define+NAME=VALUE` command-line switch would.
func (p *Preprocessor) predefineText(name, value, diagnosticFile string) {
	id := p.sm.AddVirtual(diagnosticFile, []byte(value))
	buf := p.sm.Get(id)
	lx := lexer.New(buf, lexer.Options{})
	var body []token.Token
	for {
		t := lx.Next()
		if t.Kind == token.EOF {
			break
		}
		body = append(body, t)
	}
	p.macros.Define(&Macro{Name: name, Body: body})
}

func (p *Preprocessor) maxIncludeDepth() int {
	if p.opts.MaxIncludeDepth > 0 {
		return p.opts.MaxIncludeDepth
	}
	return DefaultMaxIncludeDepth
}

func (p *Preprocessor) maxMacroDepth() int {
	if p.opts.MaxMacroDepth > 0 {
		return p.opts.MaxMacroDepth
	}
	return DefaultMaxMacroDepth
}

func (p *Preprocessor) currentKeywordVersion() token.KeywordVersion {
	if len(p.keywordStack) > 0 {
		return p.keywordStack[len(p.keywordStack)-1]
	}
	return p.opts.KeywordVersion
}

func (p *Preprocessor) pushLexerFrame(id sourcemap.BufferID, isFile bool) {
	buf := p.sm.Get(id)
	lx := lexer.New(buf, lexer.Options{Reporter: p.opts.Reporter, KeywordVersion: p.currentKeywordVersion()})
	frame := &lexerFrame{lx: lx, isFile: isFile}
	if isFile {
		frame.path = buf.Path
		p.includeDepth++
		p.includeStack = append(p.includeStack, buf.Path)
	}
	p.frames = append(p.frames, frame)
}

func (p *Preprocessor) currentLexerFrame() *lexerFrame {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if lf, ok := p.frames[i].(*lexerFrame); ok {
			return lf
		}
	}
	return nil
}

// pop returns the next raw token from the frame stack, popping exhausted
// frames as it goes, along with whether that frame was a lexerFrame (as
// opposed to a macro-expansion or argument-substitution tokenFrame).
func (p *Preprocessor) pop() (token.Token, bool, bool) {
	for len(p.frames) > 0 {
		top := p.frames[len(p.frames)-1]
		tok, ok := top.next()
		if ok {
			_, isLexer := top.(*lexerFrame)
			return tok, isLexer, true
		}
		p.popFrame()
	}
	return token.Token{}, false, false
}

func (p *Preprocessor) popFrame() {
	top := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	switch f := top.(type) {
	case *lexerFrame:
		if f.isFile {
			p.includeDepth--
			if n := len(p.includeStack); n > 0 {
				p.includeStack = p.includeStack[:n-1]
			}
		}
	case *tokenFrame:
		if f.macroName != "" && len(p.expansionStack) > 0 {
			p.expansionStack = p.expansionStack[:len(p.expansionStack)-1]
		}
	}
}

// rawNext is like pop but discards the lexer/token-frame distinction, for
// internal callers (argument-list parsing) that only care about tokens.
func (p *Preprocessor) rawNext() (token.Token, bool) {
	if len(p.pending) > 0 {
		t := p.pending[0]
		p.pending = p.pending[1:]
		return t, true
	}
	t, _, ok := p.pop()
	return t, ok
}

func (p *Preprocessor) pushBack(t token.Token) {
	p.pending = append([]token.Token{t}, p.pending...)
}

func (p *Preprocessor) report(code diag.Code, sp sourcemap.Span, msg string) {
	if p.opts.Reporter == nil || p.errCount >= maxDiagnostics {
		return
	}
	p.errCount++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	if p.errCount == maxDiagnostics {
		diag.ReportInfo(p.opts.Reporter, diag.LimitMaxDiagnostics, sp,
			"maximum preprocessor diagnostic count reached; suppressing further diagnostics").Emit()
	}
}

// skipRestOfDirective drains tokens from the current lexer frame up to and
// including its EndOfDirective, returning the covered span. Every directive
// handler calls this (directly or through a shared helper) on both the
// success and error paths, so a malformed directive never desynchronizes
// the token stream.
func (p *Preprocessor) skipRestOfDirective() sourcemap.Span {
	lf := p.currentLexerFrame()
	if lf == nil {
		return sourcemap.Span{}
	}
	lf.lx.SetMode(lexer.ModeDirective)
	var sp sourcemap.Span
	first := true
	for {
		t := lf.lx.Next()
		if t.Kind == token.EndOfDirective || t.Kind == token.EOF {
			return sp
		}
		if first {
			sp = t.Span
			first = false
		} else {
			sp = sp.Cover(t.Span)
		}
	}
}

func (p *Preprocessor) absorbDisabled(tok token.Token) {
	if p.disabledSpan == nil {
		sp := tok.Span
		p.disabledSpan = &sp
		return
	}
	cover := p.disabledSpan.Cover(tok.Span)
	p.disabledSpan = &cover
}

func (p *Preprocessor) absorbDisabledSpan(sp sourcemap.Span) {
	if sp.Empty() && p.disabledSpan != nil {
		return
	}
	if p.disabledSpan == nil {
		p.disabledSpan = &sp
		return
	}
	cover := p.disabledSpan.Cover(sp)
	p.disabledSpan = &cover
}

func (p *Preprocessor) disabledText(sp sourcemap.Span) string {
	buf := p.sm.Get(sp.Buffer)
	if buf == nil || int(sp.End) > len(buf.Content) {
		return ""
	}
	return string(buf.Content[sp.Start:sp.End])
}

func (p *Preprocessor) finish(tok token.Token) token.Token {
	if p.disabledSpan != nil {
		trivia := token.Trivia{Kind: token.TriviaDisabledText, Span: *p.disabledSpan, Text: p.disabledText(*p.disabledSpan)}
		leading := make([]token.Trivia, 0, len(tok.Leading)+1)
		leading = append(leading, trivia)
		leading = append(leading, tok.Leading...)
		tok.Leading = leading
		p.disabledSpan = nil
	}
	return tok
}

// Next returns the next preprocessed token: directives are interpreted,
// macro invocations are expanded, and text inside an inactive conditional
// branch is folded into TriviaDisabledText rather than returned.
func (p *Preprocessor) Next() token.Token {
	for {
		if len(p.pending) > 0 {
			t := p.pending[0]
			p.pending = p.pending[1:]
			return p.finish(t)
		}

		tok, fromLexer, ok := p.pop()
		if !ok {
			if !p.cond.empty() && !p.reportedUnterminatedCond {
				p.reportedUnterminatedCond = true
				p.report(diag.CondUnterminatedBranch, sourcemap.Span{}, "unterminated conditional-compilation block at end of file")
			}
			return p.finish(token.Token{Kind: token.EOF})
		}

		if tok.Kind == token.Grave {
			p.handleGrave(tok.Span, fromLexer)
			continue
		}

		if !p.cond.active() {
			p.absorbDisabled(tok)
			continue
		}

		return p.finish(tok)
	}
}

// IsDefined reports whether name is currently a live macro.
func (p *Preprocessor) IsDefined(name string) bool { return p.macros.IsDefined(name) }

// Timescale returns the operand text of the most recent active `timescale
// directive, or "" if none has been seen.
func (p *Preprocessor) Timescale() string { return p.timescale }

// DefaultNetType returns the net type name installed by the most recent
// active `default_nettype directive; "wire" is the language default.
func (p *Preprocessor) DefaultNetType() string {
	if p.defaultNetType == "" {
		return "wire"
	}
	return p.defaultNetType
}
