package preprocess

import (
	"strconv"
	"strings"

	"svfront/internal/diag"
	"svfront/internal/lexer"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

// dirHandler processes one recognized directive name. graveSpan is the
// opening backtick; dirTok is the directive-name token itself (e.g.
// Ident "timescale"). A handler is responsible for consuming everything up
// to and including EndOfDirective, directly or via skipRestOfDirective.
type dirHandler func(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token)

// condHandlers are dispatched regardless of the current conditional-active
// state, since `ifdef/`elsif/`else/`endif must keep the branch stack in
// sync even while skipping disabled text.
var condHandlers = map[string]dirHandler{
	"ifdef":  handleIfdef,
	"ifndef": handleIfndef,
	"elsif":  handleElsif,
	"else":   handleElse,
	"endif":  handleEndif,
}

// otherHandlers are only consulted while the conditional stack is active;
// while inactive their directive lines are folded into disabled text like
// any other token.
var otherHandlers = map[string]dirHandler{
	"define":            handleDefine,
	"undef":             handleUndef,
	"undefineall":       handleUndefineAll,
	"resetall":          handleResetall,
	"include":           handleInclude,
	"timescale":         handleTimescale,
	"default_nettype":   handleDefaultNettype,
	"unconnected_drive": handleUnconnectedDrive,
	"nounconnected_drive": func(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
		p.unconnectedDrive = ""
		p.skipRestOfDirective()
	},
	"celldefine": func(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
		p.celldefineDepth++
		p.skipRestOfDirective()
	},
	"endcelldefine": handleEndcelldefine,
	"begin_keywords": handleBeginKeywords,
	"end_keywords":   handleEndKeywords,
	"line":           handleLine,
	"pragma":         handlePragma,
}

// handleGrave dispatches whatever follows a backtick just read from the
// frame stack. fromLexer distinguishes a fresh backtick scanned live from
// source (where directives and unknown-macro backticks are diagnosed) from
// one replayed out of an already-expanded macro body (where only a live
// macro invocation is recognized; anything else passes through as inert
// literal text, per the rule that directives cannot appear inside a macro
// body).
func (p *Preprocessor) handleGrave(graveSpan sourcemap.Span, fromLexer bool) {
	var nameTok token.Token
	haveName := false

	if fromLexer {
		lf := p.currentLexerFrame()
		lf.lx.SetMode(lexer.ModeDirective)
		nameTok = lf.lx.Next()
		haveName = nameTok.Kind != token.EOF && nameTok.Kind != token.EndOfDirective
	} else {
		t, ok := p.rawNext()
		nameTok = t
		haveName = ok
	}

	if !haveName {
		if fromLexer {
			p.absorbDisabledSpan(graveSpan)
		} else {
			p.pushBack(token.Token{Kind: token.Grave, Span: graveSpan})
		}
		return
	}

	name := nameTok.Text

	if h, ok := condHandlers[name]; ok && fromLexer {
		h(p, graveSpan, nameTok)
		return
	}

	active := p.cond.active()

	if !active {
		var end sourcemap.Span
		if fromLexer {
			end = p.skipRestOfDirective()
		}
		p.absorbDisabledSpan(graveSpan.Cover(nameTok.Span).Cover(end))
		return
	}

	if fromLexer {
		if h, ok := otherHandlers[name]; ok {
			h(p, graveSpan, nameTok)
			return
		}
	}

	if m, ok := p.macros.Lookup(name); ok {
		p.expandMacroInvocation(m, graveSpan, nameTok, fromLexer)
		return
	}

	if fromLexer {
		p.report(diag.DirUnknownDirective, graveSpan.Cover(nameTok.Span), "unknown compiler directive `"+name)
		p.skipRestOfDirective()
		return
	}

	// A stray backtick+identifier inside a macro body that names neither
	// a directive nor a live macro passes through as ordinary tokens.
	p.pending = append(p.pending, token.Token{Kind: token.Grave, Span: graveSpan}, nameTok)
}

func handleUndef(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	nameTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(nameTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	if nameTok.Kind != token.Ident {
		return
	}
	if !p.macros.Undefine(nameTok.Text) {
		p.report(diag.MacroUndefUnknown, full, "`undef of a macro that was never defined: "+nameTok.Text)
	}
}

func handleUndefineAll(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	p.macros.UndefineAll()
	p.skipRestOfDirective()
}

// handleResetall reverts directive *state* (timescale, default net type,
// unconnected-drive, celldefine nesting) to its initial values. The macro
// table is left untouched: `resetall does not imply `undefineall.
func handleResetall(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	full := graveSpan.Cover(dirTok.Span)
	lx := p.currentLexerFrame().lx
	if next := lx.Peek(); next.Kind == token.EndOfDirective {
		// Scanning the EndOfDirective already put the lexer back in
		// ModeNormal; consume it here, since skipRestOfDirective would
		// switch back into ModeDirective for the following line.
		lx.Next()
	} else {
		end := p.skipRestOfDirective()
		p.report(diag.DirResetallUnexpectedArg, full.Cover(end), "`resetall takes no arguments")
	}
	p.timescale = ""
	p.defaultNetType = ""
	p.unconnectedDrive = ""
	p.celldefineDepth = 0
}

func handleTimescale(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	var parts []string
	for {
		t := lf.lx.Next()
		if t.Kind == token.EndOfDirective || t.Kind == token.EOF {
			break
		}
		parts = append(parts, t.Text)
	}
	text := strings.Join(parts, "")
	if !validTimescale(text) {
		p.report(diag.DirTimescaleBadSyntax, graveSpan.Cover(dirTok.Span), "malformed `timescale directive: "+text)
		return
	}
	p.timescale = text
}

func validTimescale(s string) bool {
	i := strings.Index(s, "/")
	if i < 0 {
		return false
	}
	return validTimeUnitSpec(s[:i]) && validTimeUnitSpec(s[i+1:])
}

func validTimeUnitSpec(s string) bool {
	for _, unit := range []string{"fs", "ps", "ns", "us", "ms", "s"} {
		if strings.HasSuffix(s, unit) {
			mag := s[:len(s)-len(unit)]
			switch mag {
			case "1", "10", "100":
				return true
			}
		}
	}
	return false
}

var netTypes = map[string]bool{
	"wire": true, "wand": true, "wor": true, "tri": true, "tri0": true,
	"tri1": true, "triand": true, "trior": true, "trireg": true,
	"uwire": true, "supply0": true, "supply1": true, "none": true,
}

func handleDefaultNettype(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	netTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(netTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	if !netTypes[netTok.Text] {
		p.report(diag.DirDefaultNettypeBadNet, full, "unknown net type in `default_nettype: "+netTok.Text)
		return
	}
	p.defaultNetType = netTok.Text
}

var driveStrengths = map[string]bool{"pull0": true, "pull1": true}

func handleUnconnectedDrive(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	valTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(valTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	if !driveStrengths[valTok.Text] {
		p.report(diag.DirUnconnectedDriveBadX, full, "unknown drive strength in `unconnected_drive: "+valTok.Text)
		return
	}
	p.unconnectedDrive = valTok.Text
}

func handleEndcelldefine(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	full := graveSpan.Cover(dirTok.Span)
	end := p.skipRestOfDirective()
	if p.celldefineDepth == 0 {
		p.report(diag.DirCelldefineUnmatched, full.Cover(end), "`endcelldefine without matching `celldefine")
		return
	}
	p.celldefineDepth--
}

func handleBeginKeywords(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	verTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(verTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	ver, ok := parseKeywordVersion(verTok)
	if !ok {
		p.report(diag.DirBeginKeywordsBadVer, full, "unknown keyword version in `begin_keywords")
		return
	}
	p.keywordStack = append(p.keywordStack, ver)
	lf.lx.SetKeywordVersion(ver)
}

func handleEndKeywords(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	full := graveSpan.Cover(dirTok.Span)
	end := p.skipRestOfDirective()
	if len(p.keywordStack) == 0 {
		p.report(diag.DirEndKeywordsUnmatched, full.Cover(end), "`end_keywords without matching `begin_keywords")
		return
	}
	p.keywordStack = p.keywordStack[:len(p.keywordStack)-1]
	if lf := p.currentLexerFrame(); lf != nil {
		lf.lx.SetKeywordVersion(p.currentKeywordVersion())
	}
}

func parseKeywordVersion(t token.Token) (token.KeywordVersion, bool) {
	s, ok := t.Value.(string)
	if !ok {
		s = strings.Trim(t.Text, "\"")
	}
	switch s {
	case "1364-1995":
		return token.KeywordsVerilog1995, true
	case "1364-2001":
		return token.KeywordsVerilog2001, true
	case "1364-2001-noconfig":
		return token.KeywordsVerilog2001NoConfig, true
	case "1800-2005":
		return token.KeywordsSystemVerilog2005, true
	case "1800-2009":
		return token.KeywordsSystemVerilog2009, true
	case "1800-2012":
		return token.KeywordsSystemVerilog2012, true
	case "1800-2017":
		return token.KeywordsSystemVerilog2017, true
	default:
		return 0, false
	}
}

// handleLine implements `line <number> "<file>" <level>, installing a
// reported-location override on the source map (§4.A) so subsequent
// diagnostics and __LINE__/__FILE__ expansions reflect it instead of the
// buffer's physical coordinates.
func handleLine(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	numTok := lf.lx.Next()
	fileTok := lf.lx.Next()
	levelTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(numTok.Span).Cover(fileTok.Span).Cover(levelTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)

	if numTok.Kind != token.IntLit || fileTok.Kind != token.StringLit {
		p.report(diag.DirLineBadSyntax, full, "malformed `line directive")
		return
	}
	line, err := strconv.ParseUint(numTok.Text, 10, 32)
	if err != nil {
		p.report(diag.DirLineBadSyntax, full, "malformed `line directive: bad line number")
		return
	}
	switch levelTok.Text {
	case "0", "1", "2":
	default:
		p.report(diag.DirLineBadSyntax, full, "malformed `line directive: level must be 0, 1, or 2")
		return
	}
	file, _ := fileTok.Value.(string)
	p.sm.AddLineDirective(graveSpan.Buffer, full.End, uint32(line), file)
}

func handlePragma(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	nameTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(nameTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	if nameTok.Kind != token.Ident {
		p.report(diag.DirPragmaBadSyntax, full, "malformed `pragma directive")
	}
}

func handleIfdef(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	pushIfCommon(p, graveSpan, dirTok, false)
}

func handleIfndef(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	pushIfCommon(p, graveSpan, dirTok, true)
}

func pushIfCommon(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token, inverted bool) {
	lf := p.currentLexerFrame()
	nameTok := lf.lx.Next()
	p.skipRestOfDirective()
	defined := nameTok.Kind == token.Ident && p.macros.IsDefined(nameTok.Text)
	p.cond.pushIf(defined, inverted)
}

func handleElsif(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	nameTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(nameTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	defined := nameTok.Kind == token.Ident && p.macros.IsDefined(nameTok.Text)
	if !p.cond.elsif(defined) {
		p.report(diag.CondElsifWithoutIf, full, "`elsif without matching `ifdef/`ifndef")
	}
}

func handleElse(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	full := graveSpan.Cover(dirTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	if !p.cond.els() {
		if p.cond.empty() {
			p.report(diag.CondElseWithoutIf, full, "`else without matching `ifdef/`ifndef")
		} else {
			p.report(diag.CondDuplicateElse, full, "multiple `else clauses for the same `ifdef/`ifndef")
		}
	}
}

func handleEndif(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	full := graveSpan.Cover(dirTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)
	if !p.cond.endif() {
		p.report(diag.CondEndifWithoutIf, full, "`endif without matching `ifdef/`ifndef")
	}
}
