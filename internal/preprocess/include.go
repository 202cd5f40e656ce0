package preprocess

import (
	"svfront/internal/diag"
	"svfront/internal/lexer"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

// IncludeSpec is the parsed operand of an `` `include `` directive.
type IncludeSpec struct {
	// Name is the file name with quotes/angle brackets stripped.
	Name string
	// Angled is true for `` `include <name> ``, false for `` `include "name" ``.
	Angled bool
}

// IncludeResolver resolves an `` `include `` operand to file content. path
// is used only for cycle detection and diagnostics; it need not be a real
// filesystem path.
type IncludeResolver interface {
	Resolve(spec IncludeSpec) (path string, content []byte, ok bool)
}

func handleInclude(p *Preprocessor, graveSpan sourcemap.Span, dirTok token.Token) {
	lf := p.currentLexerFrame()
	lf.lx.SetMode(lexer.ModeIncludeFileName)
	pathTok := lf.lx.Next()
	full := graveSpan.Cover(dirTok.Span).Cover(pathTok.Span)
	end := p.skipRestOfDirective()
	full = full.Cover(end)

	if pathTok.Kind == token.Invalid {
		// the lexer already reported the malformed path.
		return
	}
	spec, ok := parseIncludeOperand(pathTok)
	if !ok {
		p.report(diag.DirIncludeBadSyntax, full, "expected a quoted or angle-bracketed `include path")
		return
	}

	if p.opts.IncludeResolver == nil {
		p.report(diag.DirIncludeNotFound, full, "no include resolver configured for `include \""+spec.Name+"\"")
		return
	}
	if p.includeDepth >= p.maxIncludeDepth() {
		p.report(diag.LimitMaxIncludeDepth, full, "maximum `include nesting depth reached: "+spec.Name)
		return
	}

	path, content, ok := p.opts.IncludeResolver.Resolve(spec)
	if !ok {
		p.report(diag.DirIncludeNotFound, full, "include file not found: "+spec.Name)
		return
	}
	for _, active := range p.includeStack {
		if active == path {
			p.report(diag.DirIncludeCycle, full, "include cycle detected: "+path)
			return
		}
	}

	id := p.sm.Add(path, content, 0)
	p.pushLexerFrame(id, true)
}

func parseIncludeOperand(t token.Token) (IncludeSpec, bool) {
	if t.Kind != token.StringLit {
		return IncludeSpec{}, false
	}
	name, _ := t.Value.(string)
	angled := len(t.Text) > 0 && t.Text[0] == '<'
	return IncludeSpec{Name: name, Angled: angled}, true
}
