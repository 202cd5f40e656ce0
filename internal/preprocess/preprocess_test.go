package preprocess

import (
	"testing"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

func newPP(t *testing.T, content string) (*Preprocessor, *diag.Bag, *sourcemap.SourceMap) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("t.sv", []byte(content))
	bag := diag.NewBag(64)
	p := New(sm, id, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return p, bag, sm
}

func newPPWithResolver(t *testing.T, content string, res IncludeResolver) (*Preprocessor, *diag.Bag) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("t.sv", []byte(content))
	bag := diag.NewBag(64)
	p := New(sm, id, Options{Reporter: &diag.BagReporter{Bag: bag}, IncludeResolver: res})
	return p, bag
}

func collect(p *Preprocessor) []token.Token {
	var out []token.Token
	for i := 0; i < 10000; i++ {
		tok := p.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
	return out
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tk := range toks {
		out[i] = tk.Text
	}
	return out
}

func requireTexts(t *testing.T, toks []token.Token, want []string) {
	t.Helper()
	got := texts(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestOrdinaryTokensPassThroughUnchanged(t *testing.T) {
	p, bag, _ := newPP(t, "wire a, b;")
	toks := collect(p)
	requireTexts(t, toks, []string{"wire", "a", ",", "b", ";"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestSimpleTextMacro(t *testing.T) {
	p, bag, _ := newPP(t, "`define WIDTH 8\nwire [`WIDTH-1:0] x;")
	toks := collect(p)
	requireTexts(t, toks, []string{
		"wire", "[", "8", "-", "1", ":", "0", "]", "x", ";",
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestUndefinedMacroLeavesNoTrace(t *testing.T) {
	p, bag, _ := newPP(t, "`define A 1\n`undef A\n`A")
	toks := collect(p)
	if len(toks) != 0 {
		t.Fatalf("expected no tokens once `undef removed the macro, got %v", texts(toks))
	}
	if !bag.HasErrors() {
		t.Fatalf("expected DirUnknownDirective/MacroUndefinedUsage-class error for `A after `undef")
	}
}

func TestUndefUnknownMacroDiagnoses(t *testing.T) {
	p, bag, _ := newPP(t, "`undef NEVER_DEFINED\n")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MacroUndefUnknown {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MacroUndefUnknown, got %v", bag.Items())
	}
}

func TestFunctionLikeMacroSubstitutesArguments(t *testing.T) {
	p, bag, _ := newPP(t, "`define MAX(a,b) ((a) > (b) ? (a) : (b))\n`MAX(x, y)")
	toks := collect(p)
	requireTexts(t, toks, []string{
		"(", "(", "x", ")", ">", "(", "y", ")", "?", "(", "x", ")", ":", "(", "y", ")", ")",
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestFunctionLikeMacroDefaultArgument(t *testing.T) {
	p, bag, _ := newPP(t, "`define INC(x, step=1) x+step\n`INC(5)")
	toks := collect(p)
	requireTexts(t, toks, []string{"5", "+", "1"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestMacroArgCountMismatchDiagnoses(t *testing.T) {
	p, bag, _ := newPP(t, "`define PAIR(a,b) a+b\n`PAIR(1)")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MacroArgCountMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MacroArgCountMismatch, got %v", bag.Items())
	}
}

func TestFunctionLikeMacroCallAllowsTriviaBeforeParen(t *testing.T) {
	p, bag, _ := newPP(t, "`define MAX(a,b) ((a)>(b))\n`MAX (x, y)")
	toks := collect(p)
	requireTexts(t, toks, []string{"(", "(", "x", ")", ">", "(", "y", ")", ")"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestExplicitlyEmptyActualWithNoDefaultDiagnoses(t *testing.T) {
	p, bag, _ := newPP(t, "`define PAIR(a,b) a+b\n`PAIR(,y)")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MacroArgCountMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MacroArgCountMismatch for empty actual with no default, got %v", bag.Items())
	}
}

func TestNestedMacroExpansion(t *testing.T) {
	p, bag, _ := newPP(t, "`define INNER 1\n`define OUTER `INNER + 1\n`OUTER")
	toks := collect(p)
	requireTexts(t, toks, []string{"1", "+", "1"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestSelfReferentialMacroIsRejected(t *testing.T) {
	p, bag, _ := newPP(t, "`define LOOP `LOOP + 1\n`LOOP")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MacroRecursiveExpansion {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MacroRecursiveExpansion, got %v", bag.Items())
	}
}

func TestTokenPasteJoinsIdentifiers(t *testing.T) {
	p, bag, _ := newPP(t, "`define CAT(a,b) a``b\n`CAT(foo,bar)")
	toks := collect(p)
	requireTexts(t, toks, []string{"foobar"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestTokenPasteFailureFallsBackToJuxtaposition(t *testing.T) {
	p, bag, _ := newPP(t, "`define CAT(a,b) a``b\n`CAT(1,+)")
	toks := collect(p)
	if len(toks) == 0 {
		t.Fatalf("expected some tokens even on paste failure")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MacroPasteFailure {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MacroPasteFailure, got %v", bag.Items())
	}
}

func TestStringifyOperand(t *testing.T) {
	p, bag, _ := newPP(t, "`define STR(x) `\"value = x`\"\n`STR(A)")
	toks := collect(p)
	if len(toks) != 1 || toks[0].Kind != token.StringLit {
		t.Fatalf("expected a single string literal, got %v", toks)
	}
	got, _ := toks[0].Value.(string)
	if got != "value = A" {
		t.Fatalf("stringify result = %q, want %q", got, "value = A")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestLineIntrinsicReflectsUsageSite(t *testing.T) {
	p, bag, _ := newPP(t, "a\nb\n`__LINE__")
	toks := collect(p)
	requireTexts(t, toks, []string{"a", "b", "3"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestFileIntrinsicHonorsLineDirective(t *testing.T) {
	p, bag, _ := newPP(t, "`line 100 \"generated.sv\" 0\n`__FILE__")
	toks := collect(p)
	if len(toks) != 1 {
		t.Fatalf("expected exactly one token, got %v", texts(toks))
	}
	got, _ := toks[0].Value.(string)
	if got != "generated.sv" {
		t.Fatalf("__FILE__ = %q, want %q", got, "generated.sv")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestIfdefTakenBranch(t *testing.T) {
	p, bag, _ := newPP(t, "`define FOO\n`ifdef FOO\nyes\n`else\nno\n`endif")
	toks := collect(p)
	requireTexts(t, toks, []string{"yes"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestIfndefUntakenBranchIsFoldedIntoDisabledTrivia(t *testing.T) {
	p, bag, _ := newPP(t, "`ifndef FOO\nno\n`else\nyes\n`endif")
	toks := collect(p)
	requireTexts(t, toks, []string{"no"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestNestedConditional(t *testing.T) {
	p, bag, _ := newPP(t, "`define A\n`ifdef A\n`ifdef B\ninner\n`else\nfallback\n`endif\n`endif")
	toks := collect(p)
	requireTexts(t, toks, []string{"fallback"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestElsifChain(t *testing.T) {
	p, bag, _ := newPP(t, "`define B\n`ifdef A\none\n`elsif B\ntwo\n`elsif C\nthree\n`else\nfour\n`endif")
	toks := collect(p)
	requireTexts(t, toks, []string{"two"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestElseWithoutIfDiagnoses(t *testing.T) {
	p, bag, _ := newPP(t, "`else\nx")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CondElseWithoutIf {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CondElseWithoutIf, got %v", bag.Items())
	}
}

func TestUnterminatedConditionalAtEOF(t *testing.T) {
	p, bag, _ := newPP(t, "`ifdef FOO\nx")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CondUnterminatedBranch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CondUnterminatedBranch, got %v", bag.Items())
	}
}

func TestMacrosAreInertInsideDisabledBranch(t *testing.T) {
	p, bag, _ := newPP(t, "`ifdef NOPE\n`define A 1\n`endif\n`ifdef A\nshouldnotappear\n`else\nfine\n`endif")
	toks := collect(p)
	requireTexts(t, toks, []string{"fine"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestDefaultNettypeAndTimescaleTrackedAsState(t *testing.T) {
	p, bag, _ := newPP(t, "`timescale 1ns/1ps\n`default_nettype none\nwire w;")
	collect(p)
	if p.Timescale() != "1ns/1ps" {
		t.Fatalf("Timescale() = %q, want %q", p.Timescale(), "1ns/1ps")
	}
	if p.DefaultNetType() != "none" {
		t.Fatalf("DefaultNetType() = %q, want %q", p.DefaultNetType(), "none")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestResetallClearsStateButNotMacros(t *testing.T) {
	p, bag, _ := newPP(t, "`default_nettype none\n`define KEEP 1\n`resetall\n`KEEP")
	toks := collect(p)
	requireTexts(t, toks, []string{"1"})
	if p.DefaultNetType() != "wire" {
		t.Fatalf("DefaultNetType() after `resetall = %q, want %q", p.DefaultNetType(), "wire")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestUnknownDirectiveDiagnoses(t *testing.T) {
	p, bag, _ := newPP(t, "`bogus_directive\n")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.DirUnknownDirective {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DirUnknownDirective, got %v", bag.Items())
	}
}

type mapIncludeResolver map[string]string

func (m mapIncludeResolver) Resolve(spec IncludeSpec) (string, []byte, bool) {
	content, ok := m[spec.Name]
	if !ok {
		return "", nil, false
	}
	return spec.Name, []byte(content), true
}

func TestIncludeSplicesInFileContent(t *testing.T) {
	res := mapIncludeResolver{"child.svh": "child_token"}
	p, bag := newPPWithResolver(t, "before\n`include \"child.svh\"\nafter", res)
	toks := collect(p)
	requireTexts(t, toks, []string{"before", "child_token", "after"})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestIncludeNotFoundDiagnoses(t *testing.T) {
	p, bag := newPPWithResolver(t, "`include \"missing.svh\"\n", mapIncludeResolver{})
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.DirIncludeNotFound {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DirIncludeNotFound, got %v", bag.Items())
	}
}

func TestIncludeCycleDetected(t *testing.T) {
	res := mapIncludeResolver{"a.svh": "`include \"a.svh\""}
	p, bag := newPPWithResolver(t, "`include \"a.svh\"\n", res)
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.DirIncludeCycle {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DirIncludeCycle, got %v", bag.Items())
	}
}

func TestBeginEndKeywordsTogglesVersion(t *testing.T) {
	p, bag, _ := newPP(t, "`begin_keywords \"1364-1995\"\nlogic\n`end_keywords\nlogic")
	toks := collect(p)
	requireTexts(t, toks, []string{"logic", "logic"})
	if toks[0].Kind != token.Ident {
		t.Fatalf("logic under 1364-1995 should lex as Ident, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.KwLogic {
		t.Fatalf("logic after `end_keywords should lex as KwLogic, got %v", toks[1].Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestEndKeywordsWithoutBeginDiagnoses(t *testing.T) {
	p, bag, _ := newPP(t, "`end_keywords\n")
	collect(p)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.DirEndKeywordsUnmatched {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DirEndKeywordsUnmatched, got %v", bag.Items())
	}
}
