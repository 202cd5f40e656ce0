package lexer

import (
	"testing"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
	"svfront/internal/svint"
	"svfront/internal/token"
)

func newLexer(t *testing.T, content string) (*Lexer, *diag.Bag) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("t.sv", []byte(content))
	bag := diag.NewBag(64)
	return New(sm.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}}), bag
}

func newLexerVersion(t *testing.T, content string, ver token.KeywordVersion) (*Lexer, *diag.Bag) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("t.sv", []byte(content))
	bag := diag.NewBag(64)
	return New(sm.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}, KeywordVersion: ver}), bag
}

func requireTok(t *testing.T, lx *Lexer, wantKind token.Kind, wantText string) token.Token {
	t.Helper()
	tok := lx.Next()
	if tok.Kind != wantKind {
		t.Fatalf("kind = %v, want %v (text %q)", tok.Kind, wantKind, tok.Text)
	}
	if wantText != "" && tok.Text != wantText {
		t.Fatalf("text = %q, want %q", tok.Text, wantText)
	}
	return tok
}

func TestIdentifiers(t *testing.T) {
	lx, bag := newLexer(t, "foo _bar baz123")
	requireTok(t, lx, token.Ident, "foo")
	requireTok(t, lx, token.Ident, "_bar")
	requireTok(t, lx, token.Ident, "baz123")
	requireTok(t, lx, token.EOF, "")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestIdentifierWithDollarContinuation(t *testing.T) {
	lx, _ := newLexer(t, "foo$bar")
	requireTok(t, lx, token.Ident, "foo$bar")
}

func TestUnicodeIdentifier(t *testing.T) {
	lx, bag := newLexer(t, "écho x")
	requireTok(t, lx, token.Invalid, "é")
	requireTok(t, lx, token.Ident, "cho")
	requireTok(t, lx, token.Ident, "x")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexNonASCIIByte {
		t.Fatalf("expected LexNonASCIIByte, got %v", bag.Items())
	}
}

func TestKeywordRecognitionIsCaseSensitive(t *testing.T) {
	lx, _ := newLexer(t, "module MODULE Module")
	requireTok(t, lx, token.KwModule, "module")
	requireTok(t, lx, token.Ident, "MODULE")
	requireTok(t, lx, token.Ident, "Module")
}

func TestKeywordVersionGating(t *testing.T) {
	lx, _ := newLexerVersion(t, "logic", token.KeywordsVerilog1995)
	requireTok(t, lx, token.Ident, "logic")

	lx2, _ := newLexerVersion(t, "logic", token.KeywordsSystemVerilog2005)
	requireTok(t, lx2, token.KwLogic, "logic")

	lx3, _ := newLexer(t, "logic")
	requireTok(t, lx3, token.KwLogic, "logic")
}

func TestSetKeywordVersionMidStream(t *testing.T) {
	lx, _ := newLexerVersion(t, "logic logic", token.KeywordsVerilog1995)
	requireTok(t, lx, token.Ident, "logic")
	lx.SetKeywordVersion(token.KeywordsDefault)
	requireTok(t, lx, token.KwLogic, "logic")
}

func TestEscapedIdentifier(t *testing.T) {
	lx, bag := newLexer(t, "\\foo+bar baz")
	tok := requireTok(t, lx, token.EscapedIdent, "\\foo+bar")
	if tok.Text[0] != '\\' {
		t.Fatalf("expected leading backslash, got %q", tok.Text)
	}
	requireTok(t, lx, token.Ident, "baz")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestEscapedIdentifierEmptyIsError(t *testing.T) {
	lx, bag := newLexer(t, "\\ ")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadEscapedIdentifier {
		t.Fatalf("expected LexBadEscapedIdentifier, got %v", bag.Items())
	}
}

func TestSystemIdentifier(t *testing.T) {
	lx, _ := newLexer(t, "$display $")
	requireTok(t, lx, token.SystemIdent, "$display")
	requireTok(t, lx, token.Dollar, "$")
}

func TestUnsizedDecimalLiteral(t *testing.T) {
	lx, bag := newLexer(t, "659")
	tok := requireTok(t, lx, token.IntLit, "659")
	v, ok := tok.Value.(*svint.Value)
	if !ok {
		t.Fatalf("expected *svint.Value, got %T", tok.Value)
	}
	if v.Width() != 32 {
		t.Fatalf("width = %d, want 32", v.Width())
	}
	if v.ToBigInt().Int64() != 659 {
		t.Fatalf("value = %v, want 659", v.ToBigInt())
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestUnsizedDecimalWithUnderscores(t *testing.T) {
	lx, _ := newLexer(t, "1_000_000")
	tok := requireTok(t, lx, token.IntLit, "1_000_000")
	v := tok.Value.(*svint.Value)
	if v.ToBigInt().Int64() != 1000000 {
		t.Fatalf("value = %v, want 1000000", v.ToBigInt())
	}
}

func TestSizedHexLiteral(t *testing.T) {
	lx, _ := newLexer(t, "8'hFF")
	tok := requireTok(t, lx, token.IntLit, "8'hFF")
	v := tok.Value.(*svint.Value)
	if v.Width() != 8 {
		t.Fatalf("width = %d, want 8", v.Width())
	}
	if v.ToBigInt().Int64() != 255 {
		t.Fatalf("value = %v, want 255", v.ToBigInt())
	}
}

func TestSizedBinaryLiteralWithUnknownDigit(t *testing.T) {
	lx, _ := newLexer(t, "4'b10x1")
	tok := requireTok(t, lx, token.IntLit, "4'b10x1")
	v := tok.Value.(*svint.Value)
	if !v.HasUnknown() {
		t.Fatalf("expected unknown bits in %v", v)
	}
	if v.Bit(0) != svint.One || v.Bit(1) != svint.X || v.Bit(2) != svint.Zero || v.Bit(3) != svint.One {
		t.Fatalf("bit pattern mismatch: %v %v %v %v", v.Bit(3), v.Bit(2), v.Bit(1), v.Bit(0))
	}
}

func TestDecimalBasedAllUnknown(t *testing.T) {
	lx, _ := newLexer(t, "8'dx")
	tok := requireTok(t, lx, token.IntLit, "8'dx")
	v := tok.Value.(*svint.Value)
	for i := uint32(0); i < 8; i++ {
		if v.Bit(i) != svint.X {
			t.Fatalf("bit %d = %v, want x", i, v.Bit(i))
		}
	}
}

func TestDecimalBasedAllHighZ(t *testing.T) {
	lx, _ := newLexer(t, "8'dz")
	tok := requireTok(t, lx, token.IntLit, "8'dz")
	v := tok.Value.(*svint.Value)
	for i := uint32(0); i < 8; i++ {
		if v.Bit(i) != svint.Z {
			t.Fatalf("bit %d = %v, want z", i, v.Bit(i))
		}
	}
}

func TestNoSizeBasedLiteralUsesDefaultWidth(t *testing.T) {
	lx, _ := newLexer(t, "'h1F")
	tok := requireTok(t, lx, token.IntLit, "'h1F")
	v := tok.Value.(*svint.Value)
	if v.Width() != 32 {
		t.Fatalf("width = %d, want 32", v.Width())
	}
	if v.ToBigInt().Int64() != 0x1F {
		t.Fatalf("value = %v, want 0x1F", v.ToBigInt())
	}
}

func TestSignedBasedLiteral(t *testing.T) {
	lx, _ := newLexer(t, "'sd15")
	tok := requireTok(t, lx, token.IntLit, "'sd15")
	v := tok.Value.(*svint.Value)
	if !v.Signed() {
		t.Fatalf("expected signed value")
	}
	if v.ToBigInt().Int64() != 15 {
		t.Fatalf("value = %v, want 15", v.ToBigInt())
	}
}

func TestUnbasedUnsizedLiteral(t *testing.T) {
	for _, tc := range []struct {
		text string
		want svint.State
	}{
		{"'0", svint.Zero},
		{"'1", svint.One},
		{"'x", svint.X},
		{"'z", svint.Z},
	} {
		lx, _ := newLexer(t, tc.text)
		tok := requireTok(t, lx, token.UnbasedUnsizedLit, tc.text)
		if got, ok := tok.Value.(svint.State); !ok || got != tc.want {
			t.Fatalf("%s: value = %v (%T), want %v", tc.text, tok.Value, tok.Value, tc.want)
		}
	}
}

func TestBasedLiteralMissingBaseCharIsError(t *testing.T) {
	lx, bag := newLexer(t, "8'q1")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %v", bag.Items())
	}
}

func TestRealLiteral(t *testing.T) {
	lx, _ := newLexer(t, "3.14")
	tok := requireTok(t, lx, token.RealLit, "3.14")
	f, ok := tok.Value.(float64)
	if !ok || f != 3.14 {
		t.Fatalf("value = %v (%T), want 3.14", tok.Value, tok.Value)
	}
}

func TestRealLiteralRequiresTrailingDigit(t *testing.T) {
	// SystemVerilog real literals need a digit on both sides of '.'; "3."
	// followed by a non-digit lexes as an integer literal followed by Dot.
	lx, _ := newLexer(t, "3.x")
	requireTok(t, lx, token.IntLit, "3")
	requireTok(t, lx, token.Dot, ".")
	requireTok(t, lx, token.Ident, "x")
}

func TestRealLiteralWithExponent(t *testing.T) {
	lx, _ := newLexer(t, "1e10")
	tok := requireTok(t, lx, token.RealLit, "1e10")
	f := tok.Value.(float64)
	if f != 1e10 {
		t.Fatalf("value = %v, want 1e10", f)
	}
}

func TestTimeLiteral(t *testing.T) {
	lx, _ := newLexer(t, "10ns")
	tok := requireTok(t, lx, token.TimeLit, "10ns")
	f, ok := tok.Value.(float64)
	if !ok || f != 10 {
		t.Fatalf("value = %v (%T), want 10", tok.Value, tok.Value)
	}
}

func TestTimeLiteralNotConfusedWithIdentifier(t *testing.T) {
	// "10nsx" is not a time literal (identifier-continuation byte follows
	// the unit), so it must lex as a decimal literal followed by an ident.
	lx, _ := newLexer(t, "10nsx")
	requireTok(t, lx, token.IntLit, "10")
	requireTok(t, lx, token.Ident, "nsx")
}

func TestStringLiteralEscapes(t *testing.T) {
	lx, _ := newLexer(t, `"a\nb\tc\\d\"e"`)
	tok := requireTok(t, lx, token.StringLit, "")
	got := tok.Value.(string)
	want := "a\nb\tc\\d\"e"
	if got != want {
		t.Fatalf("decoded = %q, want %q", got, want)
	}
}

func TestStringLiteralHexAndOctalEscapes(t *testing.T) {
	lx, _ := newLexer(t, `"\x41\101"`)
	tok := requireTok(t, lx, token.StringLit, "")
	if tok.Value.(string) != "AA" {
		t.Fatalf("decoded = %q, want %q", tok.Value, "AA")
	}
}

func TestStringLiteralLineContinuation(t *testing.T) {
	lx, _ := newLexer(t, "\"a\\\nb\"")
	tok := requireTok(t, lx, token.StringLit, "")
	if tok.Value.(string) != "ab" {
		t.Fatalf("decoded = %q, want %q", tok.Value, "ab")
	}
}

func TestStringLiteralRawNewlineIsError(t *testing.T) {
	lx, bag := newLexer(t, "\"a\nb\"")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexRawNewlineInString {
		t.Fatalf("expected LexRawNewlineInString, got %v", bag.Items())
	}
}

func TestStringLiteralUnterminatedIsError(t *testing.T) {
	lx, bag := newLexer(t, `"abc`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", bag.Items())
	}
}

func TestOperatorsGreedyMatch(t *testing.T) {
	cases := []struct {
		text string
		kind token.Kind
	}{
		{"<<<=", token.SShlAssign},
		{">>>=", token.SShrAssign},
		{"===", token.EqEqEq},
		{"!==", token.BangEqEq},
		{"==?", token.EqEqQuestion},
		{"!=?", token.BangEqQuestion},
		{"<<=", token.ShlAssign},
		{">>=", token.ShrAssign},
		{"<<<", token.SShl},
		{">>>", token.SShr},
		{"->>", token.NonBlockTriggerArrow},
		{"::", token.ColonColon},
		{"->", token.Arrow},
		{".*", token.DotStar},
		{"+=", token.PlusAssign},
		{"**", token.StarStar},
		{"~&", token.TildeAmp},
		{"~|", token.TildePipe},
		{"~^", token.TildeCaret},
		{"^~", token.CaretTilde},
		{"&&", token.AmpAmp},
		{"||", token.PipePipe},
		{"==", token.EqEq},
		{"!=", token.BangEq},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"<<", token.Shl},
		{">>", token.Shr},
		{"++", token.PlusPlus},
		{"--", token.MinusMinus},
		{"+", token.Plus},
		{"`", token.Grave},
		{"@", token.At},
		{"#", token.Hash},
	}
	for _, tc := range cases {
		lx, bag := newLexer(t, tc.text)
		requireTok(t, lx, tc.kind, tc.text)
		if bag.HasErrors() {
			t.Fatalf("%s: unexpected diagnostics: %v", tc.text, bag.Items())
		}
	}
}

func TestUnknownCharacterIsError(t *testing.T) {
	lx, bag := newLexer(t, "\x01")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", bag.Items())
	}
}

func TestWhitespaceCoalescesIntoOneTrivia(t *testing.T) {
	lx, _ := newLexer(t, "a   \tb")
	requireTok(t, lx, token.Ident, "a")
	tok := requireTok(t, lx, token.Ident, "b")
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaWhitespace {
		t.Fatalf("leading = %+v, want single TriviaWhitespace", tok.Leading)
	}
}

func TestNewlinesCoalesceExceptInDirectiveMode(t *testing.T) {
	lx, _ := newLexer(t, "a\n\n\nb")
	requireTok(t, lx, token.Ident, "a")
	tok := requireTok(t, lx, token.Ident, "b")
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("leading = %+v, want single TriviaNewline", tok.Leading)
	}
	if tok.Leading[0].Text != "\n\n\n" {
		t.Fatalf("text = %q, want %q", tok.Leading[0].Text, "\n\n\n")
	}
}

func TestLineComment(t *testing.T) {
	lx, _ := newLexer(t, "a // comment\nb")
	requireTok(t, lx, token.Ident, "a")
	tok := requireTok(t, lx, token.Ident, "b")
	var kinds []token.TriviaKind
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	if len(kinds) < 2 || kinds[0] != token.TriviaWhitespace || kinds[1] != token.TriviaLineComment {
		t.Fatalf("leading kinds = %v", kinds)
	}
}

func TestBlockCommentDoesNotNest(t *testing.T) {
	lx, bag := newLexer(t, "/* outer /* inner */ tail */")
	tok := lx.Next()
	if len(tok.Leading) == 0 || tok.Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("expected leading block comment trivia, got %+v", tok.Leading)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected LexNestedBlockComment warning")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexNestedBlockComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexNestedBlockComment among diagnostics: %v", bag.Items())
	}
	// the comment closes at the first "*/", leaving " tail */" as trailing
	// garbage that lexes as ordinary tokens.
	if tok.Kind != token.Ident || tok.Text != "tail" {
		t.Fatalf("token = %v %q, want ident \"tail\"", tok.Kind, tok.Text)
	}
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	lx, bag := newLexer(t, "/* never closed")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if len(tok.Leading) == 0 || tok.Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("expected block comment trivia attached to EOF")
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", bag.Items())
	}
}

func TestLineContinuationTrivia(t *testing.T) {
	lx, _ := newLexer(t, "a \\\nb")
	requireTok(t, lx, token.Ident, "a")
	tok := requireTok(t, lx, token.Ident, "b")
	found := false
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaLineContinuation {
			found = true
		}
	}
	if !found {
		t.Fatalf("leading = %+v, want a TriviaLineContinuation", tok.Leading)
	}
}

func TestEOFCarriesTrailingTrivia(t *testing.T) {
	lx, _ := newLexer(t, "a   ")
	requireTok(t, lx, token.Ident, "a")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaWhitespace {
		t.Fatalf("expected trailing whitespace trivia attached to EOF, got %+v", tok.Leading)
	}
}

func TestEOFRepeatsOnSubsequentCalls(t *testing.T) {
	lx, _ := newLexer(t, "a")
	requireTok(t, lx, token.Ident, "a")
	first := lx.Next()
	second := lx.Next()
	if first.Kind != token.EOF || second.Kind != token.EOF {
		t.Fatalf("expected repeated EOF, got %v then %v", first.Kind, second.Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := newLexer(t, "foo bar")
	p := lx.Peek()
	if p.Kind != token.Ident || p.Text != "foo" {
		t.Fatalf("peek = %v %q", p.Kind, p.Text)
	}
	n := lx.Next()
	if n.Kind != token.Ident || n.Text != "foo" {
		t.Fatalf("next after peek = %v %q, want same as peek", n.Kind, n.Text)
	}
	requireTok(t, lx, token.Ident, "bar")
}

func TestDirectiveModeEmitsEndOfDirective(t *testing.T) {
	lx, _ := newLexer(t, "define FOO 1\nmodule")
	lx.SetMode(ModeDirective)
	requireTok(t, lx, token.Ident, "define")
	requireTok(t, lx, token.Ident, "FOO")
	requireTok(t, lx, token.IntLit, "1")
	tok := lx.Next()
	if tok.Kind != token.EndOfDirective {
		t.Fatalf("expected EndOfDirective, got %v", tok.Kind)
	}
	if lx.Mode() != ModeNormal {
		t.Fatalf("expected mode reset to ModeNormal after EndOfDirective")
	}
	requireTok(t, lx, token.KwModule, "module")
}

func TestIncludeFileNameModeQuoted(t *testing.T) {
	lx, _ := newLexer(t, `"foo/bar.svh" rest`)
	lx.SetMode(ModeIncludeFileName)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("expected StringLit, got %v", tok.Kind)
	}
	if tok.Value.(string) != "foo/bar.svh" {
		t.Fatalf("value = %q, want %q", tok.Value, "foo/bar.svh")
	}
	if lx.Mode() != ModeNormal {
		t.Fatalf("expected mode reset to ModeNormal")
	}
	requireTok(t, lx, token.Ident, "rest")
}

func TestIncludeFileNameModeAngleBracketed(t *testing.T) {
	lx, _ := newLexer(t, "<sys.svh>")
	lx.SetMode(ModeIncludeFileName)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("expected StringLit, got %v", tok.Kind)
	}
	if tok.Value.(string) != "sys.svh" {
		t.Fatalf("value = %q, want %q", tok.Value, "sys.svh")
	}
}

func TestBOMTriggersDiagnosticOnce(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("bom.sv", append([]byte{0xEF, 0xBB, 0xBF}, []byte("a")...))
	bag := diag.NewBag(8)
	lx := New(sm.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnicodeBOMRejected {
		t.Fatalf("expected LexUnicodeBOMRejected at construction, got %v", bag.Items())
	}
	requireTok(t, lx, token.Ident, "a")
}

func TestNonASCIIByteIsRejectedAsOneInvalidToken(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("nonascii.sv", []byte("wire caf\xc3\xa9 = 1;"))
	bag := diag.NewBag(8)
	lx := New(sm.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})

	requireTok(t, lx, token.KwWire, "wire")
	requireTok(t, lx, token.Ident, "caf")
	tok := requireTok(t, lx, token.Invalid, "\xc3\xa9")
	if tok.Span.Len() != 2 {
		t.Fatalf("got span length %d for a 2-byte UTF-8 sequence, want 2", tok.Span.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the non-ASCII sequence")
	}
	var found bool
	for _, d := range bag.Items() {
		if d.Code == diag.LexNonASCIIByte {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexNonASCIIByte among %v", bag.Items())
	}
	requireTok(t, lx, token.Assign, "=")
}

func TestNonASCIIIdentifierStartIsNotAccepted(t *testing.T) {
	sm := sourcemap.New()
	id := sm.AddVirtual("nonascii2.sv", []byte("\xce\xb1 + 1"))
	bag := diag.NewBag(8)
	lx := New(sm.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := requireTok(t, lx, token.Invalid, "\xce\xb1")
	if tok.Span.Len() != 2 {
		t.Fatalf("got span length %d for a 2-byte UTF-8 sequence, want 2", tok.Span.Len())
	}
	if bag.Items()[0].Code != diag.LexNonASCIIByte {
		t.Fatalf("got code %v, want LexNonASCIIByte", bag.Items()[0].Code)
	}
}

func BenchmarkLexIdentifierRun(b *testing.B) {
	sm := sourcemap.New()
	content := ""
	for i := 0; i < 200; i++ {
		content += "wire_name_example "
	}
	id := sm.AddVirtual("bench.sv", []byte(content))
	buf := sm.Get(id)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lx := New(buf, Options{})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
	}
}
