package parser

import (
	"testing"

	"svfront/internal/diag"
	"svfront/internal/preprocess"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
)

func newParser(t *testing.T, content string) (*Parser, *diag.Bag) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("t.sv", []byte(content))
	bag := diag.NewBag(64)
	pp := preprocess.New(sm, id, preprocess.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return New(pp, nil, Options{Reporter: &diag.BagReporter{Bag: bag}}), bag
}

func parseExpr(t *testing.T, content string) (*Parser, syntax.NodeID) {
	t.Helper()
	p, _ := newParser(t, content)
	id, ok := p.ParseExpression()
	if !ok {
		t.Fatalf("ParseExpression failed for %q", content)
	}
	return p, id
}

func TestBinaryPrecedenceClimbsCorrectly(t *testing.T) {
	p, id := parseExpr(t, "1 + 2 * 3")
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindBinaryExpr {
		t.Fatalf("root kind = %v, want KindBinaryExpr", n.Kind)
	}
	// '+' should be the outermost node since '*' binds tighter; its right
	// child covers "2 * 3".
	right := p.Tree().Get(n.Children[2])
	if right.Kind != syntax.KindBinaryExpr {
		t.Fatalf("right child kind = %v, want KindBinaryExpr (2 * 3)", right.Kind)
	}
	if got := syntax.Text(p.Tree(), id); got != "1 + 2 * 3" {
		t.Fatalf("reconstructed text = %q, want %q", got, "1 + 2 * 3")
	}
}

func TestLeftAssociativeAdditive(t *testing.T) {
	p, id := parseExpr(t, "1 - 2 - 3")
	n := p.Tree().Get(id)
	left := p.Tree().Get(n.Children[0])
	if left.Kind != syntax.KindBinaryExpr {
		t.Fatalf("left child kind = %v, want KindBinaryExpr ((1 - 2))", left.Kind)
	}
}

func TestRightAssociativePower(t *testing.T) {
	p, id := parseExpr(t, "2 ** 3 ** 4")
	n := p.Tree().Get(id)
	right := p.Tree().Get(n.Children[2])
	if right.Kind != syntax.KindBinaryExpr {
		t.Fatalf("right child kind = %v, want KindBinaryExpr (3 ** 4)", right.Kind)
	}
}

func TestTernaryBindsBelowLogicalOr(t *testing.T) {
	p, id := parseExpr(t, "a || b ? c : d")
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindTernaryExpr {
		t.Fatalf("root kind = %v, want KindTernaryExpr", n.Kind)
	}
	cond := p.Tree().Get(n.Children[0])
	if cond.Kind != syntax.KindBinaryExpr {
		t.Fatalf("condition kind = %v, want KindBinaryExpr (a || b)", cond.Kind)
	}
}

func TestUnaryPrefixChain(t *testing.T) {
	p, id := parseExpr(t, "!~a")
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindUnaryExpr {
		t.Fatalf("root kind = %v, want KindUnaryExpr", n.Kind)
	}
	inner := p.Tree().Get(n.Children[1])
	if inner.Kind != syntax.KindUnaryExpr {
		t.Fatalf("inner kind = %v, want KindUnaryExpr", inner.Kind)
	}
}

func TestPostfixCallAndMemberChain(t *testing.T) {
	p, id := parseExpr(t, "obj.method(1, 2).field")
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindMemberAccessExpr {
		t.Fatalf("root kind = %v, want KindMemberAccessExpr", n.Kind)
	}
	call := p.Tree().Get(n.Children[0])
	if call.Kind != syntax.KindCallExpr {
		t.Fatalf("base kind = %v, want KindCallExpr", call.Kind)
	}
	if got := syntax.Text(p.Tree(), id); got != "obj.method(1, 2).field" {
		t.Fatalf("reconstructed text = %q, want %q", got, "obj.method(1, 2).field")
	}
}

func TestElementAndRangeSelect(t *testing.T) {
	p, id := parseExpr(t, "a[3]")
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindElementSelectExpr {
		t.Fatalf("kind = %v, want KindElementSelectExpr", n.Kind)
	}

	p2, id2 := parseExpr(t, "a[7:0]")
	n2 := p2.Tree().Get(id2)
	if n2.Kind != syntax.KindRangeSelectExpr {
		t.Fatalf("kind = %v, want KindRangeSelectExpr", n2.Kind)
	}

	p3, id3 := parseExpr(t, "a[i+:8]")
	n3 := p3.Tree().Get(id3)
	if n3.Kind != syntax.KindRangeSelectExpr {
		t.Fatalf("kind = %v, want KindRangeSelectExpr", n3.Kind)
	}
	if len(n3.Children) != 7 {
		t.Fatalf("children = %d, want 7 for an indexed part select", len(n3.Children))
	}
}

func TestAssignmentPatternAndConcatenation(t *testing.T) {
	p, id := parseExpr(t, "'{1, 2, 3}")
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindAssignmentPatternExpr {
		t.Fatalf("kind = %v, want KindAssignmentPatternExpr", n.Kind)
	}

	p2, id2 := parseExpr(t, "{a, b, c}")
	n2 := p2.Tree().Get(id2)
	if n2.Kind != syntax.KindConcatExpr {
		t.Fatalf("kind = %v, want KindConcatExpr", n2.Kind)
	}

	p3, id3 := parseExpr(t, "{4{a}}")
	n3 := p3.Tree().Get(id3)
	if n3.Kind != syntax.KindReplicationExpr {
		t.Fatalf("kind = %v, want KindReplicationExpr", n3.Kind)
	}
}

func TestApostropheCast(t *testing.T) {
	p, id := parseExpr(t, "int'(x)")
	if got := syntax.Text(p.Tree(), id); got != "int'(x)" {
		t.Fatalf("reconstructed text = %q, want %q", got, "int'(x)")
	}
}

func TestParseIfStatement(t *testing.T) {
	p, bag := newParser(t, "if (a) b = 1; else c = 2;")
	id, ok := p.ParseStatement()
	if !ok {
		t.Fatalf("ParseStatement failed")
	}
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindIfStmt {
		t.Fatalf("kind = %v, want KindIfStmt", n.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestParseCaseStatement(t *testing.T) {
	p, _ := newParser(t, "case (x) 1: a = 1; default: a = 0; endcase")
	id, ok := p.ParseStatement()
	if !ok {
		t.Fatalf("ParseStatement failed")
	}
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindCaseStmt {
		t.Fatalf("kind = %v, want KindCaseStmt", n.Kind)
	}
}

func TestParseForStatement(t *testing.T) {
	p, _ := newParser(t, "for (i = 0; i < 8; i++) sum = sum + i;")
	id, ok := p.ParseStatement()
	if !ok {
		t.Fatalf("ParseStatement failed")
	}
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindForStmt {
		t.Fatalf("kind = %v, want KindForStmt", n.Kind)
	}
}

func TestNonblockingAssignmentInProceduralContext(t *testing.T) {
	p, _ := newParser(t, "a <= b;")
	id, ok := p.ParseStatement()
	if !ok {
		t.Fatalf("ParseStatement failed")
	}
	n := p.Tree().Get(id)
	if n.Kind != syntax.KindAssignStmt {
		t.Fatalf("kind = %v, want KindAssignStmt", n.Kind)
	}
}

func TestParseModuleWithPortsAndAlwaysBlock(t *testing.T) {
	src := `
module counter #(parameter WIDTH = 8) (
    input logic clk,
    input logic rst_n,
    output logic [WIDTH-1:0] count
);
    always_ff @(posedge clk or negedge rst_n) begin
        if (!rst_n)
            count <= 0;
        else
            count <= count + 1;
    end
endmodule
`
	p, bag := newParser(t, src)
	tree := p.ParseCompilationUnit()
	root := tree.Get(tree.Root())
	if root.Kind != syntax.KindCompilationUnit {
		t.Fatalf("root kind = %v, want KindCompilationUnit", root.Kind)
	}
	if len(root.Children) != 1 {
		t.Fatalf("compilation unit has %d design units, want 1", len(root.Children))
	}
	mod := tree.Get(root.Children[0])
	if mod.Kind != syntax.KindModuleDecl {
		t.Fatalf("design unit kind = %v, want KindModuleDecl", mod.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestMismatchedEndLabelSuggestsFix(t *testing.T) {
	src := "module foo; endmodule : bar\n"
	p, bag := newParser(t, src)
	p.ParseCompilationUnit()

	if !bag.HasErrors() {
		t.Fatalf("expected a mismatched end label diagnostic, got none: %v", bag.Items())
	}
	var found *diag.Diagnostic
	for i := range bag.Items() {
		if bag.Items()[i].Code == diag.SynMismatchedEndLabel {
			found = &bag.Items()[i]
		}
	}
	if found == nil {
		t.Fatalf("no SynMismatchedEndLabel diagnostic among %v", bag.Items())
	}
	if len(found.Fixes) != 1 || len(found.Fixes[0].Edits) != 1 {
		t.Fatalf("got fixes %+v, want one fix with one edit", found.Fixes)
	}
	if got := found.Fixes[0].Edits[0].NewText; got != "foo" {
		t.Fatalf("fix suggests replacement %q, want %q", got, "foo")
	}
}

func TestMatchingEndLabelReportsNoDiagnostic(t *testing.T) {
	src := "module foo; endmodule : foo\n"
	p, bag := newParser(t, src)
	p.ParseCompilationUnit()
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for a matching end label: %v", bag.Items())
	}
}

func TestParseClassWithSubroutine(t *testing.T) {
	src := `
class packet;
    rand bit [7:0] payload;

    function new();
        payload = 0;
    endfunction

    function bit [7:0] get_payload();
        return payload;
    endfunction
endclass
`
	p, bag := newParser(t, src)
	tree := p.ParseCompilationUnit()
	root := tree.Get(tree.Root())
	if len(root.Children) != 1 {
		t.Fatalf("compilation unit has %d design units, want 1", len(root.Children))
	}
	cls := tree.Get(root.Children[0])
	if cls.Kind != syntax.KindClassDecl {
		t.Fatalf("design unit kind = %v, want KindClassDecl", cls.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestDepthGuardSynthesizesMissingOnDeepRecursion(t *testing.T) {
	src := ""
	for i := 0; i < DefaultMaxDepth+10; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < DefaultMaxDepth+10; i++ {
		src += ")"
	}
	p, bag := newParser(t, src)
	_, ok := p.ParseExpression()
	if ok {
		t.Fatalf("expected ParseExpression to fail past the recursion depth guard")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a recursion-depth diagnostic")
	}
}

func TestErrorRecoverySkipsToNextItem(t *testing.T) {
	p, bag := newParser(t, "module m; @@@ initial x = 1; endmodule")
	tree := p.ParseCompilationUnit()
	root := tree.Get(tree.Root())
	if len(root.Children) != 1 {
		t.Fatalf("expected recovery to still produce one design unit, got %d", len(root.Children))
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the skipped garbage tokens")
	}
}
