package compilation_test

import (
	"testing"

	"svfront/internal/compilation"
	"svfront/internal/parser"
	"svfront/internal/preprocess"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
)

func parseModule(t *testing.T, sm *sourcemap.SourceMap, name, content string) (*syntax.Tree, sourcemap.BufferID) {
	t.Helper()
	id := sm.AddVirtual(name, []byte(content))
	pp := preprocess.New(sm, id, preprocess.Options{})
	p := parser.New(pp, nil, parser.Options{})
	tree := p.ParseCompilationUnit()
	return tree, id
}

func TestAddSyntaxTreeThenGetRootDeclaresTopLevelModules(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	tree, id := parseModule(t, sm, "a.sv", "module a; endmodule\n")

	if err := c.AddSyntaxTree(tree, id); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}
	c.GetRoot()

	names := c.TopLevelInstances()
	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("got top-level instances %v, want [a]", names)
	}
}

func TestAddSyntaxTreeAfterFinalizeFails(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	tree, id := parseModule(t, sm, "a.sv", "module a; endmodule\n")
	if err := c.AddSyntaxTree(tree, id); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}
	c.GetRoot()

	tree2, id2 := parseModule(t, sm, "b.sv", "module b; endmodule\n")
	if err := c.AddSyntaxTree(tree2, id2); err != compilation.ErrFinalized {
		t.Fatalf("got err %v, want ErrFinalized", err)
	}
}

func TestAllDiagnosticsIsSortedAndStable(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	tree, id := parseModule(t, sm, "a.sv", "module a; endmodule\n")
	if err := c.AddSyntaxTree(tree, id); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}
	diags := c.AllDiagnostics()
	for i := 1; i < len(diags); i++ {
		if diags[i-1].Primary.Buffer == diags[i].Primary.Buffer && diags[i-1].Primary.Start > diags[i].Primary.Start {
			t.Fatalf("diagnostics not sorted by offset: %+v then %+v", diags[i-1], diags[i])
		}
	}
}

func TestAddSyntaxTreeFoldsTopLevelParameter(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	tree, id := parseModule(t, sm, "foo.sv", "module foo; parameter p = 1+2; endmodule\n")

	if err := c.AddSyntaxTree(tree, id); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}
	c.GetRoot()

	params := c.Parameters()
	if len(params) != 1 || params[0].Name != "p" {
		t.Fatalf("got parameters %+v, want one named p", params)
	}
	v := params[0].Value
	if v.Invalid() {
		t.Fatalf("parameter p failed to fold: %+v", v)
	}
	if got := v.Int.ToBigInt().Int64(); got != 3 {
		t.Fatalf("got p = %d, want 3", got)
	}
	if got := v.Int.Width(); got != 32 {
		t.Fatalf("got p's width = %d, want 32", got)
	}
	if !v.Int.Signed() {
		t.Error("expected p's default int literal type to be signed")
	}

	if cv, ok := c.ConstantValue(params[0].ID); !ok || cv.Int.ToBigInt().Int64() != 3 {
		t.Fatalf("ConstantValue(%v) = (%+v, %v), want (3, true)", params[0].ID, cv, ok)
	}
}

func TestScriptSessionEvaluatesExpression(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	s := compilation.NewScriptSession(c)

	v, err := s.EvaluateExpression("8'd3 + 8'd4")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if got := v.Int.ToBigInt().Int64(); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestScriptSessionDeclareParameterEvaluatesInitializer(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	s := compilation.NewScriptSession(c)

	id, v, err := s.DeclareParameter("parameter WIDTH = 8;")
	if err != nil {
		t.Fatalf("DeclareParameter: %v", err)
	}
	if !id.IsValid() {
		t.Error("expected a valid symbol id")
	}
	if got := v.Int.ToBigInt().Int64(); got != 8 {
		t.Fatalf("got %d, want 8", got)
	}
}

func TestScriptSessionDeclareVariableWithoutInitializer(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	s := compilation.NewScriptSession(c)

	_, _, hasInitializer, err := s.DeclareVariable("logic [7:0] x;")
	if err != nil {
		t.Fatalf("DeclareVariable: %v", err)
	}
	if hasInitializer {
		t.Error("expected hasInitializer=false for a bare declaration")
	}
}

func TestScriptSessionLaterSnippetSeesEarlierDeclaration(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	s := compilation.NewScriptSession(c)

	if _, _, err := s.DeclareParameter("parameter WIDTH = 8;"); err != nil {
		t.Fatalf("DeclareParameter: %v", err)
	}
	v, err := s.EvaluateExpression("WIDTH + 1")
	if err != nil {
		t.Fatalf("EvaluateExpression: %v", err)
	}
	if got := v.Int.ToBigInt().Int64(); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
}

func TestScriptSessionEvaluateStatementIsReserved(t *testing.T) {
	sm := sourcemap.New()
	c := compilation.New(sm)
	s := compilation.NewScriptSession(c)

	if err := s.EvaluateStatement("x = 1;"); err != compilation.ErrStatementReserved {
		t.Fatalf("got err %v, want ErrStatementReserved", err)
	}
}
