package binder

import (
	"testing"

	"svfront/internal/diag"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/preprocess"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/types"

	"svfront/internal/parser"
)

func parseExpr(t *testing.T, content string) (*syntax.Tree, syntax.NodeID, *diag.Bag) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("t.sv", []byte(content))
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	pp := preprocess.New(sm, id, preprocess.Options{Reporter: reporter})
	p := parser.New(pp, nil, parser.Options{Reporter: reporter})
	node, ok := p.ParseExpression()
	if !ok {
		t.Fatalf("ParseExpression failed for %q", content)
	}
	return p.Tree(), node, bag
}

func newTestBinder(t *testing.T, tree *syntax.Tree) (*Binder, *symbols.Table, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	table := symbols.NewTable(symbols.Hints{}, nil)
	in := types.NewInterner()
	b := NewBinder(tree, table, in, sourcemap.BufferID(1), &diag.BagReporter{Bag: bag})
	return b, table, bag
}

func evalConst(t *testing.T, content string) Constant {
	t.Helper()
	tree, node, parseBag := parseExpr(t, content)
	if parseBag.HasErrors() {
		t.Fatalf("parse errors for %q: %v", content, parseBag.Items())
	}
	b, table, bag := newTestBinder(t, tree)
	e := b.BindExpression(table.UnitRoot(), sourcemap.Span{}, node)
	ec := NewEvalContext(b)
	v := ec.Eval(e)
	if bag.HasErrors() {
		t.Fatalf("bind/eval errors for %q: %v", content, bag.Items())
	}
	return v
}

func TestBindLiteralIntHasMatchingWidth(t *testing.T) {
	tree, node, _ := parseExpr(t, "8'd5")
	b, table, _ := newTestBinder(t, tree)
	e := b.BindExpression(table.UnitRoot(), sourcemap.Span{}, node)
	ty := b.types.MustLookup(e.Type)
	if ty.Width != 8 {
		t.Fatalf("want width 8, got %d", ty.Width)
	}
}

func TestEvalAddKnownValues(t *testing.T) {
	v := evalConst(t, "8'd3 + 8'd4")
	if v.Kind != ConstInt {
		t.Fatalf("want ConstInt, got %v", v.Kind)
	}
	if n := v.Int.ToBigInt().Int64(); n != 7 {
		t.Fatalf("want 7, got %d", n)
	}
}

func TestEvalTernaryPicksBranch(t *testing.T) {
	v := evalConst(t, "1 ? 8'd10 : 8'd20")
	if v.Kind != ConstInt || v.Int.ToBigInt().Int64() != 10 {
		t.Fatalf("want 10, got %v", v)
	}
}

func TestEvalDivByZeroReportsDiagnostic(t *testing.T) {
	tree, node, _ := parseExpr(t, "8'd1 / 8'd0")
	b, table, bag := newTestBinder(t, tree)
	e := b.BindExpression(table.UnitRoot(), sourcemap.Span{}, node)
	ec := NewEvalContext(b)
	v := ec.Eval(e)
	if !v.Invalid() {
		t.Fatalf("expected an invalid constant for division by zero")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ConstEvalDivByZero {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ConstEvalDivByZero diagnostic, got %v", bag.Items())
	}
}

func TestEvalConcatWidthIsSumOfOperands(t *testing.T) {
	tree, node, _ := parseExpr(t, "{4'd1, 4'd2}")
	b, table, _ := newTestBinder(t, tree)
	e := b.BindExpression(table.UnitRoot(), sourcemap.Span{}, node)
	ty := b.types.MustLookup(e.Type)
	if ty.Width != 8 {
		t.Fatalf("want width 8, got %d", ty.Width)
	}
}

func TestEvalUnresolvedNameReportsDiagnostic(t *testing.T) {
	tree, node, _ := parseExpr(t, "undeclared_name")
	b, table, bag := newTestBinder(t, tree)
	e := b.BindExpression(table.UnitRoot(), sourcemap.Span{}, node)
	if e.Kind != EInvalid {
		t.Fatalf("want EInvalid, got %v", e.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for an unresolved name")
	}
}

func TestClog2OfEightIsThree(t *testing.T) {
	v := evalConst(t, "$clog2(8)")
	if v.Kind != ConstInt || v.Int.ToBigInt().Int64() != 3 {
		t.Fatalf("want 3, got %v", v)
	}
}

func TestBitsOfByteIsEight(t *testing.T) {
	v := evalConst(t, "$bits(8'd0)")
	if v.Kind != ConstInt || v.Int.ToBigInt().Int64() != 8 {
		t.Fatalf("want 8, got %v", v)
	}
}

func TestCheckLValueRejectsLiteral(t *testing.T) {
	tree, node, _ := parseExpr(t, "5")
	b, table, _ := newTestBinder(t, tree)
	e := b.BindExpression(table.UnitRoot(), sourcemap.Span{}, node)
	if b.CheckLValue(e) {
		t.Fatalf("a literal should never be a valid lvalue")
	}
}
