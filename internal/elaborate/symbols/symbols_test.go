package symbols_test

import (
	"testing"

	"svfront/internal/elaborate/symbols"
	"svfront/internal/sourcemap"
)

func TestDeclareIndexesIntoScopeByName(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.UnitRoot()
	name := table.Strings.Intern("x")

	id := table.Declare(root, symbols.Symbol{Name: name, Kind: symbols.SymbolVariable})
	if !id.IsValid() {
		t.Fatal("expected a valid symbol id")
	}

	got, scope, ok := table.LookupName(root, name, sourcemap.Span{}, symbols.LookupAny)
	if !ok || got != id || scope != root {
		t.Fatalf("LookupName = (%v, %v, %v), want (%v, %v, true)", got, scope, ok, id, root)
	}
}

func TestLookupNameWalksOutToParentScope(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.UnitRoot()
	name := table.Strings.Intern("WIDTH")
	outer := table.Declare(root, symbols.Symbol{Name: name, Kind: symbols.SymbolParameter})

	inner := table.Scopes.New(symbols.ScopeBlock, root, symbols.ScopeOwner{})
	got, scope, ok := table.LookupName(inner, name, sourcemap.Span{}, symbols.LookupAny)
	if !ok || got != outer || scope != root {
		t.Fatalf("expected lookup from a nested scope to find the outer declaration, got (%v, %v, %v)", got, scope, ok)
	}
}

func TestLookupNameHonorsDeclaredAtOrBeforeLocation(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.UnitRoot()
	name := table.Strings.Intern("x")
	buf := sourcemap.BufferID(1)
	table.Declare(root, symbols.Symbol{Name: name, Kind: symbols.SymbolVariable, Span: sourcemap.Span{Buffer: buf, Start: 100, End: 101}})

	// A reference earlier in the same buffer than the declaration is not
	// yet visible to it.
	_, _, ok := table.LookupName(root, name, sourcemap.Span{Buffer: buf, Start: 10, End: 11}, symbols.LookupAny)
	if ok {
		t.Error("expected no visibility before the declaration's own location")
	}

	// A reference after the declaration sees it.
	_, _, ok = table.LookupName(root, name, sourcemap.Span{Buffer: buf, Start: 200, End: 201}, symbols.LookupAny)
	if !ok {
		t.Error("expected visibility after the declaration's location")
	}
}

func TestLookupConstantOnlyExcludesNonConstantSymbols(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.UnitRoot()
	name := table.Strings.Intern("x")
	table.Declare(root, symbols.Symbol{Name: name, Kind: symbols.SymbolVariable})

	_, _, ok := table.LookupName(root, name, sourcemap.Span{}, symbols.LookupConstantOnly)
	if ok {
		t.Error("expected a plain variable to be excluded under LookupConstantOnly")
	}
}

func TestLookupNameUnknownNameFails(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	_, _, ok := table.LookupName(table.UnitRoot(), table.Strings.Intern("nope"), sourcemap.Span{}, symbols.LookupAny)
	if ok {
		t.Error("expected lookup of an undeclared name to fail")
	}
}

func TestDeclareModuleRootKeepsFirstOnRedeclaration(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	name := table.Strings.Intern("top")
	first := table.Scopes.New(symbols.ScopeModule, table.UnitRoot(), symbols.ScopeOwner{})
	second := table.Scopes.New(symbols.ScopeModule, table.UnitRoot(), symbols.ScopeOwner{})

	got, isNew := table.DeclareModuleRoot(name, first)
	if got != first || !isNew {
		t.Fatalf("first registration: got (%v, %v), want (%v, true)", got, isNew, first)
	}
	got, isNew = table.DeclareModuleRoot(name, second)
	if got != first || isNew {
		t.Fatalf("redeclaration: got (%v, %v), want (%v, false)", got, isNew, first)
	}

	scope, ok := table.ModuleRoot(name)
	if !ok || scope != first {
		t.Fatalf("ModuleRoot = (%v, %v), want (%v, true)", scope, ok, first)
	}
}

func TestLookupHierarchicalWalksThroughInstances(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	root := table.UnitRoot()

	subName := table.Strings.Intern("sub")
	subScope := table.Scopes.New(symbols.ScopeModule, root, symbols.ScopeOwner{})
	table.DeclareModuleRoot(subName, subScope)
	sigName := table.Strings.Intern("signal")
	sig := table.Declare(subScope, symbols.Symbol{Name: sigName, Kind: symbols.SymbolNet})

	instName := table.Strings.Intern("inst")
	table.Declare(root, symbols.Symbol{Name: instName, Kind: symbols.SymbolInstance, ModuleName: subName})

	got, ok := table.LookupHierarchical([]sourcemap.StringID{instName, sigName})
	if !ok || got != sig {
		t.Fatalf("LookupHierarchical = (%v, %v), want (%v, true)", got, ok, sig)
	}
}

func TestScopesAndSymbolsLenExcludeTheSentinel(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{}, nil)
	if table.Scopes.Len() != 1 {
		t.Fatalf("got %d scopes, want 1 for just the unit root", table.Scopes.Len())
	}
	if table.Symbols.Len() != 0 {
		t.Fatalf("got %d symbols, want 0 before any Declare", table.Symbols.Len())
	}
	table.Declare(table.UnitRoot(), symbols.Symbol{Name: table.Strings.Intern("x")})
	if table.Symbols.Len() != 1 {
		t.Fatalf("got %d symbols after one Declare, want 1", table.Symbols.Len())
	}
}
