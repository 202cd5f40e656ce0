package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"svfront/internal/sourcemap"
)

// Hints provide optional capacity suggestions for the table's arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas plus the shared string
// interner for one compilation. The moduleRoot and packages maps answer
// the by-name design-unit and package lookups the resolver and binder both
// need without walking NameIndex maps by hand.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *sourcemap.Interner

	unitRoot   ScopeID
	moduleRoot map[sourcemap.StringID]ScopeID // module/interface/program name -> its scope
	packages   map[sourcemap.StringID]SymbolID
}

// NewTable builds a fresh table with optional capacity hints. If strings is
// nil, a fresh interner is allocated.
func NewTable(h Hints, strings *sourcemap.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("symbols: scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbols: symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = sourcemap.NewInterner()
	}
	t := &Table{
		Scopes:     NewScopes(scopeCap),
		Symbols:    NewSymbols(symCap),
		Strings:    strings,
		moduleRoot: make(map[sourcemap.StringID]ScopeID),
		packages:   make(map[sourcemap.StringID]SymbolID),
	}
	t.unitRoot = t.Scopes.New(ScopeCompilationUnit, NoScopeID, ScopeOwner{})
	return t
}

// UnitRoot returns the single compilation-unit scope, created eagerly by
// NewTable since every syntax tree contributes into the same one.
func (t *Table) UnitRoot() ScopeID { return t.unitRoot }

// DeclareModuleRoot registers scope as the body scope for a top-level
// design-unit name (module, interface, or program). A name already
// registered keeps its first scope; SystemVerilog treats a redeclaration
// under the same name as an error the resolver reports separately, not as
// a second root to look up.
func (t *Table) DeclareModuleRoot(name sourcemap.StringID, scope ScopeID) (existing ScopeID, isNew bool) {
	if existing, ok := t.moduleRoot[name]; ok {
		return existing, false
	}
	t.moduleRoot[name] = scope
	return scope, true
}

// ModuleRoot looks up a previously declared design unit's body scope by
// name.
func (t *Table) ModuleRoot(name sourcemap.StringID) (ScopeID, bool) {
	scope, ok := t.moduleRoot[name]
	return scope, ok
}

// ModuleNames returns every declared design-unit name, unordered; callers
// needing determinism sort the result themselves (see
// CollectTopLevelInstances).
func (t *Table) ModuleNames() []sourcemap.StringID {
	names := make([]sourcemap.StringID, 0, len(t.moduleRoot))
	for name := range t.moduleRoot {
		names = append(names, name)
	}
	return names
}

// DeclarePackage registers sym as the named package.
func (t *Table) DeclarePackage(name sourcemap.StringID, sym SymbolID) {
	t.packages[name] = sym
}

// Package looks up a previously declared package symbol by name.
func (t *Table) Package(name sourcemap.StringID) (SymbolID, bool) {
	sym, ok := t.packages[name]
	return sym, ok
}

// Declare interns sym and indexes it into scope's NameIndex under its name,
// returning the new SymbolID. A scope's Symbols slice preserves declaration
// order, which lookupName's "at or before location" rule depends on.
func (t *Table) Declare(scope ScopeID, sym Symbol) SymbolID {
	sym.Scope = scope
	id := t.Symbols.New(sym)
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return id
	}
	sc.Symbols = append(sc.Symbols, id)
	sc.NameIndex[sym.Name] = append(sc.NameIndex[sym.Name], id)
	return id
}
