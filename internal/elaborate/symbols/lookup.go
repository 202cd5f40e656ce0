package symbols

import "svfront/internal/sourcemap"

// LookupFlags restricts what LookupName is willing to return.
type LookupFlags uint8

const (
	LookupAny LookupFlags = 0
	// LookupConstantOnly restricts a match to symbols the constant
	// evaluator (component J) can use: parameters, enum members, and
	// genvars, matching §4.H's "flags can restrict to constant-evaluable
	// symbols".
	LookupConstantOnly LookupFlags = 1 << 0
)

func constEvaluable(k SymbolKind) bool {
	switch k {
	case SymbolParameter, SymbolTypeParameter, SymbolEnumMember, SymbolGenvar:
		return true
	default:
		return false
	}
}

// visibleAt reports whether a symbol declared at declSpan is visible to a
// reference at loc, honoring §4.H's "declared at or before location" rule.
// The rule only constrains references within the very buffer the symbol was
// declared in; a symbol reached by walking into an outer, already fully
// elaborated scope (a different buffer, or the zero span of a synthesized
// name) is always visible, matching how SystemVerilog does not restrict
// forward references across design-unit boundaries.
func visibleAt(declSpan, loc sourcemap.Span) bool {
	if declSpan.Buffer != loc.Buffer {
		return true
	}
	if loc.Start == 0 && loc.End == 0 {
		return true
	}
	return declSpan.Start <= loc.Start
}

// LookupName implements §4.H's unqualified-name resolution: starting at
// from, walk outward through local members visible at loc, then that
// scope's wildcard imports, then the parent scope, up to the compilation
// unit root. System-identifier ($-prefixed) dispatch and trailing
// member-access/index selectors are not this function's job: the binder
// (component J) handles those once it has the head symbol's type in hand.
func (t *Table) LookupName(from ScopeID, name sourcemap.StringID, loc sourcemap.Span, flags LookupFlags) (SymbolID, ScopeID, bool) {
	if name == sourcemap.NoStringID {
		return NoSymbolID, NoScopeID, false
	}
	for scope := from; scope.IsValid(); {
		sc := t.Scopes.Get(scope)
		if sc == nil {
			break
		}
		if id, ok := t.lookupLocal(sc, name, loc, flags); ok {
			return id, scope, true
		}
		if id, ok := t.lookupWildcard(sc, name, flags); ok {
			return id, scope, true
		}
		scope = sc.Parent
	}
	if symID, ok := t.packages[name]; ok && (flags&LookupConstantOnly == 0) {
		return symID, t.unitRoot, true
	}
	return NoSymbolID, NoScopeID, false
}

func (t *Table) lookupLocal(sc *Scope, name sourcemap.StringID, loc sourcemap.Span, flags LookupFlags) (SymbolID, bool) {
	candidates := sc.NameIndex[name]
	for i := len(candidates) - 1; i >= 0; i-- {
		id := candidates[i]
		sym := t.Symbols.Get(id)
		if sym == nil {
			continue
		}
		if flags&LookupConstantOnly != 0 && !constEvaluable(sym.Kind) {
			continue
		}
		if visibleAt(sym.Span, loc) {
			return id, true
		}
	}
	return NoSymbolID, false
}

// lookupWildcard resolves name against every package a scope imported with
// `import pkg::*;`, in source order (§3's data model: "Import chains are
// indexed separately to support wildcard import visibility"). Two
// same-named exports from different wildcard-imported packages are an
// ambiguity that lookupWildcard does not detect: it returns the match from
// the first imported package that has one and reports nothing.
func (t *Table) lookupWildcard(sc *Scope, name sourcemap.StringID, flags LookupFlags) (SymbolID, bool) {
	for _, pkgSym := range sc.WildcardImports {
		pkg := t.Symbols.Get(pkgSym)
		if pkg == nil || !pkg.Owns.IsValid() {
			continue
		}
		pkgScope := t.Scopes.Get(pkg.Owns)
		if pkgScope == nil {
			continue
		}
		if ids, ok := pkgScope.NameIndex[name]; ok && len(ids) > 0 {
			id := ids[len(ids)-1]
			if sym := t.Symbols.Get(id); sym != nil {
				if flags&LookupConstantOnly != 0 && !constEvaluable(sym.Kind) {
					continue
				}
				return id, true
			}
		}
	}
	return NoSymbolID, false
}

// LookupHierarchical resolves a dotted name chain (e.g. `top.sub.signal`)
// by bypassing local-scope walking and starting from the root, per §4.H:
// "Hierarchical lookups (containing '.') bypass local-scope walking and
// start from the root." Each segment after the first must name a module
// instance whose definition's body scope is then searched for the next
// segment.
func (t *Table) LookupHierarchical(segments []sourcemap.StringID) (SymbolID, bool) {
	if len(segments) == 0 {
		return NoSymbolID, false
	}
	root := t.Scopes.Get(t.unitRoot)
	if root == nil {
		return NoSymbolID, false
	}
	ids, ok := root.NameIndex[segments[0]]
	if !ok || len(ids) == 0 {
		return NoSymbolID, false
	}
	cur := ids[len(ids)-1]
	for _, seg := range segments[1:] {
		sym := t.Symbols.Get(cur)
		if sym == nil {
			return NoSymbolID, false
		}
		scope, ok := t.instanceBodyScope(sym)
		if !ok {
			return NoSymbolID, false
		}
		sc := t.Scopes.Get(scope)
		if sc == nil {
			return NoSymbolID, false
		}
		next, ok := sc.NameIndex[seg]
		if !ok || len(next) == 0 {
			return NoSymbolID, false
		}
		cur = next[len(next)-1]
	}
	return cur, true
}

// instanceBodyScope resolves the body scope a reference should descend
// into for the next hierarchical segment: an instance resolves through its
// instantiated module's declared root scope, while any other scope-owning
// symbol (a generate block, a directly-nested module) uses its own Owns
// scope.
func (t *Table) instanceBodyScope(sym *Symbol) (ScopeID, bool) {
	if sym.Kind == SymbolInstance {
		scope, ok := t.ModuleRoot(sym.ModuleName)
		return scope, ok
	}
	if sym.Owns.IsValid() {
		return sym.Owns, true
	}
	return NoScopeID, false
}
