package symbols

import (
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
)

// ScopeKind enumerates the lexical scope categories that matter for name
// resolution.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeCompilationUnit
	ScopePackage
	ScopeModule
	ScopeInterface
	ScopeProgram
	ScopeClass
	ScopeSubroutine // function or task body
	ScopeGenerate   // a generate block, if/for/case-generate branch
	ScopeBlock      // begin/end, for/foreach/while loop body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeCompilationUnit:
		return "compilation unit"
	case ScopePackage:
		return "package"
	case ScopeModule:
		return "module"
	case ScopeInterface:
		return "interface"
	case ScopeProgram:
		return "program"
	case ScopeClass:
		return "class"
	case ScopeSubroutine:
		return "subroutine"
	case ScopeGenerate:
		return "generate"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// ScopeOwner references the syntax construct that opened a scope, for
// diagnostics that need to point back at e.g. "this module" or "this
// generate block".
type ScopeOwner struct {
	Buffer sourcemap.BufferID
	Node   syntax.NodeID
}

// Scope models one lexical scope in the hierarchy that spans compilation
// unit -> design unit -> generate/block -> subroutine. NameIndex maps an
// interned identifier to every symbol declared under that name directly in
// this scope, in declaration order; SystemVerilog lets a variable and
// (rarely) a labeled block share a namespace slot ambiguity that only
// location-ordered lookup resolves, so a name can map to more than one
// SymbolID and lookupName picks the one visible "at or before" a location.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ScopeOwner
	Span      sourcemap.Span
	NameIndex map[sourcemap.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
	// WildcardImports lists package symbols imported with `import pkg::*;`
	// directly into this scope, in source order; lookupName consults these
	// only after exhausting this scope's own members.
	WildcardImports []SymbolID
}
