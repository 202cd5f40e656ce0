package symbols

import (
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolModule
	SymbolInterface
	SymbolProgram
	SymbolPackage
	SymbolClass
	SymbolInstance
	SymbolPort
	SymbolNet
	SymbolVariable
	SymbolParameter
	SymbolTypeParameter
	SymbolGenvar
	SymbolFunction
	SymbolTask
	SymbolTypedef
	SymbolEnumMember
	SymbolStructMember
	SymbolModport
	SymbolGenerateBlock
	SymbolImport
	SymbolClockingBlock
	SymbolProperty
	SymbolSequence
	SymbolCovergroup
	SymbolCoverpoint
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolInterface:
		return "interface"
	case SymbolProgram:
		return "program"
	case SymbolPackage:
		return "package"
	case SymbolClass:
		return "class"
	case SymbolInstance:
		return "instance"
	case SymbolPort:
		return "port"
	case SymbolNet:
		return "net"
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolTypeParameter:
		return "type parameter"
	case SymbolGenvar:
		return "genvar"
	case SymbolFunction:
		return "function"
	case SymbolTask:
		return "task"
	case SymbolTypedef:
		return "typedef"
	case SymbolEnumMember:
		return "enum member"
	case SymbolStructMember:
		return "struct/union member"
	case SymbolModport:
		return "modport"
	case SymbolGenerateBlock:
		return "generate block"
	case SymbolImport:
		return "import"
	case SymbolClockingBlock:
		return "clocking block"
	case SymbolProperty:
		return "property"
	case SymbolSequence:
		return "sequence"
	case SymbolCovergroup:
		return "covergroup"
	case SymbolCoverpoint:
		return "coverpoint"
	default:
		return "invalid"
	}
}

// SymbolFlags encode miscellaneous attributes for quick checks without a
// SymbolKind switch.
type SymbolFlags uint16

const (
	SymbolFlagLocalParam SymbolFlags = 1 << iota
	SymbolFlagConst
	SymbolFlagStatic
	SymbolFlagAutomatic
	SymbolFlagRand
	SymbolFlagRandc
	SymbolFlagExtern
	SymbolFlagVirtual
	SymbolFlagPure
	SymbolFlagWildcardImport
	SymbolFlagBuiltin
	SymbolFlagAnsiPort
)

func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagLocalParam != 0 {
		labels = append(labels, "localparam")
	}
	if f&SymbolFlagConst != 0 {
		labels = append(labels, "const")
	}
	if f&SymbolFlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&SymbolFlagAutomatic != 0 {
		labels = append(labels, "automatic")
	}
	if f&SymbolFlagRand != 0 {
		labels = append(labels, "rand")
	}
	if f&SymbolFlagRandc != 0 {
		labels = append(labels, "randc")
	}
	if f&SymbolFlagExtern != 0 {
		labels = append(labels, "extern")
	}
	if f&SymbolFlagVirtual != 0 {
		labels = append(labels, "virtual")
	}
	if f&SymbolFlagPure != 0 {
		labels = append(labels, "pure")
	}
	if f&SymbolFlagWildcardImport != 0 {
		labels = append(labels, "wildcard-import")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagAnsiPort != 0 {
		labels = append(labels, "ansi-port")
	}
	return labels
}

// SymbolDecl anchors a symbol back to the syntax it was declared by, for
// diagnostics and go-to-definition style lookups.
type SymbolDecl struct {
	Buffer      sourcemap.BufferID
	Node        syntax.NodeID // the declarator or member node itself
	Declarator  syntax.NodeID // for a multi-declarator statement, the specific name
	TypeNode    syntax.NodeID // the data-type syntax, when the symbol carries a type
	Initializer syntax.NodeID // the initializer expression, when present
}

// Symbol describes a named entity visible in a scope: a port, a variable, a
// module, a typedef member, an instance, and so on.
type Symbol struct {
	Name       sourcemap.StringID
	Kind       SymbolKind
	Scope      ScopeID // the scope this symbol lives in
	Owns       ScopeID // the scope this symbol introduces, if any (module body, function body...)
	Span       sourcemap.Span
	Flags      SymbolFlags
	Decl       SymbolDecl
	ModuleName sourcemap.StringID // for SymbolInstance: the instantiated module/interface/program name
	Requires   []SymbolID         // e.g. a wildcard import's originating package symbol
}
