// Package types implements the SystemVerilog type system (component I,
// §4.I): integral, floating, and aggregate types, interned by structural
// key so that two requests for "the same" type return identical TypeIDs,
// plus the matching/equivalent/assignment-compatible/cast-compatible
// relations §4.I defines between them.
package types

import (
	"fmt"

	"svfront/internal/sourcemap"
)

// TypeID uniquely identifies a type inside an Interner. The zero value,
// NoTypeID, never denotes a real type.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the type variants from the data model (§3): "Type.
// Variant over {ErrorType, VoidType, NullType, CHandleType, EventType,
// StringType, ScalarType(...), PackedArrayType(...),
// PredefinedIntegerType(...), FloatingType(...), AggregateType(...), Enum,
// Alias(...)}".
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindError is the sentinel type assigned to an expression whose
	// binding already failed; it suppresses further diagnostics from
	// consumers that see it, per §7's propagation policy.
	KindError
	KindVoid
	KindNull
	KindCHandle
	KindEvent
	KindString
	// KindScalar is a single-bit bit/logic/reg, optionally signed.
	KindScalar
	// KindPackedArray is a multi-bit packed vector of a scalar (or
	// smaller packed-array) element type, e.g. logic [7:0] or a packed
	// struct's own bit-vector view.
	KindPackedArray
	// KindPredefinedInteger is one of the fixed-width integer keywords:
	// shortint/int/longint/byte/integer/time.
	KindPredefinedInteger
	// KindFloating is real/shortreal/realtime.
	KindFloating
	// KindAggregate is a struct or union with an ordered field list.
	KindAggregate
	// KindEnum is an enum with an ordered, named member list over a base
	// integral type.
	KindEnum
	// KindAlias names another type (a typedef); Equivalent strips through
	// it (Matching does not), and an alias keeps its own identity for diagnostics so
	// errors can say "parameter 'width_t'" instead of unwrapping to
	// "logic [7:0]" every time.
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "<error type>"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindCHandle:
		return "chandle"
	case KindEvent:
		return "event"
	case KindString:
		return "string"
	case KindScalar:
		return "scalar"
	case KindPackedArray:
		return "packed array"
	case KindPredefinedInteger:
		return "predefined integer"
	case KindFloating:
		return "floating"
	case KindAggregate:
		return "aggregate"
	case KindEnum:
		return "enum"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ScalarKind distinguishes bit/logic/reg: all three are single-bit, and
// logic/reg are interchangeable 4-state spellings (§3's ScalarType groups
// them), but the spelling is kept for diagnostics and for `$bits`-style
// introspection that cares whether a net was declared `reg`.
type ScalarKind uint8

const (
	ScalarBit ScalarKind = iota
	ScalarLogic
	ScalarReg
)

func (s ScalarKind) String() string {
	switch s {
	case ScalarBit:
		return "bit"
	case ScalarLogic:
		return "logic"
	case ScalarReg:
		return "reg"
	default:
		return "bit"
	}
}

// PredefKind distinguishes the six PredefinedIntegerType spellings and the
// three FloatingType spellings; Width/Signed/FourState on Type already
// carry the numeric shape each implies, so binder code can stay
// width-driven and only consult Predef for display and for `$bits`-style
// introspection that must report the declared keyword.
type PredefKind uint8

const (
	PredefNone PredefKind = iota
	PredefShortInt
	PredefInt
	PredefLongInt
	PredefByte
	PredefInteger
	PredefTime
	PredefReal
	PredefShortReal
	PredefRealTime
)

func (p PredefKind) String() string {
	switch p {
	case PredefShortInt:
		return "shortint"
	case PredefInt:
		return "int"
	case PredefLongInt:
		return "longint"
	case PredefByte:
		return "byte"
	case PredefInteger:
		return "integer"
	case PredefTime:
		return "time"
	case PredefReal:
		return "real"
	case PredefShortReal:
		return "shortreal"
	case PredefRealTime:
		return "realtime"
	default:
		return "?"
	}
}

// Type is a compact, flat descriptor covering every variant in Kind. Only
// the fields relevant to a given Kind are meaningful; side-table indices
// (Aggregate/Enum) hold the variable-length payload a flat struct cannot.
type Type struct {
	Kind      Kind
	Width     uint32 // scalar=1; packed array/predefined-integer/floating = total bit width
	Signed    bool
	FourState bool
	Scalar    ScalarKind
	Predef    PredefKind
	Elem      TypeID // KindPackedArray: element type
	Left      int32  // KindPackedArray: declared packed-dimension bounds [Left:Right]
	Right     int32
	Name      sourcemap.StringID // nominal tag for Aggregate/Enum/Alias (NoStringID if anonymous)
	// AliasTarget is the type a KindAlias names.
	AliasTarget TypeID
	// Payload indexes into Interner.aggregates or Interner.enums,
	// depending on Kind; 0 for every other kind.
	Payload uint32
}

// IsIntegral reports whether t denotes any of the integral variants
// (scalar, packed array of scalars, predefined integer, or an enum, which
// is always backed by an integral base type).
func (t Type) IsIntegral() bool {
	switch t.Kind {
	case KindScalar, KindPackedArray, KindPredefinedInteger, KindEnum:
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is real/shortreal/realtime.
func (t Type) IsFloating() bool { return t.Kind == KindFloating }

// IsNumeric reports whether t supports arithmetic (§4.I's "both numeric"
// assignment-compatibility clause).
func (t Type) IsNumeric() bool { return t.IsIntegral() || t.IsFloating() }

// IsFourState reports whether values of t carry an X/Z plane.
func (t Type) IsFourState() bool {
	switch t.Kind {
	case KindScalar, KindPackedArray:
		return t.FourState
	case KindPredefinedInteger:
		return t.Predef == PredefInteger
	default:
		return false
	}
}

// IsError reports whether t is the sentinel error type.
func (t Type) IsError() bool { return t.Kind == KindError }
