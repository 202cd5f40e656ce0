package types

import (
	"fmt"

	"fortio.org/safecast"

	"svfront/internal/sourcemap"
	"svfront/internal/svint"
)

// Field is one ordered member of an AggregateType.
type Field struct {
	Name sourcemap.StringID
	Type TypeID
	Span sourcemap.Span
}

// AggregateInfo is the side-table payload for a KindAggregate type: its
// ordered field list plus whether it is packed (matters for Equivalent's
// "total bits and element type match" rule, §4.I) and union-vs-struct.
type AggregateInfo struct {
	Fields  []Field
	Packed  bool
	IsUnion bool
}

// EnumMember is one named constant of an EnumType, in declaration order.
type EnumMember struct {
	Name  sourcemap.StringID
	Value svint.Value
}

// EnumInfo is the side-table payload for a KindEnum type.
type EnumInfo struct {
	Base    TypeID // the underlying integral base type
	Members []EnumMember
}

// Builtins holds TypeIDs for the predefined, structurally-interned types so
// callers never have to re-intern them by hand.
type Builtins struct {
	Error    TypeID
	Void     TypeID
	Null     TypeID
	CHandle  TypeID
	Event    TypeID
	String   TypeID
	Bit      TypeID // scalar bit, 2-state, unsigned
	Logic    TypeID // scalar logic, 4-state, unsigned
	Reg      TypeID // scalar reg, 4-state, unsigned
	ShortInt TypeID
	Int      TypeID
	LongInt  TypeID
	Byte     TypeID
	Integer  TypeID
	Time     TypeID
	Real     TypeID
	ShortReal TypeID
	RealTime  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors for
// every Kind except Aggregate/Enum/Alias, whose nominal identity (§3's
// Type.Variant over ... Alias(name, target) and the Invariant "Type
// interning is injective") means two separately declared structs with
// identical fields are still two different types, so they are allocated
// fresh rather than deduplicated.
type Interner struct {
	types      []Type
	index      map[typeKey]TypeID
	builtins   Builtins
	aggregates []AggregateInfo
	enums      []EnumInfo
}

func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.aggregates = append(in.aggregates, AggregateInfo{}) // reserve 0
	in.enums = append(in.enums, EnumInfo{})
	in.types = append(in.types, Type{}) // reserve NoTypeID

	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.CHandle = in.Intern(Type{Kind: KindCHandle})
	in.builtins.Event = in.Intern(Type{Kind: KindEvent})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Bit = in.Intern(Type{Kind: KindScalar, Width: 1, Scalar: ScalarBit})
	in.builtins.Logic = in.Intern(Type{Kind: KindScalar, Width: 1, Scalar: ScalarLogic, FourState: true})
	in.builtins.Reg = in.Intern(Type{Kind: KindScalar, Width: 1, Scalar: ScalarReg, FourState: true})
	in.builtins.ShortInt = in.Intern(Type{Kind: KindPredefinedInteger, Width: 16, Signed: true, Predef: PredefShortInt})
	in.builtins.Int = in.Intern(Type{Kind: KindPredefinedInteger, Width: 32, Signed: true, Predef: PredefInt})
	in.builtins.LongInt = in.Intern(Type{Kind: KindPredefinedInteger, Width: 64, Signed: true, Predef: PredefLongInt})
	in.builtins.Byte = in.Intern(Type{Kind: KindPredefinedInteger, Width: 8, Signed: true, Predef: PredefByte})
	in.builtins.Integer = in.Intern(Type{Kind: KindPredefinedInteger, Width: 32, Signed: true, FourState: true, Predef: PredefInteger})
	in.builtins.Time = in.Intern(Type{Kind: KindPredefinedInteger, Width: 64, Signed: false, Predef: PredefTime})
	in.builtins.Real = in.Intern(Type{Kind: KindFloating, Width: 64, Predef: PredefReal})
	in.builtins.ShortReal = in.Intern(Type{Kind: KindFloating, Width: 32, Predef: PredefShortReal})
	in.builtins.RealTime = in.Intern(Type{Kind: KindFloating, Width: 64, Predef: PredefRealTime})
	return in
}

// Builtins returns the predefined TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// typeKey is the structural identity used to deduplicate every
// structurally-interned Kind (everything but Aggregate/Enum, and Alias
// which always gets a fresh ID since a typedef is itself a declaration).
type typeKey struct {
	Kind      Kind
	Width     uint32
	Signed    bool
	FourState bool
	Scalar    ScalarKind
	Predef    PredefKind
	Elem      TypeID
	Left      int32
	Right     int32
}

func keyOf(t Type) typeKey {
	return typeKey{
		Kind: t.Kind, Width: t.Width, Signed: t.Signed, FourState: t.FourState,
		Scalar: t.Scalar, Predef: t.Predef, Elem: t.Elem, Left: t.Left, Right: t.Right,
	}
}

func nominal(k Kind) bool {
	return k == KindAggregate || k == KindEnum || k == KindAlias
}

// Intern ensures the provided descriptor has a stable TypeID. For the
// nominal kinds (Aggregate/Enum/Alias) this always allocates a fresh ID:
// callers use NewAggregate/NewEnum/NewAlias instead, which call
// internRaw directly; Intern is documented here only to explain why a
// second Intern(t) call with the same Payload is not itself deduplicating.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if nominal(t.Kind) {
		return in.internRaw(t)
	}
	key := keyOf(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: type arena overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	if !nominal(t.Kind) {
		in.index[keyOf(t)] = id
	}
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// GetScalar interns a single-bit scalar of the given kind/signedness.
func (in *Interner) GetScalar(kind ScalarKind, signed bool) TypeID {
	fourState := kind != ScalarBit
	return in.Intern(Type{Kind: KindScalar, Width: 1, Scalar: kind, Signed: signed, FourState: fourState})
}

// GetPackedArray interns a packed array of elem spanning [left:right]
// (inclusive, either direction); width is derived from the bound span.
// elem's four-state-ness propagates, matching §4.I's "four-state iff
// either [constituent] is four-state".
func (in *Interner) GetPackedArray(elem TypeID, left, right int32) TypeID {
	width := packedWidth(left, right)
	elemT := in.MustLookup(elem)
	return in.Intern(Type{
		Kind: KindPackedArray, Width: width, Elem: elem, Left: left, Right: right,
		Signed: elemT.Signed, FourState: elemFourState(elemT),
	})
}

func packedWidth(left, right int32) uint32 {
	d := left - right
	if d < 0 {
		d = -d
	}
	return uint32(d) + 1
}

func elemFourState(t Type) bool {
	switch t.Kind {
	case KindScalar, KindPackedArray:
		return t.FourState
	default:
		return false
	}
}

// GetInt returns the builtin scalar/packed-integer type matching width,
// signed and fourState, used by the binder's context-determined width
// promotion (§4.I) to materialize the result of an arithmetic operator
// without going through a declared SystemVerilog keyword.
func (in *Interner) GetInt(width uint32, signed, fourState bool) TypeID {
	if width == 1 {
		if fourState {
			return in.Intern(Type{Kind: KindScalar, Width: 1, Scalar: ScalarLogic, Signed: signed, FourState: true})
		}
		return in.Intern(Type{Kind: KindScalar, Width: 1, Scalar: ScalarBit, Signed: signed})
	}
	elem := in.GetScalar(boolScalarKind(fourState), false)
	return in.Intern(Type{
		Kind: KindPackedArray, Width: width, Elem: elem,
		Left: int32(width) - 1, Right: 0, Signed: signed, FourState: fourState,
	})
}

func boolScalarKind(fourState bool) ScalarKind {
	if fourState {
		return ScalarLogic
	}
	return ScalarBit
}

// NewAggregate allocates a fresh struct/union type with info as its field
// table, returning its nominal TypeID.
func (in *Interner) NewAggregate(name sourcemap.StringID, info AggregateInfo) TypeID {
	n, err := safecast.Conv[uint32](len(in.aggregates))
	if err != nil {
		panic(fmt.Errorf("types: aggregate table overflow: %w", err))
	}
	in.aggregates = append(in.aggregates, info)
	width := uint32(0)
	if info.Packed {
		for _, f := range info.Fields {
			if ft, ok := in.Lookup(f.Type); ok {
				width += ft.Width
			}
		}
	}
	return in.internRaw(Type{Kind: KindAggregate, Name: name, Width: width, Payload: n})
}

// Aggregate returns the field table for a KindAggregate type.
func (in *Interner) Aggregate(id TypeID) (AggregateInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindAggregate || int(t.Payload) >= len(in.aggregates) {
		return AggregateInfo{}, false
	}
	return in.aggregates[t.Payload], true
}

// NewEnum allocates a fresh enum type over base with the given members.
func (in *Interner) NewEnum(name sourcemap.StringID, info EnumInfo) TypeID {
	n, err := safecast.Conv[uint32](len(in.enums))
	if err != nil {
		panic(fmt.Errorf("types: enum table overflow: %w", err))
	}
	in.enums = append(in.enums, info)
	base := in.MustLookup(info.Base)
	return in.internRaw(Type{Kind: KindEnum, Name: name, Width: base.Width, Signed: base.Signed, FourState: elemFourState(base), Payload: n})
}

// Enum returns the member table for a KindEnum type.
func (in *Interner) Enum(id TypeID) (EnumInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum || int(t.Payload) >= len(in.enums) {
		return EnumInfo{}, false
	}
	return in.enums[t.Payload], true
}

// NewAlias allocates a fresh typedef aliasing target under name.
func (in *Interner) NewAlias(name sourcemap.StringID, target TypeID) TypeID {
	return in.internRaw(Type{Kind: KindAlias, Name: name, AliasTarget: target})
}

// Resolve strips through alias chains, returning the first non-alias type
// reached (the "canonical type" the GLOSSARY defines).
func (in *Interner) Resolve(id TypeID) TypeID {
	seen := map[TypeID]bool{}
	for {
		t, ok := in.Lookup(id)
		if !ok || t.Kind != KindAlias {
			return id
		}
		if seen[id] {
			return id // an alias cycle; stop here (no diagnostic is raised for it)
		}
		seen[id] = true
		id = t.AliasTarget
	}
}
