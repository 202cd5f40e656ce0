package types

// Matching reports structural identity including signedness, four-state-ness,
// and dimensions (§4.I: "structurally identical"). Aliases are not stripped:
// two typedefs over the same target do not match each other by this relation,
// only Equivalent does.
func (in *Interner) Matching(a, b TypeID) bool {
	if a == b {
		return true
	}
	ta, oka := in.Lookup(a)
	tb, okb := in.Lookup(b)
	if !oka || !okb {
		return false
	}
	if ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindScalar:
		return ta.Scalar == tb.Scalar && ta.Signed == tb.Signed
	case KindPackedArray:
		return ta.Left == tb.Left && ta.Right == tb.Right && ta.Signed == tb.Signed &&
			in.Matching(ta.Elem, tb.Elem)
	case KindPredefinedInteger, KindFloating:
		return ta.Predef == tb.Predef
	case KindAggregate, KindEnum, KindAlias:
		return a == b // nominal: identity only
	default:
		return true // Error/Void/Null/CHandle/Event/String are singletons
	}
}

// Equivalent reports "matching modulo typedef aliases and packed-array
// dimension shape so long as total bits and element type match" (§4.I).
func (in *Interner) Equivalent(a, b TypeID) bool {
	ra, rb := in.Resolve(a), in.Resolve(b)
	if in.Matching(ra, rb) {
		return true
	}
	ta, oka := in.Lookup(ra)
	tb, okb := in.Lookup(rb)
	if !oka || !okb {
		return false
	}
	if isPackedIntegral(ta) && isPackedIntegral(tb) {
		ea, eb := in.baseElement(ra), in.baseElement(rb)
		return ta.Width == tb.Width && ta.Signed == tb.Signed && in.Matching(ea, eb)
	}
	if ta.Kind == KindAggregate && tb.Kind == KindAggregate {
		ia, _ := in.Aggregate(ra)
		ib, _ := in.Aggregate(rb)
		if !ia.Packed || !ib.Packed || ia.IsUnion != ib.IsUnion || len(ia.Fields) != len(ib.Fields) {
			return false
		}
		for i := range ia.Fields {
			if !in.Equivalent(ia.Fields[i].Type, ib.Fields[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}

func isPackedIntegral(t Type) bool {
	return t.Kind == KindScalar || t.Kind == KindPackedArray || t.Kind == KindPredefinedInteger
}

// baseElement returns the element type a packed integral type is built
// from: itself for a scalar, Elem for a packed array, and a same-shaped
// scalar for a predefined integer (which has no declared Elem field).
func (in *Interner) baseElement(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch t.Kind {
	case KindPackedArray:
		return t.Elem
	case KindScalar:
		return id
	default:
		return in.GetScalar(boolScalarKind(t.FourState), t.Signed)
	}
}

// AssignmentCompatible reports "equivalent, or both numeric, or class-null
// to class, or string to packed array of bytes" (§4.I). This front end has
// no class hierarchy yet (§1's explicit non-goal), so the class-null clause
// only covers chandle/event/null against themselves.
func (in *Interner) AssignmentCompatible(target, source TypeID) bool {
	if in.Equivalent(target, source) {
		return true
	}
	tt, okt := in.Lookup(in.Resolve(target))
	ts, oks := in.Lookup(in.Resolve(source))
	if !okt || !oks {
		return false
	}
	if tt.IsNumeric() && ts.IsNumeric() {
		return true
	}
	if ts.Kind == KindNull && (tt.Kind == KindCHandle || tt.Kind == KindEvent) {
		return true
	}
	if ts.Kind == KindString && isPackedIntegral(tt) && !tt.Signed {
		return true
	}
	return false
}

// CastCompatible reports "equivalent, or permits explicit numeric
// conversions" (§4.I): a strictly weaker relation than AssignmentCompatible,
// additionally allowing any numeric-to-numeric or numeric-to-string cast.
func (in *Interner) CastCompatible(target, source TypeID) bool {
	if in.AssignmentCompatible(target, source) {
		return true
	}
	tt, okt := in.Lookup(in.Resolve(target))
	ts, oks := in.Lookup(in.Resolve(source))
	if !okt || !oks {
		return false
	}
	if tt.IsNumeric() && ts.IsNumeric() {
		return true
	}
	if tt.Kind == KindString && ts.IsNumeric() {
		return true
	}
	return false
}
