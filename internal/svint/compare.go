package svint

import "math/big"

// TriBool is the result of a relational or logical-equality comparison: a
// two-state comparison whose operands carried an unknown bit yields
// TriUnknown rather than a definite true/false (§4.C).
type TriBool uint8

const (
	TriFalse TriBool = iota
	TriTrue
	TriUnknown
)

func fromBool(b bool) TriBool {
	if b {
		return TriTrue
	}
	return TriFalse
}

// Eq implements `==`: unknown in either operand yields TriUnknown.
func Eq(a, b Value) TriBool {
	if a.HasUnknown() || b.HasUnknown() {
		return TriUnknown
	}
	width, signed := resultShape(a, b)
	return fromBool(a.Resize(width, signed).ToBigInt().Cmp(b.Resize(width, signed).ToBigInt()) == 0)
}

// Neq implements `!=`.
func Neq(a, b Value) TriBool {
	r := Eq(a, b)
	if r == TriUnknown {
		return TriUnknown
	}
	return fromBool(r == TriFalse)
}

// sameShape extends a and b to a common width for bit-exact comparison,
// zero-extending (never sign-extending) since === compares bit patterns,
// not numeric magnitude.
func sameShape(a, b Value) (Value, Value) {
	width := a.width
	if b.width > width {
		width = b.width
	}
	return a.Resize(width, false), b.Resize(width, false)
}

// CaseEq implements `===`: a bit-exact comparison including x and z, never
// unknown itself.
func CaseEq(a, b Value) bool {
	ae, be := sameShape(a, b)
	for i := range ae.aval {
		if ae.aval[i] != be.aval[i] || ae.bval[i] != be.bval[i] {
			return false
		}
	}
	return true
}

// CaseNeq implements `!==`.
func CaseNeq(a, b Value) bool {
	return !CaseEq(a, b)
}

// WildEq implements `==?`: bits where b is x or z are don't-care; all other
// bit positions must match exactly, including any x/z on the a side (which
// then fails to match a known b bit). Never returns unknown.
func WildEq(a, b Value) bool {
	ae, be := sameShape(a, b)
	for i := uint32(0); i < ae.width; i++ {
		bs := be.Bit(i)
		if bs == X || bs == Z {
			continue
		}
		if ae.Bit(i) != bs {
			return false
		}
	}
	return true
}

// WildNeq implements `!=?`.
func WildNeq(a, b Value) bool {
	return !WildEq(a, b)
}

func compareBig(a, b Value, cmp func(x, y int) bool) TriBool {
	if a.HasUnknown() || b.HasUnknown() {
		return TriUnknown
	}
	width, signed := resultShape(a, b)
	x := a.Resize(width, signed).ToBigInt()
	y := b.Resize(width, signed).ToBigInt()
	return fromBool(cmp(x.Cmp(y), 0))
}

func Lt(a, b Value) TriBool { return compareBig(a, b, func(c, z int) bool { return c < z }) }
func Le(a, b Value) TriBool { return compareBig(a, b, func(c, z int) bool { return c <= z }) }
func Gt(a, b Value) TriBool { return compareBig(a, b, func(c, z int) bool { return c > z }) }
func Ge(a, b Value) TriBool { return compareBig(a, b, func(c, z int) bool { return c >= z }) }

// IsZero reports whether a is definitely, possibly, or never zero — used by
// the constant evaluator for conditional expressions, which treat any
// unknown bit in the condition as producing an unknown branch (§4.C, §4.J).
func IsZero(a Value) TriBool {
	if a.HasUnknown() {
		return TriUnknown
	}
	return fromBool(a.ToBigInt().Cmp(big.NewInt(0)) == 0)
}
