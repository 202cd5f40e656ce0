package svint

import "math/big"

// resultShape picks the width/signedness for a binary arithmetic result:
// the wider of the two operands, signed only if both operands are signed
// (§4.C, mirroring SystemVerilog's self-determined binary operand rules).
func resultShape(a, b Value) (width uint32, signed bool) {
	width = a.width
	if b.width > width {
		width = b.width
	}
	return width, a.signed && b.signed
}

func binaryArith(a, b Value, apply func(x, y *big.Int) *big.Int) Value {
	width, signed := resultShape(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width, signed)
	}
	x := a.Resize(width, signed).ToBigInt()
	y := b.Resize(width, signed).ToBigInt()
	r := apply(x, y)
	return FromBigInt(width, signed, r)
}

// Add returns a+b.
func Add(a, b Value) Value {
	return binaryArith(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) })
}

// Sub returns a-b.
func Sub(a, b Value) Value {
	return binaryArith(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) })
}

// Mul returns a*b.
func Mul(a, b Value) Value {
	return binaryArith(a, b, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) })
}

// Div returns a/b, truncating toward zero. Division by zero yields an
// all-unknown result rather than an error, per §4.C's constant-folding rules.
func Div(a, b Value) Value {
	width, signed := resultShape(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width, signed)
	}
	x := a.Resize(width, signed).ToBigInt()
	y := b.Resize(width, signed).ToBigInt()
	if y.Sign() == 0 {
		return AllX(width, signed)
	}
	return FromBigInt(width, signed, new(big.Int).Quo(x, y))
}

// Mod returns a%b (truncated remainder, sign of the dividend). Modulo by
// zero yields an all-unknown result.
func Mod(a, b Value) Value {
	width, signed := resultShape(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width, signed)
	}
	x := a.Resize(width, signed).ToBigInt()
	y := b.Resize(width, signed).ToBigInt()
	if y.Sign() == 0 {
		return AllX(width, signed)
	}
	return FromBigInt(width, signed, new(big.Int).Rem(x, y))
}

// Pow returns a**b. A negative exponent on an integer base yields 0 except
// for base values of 1 and -1, matching SystemVerilog's integer power rule;
// an unknown bit in either operand makes the result all-unknown.
func Pow(a, b Value) Value {
	width, signed := resultShape(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return AllX(width, signed)
	}
	base := a.Resize(width, signed).ToBigInt()
	exp := b.ToBigInt()
	if exp.Sign() < 0 {
		switch {
		case base.Cmp(big.NewInt(1)) == 0:
			return FromBigInt(width, signed, big.NewInt(1))
		case base.Cmp(big.NewInt(-1)) == 0:
			if exp.Bit(0) == 0 {
				return FromBigInt(width, signed, big.NewInt(1))
			}
			return FromBigInt(width, signed, big.NewInt(-1))
		default:
			return FromBigInt(width, signed, big.NewInt(0))
		}
	}
	return FromBigInt(width, signed, new(big.Int).Exp(base, exp, nil))
}

// Neg returns the two's complement negation of a.
func Neg(a Value) Value {
	if a.HasUnknown() {
		return AllX(a.width, a.signed)
	}
	return a.twosComplementNegate()
}

// bitwiseOp applies fn per-word to aval/bval planes after bringing both
// operands to the wider width with Resize, which sign-extends an operand
// that is itself signed and zero-extends an unsigned one.
func bitwiseOp(a, b Value, fn func(aa, ab, ba, bb uint64) (uint64, uint64)) Value {
	width := a.width
	if b.width > width {
		width = b.width
	}
	signed := a.signed && b.signed
	ae := a.Resize(width, signed)
	be := b.Resize(width, signed)
	out := newValue(width, signed)
	for i := range out.aval {
		out.aval[i], out.bval[i] = fn(ae.aval[i], ae.bval[i], be.aval[i], be.bval[i])
	}
	return out.mask()
}

// And computes the bitwise AND per IEEE 1800's 4-state truth table: a known
// 0 on either side dominates, and z is treated as x (§4.C). Every result bit
// that isn't a known 0 or a known 1 is rendered as x, never z.
func And(a, b Value) Value {
	return bitwiseOp(a, b, func(aa, ab, ba, bb uint64) (uint64, uint64) {
		an, bn := aa|ab, ba|bb // z normalized to x on each input
		known0 := (^an &^ ab) | (^bn &^ bb)
		resUnknown := (ab | bb) &^ known0
		return an & bn, resUnknown
	})
}

// Or computes the bitwise OR; a known 1 on either side dominates, z is
// treated as x.
func Or(a, b Value) Value {
	return bitwiseOp(a, b, func(aa, ab, ba, bb uint64) (uint64, uint64) {
		an, bn := aa|ab, ba|bb
		known1 := (aa &^ ab) | (ba &^ bb)
		resUnknown := (ab | bb) &^ known1
		return an | bn, resUnknown
	})
}

// Xor computes the bitwise XOR; any unknown operand bit (x or z) makes the
// result bit x, since XOR has no dominating operand value.
func Xor(a, b Value) Value {
	return bitwiseOp(a, b, func(aa, ab, ba, bb uint64) (uint64, uint64) {
		resUnknown := ab | bb
		resVal := (aa ^ ba) | resUnknown
		return resVal, resUnknown
	})
}

// Not computes the bitwise NOT of a. A known bit inverts normally; an
// unknown bit (x or z) stays x.
func Not(a Value) Value {
	out := newValue(a.width, a.signed)
	for i := range out.aval {
		out.aval[i] = (^a.aval[i] &^ a.bval[i]) | a.bval[i]
		out.bval[i] = a.bval[i]
	}
	return out.mask()
}

// shiftBits builds a Value of a's width/signedness by mapping each result
// bit index to a source bit index (or to a fixed fill state), operating
// directly on 4-state bits rather than going through a numeric conversion —
// shifts move bit patterns, they do not interpret magnitude.
func shiftBits(a Value, srcIndex func(dst uint32) (src uint32, ok bool), fill State) Value {
	out := newValue(a.width, a.signed)
	for dst := uint32(0); dst < a.width; dst++ {
		if src, ok := srcIndex(dst); ok {
			out.setBit(dst, a.Bit(src))
		} else {
			out.setBit(dst, fill)
		}
	}
	return out.mask()
}

// Shl returns a shifted left by shift, zero-filling vacated low bits.
func Shl(a Value, shift uint32) Value {
	return shiftBits(a, func(dst uint32) (uint32, bool) {
		if dst < shift {
			return 0, false
		}
		return dst - shift, true
	}, Zero)
}

// Shr returns a shifted right logically (zero-filling from the top),
// regardless of signedness.
func Shr(a Value, shift uint32) Value {
	return shiftBits(a, func(dst uint32) (uint32, bool) {
		src := dst + shift
		if src >= a.width {
			return 0, false
		}
		return src, true
	}, Zero)
}

// Sra returns a shifted right arithmetically, sign-extending from the top
// when a is signed (replicating an unsigned operand's top bit is undefined
// by the LRM for `>>>`  on unsigned types; SystemVerilog itself zero-fills
// in that case, matched here).
func Sra(a Value, shift uint32) Value {
	fill := Zero
	if a.signed && a.width > 0 {
		fill = a.Bit(a.width - 1)
	}
	return shiftBits(a, func(dst uint32) (uint32, bool) {
		src := dst + shift
		if src >= a.width {
			return 0, false
		}
		return src, true
	}, fill)
}
