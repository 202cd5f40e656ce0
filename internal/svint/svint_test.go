package svint

import (
	"math/big"
	"testing"
)

func TestAddKnownValues(t *testing.T) {
	a := FromUint64(8, false, 200)
	b := FromUint64(8, false, 100)
	sum := Add(a, b)
	if sum.HasUnknown() {
		t.Fatalf("sum should be known")
	}
	// 300 truncates to 8 bits: 300 mod 256 = 44
	if got := sum.ToBigInt(); got.Cmp(big.NewInt(44)) != 0 {
		t.Fatalf("Add = %s, want 44", got)
	}
}

func TestAddPropagatesUnknown(t *testing.T) {
	a := AllX(8, false)
	b := FromUint64(8, false, 1)
	sum := Add(a, b)
	if !sum.HasUnknown() {
		t.Fatalf("sum should be all-unknown when an operand is unknown")
	}
}

func TestDivByZeroYieldsUnknown(t *testing.T) {
	a := FromUint64(8, false, 10)
	b := FromUint64(8, false, 0)
	r := Div(a, b)
	if !r.HasUnknown() {
		t.Fatalf("division by zero must yield an all-unknown result")
	}
}

func TestNegativeSignedRoundTrip(t *testing.T) {
	v := FromBigInt(8, true, big.NewInt(-5))
	if got := v.ToBigInt(); got.Cmp(big.NewInt(-5)) != 0 {
		t.Fatalf("ToBigInt = %s, want -5", got)
	}
}

func TestSubUnderflowSigned(t *testing.T) {
	a := FromBigInt(8, true, big.NewInt(-128))
	b := FromBigInt(8, true, big.NewInt(1))
	r := Sub(a, b)
	// -128 - 1 = -129, wraps to 127 in 8-bit two's complement.
	if got := r.ToBigInt(); got.Cmp(big.NewInt(127)) != 0 {
		t.Fatalf("Sub = %s, want 127 (wrapped)", got)
	}
}

func TestEqPropagatesUnknown(t *testing.T) {
	a := FromUint64(4, false, 5)
	b := AllX(4, false)
	if Eq(a, b) != TriUnknown {
		t.Fatalf("== with an unknown operand must be TriUnknown")
	}
}

func TestCaseEqIsBitExact(t *testing.T) {
	a := AllX(4, false)
	b := AllX(4, false)
	if !CaseEq(a, b) {
		t.Fatalf("x === x should be true (bit-exact)")
	}
	z := AllZ(4, false)
	if CaseEq(a, z) {
		t.Fatalf("x === z should be false (bit-exact, x != z)")
	}
}

func TestWildEqTreatsRHSUnknownAsDontCare(t *testing.T) {
	a := FromUint64(4, false, 0b1010)
	b := AllX(4, false)
	if !WildEq(a, b) {
		t.Fatalf("anything ==? 4'bxxxx should be true")
	}
	c := FromUint64(4, false, 0b1010)
	c.setBit(0, X)
	// lhs has an x in a position rhs pins to a known value -> mismatch.
	if WildEq(c, FromUint64(4, false, 0b1010)) {
		t.Fatalf("lhs x at a non-wildcarded rhs position should not match")
	}
}

func TestAndKnownZeroDominatesUnknown(t *testing.T) {
	a := FromUint64(1, false, 0)
	b := AllX(1, false)
	r := And(a, b)
	if r.HasUnknown() {
		t.Fatalf("0 AND x should be known 0, got unknown")
	}
	if r.Bit(0) != Zero {
		t.Fatalf("0 AND x should be Zero, got %s", r.Bit(0))
	}
}

func TestOrKnownOneDominatesUnknown(t *testing.T) {
	a := FromUint64(1, false, 1)
	b := AllX(1, false)
	r := Or(a, b)
	if r.Bit(0) != One {
		t.Fatalf("1 OR x should be One, got %s", r.Bit(0))
	}
}

func TestXorUnknownAlwaysUnknown(t *testing.T) {
	a := FromUint64(1, false, 1)
	b := AllZ(1, false)
	r := Xor(a, b)
	if r.Bit(0) != X {
		t.Fatalf("1 XOR z should be x, got %s", r.Bit(0))
	}
}

func TestNotOfZIsX(t *testing.T) {
	z := AllZ(1, false)
	r := Not(z)
	if r.Bit(0) != X {
		t.Fatalf("NOT z should be x (z treated as x), got %s", r.Bit(0))
	}
}

func TestConcatOrdersMostSignificantFirst(t *testing.T) {
	a := FromUint64(4, false, 0b1010)
	b := FromUint64(4, false, 0b0101)
	r := Concat(a, b)
	if r.Width() != 8 {
		t.Fatalf("width = %d, want 8", r.Width())
	}
	if got := r.ToBigInt(); got.Cmp(big.NewInt(0b10100101)) != 0 {
		t.Fatalf("Concat = %s, want %d", got, 0b10100101)
	}
}

func TestSliceExtractsRange(t *testing.T) {
	v := FromUint64(8, false, 0b11010110)
	s := Slice(v, 5, 2)
	if s.Width() != 4 {
		t.Fatalf("width = %d, want 4", s.Width())
	}
	if got := s.ToBigInt(); got.Cmp(big.NewInt(0b0101)) != 0 {
		t.Fatalf("Slice = %s, want %d", got, 0b0101)
	}
}

func TestToUint32RejectsUnknown(t *testing.T) {
	v := AllX(32, false)
	if _, err := ToUint32(v); err == nil {
		t.Fatalf("ToUint32 should fail on unknown bits")
	}
}

func TestToUint32RejectsOverflow(t *testing.T) {
	v := FromBigInt(64, false, new(big.Int).Lsh(big.NewInt(1), 40))
	if _, err := ToUint32(v); err == nil {
		t.Fatalf("ToUint32 should fail when the value exceeds 32 bits")
	}
}

func TestShlZeroFillsLowBits(t *testing.T) {
	v := FromUint64(8, false, 0b00000011)
	r := Shl(v, 2)
	if got := r.ToBigInt(); got.Cmp(big.NewInt(0b00001100)) != 0 {
		t.Fatalf("Shl = %s, want %d", got, 0b00001100)
	}
}

func TestSraSignExtendsForSigned(t *testing.T) {
	v := FromBigInt(8, true, big.NewInt(-4)) // 0b11111100
	r := Sra(v, 1)
	if got := r.ToBigInt(); got.Cmp(big.NewInt(-2)) != 0 {
		t.Fatalf("Sra(-4, 1) = %s, want -2", got)
	}
}
