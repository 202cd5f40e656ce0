package svint

// Concat implements SystemVerilog concatenation `{a, b, ...}`: parts are
// ordered most-significant first, matching source order, and the result is
// always unsigned per the LRM regardless of the operands' signedness.
func Concat(parts ...Value) Value {
	var width uint32
	for _, p := range parts {
		width += p.width
	}
	if width == 0 {
		width = 1
	}
	out := newValue(width, false)
	pos := uint32(0)
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		for j := uint32(0); j < p.width; j++ {
			out.setBit(pos+j, p.Bit(j))
		}
		pos += p.width
	}
	return out.mask()
}

// Replicate implements `{n{v}}`.
func Replicate(n uint32, v Value) Value {
	if n == 0 {
		return FromUint64(1, false, 0)
	}
	parts := make([]Value, n)
	for i := range parts {
		parts[i] = v
	}
	return Concat(parts...)
}

// Slice extracts bits [hi:lo] (inclusive, hi >= lo) from a as an unsigned
// value of width hi-lo+1, matching a part-select's result (§4.C).
func Slice(a Value, hi, lo uint32) Value {
	if hi < lo {
		hi, lo = lo, hi
	}
	width := hi - lo + 1
	out := newValue(width, false)
	for i := uint32(0); i < width; i++ {
		out.setBit(i, a.Bit(lo+i))
	}
	return out.mask()
}
