package svint

import "strings"

// BinaryString renders v's bits, most significant bit first, using 0/1/x/z
// per bit — the same alphabet as a based literal (§4.D), but with no width
// or base prefix — useful for diagnostics and golden test output.
func (v Value) BinaryString() string {
	var sb strings.Builder
	for i := v.width; i > 0; i-- {
		sb.WriteString(v.Bit(i - 1).String())
	}
	return sb.String()
}

// String implements fmt.Stringer: known values print as decimal, values
// with any unknown bit fall back to BinaryString since there is no decimal
// digit for x or z.
func (v Value) String() string {
	if v.HasUnknown() {
		return v.BinaryString()
	}
	return v.ToBigInt().String()
}
