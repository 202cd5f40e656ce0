package svint

import (
	"fmt"
	"math/big"

	"fortio.org/safecast"
)

// ErrUnknownBits is returned by the To*32 casts when the value has any x/z
// bit; there is no int32/uint32 that can represent it.
var ErrUnknownBits = fmt.Errorf("svint: value has unknown bits")

var (
	maxUint32Big = big.NewInt(1<<32 - 1)
	maxInt32Big  = big.NewInt(1<<31 - 1)
	minInt32Big  = big.NewInt(-1 << 31)
)

// ToUint32 converts a to a uint32, failing if a has unknown bits or its
// value does not fit in 32 bits unsigned (§4.C).
func ToUint32(a Value) (uint32, error) {
	if a.HasUnknown() {
		return 0, ErrUnknownBits
	}
	bi := a.Resize(a.width, false).ToBigInt()
	if bi.Sign() < 0 || bi.Cmp(maxUint32Big) > 0 {
		return 0, fmt.Errorf("svint: value %s does not fit in uint32", bi.String())
	}
	return safecast.Conv[uint32](bi.Uint64())
}

// ToInt32 converts a to an int32, failing if a has unknown bits or its
// value does not fit in 32 bits signed.
func ToInt32(a Value) (int32, error) {
	if a.HasUnknown() {
		return 0, ErrUnknownBits
	}
	bi := a.ToBigInt()
	if bi.Cmp(minInt32Big) < 0 || bi.Cmp(maxInt32Big) > 0 {
		return 0, fmt.Errorf("svint: value %s does not fit in int32", bi.String())
	}
	return safecast.Conv[int32](bi.Int64())
}

// FromInt64 builds a fully-known Value of the given width from a plain Go
// integer, useful for wrapping constants computed outside constant folding
// (e.g. array bounds derived from elaboration).
func FromInt64(width uint32, signed bool, v int64) Value {
	return FromBigInt(width, signed, big.NewInt(v))
}
