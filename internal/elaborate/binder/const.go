// Package binder implements component J: binding syntax expressions to
// typed expression trees and evaluating the constant ones (§4.J).
package binder

import (
	"fmt"

	"svfront/internal/svint"
)

// ConstKind discriminates the variant a Constant currently holds.
type ConstKind uint8

const (
	ConstInvalid ConstKind = iota
	ConstInt
	ConstReal
	ConstString
	ConstNull
	ConstUnbounded
	ConstAggregate
)

// Constant is the constant-evaluator's value domain (§3's "Constant value.
// Variant over {4-state big integer, real, string bytes, null, unbounded,
// aggregate (ordered element list)}"). Only one of the payload fields is
// meaningful for a given Kind.
type Constant struct {
	Kind  ConstKind
	Int   svint.Value
	Real  float64
	Str   string
	Elems []Constant
}

// Invalid reports whether c carries no usable value, either because
// evaluation never produced one or because it failed.
func (c Constant) Invalid() bool { return c.Kind == ConstInvalid }

func IntConst(v svint.Value) Constant    { return Constant{Kind: ConstInt, Int: v} }
func RealConst(v float64) Constant       { return Constant{Kind: ConstReal, Real: v} }
func StringConst(s string) Constant      { return Constant{Kind: ConstString, Str: s} }
func NullConst() Constant                { return Constant{Kind: ConstNull} }
func UnboundedConst() Constant           { return Constant{Kind: ConstUnbounded} }
func AggregateConst(e []Constant) Constant { return Constant{Kind: ConstAggregate, Elems: e} }

// IsTrue reports c's truth value as a tri-state: true, false, or unknown
// (represented by the second return being false), matching how a constant
// condition with an unknown bit produces an unknown branch (§4.C, §4.J).
func (c Constant) IsTrue() (value, known bool) {
	switch c.Kind {
	case ConstInt:
		switch svint.IsZero(c.Int) {
		case svint.TriFalse:
			return true, true
		case svint.TriTrue:
			return false, true
		default:
			return false, false
		}
	case ConstReal:
		return c.Real != 0, true
	default:
		return false, true
	}
}

func (c Constant) String() string {
	switch c.Kind {
	case ConstInt:
		return c.Int.String()
	case ConstReal:
		return fmt.Sprintf("%g", c.Real)
	case ConstString:
		return c.Str
	case ConstNull:
		return "null"
	case ConstUnbounded:
		return "$"
	case ConstAggregate:
		return fmt.Sprintf("%v", c.Elems)
	default:
		return "<invalid constant>"
	}
}
