package types

// BinOp enumerates the binary operators the type system's arithmetic typing
// rules (§4.I) and the binder's context propagation need to distinguish.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpAnd
	OpOr
	OpXor
	OpXnor
	OpShl
	OpShr
	OpSShl
	OpSShr
	OpLogicalAnd
	OpLogicalOr
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNeq
	OpCaseEq
	OpCaseNeq
	OpWildEq
	OpWildNeq
)

// forcesFourState reports the operators §4.I calls out as "or the operator
// forces it": division, modulo, and power always carry unknown-propagation
// semantics even over two-state operands, since slang's own constant
// evaluator treats a div/mod/pow result as four-state to represent a
// division-by-zero or negative-exponent result without a separate channel.
func forcesFourState(op BinOp) bool {
	switch op {
	case OpDiv, OpMod, OpPow:
		return true
	default:
		return false
	}
}

// IsComparison reports whether op is one of the 4-state-returning or
// bit-exact comparison operators, which always produce a single bit
// regardless of operand width.
func IsComparison(op BinOp) bool {
	switch op {
	case OpLt, OpLe, OpGt, OpGe, OpEq, OpNeq, OpCaseEq, OpCaseNeq, OpWildEq, OpWildNeq, OpLogicalAnd, OpLogicalOr:
		return true
	default:
		return false
	}
}

// IsContextDetermined reports whether op is "context-determined": its
// operand types are promoted to the result type before self-determined
// sub-evaluation (§4.I, GLOSSARY). Shifts, comparisons, and (by the
// binder's own ConditionalExpr handling, not here) a conditional's
// condition are self-determined instead.
func IsContextDetermined(op BinOp) bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpAnd, OpOr, OpXor, OpXnor:
		return true
	default:
		return false
	}
}

// ArithResultType implements §4.I's binary-arithmetic typing rule:
//
//  1. If either is floating: pick real if either operand is 64-bit
//     floating, else shortreal.
//  2. Else result is integral with width max(widthL, widthR), flags:
//     signed iff both signed, four-state iff either is four-state (or the
//     operator forces it).
//  3. If width collapses to 1 and either operand is a scalar, result is
//     scalar, else packed array.
//  4. If L or R matches the computed result, return that operand's type
//     (preserves aliases).
func (in *Interner) ArithResultType(op BinOp, l, r TypeID) TypeID {
	rl, rr := in.Resolve(l), in.Resolve(r)
	tl, okl := in.Lookup(rl)
	tr, okr := in.Lookup(rr)
	if !okl || !okr || tl.IsError() || tr.IsError() {
		return in.builtins.Error
	}

	if tl.IsFloating() || tr.IsFloating() {
		if (tl.IsFloating() && tl.Width == 64) || (tr.IsFloating() && tr.Width == 64) {
			return in.builtins.Real
		}
		return in.builtins.ShortReal
	}

	width := tl.Width
	if tr.Width > width {
		width = tr.Width
	}
	if width == 0 {
		width = 1
	}
	signed := tl.Signed && tr.Signed
	fourState := tl.IsFourState() || tr.IsFourState() || forcesFourState(op)

	var result TypeID
	if width == 1 && (tl.Kind == KindScalar || tr.Kind == KindScalar) {
		result = in.GetScalar(boolScalarKind(fourState), signed)
	} else {
		result = in.GetInt(width, signed, fourState)
	}

	if in.Matching(rl, result) {
		return l
	}
	if in.Matching(rr, result) {
		return r
	}
	return result
}

// SelfDeterminedShiftResult computes the result type of a shift operator,
// which (unlike arithmetic) takes its width/signedness entirely from the
// left operand: the right operand (the shift amount) is self-determined
// and never influences the result shape.
func (in *Interner) SelfDeterminedShiftResult(l TypeID) TypeID {
	t, ok := in.Lookup(in.Resolve(l))
	if !ok || t.IsError() {
		return in.builtins.Error
	}
	return l
}
