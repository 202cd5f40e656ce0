package binder

import (
	"math/big"

	"svfront/internal/diag"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/svint"
	"svfront/internal/token"
	"svfront/internal/types"
)

// maxEvalDepth bounds constant-evaluator recursion (a parameter whose
// initializer calls a function whose body references another parameter,
// and so on) the way a real implementation needs a circuit breaker against
// runaway recursive elaboration (§4.J).
const maxEvalDepth = 256

// EvalContext carries per-evaluation state: a binding of genvars and
// function-local parameters to their current constant value (populated by
// a generate-for loop or a function-call frame the caller sets up), plus a
// recursion depth counter shared across the whole evaluation.
type EvalContext struct {
	b        *Binder
	values   map[symbols.SymbolID]Constant
	depth    int
}

func NewEvalContext(b *Binder) *EvalContext {
	return &EvalContext{b: b, values: make(map[symbols.SymbolID]Constant)}
}

// Bind records sym's current value for the duration of this context, used
// by a generate-for loop to give its genvar a value before evaluating the
// loop body's constant expressions.
func (ec *EvalContext) Bind(sym symbols.SymbolID, v Constant) {
	ec.values[sym] = v
}

func (ec *EvalContext) reportNotConstant(e *Expr, why string) Constant {
	diag.ReportError(ec.b.reporter, diag.ConstEvalNotConstant, e.Span, why).Emit()
	return Constant{}
}

// Eval evaluates e to a Constant, or returns an invalid Constant and
// reports a diagnostic if e is not a constant expression.
func (ec *EvalContext) Eval(e *Expr) Constant {
	if e == nil {
		return Constant{}
	}
	ec.depth++
	defer func() { ec.depth-- }()
	if ec.depth > maxEvalDepth {
		diag.ReportError(ec.b.reporter, diag.ConstEvalRecursionDepth, e.Span, "constant evaluation recursion depth exceeded").Emit()
		return Constant{}
	}

	switch e.Kind {
	case ELiteral:
		return e.Literal
	case ENamedValue:
		return ec.evalNamedValue(e)
	case EUnary:
		return ec.evalUnary(e)
	case EBinary:
		return ec.evalBinary(e)
	case ETernary:
		return ec.evalTernary(e)
	case EConcat:
		return ec.evalConcat(e)
	case EReplication:
		return ec.evalReplication(e)
	case EElementSelect:
		return ec.evalElementSelect(e)
	case ERangeSelect:
		return ec.evalRangeSelect(e)
	case EMemberAccess:
		return ec.evalMemberAccess(e)
	case EConversion:
		return ec.evalConversion(e)
	case EAssignmentPattern:
		return e.Literal
	case ESysCall:
		return ec.evalSystemCall(e)
	case ECall:
		return ec.reportNotConstant(e, "user function calls are not evaluated by the constant evaluator")
	default:
		return ec.reportNotConstant(e, "expression is not a constant expression")
	}
}

func (ec *EvalContext) evalNamedValue(e *Expr) Constant {
	if v, ok := ec.values[e.Symbol]; ok {
		return v
	}
	sym := ec.b.table.Symbols.Get(e.Symbol)
	if sym == nil {
		return ec.reportNotConstant(e, "expression is not a constant expression")
	}
	switch sym.Kind {
	case symbols.SymbolParameter, symbols.SymbolEnumMember:
		if !sym.Decl.Initializer.IsValid() {
			return ec.reportNotConstant(e, "expression is not a constant expression")
		}
		init := ec.b.BindExpression(sym.Scope, sym.Span, sym.Decl.Initializer)
		v := ec.Eval(init)
		ec.values[e.Symbol] = v
		return v
	case symbols.SymbolGenvar:
		return ec.reportNotConstant(e, "genvar has no bound value in this context")
	default:
		return ec.reportNotConstant(e, "reference is not a constant")
	}
}

func isFloatingConst(c Constant) bool { return c.Kind == ConstReal }

func (ec *EvalContext) evalUnary(e *Expr) Constant {
	v := ec.Eval(e.Operands[0])
	if v.Invalid() {
		return v
	}
	switch {
	case isFloatingConst(v):
		switch e.UnaryOp {
		case token.Minus:
			return RealConst(-v.Real)
		case token.Plus:
			return v
		default:
			return ec.reportNotConstant(e, "operator not valid on a real constant")
		}
	}
	if v.Kind != ConstInt {
		return ec.reportNotConstant(e, "operand is not a constant integer")
	}
	switch e.UnaryOp {
	case token.Bang:
		truth, known := v.IsTrue()
		if !known {
			return IntConst(svint.AllX(1, false))
		}
		return IntConst(svint.FromUint64(1, false, boolToUint(!truth)))
	case token.Tilde:
		return IntConst(svint.Not(v.Int))
	case token.Amp:
		return reduceBits(v.Int, svint.And)
	case token.Pipe:
		return reduceBits(v.Int, svint.Or)
	case token.Caret:
		return reduceBits(v.Int, svint.Xor)
	case token.TildeAmp:
		r := reduceBits(v.Int, svint.And)
		return IntConst(svint.Not(r.Int))
	case token.TildePipe:
		r := reduceBits(v.Int, svint.Or)
		return IntConst(svint.Not(r.Int))
	case token.TildeCaret, token.CaretTilde:
		r := reduceBits(v.Int, svint.Xor)
		return IntConst(svint.Not(r.Int))
	case token.Minus:
		return IntConst(svint.Neg(v.Int))
	case token.Plus:
		return v
	default:
		return ec.reportNotConstant(e, "operator not supported in a constant expression")
	}
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func reduceBits(v svint.Value, combine func(a, b svint.Value) svint.Value) Constant {
	acc := svint.Slice(v, 0, 0)
	for i := uint32(1); i < v.Width(); i++ {
		acc = combine(acc, svint.Slice(v, i, i))
	}
	return IntConst(acc)
}

func (ec *EvalContext) evalBinary(e *Expr) Constant {
	switch e.Op {
	case types.OpLogicalAnd, types.OpLogicalOr:
		return ec.evalLogical(e)
	}
	l := ec.Eval(e.Operands[0])
	r := ec.Eval(e.Operands[1])
	if l.Invalid() || r.Invalid() {
		return Constant{}
	}
	if isFloatingConst(l) || isFloatingConst(r) {
		return ec.evalFloatBinary(e, l, r)
	}
	if l.Kind != ConstInt || r.Kind != ConstInt {
		return ec.reportNotConstant(e, "operands are not constant integers")
	}
	switch e.Op {
	case types.OpAdd:
		return IntConst(svint.Add(l.Int, r.Int))
	case types.OpSub:
		return IntConst(svint.Sub(l.Int, r.Int))
	case types.OpMul:
		return IntConst(svint.Mul(l.Int, r.Int))
	case types.OpDiv:
		if checkDivByZero(ec, e, r) {
			return Constant{}
		}
		return IntConst(svint.Div(l.Int, r.Int))
	case types.OpMod:
		if checkDivByZero(ec, e, r) {
			return Constant{}
		}
		return IntConst(svint.Mod(l.Int, r.Int))
	case types.OpPow:
		return IntConst(svint.Pow(l.Int, r.Int))
	case types.OpAnd:
		return IntConst(svint.And(l.Int, r.Int))
	case types.OpOr:
		return IntConst(svint.Or(l.Int, r.Int))
	case types.OpXor:
		return IntConst(svint.Xor(l.Int, r.Int))
	case types.OpXnor:
		return IntConst(svint.Not(svint.Xor(l.Int, r.Int)))
	case types.OpShl, types.OpSShl:
		n, _ := svint.ToUint32(r.Int)
		return IntConst(svint.Shl(l.Int, n))
	case types.OpShr:
		n, _ := svint.ToUint32(r.Int)
		return IntConst(svint.Shr(l.Int, n))
	case types.OpSShr:
		n, _ := svint.ToUint32(r.Int)
		if l.Int.Signed() {
			return IntConst(svint.Sra(l.Int, n))
		}
		return IntConst(svint.Shr(l.Int, n))
	case types.OpLt:
		return triConst(svint.Lt(l.Int, r.Int))
	case types.OpLe:
		return triConst(svint.Le(l.Int, r.Int))
	case types.OpGt:
		return triConst(svint.Gt(l.Int, r.Int))
	case types.OpGe:
		return triConst(svint.Ge(l.Int, r.Int))
	case types.OpEq:
		return triConst(svint.Eq(l.Int, r.Int))
	case types.OpNeq:
		return triConst(svint.Neq(l.Int, r.Int))
	case types.OpCaseEq:
		return IntConst(svint.FromUint64(1, false, boolToUint(svint.CaseEq(l.Int, r.Int))))
	case types.OpCaseNeq:
		return IntConst(svint.FromUint64(1, false, boolToUint(svint.CaseNeq(l.Int, r.Int))))
	case types.OpWildEq:
		return IntConst(svint.FromUint64(1, false, boolToUint(svint.WildEq(l.Int, r.Int))))
	case types.OpWildNeq:
		return IntConst(svint.FromUint64(1, false, boolToUint(svint.WildNeq(l.Int, r.Int))))
	default:
		return ec.reportNotConstant(e, "operator not supported in a constant expression")
	}
}

func checkDivByZero(ec *EvalContext, e *Expr, r Constant) bool {
	if svint.IsZero(r.Int) == svint.TriTrue {
		diag.ReportError(ec.b.reporter, diag.ConstEvalDivByZero, e.Span, "division or modulo by zero in constant expression").Emit()
		return true
	}
	return false
}

func triConst(t svint.TriBool) Constant {
	switch t {
	case svint.TriTrue:
		return IntConst(svint.FromUint64(1, false, 1))
	case svint.TriFalse:
		return IntConst(svint.FromUint64(1, false, 0))
	default:
		return IntConst(svint.AllX(1, false))
	}
}

func (ec *EvalContext) evalFloatBinary(e *Expr, l, r Constant) Constant {
	lf, rf := toFloat(l), toFloat(r)
	switch e.Op {
	case types.OpAdd:
		return RealConst(lf + rf)
	case types.OpSub:
		return RealConst(lf - rf)
	case types.OpMul:
		return RealConst(lf * rf)
	case types.OpDiv:
		if rf == 0 {
			diag.ReportError(ec.b.reporter, diag.ConstEvalDivByZero, e.Span, "division by zero in constant expression").Emit()
			return Constant{}
		}
		return RealConst(lf / rf)
	case types.OpLt:
		return boolConst(lf < rf)
	case types.OpLe:
		return boolConst(lf <= rf)
	case types.OpGt:
		return boolConst(lf > rf)
	case types.OpGe:
		return boolConst(lf >= rf)
	case types.OpEq:
		return boolConst(lf == rf)
	case types.OpNeq:
		return boolConst(lf != rf)
	default:
		return ec.reportNotConstant(e, "operator not supported on real constants")
	}
}

func toFloat(c Constant) float64 {
	if c.Kind == ConstReal {
		return c.Real
	}
	if c.Kind == ConstInt {
		f := new(big.Float).SetInt(c.Int.ToBigInt())
		v, _ := f.Float64()
		return v
	}
	return 0
}

func boolConst(b bool) Constant {
	return IntConst(svint.FromUint64(1, false, boolToUint(b)))
}

func (ec *EvalContext) evalLogical(e *Expr) Constant {
	l := ec.Eval(e.Operands[0])
	if l.Invalid() {
		return l
	}
	lt, lk := l.IsTrue()
	if e.Op == types.OpLogicalAnd && lk && !lt {
		return boolConst(false)
	}
	if e.Op == types.OpLogicalOr && lk && lt {
		return boolConst(true)
	}
	r := ec.Eval(e.Operands[1])
	if r.Invalid() {
		return r
	}
	rt, rk := r.IsTrue()
	if !lk || !rk {
		return IntConst(svint.AllX(1, false))
	}
	if e.Op == types.OpLogicalAnd {
		return boolConst(lt && rt)
	}
	return boolConst(lt || rt)
}

func (ec *EvalContext) evalTernary(e *Expr) Constant {
	cond := ec.Eval(e.Operands[0])
	if cond.Invalid() {
		return cond
	}
	truth, known := cond.IsTrue()
	if !known {
		diag.ReportError(ec.b.reporter, diag.ConstEvalUnknownInCondition, e.Span, "unknown (x/z) value in constant conditional").Emit()
		return Constant{}
	}
	if truth {
		return ec.Eval(e.Operands[1])
	}
	return ec.Eval(e.Operands[2])
}

func (ec *EvalContext) evalConcat(e *Expr) Constant {
	parts := make([]svint.Value, 0, len(e.Operands))
	for _, op := range e.Operands {
		v := ec.Eval(op)
		if v.Kind != ConstInt {
			return ec.reportNotConstant(e, "concatenation operand is not a constant integer")
		}
		parts = append(parts, v.Int)
	}
	return IntConst(svint.Concat(parts...))
}

func (ec *EvalContext) evalReplication(e *Expr) Constant {
	if e.Literal.Kind != ConstInt {
		return ec.reportNotConstant(e, "replication count is not a constant")
	}
	n, err := svint.ToUint32(e.Literal.Int)
	if err != nil {
		return ec.reportNotConstant(e, "replication count is not a valid constant")
	}
	parts := make([]svint.Value, 0, len(e.Operands))
	for _, op := range e.Operands {
		v := ec.Eval(op)
		if v.Kind != ConstInt {
			return ec.reportNotConstant(e, "replication operand is not a constant integer")
		}
		parts = append(parts, v.Int)
	}
	elem := svint.Concat(parts...)
	return IntConst(svint.Replicate(n, elem))
}

func (ec *EvalContext) evalElementSelect(e *Expr) Constant {
	base := ec.Eval(e.Operands[0])
	idx := ec.Eval(e.Operands[1])
	if base.Kind != ConstInt || idx.Kind != ConstInt {
		return ec.reportNotConstant(e, "selection operand is not a constant integer")
	}
	i, err := svint.ToUint32(idx.Int)
	if err != nil {
		return ec.reportNotConstant(e, "selection index is not a valid constant")
	}
	return IntConst(svint.Slice(base.Int, i, i))
}

func (ec *EvalContext) evalRangeSelect(e *Expr) Constant {
	base := ec.Eval(e.Operands[0])
	if base.Kind != ConstInt {
		return ec.reportNotConstant(e, "selection operand is not a constant integer")
	}
	switch e.Selector {
	case selectPlainRange:
		hi := ec.Eval(e.Operands[1])
		lo := ec.Eval(e.Operands[2])
		if hi.Kind != ConstInt || lo.Kind != ConstInt {
			return ec.reportNotConstant(e, "range bounds are not constant")
		}
		h, errH := svint.ToUint32(hi.Int)
		l, errL := svint.ToUint32(lo.Int)
		if errH != nil || errL != nil {
			return ec.reportNotConstant(e, "range bounds are not valid constants")
		}
		return IntConst(svint.Slice(base.Int, h, l))
	default:
		lo := ec.Eval(e.Operands[1])
		size := ec.Eval(e.Operands[2])
		if lo.Kind != ConstInt || size.Kind != ConstInt {
			return ec.reportNotConstant(e, "part-select bounds are not constant")
		}
		start, errS := svint.ToUint32(lo.Int)
		width, errW := svint.ToUint32(size.Int)
		if errS != nil || errW != nil || width == 0 {
			return ec.reportNotConstant(e, "part-select bounds are not valid constants")
		}
		var hi, low uint32
		if e.Selector == selectIndexedUp {
			hi, low = start+width-1, start
		} else {
			hi, low = start, start-width+1
		}
		return IntConst(svint.Slice(base.Int, hi, low))
	}
}

func (ec *EvalContext) evalMemberAccess(e *Expr) Constant {
	base := ec.Eval(e.Operands[0])
	if base.Kind != ConstAggregate {
		return ec.reportNotConstant(e, "member access target is not a constant aggregate")
	}
	return ec.reportNotConstant(e, "member index is not statically recoverable from the bound expression")
}

func (ec *EvalContext) evalConversion(e *Expr) Constant {
	inner := ec.Eval(e.Operands[0])
	if inner.Invalid() {
		return inner
	}
	t, ok := ec.b.types.Lookup(e.Type)
	if !ok {
		return ec.reportNotConstant(e, "conversion target type is unknown")
	}
	if t.IsFloating() {
		return RealConst(toFloat(inner))
	}
	if inner.Kind != ConstInt {
		return ec.reportNotConstant(e, "conversion operand is not a constant integer")
	}
	resized := inner.Int.Resize(t.Width, t.Signed)
	if !t.FourState && resized.HasUnknown() {
		diag.ReportError(ec.b.reporter, diag.ConstEvalOutOfRangeCast, e.Span, "constant value does not fit target type").Emit()
	}
	return IntConst(resized)
}
