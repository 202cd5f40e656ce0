package binder

import (
	"math/big"

	"svfront/internal/diag"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/sourcemap"
	"svfront/internal/svint"
	"svfront/internal/syntax"
	"svfront/internal/types"
)

// systemSubroutines lists the $-prefixed constant-evaluable functions this
// front end understands (§4.J): sizing queries plus $clog2. A call to any
// other system name binds to the error type; task-like system calls
// ($display, $finish, ...) have no expression-context meaning and are a
// statement-level concern this package does not bind.
var systemSubroutines = map[string]bool{
	"$clog2": true, "$bits": true, "$low": true, "$high": true,
	"$left": true, "$right": true, "$size": true, "$increment": true,
}

func (b *Binder) bindSystemCall(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node, name string) *Expr {
	argListNode := b.node(n.Children[1])
	var args []*Expr
	if argListNode != nil {
		for _, a := range b.children(argListNode) {
			args = append(args, b.BindExpression(scope, loc, a))
		}
	}
	resultType := b.types.Builtins().Error
	if systemSubroutines[name] {
		resultType = b.types.Builtins().Integer
	} else {
		b.report(diag.ConstEvalBadSystemCallArgs, n.Span, "unsupported system subroutine '"+name+"' in a constant expression context")
	}
	return &Expr{Kind: ESysCall, Type: resultType, Span: n.Span, Node: n.Children[0], SysName: name, Operands: args}
}

func (ec *EvalContext) evalSystemCall(e *Expr) Constant {
	switch e.SysName {
	case "$clog2":
		return ec.evalClog2(e)
	case "$bits":
		return ec.evalBits(e)
	case "$low", "$high", "$left", "$right", "$size", "$increment":
		return ec.evalArrayQuery(e)
	default:
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, "unsupported system subroutine in a constant expression").Emit()
		return Constant{}
	}
}

func (ec *EvalContext) evalClog2(e *Expr) Constant {
	if len(e.Operands) != 1 {
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, "$clog2 takes exactly one argument").Emit()
		return Constant{}
	}
	v := ec.Eval(e.Operands[0])
	if v.Kind != ConstInt {
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, "$clog2 argument must be a constant integer").Emit()
		return Constant{}
	}
	bi := v.Int.ToBigInt()
	if bi.Sign() <= 0 {
		return IntConst(svint.FromUint64(32, true, 0))
	}
	// clog2(n) is the number of bits needed to represent n-1 in binary:
	// bit length of (n-1), or 0 when n==1.
	nMinus1 := new(big.Int).Sub(bi, big.NewInt(1))
	bits := nMinus1.BitLen()
	return IntConst(svint.FromUint64(32, true, uint64(bits)))
}

func (ec *EvalContext) evalBits(e *Expr) Constant {
	if len(e.Operands) != 1 {
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, "$bits takes exactly one argument").Emit()
		return Constant{}
	}
	t, ok := ec.b.types.Lookup(ec.b.types.Resolve(e.Operands[0].Type))
	if !ok {
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, "$bits argument has no known size").Emit()
		return Constant{}
	}
	return IntConst(svint.FromUint64(32, true, uint64(t.Width)))
}

func (ec *EvalContext) evalArrayQuery(e *Expr) Constant {
	if len(e.Operands) != 1 {
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, e.SysName+" takes exactly one argument").Emit()
		return Constant{}
	}
	t, ok := ec.b.types.Lookup(ec.b.types.Resolve(e.Operands[0].Type))
	if !ok {
		diag.ReportError(ec.b.reporter, diag.ConstEvalBadSystemCallArgs, e.Span, e.SysName+" argument has no known dimensions").Emit()
		return Constant{}
	}
	var left, right int32
	if t.Kind == types.KindPackedArray {
		left, right = t.Left, t.Right
	} else {
		left, right = int32(t.Width)-1, 0
	}
	var result int32
	switch e.SysName {
	case "$left":
		result = left
	case "$right":
		result = right
	case "$low":
		result = minInt32(left, right)
	case "$high":
		result = maxInt32(left, right)
	case "$size":
		result = maxInt32(left, right) - minInt32(left, right) + 1
	case "$increment":
		if left >= right {
			result = 1
		} else {
			result = -1
		}
	}
	return IntConst(svint.FromInt64(32, true, int64(result)))
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
