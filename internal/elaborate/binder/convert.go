package binder

import (
	"svfront/internal/diag"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/token"
	"svfront/internal/types"
)

// ConversionKind records why an EConversion node exists, for diagnostics
// and for the constant evaluator's dispatch (a sign cast reinterprets bits,
// an implicit conversion may narrow or widen).
type ConversionKind uint8

const (
	ConvImplicit ConversionKind = iota
	ConvSignCast
	ConvApostrophe
	ConvSized
)

// insertConversion wraps e in an EConversion node if e's type is not
// already Equivalent to target, the way an assignment or an argument
// binding silently converts its right-hand side (§4.I).
func (b *Binder) insertConversion(e *Expr, target types.TypeID) *Expr {
	if e.Type == target || b.types.Equivalent(e.Type, target) {
		return e
	}
	if !b.types.AssignmentCompatible(target, e.Type) {
		b.report(diag.SemaIncompatibleAssignment, e.Span, "types are not assignment-compatible")
		return e
	}
	return &Expr{Kind: EConversion, Type: target, Span: e.Span, Node: e.Node, ConvKind: ConvImplicit, Operands: []*Expr{e}}
}

// BindTypeRef resolves a KindTypeRef syntax node to a TypeID, handling the
// built-in keyword types, signed/unsigned suffixes, and a single packed
// dimension; struct/union/enum inline declarations and named user types
// bind to the error type, since resolving a named type requires a typedef
// symbol lookup the caller (symbolType) does not have a scope chain for
// beyond what this front end's declaration pass already recorded.
func (b *Binder) BindTypeRef(scope symbols.ScopeID, id syntax.NodeID) types.TypeID {
	n := b.node(id)
	if n == nil || n.Kind != syntax.KindTypeRef || len(n.Children) == 0 {
		return b.types.Builtins().Error
	}
	bi := b.types.Builtins()
	head := b.node(n.Children[0])
	if head == nil || head.Kind != syntax.KindToken {
		return bi.Error
	}
	headTok := head.Tok
	signed := hasSignedSuffix(b, n)
	// Predefined integer types (byte, shortint, int, longint, integer) are
	// signed unless an `unsigned` suffix follows.
	intSigned := true
	for _, c := range n.Children {
		if tok, ok := b.tree.Token(c); ok && tok.Kind == token.KwUnsigned {
			intSigned = false
		}
	}

	var base types.TypeID
	switch headTok.Kind {
	case token.KwBit:
		base = b.types.GetScalar(types.ScalarBit, signed)
	case token.KwLogic, token.KwReg:
		base = b.types.GetScalar(types.ScalarLogic, signed)
	case token.KwByte:
		base = applySign(b, bi.Byte, intSigned)
	case token.KwShortint:
		base = applySign(b, bi.ShortInt, intSigned)
	case token.KwInt:
		base = applySign(b, bi.Int, intSigned)
	case token.KwLongint:
		base = applySign(b, bi.LongInt, intSigned)
	case token.KwInteger:
		base = applySign(b, bi.Integer, intSigned)
	case token.KwTime:
		base = bi.Time
	case token.KwReal:
		base = bi.Real
	case token.KwShortreal:
		base = bi.ShortReal
	case token.KwRealtime:
		base = bi.RealTime
	case token.KwString:
		base = bi.String
	case token.KwEvent:
		base = bi.Event
	case token.KwVoid:
		base = bi.Void
	case token.KwChandle:
		base = bi.CHandle
	case token.KwWire, token.KwWand, token.KwWor, token.KwTri, token.KwTri0, token.KwTri1, token.KwSupply0, token.KwSupply1, token.KwUwire:
		base = b.types.GetScalar(types.ScalarLogic, signed)
	default:
		return bi.Error
	}

	dim := firstDimension(b, n)
	if dim == nil {
		return base
	}
	return b.bindDimension(scope, dim, base)
}

func hasSignedSuffix(b *Binder, n *syntax.Node) bool {
	for _, c := range n.Children {
		if tok, ok := b.tree.Token(c); ok && tok.Kind == token.KwSigned {
			return true
		}
	}
	return false
}

func firstDimension(b *Binder, n *syntax.Node) *syntax.Node {
	for _, c := range n.Children {
		if cn := b.node(c); cn != nil && (cn.Kind == syntax.KindElementSelectExpr || cn.Kind == syntax.KindRangeSelectExpr) {
			return cn
		}
	}
	return nil
}

// applySign re-interns a predefined integer builtin with the requested
// signedness flipped, since e.g. `int unsigned` needs a distinct TypeID
// from the (signed-by-default) `int` builtin.
func applySign(b *Binder, builtin types.TypeID, signed bool) types.TypeID {
	t, ok := b.types.Lookup(builtin)
	if !ok {
		return builtin
	}
	if t.Signed == signed {
		return builtin
	}
	return b.types.Intern(types.Type{Kind: t.Kind, Width: t.Width, Signed: signed, FourState: t.FourState, Predef: t.Predef})
}

func (b *Binder) bindDimension(scope symbols.ScopeID, dim *syntax.Node, elem types.TypeID) types.TypeID {
	var left, right int32
	switch dim.Kind {
	case syntax.KindRangeSelectExpr:
		hiExpr := b.BindExpression(scope, sourcemap.Span{}, dim.Children[1])
		loExpr := b.BindExpression(scope, sourcemap.Span{}, dim.Children[3])
		left = constInt32(hiExpr)
		right = constInt32(loExpr)
	case syntax.KindElementSelectExpr:
		if len(dim.Children) >= 3 {
			sizeExpr := b.BindExpression(scope, sourcemap.Span{}, dim.Children[1])
			left = constInt32(sizeExpr) - 1
			right = 0
		}
	}
	return b.types.GetPackedArray(elem, left, right)
}

func constInt32(e *Expr) int32 {
	if e.Literal.Kind != ConstInt {
		return 0
	}
	bi := e.Literal.Int.ToBigInt()
	return int32(bi.Int64())
}
