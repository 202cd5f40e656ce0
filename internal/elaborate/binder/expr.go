package binder

import (
	"svfront/internal/diag"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/sourcemap"
	"svfront/internal/svint"
	"svfront/internal/syntax"
	"svfront/internal/token"
	"svfront/internal/types"
)

// ExprKind classifies a bound expression node.
type ExprKind uint8

const (
	EInvalid ExprKind = iota
	ELiteral
	ENamedValue
	EUnary
	EBinary
	EAssign
	ETernary
	EConcat
	EReplication
	EElementSelect
	ERangeSelect
	EMemberAccess
	ECall
	ESysCall
	EConversion
	EAssignmentPattern
	EPostIncDec
)

// Expr is a bound expression: every node carries the TypeID it evaluates
// to (in.builtins.Error for anything the binder could not make sense of)
// and the syntax node it came from, for diagnostics.
type Expr struct {
	Kind     ExprKind
	Type     types.TypeID
	Span     sourcemap.Span
	Node     syntax.NodeID
	Op       types.BinOp
	UnaryOp  token.Kind
	Operands []*Expr
	Symbol   symbols.SymbolID
	Literal  Constant
	ConvKind ConversionKind
	SysName  string
	Selector selectorShape
}

// selectorShape records which of the RangeSelectExpr's several lookalike
// grammars (plain range, +: part-select, -: part-select) a bound
// ERangeSelect node came from, since the syntax tree shares one node kind
// for all three (§4.G's parseSelect comment).
type selectorShape uint8

const (
	selectPlainRange selectorShape = iota
	selectIndexedUp
	selectIndexedDown
)

// Binder binds syntax expressions to a typed Expr tree, resolving names
// against a symbol table scope and interning result types through a shared
// type Interner (component I). It does not own diagnostics buffering;
// every Bind call reports through the Reporter passed to NewBinder.
type Binder struct {
	tree     *syntax.Tree
	table    *symbols.Table
	types    *types.Interner
	buffer   sourcemap.BufferID
	reporter diag.Reporter

	// paramTypes caches the computed type of a parameter/genvar/enum-member
	// symbol, and binding detects a cycle (a parameter whose initializer
	// refers to itself) through inProgress.
	paramTypes map[symbols.SymbolID]types.TypeID
	inProgress map[symbols.SymbolID]bool
}

func NewBinder(tree *syntax.Tree, table *symbols.Table, interner *types.Interner, buffer sourcemap.BufferID, reporter diag.Reporter) *Binder {
	return &Binder{
		tree:       tree,
		table:      table,
		types:      interner,
		buffer:     buffer,
		reporter:   reporter,
		paramTypes: make(map[symbols.SymbolID]types.TypeID),
		inProgress: make(map[symbols.SymbolID]bool),
	}
}

func (b *Binder) report(code diag.Code, sp sourcemap.Span, msg string) {
	diag.ReportError(b.reporter, code, sp, msg).Emit()
}

func (b *Binder) errorExpr(node syntax.NodeID, span sourcemap.Span) *Expr {
	return &Expr{Kind: EInvalid, Type: b.types.Builtins().Error, Span: span, Node: node}
}

func (b *Binder) node(id syntax.NodeID) *syntax.Node {
	return b.tree.Get(id)
}

func (b *Binder) span(id syntax.NodeID) sourcemap.Span {
	if n := b.node(id); n != nil {
		return n.Span
	}
	return sourcemap.Span{}
}

// children filters out KindToken leaves, recovering the ordered operand
// list from a node whose delimiter tokens are interspersed or trail all
// items (§4.G: argument/element lists place delimiters after every item).
func (b *Binder) children(n *syntax.Node) []syntax.NodeID {
	out := make([]syntax.NodeID, 0, len(n.Children))
	for _, c := range n.Children {
		if cn := b.node(c); cn != nil && cn.Kind == syntax.KindToken {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BindExpression binds id in scope, looking up identifiers as if referenced
// at loc (so forward-reference visibility rules apply correctly even when
// id is reused from a different textual position, e.g. a default argument
// rebound at a call site).
func (b *Binder) BindExpression(scope symbols.ScopeID, loc sourcemap.Span, id syntax.NodeID) *Expr {
	n := b.node(id)
	if n == nil {
		return b.errorExpr(id, sourcemap.Span{})
	}
	switch n.Kind {
	case syntax.KindMissing, syntax.KindError:
		return b.errorExpr(id, n.Span)
	case syntax.KindLiteralExpr:
		return b.bindLiteral(n)
	case syntax.KindIdentExpr:
		return b.bindIdent(scope, loc, n)
	case syntax.KindParenExpr:
		return b.BindExpression(scope, loc, n.Children[1])
	case syntax.KindUnaryExpr:
		return b.bindUnary(scope, loc, n)
	case syntax.KindBinaryExpr:
		return b.bindBinary(scope, loc, n)
	case syntax.KindTernaryExpr:
		return b.bindTernary(scope, loc, n)
	case syntax.KindConcatExpr:
		return b.bindConcat(scope, loc, n)
	case syntax.KindReplicationExpr:
		return b.bindReplication(scope, loc, n)
	case syntax.KindElementSelectExpr:
		return b.bindElementSelect(scope, loc, n)
	case syntax.KindRangeSelectExpr:
		return b.bindRangeSelect(scope, loc, n)
	case syntax.KindMemberAccessExpr:
		return b.bindMemberAccess(scope, loc, n)
	case syntax.KindCallExpr:
		return b.bindCall(scope, loc, n)
	case syntax.KindPostIncDecExpr:
		return b.bindPostIncDec(scope, loc, n)
	case syntax.KindApostropheCastExpr, syntax.KindSignCastExpr, syntax.KindCastExpr:
		return b.bindCast(scope, loc, n)
	case syntax.KindAssignmentPatternExpr:
		return b.bindAssignmentPattern(scope, loc, n)
	case syntax.KindNewExpr, syntax.KindTaggedExpr, syntax.KindStreamingExpr,
		syntax.KindWithExpr, syntax.KindCycleDelayExpr, syntax.KindMatchesExpr,
		syntax.KindConditionalPredicateExpr:
		// Class/covergroup allocation, tagged-union literals, streaming
		// concatenation, array-locator/randomize constraints, and
		// assertion-sequence predicates all need class or property
		// elaboration this front end does not perform; these forms bind to
		// the error type rather than guess at a result.
		return b.errorExpr(id, n.Span)
	case syntax.KindPatternExpr:
		return b.bindPatternExpr(scope, loc, n)
	default:
		return b.errorExpr(id, n.Span)
	}
}

// bindPatternExpr disambiguates the three grammars that all share
// KindPatternExpr (§4.G: "the binder tells them apart by inspecting the
// children"): a `.name(expr)` named call argument, a `key: expr`
// assignment-pattern member reached outside bindAssignmentPattern, and an
// enum member's optional `= expr` initializer.
func (b *Binder) bindPatternExpr(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	if len(n.Children) == 0 {
		return b.errorExpr(n.Children[0], n.Span)
	}
	if firstTok, ok := b.tree.Token(n.Children[0]); ok && firstTok.Kind == token.Dot {
		if len(n.Children) == 5 {
			return b.BindExpression(scope, loc, n.Children[3])
		}
		return b.errorExpr(n.Children[0], n.Span)
	}
	if len(n.Children) == 3 {
		if sepTok, ok := b.tree.Token(n.Children[1]); ok && sepTok.Kind == token.Colon {
			return b.BindExpression(scope, loc, n.Children[2])
		}
	}
	for i, c := range n.Children {
		if tok, ok := b.tree.Token(c); ok && tok.Kind == token.Assign && i+1 < len(n.Children) {
			return b.BindExpression(scope, loc, n.Children[i+1])
		}
	}
	return b.errorExpr(n.Children[0], n.Span)
}

func (b *Binder) bindLiteral(n *syntax.Node) *Expr {
	tok, ok := b.tree.Token(n.Children[0])
	if !ok {
		return b.errorExpr(n.Children[0], n.Span)
	}
	bi := b.types.Builtins()
	switch tok.Kind {
	case token.IntLit, token.UnbasedUnsizedLit:
		v, _ := tok.Value.(*svint.Value)
		if v == nil {
			return b.errorExpr(n.Children[0], n.Span)
		}
		ty := b.types.GetInt(v.Width(), v.Signed(), v.HasUnknown())
		return &Expr{Kind: ELiteral, Type: ty, Span: n.Span, Node: n.Children[0], Literal: IntConst(*v)}
	case token.RealLit:
		f, _ := tok.Value.(float64)
		return &Expr{Kind: ELiteral, Type: bi.Real, Span: n.Span, Node: n.Children[0], Literal: RealConst(f)}
	case token.TimeLit:
		f, _ := tok.Value.(float64)
		return &Expr{Kind: ELiteral, Type: bi.RealTime, Span: n.Span, Node: n.Children[0], Literal: RealConst(f)}
	case token.StringLit:
		s, _ := tok.Value.(string)
		width := uint32(len(s)) * 8
		if width == 0 {
			width = 8
		}
		ty := b.types.GetInt(width, false, false)
		return &Expr{Kind: ELiteral, Type: ty, Span: n.Span, Node: n.Children[0], Literal: StringConst(s)}
	default:
		return b.errorExpr(n.Children[0], n.Span)
	}
}

func (b *Binder) bindIdent(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	tok, ok := b.tree.Token(n.Children[0])
	if !ok {
		return b.errorExpr(n.Children[0], n.Span)
	}
	name := b.table.Strings.Intern(tok.Text)
	symID, _, found := b.table.LookupName(scope, name, loc, symbols.LookupAny)
	if !found {
		b.report(diag.SemaUnresolvedName, n.Span, "name '"+tok.Text+"' could not be resolved")
		return b.errorExpr(n.Children[0], n.Span)
	}
	ty := b.symbolType(symID)
	return &Expr{Kind: ENamedValue, Type: ty, Span: n.Span, Node: n.Children[0], Symbol: symID}
}

// symbolType computes the type a referenced symbol evaluates to, caching
// the result and detecting initializer cycles (e.g. `parameter p = p;`)
// through its in-progress set; a cycle resolves to the error type without
// a diagnostic of its own.
func (b *Binder) symbolType(id symbols.SymbolID) types.TypeID {
	if ty, ok := b.paramTypes[id]; ok {
		return ty
	}
	if b.inProgress[id] {
		return b.types.Builtins().Error
	}
	sym := b.table.Symbols.Get(id)
	if sym == nil {
		return b.types.Builtins().Error
	}
	b.inProgress[id] = true
	defer delete(b.inProgress, id)

	ty := b.types.Builtins().Error
	switch sym.Kind {
	case symbols.SymbolParameter, symbols.SymbolGenvar, symbols.SymbolVariable, symbols.SymbolPort, symbols.SymbolNet:
		if sym.Decl.TypeNode.IsValid() {
			ty = b.BindTypeRef(sym.Scope, sym.Decl.TypeNode)
		} else if sym.Decl.Initializer.IsValid() {
			ty = b.BindExpression(sym.Scope, sourcemap.Span{}, sym.Decl.Initializer).Type
		} else {
			ty = b.types.Builtins().Integer
		}
	case symbols.SymbolEnumMember:
		if sym.Decl.TypeNode.IsValid() {
			ty = b.BindTypeRef(sym.Scope, sym.Decl.TypeNode)
		} else {
			ty = b.types.Builtins().Int
		}
	case symbols.SymbolTypeParameter, symbols.SymbolTypedef:
		if sym.Decl.TypeNode.IsValid() {
			ty = b.BindTypeRef(sym.Scope, sym.Decl.TypeNode)
		}
	default:
		ty = b.types.Builtins().Error
	}
	b.paramTypes[id] = ty
	return ty
}

func (b *Binder) bindUnary(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	opTok, _ := b.tree.Token(n.Children[0])
	operand := b.BindExpression(scope, loc, n.Children[1])
	bi := b.types.Builtins()
	var resultType types.TypeID
	switch opTok.Kind {
	case token.Bang, token.AmpAmp, token.PipePipe:
		resultType = b.types.GetScalar(types.ScalarLogic, false)
	case token.Amp, token.Pipe, token.Caret, token.TildeAmp, token.TildePipe, token.TildeCaret, token.CaretTilde:
		// unary reduction operators always yield a single four-state bit
		resultType = b.types.GetScalar(types.ScalarLogic, false)
	case token.Tilde:
		resultType = operand.Type
	case token.Plus, token.Minus:
		if t, ok := b.types.Lookup(b.types.Resolve(operand.Type)); ok && t.IsFloating() {
			resultType = operand.Type
		} else {
			resultType = operand.Type
		}
	case token.PlusPlus, token.MinusMinus:
		resultType = operand.Type
	default:
		resultType = bi.Error
	}
	if resultType == bi.Error {
		b.report(diag.SemaInvalidUnaryOperand, n.Span, "invalid operand for unary operator")
	}
	return &Expr{Kind: EUnary, Type: resultType, Span: n.Span, Node: n.Children[0], UnaryOp: opTok.Kind, Operands: []*Expr{operand}}
}

var binOpTable = map[token.Kind]types.BinOp{
	token.Plus: types.OpAdd, token.Minus: types.OpSub, token.Star: types.OpMul,
	token.Slash: types.OpDiv, token.Percent: types.OpMod, token.StarStar: types.OpPow,
	token.Amp: types.OpAnd, token.Pipe: types.OpOr, token.Caret: types.OpXor,
	token.TildeCaret: types.OpXnor, token.CaretTilde: types.OpXnor,
	token.Shl: types.OpShl, token.Shr: types.OpShr, token.SShl: types.OpSShl, token.SShr: types.OpSShr,
	token.AmpAmp: types.OpLogicalAnd, token.PipePipe: types.OpLogicalOr,
	token.Lt: types.OpLt, token.LtEq: types.OpLe, token.Gt: types.OpGt, token.GtEq: types.OpGe,
	token.EqEq: types.OpEq, token.BangEq: types.OpNeq,
	token.EqEqEq: types.OpCaseEq, token.BangEqEq: types.OpCaseNeq,
	token.EqEqQuestion: types.OpWildEq, token.BangEqQuestion: types.OpWildNeq,
}

func (b *Binder) bindBinary(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	opTok, _ := b.tree.Token(n.Children[1])
	left := b.BindExpression(scope, loc, n.Children[0])
	right := b.BindExpression(scope, loc, n.Children[2])

	if opTok.Kind == token.Assign {
		result := b.insertConversion(right, left.Type)
		return &Expr{Kind: EAssign, Type: left.Type, Span: n.Span, Node: n.Children[1], Operands: []*Expr{left, result}}
	}

	op, ok := binOpTable[opTok.Kind]
	if !ok {
		return b.errorExpr(n.Children[1], n.Span)
	}
	bi := b.types.Builtins()
	var resultType types.TypeID
	switch {
	case op == types.OpShl || op == types.OpShr || op == types.OpSShl || op == types.OpSShr:
		resultType = b.types.SelfDeterminedShiftResult(left.Type)
	case types.IsComparison(op):
		resultType = b.types.GetScalar(types.ScalarLogic, false)
	default:
		resultType = b.types.ArithResultType(op, left.Type, right.Type)
	}
	if resultType == bi.Error {
		b.report(diag.SemaInvalidBinaryOperands, n.Span, "invalid operands for binary operator")
	}
	return &Expr{Kind: EBinary, Type: resultType, Span: n.Span, Node: n.Children[1], Op: op, Operands: []*Expr{left, right}}
}

func (b *Binder) bindTernary(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	cond := b.BindExpression(scope, loc, n.Children[0])
	thenE := b.BindExpression(scope, loc, n.Children[2])
	elseE := b.BindExpression(scope, loc, n.Children[4])
	resultType := b.types.ArithResultType(types.OpAdd, thenE.Type, elseE.Type)
	if rt, ok := b.types.Lookup(resultType); !ok || rt.IsError() {
		if b.types.Equivalent(thenE.Type, elseE.Type) {
			resultType = thenE.Type
		}
	}
	return &Expr{Kind: ETernary, Type: resultType, Span: n.Span, Node: n.Children[1], Operands: []*Expr{cond, thenE, elseE}}
}

func (b *Binder) bindConcat(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	items := b.children(n)
	operands := make([]*Expr, 0, len(items))
	var width uint32
	fourState := false
	for _, it := range items {
		e := b.BindExpression(scope, loc, it)
		operands = append(operands, e)
		if t, ok := b.types.Lookup(b.types.Resolve(e.Type)); ok {
			width += t.Width
			fourState = fourState || t.IsFourState()
		}
	}
	resultType := b.types.GetInt(width, false, fourState)
	return &Expr{Kind: EConcat, Type: resultType, Span: n.Span, Node: n.Children[0], Operands: operands}
}

func (b *Binder) bindReplication(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	// children: [open, count, innerOpen, item..., innerClose, close]
	count := b.BindExpression(scope, loc, n.Children[1])
	items := b.children(n)
	// items includes count as its first non-token child; drop it.
	var elems []syntax.NodeID
	if len(items) > 1 {
		elems = items[1:]
	}
	operands := make([]*Expr, 0, len(elems))
	var elemWidth uint32
	fourState := false
	for _, it := range elems {
		e := b.BindExpression(scope, loc, it)
		operands = append(operands, e)
		if t, ok := b.types.Lookup(b.types.Resolve(e.Type)); ok {
			elemWidth += t.Width
			fourState = fourState || t.IsFourState()
		}
	}
	n32 := uint32(1)
	if count.Literal.Kind == ConstInt {
		if v, err := svint.ToUint32(count.Literal.Int); err == nil {
			n32 = v
		}
	}
	resultType := b.types.GetInt(elemWidth*n32, false, fourState)
	return &Expr{Kind: EReplication, Type: resultType, Span: n.Span, Node: n.Children[0], Literal: count.Literal, Operands: operands}
}

func (b *Binder) bindElementSelect(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	base := b.BindExpression(scope, loc, n.Children[0])
	index := b.BindExpression(scope, loc, n.Children[2])
	baseTy, ok := b.types.Lookup(b.types.Resolve(base.Type))
	resultType := b.types.Builtins().Error
	if ok {
		switch baseTy.Kind {
		case types.KindPackedArray:
			resultType = baseTy.Elem
		case types.KindScalar, types.KindPredefinedInteger:
			resultType = b.types.GetScalar(types.ScalarLogic, false)
		}
	}
	return &Expr{Kind: EElementSelect, Type: resultType, Span: n.Span, Node: n.Children[1], Operands: []*Expr{base, index}}
}

func (b *Binder) bindRangeSelect(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	base := b.BindExpression(scope, loc, n.Children[0])
	baseTy, ok := b.types.Lookup(b.types.Resolve(base.Type))
	fourState := ok && baseTy.IsFourState()

	shape := selectPlainRange
	var width uint32 = 1
	// seven children (incl. two-token +:/-: separator) vs six for a plain
	// range, per §4.G's parseSelect: both place the indexed-part-select
	// sign token and the colon as direct children.
	if len(n.Children) == 7 {
		signTok, _ := b.tree.Token(n.Children[3])
		if signTok.Kind == token.Plus {
			shape = selectIndexedUp
		} else {
			shape = selectIndexedDown
		}
		sizeE := b.BindExpression(scope, loc, n.Children[5])
		if sizeE.Literal.Kind == ConstInt {
			if v, err := svint.ToUint32(sizeE.Literal.Int); err == nil {
				width = v
			}
		}
		resultType := b.types.GetInt(width, false, fourState)
		lo := b.BindExpression(scope, loc, n.Children[2])
		return &Expr{Kind: ERangeSelect, Type: resultType, Span: n.Span, Node: n.Children[1], Selector: shape, Operands: []*Expr{base, lo, sizeE}}
	}

	hi := b.BindExpression(scope, loc, n.Children[2])
	lo := b.BindExpression(scope, loc, n.Children[4])
	if hi.Literal.Kind == ConstInt && lo.Literal.Kind == ConstInt {
		hv, errH := svint.ToUint32(hi.Literal.Int)
		lv, errL := svint.ToUint32(lo.Literal.Int)
		if errH == nil && errL == nil {
			if hv >= lv {
				width = hv - lv + 1
			} else {
				width = lv - hv + 1
			}
		}
	}
	resultType := b.types.GetInt(width, false, fourState)
	return &Expr{Kind: ERangeSelect, Type: resultType, Span: n.Span, Node: n.Children[1], Selector: shape, Operands: []*Expr{base, hi, lo}}
}

func (b *Binder) bindMemberAccess(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	base := b.BindExpression(scope, loc, n.Children[0])
	nameTok, _ := b.tree.Token(n.Children[2])
	resultType := b.types.Builtins().Error
	baseTy, ok := b.types.Lookup(b.types.Resolve(base.Type))
	if ok && baseTy.Kind == types.KindAggregate {
		if info, ok2 := b.types.Aggregate(b.types.Resolve(base.Type)); ok2 {
			for _, f := range info.Fields {
				if name, ok3 := b.table.Strings.Lookup(f.Name); ok3 && name == nameTok.Text {
					resultType = f.Type
					break
				}
			}
		}
	}
	if resultType == b.types.Builtins().Error {
		b.report(diag.SemaNotAValue, n.Span, "member '"+nameTok.Text+"' not found")
	}
	return &Expr{Kind: EMemberAccess, Type: resultType, Span: n.Span, Node: n.Children[1], Operands: []*Expr{base}}
}

func (b *Binder) bindPostIncDec(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	operand := b.BindExpression(scope, loc, n.Children[0])
	return &Expr{Kind: EPostIncDec, Type: operand.Type, Span: n.Span, Node: n.Children[1], Operands: []*Expr{operand}}
}

func (b *Binder) bindAssignmentPattern(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	items := b.children(n)
	// items[0] is the apostrophe-brace pair's open token filtered already;
	// the remaining are pattern members.
	operands := make([]*Expr, 0, len(items))
	for _, it := range items {
		itemNode := b.node(it)
		if itemNode != nil && itemNode.Kind == syntax.KindPatternExpr && len(itemNode.Children) == 3 {
			operands = append(operands, b.BindExpression(scope, loc, itemNode.Children[2]))
			continue
		}
		operands = append(operands, b.BindExpression(scope, loc, it))
	}
	elems := make([]Constant, 0, len(operands))
	allConst := true
	for _, op := range operands {
		if op.Literal.Invalid() {
			allConst = false
		}
		elems = append(elems, op.Literal)
	}
	lit := Constant{}
	if allConst {
		lit = AggregateConst(elems)
	}
	return &Expr{Kind: EAssignmentPattern, Type: b.types.Builtins().Error, Span: n.Span, Node: n.Children[0], Operands: operands, Literal: lit}
}

func (b *Binder) bindCast(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	switch n.Kind {
	case syntax.KindSignCastExpr:
		kw, _ := b.tree.Token(n.Children[0])
		inner := b.BindExpression(scope, loc, n.Children[3])
		t, ok := b.types.Lookup(b.types.Resolve(inner.Type))
		if !ok {
			return b.errorExpr(n.Children[3], n.Span)
		}
		signed := kw.Kind == token.KwSigned
		resultType := b.types.GetInt(t.Width, signed, t.IsFourState())
		return &Expr{Kind: EConversion, Type: resultType, Span: n.Span, Node: n.Children[0], ConvKind: ConvSignCast, Operands: []*Expr{inner}}
	case syntax.KindApostropheCastExpr:
		inner := b.BindExpression(scope, loc, n.Children[2])
		// The target type is inferred from surrounding context, which this
		// binder does not track; the cast is a no-op on the operand's own
		// type until context propagation is added.
		return &Expr{Kind: EConversion, Type: inner.Type, Span: n.Span, Node: n.Children[0], ConvKind: ConvApostrophe, Operands: []*Expr{inner}}
	default:
		return b.errorExpr(n.Children[0], n.Span)
	}
}

func (b *Binder) bindCall(scope symbols.ScopeID, loc sourcemap.Span, n *syntax.Node) *Expr {
	calleeNode := b.node(n.Children[0])
	if calleeNode != nil && calleeNode.Kind == syntax.KindIdentExpr {
		if tok, ok := b.tree.Token(calleeNode.Children[0]); ok && len(tok.Text) > 0 && tok.Text[0] == '$' {
			return b.bindSystemCall(scope, loc, n, tok.Text)
		}
	}
	callee := b.BindExpression(scope, loc, n.Children[0])
	argListNode := b.node(n.Children[1])
	var args []*Expr
	if argListNode != nil {
		for _, a := range b.children(argListNode) {
			args = append(args, b.BindExpression(scope, loc, a))
		}
	}
	resultType := b.types.Builtins().Error
	if sym := b.table.Symbols.Get(callee.Symbol); sym != nil && sym.Decl.TypeNode.IsValid() {
		resultType = b.BindTypeRef(sym.Scope, sym.Decl.TypeNode)
	}
	return &Expr{Kind: ECall, Type: resultType, Span: n.Span, Node: n.Children[0], Symbol: callee.Symbol, Operands: args}
}
