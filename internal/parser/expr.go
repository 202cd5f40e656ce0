package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// exprContext carries the handful of parse-site flags that change how an
// expression binds without changing the grammar itself (§4.G): inside a
// procedural block '<=' is read as the nonblocking assignment operator
// rather than "less than or equal." inEvent is carried but not read: an
// event-expression list recognizes its separating "or" by the identifier's
// text (parseEventExpression), not through this flag.
type exprContext struct {
	procedural bool
	inEvent    bool
}

// binary operator precedence, low to high; unary prefix and postfix chains
// bind tighter than every level here and are handled outside the table.
const (
	precLogicalOr = iota + 1
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precPower
)

// binaryPrec returns k's precedence and whether it is right-associative
// (every level here is left-associative except **), or ok=false if k is
// not a binary operator at all.
func binaryPrec(ctx exprContext, k token.Kind) (prec int, rightAssoc, ok bool) {
	switch k {
	case token.PipePipe:
		return precLogicalOr, false, true
	case token.AmpAmp:
		return precLogicalAnd, false, true
	case token.Pipe:
		return precBitOr, false, true
	case token.Caret, token.CaretTilde, token.TildeCaret:
		return precBitXor, false, true
	case token.Amp:
		return precBitAnd, false, true
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq, token.EqEqQuestion, token.BangEqQuestion:
		return precEquality, false, true
	case token.Lt, token.Gt, token.GtEq:
		return precRelational, false, true
	case token.LtEq:
		if ctx.procedural {
			// the nonblocking assignment operator, not relational <=;
			// the binary-operator loop stops here and the caller parsing
			// the procedural assignment consumes it.
			return 0, false, false
		}
		return precRelational, false, true
	case token.Shl, token.Shr, token.SShl, token.SShr:
		return precShift, false, true
	case token.Plus, token.Minus:
		return precAdditive, false, true
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false, true
	case token.StarStar:
		return precPower, true, true
	default:
		return 0, false, false
	}
}

// isUnaryPrefix reports whether k can open a unary prefix expression.
func isUnaryPrefix(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Bang, token.Tilde,
		token.Amp, token.Pipe, token.Caret, token.TildeAmp, token.TildePipe,
		token.TildeCaret, token.CaretTilde, token.PlusPlus, token.MinusMinus:
		return true
	default:
		return false
	}
}

// ParseExpression is the parseExpression entry point: a full expression,
// including the ternary and (for for-loop headers and continuous
// assignments) a top-level assignment.
func (p *Parser) ParseExpression() (syntax.NodeID, bool) {
	return p.parseAssignment(exprContext{})
}

func (p *Parser) parseAssignment(ctx exprContext) (syntax.NodeID, bool) {
	if !p.enterDepth() {
		defer p.exitDepth()
		return p.tree.NewMissing(p.diagSpan()), false
	}
	defer p.exitDepth()

	left, ok := p.parseTernary(ctx)
	if !ok {
		return left, false
	}
	if p.at(token.Assign) {
		eq := p.bump()
		right, ok := p.parseAssignment(ctx)
		if !ok {
			return left, false
		}
		span := syntax.CoverChildren(p.tree, left, eq, right)
		return p.tree.NewNode(syntax.KindBinaryExpr, span, left, eq, right), true
	}
	return left, true
}

// parseTernary handles `cond ? then : else`, right-associative, binding
// below logical-or per §4.G ("a postfix of the top precedence level below
// logical-or").
func (p *Parser) parseTernary(ctx exprContext) (syntax.NodeID, bool) {
	cond, ok := p.parseBinary(ctx, precLogicalOr)
	if !ok {
		return cond, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	q := p.bump()
	thenExpr, ok := p.parseAssignment(ctx)
	if !ok {
		return cond, false
	}
	colon := p.expect(token.Colon, diag.SynExpectedToken, "expected ':' in conditional expression")
	elseExpr, ok := p.parseAssignment(ctx)
	if !ok {
		return cond, false
	}
	span := syntax.CoverChildren(p.tree, cond, q, thenExpr, colon, elseExpr)
	return p.tree.NewNode(syntax.KindTernaryExpr, span, cond, q, thenExpr, colon, elseExpr), true
}

// parseBinary is the precedence-climbing loop: it parses one unary
// expression, then repeatedly folds in binary operators whose precedence
// is at least minPrec, recursing at minPrec+1 (or minPrec itself for a
// right-associative operator like **) to bind the right operand.
func (p *Parser) parseBinary(ctx exprContext, minPrec int) (syntax.NodeID, bool) {
	left, ok := p.parseUnary(ctx)
	if !ok {
		return left, false
	}
	for {
		prec, rightAssoc, ok := binaryPrec(ctx, p.peek().Kind)
		// A '+' or '-' directly followed by ':' is the +: / -: indexed
		// part-select separator, which parseSelect consumes itself.
		if !ok || prec < minPrec || p.isIndexedPartSelectOp() {
			return left, true
		}
		op := p.bump()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, ok := p.parseBinary(ctx, nextMin)
		if !ok {
			p.report(diag.SynExpectedExpression, p.diagSpan(), "expected expression after binary operator")
			return left, false
		}
		span := syntax.CoverChildren(p.tree, left, op, right)
		left = p.tree.NewNode(syntax.KindBinaryExpr, span, left, op, right)
	}
}

func (p *Parser) parseUnary(ctx exprContext) (syntax.NodeID, bool) {
	if !isUnaryPrefix(p.peek().Kind) {
		return p.parsePostfix(ctx)
	}
	op := p.bump()
	operand, ok := p.parseUnary(ctx)
	if !ok {
		return operand, false
	}
	span := syntax.CoverChildren(p.tree, op, operand)
	return p.tree.NewNode(syntax.KindUnaryExpr, span, op, operand), true
}
