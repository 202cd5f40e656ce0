package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// parsePostfix parses a primary expression followed by zero or more
// postfix operators: element/range select, member access, a call's
// argument list, post-increment/decrement, a `type'(expr)` cast whose
// target is the expression parsed so far, and a trailing `with {...}`
// clause (array-method and randomize-with constraints).
func (p *Parser) parsePostfix(ctx exprContext) (syntax.NodeID, bool) {
	expr, ok := p.parsePrimary(ctx)
	if !ok {
		return expr, false
	}
	for {
		switch {
		case p.at(token.LBracket):
			expr, ok = p.parseSelect(ctx, expr)
		case p.at(token.Dot):
			expr, ok = p.parseMemberAccess(ctx, expr)
		case p.at(token.LParen):
			expr, ok = p.parseCall(ctx, expr)
		case p.atAny(token.PlusPlus, token.MinusMinus):
			opTok := p.bump()
			span := syntax.CoverChildren(p.tree, expr, opTok)
			expr = p.tree.NewNode(syntax.KindPostIncDecExpr, span, expr, opTok)
		case p.at(token.KwWith):
			expr, ok = p.parseWithClause(ctx, expr)
		case p.at(token.Apostrophe) && p.peek2().Kind == token.LParen:
			apos := p.bump()
			open := p.bump()
			var inner syntax.NodeID
			if inner, ok = p.ParseExpression(); ok {
				closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close cast")
				span := syntax.CoverChildren(p.tree, expr, apos, open, inner, closeTok)
				expr = p.tree.NewNode(syntax.KindCastExpr, span, expr, apos, open, inner, closeTok)
			}
		default:
			return expr, true
		}
		if !ok {
			return expr, false
		}
	}
}

// parseSelect parses `base[index]` or `base[lo:hi]` / `base[lo+:w]` /
// `base[lo-:w]`; the three range forms share one node kind, and the
// indexed forms carry one extra separator child (seven children instead
// of six).
func (p *Parser) parseSelect(ctx exprContext, base syntax.NodeID) (syntax.NodeID, bool) {
	open := p.bump()
	first, ok := p.ParseExpression()
	if !ok {
		return base, false
	}
	if p.at(token.Colon) {
		sep := p.bump()
		second, ok := p.ParseExpression()
		if !ok {
			return base, false
		}
		closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close range select")
		span := syntax.CoverChildren(p.tree, base, open, first, sep, second, closeTok)
		return p.tree.NewNode(syntax.KindRangeSelectExpr, span, base, open, first, sep, second, closeTok), true
	}
	if p.isIndexedPartSelectOp() {
		// +: / -: has no dedicated token; the lexer emits it as two
		// adjacent punctuation tokens, both kept as direct children so a
		// seven-child KindRangeSelectExpr (instead of the plain form's
		// six) is how the binder tells +:/-: apart from a plain range.
		sepSign := p.bump()
		sepColon := p.bump()
		second, ok := p.ParseExpression()
		if !ok {
			return base, false
		}
		closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close indexed part select")
		span := syntax.CoverChildren(p.tree, base, open, first, sepSign, sepColon, second, closeTok)
		return p.tree.NewNode(syntax.KindRangeSelectExpr, span, base, open, first, sepSign, sepColon, second, closeTok), true
	}
	closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close element select")
	span := syntax.CoverChildren(p.tree, base, open, first, closeTok)
	return p.tree.NewNode(syntax.KindElementSelectExpr, span, base, open, first, closeTok), true
}

// isIndexedPartSelectOp reports whether the upcoming tokens are a Plus or
// Minus immediately followed (no intervening trivia) by a Colon, i.e. the
// indexed part-select operators +: and -:.
func (p *Parser) isIndexedPartSelectOp() bool {
	first := p.peek()
	if first.Kind != token.Plus && first.Kind != token.Minus {
		return false
	}
	second := p.peek2()
	return second.Kind == token.Colon && len(second.Leading) == 0
}

// parseMemberAccess parses `base.name` (and `base.*` implicit port
// connections are handled at the port-list grammar, not here).
func (p *Parser) parseMemberAccess(ctx exprContext, base syntax.NodeID) (syntax.NodeID, bool) {
	dot := p.bump()
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a member name after '.'")
	span := syntax.CoverChildren(p.tree, base, dot, name)
	return p.tree.NewNode(syntax.KindMemberAccessExpr, span, base, dot, name), true
}

// parseCall parses `callee(args)`, reusing parseSeparatedList for the
// comma-separated argument list.
func (p *Parser) parseCall(ctx exprContext, callee syntax.NodeID) (syntax.NodeID, bool) {
	open := p.bump()
	args, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.parseArgument(ctx) }))
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	// Interleave arguments and commas so the children stay in source order.
	argChildren := []syntax.NodeID{open}
	for i := 0; i < len(args) || i < len(delims); i++ {
		if i < len(args) {
			argChildren = append(argChildren, args[i])
		}
		if i < len(delims) {
			argChildren = append(argChildren, delims[i])
		}
	}
	argChildren = append(argChildren, closeTok)
	argSpan := syntax.CoverChildren(p.tree, argChildren...)
	argList := p.tree.NewNode(syntax.KindArgList, argSpan, argChildren...)
	span := syntax.CoverChildren(p.tree, callee, argList)
	return p.tree.NewNode(syntax.KindCallExpr, span, callee, argList), true
}

// parseArgument parses one call argument: a positional expression, a
// named `.name(expr)` connection, or an entirely elided `.name()`.
func (p *Parser) parseArgument(ctx exprContext) (syntax.NodeID, bool) {
	if p.at(token.Dot) {
		dot := p.bump()
		name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a name after '.' in a named argument")
		open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after named argument name")
		children := []syntax.NodeID{dot, name, open}
		if !p.at(token.RParen) {
			value, ok := p.ParseExpression()
			if ok {
				children = append(children, value)
			}
		}
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close named argument")
		children = append(children, closeTok)
		span := syntax.CoverChildren(p.tree, children...)
		return p.tree.NewNode(syntax.KindPatternExpr, span, children...), true
	}
	return p.ParseExpression()
}

// parseWithClause parses a trailing `with {constraint-or-filter-expr}`,
// used both by randomize() calls and array-locator methods.
func (p *Parser) parseWithClause(ctx exprContext, base syntax.NodeID) (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' after 'with'")
	var body syntax.NodeID
	if !p.at(token.RBrace) {
		var ok bool
		body, ok = p.ParseExpression()
		if !ok {
			return base, false
		}
	}
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close 'with' clause")
	children := []syntax.NodeID{base, kw, open}
	if body.IsValid() {
		children = append(children, body)
	}
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindWithExpr, span, children...), true
}
