package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// isLiteral reports whether k opens a literal token.
func isLiteral(k token.Kind) bool {
	switch k {
	case token.IntLit, token.UnbasedUnsizedLit, token.RealLit, token.TimeLit, token.StringLit:
		return true
	default:
		return false
	}
}

// parsePrimary parses the innermost, non-recursive-descent-ambiguous piece
// of an expression: a literal, a name, a parenthesized subexpression, an
// assignment/concatenation/replication/streaming brace form, a cast, a
// `new` expression, a `tagged` union member, or a `##` cycle delay.
func (p *Parser) parsePrimary(ctx exprContext) (syntax.NodeID, bool) {
	if !p.enterDepth() {
		defer p.exitDepth()
		return p.tree.NewMissing(p.diagSpan()), false
	}
	defer p.exitDepth()

	switch k := p.peek().Kind; {
	case isLiteral(k):
		tok := p.bump()
		return p.tree.NewNode(syntax.KindLiteralExpr, syntax.CoverChildren(p.tree, tok), tok), true

	case k.IsIdent() || k.IsKeyword() && isBuiltinTypeKeyword(k):
		tok := p.bump()
		return p.tree.NewNode(syntax.KindIdentExpr, syntax.CoverChildren(p.tree, tok), tok), true

	case k == token.LParen:
		open := p.bump()
		inner, ok := p.ParseExpression()
		if !ok {
			return inner, false
		}
		close := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression")
		span := syntax.CoverChildren(p.tree, open, inner, close)
		return p.tree.NewNode(syntax.KindParenExpr, span, open, inner, close), true

	case k == token.Apostrophe:
		return p.parseApostropheForm(ctx)

	case k == token.LBrace:
		return p.parseBraceForm(ctx)

	case k == token.KwNew:
		return p.parseNewExpr(ctx)

	case k == token.KwTagged:
		return p.parseTaggedExpr(ctx)

	case k == token.KwSigned, k == token.KwUnsigned:
		return p.parseSignCast(ctx)

	case k == token.Hash:
		return p.parseCycleDelay(ctx)

	default:
		p.report(diag.SynExpectedExpression, p.diagSpan(), "expected an expression")
		return p.tree.NewMissing(p.diagSpan()), false
	}
}

// isBuiltinTypeKeyword reports whether k is a built-in type keyword that
// can also stand alone as a primary expression, e.g. as the target of an
// apostrophe or system-cast expression such as `int'(x)`.
func isBuiltinTypeKeyword(k token.Kind) bool {
	switch k {
	case token.KwInt, token.KwInteger, token.KwBit, token.KwLogic, token.KwReg,
		token.KwByte, token.KwShortint, token.KwLongint, token.KwReal, token.KwShortreal,
		token.KwRealtime, token.KwString, token.KwSigned, token.KwUnsigned:
		return true
	default:
		return false
	}
}

// parseApostropheForm dispatches on what follows a bare Apostrophe token:
// '{...} is an assignment pattern, '(expr) is an apostrophe cast whose
// target type is inferred from context rather than named.
func (p *Parser) parseApostropheForm(ctx exprContext) (syntax.NodeID, bool) {
	apos := p.bump()
	switch {
	case p.at(token.LBrace):
		return p.parseAssignmentPattern(ctx, apos)
	case p.at(token.LParen):
		open := p.bump()
		inner, ok := p.ParseExpression()
		if !ok {
			return inner, false
		}
		close := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close apostrophe cast")
		span := syntax.CoverChildren(p.tree, apos, open, inner, close)
		return p.tree.NewNode(syntax.KindApostropheCastExpr, span, apos, open, inner, close), true
	default:
		p.report(diag.SynUnexpectedToken, p.diagSpan(), "expected '{' or '(' after apostrophe")
		return p.tree.NewMissing(p.diagSpan()), false
	}
}

// parseAssignmentPattern parses the body of a '{...} pattern: a
// comma-separated list of expressions, or of `key: value` member
// initializers (both shapes share one node kind; the binder tells them
// apart by inspecting the children).
func (p *Parser) parseAssignmentPattern(ctx exprContext, apos syntax.NodeID) (syntax.NodeID, bool) {
	open := p.bump()
	items, delims := p.parseSeparatedList(token.Comma, ItemSpec{
		IsPossibleItem: isPossibleAssignmentPatternMember,
		IsEndOfList:    func(k token.Kind) bool { return k == token.RBrace },
		ExpectedCode:   diag.SynExpectedExpression,
		ExpectedMsg:    "expected an assignment pattern member",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parsePatternMember(ctx) },
	})
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close assignment pattern")
	children := append([]syntax.NodeID{apos, open}, items...)
	children = append(children, delims...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindAssignmentPatternExpr, span, children...), true
}

func isPossibleAssignmentPatternMember(k token.Kind) bool {
	return isLiteral(k) || k.IsIdent() || isUnaryPrefix(k) ||
		k == token.LParen || k == token.LBrace || k == token.Apostrophe
}

// parsePatternMember parses one `expr` or `key: expr` member of an
// assignment pattern; the colon form is only distinguished by lookahead
// since both a bare expression and a key share the same first token set.
func (p *Parser) parsePatternMember(ctx exprContext) (syntax.NodeID, bool) {
	first, ok := p.ParseExpression()
	if !ok {
		return first, false
	}
	if p.at(token.Colon) {
		colon := p.bump()
		value, ok := p.ParseExpression()
		if !ok {
			return first, false
		}
		span := syntax.CoverChildren(p.tree, first, colon, value)
		return p.tree.NewNode(syntax.KindPatternExpr, span, first, colon, value), true
	}
	return first, true
}

// parseBraceForm dispatches the several grammars that all open with a
// bare '{': a streaming concatenation `{<< {...}}` / `{>> {...}}`, a
// replication `{N{...}}`, or a plain concatenation `{a, b, c}`.
func (p *Parser) parseBraceForm(ctx exprContext) (syntax.NodeID, bool) {
	open := p.bump()

	if p.atAny(token.Shl, token.Shr) {
		dir := p.bump()
		var sliceSize syntax.NodeID
		if !p.at(token.LBrace) {
			var ok bool
			sliceSize, ok = p.ParseExpression()
			if !ok {
				return sliceSize, false
			}
		}
		innerOpen := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to open streaming slice list")
		items, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() }))
		innerClose := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close streaming slice list")
		closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close streaming concatenation")
		children := []syntax.NodeID{open, dir}
		if sliceSize.IsValid() {
			children = append(children, sliceSize)
		}
		children = append(children, innerOpen)
		children = append(children, items...)
		children = append(children, delims...)
		children = append(children, innerClose, closeTok)
		span := syntax.CoverChildren(p.tree, children...)
		return p.tree.NewNode(syntax.KindStreamingExpr, span, children...), true
	}

	first, ok := p.ParseExpression()
	if !ok {
		return first, false
	}

	if p.at(token.LBrace) {
		// {N{...}} replication: first was the replication count.
		innerOpen := p.bump()
		items, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() }))
		innerClose := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close replicated concatenation")
		closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close replication")
		children := append([]syntax.NodeID{open, first, innerOpen}, items...)
		children = append(children, delims...)
		children = append(children, innerClose, closeTok)
		span := syntax.CoverChildren(p.tree, children...)
		return p.tree.NewNode(syntax.KindReplicationExpr, span, children...), true
	}

	items := []syntax.NodeID{first}
	var delims []syntax.NodeID
	for p.at(token.Comma) {
		delims = append(delims, p.bump())
		item, ok := p.ParseExpression()
		if !ok {
			break
		}
		items = append(items, item)
	}
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close concatenation")
	children := append([]syntax.NodeID{open}, items...)
	children = append(children, delims...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindConcatExpr, span, children...), true
}

func exprListSpec(parseItem func() (syntax.NodeID, bool)) ItemSpec {
	return ItemSpec{
		IsPossibleItem: isPossibleAssignmentPatternMember,
		IsEndOfList:    func(k token.Kind) bool { return k == token.RBrace || k == token.RParen },
		ExpectedCode:   diag.SynExpectedExpression,
		ExpectedMsg:    "expected an expression",
		ParseItem:      parseItem,
	}
}

// parseNewExpr parses `new(args)`, `new [size]`, or `new expr` (the
// class-copy-constructor form).
func (p *Parser) parseNewExpr(ctx exprContext) (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	switch {
	case p.at(token.LParen):
		open := p.bump()
		args, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() }))
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close new(...) arguments")
		children = append(children, open)
		children = append(children, args...)
		children = append(children, delims...)
		children = append(children, closeTok)
	case p.at(token.LBracket):
		open := p.bump()
		size, ok := p.ParseExpression()
		if !ok {
			return size, false
		}
		closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close new[...] size")
		children = append(children, open, size, closeTok)
	default:
		if operand, ok := p.parseUnary(ctx); ok {
			children = append(children, operand)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindNewExpr, span, children...), true
}

// parseTaggedExpr parses `tagged member expr?`, a tagged-union literal.
func (p *Parser) parseTaggedExpr(ctx exprContext) (syntax.NodeID, bool) {
	kw := p.bump()
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a member name after 'tagged'")
	children := []syntax.NodeID{kw, name}
	if !p.atAny(token.RParen, token.RBrace, token.RBracket, token.Comma, token.Semicolon, token.Colon, token.EOF) {
		if operand, ok := p.parseUnary(ctx); ok {
			children = append(children, operand)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindTaggedExpr, span, children...), true
}

// parseSignCast parses `signed'(expr)` / `unsigned'(expr)`.
func (p *Parser) parseSignCast(ctx exprContext) (syntax.NodeID, bool) {
	kw := p.bump()
	apos := p.expect(token.Apostrophe, diag.SynExpectedToken, "expected \"'\" after signed/unsigned in a cast")
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' in signed/unsigned cast")
	inner, ok := p.ParseExpression()
	if !ok {
		return inner, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close signed/unsigned cast")
	span := syntax.CoverChildren(p.tree, kw, apos, open, inner, closeTok)
	return p.tree.NewNode(syntax.KindSignCastExpr, span, kw, apos, open, inner, closeTok), true
}

// parseCycleDelay parses `##N expr` or `##[a:b] expr`, the clocking-cycle
// delay used in sequence and property expressions.
func (p *Parser) parseCycleDelay(ctx exprContext) (syntax.NodeID, bool) {
	first := p.bump()
	children := []syntax.NodeID{first}
	if p.at(token.Hash) {
		children = append(children, p.bump())
	}
	switch {
	case p.at(token.LBracket):
		open := p.bump()
		lo, ok := p.ParseExpression()
		if !ok {
			return lo, false
		}
		colon := p.expect(token.Colon, diag.SynExpectedToken, "expected ':' in cycle delay range")
		hi, ok := p.ParseExpression()
		if !ok {
			return hi, false
		}
		closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close cycle delay range")
		children = append(children, open, lo, colon, hi, closeTok)
	default:
		count, ok := p.parsePrimary(ctx)
		if !ok {
			return count, false
		}
		children = append(children, count)
	}
	operand, ok := p.parseUnary(ctx)
	if ok {
		children = append(children, operand)
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindCycleDelayExpr, span, children...), true
}
