package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// isBuiltinTypeStarter reports whether k opens a built-in data type name.
func isBuiltinTypeStarter(k token.Kind) bool {
	switch k {
	case token.KwLogic, token.KwReg, token.KwBit, token.KwByte, token.KwShortint, token.KwInt,
		token.KwLongint, token.KwInteger, token.KwTime, token.KwShortreal, token.KwReal,
		token.KwRealtime, token.KwString, token.KwEvent, token.KwVoid, token.KwChandle,
		token.KwWire, token.KwWand, token.KwWor, token.KwTri, token.KwTri0, token.KwTri1,
		token.KwSupply0, token.KwSupply1, token.KwUwire:
		return true
	default:
		return false
	}
}

// isPossibleDataType reports whether k can open a data type reference:
// a built-in keyword, struct/union/enum, or a (possibly package-qualified)
// user-defined type name.
func isPossibleDataType(k token.Kind) bool {
	return isBuiltinTypeStarter(k) || k == token.KwStruct || k == token.KwUnion ||
		k == token.KwEnum || k == token.Ident || k == token.KwVirtual
}

// ParseDataType parses a data type reference: a built-in keyword, a
// struct/union/enum inline declaration, or a user type name, followed by
// optional signed/unsigned and packed dimensions.
func (p *Parser) ParseDataType() (syntax.NodeID, bool) {
	if !p.enterDepth() {
		defer p.exitDepth()
		return p.tree.NewMissing(p.diagSpan()), false
	}
	defer p.exitDepth()

	var children []syntax.NodeID
	switch {
	case p.at(token.KwVirtual):
		children = append(children, p.bump())
		if p.at(token.KwInterface) {
			children = append(children, p.bump())
		}
		children = append(children, p.expect(token.Ident, diag.SynExpectedIdentifier, "expected an interface name after 'virtual'"))
	case p.at(token.KwStruct) || p.at(token.KwUnion):
		agg, ok := p.parseStructOrUnion()
		if !ok {
			return agg, false
		}
		children = append(children, agg)
	case p.at(token.KwEnum):
		en, ok := p.parseEnum()
		if !ok {
			return en, false
		}
		children = append(children, en)
	case isBuiltinTypeStarter(p.peek().Kind):
		children = append(children, p.bump())
	case p.at(token.Ident):
		children = append(children, p.bump())
		for p.at(token.ColonColon) {
			children = append(children, p.bump())
			children = append(children, p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a name after '::'"))
		}
		if p.at(token.Hash) {
			params, ok := p.parseParamValueList()
			if ok {
				children = append(children, params)
			}
		}
	default:
		p.report(diag.SynExpectedDataType, p.diagSpan(), "expected a data type")
		return p.tree.NewMissing(p.diagSpan()), false
	}

	if p.atAny(token.KwSigned, token.KwUnsigned) {
		children = append(children, p.bump())
	}
	for p.at(token.LBracket) {
		dim, ok := p.parseDimension()
		if !ok {
			break
		}
		children = append(children, dim)
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindTypeRef, span, children...), true
}

// parseDimension parses one `[expr]` or `[hi:lo]` packed/unpacked
// dimension, reusing the range-select node shape since the two forms are
// syntactically identical.
func (p *Parser) parseDimension() (syntax.NodeID, bool) {
	open := p.bump()
	if p.at(token.RBracket) {
		closeTok := p.bump()
		span := syntax.CoverChildren(p.tree, open, closeTok)
		return p.tree.NewNode(syntax.KindElementSelectExpr, span, open, closeTok), true
	}
	first, ok := p.ParseExpression()
	if !ok {
		return first, false
	}
	if p.at(token.Colon) {
		sep := p.bump()
		second, ok := p.ParseExpression()
		if !ok {
			return second, false
		}
		closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close dimension")
		span := syntax.CoverChildren(p.tree, open, first, sep, second, closeTok)
		return p.tree.NewNode(syntax.KindRangeSelectExpr, span, open, first, sep, second, closeTok), true
	}
	closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close dimension")
	span := syntax.CoverChildren(p.tree, open, first, closeTok)
	return p.tree.NewNode(syntax.KindElementSelectExpr, span, open, first, closeTok), true
}

// parseParamValueList parses `#(expr-or-named, ...)`, shared by type
// references and instance declarations.
func (p *Parser) parseParamValueList() (syntax.NodeID, bool) {
	hash := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after '#'")
	items, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.parseArgument(exprContext{}) }))
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter value list")
	children := append([]syntax.NodeID{hash, open}, items...)
	children = append(children, delims...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindArgList, span, children...), true
}

func (p *Parser) parseStructOrUnion() (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	if p.at(token.KwPacked) {
		children = append(children, p.bump())
		if p.atAny(token.KwSigned, token.KwUnsigned) {
			children = append(children, p.bump())
		}
	}
	open := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to open struct/union body")
	fields := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleDataType,
		IsEndOfList:    func(k token.Kind) bool { return k == token.RBrace },
		ExpectedCode:   diag.SynExpectedDataType,
		ExpectedMsg:    "expected a struct/union member",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseVarDeclLike() },
	})
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct/union body")
	children = append(children, open)
	children = append(children, fields...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindTypeRef, span, children...), true
}

func (p *Parser) parseEnum() (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	if isPossibleDataType(p.peek().Kind) && !p.at(token.LBrace) {
		base, ok := p.ParseDataType()
		if ok {
			children = append(children, base)
		}
	}
	open := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' to open enum body")
	members, delims := p.parseSeparatedList(token.Comma, ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return k == token.Ident },
		IsEndOfList:    func(k token.Kind) bool { return k == token.RBrace },
		ExpectedCode:   diag.SynExpectedIdentifier,
		ExpectedMsg:    "expected an enumeration member name",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseEnumMember() },
	})
	closeTok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum body")
	children = append(children, open)
	children = append(children, members...)
	children = append(children, delims...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindTypeRef, span, children...), true
}

func (p *Parser) parseEnumMember() (syntax.NodeID, bool) {
	name := p.bump()
	children := []syntax.NodeID{name}
	if p.at(token.LBracket) {
		dim, ok := p.parseDimension()
		if ok {
			children = append(children, dim)
		}
	}
	if p.at(token.Assign) {
		eq := p.bump()
		value, ok := p.ParseExpression()
		if !ok {
			return value, false
		}
		children = append(children, eq, value)
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindPatternExpr, span, children...), true
}
