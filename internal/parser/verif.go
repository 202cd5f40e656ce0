package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// parseCovergroupDecl parses `covergroup name [(args)] [@(event)] ;
// coverpoint/cross* endgroup`.
func (p *Parser) parseCovergroupDecl() (syntax.NodeID, bool) {
	kw := p.bump()
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a covergroup name")
	children := []syntax.NodeID{kw, name}
	if p.at(token.LParen) {
		open := p.bump()
		params, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: isPossibleDataType,
			IsEndOfList:    func(k token.Kind) bool { return k == token.RParen },
			ExpectedCode:   diag.SynBadPortDirection,
			ExpectedMsg:    "expected a covergroup argument",
			ParseItem:      func() (syntax.NodeID, bool) { return p.parseSubroutineParam() },
		})
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close covergroup argument list")
		children = append(children, open)
		children = append(children, params...)
		children = append(children, delims...)
		children = append(children, closeTok)
	}
	if p.at(token.At) {
		ctrl, ok := p.parseEventControlHeader()
		if ok {
			children = append(children, ctrl)
		}
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after covergroup header"))

	items := p.parseItemSequence(ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return k == token.Ident || k == token.KwCoverpoint || k == token.KwCross },
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEndgroup || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a coverpoint or cross",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseCoverItem() },
	})
	children = append(children, items...)
	children = append(children, p.expect(token.KwEndgroup, diag.SynUnbalancedBeginEnd, "expected 'endgroup'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindCovergroupDecl, span, children...), true
}

// parseEventControlHeader parses a bare `@(event-expr)` used as a
// covergroup sampling trigger, without a following body statement.
func (p *Parser) parseEventControlHeader() (syntax.NodeID, bool) {
	at := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after '@'")
	expr, ok := p.parseEventExpression()
	if !ok {
		return expr, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close event control")
	span := syntax.CoverChildren(p.tree, at, open, expr, closeTok)
	return p.tree.NewNode(syntax.KindEventControl, span, at, open, expr, closeTok), true
}

func (p *Parser) parseCoverItem() (syntax.NodeID, bool) {
	var label syntax.NodeID
	if p.at(token.Ident) && p.peek2().Kind == token.Colon {
		label = p.bump()
		_ = p.bump()
	}
	if p.at(token.KwCross) {
		kw := p.bump()
		names, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: func(k token.Kind) bool { return k == token.Ident },
			IsEndOfList:    func(k token.Kind) bool { return k == token.Semicolon || k == token.LBrace },
			ExpectedCode:   diag.SynExpectedIdentifier,
			ExpectedMsg:    "expected a coverpoint name in a cross",
			ParseItem:      func() (syntax.NodeID, bool) { return p.ParseExpression() },
		})
		children := []syntax.NodeID{}
		if label.IsValid() {
			children = append(children, label)
		}
		children = append(children, kw)
		children = append(children, names...)
		children = append(children, delims...)
		children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after cross"))
		span := syntax.CoverChildren(p.tree, children...)
		return p.tree.NewNode(syntax.KindCoverCrossDecl, span, children...), true
	}
	kw := p.expect(token.KwCoverpoint, diag.SynBadGenerateItem, "expected 'coverpoint' or 'cross'")
	expr, ok := p.ParseExpression()
	if !ok {
		return expr, false
	}
	children := []syntax.NodeID{}
	if label.IsValid() {
		children = append(children, label)
	}
	children = append(children, kw, expr)
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after coverpoint"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindCoverpointDecl, span, children...), true
}

// parsePropertyDecl parses `property name [(args)] ; expr endproperty`.
func (p *Parser) parsePropertyDecl() (syntax.NodeID, bool) {
	kw := p.bump()
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a property name")
	children := []syntax.NodeID{kw, name}
	if p.at(token.LParen) {
		open := p.bump()
		params, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: isPossibleDataType,
			IsEndOfList:    func(k token.Kind) bool { return k == token.RParen },
			ExpectedCode:   diag.SynBadPortDirection,
			ExpectedMsg:    "expected a property argument",
			ParseItem:      func() (syntax.NodeID, bool) { return p.parseSubroutineParam() },
		})
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close property argument list")
		children = append(children, open)
		children = append(children, params...)
		children = append(children, delims...)
		children = append(children, closeTok)
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after property header"))
	body, ok := p.ParseExpression()
	if !ok {
		return body, false
	}
	children = append(children, body)
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after property body"))
	children = append(children, p.expect(token.KwEndproperty, diag.SynUnbalancedBeginEnd, "expected 'endproperty'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindPropertyDecl, span, children...), true
}

// parseSequenceDecl parses `sequence name [(args)] ; expr endsequence`.
func (p *Parser) parseSequenceDecl() (syntax.NodeID, bool) {
	kw := p.bump()
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a sequence name")
	children := []syntax.NodeID{kw, name}
	if p.at(token.LParen) {
		open := p.bump()
		params, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: isPossibleDataType,
			IsEndOfList:    func(k token.Kind) bool { return k == token.RParen },
			ExpectedCode:   diag.SynBadPortDirection,
			ExpectedMsg:    "expected a sequence argument",
			ParseItem:      func() (syntax.NodeID, bool) { return p.parseSubroutineParam() },
		})
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close sequence argument list")
		children = append(children, open)
		children = append(children, params...)
		children = append(children, delims...)
		children = append(children, closeTok)
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after sequence header"))
	body, ok := p.ParseExpression()
	if !ok {
		return body, false
	}
	children = append(children, body)
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after sequence body"))
	children = append(children, p.expect(token.KwEndsequence, diag.SynUnbalancedBeginEnd, "expected 'endsequence'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindSequenceDecl, span, children...), true
}

// parseClockingBlock parses `clocking name @(event) ; item* endclocking`.
// Neither keyword is reserved in this grammar's keyword table (IEEE 1800
// only reserves them where SystemVerilog-2005 compatibility does not force
// them to stay ordinary identifiers), so both are recognized the same way
// `restrict` is: by comparing an Ident token's text.
func (p *Parser) parseClockingBlock() (syntax.NodeID, bool) {
	kw := p.bump()
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a clocking block name")
	children := []syntax.NodeID{kw, name}
	if p.at(token.At) {
		ctrl, ok := p.parseEventControlHeader()
		if ok {
			children = append(children, ctrl)
		}
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after clocking header"))
	items := p.parseItemSequence(ItemSpec{
		IsPossibleItem: func(k token.Kind) bool {
			return k == token.KwInput || k == token.KwOutput || k == token.KwInout
		},
		IsEndOfList: func(k token.Kind) bool { return (k == token.Ident && p.peek().Text == "endclocking") || k == token.EOF },
		ExpectedCode: diag.SynBadGenerateItem,
		ExpectedMsg:  "expected a clocking direction item",
		ParseItem:    func() (syntax.NodeID, bool) { return p.parsePortDecl() },
	})
	children = append(children, items...)
	if p.at(token.Ident) && p.peek().Text == "endclocking" {
		children = append(children, p.bump())
	} else {
		p.report(diag.SynUnbalancedBeginEnd, p.diagSpan(), "expected 'endclocking'")
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindClockingBlock, span, children...), true
}
