package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// parseGenerateRegion parses an explicit `generate ... endgenerate` region.
func (p *Parser) parseGenerateRegion() (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleMember,
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEndgenerate || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a generate item",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseMember() },
	})
	children = append(children, body...)
	children = append(children, p.expect(token.KwEndgenerate, diag.SynUnbalancedBeginEnd, "expected 'endgenerate'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindGenerateRegion, span, children...), true
}

// parseGenerateBlockBody parses either a single member or a labeled
// `begin [: label] member* end [: label]` block, both legal wherever a
// generate construct's body appears.
func (p *Parser) parseGenerateBlockBody() (syntax.NodeID, bool) {
	if !p.at(token.KwBegin) {
		return p.parseMember()
	}
	begin := p.bump()
	children := []syntax.NodeID{begin}
	label := syntax.NoNodeID
	if p.at(token.Colon) {
		children = append(children, p.bump())
		label = p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a generate block label")
		children = append(children, label)
	}
	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleMember,
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEnd || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a generate item",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseMember() },
	})
	children = append(children, body...)
	children = append(children, p.expect(token.KwEnd, diag.SynUnbalancedBeginEnd, "expected 'end' to close generate block"))
	if p.at(token.Colon) {
		children = append(children, p.bump())
		children = append(children, p.expectEndLabel(label, "the block label"))
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindGenerateRegion, span, children...), true
}

func (p *Parser) parseGenerateIf() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'if'")
	cond, ok := p.ParseExpression()
	if !ok {
		return cond, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after generate-if condition")
	thenBlock, ok := p.parseGenerateBlockBody()
	if !ok {
		return thenBlock, false
	}
	children := []syntax.NodeID{kw, open, cond, closeTok, thenBlock}
	if p.at(token.KwElse) {
		elseKw := p.bump()
		var elseBlock syntax.NodeID
		if p.at(token.KwIf) {
			elseBlock, ok = p.parseGenerateIf()
		} else {
			elseBlock, ok = p.parseGenerateBlockBody()
		}
		if ok {
			children = append(children, elseKw, elseBlock)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindGenerateIf, span, children...), true
}

func (p *Parser) parseGenerateFor() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'for'")
	init, ok := p.parseForInit()
	if !ok {
		return init, false
	}
	semi1 := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after generate-for initializer")
	cond, ok := p.ParseExpression()
	if !ok {
		return cond, false
	}
	semi2 := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after generate-for condition")
	step, ok := p.ParseExpression()
	if !ok {
		return step, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close generate-for header")
	body, ok := p.parseGenerateBlockBody()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, kw, open, init, semi1, cond, semi2, step, closeTok, body)
	return p.tree.NewNode(syntax.KindGenerateFor, span, kw, open, init, semi1, cond, semi2, step, closeTok, body), true
}

func (p *Parser) parseGenerateCase() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'case'")
	selector, ok := p.ParseExpression()
	if !ok {
		return selector, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after generate-case selector")
	children := []syntax.NodeID{kw, open, selector, closeTok}
	items := p.parseItemSequence(ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return isPossibleAssignmentPatternMember(k) || k == token.KwDefault },
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEndcase || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a generate-case item",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseGenerateCaseItem() },
	})
	children = append(children, items...)
	children = append(children, p.expect(token.KwEndcase, diag.SynUnbalancedBeginEnd, "expected 'endcase'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindGenerateCase, span, children...), true
}

func (p *Parser) parseGenerateCaseItem() (syntax.NodeID, bool) {
	var children []syntax.NodeID
	if p.at(token.KwDefault) {
		children = append(children, p.bump())
	} else {
		labels, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() }))
		children = append(children, labels...)
		children = append(children, delims...)
	}
	children = append(children, p.expect(token.Colon, diag.SynExpectedToken, "expected ':' in generate-case item"))
	body, ok := p.parseGenerateBlockBody()
	if !ok {
		return body, false
	}
	children = append(children, body)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindCaseItem, span, children...), true
}
