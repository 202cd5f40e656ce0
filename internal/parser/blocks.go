package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// parseAlwaysBlock parses `always[_comb|_ff|_latch] statement`.
func (p *Parser) parseAlwaysBlock() (syntax.NodeID, bool) {
	kw := p.bump()
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, kw, body)
	return p.tree.NewNode(syntax.KindAlwaysBlock, span, kw, body), true
}

// parseInitialOrFinal parses `initial statement` / `final statement`.
func (p *Parser) parseInitialOrFinal(kwKind token.Kind, kind syntax.Kind) (syntax.NodeID, bool) {
	kw := p.bump()
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, kw, body)
	return p.tree.NewNode(kind, span, kw, body), true
}

// parseContinuousAssign parses `assign lhs = rhs, lhs = rhs, ... ;`.
func (p *Parser) parseContinuousAssign() (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	assigns, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() }))
	children = append(children, assigns...)
	children = append(children, delims...)
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after continuous assignment"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindAssignStmt, span, children...), true
}
