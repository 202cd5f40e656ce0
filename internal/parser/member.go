package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// isPossibleMember reports whether k can open a design-unit member: a
// net/variable/parameter/typedef declaration, a generate region, an
// instance, a procedural block, a subroutine, a verification construct, or
// an import.
func isPossibleMember(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwExport, token.KwParameter, token.KwLocalparam, token.KwTypedef,
		token.KwGenerate, token.KwIf, token.KwFor, token.KwCase, token.KwGenvar,
		token.KwAlways, token.KwAlwaysComb, token.KwAlwaysFF, token.KwAlwaysLatch,
		token.KwInitial, token.KwFinal, token.KwAssign, token.KwFunction, token.KwTask,
		token.KwCovergroup, token.KwProperty, token.KwSequence, token.KwConstraint,
		token.KwVirtual, token.KwPure, token.KwExtern, token.KwStatic, token.KwLocal,
		token.KwProtected, token.KwRand, token.KwRandc, token.LParen:
		return true
	default:
		return isPossibleDataType(k)
	}
}

// parseMember dispatches on the current member kind.
func (p *Parser) parseMember() (syntax.NodeID, bool) {
	if !p.enterDepth() {
		defer p.exitDepth()
		return p.tree.NewMissing(p.diagSpan()), false
	}
	defer p.exitDepth()

	attrs := p.parseAttributeInstances()
	k := p.peek().Kind
	switch {
	case k == token.KwImport || k == token.KwExport:
		id, ok := p.parseImportDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwParameter || k == token.KwLocalparam:
		id, ok := p.parseParamDeclMember()
		return p.finishDeclMember(attrs, id, ok)
	case k == token.KwTypedef:
		id, ok := p.parseTypedefDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwGenvar:
		id, ok := p.parseVarDeclLike()
		return p.finishDeclMember(attrs, id, ok)
	case k == token.KwGenerate:
		id, ok := p.parseGenerateRegion()
		return p.finishMember(attrs, id, ok)
	case k == token.KwIf:
		id, ok := p.parseGenerateIf()
		return p.finishMember(attrs, id, ok)
	case k == token.KwFor:
		id, ok := p.parseGenerateFor()
		return p.finishMember(attrs, id, ok)
	case k == token.KwCase:
		id, ok := p.parseGenerateCase()
		return p.finishMember(attrs, id, ok)
	case k == token.KwAlways, k == token.KwAlwaysComb, k == token.KwAlwaysFF, k == token.KwAlwaysLatch:
		id, ok := p.parseAlwaysBlock()
		return p.finishMember(attrs, id, ok)
	case k == token.KwInitial:
		id, ok := p.parseInitialOrFinal(token.KwInitial, syntax.KindInitialBlock)
		return p.finishMember(attrs, id, ok)
	case k == token.KwFinal:
		id, ok := p.parseInitialOrFinal(token.KwFinal, syntax.KindFinalBlock)
		return p.finishMember(attrs, id, ok)
	case k == token.KwAssign:
		id, ok := p.parseContinuousAssign()
		return p.finishMember(attrs, id, ok)
	case k == token.KwFunction, k == token.KwTask:
		id, ok := p.parseSubroutineDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwVirtual && p.peek2().Kind == token.KwFunction || k == token.KwVirtual && p.peek2().Kind == token.KwTask:
		id, ok := p.parseSubroutineDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwExtern, k == token.KwPure:
		id, ok := p.parseSubroutineDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwCovergroup:
		id, ok := p.parseCovergroupDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwProperty:
		id, ok := p.parsePropertyDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.KwSequence:
		id, ok := p.parseSequenceDecl()
		return p.finishMember(attrs, id, ok)
	case k == token.Ident && p.peek().Text == "clocking":
		id, ok := p.parseClockingBlock()
		return p.finishMember(attrs, id, ok)
	case isPossibleDataType(k) || k == token.KwStatic || k == token.KwLocal || k == token.KwProtected ||
		k == token.KwRand || k == token.KwRandc:
		id, ok := p.parseInstanceOrVarDecl()
		return p.finishDeclMember(attrs, id, ok)
	default:
		p.report(diag.SynBadGenerateItem, p.diagSpan(), "expected a member declaration")
		return p.tree.NewMissing(p.diagSpan()), false
	}
}

func (p *Parser) finishMember(attrs []syntax.NodeID, id syntax.NodeID, ok bool) (syntax.NodeID, bool) {
	if len(attrs) == 0 {
		return id, ok
	}
	if !ok {
		return id, false
	}
	children := append(append([]syntax.NodeID{}, attrs...), id)
	n := p.tree.Get(id)
	span := n.Span
	if len(attrs) > 0 {
		span = syntax.CoverChildren(p.tree, children...)
	}
	return p.tree.NewNode(n.Kind, span, children...), true
}

func (p *Parser) finishDeclMember(attrs []syntax.NodeID, id syntax.NodeID, ok bool) (syntax.NodeID, bool) {
	return p.finishMember(attrs, id, ok)
}

func (p *Parser) parseImportDecl() (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	items, delims := p.parseSeparatedList(token.Comma, ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return k == token.Ident },
		IsEndOfList:    func(k token.Kind) bool { return k == token.Semicolon },
		ExpectedCode:   diag.SynExpectedIdentifier,
		ExpectedMsg:    "expected a package::name import",
		ParseItem: func() (syntax.NodeID, bool) {
			pkg := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a package name")
			cc := p.expect(token.ColonColon, diag.SynExpectedToken, "expected '::' in import")
			var name syntax.NodeID
			if p.at(token.Star) {
				name = p.bump()
			} else {
				name = p.expect(token.Ident, diag.SynExpectedIdentifier, "expected an imported name or '*'")
			}
			span := syntax.CoverChildren(p.tree, pkg, cc, name)
			return p.tree.NewNode(syntax.KindImportDecl, span, pkg, cc, name), true
		},
	})
	children = append(children, items...)
	children = append(children, delims...)
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after import"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindImportDecl, span, children...), true
}

func (p *Parser) parseParamDeclMember() (syntax.NodeID, bool) {
	id, ok := p.parseParamDecl()
	if !ok {
		return id, false
	}
	children := []syntax.NodeID{id}
	for p.at(token.Comma) {
		children = append(children, p.bump())
		next, ok := p.parseParamDecl()
		if !ok {
			break
		}
		children = append(children, next)
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after parameter declaration"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindParamDecl, span, children...), true
}

func (p *Parser) parseTypedefDecl() (syntax.NodeID, bool) {
	kw := p.bump()
	ty, ok := p.ParseDataType()
	if !ok {
		return ty, false
	}
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a typedef name")
	children := []syntax.NodeID{kw, ty, name}
	for p.at(token.LBracket) {
		dim, ok := p.parseDimension()
		if !ok {
			break
		}
		children = append(children, dim)
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after typedef"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindTypedefDecl, span, children...), true
}

// parseVarDeclLike parses one `type name dims? (= init)?` clause shared by
// struct/union members, genvar declarations, and (via
// parseInstanceOrVarDecl) ordinary variable declarations.
func (p *Parser) parseVarDeclLike() (syntax.NodeID, bool) {
	var children []syntax.NodeID
	if p.at(token.KwGenvar) {
		children = append(children, p.bump())
	} else {
		ty, ok := p.ParseDataType()
		if !ok {
			return ty, false
		}
		children = append(children, ty)
	}
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a variable name")
	children = append(children, name)
	for p.at(token.LBracket) {
		dim, ok := p.parseDimension()
		if !ok {
			break
		}
		children = append(children, dim)
	}
	if p.at(token.Assign) {
		eq := p.bump()
		value, ok := p.ParseExpression()
		if ok {
			children = append(children, eq, value)
		}
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after declaration"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindVarDecl, span, children...), true
}

// parseInstanceOrVarDecl parses `type-or-module-name [#(params)] item,
// item, ... ;`, where each item is either a variable declarator (a plain
// name, optionally with an initializer) or a module instance (a name
// followed by a parenthesized port-connection list). Both share this one
// production because the type name and the module name are
// indistinguishable at parse time; the binder disambiguates by which
// definition the name resolves to.
func (p *Parser) parseInstanceOrVarDecl() (syntax.NodeID, bool) {
	var lead []syntax.NodeID
	for p.atAny(token.KwStatic, token.KwLocal, token.KwProtected, token.KwRand, token.KwRandc) {
		lead = append(lead, p.bump())
	}
	ty, ok := p.ParseDataType()
	if !ok {
		return ty, false
	}
	var paramList syntax.NodeID
	if p.at(token.Hash) {
		pl, ok := p.parseParamValueList()
		if ok {
			paramList = pl
		}
	}

	items, delims := p.parseSeparatedList(token.Comma, ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return k == token.Ident },
		IsEndOfList:    func(k token.Kind) bool { return k == token.Semicolon },
		ExpectedCode:   diag.SynExpectedIdentifier,
		ExpectedMsg:    "expected a declarator or instance name",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseInstanceOrVarItem() },
	})
	semi := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after declaration")

	children := append(append([]syntax.NodeID{}, lead...), ty)
	if paramList.IsValid() {
		children = append(children, paramList)
	}
	children = append(children, items...)
	children = append(children, delims...)
	children = append(children, semi)
	span := syntax.CoverChildren(p.tree, children...)
	if paramList.IsValid() {
		return p.tree.NewNode(syntax.KindInstanceDecl, span, children...), true
	}
	return p.tree.NewNode(syntax.KindVarDecl, span, children...), true
}

func (p *Parser) parseInstanceOrVarItem() (syntax.NodeID, bool) {
	name := p.bump()
	children := []syntax.NodeID{name}
	for p.at(token.LBracket) {
		dim, ok := p.parseDimension()
		if !ok {
			break
		}
		children = append(children, dim)
	}
	switch {
	case p.at(token.LParen):
		open := p.bump()
		ports, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: func(k token.Kind) bool { return k == token.Dot || isPossibleAssignmentPatternMember(k) },
			IsEndOfList:    func(k token.Kind) bool { return k == token.RParen },
			ExpectedCode:   diag.SynExpectedExpression,
			ExpectedMsg:    "expected a port connection",
			ParseItem:      func() (syntax.NodeID, bool) { return p.parseInstancePort() },
		})
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close instance port list")
		children = append(children, open)
		children = append(children, ports...)
		children = append(children, delims...)
		children = append(children, closeTok)
	case p.at(token.Assign):
		eq := p.bump()
		value, ok := p.ParseExpression()
		if ok {
			children = append(children, eq, value)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindPatternExpr, span, children...), true
}

func (p *Parser) parseInstancePort() (syntax.NodeID, bool) {
	if p.at(token.Dot) {
		dot := p.bump()
		if p.at(token.Star) {
			star := p.bump()
			span := syntax.CoverChildren(p.tree, dot, star)
			return p.tree.NewNode(syntax.KindInstancePort, span, dot, star), true
		}
		name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a port name after '.'")
		children := []syntax.NodeID{dot, name}
		if p.at(token.LParen) {
			open := p.bump()
			children = append(children, open)
			if !p.at(token.RParen) {
				value, ok := p.ParseExpression()
				if ok {
					children = append(children, value)
				}
			}
			children = append(children, p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close port connection"))
		}
		span := syntax.CoverChildren(p.tree, children...)
		return p.tree.NewNode(syntax.KindInstancePort, span, children...), true
	}
	expr, ok := p.ParseExpression()
	if !ok {
		return expr, false
	}
	return p.tree.NewNode(syntax.KindInstancePort, syntax.CoverChildren(p.tree, expr), expr), true
}
