package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// ParseCompilationUnit is the top-level entry point: a sequence of
// design-unit declarations (modules, interfaces, programs, packages,
// classes) running to end of file.
func (p *Parser) ParseCompilationUnit() *syntax.Tree {
	units := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleDesignUnit,
		IsEndOfList:    func(k token.Kind) bool { return k == token.EOF },
		ExpectedCode:   diag.SynUnexpectedToken,
		ExpectedMsg:    "expected a module, interface, program, package, or class declaration",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseDesignUnit() },
	})
	span := syntax.CoverChildren(p.tree, units...)
	root := p.tree.NewNode(syntax.KindCompilationUnit, span, units...)
	p.tree.SetRoot(root)
	return p.tree
}

func isPossibleDesignUnit(k token.Kind) bool {
	switch k {
	case token.KwModule, token.KwInterface, token.KwProgram, token.KwPackage, token.KwClass, token.LParen:
		return true
	default:
		return false
	}
}

// parseDesignUnit dispatches on the design-unit keyword, collecting any
// leading attribute instances first.
func (p *Parser) parseDesignUnit() (syntax.NodeID, bool) {
	attrs := p.parseAttributeInstances()
	switch p.peek().Kind {
	case token.KwModule:
		return p.parseModuleLike(token.KwModule, token.KwEndmodule, syntax.KindModuleDecl, attrs)
	case token.KwInterface:
		return p.parseModuleLike(token.KwInterface, token.KwEndinterface, syntax.KindInterfaceDecl, attrs)
	case token.KwProgram:
		return p.parseModuleLike(token.KwProgram, token.KwEndprogram, syntax.KindProgramDecl, attrs)
	case token.KwPackage:
		return p.parsePackageDecl(attrs)
	case token.KwClass:
		return p.parseClassDecl(attrs)
	default:
		p.report(diag.SynUnexpectedToken, p.diagSpan(), "expected a design-unit declaration")
		return p.tree.NewMissing(p.diagSpan()), false
	}
}

// parseAttributeInstances parses zero or more `(* name [= expr], ... *)`
// groups; SystemVerilog's attribute syntax uses ordinary parens and stars
// rather than a dedicated token, so this is recognized as two-token
// lookahead on `(` `*` rather than a lexer-level attribute-open token.
func (p *Parser) parseAttributeInstances() []syntax.NodeID {
	var out []syntax.NodeID
	for p.at(token.LParen) && p.peek2().Kind == token.Star {
		open := p.bump()
		star := p.bump()
		specs, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: func(k token.Kind) bool { return k == token.Ident },
			IsEndOfList:    func(k token.Kind) bool { return k == token.Star },
			ExpectedCode:   diag.SynExpectedIdentifier,
			ExpectedMsg:    "expected an attribute name",
			ParseItem:      func() (syntax.NodeID, bool) { return p.parseAttributeSpec() },
		})
		closeStar := p.expect(token.Star, diag.SynAttributeOnWrongItem, "expected '*' to close attribute instance")
		closeParen := p.expect(token.RParen, diag.SynAttributeOnWrongItem, "expected ')' to close attribute instance")
		children := append([]syntax.NodeID{open, star}, specs...)
		children = append(children, delims...)
		children = append(children, closeStar, closeParen)
		span := syntax.CoverChildren(p.tree, children...)
		out = append(out, p.tree.NewNode(syntax.KindAttributeInstance, span, children...))
	}
	return out
}

func (p *Parser) parseAttributeSpec() (syntax.NodeID, bool) {
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected an attribute name")
	children := []syntax.NodeID{name}
	if p.at(token.Assign) {
		eq := p.bump()
		value, ok := p.ParseExpression()
		if !ok {
			return value, false
		}
		children = append(children, eq, value)
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindAttributeSpec, span, children...), true
}

// parseModuleLike covers module, interface, and program declarations,
// which share one header/body/matching-end-keyword shape.
func (p *Parser) parseModuleLike(openKw, closeKw token.Kind, kind syntax.Kind, attrs []syntax.NodeID) (syntax.NodeID, bool) {
	kw := p.expect(openKw, diag.SynBadModuleHeader, "expected a design-unit keyword")
	children := append([]syntax.NodeID{}, attrs...)
	children = append(children, kw)
	if p.atAny(token.KwStatic, token.KwAutomatic) {
		children = append(children, p.bump())
	}
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a design-unit name")
	children = append(children, name)

	if p.at(token.Hash) {
		params, ok := p.parseParamPortList()
		if ok {
			children = append(children, params)
		}
	}
	if p.at(token.LParen) {
		ports, ok := p.parsePortList()
		if ok {
			children = append(children, ports)
		}
	}
	children = append(children, p.expect(token.Semicolon, diag.SynBadModuleHeader, "expected ';' after design-unit header"))

	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleMember,
		IsEndOfList:    func(k token.Kind) bool { return k == closeKw || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a member declaration",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseMember() },
	})
	children = append(children, body...)
	children = append(children, p.expect(closeKw, diag.SynUnbalancedBeginEnd, "expected matching end keyword"))
	if p.at(token.Colon) {
		children = append(children, p.bump())
		children = append(children, p.expectEndLabel(name, "the design-unit name"))
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(kind, span, children...), true
}

func (p *Parser) parsePackageDecl(attrs []syntax.NodeID) (syntax.NodeID, bool) {
	kw := p.bump()
	children := append([]syntax.NodeID{}, attrs...)
	children = append(children, kw)
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a package name")
	children = append(children, name, p.expect(token.Semicolon, diag.SynBadModuleHeader, "expected ';' after package header"))
	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleMember,
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEndpackage || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a member declaration",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseMember() },
	})
	children = append(children, body...)
	children = append(children, p.expect(token.KwEndpackage, diag.SynUnbalancedBeginEnd, "expected 'endpackage'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindPackageDecl, span, children...), true
}

func (p *Parser) parseClassDecl(attrs []syntax.NodeID) (syntax.NodeID, bool) {
	kw := p.bump()
	children := append([]syntax.NodeID{}, attrs...)
	children = append(children, kw)
	if p.at(token.KwStatic) {
		children = append(children, p.bump())
	}
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a class name")
	children = append(children, name)
	if p.at(token.Hash) {
		params, ok := p.parseParamPortList()
		if ok {
			children = append(children, params)
		}
	}
	if p.at(token.KwExtends) {
		extendsKw := p.bump()
		base, ok := p.ParseDataType()
		children = append(children, extendsKw)
		if ok {
			children = append(children, base)
		}
	}
	if p.at(token.KwImplements) {
		implKw := p.bump()
		children = append(children, implKw)
		ifaces, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: func(k token.Kind) bool { return k == token.Ident },
			IsEndOfList:    func(k token.Kind) bool { return k == token.Semicolon },
			ExpectedCode:   diag.SynExpectedIdentifier,
			ExpectedMsg:    "expected an interface class name",
			ParseItem:      func() (syntax.NodeID, bool) { return p.ParseDataType() },
		})
		children = append(children, ifaces...)
		children = append(children, delims...)
	}
	children = append(children, p.expect(token.Semicolon, diag.SynBadModuleHeader, "expected ';' after class header"))
	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleMember,
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEndclass || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a class member",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseMember() },
	})
	children = append(children, body...)
	children = append(children, p.expect(token.KwEndclass, diag.SynUnbalancedBeginEnd, "expected 'endclass'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindClassDecl, span, children...), true
}

// parseParamPortList parses `#(parameter-decl, ...)`.
func (p *Parser) parseParamPortList() (syntax.NodeID, bool) {
	hash := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after '#'")
	items, delims := p.parseSeparatedList(token.Comma, ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return k == token.KwParameter || isPossibleDataType(k) },
		IsEndOfList:    func(k token.Kind) bool { return k == token.RParen },
		ExpectedCode:   diag.SynBadPortDirection,
		ExpectedMsg:    "expected a parameter declaration",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseParamDecl() },
	})
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter port list")
	children := append([]syntax.NodeID{hash, open}, items...)
	children = append(children, delims...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindArgList, span, children...), true
}

// ParseParamDeclStatement parses one `parameter`/`localparam` declaration
// followed by ';', the grammar a ScriptSession uses to evaluate a
// standalone parameter-declaration snippet (§6).
func (p *Parser) ParseParamDeclStatement() (syntax.NodeID, bool) {
	return p.parseParamDeclMember()
}

// ParseVarDeclStatement parses one `type name (= init)?;` declaration, the
// grammar a ScriptSession uses to evaluate a standalone variable
// declaration snippet (§6).
func (p *Parser) ParseVarDeclStatement() (syntax.NodeID, bool) {
	return p.parseVarDeclLike()
}

// ParseSubroutineDeclStatement parses one function/task declaration, the
// grammar a ScriptSession uses to evaluate a standalone function
// declaration snippet (§6).
func (p *Parser) ParseSubroutineDeclStatement() (syntax.NodeID, bool) {
	return p.parseSubroutineDecl()
}

func (p *Parser) parseParamDecl() (syntax.NodeID, bool) {
	children := []syntax.NodeID{}
	if p.at(token.KwParameter) || p.at(token.KwLocalparam) {
		children = append(children, p.bump())
	}
	// `parameter T x` and `parameter x = 1` share the same leading token
	// set once T is a plain identifier, so a type is only assumed here
	// when the token after a leading Ident is not one of '=', ',', ')' —
	// the three tokens that can only follow a bare parameter name.
	if isPossibleDataType(p.peek().Kind) && p.peek().Kind != token.Ident || (p.at(token.Ident) && p.peek2().Kind != token.Assign && p.peek2().Kind != token.Comma && p.peek2().Kind != token.RParen) {
		ty, ok := p.ParseDataType()
		if ok {
			children = append(children, ty)
		}
	}
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a parameter name")
	children = append(children, name)
	if p.at(token.Assign) {
		eq := p.bump()
		value, ok := p.ParseExpression()
		if !ok {
			return value, false
		}
		children = append(children, eq, value)
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindParamDecl, span, children...), true
}

// parsePortList parses a module/interface/program port list, ANSI style:
// `(direction? type? name dims? (= default)?, ...)`.
func (p *Parser) parsePortList() (syntax.NodeID, bool) {
	open := p.bump()
	items, delims := p.parseSeparatedList(token.Comma, ItemSpec{
		IsPossibleItem: func(k token.Kind) bool {
			return k == token.KwInput || k == token.KwOutput || k == token.KwInout || k == token.KwRef ||
				isPossibleDataType(k) || k == token.Dot
		},
		IsEndOfList:  func(k token.Kind) bool { return k == token.RParen },
		ExpectedCode: diag.SynBadPortDirection,
		ExpectedMsg:  "expected a port declaration",
		ParseItem:    func() (syntax.NodeID, bool) { return p.parsePortDecl() },
	})
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close port list")
	children := append([]syntax.NodeID{open}, items...)
	children = append(children, delims...)
	children = append(children, closeTok)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindArgList, span, children...), true
}

func (p *Parser) parsePortDecl() (syntax.NodeID, bool) {
	if p.at(token.Dot) {
		// `.name(expr)` implicit port connection form used in instance
		// port lists; reused here so parsePortList can also parse an
		// instance's own connection list via the same combinator.
		return p.parseArgument(exprContext{})
	}
	var children []syntax.NodeID
	if p.atAny(token.KwInput, token.KwOutput, token.KwInout, token.KwRef) {
		children = append(children, p.bump())
	}
	if isPossibleDataType(p.peek().Kind) && p.peek2().Kind != token.Comma && p.peek2().Kind != token.RParen && p.peek2().Kind != token.Assign {
		ty, ok := p.ParseDataType()
		if ok {
			children = append(children, ty)
		}
	}
	name := p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a port name")
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
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindPortDecl, span, children...), true
}
