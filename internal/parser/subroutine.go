package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// parseSubroutineDecl parses a function or task declaration, including the
// `extern`/`pure virtual` prototype forms that have no body.
func (p *Parser) parseSubroutineDecl() (syntax.NodeID, bool) {
	var children []syntax.NodeID
	for p.atAny(token.KwExtern, token.KwPure, token.KwVirtual, token.KwStatic, token.KwLocal, token.KwProtected) {
		children = append(children, p.bump())
	}
	isTask := p.at(token.KwTask)
	var kw syntax.NodeID
	if isTask {
		kw = p.bump()
	} else {
		kw = p.expect(token.KwFunction, diag.SynExpectedToken, "expected 'function' or 'task'")
	}
	children = append(children, kw)

	if p.atAny(token.KwStatic, token.KwAutomatic) {
		children = append(children, p.bump())
	}

	if !isTask {
		if p.at(token.KwVoid) {
			children = append(children, p.bump())
		} else if isPossibleDataType(p.peek().Kind) {
			ret, ok := p.ParseDataType()
			if ok {
				children = append(children, ret)
			}
		}
	}

	var name syntax.NodeID
	if !isTask && p.at(token.KwNew) {
		// a class constructor, `function new(...)`
		name = p.bump()
	} else {
		name = p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a subroutine name")
	}
	children = append(children, name)
	for p.at(token.ColonColon) {
		children = append(children, p.bump())
		children = append(children, p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a name after '::'"))
	}

	if p.at(token.LParen) {
		open := p.bump()
		params, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: func(k token.Kind) bool {
				return k == token.KwInput || k == token.KwOutput || k == token.KwInout || k == token.KwRef || isPossibleDataType(k)
			},
			IsEndOfList:  func(k token.Kind) bool { return k == token.RParen },
			ExpectedCode: diag.SynBadPortDirection,
			ExpectedMsg:  "expected a subroutine parameter",
			ParseItem:    func() (syntax.NodeID, bool) { return p.parseSubroutineParam() },
		})
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close subroutine parameter list")
		children = append(children, open)
		children = append(children, params...)
		children = append(children, delims...)
		children = append(children, closeTok)
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after subroutine header"))

	endKw := token.KwEndfunction
	if isTask {
		endKw = token.KwEndtask
	}
	// A prototype (extern declaration, or pure virtual method) has no
	// body: the header's trailing ';' is the whole declaration.
	if wasExternOrPure(children, p.tree) {
		span := syntax.CoverChildren(p.tree, children...)
		return p.tree.NewNode(syntax.KindSubroutineDecl, span, children...), true
	}

	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return isPossibleMember(k) || isPossibleStatement(k) },
		IsEndOfList:    func(k token.Kind) bool { return k == endKw || k == token.EOF },
		ExpectedCode:   diag.SynUnexpectedToken,
		ExpectedMsg:    "expected a statement or local declaration",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseSubroutineBodyItem() },
	})
	children = append(children, body...)
	children = append(children, p.expect(endKw, diag.SynUnbalancedBeginEnd, "expected matching end keyword"))
	if p.at(token.Colon) {
		children = append(children, p.bump())
		children = append(children, p.expectEndLabel(name, "the subroutine name"))
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindSubroutineDecl, span, children...), true
}

// wasExternOrPure reports whether the header just parsed opened with
// 'extern' or 'pure', both of which mark a bodyless prototype.
func wasExternOrPure(children []syntax.NodeID, tree *syntax.Tree) bool {
	if len(children) == 0 {
		return false
	}
	t, ok := tree.Token(children[0])
	return ok && (t.Kind == token.KwExtern || t.Kind == token.KwPure)
}

// parseSubroutineBodyItem parses one item in a function/task body, which
// may be an ordinary statement or a local variable declaration; the two
// share enough starting tokens that a local declaration is tried first
// whenever the current token can only open a data type, not a statement.
func (p *Parser) parseSubroutineBodyItem() (syntax.NodeID, bool) {
	if isPossibleDataType(p.peek().Kind) && !isPossibleStatement(p.peek().Kind) {
		return p.parseVarDeclLike()
	}
	return p.ParseStatement()
}

func (p *Parser) parseSubroutineParam() (syntax.NodeID, bool) {
	var children []syntax.NodeID
	if p.atAny(token.KwInput, token.KwOutput, token.KwInout, token.KwRef) {
		children = append(children, p.bump())
	}
	if isPossibleDataType(p.peek().Kind) && p.peek2().Kind != token.Comma && p.peek2().Kind != token.RParen {
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
		if ok {
			children = append(children, eq, value)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindSubroutineParam, span, children...), true
}
