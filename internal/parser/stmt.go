package parser

import (
	"svfront/internal/diag"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// ParseStatement is the parseStatement entry point.
func (p *Parser) ParseStatement() (syntax.NodeID, bool) {
	if !p.enterDepth() {
		defer p.exitDepth()
		return p.tree.NewMissing(p.diagSpan()), false
	}
	defer p.exitDepth()

	switch k := p.peek().Kind; {
	case k == token.KwBegin:
		return p.parseBlockStmt()
	case k == token.KwFork:
		return p.parseForkStmt()
	case k == token.KwIf:
		return p.parseIfStmt()
	case k == token.KwCase, k == token.KwCasex, k == token.KwCasez:
		return p.parseCaseStmt()
	case k == token.KwFor:
		return p.parseForStmt()
	case k == token.KwForeach:
		return p.parseForeachStmt()
	case k == token.KwWhile:
		return p.parseWhileStmt()
	case k == token.KwDo:
		return p.parseDoWhileStmt()
	case k == token.KwRepeat:
		return p.parseRepeatStmt()
	case k == token.KwForever:
		return p.parseForeverStmt()
	case k == token.At:
		return p.parseEventControlStmt()
	case k == token.Hash:
		return p.parseDelayControlStmt()
	case k == token.KwAssert, k == token.KwAssume, k == token.KwCover:
		return p.parseAssertionStmt()
	case k == token.Ident && p.peek().Text == "restrict":
		return p.parseAssertionStmt()
	case k == token.KwReturn, k == token.KwBreak, k == token.KwContinue, k == token.KwDisable:
		return p.parseJumpStmt()
	case k == token.Semicolon:
		semi := p.bump()
		span := syntax.CoverChildren(p.tree, semi)
		return p.tree.NewNode(syntax.KindNullStmt, span, semi), true
	default:
		return p.parseExprOrAssignStmt()
	}
}

func isPossibleStatement(k token.Kind) bool {
	switch k {
	case token.KwBegin, token.KwFork, token.KwIf, token.KwCase, token.KwCasex, token.KwCasez,
		token.KwFor, token.KwForeach, token.KwWhile, token.KwDo, token.KwRepeat, token.KwForever,
		token.At, token.Hash, token.KwAssert, token.KwAssume, token.KwCover,
		token.KwReturn, token.KwBreak, token.KwContinue, token.KwDisable, token.Semicolon:
		return true
	default:
		return isPossibleAssignmentPatternMember(k)
	}
}

func isBlockTerminator(k token.Kind) bool {
	switch k {
	case token.KwEnd, token.KwJoin, token.KwJoinAny, token.KwJoinNone, token.EOF:
		return true
	default:
		return false
	}
}

// parseBlockStmt parses `[label:] begin [: label] stmt* end [: label]`.
func (p *Parser) parseBlockStmt() (syntax.NodeID, bool) {
	begin := p.bump()
	children := []syntax.NodeID{begin}
	label := syntax.NoNodeID
	if p.at(token.Colon) {
		children = append(children, p.bump())
		label = p.expect(token.Ident, diag.SynExpectedIdentifier, "expected a block name after ':'")
		children = append(children, label)
	}
	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleStatement,
		IsEndOfList:    isBlockTerminator,
		ExpectedCode:   diag.SynUnexpectedToken,
		ExpectedMsg:    "expected a statement",
		ParseItem:      func() (syntax.NodeID, bool) { return p.ParseStatement() },
	})
	children = append(children, body...)
	end := p.expect(token.KwEnd, diag.SynUnbalancedBeginEnd, "expected 'end' to close 'begin' block")
	children = append(children, end)
	if p.at(token.Colon) {
		children = append(children, p.bump())
		children = append(children, p.expectEndLabel(label, "a block name"))
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindBlockStmt, span, children...), true
}

// parseForkStmt parses `fork stmt* join[_any|_none]`.
func (p *Parser) parseForkStmt() (syntax.NodeID, bool) {
	fork := p.bump()
	children := []syntax.NodeID{fork}
	body := p.parseItemSequence(ItemSpec{
		IsPossibleItem: isPossibleStatement,
		IsEndOfList:    isBlockTerminator,
		ExpectedCode:   diag.SynUnexpectedToken,
		ExpectedMsg:    "expected a statement",
		ParseItem:      func() (syntax.NodeID, bool) { return p.ParseStatement() },
	})
	children = append(children, body...)
	if p.atAny(token.KwJoin, token.KwJoinAny, token.KwJoinNone) {
		children = append(children, p.bump())
	} else {
		children = append(children, p.expect(token.KwJoin, diag.SynUnbalancedBeginEnd, "expected 'join', 'join_any', or 'join_none' to close 'fork'"))
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindBlockStmt, span, children...), true
}

func (p *Parser) parseIfStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'if'")
	cond, ok := p.ParseExpression()
	if !ok {
		return cond, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after if condition")
	thenStmt, ok := p.ParseStatement()
	if !ok {
		return thenStmt, false
	}
	children := []syntax.NodeID{kw, open, cond, closeTok, thenStmt}
	if p.at(token.KwElse) {
		elseKw := p.bump()
		elseStmt, ok := p.ParseStatement()
		if ok {
			children = append(children, elseKw, elseStmt)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindIfStmt, span, children...), true
}

func (p *Parser) parseCaseStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'case'")
	selector, ok := p.ParseExpression()
	if !ok {
		return selector, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after case selector")
	children := []syntax.NodeID{kw, open, selector, closeTok}
	items := p.parseItemSequence(ItemSpec{
		IsPossibleItem: func(k token.Kind) bool { return isPossibleAssignmentPatternMember(k) || k == token.KwDefault },
		IsEndOfList:    func(k token.Kind) bool { return k == token.KwEndcase || k == token.EOF },
		ExpectedCode:   diag.SynBadGenerateItem,
		ExpectedMsg:    "expected a case item",
		ParseItem:      func() (syntax.NodeID, bool) { return p.parseCaseItem() },
	})
	children = append(children, items...)
	children = append(children, p.expect(token.KwEndcase, diag.SynUnbalancedBeginEnd, "expected 'endcase'"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindCaseStmt, span, children...), true
}

// parseCaseItem parses `expr, expr : stmt` or `default [:] stmt`.
func (p *Parser) parseCaseItem() (syntax.NodeID, bool) {
	var children []syntax.NodeID
	if p.at(token.KwDefault) {
		children = append(children, p.bump())
	} else {
		labels, delims := p.parseSeparatedList(token.Comma, exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() }))
		children = append(children, labels...)
		children = append(children, delims...)
	}
	children = append(children, p.expect(token.Colon, diag.SynExpectedToken, "expected ':' in case item"))
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	children = append(children, body)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindCaseItem, span, children...), true
}

func (p *Parser) parseForStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'for'")
	children := []syntax.NodeID{kw, open}

	initSpec := exprListSpec(func() (syntax.NodeID, bool) { return p.parseForInit() })
	initSpec.IsEndOfList = func(k token.Kind) bool { return k == token.Semicolon }
	inits, initDelims := p.parseSeparatedList(token.Comma, initSpec)
	children = append(children, inits...)
	children = append(children, initDelims...)
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after for-loop initializer"))

	if !p.at(token.Semicolon) {
		cond, ok := p.ParseExpression()
		if ok {
			children = append(children, cond)
		}
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after for-loop condition"))

	stepSpec := exprListSpec(func() (syntax.NodeID, bool) { return p.ParseExpression() })
	stepSpec.IsEndOfList = func(k token.Kind) bool { return k == token.RParen }
	steps, stepDelims := p.parseSeparatedList(token.Comma, stepSpec)
	children = append(children, steps...)
	children = append(children, stepDelims...)
	children = append(children, p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for-loop header"))

	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	children = append(children, body)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindForStmt, span, children...), true
}

// parseForInit parses one for-loop initializer clause, which is either a
// full variable declaration (`int i = 0`) or a plain assignment
// (`i = 0`); both shapes are folded into the same assignment-expression
// production so the binder tells them apart by whether the left side
// names a fresh type.
func (p *Parser) parseForInit() (syntax.NodeID, bool) {
	return p.ParseExpression()
}

func (p *Parser) parseForeachStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'foreach'")
	arrayName, ok := p.ParseExpression()
	if !ok {
		return arrayName, false
	}
	children := []syntax.NodeID{kw, open, arrayName}
	if p.at(token.LBracket) {
		bopen := p.bump()
		idx, delims := p.parseSeparatedList(token.Comma, ItemSpec{
			IsPossibleItem: func(k token.Kind) bool { return k.IsIdent() || k == token.Star },
			IsEndOfList:    func(k token.Kind) bool { return k == token.RBracket },
			ExpectedCode:   diag.SynExpectedIdentifier,
			ExpectedMsg:    "expected a loop index variable",
			ParseItem:      func() (syntax.NodeID, bool) { return p.ParsePostfixIndex() },
		})
		bclose := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close foreach index list")
		children = append(children, bopen)
		children = append(children, idx...)
		children = append(children, delims...)
		children = append(children, bclose)
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close foreach header")
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	children = append(children, closeTok, body)
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindForeachStmt, span, children...), true
}

// ParsePostfixIndex parses one foreach index name (an identifier, or a
// bare '*' standing for "all remaining dimensions").
func (p *Parser) ParsePostfixIndex() (syntax.NodeID, bool) {
	tok := p.bump()
	span := syntax.CoverChildren(p.tree, tok)
	return p.tree.NewNode(syntax.KindIdentExpr, span, tok), true
}

func (p *Parser) parseWhileStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'while'")
	cond, ok := p.ParseExpression()
	if !ok {
		return cond, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after while condition")
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, kw, open, cond, closeTok, body)
	return p.tree.NewNode(syntax.KindWhileStmt, span, kw, open, cond, closeTok, body), true
}

func (p *Parser) parseDoWhileStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	whileKw := p.expect(token.KwWhile, diag.SynExpectedToken, "expected 'while' after 'do' body")
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'while'")
	cond, ok := p.ParseExpression()
	if !ok {
		return cond, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after do-while condition")
	semi := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after do-while statement")
	span := syntax.CoverChildren(p.tree, kw, body, whileKw, open, cond, closeTok, semi)
	return p.tree.NewNode(syntax.KindDoWhileStmt, span, kw, body, whileKw, open, cond, closeTok, semi), true
}

func (p *Parser) parseRepeatStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'repeat'")
	count, ok := p.ParseExpression()
	if !ok {
		return count, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after repeat count")
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, kw, open, count, closeTok, body)
	return p.tree.NewNode(syntax.KindRepeatStmt, span, kw, open, count, closeTok, body), true
}

func (p *Parser) parseForeverStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, kw, body)
	return p.tree.NewNode(syntax.KindForeverStmt, span, kw, body), true
}

// parseEventControlStmt parses `@(event-expr) stmt`, `@* stmt`, or
// `@identifier stmt`.
func (p *Parser) parseEventControlStmt() (syntax.NodeID, bool) {
	at := p.bump()
	children := []syntax.NodeID{at}
	switch {
	case p.at(token.Star):
		children = append(children, p.bump())
	case p.at(token.LParen):
		open := p.bump()
		children = append(children, open)
		if !p.at(token.Star) {
			expr, ok := p.parseEventExpression()
			if ok {
				children = append(children, expr)
			}
		} else {
			children = append(children, p.bump())
		}
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close event control")
		children = append(children, closeTok)
	default:
		name, ok := p.ParseExpression()
		if ok {
			children = append(children, name)
		}
	}
	ctrl := p.tree.NewNode(syntax.KindEventControl, syntax.CoverChildren(p.tree, children...), children...)
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, ctrl, body)
	return p.tree.NewNode(syntax.KindTimingControlStmt, span, ctrl, body), true
}

// parseEventExpression parses an `edge-spec expr (or|,) ...` chain; "or"
// here is a contextual separator, not a reserved keyword, so it is
// recognized by inspecting an identifier token's text rather than a
// dedicated token kind.
func (p *Parser) parseEventExpression() (syntax.NodeID, bool) {
	children := []syntax.NodeID{}
	first, ok := p.parseEventTerm()
	if !ok {
		return first, false
	}
	children = append(children, first)
	for {
		if p.atAny(token.Comma) || (p.at(token.Ident) && p.peek().Text == "or") {
			children = append(children, p.bump())
			term, ok := p.parseEventTerm()
			if !ok {
				break
			}
			children = append(children, term)
			continue
		}
		break
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindEventControl, span, children...), true
}

func (p *Parser) parseEventTerm() (syntax.NodeID, bool) {
	var edge syntax.NodeID
	if p.atAny(token.KwPosedge, token.KwNegedge, token.KwEdge) {
		edge = p.bump()
	}
	expr, ok := p.ParseExpression()
	if !ok {
		return expr, false
	}
	if edge.IsValid() {
		span := syntax.CoverChildren(p.tree, edge, expr)
		return p.tree.NewNode(syntax.KindUnaryExpr, span, edge, expr), true
	}
	return expr, true
}

// parseDelayControlStmt parses `#delay stmt`.
func (p *Parser) parseDelayControlStmt() (syntax.NodeID, bool) {
	hash := p.bump()
	amount, ok := p.parsePrimary(exprContext{})
	if !ok {
		return amount, false
	}
	ctrl := p.tree.NewNode(syntax.KindDelayControl, syntax.CoverChildren(p.tree, hash, amount), hash, amount)
	body, ok := p.ParseStatement()
	if !ok {
		return body, false
	}
	span := syntax.CoverChildren(p.tree, ctrl, body)
	return p.tree.NewNode(syntax.KindTimingControlStmt, span, ctrl, body), true
}

// parseAssertionStmt parses `assert|assume|cover|restrict property(expr) stmt [else stmt]`
// or the plain immediate `assert (expr) stmt [else stmt]` form.
func (p *Parser) parseAssertionStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	kind := syntax.KindAssertStmt
	switch t, _ := p.tree.Token(kw); t.Kind {
	case token.KwAssume:
		kind = syntax.KindAssumeStmt
	case token.KwCover:
		kind = syntax.KindCoverStmt
	case token.Ident:
		kind = syntax.KindRestrictStmt
	}
	children := []syntax.NodeID{kw}
	if p.at(token.KwProperty) {
		children = append(children, p.bump())
	}
	open := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after assertion keyword")
	cond, ok := p.ParseExpression()
	if !ok {
		return cond, false
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after assertion condition")
	children = append(children, open, cond, closeTok)
	if isPossibleStatement(p.peek().Kind) {
		action, ok := p.ParseStatement()
		if ok {
			children = append(children, action)
		}
	} else {
		children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after assertion"))
	}
	if p.at(token.KwElse) {
		elseKw := p.bump()
		elseStmt, ok := p.ParseStatement()
		if ok {
			children = append(children, elseKw, elseStmt)
		}
	}
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(kind, span, children...), true
}

func (p *Parser) parseJumpStmt() (syntax.NodeID, bool) {
	kw := p.bump()
	children := []syntax.NodeID{kw}
	kwTok, _ := p.tree.Token(kw)
	if kwTok.Kind == token.KwReturn && !p.at(token.Semicolon) {
		value, ok := p.ParseExpression()
		if ok {
			children = append(children, value)
		}
	}
	if kwTok.Kind == token.KwDisable {
		name, ok := p.ParseExpression()
		if ok {
			children = append(children, name)
		}
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after jump statement"))
	span := syntax.CoverChildren(p.tree, children...)
	return p.tree.NewNode(syntax.KindJumpStmt, span, children...), true
}

// parseExprOrAssignStmt parses a blocking/nonblocking/compound assignment
// or a bare call/expression statement, all of which share one expression
// grammar and are told apart by which operator (if any) follows the
// left-hand side.
func (p *Parser) parseExprOrAssignStmt() (syntax.NodeID, bool) {
	left, ok := p.parseTernary(exprContext{procedural: true})
	if !ok {
		return left, false
	}
	if isAssignOp(p.peek().Kind) {
		op := p.bump()
		right, ok := p.ParseExpression()
		if !ok {
			return left, false
		}
		semi := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after assignment")
		span := syntax.CoverChildren(p.tree, left, op, right, semi)
		assign := p.tree.NewNode(syntax.KindBinaryExpr, syntax.CoverChildren(p.tree, left, op, right), left, op, right)
		return p.tree.NewNode(syntax.KindAssignStmt, span, assign, semi), true
	}
	semi := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after expression statement")
	span := syntax.CoverChildren(p.tree, left, semi)
	return p.tree.NewNode(syntax.KindExprStmt, span, left, semi), true
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.Assign, token.LtEq, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign,
		token.ShlAssign, token.ShrAssign, token.SShlAssign, token.SShrAssign:
		return true
	default:
		return false
	}
}
