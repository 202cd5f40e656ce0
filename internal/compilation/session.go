package compilation

import (
	"errors"
	"fmt"

	"svfront/internal/diag"
	"svfront/internal/elaborate/binder"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/lexer"
	"svfront/internal/parser"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// ErrStatementReserved is returned by EvaluateStatement: §6 lists
// "statement" among the snippet kinds a ScriptSession may eventually
// evaluate but reserves its semantics (a bare statement has no single
// result value the way an expression, parameter, or variable initializer
// does), so no production binds it yet.
var ErrStatementReserved = errors.New("compilation: statement snippets are reserved, not yet evaluated")

// ScriptSession evaluates one snippet of source text at a time against a
// shared Compilation, the way a waveform viewer's expression box or an
// interactive `elaborate` REPL would (§6: "ScriptSession, a convenience for
// evaluating a snippet of source text as one of: a parameter declaration,
// a function declaration, a variable declaration (whose initializer is
// evaluated immediately), an expression (evaluated to a ConstantValue), or
// a statement (reserved)"). Declarations accumulate in one scratch scope
// so a later snippet can refer to a name an earlier one declared, the same
// way successive lines typed at a REPL prompt see each other's bindings.
type ScriptSession struct {
	c      *Compilation
	tree   *syntax.Tree
	scope  symbols.ScopeID
	binder *binder.Binder
	next   int
}

// NewScriptSession opens a session against c. c need not be finalized; a
// session's scratch scope is chained directly off the compilation unit
// root so ordinary name lookup (imports, package-qualified names already
// declared by c's added trees) still works from inside a snippet.
func NewScriptSession(c *Compilation) *ScriptSession {
	tree := syntax.NewTree(0)
	scope := c.table.Scopes.New(symbols.ScopeBlock, c.table.UnitRoot(), symbols.ScopeOwner{})
	return &ScriptSession{
		c:      c,
		tree:   tree,
		scope:  scope,
		binder: binder.NewBinder(tree, c.table, c.types, 0, &diag.BagReporter{Bag: c.bag}),
	}
}

// virtualBuffer interns text under a synthetic name distinct from every
// other snippet this session has parsed, so diagnostics point back at
// "which line of the session" rather than colliding on one shared name.
func (s *ScriptSession) virtualBuffer(kind, text string) sourcemap.BufferID {
	s.next++
	name := fmt.Sprintf("<script:%s:%d>", kind, s.next)
	return s.c.sm.AddVirtual(name, []byte(text))
}

func (s *ScriptSession) parse(kind, text string, produce func(*parser.Parser) (syntax.NodeID, bool)) (syntax.NodeID, bool) {
	id := s.virtualBuffer(kind, text)
	buf := s.c.sm.Get(id)
	lx := lexer.New(buf, lexer.Options{Reporter: &diag.BagReporter{Bag: s.c.bag}})
	p := parser.New(lx, s.tree, parser.Options{Reporter: &diag.BagReporter{Bag: s.c.bag}})
	return produce(p)
}

// EvaluateExpression binds and constant-evaluates text as a standalone
// expression, per §6's "expression (evaluated to a ConstantValue)" mode.
func (s *ScriptSession) EvaluateExpression(text string) (binder.Constant, error) {
	node, ok := s.parse("expr", text, func(p *parser.Parser) (syntax.NodeID, bool) { return p.ParseExpression() })
	if !ok {
		return binder.Constant{}, fmt.Errorf("compilation: could not parse expression %q", text)
	}
	n := s.tree.Get(node)
	expr := s.binder.BindExpression(s.scope, n.Span, node)
	ec := binder.NewEvalContext(s.binder)
	v := ec.Eval(expr)
	if v.Invalid() {
		return v, fmt.Errorf("compilation: %q is not a constant expression", text)
	}
	return v, nil
}

// DeclareParameter parses text as one `parameter`/`localparam` declaration,
// declares it into the session scope, and evaluates its initializer
// immediately — a parameter's value is always a constant by definition, so
// unlike a variable declaration there is no "no initializer yet" case.
func (s *ScriptSession) DeclareParameter(text string) (symbols.SymbolID, binder.Constant, error) {
	node, ok := s.parse("param", text, func(p *parser.Parser) (syntax.NodeID, bool) { return p.ParseParamDeclStatement() })
	if !ok {
		return symbols.NoSymbolID, binder.Constant{}, fmt.Errorf("compilation: could not parse parameter declaration %q", text)
	}
	decl := s.innermostParamDecl(node)
	if decl == syntax.NoNodeID {
		return symbols.NoSymbolID, binder.Constant{}, fmt.Errorf("compilation: %q declares no parameter", text)
	}
	n := s.tree.Get(decl)
	nameNode, ok := s.firstIdent(n)
	if !ok {
		return symbols.NoSymbolID, binder.Constant{}, fmt.Errorf("compilation: %q has no parameter name", text)
	}
	name, _ := s.tree.Token(nameNode)
	flags := symbols.SymbolFlags(0)
	if len(n.Children) > 0 {
		if t, ok := s.tree.Token(n.Children[0]); ok && t.Kind == token.KwLocalparam {
			flags |= symbols.SymbolFlagLocalParam
		}
	}
	sym := symbols.Symbol{
		Name:  s.c.table.Strings.Intern(name.Text),
		Kind:  symbols.SymbolParameter,
		Span:  n.Span,
		Flags: flags,
		Decl: symbols.SymbolDecl{
			Node:        decl,
			Declarator:  nameNode,
			TypeNode:    s.firstTypeRef(n),
			Initializer: s.initializerExpr(n),
		},
	}
	id := s.c.table.Declare(s.scope, sym)
	if !sym.Decl.Initializer.IsValid() {
		return id, binder.Constant{}, fmt.Errorf("compilation: parameter %q has no initializer", name.Text)
	}
	initN := s.tree.Get(sym.Decl.Initializer)
	expr := s.binder.BindExpression(s.scope, initN.Span, sym.Decl.Initializer)
	v := binder.NewEvalContext(s.binder).Eval(expr)
	return id, v, nil
}

// DeclareVariable parses text as one `type name (= init)?;` declaration,
// declares it into the session scope, and, if it carries an initializer,
// evaluates it immediately (§6: "a variable declaration, whose initializer
// is evaluated immediately"). hasInitializer reports whether an initializer was
// present at all; its absence is not an error, unlike a parameter's.
func (s *ScriptSession) DeclareVariable(text string) (id symbols.SymbolID, value binder.Constant, hasInitializer bool, err error) {
	node, ok := s.parse("var", text, func(p *parser.Parser) (syntax.NodeID, bool) { return p.ParseVarDeclStatement() })
	if !ok {
		return symbols.NoSymbolID, binder.Constant{}, false, fmt.Errorf("compilation: could not parse variable declaration %q", text)
	}
	n := s.tree.Get(node)
	nameNode, ok := s.firstIdent(n)
	if !ok {
		return symbols.NoSymbolID, binder.Constant{}, false, fmt.Errorf("compilation: %q has no variable name", text)
	}
	name, _ := s.tree.Token(nameNode)
	sym := symbols.Symbol{
		Name: s.c.table.Strings.Intern(name.Text),
		Kind: symbols.SymbolVariable,
		Span: n.Span,
		Decl: symbols.SymbolDecl{
			Node:        node,
			Declarator:  nameNode,
			TypeNode:    s.firstTypeRef(n),
			Initializer: s.initializerExpr(n),
		},
	}
	symID := s.c.table.Declare(s.scope, sym)
	if !sym.Decl.Initializer.IsValid() {
		return symID, binder.Constant{}, false, nil
	}
	initN := s.tree.Get(sym.Decl.Initializer)
	expr := s.binder.BindExpression(s.scope, initN.Span, sym.Decl.Initializer)
	v := binder.NewEvalContext(s.binder).Eval(expr)
	return symID, v, true, nil
}

// DeclareSubroutine parses text as one function/task declaration and
// declares its name into the session scope; §6 does not ask a function
// declaration snippet to be evaluated (a function body is not itself a
// constant), only bound so later snippets can call it.
func (s *ScriptSession) DeclareSubroutine(text string) (symbols.SymbolID, error) {
	node, ok := s.parse("sub", text, func(p *parser.Parser) (syntax.NodeID, bool) { return p.ParseSubroutineDeclStatement() })
	if !ok {
		return symbols.NoSymbolID, fmt.Errorf("compilation: could not parse subroutine declaration %q", text)
	}
	n := s.tree.Get(node)
	nameNode, ok := s.firstIdent(n)
	if !ok {
		return symbols.NoSymbolID, fmt.Errorf("compilation: %q has no subroutine name", text)
	}
	name, _ := s.tree.Token(nameNode)
	kind := symbols.SymbolFunction
	if len(n.Children) > 0 {
		if t, ok := s.tree.Token(n.Children[0]); ok && t.Kind == token.KwTask {
			kind = symbols.SymbolTask
		}
	}
	sym := symbols.Symbol{
		Name: s.c.table.Strings.Intern(name.Text),
		Kind: kind,
		Span: n.Span,
		Decl: symbols.SymbolDecl{Node: node, Declarator: nameNode},
	}
	return s.c.table.Declare(s.scope, sym), nil
}

// EvaluateStatement is reserved per §6 and always fails.
func (s *ScriptSession) EvaluateStatement(text string) error {
	return ErrStatementReserved
}

// innermostParamDecl unwraps the outer KindParamDecl a multi-declarator
// `parameter a = 1, b = 2;` produces down to its first nested declarator,
// mirroring symbols.Resolver's own handling of the same ambiguous shape; a
// session only ever declares the first name a snippet introduces.
func (s *ScriptSession) innermostParamDecl(id syntax.NodeID) syntax.NodeID {
	n := s.tree.Get(id)
	if n == nil {
		return syntax.NoNodeID
	}
	for _, c := range n.Children {
		if cn := s.tree.Get(c); cn != nil && cn.Kind == syntax.KindParamDecl {
			return c
		}
	}
	return id
}

// firstIdent returns the first direct child of n that is a bare
// identifier token, the declared name in every shape ParseParamDeclStatement,
// ParseVarDeclStatement, and ParseSubroutineDeclStatement produce.
func (s *ScriptSession) firstIdent(n *syntax.Node) (syntax.NodeID, bool) {
	for _, c := range n.Children {
		if t, ok := s.tree.Token(c); ok && t.Kind == token.Ident {
			return c, true
		}
	}
	return syntax.NoNodeID, false
}

func (s *ScriptSession) firstTypeRef(n *syntax.Node) syntax.NodeID {
	for _, c := range n.Children {
		if cn := s.tree.Get(c); cn != nil && cn.Kind == syntax.KindTypeRef {
			return c
		}
	}
	return syntax.NoNodeID
}

// initializerExpr returns the expression following a direct '=' child, or
// NoNodeID if n carries no initializer.
func (s *ScriptSession) initializerExpr(n *syntax.Node) syntax.NodeID {
	for i, c := range n.Children {
		if t, ok := s.tree.Token(c); ok && t.Kind == token.Assign && i+1 < len(n.Children) {
			return n.Children[i+1]
		}
	}
	return syntax.NoNodeID
}
