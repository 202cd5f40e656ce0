package symbols

import (
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// resolveMember declares whatever symbols a single design-unit member
// introduces, and recurses into constructs (generate regions, procedural
// blocks, subroutines) that carry their own nested members or statements.
func (r *Resolver) resolveMember(id syntax.NodeID) {
	n := r.tree.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.KindPortDecl:
		r.resolveSingleDeclarator(n, SymbolPort, SymbolFlagAnsiPort)
	case syntax.KindParamDecl:
		r.resolveParamDecl(n)
	case syntax.KindVarDecl:
		r.resolveVarOrInstanceDecl(n)
	case syntax.KindInstanceDecl:
		r.resolveVarOrInstanceDecl(n)
	case syntax.KindTypedefDecl:
		r.resolveTypedefDecl(n)
	case syntax.KindImportDecl:
		r.resolveImportDecl(n)
	case syntax.KindGenerateRegion:
		for _, c := range n.Children {
			r.resolveMember(c)
		}
	case syntax.KindGenerateIf:
		r.resolveGenerateIf(n)
	case syntax.KindGenerateFor:
		r.resolveGenerateFor(n)
	case syntax.KindGenerateCase:
		r.resolveGenerateCase(n)
	case syntax.KindAlwaysBlock, syntax.KindInitialBlock, syntax.KindFinalBlock:
		// Procedural blocks introduce no symbol of their own; the single
		// statement they wrap is walked only for nested named blocks
		// (begin : label ... end), which do get a name.
		if len(n.Children) > 1 {
			r.resolveStatementScopes(n.Children[len(n.Children)-1])
		}
	case syntax.KindSubroutineDecl:
		r.resolveSubroutineDecl(n)
	case syntax.KindClockingBlock:
		r.resolveClockingBlock(n)
	case syntax.KindCovergroupDecl:
		r.resolveCovergroupDecl(n)
	case syntax.KindPropertyDecl:
		r.declareVerifBlock(n, SymbolProperty)
	case syntax.KindSequenceDecl:
		r.declareVerifBlock(n, SymbolSequence)
	case syntax.KindAttributeInstance, syntax.KindAssignStmt:
		// Attribute instances attach to a following member and declare
		// nothing themselves; continuous assigns reference existing nets
		// only, so nothing new is declared here either.
	}
}

// declaratorNames returns, for every direct child of n that is either a
// bare identifier token or a KindPatternExpr declarator item (the
// multi-declarator form used by parseInstanceOrVarDecl), the node holding
// the declared name.
func (r *Resolver) declaratorNames(n *syntax.Node) []syntax.NodeID {
	var names []syntax.NodeID
	for _, c := range n.Children {
		if t, ok := r.tree.Token(c); ok && t.Kind == token.Ident {
			names = append(names, c)
			continue
		}
		if item := r.tree.Get(c); item != nil && item.Kind == syntax.KindPatternExpr && len(item.Children) > 0 {
			if t, ok := r.tree.Token(item.Children[0]); ok && t.Kind == token.Ident {
				names = append(names, item.Children[0])
			}
		}
	}
	return names
}

// isInstanceItem reports whether a KindPatternExpr declarator is an
// instance connection list (name immediately followed by '(') rather than
// a plain variable declarator, per §4.H's deferred instance/variable
// ambiguity.
func (r *Resolver) isInstanceItem(item *syntax.Node) bool {
	if item.Kind != syntax.KindPatternExpr || len(item.Children) < 2 {
		return false
	}
	t, ok := r.tree.Token(item.Children[1])
	return ok && t.Kind == token.LParen
}

func (r *Resolver) firstTypeRef(n *syntax.Node) syntax.NodeID {
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind == syntax.KindTypeRef {
			return c
		}
	}
	return syntax.NoNodeID
}

// typeName returns the leading identifier or keyword text of a KindTypeRef
// node, used both to spot net-type keywords (wire, tri, ...) and to record
// the module/interface name an instance declarator refers to.
func (r *Resolver) typeName(typeRef syntax.NodeID) string {
	n := r.tree.Get(typeRef)
	if n == nil || len(n.Children) == 0 {
		return ""
	}
	t, ok := r.tree.Token(n.Children[0])
	if !ok {
		return ""
	}
	return t.Text
}

func isNetTypeKeyword(text string) bool {
	switch text {
	case "wire", "wand", "wor", "tri", "tri0", "tri1", "supply0", "supply1", "uwire":
		return true
	default:
		return false
	}
}

func (r *Resolver) resolveSingleDeclarator(n *syntax.Node, kind SymbolKind, flags SymbolFlags) {
	names := r.declaratorNames(n)
	typeRef := r.firstTypeRef(n)
	for _, nameNode := range names {
		sym := Symbol{
			Name:  r.intern(nameNode),
			Kind:  kind,
			Span:  n.Span,
			Flags: flags,
			Decl:  SymbolDecl{Buffer: r.buffer, Declarator: nameNode, TypeNode: typeRef},
		}
		r.declare(r.current(), sym)
	}
}

func (r *Resolver) resolveParamDecl(n *syntax.Node) {
	// parseParamDeclMember wraps one-or-more KindParamDecl children under
	// an outer KindParamDecl when more than one parameter shares a
	// "parameter"/"localparam" keyword; a lone parameter is its own node
	// with no nested KindParamDecl child, so both shapes are handled by
	// looking for nested param decls first and falling back to n itself.
	var nested []syntax.NodeID
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind == syntax.KindParamDecl {
			nested = append(nested, c)
		}
	}
	if len(nested) == 0 {
		r.declareOneParam(n)
		return
	}
	for _, c := range nested {
		if cn := r.tree.Get(c); cn != nil {
			r.declareOneParam(cn)
		}
	}
}

func (r *Resolver) declareOneParam(n *syntax.Node) {
	names := r.declaratorNames(n)
	if len(names) == 0 {
		return
	}
	flags := SymbolFlags(0)
	if len(n.Children) > 0 {
		if t, ok := r.tree.Token(n.Children[0]); ok && t.Kind == token.KwLocalparam {
			flags |= SymbolFlagLocalParam
		}
	}
	sym := Symbol{
		Name:  r.intern(names[0]),
		Kind:  SymbolParameter,
		Span:  n.Span,
		Flags: flags,
		Decl: SymbolDecl{
			Buffer:      r.buffer,
			Declarator:  names[0],
			TypeNode:    r.firstTypeRef(n),
			Initializer: r.initializerExpr(n),
		},
	}
	r.declare(r.current(), sym)
}

// initializerExpr returns the expression following a direct '=' child of n,
// the shape a parameter declarator (and a variable declarator with a
// default value) both produce, or NoNodeID if n carries none.
func (r *Resolver) initializerExpr(n *syntax.Node) syntax.NodeID {
	for i, c := range n.Children {
		if t, ok := r.tree.Token(c); ok && t.Kind == token.Assign && i+1 < len(n.Children) {
			return n.Children[i+1]
		}
	}
	return syntax.NoNodeID
}

func (r *Resolver) resolveVarOrInstanceDecl(n *syntax.Node) {
	typeRef := r.firstTypeRef(n)
	tyName := r.typeName(typeRef)
	for _, c := range n.Children {
		var item *syntax.Node
		var nameNode syntax.NodeID
		if pe := r.tree.Get(c); pe != nil && pe.Kind == syntax.KindPatternExpr && len(pe.Children) > 0 {
			item = pe
			nameNode = pe.Children[0]
		} else if t, ok := r.tree.Token(c); ok && t.Kind == token.Ident {
			nameNode = c
		} else {
			continue
		}

		kind := SymbolVariable
		var moduleName sourcemap.StringID
		switch {
		case n.Kind == syntax.KindInstanceDecl:
			kind = SymbolInstance
			moduleName = r.table.Strings.Intern(tyName)
		case n.Kind == syntax.KindVarDecl && item != nil && r.isInstanceItem(item):
			kind = SymbolInstance
			moduleName = r.table.Strings.Intern(tyName)
		case isNetTypeKeyword(tyName):
			kind = SymbolNet
		case tyName == "genvar":
			kind = SymbolGenvar
		}

		sym := Symbol{
			Name:       r.intern(nameNode),
			Kind:       kind,
			Span:       n.Span,
			Decl:       SymbolDecl{Buffer: r.buffer, Declarator: nameNode, TypeNode: typeRef},
			ModuleName: moduleName,
		}
		r.declare(r.current(), sym)
	}
}

func (r *Resolver) resolveTypedefDecl(n *syntax.Node) {
	names := r.declaratorNames(n)
	if len(names) == 0 {
		return
	}
	sym := Symbol{
		Name: r.intern(names[0]),
		Kind: SymbolTypedef,
		Span: n.Span,
		Decl: SymbolDecl{Buffer: r.buffer, Declarator: names[0], TypeNode: r.firstTypeRef(n)},
	}
	r.declare(r.current(), sym)
}

// resolveImportDecl handles both `import pkg::name;` (an explicit alias
// declared into the current scope) and `import pkg::*;` (a wildcard import
// consulted only after this scope's own members are exhausted).
func (r *Resolver) resolveImportDecl(n *syntax.Node) {
	for _, c := range n.Children {
		item := r.tree.Get(c)
		if item == nil || item.Kind != syntax.KindImportDecl || len(item.Children) < 3 {
			continue
		}
		pkgTok, ok := r.tree.Token(item.Children[0])
		if !ok {
			continue
		}
		pkgName := r.table.Strings.Intern(pkgTok.Text)
		pkgSym, _ := r.table.Package(pkgName)

		last := item.Children[2]
		if t, ok := r.tree.Token(last); ok && t.Kind == token.Star {
			if sc := r.table.Scopes.Get(r.current()); sc != nil {
				sc.WildcardImports = append(sc.WildcardImports, pkgSym)
			}
			continue
		}
		sym := Symbol{
			Name:     r.intern(last),
			Kind:     SymbolImport,
			Span:     item.Span,
			Decl:     SymbolDecl{Buffer: r.buffer, Declarator: last},
			Requires: []SymbolID{pkgSym},
		}
		r.declare(r.current(), sym)
	}
}

func (r *Resolver) resolveGenerateIf(n *syntax.Node) {
	// Children (see parser/generate.go): [if, (, cond, ), thenBranch,
	// (else, elseBranch)?]. Both branches are generate blocks, each
	// getting its own generate scope so a genvar-conditioned name clash
	// between the two arms is not an error.
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind.IsMember() {
			r.resolveGenerateBranch(c)
		}
	}
}

func (r *Resolver) resolveGenerateBranch(id syntax.NodeID) {
	r.push(ScopeGenerate, id)
	r.resolveMember(id)
	r.pop()
}

func (r *Resolver) resolveGenerateFor(n *syntax.Node) {
	r.push(ScopeGenerate, syntax.NoNodeID)
	// The loop's genvar initializer (`genvar i = 0` or a bare `i = 0`
	// reusing an outer genvar) is parsed as an ordinary expression by
	// parseForInit, so no new symbol is declared for it here; only the
	// loop body's own members are.
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind.IsMember() {
			r.resolveMember(c)
		}
	}
	r.pop()
}

func (r *Resolver) resolveGenerateCase(n *syntax.Node) {
	for _, c := range n.Children {
		cn := r.tree.Get(c)
		if cn == nil || cn.Kind != syntax.KindCaseItem {
			continue
		}
		for _, ic := range cn.Children {
			if icn := r.tree.Get(ic); icn != nil && icn.Kind.IsMember() {
				r.resolveGenerateBranch(ic)
			}
		}
	}
}

// subroutineName returns the declared name of a function/task, which is
// the LAST identifier in the `Ident ('::' Ident)*` chain that follows the
// return type: a plain `function void f();` has a one-element chain, but
// an out-of-class method definition `function void C::f();` chains through
// the class name first, and only the final segment is the method's own
// name.
func (r *Resolver) subroutineName(n *syntax.Node) syntax.NodeID {
	var chain []syntax.NodeID
	inChain := false
	for _, c := range n.Children {
		t, ok := r.tree.Token(c)
		if !ok {
			if inChain {
				break
			}
			continue
		}
		switch t.Kind {
		case token.Ident:
			chain = append(chain, c)
			inChain = true
		case token.ColonColon:
			// stay in the chain
		default:
			if inChain {
				goto done
			}
		}
	}
done:
	if len(chain) == 0 {
		return syntax.NoNodeID
	}
	return chain[len(chain)-1]
}

func (r *Resolver) resolveSubroutineDecl(n *syntax.Node) {
	nameNode := r.subroutineName(n)
	kind := SymbolFunction
	for _, c := range n.Children {
		if t, ok := r.tree.Token(c); ok {
			if t.Kind == token.KwTask {
				kind = SymbolTask
				break
			}
			if t.Kind == token.KwFunction {
				break
			}
		}
	}
	sym := Symbol{Name: r.intern(nameNode), Kind: kind, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer}}
	symID := r.declare(r.current(), sym)

	bodyScope := r.push(ScopeSubroutine, syntax.NoNodeID)
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	for _, c := range n.Children {
		cn := r.tree.Get(c)
		if cn == nil {
			continue
		}
		if cn.Kind == syntax.KindSubroutineParam {
			r.declareSubroutineParam(cn)
		} else if cn.Kind == syntax.KindVarDecl {
			r.resolveVarOrInstanceDecl(cn)
		} else if cn.Kind.IsStmt() {
			r.resolveStatementScopes(c)
		}
	}
	r.pop()
}

func (r *Resolver) declareSubroutineParam(n *syntax.Node) {
	names := r.declaratorNames(n)
	if len(names) == 0 {
		return
	}
	sym := Symbol{
		Name: r.intern(names[0]),
		Kind: SymbolVariable,
		Span: n.Span,
		Decl: SymbolDecl{Buffer: r.buffer, Declarator: names[0], TypeNode: r.firstTypeRef(n)},
	}
	r.declare(r.current(), sym)
}

// resolveStatementScopes descends into a statement tree only far enough to
// find named begin/end blocks (`begin : label ... end`), which introduce
// both a visible symbol (for hierarchical reference) and their own nested
// scope; unnamed blocks and every other statement kind carry no
// declarations under this grammar (see the block-local declaration note in
// the design ledger) and are skipped without recursion into their
// sub-statements, since they cannot themselves contain a further
// KindBlockStmt reachable without going through a statement kind already
// excluded here... except KindIfStmt/KindCaseStmt/KindForStmt/etc., which
// are walked so a named block nested a few statements deep is still found.
func (r *Resolver) resolveStatementScopes(id syntax.NodeID) {
	n := r.tree.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.KindBlockStmt:
		r.resolveNamedBlock(n)
	case syntax.KindIfStmt, syntax.KindCaseStmt, syntax.KindCaseItem, syntax.KindForStmt,
		syntax.KindForeachStmt, syntax.KindWhileStmt, syntax.KindDoWhileStmt, syntax.KindRepeatStmt,
		syntax.KindForeverStmt, syntax.KindTimingControlStmt:
		for _, c := range n.Children {
			if cn := r.tree.Get(c); cn != nil && cn.Kind.IsStmt() {
				r.resolveStatementScopes(c)
			}
		}
	}
}

func (r *Resolver) resolveNamedBlock(n *syntax.Node) {
	var label syntax.NodeID
	for i, c := range n.Children {
		if t, ok := r.tree.Token(c); ok && t.Kind == token.Colon && i+1 < len(n.Children) {
			if lt, ok := r.tree.Token(n.Children[i+1]); ok && lt.Kind == token.Ident {
				label = n.Children[i+1]
			}
			break
		}
	}
	if label.IsValid() {
		sym := Symbol{Name: r.intern(label), Kind: SymbolGenerateBlock, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer, Declarator: label}}
		symID := r.declare(r.current(), sym)
		bodyScope := r.push(ScopeBlock, syntax.NoNodeID)
		if s := r.table.Symbols.Get(symID); s != nil {
			s.Owns = bodyScope
		}
	} else {
		r.push(ScopeBlock, syntax.NoNodeID)
	}
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind.IsStmt() {
			r.resolveStatementScopes(c)
		}
	}
	r.pop()
}

func (r *Resolver) resolveClockingBlock(n *syntax.Node) {
	names := r.declaratorNames(n)
	nameNode := syntax.NoNodeID
	if len(names) > 0 {
		nameNode = names[0]
	}
	sym := Symbol{Name: r.intern(nameNode), Kind: SymbolClockingBlock, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer}}
	symID := r.declare(r.current(), sym)
	bodyScope := r.push(ScopeBlock, syntax.NoNodeID)
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind == syntax.KindPortDecl {
			r.resolveSingleDeclarator(cn, SymbolVariable, 0)
		}
	}
	r.pop()
}

func (r *Resolver) resolveCovergroupDecl(n *syntax.Node) {
	nameNode := r.headerName(n)
	sym := Symbol{Name: r.intern(nameNode), Kind: SymbolCovergroup, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer}}
	symID := r.declare(r.current(), sym)
	bodyScope := r.push(ScopeBlock, syntax.NoNodeID)
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	for _, c := range n.Children {
		cn := r.tree.Get(c)
		if cn == nil {
			continue
		}
		if cn.Kind == syntax.KindCoverpointDecl || cn.Kind == syntax.KindCoverCrossDecl {
			var label syntax.NodeID
			if t, ok := r.tree.Token(cn.Children[0]); ok && t.Kind == token.Ident {
				label = cn.Children[0]
			}
			if label.IsValid() {
				r.declare(bodyScope, Symbol{Name: r.intern(label), Kind: SymbolCoverpoint, Span: cn.Span, Decl: SymbolDecl{Buffer: r.buffer, Declarator: label}})
			}
		}
	}
	r.pop()
}

func (r *Resolver) declareVerifBlock(n *syntax.Node, kind SymbolKind) {
	nameNode := r.headerName(n)
	sym := Symbol{Name: r.intern(nameNode), Kind: kind, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer}}
	symID := r.declare(r.current(), sym)
	bodyScope := r.push(ScopeBlock, syntax.NoNodeID)
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	for _, c := range n.Children {
		if cn := r.tree.Get(c); cn != nil && cn.Kind == syntax.KindSubroutineParam {
			r.declareSubroutineParam(cn)
		}
	}
	r.pop()
}
