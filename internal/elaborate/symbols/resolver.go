package symbols

import (
	"svfront/internal/diag"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/token"
)

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Reporter diag.Reporter
}

// Resolver walks one or more syntax trees, declaring scopes and symbols
// into a shared Table. It is the declaration pass: it does not evaluate
// types or constants (that is component J's job), only establishes what
// names exist where.
type Resolver struct {
	table    *Table
	tree     *syntax.Tree
	buffer   sourcemap.BufferID
	reporter diag.Reporter
	stack    []ScopeID
}

// NewResolver creates a Resolver over tree (from buffer), declaring
// symbols into table.
func NewResolver(table *Table, tree *syntax.Tree, buffer sourcemap.BufferID, opts ResolverOptions) *Resolver {
	return &Resolver{
		table:    table,
		tree:     tree,
		buffer:   buffer,
		reporter: opts.Reporter,
		stack:    []ScopeID{table.UnitRoot()},
	}
}

func (r *Resolver) current() ScopeID { return r.stack[len(r.stack)-1] }

func (r *Resolver) push(kind ScopeKind, owner syntax.NodeID) ScopeID {
	id := r.table.Scopes.New(kind, r.current(), ScopeOwner{Buffer: r.buffer, Node: owner})
	if n := r.tree.Get(owner); n != nil {
		if sc := r.table.Scopes.Get(id); sc != nil {
			sc.Span = n.Span
		}
	}
	r.stack = append(r.stack, id)
	return id
}

func (r *Resolver) pop() { r.stack = r.stack[:len(r.stack)-1] }

func (r *Resolver) report(code diag.Code, sp sourcemap.Span, msg string) {
	if r.reporter == nil {
		return
	}
	diag.ReportError(r.reporter, code, sp, msg).Emit()
}

// intern interns tok's text, returning NoStringID for a synthesized
// (Missing) name token.
func (r *Resolver) intern(tokID syntax.NodeID) sourcemap.StringID {
	tok, ok := r.tree.Token(tokID)
	if !ok || tok.Missing {
		return sourcemap.NoStringID
	}
	return r.table.Strings.Intern(tok.Text)
}

func (r *Resolver) nodeSpan(id syntax.NodeID) sourcemap.Span {
	if n := r.tree.Get(id); n != nil {
		return n.Span
	}
	return sourcemap.Span{}
}

// declare records a fresh symbol in the current scope, reporting
// SemaDuplicateSymbol when the name already denotes a non-overloadable
// declaration in the same scope. Functions/tasks are not overloaded in
// SystemVerilog, so any same-scope re-declaration is a conflict; the one
// deliberate exception is a generate-block label reused for both an
// unnamed block's synthesized name and an explicit one, which the
// generate-construct walker handles by simply not calling declare twice.
func (r *Resolver) declare(scope ScopeID, sym Symbol) SymbolID {
	if sym.Name != sourcemap.NoStringID {
		if sc := r.table.Scopes.Get(scope); sc != nil {
			if existing := sc.NameIndex[sym.Name]; len(existing) > 0 {
				r.report(diag.SemaDuplicateSymbol, sym.Span, "duplicate symbol '"+r.table.Strings.MustLookup(sym.Name)+"' in this scope")
			}
		}
	}
	return r.table.Declare(scope, sym)
}

// ResolveCompilationUnit walks the whole tree rooted at root, which must be
// a KindCompilationUnit node, declaring every design unit, package, and
// their members.
func (r *Resolver) ResolveCompilationUnit(root syntax.NodeID) {
	n := r.tree.Get(root)
	if n == nil || n.Kind != syntax.KindCompilationUnit {
		return
	}
	for _, child := range n.Children {
		r.resolveDesignUnit(child)
	}
}

func (r *Resolver) resolveDesignUnit(id syntax.NodeID) {
	n := r.tree.Get(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.KindModuleDecl:
		r.resolveModuleLike(id, SymbolModule, ScopeModule)
	case syntax.KindInterfaceDecl:
		r.resolveModuleLike(id, SymbolInterface, ScopeInterface)
	case syntax.KindProgramDecl:
		r.resolveModuleLike(id, SymbolProgram, ScopeProgram)
	case syntax.KindPackageDecl:
		r.resolvePackage(id)
	case syntax.KindClassDecl:
		r.resolveClass(id)
	}
}

// headerName finds the first KindToken Ident child of a design-unit node,
// which by construction (unit.go's parseModuleLike/parsePackageDecl/
// parseClassDecl) is always the second child, right after the opening
// keyword; attribute instances are attached to the member they precede, not
// to the design unit itself, so no attribute-skipping is needed here.
func (r *Resolver) headerName(n *syntax.Node) syntax.NodeID {
	for _, c := range n.Children {
		if t, ok := r.tree.Token(c); ok && t.Kind == token.Ident {
			return c
		}
	}
	return syntax.NoNodeID
}

func (r *Resolver) resolveModuleLike(id syntax.NodeID, kind SymbolKind, scopeKind ScopeKind) {
	n := r.tree.Get(id)
	nameNode := r.headerName(n)
	name := r.intern(nameNode)

	outer := r.current()
	sym := Symbol{Name: name, Kind: kind, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer, Node: id}}
	symID := r.declare(outer, sym)

	bodyScope := r.push(scopeKind, id)
	if name != sourcemap.NoStringID {
		r.table.DeclareModuleRoot(name, bodyScope)
	}
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	for _, c := range n.Children {
		r.resolveMember(c)
	}
	r.pop()
}

func (r *Resolver) resolvePackage(id syntax.NodeID) {
	n := r.tree.Get(id)
	nameNode := r.headerName(n)
	name := r.intern(nameNode)

	sym := Symbol{Name: name, Kind: SymbolPackage, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer, Node: id}}
	symID := r.declare(r.current(), sym)

	bodyScope := r.push(ScopePackage, id)
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	if name != sourcemap.NoStringID {
		r.table.DeclarePackage(name, symID)
	}
	for _, c := range n.Children {
		r.resolveMember(c)
	}
	r.pop()
}

func (r *Resolver) resolveClass(id syntax.NodeID) {
	n := r.tree.Get(id)
	nameNode := r.headerName(n)
	name := r.intern(nameNode)

	sym := Symbol{Name: name, Kind: SymbolClass, Span: n.Span, Decl: SymbolDecl{Buffer: r.buffer, Node: id}}
	symID := r.declare(r.current(), sym)

	bodyScope := r.push(ScopeClass, id)
	if s := r.table.Symbols.Get(symID); s != nil {
		s.Owns = bodyScope
	}
	for _, c := range n.Children {
		r.resolveMember(c)
	}
	r.pop()
}
