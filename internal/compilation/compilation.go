// Package compilation implements the public, language-neutral API §6
// describes: a Compilation owns every syntax tree contributing to one
// elaboration, runs the declaration pass (component H) across them exactly
// once, and accumulates every diagnostic raised along the way into one
// sorted list.
package compilation

import (
	"errors"

	"svfront/internal/diag"
	"svfront/internal/elaborate/binder"
	"svfront/internal/elaborate/symbols"
	"svfront/internal/sourcemap"
	"svfront/internal/syntax"
	"svfront/internal/types"
)

// ErrFinalized is returned by AddSyntaxTree once GetRoot has been called.
var ErrFinalized = errors.New("compilation: already finalized")

// addedTree records one contributing syntax tree pending finalization.
type addedTree struct {
	tree   *syntax.Tree
	buffer sourcemap.BufferID
}

// Compilation owns the set of syntax trees contributing to one elaboration,
// the root symbol table, the shared type interner, and the diagnostics
// accumulated across every phase (§5: "A Compilation object owns: the set
// of syntax trees... the root, the type intern tables, the definition
// map... the diagnostics accumulator").
type Compilation struct {
	sm    *sourcemap.SourceMap
	table *symbols.Table
	types *types.Interner
	bag   *diag.Bag
	trees []addedTree

	// constants holds every declared parameter/localparam, type parameter
	// and enum member's folded value, populated once by finalize's
	// constant-evaluation pass (component J) over every contributing tree;
	// genvars are not folded into it.
	constants map[symbols.SymbolID]binder.Constant

	finalized bool
}

// New creates an empty Compilation reading from sm.
func New(sm *sourcemap.SourceMap) *Compilation {
	strings := sourcemap.NewInterner()
	return &Compilation{
		sm:    sm,
		table: symbols.NewTable(symbols.Hints{}, strings),
		types: types.NewInterner(),
		bag:   diag.NewBag(4096),
	}
}

// AddSyntaxTree registers tree (parsed from buffer) as a contributor to
// this compilation. It fails once the compilation has been finalized by a
// GetRoot call, per §6: "fails if finalized".
func (c *Compilation) AddSyntaxTree(tree *syntax.Tree, buffer sourcemap.BufferID) error {
	if c.finalized {
		return ErrFinalized
	}
	c.trees = append(c.trees, addedTree{tree: tree, buffer: buffer})
	return nil
}

// GetRoot finalizes the compilation on first call, running the declaration
// pass (component H) over every added tree, and returns the compilation
// unit's root scope.
func (c *Compilation) GetRoot() symbols.ScopeID {
	if !c.finalized {
		c.finalize()
	}
	return c.table.UnitRoot()
}

func (c *Compilation) finalize() {
	c.finalized = true
	reporter := &diag.BagReporter{Bag: c.bag}
	for _, at := range c.trees {
		root := at.tree.Root()
		r := symbols.NewResolver(c.table, at.tree, at.buffer, symbols.ResolverOptions{Reporter: reporter})
		r.ResolveCompilationUnit(root)
	}
	c.foldConstants(reporter)
}

// foldConstants runs the binder and constant evaluator (component J) over
// every parameter/localparam declared by a contributing tree, once every
// tree has been resolved so a parameter in one file can reference a
// parameter declared earlier in another. A Binder is bound to a single
// syntax tree (it resolves NodeIDs against exactly one arena), so one is
// built per contributing buffer and reused for every symbol declared in
// that buffer; a parameter whose initializer references a symbol declared
// in a different buffer is evaluated through whichever binder declared the
// reference, matching how ScriptSession also pins one binder to one tree.
func (c *Compilation) foldConstants(reporter diag.Reporter) {
	c.constants = make(map[symbols.SymbolID]binder.Constant)
	for _, at := range c.trees {
		b := binder.NewBinder(at.tree, c.table, c.types, at.buffer, reporter)
		ec := binder.NewEvalContext(b)
		for id := symbols.SymbolID(1); int(id) <= c.table.Symbols.Len(); id++ {
			sym := c.table.Symbols.Get(id)
			if sym == nil || sym.Decl.Buffer != at.buffer || !sym.Decl.Initializer.IsValid() {
				continue
			}
			switch sym.Kind {
			case symbols.SymbolParameter, symbols.SymbolTypeParameter, symbols.SymbolEnumMember:
			default:
				continue
			}
			if _, ok := c.constants[id]; ok {
				continue
			}
			expr := b.BindExpression(sym.Scope, sym.Span, sym.Decl.Initializer)
			c.constants[id] = ec.Eval(expr)
		}
	}
}

// ConstantValue returns the folded value of a parameter, localparam, or
// enum member declared by a tree added through AddSyntaxTree, finalizing
// the compilation first if needed. ok is false for any symbol id that is
// not constant-evaluable or whose initializer failed to fold.
func (c *Compilation) ConstantValue(id symbols.SymbolID) (binder.Constant, bool) {
	if !c.finalized {
		c.finalize()
	}
	v, ok := c.constants[id]
	return v, ok && !v.Invalid()
}

// Parameter pairs a declared parameter/localparam's name with its folded
// constant value, for a caller (the `elaborate` subcommand's `--params`
// flag) that wants to report every top-level parameter's resolved value
// rather than look one symbol up by id.
type Parameter struct {
	Name  string
	ID    symbols.SymbolID
	Value binder.Constant
}

// Parameters returns every parameter/localparam this compilation folded a
// value for, sorted by name for deterministic output.
func (c *Compilation) Parameters() []Parameter {
	if !c.finalized {
		c.finalize()
	}
	out := make([]Parameter, 0, len(c.constants))
	for id, v := range c.constants {
		sym := c.table.Symbols.Get(id)
		if sym == nil || sym.Kind != symbols.SymbolParameter {
			continue
		}
		name, _ := c.table.Strings.Lookup(sym.Name)
		out = append(out, Parameter{Name: name, ID: id, Value: v})
	}
	sortParameters(out)
	return out
}

func sortParameters(p []Parameter) {
	for i := 1; i < len(p); i++ {
		for j := i; j > 0 && p[j-1].Name > p[j].Name; j-- {
			p[j-1], p[j] = p[j], p[j-1]
		}
	}
}

// Table exposes the underlying symbol table for callers that need to walk
// scopes directly (diagnostics rendering, the CLI's `elaborate` subcommand).
func (c *Compilation) Table() *symbols.Table { return c.table }

// Types exposes the shared type interner.
func (c *Compilation) Types() *types.Interner { return c.types }

// AllDiagnostics returns every diagnostic raised while parsing, resolving,
// and binding, sorted by (buffer, offset) so output is independent of
// internal traversal order (§5's Ordering invariant).
func (c *Compilation) AllDiagnostics() []diag.Diagnostic {
	c.bag.Sort()
	return c.bag.Items()
}

// Bag exposes the shared diagnostics accumulator so a caller feeding
// per-file parse/preprocess diagnostics (collected before AddSyntaxTree)
// can merge them in before calling AllDiagnostics.
func (c *Compilation) Bag() *diag.Bag { return c.bag }

// TopLevelInstances returns the names of every top-level module/interface/
// program definition, sorted for deterministic output (§5: "Top-level
// instance enumeration is sorted by name for determinism"). This reports
// every design-unit root declared at the compilation unit scope; telling
// apart a root that is never instantiated elsewhere (and so is a true
// elaboration root under IEEE 1800's automatic top-module inference) from
// one instantiated as a submodule would need the instance graph a fuller
// elaboration pass builds, which is out of this component's scope (§4.H
// covers declaration, not instantiation-graph analysis).
func (c *Compilation) TopLevelInstances() []string {
	if !c.finalized {
		c.finalize()
	}
	names := c.table.ModuleNames()
	out := make([]string, 0, len(names))
	for _, id := range names {
		if s, ok := c.table.Strings.Lookup(id); ok {
			out = append(out, s)
		}
	}
	sortStrings(out)
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
