// Package sema implements the semantic analyzer: a three-pass
// tree-walking visitor (collect types, build the lattice, collect
// function signatures) followed by a full typecheck that annotates
// every ast.Expression with its resolved type.
//
// Validation accumulates an []error rather than failing at the first
// problem, and scopes are resolved through scope-snapshot symbol tables
// against the nominal lattice in internal/types.
package sema

import (
	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// FunctionInfo is a resolved top-level function signature.
type FunctionInfo struct {
	Name string
	Args []ast.Param // DeclaredTypeName is resolved (Unknown substituted for bad names)
	ReturnType string // resolved return type name
	Def *ast.FunctionDef
}

// Context is the semantic analyzer's working state: the current scope's symbol table, the declared function and
// type tables, and which type/function (if any) is currently being
// visited. The scope stack is a vector of snapshots: entering a scope
// pushes a copy of the current symbol table; exiting restores the
// snapshot beneath it, so names introduced in a scope never leak past
// its exit and a later binding of the same name within one scope
// shadows the earlier one.
type Context struct {
	Tree *types.Tree

	scopes []map[string]string // scopes[len-1] is the live, mutable top of stack

	DeclaredFunctions map[string]*FunctionInfo
	DeclaredTypes map[string]*ast.TypeDef

	CurrentType string
	CurrentFunction string

	Errors util.ErrorList
}

// ---------------------
// ----- functions -----
// ---------------------

// NewContext returns an analyzer context seeded with an empty global scope.
func NewContext(tree *types.Tree) *Context {
	return &Context{
		Tree: tree,
		scopes: []map[string]string{{}},
		DeclaredFunctions: map[string]*FunctionInfo{},
		DeclaredTypes: map[string]*ast.TypeDef{},
	}
}

// EnterScope pushes a snapshot of the current scope.
func (c *Context) EnterScope() {
	top := c.scopes[len(c.scopes)-1]
	next := make(map[string]string, len(top))
	for k, v := range top {
		next[k] = v
	}
	c.scopes = append(c.scopes, next)
}

// ExitScope pops the current scope, restoring the snapshot beneath it.
func (c *Context) ExitScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Bind introduces or rebinds name to typeName in the current (topmost)
// scope. A later Bind of the same name within the same scope shadows the
// earlier one, giving let-in bindings their expected shadowing semantics.
func (c *Context) Bind(name, typeName string) {
	c.scopes[len(c.scopes)-1][name] = typeName
}

// Lookup resolves name in the current scope.
func (c *Context) Lookup(name string) (string, bool) {
	t, ok := c.scopes[len(c.scopes)-1][name]
	return t, ok
}

// resolveTypeName resolves a declared type name against the lattice,
// reporting an "undefined type" error and substituting types.Unknown if
// the name is not a known type. An empty declared name also resolves to
// Unknown without reporting (absence of a `: Type` annotation, not a bad
// name).
func (c *Context) resolveTypeName(name string, span util.Span) string {
	if name == "" {
		return types.Unknown
	}
	if c.Tree.Has(name) {
		return name
	}
	c.Errors.Add(util.NewPassError("Semantic", span, "undefined type %q", name))
	return types.Unknown
}
