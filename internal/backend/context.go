// Package backend lowers a typed program to textual LLVM IR: object
// layout with single-inheritance upward delegation, per-type v-tables
// reached through a global super-vtable, a uniform pointer-passing
// calling convention, and scope/temporary/label SSA naming. It streams
// the module as text line by line through a util.Writer, rather than
// building IR through an in-memory API.
package backend

import (
	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// MemberSlot is one entry of a type's full (inherited + own) property
// layout, in struct-field order.
type MemberSlot struct {
	Name string
	DeclaredType string
}

// variable is a lexically-bound local: its SSA pointer name (a let-binding
// or constructor parameter is a local alloca; a function or method
// parameter is the incoming ptr itself, per the uniform pointer-passing
// calling convention), its LLVM type, and its source type name.
type variable struct {
	ssa string
	llvmType string
	sourceType string
}

// Context is the backend's working state.
// One Context is owned exclusively by one module-generation run.
type Context struct {
	Tree *types.Tree
	Names *util.NameCounters

	Module *util.Writer // struct defs, globals, v-tables, runtime decls
	Funcs *util.Writer // every function/constructor/method definition

	Errors util.ErrorList

	StringPool map[string]string // literal value -> global name
	RuntimeDeclared map[string]bool

	TypeID map[string]int
	TypeVTableName map[string]string
	Inherits map[string]string // child -> parent, user types only

	TypeMembers map[string][]MemberSlot // type -> full ordered property layout
	TypeMemberIndex map[string]map[string]int // type -> property name -> struct field index (2-based)

	TypeMethodIndex map[string]map[string]int // type -> method name -> v-table slot
	FunctionLLVMName map[string]map[string]string // type -> method name -> mangled symbol
	MaxMethods int

	TypeDefs map[string]*ast.TypeDef // type name -> declaration, for constructor lowering
	TopLevelFunctionName map[string]string // function name -> mangled symbol
}

// ---------------------
// ----- functions -----
// ---------------------

// NewContext builds a Context for tree, precomputing object layout
// and v-table slot assignment up front so
// every function body can be lowered independently afterward.
func NewContext(tree *types.Tree) *Context {
	ctx := &Context{
		Tree: tree,
		Names: &util.NameCounters{},
		Module: util.NewWriter(),
		Funcs: util.NewWriter(),
		StringPool: map[string]string{},
		RuntimeDeclared: map[string]bool{},
		TypeID: map[string]int{},
		TypeVTableName: map[string]string{},
		Inherits: map[string]string{},
		TypeDefs: map[string]*ast.TypeDef{},
		TopLevelFunctionName: map[string]string{},
	}
	computeLayout(ctx)
	computeVTables(ctx)
	return ctx
}

// builtinTypes is the set of pre-seeded types that never get an object
// layout or v-table of their own.
var builtinTypes = map[string]bool{
	types.Object: true, types.String: true, types.Number: true,
	types.Boolean: true, types.Unknown: true,
}

// userTypesByDepth returns every non-builtin type name, ordered so a
// parent always precedes its children.
func userTypesByDepth(tree *types.Tree) []string {
	var names []string
	for _, n := range tree.AllNames() {
		if !builtinTypes[n] {
			names = append(names, n)
		}
	}
	depthOf := func(name string) int {
		node, _ := tree.Get(name)
		return node.Depth
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && depthOf(names[j-1]) > depthOf(names[j]); j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

// llvmType maps a source type name to its LLVM representation: Number -> double, Boolean -> i1, String and every user type ->
// ptr. A residual types.Unknown reaching the backend is a fatal internal
// error.
func llvmType(name string) string {
	switch name {
	case types.Number:
		return "double"
	case types.Boolean:
		return "i1"
	case types.Unknown:
		panic("backend: residual Unknown type reached IR generation")
	default:
		return "ptr"
	}
}
