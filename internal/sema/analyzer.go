package sema

import (
	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// Analyze runs the full three-pass semantic analysis over prog, then
// typechecks every expression node in lexical scope order,
// mutating the AST in place with resolved types. It returns the
// fully-linked type lattice (needed by the backend for layout and
// v-tables) and the accumulated error list; a non-empty error list means
// the backend must not be invoked.
func Analyze(prog *ast.Program) (*types.Tree, []error) {
	tree := types.New()
	ctx := NewContext(tree)

	collectTypes(ctx, prog)
	buildLattice(ctx, prog)
	collectFunctions(ctx, prog)

	visitTypeMembers(ctx, prog)
	visitFunctionBodies(ctx, prog)
	visitTopLevelExpressions(ctx, prog)

	return tree, ctx.Errors.Err()
}

// visitTypeMembers typechecks every user type's property initializers and
// method bodies, in lattice order (a type's parent is always visited
// first since pass 1 rejected forward references), binding the type's
// constructor parameters as plain identifiers available throughout its
// own members alongside `self`.
func visitTypeMembers(ctx *Context, prog *ast.Program) {
	order := typeVisitOrder(ctx, prog)
	for _, td := range order {
		ctx.CurrentType = td.Identifier
		ctx.EnterScope()
		for _, p := range td.Params {
			ctx.Bind(p.Name, p.ResolvedType)
		}
		ctx.Bind("self", td.Identifier)

		for _, m := range td.Members {
			if m.Property == nil {
				continue
			}
			rhs := visitExpression(ctx, m.Property.Expr)
			if m.Property.DeclaredType != "" {
				declared := ctx.resolveTypeName(m.Property.DeclaredType, m.Property.Span)
				if declared != types.Unknown && rhs != types.Unknown && !ctx.Tree.IsAncestor(declared, rhs) {
					ctx.Errors.Add(util.NewPassError("Semantic", m.Property.Span,
						"cannot assign %s to property %q declared as %s", rhs, m.Property.Identifier, declared))
				}
				m.Property.ResolvedType = declared
			} else {
				m.Property.ResolvedType = rhs
				node, _ := ctx.Tree.Get(td.Identifier)
				if node != nil {
					node.Properties[m.Property.Identifier] = rhs
				}
			}
			ctx.Bind(m.Property.Identifier, m.Property.ResolvedType)
		}

		for _, m := range td.Members {
			if m.Method == nil {
				continue
			}
			visitMethodOrFunction(ctx, m.Method, td.Identifier)
		}

		ctx.ExitScope()
		ctx.CurrentType = ""
	}
}

// typeVisitOrder returns every staged TypeDef ordered parent-before-child
// by lattice depth.
func typeVisitOrder(ctx *Context, prog *ast.Program) []*ast.TypeDef {
	var defs []*ast.TypeDef
	for _, stmt := range prog.Statements {
		if stmt.Kind == ast.StmtTypeDef {
			if _, ok := ctx.DeclaredTypes[stmt.Type.Identifier]; ok {
				defs = append(defs, stmt.Type)
			}
		}
	}
	depthOf := func(name string) int {
		if n, ok := ctx.Tree.Get(name); ok {
			return n.Depth
		}
		return 0
	}
	for i := 1; i < len(defs); i++ {
		for j := i; j > 0 && depthOf(defs[j-1].Identifier) > depthOf(defs[j].Identifier); j-- {
			defs[j-1], defs[j] = defs[j], defs[j-1]
		}
	}
	return defs
}

func visitMethodOrFunction(ctx *Context, fn *ast.FunctionDef, ownerType string) {
	prevFn := ctx.CurrentFunction
	ctx.CurrentFunction = fn.Name
	ctx.EnterScope()
	for _, p := range fn.Params {
		ctx.Bind(p.Name, p.ResolvedType)
	}
	bodyType := visitExpression(ctx, fn.Body)
	ctx.ExitScope()
	ctx.CurrentFunction = prevFn

	if fn.ResolvedReturn != types.Unknown && bodyType != types.Unknown && !ctx.Tree.IsAncestor(fn.ResolvedReturn, bodyType) {
		ctx.Errors.Add(util.NewPassError("Semantic", fn.Span,
			"function %q declared to return %s but body has type %s", fn.Name, fn.ResolvedReturn, bodyType))
	}
}

func visitFunctionBodies(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if stmt.Kind != ast.StmtFunctionDef {
			continue
		}
		if _, ok := ctx.DeclaredFunctions[stmt.Function.Name]; !ok {
			continue
		}
		visitMethodOrFunction(ctx, stmt.Function, "")
	}
}

func visitTopLevelExpressions(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if stmt.Kind == ast.StmtExpr {
			visitExpression(ctx, stmt.Expr)
		}
	}
}

// PreludeFunctions is the extension point for injecting built-in math
// functions (abs, sqrt, sin, ...) as plain user-level FunctionDefs before
// analysis. The core itself implements no specific prelude; a driver
// supplies one by prepending its FunctionDefs to the Program before
// calling Analyze.
func PreludeFunctions() []*ast.FunctionDef {
	return nil
}
