package backend

import (
	"fmt"

	"hulkc/internal/ast"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// emitFunction writes one LLVM function definition for a top-level
// function (selfType == "") or a method (selfType naming the owning
// type). Every parameter arrives as a ptr per the uniform calling
// convention: the incoming register already holds the materialized
// value's address, so it is bound directly as the parameter's storage
// cell rather than re-allocated.
func emitFunction(ctx *Context, llvmName string, selfType, methodName string, params []ast.Param, retType string, body *ast.Expression) {
	retTy := llvmType(retType)
	fs := newFuncState()
	fs.currentSelf = selfType
	fs.currentMethod = methodName

	var paramDecls []string
	if selfType != "" {
		paramDecls = append(paramDecls, "ptr %self")
		fs.bind("self", variable{ssa: "%self", llvmType: "ptr", sourceType: selfType})
	}
	for i, p := range params {
		reg := fmt.Sprintf("%%p%d", i)
		paramDecls = append(paramDecls, "ptr "+reg)
		fs.bind(p.Name, variable{ssa: reg, llvmType: llvmType(p.ResolvedType), sourceType: p.ResolvedType})
	}

	ctx.Funcs.Write("define %s %s(%s) {\n", retTy, llvmName, joinComma(paramDecls))
	ctx.Funcs.Label("entry")
	val, _ := lower(ctx, fs, ctx.Funcs, body)
	ctx.Funcs.Line("ret %s %s", retTy, val)
	ctx.Funcs.WriteString("}\n\n")
}
