package backend

import (
	"fmt"

	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// GenerateModule lowers a fully typechecked program into one textual LLVM
// IR module string: struct layouts and v-tables, the runtime and
// format-string declarations, every user function and method definition,
// and a synthesized @main that runs the program's top-level expression
// statements in order.
func GenerateModule(prog *ast.Program, tree *types.Tree) (string, []error) {
	ctx := NewContext(tree)
	registerDeclarations(ctx, prog)

	ctx.declareCoreRuntime()
	ctx.declareFormatGlobals()
	ctx.emitStructs()
	ctx.emitVTables()

	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case ast.StmtFunctionDef:
			fn := stmt.Function
			emitFunction(ctx, ctx.TopLevelFunctionName[fn.Name], "", "", fn.Params, fn.ResolvedReturn, fn.Body)
		case ast.StmtTypeDef:
			emitTypeMethods(ctx, stmt.Type)
		}
	}
	emitMain(ctx, prog)

	if errs := ctx.Errors.Err(); errs != nil {
		return "", errs
	}

	out := util.NewWriter()
	out.Write("; ModuleID = 'hulkc'\n")
	out.Write("target triple = \"x86_64-unknown-linux-gnu\"\n\n")
	out.WriteString(ctx.Module.String())
	out.WriteString("\n")
	out.WriteString(ctx.Funcs.String())
	return out.String(), nil
}

// registerDeclarations records every type's declaration and assigns each
// top-level function a mangled symbol, before any body is lowered, so a
// forward call or a type's own constructor recursion always resolves.
func registerDeclarations(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case ast.StmtFunctionDef:
			ctx.TopLevelFunctionName[stmt.Function.Name] = fmt.Sprintf("@fn_%s", stmt.Function.Name)
		case ast.StmtTypeDef:
			ctx.TypeDefs[stmt.Type.Identifier] = stmt.Type
		}
	}
}

func emitTypeMethods(ctx *Context, def *ast.TypeDef) {
	for _, m := range def.Members {
		if m.Method == nil {
			continue
		}
		llvmName := ctx.FunctionLLVMName[def.Identifier][m.Method.Name]
		emitFunction(ctx, llvmName, def.Identifier, m.Method.Name, m.Method.Params, m.Method.ResolvedReturn, m.Method.Body)
	}
}

// emitMain wraps every top-level expression statement in a single
// @main, run in program order, discarding each statement's value except
// the implicit `ret i32 0` at the end.
func emitMain(ctx *Context, prog *ast.Program) {
	fs := newFuncState()
	ctx.Funcs.Write("define i32 @main() {\n")
	ctx.Funcs.Label("entry")
	for _, stmt := range prog.Statements {
		if stmt.Kind == ast.StmtExpr {
			lower(ctx, fs, ctx.Funcs, stmt.Expr)
		}
	}
	ctx.Funcs.Line("ret i32 0")
	ctx.Funcs.WriteString("}\n")
}
