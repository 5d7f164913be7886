package backend

import (
	"hulkc/internal/ast"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// lowerWhile lowers a while loop to three blocks (cond/body/end), using
// the shared label-naming scheme for block names (`while_cond.N`, ...).
// The loop's value is produced by its last body iteration; if the loop
// never runs, nothing is stored to the result alloca, so the loaded value
// is undefined.
func lowerWhile(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	ty := llvmType(e.Type)
	result := ctx.Names.Temp()
	w.Line("%s = alloca %s", result, ty)

	condLabel := ctx.Names.Label("while_cond")
	bodyLabel := ctx.Names.Label("while_body")
	endLabel := ctx.Names.Label("while_end")

	w.Line("br label %%%s", condLabel)
	w.Label(condLabel)
	cond, _ := lower(ctx, fs, w, e.Cond)
	w.Line("br i1 %s, label %%%s, label %%%s", cond, bodyLabel, endLabel)

	w.Label(bodyLabel)
	bodyVal, bodyTy := lower(ctx, fs, w, e.Body)
	w.Line("store %s %s, ptr %s", bodyTy, bodyVal, result)
	w.Line("br label %%%s", condLabel)

	w.Label(endLabel)
	t := ctx.Names.Temp()
	w.Line("%s = load %s, ptr %s", t, ty, result)
	return t, ty
}

// lowerFor lowers a for loop over [start, end) with the induction variable
// bound as a Number in the body's scope.
func lowerFor(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	ty := llvmType(e.Type)
	result := ctx.Names.Temp()
	w.Line("%s = alloca %s", result, ty)

	start, _ := lower(ctx, fs, w, e.Start)
	end, _ := lower(ctx, fs, w, e.End)

	fs.enterScope()
	ctx.Names.EnterScope()
	bindNewLocal(ctx, fs, w, e.Var, "Number", start, "double")
	iv, _ := fs.lookup(e.Var)

	condLabel := ctx.Names.Label("for_cond")
	bodyLabel := ctx.Names.Label("for_body")
	endLabel := ctx.Names.Label("for_end")

	w.Line("br label %%%s", condLabel)
	w.Label(condLabel)
	cur := ctx.Names.Temp()
	w.Line("%s = load double, ptr %s", cur, iv.ssa)
	cmp := ctx.Names.Temp()
	w.Line("%s = fcmp olt double %s, %s", cmp, cur, end)
	w.Line("br i1 %s, label %%%s, label %%%s", cmp, bodyLabel, endLabel)

	w.Label(bodyLabel)
	bodyVal, bodyTy := lower(ctx, fs, w, e.Body)
	w.Line("store %s %s, ptr %s", bodyTy, bodyVal, result)
	next := ctx.Names.Temp()
	w.Line("%s = fadd double %s, 1.0", next, cur)
	w.Line("store double %s, ptr %s", next, iv.ssa)
	w.Line("br label %%%s", condLabel)

	w.Label(endLabel)
	fs.exitScope()
	t := ctx.Names.Temp()
	w.Line("%s = load %s, ptr %s", t, ty, result)
	return t, ty
}

// lowerIf lowers an if/elif*/else? chain. Rather than threading LLVM phi
// nodes through an arbitrary number of incoming blocks, every arm stores
// its value through one shared result alloca before branching to the
// merge block, a register-move-then-branch idiom expressed with LLVM's
// alloca/load/store instructions instead of machine registers.
func lowerIf(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	ty := llvmType(e.Type)
	result := ctx.Names.Temp()
	w.Line("%s = alloca %s", result, ty)

	mergeLabel := ctx.Names.Label("if_end")
	writeArm(ctx, fs, w, e.Cond, e.Body, result, ty, mergeLabel)
	for _, arm := range e.Elifs {
		writeArm(ctx, fs, w, arm.Cond, arm.Body, result, ty, mergeLabel)
	}
	if e.Else != nil {
		val, valTy := lower(ctx, fs, w, e.Else)
		w.Line("store %s %s, ptr %s", valTy, val, result)
	}
	w.Line("br label %%%s", mergeLabel)

	w.Label(mergeLabel)
	t := ctx.Names.Temp()
	w.Line("%s = load %s, ptr %s", t, ty, result)
	return t, ty
}

// writeArm lowers one `if`/`elif` arm: evaluate cond, branch to a fresh
// true-block (which stores Body's value and jumps to merge) or a fresh
// continuation block where the caller emits the next arm or the else.
func writeArm(ctx *Context, fs *funcState, w *util.Writer, cond, body *ast.Expression, result, ty, mergeLabel string) {
	trueLabel := ctx.Names.Label("if_true")
	contLabel := ctx.Names.Label("if_cont")

	condVal, _ := lower(ctx, fs, w, cond)
	w.Line("br i1 %s, label %%%s, label %%%s", condVal, trueLabel, contLabel)

	w.Label(trueLabel)
	val, valTy := lower(ctx, fs, w, body)
	w.Line("store %s %s, ptr %s", valTy, val, result)
	w.Line("br label %%%s", mergeLabel)

	w.Label(contLabel)
}
