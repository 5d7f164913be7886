package backend

import (
	"hulkc/internal/ast"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// lowerPrint writes the operand's value to standard output through
// printf, selecting the format string by the operand's LLVM type (double
// -> "%f\n", everything else -> "%s\n"), and returns the operand's own
// value and type unchanged since print is itself an expression.
func lowerPrint(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	val, ty := lower(ctx, fs, w, e.Body)
	ctx.declareRuntime("printf", "i32 @printf(ptr, ...)")

	switch ty {
	case "double":
		fmtPtr := lowerStringLiteral(ctx, w, "%f\n")
		w.Line("call i32 (ptr, ...) @printf(ptr %s, double %s)", fmtPtr, val)
	case "i1":
		strPtr := lowerBoolString(ctx, w, val)
		fmtPtr := lowerStringLiteral(ctx, w, "%s\n")
		w.Line("call i32 (ptr, ...) @printf(ptr %s, ptr %s)", fmtPtr, strPtr)
	default:
		fmtPtr := lowerStringLiteral(ctx, w, "%s\n")
		w.Line("call i32 (ptr, ...) @printf(ptr %s, ptr %s)", fmtPtr, val)
	}
	return val, ty
}

// lowerBoolString selects between the interned "true"/"false" globals
// based on an i1 value, merging the two branches through an alloca
// rather than a phi node (the same idiom lowerIf uses).
func lowerBoolString(ctx *Context, w *util.Writer, val string) string {
	result := ctx.Names.Temp()
	w.Line("%s = alloca ptr", result)

	trueLabel := ctx.Names.Label("print_true")
	falseLabel := ctx.Names.Label("print_false")
	endLabel := ctx.Names.Label("print_end")

	w.Line("br i1 %s, label %%%s, label %%%s", val, trueLabel, falseLabel)
	w.Label(trueLabel)
	tp := lowerStringLiteral(ctx, w, "true")
	w.Line("store ptr %s, ptr %s", tp, result)
	w.Line("br label %%%s", endLabel)

	w.Label(falseLabel)
	fp := lowerStringLiteral(ctx, w, "false")
	w.Line("store ptr %s, ptr %s", fp, result)
	w.Line("br label %%%s", endLabel)

	w.Label(endLabel)
	t := ctx.Names.Temp()
	w.Line("%s = load ptr, ptr %s", t, result)
	return t
}
