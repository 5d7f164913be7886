package backend

import (
	"fmt"
	"strings"

	"hulkc/internal/ast"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// lower emits the instructions for e into w and returns its SSA value (or
// a literal constant) and LLVM type. This is the single dispatch point
// for every expression kind in the AST.
func lower(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	switch e.Kind {
	case ast.ExprNumber:
		return doubleLiteral(e.Text), "double"
	case ast.ExprBool:
		if e.Text == "true" {
			return "true", "i1"
		}
		return "false", "i1"
	case ast.ExprString:
		return lowerStringLiteral(ctx, w, e.Text), "ptr"
	case ast.ExprIdentifier:
		return lowerIdentifier(ctx, fs, w, e)
	case ast.ExprBlock:
		return lowerBlock(ctx, fs, w, e)
	case ast.ExprLetIn:
		return lowerLetIn(ctx, fs, w, e)
	case ast.ExprAssign:
		return lowerAssign(ctx, fs, w, e)
	case ast.ExprBinary:
		return lowerBinary(ctx, fs, w, e)
	case ast.ExprUnary:
		return lowerUnary(ctx, fs, w, e)
	case ast.ExprPrint:
		return lowerPrint(ctx, fs, w, e)
	case ast.ExprWhile:
		return lowerWhile(ctx, fs, w, e)
	case ast.ExprFor:
		return lowerFor(ctx, fs, w, e)
	case ast.ExprIf:
		return lowerIf(ctx, fs, w, e)
	case ast.ExprCall:
		return lowerCall(ctx, fs, w, e)
	case ast.ExprNewInstance:
		return lowerNewInstance(ctx, fs, w, e)
	case ast.ExprPropAccess:
		return lowerPropAccess(ctx, fs, w, e)
	case ast.ExprMethodAccess:
		return lowerMethodAccess(ctx, fs, w, e)
	default:
		panic(fmt.Sprintf("backend: unhandled expression kind %v", e.Kind))
	}
}

// doubleLiteral renders a source number literal as an LLVM double
// constant, which requires a decimal point even for integral values.
func doubleLiteral(text string) string {
	if strings.Contains(text, ".") {
		return text
	}
	return text + ".0"
}

func lowerStringLiteral(ctx *Context, w *util.Writer, value string) string {
	global := ctx.internString(value)
	n := len(value) + 1
	t := ctx.Names.Temp()
	w.Line("%s = getelementptr inbounds [%d x i8], ptr %s, i64 0, i64 0", t, n, global)
	return t
}

func lowerIdentifier(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	v, ok := fs.lookup(e.Text)
	if !ok {
		panic(fmt.Sprintf("backend: unbound identifier %q reached IR generation", e.Text))
	}
	t := ctx.Names.Temp()
	w.Line("%s = load %s, ptr %s", t, v.llvmType, v.ssa)
	return t, v.llvmType
}

// materializePointer allocas a fresh slot, stores val into it, and
// returns the pointer, giving a call site its argument in the uniform
// pointer-passing calling convention.
func materializePointer(ctx *Context, w *util.Writer, val, llvmTy string) string {
	p := ctx.Names.Temp()
	w.Line("%s = alloca %s", p, llvmTy)
	w.Line("store %s %s, ptr %s", llvmTy, val, p)
	return p
}

// bindNewLocal allocas storage for val, binds name to it in the current
// scope (used by let-in bindings, for-loop induction variables,
// constructor parameters and type-changing destructive assignments, all
// of which are allocas).
func bindNewLocal(ctx *Context, fs *funcState, w *util.Writer, name, sourceType, val, llvmTy string) {
	p := materializePointer(ctx, w, val, llvmTy)
	fs.bind(name, variable{ssa: p, llvmType: llvmTy, sourceType: sourceType})
}

func lowerBlock(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	fs.enterScope()
	ctx.Names.EnterScope()
	val, ty := "", "double"
	for _, sub := range e.Exprs {
		val, ty = lower(ctx, fs, w, sub)
	}
	fs.exitScope()
	return val, ty
}

func lowerLetIn(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	fs.enterScope()
	ctx.Names.EnterScope()
	for _, a := range e.Assigns {
		val, ty := lower(ctx, fs, w, a.Expr)
		bindNewLocal(ctx, fs, w, a.Identifier, a.ResolvedType, val, ty)
	}
	val, ty := lower(ctx, fs, w, e.Body)
	fs.exitScope()
	return val, ty
}

func lowerAssign(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	val, ty := lower(ctx, fs, w, e.Value)
	if e.Object != nil {
		// Destructive assignment through `self.p` (sema guarantees Object
		// is the literal identifier "self"): store straight into the
		// struct field, no local alloca involved.
		selfType := fs.currentSelf
		idx := ctx.TypeMemberIndex[selfType][e.Name]
		selfVar, _ := fs.lookup("self")
		selfPtr := ctx.Names.Temp()
		w.Line("%s = load ptr, ptr %s", selfPtr, selfVar.ssa)
		fieldPtr := ctx.Names.Temp()
		w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 %d", fieldPtr, selfType, selfPtr, idx)
		w.Line("store %s %s, ptr %s", ty, val, fieldPtr)
		return val, ty
	}

	v, ok := fs.lookup(e.Name)
	if ok && v.llvmType == ty {
		w.Line("store %s %s, ptr %s", ty, val, v.ssa)
		return val, ty
	}
	// Destructive assignment rebinding the identifier to a new source
	// type: a fresh alloca replaces the old binding.
	bindNewLocal(ctx, fs, w, e.Name, e.Type, val, ty)
	return val, ty
}

func lowerUnary(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	val, ty := lower(ctx, fs, w, e.Left)
	t := ctx.Names.Temp()
	switch e.UnOp {
	case ast.UnNeg:
		w.Line("%s = fneg double %s", t, val)
		return t, "double"
	case ast.UnNot:
		w.Line("%s = xor i1 %s, true", t, val)
		return t, "i1"
	}
	_ = ty
	panic("backend: unhandled unary operator")
}

func lowerBinary(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	l, lty := lower(ctx, fs, w, e.Left)
	r, _ := lower(ctx, fs, w, e.Right)
	t := ctx.Names.Temp()

	switch e.BinOp {
	case ast.BinAdd:
		w.Line("%s = fadd double %s, %s", t, l, r)
		return t, "double"
	case ast.BinSub:
		w.Line("%s = fsub double %s, %s", t, l, r)
		return t, "double"
	case ast.BinMul:
		w.Line("%s = fmul double %s, %s", t, l, r)
		return t, "double"
	case ast.BinDiv:
		w.Line("%s = fdiv double %s, %s", t, l, r)
		return t, "double"
	case ast.BinMod:
		ctx.declareRuntime("fmod", "double @fmod(double, double)")
		w.Line("%s = call double @fmod(double %s, double %s)", t, l, r)
		return t, "double"
	case ast.BinPow:
		ctx.declareRuntime("pow", "double @pow(double, double)")
		w.Line("%s = call double @pow(double %s, double %s)", t, l, r)
		return t, "double"
	case ast.BinGt:
		w.Line("%s = fcmp ogt double %s, %s", t, l, r)
		return t, "i1"
	case ast.BinGte:
		w.Line("%s = fcmp oge double %s, %s", t, l, r)
		return t, "i1"
	case ast.BinLt:
		w.Line("%s = fcmp olt double %s, %s", t, l, r)
		return t, "i1"
	case ast.BinLte:
		w.Line("%s = fcmp ole double %s, %s", t, l, r)
		return t, "i1"
	case ast.BinEq, ast.BinNeq:
		pred := map[string]string{"double": "oeq", "i1": "eq", "ptr": "eq"}[lty]
		npred := map[string]string{"double": "one", "i1": "ne", "ptr": "ne"}[lty]
		p := pred
		if e.BinOp == ast.BinNeq {
			p = npred
		}
		cmp := "icmp"
		if lty == "double" {
			cmp = "fcmp"
		}
		w.Line("%s = %s %s %s %s, %s", t, cmp, p, lty, l, r)
		return t, "i1"
	case ast.BinAnd:
		w.Line("%s = and i1 %s, %s", t, l, r)
		return t, "i1"
	case ast.BinOr:
		w.Line("%s = or i1 %s, %s", t, l, r)
		return t, "i1"
	case ast.BinConcat:
		return lowerConcat(ctx, w, l, r), "ptr"
	}
	panic("backend: unhandled binary operator")
}

// lowerConcat implements string concatenation by mallocing a buffer
// sized strlen(a)+strlen(b)+1, then strcpy followed by strcat.
func lowerConcat(ctx *Context, w *util.Writer, l, r string) string {
	ctx.declareRuntime("strlen", "i64 @strlen(ptr)")
	ctx.declareRuntime("strcpy", "ptr @strcpy(ptr, ptr)")
	ctx.declareRuntime("strcat", "ptr @strcat(ptr, ptr)")
	ctx.declareRuntime("malloc", "ptr @malloc(i64)")

	lenL, lenR, total, size, buf, t := ctx.Names.Temp(), ctx.Names.Temp(), ctx.Names.Temp(), ctx.Names.Temp(), ctx.Names.Temp(), ctx.Names.Temp()
	w.Line("%s = call i64 @strlen(ptr %s)", lenL, l)
	w.Line("%s = call i64 @strlen(ptr %s)", lenR, r)
	w.Line("%s = add i64 %s, %s", total, lenL, lenR)
	w.Line("%s = add i64 %s, 1", size, total)
	w.Line("%s = call ptr @malloc(i64 %s)", buf, size)
	w.Line("%s = call ptr @strcpy(ptr %s, ptr %s)", t, buf, l)
	w.Line("call ptr @strcat(ptr %s, ptr %s)", buf, r)
	return buf
}
