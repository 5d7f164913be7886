package sema

import (
	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// visitExpression typechecks e and every descendant, annotates e.Type with
// the resolved type name, and returns that name. A sub-expression that
// fails to check resolves to types.Unknown so checking can continue
// locally without cascading unrelated errors.
func visitExpression(ctx *Context, e *ast.Expression) string {
	if e == nil {
		return types.Unknown
	}
	t := visitExpressionKind(ctx, e)
	e.Type = t
	return t
}

func visitExpressionKind(ctx *Context, e *ast.Expression) string {
	switch e.Kind {
	case ast.ExprNumber:
		return types.Number
	case ast.ExprBool:
		return types.Boolean
	case ast.ExprString:
		return types.String

	case ast.ExprIdentifier:
		if e.Text == "self" {
			if ctx.CurrentType == "" {
				ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "%q used outside of a method", "self"))
				return types.Unknown
			}
			return ctx.CurrentType
		}
		if t, ok := ctx.Lookup(e.Text); ok {
			return t
		}
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "undefined identifier %q", e.Text))
		return types.Unknown

	case ast.ExprCall:
		return visitCall(ctx, e)

	case ast.ExprWhile:
		cond := visitExpression(ctx, e.Cond)
		if cond != types.Boolean {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Cond.Span, "while condition must be Boolean, got %s", cond))
		}
		return visitExpression(ctx, e.Body)

	case ast.ExprFor:
		start := visitExpression(ctx, e.Start)
		end := visitExpression(ctx, e.End)
		if start != types.Number {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Start.Span, "for-loop start must be Number, got %s", start))
		}
		if end != types.Number {
			ctx.Errors.Add(util.NewPassError("Semantic", e.End.Span, "for-loop end must be Number, got %s", end))
		}
		ctx.EnterScope()
		ctx.Bind(e.Var, types.Number)
		body := visitExpression(ctx, e.Body)
		ctx.ExitScope()
		return body

	case ast.ExprBlock:
		ctx.EnterScope()
		result := types.Unknown
		for _, sub := range e.Exprs {
			result = visitExpression(ctx, sub)
		}
		ctx.ExitScope()
		return result

	case ast.ExprBinary:
		return visitBinary(ctx, e)

	case ast.ExprUnary:
		return visitUnary(ctx, e)

	case ast.ExprIf:
		return visitIf(ctx, e)

	case ast.ExprLetIn:
		ctx.EnterScope()
		for _, a := range e.Assigns {
			rhs := visitExpression(ctx, a.Expr)
			resolved := rhs
			if a.DeclaredType != "" {
				declared := ctx.resolveTypeName(a.DeclaredType, a.Span)
				if declared != types.Unknown && rhs != types.Unknown && !ctx.Tree.IsAncestor(declared, rhs) {
					ctx.Errors.Add(util.NewPassError("Semantic", a.Span,
						"cannot assign %s to %q declared as %s", rhs, a.Identifier, declared))
				}
				resolved = declared
			}
			a.ResolvedType = resolved
			ctx.Bind(a.Identifier, resolved)
		}
		result := visitExpression(ctx, e.Body)
		ctx.ExitScope()
		return result

	case ast.ExprAssign:
		return visitAssign(ctx, e)

	case ast.ExprNewInstance:
		return visitNewInstance(ctx, e)

	case ast.ExprPropAccess:
		return visitPropAccess(ctx, e)

	case ast.ExprMethodAccess:
		return visitMethodAccess(ctx, e)

	case ast.ExprPrint:
		inner := visitExpression(ctx, e.Body)
		if inner != types.Number && inner != types.String && inner != types.Boolean {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "print requires a Number, String or Boolean, got %s", inner))
		}
		return inner

	default:
		ctx.Errors.Addf("internal: unhandled expression kind %v", e.Kind)
		return types.Unknown
	}
}

// checkArgs type-checks a call's argument list against a parameter list
// declared with already-resolved types, reporting arity and per-argument
// subtyping errors.
func checkArgs(ctx *Context, what string, params []ast.Param, args []*ast.Expression, span util.Span) {
	if len(params) != len(args) {
		ctx.Errors.Add(util.NewPassError("Semantic", span,
			"%s expects %d argument(s), got %d", what, len(params), len(args)))
	}
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		argType := visitExpression(ctx, args[i])
		want := params[i].ResolvedType
		if want == "" {
			want = params[i].DeclaredTypeName
		}
		if want != types.Unknown && argType != types.Unknown && !ctx.Tree.IsAncestor(want, argType) {
			ctx.Errors.Add(util.NewPassError("Semantic", args[i].Span,
				"%s argument %d: expected %s, got %s", what, i+1, want, argType))
		}
	}
	// Visit any remaining args past an arity mismatch so later, independent
	// errors inside them still surface.
	for i := n; i < len(args); i++ {
		visitExpression(ctx, args[i])
	}
}

func visitCall(ctx *Context, e *ast.Expression) string {
	if e.Name == "base" {
		if ctx.CurrentType == "" || ctx.CurrentFunction == "" {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "%q used outside of a method", "base"))
			return types.Unknown
		}
		node, _ := ctx.Tree.Get(ctx.CurrentType)
		if node == nil || node.ParentName == "" {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "type %q has no parent for %q", ctx.CurrentType, "base"))
			return types.Unknown
		}
		_, def, ok := ctx.Tree.FindMethod(node.ParentName, ctx.CurrentFunction)
		if !ok {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span,
				"parent of %q has no method %q", ctx.CurrentType, ctx.CurrentFunction))
			return types.Unknown
		}
		checkArgs(ctx, "base()", def.Params, e.Args, e.Span)
		return def.ResolvedReturn
	}

	fn, ok := ctx.DeclaredFunctions[e.Name]
	if !ok {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "call to undefined function %q", e.Name))
		for _, a := range e.Args {
			visitExpression(ctx, a)
		}
		return types.Unknown
	}
	checkArgs(ctx, "function \""+e.Name+"\"", fn.Args, e.Args, e.Span)
	return fn.ReturnType
}

func visitBinary(ctx *Context, e *ast.Expression) string {
	l := visitExpression(ctx, e.Left)
	r := visitExpression(ctx, e.Right)
	if l == types.Unknown || r == types.Unknown {
		return types.Unknown
	}
	invalid := func() string {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "invalid operands %s and %s to operator %v", l, r, e.BinOp))
		return types.Unknown
	}
	switch e.BinOp {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod, ast.BinPow:
		if l == types.Number && r == types.Number {
			return types.Number
		}
		return invalid()
	case ast.BinLt, ast.BinLte, ast.BinGt, ast.BinGte:
		if l == types.Number && r == types.Number {
			return types.Boolean
		}
		return invalid()
	case ast.BinEq, ast.BinNeq:
		if l == r && (l == types.Number || l == types.Boolean || l == types.String) {
			return types.Boolean
		}
		return invalid()
	case ast.BinAnd, ast.BinOr:
		if l == types.Boolean && r == types.Boolean {
			return types.Boolean
		}
		return invalid()
	case ast.BinConcat:
		if l == types.String && r == types.String {
			return types.String
		}
		return invalid()
	default:
		return invalid()
	}
}

func visitUnary(ctx *Context, e *ast.Expression) string {
	operand := visitExpression(ctx, e.Left)
	switch e.UnOp {
	case ast.UnNeg:
		if operand == types.Number {
			return types.Number
		}
	case ast.UnNot:
		if operand == types.Boolean {
			return types.Boolean
		}
	}
	if operand == types.Unknown {
		return types.Unknown
	}
	ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "invalid operand %s to unary operator", operand))
	return types.Unknown
}

func visitIf(ctx *Context, e *ast.Expression) string {
	cond := visitExpression(ctx, e.Cond)
	if cond != types.Boolean {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Cond.Span, "if condition must be Boolean, got %s", cond))
	}
	result := visitExpression(ctx, e.Body)
	for _, arm := range e.Elifs {
		armCond := visitExpression(ctx, arm.Cond)
		if armCond != types.Boolean {
			ctx.Errors.Add(util.NewPassError("Semantic", arm.Cond.Span, "elif condition must be Boolean, got %s", armCond))
		}
		armType := visitExpression(ctx, arm.Body)
		result = ctx.Tree.FindLCA(result, armType)
	}
	if e.Else != nil {
		elseType := visitExpression(ctx, e.Else)
		result = ctx.Tree.FindLCA(result, elseType)
	}
	if result == types.Object || result == types.Unknown {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "incompatible branch types in if/elif/else"))
	}
	return result
}

func visitAssign(ctx *Context, e *ast.Expression) string {
	value := visitExpression(ctx, e.Value)
	if e.Object != nil {
		visitExpression(ctx, e.Object)
		if e.Object.Kind != ast.ExprIdentifier || e.Object.Text != "self" {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "destructive assignment to a property is only allowed through %q", "self"))
			return types.Unknown
		}
		if ctx.CurrentType == "" {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "%q used outside of a method", "self"))
			return types.Unknown
		}
		declared, ok := ctx.Tree.FindProperty(ctx.CurrentType, e.Name)
		if !ok {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "type %q has no property %q", ctx.CurrentType, e.Name))
			return types.Unknown
		}
		if declared != types.Unknown && value != types.Unknown && !ctx.Tree.IsAncestor(declared, value) {
			ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "cannot assign %s to property %q declared as %s", value, e.Name, declared))
		}
		return declared
	}
	if _, ok := ctx.Lookup(e.Name); !ok {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "destructive assignment to undefined identifier %q", e.Name))
		return types.Unknown
	}
	ctx.Bind(e.Name, value)
	return value
}

func visitNewInstance(ctx *Context, e *ast.Expression) string {
	node, ok := ctx.Tree.Get(e.Name)
	if !ok {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "instantiation of undefined type %q", e.Name))
		for _, a := range e.Args {
			visitExpression(ctx, a)
		}
		return types.Unknown
	}
	checkArgs(ctx, "constructor \""+e.Name+"\"", node.Params, e.Args, e.Span)
	return e.Name
}

func visitPropAccess(ctx *Context, e *ast.Expression) string {
	objType := visitExpression(ctx, e.Object)
	if ctx.CurrentType == "" {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "property access is only allowed inside a method"))
		return types.Unknown
	}
	if objType == types.Unknown {
		return types.Unknown
	}
	declared, ok := ctx.Tree.FindProperty(objType, e.Name)
	if !ok {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "type %q has no property %q", objType, e.Name))
		return types.Unknown
	}
	return declared
}

func visitMethodAccess(ctx *Context, e *ast.Expression) string {
	objType := visitExpression(ctx, e.Object)
	if objType == types.Unknown {
		for _, a := range e.Args {
			visitExpression(ctx, a)
		}
		return types.Unknown
	}
	_, def, ok := ctx.Tree.FindMethod(objType, e.Name)
	if !ok {
		ctx.Errors.Add(util.NewPassError("Semantic", e.Span, "type %q has no method %q", objType, e.Name))
		for _, a := range e.Args {
			visitExpression(ctx, a)
		}
		return types.Unknown
	}
	checkArgs(ctx, "method \""+e.Name+"\"", def.Params, e.Args, e.Span)
	return def.ResolvedReturn
}
