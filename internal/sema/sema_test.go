package sema

import (
	"testing"

	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

func num(n string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprNumber, Text: n}
}

func ident(name string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprIdentifier, Text: name}
}

func binary(op ast.BinOp, l, r *ast.Expression) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprBinary, BinOp: op, Left: l, Right: r}
}

// TestLetInAddition checks `let x = 5 in x + x;`.
func TestLetInAddition(t *testing.T) {
	body := binary(ast.BinAdd, ident("x"), ident("x"))
	letIn := &ast.Expression{
		Kind: ast.ExprLetIn,
		Assigns: []*ast.Assignment{{Identifier: "x", Expr: num("5")}},
		Body: body,
	}
	prog := &ast.Program{Statements: []*ast.Statement{{Kind: ast.StmtExpr, Expr: letIn}}}

	_, errs := Analyze(prog)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if letIn.Type != types.Number {
		t.Fatalf("expected Number, got %s", letIn.Type)
	}
}

// TestFunctionCallReturnsDeclaredType checks
// `function sq(x: Number): Number => x * x; print(sq(7));`.
func TestFunctionCallReturnsDeclaredType(t *testing.T) {
	sq := &ast.FunctionDef{
		Name: "sq",
		Params: []ast.Param{{Name: "x", DeclaredTypeName: types.Number}},
		ReturnTypeName: types.Number,
		Body: binary(ast.BinMul, ident("x"), ident("x")),
	}
	call := &ast.Expression{Kind: ast.ExprCall, Name: "sq", Args: []*ast.Expression{num("7")}}
	print := &ast.Expression{Kind: ast.ExprPrint, Body: call}
	prog := &ast.Program{Statements: []*ast.Statement{
		{Kind: ast.StmtFunctionDef, Function: sq},
		{Kind: ast.StmtExpr, Expr: print},
	}}

	_, errs := Analyze(prog)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if call.Type != types.Number {
		t.Fatalf("expected call to resolve to Number, got %s", call.Type)
	}
}

// TestInheritedMethodOverrideDispatch checks that an overriding method's
// base() call reaches the parent's implementation.
func TestInheritedMethodOverrideDispatch(t *testing.T) {
	fA := &ast.FunctionDef{Name: "f", ReturnTypeName: types.Number, Body: binary(ast.BinMul, ident("n"), num("2"))}
	typeA := &ast.TypeDef{
		Identifier: "A",
		Params: []ast.Param{{Name: "n", DeclaredTypeName: types.Number}},
		Members: []ast.Member{{Method: fA}},
	}
	fB := &ast.FunctionDef{
		Name: "f",
		ReturnTypeName: types.Number,
		Body: binary(ast.BinAdd, &ast.Expression{Kind: ast.ExprCall, Name: "base"}, num("1")),
	}
	typeB := &ast.TypeDef{
		Identifier: "B",
		Params: []ast.Param{{Name: "n", DeclaredTypeName: types.Number}},
		ParentName: "A",
		ParentArgs: []*ast.Expression{ident("n")},
		Members: []ast.Member{{Method: fB}},
	}
	newB := &ast.Expression{Kind: ast.ExprNewInstance, Name: "B", Args: []*ast.Expression{num("10")}}
	callF := &ast.Expression{Kind: ast.ExprMethodAccess, Object: newB, Name: "f"}
	print := &ast.Expression{Kind: ast.ExprPrint, Body: callF}

	prog := &ast.Program{Statements: []*ast.Statement{
		{Kind: ast.StmtTypeDef, Type: typeA},
		{Kind: ast.StmtTypeDef, Type: typeB},
		{Kind: ast.StmtExpr, Expr: print},
	}}

	_, errs := Analyze(prog)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if callF.Type != types.Number {
		t.Fatalf("expected B.f() to resolve to Number, got %s", callF.Type)
	}
}

// TestIncompatibleBranchesReported checks
// `if (1 > 2) "a" elif (true) 42 else "b";`.
func TestIncompatibleBranchesReported(t *testing.T) {
	ifExpr := &ast.Expression{
		Kind: ast.ExprIf,
		Cond: binary(ast.BinGt, num("1"), num("2")),
		Body: &ast.Expression{Kind: ast.ExprString, Text: "a"},
		Elifs: []ast.IfArm{{
			Cond: &ast.Expression{Kind: ast.ExprBool, Text: "true"},
			Body: num("42"),
		}},
		Else: &ast.Expression{Kind: ast.ExprString, Text: "b"},
	}
	prog := &ast.Program{Statements: []*ast.Statement{{Kind: ast.StmtExpr, Expr: ifExpr}}}

	_, errs := Analyze(prog)
	if len(errs) == 0 {
		t.Fatal("expected an incompatible-branches error")
	}
}

// TestSelfInheritanceCycleReported checks `type T inherits T {}`.
func TestSelfInheritanceCycleReported(t *testing.T) {
	td := &ast.TypeDef{Identifier: "T", ParentName: "T"}
	prog := &ast.Program{Statements: []*ast.Statement{{Kind: ast.StmtTypeDef, Type: td}}}

	_, errs := Analyze(prog)
	if len(errs) == 0 {
		t.Fatal("expected a self-inheritance error")
	}
}

func TestUndefinedIdentifierReported(t *testing.T) {
	prog := &ast.Program{Statements: []*ast.Statement{{Kind: ast.StmtExpr, Expr: ident("nope")}}}
	_, errs := Analyze(prog)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	var perr *util.PassError
	if !asPassError(errs[0], &perr) || perr.Category != "Semantic" {
		t.Fatalf("expected a Semantic error, got %v", errs[0])
	}
}

func asPassError(err error, out **util.PassError) bool {
	pe, ok := err.(*util.PassError)
	if ok {
		*out = pe
	}
	return ok
}
