package backend

import (
	"strings"
	"testing"

	"hulkc/internal/ast"
	"hulkc/internal/sema"
)

func num(n string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprNumber, Text: n}
}

func ident(name string) *ast.Expression {
	return &ast.Expression{Kind: ast.ExprIdentifier, Text: name}
}

func TestGenerateModuleArithmeticProgram(t *testing.T) {
	letIn := &ast.Expression{
		Kind:    ast.ExprLetIn,
		Assigns: []*ast.Assignment{{Identifier: "x", Expr: num("5")}},
		Body:    &ast.Expression{Kind: ast.ExprBinary, BinOp: ast.BinAdd, Left: ident("x"), Right: num("3")},
	}
	print := &ast.Expression{Kind: ast.ExprPrint, Body: letIn}
	prog := &ast.Program{Statements: []*ast.Statement{{Kind: ast.StmtExpr, Expr: print}}}

	tree, errs := sema.Analyze(prog)
	if errs != nil {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}

	ir, backendErrs := GenerateModule(prog, tree)
	if backendErrs != nil {
		t.Fatalf("unexpected backend errors: %v", backendErrs)
	}
	if !strings.Contains(ir, "define i32 @main()") {
		t.Fatalf("expected a @main definition, got:\n%s", ir)
	}
	if !strings.Contains(ir, "fadd double") {
		t.Fatalf("expected a floating-point add instruction, got:\n%s", ir)
	}
	if !strings.Contains(ir, "declare i32 @printf") {
		t.Fatalf("expected a printf declaration, got:\n%s", ir)
	}
}

func TestGenerateModuleInheritedMethodDispatch(t *testing.T) {
	fA := &ast.FunctionDef{Name: "f", ReturnTypeName: "Number", Body: num("1")}
	typeA := &ast.TypeDef{Identifier: "A", Members: []ast.Member{{Method: fA}}}

	fB := &ast.FunctionDef{
		Name:           "f",
		ReturnTypeName: "Number",
		Body:           &ast.Expression{Kind: ast.ExprBinary, BinOp: ast.BinAdd, Left: &ast.Expression{Kind: ast.ExprCall, Name: "base"}, Right: num("1")},
	}
	typeB := &ast.TypeDef{Identifier: "B", ParentName: "A", Members: []ast.Member{{Method: fB}}}

	newB := &ast.Expression{Kind: ast.ExprNewInstance, Name: "B"}
	callF := &ast.Expression{Kind: ast.ExprMethodAccess, Object: newB, Name: "f"}
	print := &ast.Expression{Kind: ast.ExprPrint, Body: callF}

	prog := &ast.Program{Statements: []*ast.Statement{
		{Kind: ast.StmtTypeDef, Type: typeA},
		{Kind: ast.StmtTypeDef, Type: typeB},
		{Kind: ast.StmtExpr, Expr: print},
	}}

	tree, errs := sema.Analyze(prog)
	if errs != nil {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}

	ir, backendErrs := GenerateModule(prog, tree)
	if backendErrs != nil {
		t.Fatalf("unexpected backend errors: %v", backendErrs)
	}
	if !strings.Contains(ir, "@super_vtable") {
		t.Fatalf("expected a super-vtable global, got:\n%s", ir)
	}
	if !strings.Contains(ir, "%A_type = type") || !strings.Contains(ir, "%B_type = type") {
		t.Fatalf("expected both A and B struct types, got:\n%s", ir)
	}
}

func TestGenerateModuleStringConcat(t *testing.T) {
	concat := &ast.Expression{
		Kind:  ast.ExprBinary,
		BinOp: ast.BinConcat,
		Left:  &ast.Expression{Kind: ast.ExprString, Text: "a"},
		Right: &ast.Expression{Kind: ast.ExprString, Text: "b"},
	}
	print := &ast.Expression{Kind: ast.ExprPrint, Body: concat}
	prog := &ast.Program{Statements: []*ast.Statement{{Kind: ast.StmtExpr, Expr: print}}}

	tree, errs := sema.Analyze(prog)
	if errs != nil {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}

	ir, backendErrs := GenerateModule(prog, tree)
	if backendErrs != nil {
		t.Fatalf("unexpected backend errors: %v", backendErrs)
	}
	for _, want := range []string{"@strlen", "@strcpy", "@strcat", "@malloc"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("expected a declaration of %s, got:\n%s", want, ir)
		}
	}
}
