package driver

import (
	"testing"

	"hulkc/internal/ast"
	"hulkc/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	lx, err := lexer.New()
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	toks, lexErrs := lx.Lex(src)
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	prog, errs := Parse(toks)
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", errs)
	}
	return prog
}

func TestParseLetInArithmetic(t *testing.T) {
	prog := parseSource(t, `let x = 1, y = 2 in x + y * 3;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	e := prog.Statements[0].Expr
	if e.Kind != ast.ExprLetIn {
		t.Fatalf("expected let-in, got %v", e.Kind)
	}
	if len(e.Assigns) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(e.Assigns))
	}
	body := e.Body
	if body.Kind != ast.ExprBinary || body.BinOp != ast.BinAdd {
		t.Fatalf("expected top-level addition, got %v", body.Kind)
	}
	if body.Right.Kind != ast.ExprBinary || body.Right.BinOp != ast.BinMul {
		t.Fatalf("expected * to bind tighter than +, got %v", body.Right.Kind)
	}
}

func TestParseFunctionDef(t *testing.T) {
	prog := parseSource(t, `function add(a: Number, b: Number): Number => a + b;`)
	fn := prog.Statements[0].Function
	if fn == nil {
		t.Fatal("expected a function definition")
	}
	if fn.Name != "add" || len(fn.Params) != 2 || fn.ReturnTypeName != "Number" {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseTypeDefWithInheritance(t *testing.T) {
	src := `type Animal(name: String) { sound: String = "..."; function speak(): String => self.sound; };` +
		`type Dog(name: String) inherits Animal(name) { function speak(): String => "Woof"; };`
	prog := parseSource(t, src)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 type statements, got %d", len(prog.Statements))
	}
	dog := prog.Statements[1].Type
	if dog.Identifier != "Dog" || dog.ParentName != "Animal" {
		t.Fatalf("unexpected type shape: %+v", dog)
	}
	if len(dog.ParentArgs) != 1 {
		t.Fatalf("expected 1 parent constructor argument, got %d", len(dog.ParentArgs))
	}
}

func TestParsePropertyAccessOnNewInstance(t *testing.T) {
	prog := parseSource(t, `new Point(1, 2).x;`)
	e := prog.Statements[0].Expr
	if e.Kind != ast.ExprPropAccess || e.Name != "x" {
		t.Fatalf("expected property access on a new instance, got %+v", e)
	}
	if e.Object.Kind != ast.ExprNewInstance || e.Object.Name != "Point" {
		t.Fatalf("expected object to be a new-instance, got %+v", e.Object)
	}
}

func TestParseIfElifElse(t *testing.T) {
	prog := parseSource(t, `if (true) 1 elif (false) 2 else 3;`)
	e := prog.Statements[0].Expr
	if e.Kind != ast.ExprIf {
		t.Fatalf("expected if, got %v", e.Kind)
	}
	if len(e.Elifs) != 1 || e.Else == nil {
		t.Fatalf("expected one elif and an else arm, got %+v", e)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	prog := parseSource(t, `let x = 1 in { x := 2; self.y := 3 };`)
	block := prog.Statements[0].Expr.Body
	first := block.Exprs[0]
	if first.Kind != ast.ExprAssign || first.Name != "x" || first.Object != nil {
		t.Fatalf("expected plain identifier assignment, got %+v", first)
	}
	second := block.Exprs[1]
	if second.Kind != ast.ExprAssign || second.Name != "y" || second.Object == nil {
		t.Fatalf("expected property assignment through self, got %+v", second)
	}
}
