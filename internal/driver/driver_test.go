package driver

import (
	"strings"
	"testing"
)

func TestCompileArithmeticProgram(t *testing.T) {
	result, errs := Compile(`print(let x = 2, y = 3 in x * y + 1);`)
	if errs != nil {
		t.Fatalf("unexpected errors: %s", FormatErrors(errs))
	}
	if !strings.Contains(result.IR, "define i32 @main()") {
		t.Fatalf("expected a @main definition, got:\n%s", result.IR)
	}
}

func TestCompileInheritedTypeProgram(t *testing.T) {
	src := `type Animal(name: String) { sound: String = "..."; function speak(): String => self.sound; }` + ";" +
		`type Dog(name: String) inherits Animal(name) { function speak(): String => "Woof"; }` + ";" +
		`print(new Dog("Rex").speak());`
	result, errs := Compile(src)
	if errs != nil {
		t.Fatalf("unexpected errors: %s", FormatErrors(errs))
	}
	if !strings.Contains(result.IR, "%Dog_type = type") {
		t.Fatalf("expected a Dog struct type, got:\n%s", result.IR)
	}
	if !strings.Contains(result.IR, "@super_vtable") {
		t.Fatalf("expected a super-vtable global, got:\n%s", result.IR)
	}
}

func TestCompileReportsLexicalError(t *testing.T) {
	_, errs := Compile("let x = 1 in x # y;")
	if errs == nil {
		t.Fatal("expected a lexical error for an unrecognized character")
	}
}

func TestCompileReportsSemanticError(t *testing.T) {
	_, errs := Compile("print(nope);")
	if errs == nil {
		t.Fatal("expected a semantic error for an undefined identifier")
	}
}
