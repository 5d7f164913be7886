package driver

import (
	"fmt"

	"hulkc/internal/ast"
	"hulkc/internal/backend"
	"hulkc/internal/lexer"
	"hulkc/internal/sema"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Result carries every artifact a Compile run produced, even a partial
// one, so a caller (a test, or cmd/hulkc) can report diagnostics from
// whichever pass failed first.
type Result struct {
	Program *ast.Program
	IR string
}

// ---------------------
// ----- functions -----
// ---------------------

// Compile runs the full pipeline: lexing, parsing, semantic analysis and
// LLVM-IR generation, stopping at the first pass that reports errors.
func Compile(source string) (*Result, []error) {
	lx, err := lexer.New()
	if err != nil {
		return nil, []error{err}
	}
	tokens, lexErrs := lx.Lex(source)
	if len(lexErrs) > 0 {
		return nil, lexErrs
	}

	prog, parseErrs := Parse(tokens)
	if len(parseErrs) > 0 {
		return &Result{Program: prog}, parseErrs
	}

	tree, semaErrs := sema.Analyze(prog)
	if len(semaErrs) > 0 {
		return &Result{Program: prog}, semaErrs
	}

	ir, backendErrs := backend.GenerateModule(prog, tree)
	if len(backendErrs) > 0 {
		return &Result{Program: prog}, backendErrs
	}

	return &Result{Program: prog, IR: ir}, nil
}

// FormatErrors renders a pass's error list as one newline-joined string,
// the shape cmd/hulkc prints to stderr.
func FormatErrors(errs []error) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%s", e)
	}
	return out
}
