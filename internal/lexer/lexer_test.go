package lexer

import (
	"testing"

	"hulkc/internal/token"
)

func mustLex(t *testing.T, src string) []token.Token {
	t.Helper()
	l, err := New()
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	toks, errs := l.Lex(src)
	if errs != nil {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	return toks
}

func TestLexLetExpression(t *testing.T) {
	toks := mustLex(t, "let x = 5 in x + x;")
	want := []token.Token{
		{Kind: token.KindKeyword, Keyword: "let"},
		{Kind: token.KindIdentifier, Text: "x"},
		{Kind: token.KindOperator, Op: token.OpAssign},
		{Kind: token.KindNumber, Text: "5"},
		{Kind: token.KindKeyword, Keyword: "in"},
		{Kind: token.KindIdentifier, Text: "x"},
		{Kind: token.KindOperator, Op: token.OpAdd},
		{Kind: token.KindIdentifier, Text: "x"},
		{Kind: token.KindDelimiter, Delim: ";"},
		{Kind: token.KindEOF},
	}
	assertKinds(t, toks, want)
}

func TestKeywordWinsIdentifierTie(t *testing.T) {
	toks := mustLex(t, "if")
	if len(toks) != 2 || toks[0].Kind != token.KindKeyword || toks[0].Keyword != "if" {
		t.Fatalf("expected \"if\" to lex as the IF keyword, got %v", toks)
	}
}

func TestLongerOperatorWinsOverPrefix(t *testing.T) {
	toks := mustLex(t, ">= > :=")
	want := []token.Operator{token.OpGte, token.OpGt, token.OpDestruct}
	for i, op := range want {
		if toks[i].Kind != token.KindOperator || toks[i].Op != op {
			t.Fatalf("token %d: expected operator %v, got %v", i, op, toks[i])
		}
	}
}

func TestStringLiteralAndConcat(t *testing.T) {
	toks := mustLex(t, `print("hi" @ " world");`)
	if toks[2].Kind != token.KindString || toks[2].Text != "hi" {
		t.Fatalf("expected string literal \"hi\", got %v", toks[2])
	}
	if toks[3].Kind != token.KindOperator || toks[3].Op != token.OpConcat {
		t.Fatalf("expected concat operator, got %v", toks[3])
	}
}

func TestWhitespaceAndCommentsIgnored(t *testing.T) {
	toks := mustLex(t, "x // a trailing comment\n + y")
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens (x, +, y, EOF), got %d: %v", len(toks), toks)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := mustLex(t, "x\ny")
	if toks[0].Line != 1 || toks[1].Line != 2 {
		t.Fatalf("expected x on line 1 and y on line 2, got %d and %d", toks[0].Line, toks[1].Line)
	}
}

func TestUnexpectedCharacterReportsLexicalError(t *testing.T) {
	l, err := New()
	if err != nil {
		t.Fatal(err)
	}
	_, errs := l.Lex("x $ y")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one lexical error, got %v", errs)
	}
}

func assertKinds(t *testing.T, got, want []token.Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Kind != w.Kind {
			t.Fatalf("token %d: expected kind %v, got %v", i, w.Kind, g.Kind)
		}
		switch w.Kind {
		case token.KindKeyword:
			if g.Keyword != w.Keyword {
				t.Fatalf("token %d: expected keyword %q, got %q", i, w.Keyword, g.Keyword)
			}
		case token.KindOperator:
			if g.Op != w.Op {
				t.Fatalf("token %d: expected operator %v, got %v", i, w.Op, g.Op)
			}
		case token.KindDelimiter:
			if g.Delim != w.Delim {
				t.Fatalf("token %d: expected delimiter %q, got %q", i, w.Delim, g.Delim)
			}
		case token.KindIdentifier, token.KindNumber, token.KindString:
			if g.Text != w.Text {
				t.Fatalf("token %d: expected text %q, got %q", i, w.Text, g.Text)
			}
		}
	}
}
