package lexgen

import "testing"

// accepts runs the DFA as a whole-string matcher: true if the entire input is
// accepted (used to test NFA/DFA equivalence).
func (d DFA) accepts(s string) bool {
	state := d.Start
	for i := 0; i < len(s); i++ {
		next, ok := d.Step(state, s[i])
		if !ok {
			return false
		}
		state = next
	}
	_, accepted := d.Accepting[state]
	return accepted
}

func TestCompileSimpleLiteral(t *testing.T) {
	dfa, _, err := Compile([]Rule{{Kind: "ABC", Regex: "abc"}})
	if err != nil {
		t.Fatal(err)
	}
	if !dfa.accepts("abc") {
		t.Fatal("expected \"abc\" to be accepted")
	}
	if dfa.accepts("ab") || dfa.accepts("abcd") || dfa.accepts("") {
		t.Fatal("expected only the exact literal to be accepted")
	}
}

func TestCompileUnionAndStar(t *testing.T) {
	dfa, _, err := Compile([]Rule{{Kind: "AB_STAR", Regex: "(a|b)*"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"", "a", "b", "aaab", "bababa"} {
		if !dfa.accepts(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}
	if dfa.accepts("ac") {
		t.Fatal("expected \"ac\" to be rejected")
	}
}

func TestCompileCharClassAndStar(t *testing.T) {
	dfa, _, err := Compile([]Rule{{Kind: "IDENT", Regex: "[a-zA-Z_][a-zA-Z0-9_]*"}})
	if err != nil {
		t.Fatal(err)
	}
	if !dfa.accepts("_x1") || !dfa.accepts("Foo123") {
		t.Fatal("expected identifier-shaped strings to be accepted")
	}
	if dfa.accepts("1abc") {
		t.Fatal("expected a leading digit to be rejected")
	}
}

func TestPriorityResolvesTies(t *testing.T) {
	// "if" matches both the keyword rule (priority 0) and the identifier
	// rule (priority 1); the earlier-listed rule must win.
	rules := []Rule{
		{Kind: "IF", Regex: "if"},
		{Kind: "IDENT", Regex: "[a-z]+"},
	}
	dfa, _, err := Compile(rules)
	if err != nil {
		t.Fatal(err)
	}
	state := dfa.Start
	for i := 0; i < 2; i++ {
		next, ok := dfa.Step(state, "if"[i])
		if !ok {
			t.Fatalf("expected a transition on %q", "if"[i:i+1])
		}
		state = next
	}
	kind, ok := dfa.Accepting[state]
	if !ok || kind != "IF" {
		t.Fatalf("expected IF to win priority tie-break, got %q (ok=%v)", kind, ok)
	}
}

func TestOptional(t *testing.T) {
	dfa, _, err := Compile([]Rule{{Kind: "COLON_EQ", Regex: ":=?"}})
	if err != nil {
		t.Fatal(err)
	}
	if !dfa.accepts(":") || !dfa.accepts(":=") {
		t.Fatal("expected both ':' and ':=' to be accepted")
	}
	if dfa.accepts(":==") {
		t.Fatal("expected \":==\" to be rejected")
	}
}

func TestIgnorableRulesAreFlagged(t *testing.T) {
	_, ignorable, err := Compile([]Rule{
		{Kind: "WS", Regex: "[ \\t\\n]+", Ignorable: true},
		{Kind: "IDENT", Regex: "[a-z]+"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ignorable["WS"] {
		t.Fatal("expected WS to be marked ignorable")
	}
	if ignorable["IDENT"] {
		t.Fatal("expected IDENT to not be marked ignorable")
	}
}
