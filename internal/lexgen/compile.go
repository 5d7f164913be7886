package lexgen

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Rule is one entry of the lexer rule format consumed by the lexer
// generator: a token kind, its regex, and whether matches of
// this rule are discarded from the output stream (whitespace, comments).
type Rule struct {
	Kind string
	Regex string
	Ignorable bool
}

// ---------------------
// ----- functions -----
// ---------------------

// Compile turns an ordered list of Rules into a deterministic matcher:
// parse every rule's regex, Thompson-construct its NFA, merge all NFAs by
// priority (declaration order), then subset-construct the DFA. Returns the
// DFA plus the set of kinds that should be filtered as ignorable once
// matched.
func Compile(rules []Rule) (DFA, map[string]bool, error) {
	if len(rules) == 0 {
		return DFA{}, nil, fmt.Errorf("lexgen: no rules given")
	}
	b := NewBuilder()
	nfas := make([]NFA, len(rules))
	kinds := make([]string, len(rules))
	ignorable := make(map[string]bool, len(rules))
	for i, r := range rules {
		expr, err := Parse(r.Regex)
		if err != nil {
			return DFA{}, nil, fmt.Errorf("lexgen: rule %q: %w", r.Kind, err)
		}
		nfas[i] = b.Build(expr)
		kinds[i] = r.Kind
		if r.Ignorable {
			ignorable[r.Kind] = true
		}
	}
	lnfa := NewLexerNFA(nfas, kinds)
	return BuildDFA(lnfa), ignorable, nil
}
