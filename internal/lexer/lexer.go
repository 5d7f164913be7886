// Package lexer implements the longest-match tokenizer: it compiles the
// closed rule set into a DFA once, then drives that DFA byte by byte
// over the source, tracking line/column and filtering ignorable matches
// (whitespace, comments).
package lexer

import (
	"fmt"

	"hulkc/internal/lexgen"
	"hulkc/internal/token"
	"hulkc/internal/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Lexer owns a compiled DFA and the rule table used to turn a winning rule
// kind back into a token.Token.
type Lexer struct {
	dfa lexgen.DFA
	ignorable map[string]bool
	byKind map[string]ruleSpec
}

// ---------------------
// ----- functions -----
// ---------------------

// New compiles the closed rule set into a DFA. The compilation is
// deterministic and has no dependency on the source being lexed, so one
// Lexer can be reused across files.
func New() (*Lexer, error) {
	rs := rules()
	lgRules := make([]lexgen.Rule, len(rs))
	byKind := make(map[string]ruleSpec, len(rs))
	for i, r := range rs {
		lgRules[i] = lexgen.Rule{Kind: r.kind, Regex: r.regex, Ignorable: r.ignorable}
		byKind[r.kind] = r
	}
	dfa, ignorable, err := lexgen.Compile(lgRules)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return &Lexer{dfa: dfa, ignorable: ignorable, byKind: byKind}, nil
}

// Lex runs the DFA as a longest-match scanner over src, returning the
// resulting token stream, or a list of lexical errors if any unexpected
// character was encountered. Ignorable rule matches
// (whitespace, comments) are filtered from the returned stream.
func (l *Lexer) Lex(src string) ([]token.Token, []error) {
	var toks []token.Token
	var errs []error

	i := 0
	line := 1
	lineStart := 0 // byte offset of the current line's first character

	for i < len(src) {
		lastAccept := -1
		lastKind := ""
		state := l.dfa.Start
		j := i
		if _, ok := l.dfa.Accepting[state]; ok {
			lastAccept = i
			lastKind = l.dfa.Accepting[state]
		}
		for j < len(src) {
			next, ok := l.dfa.Step(state, src[j])
			if !ok {
				break
			}
			state = next
			j++
			if kind, ok := l.dfa.Accepting[state]; ok {
				lastAccept = j
				lastKind = kind
			}
		}

		if lastAccept == -1 {
			c := src[i]
			errs = append(errs, fmt.Errorf("Lexical Error: Unexpected character '%c' at line %d, column %d", c, line, i-lineStart+1))
			if c == '\n' {
				line++
				lineStart = i + 1
			}
			i++
			continue
		}

		fragment := src[i:lastAccept]
		colStart := i - lineStart + 1
		startLine := line
		for k := i; k < lastAccept; k++ {
			if src[k] == '\n' {
				line++
				lineStart = k + 1
			}
		}
		colEnd := lastAccept - lineStart + 1

		if !l.ignorable[lastKind] {
			spec, ok := l.byKind[lastKind]
			if !ok || spec.build == nil {
				errs = append(errs, fmt.Errorf("lexer: rule %q has no token builder", lastKind))
			} else {
				tok := spec.build(fragment)
				tok.Line = startLine
				tok.ColStart = colStart
				tok.ColEnd = colEnd
				tok.Span = util.Span{Start: i, End: lastAccept}
				toks = append(toks, tok)
			}
		}

		i = lastAccept
	}

	toks = append(toks, token.Token{Kind: token.KindEOF, Line: line, ColStart: i - lineStart + 1, ColEnd: i - lineStart + 1, Span: util.Span{Start: i, End: i}})

	if len(errs) > 0 {
		return nil, errs
	}
	return toks, nil
}
