package lexgen

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Accepting pairs an accepting LexerNFA state with the token kind and
// priority (declaration order, lowest wins) of the rule that produced it.
type Accepting struct {
	Kind string
	Priority int
}

// LexerNFA merges n per-rule NFAs into one automaton sharing a single
// synthetic start state. kinds[i] is the token kind emitted by rule i;
// priority is simply i, so "earliest listed wins".
type LexerNFA struct {
	transitionTable
	Start int
	Accepting map[int]Accepting // state -> winning rule's (kind, priority)
}

// ---------------------
// ----- functions -----
// ---------------------

// NewLexerNFA composites the given rule NFAs (in priority order, lowest
// index = highest priority) into a single LexerNFA.
func NewLexerNFA(rules []NFA, kinds []string) LexerNFA {
	start := 0
	maxState := start
	tt := newTransitionTable()
	accepting := make(map[int]Accepting)

	for priority, rule := range rules {
		offset := maxState + 1
		tt.addTransition(start, symbolEpsilon, rule.Start+offset)

		for k, set := range rule.transitions {
			shiftedOrigin := k.state + offset
			if shiftedOrigin > maxState {
				maxState = shiftedOrigin
			}
			for to := range set {
				shiftedTo := to + offset
				if shiftedTo > maxState {
					maxState = shiftedTo
				}
				tt.addTransition(shiftedOrigin, k.symbol, shiftedTo)
			}
		}
		accepting[rule.Accept+offset] = Accepting{Kind: kinds[priority], Priority: priority}
	}

	return LexerNFA{transitionTable: tt, Start: start, Accepting: accepting}
}
