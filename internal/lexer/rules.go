package lexer

import "hulkc/internal/token"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// ruleSpec pairs a lexgen.Rule with the function that turns its matched
// fragment into a token.Token: one ordered table drives both the
// matcher and the token it produces, so the grammar and the rule set
// can never drift apart.
type ruleSpec struct {
	kind string
	regex string
	ignorable bool
	build func(fragment string) token.Token
}

// ---------------------
// ----- functions -----
// ---------------------

func keywordRule(word string) ruleSpec {
	return ruleSpec{
		kind: "kw_" + word,
		regex: word,
		build: func(fragment string) token.Token {
			return token.Token{Kind: token.KindKeyword, Keyword: fragment}
		},
	}
}

func operatorRule(kind, regex string, op token.Operator) ruleSpec {
	return ruleSpec{
		kind: kind,
		regex: regex,
		build: func(fragment string) token.Token {
			return token.Token{Kind: token.KindOperator, Op: op}
		},
	}
}

func delimiterRule(kind, regex, delim string) ruleSpec {
	return ruleSpec{
		kind: kind,
		regex: regex,
		build: func(fragment string) token.Token {
			return token.Token{Kind: token.KindDelimiter, Delim: delim}
		},
	}
}

// rules returns the closed rule set for this language's grammar, in
// priority order: keywords before the identifier rule (so e.g. "if"
// wins the tie against [a-zA-Z_][a-zA-Z0-9_]*), longer operator
// spellings before their single-character prefixes (">=" before ">",
// "==" before an eventual bare "="), and whitespace/comments marked
// ignorable.
func rules() []ruleSpec {
	var rs []ruleSpec

	// Keywords. Declared before IDENT so priority resolves
	// the identifier/keyword tie in the keyword's favor.
	for _, kw := range token.Keywords {
		rs = append(rs, keywordRule(kw))
	}

	// Two-character operators before their one-character prefixes.
	rs = append(rs,
		operatorRule("op_eq", "==", token.OpEq),
		operatorRule("op_neq", "!=", token.OpNeq),
		operatorRule("op_gte", ">=", token.OpGte),
		operatorRule("op_lte", "<=", token.OpLte),
		operatorRule("op_dassign", ":=", token.OpDestruct),
	)

	rs = append(rs,
		operatorRule("op_add", "\\+", token.OpAdd),
		operatorRule("op_sub", "-", token.OpSub),
		operatorRule("op_mul", "\\*", token.OpMul),
		operatorRule("op_div", "/", token.OpDiv),
		operatorRule("op_mod", "%", token.OpMod),
		operatorRule("op_pow", "\\^", token.OpPow),
		operatorRule("op_gt", ">", token.OpGt),
		operatorRule("op_lt", "<", token.OpLt),
		operatorRule("op_assign", "=", token.OpAssign),
		operatorRule("op_concat", "@", token.OpConcat),
		operatorRule("op_and", "&", token.OpAnd),
		operatorRule("op_or", "\\|", token.OpOr),
		operatorRule("op_not", "!", token.OpNot),
	)

	rs = append(rs,
		delimiterRule("delim_arrow", "=>", "=>"),
		delimiterRule("delim_semicolon", ";", ";"),
		delimiterRule("delim_colon", ":", ":"),
		delimiterRule("delim_comma", ",", ","),
		delimiterRule("delim_dot", "\\.", "."),
		delimiterRule("delim_lparen", "\\(", "("),
		delimiterRule("delim_rparen", "\\)", ")"),
		delimiterRule("delim_lbrace", "\\{", "{"),
		delimiterRule("delim_rbrace", "\\}", "}"),
	)

	rs = append(rs, ruleSpec{
		kind: "ident",
		regex: "[a-zA-Z_][a-zA-Z0-9_]*",
		build: func(fragment string) token.Token {
			return token.Token{Kind: token.KindIdentifier, Text: fragment}
		},
	})

	rs = append(rs, ruleSpec{
		kind: "number",
		regex: "[0-9]+(\\.[0-9]+)?",
		build: func(fragment string) token.Token {
			return token.Token{Kind: token.KindNumber, Text: fragment}
		},
	})

	rs = append(rs, ruleSpec{
		kind: "string",
		regex: "\"[^\"]*\"",
		build: func(fragment string) token.Token {
			return token.Token{Kind: token.KindString, Text: fragment[1 : len(fragment)-1]}
		},
	})

	rs = append(rs, ruleSpec{
		kind: "line_comment",
		regex: "//[^\\n]*",
		ignorable: true,
		build: nil,
	})

	rs = append(rs, ruleSpec{
		kind: "ws",
		regex: "[ \\t\\r\\n]+",
		ignorable: true,
		build: nil,
	})

	return rs
}
