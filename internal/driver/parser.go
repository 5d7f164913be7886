// Package driver ties the lexer, parser, analyzer and backend into one
// source-to-IR pipeline, wiring a hand-written recursive-descent parser
// in place of a generated one.
package driver

import (
	"hulkc/internal/ast"
	"hulkc/internal/token"
	"hulkc/internal/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// parser walks a flat token slice with one token of lookahead.
type parser struct {
	tokens []token.Token
	pos int
	errs util.ErrorList
}

// precedence maps a binary operator to its binding strength; higher binds
// tighter. Every operator is left-associative except ^, which is
// right-associative. Operators absent from the table are not binary infix
// operators.
var precedence = map[token.Operator]int{
	token.OpOr: 1,
	token.OpAnd: 2,
	token.OpEq: 3,
	token.OpNeq: 3,
	token.OpGt: 4,
	token.OpGte: 4,
	token.OpLt: 4,
	token.OpLte: 4,
	token.OpConcat: 5,
	token.OpAdd: 6,
	token.OpSub: 6,
	token.OpMul: 7,
	token.OpDiv: 7,
	token.OpMod: 7,
	token.OpPow: 8,
}

var binOpFor = map[token.Operator]ast.BinOp{
	token.OpOr: ast.BinOr, token.OpAnd: ast.BinAnd,
	token.OpEq: ast.BinEq, token.OpNeq: ast.BinNeq,
	token.OpGt: ast.BinGt, token.OpGte: ast.BinGte,
	token.OpLt: ast.BinLt, token.OpLte: ast.BinLte,
	token.OpConcat: ast.BinConcat,
	token.OpAdd: ast.BinAdd, token.OpSub: ast.BinSub,
	token.OpMul: ast.BinMul, token.OpDiv: ast.BinDiv, token.OpMod: ast.BinMod,
	token.OpPow: ast.BinPow,
}

// ---------------------
// ----- functions -----
// ---------------------

// Parse builds a Program from a token stream, collecting every syntax
// error it can recover from rather than stopping at the first one.
func Parse(tokens []token.Token) (*ast.Program, []error) {
	p := &parser{tokens: tokens}
	prog := &ast.Program{}
	for !p.atEOF() {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.atEOF() {
			break
		}
		p.expectDelim(";")
	}
	return prog, p.errs.Err()
}

func (p *parser) atEOF() bool {
	return p.peek().Kind == token.KindEOF
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) isKeyword(word string) bool {
	t := p.peek()
	return t.Kind == token.KindKeyword && t.Keyword == word
}

func (p *parser) isDelim(d string) bool {
	t := p.peek()
	return t.Kind == token.KindDelimiter && t.Delim == d
}

func (p *parser) isOp(op token.Operator) bool {
	t := p.peek()
	return t.Kind == token.KindOperator && t.Op == op
}

func (p *parser) errorf(span util.Span, format string, args ...interface{}) {
	p.errs.Add(util.NewPassError("Syntactic", span, format, args...))
}

func (p *parser) expectDelim(d string) {
	if p.isDelim(d) {
		p.advance()
		return
	}
	p.errorf(p.peek().Span, "expected %q, got %v", d, p.peek())
}

func (p *parser) expectKeyword(word string) {
	if p.isKeyword(word) {
		p.advance()
		return
	}
	p.errorf(p.peek().Span, "expected keyword %q, got %v", word, p.peek())
}

func (p *parser) expectIdentifier() string {
	t := p.peek()
	if t.Kind != token.KindIdentifier {
		p.errorf(t.Span, "expected identifier, got %v", t)
		return ""
	}
	p.advance()
	return t.Text
}

// parseStatement parses one top-level function definition, type
// definition, or bare expression.
func (p *parser) parseStatement() *ast.Statement {
	switch {
	case p.isKeyword("function"):
		fn := p.parseFunctionDef()
		return &ast.Statement{Kind: ast.StmtFunctionDef, Function: fn}
	case p.isKeyword("type"):
		td := p.parseTypeDef()
		return &ast.Statement{Kind: ast.StmtTypeDef, Type: td}
	default:
		e := p.parseExpression()
		return &ast.Statement{Kind: ast.StmtExpr, Expr: e}
	}
}

// parseFunctionDef parses `function name(params): Ret => body`.
func (p *parser) parseFunctionDef() *ast.FunctionDef {
	start := p.peek().Span
	p.expectKeyword("function")
	name := p.expectIdentifier()
	params := p.parseParamList()
	retType := ""
	if p.isDelim(":") {
		p.advance()
		retType = p.expectIdentifier()
	}
	p.expectDelim("=>")
	body := p.parseExpression()
	return &ast.FunctionDef{Name: name, Params: params, ReturnTypeName: retType, Body: body, Span: start}
}

// parseParamList parses `(name: Type, ...)`.
func (p *parser) parseParamList() []ast.Param {
	p.expectDelim("(")
	var params []ast.Param
	for !p.isDelim(")") && !p.atEOF() {
		span := p.peek().Span
		name := p.expectIdentifier()
		typeName := ""
		if p.isDelim(":") {
			p.advance()
			typeName = p.expectIdentifier()
		}
		params = append(params, ast.Param{Name: name, DeclaredTypeName: typeName, Span: span})
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectDelim(")")
	return params
}

// parseArgList parses `(expr, expr, ...)`.
func (p *parser) parseArgList() []*ast.Expression {
	p.expectDelim("(")
	var args []*ast.Expression
	for !p.isDelim(")") && !p.atEOF() {
		args = append(args, p.parseExpression())
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectDelim(")")
	return args
}

// parseTypeDef parses `type Name(params) [inherits Parent(args)] { members }`.
func (p *parser) parseTypeDef() *ast.TypeDef {
	start := p.peek().Span
	p.expectKeyword("type")
	name := p.expectIdentifier()
	params := p.parseParamList()

	var parentName string
	var parentArgs []*ast.Expression
	if p.isKeyword("inherits") {
		p.advance()
		parentName = p.expectIdentifier()
		parentArgs = p.parseArgList()
	}

	p.expectDelim("{")
	var members []ast.Member
	for !p.isDelim("}") && !p.atEOF() {
		members = append(members, p.parseMember())
		p.expectDelim(";")
	}
	p.expectDelim("}")

	return &ast.TypeDef{Identifier: name, Params: params, ParentName: parentName, ParentArgs: parentArgs, Members: members, Span: start}
}

// parseMember parses one type member: a method (`function ...`) or a
// property (`name [: Type] = expr`).
func (p *parser) parseMember() ast.Member {
	if p.isKeyword("function") {
		return ast.Member{Method: p.parseFunctionDef()}
	}
	span := p.peek().Span
	name := p.expectIdentifier()
	declaredType := ""
	if p.isDelim(":") {
		p.advance()
		declaredType = p.expectIdentifier()
	}
	if p.isOp(token.OpAssign) {
		p.advance()
	} else {
		p.errorf(p.peek().Span, "expected %q in property declaration", "=")
	}
	expr := p.parseExpression()
	return ast.Member{Property: &ast.Assignment{Identifier: name, Expr: expr, DeclaredType: declaredType, Span: span}}
}

// parseExpression is the entry point for every expression-producing
// construct, starting at destructive assignment, the lowest-precedence
// operator in the grammar.
func (p *parser) parseExpression() *ast.Expression {
	return p.parseAssign()
}

func (p *parser) parseAssign() *ast.Expression {
	left := p.parseBinary(1)
	if p.isOp(token.OpDestruct) {
		span := p.peek().Span
		p.advance()
		value := p.parseAssign()
		switch left.Kind {
		case ast.ExprIdentifier:
			return &ast.Expression{Kind: ast.ExprAssign, Name: left.Text, Value: value, Span: span}
		case ast.ExprPropAccess:
			return &ast.Expression{Kind: ast.ExprAssign, Object: left.Object, Name: left.Name, Value: value, Span: span}
		default:
			p.errorf(span, "invalid assignment target")
			return &ast.Expression{Kind: ast.ExprAssign, Value: value, Span: span}
		}
	}
	return left
}

// parseBinary implements precedence climbing over the infix operator
// table (left-associative, except right-associative ^).
func (p *parser) parseBinary(minPrec int) *ast.Expression {
	left := p.parseUnary()
	for {
		t := p.peek()
		if t.Kind != token.KindOperator {
			return left
		}
		prec, ok := precedence[t.Op]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		nextMin := prec + 1
		if t.Op == token.OpPow {
			nextMin = prec // right-associative
		}
		right := p.parseBinary(nextMin)
		left = &ast.Expression{Kind: ast.ExprBinary, BinOp: binOpFor[t.Op], Left: left, Right: right, Span: t.Span}
	}
}

func (p *parser) parseUnary() *ast.Expression {
	t := p.peek()
	if t.Kind == token.KindOperator && t.Op == token.OpSub {
		p.advance()
		operand := p.parseUnary()
		return &ast.Expression{Kind: ast.ExprUnary, UnOp: ast.UnNeg, Left: operand, Span: t.Span}
	}
	if t.Kind == token.KindOperator && t.Op == token.OpNot {
		p.advance()
		operand := p.parseUnary()
		return &ast.Expression{Kind: ast.ExprUnary, UnOp: ast.UnNot, Left: operand, Span: t.Span}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// `.name` property accesses and `.name(args)` method calls.
func (p *parser) parsePostfix() *ast.Expression {
	e := p.parsePrimary()
	for p.isDelim(".") {
		span := p.peek().Span
		p.advance()
		name := p.expectIdentifier()
		if p.isDelim("(") {
			args := p.parseArgList()
			e = &ast.Expression{Kind: ast.ExprMethodAccess, Object: e, Name: name, Args: args, Span: span}
			continue
		}
		e = &ast.Expression{Kind: ast.ExprPropAccess, Object: e, Name: name, Span: span}
	}
	return e
}

func (p *parser) parsePrimary() *ast.Expression {
	t := p.peek()
	switch {
	case t.Kind == token.KindNumber:
		p.advance()
		return &ast.Expression{Kind: ast.ExprNumber, Text: t.Text, Span: t.Span}
	case t.Kind == token.KindString:
		p.advance()
		return &ast.Expression{Kind: ast.ExprString, Text: t.Text, Span: t.Span}
	case t.Kind == token.KindKeyword && t.Keyword == "true":
		p.advance()
		return &ast.Expression{Kind: ast.ExprBool, Text: "true", Span: t.Span}
	case t.Kind == token.KindKeyword && t.Keyword == "false":
		p.advance()
		return &ast.Expression{Kind: ast.ExprBool, Text: "false", Span: t.Span}
	case t.Kind == token.KindKeyword && t.Keyword == "let":
		return p.parseLetIn()
	case t.Kind == token.KindKeyword && t.Keyword == "if":
		return p.parseIf()
	case t.Kind == token.KindKeyword && t.Keyword == "while":
		return p.parseWhile()
	case t.Kind == token.KindKeyword && t.Keyword == "for":
		return p.parseFor()
	case t.Kind == token.KindKeyword && t.Keyword == "new":
		return p.parseNewInstance()
	case t.Kind == token.KindKeyword && t.Keyword == "print":
		p.advance()
		p.expectDelim("(")
		inner := p.parseExpression()
		p.expectDelim(")")
		return &ast.Expression{Kind: ast.ExprPrint, Body: inner, Span: t.Span}
	case t.Kind == token.KindDelimiter && t.Delim == "(":
		p.advance()
		inner := p.parseExpression()
		p.expectDelim(")")
		return inner
	case t.Kind == token.KindDelimiter && t.Delim == "{":
		return p.parseBlock()
	case t.Kind == token.KindIdentifier:
		p.advance()
		if p.isDelim("(") {
			args := p.parseArgList()
			return &ast.Expression{Kind: ast.ExprCall, Name: t.Text, Args: args, Span: t.Span}
		}
		return &ast.Expression{Kind: ast.ExprIdentifier, Text: t.Text, Span: t.Span}
	default:
		p.errorf(t.Span, "unexpected token %v", t)
		p.advance()
		return &ast.Expression{Kind: ast.ExprIdentifier, Text: "", Span: t.Span}
	}
}

// parseBlock parses `{ expr ; expr ; ... expr }`, the value of a block
// being its last sub-expression.
func (p *parser) parseBlock() *ast.Expression {
	start := p.peek().Span
	p.expectDelim("{")
	var exprs []*ast.Expression
	for !p.isDelim("}") && !p.atEOF() {
		exprs = append(exprs, p.parseExpression())
		if p.isDelim(";") {
			p.advance()
			continue
		}
		break
	}
	p.expectDelim("}")
	return &ast.Expression{Kind: ast.ExprBlock, Exprs: exprs, Span: start}
}

// parseLetIn parses `let name [: Type] = expr, ... in body`.
func (p *parser) parseLetIn() *ast.Expression {
	start := p.peek().Span
	p.expectKeyword("let")
	var assigns []*ast.Assignment
	for {
		span := p.peek().Span
		name := p.expectIdentifier()
		declaredType := ""
		if p.isDelim(":") {
			p.advance()
			declaredType = p.expectIdentifier()
		}
		if p.isOp(token.OpAssign) {
			p.advance()
		} else {
			p.errorf(p.peek().Span, "expected %q in let binding", "=")
		}
		expr := p.parseExpression()
		assigns = append(assigns, &ast.Assignment{Identifier: name, Expr: expr, DeclaredType: declaredType, Span: span})
		if p.isDelim(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectKeyword("in")
	body := p.parseExpression()
	return &ast.Expression{Kind: ast.ExprLetIn, Assigns: assigns, Body: body, Span: start}
}

// parseIf parses `if (cond) body (elif (cond) body)* (else body)?`.
func (p *parser) parseIf() *ast.Expression {
	start := p.peek().Span
	p.expectKeyword("if")
	p.expectDelim("(")
	cond := p.parseExpression()
	p.expectDelim(")")
	body := p.parseExpression()

	e := &ast.Expression{Kind: ast.ExprIf, Cond: cond, Body: body, Span: start}
	for p.isKeyword("elif") {
		p.advance()
		p.expectDelim("(")
		armCond := p.parseExpression()
		p.expectDelim(")")
		armBody := p.parseExpression()
		e.Elifs = append(e.Elifs, ast.IfArm{Cond: armCond, Body: armBody})
	}
	if p.isKeyword("else") {
		p.advance()
		e.Else = p.parseExpression()
	}
	return e
}

func (p *parser) parseWhile() *ast.Expression {
	start := p.peek().Span
	p.expectKeyword("while")
	p.expectDelim("(")
	cond := p.parseExpression()
	p.expectDelim(")")
	body := p.parseExpression()
	return &ast.Expression{Kind: ast.ExprWhile, Cond: cond, Body: body, Span: start}
}

// parseFor parses `for (name in start : end) body`.
func (p *parser) parseFor() *ast.Expression {
	start := p.peek().Span
	p.expectKeyword("for")
	p.expectDelim("(")
	varName := p.expectIdentifier()
	p.expectKeyword("in")
	startExpr := p.parseBinary(1)
	p.expectDelim(":")
	endExpr := p.parseBinary(1)
	p.expectDelim(")")
	body := p.parseExpression()
	return &ast.Expression{Kind: ast.ExprFor, Var: varName, Start: startExpr, End: endExpr, Body: body, Span: start}
}

func (p *parser) parseNewInstance() *ast.Expression {
	start := p.peek().Span
	p.expectKeyword("new")
	name := p.expectIdentifier()
	args := p.parseArgList()
	return &ast.Expression{Kind: ast.ExprNewInstance, Name: name, Args: args, Span: start}
}
