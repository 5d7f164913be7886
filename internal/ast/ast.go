// Package ast defines the tagged-union expression and statement model: a
// Statement union of {expression, function-def, type-def}, and the
// Assignment, FunctionDef and TypeDef records every statement variant is
// built from. Node shapes are small and fixed per variant, so each
// expression kind gets its own struct field set rather than a generic
// n-ary tree with an interface{} payload.
package ast

import "hulkc/internal/util"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// ExprKind tags the variant held by an Expression.
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprBool
	ExprString
	ExprIdentifier
	ExprCall
	ExprWhile
	ExprFor
	ExprBlock
	ExprBinary
	ExprUnary
	ExprIf
	ExprLetIn
	ExprAssign
	ExprNewInstance
	ExprPropAccess
	ExprMethodAccess
	ExprPrint
)

// BinOp is the closed set of binary operators an ExprBinary node may carry.
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinEq
	BinNeq
	BinGt
	BinGte
	BinLt
	BinLte
	BinAnd
	BinOr
	BinConcat
)

// UnOp is the closed set of unary operators an ExprUnary node may carry.
type UnOp int

const (
	UnNeg UnOp = iota // arithmetic negation
	UnNot // boolean negation
)

// Expression is the single tagged union. Exactly the
// fields relevant to Kind are populated; every node carries an optional
// resolved type and a source span regardless of variant.
type Expression struct {
	Kind ExprKind
	Span util.Span
	Type string // resolved type name, "" until the analyzer annotates it

	// ExprNumber / ExprBool / ExprString / ExprIdentifier
	Text string

	// ExprCall: Name(Args...); also used for base(...) calls inside methods.
	Name string
	Args []*Expression

	// ExprWhile: Cond, Body. ExprFor additionally uses Var/Start/End.
	Cond *Expression
	Body *Expression
	Var string
	Start *Expression
	End *Expression

	// ExprBlock: ordered sub-expressions; value is the last one's type.
	Exprs []*Expression

	// ExprBinary / ExprUnary
	BinOp BinOp
	UnOp UnOp
	Left *Expression
	Right *Expression

	// ExprIf: Cond/Body hold the leading `if` arm; Elifs holds each `elif`
	// arm (Cond non-nil); Else, if non-nil, is the trailing condition-less
	// arm.
	Elifs []IfArm
	Else *Expression

	// ExprLetIn: Assigns in declaration order, then Body.
	Assigns []*Assignment

	// ExprAssign: target (`Name` identifier, or `Object`+`Name` property
	// access through self) := Value.
	Object *Expression // non-nil when assigning through a property access
	Value *Expression

	// ExprNewInstance: `new Name(Args)`.
	// ExprPropAccess: Object.Name.
	// ExprMethodAccess: Object.Name(Args), reusing Name/Args above.
}

var binOpNames = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%", BinPow: "^",
	BinEq: "==", BinNeq: "!=", BinGt: ">", BinGte: ">=", BinLt: "<", BinLte: "<=",
	BinAnd: "&", BinOr: "|", BinConcat: "@",
}

// String returns the operator's surface spelling, for error messages.
func (b BinOp) String() string {
	if int(b) < 0 || int(b) >= len(binOpNames) {
		return "?"
	}
	return binOpNames[b]
}

// IfArm is one `elif (Cond) Body` arm.
type IfArm struct {
	Cond *Expression
	Body *Expression
}

// Assignment is one `identifier[: Type] = expression` binding, used both
// by let-in bindings and by type property declarations.
type Assignment struct {
	Identifier string
	Expr *Expression
	DeclaredType string // "" if no `: Type` annotation was written
	ResolvedType string
	Span util.Span
}

// Param is one function or constructor parameter.
type Param struct {
	Name string
	DeclaredTypeName string
	ResolvedType string // filled in by the analyzer
	Span util.Span
}

// FunctionDef is a top-level or method function definition.
type FunctionDef struct {
	Name string
	Params []Param
	ReturnTypeName string
	Body *Expression
	ResolvedReturn string
	Span util.Span
}

// Member tags whether a TypeDef member is a Property or a Method.
type Member struct {
	Property *Assignment
	Method *FunctionDef
}

// TypeDef is a user type declaration: a name, constructor
// params, an optional parent with parent-constructor arguments evaluated
// in the child's scope, and an ordered member list.
type TypeDef struct {
	Identifier string
	Params []Param
	ParentName string // "" when there is no `inherits` clause
	ParentArgs []*Expression
	Members []Member
	ResolvedType string
	Span util.Span
}

// StmtKind tags the variant held by a Statement.
type StmtKind int

const (
	StmtExpr StmtKind = iota
	StmtFunctionDef
	StmtTypeDef
)

// Statement is the top-level union: a bare expression, a function
// definition, or a type definition.
type Statement struct {
	Kind StmtKind
	Expr *Expression
	Function *FunctionDef
	Type *TypeDef
}

// Program is an ordered list of top-level statements, the root the
// analyzer and backend both walk.
type Program struct {
	Statements []*Statement
}
