package ast

import "github.com/fablang/fabc/internal/token"

// UnaryOp identifies a unary operator, symbolic or Latin-word.
type UnaryOp int

const (
	UnaryNeg       UnaryOp = iota // -x
	UnaryPos                      // +x
	UnaryNot                      // !x or `non x`
	UnaryIsEmpty                  // `vacuum x`
	UnaryIsNull                   // `nullum x`
	UnarySign                     // `signum x`
	UnaryAwait                    // `expecta x`
	UnaryNew                      // `novum Type(args)` — receiver is the constructor call itself
	UnaryCompileTime              // `computa { ... }` — macro/compile-time evaluation block
)

// UnaryExpr is a prefix unary operation.
type UnaryExpr struct {
	ExprBase
	Op        UnaryOp
	Operand   Expression
	IsKeyword bool // true when Op came from a Latin word, not a symbol
}

// BinaryOp identifies a binary operator family.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinLogicalAnd // `et` / &&
	BinLogicalOr  // `aut` / ||
	BinNullish    // `vel` / ??
	BinRange      // `..`
	BinRangeIncl  // `usque ..` inclusive range
	BinShiftLeft  // `sinistrorsum` (postfix keyword, modeled as a binary op)
	BinShiftRight // `dextrorsum`
	BinTypeCheck  // `est` (is)
)

// BinaryExpr is a binary operation. Generators parenthesize every
// BinaryExpr's operands unconditionally to preserve precedence without
// carrying a precedence table into the emitter (spec.md §4.6).
type BinaryExpr struct {
	ExprBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// TernaryExpr covers both the symbolic `cond ? a : b` and a keyword form
// (parsed identically, IsKeyword records which surface syntax was used so
// the fab round-trip emitter can reproduce it).
type TernaryExpr struct {
	ExprBase
	Cond      Expression
	Then      Expression
	Else      Expression
	IsKeyword bool
}

// ChainFlavor distinguishes plain member/call chains from optional-chaining
// and non-null-assertion variants (spec.md invariant iv: mutually exclusive).
type ChainFlavor int

const (
	ChainPlain ChainFlavor = iota
	ChainOptional
	ChainNonNull
)

// MemberExpr is `obj.field`, `obj?.field`, or `obj!.field`.
type MemberExpr struct {
	ExprBase
	Object Expression
	Name   string
	Flavor ChainFlavor
}

// IndexExpr is `obj[index]`.
type IndexExpr struct {
	ExprBase
	Object Expression
	Index  Expression
	Flavor ChainFlavor
}

// CallExpr is `callee(args)`, `callee?.(args)`, or `callee!(args)`.
type CallExpr struct {
	ExprBase
	Callee Expression
	Args   []Expression
	Flavor ChainFlavor
}

// CastExpr is `expr tamquam Type` — an unchecked reinterpretation.
type CastExpr struct {
	ExprBase
	Value Expression
	Type  TypeExpression
}

// ConversionExpr is `expr tamquam Type vel fallback` — a checked conversion
// with an optional fallback value (nil Fallback means "error on failure").
type ConversionExpr struct {
	ExprBase
	Value    Expression
	Type     TypeExpression
	Fallback Expression
}

// LambdaParam is one parameter of a lambda.
type LambdaParam struct {
	Name string
	Type TypeExpression // nil if unannotated
}

// LambdaExpr is a block- or expression-bodied lambda, sync or async.
type LambdaExpr struct {
	ExprBase
	Params     []LambdaParam
	Body       []Statement // len==1 and ExprBody set for expression-bodied lambdas
	ExprBody   Expression
	IsAsync    bool
	IsBlock    bool
}

// VariantConstructExpr builds a discretio case value: `Click(x, y)` or
// `Click { x: 1, y: 2 }`, tagged explicitly by the `novum` keyword when the
// source spells it that way.
type VariantConstructExpr struct {
	ExprBase
	CaseName string
	Args     []Expression
	Fields   []ObjectProperty // used instead of Args for the brace form
}

// PipelineVerb is one DSL verb chained between an iteration source and its
// binding (spec.md §4.3 "State machine for iteration").
type PipelineVerb struct {
	Kind     token.Keyword // KwPrimum, KwPostremum, KwSumma, KwOrdina, KwCarpe, KwGrex, KwNumera, KwMaximum, KwMinimum, KwMedia
	N        Expression    // for primum/postremum
	Property string        // for summa/ordina/carpe/grex "secundum prop"
	Descending bool
}

// DSLPipelineExpr is a collection expression with chained verbs, e.g.
// `xs, ordina secundum "age" descendenter, primum 3`.
type DSLPipelineExpr struct {
	ExprBase
	Source Expression
	Verbs  []PipelineVerb
}

// FilterExpr is a predicate-filter expression over a collection, e.g.
// `xs ubi x -> x.age > 18` ("ubi" = "where").
type FilterExpr struct {
	ExprBase
	Source    Expression
	ParamName string
	Predicate Expression
}
