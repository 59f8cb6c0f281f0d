package ast

// NamedType is a type reference by name, optionally parameterized and/or
// nullable (`lista<numerus>?`). Ownership is the optional preposition prefix
// (e.g. "mutable borrow" style annotations used by ownership-aware targets;
// spec.md §3 "ownership preposition prefix").
type NamedType struct {
	BaseNode
	Name      string
	Params    []TypeExpression
	Nullable  bool
	Ownership string // "", "cum" (shared), "per" (mutable) — empty on GC'd-target-only code
}

func (*NamedType) typeExpressionNode() {}

// ArrayTypeShorthand is `T[]`.
type ArrayTypeShorthand struct {
	BaseNode
	Element TypeExpression
}

func (*ArrayTypeShorthand) typeExpressionNode() {}

// FunctionType is `(params) -> Result`.
type FunctionType struct {
	BaseNode
	Params []TypeExpression
	Result TypeExpression
}

func (*FunctionType) typeExpressionNode() {}

// UnionType is a union type, parsed from `A | B | C`; the parser has no
// production for the reserved `instar` word.
type UnionType struct {
	BaseNode
	Members []TypeExpression
}

func (*UnionType) typeExpressionNode() {}

// NumericLiteralType is a numeric literal used as a type parameter, e.g. a
// fixed-size array length `lista<numerus, 4>`.
type NumericLiteralType struct {
	BaseNode
	Raw   string
	Value float64
}

func (*NumericLiteralType) typeExpressionNode() {}
