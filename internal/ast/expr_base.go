package ast

// ExprBase is embedded by every Expression node. ResolvedType is attached
// only by the semantic pass, only on expressions used as a method-call
// receiver (spec.md §3 "Lifecycle" — "AST nodes... never mutated by later
// stages except that the semantic pass attaches a resolvedType tag").
type ExprBase struct {
	BaseNode
	ResolvedType TypeExpression
}

func (*ExprBase) expressionNode() {}

func (e *ExprBase) GetResolvedType() TypeExpression    { return e.ResolvedType }
func (e *ExprBase) SetResolvedType(t TypeExpression)   { e.ResolvedType = t }

// StmtBase is embedded by every Statement node.
type StmtBase struct {
	BaseNode
}

func (*StmtBase) statementNode() {}

// PatternBase is embedded by every Pattern node.
type PatternBase struct {
	BaseNode
}

func (*PatternBase) patternNode() {}
