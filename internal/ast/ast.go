// Package ast defines the closed AST sum for the Language (spec.md §3, §4.2).
// Every node kind is a Go type implementing Node (and Expression, Statement,
// Pattern, or TypeExpression as appropriate); the code generator performs an
// exhaustive type switch over this sum and is a total function from node
// kind to output fragment (spec.md §4.2).
package ast

import "github.com/fablang/fabc/internal/token"

// Node is the interface every AST node implements.
type Node interface {
	TokenLiteral() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Pattern is a destructuring or match-case pattern.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpression is a type annotation as written in source.
type TypeExpression interface {
	Node
	typeExpressionNode()
}

// Comment is a hoisted line or block comment attached to the nearest
// following AST node (spec.md §3 "Lifecycle"). Trailing comments are only
// attached when they share a source line with the node (spec.md §5).
type Comment struct {
	Text string
	Kind token.CommentKind
	Pos  token.Position
}

// BaseNode is embedded by every concrete node. It carries the defining
// token (for TokenLiteral/Pos) and the comments hoisted onto this node —
// mirroring the teacher's own embedding pattern (internal/ast/ast.go's
// per-node Token field) generalized to one shared base.
type BaseNode struct {
	Token            token.Token
	LeadingComments  []Comment
	TrailingComments []Comment
}

func (b BaseNode) TokenLiteral() string    { return b.Token.Lexeme }
func (b BaseNode) Pos() token.Position     { return b.Token.Pos }
func (b *BaseNode) AddLeading(c Comment)   { b.LeadingComments = append(b.LeadingComments, c) }
func (b *BaseNode) AddTrailing(c Comment)  { b.TrailingComments = append(b.TrailingComments, c) }

// Annotation is an `@ name [args]` attachment on a declaration (spec.md §6).
// Unknown annotation names are preserved but ignored semantically; a known
// name attached to a declaration kind that does not accept it is a parse
// error raised by the parser, not represented here.
type Annotation struct {
	BaseNode
	Name string
	Args []Expression
	// Payload holds the specialized grammar for the closed set of
	// annotations with dedicated parsing (spec.md §4.3 "Annotations"):
	// target-to-value maps (@innatum, @subsidia), stem/form lists (@radix),
	// target/method-or-template forms (@verte), and CLI descriptors
	// (@optio, @operandus). nil for plain-argument annotations.
	Payload any
}

// Program is the root of the AST: Program = { body: Statement[] }.
type Program struct {
	Body []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
