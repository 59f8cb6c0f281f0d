// Package resolve is the semantic pass: it binds identifiers to their
// declarations, attaches resolvedType tags to method-call receivers,
// resolves `.fab` module imports (with cycle detection), and records the
// field layout of each discretio case for match-arity checking. Grounded on
// the teacher's internal/semantic/analyzer.go struct shape: a single Scope
// chain walked top-down, side tables for structs/interfaces/discretios kept
// alongside rather than folded into the AST.
package resolve

import "github.com/fablang/fabc/internal/ast"

// Symbol is one bound name: a variable, function, struct, interface, enum,
// discretio, or type alias.
type Symbol struct {
	Name string
	Decl ast.Statement
	Type ast.TypeExpression
}

// Scope is one lexical block's symbol table, chained to its parent.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Symbol)}
}

func (s *Scope) Define(sym *Symbol) { s.symbols[sym.Name] = sym }

// Lookup walks outward through enclosing scopes.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
