package resolve

import (
	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/diagnostics"
	"github.com/fablang/fabc/internal/token"
)

// Context carries the side tables the teacher's analyzer keeps alongside
// its Scope chain: struct/interface/discretio declarations keyed by name,
// and the HAL marking for pactums (spec.md §9 Open Question b).
type Context struct {
	Structs     map[string]*ast.StructDecl
	Interfaces  map[string]*ast.InterfaceDecl
	Discretios  map[string]*ast.DiscretioDecl
	Enums       map[string]*ast.EnumDecl
	Aliases     map[string]*ast.TypeAliasDecl
	HALPactums  map[string]bool
	Diagnostics *diagnostics.Bag
}

func NewContext() *Context {
	return &Context{
		Structs:    make(map[string]*ast.StructDecl),
		Interfaces: make(map[string]*ast.InterfaceDecl),
		Discretios: make(map[string]*ast.DiscretioDecl),
		Enums:      make(map[string]*ast.EnumDecl),
		Aliases:    make(map[string]*ast.TypeAliasDecl),
		HALPactums: make(map[string]bool),
		Diagnostics: &diagnostics.Bag{},
	}
}

// Resolve walks a fully-parsed Program, registering every top-level
// declaration, then attaching resolvedType tags to call/member receivers
// throughout every function body. It returns the same Program (nodes are
// mutated in place via SetResolvedType, per ExprBase's documented
// lifecycle) so callers can chain Resolve directly into Generate.
func Resolve(prog *ast.Program) (*ast.Program, *Context) {
	ctx := NewContext()
	global := NewScope(nil)

	for _, stmt := range prog.Body {
		ctx.registerDecl(stmt, global)
	}
	// HAL marking: a pactum is a HAL surface when every method it declares
	// is, per spec.md's design note, backed per-target rather than given a
	// body anywhere in the source — the presence of an `@subsidia`
	// annotation on the declaration itself is the authoritative signal.
	for name, decl := range ctx.Interfaces {
		for _, ann := range decl.Annotations {
			if ann.Name == "subsidia" {
				ctx.HALPactums[name] = true
			}
		}
	}

	for _, stmt := range prog.Body {
		ctx.resolveStmt(stmt, global)
	}
	return prog, ctx
}

func (c *Context) registerDecl(stmt ast.Statement, scope *Scope) {
	switch d := stmt.(type) {
	case *ast.StructDecl:
		c.Structs[d.Name] = d
		scope.Define(&Symbol{Name: d.Name, Decl: d})
	case *ast.InterfaceDecl:
		c.Interfaces[d.Name] = d
		scope.Define(&Symbol{Name: d.Name, Decl: d})
	case *ast.DiscretioDecl:
		c.Discretios[d.Name] = d
		scope.Define(&Symbol{Name: d.Name, Decl: d})
	case *ast.EnumDecl:
		c.Enums[d.Name] = d
		scope.Define(&Symbol{Name: d.Name, Decl: d})
	case *ast.TypeAliasDecl:
		c.Aliases[d.Name] = d
		scope.Define(&Symbol{Name: d.Name, Decl: d})
	case *ast.FunctionDecl:
		scope.Define(&Symbol{Name: d.Name, Decl: d, Type: d.ReturnType})
	case *ast.VarDecl:
		scope.Define(&Symbol{Name: d.Name, Decl: d, Type: d.Type})
	}
}

// DiscretioCaseArity returns the declared field count for a named case of a
// discretio, used by the match-arity check in resolveStmt's MatchStmt
// handling.
func (c *Context) DiscretioCaseArity(discretioName, caseName string) (int, bool) {
	d, ok := c.Discretios[discretioName]
	if !ok {
		return 0, false
	}
	for _, cs := range d.Cases {
		if cs.Name == caseName {
			return len(cs.Fields), true
		}
	}
	return 0, false
}

func (c *Context) errorf(pos token.Position, format string, args ...any) {
	c.Diagnostics.Add(diagnostics.Semantic, pos, format, args...)
}
