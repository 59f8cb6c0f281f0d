package resolve

import (
	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/diagnostics"
	"github.com/fablang/fabc/internal/norma"
)

func (c *Context) resolveStmt(stmt ast.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Value != nil {
			c.resolveExpr(s.Value, scope)
		}
		scope.Define(&Symbol{Name: s.Name, Decl: s, Type: s.Type})
	case *ast.FunctionDecl:
		inner := NewScope(scope)
		for _, param := range s.Params {
			inner.Define(&Symbol{Name: param.Name, Type: param.Type})
		}
		c.resolveBody(s.Body, inner)
	case *ast.StructDecl:
		for _, m := range s.Methods {
			c.resolveStmt(m, scope)
		}
	case *ast.IfStmt:
		c.resolveExpr(s.Cond, scope)
		c.resolveBody(s.Then, scope)
		if s.Else != nil {
			c.resolveStmt(s.Else, scope)
		}
	case *ast.BlockStmt:
		c.resolveBody(s.Body, NewScope(scope))
	case *ast.WhileStmt:
		c.resolveExpr(s.Cond, scope)
		c.resolveBody(s.Body, scope)
	case *ast.DoWhileStmt:
		c.resolveBody(s.Body, scope)
		c.resolveExpr(s.Cond, scope)
	case *ast.SwitchStmt:
		c.resolveExpr(s.Discriminant, scope)
		for _, cs := range s.Cases {
			for _, v := range cs.Values {
				c.resolveExpr(v, scope)
			}
			c.resolveBody(cs.Body, scope)
		}
		c.resolveBody(s.Default, scope)
	case *ast.MatchStmt:
		c.resolveExpr(s.Discriminant, scope)
		discName := discretioNameOf(s.Discriminant, scope)
		for _, cs := range s.Cases {
			inner := NewScope(scope)
			for _, pat := range cs.Patterns {
				c.resolvePattern(pat, discName, inner)
			}
			if cs.Guard != nil {
				c.resolveExpr(cs.Guard, inner)
			}
			c.resolveBody(cs.Body, inner)
		}
	case *ast.ForOfStmt:
		c.resolveExpr(s.Source, scope)
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: s.Binding.Name})
		c.resolveBody(s.Body, inner)
	case *ast.ForInStmt:
		c.resolveExpr(s.Object, scope)
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: s.Binding.Name})
		c.resolveBody(s.Body, inner)
	case *ast.ForRangeStmt:
		c.resolveExpr(s.Start, scope)
		c.resolveExpr(s.End, scope)
		if s.Step != nil {
			c.resolveExpr(s.Step, scope)
		}
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: s.Binding.Name})
		c.resolveBody(s.Body, inner)
	case *ast.WithStmt:
		c.resolveExpr(s.Object, scope)
		c.resolveBody(s.Body, scope)
	case *ast.TryStmt:
		c.resolveBody(s.Try, scope)
		if s.CatchBody != nil {
			inner := NewScope(scope)
			inner.Define(&Symbol{Name: s.CatchParam})
			c.resolveBody(s.CatchBody, inner)
		}
		c.resolveBody(s.Finally, scope)
	case *ast.ThrowStmt:
		c.resolveExpr(s.Value, scope)
	case *ast.PanicStmt:
		c.resolveExpr(s.Value, scope)
	case *ast.ReturnStmt:
		if s.Value != nil {
			c.resolveExpr(s.Value, scope)
		}
	case *ast.GuardStmt:
		c.resolveExpr(s.Cond, scope)
		c.resolveBody(s.ElseBody, scope)
	case *ast.AssertStmt:
		c.resolveExpr(s.Cond, scope)
		if s.Message != nil {
			c.resolveExpr(s.Message, scope)
		}
	case *ast.OutputStmt:
		for _, a := range s.Args {
			c.resolveExpr(a, scope)
		}
	case *ast.ExprStmt:
		c.resolveExpr(s.Expr, scope)
	case *ast.EntryPointStmt:
		c.resolveBody(s.Body, NewScope(scope))
	case *ast.TestSuiteStmt:
		c.resolveBody(s.Body, NewScope(scope))
	case *ast.TestCaseStmt:
		c.resolveBody(s.Body, NewScope(scope))
	case *ast.SetupStmt:
		c.resolveBody(s.Body, scope)
	case *ast.TeardownStmt:
		c.resolveBody(s.Body, scope)
	case *ast.ResourceScopeStmt:
		c.resolveExpr(s.Resource, scope)
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: s.Binding.Name})
		c.resolveBody(s.Body, inner)
	case *ast.DispatchStmt:
		c.resolveExpr(s.Target, scope)
		for _, a := range s.Args {
			c.resolveExpr(a, scope)
		}
	}
}

func (c *Context) resolveBody(body []ast.Statement, scope *Scope) {
	for _, s := range body {
		c.resolveStmt(s, scope)
	}
}

func (c *Context) resolvePattern(pat ast.Pattern, discretioName string, scope *Scope) {
	switch p := pat.(type) {
	case *ast.ObjectPattern:
		for _, f := range p.Fields {
			scope.Define(&Symbol{Name: f.Binding})
		}
	case *ast.ArrayPattern:
		for _, e := range p.Elements {
			if e.Name != "" {
				scope.Define(&Symbol{Name: e.Name})
			}
		}
	case *ast.VariantPattern:
		if p.Wildcard {
			return
		}
		if p.Alias != "" {
			scope.Define(&Symbol{Name: p.Alias})
			return
		}
		if discretioName != "" {
			if want, ok := c.DiscretioCaseArity(discretioName, p.CaseName); ok && want != len(p.Fields) {
				c.errorf(pat.Pos(), "case %s.%s expects %d field binding(s), found %d",
					discretioName, p.CaseName, want, len(p.Fields))
			}
		}
		for _, f := range p.Fields {
			scope.Define(&Symbol{Name: f.Name})
		}
	}
}

// discretioNameOf recovers the declared discretio type name of a match
// discriminant expression, when resolvable from its static type.
func discretioNameOf(discriminant ast.Expression, scope *Scope) string {
	id, ok := discriminant.(*ast.Identifier)
	if !ok {
		return ""
	}
	sym, ok := scope.Lookup(id.Name)
	if !ok || sym.Type == nil {
		return ""
	}
	named, ok := sym.Type.(*ast.NamedType)
	if !ok {
		return ""
	}
	return named.Name
}

func (c *Context) resolveExpr(expr ast.Expression, scope *Scope) {
	switch e := expr.(type) {
	case *ast.UnaryExpr:
		c.resolveExpr(e.Operand, scope)
	case *ast.BinaryExpr:
		c.resolveExpr(e.Left, scope)
		c.resolveExpr(e.Right, scope)
	case *ast.TernaryExpr:
		c.resolveExpr(e.Cond, scope)
		c.resolveExpr(e.Then, scope)
		c.resolveExpr(e.Else, scope)
	case *ast.MemberExpr:
		c.resolveExpr(e.Object, scope)
		c.tagReceiver(e.Object, scope)
	case *ast.IndexExpr:
		c.resolveExpr(e.Object, scope)
		c.resolveExpr(e.Index, scope)
	case *ast.CallExpr:
		c.resolveExpr(e.Callee, scope)
		c.checkMorphology(e)
		for _, a := range e.Args {
			c.resolveExpr(a, scope)
		}
	case *ast.CastExpr:
		c.resolveExpr(e.Value, scope)
	case *ast.ConversionExpr:
		c.resolveExpr(e.Value, scope)
		if e.Fallback != nil {
			c.resolveExpr(e.Fallback, scope)
		}
	case *ast.LambdaExpr:
		inner := NewScope(scope)
		for _, p := range e.Params {
			inner.Define(&Symbol{Name: p.Name, Type: p.Type})
		}
		if e.IsBlock {
			c.resolveBody(e.Body, inner)
		} else if e.ExprBody != nil {
			c.resolveExpr(e.ExprBody, inner)
		}
	case *ast.VariantConstructExpr:
		for _, a := range e.Args {
			c.resolveExpr(a, scope)
		}
		for _, f := range e.Fields {
			c.resolveExpr(f.Value, scope)
		}
	case *ast.DSLPipelineExpr:
		c.resolveExpr(e.Source, scope)
		for _, v := range e.Verbs {
			if v.N != nil {
				c.resolveExpr(v.N, scope)
			}
		}
	case *ast.FilterExpr:
		c.resolveExpr(e.Source, scope)
		inner := NewScope(scope)
		inner.Define(&Symbol{Name: e.ParamName})
		c.resolveExpr(e.Predicate, inner)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			c.resolveExpr(el, scope)
		}
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			c.resolveExpr(p.Value, scope)
		}
	case *ast.FormatStringExpr:
		for _, sub := range e.Exprs {
			c.resolveExpr(sub, scope)
		}
	case *ast.StdinReadExpr:
		if e.Prompt != nil {
			c.resolveExpr(e.Prompt, scope)
		}
	case *ast.Identifier:
		// leaf: nothing further to resolve beyond the lookup tagReceiver
		// performs when this identifier is itself a receiver.
	}
}

// checkMorphology validates a method call against the norma registry when
// the callee is a member access on a receiver whose type was just tagged
// by tagReceiver. A recognized stem whose surface form is the
// future-active-participle is always a morphology violation: that form is
// classified but never backed by any target (norma.FormFuture's doc).
// An unrecognized method name, or a receiver that isn't a known stdlib
// collection, is silently left alone — it may be a user-declared method.
func (c *Context) checkMorphology(call *ast.CallExpr) {
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok {
		return
	}
	typed, ok := member.Object.(interface{ GetResolvedType() ast.TypeExpression })
	if !ok {
		return
	}
	collection := norma.CollectionNameOf(typed.GetResolvedType())
	if collection == "" || !norma.HasCollection(collection) {
		return
	}
	stem, kind, ok := norma.ClassifyForm(member.Name)
	if !ok || kind != norma.FormFuture {
		return
	}
	c.Diagnostics.Add(diagnostics.Morphological, member.Pos(), "%s", norma.MorphologyError(stem, kind))
}

// tagReceiver attaches the statically-known type of a method-call receiver
// to its ResolvedType field, the one mutation the semantic pass is allowed
// to make to an already-built expression node (spec.md §3 "Lifecycle").
func (c *Context) tagReceiver(receiver ast.Expression, scope *Scope) {
	typed, ok := receiver.(interface{ SetResolvedType(ast.TypeExpression) })
	if !ok {
		return
	}
	id, ok := receiver.(*ast.Identifier)
	if !ok {
		return
	}
	sym, ok := scope.Lookup(id.Name)
	if !ok || sym.Type == nil {
		return
	}
	typed.SetResolvedType(sym.Type)
}
