// Package fab re-serializes a resolved AST back into source, a minimal but
// real round-trip target named by the generate(target, ...) contract. It
// does not attempt comment-perfect or layout-preserving output — that is
// left to the out-of-scope external emitter spec.md defers to — it only
// guarantees that re-tokenizing and re-parsing its output reproduces an
// AST of the same shape.
package fab

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/gen"
)

type emitter struct {
	state *gen.State
	body  strings.Builder
}

func Generate(prog *ast.Program, indent string) (string, error) {
	e := &emitter{state: gen.NewState(indent)}
	for _, s := range prog.Body {
		e.stmt(s)
	}
	return e.body.String(), nil
}

func (e *emitter) line(format string, args ...any) {
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf(format, args...))
	e.body.WriteByte('\n')
}

func (e *emitter) block(body []ast.Statement) {
	e.body.WriteString("{\n")
	e.state.Enter()
	for _, s := range body {
		e.stmt(s)
	}
	e.state.Leave()
	e.body.WriteString(e.state.Indent() + "}")
}

func (e *emitter) stmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VarDecl:
		kw := "fixum"
		if n.Mutable {
			kw = "muta"
		}
		if n.Value != nil {
			e.line("%s %s%s = %s", kw, n.Name, e.typeSuffix(n.Type), e.expr(n.Value))
		} else {
			e.line("%s %s%s", kw, n.Name, e.typeSuffix(n.Type))
		}
	case *ast.FunctionDecl:
		e.emitFunction(n)
	case *ast.StructDecl:
		e.emitStruct(n)
	case *ast.InterfaceDecl:
		e.emitInterface(n)
	case *ast.EnumDecl:
		e.emitEnum(n)
	case *ast.DiscretioDecl:
		e.emitDiscretio(n)
	case *ast.TypeAliasDecl:
		e.line("typus %s = %s", n.Name, e.typeExpr(n.Type))
	case *ast.ImportDecl:
		e.emitImport(n)
	case *ast.IfStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("si (%s) ", e.expr(n.Cond)))
		e.block(n.Then)
		if n.Else != nil {
			e.body.WriteString(" aliter ")
			switch el := n.Else.(type) {
			case *ast.BlockStmt:
				e.block(el.Body)
			default:
				e.stmt(el)
			}
		}
		e.body.WriteByte('\n')
	case *ast.WhileStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("dum (%s) ", e.expr(n.Cond)))
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.DoWhileStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("fac ")
		e.block(n.Body)
		e.body.WriteString(fmt.Sprintf(" dum (%s)\n", e.expr(n.Cond)))
	case *ast.SwitchStmt:
		e.line("elige (%s) {", e.expr(n.Discriminant))
		e.state.Enter()
		for _, cs := range n.Cases {
			var vals []string
			for _, v := range cs.Values {
				vals = append(vals, e.expr(v))
			}
			e.line("casus %s:", strings.Join(vals, ", "))
			e.state.Enter()
			for _, st := range cs.Body {
				e.stmt(st)
			}
			e.state.Leave()
		}
		e.state.Leave()
		e.line("}")
	case *ast.MatchStmt:
		e.line("discerne (%s) {", e.expr(n.Discriminant))
		e.state.Enter()
		for _, cs := range n.Cases {
			e.line("casu %s:", e.patternList(cs.Patterns))
			e.state.Enter()
			for _, st := range cs.Body {
				e.stmt(st)
			}
			e.state.Leave()
		}
		e.state.Leave()
		e.line("}")
	case *ast.ForOfStmt:
		head := fmt.Sprintf("ex %s", e.expr(n.Source))
		for _, v := range n.Verbs {
			head += ", " + pipelineVerbSource(v)
		}
		e.line("pro %s %s %s {", bindKw(n.Binding), n.Binding.Name, head)
		e.state.Enter()
		for _, st := range n.Body {
			e.stmt(st)
		}
		e.state.Leave()
		e.line("}")
	case *ast.ForInStmt:
		e.line("pro %s %s de %s {", bindKw(n.Binding), n.Binding.Name, e.expr(n.Object))
		e.state.Enter()
		for _, st := range n.Body {
			e.stmt(st)
		}
		e.state.Leave()
		e.line("}")
	case *ast.ForRangeStmt:
		rangeExpr := fmt.Sprintf("%s .. %s", e.expr(n.Start), e.expr(n.End))
		if n.Inclusive {
			rangeExpr = fmt.Sprintf("%s usque .. %s", e.expr(n.Start), e.expr(n.End))
		}
		if n.Step != nil {
			rangeExpr += " per " + e.expr(n.Step)
		}
		e.line("pro %s %s ex %s {", bindKw(n.Binding), n.Binding.Name, rangeExpr)
		e.state.Enter()
		for _, st := range n.Body {
			e.stmt(st)
		}
		e.state.Leave()
		e.line("}")
	case *ast.WithStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("cum %s ", e.expr(n.Object)))
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.TryStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("tenta ")
		e.block(n.Try)
		if n.CatchBody != nil {
			e.body.WriteString(fmt.Sprintf(" cape %s ", n.CatchParam))
			e.block(n.CatchBody)
		}
		if n.Finally != nil {
			e.body.WriteString(" denique ")
			e.block(n.Finally)
		}
		e.body.WriteByte('\n')
	case *ast.ThrowStmt:
		e.line("iacit %s", e.expr(n.Value))
	case *ast.PanicStmt:
		e.line("moritor %s", e.expr(n.Value))
	case *ast.ReturnStmt:
		if n.Value != nil {
			e.line("redde %s", e.expr(n.Value))
		} else {
			e.line("redde")
		}
	case *ast.BreakStmt:
		e.line("frange")
	case *ast.ContinueStmt:
		e.line("perge")
	case *ast.GuardStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("nisi (%s) ", e.expr(n.Cond)))
		e.block(n.ElseBody)
		e.body.WriteByte('\n')
	case *ast.AssertStmt:
		if n.Message != nil {
			e.line("proba %s, %s", e.expr(n.Cond), e.expr(n.Message))
		} else {
			e.line("proba %s", e.expr(n.Cond))
		}
	case *ast.OutputStmt:
		e.line("%s(%s)", outputKw(n.Kind), e.exprList(n.Args))
	case *ast.BlockStmt:
		e.body.WriteString(e.state.Indent())
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.ExprStmt:
		e.line("%s", e.expr(n.Expr))
	case *ast.EntryPointStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("incipe ")
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.TestSuiteStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("experimentum %q ", n.Name))
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.TestCaseStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("proba %q ", n.Name))
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.SetupStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("praepara ")
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.TeardownStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("purga ")
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.ResourceScopeStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("cura %s %s ex %s ", bindKw(n.Binding), n.Binding.Name, e.expr(n.Resource)))
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.DispatchStmt:
		e.line("mitte %s(%s)", e.expr(n.Target), e.exprList(n.Args))
	default:
		e.line("// unsupported statement")
	}
}

func bindKw(b ast.IterBinding) string {
	switch {
	case b.IsAsync && b.Mutable:
		return "variandum"
	case b.IsAsync:
		return "figendum"
	case b.Mutable:
		return "muta"
	default:
		return "fixum"
	}
}

func outputKw(k ast.OutputKind) string {
	switch k {
	case ast.OutputDebug:
		return "vide"
	case ast.OutputWarn:
		return "mone"
	default:
		return "scribe"
	}
}

func (e *emitter) patternList(pats []ast.Pattern) string {
	var parts []string
	for _, p := range pats {
		parts = append(parts, e.pattern(p))
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) exprList(xs []ast.Expression) string {
	var parts []string
	for _, x := range xs {
		parts = append(parts, e.expr(x))
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) typeSuffix(t ast.TypeExpression) string {
	if t == nil {
		return ""
	}
	return ": " + e.typeExpr(t)
}

func (e *emitter) emitFunction(n *ast.FunctionDecl) {
	for _, a := range n.Annotations {
		e.line("@%s", a.Name)
	}
	vis := ""
	if n.Visibility != "" {
		vis = n.Visibility + " "
	}
	async := ""
	if n.IsAsync {
		async = "asynchronum "
	}
	ret := ""
	if n.ReturnType != nil {
		ret = ": " + streamSuffix(n.StreamVerb) + e.typeExpr(n.ReturnType)
	}
	params := e.paramList(n.Params)
	if n.IsAbstract {
		e.line("%s%sfunctio %s(%s)%s", vis, async, n.Name, params, ret)
		return
	}
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf("%s%sfunctio %s(%s)%s ", vis, async, n.Name, params, ret))
	e.block(n.Body)
	e.body.WriteString("\n")
}

func streamSuffix(v ast.StreamVerb) string {
	switch v {
	case ast.StreamFit:
		return "fit "
	case ast.StreamFiet:
		return "fiet "
	case ast.StreamFiunt:
		return "fiunt "
	case ast.StreamFient:
		return "fient "
	default:
		return ""
	}
}

func (e *emitter) paramList(params []ast.Param) string {
	var parts []string
	for _, p := range params {
		s := p.Name + e.typeSuffix(p.Type)
		if p.Default != nil {
			s += " = " + e.expr(p.Default)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) emitStruct(n *ast.StructDecl) {
	impl := ""
	if len(n.Implements) > 0 {
		impl = " est " + strings.Join(n.Implements, ", ")
	}
	e.line("genus %s%s {", n.Name, impl)
	e.state.Enter()
	for _, f := range n.Fields {
		mods := ""
		if f.Visibility != "" {
			mods += f.Visibility + " "
		}
		if f.IsStatic {
			mods += "statica "
		}
		if f.Default != nil {
			e.line("%s%s%s = %s;", mods, f.Name, e.typeSuffix(f.Type), e.expr(f.Default))
		} else {
			e.line("%s%s%s;", mods, f.Name, e.typeSuffix(f.Type))
		}
	}
	for _, m := range n.Methods {
		e.emitFunction(m)
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitInterface(n *ast.InterfaceDecl) {
	for _, a := range n.Annotations {
		e.line("@%s", a.Name)
	}
	e.line("pactum %s {", n.Name)
	e.state.Enter()
	for _, m := range n.Methods {
		var parts []string
		for _, p := range m.Params {
			parts = append(parts, p.Name+e.typeSuffix(p.Type))
		}
		e.line("functio %s(%s)%s", m.Name, strings.Join(parts, ", "), e.typeSuffix(m.ReturnType))
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitEnum(n *ast.EnumDecl) {
	e.line("ordo %s {", n.Name)
	e.state.Enter()
	for _, m := range n.Members {
		if m.Value != nil {
			e.line("%s = %s,", m.Name, e.expr(m.Value))
		} else {
			e.line("%s,", m.Name)
		}
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitDiscretio(n *ast.DiscretioDecl) {
	e.line("discretio %s {", n.Name)
	e.state.Enter()
	for _, c := range n.Cases {
		if len(c.Fields) == 0 {
			e.line("%s,", c.Name)
			continue
		}
		var parts []string
		for _, f := range c.Fields {
			parts = append(parts, f.Name+e.typeSuffix(f.Type))
		}
		e.line("%s(%s),", c.Name, strings.Join(parts, ", "))
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitImport(n *ast.ImportDecl) {
	if n.Wildcard {
		e.line("importa * ut %s ex %q", n.Alias, n.Source)
		return
	}
	e.line("importa { %s } ex %q", strings.Join(n.Specifiers, ", "), n.Source)
}
