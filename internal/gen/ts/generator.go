// Package ts lowers a resolved Program to TypeScript source.
package ts

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

// Generate renders prog as a complete TypeScript module. indent is the
// per-level indentation string (e.g. two spaces); an empty string falls
// back to the generator's default.
func Generate(prog *ast.Program, indent string) (string, error) {
	e := &emitter{state: gen.NewState(indent)}
	for _, s := range prog.Body {
		e.stmt(s)
	}
	var out strings.Builder
	for _, imp := range e.state.SortedImports() {
		out.WriteString(fmt.Sprintf("import %s from %q;\n", importBinding(imp), imp))
	}
	if len(e.state.Imports) > 0 {
		out.WriteByte('\n')
	}
	out.WriteString(e.body.String())
	return out.String(), nil
}

func importBinding(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
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
	e.body.WriteString(e.state.Indent())
	e.body.WriteString("}")
}

func (e *emitter) stmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VarDecl:
		kw := "const"
		if n.Mutable {
			kw = "let"
		}
		if n.Value != nil {
			e.line("%s %s = %s;", kw, n.Name, e.expr(n.Value))
		} else {
			e.line("%s %s;", kw, n.Name)
		}
	case *ast.FunctionDecl:
		e.emitFunction(n)
	case *ast.StructDecl:
		e.emitClass(n)
	case *ast.InterfaceDecl:
		e.emitInterface(n)
	case *ast.EnumDecl:
		e.emitEnum(n)
	case *ast.DiscretioDecl:
		e.emitDiscretio(n)
	case *ast.TypeAliasDecl:
		e.line("type %s = %s;", n.Name, e.typeExpr(n.Type))
	case *ast.ImportDecl:
		e.emitImport(n)
	case *ast.IfStmt:
		e.emitIf(n)
	case *ast.WhileStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("while (%s) ", e.expr(n.Cond)))
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.DoWhileStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("do ")
		e.block(n.Body)
		e.body.WriteString(fmt.Sprintf(" while (%s);\n", e.expr(n.Cond)))
	case *ast.SwitchStmt:
		e.emitSwitch(n)
	case *ast.MatchStmt:
		e.emitMatch(n)
	case *ast.ForOfStmt:
		e.emitForOf(n)
	case *ast.ForInStmt:
		e.line("for (const %s in %s) {", n.Binding.Name, e.expr(n.Object))
		e.state.Enter()
		for _, st := range n.Body {
			e.stmt(st)
		}
		e.state.Leave()
		e.line("}")
	case *ast.ForRangeStmt:
		e.emitForRange(n)
	case *ast.WithStmt:
		e.emitWith(n)
	case *ast.TryStmt:
		e.emitTry(n)
	case *ast.ThrowStmt:
		e.line("throw %s;", e.expr(n.Value))
	case *ast.PanicStmt:
		e.line("throw %s;", e.expr(n.Value))
	case *ast.ReturnStmt:
		if n.Value != nil {
			e.line("return %s;", e.expr(n.Value))
		} else {
			e.line("return;")
		}
	case *ast.BreakStmt:
		e.line("break;")
	case *ast.ContinueStmt:
		e.line("continue;")
	case *ast.GuardStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("if (!(%s)) ", e.expr(n.Cond)))
		e.block(n.ElseBody)
		e.body.WriteByte('\n')
	case *ast.AssertStmt:
		if n.Message != nil {
			e.line("console.assert(%s, %s);", e.expr(n.Cond), e.expr(n.Message))
		} else {
			e.line("console.assert(%s);", e.expr(n.Cond))
		}
	case *ast.OutputStmt:
		e.emitOutput(n)
	case *ast.BlockStmt:
		e.body.WriteString(e.state.Indent())
		e.block(n.Body)
		e.body.WriteByte('\n')
	case *ast.ExprStmt:
		e.line("%s;", e.expr(n.Expr))
	case *ast.EntryPointStmt:
		e.emitEntryPoint(n)
	case *ast.TestSuiteStmt:
		e.state.RequireImport("vitest")
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("describe(%q, () => ", n.Name))
		e.block(n.Body)
		e.body.WriteString(");\n")
	case *ast.TestCaseStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString(fmt.Sprintf("it(%q, () => ", n.Name))
		e.block(n.Body)
		e.body.WriteString(");\n")
	case *ast.SetupStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("beforeEach(() => ")
		e.block(n.Body)
		e.body.WriteString(");\n")
	case *ast.TeardownStmt:
		e.body.WriteString(e.state.Indent())
		e.body.WriteString("afterEach(() => ")
		e.block(n.Body)
		e.body.WriteString(");\n")
	case *ast.ResourceScopeStmt:
		e.emitResourceScope(n)
	case *ast.DispatchStmt:
		var args []string
		for _, a := range n.Args {
			args = append(args, e.expr(a))
		}
		e.line("void %s(%s);", e.expr(n.Target), strings.Join(args, ", "))
	default:
		e.line("/* unsupported statement */")
	}
}

func (e *emitter) emitFunction(n *ast.FunctionDecl) {
	async := ""
	if n.IsAsync {
		async = "async "
	}
	params := e.paramList(n.Params)
	ret := ""
	if n.ReturnType != nil {
		ret = ": " + e.typeExpr(n.ReturnType)
	}
	if n.IsAbstract {
		e.line("abstract %sfunction %s(%s)%s;", async, n.Name, params, ret)
		return
	}
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf("%sfunction %s(%s)%s ", async, n.Name, params, ret))
	e.block(n.Body)
	e.body.WriteString("\n")
}

func (e *emitter) paramList(params []ast.Param) string {
	var parts []string
	for _, p := range params {
		s := p.Name
		if p.Type != nil {
			s += ": " + e.typeExpr(p.Type)
		}
		if p.Default != nil {
			s += " = " + e.expr(p.Default)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) emitClass(n *ast.StructDecl) {
	e.state.DeclaredClasses[n.Name] = true
	impl := ""
	if len(n.Implements) > 0 {
		impl = " implements " + strings.Join(n.Implements, ", ")
	}
	e.line("class %s%s {", n.Name, impl)
	e.state.Enter()
	for _, f := range n.Fields {
		vis := visibilityPrefix(f.Visibility)
		statik := ""
		if f.IsStatic {
			statik = "static "
		}
		if f.Default != nil {
			e.line("%s%s%s: %s = %s;", vis, statik, f.Name, e.typeExpr(f.Type), e.expr(f.Default))
		} else {
			e.line("%s%s%s: %s;", vis, statik, f.Name, e.typeExpr(f.Type))
		}
	}
	for _, m := range n.Methods {
		e.emitMethod(m)
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitMethod(n *ast.FunctionDecl) {
	vis := visibilityPrefix(n.Visibility)
	async := ""
	if n.IsAsync {
		async = "async "
	}
	params := e.paramList(n.Params)
	ret := ""
	if n.ReturnType != nil {
		ret = ": " + e.typeExpr(n.ReturnType)
	}
	if n.IsAbstract {
		e.line("%sabstract %s%s(%s)%s;", vis, async, n.Name, params, ret)
		return
	}
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf("%s%s%s(%s)%s ", vis, async, n.Name, params, ret))
	e.block(n.Body)
	e.body.WriteString("\n")
}

func visibilityPrefix(v string) string {
	switch v {
	case "privatum":
		return "private "
	case "protectum":
		return "protected "
	case "publicum":
		return "public "
	default:
		return ""
	}
}

func (e *emitter) emitInterface(n *ast.InterfaceDecl) {
	e.state.DeclaredClasses[n.Name] = true
	e.line("interface %s {", n.Name)
	e.state.Enter()
	for _, m := range n.Methods {
		var parts []string
		for _, p := range m.Params {
			s := p.Name
			if p.Type != nil {
				s += ": " + e.typeExpr(p.Type)
			}
			parts = append(parts, s)
		}
		ret := "void"
		if m.ReturnType != nil {
			ret = e.typeExpr(m.ReturnType)
		}
		e.line("%s(%s): %s;", m.Name, strings.Join(parts, ", "), ret)
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitEnum(n *ast.EnumDecl) {
	e.state.DeclaredClasses[n.Name] = true
	e.line("enum %s {", n.Name)
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

// emitDiscretio lowers a tagged union to a discriminated-union type plus
// one interface per case, each carrying a literal `kind` tag (spec.md
// §4.6 "discriminated unions as tagged records").
func (e *emitter) emitDiscretio(n *ast.DiscretioDecl) {
	e.state.DeclaredClasses[n.Name] = true
	var names []string
	for _, c := range n.Cases {
		names = append(names, n.Name+c.Name)
		e.line("interface %s%s {", n.Name, c.Name)
		e.state.Enter()
		e.line("kind: %q;", c.Name)
		for _, f := range c.Fields {
			e.line("%s: %s;", f.Name, e.typeExpr(f.Type))
		}
		e.state.Leave()
		e.line("}")
	}
	e.line("type %s = %s;", n.Name, strings.Join(names, " | "))
}

func (e *emitter) emitImport(n *ast.ImportDecl) {
	if n.Wildcard {
		e.line("import * as %s from %q;", n.Alias, n.Source)
		return
	}
	e.line("import { %s } from %q;", strings.Join(n.Specifiers, ", "), n.Source)
}

func (e *emitter) emitIf(n *ast.IfStmt) {
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf("if (%s) ", e.expr(n.Cond)))
	e.block(n.Then)
	if n.Else == nil {
		e.body.WriteByte('\n')
		return
	}
	e.body.WriteString(" else ")
	switch els := n.Else.(type) {
	case *ast.IfStmt:
		e.emitIfInline(els)
	case *ast.BlockStmt:
		e.block(els.Body)
		e.body.WriteByte('\n')
	}
}

func (e *emitter) emitIfInline(n *ast.IfStmt) {
	e.body.WriteString(fmt.Sprintf("if (%s) ", e.expr(n.Cond)))
	e.block(n.Then)
	if n.Else == nil {
		e.body.WriteByte('\n')
		return
	}
	e.body.WriteString(" else ")
	switch els := n.Else.(type) {
	case *ast.IfStmt:
		e.emitIfInline(els)
	case *ast.BlockStmt:
		e.block(els.Body)
		e.body.WriteByte('\n')
	}
}

func (e *emitter) emitSwitch(n *ast.SwitchStmt) {
	e.line("switch (%s) {", e.expr(n.Discriminant))
	e.state.Enter()
	for _, cs := range n.Cases {
		for _, v := range cs.Values {
			e.line("case %s:", e.expr(v))
		}
		e.state.Enter()
		for _, st := range cs.Body {
			e.stmt(st)
		}
		e.line("break;")
		e.state.Leave()
	}
	if n.Default != nil {
		e.line("default:")
		e.state.Enter()
		for _, st := range n.Default {
			e.stmt(st)
		}
		e.state.Leave()
	}
	e.state.Leave()
	e.line("}")
}

// emitMatch lowers discerne/casu onto the discriminated union's `kind` tag,
// destructuring bound fields at the top of each arm.
func (e *emitter) emitMatch(n *ast.MatchStmt) {
	e.line("switch (%s.kind) {", e.expr(n.Discriminant))
	e.state.Enter()
	for _, cs := range n.Cases {
		for _, pat := range cs.Patterns {
			if vp, ok := pat.(*ast.VariantPattern); ok && !vp.Wildcard {
				e.line("case %q: {", vp.CaseName)
			}
		}
		e.state.Enter()
		for _, pat := range cs.Patterns {
			if vp, ok := pat.(*ast.VariantPattern); ok {
				if vp.Wildcard {
					continue
				}
				if vp.Alias != "" {
					e.line("const %s = %s;", vp.Alias, e.expr(n.Discriminant))
				}
				for _, f := range vp.Fields {
					e.line("const %s = (%s as any).%s;", f.Name, e.expr(n.Discriminant), f.Name)
				}
			}
		}
		for _, st := range cs.Body {
			e.stmt(st)
		}
		e.line("break;")
		e.state.Leave()
		e.line("}")
	}
	e.line("default:")
	e.state.Enter()
	e.line("break;")
	e.state.Leave()
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitForOf(n *ast.ForOfStmt) {
	src := e.expr(n.Source)
	for _, v := range n.Verbs {
		src = applyPipelineVerb(src, v)
	}
	await := ""
	if n.Binding.IsAsync {
		await = "await "
	}
	e.line("for %s(const %s of %s) {", await, n.Binding.Name, src)
	e.state.Enter()
	for _, st := range n.Body {
		e.stmt(st)
	}
	e.state.Leave()
	e.line("}")
}

func applyPipelineVerb(src string, v ast.PipelineVerb) string {
	return fmt.Sprintf("fabRuntime.pipeline(%s, %q)", src, v.Kind.String())
}

func (e *emitter) emitForRange(n *ast.ForRangeStmt) {
	op := "<"
	if n.Inclusive {
		op = "<="
	}
	step := "1"
	if n.Step != nil {
		step = e.expr(n.Step)
	}
	e.line("for (let %s = %s; %s %s %s; %s += %s) {",
		n.Binding.Name, e.expr(n.Start), n.Binding.Name, op, e.expr(n.End), n.Binding.Name, step)
	e.state.Enter()
	for _, st := range n.Body {
		e.stmt(st)
	}
	e.state.Leave()
	e.line("}")
}

func (e *emitter) emitWith(n *ast.WithStmt) {
	e.line("(() => {")
	e.state.Enter()
	e.line("const __scope = %s;", e.expr(n.Object))
	for _, st := range n.Body {
		e.stmt(st)
	}
	e.state.Leave()
	e.line("})();")
}

func (e *emitter) emitTry(n *ast.TryStmt) {
	e.body.WriteString(e.state.Indent())
	e.body.WriteString("try ")
	e.block(n.Try)
	if n.CatchBody != nil {
		e.body.WriteString(fmt.Sprintf(" catch (%s) ", n.CatchParam))
		e.block(n.CatchBody)
	}
	if n.Finally != nil {
		e.body.WriteString(" finally ")
		e.block(n.Finally)
	}
	e.body.WriteByte('\n')
}

func (e *emitter) emitOutput(n *ast.OutputStmt) {
	var args []string
	for _, a := range n.Args {
		args = append(args, e.expr(a))
	}
	switch n.Kind {
	case ast.OutputWrite:
		e.line("console.log(%s);", strings.Join(args, ", "))
	case ast.OutputDebug:
		e.line("console.debug(%s);", strings.Join(args, ", "))
	case ast.OutputWarn:
		e.line("console.warn(%s);", strings.Join(args, ", "))
	}
}

func (e *emitter) emitEntryPoint(n *ast.EntryPointStmt) {
	if n.CLI != nil {
		e.state.RequireImport("commander")
		e.emitCLIScaffold(n.CLI)
	}
	async := ""
	if n.IsAsync {
		async = "async "
	}
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf("%sfunction main() ", async))
	e.block(n.Body)
	e.body.WriteString("\n")
	e.line("main();")
}

func (e *emitter) emitCLIScaffold(cli *ast.CLIDescriptor) {
	e.line("const program = new Command();")
	for _, opt := range cli.Options {
		flags := opt.Short
		if opt.Long != "" {
			if flags != "" {
				flags += ", "
			}
			flags += opt.Long
		}
		e.line("program.option(%q, %q);", flags, opt.Description)
	}
	for _, op := range cli.Operands {
		name := "<" + op.Name + ">"
		if op.Rest {
			name = "<" + op.Name + "...>"
		}
		e.line("program.argument(%q, %q);", name, op.Description)
	}
	e.line("program.parse();")
}

func (e *emitter) emitResourceScope(n *ast.ResourceScopeStmt) {
	e.line("{")
	e.state.Enter()
	e.line("const %s = %s;", n.Binding.Name, e.expr(n.Resource))
	e.line("try {")
	e.state.Enter()
	for _, st := range n.Body {
		e.stmt(st)
	}
	e.state.Leave()
	e.line("} finally {")
	e.state.Enter()
	e.line("%s.close?.();", n.Binding.Name)
	e.state.Leave()
	e.line("}")
	e.state.Leave()
	e.line("}")
}
