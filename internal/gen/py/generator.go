// Package py lowers a resolved Program to Python 3 source.
package py

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
	var out strings.Builder
	for _, imp := range e.state.SortedImports() {
		out.WriteString(fmt.Sprintf("import %s\n", imp))
	}
	if len(e.state.Imports) > 0 {
		out.WriteByte('\n')
	}
	out.WriteString(e.body.String())
	return out.String(), nil
}

func (e *emitter) line(format string, args ...any) {
	e.body.WriteString(e.state.Indent())
	e.body.WriteString(fmt.Sprintf(format, args...))
	e.body.WriteByte('\n')
}

func (e *emitter) bodyBlock(body []ast.Statement) {
	if len(body) == 0 {
		e.line("pass")
		return
	}
	for _, s := range body {
		e.stmt(s)
	}
}

func (e *emitter) stmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Value != nil {
			e.line("%s = %s", n.Name, e.expr(n.Value))
		} else {
			e.line("%s = None", n.Name)
		}
	case *ast.FunctionDecl:
		e.emitFunction(n, 0)
	case *ast.StructDecl:
		e.emitClass(n)
	case *ast.InterfaceDecl:
		e.emitProtocol(n)
	case *ast.EnumDecl:
		e.emitEnum(n)
	case *ast.DiscretioDecl:
		e.emitDiscretio(n)
	case *ast.TypeAliasDecl:
		e.line("%s = %s", n.Name, e.typeExpr(n.Type))
	case *ast.ImportDecl:
		e.emitImport(n)
	case *ast.IfStmt:
		e.emitIf(n)
	case *ast.WhileStmt:
		e.line("while %s:", e.expr(n.Cond))
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.DoWhileStmt:
		e.line("while True:")
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.line("if not (%s):", e.expr(n.Cond))
		e.state.Enter()
		e.line("break")
		e.state.Leave()
		e.state.Leave()
	case *ast.SwitchStmt:
		e.emitSwitch(n)
	case *ast.MatchStmt:
		e.emitMatch(n)
	case *ast.ForOfStmt:
		e.emitForOf(n)
	case *ast.ForInStmt:
		e.line("for %s in %s.keys():", n.Binding.Name, e.expr(n.Object))
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.ForRangeStmt:
		e.emitForRange(n)
	case *ast.WithStmt:
		e.line("with %s as __scope:", e.expr(n.Object))
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.TryStmt:
		e.emitTry(n)
	case *ast.ThrowStmt:
		e.line("raise %s", e.expr(n.Value))
	case *ast.PanicStmt:
		e.line("raise %s", e.expr(n.Value))
	case *ast.ReturnStmt:
		if n.Value != nil {
			e.line("return %s", e.expr(n.Value))
		} else {
			e.line("return")
		}
	case *ast.BreakStmt:
		e.line("break")
	case *ast.ContinueStmt:
		e.line("continue")
	case *ast.GuardStmt:
		e.line("if not (%s):", e.expr(n.Cond))
		e.state.Enter()
		e.bodyBlock(n.ElseBody)
		e.state.Leave()
	case *ast.AssertStmt:
		if n.Message != nil {
			e.line("assert %s, %s", e.expr(n.Cond), e.expr(n.Message))
		} else {
			e.line("assert %s", e.expr(n.Cond))
		}
	case *ast.OutputStmt:
		e.emitOutput(n)
	case *ast.BlockStmt:
		e.bodyBlock(n.Body)
	case *ast.ExprStmt:
		e.line("%s", e.expr(n.Expr))
	case *ast.EntryPointStmt:
		e.emitEntryPoint(n)
	case *ast.TestSuiteStmt:
		e.line("class Test%s:", pascalCase(n.Name))
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.TestCaseStmt:
		e.line("def test_%s(self):", snakeCase(n.Name))
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.SetupStmt:
		e.line("def setup_method(self):")
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.TeardownStmt:
		e.line("def teardown_method(self):")
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.ResourceScopeStmt:
		e.line("with %s as %s:", e.expr(n.Resource), n.Binding.Name)
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	case *ast.DispatchStmt:
		var args []string
		for _, a := range n.Args {
			args = append(args, e.expr(a))
		}
		e.line("asyncio.ensure_future(%s(%s))", e.expr(n.Target), strings.Join(args, ", "))
		e.state.RequireImport("asyncio")
	default:
		e.line("# unsupported statement")
	}
}

func (e *emitter) emitFunction(n *ast.FunctionDecl, extraIndent int) {
	async := ""
	if n.IsAsync {
		async = "async "
	}
	params := e.paramList(n.Params)
	ret := ""
	if n.ReturnType != nil {
		ret = " -> " + e.typeExpr(n.ReturnType)
	}
	e.line("%sdef %s(%s)%s:", async, n.Name, params, ret)
	e.state.Enter()
	if n.IsAbstract {
		e.line("...")
	} else {
		e.bodyBlock(n.Body)
	}
	e.state.Leave()
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
	e.state.RequireImport("dataclasses")
	bases := strings.Join(n.Implements, ", ")
	e.line("@dataclasses.dataclass")
	if bases != "" {
		e.line("class %s(%s):", n.Name, bases)
	} else {
		e.line("class %s:", n.Name)
	}
	e.state.Enter()
	if len(n.Fields) == 0 && len(n.Methods) == 0 {
		e.line("pass")
	}
	for _, f := range n.Fields {
		if f.IsStatic {
			continue
		}
		if f.Default != nil {
			e.line("%s: %s = %s", f.Name, e.typeExpr(f.Type), e.expr(f.Default))
		} else {
			e.line("%s: %s", f.Name, e.typeExpr(f.Type))
		}
	}
	for _, m := range n.Methods {
		e.emitMethod(m)
	}
	e.state.Leave()
}

func (e *emitter) emitMethod(n *ast.FunctionDecl) {
	async := ""
	if n.IsAsync {
		async = "async "
	}
	params := "self"
	if pl := e.paramList(n.Params); pl != "" {
		params += ", " + pl
	}
	ret := ""
	if n.ReturnType != nil {
		ret = " -> " + e.typeExpr(n.ReturnType)
	}
	e.line("%sdef %s(%s)%s:", async, n.Name, params, ret)
	e.state.Enter()
	if n.IsAbstract {
		e.line("raise NotImplementedError")
	} else {
		e.bodyBlock(n.Body)
	}
	e.state.Leave()
}

func (e *emitter) emitProtocol(n *ast.InterfaceDecl) {
	e.state.DeclaredClasses[n.Name] = true
	e.state.RequireImport("typing")
	e.line("class %s(typing.Protocol):", n.Name)
	e.state.Enter()
	if len(n.Methods) == 0 {
		e.line("pass")
	}
	for _, m := range n.Methods {
		params := "self"
		for _, p := range m.Params {
			s := p.Name
			if p.Type != nil {
				s += ": " + e.typeExpr(p.Type)
			}
			params += ", " + s
		}
		ret := ""
		if m.ReturnType != nil {
			ret = " -> " + e.typeExpr(m.ReturnType)
		}
		e.line("def %s(%s)%s: ...", m.Name, params, ret)
	}
	e.state.Leave()
}

func (e *emitter) emitEnum(n *ast.EnumDecl) {
	e.state.DeclaredClasses[n.Name] = true
	e.state.RequireImport("enum")
	e.line("class %s(enum.Enum):", n.Name)
	e.state.Enter()
	for i, m := range n.Members {
		if m.Value != nil {
			e.line("%s = %s", m.Name, e.expr(m.Value))
		} else {
			e.line("%s = %d", m.Name, i)
		}
	}
	e.state.Leave()
}

func (e *emitter) emitDiscretio(n *ast.DiscretioDecl) {
	e.state.DeclaredClasses[n.Name] = true
	e.state.RequireImport("dataclasses")
	e.state.RequireImport("typing")
	var names []string
	for _, c := range n.Cases {
		names = append(names, n.Name+c.Name)
		e.line("@dataclasses.dataclass")
		e.line("class %s%s:", n.Name, c.Name)
		e.state.Enter()
		if len(c.Fields) == 0 {
			e.line("pass")
		}
		for _, f := range c.Fields {
			e.line("%s: %s", f.Name, e.typeExpr(f.Type))
		}
		e.state.Leave()
	}
	e.line("%s = typing.Union[%s]", n.Name, strings.Join(names, ", "))
}

func (e *emitter) emitImport(n *ast.ImportDecl) {
	mod := strings.TrimSuffix(n.Source, ".fab")
	mod = strings.ReplaceAll(mod, "/", ".")
	if n.Wildcard {
		e.line("import %s as %s", mod, n.Alias)
		return
	}
	e.line("from %s import %s", mod, strings.Join(n.Specifiers, ", "))
}

func (e *emitter) emitIf(n *ast.IfStmt) {
	e.line("if %s:", e.expr(n.Cond))
	e.state.Enter()
	e.bodyBlock(n.Then)
	e.state.Leave()
	e.emitElse(n.Else)
}

func (e *emitter) emitElse(els ast.Statement) {
	switch n := els.(type) {
	case nil:
		return
	case *ast.IfStmt:
		e.line("elif %s:", e.expr(n.Cond))
		e.state.Enter()
		e.bodyBlock(n.Then)
		e.state.Leave()
		e.emitElse(n.Else)
	case *ast.BlockStmt:
		e.line("else:")
		e.state.Enter()
		e.bodyBlock(n.Body)
		e.state.Leave()
	}
}

func (e *emitter) emitSwitch(n *ast.SwitchStmt) {
	disc := e.expr(n.Discriminant)
	for i, cs := range n.Cases {
		kw := "if"
		if i > 0 {
			kw = "elif"
		}
		var conds []string
		for _, v := range cs.Values {
			conds = append(conds, fmt.Sprintf("%s == %s", disc, e.expr(v)))
		}
		e.line("%s %s:", kw, strings.Join(conds, " or "))
		e.state.Enter()
		e.bodyBlock(cs.Body)
		e.state.Leave()
	}
	if n.Default != nil {
		kw := "else"
		if len(n.Cases) == 0 {
			kw = "if True"
		}
		e.line("%s:", kw)
		e.state.Enter()
		e.bodyBlock(n.Default)
		e.state.Leave()
	}
}

func (e *emitter) emitMatch(n *ast.MatchStmt) {
	disc := e.expr(n.Discriminant)
	for i, cs := range n.Cases {
		kw := "if"
		if i > 0 {
			kw = "elif"
		}
		var conds []string
		for _, pat := range cs.Patterns {
			if vp, ok := pat.(*ast.VariantPattern); ok && !vp.Wildcard {
				conds = append(conds, fmt.Sprintf("isinstance(%s, %s%s)", disc, n.Discriminant.(*ast.Identifier).Name, vp.CaseName))
			}
		}
		if len(conds) == 0 {
			kw = "else"
			e.line("%s:", kw)
		} else {
			e.line("%s %s:", kw, strings.Join(conds, " or "))
		}
		e.state.Enter()
		for _, pat := range cs.Patterns {
			if vp, ok := pat.(*ast.VariantPattern); ok && !vp.Wildcard {
				if vp.Alias != "" {
					e.line("%s = %s", vp.Alias, disc)
				}
				for _, f := range vp.Fields {
					e.line("%s = %s.%s", f.Name, disc, f.Name)
				}
			}
		}
		e.bodyBlock(cs.Body)
		e.state.Leave()
	}
}

func (e *emitter) emitForOf(n *ast.ForOfStmt) {
	src := e.expr(n.Source)
	for _, v := range n.Verbs {
		src = applyPipelineVerb(src, v)
	}
	kw := "for"
	if n.Binding.IsAsync {
		kw = "async for"
	}
	e.line("%s %s in %s:", kw, n.Binding.Name, src)
	e.state.Enter()
	e.bodyBlock(n.Body)
	e.state.Leave()
}

func applyPipelineVerb(src string, v ast.PipelineVerb) string {
	return fmt.Sprintf("fab_runtime.pipeline(%s, %q)", src, v.Kind.String())
}

func (e *emitter) emitForRange(n *ast.ForRangeStmt) {
	end := e.expr(n.End)
	if n.Inclusive {
		end = fmt.Sprintf("(%s) + 1", end)
	}
	step := "1"
	if n.Step != nil {
		step = e.expr(n.Step)
	}
	e.line("for %s in range(%s, %s, %s):", n.Binding.Name, e.expr(n.Start), end, step)
	e.state.Enter()
	e.bodyBlock(n.Body)
	e.state.Leave()
}

func (e *emitter) emitTry(n *ast.TryStmt) {
	e.line("try:")
	e.state.Enter()
	e.bodyBlock(n.Try)
	e.state.Leave()
	if n.CatchBody != nil {
		e.line("except Exception as %s:", n.CatchParam)
		e.state.Enter()
		e.bodyBlock(n.CatchBody)
		e.state.Leave()
	}
	if n.Finally != nil {
		e.line("finally:")
		e.state.Enter()
		e.bodyBlock(n.Finally)
		e.state.Leave()
	}
}

func (e *emitter) emitOutput(n *ast.OutputStmt) {
	var args []string
	for _, a := range n.Args {
		args = append(args, e.expr(a))
	}
	switch n.Kind {
	case ast.OutputWrite:
		e.line("print(%s)", strings.Join(args, ", "))
	case ast.OutputDebug:
		e.state.RequireImport("logging")
		e.line("logging.debug(%s)", strings.Join(args, ", "))
	case ast.OutputWarn:
		e.state.RequireImport("logging")
		e.line("logging.warning(%s)", strings.Join(args, ", "))
	}
}

func (e *emitter) emitEntryPoint(n *ast.EntryPointStmt) {
	if n.CLI != nil {
		e.state.RequireImport("argparse")
	}
	async := ""
	if n.IsAsync {
		async = "async "
		e.state.RequireImport("asyncio")
	}
	e.line("%sdef main():", async)
	e.state.Enter()
	if n.CLI != nil {
		e.emitCLIScaffold(n.CLI)
	}
	e.bodyBlock(n.Body)
	e.state.Leave()
	e.line("")
	e.line("if __name__ == \"__main__\":")
	e.state.Enter()
	if n.IsAsync {
		e.line("asyncio.run(main())")
	} else {
		e.line("main()")
	}
	e.state.Leave()
}

func (e *emitter) emitCLIScaffold(cli *ast.CLIDescriptor) {
	e.line("parser = argparse.ArgumentParser()")
	for _, opt := range cli.Options {
		flag := opt.Long
		if flag == "" {
			flag = opt.Short
		}
		e.line("parser.add_argument(%q, help=%q)", flag, opt.Description)
	}
	for _, op := range cli.Operands {
		nargs := ""
		if op.Rest {
			nargs = ", nargs=\"*\""
		}
		e.line("parser.add_argument(%q%s, help=%q)", op.Name, nargs, op.Description)
	}
	e.line("args = parser.parse_args()")
}

func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '_' || r == '-' })
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return sb.String()
}

func snakeCase(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == ' ' || r == '-':
			sb.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
