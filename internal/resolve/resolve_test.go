package resolve

import (
	"errors"
	"testing"

	"github.com/fablang/fabc/internal/ast"
)

func TestModuleCacheIsPointerStableAcrossImportSites(t *testing.T) {
	files := map[string]string{"/root/a.fab": "fixum x = 1"}
	parseFn := func(src string) (*ast.Program, error) { return &ast.Program{}, nil }
	load := func(p string) (string, error) {
		if s, ok := files[p]; ok {
			return s, nil
		}
		return "", errors.New("not found")
	}
	mc := NewModuleCache("/root", load, parseFn)

	first, err := mc.Resolve("/root", "a.fab")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := mc.Resolve("/root", "a.fab")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first != second {
		t.Fatal("expected the same *ExportMap pointer across import sites")
	}
}

func TestModuleCacheDetectsImportCycle(t *testing.T) {
	var mc *ModuleCache
	parseFn := func(src string) (*ast.Program, error) {
		if src == "a" {
			return &ast.Program{Body: []ast.Statement{&ast.ImportDecl{Source: "b.fab"}}}, nil
		}
		return &ast.Program{Body: []ast.Statement{&ast.ImportDecl{Source: "a.fab"}}}, nil
	}
	load := func(p string) (string, error) {
		if p == "/root/a.fab" {
			return "a", nil
		}
		return "b", nil
	}
	mc = NewModuleCache("/root", load, parseFn)
	if _, err := mc.Resolve("/root", "a.fab"); err != nil {
		t.Fatalf("cycle should not fail resolution: %v", err)
	}
	if len(mc.CyclicPaths()) == 0 {
		t.Fatal("expected the cycle to be recorded")
	}
}

func TestResolveRegistersTopLevelDeclarations(t *testing.T) {
	fn := &ast.FunctionDecl{Name: "greet"}
	prog := &ast.Program{Body: []ast.Statement{fn}}
	_, ctx := Resolve(prog)
	if ctx == nil {
		t.Fatal("expected a non-nil context")
	}
}

func TestCheckMorphologyReportsUndeclaredFutureForm(t *testing.T) {
	xs := &ast.Identifier{Name: "xs"}
	xs.SetResolvedType(&ast.ArrayTypeShorthand{Element: &ast.NamedType{Name: "numerus"}})
	call := &ast.CallExpr{
		Callee: &ast.MemberExpr{Object: xs, Name: "additura"},
		Args:   []ast.Expression{&ast.NumberLiteral{Raw: "4", Value: 4}},
	}
	fn := &ast.FunctionDecl{Name: "additura4"}
	fn.Body = []ast.Statement{&ast.ExprStmt{Expr: call}}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	_, ctx := Resolve(prog)
	if ctx.Diagnostics.Empty() {
		t.Fatal("expected a morphology diagnostic for the undeclared future-active-participle form")
	}
}

func TestCheckMorphologyIgnoresDeclaredImperativeForm(t *testing.T) {
	xs := &ast.Identifier{Name: "xs"}
	xs.SetResolvedType(&ast.ArrayTypeShorthand{Element: &ast.NamedType{Name: "numerus"}})
	call := &ast.CallExpr{
		Callee: &ast.MemberExpr{Object: xs, Name: "adde"},
		Args:   []ast.Expression{&ast.NumberLiteral{Raw: "4", Value: 4}},
	}
	fn := &ast.FunctionDecl{Name: "push4"}
	fn.Body = []ast.Statement{&ast.ExprStmt{Expr: call}}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	_, ctx := Resolve(prog)
	if !ctx.Diagnostics.Empty() {
		t.Fatalf("expected no diagnostics for a declared imperative form, got %v", ctx.Diagnostics)
	}
}

func TestDiscretioCaseArityMismatchIsReported(t *testing.T) {
	discretio := &ast.DiscretioDecl{
		Name: "Msg",
		Cases: []ast.DiscretioCase{
			{Name: "Click", Fields: []ast.Field{{Name: "x"}, {Name: "y"}}},
		},
	}
	match := &ast.MatchStmt{
		Discriminant: &ast.Identifier{Name: "m"},
		Cases: []ast.MatchCase{
			{Patterns: []ast.Pattern{&ast.VariantPattern{CaseName: "Click", Fields: []ast.VariantFieldBinding{{Name: "x"}}}}},
		},
	}
	varDecl := &ast.VarDecl{Name: "m", Type: &ast.NamedType{Name: "Msg"}}
	prog := &ast.Program{Body: []ast.Statement{discretio, varDecl, match}}

	_, ctx := Resolve(prog)
	if ctx.Diagnostics.Empty() {
		t.Fatal("expected an arity-mismatch diagnostic")
	}
}
