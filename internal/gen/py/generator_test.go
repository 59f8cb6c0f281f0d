package py

import (
	"testing"

	"github.com/fablang/fabc/internal/ast"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestGenerateSimpleFunction(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "greet",
		Params:     []ast.Param{{Name: "name", Type: &ast.NamedType{Name: "textus"}}},
		ReturnType: &ast.NamedType{Name: "textus"},
	}
	fn.Body = []ast.Statement{
		&ast.ReturnStmt{Value: &ast.FormatStringExpr{
			Parts: []string{"hello, ", "!"},
			Exprs: []ast.Expression{&ast.Identifier{Name: "name"}},
		}},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	out, err := Generate(prog, "    ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestGenerateTranslatesInflectedCollectionCall(t *testing.T) {
	xs := &ast.Identifier{Name: "xs"}
	xs.SetResolvedType(&ast.ArrayTypeShorthand{Element: &ast.NamedType{Name: "numerus"}})
	call := &ast.CallExpr{
		Callee: &ast.MemberExpr{Object: xs, Name: "adde"},
		Args:   []ast.Expression{&ast.NumberLiteral{Raw: "4", Value: 4}},
	}
	fn := &ast.FunctionDecl{Name: "push4"}
	fn.Body = []ast.Statement{&ast.ExprStmt{Expr: call}}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	out, err := Generate(prog, "    ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestGenerateUndeclaredFutureFormEmitsMorphologyComment(t *testing.T) {
	xs := &ast.Identifier{Name: "xs"}
	xs.SetResolvedType(&ast.ArrayTypeShorthand{Element: &ast.NamedType{Name: "numerus"}})
	call := &ast.CallExpr{
		Callee: &ast.MemberExpr{Object: xs, Name: "additura"},
		Args:   []ast.Expression{&ast.NumberLiteral{Raw: "4", Value: 4}},
	}
	fn := &ast.FunctionDecl{Name: "additura4"}
	fn.Body = []ast.Statement{&ast.ExprStmt{Expr: call}}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	out, err := Generate(prog, "    ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

func TestGenerateDiscretioProducesUnionDataclasses(t *testing.T) {
	d := &ast.DiscretioDecl{
		Name: "Msg",
		Cases: []ast.DiscretioCase{
			{Name: "Click", Fields: []ast.Field{{Name: "x", Type: &ast.NamedType{Name: "numerus"}}}},
			{Name: "Quit"},
		},
	}
	prog := &ast.Program{Body: []ast.Statement{d}}

	out, err := Generate(prog, "    ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}
