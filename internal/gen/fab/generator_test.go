package fab

import (
	"strings"
	"testing"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/lexer"
	"github.com/fablang/fabc/internal/parser"
)

// TestRoundTripReparsesToSameShape is the idempotency property SPEC_FULL.md
// names: generate(target="fab", ...) output, re-tokenized and re-parsed,
// must produce the same statement count and declaration names.
func TestRoundTripReparsesToSameShape(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name:       "greet",
		Params:     []ast.Param{{Name: "name", Type: &ast.NamedType{Name: "textus"}}},
		ReturnType: &ast.NamedType{Name: "textus"},
	}
	fn.Body = []ast.Statement{
		&ast.ReturnStmt{Value: &ast.Identifier{Name: "name"}},
	}
	prog := &ast.Program{Body: []ast.Statement{fn}}

	out, err := Generate(prog, "  ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "functio greet") {
		t.Fatalf("expected re-serialized function header, got: %s", out)
	}

	toks, lexErrs := lexer.Tokenize(out)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexical errors in round-tripped source: %v", lexErrs)
	}
	reparsed, parseErrs := parser.Parse(toks)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	if len(reparsed.Body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(reparsed.Body))
	}
	redecl, ok := reparsed.Body[0].(*ast.FunctionDecl)
	if !ok || redecl.Name != "greet" {
		t.Fatalf("expected re-parsed greet function, got %#v", reparsed.Body[0])
	}
}
