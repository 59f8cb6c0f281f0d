package parser

import (
	"testing"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/lexer"
	"github.com/kr/pretty"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	prog, errs := Parse(toks)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseSource(t, `fixum x: numerus = 1`)
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d: %s", len(prog.Body), pretty.Sprint(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %# v", pretty.Formatter(prog.Body[0]))
	}
	if decl.Name != "x" || decl.Mutable {
		t.Fatalf("unexpected decl: %# v", pretty.Formatter(decl))
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := parseSource(t, `functio addita(a: numerus, b: numerus): numerus { redde a + b }`)
	fn, ok := prog.Body[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %# v", pretty.Formatter(prog.Body[0]))
	}
	if fn.Name != "addita" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function: %# v", pretty.Formatter(fn))
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected a + binary expr, got %# v", pretty.Formatter(ret.Value))
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := parseSource(t, `si (x > 0) { scribe(x) } aliter si (x < 0) { scribe(0 - x) } aliter { scribe(0) }`)
	ifStmt, ok := prog.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Body[0])
	}
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected chained else-if, got %# v", pretty.Formatter(ifStmt.Else))
	}
	if _, ok := elseIf.Else.(*ast.BlockStmt); !ok {
		t.Fatalf("expected trailing else block, got %# v", pretty.Formatter(elseIf.Else))
	}
}

func TestParseMatchDisambiguatesCommaFromGuard(t *testing.T) {
	prog := parseSource(t, `discerne (msg) { casu Click pro x, y: scribe(x) casu Quit: redde }`)
	m, ok := prog.Body[0].(*ast.MatchStmt)
	if !ok {
		t.Fatalf("expected *ast.MatchStmt, got %T", prog.Body[0])
	}
	if len(m.Cases) != 2 {
		t.Fatalf("expected 2 match arms, got %d: %s", len(m.Cases), pretty.Sprint(m.Cases))
	}
	vp, ok := m.Cases[0].Patterns[0].(*ast.VariantPattern)
	if !ok || vp.CaseName != "Click" || len(vp.Fields) != 2 {
		t.Fatalf("expected Click pattern with 2 field bindings, got %# v", pretty.Formatter(m.Cases[0]))
	}
}

func TestParseLambdaVsGroupedExpr(t *testing.T) {
	prog := parseSource(t, `fixum f = (a, b) -> a + b fixum g = (1 + 2)`)
	fDecl := prog.Body[0].(*ast.VarDecl)
	if _, ok := fDecl.Value.(*ast.LambdaExpr); !ok {
		t.Fatalf("expected lambda, got %# v", pretty.Formatter(fDecl.Value))
	}
	gDecl := prog.Body[1].(*ast.VarDecl)
	if _, ok := gDecl.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected a grouped binary expr, got %# v", pretty.Formatter(gDecl.Value))
	}
}

func TestParseDiscretioDecl(t *testing.T) {
	prog := parseSource(t, `discretio Msg { Click(x: numerus, y: numerus), Quit }`)
	d, ok := prog.Body[0].(*ast.DiscretioDecl)
	if !ok || len(d.Cases) != 2 {
		t.Fatalf("expected discretio with 2 cases, got %# v", pretty.Formatter(prog.Body[0]))
	}
	if d.Cases[0].Name != "Click" || len(d.Cases[0].Fields) != 2 {
		t.Fatalf("unexpected Click case: %# v", pretty.Formatter(d.Cases[0]))
	}
	if d.Cases[1].Name != "Quit" || len(d.Cases[1].Fields) != 0 {
		t.Fatalf("unexpected Quit case: %# v", pretty.Formatter(d.Cases[1]))
	}
}

func TestParseSyntaxErrorRecoversAtNextStatement(t *testing.T) {
	toks, _ := lexer.Tokenize(`fixum x: = ; functio next() { redde 1 }`)
	prog, errs := Parse(toks)
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error")
	}
	found := false
	for _, s := range prog.Body {
		if fn, ok := s.(*ast.FunctionDecl); ok && fn.Name == "next" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovery to still parse the next declaration, got %s", pretty.Sprint(prog.Body))
	}
}
