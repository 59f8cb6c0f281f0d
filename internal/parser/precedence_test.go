package parser

import (
	"testing"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/lexer"
)

func TestNullishLogicalOrMixingWithoutParensIsError(t *testing.T) {
	toks, lexErrs := lexer.Tokenize(`fixum x = a vel b aut c`)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	_, errs := Parse(toks)
	if len(errs) == 0 {
		t.Fatal("expected a mixing error for `vel` chained with `aut` without parentheses")
	}
}

func TestNullishLogicalOrParenthesizedMixingIsFine(t *testing.T) {
	prog := parseSource(t, `fixum x = (a vel b) aut c`)
	decl := prog.Body[0].(*ast.VarDecl)
	bin, ok := decl.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinLogicalOr {
		t.Fatalf("expected a top-level logical-or, got %#v", decl.Value)
	}
	if _, ok := bin.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected the parenthesized vel to survive as the left operand, got %#v", bin.Left)
	}
}

func TestShiftBindsTighterThanAdditive(t *testing.T) {
	prog := parseSource(t, `fixum x = 1 + 2 sinistrorsum 3`)
	decl := prog.Body[0].(*ast.VarDecl)
	bin, ok := decl.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected top-level +, got %#v", decl.Value)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.BinShiftLeft {
		t.Fatalf("expected `2 sinistrorsum 3` to bind as the + operand's right side, got %#v", bin.Right)
	}
}

func TestBitwiseAndBindsTighterThanXorBindsTighterThanOr(t *testing.T) {
	prog := parseSource(t, `fixum x = a | b ^ c & d`)
	decl := prog.Body[0].(*ast.VarDecl)
	or, ok := decl.Value.(*ast.BinaryExpr)
	if !ok || or.Op != ast.BinBitOr {
		t.Fatalf("expected top-level |, got %#v", decl.Value)
	}
	xor, ok := or.Right.(*ast.BinaryExpr)
	if !ok || xor.Op != ast.BinBitXor {
		t.Fatalf("expected ^ nested under |, got %#v", or.Right)
	}
	and, ok := xor.Right.(*ast.BinaryExpr)
	if !ok || and.Op != ast.BinBitAnd {
		t.Fatalf("expected & nested tightest under ^, got %#v", xor.Right)
	}
}

func TestVacuumRequiresOperandOnSameLine(t *testing.T) {
	prog := parseSource(t, `fixum x = vacuum xs`)
	decl := prog.Body[0].(*ast.VarDecl)
	un, ok := decl.Value.(*ast.UnaryExpr)
	if !ok || un.Op != ast.UnaryIsEmpty {
		t.Fatalf("expected a vacuum unary expr, got %#v", decl.Value)
	}
}

func TestSignumRequiresOperandOnSameLine(t *testing.T) {
	prog := parseSource(t, `fixum x = signum n`)
	decl := prog.Body[0].(*ast.VarDecl)
	un, ok := decl.Value.(*ast.UnaryExpr)
	if !ok || un.Op != ast.UnarySign {
		t.Fatalf("expected a signum unary expr, got %#v", decl.Value)
	}
}
