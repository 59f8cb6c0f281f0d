package lexer

import (
	"testing"

	"github.com/fablang/fabc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasicDeclaration(t *testing.T) {
	toks, errs := Tokenize(`fixum xs: lista<numerus> = [1, 2, 3];`)
	if len(errs) != 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("last token must be EOF, got %v", toks[len(toks)-1].Kind)
	}
	if toks[0].Keyword != token.KwFixum {
		t.Errorf("expected first token to be KwFixum, got %v", toks[0])
	}
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	inputs := []string{"", "   ", "\"unterminated", "`unterminated", "/* unterminated", "0x", "si x { }"}
	for _, in := range inputs {
		toks, _ := Tokenize(in)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("Tokenize(%q) did not end in EOF", in)
		}
	}
}

func TestTokenizeEmptyFile(t *testing.T) {
	toks, errs := Tokenize("")
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("expected single EOF token, got %v", toks)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"123", token.NUMBER},
		{"123.45", token.NUMBER},
		{"0xFF", token.NUMBER},
		{"42n", token.BIGINT},
		{"1.5e10", token.NUMBER},
	}
	for _, tt := range tests {
		toks, _ := Tokenize(tt.src)
		if toks[0].Kind != tt.kind {
			t.Errorf("Tokenize(%q)[0].Kind = %v, want %v", tt.src, toks[0].Kind, tt.kind)
		}
	}
}

func TestTokenizeHexPreservesRawLexeme(t *testing.T) {
	toks, _ := Tokenize("0xFF")
	if toks[0].Lexeme != "0xFF" {
		t.Errorf("expected raw hex lexeme preserved, got %q", toks[0].Lexeme)
	}
}

func TestTokenizeMalformedHexEmitsError(t *testing.T) {
	_, errs := Tokenize("0x")
	if len(errs) == 0 {
		t.Fatal("expected a lexical error for malformed hex literal")
	}
}

func TestTokenizeString(t *testing.T) {
	toks, errs := Tokenize(`"hello\nworld"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.STRING || toks[0].Lexeme != "hello\nworld" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeUnterminatedStringRecovers(t *testing.T) {
	toks, errs := Tokenize("\"oops\nsi x", WithPreserveComments(false))
	if len(errs) == 0 {
		t.Fatal("expected unterminated string error")
	}
	// Recovery must still find the next statement-starter keyword.
	found := false
	for _, tk := range toks {
		if tk.Keyword == token.KwSi {
			found = true
		}
	}
	if !found {
		t.Errorf("expected lexer to recover and continue tokenizing, got %v", kinds(toks))
	}
}

func TestTokenizeTemplateKeepsRawBody(t *testing.T) {
	toks, _ := Tokenize("`hi ${name}`")
	if toks[0].Kind != token.TEMPLATE {
		t.Fatalf("expected TEMPLATE, got %v", toks[0].Kind)
	}
	if toks[0].Lexeme != "hi ${name}" {
		t.Errorf("got %q", toks[0].Lexeme)
	}
}

func TestTokenizeRegexLiteral(t *testing.T) {
	toks, errs := Tokenize(`discrimen /ab+c/i`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.REGEXBODY {
		t.Fatalf("expected REGEXBODY, got %v: %+v", toks[0].Kind, toks)
	}
	if toks[0].Lexeme != "ab+c/i" {
		t.Errorf("got %q", toks[0].Lexeme)
	}
}

func TestTokenizeLineComments(t *testing.T) {
	toks, _ := Tokenize("// a comment\nfixum x", WithPreserveComments(true))
	if toks[0].Kind != token.COMMENT {
		t.Fatalf("expected leading COMMENT token, got %v", toks[0].Kind)
	}
	if toks[0].CommentKind != token.LineComment {
		t.Errorf("expected LineComment kind")
	}
}

func TestTokenizeCommentsDiscardedByDefault(t *testing.T) {
	toks, _ := Tokenize("// a comment\nfixum x")
	if toks[0].Keyword != token.KwFixum {
		t.Fatalf("expected comments to be dropped by default, got %v", toks[0])
	}
}

func TestTokenizeKeywordCaseInsensitive(t *testing.T) {
	toks, _ := Tokenize("SCRIBE x")
	if toks[0].Keyword != token.KwScribe {
		t.Errorf("expected case-insensitive keyword match, got %+v", toks[0])
	}
}

func TestTokenizeStripsBOM(t *testing.T) {
	toks, _ := Tokenize("﻿fixum x")
	if toks[0].Keyword != token.KwFixum {
		t.Fatalf("expected BOM to be stripped, got %+v", toks[0])
	}
}

func TestTokenizePunctuation(t *testing.T) {
	toks, _ := Tokenize("?. ?? => -> == != <= >= && || ..")
	want := []string{"?.", "??", "=>", "->", "==", "!=", "<=", ">=", "&&", "||", ".."}
	if len(toks)-1 != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks)-1, len(want), toks)
	}
	for i, w := range want {
		if toks[i].Lexeme != w {
			t.Errorf("token %d: got %q, want %q", i, toks[i].Lexeme, w)
		}
	}
}

func TestPositionColumnsCountRunes(t *testing.T) {
	toks, _ := Tokenize("var Δ")
	// "var" is a free identifier here (not reserved), "Δ" follows after a space.
	if toks[1].Pos.Column != 5 {
		t.Errorf("expected column 5 for second token, got %d", toks[1].Pos.Column)
	}
}
