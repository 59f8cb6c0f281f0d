package token

import (
	"strings"
	"testing"
)

func TestLookupKeywordCaseInsensitivity(t *testing.T) {
	samples := []string{"scribe", "discerne", "figendum", "secundum"}
	for _, lexeme := range samples {
		kw, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) not found", lexeme)
		}
		t.Run(lexeme+"/upper", func(t *testing.T) {
			got, ok := LookupKeyword(strings.ToUpper(lexeme))
			if !ok || got != kw {
				t.Errorf("LookupKeyword(%q) = (%v,%v), want (%v,true)", strings.ToUpper(lexeme), got, ok, kw)
			}
		})
		t.Run(lexeme+"/mixed", func(t *testing.T) {
			mixed := strings.ToUpper(lexeme[:1]) + lexeme[1:]
			got, ok := LookupKeyword(mixed)
			if !ok || got != kw {
				t.Errorf("LookupKeyword(%q) = (%v,%v), want (%v,true)", mixed, got, ok, kw)
			}
		})
	}
}

func TestLookupKeywordRejectsFreeIdentifiers(t *testing.T) {
	for _, ident := range []string{"xs", "myCounter", "Event", "addita2"} {
		if _, ok := LookupKeyword(ident); ok {
			t.Errorf("LookupKeyword(%q) unexpectedly matched a reserved word", ident)
		}
	}
}

func TestContextualWordsAreKeywords(t *testing.T) {
	for kw := range ContextualWords {
		if kw.String() == "<unknown-keyword>" {
			t.Errorf("contextual keyword %v has no lexeme registered", kw)
		}
	}
}

func TestPositionLess(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 1, Column: 6}
	c := Position{Line: 2, Column: 1}
	if !a.Less(b) {
		t.Error("expected a < b on same line")
	}
	if !b.Less(c) {
		t.Error("expected b < c across lines")
	}
	if c.Less(a) {
		t.Error("c should not be less than a")
	}
}
