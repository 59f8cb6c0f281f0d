package diagnostics

import (
	"strings"
	"testing"

	"github.com/fablang/fabc/internal/token"
)

func TestBagSortedOrdersByPositionThenPhase(t *testing.T) {
	b := &Bag{}
	b.Add(Semantic, token.Position{Line: 2, Column: 1}, "semantic issue")
	b.Add(Lexical, token.Position{Line: 1, Column: 5}, "lexical issue")
	b.Add(Syntactic, token.Position{Line: 1, Column: 1}, "syntactic issue")

	sorted := b.Sorted()
	if len(sorted) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(sorted))
	}
	if sorted[0].Kind != Syntactic || sorted[1].Kind != Lexical || sorted[2].Kind != Semantic {
		t.Fatalf("unexpected order: %+v", sorted)
	}
}

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	d := Diagnostic{Kind: Lexical, Pos: token.Position{Line: 1, Column: 5}, Message: "bad token"}
	out := Format(d, "fixum x = 1", false)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "    ^") {
		t.Fatalf("expected caret at column 5, got %q", lines[2])
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	b := &Bag{}
	b.Add(Morphological, token.Position{Line: 3, Column: 2, Offset: 10}, "unknown stem %q", "addo")

	data, err := MarshalJSON(b)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	round, err := UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(round.Items()) != 1 {
		t.Fatalf("expected 1 diagnostic after round trip, got %d", len(round.Items()))
	}
	got := round.Items()[0]
	if got.Kind != Morphological || got.Pos.Line != 3 || got.Message == "" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
