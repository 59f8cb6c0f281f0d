package token

import "golang.org/x/text/cases"

// fold is the single case-folding transformer used for keyword lookup so
// that `Si`, `SI`, and `si` are the same reserved word. cases.Fold is
// Unicode-correct where a naive strings.ToLower would not be (e.g. it does
// not depend on a particular language's casing rules, matching the
// teacher's pkg/token case-insensitivity contract — see DESIGN.md).
var fold = cases.Fold()

func init() {
	// Normalize the table once to the same fold applied to lookups, so
	// mixed-case source (`SCRIBE`, `Scribe`) resolves identically to
	// `scribe` without folding on every lookup.
	folded := make(map[string]Keyword, len(keywords))
	for lexeme, kw := range keywords {
		folded[fold.String(lexeme)] = kw
	}
	keywords = folded
}

// LookupKeyword reports whether lexeme names a reserved word, case-folded,
// and returns its Keyword identity. A free identifier returns (0, false).
func LookupKeyword(lexeme string) (Keyword, bool) {
	kw, ok := keywords[fold.String(lexeme)]
	return kw, ok
}
