package lexer

import "github.com/fablang/fabc/internal/token"

// Error is a lexical diagnostic (spec.md §7 "lexical" kind): a malformed
// number or an unterminated string/template. The tokenizer never throws —
// it records an Error at the failing position and resumes scanning at the
// next whitespace or punctuation (spec.md §4.1).
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return e.Message
}
