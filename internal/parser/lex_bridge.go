package parser

import (
	"github.com/fablang/fabc/internal/lexer"
	"github.com/fablang/fabc/internal/token"
)

// tokenizeFragment re-lexes a standalone expression fragment, used when a
// format string's `${...}` segment needs its own independent token stream.
func tokenizeFragment(src string) ([]token.Token, []lexer.Error) {
	return lexer.Tokenize(src)
}
