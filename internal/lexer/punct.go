package lexer

import "github.com/fablang/fabc/internal/token"

// twoCharPuncts lists punctuation lexemes recognized greedily before falling
// back to a single character, longest relevant combination first where one
// is a prefix of another (e.g. ">>" before ">").
var threeCharPuncts = []string{"...", "??="}

var twoCharPuncts = []string{
	"==", "!=", "<=", ">=", "&&", "||", "??", "?.", "=>", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "..",
}

func (l *Lexer) readPunct(pos token.Position) token.Token {
	rest := l.input[l.pos:]

	for _, p := range threeCharPuncts {
		if startsWith(rest, p) {
			l.advanceBy(len(p))
			return token.Token{Kind: token.PUNCT, Lexeme: p, Pos: pos}
		}
	}
	for _, p := range twoCharPuncts {
		if startsWith(rest, p) {
			l.advanceBy(len(p))
			return token.Token{Kind: token.PUNCT, Lexeme: p, Pos: pos}
		}
	}

	ch := l.ch
	switch ch {
	case '(', ')', '{', '}', '[', ']', ',', ';', ':', '.', '?', '!',
		'+', '-', '*', '/', '%', '&', '|', '^', '~', '<', '>', '=', '@', '#':
		l.readChar()
		return token.Token{Kind: token.PUNCT, Lexeme: string(ch), Pos: pos}
	default:
		l.errors = append(l.errors, Error{Pos: pos, Message: "unexpected character: " + string(ch)})
		l.readChar()
		return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Pos: pos}
	}
}

func startsWith(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return s[:len(prefix)] == prefix
}

func (l *Lexer) advanceBy(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}
