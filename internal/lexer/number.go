package lexer

import "github.com/fablang/fabc/internal/token"

// readNumber scans decimal, hex (0x-prefixed), and bigint (n-suffixed)
// numeric literals. The raw lexeme is always preserved verbatim — the AST
// literal node stores both the parsed value and this text so generators can
// reproduce hex formatting (spec.md §4.1 "Numeric literals").
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // '0'
		l.readChar() // 'x'
		digitsStart := l.pos
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if l.pos == digitsStart {
			l.errors = append(l.errors, Error{Pos: pos, Message: "malformed hex literal: no digits after 0x"})
			return token.Token{Kind: token.ILLEGAL, Lexeme: l.input[start:l.pos], Pos: pos}
		}
		return l.finishNumber(start, pos)
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		save := l.pos
		savedLine, savedCol, savedCh, savedReadPos := l.line, l.column, l.ch, l.readPos
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if isDigit(l.ch) {
			isFloat = true
			for isDigit(l.ch) {
				l.readChar()
			}
		} else {
			// Not actually an exponent; rewind.
			l.pos, l.line, l.column, l.ch, l.readPos = save, savedLine, savedCol, savedCh, savedReadPos
		}
	}

	if !isFloat && l.ch == 'n' {
		l.readChar()
		lexeme := l.input[start:l.pos]
		return token.Token{Kind: token.BIGINT, Lexeme: lexeme, Pos: pos}
	}

	return l.finishNumber(start, pos)
}

func (l *Lexer) finishNumber(start int, pos token.Position) token.Token {
	lexeme := l.input[start:l.pos]
	if l.ch == 'n' {
		l.readChar()
		return token.Token{Kind: token.BIGINT, Lexeme: lexeme, Pos: pos}
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lexeme, Pos: pos}
}
