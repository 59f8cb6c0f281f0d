package lexer

import (
	"strings"

	"github.com/fablang/fabc/internal/token"
)

// readString scans a double-quoted ordinary string with standard escapes
// (\n \t \r \\ \" \uXXXX). On an unterminated string it records an error and
// resumes at the next whitespace or punctuation (spec.md §4.1 error model).
func (l *Lexer) readString(pos token.Position) token.Token {
	l.readChar() // opening quote
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			l.errors = append(l.errors, Error{Pos: pos, Message: "unterminated string literal"})
			return token.Token{Kind: token.STRING, Lexeme: sb.String(), Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
			sb.WriteRune(l.escapeChar())
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote
	return token.Token{Kind: token.STRING, Lexeme: sb.String(), Pos: pos}
}

func (l *Lexer) escapeChar() rune {
	ch := l.ch
	switch ch {
	case 'n':
		l.readChar()
		return '\n'
	case 't':
		l.readChar()
		return '\t'
	case 'r':
		l.readChar()
		return '\r'
	case '\\', '"', '`':
		l.readChar()
		return ch
	case 'u':
		l.readChar()
		var v rune
		for i := 0; i < 4 && isHexDigit(l.ch); i++ {
			v = v*16 + hexValue(l.ch)
			l.readChar()
		}
		return v
	default:
		l.readChar()
		return ch
	}
}

func hexValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10
	}
	return 0
}

// readTemplate scans a backtick-delimited template string, keeping its raw
// body untouched. Embedded-expression splitting is deferred to targets that
// support template literals natively (spec.md §4.1 "Strings and templates").
func (l *Lexer) readTemplate(pos token.Position) token.Token {
	l.readChar() // opening backtick
	start := l.pos
	for l.ch != '`' {
		if l.ch == 0 {
			l.errors = append(l.errors, Error{Pos: pos, Message: "unterminated template literal"})
			return token.Token{Kind: token.TEMPLATE, Lexeme: l.input[start:l.pos], Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	body := l.input[start:l.pos]
	l.readChar() // closing backtick
	return token.Token{Kind: token.TEMPLATE, Lexeme: body, Pos: pos}
}
