// Package lexer tokenizes Language source text into a token stream plus a
// list of lexical errors (spec.md §4.1). It classifies every reserved word as
// KEYWORD except `discrimen`, which it reads together with the regex that
// follows as one REGEXBODY token — deciding whether a keyword *functions* as
// an operator, a type, or a statement starter at a given position belongs to
// the parser.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/fablang/fabc/internal/token"
	"golang.org/x/text/unicode/norm"
)

// Option configures a Lexer. Mirrors the teacher's functional-option style
// (internal/lexer/lexer.go's LexerOption) so the tokenizer stays easy to
// extend without breaking New's signature.
type Option func(*Lexer)

// WithPreserveComments makes the lexer emit COMMENT tokens instead of
// silently discarding them. The parser does not consume COMMENT tokens: it
// neither skips them nor attaches them to AST nodes.
func WithPreserveComments(preserve bool) Option {
	return func(l *Lexer) { l.preserveComments = preserve }
}

// Lexer is a single-use scanner over one source string.
type Lexer struct {
	input            string
	pos              int
	readPos          int
	line             int
	column           int
	ch               rune
	chWidth          int
	preserveComments bool
	errors           []Error
}

// New creates a Lexer over input, stripping a leading UTF-8 BOM if present.
func New(input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Tokenize runs the Lexer to completion, per the external tokenize(source)
// contract in spec.md §6. The returned slice always ends in an EOF token;
// Tokenize never panics (spec.md §8 "Totality of tokenization").
func Tokenize(source string, opts ...Option) ([]token.Token, []Error) {
	l := New(source, opts...)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.errors
}

// Errors returns the lexical errors accumulated so far.
func (l *Lexer) Errors() []Error { return l.errors }

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.chWidth = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
		if r == utf8.RuneError && w <= 1 {
			l.errors = append(l.errors, Error{
				Pos:     token.Position{Line: l.line, Column: l.column + 1, Offset: l.readPos},
				Message: "invalid UTF-8 sequence",
			})
		}
		l.ch = r
		l.chWidth = w
	}
	l.pos = l.readPos
	l.readPos += l.chWidth
	if l.ch == 0 {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) peekCharAt(offset int) rune {
	idx := l.readPos
	var r rune
	for i := 0; i <= offset; i++ {
		if idx >= len(l.input) {
			return 0
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		idx += w
	}
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// NextToken scans and returns the next token, advancing lexer state.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		if l.ch == '/' && l.peekChar() == '/' {
			tok, ok := l.readLineComment()
			if ok {
				return tok
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			tok, ok := l.readBlockComment()
			if ok {
				return tok
			}
			continue
		}
		break
	}

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Lexeme: "", Pos: pos}
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == '`':
		return l.readTemplate(pos)
	case isIdentStart(l.ch):
		return l.readIdentOrKeyword(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	default:
		return l.readPunct(pos)
	}
}

func (l *Lexer) readLineComment() (token.Token, bool) {
	pos := l.currentPos()
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	lexeme := l.input[start:l.pos]
	if !l.preserveComments {
		return token.Token{}, false
	}
	return token.Token{Kind: token.COMMENT, Lexeme: lexeme, Pos: pos, CommentKind: token.LineComment}, true
}

func (l *Lexer) readBlockComment() (token.Token, bool) {
	pos := l.currentPos()
	start := l.pos
	l.readChar() // '/'
	l.readChar() // '*'
	for !(l.ch == '*' && l.peekChar() == '/') {
		if l.ch == 0 {
			l.errors = append(l.errors, Error{Pos: pos, Message: "unterminated block comment"})
			break
		}
		l.readChar()
	}
	if l.ch != 0 {
		l.readChar() // '*'
		l.readChar() // '/'
	}
	lexeme := l.input[start:l.pos]
	if !l.preserveComments {
		return token.Token{}, false
	}
	return token.Token{Kind: token.COMMENT, Lexeme: lexeme, Pos: pos, CommentKind: token.BlockComment}, true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// readIdentOrKeyword scans a run of identifier characters (Unicode letters,
// digits and '_', see isIdentPart) and normalizes it to NFC
// before classifying it, so visually identical identifiers written with
// different combining-character sequences compare equal (spec.md §3 keeps
// identifiers opaque strings; this keeps that string canonical).
func (l *Lexer) readIdentOrKeyword(pos token.Position) token.Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lexeme := norm.NFC.String(l.input[start:l.pos])

	if kw, ok := token.LookupKeyword(lexeme); ok {
		if kw == token.KwDiscrimen {
			return l.readRegex(pos)
		}
		return token.Token{Kind: token.KEYWORD, Lexeme: lexeme, Pos: pos, Keyword: kw}
	}
	return token.Token{Kind: token.IDENT, Lexeme: lexeme, Pos: pos}
}

// readRegex scans the raw body of a regex literal introduced by the
// `discrimen` keyword: `discrimen /pattern/flags`. Because the keyword
// removes ambiguity with division (spec.md §4.1), the body is delimited by
// slashes regardless of surrounding expression context.
func (l *Lexer) readRegex(pos token.Position) token.Token {
	l.skipWhitespace()
	if l.ch != '/' {
		l.errors = append(l.errors, Error{Pos: l.currentPos(), Message: "expected '/' to start regex body after 'discrimen'"})
		return token.Token{Kind: token.ILLEGAL, Lexeme: "discrimen", Pos: pos}
	}
	l.readChar() // opening '/'
	start := l.pos
	for l.ch != '/' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch != '/' {
		l.errors = append(l.errors, Error{Pos: pos, Message: "unterminated regex literal"})
		return token.Token{Kind: token.ILLEGAL, Lexeme: l.input[start:l.pos], Pos: pos}
	}
	l.readChar() // closing '/'
	for isIdentPart(l.ch) {
		l.readChar()
	}
	body := l.input[start:l.pos]
	return token.Token{Kind: token.REGEXBODY, Lexeme: body, Pos: pos}
}
