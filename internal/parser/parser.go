// Package parser turns a token stream into an internal/ast.Program. It is a
// hand-written recursive-descent parser with Pratt-style expression parsing,
// grounded on the teacher's cursor/advance/expect shape: one token of
// lookahead, explicit peek, and panic-free error recording rather than
// panic/recover unwinding.
package parser

import (
	"fmt"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// Error is one syntactic diagnostic. BlockContext names the enclosing
// construct ("genus member", "pactum member", "experimentum body", "proba
// body") so the
// recovery pass can report *where* it gave up, not just *that* it did.
type Error struct {
	Pos          token.Position
	Message      string
	BlockContext string
}

func (e Error) Error() string {
	if e.BlockContext != "" {
		return fmt.Sprintf("%s: %s (in %s)", e.Pos, e.Message, e.BlockContext)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parser consumes a flat token slice. It neither skips nor attaches COMMENT
// tokens, so it expects a stream lexed without WithPreserveComments; a
// COMMENT token that reaches it is treated like any other unexpected token.
type Parser struct {
	tokens []token.Token
	pos    int // index of peek in tokens (cur is tokens[pos-1])

	cur  token.Token
	peek token.Token

	blockStack []string // active BlockContext names, innermost last
	errors     []Error
}

// New builds a Parser over a complete token stream (always EOF-terminated,
// per the lexer's contract).
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.pos = -1
	p.advance()
	p.advance()
	return p
}

// Parse runs the full program grammar and returns whatever was built even
// when errors were recorded, so callers can still inspect partial structure.
func Parse(tokens []token.Token) (*ast.Program, []Error) {
	p := New(tokens)
	prog := p.parseProgram()
	return prog, p.errors
}

func (p *Parser) Errors() []Error { return p.errors }

func (p *Parser) advance() {
	p.pos++
	p.cur = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
	} else {
		p.peek = token.Token{Kind: token.EOF}
	}
}

func (p *Parser) atEOF() bool { return p.cur.Kind == token.EOF }

func (p *Parser) curIsPunct(lexeme string) bool { return p.cur.IsPunct(lexeme) }
func (p *Parser) peekIsPunct(lexeme string) bool { return p.peek.IsPunct(lexeme) }
func (p *Parser) curIsKeyword(kw token.Keyword) bool { return p.cur.IsKeyword(kw) }
func (p *Parser) peekIsKeyword(kw token.Keyword) bool { return p.peek.IsKeyword(kw) }

// sameLine reports whether p.peek sits on the same source line as p.cur,
// the lookahead rule contextual-keyword classification depends on
// (spec.md §4.3).
func (p *Parser) sameLine() bool { return p.cur.SameLine(p.peek) }

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, Error{
		Pos:          p.cur.Pos,
		Message:      fmt.Sprintf(format, args...),
		BlockContext: p.currentBlockContext(),
	})
}

func (p *Parser) currentBlockContext() string {
	if len(p.blockStack) == 0 {
		return ""
	}
	return p.blockStack[len(p.blockStack)-1]
}

func (p *Parser) pushContext(name string) { p.blockStack = append(p.blockStack, name) }
func (p *Parser) popContext() {
	if len(p.blockStack) > 0 {
		p.blockStack = p.blockStack[:len(p.blockStack)-1]
	}
}

// expectPunct advances past cur if it matches lexeme, else records an error
// and does not advance (so the caller's synchronize pass can recover).
func (p *Parser) expectPunct(lexeme string) bool {
	if p.curIsPunct(lexeme) {
		p.advance()
		return true
	}
	p.errorf("expected %q, found %q", lexeme, p.cur.Lexeme)
	return false
}

func (p *Parser) expectKeyword(kw token.Keyword) bool {
	if p.curIsKeyword(kw) {
		p.advance()
		return true
	}
	p.errorf("expected keyword %q, found %q", kw.String(), p.cur.Lexeme)
	return false
}

func (p *Parser) expectIdent() (string, bool) {
	if p.cur.Kind == token.IDENT {
		name := p.cur.Lexeme
		p.advance()
		return name, true
	}
	p.errorf("expected identifier, found %q", p.cur.Lexeme)
	return "", false
}

// synchronize skips tokens until a likely statement boundary, used for
// statement-level error recovery (spec.md §4.5 "two-tier recovery").
func (p *Parser) synchronize() {
	for !p.atEOF() {
		if p.curIsPunct(";") || p.curIsPunct("}") {
			p.advance()
			return
		}
		switch p.cur.Keyword {
		case token.KwFixum, token.KwMuta, token.KwFunctio, token.KwGenus,
			token.KwPactum, token.KwOrdo, token.KwDiscretio, token.KwSi,
			token.KwDum, token.KwRedde, token.KwFrange, token.KwPerge:
			return
		}
		p.advance()
	}
}

// synchronizeMember is the struct/interface-member variant of synchronize:
// it stops at a member boundary rather than a statement boundary, so one
// malformed field doesn't swallow the rest of a genus/pactum body.
func (p *Parser) synchronizeMember() {
	for !p.atEOF() && !p.curIsPunct("}") {
		if p.curIsPunct(",") || p.curIsPunct(";") {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEOF() {
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	return prog
}
