package parser

import (
	"strconv"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// parseTypeExpression parses a type annotation: a named type (optionally
// generic and/or nullable), an array shorthand `T[]`, a function type
// `(T, T) -> T`, a union `A | B`, or a numeric-literal type used in a
// discretio/enum context.
func (p *Parser) parseTypeExpression() ast.TypeExpression {
	base := p.parseTypePrimary()
	for p.curIsPunct("|") {
		p.advance()
		next := p.parseTypePrimary()
		if u, ok := base.(*ast.UnionType); ok {
			u.Members = append(u.Members, next)
		} else {
			base = &ast.UnionType{Members: []ast.TypeExpression{base, next}}
		}
	}
	return base
}

func (p *Parser) parseTypePrimary() ast.TypeExpression {
	tok := p.cur
	switch {
	case p.curIsPunct("("):
		p.advance()
		var params []ast.TypeExpression
		for !p.curIsPunct(")") && !p.atEOF() {
			params = append(params, p.parseTypeExpression())
			if !p.curIsPunct(",") {
				break
			}
			p.advance()
		}
		p.expectPunct(")")
		p.expectPunct("->")
		result := p.parseTypeExpression()
		ft := &ast.FunctionType{Params: params, Result: result}
		ft.Token = tok
		return ft
	case p.cur.Kind == token.NUMBER:
		raw := p.cur.Lexeme
		val, _ := strconv.ParseFloat(raw, 64)
		p.advance()
		nt := &ast.NumericLiteralType{Raw: raw, Value: val}
		nt.Token = tok
		return nt
	}

	name := p.cur.Lexeme
	if p.cur.Kind == token.KEYWORD {
		name = p.cur.Keyword.String()
	}
	p.advance()

	var params []ast.TypeExpression
	if p.curIsPunct("<") {
		p.advance()
		for !p.curIsPunct(">") && !p.atEOF() {
			params = append(params, p.parseTypeExpression())
			if !p.curIsPunct(",") {
				break
			}
			p.advance()
		}
		p.expectPunct(">")
	}

	var base ast.TypeExpression
	named := &ast.NamedType{Name: name, Params: params}
	named.Token = tok
	base = named

	for p.curIsPunct("[") && p.peekIsPunct("]") {
		p.advance()
		p.advance()
		arr := &ast.ArrayTypeShorthand{Element: base}
		arr.Token = tok
		base = arr
	}

	if p.curIsPunct("?") {
		p.advance()
		if nt, ok := base.(*ast.NamedType); ok {
			nt.Nullable = true
		}
	}
	return base
}
