package parser

import (
	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// parsePattern parses one `casu` pattern: a wildcard `_`, a literal, an
// object pattern `{ x, y }`, an array pattern `[a, _, ...rest]`, or a
// variant pattern (`CaseName`, `CaseName ut alias`, or `CaseName pro x, y`).
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cur
	switch {
	case p.curIsPunct("_"):
		p.advance()
		pat := &ast.VariantPattern{Wildcard: true}
		pat.Token = tok
		return pat
	case p.curIsPunct("{"):
		return p.parseObjectPattern()
	case p.curIsPunct("["):
		return p.parseArrayPattern()
	case p.cur.Kind == token.IDENT:
		return p.parseVariantPattern()
	default:
		val := p.parseExpression(precLowest)
		pat := &ast.LiteralPattern{Value: val}
		pat.Token = tok
		return pat
	}
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	tok := p.cur
	p.advance() // '{'
	pat := &ast.ObjectPattern{}
	pat.Token = tok
	for !p.curIsPunct("}") && !p.atEOF() {
		key, _ := p.expectIdent()
		binding := key
		if p.curIsPunct(":") {
			p.advance()
			binding, _ = p.expectIdent()
		}
		pat.Fields = append(pat.Fields, ast.ObjectPatternField{Key: key, Binding: binding})
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct("}")
	return pat
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	tok := p.cur
	p.advance() // '['
	pat := &ast.ArrayPattern{}
	pat.Token = tok
	for !p.curIsPunct("]") && !p.atEOF() {
		switch {
		case p.curIsPunct("..."):
			p.advance()
			name, _ := p.expectIdent()
			pat.Elements = append(pat.Elements, ast.ArrayPatternElement{Name: name, Rest: true})
		case p.curIsPunct("_"):
			p.advance()
			pat.Elements = append(pat.Elements, ast.ArrayPatternElement{Skip: true})
		default:
			name, _ := p.expectIdent()
			pat.Elements = append(pat.Elements, ast.ArrayPatternElement{Name: name})
		}
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct("]")
	return pat
}

func (p *Parser) parseVariantPattern() ast.Pattern {
	tok := p.cur
	caseName, _ := p.expectIdent()
	pat := &ast.VariantPattern{CaseName: caseName}
	pat.Token = tok
	switch {
	case p.curIsKeyword(token.KwUt):
		p.advance()
		pat.Alias, _ = p.expectIdent()
	case p.curIsKeyword(token.KwPro):
		p.advance()
		name, _ := p.expectIdent()
		pat.Fields = append(pat.Fields, ast.VariantFieldBinding{Name: name})
		for p.curIsPunct(",") {
			p.advance()
			name, _ := p.expectIdent()
			pat.Fields = append(pat.Fields, ast.VariantFieldBinding{Name: name})
		}
	}
	return pat
}
