package parser

import (
	"strconv"
	"strings"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// parseExpression is the Pratt entry point: parse a prefix term, then fold
// in infix/postfix operators whose precedence exceeds minPrec.
//
// sawNullish/sawLogicalOr track, within this call's own fold loop only,
// which side of the shared nullish/logical-or level has appeared so far: a
// grouped sub-expression (parenthesized, or parsed by a nested recursive
// call) never affects it, so `(a ?? b) || c` is fine while `a ?? b || c` is
// flagged the moment `||` folds onto a chain that already folded `??`
// (spec.md §4.3 "mixing them without parentheses is an error").
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	sawNullish, sawLogicalOr := false, false
	for precedenceOf(p.cur) > minPrec && !p.atEOF() {
		if precedenceOf(p.cur) == precNullishOr {
			if isNullishOp(p.cur) {
				if sawLogicalOr {
					p.errorf("vel/?? and aut/|| cannot be mixed without parentheses")
				}
				sawNullish = true
			} else {
				if sawNullish {
					p.errorf("vel/?? and aut/|| cannot be mixed without parentheses")
				}
				sawLogicalOr = true
			}
		}
		left = p.parseInfix(left)
	}
	if p.curIsPunct("?") {
		left = p.parseTernary(left, false)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	switch {
	case p.curIsPunct("-"):
		return p.parseUnary(ast.UnaryNeg, false)
	case p.curIsPunct("+"):
		return p.parseUnary(ast.UnaryPos, false)
	case p.curIsPunct("!"):
		return p.parseUnary(ast.UnaryNot, false)
	case p.curIsKeyword(token.KwNon):
		return p.parseUnary(ast.UnaryNot, true)
	case p.curIsKeyword(token.KwVacuum) && p.sameLine() && p.tokenStartsOperand(p.peek):
		return p.parseUnary(ast.UnaryIsEmpty, true)
	case p.curIsKeyword(token.KwNullum) && p.sameLine() && p.tokenStartsOperand(p.peek):
		return p.parseUnary(ast.UnaryIsNull, true)
	case p.curIsKeyword(token.KwSignum) && p.sameLine() && p.tokenStartsOperand(p.peek):
		return p.parseUnary(ast.UnarySign, true)
	case p.curIsKeyword(token.KwExpecta):
		return p.parseUnary(ast.UnaryAwait, true)
	case p.curIsKeyword(token.KwNovum):
		return p.parseNew()
	case p.curIsKeyword(token.KwComputa):
		return p.parseCompileTimeBlock()
	case p.curIsKeyword(token.KwLege):
		return p.parseStdinRead()
	case p.curIsKeyword(token.KwDiscrimen):
		return p.parseRegexLiteral()
	case p.curIsKeyword(token.KwEgo):
		return p.parseSelf()
	case p.curIsKeyword(token.KwNullum):
		return p.parseNullLiteral()
	case p.curIsKeyword(token.KwVerum), p.curIsKeyword(token.KwFalsum):
		return p.parseBoolLiteral()
	case p.curIsPunct("("):
		return p.parseGroupedOrLambda()
	case p.curIsPunct("["):
		return p.parseArrayLiteral()
	case p.curIsPunct("{"):
		return p.parseObjectLiteral()
	case p.cur.Kind == token.NUMBER:
		return p.parseNumberLiteral()
	case p.cur.Kind == token.BIGINT:
		return p.parseBigIntLiteral()
	case p.cur.Kind == token.STRING:
		return p.parseStringLikeLiteral()
	case p.cur.Kind == token.TEMPLATE:
		return p.parseTemplateLiteral()
	case p.cur.Kind == token.IDENT:
		return p.parseIdentifierOrLambda()
	default:
		p.errorf("unexpected token %q in expression", p.cur.Lexeme)
		p.advance()
		return nil
	}
}

// tokenStartsOperand is the same-line lookahead test that disambiguates a
// contextual word used as an operator from the same word used as a plain
// identifier-like literal (spec.md §4.3).
func (p *Parser) tokenStartsOperand(t token.Token) bool {
	switch t.Kind {
	case token.IDENT, token.NUMBER, token.BIGINT, token.STRING, token.TEMPLATE:
		return true
	}
	if t.IsPunct("(") || t.IsPunct("[") || t.IsPunct("{") || t.IsPunct("-") || t.IsPunct("!") {
		return true
	}
	return t.Kind == token.KEYWORD
}

func (p *Parser) parseUnary(op ast.UnaryOp, isKeyword bool) ast.Expression {
	tok := p.cur
	p.advance()
	operand := p.parseExpression(precUnaryBindingFor(op))
	e := &ast.UnaryExpr{Op: op, Operand: operand, IsKeyword: isKeyword}
	e.Token = tok
	return e
}

// precUnaryBindingFor returns the minPrec a unary operator's operand is
// parsed at: precCast, so the operand takes in postfix chains (member, call,
// index) but stops before tamquam, the shift suffixes and every binary
// operator.
func precUnaryBindingFor(op ast.UnaryOp) int { return precCast }

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	switch {
	case p.curIsKeyword(token.KwTamquam):
		return p.parseCastOrConversion(left)
	case p.curIsPunct("."), p.curIsPunct("?."):
		return p.parseMember(left)
	case p.curIsPunct("!") && !p.sameLine():
		// a stray trailing `!` with no chain continuation is not non-null
		// assertion; leave it to the caller.
		return left
	case p.curIsPunct("!"):
		return p.parseNonNullThenContinue(left)
	case p.curIsPunct("("):
		return p.parseCall(left, ast.ChainPlain)
	case p.curIsPunct("["):
		return p.parseIndex(left, ast.ChainPlain)
	default:
		return p.parseBinary(left)
	}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	opTok := p.cur
	prec := precedenceOf(opTok)
	op, ok := binaryOpFor(opTok)
	if !ok {
		p.errorf("unexpected operator %q", opTok.Lexeme)
		p.advance()
		return left
	}
	p.advance()
	right := p.parseExpression(prec)
	e := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	e.Token = opTok
	return e
}

func (p *Parser) parseTernary(cond ast.Expression, isKeyword bool) ast.Expression {
	tok := p.cur
	p.advance() // '?'
	then := p.parseExpression(precLowest)
	p.expectPunct(":")
	els := p.parseExpression(precLowest)
	e := &ast.TernaryExpr{Cond: cond, Then: then, Else: els, IsKeyword: isKeyword}
	e.Token = tok
	return e
}

func (p *Parser) parseMember(obj ast.Expression) ast.Expression {
	flavor := ast.ChainPlain
	tok := p.cur
	if p.curIsPunct("?.") {
		flavor = ast.ChainOptional
	}
	p.advance()
	name, ok := p.expectIdent()
	if !ok {
		return obj
	}
	e := &ast.MemberExpr{Object: obj, Name: name, Flavor: flavor}
	e.Token = tok
	if p.curIsPunct("(") {
		return p.parseCall(e, flavor)
	}
	return e
}

func (p *Parser) parseNonNullThenContinue(obj ast.Expression) ast.Expression {
	p.advance() // '!'
	switch {
	case p.curIsPunct("."):
		p.advance()
		name, _ := p.expectIdent()
		return &ast.MemberExpr{Object: obj, Name: name, Flavor: ast.ChainNonNull}
	case p.curIsPunct("("):
		return p.parseCall(obj, ast.ChainNonNull)
	case p.curIsPunct("["):
		return p.parseIndex(obj, ast.ChainNonNull)
	default:
		return obj
	}
}

func (p *Parser) parseCall(callee ast.Expression, flavor ast.ChainFlavor) ast.Expression {
	tok := p.cur
	p.advance() // '('
	var args []ast.Expression
	for !p.curIsPunct(")") && !p.atEOF() {
		args = append(args, p.parseExpression(precLowest))
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct(")")
	e := &ast.CallExpr{Callee: callee, Args: args, Flavor: flavor}
	e.Token = tok
	return e
}

func (p *Parser) parseIndex(obj ast.Expression, flavor ast.ChainFlavor) ast.Expression {
	tok := p.cur
	p.advance() // '['
	idx := p.parseExpression(precLowest)
	p.expectPunct("]")
	e := &ast.IndexExpr{Object: obj, Index: idx, Flavor: flavor}
	e.Token = tok
	return e
}

func (p *Parser) parseCastOrConversion(value ast.Expression) ast.Expression {
	tok := p.cur
	p.advance() // tamquam
	ty := p.parseTypeExpression()
	if p.curIsKeyword(token.KwVel) {
		p.advance()
		fallback := p.parseExpression(precCast)
		e := &ast.ConversionExpr{Value: value, Type: ty, Fallback: fallback}
		e.Token = tok
		return e
	}
	e := &ast.CastExpr{Value: value, Type: ty}
	e.Token = tok
	return e
}

func (p *Parser) parseNew() ast.Expression {
	tok := p.cur
	p.advance() // novum
	callee := p.parseExpression(precPostfix)
	e := &ast.UnaryExpr{Op: ast.UnaryNew, Operand: callee, IsKeyword: true}
	e.Token = tok
	return e
}

func (p *Parser) parseCompileTimeBlock() ast.Expression {
	tok := p.cur
	p.advance() // computa
	body := p.parseBlockBody()
	if len(body) != 1 {
		p.errorf("computa block must contain exactly one expression statement")
	}
	var inner ast.Expression
	if len(body) == 1 {
		if es, ok := body[0].(*ast.ExprStmt); ok {
			inner = es.Expr
		}
	}
	e := &ast.UnaryExpr{Op: ast.UnaryCompileTime, Operand: inner, IsKeyword: true}
	e.Token = tok
	return e
}

func (p *Parser) parseStdinRead() ast.Expression {
	tok := p.cur
	p.advance() // lege
	var prompt ast.Expression
	if p.curIsPunct("(") {
		p.advance()
		if !p.curIsPunct(")") {
			prompt = p.parseExpression(precLowest)
		}
		p.expectPunct(")")
	}
	e := &ast.StdinReadExpr{Prompt: prompt}
	e.Token = tok
	return e
}

func (p *Parser) parseRegexLiteral() ast.Expression {
	tok := p.cur
	pattern := tok.Lexeme
	flags := ""
	if idx := strings.LastIndexByte(pattern, '/'); idx >= 0 {
		flags = pattern[idx+1:]
		pattern = pattern[:idx]
	}
	p.advance()
	e := &ast.RegexLiteral{Pattern: pattern, Flags: flags}
	e.Token = tok
	return e
}

func (p *Parser) parseSelf() ast.Expression {
	tok := p.cur
	p.advance()
	e := &ast.SelfExpr{}
	e.Token = tok
	return e
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	e := &ast.NullLiteral{}
	e.Token = tok
	return e
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.cur
	val := tok.IsKeyword(token.KwVerum)
	p.advance()
	e := &ast.BooleanLiteral{Value: val}
	e.Token = tok
	return e
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.cur
	raw := tok.Lexeme
	isHex := strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X")
	isFloat := strings.ContainsAny(raw, ".eE") && !isHex
	var val float64
	if isHex {
		if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
			val = float64(n)
		}
	} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
		val = f
	}
	p.advance()
	e := &ast.NumberLiteral{Raw: raw, Value: val, IsFloat: isFloat, IsHex: isHex}
	e.Token = tok
	return e
}

func (p *Parser) parseBigIntLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	e := &ast.BigIntLiteral{Raw: tok.Lexeme}
	e.Token = tok
	return e
}

// parseStringLikeLiteral distinguishes a plain string from a format string
// carrying `${expr}` interpolations — both arrive as token.STRING from the
// lexer, and splitting is a parser concern (spec.md §4.1).
func (p *Parser) parseStringLikeLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	if !strings.Contains(tok.Lexeme, "${") {
		e := &ast.StringLiteral{Value: tok.Lexeme}
		e.Token = tok
		return e
	}
	parts, exprStrings := splitInterpolation(tok.Lexeme)
	var exprs []ast.Expression
	for _, src := range exprStrings {
		sub := New(mustTokenize(src))
		exprs = append(exprs, sub.parseExpression(precLowest))
	}
	e := &ast.FormatStringExpr{Parts: parts, Exprs: exprs}
	e.Token = tok
	return e
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.cur
	p.advance()
	e := &ast.TemplateLiteral{Raw: tok.Lexeme}
	e.Token = tok
	return e
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.cur
	p.advance() // '['
	var elems []ast.Expression
	for !p.curIsPunct("]") && !p.atEOF() {
		elems = append(elems, p.parseExpression(precLowest))
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct("]")
	e := &ast.ArrayLiteral{Elements: elems}
	e.Token = tok
	return e
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.cur
	p.advance() // '{'
	var props []ast.ObjectProperty
	for !p.curIsPunct("}") && !p.atEOF() {
		var key string
		var keyIsStr bool
		if p.cur.Kind == token.STRING {
			key = p.cur.Lexeme
			keyIsStr = true
			p.advance()
		} else if name, ok := p.expectIdent(); ok {
			key = name
		}
		p.expectPunct(":")
		val := p.parseExpression(precLowest)
		props = append(props, ast.ObjectProperty{Key: key, KeyIsStr: keyIsStr, Value: val})
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct("}")
	e := &ast.ObjectLiteral{Properties: props}
	e.Token = tok
	return e
}

// parseGroupedOrLambda disambiguates `(expr)` from `(a, b) -> expr` by
// scanning ahead for a matching ')' followed by '->' or '=>'.
func (p *Parser) parseGroupedOrLambda() ast.Expression {
	if p.looksLikeLambdaParams() {
		return p.parseLambda(false)
	}
	p.advance() // '('
	inner := p.parseExpression(precLowest)
	p.expectPunct(")")
	return inner
}

func (p *Parser) looksLikeLambdaParams() bool {
	s := p.save()
	defer p.restore(s)
	p.advance() // '('
	depth := 1
	for depth > 0 && !p.atEOF() {
		if p.curIsPunct("(") {
			depth++
		} else if p.curIsPunct(")") {
			depth--
			if depth == 0 {
				p.advance()
				break
			}
		}
		p.advance()
	}
	return p.curIsPunct("->") || p.curIsPunct("=>")
}

func (p *Parser) parseIdentifierOrLambda() ast.Expression {
	if p.peekIsPunct("->") || p.peekIsPunct("=>") {
		return p.parseLambda(true)
	}
	tok := p.cur
	p.advance()
	// A call on an upper-case identifier is parsed as an ordinary CallExpr;
	// recognizing it as a discretio case constructor (VariantConstructExpr)
	// is the resolver's job, since that requires knowing the discretio's
	// declared cases (spec.md §5 "resolve").
	e := &ast.Identifier{Name: tok.Lexeme}
	e.Token = tok
	return e
}

func (p *Parser) parseLambda(singleParam bool) ast.Expression {
	tok := p.cur
	var params []ast.LambdaParam
	if singleParam {
		name, _ := p.expectIdent()
		params = append(params, ast.LambdaParam{Name: name})
	} else {
		p.expectPunct("(")
		for !p.curIsPunct(")") && !p.atEOF() {
			name, _ := p.expectIdent()
			var ty ast.TypeExpression
			if p.curIsPunct(":") {
				p.advance()
				ty = p.parseTypeExpression()
			}
			params = append(params, ast.LambdaParam{Name: name, Type: ty})
			if !p.curIsPunct(",") {
				break
			}
			p.advance()
		}
		p.expectPunct(")")
	}
	isAsync := false
	if p.curIsPunct("=>") {
		isAsync = true
	}
	p.advance() // '->' or '=>'
	e := &ast.LambdaExpr{Params: params, IsAsync: isAsync}
	e.Token = tok
	if p.curIsPunct("{") {
		e.Body = p.parseBlockBody()
		e.IsBlock = true
	} else {
		e.ExprBody = p.parseExpression(precLowest)
	}
	return e
}

// splitInterpolation breaks a `${...}` carrying string lexeme into its
// literal segments and the raw source of each embedded expression.
func splitInterpolation(s string) ([]string, []string) {
	var parts []string
	var exprs []string
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			parts = append(parts, s[i:])
			break
		}
		parts = append(parts, s[i:i+start])
		j := i + start + 2
		depth := 1
		k := j
		for k < len(s) && depth > 0 {
			switch s[k] {
			case '{':
				depth++
			case '}':
				depth--
			}
			k++
		}
		exprs = append(exprs, s[j:k-1])
		i = k
	}
	return parts, exprs
}

// mustTokenize re-lexes an embedded-expression fragment extracted from a
// format string. Lexing a substring can never itself fail structurally
// (worst case it yields ILLEGAL tokens the sub-parser then reports), so no
// error return is threaded back here.
func mustTokenize(src string) []token.Token {
	toks, _ := tokenizeFragment(src)
	return toks
}
