package parser

import (
	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// parseTopLevelStatement is parseStatement plus recovery: a malformed
// top-level declaration must not cascade into parsing the rest of the file
// as garbage.
func (p *Parser) parseTopLevelStatement() ast.Statement {
	before := len(p.errors)
	stmt := p.parseStatement()
	if stmt == nil && len(p.errors) > before {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseStatement() ast.Statement {
	annotations := p.parseAnnotations()

	switch {
	case p.curIsKeyword(token.KwFixum), p.curIsKeyword(token.KwMuta):
		return p.parseVarDecl()
	case p.curIsKeyword(token.KwFunctio):
		return p.parseFunctionDecl(annotations, false, "")
	case p.curIsKeyword(token.KwAsynchronum) && p.peekIsKeyword(token.KwFunctio):
		p.advance()
		p.advance()
		return p.parseFunctionDeclBody(annotations, true, "")
	case p.curIsKeyword(token.KwGenus):
		return p.parseStructDecl(annotations)
	case p.curIsKeyword(token.KwPactum):
		return p.parseInterfaceDecl(annotations)
	case p.curIsKeyword(token.KwOrdo):
		return p.parseEnumDecl()
	case p.curIsKeyword(token.KwDiscretio):
		return p.parseDiscretioDecl()
	case p.curIsKeyword(token.KwTypus):
		return p.parseTypeAliasDecl()
	case p.curIsKeyword(token.KwImporta):
		return p.parseImportDecl()
	case p.curIsKeyword(token.KwSi):
		return p.parseIfStmt()
	case p.curIsKeyword(token.KwDum):
		return p.parseWhileStmt()
	case p.curIsKeyword(token.KwFac):
		return p.parseDoWhileStmt()
	case p.curIsKeyword(token.KwElige):
		return p.parseSwitchStmt()
	case p.curIsKeyword(token.KwDiscerne):
		return p.parseMatchStmt()
	case p.curIsKeyword(token.KwPro):
		return p.parseForStmt()
	case p.curIsKeyword(token.KwCum):
		return p.parseWithStmt()
	case p.curIsKeyword(token.KwTenta):
		return p.parseTryStmt()
	case p.curIsKeyword(token.KwIacit):
		return p.parseThrowStmt()
	case p.curIsKeyword(token.KwMoritor):
		return p.parsePanicStmt()
	case p.curIsKeyword(token.KwRedde):
		return p.parseReturnStmt()
	case p.curIsKeyword(token.KwFrange):
		return p.parseBreakStmt()
	case p.curIsKeyword(token.KwPerge):
		return p.parseContinueStmt()
	case p.curIsKeyword(token.KwNisi):
		return p.parseGuardStmt()
	case p.curIsKeyword(token.KwScribe):
		return p.parseOutputStmt(ast.OutputWrite)
	case p.curIsKeyword(token.KwVide):
		return p.parseOutputStmt(ast.OutputDebug)
	case p.curIsKeyword(token.KwMone):
		return p.parseOutputStmt(ast.OutputWarn)
	case p.curIsKeyword(token.KwIncipe):
		return p.parseEntryPointStmt(annotations)
	case p.curIsKeyword(token.KwExperimentum):
		return p.parseTestSuiteStmt()
	case p.curIsKeyword(token.KwProba):
		return p.parseTestCaseStmt()
	case p.curIsKeyword(token.KwPraepara):
		return p.parseSetupStmt()
	case p.curIsKeyword(token.KwPurga):
		return p.parseTeardownStmt()
	case p.curIsKeyword(token.KwCura):
		return p.parseResourceScopeStmt()
	case p.curIsKeyword(token.KwMitte):
		return p.parseDispatchStmt()
	case p.curIsPunct("{"):
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlockBody() []ast.Statement {
	p.expectPunct("{")
	var body []ast.Statement
	for !p.curIsPunct("}") && !p.atEOF() {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		} else if len(p.errors) > before {
			p.synchronize()
		}
	}
	p.expectPunct("}")
	return body
}

func (p *Parser) parseBlockStmt() ast.Statement {
	tok := p.cur
	s := &ast.BlockStmt{Body: p.parseBlockBody()}
	s.Token = tok
	return s
}

func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	s := &ast.ExprStmt{Expr: expr}
	s.Token = tok
	return s
}

// parseBodyForm parses the single-statement body sugar: `ergo expr`,
// `reddit expr`, `iacit expr`, or `moritor expr` used in place of a `{ }`
// block after conditionals and loop headers (spec.md glossary "corpus
// unius enuntiati").
func (p *Parser) parseBodyForm() []ast.Statement {
	tok := p.cur
	switch {
	case p.curIsKeyword(token.KwErgo):
		p.advance()
		expr := p.parseExpression(precLowest)
		s := &ast.ExprStmt{Expr: expr}
		s.Token = tok
		return []ast.Statement{s}
	case p.curIsKeyword(token.KwReddit):
		p.advance()
		expr := p.parseExpression(precLowest)
		s := &ast.ReturnStmt{Value: expr}
		s.Token = tok
		return []ast.Statement{s}
	case p.curIsKeyword(token.KwIacit):
		return []ast.Statement{p.parseThrowStmt()}
	case p.curIsKeyword(token.KwMoritor):
		return []ast.Statement{p.parsePanicStmt()}
	default:
		return p.parseBlockBody()
	}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.cur
	p.advance() // si
	cond := p.parseExpression(precLowest)
	then := p.parseBodyForm()
	s := &ast.IfStmt{Cond: cond, Then: then}
	s.Token = tok
	if p.curIsKeyword(token.KwAliter) {
		p.advance()
		if p.curIsKeyword(token.KwSi) {
			s.Else = p.parseIfStmt()
		} else {
			elseTok := p.cur
			blk := &ast.BlockStmt{Body: p.parseBodyForm()}
			blk.Token = elseTok
			s.Else = blk
		}
	}
	return s
}

func (p *Parser) parseWhileStmt() ast.Statement {
	tok := p.cur
	p.advance() // dum
	cond := p.parseExpression(precLowest)
	body := p.parseBodyForm()
	s := &ast.WhileStmt{Cond: cond, Body: body}
	s.Token = tok
	return s
}

func (p *Parser) parseDoWhileStmt() ast.Statement {
	tok := p.cur
	p.advance() // fac
	body := p.parseBlockBody()
	p.expectKeyword(token.KwDum)
	cond := p.parseExpression(precLowest)
	s := &ast.DoWhileStmt{Body: body, Cond: cond}
	s.Token = tok
	return s
}

func (p *Parser) parseSwitchStmt() ast.Statement {
	tok := p.cur
	p.advance() // elige
	disc := p.parseExpression(precLowest)
	p.expectPunct("{")
	s := &ast.SwitchStmt{Discriminant: disc}
	s.Token = tok
	for !p.curIsPunct("}") && !p.atEOF() {
		if p.curIsKeyword(token.KwCasus) {
			p.advance()
			var values []ast.Expression
			values = append(values, p.parseExpression(precLowest))
			for p.curIsPunct(",") {
				p.advance()
				values = append(values, p.parseExpression(precLowest))
			}
			p.expectPunct(":")
			body := p.parseCaseBody()
			s.Cases = append(s.Cases, ast.SwitchCase{Values: values, Body: body})
		} else if p.curIsKeyword(token.KwAliter) {
			p.advance()
			p.expectPunct(":")
			s.Default = p.parseCaseBody()
		} else {
			p.errorf("expected casus or aliter in elige block, found %q", p.cur.Lexeme)
			p.synchronizeMember()
		}
	}
	p.expectPunct("}")
	return s
}

// parseCaseBody reads statements up to (but not past) the next casus,
// aliter, or closing brace — a `casus`/`casu` body has no explicit
// terminator of its own.
func (p *Parser) parseCaseBody() []ast.Statement {
	var body []ast.Statement
	for !p.curIsPunct("}") && !p.curIsKeyword(token.KwCasus) && !p.curIsKeyword(token.KwCasu) &&
		!p.curIsKeyword(token.KwAliter) && !p.atEOF() {
		if stmt := p.parseStatement(); stmt != nil {
			body = append(body, stmt)
		}
	}
	return body
}

func (p *Parser) parseMatchStmt() ast.Statement {
	tok := p.cur
	p.advance() // discerne
	disc := p.parseExpression(precLowest)
	p.expectPunct("{")
	s := &ast.MatchStmt{Discriminant: disc}
	s.Token = tok
	for !p.curIsPunct("}") && !p.atEOF() {
		if !p.curIsKeyword(token.KwCasu) {
			p.errorf("expected casu in discerne block, found %q", p.cur.Lexeme)
			p.synchronizeMember()
			continue
		}
		s.Cases = append(s.Cases, p.parseMatchCase())
	}
	p.expectPunct("}")
	return s
}

func (p *Parser) parseMatchCase() ast.MatchCase {
	p.advance() // casu
	var patterns []ast.Pattern
	patterns = append(patterns, p.parsePattern())
	for p.curIsPunct(",") {
		saved := p.save()
		p.advance()
		if p.curIsPunct(":") {
			p.restore(saved)
			break
		}
		patterns = append(patterns, p.parsePattern())
	}
	var guard ast.Expression
	if p.curIsKeyword(token.KwSi) {
		p.advance()
		guard = p.parseExpression(precLowest)
	}
	p.expectPunct(":")
	body := p.parseCaseBody()
	return ast.MatchCase{Patterns: patterns, Guard: guard, Body: body}
}

func (p *Parser) parseIterBinding() ast.IterBinding {
	b := ast.IterBinding{}
	switch {
	case p.curIsKeyword(token.KwFixum):
		b.Mutable = false
	case p.curIsKeyword(token.KwMuta):
		b.Mutable = true
	case p.curIsKeyword(token.KwFigendum):
		b.Mutable, b.IsAsync = false, true
	case p.curIsKeyword(token.KwVariandum):
		b.Mutable, b.IsAsync = true, true
	default:
		p.errorf("expected a binding keyword, found %q", p.cur.Lexeme)
	}
	p.advance()
	b.Name, _ = p.expectIdent()
	return b
}

func (p *Parser) parseForStmt() ast.Statement {
	tok := p.cur
	p.advance() // pro
	binding := p.parseIterBinding()
	switch {
	case p.curIsKeyword(token.KwDe):
		p.advance()
		obj := p.parseExpression(precLowest)
		body := p.parseBodyForm()
		s := &ast.ForInStmt{Binding: binding, Object: obj, Body: body}
		s.Token = tok
		return s
	case p.curIsKeyword(token.KwEx):
		p.advance()
		// minPrec is precRange itself (not +1): range is now immediately
		// below additive in the precedence table, so this folds additive
		// and tighter into each bound while still excluding a nested `..`
		// or anything looser (bitwise, comparison, logical).
		first := p.parseExpression(precRange)
		if p.curIsPunct("..") || p.curIsKeyword(token.KwUsque) {
			inclusive := p.curIsKeyword(token.KwUsque)
			p.advance()
			if inclusive {
				p.expectPunct("..")
			}
			end := p.parseExpression(precRange)
			var step ast.Expression
			if p.curIsKeyword(token.KwPer) {
				p.advance()
				step = p.parseExpression(precLowest)
			}
			body := p.parseBodyForm()
			s := &ast.ForRangeStmt{Binding: binding, Start: first, End: end, Inclusive: inclusive, Step: step, Body: body}
			s.Token = tok
			return s
		}
		var verbs []ast.PipelineVerb
		for p.curIsPunct(",") {
			p.advance()
			verbs = append(verbs, p.parsePipelineVerb())
		}
		body := p.parseBodyForm()
		s := &ast.ForOfStmt{Binding: binding, Source: first, Verbs: verbs, Body: body}
		s.Token = tok
		return s
	default:
		p.errorf("expected ex or de after loop binding, found %q", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parsePipelineVerb() ast.PipelineVerb {
	v := ast.PipelineVerb{Kind: p.cur.Keyword}
	p.advance()
	switch v.Kind {
	case token.KwPrimum, token.KwPostremum:
		v.N = p.parseExpression(precLowest)
	case token.KwSumma, token.KwOrdina, token.KwCarpe, token.KwGrex:
		if p.curIsKeyword(token.KwSecundum) {
			p.advance()
			if p.cur.Kind == token.STRING {
				v.Property = p.cur.Lexeme
				p.advance()
			} else if name, ok := p.expectIdent(); ok {
				v.Property = name
			}
		}
		if p.curIsKeyword(token.KwDescendenter) {
			v.Descending = true
			p.advance()
		}
	}
	return v
}

func (p *Parser) parseWithStmt() ast.Statement {
	tok := p.cur
	p.advance() // cum
	obj := p.parseExpression(precLowest)
	body := p.parseBodyForm()
	s := &ast.WithStmt{Object: obj, Body: body}
	s.Token = tok
	return s
}

func (p *Parser) parseTryStmt() ast.Statement {
	tok := p.cur
	p.advance() // tenta
	tryBody := p.parseBlockBody()
	s := &ast.TryStmt{Try: tryBody}
	s.Token = tok
	if p.curIsKeyword(token.KwCape) {
		p.advance()
		s.CatchParam, _ = p.expectIdent()
		s.CatchBody = p.parseBlockBody()
	}
	if p.curIsKeyword(token.KwDenique) {
		p.advance()
		s.Finally = p.parseBlockBody()
	}
	if s.CatchBody == nil && s.Finally == nil {
		p.errorf("tenta block requires a cape or denique clause")
	}
	return s
}

func (p *Parser) parseThrowStmt() ast.Statement {
	tok := p.cur
	p.advance() // iacit
	val := p.parseExpression(precLowest)
	s := &ast.ThrowStmt{Value: val}
	s.Token = tok
	return s
}

func (p *Parser) parsePanicStmt() ast.Statement {
	tok := p.cur
	p.advance() // moritor
	val := p.parseExpression(precLowest)
	s := &ast.PanicStmt{Value: val}
	s.Token = tok
	return s
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.cur
	p.advance() // redde
	s := &ast.ReturnStmt{}
	s.Token = tok
	if !p.curIsPunct(";") && !p.curIsPunct("}") && !p.atEOF() {
		s.Value = p.parseExpression(precLowest)
	}
	return s
}

func (p *Parser) parseBreakStmt() ast.Statement {
	tok := p.cur
	p.advance()
	s := &ast.BreakStmt{}
	s.Token = tok
	return s
}

func (p *Parser) parseContinueStmt() ast.Statement {
	tok := p.cur
	p.advance()
	s := &ast.ContinueStmt{}
	s.Token = tok
	return s
}

func (p *Parser) parseGuardStmt() ast.Statement {
	tok := p.cur
	p.advance() // nisi
	cond := p.parseExpression(precLowest)
	body := p.parseBodyForm()
	s := &ast.GuardStmt{Cond: cond, ElseBody: body}
	s.Token = tok
	return s
}

func (p *Parser) parseOutputStmt(kind ast.OutputKind) ast.Statement {
	tok := p.cur
	p.advance()
	p.expectPunct("(")
	var args []ast.Expression
	for !p.curIsPunct(")") && !p.atEOF() {
		args = append(args, p.parseExpression(precLowest))
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct(")")
	s := &ast.OutputStmt{Kind: kind, Args: args}
	s.Token = tok
	return s
}

func (p *Parser) parseTestSuiteStmt() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.parseStringName()
	p.pushContext("experimentum body")
	defer p.popContext()
	body := p.parseBlockBody()
	s := &ast.TestSuiteStmt{Name: name, Body: body}
	s.Token = tok
	return s
}

func (p *Parser) parseTestCaseStmt() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.parseStringName()
	p.pushContext("proba body")
	defer p.popContext()
	body := p.parseBlockBody()
	s := &ast.TestCaseStmt{Name: name, Body: body}
	s.Token = tok
	return s
}

func (p *Parser) parseStringName() string {
	if p.cur.Kind == token.STRING {
		s := p.cur.Lexeme
		p.advance()
		return s
	}
	p.errorf("expected a string name, found %q", p.cur.Lexeme)
	return ""
}

func (p *Parser) parseSetupStmt() ast.Statement {
	tok := p.cur
	p.advance()
	s := &ast.SetupStmt{Body: p.parseBlockBody()}
	s.Token = tok
	return s
}

func (p *Parser) parseTeardownStmt() ast.Statement {
	tok := p.cur
	p.advance()
	s := &ast.TeardownStmt{Body: p.parseBlockBody()}
	s.Token = tok
	return s
}

func (p *Parser) parseResourceScopeStmt() ast.Statement {
	tok := p.cur
	p.advance() // cura
	binding := p.parseIterBinding()
	p.expectKeyword(token.KwEx)
	res := p.parseExpression(precLowest)
	body := p.parseBodyForm()
	s := &ast.ResourceScopeStmt{Binding: binding, Resource: res, Body: body}
	s.Token = tok
	return s
}

func (p *Parser) parseDispatchStmt() ast.Statement {
	tok := p.cur
	p.advance() // mitte
	target := p.parseExpression(precPostfix)
	call, ok := target.(*ast.CallExpr)
	s := &ast.DispatchStmt{}
	s.Token = tok
	if ok {
		s.Target = call.Callee
		s.Args = call.Args
	} else {
		s.Target = target
	}
	return s
}

func (p *Parser) parseEntryPointStmt(annotations []ast.Annotation) ast.Statement {
	tok := p.cur
	p.advance() // incipe
	isAsync := false
	if p.curIsKeyword(token.KwAsynchronum) {
		isAsync = true
		p.advance()
	}
	s := &ast.EntryPointStmt{IsAsync: isAsync}
	s.Token = tok
	s.CLI = buildCLIDescriptor(annotations)
	s.Body = p.parseBlockBody()
	return s
}
