package parser

import (
	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// parseAnnotations consumes zero or more leading `@name(args)` annotations
// attached to the declaration that follows. Visibility/modifier words
// (publicum, privatum, protectum, abstracta, statica) are not consumed here;
// parseVisibilityModifiers reads them.
func (p *Parser) parseAnnotations() []ast.Annotation {
	var out []ast.Annotation
	for p.curIsPunct("@") {
		tok := p.cur
		p.advance()
		name, _ := p.expectIdent()
		ann := ast.Annotation{Name: name}
		ann.Token = tok
		if p.curIsPunct("(") {
			p.advance()
			for !p.curIsPunct(")") && !p.atEOF() {
				ann.Args = append(ann.Args, p.parseExpression(precLowest))
				if !p.curIsPunct(",") {
					break
				}
				p.advance()
			}
			p.expectPunct(")")
		}
		out = append(out, ann)
	}
	return out
}

// parseVisibilityModifiers consumes any of publicum/privatum/protectum and
// abstracta/statica/asynchronum preceding a member or declaration, returning
// the visibility word (empty if none) and the modifier flags.
func (p *Parser) parseVisibilityModifiers() (visibility string, isAbstract, isStatic, isAsync bool) {
	for {
		switch {
		case p.curIsKeyword(token.KwPublicum):
			visibility = "publicum"
			p.advance()
		case p.curIsKeyword(token.KwPrivatum):
			visibility = "privatum"
			p.advance()
		case p.curIsKeyword(token.KwProtectum):
			visibility = "protectum"
			p.advance()
		case p.curIsKeyword(token.KwAbstracta):
			isAbstract = true
			p.advance()
		case p.curIsKeyword(token.KwStatica):
			isStatic = true
			p.advance()
		case p.curIsKeyword(token.KwAsynchronum):
			isAsync = true
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.cur
	mutable := p.curIsKeyword(token.KwMuta)
	p.advance()
	name, _ := p.expectIdent()
	var ty ast.TypeExpression
	if p.curIsPunct(":") {
		p.advance()
		ty = p.parseTypeExpression()
	}
	var val ast.Expression
	if p.curIsPunct("=") {
		p.advance()
		val = p.parseExpression(precLowest)
	}
	s := &ast.VarDecl{Name: name, Type: ty, Value: val, Mutable: mutable}
	s.Token = tok
	return s
}

func (p *Parser) parseFunctionDecl(annotations []ast.Annotation, isAsync bool, visibility string) ast.Statement {
	p.advance() // functio
	return p.parseFunctionDeclBody(annotations, isAsync, visibility)
}

func (p *Parser) parseFunctionDeclBody(annotations []ast.Annotation, isAsync bool, visibility string) ast.Statement {
	tok := p.cur
	name, _ := p.expectIdent()
	params := p.parseParamList()
	var ret ast.TypeExpression
	stream := ast.StreamNone
	if p.curIsPunct(":") {
		p.advance()
		stream = p.parseStreamVerbIfPresent()
		ret = p.parseTypeExpression()
	}
	d := &ast.FunctionDecl{
		Name: name, Params: params, ReturnType: ret,
		IsAsync: isAsync, Visibility: visibility,
		StreamVerb: stream, Annotations: annotations,
	}
	d.Token = tok
	if p.curIsPunct("{") {
		d.Body = p.parseBlockBody()
	} else {
		d.IsAbstract = true
	}
	return d
}

// parseStreamVerbIfPresent consumes the dormant stream-protocol return verb
// (fit/fiet/fiunt/fient) if one prefixes the return type, recording it but
// not yet lowering it to any concrete codegen (spec.md §9 Open Question a).
func (p *Parser) parseStreamVerbIfPresent() ast.StreamVerb {
	switch {
	case p.curIsKeyword(token.KwFit):
		p.advance()
		return ast.StreamFit
	case p.curIsKeyword(token.KwFiet):
		p.advance()
		return ast.StreamFiet
	case p.curIsKeyword(token.KwFiunt):
		p.advance()
		return ast.StreamFiunt
	case p.curIsKeyword(token.KwFient):
		p.advance()
		return ast.StreamFient
	default:
		return ast.StreamNone
	}
}

func (p *Parser) parseParamList() []ast.Param {
	p.expectPunct("(")
	var params []ast.Param
	for !p.curIsPunct(")") && !p.atEOF() {
		name, _ := p.expectIdent()
		var ty ast.TypeExpression
		if p.curIsPunct(":") {
			p.advance()
			ty = p.parseTypeExpression()
		}
		var def ast.Expression
		if p.curIsPunct("=") {
			p.advance()
			def = p.parseExpression(precLowest)
		}
		params = append(params, ast.Param{Name: name, Type: ty, Default: def})
		if !p.curIsPunct(",") {
			break
		}
		p.advance()
	}
	p.expectPunct(")")
	return params
}

func (p *Parser) parseStructDecl(annotations []ast.Annotation) ast.Statement {
	tok := p.cur
	p.advance() // genus
	name, _ := p.expectIdent()
	d := &ast.StructDecl{Name: name, Annotations: annotations}
	d.Token = tok
	if p.curIsKeyword(token.KwEst) {
		p.advance()
		iface, _ := p.expectIdent()
		d.Implements = append(d.Implements, iface)
		for p.curIsPunct(",") {
			p.advance()
			iface, _ := p.expectIdent()
			d.Implements = append(d.Implements, iface)
		}
	}
	p.pushContext("genus member")
	defer p.popContext()
	p.expectPunct("{")
	for !p.curIsPunct("}") && !p.atEOF() {
		memberAnnotations := p.parseAnnotations()
		visibility, isAbstract, isStatic, isAsync := p.parseVisibilityModifiers()
		if p.curIsKeyword(token.KwFunctio) {
			p.advance()
			fn := p.parseFunctionDeclBody(memberAnnotations, isAsync, visibility)
			if f, ok := fn.(*ast.FunctionDecl); ok {
				f.IsAbstract = f.IsAbstract || isAbstract
				d.Methods = append(d.Methods, f)
			}
			continue
		}
		name, ok := p.expectIdent()
		if !ok {
			p.synchronizeMember()
			continue
		}
		var ty ast.TypeExpression
		if p.curIsPunct(":") {
			p.advance()
			ty = p.parseTypeExpression()
		}
		var def ast.Expression
		if p.curIsPunct("=") {
			p.advance()
			def = p.parseExpression(precLowest)
		}
		d.Fields = append(d.Fields, ast.Field{Name: name, Type: ty, Visibility: visibility, IsStatic: isStatic, Default: def})
		if p.curIsPunct(",") || p.curIsPunct(";") {
			p.advance()
		}
	}
	p.expectPunct("}")
	return d
}

func (p *Parser) parseInterfaceDecl(annotations []ast.Annotation) ast.Statement {
	tok := p.cur
	p.advance() // pactum
	name, _ := p.expectIdent()
	d := &ast.InterfaceDecl{Name: name, Annotations: annotations}
	d.Token = tok
	p.pushContext("pactum member")
	defer p.popContext()
	p.expectPunct("{")
	for !p.curIsPunct("}") && !p.atEOF() {
		p.parseAnnotations()
		if !p.expectKeyword(token.KwFunctio) {
			p.synchronizeMember()
			continue
		}
		name, _ := p.expectIdent()
		params := p.parseParamList()
		var ret ast.TypeExpression
		if p.curIsPunct(":") {
			p.advance()
			ret = p.parseTypeExpression()
		}
		d.Methods = append(d.Methods, ast.MethodSig{Name: name, Params: params, ReturnType: ret})
	}
	p.expectPunct("}")
	return d
}

func (p *Parser) parseEnumDecl() ast.Statement {
	tok := p.cur
	p.advance() // ordo
	name, _ := p.expectIdent()
	d := &ast.EnumDecl{Name: name}
	d.Token = tok
	p.expectPunct("{")
	for !p.curIsPunct("}") && !p.atEOF() {
		memberName, ok := p.expectIdent()
		if !ok {
			p.synchronizeMember()
			continue
		}
		var val ast.Expression
		if p.curIsPunct("=") {
			p.advance()
			val = p.parseExpression(precLowest)
		}
		d.Members = append(d.Members, ast.EnumMember{Name: memberName, Value: val})
		if p.curIsPunct(",") {
			p.advance()
		}
	}
	p.expectPunct("}")
	return d
}

func (p *Parser) parseDiscretioDecl() ast.Statement {
	tok := p.cur
	p.advance() // discretio
	name, _ := p.expectIdent()
	d := &ast.DiscretioDecl{Name: name}
	d.Token = tok
	p.expectPunct("{")
	for !p.curIsPunct("}") && !p.atEOF() {
		caseName, ok := p.expectIdent()
		if !ok {
			p.synchronizeMember()
			continue
		}
		c := ast.DiscretioCase{Name: caseName}
		if p.curIsPunct("(") {
			p.advance()
			for !p.curIsPunct(")") && !p.atEOF() {
				fieldName, _ := p.expectIdent()
				p.expectPunct(":")
				fieldType := p.parseTypeExpression()
				c.Fields = append(c.Fields, ast.Field{Name: fieldName, Type: fieldType})
				if !p.curIsPunct(",") {
					break
				}
				p.advance()
			}
			p.expectPunct(")")
		}
		d.Cases = append(d.Cases, c)
		if p.curIsPunct(",") {
			p.advance()
		}
	}
	p.expectPunct("}")
	return d
}

func (p *Parser) parseTypeAliasDecl() ast.Statement {
	tok := p.cur
	p.advance() // typus
	name, _ := p.expectIdent()
	p.expectPunct("=")
	ty := p.parseTypeExpression()
	d := &ast.TypeAliasDecl{Name: name, Type: ty}
	d.Token = tok
	return d
}

// parseImportDecl covers both forms of invariant (v): a named specifier
// list `importa { a, b } ex "source"` and a wildcard `importa * ut alias ex
// "source"`.
func (p *Parser) parseImportDecl() ast.Statement {
	tok := p.cur
	p.advance() // importa
	d := &ast.ImportDecl{}
	d.Token = tok
	if p.curIsPunct("*") {
		p.advance()
		d.Wildcard = true
		p.expectKeyword(token.KwUt)
		d.Alias, _ = p.expectIdent()
	} else {
		p.expectPunct("{")
		for !p.curIsPunct("}") && !p.atEOF() {
			name, _ := p.expectIdent()
			d.Specifiers = append(d.Specifiers, name)
			if !p.curIsPunct(",") {
				break
			}
			p.advance()
		}
		p.expectPunct("}")
	}
	p.expectKeyword(token.KwEx)
	d.Source = p.parseStringName()
	return d
}

// buildCLIDescriptor reads @cli/@optio/@operandus annotations attached to
// an incipe declaration into a structured CLIDescriptor. Returns nil when
// no @cli annotation is present, leaving the entry point plain.
func buildCLIDescriptor(annotations []ast.Annotation) *ast.CLIDescriptor {
	var hasCLI bool
	desc := &ast.CLIDescriptor{}
	for _, a := range annotations {
		switch a.Name {
		case "cli":
			hasCLI = true
		case "optio":
			desc.Options = append(desc.Options, parseCLIOption(a))
		case "operandus":
			desc.Operands = append(desc.Operands, parseCLIOperand(a))
		}
	}
	if !hasCLI {
		return nil
	}
	return desc
}

func parseCLIOption(a ast.Annotation) ast.CLIOption {
	opt := ast.CLIOption{}
	for _, arg := range a.Args {
		if id, ok := arg.(*ast.Identifier); ok && opt.Bind == "" {
			opt.Bind = id.Name
		}
		if lit, ok := arg.(*ast.StringLiteral); ok {
			if opt.Short == "" {
				opt.Short = lit.Value
			} else if opt.Long == "" {
				opt.Long = lit.Value
			} else {
				opt.Description = lit.Value
			}
		}
	}
	return opt
}

func parseCLIOperand(a ast.Annotation) ast.CLIOperand {
	op := ast.CLIOperand{}
	for _, arg := range a.Args {
		if id, ok := arg.(*ast.Identifier); ok {
			op.Name = id.Name
		}
		if lit, ok := arg.(*ast.StringLiteral); ok {
			op.Description = lit.Value
		}
	}
	return op
}
