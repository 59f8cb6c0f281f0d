package ts

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/norma"
)

func (e *emitter) expr(x ast.Expression) string {
	switch n := x.(type) {
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.NumberLiteral:
		return n.Raw
	case *ast.BigIntLiteral:
		return n.Raw + "n"
	case *ast.BooleanLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "null"
	case *ast.TemplateLiteral:
		return "`" + n.Raw + "`"
	case *ast.RegexLiteral:
		return "/" + n.Pattern + "/" + n.Flags
	case *ast.FormatStringExpr:
		return e.formatString(n)
	case *ast.Identifier:
		return n.Name
	case *ast.SelfExpr:
		return "this"
	case *ast.ArrayLiteral:
		var parts []string
		for _, el := range n.Elements {
			parts = append(parts, e.expr(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLiteral:
		var parts []string
		for _, p := range n.Properties {
			key := p.Key
			if p.KeyIsStr {
				key = fmt.Sprintf("%q", p.Key)
			}
			parts = append(parts, fmt.Sprintf("%s: %s", key, e.expr(p.Value)))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.StdinReadExpr:
		e.state.RequireImport("fabRuntime/stdin")
		if n.Prompt != nil {
			return fmt.Sprintf("fabReadLine(%s)", e.expr(n.Prompt))
		}
		return "fabReadLine()"
	case *ast.UnaryExpr:
		return e.unary(n)
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), e.binaryOpSymbol(n.Op), e.expr(n.Right))
	case *ast.TernaryExpr:
		return fmt.Sprintf("(%s ? %s : %s)", e.expr(n.Cond), e.expr(n.Then), e.expr(n.Else))
	case *ast.MemberExpr:
		dot := "."
		if n.Flavor == ast.ChainOptional {
			dot = "?."
		}
		return fmt.Sprintf("%s%s%s", e.expr(n.Object), dot, n.Name)
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", e.expr(n.Object), e.expr(n.Index))
	case *ast.CallExpr:
		return e.call(n)
	case *ast.CastExpr:
		return fmt.Sprintf("(%s as %s)", e.expr(n.Value), e.typeExpr(n.Type))
	case *ast.ConversionExpr:
		return e.conversion(n)
	case *ast.LambdaExpr:
		return e.lambda(n)
	case *ast.VariantConstructExpr:
		return e.variantConstruct(n)
	case *ast.DSLPipelineExpr:
		src := e.expr(n.Source)
		for _, v := range n.Verbs {
			src = applyPipelineVerb(src, v)
		}
		return src
	case *ast.FilterExpr:
		return fmt.Sprintf("%s.filter((%s) => %s)", e.expr(n.Source), n.ParamName, e.expr(n.Predicate))
	default:
		return "/* unsupported expression */"
	}
}

func (e *emitter) unary(n *ast.UnaryExpr) string {
	switch n.Op {
	case ast.UnaryNeg:
		return "(-" + e.expr(n.Operand) + ")"
	case ast.UnaryPos:
		return "(+" + e.expr(n.Operand) + ")"
	case ast.UnaryNot:
		return "(!" + e.expr(n.Operand) + ")"
	case ast.UnaryIsEmpty:
		return fmt.Sprintf("(%s.length === 0)", e.expr(n.Operand))
	case ast.UnaryIsNull:
		return fmt.Sprintf("(%s === null)", e.expr(n.Operand))
	case ast.UnarySign:
		return fmt.Sprintf("Math.sign(%s)", e.expr(n.Operand))
	case ast.UnaryAwait:
		return "(await " + e.expr(n.Operand) + ")"
	case ast.UnaryNew:
		return "new " + e.expr(n.Operand)
	case ast.UnaryCompileTime:
		if n.Operand != nil {
			return e.expr(n.Operand)
		}
		return "undefined"
	default:
		return e.expr(n.Operand)
	}
}

func (e *emitter) binaryOpSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.BinAdd:
		return "+"
	case ast.BinSub:
		return "-"
	case ast.BinMul:
		return "*"
	case ast.BinDiv:
		return "/"
	case ast.BinMod:
		return "%"
	case ast.BinBitAnd:
		return "&"
	case ast.BinBitOr:
		return "|"
	case ast.BinBitXor:
		return "^"
	case ast.BinEq:
		return "==="
	case ast.BinNotEq:
		return "!=="
	case ast.BinLess:
		return "<"
	case ast.BinLessEq:
		return "<="
	case ast.BinGreater:
		return ">"
	case ast.BinGreaterEq:
		return ">="
	case ast.BinLogicalAnd:
		return "&&"
	case ast.BinLogicalOr:
		return "||"
	case ast.BinNullish:
		return "??"
	case ast.BinShiftLeft:
		return "<<"
	case ast.BinShiftRight:
		return ">>"
	case ast.BinTypeCheck:
		return "instanceof"
	default:
		return "/* op */"
	}
}

func (e *emitter) call(n *ast.CallExpr) string {
	var args []string
	for _, a := range n.Args {
		args = append(args, e.expr(a))
	}
	if member, ok := n.Callee.(*ast.MemberExpr); ok {
		if out, ok := e.normaCall(member, args); ok {
			return out
		}
	}
	optDot := ""
	if n.Flavor == ast.ChainOptional {
		optDot = "?."
	}
	return fmt.Sprintf("%s%s(%s)", e.expr(n.Callee), optDot, strings.Join(args, ", "))
}

// normaCall attempts a stdlib-method translation for a member-call whose
// receiver was tagged with a known collection type during resolution. ok
// is false when the receiver isn't a recognized collection at all, so the
// caller falls back to the plain pass-through rendering.
func (e *emitter) normaCall(member *ast.MemberExpr, args []string) (string, bool) {
	typed, ok := member.Object.(interface{ GetResolvedType() ast.TypeExpression })
	if !ok {
		return "", false
	}
	collection := norma.CollectionNameOf(typed.GetResolvedType())
	if collection == "" || !norma.HasCollection(collection) {
		return "", false
	}
	receiver := e.expr(member.Object)
	if tmpl, ok := norma.Lookup(collection, member.Name, norma.TargetTS); ok {
		return norma.ApplyTemplate(tmpl, receiver, args), true
	}
	passthrough := fmt.Sprintf("%s.%s(%s)", receiver, member.Name, strings.Join(args, ", "))
	if stem, kind, ok := norma.ClassifyForm(member.Name); ok {
		return fmt.Sprintf("/* MORPHOLOGY: %s */ %s", norma.MorphologyError(stem, kind), passthrough), true
	}
	return "", false
}

func (e *emitter) conversion(n *ast.ConversionExpr) string {
	ty := e.typeExpr(n.Type)
	if n.Fallback != nil {
		return fmt.Sprintf("(fabRuntime.tryConvert<%s>(%s) ?? %s)", ty, e.expr(n.Value), e.expr(n.Fallback))
	}
	return fmt.Sprintf("fabRuntime.convert<%s>(%s)", ty, e.expr(n.Value))
}

func (e *emitter) lambda(n *ast.LambdaExpr) string {
	var params []string
	for _, p := range n.Params {
		s := p.Name
		if p.Type != nil {
			s += ": " + e.typeExpr(p.Type)
		}
		params = append(params, s)
	}
	async := ""
	if n.IsAsync {
		async = "async "
	}
	header := fmt.Sprintf("%s(%s) =>", async, strings.Join(params, ", "))
	if n.IsBlock {
		var sb strings.Builder
		sb.WriteString(header + " {\n")
		e.state.Enter()
		for _, st := range n.Body {
			e.stmtInto(&sb, st)
		}
		e.state.Leave()
		sb.WriteString(e.state.Indent() + "}")
		return sb.String()
	}
	return fmt.Sprintf("%s %s", header, e.expr(n.ExprBody))
}

// stmtInto renders one statement into an external builder at the emitter's
// current indent depth, used for lambda bodies that live inline inside an
// expression rather than the top-level body buffer.
func (e *emitter) stmtInto(sb *strings.Builder, s ast.Statement) {
	saved := e.body
	e.body = strings.Builder{}
	e.stmt(s)
	sb.WriteString(e.body.String())
	e.body = saved
}

func (e *emitter) variantConstruct(n *ast.VariantConstructExpr) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("kind: %q", n.CaseName))
	for _, f := range n.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Key, e.expr(f.Value)))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (e *emitter) formatString(n *ast.FormatStringExpr) string {
	var sb strings.Builder
	sb.WriteByte('`')
	for i, part := range n.Parts {
		sb.WriteString(part)
		if i < len(n.Exprs) {
			sb.WriteString("${" + e.expr(n.Exprs[i]) + "}")
		}
	}
	sb.WriteByte('`')
	return sb.String()
}
