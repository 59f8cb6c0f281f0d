package py

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
		return n.Raw
	case *ast.BooleanLiteral:
		if n.Value {
			return "True"
		}
		return "False"
	case *ast.NullLiteral:
		return "None"
	case *ast.TemplateLiteral:
		return fmt.Sprintf("%q", n.Raw)
	case *ast.RegexLiteral:
		e.state.RequireImport("re")
		return fmt.Sprintf("re.compile(r%q)", n.Pattern)
	case *ast.FormatStringExpr:
		return e.formatString(n)
	case *ast.Identifier:
		return n.Name
	case *ast.SelfExpr:
		return "self"
	case *ast.ArrayLiteral:
		var parts []string
		for _, el := range n.Elements {
			parts = append(parts, e.expr(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLiteral:
		var parts []string
		for _, p := range n.Properties {
			parts = append(parts, fmt.Sprintf("%q: %s", p.Key, e.expr(p.Value)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.StdinReadExpr:
		if n.Prompt != nil {
			return fmt.Sprintf("input(%s)", e.expr(n.Prompt))
		}
		return "input()"
	case *ast.UnaryExpr:
		return e.unary(n)
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), e.binaryOpSymbol(n.Op), e.expr(n.Right))
	case *ast.TernaryExpr:
		return fmt.Sprintf("(%s if %s else %s)", e.expr(n.Then), e.expr(n.Cond), e.expr(n.Else))
	case *ast.MemberExpr:
		return fmt.Sprintf("%s.%s", e.expr(n.Object), n.Name)
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", e.expr(n.Object), e.expr(n.Index))
	case *ast.CallExpr:
		return e.call(n)
	case *ast.CastExpr:
		return fmt.Sprintf("typing.cast(%s, %s)", e.typeExpr(n.Type), e.expr(n.Value))
	case *ast.ConversionExpr:
		if n.Fallback != nil {
			return fmt.Sprintf("fab_runtime.try_convert(%s, %s, %s)", e.typeExpr(n.Type), e.expr(n.Value), e.expr(n.Fallback))
		}
		return fmt.Sprintf("fab_runtime.convert(%s, %s)", e.typeExpr(n.Type), e.expr(n.Value))
	case *ast.LambdaExpr:
		if !n.IsBlock {
			var params []string
			for _, p := range n.Params {
				params = append(params, p.Name)
			}
			return fmt.Sprintf("lambda %s: %s", strings.Join(params, ", "), e.expr(n.ExprBody))
		}
		return "/* block lambda requires a named def in Python */"
	case *ast.VariantConstructExpr:
		var args []string
		for _, a := range n.Args {
			args = append(args, e.expr(a))
		}
		for _, f := range n.Fields {
			args = append(args, fmt.Sprintf("%s=%s", f.Key, e.expr(f.Value)))
		}
		return fmt.Sprintf("%s(%s)", n.CaseName, strings.Join(args, ", "))
	case *ast.DSLPipelineExpr:
		src := e.expr(n.Source)
		for _, v := range n.Verbs {
			src = applyPipelineVerb(src, v)
		}
		return src
	case *ast.FilterExpr:
		return fmt.Sprintf("[x for x in %s if (lambda %s: %s)(x)]", e.expr(n.Source), n.ParamName, e.expr(n.Predicate))
	default:
		return "None  # unsupported expression"
	}
}

func (e *emitter) unary(n *ast.UnaryExpr) string {
	switch n.Op {
	case ast.UnaryNeg:
		return "(-" + e.expr(n.Operand) + ")"
	case ast.UnaryPos:
		return "(+" + e.expr(n.Operand) + ")"
	case ast.UnaryNot:
		return "(not " + e.expr(n.Operand) + ")"
	case ast.UnaryIsEmpty:
		return fmt.Sprintf("(len(%s) == 0)", e.expr(n.Operand))
	case ast.UnaryIsNull:
		return fmt.Sprintf("(%s is None)", e.expr(n.Operand))
	case ast.UnarySign:
		return fmt.Sprintf("((%s > 0) - (%s < 0))", e.expr(n.Operand), e.expr(n.Operand))
	case ast.UnaryAwait:
		return "(await " + e.expr(n.Operand) + ")"
	case ast.UnaryNew:
		return e.expr(n.Operand)
	case ast.UnaryCompileTime:
		if n.Operand != nil {
			return e.expr(n.Operand)
		}
		return "None"
	default:
		return e.expr(n.Operand)
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
	return fmt.Sprintf("%s(%s)", e.expr(n.Callee), strings.Join(args, ", "))
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
	if tmpl, ok := norma.Lookup(collection, member.Name, norma.TargetPy); ok {
		return norma.ApplyTemplate(tmpl, receiver, args), true
	}
	passthrough := fmt.Sprintf("%s.%s(%s)", receiver, member.Name, strings.Join(args, ", "))
	if stem, kind, ok := norma.ClassifyForm(member.Name); ok {
		return fmt.Sprintf("%s  # MORPHOLOGY: %s", passthrough, norma.MorphologyError(stem, kind)), true
	}
	return "", false
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
		return "=="
	case ast.BinNotEq:
		return "!="
	case ast.BinLess:
		return "<"
	case ast.BinLessEq:
		return "<="
	case ast.BinGreater:
		return ">"
	case ast.BinGreaterEq:
		return ">="
	case ast.BinLogicalAnd:
		return "and"
	case ast.BinLogicalOr:
		return "or"
	case ast.BinNullish:
		return "if None else"
	case ast.BinShiftLeft:
		return "<<"
	case ast.BinShiftRight:
		return ">>"
	case ast.BinTypeCheck:
		return "isinstance_of"
	default:
		return "#op"
	}
}

func (e *emitter) formatString(n *ast.FormatStringExpr) string {
	var sb strings.Builder
	sb.WriteString("f\"")
	for i, part := range n.Parts {
		sb.WriteString(strings.ReplaceAll(part, `"`, `\"`))
		if i < len(n.Exprs) {
			sb.WriteString("{" + e.expr(n.Exprs[i]) + "}")
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
