package cpp

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
		e.state.RequireFeature("<cstdint>")
		return n.Raw + "LL"
	case *ast.BooleanLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		e.state.RequireFeature("<optional>")
		return "std::nullopt"
	case *ast.TemplateLiteral:
		return fmt.Sprintf("%q", n.Raw)
	case *ast.RegexLiteral:
		e.state.RequireFeature("<regex>")
		return fmt.Sprintf("std::regex(%q)", n.Pattern)
	case *ast.FormatStringExpr:
		return e.formatString(n)
	case *ast.Identifier:
		return n.Name
	case *ast.SelfExpr:
		return "(*this)"
	case *ast.ArrayLiteral:
		e.state.RequireFeature("<vector>")
		var parts []string
		for _, el := range n.Elements {
			parts = append(parts, e.expr(el))
		}
		return fmt.Sprintf("std::vector{%s}", strings.Join(parts, ", "))
	case *ast.ObjectLiteral:
		e.state.RequireFeature("<map>")
		var parts []string
		for _, p := range n.Properties {
			parts = append(parts, fmt.Sprintf("{%q, %s}", p.Key, e.expr(p.Value)))
		}
		return fmt.Sprintf("std::map<std::string, fabRuntime::Value>{%s}", strings.Join(parts, ", "))
	case *ast.StdinReadExpr:
		e.state.RequireFeature("<iostream>")
		return "fabRuntime::readLine(std::cin)"
	case *ast.UnaryExpr:
		return e.unary(n)
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), e.binaryOpSymbol(n.Op), e.expr(n.Right))
	case *ast.TernaryExpr:
		return fmt.Sprintf("(%s ? %s : %s)", e.expr(n.Cond), e.expr(n.Then), e.expr(n.Else))
	case *ast.MemberExpr:
		if n.Flavor == ast.ChainOptional {
			obj := e.expr(n.Object)
			return fmt.Sprintf("(%s ? std::make_optional(%s->%s) : std::nullopt)", obj, obj, n.Name)
		}
		return fmt.Sprintf("%s.%s", e.expr(n.Object), n.Name)
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", e.expr(n.Object), e.expr(n.Index))
	case *ast.CallExpr:
		return e.call(n)
	case *ast.CastExpr:
		return fmt.Sprintf("static_cast<%s>(%s)", e.typeExpr(n.Type), e.expr(n.Value))
	case *ast.ConversionExpr:
		if n.Fallback != nil {
			return fmt.Sprintf("fabRuntime::tryConvert<%s>(%s, %s)", e.typeExpr(n.Type), e.expr(n.Value), e.expr(n.Fallback))
		}
		return fmt.Sprintf("fabRuntime::convert<%s>(%s)", e.typeExpr(n.Type), e.expr(n.Value))
	case *ast.LambdaExpr:
		return e.lambda(n)
	case *ast.VariantConstructExpr:
		var args []string
		for _, a := range n.Args {
			args = append(args, e.expr(a))
		}
		for _, f := range n.Fields {
			args = append(args, e.expr(f.Value))
		}
		return fmt.Sprintf("%s{%s}", n.CaseName, strings.Join(args, ", "))
	case *ast.DSLPipelineExpr:
		src := e.expr(n.Source)
		for _, v := range n.Verbs {
			src = applyPipelineVerb(src, v)
		}
		return src
	case *ast.FilterExpr:
		e.state.RequireFeature("<algorithm>")
		return fmt.Sprintf("fabRuntime::filter(%s, [](const auto& %s) { return %s; })",
			e.expr(n.Source), n.ParamName, e.expr(n.Predicate))
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
		return fmt.Sprintf("(%s.empty())", e.expr(n.Operand))
	case ast.UnaryIsNull:
		return fmt.Sprintf("(!%s.has_value())", e.expr(n.Operand))
	case ast.UnarySign:
		operand := e.expr(n.Operand)
		return fmt.Sprintf("((%s > 0) - (%s < 0))", operand, operand)
	case ast.UnaryAwait:
		return "(" + e.expr(n.Operand) + ".get())"
	case ast.UnaryNew:
		return fmt.Sprintf("std::make_shared<std::decay_t<decltype(%s)>>(%s)", e.expr(n.Operand), e.expr(n.Operand))
	case ast.UnaryCompileTime:
		if n.Operand != nil {
			return e.expr(n.Operand)
		}
		return "nullptr"
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
	if tmpl, ok := norma.Lookup(collection, member.Name, norma.TargetCpp); ok {
		return norma.ApplyTemplate(tmpl, receiver, args), true
	}
	passthrough := fmt.Sprintf("%s.%s(%s)", receiver, member.Name, strings.Join(args, ", "))
	if stem, kind, ok := norma.ClassifyForm(member.Name); ok {
		return fmt.Sprintf("/* MORPHOLOGY: %s */ %s", norma.MorphologyError(stem, kind), passthrough), true
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
		return "&&"
	case ast.BinLogicalOr:
		return "||"
	case ast.BinNullish:
		return "?:"
	case ast.BinShiftLeft:
		return "<<"
	case ast.BinShiftRight:
		return ">>"
	case ast.BinTypeCheck:
		return "/* typeid */"
	default:
		return "/* op */"
	}
}

func (e *emitter) lambda(n *ast.LambdaExpr) string {
	var params []string
	for _, p := range n.Params {
		ty := "auto"
		if p.Type != nil {
			ty = e.typeExpr(p.Type)
		}
		params = append(params, fmt.Sprintf("%s %s", ty, p.Name))
	}
	if !n.IsBlock {
		return fmt.Sprintf("[&](%s) { return %s; }", strings.Join(params, ", "), e.expr(n.ExprBody))
	}
	saved := e.body
	e.body = strings.Builder{}
	e.state.Enter()
	for _, st := range n.Body {
		e.stmt(st)
	}
	e.state.Leave()
	inner := e.body.String()
	e.body = saved
	return fmt.Sprintf("[&](%s) {\n%s%s}", strings.Join(params, ", "), inner, e.state.Indent())
}

func (e *emitter) formatString(n *ast.FormatStringExpr) string {
	e.state.RequireFeature("<sstream>")
	var parts []string
	for i, part := range n.Parts {
		if part != "" {
			parts = append(parts, fmt.Sprintf("%q", part))
		}
		if i < len(n.Exprs) {
			parts = append(parts, e.expr(n.Exprs[i]))
		}
	}
	if len(parts) == 0 {
		return `std::string("")`
	}
	return fmt.Sprintf("fabRuntime::concat(%s)", strings.Join(parts, ", "))
}
