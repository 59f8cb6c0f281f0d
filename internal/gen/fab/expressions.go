package fab

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
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
			return "verum"
		}
		return "falsum"
	case *ast.NullLiteral:
		return "nullum"
	case *ast.TemplateLiteral:
		return "`" + n.Raw + "`"
	case *ast.RegexLiteral:
		return fmt.Sprintf("discrimen /%s/%s", n.Pattern, n.Flags)
	case *ast.FormatStringExpr:
		var sb strings.Builder
		sb.WriteByte('"')
		for i, part := range n.Parts {
			sb.WriteString(part)
			if i < len(n.Exprs) {
				sb.WriteString("${" + e.expr(n.Exprs[i]) + "}")
			}
		}
		sb.WriteByte('"')
		return sb.String()
	case *ast.Identifier:
		return n.Name
	case *ast.SelfExpr:
		return "ego"
	case *ast.ArrayLiteral:
		return "[" + e.exprList(n.Elements) + "]"
	case *ast.ObjectLiteral:
		var parts []string
		for _, p := range n.Properties {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Key, e.expr(p.Value)))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.StdinReadExpr:
		if n.Prompt != nil {
			return fmt.Sprintf("lege(%s)", e.expr(n.Prompt))
		}
		return "lege()"
	case *ast.UnaryExpr:
		return e.unary(n)
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), binOp(n.Op), e.expr(n.Right))
	case *ast.TernaryExpr:
		return fmt.Sprintf("(%s ? %s : %s)", e.expr(n.Cond), e.expr(n.Then), e.expr(n.Else))
	case *ast.MemberExpr:
		dot := "."
		if n.Flavor == ast.ChainOptional {
			dot = "?."
		} else if n.Flavor == ast.ChainNonNull {
			dot = "!."
		}
		return fmt.Sprintf("%s%s%s", e.expr(n.Object), dot, n.Name)
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", e.expr(n.Object), e.expr(n.Index))
	case *ast.CallExpr:
		return fmt.Sprintf("%s(%s)", e.expr(n.Callee), e.exprList(n.Args))
	case *ast.CastExpr:
		return fmt.Sprintf("%s tamquam %s", e.expr(n.Value), e.typeExpr(n.Type))
	case *ast.ConversionExpr:
		return fmt.Sprintf("%s tamquam %s vel %s", e.expr(n.Value), e.typeExpr(n.Type), e.expr(n.Fallback))
	case *ast.LambdaExpr:
		var params []string
		for _, p := range n.Params {
			params = append(params, p.Name+e.typeSuffix(p.Type))
		}
		head := "(" + strings.Join(params, ", ") + ")"
		arrow := "->"
		if n.IsAsync {
			arrow = "=>"
		}
		if !n.IsBlock {
			return fmt.Sprintf("%s %s %s", head, arrow, e.expr(n.ExprBody))
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
		return fmt.Sprintf("%s %s {\n%s%s}", head, arrow, inner, e.state.Indent())
	case *ast.VariantConstructExpr:
		if len(n.Fields) > 0 {
			var parts []string
			for _, f := range n.Fields {
				parts = append(parts, fmt.Sprintf("%s: %s", f.Key, e.expr(f.Value)))
			}
			return fmt.Sprintf("%s { %s }", n.CaseName, strings.Join(parts, ", "))
		}
		return fmt.Sprintf("%s(%s)", n.CaseName, e.exprList(n.Args))
	case *ast.DSLPipelineExpr:
		var parts []string
		parts = append(parts, e.expr(n.Source))
		for _, v := range n.Verbs {
			parts = append(parts, pipelineVerbSource(v))
		}
		return strings.Join(parts, ", ")
	case *ast.FilterExpr:
		return fmt.Sprintf("%s ubi %s -> %s", e.expr(n.Source), n.ParamName, e.expr(n.Predicate))
	default:
		return "/* unsupported expression */"
	}
}

func pipelineVerbSource(v ast.PipelineVerb) string {
	word := v.Kind.String()
	switch {
	case v.N != nil:
		return word
	case v.Property != "":
		dir := ""
		if v.Descending {
			dir = " descendenter"
		}
		return fmt.Sprintf("%s secundum %q%s", word, v.Property, dir)
	default:
		return word
	}
}

func (e *emitter) unary(n *ast.UnaryExpr) string {
	switch n.Op {
	case ast.UnaryNeg:
		return "(-" + e.expr(n.Operand) + ")"
	case ast.UnaryPos:
		return "(+" + e.expr(n.Operand) + ")"
	case ast.UnaryNot:
		return "(non " + e.expr(n.Operand) + ")"
	case ast.UnaryIsEmpty:
		return "(vacuum " + e.expr(n.Operand) + ")"
	case ast.UnaryIsNull:
		return "(nullum " + e.expr(n.Operand) + ")"
	case ast.UnarySign:
		return "signum(" + e.expr(n.Operand) + ")"
	case ast.UnaryAwait:
		return "expecta " + e.expr(n.Operand)
	case ast.UnaryNew:
		return "novum " + e.expr(n.Operand)
	case ast.UnaryCompileTime:
		if n.Operand != nil {
			return "computa { " + e.expr(n.Operand) + " }"
		}
		return "computa { }"
	default:
		return e.expr(n.Operand)
	}
}

func binOp(op ast.BinaryOp) string {
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
		return "et"
	case ast.BinLogicalOr:
		return "aut"
	case ast.BinNullish:
		return "vel"
	case ast.BinRange:
		return ".."
	case ast.BinRangeIncl:
		return "usque .."
	case ast.BinShiftLeft:
		return "sinistrorsum"
	case ast.BinShiftRight:
		return "dextrorsum"
	case ast.BinTypeCheck:
		return "est"
	default:
		return "?"
	}
}
