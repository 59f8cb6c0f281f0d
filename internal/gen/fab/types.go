package fab

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
)

func (e *emitter) typeExpr(t ast.TypeExpression) string {
	if t == nil {
		return ""
	}
	switch n := t.(type) {
	case *ast.NamedType:
		name := n.Name
		if len(n.Params) > 0 {
			var parts []string
			for _, p := range n.Params {
				parts = append(parts, e.typeExpr(p))
			}
			name = fmt.Sprintf("%s<%s>", name, strings.Join(parts, ", "))
		}
		switch n.Ownership {
		case "cum":
			name = "cum " + name
		case "per":
			name = "per " + name
		}
		if n.Nullable {
			name += "?"
		}
		return name
	case *ast.ArrayTypeShorthand:
		return e.typeExpr(n.Element) + "[]"
	case *ast.FunctionType:
		var parts []string
		for _, p := range n.Params {
			parts = append(parts, e.typeExpr(p))
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), e.typeExpr(n.Result))
	case *ast.UnionType:
		var parts []string
		for _, m := range n.Members {
			parts = append(parts, e.typeExpr(m))
		}
		return strings.Join(parts, " | ")
	case *ast.NumericLiteralType:
		return n.Raw
	default:
		return ""
	}
}

func (e *emitter) pattern(p ast.Pattern) string {
	switch n := p.(type) {
	case *ast.ObjectPattern:
		var parts []string
		for _, f := range n.Fields {
			if f.Binding != "" && f.Binding != f.Key {
				parts = append(parts, fmt.Sprintf("%s: %s", f.Key, f.Binding))
			} else {
				parts = append(parts, f.Key)
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.ArrayPattern:
		var parts []string
		for _, el := range n.Elements {
			switch {
			case el.Rest:
				parts = append(parts, "..."+el.Name)
			case el.Skip:
				parts = append(parts, "_")
			default:
				parts = append(parts, el.Name)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.VariantPattern:
		if n.Wildcard {
			return "_"
		}
		if n.Alias != "" {
			return fmt.Sprintf("%s ut %s", n.CaseName, n.Alias)
		}
		if len(n.Fields) > 0 {
			var names []string
			for _, f := range n.Fields {
				names = append(names, f.Name)
			}
			return fmt.Sprintf("%s pro %s", n.CaseName, strings.Join(names, ", "))
		}
		return n.CaseName
	case *ast.LiteralPattern:
		return e.expr(n.Value)
	default:
		return "_"
	}
}
