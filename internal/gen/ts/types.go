package ts

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
)

var builtinTypeNames = map[string]string{
	"numerus": "number",
	"textus":  "string",
	"logicum": "boolean",
	"lista":   "Array",
	"tabula":  "Map",
	"copia":   "Set",
	"vacuum":  "void",
}

func (e *emitter) typeExpr(t ast.TypeExpression) string {
	switch n := t.(type) {
	case *ast.NamedType:
		name := n.Name
		if mapped, ok := builtinTypeNames[name]; ok {
			name = mapped
		}
		if len(n.Params) > 0 {
			var parts []string
			for _, p := range n.Params {
				parts = append(parts, e.typeExpr(p))
			}
			name = fmt.Sprintf("%s<%s>", name, strings.Join(parts, ", "))
		}
		if n.Nullable {
			name += " | null"
		}
		return name
	case *ast.ArrayTypeShorthand:
		return e.typeExpr(n.Element) + "[]"
	case *ast.FunctionType:
		var parts []string
		for i, p := range n.Params {
			parts = append(parts, fmt.Sprintf("a%d: %s", i, e.typeExpr(p)))
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), e.typeExpr(n.Result))
	case *ast.UnionType:
		var parts []string
		for _, m := range n.Members {
			parts = append(parts, e.typeExpr(m))
		}
		return strings.Join(parts, " | ")
	case *ast.NumericLiteralType:
		return n.Raw
	default:
		return "unknown"
	}
}
