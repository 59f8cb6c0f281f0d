package py

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

var builtinTypeNames = map[string]string{
	"numerus": "float",
	"textus":  "str",
	"logicum": "bool",
	"lista":   "list",
	"tabula":  "dict",
	"copia":   "set",
	"vacuum":  "None",
}

func (e *emitter) typeExpr(t ast.TypeExpression) string {
	switch n := t.(type) {
	case *ast.NamedType:
		name := n.Name
		if mapped, ok := builtinTypeNames[name]; ok {
			name = mapped
		}
		if len(n.Params) > 0 {
			e.state.RequireImport("typing")
			var parts []string
			for _, p := range n.Params {
				parts = append(parts, e.typeExpr(p))
			}
			name = fmt.Sprintf("%s[%s]", titleCaser.String(name), strings.Join(parts, ", "))
		}
		if n.Nullable {
			e.state.RequireImport("typing")
			name = fmt.Sprintf("typing.Optional[%s]", name)
		}
		return name
	case *ast.ArrayTypeShorthand:
		e.state.RequireImport("typing")
		return fmt.Sprintf("typing.List[%s]", e.typeExpr(n.Element))
	case *ast.FunctionType:
		e.state.RequireImport("typing")
		var parts []string
		for _, p := range n.Params {
			parts = append(parts, e.typeExpr(p))
		}
		return fmt.Sprintf("typing.Callable[[%s], %s]", strings.Join(parts, ", "), e.typeExpr(n.Result))
	case *ast.UnionType:
		e.state.RequireImport("typing")
		var parts []string
		for _, m := range n.Members {
			parts = append(parts, e.typeExpr(m))
		}
		return fmt.Sprintf("typing.Union[%s]", strings.Join(parts, ", "))
	case *ast.NumericLiteralType:
		return "float"
	default:
		return "typing.Any"
	}
}
