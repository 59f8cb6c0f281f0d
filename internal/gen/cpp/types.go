package cpp

import (
	"fmt"
	"strings"

	"github.com/fablang/fabc/internal/ast"
)

var builtinTypeNames = map[string]string{
	"numerus": "double",
	"textus":  "std::string",
	"logicum": "bool",
	"lista":   "std::vector",
	"tabula":  "std::map",
	"copia":   "std::set",
	"vacuum":  "void",
}

// typeExpr renders a type expression, honoring the `cum`/`per` ownership
// annotation that only this target acts on: GC'd targets (ts, py) erase it,
// but C++ needs a real allocation strategy, so `cum T` becomes a shared_ptr
// and `per T` stays a bare value passed by reference at call sites.
func (e *emitter) typeExpr(t ast.TypeExpression) string {
	switch n := t.(type) {
	case *ast.NamedType:
		name := n.Name
		if mapped, ok := builtinTypeNames[name]; ok {
			name = mapped
			if name == "std::vector" || name == "std::map" || name == "std::set" {
				e.state.RequireFeature(includeFor(name))
			}
		}
		if len(n.Params) > 0 {
			var parts []string
			for _, p := range n.Params {
				parts = append(parts, e.typeExpr(p))
			}
			name = fmt.Sprintf("%s<%s>", name, strings.Join(parts, ", "))
		}
		if n.Nullable {
			e.state.RequireFeature("<optional>")
			name = fmt.Sprintf("std::optional<%s>", name)
		}
		switch n.Ownership {
		case "cum":
			e.state.RequireFeature("<memory>")
			name = fmt.Sprintf("std::shared_ptr<%s>", name)
		case "per":
			name = name + "&"
		}
		return name
	case *ast.ArrayTypeShorthand:
		e.state.RequireFeature("<vector>")
		return fmt.Sprintf("std::vector<%s>", e.typeExpr(n.Element))
	case *ast.FunctionType:
		e.state.RequireFeature("<functional>")
		var parts []string
		for _, p := range n.Params {
			parts = append(parts, e.typeExpr(p))
		}
		return fmt.Sprintf("std::function<%s(%s)>", e.typeExpr(n.Result), strings.Join(parts, ", "))
	case *ast.UnionType:
		e.state.RequireFeature("<variant>")
		var parts []string
		for _, m := range n.Members {
			parts = append(parts, e.typeExpr(m))
		}
		return fmt.Sprintf("std::variant<%s>", strings.Join(parts, ", "))
	case *ast.NumericLiteralType:
		return "double"
	default:
		return "auto"
	}
}

func includeFor(std string) string {
	switch std {
	case "std::vector":
		return "<vector>"
	case "std::map":
		return "<map>"
	case "std::set":
		return "<set>"
	default:
		return "<utility>"
	}
}
