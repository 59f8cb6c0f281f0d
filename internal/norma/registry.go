package norma

import (
	"strconv"
	"strings"

	"github.com/fablang/fabc/internal/ast"
	"github.com/maruel/natural"
)

// Target names a code-generation backend. Kept as a plain string rather
// than a type from the target packages (internal/gen/ts, py, cpp), which
// import norma for dispatch, avoiding an import cycle.
type Target string

const (
	TargetTS  Target = "ts"
	TargetPy  Target = "py"
	TargetCpp Target = "cpp"
)

// translations is the two-level {collection -> method -> target ->
// template} registry. A template's `§` stands for the receiver expression
// and `§1`, `§2`, ... stand for positional call arguments (spec.md §4.4
// "applyTemplate").
var translations = map[string]map[string]map[Target]string{
	"lista": {
		"adde":       {TargetTS: "§.push(§1)", TargetPy: "§.append(§1)", TargetCpp: "§.push_back(§1)"},
		"addita":     {TargetTS: "[...§, §1]", TargetPy: "[*§, §1]", TargetCpp: "fabRuntime::appended(§, §1)"},
		"reme":       {TargetTS: "§.splice(§1, 1)", TargetPy: "§.pop(§1)", TargetCpp: "§.erase(§.begin() + §1)"},
		"numera":     {TargetTS: "§.length", TargetPy: "len(§)", TargetCpp: "§.size()"},
		"primum":     {TargetTS: "§.slice(0, §1)", TargetPy: "§[:§1]", TargetCpp: "fabRuntime::first(§, §1)"},
		"postremum":  {TargetTS: "§.slice(-§1)", TargetPy: "§[-§1:]", TargetCpp: "fabRuntime::last(§, §1)"},
	},
	"tabula": {
		"inser":  {TargetTS: "§.set(§1, §2)", TargetPy: "§[§1] = §2", TargetCpp: "§[§1] = §2"},
		"numera": {TargetTS: "§.size", TargetPy: "len(§)", TargetCpp: "§.size()"},
	},
	"copia": {
		"adde":   {TargetTS: "§.add(§1)", TargetPy: "§.add(§1)", TargetCpp: "§.insert(§1)"},
		"numera": {TargetTS: "§.size", TargetPy: "len(§)", TargetCpp: "§.size()"},
	},
	"textus": {
		"verte": {TargetTS: "§.split(§1)", TargetPy: "§.split(§1)", TargetCpp: "fabRuntime::split(§, §1)"},
		"misce": {TargetTS: "§.concat(§1)", TargetPy: "(§ + §1)", TargetCpp: "(§ + §1)"},
	},
}

// HasCollection reports whether collection has any registered methods,
// distinguishing "receiver isn't a stdlib collection at all" from "method
// name not found on this collection" at call sites that need to tell the
// two apart before deciding whether a diagnostic is warranted.
func HasCollection(collection string) bool {
	_, ok := translations[collection]
	return ok
}

// CollectionNameOf reports the registry collection key a resolved type
// dispatches through, or "" when the type carries no stdlib collection
// identity (a user struct, a scalar, or an unresolved type). Array
// shorthand (`T[]`) dispatches as "lista", matching how every target's
// typeExpr renders it.
func CollectionNameOf(t ast.TypeExpression) string {
	switch n := t.(type) {
	case *ast.NamedType:
		return n.Name
	case *ast.ArrayTypeShorthand:
		return "lista"
	default:
		return ""
	}
}

// Lookup returns the translation template for (collection, method, target),
// reporting ok=false when no such entry is registered.
func Lookup(collection, method string, target Target) (string, bool) {
	byMethod, ok := translations[collection]
	if !ok {
		return "", false
	}
	byTarget, ok := byMethod[method]
	if !ok {
		return "", false
	}
	tmpl, ok := byTarget[target]
	return tmpl, ok
}

// RegisterMethod installs or overrides a (collection, method, target)
// translation, used when a `@verte` annotation supplies a per-target
// rename or call template for a user-declared collection wrapper.
func RegisterMethod(collection, method string, target Target, template string) {
	if translations[collection] == nil {
		translations[collection] = make(map[string]map[Target]string)
	}
	if translations[collection][method] == nil {
		translations[collection][method] = make(map[Target]string)
	}
	translations[collection][method][target] = template
}

// ApplyTemplate substitutes `§` with receiver and `§N` with args[N-1] into
// tmpl. It is a pure text substitution that evaluates nothing: a template
// that names `§` twice (the C++ `reme` template) repeats the receiver text
// twice in its output. Unmatched `§N` indices are left verbatim so a malformed annotation
// fails loudly at emission time rather than panicking here.
func ApplyTemplate(tmpl, receiver string, args []string) string {
	var sb strings.Builder
	runes := []rune(tmpl)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '§' {
			sb.WriteRune(runes[i])
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		if j == i+1 {
			sb.WriteString(receiver)
			continue
		}
		n, err := strconv.Atoi(string(runes[i+1 : j]))
		if err != nil || n < 1 || n > len(args) {
			sb.WriteString(string(runes[i:j]))
		} else {
			sb.WriteString(args[n-1])
		}
		i = j - 1
	}
	return sb.String()
}

// CollectionNames returns every registered collection name, naturally
// sorted for deterministic diagnostic/listing output.
func CollectionNames() []string {
	names := make([]string, 0, len(translations))
	for name := range translations {
		names = append(names, name)
	}
	natural.Sort(names)
	return names
}

// MethodNames returns the methods registered for a collection, naturally
// sorted.
func MethodNames(collection string) []string {
	byMethod, ok := translations[collection]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byMethod))
	for name := range byMethod {
		names = append(names, name)
	}
	natural.Sort(names)
	return names
}
