// Package fab is the stable external facade over the compiler pipeline:
// tokenize, parse, resolve, and generate, each independently callable so a
// caller can stop at whichever stage it needs (e.g. a formatter only needs
// Tokenize+Parse, a linter needs through Resolve).
package fab

import (
	"fmt"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/diagnostics"
	"github.com/fablang/fabc/internal/gen/cpp"
	"github.com/fablang/fabc/internal/gen/fab"
	"github.com/fablang/fabc/internal/gen/py"
	"github.com/fablang/fabc/internal/gen/ts"
	"github.com/fablang/fabc/internal/lexer"
	"github.com/fablang/fabc/internal/parser"
	"github.com/fablang/fabc/internal/resolve"
	"github.com/fablang/fabc/internal/token"
)

// Target names a code generation backend.
type Target string

const (
	TargetTS  Target = "ts"
	TargetPy  Target = "py"
	TargetCpp Target = "cpp"
	TargetFab Target = "fab"
)

// Engine holds no mutable state of its own; it exists so callers can chain
// pipeline stages with a receiver, mirroring the teacher's own `New()`
// engine handle even though this compiler has no FFI registration to carry
// between calls.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Tokenize runs the lexical phase only, returning the raw token stream plus
// any lexical diagnostics.
func (e *Engine) Tokenize(source string) ([]token.Token, []lexer.Error) {
	return lexer.Tokenize(source)
}

// Parse tokenizes and parses source into an (unresolved) AST, returning
// lexical and syntactic errors together — the caller does not need to run
// Tokenize separately first.
func (e *Engine) Parse(source string) (*ast.Program, []lexer.Error, []parser.Error) {
	toks, lexErrs := lexer.Tokenize(source)
	prog, parseErrs := parser.Parse(toks)
	return prog, lexErrs, parseErrs
}

// Resolve runs identifier/type resolution and morphology validation over an
// already-parsed program, returning the annotated program plus the semantic
// context (symbol tables, HAL pactum tags, accumulated diagnostics).
func (e *Engine) Resolve(prog *ast.Program) (*ast.Program, *resolve.Context) {
	return resolve.Resolve(prog)
}

// Generate lowers a resolved program to the given target's source text.
func (e *Engine) Generate(target Target, prog *ast.Program, indent string) (string, error) {
	switch target {
	case TargetTS:
		return ts.Generate(prog, indent)
	case TargetPy:
		return py.Generate(prog, indent)
	case TargetCpp:
		return cpp.Generate(prog, indent)
	case TargetFab:
		return fab.Generate(prog, indent)
	default:
		return "", fmt.Errorf("fab: unknown target %q", target)
	}
}

// Build runs the full pipeline — tokenize, parse, resolve, generate — in one
// call and collects every phase's diagnostics into a single bag, sorted by
// position then phase per spec.md §7.
func (e *Engine) Build(source string, target Target, indent string) (string, *diagnostics.Bag, error) {
	bag := &diagnostics.Bag{}

	toks, lexErrs := lexer.Tokenize(source)
	for _, le := range lexErrs {
		bag.Add(diagnostics.Lexical, le.Pos, "%s", le.Message)
	}

	prog, parseErrs := parser.Parse(toks)
	for _, pe := range parseErrs {
		bag.Add(diagnostics.Syntactic, pe.Pos, "%s", pe.Message)
	}

	resolved, ctx := e.Resolve(prog)
	for _, d := range ctx.Diagnostics.Items() {
		bag.Add(d.Kind, d.Pos, "%s", d.Message)
	}

	out, err := e.Generate(target, resolved, indent)
	if err != nil {
		bag.Add(diagnostics.Emission, token.Position{}, "%s", err.Error())
		return "", bag, err
	}
	return out, bag, nil
}
