package cmd

import (
	"fmt"
	"os"

	"github.com/fablang/fabc/internal/diagnostics"
	"github.com/fablang/fabc/internal/lexer"
	"github.com/fablang/fabc/internal/parser"
	"github.com/fablang/fabc/internal/resolve"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Run identifier/type resolution and report diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "resolve an inline fragment instead of reading from a file")
}

func runResolve(cmd *cobra.Command, args []string) error {
	input, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, lexErrs := lexer.Tokenize(input)
	prog, parseErrs := parser.Parse(toks)
	_, ctx := resolve.Resolve(prog)

	for _, le := range lexErrs {
		fmt.Fprintln(os.Stderr, diagnostics.Format(diagnostics.Diagnostic{Kind: diagnostics.Lexical, Pos: le.Pos, Message: le.Message}, input, false))
	}
	for _, pe := range parseErrs {
		fmt.Fprintln(os.Stderr, diagnostics.Format(diagnostics.Diagnostic{Kind: diagnostics.Syntactic, Pos: pe.Pos, Message: pe.Message}, input, false))
	}
	for _, d := range ctx.Diagnostics.Sorted() {
		fmt.Fprintln(os.Stderr, diagnostics.Format(d, input, false))
	}

	total := len(lexErrs) + len(parseErrs) + len(ctx.Diagnostics.Items())
	if total > 0 {
		return fmt.Errorf("resolution found %d diagnostic(s)", total)
	}
	fmt.Println("resolved cleanly")
	return nil
}
