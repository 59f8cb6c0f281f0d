package cmd

import (
	"fmt"
	"os"

	"github.com/fablang/fabc/internal/lexer"
	"github.com/fablang/fabc/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse fab source and print the AST shape",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse an inline fragment instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, lexErrs := lexer.Tokenize(input)
	for _, le := range lexErrs {
		fmt.Fprintf(os.Stderr, "lexical error: %s\n", le.Error())
	}

	prog, parseErrs := parser.Parse(toks)
	for _, pe := range parseErrs {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", pe.Error())
	}

	fmt.Printf("Program (%d top-level statements)\n", len(prog.Body))
	for _, s := range prog.Body {
		fmt.Printf("  %T\n", s)
	}

	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		return fmt.Errorf("parsing failed with %d lexical and %d syntactic error(s)", len(lexErrs), len(parseErrs))
	}
	return nil
}
