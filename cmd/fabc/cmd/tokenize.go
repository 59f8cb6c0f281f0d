package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fablang/fabc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	evalExpr    string
	showPos     bool
	onlyLexErrs bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a fab source file",
	Long: `Tokenize a fab program and print the resulting token stream.

If no file is provided, reads from stdin. Use -e to tokenize an inline
fragment instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
	tokenizeCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	tokenizeCmd.Flags().BoolVar(&onlyLexErrs, "only-errors", false, "print only lexical errors")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	input, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	toks, lexErrs := lexer.Tokenize(input)

	if !onlyLexErrs {
		for _, tok := range toks {
			line := fmt.Sprintf("[%-10s] %q", tok.Kind.String(), tok.Lexeme)
			if showPos {
				line += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
			}
			fmt.Println(line)
		}
	}

	for _, le := range lexErrs {
		fmt.Fprintf(os.Stderr, "lexical error: %s\n", le.Error())
	}
	if len(lexErrs) > 0 {
		return fmt.Errorf("tokenization found %d lexical error(s)", len(lexErrs))
	}
	return nil
}

func readSource(eval string, args []string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
