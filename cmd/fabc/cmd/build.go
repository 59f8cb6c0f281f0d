package cmd

import (
	"fmt"
	"os"

	"github.com/fablang/fabc/internal/diagnostics"
	fabpkg "github.com/fablang/fabc/pkg/fab"
	"github.com/spf13/cobra"
)

var (
	targetFlag string
	indentFlag string
	outFlag    string
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Run the full pipeline and emit target source",
	Long: `Run tokenize, parse, resolve, and generate in one pass, writing the
generated source to stdout (or -o) and any diagnostics to stderr.

Examples:
  fabc build script.fab --target py
  fabc build script.fab --target cpp -o script.hpp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "build an inline fragment instead of reading from a file")
	buildCmd.Flags().StringVarP(&outFlag, "output", "o", "", "output file (default: stdout)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	input, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	target := fabpkg.Target(targetFlag)
	engine := fabpkg.New()
	out, bag, err := engine.Build(input, target, indentFlag)

	for _, d := range bag.Sorted() {
		fmt.Fprintln(os.Stderr, diagnostics.Format(d, input, false))
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if outFlag != "" {
		if werr := os.WriteFile(outFlag, []byte(out), 0o644); werr != nil {
			return fmt.Errorf("writing %s: %w", outFlag, werr)
		}
		return nil
	}
	fmt.Print(out)
	return nil
}
