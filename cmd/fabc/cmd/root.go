package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// projectConfig is the optional `.fabc.yaml` project default set — a
// convenience so a repo of `.fab` sources doesn't need `--target`/`--indent`
// repeated on every invocation.
type projectConfig struct {
	Target string `yaml:"target"`
	Indent string `yaml:"indent"`
}

var rootCmd = &cobra.Command{
	Use:   "fabc",
	Short: "fab language compiler",
	Long: `fabc compiles fab — a Latin-keyword scripting language — to
TypeScript, Python, or C++23 source.

fabc tokenize   print the token stream for a source file
fabc parse      print the parsed AST
fabc resolve    run identifier/type resolution and report diagnostics
fabc build      run the full pipeline and emit target source`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&targetFlag, "target", "ts", "generation target: ts, py, cpp, fab")
	rootCmd.PersistentFlags().StringVar(&indentFlag, "indent", "  ", "indentation unit for generated source")

	if cfg, err := loadProjectConfig(".fabc.yaml"); err == nil && cfg != nil {
		if cfg.Target != "" {
			targetFlag = cfg.Target
		}
		if cfg.Indent != "" {
			indentFlag = cfg.Indent
		}
	}
}

func loadProjectConfig(path string) (*projectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
