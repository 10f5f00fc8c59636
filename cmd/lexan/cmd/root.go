package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/pkg/core/config"
	"github.com/msto63/lexan/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

// errDiagnostics makes the process exit with status 1 after the report has
// been printed
var errDiagnostics = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:   "lexan",
	Short: "lexan - lexical and syntax analysis engine",
	Long: `lexan tokenizes source text and checks it with three analyzers:

  tokenize  - regex tokenizer with bracket balance checks
  check     - finite-state checker for let/var/const declarations
  descent   - recursive-descent validator for arithmetic expressions
  quads     - compiler from expressions to quadruples

The engine is also served over gRPC and HTTP/WebSocket (lexan serve).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDiagnostics) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $LEXAN_CONFIG or ./configs/lexan.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// loadConfig loads the config file, falling back to defaults when none
// exists
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(cfgFile)
}

// newLogger builds the command logger from the general config section
func newLogger(cfg *config.Config, name string) *logging.Logger {
	lc := logging.DefaultLoggerConfig(name)
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	if verbose {
		lc.Level = "debug"
	}
	return logging.Wrap(logging.NewLogger(lc), name)
}

// serviceConfig maps the analyzer section onto the service configuration
func serviceConfig(cfg *config.Config, logger *logging.Logger) service.Config {
	sc := service.DefaultConfig()
	sc.Engine.MaxInputLength = cfg.Analyzer.MaxInputLength
	sc.Engine.EnableTrace = cfg.Analyzer.EnableTrace
	if len(cfg.Analyzer.Keywords) > 0 {
		sc.Engine.Keywords = cfg.Analyzer.Keywords
	}
	sc.CacheSize = max(cfg.Analyzer.CacheSize, 0)
	sc.CacheTTL = cfg.Analyzer.CacheTTL.Duration
	sc.DefaultLocale = cfg.General.Locale
	sc.Logger = logger
	return sc
}
