package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/config"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

// errRejected signals that at least one sentence was invalid. The report
// already explains why, so nothing more is printed.
var errRejected = errors.New("sentence rejected")

var rootCmd = &cobra.Command{
	Use:   "krama",
	Short: "krama - Javanese speech-level analyzer",
	Long: `krama checks Javanese sentences against a small grammar and the
unggah-ungguh rules: self-referring subjects must not use honoring words,
respected subjects should not use plain ones.

Commands:
  analyze  - analyze sentences from arguments or stdin
  repl     - interactive session
  serve    - HTTP, WebSocket and gRPC server
  lexicon  - validate, search and summarize lexicons
  history  - browse the stored analyses`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errRejected) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// loadConfig reads --config, $KRAMA_CONFIG or a default location and falls
// back to the built-in defaults when none exists
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	return cfg, nil
}

// cliLogger logs warnings only, unless --verbose is set, so reports on
// stdout are not interleaved with service chatter
func cliLogger(name string) *logging.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: name,
		Level:       level,
		Format:      "console",
		Output:      os.Stderr,
	}))
}

// serverLogger follows the [general] log settings
func serverLogger(cfg *config.Config, name string, out io.Writer) *logging.Logger {
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      out,
	}))
}
