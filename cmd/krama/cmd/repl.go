package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LearnWithSuryaa/analyzer-app/internal/tui"
)

var (
	replLexicon   string
	replNoHistory bool
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"tui"},
	Short:   "Interactive analysis session",
	Long: `Starts an interactive terminal session.

Type a sentence and press Enter to analyze it. Tab switches between the
Analyze, Lexicon, History and Status views. Type exit, quit or keluar
(or press Ctrl+C) to leave.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replLexicon, "lexicon", "l", "", "lexicon file (JSON, YAML or TOML)")
	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "do not record the analyses")
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := newService(cfg, cliLogger("krama-repl"), serviceOptions{
		lexiconPath: replLexicon,
		noHistory:   replNoHistory,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	return tui.Run(svc)
}
