package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
)

var (
	lexiconFile string
	searchLimit int
	lexiconJSON bool
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Validate, search and summarize lexicons",
	Long: `Works with lexicon files. Without --lexicon the configured lexicon
is used, or the built-in one when none is configured.`,
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a lexicon file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := lexicon.LoadFile(args[0])
		if err != nil {
			return err
		}
		stats := lex.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "[+] %s: %d words, %d replacement pairs\n",
			args[0], stats.Words, stats.Replacements)
		return nil
	},
}

var lexiconSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search the lexicon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := selectedLexicon()
		if err != nil {
			return err
		}

		results := lex.Search(args[0], searchLimit)
		out := cmd.OutOrStdout()
		if lexiconJSON {
			return encodeJSON(out, results)
		}
		if len(results) == 0 {
			fmt.Fprintf(out, "No words match %q\n", args[0])
			return nil
		}
		for _, r := range results {
			line := fmt.Sprintf("%-16s %-12s", r.Word, r.Category)
			if r.Level != lexicon.LevelNone {
				line += fmt.Sprintf(" %-8s", r.Level)
			}
			if r.Replacement != "" {
				line += " <-> " + r.Replacement
			}
			if r.Meaning != "" {
				line += "  (" + r.Meaning + ")"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var lexiconStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the lexicon",
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := selectedLexicon()
		if err != nil {
			return err
		}

		stats := lex.Stats()
		out := cmd.OutOrStdout()
		if lexiconJSON {
			return encodeJSON(out, stats)
		}

		fmt.Fprintf(out, "Source:       %s\n", stats.Source)
		fmt.Fprintf(out, "Words:        %d\n", stats.Words)
		fmt.Fprintf(out, "Replacements: %d\n", stats.Replacements)
		fmt.Fprintln(out, "\nBy category:")
		for _, c := range lexicon.Categories {
			fmt.Fprintf(out, "  %-12s %d\n", c, stats.ByCategory[c.String()])
		}
		if len(stats.ByLevel) > 0 {
			fmt.Fprintln(out, "\nBy level:")
			levels := make([]string, 0, len(stats.ByLevel))
			for l := range stats.ByLevel {
				levels = append(levels, l)
			}
			sort.Strings(levels)
			for _, l := range levels {
				fmt.Fprintf(out, "  %-12s %d\n", l, stats.ByLevel[l])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconValidateCmd, lexiconSearchCmd, lexiconStatsCmd)

	lexiconCmd.PersistentFlags().StringVarP(&lexiconFile, "lexicon", "l", "", "lexicon file (JSON, YAML or TOML)")
	lexiconCmd.PersistentFlags().BoolVar(&lexiconJSON, "json", false, "print as JSON")
	lexiconSearchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
}

// selectedLexicon loads --lexicon, then the configured path, then the
// built-in lexicon
func selectedLexicon() (*lexicon.Lexicon, error) {
	path := lexiconFile
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Lexicon.Path
	}
	return lexicon.Load(path)
}
