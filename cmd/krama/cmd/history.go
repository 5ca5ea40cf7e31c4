package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
)

var (
	historyLimit     int
	historyOffset    int
	historyValid     bool
	historyInvalid   bool
	historyErrors    bool
	historySince     time.Duration
	historyOlderThan time.Duration
	historyJSON      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse the stored analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyValid && historyInvalid {
			return apperror.New("--valid and --invalid exclude each other").WithCode(apperror.CodeInvalidInput)
		}

		filter := store.Filter{
			SyntaxErrors: historyErrors,
			Limit:        historyLimit,
			Offset:       historyOffset,
		}
		if historyValid || historyInvalid {
			v := historyValid
			filter.Valid = &v
		}
		if historySince > 0 {
			filter.Since = time.Now().Add(-historySince)
		}

		return withHistory(func(svc *service.Service) error {
			entries, err := svc.History(cmd.Context(), filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if historyJSON {
				return encodeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No analyses recorded.")
				return nil
			}
			for _, e := range entries {
				printEntryLine(out, e)
			}
			return nil
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(func(svc *service.Service) error {
			entry, err := svc.Record(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return encodeJSON(cmd.OutOrStdout(), entry)
		})
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(func(svc *service.Service) error {
			stats, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if historyJSON {
				return encodeJSON(out, stats)
			}
			fmt.Fprintf(out, "Total:         %d\n", stats.Total)
			fmt.Fprintf(out, "Valid:         %d\n", stats.Valid)
			fmt.Fprintf(out, "Invalid:       %d\n", stats.Invalid)
			fmt.Fprintf(out, "Syntax errors: %d\n", stats.SyntaxErrors)
			for verdict, n := range stats.ByVerdict {
				fmt.Fprintf(out, "  %-13s %d\n", verdict, n)
			}
			if stats.Oldest != nil && stats.Newest != nil {
				fmt.Fprintf(out, "Range:         %s .. %s\n",
					stats.Oldest.Format(time.RFC3339), stats.Newest.Format(time.RFC3339))
			}
			return nil
		})
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old analyses",
	Long: `Deletes analyses older than --older-than. Without the flag the
configured retention ([history] retention_days) applies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan := historyOlderThan
		if olderThan == 0 {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			olderThan = time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
		}

		return withHistory(func(svc *service.Service) error {
			n, err := svc.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d analyses older than %s\n", n, olderThan)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyStatsCmd, historyPruneCmd)

	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "print as JSON")

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "entries to skip")
	historyListCmd.Flags().BoolVar(&historyValid, "valid", false, "only valid sentences")
	historyListCmd.Flags().BoolVar(&historyInvalid, "invalid", false, "only invalid sentences")
	historyListCmd.Flags().BoolVar(&historyErrors, "errors", false, "only sentences that did not parse")
	historyListCmd.Flags().DurationVar(&historySince, "since", 0, "only entries newer than this, e.g. 24h")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "age limit, e.g. 720h")
}

// withHistory runs fn against a service with the history store open
func withHistory(fn func(*service.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newService(cfg, cliLogger("krama-history"), serviceOptions{noCache: true})
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

func printEntryLine(w io.Writer, e *store.Entry) {
	status := "[+]"
	switch {
	case e.SyntaxError():
		status = "[!]"
	case !e.Valid:
		status = "[-]"
	}
	line := fmt.Sprintf("%s %s  %s  %q", status, e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Input)
	if e.Correction != "" {
		line += fmt.Sprintf(" -> %q", e.Correction)
	}
	fmt.Fprintln(w, line)
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
