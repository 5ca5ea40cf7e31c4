package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/internal/report"
	"github.com/LearnWithSuryaa/analyzer-app/internal/server"
	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	coregrpc "github.com/LearnWithSuryaa/analyzer-app/pkg/core/grpc"
)

const remoteTimeout = 30 * time.Second

var (
	analyzeFormat    string
	analyzeLexicon   string
	analyzeNoHistory bool
	analyzeRemote    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [sentence...]",
	Short: "Analyze Javanese sentences",
	Long: `Analyzes a sentence for grammar and speech level.

The arguments form one sentence. Without arguments every non-empty line
of stdin is analyzed as its own sentence.

The exit status is 1 when any sentence is invalid or does not parse.

Examples:
  krama analyze aku mangan sega
  krama analyze --format markdown "bapak dhahar lan ibu sare"
  krama analyze --format json < sentences.txt
  krama analyze --remote localhost:9090 aku dhahar`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format: text, styled, markdown or json")
	analyzeCmd.Flags().StringVarP(&analyzeLexicon, "lexicon", "l", "", "lexicon file (JSON, YAML or TOML)")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "do not record the analyses")
	analyzeCmd.Flags().StringVar(&analyzeRemote, "remote", "", "analyze through the gRPC server at host:port")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	sentences, err := collectSentences(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		return apperror.New("no sentence given").WithCode(apperror.CodeInvalidInput)
	}

	if analyzeRemote != "" {
		return analyzeRemotely(cmd.Context(), cmd.OutOrStdout(), format, sentences)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newService(cfg, cliLogger("krama-analyze"), serviceOptions{
		lexiconPath: analyzeLexicon,
		noHistory:   analyzeNoHistory,
		noCache:     true,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	return analyzeLocally(cmd.Context(), cmd.OutOrStdout(), svc, format, sentences)
}

// collectSentences joins args into one sentence, or reads one sentence per
// non-empty stdin line
func collectSentences(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var sentences []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sentences = append(sentences, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return sentences, nil
}

func analyzeLocally(ctx context.Context, w io.Writer, svc *service.Service, format report.Format, sentences []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := report.Options{Terminal: isTerminal(w)}

	rejected := false
	for _, sentence := range sentences {
		record, err := svc.Analyze(ctx, sentence)
		if err != nil {
			if !apperror.HasCode(err, apperror.CodeSyntax) {
				return err
			}
			rejected = true
			fail := report.Failure{Input: sentence, Tokens: svc.Tokenize(sentence), Err: err}
			if err := report.WriteFailure(w, format, fail, opts); err != nil {
				return err
			}
			continue
		}
		if !record.Result.Valid() {
			rejected = true
		}
		if err := report.Write(w, format, record.Result, opts); err != nil {
			return err
		}
	}

	if rejected {
		return errRejected
	}
	return nil
}

func analyzeRemotely(ctx context.Context, w io.Writer, format report.Format, sentences []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := coregrpc.Dial(coregrpc.DefaultClientConfig(analyzeRemote))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", analyzeRemote, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	items, err := server.NewAnalyzerClient(conn).AnalyzeBatch(ctx, sentences)
	if err != nil {
		return err
	}

	if format == report.FormatJSON {
		if err := encodeJSON(w, items); err != nil {
			return err
		}
	}

	rejected := false
	for _, raw := range items {
		item, _ := raw.(map[string]interface{})
		line, ok := remoteSummary(item)
		if !ok {
			rejected = true
		}
		if format != report.FormatJSON {
			fmt.Fprintln(w, line)
		}
	}

	if rejected {
		return errRejected
	}
	return nil
}

// remoteSummary renders one batch item returned by the gRPC server as a
// single line and reports whether the sentence was valid
func remoteSummary(item map[string]interface{}) (string, bool) {
	input, _ := item["input"].(string)

	if e, ok := item["error"].(map[string]interface{}); ok {
		msg, _ := e["error"].(string)
		return fmt.Sprintf("%q: ERROR %s", input, msg), false
	}

	record, _ := item["record"].(map[string]interface{})
	result, _ := record["result"].(map[string]interface{})
	analysis, _ := result["analysis"].(map[string]interface{})
	verdict, _ := analysis["verdict"].(string)

	status := "VALID"
	switch verdict {
	case "appropriate":
	case "ambiguous":
		status = "AMBIGUOUS"
	default:
		status = "INVALID"
	}

	line := fmt.Sprintf("%q: %s", input, status)
	if correction, ok := result["correction"].(map[string]interface{}); ok {
		sentence, _ := correction["sentence"].(string)
		line += fmt.Sprintf(" -> %q", sentence)
	}
	return line, status == "VALID"
}

// isTerminal reports whether w is a character device such as a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
