package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/semantic"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/cache"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/health"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type options struct {
	history bool
	cache   bool
	mutate  func(*Config)
}

func newTestService(t *testing.T, opts options) *Service {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logger = logging.Discard()
	if opts.history {
		st, err := store.NewSQLiteStore(store.Config{Path: filepath.Join(t.TempDir(), "history.db")})
		if err != nil {
			t.Fatalf("NewSQLiteStore() error = %v", err)
		}
		cfg.Store = st
	}
	if opts.cache {
		cfg.Cache = cache.NewResultCache(cache.DefaultConfig())
	}
	if opts.mutate != nil {
		opts.mutate(&cfg)
	}

	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestService_Analyze(t *testing.T) {
	svc := newTestService(t, options{})
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, rec *Record, err error)
	}{
		{
			name:  "valid sentence",
			input: "aku mangan",
			check: func(t *testing.T, rec *Record, err error) {
				if err != nil {
					t.Fatalf("Analyze() error = %v", err)
				}
				if !rec.Result.Valid() {
					t.Error("Expected a valid result")
				}
				if rec.ID == "" || rec.CreatedAt.IsZero() {
					t.Errorf("Expected ID and timestamp, got %+v", rec)
				}
			},
		},
		{
			name:  "self-referring subject with honorific verb",
			input: "aku dhahar",
			check: func(t *testing.T, rec *Record, err error) {
				if err != nil {
					t.Fatalf("Analyze() error = %v", err)
				}
				if rec.Result.Analysis.Verdict != semantic.Ambiguous {
					t.Errorf("Expected ambiguous, got %s", rec.Result.Analysis.Verdict)
				}
				if rec.Result.Correction == nil || rec.Result.Correction.Sentence != "aku mangan" {
					t.Errorf("Expected correction 'aku mangan', got %+v", rec.Result.Correction)
				}
			},
		},
		{
			name:  "syntax error",
			input: "qwerty mangan",
			check: func(t *testing.T, rec *Record, err error) {
				if !apperror.HasCode(err, apperror.CodeSyntax) {
					t.Fatalf("Expected KRAMA_SYNTAX, got %v", err)
				}
				if rec != nil {
					t.Error("Expected no record on syntax error")
				}
			},
		},
		{
			name:  "blank input",
			input: "   ",
			check: func(t *testing.T, rec *Record, err error) {
				if !apperror.HasCode(err, apperror.CodeInvalidInput) {
					t.Errorf("Expected INVALID_INPUT, got %v", err)
				}
			},
		},
		{
			name:  "too long",
			input: strings.Repeat("aku ", 200),
			check: func(t *testing.T, rec *Record, err error) {
				if !apperror.HasCode(err, apperror.CodeInvalidInput) {
					t.Errorf("Expected INVALID_INPUT, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := svc.Analyze(ctx, tt.input)
			tt.check(t, rec, err)
		})
	}
}

func TestService_AnalyzeCanceled(t *testing.T) {
	svc := newTestService(t, options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Analyze(ctx, "aku mangan"); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestService_Cache(t *testing.T) {
	svc := newTestService(t, options{cache: true})
	ctx := context.Background()

	first, err := svc.Analyze(ctx, "Bapak mangan lan ibu sare")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if first.Cached {
		t.Error("First analysis should not come from the cache")
	}

	second, err := svc.Analyze(ctx, "bapak  mangan, lan ibu sare")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !second.Cached {
		t.Error("Normalized repeat should come from the cache")
	}
	if second.Result != first.Result {
		t.Error("Expected the cached result")
	}

	m := svc.Metrics()
	if got := testutil.ToFloat64(m.CacheHits); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Violations.WithLabelValues("respected_subject")); got != 1 {
		t.Errorf("respected_subject violations = %v, want 1", got)
	}

	stats, ok := svc.CacheStats()
	if !ok || stats.Size != 1 {
		t.Errorf("CacheStats() = %+v, %v", stats, ok)
	}
}

func TestService_History(t *testing.T) {
	svc := newTestService(t, options{history: true})
	ctx := context.Background()

	rec, err := svc.Analyze(ctx, "aku dhahar")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if _, err := svc.Analyze(ctx, "qwerty mangan"); err == nil {
		t.Fatal("Expected a syntax error")
	}
	if _, err := svc.Analyze(ctx, "aku mangan"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	entry, err := svc.Record(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if entry.Correction != "aku mangan" || entry.Verdict != "ambiguous" || entry.Valid {
		t.Errorf("Record() = %+v", entry)
	}
	if len(entry.Result) == 0 {
		t.Error("Expected the stored result JSON")
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 3 || stats.Valid != 1 || stats.Invalid != 1 || stats.SyntaxErrors != 1 {
		t.Errorf("Stats() = %+v", stats)
	}

	entries, err := svc.History(ctx, store.Filter{SyntaxErrors: true})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Input != "qwerty mangan" || entries[0].Error == "" {
		t.Errorf("History() = %+v", entries)
	}

	n, err := svc.Prune(ctx, time.Hour)
	if err != nil || n != 0 {
		t.Errorf("Prune() = %d, %v", n, err)
	}
	if _, err := svc.Prune(ctx, 0); !apperror.HasCode(err, apperror.CodeInvalidInput) {
		t.Errorf("Prune(0) error = %v", err)
	}
}

func TestService_HistoryDisabled(t *testing.T) {
	svc := newTestService(t, options{})
	ctx := context.Background()

	if svc.HistoryEnabled() {
		t.Fatal("History should be disabled")
	}
	if _, err := svc.History(ctx, store.Filter{}); !apperror.HasCode(err, apperror.CodeUnavailable) {
		t.Errorf("History() error = %v", err)
	}
	if _, err := svc.Record(ctx, "x"); !apperror.HasCode(err, apperror.CodeUnavailable) {
		t.Errorf("Record() error = %v", err)
	}
	if _, err := svc.Stats(ctx); !apperror.HasCode(err, apperror.CodeUnavailable) {
		t.Errorf("Stats() error = %v", err)
	}
}

func TestService_AnalyzeBatch(t *testing.T) {
	svc := newTestService(t, options{mutate: func(c *Config) {
		c.BatchConcurrency = 2
		c.MaxBatchSize = 5
	}})
	ctx := context.Background()

	texts := []string{"aku mangan", "qwerty mangan", "aku dhahar", "bapak sare"}
	items, err := svc.AnalyzeBatch(ctx, texts)
	if err != nil {
		t.Fatalf("AnalyzeBatch() error = %v", err)
	}
	if len(items) != len(texts) {
		t.Fatalf("Expected %d items, got %d", len(texts), len(items))
	}
	for i, item := range items {
		if item.Index != i || item.Input != texts[i] {
			t.Errorf("item %d = %+v, out of order", i, item)
		}
	}
	if items[1].Error == nil || items[1].Record != nil {
		t.Errorf("Expected item 1 to fail, got %+v", items[1])
	}
	if items[0].Error != nil || !items[0].Record.Result.Valid() {
		t.Errorf("Expected item 0 to be valid, got %+v", items[0])
	}
	if items[2].Record.Result.Valid() {
		t.Error("Expected item 2 to be invalid")
	}

	if _, err := svc.AnalyzeBatch(ctx, nil); !apperror.HasCode(err, apperror.CodeInvalidInput) {
		t.Errorf("empty batch error = %v", err)
	}
	if _, err := svc.AnalyzeBatch(ctx, make([]string, 6)); !apperror.HasCode(err, apperror.CodeInvalidInput) {
		t.Errorf("oversized batch error = %v", err)
	}
}

func TestService_AnalyzeBatchCanceled(t *testing.T) {
	svc := newTestService(t, options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := svc.AnalyzeBatch(ctx, []string{"aku mangan", "bapak sare"})
	if err != context.Canceled {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	for _, item := range items {
		if item.Error == nil {
			t.Errorf("item %d should carry the cancellation", item.Index)
		}
	}
}

func TestService_ReloadLexicon(t *testing.T) {
	svc := newTestService(t, options{cache: true})
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "aku mangan"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"SUBJEK": [{"word": "Two Words"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	before := svc.Lexicon()
	if err := svc.ReloadLexicon(bad); !apperror.HasCode(err, apperror.CodeLexiconInvalid) {
		t.Fatalf("Expected LEXICON_INVALID, got %v", err)
	}
	if svc.Lexicon() != before {
		t.Error("Failed reload must keep the current lexicon")
	}

	good := filepath.Join(dir, "small.json")
	if err := os.WriteFile(good, []byte(smallLexicon), 0644); err != nil {
		t.Fatal(err)
	}
	if err := svc.ReloadLexicon(good); err != nil {
		t.Fatalf("ReloadLexicon() error = %v", err)
	}
	if svc.Lexicon().Source() != good || svc.LexiconPath() != good {
		t.Errorf("Lexicon source = %s", svc.Lexicon().Source())
	}
	if stats, _ := svc.CacheStats(); stats.Size != 0 {
		t.Errorf("Reload should clear the cache, %d entries left", stats.Size)
	}
	if _, err := svc.Analyze(ctx, "bapak mangan"); !apperror.HasCode(err, apperror.CodeSyntax) {
		t.Errorf("'bapak' is not in the small lexicon, got %v", err)
	}

	if got := testutil.ToFloat64(svc.Metrics().LexiconReloads.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed reloads = %v, want 1", got)
	}
}

func TestService_SearchLexicon(t *testing.T) {
	svc := newTestService(t, options{})

	results := svc.SearchLexicon("dhahar", 5)
	if len(results) == 0 || results[0].Word != "dhahar" {
		t.Errorf("SearchLexicon(dhahar) = %+v", results)
	}
	if got := svc.SearchLexicon("a", 2); len(got) != 2 {
		t.Errorf("limit 2 returned %d results", len(got))
	}
	if got := svc.SearchLexicon("", 5); len(got) != 0 {
		t.Errorf("empty query returned %d results", len(got))
	}
}

func TestService_Health(t *testing.T) {
	svc := newTestService(t, options{history: true})

	report := svc.Health().Check(context.Background())
	if !report.Healthy() {
		t.Errorf("Expected healthy, got %s", report)
	}
	if len(report.Checks) != 2 || report.Checks[0].Name != "history" || report.Checks[1].Name != "lexicon" {
		t.Errorf("Unexpected checks %+v", report.Checks)
	}

	empty, err := lexicon.New(&lexicon.Data{})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SwapLexicon(empty); err != nil {
		t.Fatal(err)
	}
	report = svc.Health().Check(context.Background())
	if report.Status != health.StatusUnhealthy {
		t.Errorf("Empty lexicon should be unhealthy, got %s", report.Status)
	}
}

func TestLexiconWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.json")
	if err := os.WriteFile(path, lexicon.DefaultData(), 0644); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(t, options{mutate: func(c *Config) { c.LexiconPath = path }})
	if svc.Lexicon().Source() != path {
		t.Fatalf("Lexicon source = %s", svc.Lexicon().Source())
	}

	w := NewLexiconWatcher(svc, path, 20*time.Millisecond)
	var mu sync.Mutex
	var results []error
	reloaded := make(chan struct{}, 4)
	w.onReload = func(err error) {
		mu.Lock()
		results = append(results, err)
		mu.Unlock()
		reloaded <- struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(smallLexicon), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the reload")
	}

	mu.Lock()
	defer mu.Unlock()
	if results[0] != nil {
		t.Fatalf("Reload error = %v", results[0])
	}
	if svc.Lexicon().Size() != 3 {
		t.Errorf("Expected the small lexicon, got %d words", svc.Lexicon().Size())
	}
}

const smallLexicon = `{
  "SUBJEK": [{"word": "aku", "level": "SELF"}],
  "PREDIKAT": [
    {"word": "mangan", "level": "SELF", "pair": "dhahar"},
    {"word": "dhahar", "level": "OTHER", "pair": "mangan"}
  ]
}`
