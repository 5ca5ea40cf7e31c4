// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     service
// Description: Analysis service shared by the CLI, HTTP, WebSocket and gRPC
//              front ends: input limits, result cache, history, metrics and
//              lexicon reloads around the core engine
// Author:      LearnWithSuryaa
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/utils/stringx"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/cache"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/health"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/metrics"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/version"
)

// Record is the outcome of one Analyze call
type Record struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Input     string        `json:"input"`
	Result    *krama.Result `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	Cached    bool          `json:"cached"`
}

// Config holds service configuration
type Config struct {
	// Lexicon to start with; nil loads LexiconPath (or the embedded default)
	Lexicon     *lexicon.Lexicon
	LexiconPath string

	MaxInputLength   int
	BatchConcurrency int
	MaxBatchSize     int
	AllowTrailing    bool
	// DisableSuggestions turns off "did you mean" lookups
	DisableSuggestions bool

	// Cache is optional; nil disables result caching
	Cache *cache.ResultCache
	// Store is optional; nil disables history
	Store store.HistoryStore
	// Metrics defaults to a fresh collector
	Metrics *metrics.Collector
	Logger  *logging.Logger
}

// DefaultConfig returns default service configuration
func DefaultConfig() Config {
	return Config{
		MaxInputLength:   500,
		BatchConcurrency: 4,
		MaxBatchSize:     100,
	}
}

// Service runs analyses
type Service struct {
	config  Config
	engine  atomic.Pointer[krama.Engine]
	path    atomic.Value // string
	cache   *cache.ResultCache
	store   store.HistoryStore
	metrics *metrics.Collector
	health  *health.Registry
	logger  *logging.Logger
}

// NewService creates a new analysis service
func NewService(cfg Config) (*Service, error) {
	def := DefaultConfig()
	if cfg.MaxInputLength <= 0 {
		cfg.MaxInputLength = def.MaxInputLength
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = def.BatchConcurrency
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = def.MaxBatchSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("krama-service")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewCollector("krama")
	}

	lex := cfg.Lexicon
	if lex == nil {
		var err error
		lex, err = lexicon.Load(cfg.LexiconPath)
		if err != nil {
			return nil, apperror.Wrap(err, "failed to load lexicon").
				WithOperation("service.NewService")
		}
	}

	s := &Service{
		config:  cfg,
		cache:   cfg.Cache,
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
	s.path.Store(cfg.LexiconPath)

	engine, err := s.newEngine(lex)
	if err != nil {
		return nil, err
	}
	s.engine.Store(engine)

	s.health = health.NewRegistry("krama", version.App)
	s.health.RegisterFunc("lexicon", s.checkLexicon)
	if s.store != nil {
		s.health.Register(health.PingCheck("history", s.store.Ping))
	} else {
		s.health.Register(health.DisabledCheck("history"))
	}

	s.logger.Info("Analysis service ready",
		"lexicon", lex.Source(),
		"words", lex.Size(),
		"history", s.store != nil,
		"cache", s.cache != nil,
	)

	return s, nil
}

func (s *Service) newEngine(lex *lexicon.Lexicon) (*krama.Engine, error) {
	return krama.New(lex, krama.Options{
		Logger:             s.logger.Foundation(),
		DisableSuggestions: s.config.DisableSuggestions,
		AllowTrailing:      s.config.AllowTrailing,
	})
}

// Engine returns the current engine
func (s *Service) Engine() *krama.Engine {
	return s.engine.Load()
}

// Metrics returns the metrics collector
func (s *Service) Metrics() *metrics.Collector {
	return s.metrics
}

// Health returns the health registry
func (s *Service) Health() *health.Registry {
	return s.health
}

// HistoryEnabled reports whether analyses are persisted
func (s *Service) HistoryEnabled() bool {
	return s.store != nil
}

// Analyze analyzes one sentence. A sentence that does not fit the grammar
// returns an error with code KRAMA_SYNTAX; it is still recorded in history.
func (s *Service) Analyze(ctx context.Context, text string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validateInput(text); err != nil {
		return nil, err
	}

	record := &Record{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Input:     text,
	}

	if s.cache != nil {
		result, ok := s.cache.Get(text)
		s.metrics.ObserveCache(ok)
		if ok {
			record.Result = result
			record.Cached = true
			s.save(ctx, record)
			return record, nil
		}
	}

	start := time.Now()
	result, err := s.Engine().Analyze(text)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveAnalysis(metrics.OutcomeSyntaxError, nil, elapsed)
		record.Error = err.Error()
		s.save(ctx, record)
		s.logger.Debug("Sentence rejected", "input", text, "error", err)
		return nil, err
	}

	outcome := metrics.OutcomeValid
	if !result.Valid() {
		outcome = metrics.OutcomeInvalid
	}
	rules := make([]string, len(result.Analysis.Violations))
	for i, v := range result.Analysis.Violations {
		rules[i] = v.Rule.Code()
	}
	s.metrics.ObserveAnalysis(outcome, rules, elapsed)

	if s.cache != nil {
		s.cache.Set(text, result)
	}

	record.Result = result
	s.save(ctx, record)
	return record, nil
}

func (s *Service) validateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperror.New("text is required").
			WithCode(apperror.CodeInvalidInput).
			WithOperation("service.Analyze")
	}
	if n := utf8.RuneCountInString(text); n > s.config.MaxInputLength {
		return apperror.Newf("text is too long: %d characters, at most %d allowed", n, s.config.MaxInputLength).
			WithCode(apperror.CodeInvalidInput).
			WithOperation("service.Analyze").
			WithDetail("max_length", s.config.MaxInputLength)
	}
	return nil
}

// save writes record to history; failures are logged only
func (s *Service) save(ctx context.Context, record *Record) {
	if s.store == nil {
		return
	}

	entry := &store.Entry{
		ID:         record.ID,
		CreatedAt:  record.CreatedAt,
		Input:      record.Input,
		Normalized: stringx.NormalizeSentence(record.Input),
		Error:      record.Error,
	}
	if r := record.Result; r != nil {
		entry.Valid = r.Valid()
		entry.Verdict = string(r.Analysis.Verdict)
		entry.SentenceType = string(r.Analysis.SentenceType)
		if r.Correction != nil {
			entry.Correction = r.Correction.Sentence
		}
		raw, err := json.Marshal(r)
		if err != nil {
			s.logger.Warn("Failed to encode result for history", "id", record.ID, "error", err)
		} else {
			entry.Result = raw
		}
	}

	if err := s.store.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to save history entry", "id", record.ID, "error", err)
	}
}

// Tokenize returns the annotated tokens of text without parsing it
func (s *Service) Tokenize(text string) []krama.TokenInfo {
	return s.Engine().Tokenize(text)
}

// CacheStats returns result cache statistics; ok is false when caching is off
func (s *Service) CacheStats() (cache.Stats, bool) {
	if s.cache == nil {
		return cache.Stats{}, false
	}
	return s.cache.Stats(), true
}

// Close releases the cache and the history store
func (s *Service) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func (s *Service) checkLexicon(ctx context.Context) health.CheckResult {
	lex := s.Lexicon()
	result := health.CheckResult{
		Name:    "lexicon",
		Status:  health.StatusHealthy,
		Message: "ok",
		Details: map[string]interface{}{
			"source": lex.Source(),
			"words":  lex.Size(),
		},
	}
	if lex.Size() == 0 {
		result.Status = health.StatusUnhealthy
		result.Message = "lexicon is empty"
	}
	return result
}
