package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
)

// BatchItem is the outcome for one input of AnalyzeBatch
type BatchItem struct {
	Index  int     `json:"index"`
	Input  string  `json:"input"`
	Record *Record `json:"record,omitempty"`
	Error  error   `json:"-"`
}

// AnalyzeBatch analyzes texts in parallel with bounded concurrency. Items are
// returned in input order; a failing sentence only fails its own item.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string) ([]BatchItem, error) {
	if len(texts) == 0 {
		return nil, apperror.New("at least one text is required").
			WithCode(apperror.CodeInvalidInput).
			WithOperation("service.AnalyzeBatch")
	}
	if len(texts) > s.config.MaxBatchSize {
		return nil, apperror.Newf("batch too large: %d texts, at most %d allowed", len(texts), s.config.MaxBatchSize).
			WithCode(apperror.CodeInvalidInput).
			WithOperation("service.AnalyzeBatch")
	}

	items := make([]BatchItem, len(texts))

	var g errgroup.Group
	g.SetLimit(s.config.BatchConcurrency)

	for i, text := range texts {
		items[i] = BatchItem{Index: i, Input: text}
		if ctx.Err() != nil {
			items[i].Error = ctx.Err()
			continue
		}
		g.Go(func() error {
			record, err := s.Analyze(ctx, text)
			items[i].Record = record
			items[i].Error = err
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Debug("Batch analyzed", "size", len(texts))

	if err := ctx.Err(); err != nil {
		return items, err
	}
	return items, nil
}
