package service

import (
	"context"
	"time"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
)

func (s *Service) requireHistory(op string) error {
	if s.store == nil {
		return apperror.New("history is disabled").
			WithCode(apperror.CodeUnavailable).
			WithOperation(op)
	}
	return nil
}

// History lists stored analyses, newest first
func (s *Service) History(ctx context.Context, filter store.Filter) ([]*store.Entry, error) {
	if err := s.requireHistory("service.History"); err != nil {
		return nil, err
	}
	return s.store.List(ctx, filter)
}

// Record returns one stored analysis
func (s *Service) Record(ctx context.Context, id string) (*store.Entry, error) {
	if err := s.requireHistory("service.Record"); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// Stats summarizes the history
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	if err := s.requireHistory("service.Stats"); err != nil {
		return nil, err
	}
	return s.store.Stats(ctx)
}

// Prune removes analyses older than olderThan and returns how many were removed
func (s *Service) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if err := s.requireHistory("service.Prune"); err != nil {
		return 0, err
	}
	if olderThan <= 0 {
		return 0, apperror.New("prune age must be positive").
			WithCode(apperror.CodeInvalidInput).
			WithOperation("service.Prune")
	}

	n, err := s.store.Prune(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	s.logger.Info("History pruned", "removed", n, "older_than", olderThan.String())
	return n, nil
}
