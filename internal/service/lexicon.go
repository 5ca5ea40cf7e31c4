package service

import (
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
)

// Lexicon returns the lexicon in use
func (s *Service) Lexicon() *lexicon.Lexicon {
	return s.Engine().Lexicon()
}

// LexiconPath returns the file the lexicon was last loaded from; empty for
// the embedded default
func (s *Service) LexiconPath() string {
	path, _ := s.path.Load().(string)
	return path
}

// ReloadLexicon loads path (the embedded default when empty) and swaps it in.
// On error the current lexicon stays in use. Cached results are dropped.
func (s *Service) ReloadLexicon(path string) error {
	lex, err := lexicon.Load(path)
	if err == nil {
		err = s.SwapLexicon(lex)
	}
	s.metrics.ObserveReload(err)
	if err != nil {
		s.logger.Warn("Lexicon reload failed, keeping current lexicon", "path", path, "error", err)
		return err
	}

	s.path.Store(path)
	s.logger.Info("Lexicon reloaded", "source", lex.Source(), "words", lex.Size())
	return nil
}

// SwapLexicon replaces the lexicon in use and drops cached results
func (s *Service) SwapLexicon(lex *lexicon.Lexicon) error {
	engine, err := s.newEngine(lex)
	if err != nil {
		return err
	}
	s.engine.Store(engine)
	if s.cache != nil {
		s.cache.Invalidate()
	}
	return nil
}

// SearchLexicon fuzzy-searches the lexicon; limit <= 0 returns every match
func (s *Service) SearchLexicon(query string, limit int) []lexicon.SearchResult {
	return s.Lexicon().Search(query, limit)
}
