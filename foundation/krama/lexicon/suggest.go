// File: suggest.go
// Title: Spelling Suggestions and Lexicon Search
// Description: "Did you mean" suggestions for unknown words (edit distance) and
//              fuzzy subsequence search over the lexicon for the CLI and HTTP API.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-02

package lexicon

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

// MinSuggestLength is the shortest word (in runes) that gets a suggestion.
const MinSuggestLength = 3

// SuggestThreshold is the largest accepted edit distance for a word of n runes.
func SuggestThreshold(n int) int {
	if n <= 4 {
		return 1
	}
	return 2
}

// Suggest returns the lexicon word closest to word by edit distance, if it
// is within SuggestThreshold. Ties go to the word listed first.
func (l *Lexicon) Suggest(word string) (string, bool) {
	n := utf8.RuneCountInString(word)
	if n < MinSuggestLength {
		return "", false
	}

	best, bestDist := "", -1
	for _, candidate := range l.words {
		d := levenshtein.ComputeDistance(word, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist < 0 || bestDist > SuggestThreshold(n) {
		return "", false
	}
	return best, true
}

// SearchResult is one fuzzy search hit.
type SearchResult struct {
	Entry
	Score          int   `json:"score"`
	MatchedIndexes []int `json:"matched_indexes"`
}

// Search finds words containing the characters of query in order, best
// matches first. A limit <= 0 returns every match.
func (l *Lexicon) Search(query string, limit int) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.Find(query, l.words)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, SearchResult{
			Entry:          l.entries[m.Str],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return out
}
