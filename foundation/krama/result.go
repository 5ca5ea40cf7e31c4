// File: result.go
// Title: Analysis Result
// Description: The composed outcome of analyzing one sentence and the token
//              notes shown next to each word.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-04

package krama

import (
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/ast"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/semantic"
)

// TokenInfo is a categorized word with its note.
type TokenInfo struct {
	Word       string           `json:"word"`
	Category   lexicon.Category `json:"category"`
	Note       string           `json:"note,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
}

// Analysis holds the validity findings.
type Analysis struct {
	SentenceType  semantic.SentenceType `json:"sentence_type"`
	SyntaxValid   bool                  `json:"syntax_valid"`
	SemanticValid bool                  `json:"semantic_valid"`
	Verdict       semantic.Verdict      `json:"verdict"`
	Violations    []semantic.Violation  `json:"violations"`
	Reasons       []string              `json:"reasons"`
	Clauses       []semantic.Check      `json:"clauses"`
}

// Correction is the sentence rewritten with suggested words.
type Correction struct {
	Sentence    string `json:"sentence"`
	Explanation string `json:"explanation"`
}

// Result is the outcome of a successful analysis.
type Result struct {
	Input    string      `json:"input"`
	Tokens   []TokenInfo `json:"tokens"`
	Analysis Analysis    `json:"analysis"`
	// Correction is nil when the sentence is valid.
	Correction          *Correction      `json:"correction,omitempty"`
	Tree                *ast.NonTerminal `json:"structure"`
	Derivation          []string         `json:"derivations"`
	DerivationTruncated bool             `json:"derivation_truncated"`
}

// Valid reports whether the sentence parsed and its register agrees.
func (r *Result) Valid() bool {
	return r.Analysis.SyntaxValid && r.Analysis.SemanticValid
}

// Note returns the note shown for a word of category c.
func Note(lex *lexicon.Lexicon, word string, c lexicon.Category) string {
	level := lex.Level(word)

	switch c {
	case lexicon.Subject:
		switch level {
		case lexicon.LevelSelf:
			return "self-referring pronoun"
		case lexicon.LevelOther:
			return "respected other"
		default:
			return "subject"
		}
	case lexicon.Predicate:
		switch level {
		case lexicon.LevelOther:
			return "other-honoring verb (krama inggil)"
		case lexicon.LevelSelf:
			return "plain verb (krama lugu)"
		case lexicon.LevelNeutral:
			return "neutral verb"
		default:
			return "predicate"
		}
	case lexicon.ObjectNoun:
		return "place / noun"
	case lexicon.Conjunction:
		return "conjunction"
	default:
		return lex.Meaning(word)
	}
}
