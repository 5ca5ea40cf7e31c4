// File: lexer.go
// Title: Sentence Tokenizer
// Description: Splits normalized sentence text into words and tags every word
//              with its lexicon category. Unknown words are kept as UNKNOWN
//              tokens, optionally with a spelling suggestion.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-30
// Modified: 2026-10-02
//
// Change History:
// - 2026-09-30 v0.1.0: Initial tokenizer
// - 2026-10-02 v0.1.1: Suggestions for unknown words

package parser

import (
	"fmt"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/utils/stringx"
)

// Token is a categorized word.
type Token struct {
	Category lexicon.Category `json:"category"`
	Text     string           `json:"text"`
	// Pos is the 0-based word index in the sentence.
	Pos int `json:"position"`
	// Suggestion is a close lexicon word for UNKNOWN tokens.
	Suggestion string `json:"suggestion,omitempty"`
}

// String returns CATEGORY(text).
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Category, t.Text)
}

// Tokenizer tags words using a lexicon.
type Tokenizer struct {
	lexicon *lexicon.Lexicon
	suggest bool
}

// NewTokenizer creates a tokenizer. With suggest set, UNKNOWN tokens carry
// the closest lexicon word when one is near enough.
func NewTokenizer(lex *lexicon.Lexicon, suggest bool) *Tokenizer {
	return &Tokenizer{lexicon: lex, suggest: suggest}
}

// Tokenize lowercases text, treats commas as separators and tags each word.
// The result has one token per word in input order.
func (t *Tokenizer) Tokenize(text string) []Token {
	words := stringx.Words(text)
	tokens := make([]Token, 0, len(words))

	for i, w := range words {
		tok := Token{Category: t.lexicon.Match(w), Text: w, Pos: i}
		if tok.Category == lexicon.Unknown && t.suggest {
			if s, ok := t.lexicon.Suggest(w); ok {
				tok.Suggestion = s
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Tokenize tags text with lex without suggestions.
func Tokenize(text string, lex *lexicon.Lexicon) []Token {
	return NewTokenizer(lex, false).Tokenize(text)
}
