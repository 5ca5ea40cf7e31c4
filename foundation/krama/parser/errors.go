// File: errors.go
// Title: Syntax Errors
// Description: The error raised when a token does not fit the grammar at its
//              position, naming what was expected and what was found.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-30
// Modified: 2026-09-30

package parser

import (
	"fmt"
	"strings"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
)

// EndOfInput names the missing token at the end of the sentence.
const EndOfInput = "END_OF_INPUT"

// SyntaxError reports a grammar mismatch. Parsing stops at the first one.
type SyntaxError struct {
	// Rule is the grammar rule being parsed, e.g. "VERB_PHRASE".
	Rule string
	// Expected lists the categories accepted at Pos. Empty when the end of
	// input was expected.
	Expected []lexicon.Category
	// Found is nil at the end of input.
	Found *Token
	// Pos is the word index of the mismatch (the token count at end of input).
	Pos int
}

// ExpectedName renders the expected categories, e.g. "SUBJECT, OBJECT_NOUN or TIME_ADVERB".
func (e *SyntaxError) ExpectedName() string {
	if len(e.Expected) == 0 {
		return EndOfInput
	}
	names := make([]string, len(e.Expected))
	for i, c := range e.Expected {
		names[i] = c.String()
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// FoundName is the category of the offending token or END_OF_INPUT.
func (e *SyntaxError) FoundName() string {
	if e.Found == nil {
		return EndOfInput
	}
	return e.Found.Category.String()
}

// Expects reports whether c was among the expected categories.
func (e *SyntaxError) Expects(c lexicon.Category) bool {
	for _, x := range e.Expected {
		if x == c {
			return true
		}
	}
	return false
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error in %s: expected %s, found %s", e.Rule, e.ExpectedName(), e.FoundName())
	if e.Found != nil {
		fmt.Fprintf(&b, " %q at word %d", e.Found.Text, e.Pos+1)
		if e.Found.Suggestion != "" {
			fmt.Fprintf(&b, " (did you mean %q?)", e.Found.Suggestion)
		}
	}
	return b.String()
}
