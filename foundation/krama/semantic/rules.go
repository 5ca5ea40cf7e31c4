// File: rules.go
// Title: Honorific Agreement Rules
// Description: The subject/predicate agreement rules and the values a
//              validation produces: violations, verdicts and sentence types.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-10-01
// Modified: 2026-10-04

package semantic

import "fmt"

// Rule identifies an agreement rule.
type Rule int

const (
	// RuleSelfSubject forbids other-honoring words for a self-referring subject.
	RuleSelfSubject Rule = iota + 1
	// RuleRespectedSubject requires honorific words for a respected subject.
	RuleRespectedSubject
)

// String returns the rule description.
func (r Rule) String() string {
	switch r {
	case RuleSelfSubject:
		return "self-referring subject must not use other-honoring vocabulary"
	case RuleRespectedSubject:
		return "subject deserving respect requires honorific vocabulary"
	default:
		return "unknown rule"
	}
}

// Code is a short identifier for metrics labels and APIs.
func (r Rule) Code() string {
	switch r {
	case RuleSelfSubject:
		return "self_subject"
	case RuleRespectedSubject:
		return "respected_subject"
	default:
		return "unknown"
	}
}

// Problem describes what is wrong with the offending word.
func (r Rule) Problem() string {
	switch r {
	case RuleSelfSubject:
		return "other-honoring vocabulary used for a self-referring subject"
	case RuleRespectedSubject:
		return "vocabulary not refined enough for a respected subject"
	default:
		return ""
	}
}

// MarshalText encodes the rule as its description.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r Rule) reason(subject, word string) string {
	switch r {
	case RuleSelfSubject:
		return fmt.Sprintf("subject '%s' (self-referring) must not use the other-honoring word '%s'", subject, word)
	case RuleRespectedSubject:
		return fmt.Sprintf("subject '%s' (respected other) must be honored; do not use '%s'", subject, word)
	default:
		return ""
	}
}

// Violation is one agreement mismatch.
type Violation struct {
	// Word is the offending predicate.
	Word    string `json:"word"`
	Problem string `json:"problem"`
	// Subject is the subject head word the predicate disagrees with.
	Subject string `json:"subject"`
	Rule    Rule   `json:"rule"`
	// Suggestion is the registered replacement of Word, or an unresolved
	// marker when Resolved is false.
	Suggestion string `json:"suggestion"`
	Resolved   bool   `json:"resolved"`
	// Clause is the 1-based clause index in the sentence.
	Clause int `json:"clause"`
}

// UnresolvedSuggestion is the marker used when word has no registered pair.
func UnresolvedSuggestion(word string) string {
	return fmt.Sprintf("(cari ganti %s)", word)
}

// Verdict is the overall register judgement of a sentence.
type Verdict string

const (
	Appropriate   Verdict = "appropriate"
	Ambiguous     Verdict = "ambiguous"
	Inappropriate Verdict = "inappropriate"
)

// SentenceType is the clause structure of a sentence.
type SentenceType string

const (
	Simple   SentenceType = "simple"
	Compound SentenceType = "compound"
)
