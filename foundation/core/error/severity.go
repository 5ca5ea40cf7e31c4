// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level of an error.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-28
// Modified: 2026-09-28

package error

// Severity ranks how badly an error affects the system.
type Severity int

const (
	// SeverityLow covers bad user input such as an ungrammatical sentence.
	SeverityLow Severity = iota
	SeverityMedium
	// SeverityHigh covers failing infrastructure (storage, lexicon reload).
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase name.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert is true from SeverityHigh upwards.
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode returns the default severity for a code.
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceInitialization:
		return SeverityCritical
	case CodeDatabaseError, CodeLexiconInvalid, CodeLexiconNotFound, CodeConfigError, CodeUnavailable:
		return SeverityHigh
	case CodeSyntax, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
