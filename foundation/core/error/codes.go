// File: codes.go
// Title: Error Code Definitions
// Description: Classification codes for analyzer errors. Codes drive severity,
//              HTTP status and gRPC status mapping at the transport layers.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-28
// Modified: 2026-09-28

package error

// Code classifies an error.
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"
	CodeUnavailable  Code = "UNAVAILABLE"

	// Analysis
	CodeSyntax Code = "KRAMA_SYNTAX"

	// Lexicon
	CodeLexiconInvalid  Code = "LEXICON_INVALID"
	CodeLexiconNotFound Code = "LEXICON_NOT_FOUND"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration and lifecycle
	CodeConfigError           Code = "CONFIG_ERROR"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
)

// String returns the code as string.
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is one of the declared codes.
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout, CodeUnavailable,
		CodeSyntax, CodeLexiconInvalid, CodeLexiconNotFound, CodeDatabaseError,
		CodeConfigError, CodeServiceInitialization:
		return true
	default:
		return false
	}
}

// Category groups codes for metrics and logs.
func (c Code) Category() string {
	switch c {
	case CodeSyntax:
		return "analysis"
	case CodeLexiconInvalid, CodeLexiconNotFound:
		return "lexicon"
	case CodeDatabaseError:
		return "storage"
	case CodeConfigError, CodeServiceInitialization:
		return "configuration"
	case CodeInvalidInput:
		return "validation"
	default:
		return "generic"
	}
}

// HTTPStatus maps the code to an HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeLexiconNotFound:
		return 404
	case CodeInvalidInput, CodeLexiconInvalid:
		return 400
	case CodeSyntax:
		return 422
	case CodeTimeout:
		return 408
	case CodeUnavailable, CodeDatabaseError:
		return 503
	default:
		return 500
	}
}
