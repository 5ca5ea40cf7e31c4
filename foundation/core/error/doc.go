// Package error provides the structured error type shared by the analyzer packages.
//
// Package: error
// Title: Structured Errors
// Description: An Error carries a code, a severity, details and an operation name on
//              top of the usual message/cause pair. Codes map to HTTP and gRPC status
//              codes at the transport layers.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-12
//
// Usage:
//
//	import apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
//
//	err := apperror.Wrap(cause, "load lexicon").
//		WithCode(apperror.CodeLexiconInvalid).
//		WithDetail("path", path)
//
//	if apperror.HasCode(err, apperror.CodeSyntax) {
//		// ungrammatical input
//	}
package error
