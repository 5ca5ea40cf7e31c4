// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     report
// Description: Renders analysis results as plain text, styled terminal text,
//              Markdown or JSON
// Author:      LearnWithSuryaa
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/lexicon"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama/semantic"
)

// Format selects a report rendering
type Format string

const (
	FormatText     Format = "text"
	FormatStyled   Format = "styled"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats
var Formats = []Format{FormatText, FormatStyled, FormatMarkdown, FormatJSON}

// ParseFormat parses a format name; empty means text
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatStyled:
		return FormatStyled, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", apperror.Newf("unknown report format %q (want text, styled, markdown or json)", s).
			WithCode(apperror.CodeInvalidInput)
	}
}

// Options tunes rendering
type Options struct {
	// Terminal renders Markdown with glamour instead of writing the source
	Terminal bool
	// Width is the wrap width for terminal Markdown (default 80)
	Width int
}

// Failure describes a sentence that could not be analyzed
type Failure struct {
	Input  string            `json:"input"`
	Tokens []krama.TokenInfo `json:"tokens,omitempty"`
	Err    error             `json:"-"`
}

// Write renders result in format f
func Write(w io.Writer, f Format, result *krama.Result, opts Options) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatMarkdown:
		return writeMarkdown(w, Markdown(result), opts)
	case FormatStyled:
		_, err := io.WriteString(w, Styled(result))
		return err
	default:
		_, err := io.WriteString(w, Text(result))
		return err
	}
}

// WriteFailure renders a failed analysis in format f
func WriteFailure(w io.Writer, f Format, fail Failure, opts Options) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, failureJSON(fail))
	case FormatMarkdown:
		return writeMarkdown(w, MarkdownFailure(fail), opts)
	case FormatStyled:
		_, err := io.WriteString(w, StyledFailure(fail))
		return err
	default:
		_, err := io.WriteString(w, TextFailure(fail))
		return err
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func failureJSON(fail Failure) map[string]interface{} {
	out := map[string]interface{}{
		"input":  fail.Input,
		"tokens": fail.Tokens,
		"error":  fail.Err.Error(),
	}
	var appErr *apperror.Error
	if errors.As(fail.Err, &appErr) {
		out["code"] = appErr.Code().String()
		if details := appErr.Details(); len(details) > 0 {
			out["details"] = details
		}
	}
	return out
}

// StatusLabel is the headline status of a result
func StatusLabel(result *krama.Result) string {
	switch result.Analysis.Verdict {
	case semantic.Appropriate:
		return "VALID"
	case semantic.Ambiguous:
		return "AMBIGUOUS"
	default:
		return "INVALID"
	}
}

// DerivationLines numbers the derivation: "1. S", "2. => CLAUSE", ...
func DerivationLines(result *krama.Result) []string {
	lines := make([]string, len(result.Derivation))
	for i, step := range result.Derivation {
		if i == 0 {
			lines[i] = fmt.Sprintf("%d. %s", i+1, step)
			continue
		}
		lines[i] = fmt.Sprintf("%d. => %s", i+1, step)
	}
	return lines
}

func tokenSummary(tokens []krama.TokenInfo) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fmt.Sprintf("%s (%s)", t.Word, t.Category)
	}
	return strings.Join(parts, ", ")
}

func unknownWords(tokens []krama.TokenInfo) []string {
	var out []string
	for _, t := range tokens {
		if t.Category != lexicon.Unknown {
			continue
		}
		if t.Suggestion != "" {
			out = append(out, fmt.Sprintf("%s (did you mean %q?)", t.Word, t.Suggestion))
		} else {
			out = append(out, t.Word)
		}
	}
	return out
}
