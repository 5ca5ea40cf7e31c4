// File: stringx.go
// Title: String Utilities
// Description: Unicode-aware helpers for preparing sentence input: blank checks,
//              normalization into lowercase words and rune-safe truncation.
// Author: LearnWithSuryaa
// Version: v0.1.0
// Created: 2026-09-28
// Modified: 2026-10-03
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation
// - 2026-10-03 v0.1.1: NFC normalization before lowercasing

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the inverse of IsBlank.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// Lower lowercases s after NFC normalization.
// Javanese text in Latin script has no language-specific case rules,
// so the root locale is used.
func Lower(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// NormalizeSentence lowercases text, replaces commas by spaces and
// collapses whitespace to single spaces.
func NormalizeSentence(text string) string {
	return strings.Join(Words(text), " ")
}

// Words returns the normalized words of text in input order.
func Words(text string) []string {
	return strings.Fields(strings.ReplaceAll(Lower(text), ",", " "))
}

// Truncate shortens s to maxLen runes, ending with ellipsis when cut.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// FirstNonBlank returns the first argument that is not blank.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if IsNotBlank(v) {
			return v
		}
	}
	return ""
}
