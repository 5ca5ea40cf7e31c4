// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     logging
// Description: Logger factory and key/value logger on top of foundation logging
// Author:      LearnWithSuryaa
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package logging

// Level represents log severity (for compatibility)
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}
