// Package log provides the structured logger used by every analyzer component.
//
// Package: log
// Title: Structured Logging
// Description: Leveled logger with persistent context fields, JSON/text/console
//              formatters, integration with the structured error type and a
//              performance timer for measuring analysis stages.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-12
//
// Usage:
//
//	import applog "github.com/LearnWithSuryaa/analyzer-app/foundation/core/log"
//
//	logger := applog.NewWithConfig(applog.Config{Level: applog.LevelDebug, Format: applog.FormatText})
//	logger = logger.WithField("component", "parser")
//	logger.Debug("parse started", applog.Fields{"tokens": 4})
//
//	timer := logger.StartTimer("analyze")
//	defer timer.Stop()
package log
