// Package log provides structured logging for lexan.
//
// Package: log
// Title: lexan Structured Logging
// Description: Structured logger with levels, contextual fields, JSON, text
//              and console output, and timers. Engine components log through
//              it at debug and trace level; services and the CLI configure
//              it through pkg/core/logging.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-09
//
// Usage:
//
//	import mdwlog "github.com/msto63/lexan/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithField("component", "fsm")
//
//	logger.Debug("Declaration check finished", mdwlog.Fields{
//		"tokens":      len(tokens),
//		"diagnostics": len(diags),
//	})
//
//	timer := logger.StartTimer("lexan.quads")
//	// ... run the compiler
//	timer.Stop()
package log
