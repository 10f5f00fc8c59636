// Package error provides structured error handling for lexan.
//
// Package: error
// Title: lexan Error Handling
// Description: Structured errors with codes, severities, details and
//              localisation keys. The analysis engine reports problems found
//              in source text as diagnostics; this package is for failures
//              of the operation itself.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-14
//
// Usage:
//
//	import mdwerror "github.com/msto63/lexan/foundation/core/error"
//
//	err := mdwerror.New("input exceeds maximum length").
//		WithCode(mdwerror.CodeInputTooLarge).
//		WithOperation("lexan.Analyze").
//		WithDetail("length", n)
//
//	if mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
//		status := mdwerror.GetCode(err).HTTPStatus()
//	}
package error
