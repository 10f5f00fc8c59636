// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors and derives a default
//              severity from an error code.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-14
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation with severity levels
// - 2026-10-14 v0.2.0: Severity mapping for analysis codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a problem with the caller's input
	SeverityLow Severity = iota

	// SeverityMedium affects one request but the service keeps working
	SeverityMedium

	// SeverityHigh means a component cannot serve requests
	SeverityHigh

	// SeverityCritical means the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
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

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeServiceUnavailable:
		return SeverityHigh
	case CodeNetworkError, CodeTimeout:
		return SeverityMedium
	case CodeInvalidInput, CodeNotFound, CodeLexical, CodeSyntax,
		CodeGrammarViolation, CodeInputTooLarge, CodeUnknownMode:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
