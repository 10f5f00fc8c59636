// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the lexan engine and its
//              service surfaces, their categories and HTTP status mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-14
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation with core error codes
// - 2026-10-14 v0.2.0: Replaced platform codes with analysis codes

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Analysis
	CodeLexical          Code = "LEXICAL"
	CodeSyntax           Code = "SYNTAX"
	CodeGrammarViolation Code = "GRAMMAR_VIOLATION"
	CodeInputTooLarge    Code = "INPUT_TOO_LARGE"
	CodeUnknownMode      Code = "UNKNOWN_MODE"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Service and network
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeNetworkError       Code = "NETWORK_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeLexical, CodeSyntax, CodeGrammarViolation, CodeInputTooLarge, CodeUnknownMode,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeServiceUnavailable, CodeNetworkError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax, CodeGrammarViolation, CodeInputTooLarge, CodeUnknownMode:
		return "analysis"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeServiceUnavailable, CodeNetworkError:
		return "service"
	default:
		return "generic"
	}
}

// HTTPStatus returns the HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeUnknownMode:
		return http.StatusNotFound
	case CodeInvalidInput, CodeLexical, CodeSyntax, CodeGrammarViolation:
		return http.StatusBadRequest
	case CodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeTimeout:
		return http.StatusRequestTimeout
	case CodeServiceUnavailable, CodeNetworkError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
