// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              JSON rendering.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-14
//
// Change History:
// - 2026-09-28 v0.1.0: Initial tests
// - 2026-10-14 v0.2.0: Analysis codes and errors.Is support

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap structured error",
			err:      New("input too long").WithCode(CodeInputTooLarge),
			message:  "analysis rejected",
			wantMsg:  "analysis rejected: input too long",
			wantCode: CodeInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}
			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
			if wrapped.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", wrapped.Code(), tt.wantCode)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("errors.Is(wrapped, original) should be true")
			}
		})
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInputTooLarge, SeverityLow},
		{CodeUnknownMode, SeverityLow},
		{CodeConfigError, SeverityHigh},
		{CodeInternal, SeverityCritical},
		{CodeNetworkError, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeInvalidInput)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: got %v", explicit.Severity())
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("too big").WithCode(CodeInputTooLarge))

	if !errors.Is(err, New("").WithCode(CodeInputTooLarge)) {
		t.Error("errors.Is() should match on code")
	}
	if errors.Is(err, New("").WithCode(CodeUnknownMode)) {
		t.Error("errors.Is() should not match a different code")
	}
	if !HasCode(err, CodeInputTooLarge) {
		t.Error("HasCode() should look through wrapped errors")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of a plain error should be CodeUnknown")
	}
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeInputTooLarge, http.StatusRequestEntityTooLarge},
		{CodeUnknownMode, http.StatusNotFound},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCode_Category(t *testing.T) {
	if CodeSyntax.Category() != "analysis" {
		t.Errorf("CodeSyntax.Category() = %q, want analysis", CodeSyntax.Category())
	}
	if CodeInvalidConfig.Category() != "configuration" {
		t.Errorf("CodeInvalidConfig.Category() = %q, want configuration", CodeInvalidConfig.Category())
	}
	if Code("BOGUS").IsValid() {
		t.Error("unknown code reported as valid")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("input exceeds maximum length").
		WithCode(CodeInputTooLarge).
		WithOperation("lexan.Analyze").
		WithAnalysisID("a-1").
		WithDetail("length", 10).
		WithMessage("error.input_too_large", map[string]interface{}{"max": 5})

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var got map[string]interface{}
	if jerr := json.Unmarshal(data, &got); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}

	if got["code"] != string(CodeInputTooLarge) {
		t.Errorf("code = %v, want %v", got["code"], CodeInputTooLarge)
	}
	if got["operation"] != "lexan.Analyze" {
		t.Errorf("operation = %v, want lexan.Analyze", got["operation"])
	}
	if got["analysis_id"] != "a-1" {
		t.Errorf("analysis_id = %v, want a-1", got["analysis_id"])
	}
	if got["message_key"] != "error.input_too_large" {
		t.Errorf("message_key = %v, want error.input_too_large", got["message_key"])
	}
}
