// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, derived loggers, formatters,
//              error integration and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-09
//
// Change History:
// - 2026-09-28 v0.1.0: Initial logger tests
// - 2026-10-09 v0.2.0: Concurrency and analysis ID coverage

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf, Name: "test"}), &buf
}

func TestNewWithConfig(t *testing.T) {
	logger, _ := newBufferLogger(LevelError, FormatText)

	if logger.GetLevel() != LevelError {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), LevelError)
	}
	if logger.Name() != "test" {
		t.Errorf("Name() = %q, want test", logger.Name())
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}

func TestWithField_DoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatJSON)
	child := parent.WithField("component", "scanner").WithAnalysisID("a-1")

	parent.Info("from parent")
	child.Info("from child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first, second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if _, ok := first["component"]; ok {
		t.Error("parent logger picked up child field")
	}
	if second["component"] != "scanner" {
		t.Errorf("component = %v, want scanner", second["component"])
	}
	if second["analysis_id"] != "a-1" {
		t.Errorf("analysis_id = %v, want a-1", second["analysis_id"])
	}
}

func TestTextFormatter_SortedFields(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	entry := NewEntry(LevelInfo, "scan finished")
	entry.Fields = Fields{"tokens": 4, "errors": 1}

	data, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "[INF] scan finished [errors=1 tokens=4]\n"
	if string(data) != want {
		t.Errorf("Format() = %q, want %q", string(data), want)
	}
}

func TestJSONFormatter_Error(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.ErrorWithErr("request failed", errors.New("boom"))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
	if got["level"] != "error" {
		t.Errorf("level = %v, want error", got["level"])
	}
}

func TestLogError_SeverityLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.LogError(mdwerror.New("too long").WithCode(mdwerror.CodeInputTooLarge).WithDetail("length", 9))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["level"] != "info" {
		t.Errorf("level = %v, want info for low severity", got["level"])
	}
	if got["error_code"] != string(mdwerror.CodeInputTooLarge) {
		t.Errorf("error_code = %v, want %v", got["error_code"], mdwerror.CodeInputTooLarge)
	}
	if got["error_length"] != float64(9) {
		t.Errorf("error_length = %v, want 9", got["error_length"])
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Nop() logger should not enable any level")
	}
	logger.Error("discarded")
}

func TestConcurrentWrites(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("n", n).Info("line")
		}(i)
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 20 {
		t.Errorf("line count = %d, want 20", got)
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	timer := logger.StartTimer("lexan.tokens")
	if !timer.IsRunning() {
		t.Error("timer should be running")
	}
	timer.Stop()
	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["message"] != "lexan.tokens completed" {
		t.Errorf("message = %v", got["message"])
	}
	if _, ok := got["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
}

func TestTimer_StopWithResultEscalates(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.StartTimer("lexan.quads").StopWithResult(false, 2)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["level"] != "warn" {
		t.Errorf("level = %v, want warn", got["level"])
	}
	if got["success"] != false {
		t.Errorf("success = %v, want false", got["success"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"trc", LevelTrace, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("console"); err != nil || f != FormatConsole {
		t.Errorf("ParseFormat(console) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
