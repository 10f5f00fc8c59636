// File: i18n_test.go
// Title: Internationalization Tests
// Description: Tests for loading TOML and YAML catalogs from directories and
//              fs.FS values, key lookup with fallback, templates, plural
//              rules and locale detection.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-10
//
// Change History:
// - 2026-09-28 v0.1.0: Initial test implementation
// - 2026-10-10 v0.2.0: fs.FS catalogs, per-call locales, Russian plurals

package i18n

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
)

const enTOML = `
[lex]
illegal_character = "Illegal character '{{.text}}'"

[ui]
title = "Lexical analysis"
tokens = ["{{.count}} token", "{{.count}} tokens"]
only_en = "English only"
`

const ruYAML = `
lex:
  illegal_character: "Недопустимый символ '{{.text}}'"
ui:
  title: "Лексический анализ"
  tokens:
    - "{{.count}} токен"
    - "{{.count}} токена"
    - "{{.count}} токенов"
`

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en.toml":  {Data: []byte(enTOML)},
		"locales/ru.yaml":  {Data: []byte(ruYAML)},
		"locales/README":   {Data: []byte("ignored")},
		"locales/sub/x.md": {Data: []byte("ignored")},
	}
	manager, err := NewFromFS(fsys, Options{DefaultLocale: "en", LocalesDir: "locales"})
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}
	return manager
}

func TestNew(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "en.toml"), []byte(enTOML), 0644); err != nil {
		t.Fatalf("Failed to write en.toml: %v", err)
	}

	t.Run("create with valid options", func(t *testing.T) {
		manager, err := New(Options{DefaultLocale: "en", LocalesDir: tempDir, Format: FormatTOML})
		if err != nil {
			t.Fatalf("Failed to create i18n manager: %v", err)
		}
		if manager.DefaultLocale() != "en" {
			t.Errorf("Expected default locale 'en', got '%s'", manager.DefaultLocale())
		}
		if manager.CurrentLocale() != "en" {
			t.Errorf("Expected current locale 'en', got '%s'", manager.CurrentLocale())
		}
	})

	t.Run("empty default locale", func(t *testing.T) {
		if _, err := New(Options{LocalesDir: tempDir}); err == nil {
			t.Error("Expected error for empty default locale")
		}
	})

	t.Run("nonexistent locales directory", func(t *testing.T) {
		if _, err := New(Options{DefaultLocale: "en", LocalesDir: "/nonexistent/directory"}); err == nil {
			t.Error("Expected error for nonexistent locales directory")
		}
	})

	t.Run("missing default locale file", func(t *testing.T) {
		if _, err := New(Options{DefaultLocale: "de", LocalesDir: tempDir}); err == nil {
			t.Error("Expected error when the default locale has no file")
		}
	})
}

func TestNewFromFS_InvalidFile(t *testing.T) {
	fsys := fstest.MapFS{
		"en.toml": {Data: []byte("[lex\nbroken")},
	}
	if _, err := NewFromFS(fsys, Options{DefaultLocale: "en"}); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}

func TestNewFromFS_FormatFilter(t *testing.T) {
	fsys := fstest.MapFS{
		"en.toml": {Data: []byte(enTOML)},
		"ru.yaml": {Data: []byte(ruYAML)},
	}
	manager, err := NewFromFS(fsys, Options{DefaultLocale: "en", Format: FormatTOML})
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}
	if manager.HasLocale("ru") {
		t.Error("YAML locale loaded although the format is TOML")
	}
}

func TestTIn(t *testing.T) {
	manager := newTestManager(t)

	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]interface{}
		want   string
	}{
		{"english template", "en", "lex.illegal_character", map[string]interface{}{"text": "#"}, "Illegal character '#'"},
		{"russian template", "ru", "lex.illegal_character", map[string]interface{}{"text": "#"}, "Недопустимый символ '#'"},
		{"plain value", "ru", "ui.title", nil, "Лексический анализ"},
		{"fallback to default", "ru", "ui.only_en", nil, "English only"},
		{"unknown locale falls back", "de", "ui.title", nil, "Lexical analysis"},
		{"missing key", "en", "ui.missing", nil, "[ui.missing]"},
		{"table is not a leaf", "en", "ui", nil, "[ui]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := manager.TIn(tt.locale, tt.key, tt.data); got != tt.want {
				t.Errorf("TIn(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}
}

func TestTryTIn_NoFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"en.toml": {Data: []byte(enTOML)},
		"ru.yaml": {Data: []byte(ruYAML)},
	}
	manager, err := NewFromFS(fsys, Options{DefaultLocale: "en", DisableFallback: true})
	if err != nil {
		t.Fatalf("NewFromFS() error = %v", err)
	}
	if _, err := manager.TryTIn("ru", "ui.only_en", nil); err == nil {
		t.Error("Expected lookup error without fallback")
	}
}

func TestSetLocale(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.SetLocale("ru"); err != nil {
		t.Fatalf("SetLocale(ru) error = %v", err)
	}
	if got := manager.T("ui.title"); got != "Лексический анализ" {
		t.Errorf("T(ui.title) = %q", got)
	}
	if err := manager.SetLocale("xx"); err == nil {
		t.Error("Expected error for unavailable locale")
	}
	if manager.CurrentLocale() != "ru" {
		t.Errorf("current locale changed after failed SetLocale: %s", manager.CurrentLocale())
	}
}

func TestPluralIn(t *testing.T) {
	manager := newTestManager(t)

	tests := []struct {
		locale string
		count  int
		want   string
	}{
		{"en", 1, "1 token"},
		{"en", 0, "0 tokens"},
		{"en", 5, "5 tokens"},
		{"ru", 1, "1 токен"},
		{"ru", 3, "3 токена"},
		{"ru", 5, "5 токенов"},
		{"ru", 11, "11 токенов"},
		{"ru", 21, "21 токен"},
		{"ru", 22, "22 токена"},
		{"ru", 112, "112 токенов"},
	}

	for _, tt := range tests {
		got := manager.PluralIn(tt.locale, "ui.tokens", tt.count, map[string]interface{}{"count": tt.count})
		if got != tt.want {
			t.Errorf("PluralIn(%q, %d) = %q, want %q", tt.locale, tt.count, got, tt.want)
		}
	}
}

func TestKeysAndLocales(t *testing.T) {
	manager := newTestManager(t)

	locales := manager.AvailableLocales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "ru" {
		t.Errorf("AvailableLocales() = %v, want [en ru]", locales)
	}

	keys := manager.Keys("ru")
	want := []string{"lex.illegal_character", "ui.title", "ui.tokens"}
	if len(keys) != len(want) {
		t.Fatalf("Keys(ru) = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys(ru)[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if !manager.HasTranslation("ru", "ui.only_en") {
		t.Error("HasTranslation should honour fallback")
	}
}

func TestConcurrentLookups(t *testing.T) {
	manager := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			locale := "en"
			if n%2 == 0 {
				locale = "ru"
			}
			manager.TIn(locale, "lex.illegal_character", map[string]interface{}{"text": n})
			manager.PluralIn(locale, "ui.tokens", n, map[string]interface{}{"count": n})
		}(i)
	}
	wg.Wait()
}

func TestDetectLocale(t *testing.T) {
	manager := newTestManager(t)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"ru-RU,ru;q=0.9,en;q=0.8", "ru"},
		{"de-DE,en;q=0.5", "en"},
		{"fr-FR", "en"},
		{"en;q=0.2, ru;q=0.7", "ru"},
		{"*", "en"},
	}

	for _, tt := range tests {
		if got := manager.DetectLocale(tt.header); got != tt.want {
			t.Errorf("DetectLocale(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en", "en"},
		{"ru_ru", "ru-RU"},
		{" EN-us ", "en-US"},
		{"english", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeLocale(tt.input); got != tt.want {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
