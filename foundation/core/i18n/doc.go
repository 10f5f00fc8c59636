// Package i18n provides translation lookup for lexan messages.
//
// Package: i18n
// Title: Internationalization
// Description: Loads TOML and YAML language files from a directory or an
//              embedded filesystem and resolves dot-notation keys with
//              text/template interpolation, plural forms and fallback to the
//              default locale.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-10
//
// Language files are named after their locale ("en.toml", "ru.yaml") and
// nest keys in tables:
//
//	[fsm]
//	expected_assign = "Expected '=' after identifier '{{.text}}'"
//
// Usage:
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	manager, err := i18n.NewFromFS(localesFS, i18n.Options{
//		DefaultLocale: "en",
//		LocalesDir:    "locales",
//	})
//	if err != nil {
//		return err
//	}
//
//	msg := manager.TIn("ru", "fsm.expected_assign", map[string]interface{}{
//		"text": "a",
//	})
//
// Lookups take the locale explicitly so a single manager can serve
// concurrent requests in different languages. T and Plural use the
// manager's current locale, set with SetLocale.
package i18n
