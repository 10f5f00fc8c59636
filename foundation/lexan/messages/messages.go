// File: messages.go
// Title: Diagnostic Message Catalogue
// Description: Embeds the English and Russian message catalogues, renders
//              diagnostics by key and builds position-tagged diagnostics for
//              the scanner and parsers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-17
//
// Change History:
// - 2026-09-28 v0.1.0: Initial catalogue with English messages
// - 2026-10-11 v0.2.0: Russian catalogue, embedded locales, plural helpers
// - 2026-10-17 v0.2.1: Localized operational errors

package messages

import (
	"embed"
	"errors"
	"sync"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/core/i18n"
	"github.com/msto63/lexan/foundation/lexan/token"
	"github.com/msto63/lexan/foundation/utils/stringx"
)

// DefaultLocale is the locale diagnostics are created in
const DefaultLocale = "en"

//go:embed locales/en.toml locales/ru.yaml
var localesFS embed.FS

// Catalog renders lexan messages in the available locales
type Catalog struct {
	manager *i18n.Manager
}

// NewCatalog loads the embedded catalogues
func NewCatalog() (*Catalog, error) {
	manager, err := i18n.NewFromFS(localesFS, i18n.Options{
		DefaultLocale: DefaultLocale,
		LocalesDir:    "locales",
	})
	if err != nil {
		return nil, err
	}
	return &Catalog{manager: manager}, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the shared catalogue, loading it on first use. A failed
// load yields a catalogue that renders keys in brackets.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = NewCatalog()
		if defaultErr != nil {
			defaultCatalog = &Catalog{}
		}
	})
	return defaultCatalog
}

// LoadError returns the error from loading the shared catalogue, if any
func LoadError() error {
	Default()
	return defaultErr
}

// Text renders key in locale, falling back to English
func (c *Catalog) Text(locale, key string, args map[string]interface{}) string {
	if c == nil || c.manager == nil {
		return "[" + key + "]"
	}
	return c.manager.TIn(locale, key, args)
}

// Plural renders the plural form of key for count. The count is available
// to the template as {{.count}}.
func (c *Catalog) Plural(locale, key string, count int) string {
	if c == nil || c.manager == nil {
		return "[" + key + "]"
	}
	return c.manager.PluralIn(locale, key, count, map[string]interface{}{"count": count})
}

// Localize renders a diagnostic in locale. Diagnostics without a key keep
// their message.
func (c *Catalog) Localize(locale string, d token.Diagnostic) string {
	if d.Key == "" || c == nil || c.manager == nil {
		return d.Message
	}
	if !c.manager.HasTranslation(locale, d.Key) {
		return d.Message
	}
	return c.manager.TIn(locale, d.Key, d.Args)
}

// LocalizeAll returns copies of diags with messages rendered in locale
func (c *Catalog) LocalizeAll(locale string, diags []token.Diagnostic) []token.Diagnostic {
	out := make([]token.Diagnostic, len(diags))
	for i, d := range diags {
		d.Message = c.Localize(locale, d)
		out[i] = d
	}
	return out
}

// Error renders an operational error in locale. Errors without a message
// key, or whose key has no translation, keep their own text.
func (c *Catalog) Error(locale string, err error) string {
	if err == nil {
		return ""
	}
	var mdwErr *mdwerror.Error
	if !errors.As(err, &mdwErr) || mdwErr.MessageKey() == "" || c == nil || c.manager == nil {
		return err.Error()
	}
	if !c.manager.HasTranslation(locale, mdwErr.MessageKey()) {
		return err.Error()
	}
	return c.manager.TIn(locale, mdwErr.MessageKey(), mdwErr.MessageArgs())
}

// Category returns the localized name of a token category
func (c *Catalog) Category(locale string, category token.Category) string {
	return c.Text(locale, category.Key(), nil)
}

// Locales returns the available locales
func (c *Catalog) Locales() []string {
	if c == nil || c.manager == nil {
		return []string{DefaultLocale}
	}
	return c.manager.AvailableLocales()
}

// HasLocale reports whether locale has a catalogue
func (c *Catalog) HasLocale(locale string) bool {
	if c == nil || c.manager == nil {
		return locale == DefaultLocale
	}
	return c.manager.HasLocale(locale)
}

// Resolve maps a user-supplied locale tag or Accept-Language header to an
// available locale
func (c *Catalog) Resolve(locale string) string {
	if c == nil || c.manager == nil || stringx.IsBlank(locale) {
		return DefaultLocale
	}
	return c.manager.DetectLocale(locale)
}

// Render produces the English message for key
func Render(key string, args map[string]interface{}) string {
	return Default().Text(DefaultLocale, key, args)
}

// New creates a diagnostic at line and column. offending may be empty.
func New(key string, line, column int, offending string, args map[string]interface{}) token.Diagnostic {
	return token.Diagnostic{
		Message:   Render(key, args),
		Line:      line,
		Column:    column,
		Offending: offending,
		Key:       key,
		Args:      args,
	}
}

// At creates a diagnostic positioned at tok. The token text is available to
// the template as {{.text}}.
func At(tok token.Token, key string) token.Diagnostic {
	return New(key, tok.Line, tok.Column, tok.Text, TextArgs(tok.Text))
}

// AtEnd creates a diagnostic positioned just past tok
func AtEnd(tok token.Token, key string) token.Diagnostic {
	line, column := token.End(tok)
	return New(key, line, column, "", nil)
}

// Unknown creates a diagnostic with the unknown-position sentinel
func Unknown(key string) token.Diagnostic {
	return New(key, token.UnknownPosition, token.UnknownPosition, "", nil)
}

// Lexical creates the diagnostic for an Error token
func Lexical(tok token.Token) token.Diagnostic {
	return At(tok, tok.Reason.Key())
}

// TextArgs returns template arguments naming text, rendered on one line
func TextArgs(text string) map[string]interface{} {
	return map[string]interface{}{"text": stringx.Visible(text)}
}
