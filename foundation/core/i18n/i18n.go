// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the i18n Manager: loading TOML and YAML language
//              files from a directory or an fs.FS, dot-notation key lookup
//              with fallback, template interpolation and plural forms.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-10
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-10 v0.2.0: fs.FS loading for embedded catalogs, per-call locale
//                      lookups, separate lock for the template cache,
//                      Russian plural rules, file watching removed

package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	mdwstringx "github.com/msto63/lexan/foundation/utils/stringx"
)

// Format represents the language file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML restricts loading to .toml files
	FormatTOML

	// FormatYAML restricts loading to .yaml and .yml files
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

func (f Format) extensions() []string {
	switch f {
	case FormatTOML:
		return []string{".toml"}
	case FormatYAML:
		return []string{".yaml", ".yml"}
	default:
		return []string{".toml", ".yaml", ".yml"}
	}
}

// Options defines configuration options for the i18n manager
type Options struct {
	DefaultLocale   string // Default locale (e.g., "en")
	LocalesDir      string // Directory containing language files
	Format          Format // File format (default: auto-detect)
	DisableFallback bool   // Do not fall back to the default locale
}

// Manager manages translations for an application. All lookups are safe for
// concurrent use.
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	fallback      bool
	translations  map[string]map[string]interface{} // locale -> translations

	tmplMu    sync.Mutex
	templates map[string]*template.Template // locale/key -> compiled template
}

// TranslationData represents the structure of a translation file
type TranslationData map[string]interface{}

// New creates a manager that loads language files from options.LocalesDir
func New(options Options) (*Manager, error) {
	if mdwstringx.IsBlank(options.LocalesDir) {
		options.LocalesDir = "./locales"
	}

	if _, err := os.Stat(options.LocalesDir); os.IsNotExist(err) {
		return nil, mdwerror.New("locales directory not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.New").
			WithDetail("directory", options.LocalesDir)
	}

	dir := options.LocalesDir
	options.LocalesDir = "."
	return NewFromFS(os.DirFS(dir), options)
}

// NewFromFS creates a manager that loads language files from fsys. When
// options.LocalesDir is set it names a directory inside fsys.
func NewFromFS(fsys fs.FS, options Options) (*Manager, error) {
	if mdwstringx.IsBlank(options.DefaultLocale) {
		return nil, mdwerror.New("default locale cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("i18n.NewFromFS")
	}
	if fsys == nil {
		return nil, mdwerror.New("locale filesystem is nil").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("i18n.NewFromFS")
	}
	if mdwstringx.IsBlank(options.LocalesDir) {
		options.LocalesDir = "."
	}

	manager := &Manager{
		defaultLocale: options.DefaultLocale,
		currentLocale: options.DefaultLocale,
		fallback:      !options.DisableFallback,
		translations:  make(map[string]map[string]interface{}),
		templates:     make(map[string]*template.Template),
	}

	if err := manager.loadAll(fsys, options.LocalesDir, options.Format); err != nil {
		return nil, mdwerror.Wrap(err, "failed to load locales").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("i18n.loadAll").
			WithDetail("directory", options.LocalesDir)
	}

	return manager, nil
}

// loadAll loads every supported language file in dir
func (m *Manager) loadAll(fsys fs.FS, dir string, format Format) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	supported := format.extensions()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if !contains(supported, ext) {
			continue
		}

		locale := strings.TrimSuffix(name, path.Ext(name))
		if mdwstringx.IsBlank(locale) {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", name, err)
		}

		data, err := parse(content, ext)
		if err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", name, err)
		}

		if existing, ok := m.translations[locale]; ok {
			merge(existing, data)
			continue
		}
		m.translations[locale] = data
	}

	if _, exists := m.translations[m.defaultLocale]; !exists {
		return fmt.Errorf("default locale '%s' not found", m.defaultLocale)
	}

	return nil
}

func parse(content []byte, ext string) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// merge copies src into dst, descending into nested tables
func merge(dst, src map[string]interface{}) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]interface{})
		dstMap, dstIsMap := dst[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			merge(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// T translates a key in the current locale with optional template data.
// Missing keys render as "[key]".
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	translation, err := m.TryT(key, data...)
	if err != nil && translation == "" {
		return "[" + key + "]"
	}
	return translation
}

// TryT translates a key in the current locale and reports lookup failures
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	var values map[string]interface{}
	if len(data) > 0 {
		values = data[0]
	}
	return m.TryTIn(m.CurrentLocale(), key, values)
}

// TIn translates a key in the given locale. Missing keys render as "[key]".
func (m *Manager) TIn(locale, key string, data map[string]interface{}) string {
	translation, err := m.TryTIn(locale, key, data)
	if err != nil && translation == "" {
		return "[" + key + "]"
	}
	return translation
}

// TryTIn translates a key in the given locale and reports lookup failures
func (m *Manager) TryTIn(locale, key string, data map[string]interface{}) (string, error) {
	m.mu.RLock()
	translation, resolved := m.getTranslation(key, locale)
	m.mu.RUnlock()

	if translation == "" {
		return "", mdwerror.New("translation not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.TryTIn").
			WithDetail("key", key).
			WithDetail("locale", locale)
	}

	if data == nil {
		return translation, nil
	}

	rendered, err := m.renderTemplate(resolved+"/"+key, translation, data)
	if err != nil {
		return translation, mdwerror.Wrap(err, "template rendering failed").
			WithCode(mdwerror.CodeInternal).
			WithOperation("i18n.renderTemplate").
			WithDetail("key", key)
	}
	return rendered, nil
}

// Plural returns the plural form for count in the current locale
func (m *Manager) Plural(key string, count int, data map[string]interface{}) string {
	return m.PluralIn(m.CurrentLocale(), key, count, data)
}

// PluralIn returns the plural form for count in the given locale. Plural
// forms are stored as arrays; a plain string is used for every count.
func (m *Manager) PluralIn(locale, key string, count int, data map[string]interface{}) string {
	m.mu.RLock()
	raw, resolved := m.getRawTranslation(key, locale)
	m.mu.RUnlock()

	if raw == nil {
		return "[" + key + "]"
	}

	forms := pluralForms(raw)
	index := pluralIndex(count, resolved)
	if index >= len(forms) {
		index = len(forms) - 1
	}
	selected := forms[index]

	if data == nil {
		return selected
	}
	rendered, err := m.renderTemplate(fmt.Sprintf("%s/%s#%d", resolved, key, index), selected, data)
	if err != nil {
		return selected
	}
	return rendered
}

// getTranslation returns the string value for key and the locale it was
// found in. Callers hold m.mu.
func (m *Manager) getTranslation(key, locale string) (string, string) {
	raw, resolved := m.getRawTranslation(key, locale)
	switch v := raw.(type) {
	case nil:
		return "", ""
	case []interface{}:
		if len(v) == 0 {
			return "", ""
		}
		return fmt.Sprintf("%v", v[0]), resolved
	case map[string]interface{}:
		return "", ""
	default:
		return fmt.Sprintf("%v", v), resolved
	}
}

// getRawTranslation looks key up in locale, then in the default locale when
// fallback is enabled. Callers hold m.mu.
func (m *Manager) getRawTranslation(key, locale string) (interface{}, string) {
	if translations, exists := m.translations[locale]; exists {
		if value := lookup(translations, key); value != nil {
			return value, locale
		}
	}

	if m.fallback && locale != m.defaultLocale {
		if value := lookup(m.translations[m.defaultLocale], key); value != nil {
			return value, m.defaultLocale
		}
	}

	return nil, ""
}

// lookup resolves a dot-notation key in nested translation data
func lookup(data map[string]interface{}, key string) interface{} {
	current := data
	keys := strings.Split(key, ".")
	for i, k := range keys {
		value, ok := current[k]
		if !ok {
			return nil
		}
		if i == len(keys)-1 {
			return value
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// renderTemplate renders a translation template with data, caching the
// compiled template under cacheKey
func (m *Manager) renderTemplate(cacheKey, text string, data map[string]interface{}) (string, error) {
	m.tmplMu.Lock()
	tmpl, exists := m.templates[cacheKey]
	if !exists {
		var err error
		tmpl, err = template.New(cacheKey).Parse(text)
		if err != nil {
			m.tmplMu.Unlock()
			return text, fmt.Errorf("template compilation failed: %w", err)
		}
		m.templates[cacheKey] = tmpl
	}
	m.tmplMu.Unlock()

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return text, fmt.Errorf("template execution failed: %w", err)
	}
	return result.String(), nil
}

func pluralForms(value interface{}) []string {
	if arr, ok := value.([]interface{}); ok && len(arr) > 0 {
		forms := make([]string, len(arr))
		for i, v := range arr {
			forms[i] = fmt.Sprintf("%v", v)
		}
		return forms
	}
	return []string{fmt.Sprintf("%v", value)}
}

// pluralIndex selects the plural form index for count in locale
func pluralIndex(count int, locale string) int {
	if count < 0 {
		count = -count
	}
	switch {
	case strings.HasPrefix(locale, "ru"):
		// one, few, many
		mod10, mod100 := count%10, count%100
		switch {
		case mod10 == 1 && mod100 != 11:
			return 0
		case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
			return 1
		default:
			return 2
		}
	case strings.HasPrefix(locale, "fr"):
		if count <= 1 {
			return 0
		}
		return 1
	default:
		if count == 1 {
			return 0
		}
		return 1
	}
}

// SetLocale changes the current locale
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.translations[locale]; !exists {
		return mdwerror.New("locale not available").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("i18n.SetLocale").
			WithDetail("locale", locale)
	}

	m.currentLocale = locale
	return nil
}

// CurrentLocale returns the current active locale
func (m *Manager) CurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// DefaultLocale returns the default locale
func (m *Manager) DefaultLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLocale
}

// AvailableLocales returns a sorted list of all loaded locales
func (m *Manager) AvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}

	sort.Strings(locales)
	return locales
}

// HasLocale checks if a locale is available
func (m *Manager) HasLocale(locale string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.translations[locale]
	return exists
}

// HasTranslation checks if a key resolves in locale, including fallback
func (m *Manager) HasTranslation(locale, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, _ := m.getRawTranslation(key, locale)
	return raw != nil
}

// Keys returns all leaf keys defined for locale, without fallback
func (m *Manager) Keys(locale string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	translations := m.translations[locale]
	if translations == nil {
		return nil
	}

	keys := collectKeys(translations, "")
	sort.Strings(keys)
	return keys
}

// collectKeys recursively collects all keys from nested translation data
func collectKeys(data map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, collectKeys(nested, fullKey)...)
			continue
		}
		keys = append(keys, fullKey)
	}
	return keys
}

// String provides a readable representation of the manager
func (m *Manager) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf("i18n.Manager{defaultLocale: %s, currentLocale: %s, fallback: %t, locales: %d}",
		m.defaultLocale, m.currentLocale, m.fallback, len(m.translations))
}
