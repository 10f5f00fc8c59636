// File: locale.go
// Title: Locale Detection
// Description: Selects the best available locale for an HTTP
//              Accept-Language header or a user-supplied locale tag.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-10
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation of locale detection
// - 2026-10-10 v0.2.0: Reduced to detection and normalisation

package i18n

import (
	"sort"
	"strconv"
	"strings"

	"github.com/msto63/lexan/foundation/utils/stringx"
)

// LocalePreference represents a locale preference with quality score
type LocalePreference struct {
	Locale  string  // Locale code (e.g., "en", "en-US", "ru-RU")
	Quality float64 // Quality score (0.0 - 1.0)
}

// DetectLocale returns the best available locale for an Accept-Language
// header, or the default locale when nothing matches
func (m *Manager) DetectLocale(acceptLanguage string) string {
	if stringx.IsBlank(acceptLanguage) {
		return m.DefaultLocale()
	}

	preferences := parseAcceptLanguage(acceptLanguage)
	if match := findBestLocaleMatch(preferences, m.AvailableLocales()); match != "" {
		return match
	}
	return m.DefaultLocale()
}

// parseAcceptLanguage parses an Accept-Language header into preferences
// sorted by quality, highest first
func parseAcceptLanguage(acceptLang string) []LocalePreference {
	var preferences []LocalePreference

	for _, part := range strings.Split(acceptLang, ",") {
		part = strings.TrimSpace(part)
		if stringx.IsBlank(part) {
			continue
		}

		// "en-US;q=0.9", "en;q=0.8" or "ru"
		locale, quality := part, 1.0
		if idx := strings.Index(part, ";"); idx >= 0 {
			locale = strings.TrimSpace(part[:idx])
			for _, param := range strings.Split(part[idx+1:], ";") {
				param = strings.TrimSpace(param)
				if strings.HasPrefix(param, "q=") {
					if q, err := strconv.ParseFloat(strings.TrimPrefix(param, "q="), 64); err == nil {
						quality = q
					}
					break
				}
			}
		}

		if locale != "" && locale != "*" && quality > 0 {
			preferences = append(preferences, LocalePreference{Locale: locale, Quality: quality})
		}
	}

	sort.SliceStable(preferences, func(i, j int) bool {
		return preferences[i].Quality > preferences[j].Quality
	})
	return preferences
}

// findBestLocaleMatch tries exact, base-language and regional matches for
// each preference in order
func findBestLocaleMatch(preferences []LocalePreference, available []string) string {
	for _, pref := range preferences {
		locale := NormalizeLocale(pref.Locale)
		if locale == "" {
			continue
		}

		for _, candidate := range available {
			if strings.EqualFold(candidate, locale) {
				return candidate
			}
		}

		base := strings.Split(locale, "-")[0]
		for _, candidate := range available {
			if strings.EqualFold(candidate, base) {
				return candidate
			}
		}
		for _, candidate := range available {
			if strings.HasPrefix(strings.ToLower(candidate), base+"-") {
				return candidate
			}
		}
	}
	return ""
}

// NormalizeLocale normalizes a locale tag to "ll" or "ll-CC". Invalid tags
// yield an empty string.
func NormalizeLocale(locale string) string {
	if stringx.IsBlank(locale) {
		return ""
	}

	locale = strings.ToLower(strings.TrimSpace(locale))
	locale = strings.ReplaceAll(locale, "_", "-")

	parts := strings.Split(locale, "-")
	language := parts[0]
	if len(language) != 2 && len(language) != 3 {
		return ""
	}

	if len(parts) > 1 && len(parts[1]) == 2 {
		return language + "-" + strings.ToUpper(parts[1])
	}
	return language
}
