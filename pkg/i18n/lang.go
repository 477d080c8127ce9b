package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language can be negotiated.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps the header size considered.
const maxAcceptLanguageLength = 4096

// parseAcceptLanguage returns the header's language tags ordered by quality,
// highest first, lower-cased. A malformed header yields nil.
func parseAcceptLanguage(header string) []string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, weights, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}

	langs := make([]string, 0, len(tags))
	for i, tag := range tags {
		if weights[i] <= 0 || tag == language.Und {
			continue
		}
		langs = append(langs, strings.ToLower(tag.String()))
	}
	return langs
}

// Negotiate picks the best language from an Accept-Language header. Tags are
// tried in quality order; each tag matches exactly or by its base language
// (es-ES -> es) before the next tag is considered.
func Negotiate(header string, supported []string, fallback string) string {
	if header == "" || len(supported) == 0 {
		return fallback
	}

	for _, l := range parseAcceptLanguage(header) {
		if slices.Contains(supported, l) {
			return l
		}
		if base, _, ok := strings.Cut(l, "-"); ok && slices.Contains(supported, base) {
			return base
		}
	}
	return fallback
}
