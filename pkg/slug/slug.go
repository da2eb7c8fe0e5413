// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode text into short ASCII handles.
//
// Accounts created through a social login get their username from the
// provider's login name, which may contain accents or spaces. Accented Latin
// letters fold to their base letter; anything else becomes a separator.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of characters outside [a-z0-9-].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen     = regexp.MustCompile(`-{2,}`)
)

// From converts s into a lowercase hyphen-separated ASCII slug.
//
// Returns an empty string when s contains nothing transliterable, so callers
// must supply their own fallback.
func From(s string) string {
	// Decompose (é → e + U+0301) and drop the combining marks
	chain := transform.Chain(norm.NFD, transform.RemoveFunc(isMark), norm.NFC)
	result, _, err := transform.String(chain, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
