// Package slug derives URL-safe identifiers from bilingual content titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches whitespace, underscores, and slashes (replaced with hyphens).
	wordSeparators = regexp.MustCompile(`[\s_/]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Make converts a title to a URL-safe slug. Unlike ASCII-only slug
// helpers, letters outside the Latin script are kept so Bengali titles
// remain readable in URLs.
//
//	"Amar Sonar Bangla"  -> "amar-sonar-bangla"
//	"কবিতা ১"            -> "কবিতা-১"
//	"Rain / Storm"       -> "rain-storm"
func Make(title string) string {
	// Compose combining marks so equal-looking titles produce equal slugs.
	s := norm.NFC.String(strings.TrimSpace(title))

	s = strings.ToLower(s)

	s = wordSeparators.ReplaceAllString(s, "-")

	// Drop punctuation and symbols; keep letters, digits, marks, and hyphens.
	s = strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			return r
		}
		return -1
	}, s)

	s = multipleHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Derive computes a content slug from a title pair: the English title
// wins when present, otherwise the Bengali title is used.
func Derive(titleEnglish, titleBengali string) string {
	if strings.TrimSpace(titleEnglish) != "" {
		return Make(titleEnglish)
	}
	return Make(titleBengali)
}
