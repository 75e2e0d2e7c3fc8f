// Package search implements the fuzzy Hebrew search and record-ranking
// engine of the Debtster dashboard: diacritic-aware normalization,
// edit-distance similarity, multi-field scored matching with highlight
// generation, and single/multi-term search over an in-memory record set.
package search

import "strings"

// Hebrew combining marks (niqqud and cantillation), U+0591..U+05C7.
const (
	hebrewDiacriticsLo = 0x0591
	hebrewDiacriticsHi = 0x05C7
)

// finalForms maps the five Hebrew final letters to their medial forms. The
// mapping deliberately blurs the medial/final distinction: it trades precision
// for recall so that "שלום" and "שלומ" compare as equivalent. Matching only —
// never applied to text returned for display.
var finalForms = strings.NewReplacer(
	"ך", "כ",
	"ם", "מ",
	"ן", "נ",
	"ף", "פ",
	"ץ", "צ",
)

// Normalize strips Hebrew diacritics, collapses runs of whitespace to a
// single space, trims, and lowercases (lowercasing affects Latin characters
// only). Empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= hebrewDiacriticsLo && r <= hebrewDiacriticsHi {
			continue
		}
		b.WriteRune(r)
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return strings.ToLower(collapsed)
}

// NormalizeFinalForms replaces every Hebrew final letter with its medial
// form, leaving all other characters untouched.
func NormalizeFinalForms(text string) string {
	return finalForms.Replace(text)
}

// normalizeForMatch is the full matching normalization: final forms first,
// then diacritics, whitespace and case.
func normalizeForMatch(text string) string {
	return Normalize(NormalizeFinalForms(text))
}
