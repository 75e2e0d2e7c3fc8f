package search

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns an edit-distance similarity in [0,1]: 1 for identical
// strings, 0 when exactly one side is empty, otherwise
// 1 - distance/max(len(a), len(b)) with unit-cost insert/delete/substitute.
//
// Distance and lengths are measured in Unicode code points. For the Hebrew
// and Latin text this engine handles, code points and UTF-16 units coincide,
// so results match the dashboard's existing scoring.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	return 1 - float64(dist)/float64(maxLen)
}
