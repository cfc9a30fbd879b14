package fusion

import (
	"github.com/arbovm/levenshtein"
)

// similarity returns a [0,1] closeness score between two already-normalized
// strings, the nearest approximation to "Damerau-Levenshtein" available in
// the dependency pack (plain Levenshtein; the difference only shows up on
// adjacent-transposition typos, documented in DESIGN.md). Two empty strings
// are considered identical.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.Distance(a, b)
	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		score = 0
	}
	return score
}
