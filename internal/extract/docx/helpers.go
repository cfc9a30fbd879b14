package docx

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arbovm/levenshtein"
)

// parseDecimal parses a thousands-comma-separated decimal amount like
// "1,234.56" into its float value.
func parseDecimal(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var (
	montoPattern = regexp.MustCompile(`(?i)\$?\s*([\d,]+(?:\.\d{1,2})?)\s*(MXN|USD|pesos|dólares)?`)
	fechaPattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}`)
)

// fuzzyFieldMatch returns true when candidate is close enough to any of
// target's keywords, using Levenshtein distance over normalized (lowercased,
// trimmed) strings — the approximation of Damerau-Levenshtein documented in
// DESIGN.md, since no transposition-aware distance is available in the
// dependency pack.
func fuzzyFieldMatch(candidate string, keywords []string, maxDistance int) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	for _, kw := range keywords {
		if levenshtein.Distance(c, strings.ToLower(kw)) <= maxDistance {
			return true
		}
	}
	return false
}

func valueAfterColon(text string) (string, bool) {
	idx := strings.Index(text, ":")
	if idx < 0 || idx == len(text)-1 {
		return "", false
	}
	value := strings.TrimSpace(text[idx+1:])
	if value == "" {
		return "", false
	}
	return value, true
}
