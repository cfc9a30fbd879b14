// Package fusion reconciles up to three per-source candidate sets (XML, PDF,
// DOCX) into one Expediente with per-field decisions and an overall
// NextAction (spec.md §4.9 — "the hardest part").
package fusion

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

var caseFolder = cases.Fold()

// normalize trims, collapses internal whitespace and, for fields tagged
// case-insensitive, case-folds the value (spec.md §4.9.2 step 2). Width
// normalization irons out full/half-width punctuation variants that can
// slip in through OCR (the same x/text transform chain the teacher uses for
// text-shape handling, applied here to Spanish diacritic-preserving folding
// rather than Japanese kana width).
func normalize(s string, caseInsensitive bool) string {
	s = width.Fold.String(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSpace(s)
	if caseInsensitive {
		s = caseFolder.String(s)
	}
	return s
}
