package ocr

import (
	"strings"

	"github.com/arbovm/levenshtein"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Comparator decides whether an enhanced OCR result should replace the
// baseline one (spec.md §4.5 step 7). It returns true when the enhanced
// result wins.
type Comparator interface {
	Prefer(baseline, enhanced domain.OcrResult) bool
}

// EvaluationComparator scores by Levenshtein distance to a known reference
// text, used only during offline evaluation against ground truth (spec.md
// §4.5, §6 "ground-truth & token file"). The baseline never regresses: the
// lower distance wins, ties go to baseline. A baseline distance ≤ 200 is
// documented in spec.md §4.5 step 8 as a cheap proxy for "near-pristine" —
// under this metric the never-regress rule already holds unconditionally,
// since picking the strictly lower distance can never make the result
// worse than baseline.
type EvaluationComparator struct {
	Reference string
}

// Prefer implements Comparator.
func (c EvaluationComparator) Prefer(baseline, enhanced domain.OcrResult) bool {
	baselineDist := levenshtein.Distance(c.Reference, baseline.Text)
	enhancedDist := levenshtein.Distance(c.Reference, enhanced.Text)
	return enhancedDist < baselineDist
}

// ProductionComparator scores by confidence-weighted token count, the
// metric used outside of evaluation where no ground truth exists (spec.md
// §4.5 step 7). Ties go to baseline.
type ProductionComparator struct{}

// Prefer implements Comparator.
func (c ProductionComparator) Prefer(baseline, enhanced domain.OcrResult) bool {
	baselineScore := baseline.MeanConfidence * float64(len(strings.Fields(baseline.Text)))
	enhancedScore := enhanced.MeanConfidence * float64(len(strings.Fields(enhanced.Text)))
	return enhancedScore > baselineScore
}
