package fusion

import (
	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// aggregate computes required/optional sub-scores, overall confidence and
// the terminal NextAction from the per-field results (spec.md §4.9.3).
func aggregate(
	results map[string]domain.FieldFusionResult,
	required, optional []string,
	coeffs domain.FusionCoefficients,
) (requiredScore, optionalScore, overall float64, next domain.NextAction, missingRequired, conflicting []string) {
	requiredScore = meanConfidence(results, required)
	optionalScore = meanConfidence(results, optional)
	overall = coeffs.RequiredFieldsWeight*requiredScore + coeffs.OptionalFieldsWeight*optionalScore

	for _, f := range required {
		r, ok := results[f]
		if !ok || r.Decision == domain.AllSourcesNull || r.SelectedValue == nil {
			missingRequired = append(missingRequired, f)
		}
	}

	hasRequiredConflict := false
	for _, f := range required {
		if r, ok := results[f]; ok && r.Decision == domain.Conflict {
			conflicting = append(conflicting, f)
			hasRequiredConflict = true
		}
	}
	for _, f := range optional {
		if r, ok := results[f]; ok && r.Decision == domain.Conflict {
			conflicting = append(conflicting, f)
		}
	}

	switch {
	case overall >= coeffs.AutoProcessThreshold && len(missingRequired) == 0 && !hasRequiredConflict:
		next = domain.AutoProcess
	case overall >= coeffs.ManualReviewThreshold && len(missingRequired) == 0:
		next = domain.ReviewRecommended
	default:
		next = domain.ManualReviewRequired
	}
	return
}

func meanConfidence(results map[string]domain.FieldFusionResult, fields []string) float64 {
	if len(fields) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range fields {
		if r, ok := results[f]; ok {
			sum += r.Confidence
		}
	}
	return sum / float64(len(fields))
}
