package fusion

import (
	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// caseInsensitiveFields lists the fields whose comparison in step 2
// ("AllAgree") case-folds before comparing — area/causa type free text that
// authorities and OCR render with inconsistent capitalization. Identifiers
// like case id and RFC are compared case-sensitively since case carries
// meaning there.
var caseInsensitiveFields = map[string]bool{
	"area_descripcion":  true,
	"causa":              true,
	"accion_solicitada": true,
}

// DecideField runs the full fusion decision algorithm of spec.md §4.9.2 over
// one field's per-source candidates, already ordered per domain.SourceOrder.
func DecideField(field string, candidates []domain.FieldCandidate, coeffs domain.FusionCoefficients) domain.FieldFusionResult {
	result := domain.FieldFusionResult{Field: field}
	caseInsensitive := caseInsensitiveFields[field]

	type nonNull struct {
		candidate domain.FieldCandidate
		raw       string
		norm      string
	}
	var present []nonNull
	for _, c := range candidates {
		if c.Value == nil {
			continue
		}
		raw := *c.Value
		if normalize(raw, false) == "" {
			continue
		}
		present = append(present, nonNull{candidate: c, raw: raw, norm: normalize(raw, caseInsensitive)})
	}

	// Step 1: all null.
	if len(present) == 0 {
		result.Decision = domain.AllSourcesNull
		result.Confidence = 0
		return result
	}

	for _, p := range present {
		result.ContributingSources = append(result.ContributingSources, p.candidate.Source)
	}

	// Step 2: all agree after normalization.
	allAgree := true
	for _, p := range present[1:] {
		if p.norm != present[0].norm {
			allAgree = false
			break
		}
	}
	if allAgree {
		v := present[0].raw
		result.SelectedValue = &v
		result.Decision = domain.AllAgree
		result.Confidence = 1.0
		return result
	}

	// Step 3: fuzzy agreement — highest pairwise similarity across all
	// distinct-valued non-null candidates.
	maxSim := -1.0
	var clusterA, clusterB nonNull
	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			sim := similarity(present[i].norm, present[j].norm)
			if sim > maxSim {
				maxSim = sim
				clusterA, clusterB = present[i], present[j]
			}
		}
	}
	if maxSim >= coeffs.FuzzyMatchThreshold {
		winnerCandidate := clusterA
		if reliabilityOf(clusterB.candidate) > reliabilityOf(clusterA.candidate) {
			winnerCandidate = clusterB
		}
		v := winnerCandidate.raw
		result.SelectedValue = &v
		result.Decision = domain.FuzzyAgreement
		result.Confidence = maxSim * coeffs.FuzzyMatchConfidencePenalty
		result.FuzzySimilarity = &maxSim
		return result
	}

	// Step 4: weighted voting.
	weights := make([]float64, len(present))
	totalWeight := 0.0
	bestIdx := 0
	for i, p := range present {
		w := reliabilityOf(p.candidate)
		if p.candidate.MatchesPattern {
			w *= coeffs.PatternMatchBoost
		}
		if p.candidate.MatchesCatalog {
			w *= coeffs.CatalogValidationBoost
		}
		weights[i] = w
		totalWeight += w
		if w > weights[bestIdx] {
			bestIdx = i
		}
	}

	// Step 5: near-tie conflict check on the top two weights.
	secondBest := -1
	for i := range present {
		if i == bestIdx {
			continue
		}
		if secondBest == -1 || weights[i] > weights[secondBest] {
			secondBest = i
		}
	}
	if secondBest != -1 {
		margin := weights[bestIdx] - weights[secondBest]
		bothPass := present[bestIdx].candidate.MatchesPattern && present[bestIdx].candidate.MatchesCatalog &&
			present[secondBest].candidate.MatchesPattern && present[secondBest].candidate.MatchesCatalog
		if margin < coeffs.ConflictMargin && bothPass {
			result.Decision = domain.Conflict
			result.RequiresManualReview = true
			for _, p := range present {
				result.ConflictingValues = append(result.ConflictingValues, domain.ConflictingValue{
					Source: p.candidate.Source,
					Value:  p.raw,
				})
			}
			return result
		}
	}

	confidence := 0.0
	if totalWeight > 0 {
		confidence = weights[bestIdx] / totalWeight
	}
	v := present[bestIdx].raw
	result.SelectedValue = &v
	result.Decision = domain.WeightedVoting
	result.Confidence = confidence
	winner := present[bestIdx].candidate.Source
	result.WinningSource = &winner

	// Step 6: best-effort demotion on low confidence.
	if confidence < coeffs.BestEffortConfidenceFloor {
		result.Decision = domain.BestEffort
		result.SuggestReview = true
	}
	return result
}

func reliabilityOf(c domain.FieldCandidate) float64 {
	return c.Reliability
}
