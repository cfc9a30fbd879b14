package fusion

import (
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// SourceInput bundles one source's extraction output for fusion.
type SourceInput struct {
	Source   domain.SourceKind
	Present  bool // false when the source failed or was never attempted
	Fields   map[string]string
	Metadata domain.ExtractionMetadata
}

// buildCandidate evaluates a field value's pattern/catalog validity the way
// the fusion engine needs for weighted voting (spec.md §4.9.2 step 4),
// independent of whatever validation the originating extractor already did.
func buildCandidate(field, value string, source domain.SourceKind, reliability float64) domain.FieldCandidate {
	c := domain.FieldCandidate{Source: source, Reliability: reliability}
	if value != "" {
		v := value
		c.Value = &v
	}
	if value == "" {
		return c
	}
	switch field {
	case "case_id":
		c.MatchesPattern = domain.CaseIDPattern.MatchString(strings.ToUpper(value))
	case "area_descripcion":
		c.MatchesCatalog = domain.AreaDescripcionCatalog[strings.ToUpper(value)]
		c.MatchesPattern = c.MatchesCatalog
	default:
		c.MatchesPattern = true
	}
	return c
}

// BuildCandidateSet turns the fixed-slot source inputs (indexed per
// domain.SourceOrder, spec.md §4.9.4) into the per-field candidate lists and
// per-source reliability map DecideField/aggregate consume.
func BuildCandidateSet(inputs [3]SourceInput, coeffs domain.FusionCoefficients) (map[string][]domain.FieldCandidate, map[domain.SourceKind]float64) {
	reliability := make(map[domain.SourceKind]float64, 3)
	for _, in := range inputs {
		if !in.Present {
			continue
		}
		reliability[in.Source] = Reliability(in.Source, in.Metadata, coeffs)
	}

	candidatesByField := make(map[string][]domain.FieldCandidate, len(AllFields))
	for _, field := range AllFields {
		var candidates []domain.FieldCandidate
		for _, in := range inputs {
			if !in.Present {
				continue
			}
			value := in.Fields[field]
			candidates = append(candidates, buildCandidate(field, value, in.Source, reliability[in.Source]))
		}
		candidatesByField[field] = candidates
	}
	return candidatesByField, reliability
}
