package docx

import (
	"context"
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// FuzzyStrategy does keyword/regex matching over the document's plaintext,
// used when no structural signal (tables, bold labels) is present (spec.md
// §4.7).
type FuzzyStrategy struct{}

func NewFuzzyStrategy() *FuzzyStrategy { return &FuzzyStrategy{} }

func (s *FuzzyStrategy) Type() string { return "Fuzzy" }

func (s *FuzzyStrategy) CanHandle(structure DocxStructure) bool {
	return true // the strategy of last resort; always applicable.
}

func (s *FuzzyStrategy) Confidence(structure DocxStructure) float64 {
	if !structure.HasTables && !structure.HasBoldLabels && !structure.HasKeyValuePairs {
		return 0.5
	}
	return 0.2
}

func (s *FuzzyStrategy) Extract(ctx context.Context, doc *ParsedDocument) (domain.ExtractedFields, error) {
	out := domain.NewExtractedFields()
	if err := ctx.Err(); err != nil {
		return out, err
	}

	for _, p := range doc.Paragraphs {
		lower := strings.ToLower(p.Text)
		if out.CaseID == nil && matchesKeyword(lower, "case_id") {
			if value, ok := valueAfterColon(p.Text); ok {
				out.CaseID = &value
			}
		}
		if out.Causa == nil && matchesKeyword(lower, "causa") {
			if value, ok := valueAfterColon(p.Text); ok {
				out.Causa = &value
			} else {
				v := strings.TrimSpace(p.Text)
				out.Causa = &v
			}
		}
		if out.AccionSolicitada == nil && matchesKeyword(lower, "accion_solicitada") {
			v := strings.TrimSpace(p.Text)
			out.AccionSolicitada = &v
		}
		for _, match := range fechaPattern.FindAllString(p.Text, -1) {
			out.Fechas = append(out.Fechas, match)
		}
		for _, match := range montoPattern.FindAllString(p.Text, -1) {
			if m, ok := parseMonto(match); ok {
				out.Montos = append(out.Montos, m)
			}
		}
	}
	return out, nil
}
