package docx

import (
	"context"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// KeyValueBoldStrategy pairs a bold-formatted label paragraph with the text
// run that follows it (spec.md §4.7). It also recognizes single-line
// "Label: value" paragraphs independent of bold formatting.
type KeyValueBoldStrategy struct{}

func NewKeyValueBoldStrategy() *KeyValueBoldStrategy { return &KeyValueBoldStrategy{} }

func (s *KeyValueBoldStrategy) Type() string { return "KeyValueBoldLabel" }

func (s *KeyValueBoldStrategy) CanHandle(structure DocxStructure) bool {
	return structure.HasBoldLabels || structure.HasKeyValuePairs
}

func (s *KeyValueBoldStrategy) Confidence(structure DocxStructure) float64 {
	switch {
	case structure.HasBoldLabels && structure.HasKeyValuePairs:
		return 0.8
	case structure.HasBoldLabels:
		return 0.65
	case structure.HasKeyValuePairs:
		return 0.5
	default:
		return 0
	}
}

func (s *KeyValueBoldStrategy) Extract(ctx context.Context, doc *ParsedDocument) (domain.ExtractedFields, error) {
	out := domain.NewExtractedFields()
	if err := ctx.Err(); err != nil {
		return out, err
	}

	for i, p := range doc.Paragraphs {
		if value, ok := valueAfterColon(p.Text); ok {
			assignByLabel(&out, p.Text, value)
			continue
		}
		if p.Bold && i+1 < len(doc.Paragraphs) {
			next := doc.Paragraphs[i+1]
			if !next.Bold && next.Text != "" {
				assignByLabel(&out, p.Text, next.Text)
			}
		}
	}
	return out, nil
}

func assignByLabel(out *domain.ExtractedFields, label, value string) {
	switch {
	case matchesKeyword(label, "case_id") && out.CaseID == nil:
		v := value
		out.CaseID = &v
	case matchesKeyword(label, "causa") && out.Causa == nil:
		v := value
		out.Causa = &v
	case matchesKeyword(label, "accion_solicitada") && out.AccionSolicitada == nil:
		v := value
		out.AccionSolicitada = &v
	case fechaPattern.MatchString(value):
		out.Fechas = append(out.Fechas, value)
	case montoPattern.MatchString(value):
		if m, ok := parseMonto(value); ok {
			out.Montos = append(out.Montos, m)
		}
	default:
		if _, exists := out.AdditionalFields[label]; !exists {
			out.AdditionalFields[label] = value
		}
	}
}
