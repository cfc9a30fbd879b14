package docx

import (
	"context"
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// SearchStrategy resolves backward cross-references (spec.md §4.7): on
// finding a phrase like "arriba mencionada" attached to a field, it scans
// previous paragraphs for a recognizable value of that field and copies it
// forward into the current context.
type SearchStrategy struct{}

func NewSearchStrategy() *SearchStrategy { return &SearchStrategy{} }

func (s *SearchStrategy) Type() string { return "Search" }

func (s *SearchStrategy) CanHandle(structure DocxStructure) bool {
	return structure.HasCrossReferences
}

func (s *SearchStrategy) Confidence(structure DocxStructure) float64 {
	if structure.HasCrossReferences {
		return 0.55
	}
	return 0
}

func (s *SearchStrategy) Extract(ctx context.Context, doc *ParsedDocument) (domain.ExtractedFields, error) {
	out := domain.NewExtractedFields()
	if err := ctx.Err(); err != nil {
		return out, err
	}

	for i, p := range doc.Paragraphs {
		lower := strings.ToLower(p.Text)
		if !hasCrossReferencePhrase(lower) {
			continue
		}
		field := referencedField(lower)
		if field == "" {
			continue
		}
		value := searchBackward(doc.Paragraphs[:i], field)
		if value == "" {
			continue
		}
		assignValue(&out, field, value)
	}
	return out, nil
}

func hasCrossReferencePhrase(lower string) bool {
	for _, phrase := range crossReferencePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func referencedField(lower string) string {
	switch {
	case matchesKeyword(lower, "case_id"):
		return "case_id"
	case matchesKeyword(lower, "causa"):
		return "causa"
	case matchesKeyword(lower, "accion_solicitada"):
		return "accion_solicitada"
	default:
		return ""
	}
}

func searchBackward(prior []Paragraph, field string) string {
	for i := len(prior) - 1; i >= 0; i-- {
		text := prior[i].Text
		if value, ok := valueAfterColon(text); ok && matchesKeyword(text, field) {
			return value
		}
		if matchesKeyword(text, field) {
			return strings.TrimSpace(text)
		}
	}
	return ""
}
