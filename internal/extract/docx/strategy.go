package docx

import (
	"context"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Strategy is one polymorphic DOCX extraction variant (spec.md §4.7):
// { strategy_type, can_handle(structure) → bool, confidence(structure) →
// float, extract(text_or_bytes) → ExtractedFields }.
type Strategy interface {
	Type() string
	CanHandle(s DocxStructure) bool
	Confidence(s DocxStructure) float64
	Extract(ctx context.Context, doc *ParsedDocument) (domain.ExtractedFields, error)
}

// fieldKeywords maps the three core string fields to the keyword stems used
// by the Fuzzy, KeyValue/BoldLabel, and Search strategies to recognize them
// in free text.
var fieldKeywords = map[string][]string{
	"case_id":           {"expediente", "caso", "folio", "oficio"},
	"causa":             {"causa", "motivo"},
	"accion_solicitada": {"acción solicitada", "accion solicitada", "se solicita", "requerimiento"},
	"monto":             {"monto", "importe", "cantidad"},
	"fecha":             {"fecha", "plazo"},
}

func matchesKeyword(lowerText string, field string) bool {
	for _, kw := range fieldKeywords[field] {
		if containsFold(lowerText, kw) {
			return true
		}
	}
	return false
}
