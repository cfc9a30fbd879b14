package docx

import (
	"context"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// ComplementStrategy wraps a delegate strategy: it handles whatever the
// delegate handles and extracts exactly what the delegate extracts (spec.md
// §4.7). Confidence is a constant, high value whenever the delegate applies,
// because complementing is purely additive and cannot introduce a
// conflicting value. The orchestrator does not register it; its Complement
// mode runs the best-scoring strategy and fills gaps with complementFields.
type ComplementStrategy struct {
	delegate Strategy
}

func NewComplementStrategy(delegate Strategy) *ComplementStrategy {
	return &ComplementStrategy{delegate: delegate}
}

func (s *ComplementStrategy) Type() string { return "Complement" }

func (s *ComplementStrategy) CanHandle(structure DocxStructure) bool {
	return s.delegate.CanHandle(structure)
}

func (s *ComplementStrategy) Confidence(structure DocxStructure) float64 {
	if s.delegate.Confidence(structure) <= 0 {
		return 0
	}
	return 0.95
}

func (s *ComplementStrategy) Extract(ctx context.Context, doc *ParsedDocument) (domain.ExtractedFields, error) {
	return s.delegate.Extract(ctx, doc)
}

// complementFields fills only the gaps of existing using candidate, never
// overwriting a field existing already carries a value for.
func complementFields(existing, candidate domain.ExtractedFields) domain.ExtractedFields {
	out := existing
	if out.AdditionalFields == nil {
		out.AdditionalFields = make(map[string]string)
	}

	if out.CaseID == nil && candidate.CaseID != nil {
		v := *candidate.CaseID
		out.CaseID = &v
	}
	if out.Causa == nil && candidate.Causa != nil {
		v := *candidate.Causa
		out.Causa = &v
	}
	if out.AccionSolicitada == nil && candidate.AccionSolicitada != nil {
		v := *candidate.AccionSolicitada
		out.AccionSolicitada = &v
	}

	if len(out.Fechas) == 0 {
		out.Fechas = append(out.Fechas, candidate.Fechas...)
	}
	if len(out.Montos) == 0 {
		out.Montos = append(out.Montos, candidate.Montos...)
	}
	for k, v := range candidate.AdditionalFields {
		if _, exists := out.AdditionalFields[k]; !exists {
			out.AdditionalFields[k] = v
		}
	}
	return out
}
