package classify

import (
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// requiredFieldsByType is Article 4's per-RequirementType required-field
// table. Names refer to Expediente attributes, checked directly rather than
// against fusion's per-field candidates, since Article validation runs after
// fusion on the settled Expediente.
var requiredFieldsByType = map[domain.RequirementType][]string{
	domain.RequirementAseguramiento: {"case_id", "area_descripcion", "causa", "accion_solicitada", "montos"},
	domain.RequirementDesbloqueo:    {"case_id", "causa", "accion_solicitada", "referencias"},
	domain.RequirementTransferencia: {"case_id", "accion_solicitada", "montos"},
	domain.RequirementDocumentacion: {"case_id", "accion_solicitada", "additional_fields"},
	domain.RequirementInformacion:   {"case_id", "accion_solicitada"},
}

// RequiredFieldsFor returns Article 4's required-field list for a
// RequirementType.
func RequiredFieldsFor(t domain.RequirementType) []string {
	return requiredFieldsByType[t]
}

func fieldPresent(e *domain.Expediente, field string) bool {
	switch field {
	case "case_id":
		return e.CaseID != ""
	case "area_descripcion":
		return e.AreaDescripcion != ""
	case "causa":
		return e.Causa != ""
	case "accion_solicitada":
		return e.AccionSolicitada != ""
	case "montos":
		return len(e.Montos) > 0
	case "referencias":
		for _, r := range e.Referencias {
			if strings.TrimSpace(r) != "" {
				return true
			}
		}
		return false
	case "additional_fields":
		return len(e.AdditionalFields) > 0
	default:
		return false
	}
}

// validateArticles runs Article 4 (required fields for the assigned type)
// and Article 17 (independent rejection grounds) against the fused
// Expediente.
func validateArticles(e *domain.Expediente, t domain.RequirementType) domain.ArticleValidationResult {
	var result domain.ArticleValidationResult

	for _, field := range requiredFieldsByType[t] {
		if !fieldPresent(e, field) {
			result.MissingRequiredFields = append(result.MissingRequiredFields, field)
		}
	}

	if e.CaseID != "" && !domain.CaseIDPattern.MatchString(strings.ToUpper(e.CaseID)) {
		result.RejectionReasons = append(result.RejectionReasons, "formato de expediente invalido")
	}
	if e.AreaDescripcion != "" && !domain.AreaDescripcionCatalog[strings.ToUpper(e.AreaDescripcion)] {
		result.RejectionReasons = append(result.RejectionReasons, "area no reconocida")
	}
	if e.AutoridadSolicitante == "" {
		result.RejectionReasons = append(result.RejectionReasons, "autoridad no identificada")
	}
	if e.PlazoDias < 0 {
		result.RejectionReasons = append(result.RejectionReasons, "plazo invalido")
	}

	return result
}
