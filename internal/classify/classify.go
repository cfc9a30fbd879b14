package classify

import (
	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// ruleScore is one RequirementType's rubric evaluation: how many of its
// sub-conditions matched out of how many were checked.
type ruleScore struct {
	requirement domain.RequirementType
	matched     int
	total       int
}

func (s ruleScore) confidence() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.matched) / float64(s.total)
}

// requirementOrder fixes the tie-break order when two types score equally,
// matching the narrative priority of spec.md §4.10's rubric (asset freeze
// outranks a bare information request).
var requirementOrder = []domain.RequirementType{
	domain.RequirementAseguramiento,
	domain.RequirementDesbloqueo,
	domain.RequirementTransferencia,
	domain.RequirementDocumentacion,
	domain.RequirementInformacion,
}

func referencesPriorCase(e *domain.Expediente) bool {
	for _, r := range e.Referencias {
		if r != "" {
			return true
		}
	}
	return false
}

func scoreRules(e *domain.Expediente, text string) map[domain.RequirementType]ruleScore {
	scores := make(map[domain.RequirementType]ruleScore, len(requirementOrder))

	aseguramiento := ruleScore{requirement: domain.RequirementAseguramiento, total: 2}
	if e.TieneAseguramiento {
		aseguramiento.matched++
	}
	if len(e.Montos) > 0 {
		aseguramiento.matched++
	}
	scores[domain.RequirementAseguramiento] = aseguramiento

	desbloqueo := ruleScore{requirement: domain.RequirementDesbloqueo, total: 2}
	if containsAny(text, "desbloqueo") {
		desbloqueo.matched++
	}
	if referencesPriorCase(e) {
		desbloqueo.matched++
	}
	scores[domain.RequirementDesbloqueo] = desbloqueo

	transferencia := ruleScore{requirement: domain.RequirementTransferencia, total: 3}
	if containsAny(text, "transferencia") {
		transferencia.matched++
	}
	if containsAny(text, "cuenta") {
		transferencia.matched++
	}
	if len(e.Montos) > 0 {
		transferencia.matched++
	}
	scores[domain.RequirementTransferencia] = transferencia

	documentacion := ruleScore{requirement: domain.RequirementDocumentacion, total: 2}
	if containsAny(text, "documentacion") {
		documentacion.matched++
	}
	if len(e.AdditionalFields) > 0 {
		documentacion.matched++
	}
	scores[domain.RequirementDocumentacion] = documentacion

	noOtherMatch := aseguramiento.matched == 0 && desbloqueo.matched == 0 &&
		transferencia.matched == 0 && documentacion.matched == 0

	informacion := ruleScore{requirement: domain.RequirementInformacion, total: 2}
	if containsAny(text, "informacion") {
		informacion.matched++
	}
	if noOtherMatch {
		informacion.matched++
	}
	scores[domain.RequirementInformacion] = informacion

	return scores
}

// Classify assigns a RequirementType to a fused Expediente using the
// keyword + field-presence rubric, runs Article 4/17 validation, and
// evaluates the five-situation semantic analysis (spec.md §4.10).
func Classify(e *domain.Expediente) domain.ExpedienteClassificationResult {
	text := textFields(e.Causa, e.AccionSolicitada, e.AdditionalFields)
	scores := scoreRules(e, text)

	winner := scores[requirementOrder[0]]
	for _, t := range requirementOrder[1:] {
		s := scores[t]
		if s.confidence() > winner.confidence() {
			winner = s
		}
	}

	authority := authorityFromText(e.AutoridadSolicitante)
	validation := validateArticles(e, winner.requirement)

	semantica := domain.SemanticAnalysis{
		TieneAseguramiento: scores[domain.RequirementAseguramiento].matched > 0,
		TieneDesbloqueo:    scores[domain.RequirementDesbloqueo].matched > 0,
		TieneTransferencia: scores[domain.RequirementTransferencia].matched > 0,
		TieneDocumentacion: scores[domain.RequirementDocumentacion].matched > 0,
		TieneInformacion:   scores[domain.RequirementInformacion].matched > 0,
	}

	return domain.ExpedienteClassificationResult{
		Type:                winner.requirement,
		Authority:           authority,
		RequiredFields:      RequiredFieldsFor(winner.requirement),
		Validation:          validation,
		Semantica:           semantica,
		ClassificationScore: winner.confidence(),
	}
}
