package domain

// RequirementType is the classification assigned to a fused Expediente
// (spec.md §4.10).
type RequirementType int

const (
	RequirementAseguramiento  RequirementType = 100
	RequirementDesbloqueo     RequirementType = 101
	RequirementTransferencia  RequirementType = 102
	RequirementDocumentacion  RequirementType = 103
	RequirementInformacion    RequirementType = 104
)

func (r RequirementType) String() string {
	switch r {
	case RequirementAseguramiento:
		return "Aseguramiento"
	case RequirementDesbloqueo:
		return "Desbloqueo"
	case RequirementTransferencia:
		return "Transferencia"
	case RequirementDocumentacion:
		return "Documentacion"
	case RequirementInformacion:
		return "Informacion"
	default:
		return "Unknown"
	}
}

// AuthorityKind broadly classifies the requesting authority for Article
// validation purposes.
type AuthorityKind int

const (
	AuthorityJudicial AuthorityKind = iota
	AuthorityHacendaria
	AuthorityAdministrativa
	AuthorityOtra
)

func (a AuthorityKind) String() string {
	switch a {
	case AuthorityJudicial:
		return "Judicial"
	case AuthorityHacendaria:
		return "Hacendaria"
	case AuthorityAdministrativa:
		return "Administrativa"
	default:
		return "Otra"
	}
}

// ArticleValidationResult records Article 4 (required fields) and Article 17
// (rejection grounds) checks against a classified Expediente.
type ArticleValidationResult struct {
	MissingRequiredFields []string
	RejectionReasons      []string
}

// Passed reports whether the Expediente satisfies Article 4/17 with no
// missing fields and no rejection grounds.
func (r ArticleValidationResult) Passed() bool {
	return len(r.MissingRequiredFields) == 0 && len(r.RejectionReasons) == 0
}

// ExpedienteClassificationResult is the output of classification (spec.md
// §4.10).
type ExpedienteClassificationResult struct {
	Type                RequirementType
	Authority           AuthorityKind
	RequiredFields      []string
	Validation          ArticleValidationResult
	Semantica           SemanticAnalysis
	ClassificationScore float64
}
