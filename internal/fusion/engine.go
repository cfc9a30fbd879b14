package fusion

import (
	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/extract/merge"
)

// Engine is the fusion stage of the pipeline: it reconciles the three
// per-source candidate sets into one Expediente plus an overall decision
// (spec.md §4.9). It carries no mutable state beyond its coefficients —
// there is no global configuration singleton (spec.md §9).
type Engine struct {
	Coefficients domain.FusionCoefficients
}

// NewEngine builds a fusion Engine with the given coefficients.
func NewEngine(coeffs domain.FusionCoefficients) *Engine {
	return &Engine{Coefficients: coeffs}
}

// DocumentInput bundles everything one source contributed to a single
// pipeline run.
type DocumentInput struct {
	Source   domain.SourceKind
	Present  bool
	Fields   domain.ExtractedFields
	XML      *domain.Expediente // non-nil only for the XML source
	Metadata domain.ExtractionMetadata
}

// Fuse runs the complete fusion algorithm (spec.md §4.9.1-§4.9.4) over the
// fixed-slot source inputs and returns the FusionResult.
func (e *Engine) Fuse(inputs [3]DocumentInput) domain.FusionResult {
	var slotInputs [3]SourceInput
	var extractedByIdx [3]domain.ExtractedFields
	for i, in := range inputs {
		slotInputs[i] = SourceInput{Source: in.Source, Present: in.Present, Metadata: in.Metadata}
		if !in.Present {
			continue
		}
		if in.XML != nil {
			slotInputs[i].Fields = ExpedienteToFieldMap(in.XML)
		} else {
			slotInputs[i].Fields = ExtractedFieldsToFieldMap(in.Fields)
		}
		extractedByIdx[i] = in.Fields
	}

	candidatesByField, reliability := BuildCandidateSet(slotInputs, e.Coefficients)

	fieldResults := make(map[string]domain.FieldFusionResult, len(AllFields))
	for _, field := range AllFields {
		fieldResults[field] = DecideField(field, candidatesByField[field], e.Coefficients)
	}

	requiredScore, optionalScore, overall, next, missingRequired, conflicting :=
		aggregate(fieldResults, RequiredFields, OptionalFields, e.Coefficients)

	expediente := &domain.Expediente{}
	for field, result := range fieldResults {
		applyFieldResult(expediente, field, result)
	}

	var presentExtracted []domain.ExtractedFields
	for i, in := range inputs {
		if in.Present {
			presentExtracted = append(presentExtracted, extractedByIdx[i])
		}
	}
	merged := merge.MultiSource(presentExtracted...)
	expediente.Montos = merged.Fields.Montos
	expediente.Fechas = merged.Fields.Fechas
	expediente.AdditionalFields = merged.Fields.AdditionalFields

	return domain.FusionResult{
		Expediente:            expediente,
		OverallConfidence:     overall,
		RequiredFieldsScore:   requiredScore,
		OptionalFieldsScore:   optionalScore,
		ConflictingFields:     conflicting,
		MissingRequiredFields: missingRequired,
		NextAction:            next,
		FieldResults:          fieldResults,
		SourceReliability:     reliability,
	}
}
