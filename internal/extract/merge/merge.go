// Package merge implements the Field Merge Strategy of spec.md §4.8:
// combining multiple ExtractedFields snapshots (e.g. several DOCX strategy
// outputs, or XML+OCR "complement" sets) into one, recording a FieldConflict
// whenever ≥2 distinct non-null values compete for the same field.
package merge

import (
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Result is the outcome of merging multiple ExtractedFields.
type Result struct {
	Fields    domain.ExtractedFields
	Conflicts []domain.FieldConflict
}

// MultiSource merges inputs in order, taking the first non-null value for
// each of the three core string fields and recording a conflict (but still
// emitting a value) whenever later inputs disagree.
func MultiSource(inputs ...domain.ExtractedFields) Result {
	return mergeWith(inputs, "first non-null")
}

// PrimarySecondary merges inputs the same way MultiSource does, except the
// first (primary) input always wins ties — matching spec.md §4.8's
// "primary source preference" resolution strategy.
func PrimarySecondary(primary domain.ExtractedFields, secondary ...domain.ExtractedFields) Result {
	return mergeWith(append([]domain.ExtractedFields{primary}, secondary...), "primary source preference")
}

func mergeWith(inputs []domain.ExtractedFields, strategy string) Result {
	out := domain.NewExtractedFields()
	var conflicts []domain.FieldConflict

	out.CaseID, conflicts = mergeStringField("case_id", inputs, func(f domain.ExtractedFields) *string { return f.CaseID }, strategy, conflicts)
	out.Causa, conflicts = mergeStringField("causa", inputs, func(f domain.ExtractedFields) *string { return f.Causa }, strategy, conflicts)
	out.AccionSolicitada, conflicts = mergeStringField("accion_solicitada", inputs, func(f domain.ExtractedFields) *string { return f.AccionSolicitada }, strategy, conflicts)

	out.Fechas = mergeFechas(inputs)
	out.Montos = mergeMontos(inputs)
	out.AdditionalFields = mergeAdditionalFields(inputs)

	return Result{Fields: out, Conflicts: conflicts}
}

func mergeStringField(
	field string,
	inputs []domain.ExtractedFields,
	get func(domain.ExtractedFields) *string,
	strategy string,
	conflicts []domain.FieldConflict,
) (*string, []domain.FieldConflict) {
	var distinct []string
	var first *string

	for _, in := range inputs {
		v := get(in)
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		if first == nil {
			first = v
		}
		if !containsString(distinct, *v) {
			distinct = append(distinct, *v)
		}
	}

	if len(distinct) >= 2 {
		resolved := ""
		if first != nil {
			resolved = *first
		}
		if strategy == "primary source preference" {
			// The loop above already preserved input order, so `first` is the
			// primary input's value when present.
			resolved = *first
		}
		conflicts = append(conflicts, domain.FieldConflict{
			Field:              field,
			ConflictingValues:  distinct,
			ResolvedValue:      resolved,
			ResolutionStrategy: strategy,
		})
	}

	return first, conflicts
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func mergeFechas(inputs []domain.ExtractedFields) []string {
	seen := make(map[string]bool)
	var out []string
	for _, in := range inputs {
		for _, f := range in.Fechas {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func mergeMontos(inputs []domain.ExtractedFields) []domain.Monto {
	seen := make(map[string]bool)
	var out []domain.Monto
	for _, in := range inputs {
		for _, m := range in.Montos {
			key := m.Key()
			if !seen[key] {
				seen[key] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func mergeAdditionalFields(inputs []domain.ExtractedFields) map[string]string {
	out := make(map[string]string)
	for _, in := range inputs {
		for k, v := range in.AdditionalFields {
			if _, exists := out[k]; !exists {
				out[k] = v
			}
		}
	}
	return out
}
