package fusion

// RequiredFields lists the Expediente-level fields whose fusion outcome
// feeds required_score (spec.md §4.9.3). Article 4's required-field list
// (per RequirementType) further narrows this for classification purposes;
// this is the fusion-stage baseline, resolved here as an Open Question
// (spec.md §9(b) only specifies the merge policy, not this list) and
// recorded in DESIGN.md.
var RequiredFields = []string{
	"case_id",
	"area_descripcion",
	"anio",
	"plazo_dias",
	"autoridad_solicitante",
}

// OptionalFields lists the remaining Expediente-level fields that feed
// optional_score.
var OptionalFields = []string{
	"oficio_id",
	"folio",
	"area_codigo",
	"fecha_publicacion",
	"referencia_1",
	"referencia_2",
	"referencia_3",
	"causa",
	"accion_solicitada",
	"tiene_aseguramiento",
}

// AllFields is the union, in the fixed order the engine reports per-field
// results.
var AllFields = append(append([]string{}, RequiredFields...), OptionalFields...)
