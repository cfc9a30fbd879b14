// Package pipeline wires the extraction, OCR-enhancement, fusion and
// classification stages into one Expediente-processing run, the way the
// teacher's internal/pipeline.Pipeline wires detector->recognizer: a Config
// with component sub-configs, a fluent Builder, and a single Run entry
// point (spec.md §4.11, §5).
package pipeline

import (
	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Document bundles the raw, per-source dispatch bytes for one Expediente.
// Any of the three may be nil/empty when that source was never filed.
type Document struct {
	XML  []byte
	PDF  []byte
	DOCX []byte
}

// Result is the outcome of a full pipeline run over one Document.
type Result struct {
	Fusion         domain.FusionResult
	Classification domain.ExpedienteClassificationResult
	Warnings       []string
}
