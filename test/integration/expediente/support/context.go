// Package support holds the godog step definitions for the end-to-end
// dispatch-processing scenarios, grouped by the pipeline stage they drive
// directly: fusion decisions, the OCR enhancement loop, and DOCX complement
// mode.
package support

import (
	"fmt"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// TestContext carries state across the steps of a single scenario. A fresh
// one is created per scenario by InitializeScenario so scenarios never leak
// state into each other.
type TestContext struct {
	// Fusion scenarios.
	xmlExpediente *domain.Expediente
	pdfCaseID     *string
	docxCaseID    *string
	fusionResult  domain.FusionResult

	areaCandidates []domain.FieldCandidate
	fieldDecision  domain.FieldFusionResult

	// OCR loop scenarios.
	baselineResult domain.OcrResult
	enhancedResult domain.OcrResult
	reference      string
	preferEnhanced bool

	// DOCX complement scenarios.
	existingFields domain.ExtractedFields
	docxBytes      []byte
	complementOut  domain.ExtractedFields
}

// NewTestContext builds a fresh scenario context.
func NewTestContext() *TestContext {
	return &TestContext{}
}

func strPtr(s string) *string { return &s }

func requireTrue(cond bool, format string, args ...any) error {
	if !cond {
		return fmt.Errorf(format, args...)
	}
	return nil
}
