package docx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyStrategy_AlwaysApplicable(t *testing.T) {
	s := NewFuzzyStrategy()
	assert.True(t, s.CanHandle(DocxStructure{}))
	assert.True(t, s.CanHandle(DocxStructure{HasTables: true}))
}

func TestFuzzyStrategy_ConfidenceDropsWithStructuralSignal(t *testing.T) {
	s := NewFuzzyStrategy()
	assert.Equal(t, 0.5, s.Confidence(DocxStructure{}))
	assert.Equal(t, 0.2, s.Confidence(DocxStructure{HasTables: true}))
}

func TestFuzzyStrategy_Extract(t *testing.T) {
	doc := &ParsedDocument{
		Paragraphs: []Paragraph{
			{Text: "Expediente: EXP-2024-009"},
			{Text: "Se solicita bloqueo de cuentas relacionadas"},
			{Text: "Monto involucrado $3,200.00 MXN con fecha 2024-05-01"},
		},
	}
	s := NewFuzzyStrategy()
	fields, err := s.Extract(context.Background(), doc)
	require.NoError(t, err)

	require.NotNil(t, fields.CaseID)
	assert.Equal(t, "EXP-2024-009", *fields.CaseID)
	require.NotNil(t, fields.AccionSolicitada)
	require.NotEmpty(t, fields.Montos)
	require.NotEmpty(t, fields.Fechas)
}
