package docx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchStrategy_ResolvesBackwardReference(t *testing.T) {
	doc := &ParsedDocument{
		Paragraphs: []Paragraph{
			{Text: "Expediente: EXP-2024-010"},
			{Text: "Respecto al expediente arriba mencionado, se requiere respuesta en 10 dias."},
		},
	}
	s := NewSearchStrategy()
	fields, err := s.Extract(context.Background(), doc)
	require.NoError(t, err)
	require.NotNil(t, fields.CaseID)
	assert.Equal(t, "EXP-2024-010", *fields.CaseID)
}

func TestSearchStrategy_NoPriorValueFound(t *testing.T) {
	doc := &ParsedDocument{
		Paragraphs: []Paragraph{
			{Text: "Respecto al expediente arriba mencionado, se requiere respuesta."},
		},
	}
	s := NewSearchStrategy()
	fields, err := s.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Nil(t, fields.CaseID)
}

func TestSearchStrategy_CanHandleAndConfidence(t *testing.T) {
	s := NewSearchStrategy()
	assert.True(t, s.CanHandle(DocxStructure{HasCrossReferences: true}))
	assert.False(t, s.CanHandle(DocxStructure{}))
	assert.Equal(t, 0.55, s.Confidence(DocxStructure{HasCrossReferences: true}))
	assert.Zero(t, s.Confidence(DocxStructure{}))
}

func TestHasCrossReferencePhrase(t *testing.T) {
	assert.True(t, hasCrossReferencePhrase("la autoridad arriba mencionada"))
	assert.True(t, hasCrossReferencePhrase("como se indico anteriormente indicado"))
	assert.False(t, hasCrossReferencePhrase("texto sin referencias cruzadas"))
}
