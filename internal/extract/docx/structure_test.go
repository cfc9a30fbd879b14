package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeStructure_TablesAndBoldLabels(t *testing.T) {
	doc := &ParsedDocument{
		Paragraphs: []Paragraph{
			{Text: "Expediente:", Bold: true},
			{Text: "EXP-2024-001", Bold: false},
		},
		Tables: []Table{
			{Rows: []TableRow{
				{Cells: []string{"Campo", "Valor"}},
				{Cells: []string{"Causa", "Lavado de dinero"}},
			}},
		},
	}

	s := AnalyzeStructure(doc)
	assert.True(t, s.HasTables)
	assert.True(t, s.HasBoldLabels)
	assert.False(t, s.HasCrossReferences)
	assert.True(t, s.HasStructuredFormat)
	a := assert.New(t)
	a.Len(s.Tables, 1)
	a.Equal(2, s.Tables[0].RowCount)
	a.True(s.Tables[0].HasHeaderRow)
}

func TestAnalyzeStructure_KeyValuePairs(t *testing.T) {
	doc := &ParsedDocument{
		Paragraphs: []Paragraph{
			{Text: "Causa: lavado de dinero"},
			{Text: "Monto: 1,000.00 MXN"},
		},
	}
	s := AnalyzeStructure(doc)
	assert.True(t, s.HasKeyValuePairs)
	assert.False(t, s.HasTables)
	assert.False(t, s.HasBoldLabels)
}

func TestAnalyzeStructure_CrossReferences(t *testing.T) {
	doc := &ParsedDocument{
		Paragraphs: []Paragraph{
			{Text: "La autoridad arriba mencionada solicita informacion."},
		},
	}
	s := AnalyzeStructure(doc)
	assert.True(t, s.HasCrossReferences)
}

func TestDocxStructure_Recommend(t *testing.T) {
	cases := []struct {
		name     string
		s        DocxStructure
		expected RecommendedStrategy
	}{
		{
			name:     "bare table recommends table-based",
			s:        DocxStructure{Tables: []TableStructure{{RowCount: 3, HasHeaderRow: true}}},
			expected: RecommendTableBased,
		},
		{
			name:     "no structural signal recommends fuzzy",
			s:        DocxStructure{},
			expected: RecommendFuzzy,
		},
		{
			name:     "cross-references plus structure recommends hybrid",
			s:        DocxStructure{HasCrossReferences: true, HasStructuredFormat: true},
			expected: RecommendHybrid,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.s.Recommend())
		})
	}
}
