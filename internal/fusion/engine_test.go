package fusion

import (
	"testing"
	"time"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseExpediente(caseID, area string) *domain.Expediente {
	return &domain.Expediente{
		CaseID:               caseID,
		AreaDescripcion:      area,
		Anio:                 2025,
		PlazoDias:            10,
		AutoridadSolicitante: "Fiscalia General",
		FechaPublicacion:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEngine_Fuse_AllAgreeHappyPath(t *testing.T) {
	engine := NewEngine(domain.DefaultFusionCoefficients())
	caseID := "A/AS1-2505-088637-PHM"

	// The optional fields are populated too: an optional field with no value
	// counts as 0 in the optional score, and baseExpediente alone leaves eight
	// of the ten empty, which keeps the overall score below AutoProcess.
	xml := baseExpediente(caseID, "ASEGURAMIENTO")
	xml.OficioID = "OF-778"
	xml.Folio = "F-100"
	xml.AreaCodigo = "AS"
	xml.Referencias = [3]string{"REF-1", "REF-2", "REF-3"}
	xml.Causa = "Lavado de dinero"
	xml.AccionSolicitada = "Aseguramiento de cuentas"

	inputs := [3]DocumentInput{
		{Source: domain.SourceXML, Present: true, XML: xml, Metadata: domain.NewXMLMetadata()},
		{Source: domain.SourcePDF, Present: true, Fields: ocrFields(caseID), Metadata: pdfMetadata(0.95, 100, 2)},
		{Source: domain.SourceDOCX, Present: true, Fields: docxFields(caseID), Metadata: docxMetadata()},
	}
	result := engine.Fuse(inputs)

	require.NotNil(t, result.Expediente)
	assert.Equal(t, caseID, result.Expediente.CaseID)
	assert.Equal(t, domain.AllAgree, result.FieldResults["case_id"].Decision)
	assert.Equal(t, domain.AutoProcess, result.NextAction)
}

func TestEngine_Fuse_MissingSourceDegradesGracefully(t *testing.T) {
	engine := NewEngine(domain.DefaultFusionCoefficients())
	caseID := "A/AS1-2505-088637-PHM"

	inputs := [3]DocumentInput{
		{Source: domain.SourceXML, Present: true, XML: baseExpediente(caseID, "ASEGURAMIENTO"), Metadata: domain.NewXMLMetadata()},
		{Source: domain.SourcePDF, Present: false},
		{Source: domain.SourceDOCX, Present: false},
	}
	result := engine.Fuse(inputs)
	require.NotNil(t, result.Expediente)
	assert.Equal(t, caseID, result.Expediente.CaseID)
	assert.Contains(t, result.SourceReliability, domain.SourceXML)
	assert.NotContains(t, result.SourceReliability, domain.SourcePDF)
}

func TestEngine_Fuse_DisagreeingRequiredFieldForcesManualReview(t *testing.T) {
	engine := NewEngine(domain.DefaultFusionCoefficients())
	xml := baseExpediente("A/AS1-2505-088637-PHM", "ASEGURAMIENTO")

	inputs := [3]DocumentInput{
		{Source: domain.SourceXML, Present: true, XML: xml, Metadata: domain.NewXMLMetadata()},
		{Source: domain.SourcePDF, Present: true, Fields: ocrFields("B/AS1-2505-099999-ZZZ"), Metadata: pdfMetadata(0.95, 100, 2)},
		{Source: domain.SourceDOCX, Present: false},
	}
	result := engine.Fuse(inputs)
	assert.NotEqual(t, domain.AutoProcess, result.NextAction)
	assert.Less(t, result.FieldResults["case_id"].Confidence, 1.0)
}

func ocrFields(caseID string) domain.ExtractedFields {
	f := domain.NewExtractedFields()
	f.CaseID = &caseID
	return f
}

func docxFields(caseID string) domain.ExtractedFields {
	f := domain.NewExtractedFields()
	f.CaseID = &caseID
	return f
}

func pdfMetadata(meanConf float64, words, lowConf int) domain.ExtractionMetadata {
	quality := 0.9
	return domain.ExtractionMetadata{
		Source: domain.SourcePDF, MeanConfidence: &meanConf, WordCount: &words, LowConfWords: &lowConf,
		QualityIndex: &quality, TotalFieldsExtracted: 3, RegexMatches: 2,
	}
}

func docxMetadata() domain.ExtractionMetadata {
	return domain.ExtractionMetadata{Source: domain.SourceDOCX, TotalFieldsExtracted: 2, RegexMatches: 1}
}
