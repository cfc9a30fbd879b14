package fusion

import (
	"testing"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestReliability_XMLIgnoresOCRAndImage(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	meta := domain.NewXMLMetadata()
	meta.RegexMatches = 5
	meta.TotalFieldsExtracted = 5

	r := Reliability(domain.SourceXML, meta, coeffs)
	assert.InDelta(t, coeffs.BaseReliabilityXML, r, 1e-9)
}

func TestReliability_PDFDegradesWithLowConfidence(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	mean := 0.95
	words := 100
	low := 5
	quality := 0.9
	good := domain.ExtractionMetadata{
		Source: domain.SourcePDF, MeanConfidence: &mean, WordCount: &words, LowConfWords: &low,
		QualityIndex: &quality, TotalFieldsExtracted: 10, RegexMatches: 8,
	}

	badMean := 0.3
	manyLow := 80
	badQuality := 0.2
	bad := domain.ExtractionMetadata{
		Source: domain.SourcePDF, MeanConfidence: &badMean, WordCount: &words, LowConfWords: &manyLow,
		QualityIndex: &badQuality, TotalFieldsExtracted: 10, RegexMatches: 1,
	}

	assert.Greater(t, Reliability(domain.SourcePDF, good, coeffs), Reliability(domain.SourcePDF, bad, coeffs))
}

func TestReliability_ClampedToUnitInterval(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	mean := 1.0
	words := 10
	low := 0
	quality := 1.0
	meta := domain.ExtractionMetadata{
		Source: domain.SourcePDF, MeanConfidence: &mean, WordCount: &words, LowConfWords: &low,
		QualityIndex: &quality, TotalFieldsExtracted: 1, RegexMatches: 1, CatalogValidations: 1,
	}
	r := Reliability(domain.SourcePDF, meta, coeffs)
	assert.GreaterOrEqual(t, r, 0.0)
	assert.LessOrEqual(t, r, 1.0)
}
