package fusion

import (
	"math"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// clamp01 restricts x to [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ocrMultiplier computes M_ocr (spec.md §4.9.1). XML carries no OCR concern
// and always contributes 1.0.
func ocrMultiplier(meta domain.ExtractionMetadata, coeffs domain.FusionCoefficients) float64 {
	if meta.Source == domain.SourceXML || meta.MeanConfidence == nil {
		return 1.0
	}
	meanConf := *meta.MeanConfidence
	wordCount := 0
	if meta.WordCount != nil {
		wordCount = *meta.WordCount
	}
	lowConf := 0
	if meta.LowConfWords != nil {
		lowConf = *meta.LowConfWords
	}
	ratio := 0.0
	if wordCount > 0 {
		ratio = float64(lowConf) / float64(wordCount)
	}
	m := math.Pow(meanConf, coeffs.MeanConfidenceExponent) + coeffs.LowConfidencePenaltyWeight*ratio
	return clamp01(m)
}

// imageMultiplier computes M_img. XML always contributes 1.0.
func imageMultiplier(meta domain.ExtractionMetadata) float64 {
	if meta.Source == domain.SourceXML || meta.QualityIndex == nil {
		return 1.0
	}
	return clamp01(*meta.QualityIndex)
}

// extractionMultiplier computes M_ext, shared by every source.
func extractionMultiplier(meta domain.ExtractionMetadata) float64 {
	numerator := float64(meta.RegexMatches + meta.CatalogValidations)
	denominator := float64(meta.TotalFieldsExtracted + meta.PatternViolations)
	if denominator < 1 {
		denominator = 1
	}
	return clamp01(numerator / denominator)
}

// Reliability computes R ∈ [0,1] for one source's extraction, per spec.md
// §4.9.1.
func Reliability(source domain.SourceKind, meta domain.ExtractionMetadata, coeffs domain.FusionCoefficients) float64 {
	base := coeffs.BaseReliability(source)
	combined := coeffs.WeightOCR*ocrMultiplier(meta, coeffs) +
		coeffs.WeightImage*imageMultiplier(meta) +
		coeffs.WeightExtraction*extractionMultiplier(meta)
	return clamp01(base * combined)
}
