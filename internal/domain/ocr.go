package domain

// OcrResult is the output of the external OCR collaborator (spec.md §4.4).
type OcrResult struct {
	Text              string
	MeanConfidence    float64
	MedianConfidence  float64
	WordConfidences   []float64
	LanguageUsed      string
}
