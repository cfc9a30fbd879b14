package domain

import "strconv"

// Moneda is a currency code understood by amount extraction (MXN, USD, ...).
type Moneda string

// Monto is an extracted monetary amount, keeping the original text alongside
// the parsed decimal value for audit purposes (spec.md §3).
type Monto struct {
	Moneda   Moneda
	Valor    float64
	Original string
}

// Key returns the (currency, value) uniqueness key used when merging Montos
// across sources (spec.md §4.8).
func (m Monto) Key() string {
	return string(m.Moneda) + "|" + formatMontoValue(m.Valor)
}

func formatMontoValue(v float64) string {
	// Fixed-precision formatting keeps the key stable regardless of the
	// float's exact decimal expansion; two decimals matches currency granularity.
	cents := int64(v*100 + 0.5)
	return strconv.FormatInt(cents, 10)
}

// ExtractedFields is the per-source, pre-fusion snapshot produced by every
// extractor variant (spec.md §3).
type ExtractedFields struct {
	CaseID          *string
	Causa           *string
	AccionSolicitada *string
	Fechas          []string
	Montos          []Monto
	AdditionalFields map[string]string
}

// NewExtractedFields returns an ExtractedFields with initialized maps/slices.
func NewExtractedFields() ExtractedFields {
	return ExtractedFields{AdditionalFields: make(map[string]string)}
}

// ExtractionMetadata is the per-source quality vector consumed by source
// reliability scoring (spec.md §3, §4.9.1).
type ExtractionMetadata struct {
	Source SourceKind

	// OCR-derived; nil for XML.
	MeanConfidence *float64
	MinConfidence  *float64
	WordCount      *int
	LowConfWords   *int

	// Image-quality-derived; nil for XML.
	Blur         *float64
	Contrast     *float64
	Noise        *float64
	EdgeDensity  *float64
	QualityIndex *float64

	RegexMatches        int
	CatalogValidations  int
	PatternViolations   int
	TotalFieldsExtracted int
}

// NewXMLMetadata returns metadata with every OCR/image field left nil, as
// specified for the XML source (spec.md §4.6).
func NewXMLMetadata() ExtractionMetadata {
	return ExtractionMetadata{Source: SourceXML}
}

// FieldCandidate is a single field's per-source contribution to fusion
// (spec.md §3).
type FieldCandidate struct {
	Value          *string
	Source         SourceKind
	Reliability    float64
	MatchesPattern bool
	MatchesCatalog bool
	OCRConfidence  *float64
}
