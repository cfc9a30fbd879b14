package domain

// FusionCoefficients is the tunable configuration consumed by the fusion
// engine (spec.md §6). It is a plain value passed into the engine — there is
// no global mutable configuration singleton (spec.md §9).
type FusionCoefficients struct {
	BaseReliabilityXML  float64 `mapstructure:"base_reliability_xml"  yaml:"base_reliability_xml"  json:"base_reliability_xml"`
	BaseReliabilityPDF  float64 `mapstructure:"base_reliability_pdf"  yaml:"base_reliability_pdf"  json:"base_reliability_pdf"`
	BaseReliabilityDOCX float64 `mapstructure:"base_reliability_docx" yaml:"base_reliability_docx" json:"base_reliability_docx"`

	WeightOCR       float64 `mapstructure:"weight_ocr"       yaml:"weight_ocr"       json:"weight_ocr"`
	WeightImage     float64 `mapstructure:"weight_image"     yaml:"weight_image"     json:"weight_image"`
	WeightExtraction float64 `mapstructure:"weight_extraction" yaml:"weight_extraction" json:"weight_extraction"`

	MeanConfidenceExponent    float64 `mapstructure:"mean_confidence_exponent"     yaml:"mean_confidence_exponent"     json:"mean_confidence_exponent"`
	LowConfidencePenaltyWeight float64 `mapstructure:"low_confidence_penalty_weight" yaml:"low_confidence_penalty_weight" json:"low_confidence_penalty_weight"`

	PatternMatchBoost     float64 `mapstructure:"pattern_match_boost"     yaml:"pattern_match_boost"     json:"pattern_match_boost"`
	CatalogValidationBoost float64 `mapstructure:"catalog_validation_boost" yaml:"catalog_validation_boost" json:"catalog_validation_boost"`

	FuzzyMatchThreshold          float64 `mapstructure:"fuzzy_match_threshold"           yaml:"fuzzy_match_threshold"           json:"fuzzy_match_threshold"`
	FuzzyMatchConfidencePenalty float64 `mapstructure:"fuzzy_match_confidence_penalty"  yaml:"fuzzy_match_confidence_penalty"  json:"fuzzy_match_confidence_penalty"`

	ConflictMargin float64 `mapstructure:"conflict_margin" yaml:"conflict_margin" json:"conflict_margin"`

	RequiredFieldsWeight float64 `mapstructure:"required_fields_weight" yaml:"required_fields_weight" json:"required_fields_weight"`
	OptionalFieldsWeight float64 `mapstructure:"optional_fields_weight" yaml:"optional_fields_weight" json:"optional_fields_weight"`

	AutoProcessThreshold    float64 `mapstructure:"auto_process_threshold"    yaml:"auto_process_threshold"    json:"auto_process_threshold"`
	ManualReviewThreshold   float64 `mapstructure:"manual_review_threshold"   yaml:"manual_review_threshold"   json:"manual_review_threshold"`

	BestEffortConfidenceFloor float64 `mapstructure:"best_effort_confidence_floor" yaml:"best_effort_confidence_floor" json:"best_effort_confidence_floor"`
}

// DefaultFusionCoefficients returns the defaults enumerated in spec.md §6.
func DefaultFusionCoefficients() FusionCoefficients {
	return FusionCoefficients{
		BaseReliabilityXML:  0.60,
		BaseReliabilityPDF:  0.85,
		BaseReliabilityDOCX: 0.70,

		WeightOCR:        0.50,
		WeightImage:      0.30,
		WeightExtraction: 0.20,

		MeanConfidenceExponent:     1.5,
		LowConfidencePenaltyWeight: -0.8,

		PatternMatchBoost:      1.10,
		CatalogValidationBoost: 1.15,

		FuzzyMatchThreshold:         0.85,
		FuzzyMatchConfidencePenalty: 0.90,

		ConflictMargin: 0.05,

		RequiredFieldsWeight: 0.70,
		OptionalFieldsWeight: 0.30,

		AutoProcessThreshold:  0.85,
		ManualReviewThreshold: 0.70,

		BestEffortConfidenceFloor: 0.70,
	}
}

// BaseReliability returns the configured base reliability for a source kind.
func (c FusionCoefficients) BaseReliability(k SourceKind) float64 {
	switch k {
	case SourceXML:
		return c.BaseReliabilityXML
	case SourcePDF:
		return c.BaseReliabilityPDF
	case SourceDOCX:
		return c.BaseReliabilityDOCX
	default:
		return 0
	}
}

// OcrConfig mirrors spec.md §6's OCR configuration surface.
type OcrConfig struct {
	Language            string  `mapstructure:"language"             yaml:"language"             json:"language"`
	FallbackLanguage    string  `mapstructure:"fallback_language"     yaml:"fallback_language"     json:"fallback_language"`
	PageSegMode         int     `mapstructure:"psm"                  yaml:"psm"                  json:"psm"`
	EngineMode          int     `mapstructure:"oem"                  yaml:"oem"                  json:"oem"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold" json:"confidence_threshold"`
}

// DefaultOcrConfig matches spec.md §6's documented defaults.
func DefaultOcrConfig() OcrConfig {
	return OcrConfig{
		Language:            "spa",
		FallbackLanguage:    "eng",
		PageSegMode:         6,
		EngineMode:          1,
		ConfidenceThreshold: 0.0,
	}
}
