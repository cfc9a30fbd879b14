package domain

// QualityBand buckets the aggregate image-quality index into the four
// discrete tiers the filter-selection strategies dispatch on (spec.md §4.1).
type QualityBand int

const (
	Pristine QualityBand = iota
	Q3Low
	Q2MediumPoor
	Q1Poor
)

func (b QualityBand) String() string {
	switch b {
	case Pristine:
		return "Pristine"
	case Q3Low:
		return "Q3_Low"
	case Q2MediumPoor:
		return "Q2_MediumPoor"
	case Q1Poor:
		return "Q1_Poor"
	default:
		return "Unknown"
	}
}

// BandForIndex assigns a QualityBand by the fixed thresholds of spec.md
// §4.1: Pristine >= 0.80; Q3_Low in [0.55, 0.80); Q2_MediumPoor in
// [0.35, 0.55); Q1_Poor < 0.35. Boundaries are inclusive on the lower bound.
func BandForIndex(index float64) QualityBand {
	switch {
	case index >= 0.80:
		return Pristine
	case index >= 0.55:
		return Q3Low
	case index >= 0.35:
		return Q2MediumPoor
	default:
		return Q1Poor
	}
}

// ImageQualityAssessment is the output of the quality analyzer (spec.md §3).
type ImageQualityAssessment struct {
	BlurScore    float64
	Noise        float64
	Contrast     float64
	Sharpness    float64
	EdgeDensity  float64
	QualityIndex float64
	Band         QualityBand
}

// FilterKind enumerates the image-enhancement-filter variants (spec.md §3).
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterPilSimple
	FilterOpenCvAdvanced
	FilterPolynomial
)

func (k FilterKind) String() string {
	switch k {
	case FilterNone:
		return "None"
	case FilterPilSimple:
		return "PilSimple"
	case FilterOpenCvAdvanced:
		return "OpenCvAdvanced"
	case FilterPolynomial:
		return "Polynomial"
	default:
		return "Unknown"
	}
}

// FilterConfig is the tagged-variant parameter bundle selected by a filter
// selection strategy (spec.md §3). Only the fields relevant to Kind are
// meaningful; the others are left at their zero value.
type FilterConfig struct {
	Kind               FilterKind
	EnableEnhancement  bool

	// PilSimple
	ContrastFactor float64
	MedianSize     int

	// OpenCvAdvanced
	DenoiseH       float64
	ClaheClip      float64
	TileW, TileH   int
	AdaptiveThresh bool

	// Polynomial
	Contrast       float64
	Brightness     float64
	Sharpness      float64
	UnsharpRadius  float64
	UnsharpPercent float64
}

// NoFilter is the disabled-enhancement sentinel returned for Pristine images.
func NoFilter() FilterConfig {
	return FilterConfig{Kind: FilterNone, EnableEnhancement: false}
}
