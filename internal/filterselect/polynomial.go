package filterselect

import "github.com/cnbv-expediente/expediente-core/internal/domain"

// PolynomialStrategy evaluates frozen, closed-form polynomial coefficients
// over the four quality features to predict enhancement parameters
// (spec.md §4.2). There is no training step and no ML runtime: the
// coefficients are loaded once at startup via LoadCoefficientTable.
type PolynomialStrategy struct {
	table CoefficientTable
}

// NewPolynomialStrategy builds a PolynomialStrategy over an already-loaded
// coefficient table.
func NewPolynomialStrategy(table CoefficientTable) *PolynomialStrategy {
	return &PolynomialStrategy{table: table}
}

// SelectFilter implements Strategy.
func (s *PolynomialStrategy) SelectFilter(a domain.ImageQualityAssessment) domain.FilterConfig {
	features := [4]float64{a.BlurScore, a.Contrast, a.Noise, a.EdgeDensity}

	return domain.FilterConfig{
		Kind:              domain.FilterPolynomial,
		EnableEnhancement: a.Band != domain.Pristine,
		Contrast:          s.table.Contrast.Evaluate(features),
		Brightness:        s.table.Brightness.Evaluate(features),
		Sharpness:         s.table.Sharpness.Evaluate(features),
		UnsharpRadius:      s.table.UnsharpRadius.Evaluate(features),
		UnsharpPercent:     s.table.UnsharpPercent.Evaluate(features),
	}
}
