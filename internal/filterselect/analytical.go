package filterselect

import "github.com/cnbv-expediente/expediente-core/internal/domain"

// AnalyticalStrategy is the piecewise, NSGA-II-tuned table keyed by
// QualityBand described in spec.md §4.2.
type AnalyticalStrategy struct{}

// NewAnalyticalStrategy returns the default Analytical filter-selection
// strategy.
func NewAnalyticalStrategy() *AnalyticalStrategy {
	return &AnalyticalStrategy{}
}

// SelectFilter implements Strategy.
func (s *AnalyticalStrategy) SelectFilter(a domain.ImageQualityAssessment) domain.FilterConfig {
	switch a.Band {
	case domain.Pristine:
		return domain.NoFilter()

	case domain.Q3Low:
		return domain.FilterConfig{
			Kind:              domain.FilterPilSimple,
			EnableEnhancement: true,
			ContrastFactor:    1.157,
			MedianSize:        3,
		}

	case domain.Q2MediumPoor:
		if a.Noise > 0.6 {
			return domain.FilterConfig{
				Kind:              domain.FilterOpenCvAdvanced,
				EnableEnhancement: true,
				DenoiseH:          30,
				ClaheClip:         2.0,
				TileW:             8,
				TileH:             8,
			}
		}
		return domain.FilterConfig{
			Kind:              domain.FilterPilSimple,
			EnableEnhancement: true,
			ContrastFactor:    1.4,
			MedianSize:        3,
		}

	default: // Q1Poor
		return domain.FilterConfig{
			Kind:              domain.FilterOpenCvAdvanced,
			EnableEnhancement: true,
			DenoiseH:          30,
			ClaheClip:         2.0,
			TileW:             8,
			TileH:             8,
			AdaptiveThresh:    true,
		}
	}
}
