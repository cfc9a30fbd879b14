// Package filterselect implements the filter-selection strategies of
// spec.md §4.2: a polymorphic operation that maps an ImageQualityAssessment
// to a FilterConfig, either via a fixed analytical table or via evaluating
// frozen polynomial coefficients.
package filterselect

import "github.com/cnbv-expediente/expediente-core/internal/domain"

// Strategy selects a FilterConfig for a given quality assessment.
type Strategy interface {
	SelectFilter(assessment domain.ImageQualityAssessment) domain.FilterConfig
}
