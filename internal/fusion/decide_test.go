package fusion

import (
	"testing"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestDecideField_AllSourcesNull(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	result := DecideField("case_id", []domain.FieldCandidate{
		{Source: domain.SourceXML}, {Source: domain.SourcePDF},
	}, coeffs)
	assert.Equal(t, domain.AllSourcesNull, result.Decision)
	assert.Zero(t, result.Confidence)
}

func TestDecideField_AllAgree(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	result := DecideField("case_id", []domain.FieldCandidate{
		{Source: domain.SourceXML, Value: strp("A/AS1-2505-088637-PHM"), Reliability: 0.6},
		{Source: domain.SourcePDF, Value: strp("A/AS1-2505-088637-PHM"), Reliability: 0.7},
		{Source: domain.SourceDOCX, Value: strp("A/AS1-2505-088637-PHM"), Reliability: 0.5},
	}, coeffs)
	require.Equal(t, domain.AllAgree, result.Decision)
	assert.Equal(t, 1.0, result.Confidence)
	require.NotNil(t, result.SelectedValue)
	assert.Equal(t, "A/AS1-2505-088637-PHM", *result.SelectedValue)
}

func TestDecideField_FuzzyAgreement(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	result := DecideField("case_id", []domain.FieldCandidate{
		{Source: domain.SourceXML, Value: strp("AGAFADAFSON2/2025/000084"), Reliability: 0.6},
		{Source: domain.SourcePDF, Value: strp("AGAFADAFSON2/2025/O00084"), Reliability: 0.8},
	}, coeffs)
	require.Equal(t, domain.FuzzyAgreement, result.Decision)
	assert.Nil(t, result.WinningSource)
}

func TestDecideField_HardConflict(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	result := DecideField("area_descripcion", []domain.FieldCandidate{
		{Source: domain.SourceXML, Value: strp("ASEGURAMIENTO"), Reliability: 0.60, MatchesPattern: true, MatchesCatalog: true},
		{Source: domain.SourcePDF, Value: strp("JUDICIAL"), Reliability: 0.59, MatchesPattern: true, MatchesCatalog: true},
	}, coeffs)
	require.Equal(t, domain.Conflict, result.Decision)
	assert.True(t, result.RequiresManualReview)
	assert.Nil(t, result.SelectedValue)
	assert.Len(t, result.ConflictingValues, 2)
}

func TestDecideField_WeightedVotingClearWinner(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	result := DecideField("area_descripcion", []domain.FieldCandidate{
		{Source: domain.SourceXML, Value: strp("ASEGURAMIENTO"), Reliability: 0.60, MatchesPattern: true, MatchesCatalog: true},
		{Source: domain.SourcePDF, Value: strp("JUDICIAL"), Reliability: 0.20, MatchesPattern: false, MatchesCatalog: false},
	}, coeffs)
	require.Equal(t, domain.WeightedVoting, result.Decision)
	require.NotNil(t, result.SelectedValue)
	assert.Equal(t, "ASEGURAMIENTO", *result.SelectedValue)
}

func TestDecideField_BestEffortDemotion(t *testing.T) {
	coeffs := domain.DefaultFusionCoefficients()
	result := DecideField("causa", []domain.FieldCandidate{
		{Source: domain.SourcePDF, Value: strp("Fraude"), Reliability: 0.30},
		{Source: domain.SourceDOCX, Value: strp("Lavado"), Reliability: 0.25},
	}, coeffs)
	assert.Equal(t, domain.BestEffort, result.Decision)
	assert.True(t, result.SuggestReview)
}
