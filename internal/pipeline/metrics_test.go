package pipeline

import (
	"testing"
	"time"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineMetrics_ObserveRunRecordsOutcome(t *testing.T) {
	m := NewPipelineMetrics("expediente_test")
	require.NotNil(t, m)

	result := Result{
		Fusion:         domain.FusionResult{NextAction: domain.AutoProcess},
		Classification: domain.ExpedienteClassificationResult{Type: domain.RequirementInformacion},
	}
	m.observeRun(time.Now(), result, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsProcessed.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nextActionTotal.WithLabelValues("AutoProcess")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.classificationType.WithLabelValues("Informacion")))
}

func TestPipelineMetrics_ObserveRunRecordsError(t *testing.T) {
	m := NewPipelineMetrics("expediente_test_err")
	m.observeRun(time.Now(), Result{}, assertErr{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsProcessed.WithLabelValues("error")))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
