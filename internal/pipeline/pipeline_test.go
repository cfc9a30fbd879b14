package pipeline

import (
	"context"
	"testing"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/ocr"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Expediente>
  <Cnbv_CaseID>A/AS1-2505-088637-PHM</Cnbv_CaseID>
  <OficioID>OF-778</OficioID>
  <Folio>F-100</Folio>
  <Anio>2025</Anio>
  <AreaCodigo>AS</AreaCodigo>
  <AreaDescripcion>ASEGURAMIENTO</AreaDescripcion>
  <FechaPublicacion>2025-05-01</FechaPublicacion>
  <PlazoDias>10</PlazoDias>
  <AutoridadSolicitante>Fiscalia General</AutoridadSolicitante>
  <TieneAseguramiento>true</TieneAseguramiento>
</Expediente>`

func testBuilder() *Builder {
	return NewBuilder().WithExecutor(ocr.NewFakeExecutor())
}

func TestPipeline_Run_XMLOnly(t *testing.T) {
	p := testBuilder().Build()

	result, err := p.Run(context.Background(), Document{XML: []byte(sampleXML)})
	require.NoError(t, err)

	require.NotNil(t, result.Fusion.Expediente)
	assert.Equal(t, "A/AS1-2505-088637-PHM", result.Fusion.Expediente.CaseID)
	assert.Equal(t, domain.RequirementAseguramiento, result.Classification.Type)
}

func TestPipeline_Run_EmptyDocumentStillReturnsResult(t *testing.T) {
	p := testBuilder().Build()

	result, err := p.Run(context.Background(), Document{})
	require.NoError(t, err)
	assert.Equal(t, domain.ManualReviewRequired, result.Fusion.NextAction)
}

func TestPipeline_Run_RecordsMetrics(t *testing.T) {
	p := testBuilder().Build()
	require.NotNil(t, p.Metrics())

	_, err := p.Run(context.Background(), Document{XML: []byte(sampleXML)})
	require.NoError(t, err)

	count := testutil.ToFloat64(p.metrics.documentsProcessed.WithLabelValues("ok"))
	assert.Greater(t, count, 0.0)
}
