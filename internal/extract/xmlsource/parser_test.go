package xmlsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Expediente>
  <Cnbv_CaseID>EXP-2026-0001</Cnbv_CaseID>
  <OficioID>OF-778</OficioID>
  <Folio>F-100</Folio>
  <Anio>2026</Anio>
  <AreaCodigo>AS</AreaCodigo>
  <AreaDescripcion>ASEGURAMIENTO</AreaDescripcion>
  <FechaPublicacion>2026-03-01</FechaPublicacion>
  <PlazoDias>10</PlazoDias>
  <AutoridadSolicitante>Juzgado Primero</AutoridadSolicitante>
  <TieneAseguramiento>true</TieneAseguramiento>
  <RFC>ABCD800101XYZ</RFC>
  <Custom_Field_Not_Known>some value</Custom_Field_Not_Known>
</Expediente>`

func TestParseHappyPath(t *testing.T) {
	exp, meta, additional, warnings, err := Parse([]byte(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, "EXP-2026-0001", exp.CaseID)
	assert.Equal(t, "OF-778", exp.OficioID)
	assert.Equal(t, 2026, exp.Anio)
	assert.Equal(t, 10, exp.PlazoDias)
	assert.True(t, exp.TieneAseguramiento)
	assert.Equal(t, "ASEGURAMIENTO", exp.AreaDescripcion)

	assert.Equal(t, 1, meta.CatalogValidations)
	assert.Greater(t, meta.TotalFieldsExtracted, 0)
	assert.NotNil(t, additional["Custom_Field_Not_Known"])
	assert.NotEmpty(t, warnings)
}

func TestParseTreatsBOMAndNilAttributeAsNull(t *testing.T) {
	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<Expediente>
  <Cnbv_CaseID xsi:nil="true"></Cnbv_CaseID>
  <Folio>F-1</Folio>
</Expediente>`)...)

	exp, meta, _, _, err := Parse(bom)
	require.NoError(t, err)
	assert.Empty(t, exp.CaseID)
	assert.Equal(t, "F-1", exp.Folio)
	assert.Equal(t, 1, meta.TotalFieldsExtracted)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, _, _, _, err := Parse(nil)
	require.Error(t, err)
}

func TestParseInvalidAreaDescripcionIsPatternViolation(t *testing.T) {
	xml := `<Expediente><AreaDescripcion>NOT_IN_CATALOG</AreaDescripcion></Expediente>`
	_, meta, _, _, err := Parse([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, 0, meta.CatalogValidations)
	assert.Equal(t, 1, meta.PatternViolations)
}

func TestParseMalformedXMLFails(t *testing.T) {
	_, _, _, _, err := Parse([]byte("<Expediente><unterminated>"))
	require.Error(t, err)
}
