package fusion

import (
	"strconv"
	"time"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// ExpedienteToFieldMap flattens an XML-sourced Expediente into the
// string-keyed field map the fusion engine votes over.
func ExpedienteToFieldMap(e *domain.Expediente) map[string]string {
	if e == nil {
		return map[string]string{}
	}
	m := map[string]string{
		"case_id":              e.CaseID,
		"oficio_id":            e.OficioID,
		"folio":                e.Folio,
		"area_codigo":          e.AreaCodigo,
		"area_descripcion":     e.AreaDescripcion,
		"autoridad_solicitante": e.AutoridadSolicitante,
		"referencia_1":         e.Referencias[0],
		"referencia_2":         e.Referencias[1],
		"referencia_3":         e.Referencias[2],
		"causa":                e.Causa,
		"accion_solicitada":    e.AccionSolicitada,
		"tiene_aseguramiento":  strconv.FormatBool(e.TieneAseguramiento),
	}
	if e.Anio != 0 {
		m["anio"] = strconv.Itoa(e.Anio)
	}
	if e.PlazoDias != 0 {
		m["plazo_dias"] = strconv.Itoa(e.PlazoDias)
	}
	if !e.FechaPublicacion.Equal(domain.MinDate) && !e.FechaPublicacion.IsZero() {
		m["fecha_publicacion"] = e.FechaPublicacion.Format("2006-01-02")
	}
	return m
}

// ExtractedFieldsToFieldMap flattens a per-source ExtractedFields snapshot
// (the shape DOCX and PDF/OCR extractors produce) into the same field map.
// Only the attributes ExtractedFields actually carries participate; the
// rest are left absent so the engine treats them as this source having no
// opinion.
func ExtractedFieldsToFieldMap(f domain.ExtractedFields) map[string]string {
	m := map[string]string{}
	if f.CaseID != nil {
		m["case_id"] = *f.CaseID
	}
	if f.Causa != nil {
		m["causa"] = *f.Causa
	}
	if f.AccionSolicitada != nil {
		m["accion_solicitada"] = *f.AccionSolicitada
	}
	return m
}

// applyFieldResult writes one field's selected value into the typed
// Expediente attribute it belongs to, coercing back from the string fusion
// operated over.
func applyFieldResult(e *domain.Expediente, field string, r domain.FieldFusionResult) {
	if r.SelectedValue == nil {
		return
	}
	v := *r.SelectedValue
	switch field {
	case "case_id":
		e.CaseID = v
	case "oficio_id":
		e.OficioID = v
	case "folio":
		e.Folio = v
	case "area_codigo":
		e.AreaCodigo = v
	case "area_descripcion":
		e.AreaDescripcion = v
	case "autoridad_solicitante":
		e.AutoridadSolicitante = v
	case "referencia_1":
		e.Referencias[0] = v
	case "referencia_2":
		e.Referencias[1] = v
	case "referencia_3":
		e.Referencias[2] = v
	case "causa":
		e.Causa = v
	case "accion_solicitada":
		e.AccionSolicitada = v
	case "anio":
		if n, err := strconv.Atoi(v); err == nil {
			e.Anio = n
		}
	case "plazo_dias":
		if n, err := strconv.Atoi(v); err == nil {
			e.PlazoDias = n
		}
	case "tiene_aseguramiento":
		if b, err := strconv.ParseBool(v); err == nil {
			e.TieneAseguramiento = b
		}
	case "fecha_publicacion":
		if t, err := time.Parse("2006-01-02", v); err == nil {
			e.FechaPublicacion = t
		}
	}
}
