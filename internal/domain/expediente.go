// Package domain holds the plain value types shared by every stage of the
// extraction and fusion pipeline: the Expediente case record, the per-source
// candidate snapshots, and the fusion results that reconcile them.
package domain

import "time"

// MinDate is the sentinel used for a date field that failed to parse or was
// never supplied, matching the "safe fallback sentinel" convention of the
// XML parser (spec.md §4.6).
var MinDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)

// SourceKind identifies which per-source extractor produced a candidate.
type SourceKind int

const (
	SourceXML SourceKind = iota
	SourcePDF
	SourceDOCX
)

// SourceOrder is the fixed processing order used throughout fusion so that
// ties in voting and "first non-null" merges are reproducible regardless of
// goroutine completion order (spec.md §4.9.4, §5).
var SourceOrder = [3]SourceKind{SourceXML, SourcePDF, SourceDOCX}

func (k SourceKind) String() string {
	switch k {
	case SourceXML:
		return "XML"
	case SourcePDF:
		return "PDF"
	case SourceDOCX:
		return "DOCX"
	default:
		return "UNKNOWN"
	}
}

// PersonaSolicitud is a person named within a SolicitudEspecifica.
type PersonaSolicitud struct {
	Nombre       string
	RFC          string
	CURP         string
	TipoPersona  string // "fisica" | "moral"
	Alias        []string
}

// SolicitudEspecifica is a specific request line item owning an ordered list
// of persons it targets.
type SolicitudEspecifica struct {
	Descripcion string
	Personas    []PersonaSolicitud
}

// SolicitudParte is a request party named at the top level of an Expediente.
type SolicitudParte struct {
	Nombre string
	Rol    string // e.g. "solicitante", "autoridad"
}

// LawMandatedFields carries bank-enrichment slots populated once a requesting
// authority's mandate has been resolved against the bank's own records.
type LawMandatedFields struct {
	CuentaAfectada   string
	InstitucionBanco string
	MontoRetenido    *Monto
	FechaAplicacion  time.Time
}

// SemanticAnalysis captures the "five situations" semantic rubric evaluated
// during classification (spec.md §4.10).
type SemanticAnalysis struct {
	TieneAseguramiento bool
	TieneDesbloqueo    bool
	TieneTransferencia bool
	TieneDocumentacion bool
	TieneInformacion   bool
}

// Expediente is the canonical, fused regulatory case record.
type Expediente struct {
	CaseID               string
	OficioID             string
	Folio                string
	Anio                 int
	AreaCodigo           string
	AreaDescripcion      string
	FechaPublicacion      time.Time
	PlazoDias            int
	AutoridadSolicitante string
	Referencias          [3]string
	TieneAseguramiento   bool
	Causa                string
	AccionSolicitada     string
	Montos               []Monto
	Fechas               []string
	AdditionalFields     map[string]string
	Partes               []SolicitudParte
	Especificas          []SolicitudEspecifica
	LawMandated          *LawMandatedFields
	Semantica            *SemanticAnalysis
}

// Valid reports whether the minimal on-success invariants hold: non-empty
// case id and a non-negative deadline (spec.md §3).
func (e *Expediente) Valid() bool {
	if e == nil {
		return false
	}
	return e.CaseID != "" && e.PlazoDias >= 0
}
