// Package xmlsource implements the XML Expediente Parser of spec.md §4.6:
// a single-pass reader over the hand-filled XML registry that tolerates an
// optional BOM and an optional "Cnbv_" element prefix, coerces known fields
// with safe fallback sentinels, and captures unrecognized non-empty elements
// into a separate additional-fields map, with a warning, instead of failing.
package xmlsource

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const cnbvPrefix = "Cnbv_"

var (
	rfcPattern  = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3}$`)
	curpPattern = regexp.MustCompile(`^[A-Z]{4}\d{6}[HM][A-Z]{5}[A-Z0-9]\d$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// xmlNode is a generic element capturing any child structure, used because
// the registry's field set is a flat bag of named elements rather than a
// fixed schema the parser can bind a typed struct to.
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []xmlNode  `xml:",any"`
}

func (n xmlNode) isNil() bool {
	for _, a := range n.Attrs {
		if a.Name.Local == "nil" && (a.Value == "true" || a.Value == "1") {
			return true
		}
	}
	return false
}

func (n xmlNode) text() string {
	return strings.TrimSpace(norm.NFC.String(n.Content))
}

func localName(raw string) string {
	return strings.TrimPrefix(raw, cnbvPrefix)
}

// Parse implements spec.md §4.6's parse(xml_bytes) → (Expediente,
// ExtractionMetadata) | error contract, plus a warnings list for the
// unknown-element case the spec requires to "always be a warning, never an
// error."
func Parse(data []byte) (*domain.Expediente, domain.ExtractionMetadata, map[string]string, []string, error) {
	meta := domain.NewXMLMetadata()
	var warnings []string

	if len(data) == 0 {
		return nil, meta, nil, warnings, fmt.Errorf("xmlsource: empty input")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, meta, nil, warnings, fmt.Errorf("xmlsource: malformed root: %w", err)
	}

	exp := &domain.Expediente{}
	additionalFields := make(map[string]string)
	var referenceIdx int

	for _, child := range root.Nodes {
		name := localName(child.XMLName.Local)
		if child.isNil() {
			continue
		}
		value := child.text()
		if value == "" {
			continue
		}

		switch name {
		case "CaseID":
			exp.CaseID = value
			meta.TotalFieldsExtracted++
		case "OficioID":
			exp.OficioID = value
			meta.TotalFieldsExtracted++
		case "Folio":
			exp.Folio = value
			meta.TotalFieldsExtracted++
		case "Anio":
			exp.Anio = coerceInt(value)
			meta.TotalFieldsExtracted++
		case "AreaCodigo":
			exp.AreaCodigo = value
			meta.TotalFieldsExtracted++
		case "AreaDescripcion":
			exp.AreaDescripcion = value
			meta.TotalFieldsExtracted++
			if domain.AreaDescripcionCatalog[strings.ToUpper(value)] {
				meta.CatalogValidations++
			} else {
				meta.PatternViolations++
			}
		case "FechaPublicacion":
			exp.FechaPublicacion = coerceDate(value)
			meta.TotalFieldsExtracted++
			classifyPattern(&meta, datePattern, value)
		case "PlazoDias":
			exp.PlazoDias = coerceInt(value)
			meta.TotalFieldsExtracted++
		case "AutoridadSolicitante":
			exp.AutoridadSolicitante = value
			meta.TotalFieldsExtracted++
		case "TieneAseguramiento":
			exp.TieneAseguramiento = coerceBool(value)
			meta.TotalFieldsExtracted++
		case "Referencia1", "Referencia2", "Referencia3":
			if referenceIdx < len(exp.Referencias) {
				exp.Referencias[referenceIdx] = value
				referenceIdx++
			}
			meta.TotalFieldsExtracted++
		case "RFC", "RFCSolicitante":
			meta.TotalFieldsExtracted++
			classifyPattern(&meta, rfcPattern, value)
		case "CURP", "CURPSolicitante":
			meta.TotalFieldsExtracted++
			classifyPattern(&meta, curpPattern, value)
		default:
			additionalFields[name] = value
			warnings = append(warnings, fmt.Sprintf("xmlsource: unknown element %q captured into additional_fields", name))
		}
	}

	return exp, meta, additionalFields, warnings, nil
}

func classifyPattern(meta *domain.ExtractionMetadata, pattern *regexp.Regexp, value string) {
	if pattern.MatchString(strings.ToUpper(value)) {
		meta.RegexMatches++
	} else {
		meta.PatternViolations++
	}
}

func coerceInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

func coerceBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "si", "sí", "yes":
		return true
	default:
		return false
	}
}

func coerceDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t
		}
	}
	return domain.MinDate
}
