package pdfsource

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// fieldKeywords mirrors the keyword stems the DOCX orchestrator's Fuzzy
// strategy uses (internal/extract/docx/strategy.go), adapted here since OCR
// text carries no paragraph/table structure to dispatch a richer strategy
// set over — scanning the whole page as unstructured text is the only
// option available once the PDF has been OCR'd.
var fieldKeywords = map[string][]string{
	"case_id":           {"expediente", "caso", "folio", "oficio"},
	"causa":              {"causa", "motivo"},
	"accion_solicitada": {"acción solicitada", "accion solicitada", "se solicita", "requerimiento"},
}

var (
	montoPattern = regexp.MustCompile(`(?i)\$?\s*([\d,]+(?:\.\d{1,2})?)\s*(MXN|USD|pesos|dólares)?`)
	fechaPattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}`)
	rfcPattern   = regexp.MustCompile(`(?i)\b[A-Z&Ñ]{3,4}\d{6}[A-Z0-9]{3}\b`)
)

// ExtractFields scans raw OCR text for the same three core fields, dates and
// amounts the other extractors recognize, plus any RFC it can find as an
// additional field. It also returns the pattern/catalog counters that feed
// ExtractionMetadata's M_ext multiplier (spec.md §4.9.1).
func ExtractFields(text string) (domain.ExtractedFields, domain.ExtractionMetadata) {
	out := domain.NewExtractedFields()
	meta := domain.ExtractionMetadata{Source: domain.SourcePDF}

	lower := strings.ToLower(text)
	for _, line := range strings.Split(text, "\n") {
		lowerLine := strings.ToLower(line)
		if out.CaseID == nil && matchesKeyword(lowerLine, "case_id") {
			if v, ok := valueAfterColon(line); ok {
				out.CaseID = &v
				meta.RegexMatches++
			}
		}
		if out.Causa == nil && matchesKeyword(lowerLine, "causa") {
			if v, ok := valueAfterColon(line); ok {
				out.Causa = &v
			} else {
				v := strings.TrimSpace(line)
				out.Causa = &v
			}
		}
		if out.AccionSolicitada == nil && matchesKeyword(lowerLine, "accion_solicitada") {
			v := strings.TrimSpace(line)
			out.AccionSolicitada = &v
		}
	}

	for _, match := range fechaPattern.FindAllString(text, -1) {
		out.Fechas = append(out.Fechas, match)
		meta.RegexMatches++
	}
	for _, match := range montoPattern.FindAllString(text, -1) {
		if m, ok := parseMonto(match); ok {
			out.Montos = append(out.Montos, m)
			meta.RegexMatches++
		}
	}
	if rfc := rfcPattern.FindString(text); rfc != "" {
		out.AdditionalFields["RFC"] = rfc
		meta.CatalogValidations++
	}

	meta.TotalFieldsExtracted = countNonEmpty(out)
	if !strings.Contains(lower, "expediente") && !strings.Contains(lower, "oficio") {
		meta.PatternViolations++
	}
	return out, meta
}

func matchesKeyword(lowerText, field string) bool {
	for _, kw := range fieldKeywords[field] {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

func valueAfterColon(text string) (string, bool) {
	idx := strings.Index(text, ":")
	if idx < 0 || idx == len(text)-1 {
		return "", false
	}
	value := strings.TrimSpace(text[idx+1:])
	if value == "" {
		return "", false
	}
	return value, true
}

func parseMonto(text string) (domain.Monto, bool) {
	matches := montoPattern.FindStringSubmatch(text)
	if matches == nil || matches[1] == "" {
		return domain.Monto{}, false
	}
	currency := matches[2]
	if currency == "" {
		currency = "MXN"
	}
	cleaned := strings.ReplaceAll(matches[1], ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return domain.Monto{}, false
	}
	return domain.Monto{Moneda: domain.Moneda(currency), Valor: value, Original: text}, true
}

func countNonEmpty(f domain.ExtractedFields) int {
	n := 0
	if f.CaseID != nil {
		n++
	}
	if f.Causa != nil {
		n++
	}
	if f.AccionSolicitada != nil {
		n++
	}
	n += len(f.Fechas) + len(f.Montos) + len(f.AdditionalFields)
	return n
}
