package docx

import (
	"context"
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// TableBasedStrategy maps the header columns of every table with at least
// two rows to known field names and reads every data row (spec.md §4.7):
// the string fields keep the first non-empty value, while dates and amounts
// are collected from all rows.
type TableBasedStrategy struct{}

func NewTableBasedStrategy() *TableBasedStrategy { return &TableBasedStrategy{} }

func (s *TableBasedStrategy) Type() string { return "TableBased" }

func (s *TableBasedStrategy) CanHandle(structure DocxStructure) bool {
	for _, t := range structure.Tables {
		if t.HasHeaderRow && t.RowCount >= 2 {
			return true
		}
	}
	return false
}

func (s *TableBasedStrategy) Confidence(structure DocxStructure) float64 {
	for _, t := range structure.Tables {
		if t.HasHeaderRow && t.RowCount >= 3 {
			return 0.9
		}
		if t.HasHeaderRow && t.RowCount >= 2 {
			return 0.6
		}
	}
	return 0
}

func (s *TableBasedStrategy) Extract(ctx context.Context, doc *ParsedDocument) (domain.ExtractedFields, error) {
	out := domain.NewExtractedFields()
	if err := ctx.Err(); err != nil {
		return out, err
	}

	for _, table := range doc.Tables {
		if len(table.Rows) < 2 {
			continue
		}
		header := table.Rows[0].Cells
		columnField := make([]string, len(header))
		for i, h := range header {
			columnField[i] = classifyColumn(h)
		}

		for _, row := range table.Rows[1:] {
			for i, cell := range row.Cells {
				if i >= len(columnField) || cell == "" {
					continue
				}
				assignValue(&out, columnField[i], cell)
			}
		}
	}
	return out, nil
}

func classifyColumn(header string) string {
	switch {
	case matchesKeyword(header, "case_id"):
		return "case_id"
	case matchesKeyword(header, "causa"):
		return "causa"
	case matchesKeyword(header, "accion_solicitada"):
		return "accion_solicitada"
	case matchesKeyword(header, "monto"):
		return "monto"
	case matchesKeyword(header, "fecha"):
		return "fecha"
	default:
		return "additional:" + header
	}
}

func assignValue(out *domain.ExtractedFields, field, value string) {
	switch field {
	case "case_id":
		if out.CaseID == nil {
			v := value
			out.CaseID = &v
		}
	case "causa":
		if out.Causa == nil {
			v := value
			out.Causa = &v
		}
	case "accion_solicitada":
		if out.AccionSolicitada == nil {
			v := value
			out.AccionSolicitada = &v
		}
	case "fecha":
		out.Fechas = append(out.Fechas, value)
	case "monto":
		if m, ok := parseMonto(value); ok {
			out.Montos = append(out.Montos, m)
		}
	default:
		if strings.HasPrefix(field, "additional:") {
			key := strings.TrimPrefix(field, "additional:")
			if _, exists := out.AdditionalFields[key]; !exists {
				out.AdditionalFields[key] = value
			}
		}
	}
}

func parseMonto(text string) (domain.Monto, bool) {
	matches := montoPattern.FindStringSubmatch(text)
	if matches == nil {
		return domain.Monto{}, false
	}
	raw := matches[1]
	currency := matches[2]
	if currency == "" {
		currency = "MXN"
	}
	value, ok := parseDecimal(raw)
	if !ok {
		return domain.Monto{}, false
	}
	return domain.Monto{Moneda: domain.Moneda(currency), Valor: value, Original: text}, true
}
