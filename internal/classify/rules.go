// Package classify assigns a RequirementType to a fused Expediente via a
// keyword + field-presence rubric and checks it against Article 4/17
// (spec.md §4.10).
package classify

import "strings"

// keywordGroups lists the free-text stems each requirement type's rubric
// looks for across Causa/AccionSolicitada/AdditionalFields — the same
// keyword-stem technique extraction uses (internal/extract/docx.fieldKeywords),
// applied here to the classification rubric instead of field recognition.
var keywordGroups = map[string][]string{
	"desbloqueo":    {"desbloqueo", "levantamiento", "cancelacion de aseguramiento", "cancelación de aseguramiento"},
	"transferencia": {"transferencia", "transferir", "traspaso"},
	"cuenta":        {"cuenta", "numero de cuenta", "número de cuenta", "cuenta bancaria"},
	"documentacion": {"documentacion", "documentación", "documentos", "anexo", "listado de documentos"},
	"informacion":   {"informacion", "información", "reporte", "consulta"},
}

func containsAny(haystack string, group string) bool {
	lower := strings.ToLower(haystack)
	for _, kw := range keywordGroups[group] {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// textFields concatenates the free-text surfaces a rubric rule can scan.
func textFields(causa, accion string, additional map[string]string) string {
	var b strings.Builder
	b.WriteString(causa)
	b.WriteString(" ")
	b.WriteString(accion)
	for _, v := range additional {
		b.WriteString(" ")
		b.WriteString(v)
	}
	return b.String()
}
