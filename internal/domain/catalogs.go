package domain

import "regexp"

// CaseIDPattern matches the registry's case id shape: uppercase
// alphanumeric segments separated by slashes or hyphens, e.g.
// "A/AS1-2505-088637-PHM" or "AGAFADAFSON2/2025/000084".
var CaseIDPattern = regexp.MustCompile(`^[A-Z0-9]+([/\-][A-Z0-9]+)*$`)

// AreaDescripcionCatalog is the fixed set of valid "AreaDescripcion" values
// recognized across the XML parser (catalog validation, spec.md §4.6) and
// the fusion engine (catalog-match boost, spec.md §4.9.2 step 4).
var AreaDescripcionCatalog = map[string]bool{
	"ASEGURAMIENTO":  true,
	"HACENDARIO":     true,
	"PENAL":          true,
	"CIVIL":          true,
	"ADMINISTRATIVO": true,
}
