package classify

import (
	"strings"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

var authorityKeywords = map[domain.AuthorityKind][]string{
	domain.AuthorityJudicial:       {"juzgado", "tribunal", "juez", "fiscalia", "fiscalía", "ministerio publico", "ministerio público"},
	domain.AuthorityHacendaria:     {"hacienda", "shcp", "sat", "tesoreria", "tesorería"},
	domain.AuthorityAdministrativa: {"secretaria", "secretaría", "comision", "comisión", "instituto"},
}

// authorityFromText classifies the requesting authority's free-text name
// into one of the four broad kinds Article validation keys off of.
func authorityFromText(autoridad string) domain.AuthorityKind {
	lower := strings.ToLower(autoridad)
	for _, kind := range []domain.AuthorityKind{domain.AuthorityJudicial, domain.AuthorityHacendaria, domain.AuthorityAdministrativa} {
		for _, kw := range authorityKeywords[kind] {
			if strings.Contains(lower, kw) {
				return kind
			}
		}
	}
	return domain.AuthorityOtra
}
