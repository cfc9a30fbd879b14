package classify

import (
	"testing"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuthorityFromText(t *testing.T) {
	cases := map[string]domain.AuthorityKind{
		"Juzgado Segundo de Distrito":          domain.AuthorityJudicial,
		"Fiscalia General de la Republica":     domain.AuthorityJudicial,
		"Servicio de Administracion Tributaria (SAT)": domain.AuthorityHacendaria,
		"Comision Nacional Bancaria y de Valores": domain.AuthorityAdministrativa,
		"Oficina de Enlace":                    domain.AuthorityOtra,
		"":                                     domain.AuthorityOtra,
	}
	for text, want := range cases {
		assert.Equal(t, want, authorityFromText(text), "text=%q", text)
	}
}
