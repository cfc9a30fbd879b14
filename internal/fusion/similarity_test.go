package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, similarity("AGAFADAFSON2/2025/000084", "AGAFADAFSON2/2025/000084"))
}

func TestSimilarity_SingleCharacterTypo(t *testing.T) {
	sim := similarity("agafadafson2/2025/000084", "agafadafson2/2025/o00084")
	assert.Greater(t, sim, 0.9)
}

func TestSimilarity_CompletelyDifferent(t *testing.T) {
	sim := similarity("aseguramiento", "judicial")
	assert.Less(t, sim, 0.3)
}

func TestSimilarity_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, similarity("", ""))
}
