package filterselect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetEvaluateClamps(t *testing.T) {
	target := Target{
		Terms: []Term{
			{Powers: [4]int{0, 0, 0, 0}, Coefficient: 5},
			{Powers: [4]int{1, 0, 0, 0}, Coefficient: 10},
		},
		Min: 0,
		Max: 8,
	}
	assert.Equal(t, 8.0, target.Evaluate([4]float64{1, 0, 0, 0}))
	assert.Equal(t, 5.0, target.Evaluate([4]float64{0, 0, 0, 0}))
}

func TestLoadCoefficientTableRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coeffs.yaml")
	yamlContent := `
contrast:
  terms:
    - powers: [0, 0, 0, 0]
      coefficient: 1.2
  min: 0.8
  max: 2.0
brightness:
  terms:
    - powers: [0, 0, 0, 0]
      coefficient: 1.0
  min: 0.8
  max: 1.5
sharpness:
  terms:
    - powers: [0, 0, 0, 0]
      coefficient: 1.5
  min: 0.5
  max: 3.0
unsharp_radius:
  terms:
    - powers: [0, 0, 0, 0]
      coefficient: 1.0
  min: 0.5
  max: 4.0
unsharp_percent:
  terms:
    - powers: [0, 0, 0, 0]
      coefficient: 120
  min: 50
  max: 200
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	table, err := LoadCoefficientTable(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, table.Contrast.Evaluate([4]float64{}), 1e-9)
}

func TestLoadCoefficientTableMissingFile(t *testing.T) {
	_, err := LoadCoefficientTable("/nonexistent/coeffs.yaml")
	require.Error(t, err)
}
