package quality

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

func checkerboard(w, h, cell int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 230})
			} else {
				img.SetGray(x, y, color.Gray{Y: 20})
			}
		}
	}
	return img
}

func flat(w, h int, value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
	return img
}

func TestAnalyzeRejectsNilAndTinyImages(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.Analyze(nil)
	require.Error(t, err)

	tiny := image.NewGray(image.Rect(0, 0, 1, 1))
	_, err = a.Analyze(tiny)
	require.Error(t, err)
}

func TestAnalyzeFlatImageIsPoorQuality(t *testing.T) {
	a := NewAnalyzer()
	result, err := a.Analyze(flat(64, 64, 128))
	require.NoError(t, err)

	assert.Equal(t, domain.Q1Poor, result.Band)
	assert.Less(t, result.QualityIndex, 0.35)
}

func TestAnalyzeHighContrastCheckerboardScoresHigherThanFlat(t *testing.T) {
	a := NewAnalyzer()

	sharp, err := a.Analyze(checkerboard(64, 64, 4))
	require.NoError(t, err)

	flatResult, err := a.Analyze(flat(64, 64, 128))
	require.NoError(t, err)

	assert.Greater(t, sharp.QualityIndex, flatResult.QualityIndex)
}

func TestBandThresholdsMatchSpec(t *testing.T) {
	assert.Equal(t, domain.Pristine, domain.BandForIndex(0.80))
	assert.Equal(t, domain.Q3Low, domain.BandForIndex(0.79999))
	assert.Equal(t, domain.Q3Low, domain.BandForIndex(0.55))
	assert.Equal(t, domain.Q2MediumPoor, domain.BandForIndex(0.54999))
	assert.Equal(t, domain.Q2MediumPoor, domain.BandForIndex(0.35))
	assert.Equal(t, domain.Q1Poor, domain.BandForIndex(0.34999))
}
