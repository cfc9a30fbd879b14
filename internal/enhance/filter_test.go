package enhance

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

func sampleJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestEnhanceNoopWhenDisabled(t *testing.T) {
	f := NewFilter()
	data := sampleJPEG(t)

	out, err := f.Enhance(data, domain.NoFilter())
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestEnhancePilSimpleProducesValidImage(t *testing.T) {
	f := NewFilter()
	data := sampleJPEG(t)

	out, err := f.Enhance(data, domain.FilterConfig{
		Kind: domain.FilterPilSimple, EnableEnhancement: true, ContrastFactor: 1.5, MedianSize: 3,
	})
	require.NoError(t, err)
	_, _, err = image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
}

func TestEnhanceOpenCvAdvancedProducesValidImage(t *testing.T) {
	f := NewFilter()
	data := sampleJPEG(t)

	out, err := f.Enhance(data, domain.FilterConfig{
		Kind: domain.FilterOpenCvAdvanced, EnableEnhancement: true,
		DenoiseH: 30, ClaheClip: 2.0, TileW: 8, TileH: 8, AdaptiveThresh: true,
	})
	require.NoError(t, err)
	_, _, err = image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
}

func TestEnhancePolynomialProducesValidImage(t *testing.T) {
	f := NewFilter()
	data := sampleJPEG(t)

	out, err := f.Enhance(data, domain.FilterConfig{
		Kind: domain.FilterPolynomial, EnableEnhancement: true,
		Contrast: 1.3, Brightness: 1.1, Sharpness: 1.5, UnsharpRadius: 1.0, UnsharpPercent: 120,
	})
	require.NoError(t, err)
	_, _, err = image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
}

func TestEnhanceRejectsUndecodableBytes(t *testing.T) {
	f := NewFilter()
	_, err := f.Enhance([]byte("not an image"), domain.FilterConfig{
		Kind: domain.FilterPilSimple, EnableEnhancement: true, ContrastFactor: 1.2,
	})
	require.Error(t, err)
}
