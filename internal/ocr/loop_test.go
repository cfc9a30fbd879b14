package ocr

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/enhance"
	"github.com/cnbv-expediente/expediente-core/internal/filterselect"
	"github.com/cnbv-expediente/expediente-core/internal/quality"
)

func checkerboardJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if ((x/4)+(y/4))%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 230})
			} else {
				img.SetGray(x, y, color.Gray{Y: 20})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// stubStrategy always returns a fixed FilterConfig, bypassing the quality
// band dispatch so tests can force the enhancement branch deterministically.
type stubStrategy struct {
	cfg domain.FilterConfig
}

func (s stubStrategy) SelectFilter(domain.ImageQualityAssessment) domain.FilterConfig {
	return s.cfg
}

func TestLoopReturnsBaselineWhenEnhancementDisabled(t *testing.T) {
	raw := checkerboardJPEG(t)
	executor := &FakeExecutor{
		Responses: map[string]domain.OcrResult{
			string(raw): {Text: "baseline text", MeanConfidence: 0.9},
		},
	}
	loop := NewLoop(quality.NewAnalyzer(), stubStrategy{cfg: domain.NoFilter()}, enhance.NewFilter(), executor, ProductionComparator{})

	result, warnings, err := loop.Run(context.Background(), raw, domain.DefaultOcrConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "baseline text", result.Text)
}

func TestLoopPrefersEnhancedWhenItScoresHigher(t *testing.T) {
	raw := checkerboardJPEG(t)
	cfg := domain.FilterConfig{Kind: domain.FilterPilSimple, EnableEnhancement: true, ContrastFactor: 1.3, MedianSize: 3}

	filter := enhance.NewFilter()
	enhancedBytes, err := filter.Enhance(raw, cfg)
	require.NoError(t, err)

	executor := &FakeExecutor{
		Responses: map[string]domain.OcrResult{
			string(raw):           {Text: "baseline", MeanConfidence: 0.5},
			string(enhancedBytes): {Text: "much better recognized text", MeanConfidence: 0.95},
		},
	}
	loop := NewLoop(quality.NewAnalyzer(), stubStrategy{cfg: cfg}, filter, executor, ProductionComparator{})

	result, _, err := loop.Run(context.Background(), raw, domain.DefaultOcrConfig())
	require.NoError(t, err)
	assert.Equal(t, "much better recognized text", result.Text)
}

func TestLoopNeverRegressesUnderEvaluationComparator(t *testing.T) {
	raw := checkerboardJPEG(t)
	cfg := domain.FilterConfig{Kind: domain.FilterPolynomial, EnableEnhancement: true, Contrast: 1.2, Brightness: 1.1, Sharpness: 1.0, UnsharpRadius: 1.0, UnsharpPercent: 100}

	filter := enhance.NewFilter()
	enhancedBytes, err := filter.Enhance(raw, cfg)
	require.NoError(t, err)

	reference := "the quick brown fox jumps over the lazy dog repeatedly for testing purposes"
	executor := &FakeExecutor{
		Responses: map[string]domain.OcrResult{
			string(raw):           {Text: reference[:len(reference)-5]},
			string(enhancedBytes): {Text: "garbled nonsense output unrelated to reference"},
		},
	}
	loop := NewLoop(quality.NewAnalyzer(), stubStrategy{cfg: cfg}, filter, executor, EvaluationComparator{Reference: reference})

	result, _, err := loop.Run(context.Background(), raw, domain.DefaultOcrConfig())
	require.NoError(t, err)
	assert.Equal(t, reference[:len(reference)-5], result.Text)
}

func TestLoopFallsBackToBaselineOnFilterError(t *testing.T) {
	raw := checkerboardJPEG(t)
	executor := &FakeExecutor{
		Responses: map[string]domain.OcrResult{string(raw): {Text: "baseline"}},
	}
	badFilter := errorFilter{}
	cfg := domain.FilterConfig{Kind: domain.FilterPilSimple, EnableEnhancement: true, ContrastFactor: 1.2}

	loop := NewLoop(quality.NewAnalyzer(), stubStrategy{cfg: cfg}, badFilter, executor, ProductionComparator{})

	result, warnings, err := loop.Run(context.Background(), raw, domain.DefaultOcrConfig())
	require.NoError(t, err)
	assert.Equal(t, "baseline", result.Text)
	assert.NotEmpty(t, warnings)
}

type errorFilter struct{}

func (errorFilter) Enhance(data []byte, cfg domain.FilterConfig) ([]byte, error) {
	return nil, assertErr
}

var assertErr = errAlways{}

type errAlways struct{}

func (errAlways) Error() string { return "forced filter failure" }

func TestLoopFailsOnBaselineOCRError(t *testing.T) {
	raw := checkerboardJPEG(t)
	executor := &FakeExecutor{Err: errAlways{}}
	loop := NewLoop(quality.NewAnalyzer(), filterselect.NewAnalyticalStrategy(), enhance.NewFilter(), executor, ProductionComparator{})

	_, _, err := loop.Run(context.Background(), raw, domain.DefaultOcrConfig())
	require.Error(t, err)
}

func TestExecutorRejectsEmptyInput(t *testing.T) {
	executor := NewFakeExecutor()
	_, err := executor.Execute(context.Background(), nil, domain.DefaultOcrConfig())
	require.ErrorIs(t, err, ErrEmptyInput)
}
