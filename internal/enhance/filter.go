// Package enhance implements the image enhancement filter variants of
// spec.md §4.3: None, PilSimple, OpenCvAdvanced, and Polynomial. Each
// variant is a no-op when EnableEnhancement is false or Kind is FilterNone;
// filter failures never propagate as fatal pipeline errors (spec.md §7) —
// callers are expected to fall back to the baseline bytes on error.
package enhance

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Filter applies a FilterConfig to decoded image bytes, returning re-encoded
// bytes.
type Filter interface {
	Enhance(data []byte, cfg domain.FilterConfig) ([]byte, error)
}

// filter is the default Filter implementation, dispatching on cfg.Kind.
type filter struct{}

// NewFilter returns the default enhancement Filter.
func NewFilter() Filter {
	return &filter{}
}

// Enhance implements Filter.
func (f *filter) Enhance(data []byte, cfg domain.FilterConfig) ([]byte, error) {
	if !cfg.EnableEnhancement || cfg.Kind == domain.FilterNone {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("enhance: decoding image: %w", err)
	}

	var out image.Image
	switch cfg.Kind {
	case domain.FilterPilSimple:
		out = applyPilSimple(img, cfg)
	case domain.FilterOpenCvAdvanced:
		out = applyOpenCvAdvanced(img, cfg)
	case domain.FilterPolynomial:
		out = applyPolynomial(img, cfg)
	default:
		return data, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("enhance: encoding result: %w", err)
	}
	return buf.Bytes(), nil
}

// applyPilSimple mirrors a lightweight PIL-style enhancement: a contrast
// multiply followed by a median-filter denoise, matching the
// { contrast_factor, median_size } parameters of spec.md §3.
func applyPilSimple(img image.Image, cfg domain.FilterConfig) image.Image {
	factor := cfg.ContrastFactor
	if factor <= 0 {
		factor = 1.0
	}
	out := imaging.AdjustContrast(img, contrastFactorToPercent(factor))
	if cfg.MedianSize > 1 {
		out = medianFilter(out, cfg.MedianSize)
	}
	return out
}

// applyOpenCvAdvanced approximates CLAHE-style local-contrast equalization
// and denoising with disintegration/imaging primitives, since no OpenCV
// binding is available; spec.md §4.2 already marks this path experimental.
func applyOpenCvAdvanced(img image.Image, cfg domain.FilterConfig) image.Image {
	out := img
	if cfg.DenoiseH > 0 {
		sigma := cfg.DenoiseH / 15.0
		out = imaging.Blur(out, sigma)
	}
	if cfg.ClaheClip > 0 {
		out = imaging.AdjustContrast(out, cfg.ClaheClip*20)
	}
	if cfg.AdaptiveThresh {
		out = adaptiveThreshold(out)
	}
	return out
}

// applyPolynomial applies the contrast/brightness/sharpen/unsharp-mask
// parameters predicted by the Polynomial filter-selection strategy.
func applyPolynomial(img image.Image, cfg domain.FilterConfig) image.Image {
	out := img
	if cfg.Contrast > 0 {
		out = imaging.AdjustContrast(out, contrastFactorToPercent(cfg.Contrast))
	}
	if cfg.Brightness > 0 {
		out = imaging.AdjustBrightness(out, brightnessFactorToPercent(cfg.Brightness))
	}
	if cfg.Sharpness > 0 {
		out = imaging.Sharpen(out, cfg.Sharpness)
	}
	if cfg.UnsharpRadius > 0 && cfg.UnsharpPercent > 0 {
		out = unsharpMask(out, cfg.UnsharpRadius, cfg.UnsharpPercent/100.0)
	}
	return out
}

// contrastFactorToPercent converts a PIL-style multiplicative contrast
// factor (1.0 = unchanged) into imaging.AdjustContrast's percent scale
// (-100..100).
func contrastFactorToPercent(factor float64) float64 {
	percent := (factor - 1.0) * 100
	return clampPercent(percent)
}

func brightnessFactorToPercent(factor float64) float64 {
	percent := (factor - 1.0) * 100
	return clampPercent(percent)
}

func clampPercent(p float64) float64 {
	if p < -100 {
		return -100
	}
	if p > 100 {
		return 100
	}
	return p
}
