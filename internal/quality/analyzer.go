// Package quality implements the image-quality analyzer described in
// spec.md §4.1: it scores a page image on blur, contrast, noise, and edge
// density, combines them into a single aggregate index, and buckets that
// index into a QualityBand the filter-selection strategies dispatch on.
package quality

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Analyzer computes an ImageQualityAssessment for a decoded page image.
type Analyzer interface {
	Analyze(img image.Image) (domain.ImageQualityAssessment, error)
}

// analyzer is the default Analyzer implementation. It holds no state; all
// inputs come from the image passed to Analyze.
type analyzer struct{}

// NewAnalyzer returns the default image-quality Analyzer.
func NewAnalyzer() Analyzer {
	return &analyzer{}
}

// Analyze implements Analyzer.
func (a *analyzer) Analyze(img image.Image) (domain.ImageQualityAssessment, error) {
	if img == nil {
		return domain.ImageQualityAssessment{}, fmt.Errorf("quality: nil image")
	}

	bounds := img.Bounds()
	if bounds.Dx() < 2 || bounds.Dy() < 2 {
		return domain.ImageQualityAssessment{}, fmt.Errorf("quality: image too small to analyze (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	gray := toGray(img)
	lum := luminanceSamples(gray)

	blur := laplacianVariance(gray)
	contrast := stat.StdDev(lum, nil)
	noise := noiseEstimate(gray)
	edgeDensity := sobelEdgeDensity(gray)

	index := aggregateIndex(blur, contrast, noise, edgeDensity)

	return domain.ImageQualityAssessment{
		BlurScore:    blur,
		Noise:        noise,
		Contrast:     contrast,
		Sharpness:    blur,
		EdgeDensity:  edgeDensity,
		QualityIndex: index,
		Band:         domain.BandForIndex(index),
	}, nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

func luminanceSamples(gray *image.Gray) []float64 {
	bounds := gray.Bounds()
	samples := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = append(samples, float64(gray.GrayAt(x, y).Y))
		}
	}
	return samples
}

// laplacianVariance is the variance-of-Laplacian blur metric (spec.md §4.1),
// grounded in the teacher-candidate anime-shed-image-inspector-go's
// computeLaplacianVariance.
func laplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	kernel := [3][3]int{{0, 1, 0}, {1, -4, 1}, {0, 1, 0}}

	var sum, sumSq float64
	n := 0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var val int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := int(gray.GrayAt(bounds.Min.X+x+kx, bounds.Min.Y+y+ky).Y)
					val += pixel * kernel[ky+1][kx+1]
				}
			}
			fVal := float64(val)
			sum += fVal
			sumSq += fVal * fVal
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	return (sumSq / float64(n)) - (mean * mean)
}

// noiseEstimate approximates sensor/compression noise as the median absolute
// deviation of a high-pass (original minus 3x3 box-blur) residual.
func noiseEstimate(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return 0
	}

	residuals := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var sum int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += int(gray.GrayAt(bounds.Min.X+x+kx, bounds.Min.Y+y+ky).Y)
				}
			}
			blurred := float64(sum) / 9.0
			orig := float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			residuals = append(residuals, math.Abs(orig-blurred))
		}
	}
	if len(residuals) == 0 {
		return 0
	}
	return 1.4826 * median(residuals)
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sortFloats(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// sobelEdgeDensity is the fraction of pixels whose Sobel gradient magnitude
// exceeds a fixed threshold, a proxy for how much of the page carries
// text/line structure versus blank background.
func sobelEdgeDensity(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return 0
	}

	const threshold = 50.0
	var edgeCount int
	var total int

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := int(gray.GrayAt(bounds.Min.X+x+1, bounds.Min.Y+y).Y) - int(gray.GrayAt(bounds.Min.X+x-1, bounds.Min.Y+y).Y)
			gy := int(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y+1).Y) - int(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y-1).Y)
			magnitude := math.Sqrt(float64(gx*gx + gy*gy))
			if magnitude > threshold {
				edgeCount++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(edgeCount) / float64(total)
}

// aggregateIndex combines the four component metrics into a single
// normalized index in [0, 1] via a geometric mean of per-metric scores,
// each first squashed into [0, 1] by a metric-specific saturating curve
// (spec.md §4.1).
func aggregateIndex(blur, contrast, noise, edgeDensity float64) float64 {
	blurScore := saturate(blur, 400.0)
	contrastScore := saturate(contrast, 60.0)
	noiseScore := 1.0 - saturate(noise, 25.0)
	edgeScore := saturate(edgeDensity, 0.25)

	product := blurScore * contrastScore * noiseScore * edgeScore
	if product <= 0 {
		return 0
	}
	return math.Pow(product, 0.25)
}

// saturate maps a non-negative metric onto [0, 1) with diminishing returns
// past scale, i.e. x/(x+scale).
func saturate(x, scale float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (x + scale)
}
