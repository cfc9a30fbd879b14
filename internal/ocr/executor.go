// Package ocr defines the OCR Executor collaborator (spec.md §4.4) and the
// enhancement loop that decides whether filtering improves recognition
// (spec.md §4.5). The core treats OCR as a black box: it only reads
// confidences and text, never engine internals.
package ocr

import (
	"context"
	"fmt"
	"sort"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// Executor runs OCR over image bytes. Implementations must reject
// null/empty input deterministically and must not mutate the input bytes.
type Executor interface {
	Execute(ctx context.Context, imageBytes []byte, cfg domain.OcrConfig) (domain.OcrResult, error)
}

// ErrEmptyInput is returned by every Executor for nil/empty image bytes.
var ErrEmptyInput = fmt.Errorf("ocr: empty input")

func validateInput(imageBytes []byte) error {
	if len(imageBytes) == 0 {
		return ErrEmptyInput
	}
	return nil
}

// summarizeConfidences computes mean and median from a slice of per-word
// confidences, returning (0, 0) for an empty slice.
func summarizeConfidences(confidences []float64) (mean, median float64) {
	if len(confidences) == 0 {
		return 0, 0
	}
	var sum float64
	for _, c := range confidences {
		sum += c
	}
	mean = sum / float64(len(confidences))

	sorted := append([]float64(nil), confidences...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return mean, median
}
