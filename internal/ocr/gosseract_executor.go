package ocr

import (
	"context"
	"fmt"
	"strconv"

	"github.com/otiai10/gosseract/v2"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// GosseractExecutor is the production Executor, backed by a fresh tesseract
// client per call (spec.md §5 treats the OCR engine as a limited-concurrency
// pool; this adapter does not limit concurrency itself — it creates and
// closes one client per Execute call).
type GosseractExecutor struct{}

// NewGosseractExecutor returns the production, tesseract-backed Executor.
func NewGosseractExecutor() *GosseractExecutor {
	return &GosseractExecutor{}
}

// Execute implements Executor.
func (e *GosseractExecutor) Execute(ctx context.Context, imageBytes []byte, cfg domain.OcrConfig) (domain.OcrResult, error) {
	if err := validateInput(imageBytes); err != nil {
		return domain.OcrResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.OcrResult{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	language := cfg.Language
	if language == "" {
		language = "spa"
	}
	if err := client.SetLanguage(language, cfg.FallbackLanguage); err != nil {
		return domain.OcrResult{}, fmt.Errorf("ocr: setting language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
		return domain.OcrResult{}, fmt.Errorf("ocr: setting page segmentation mode: %w", err)
	}
	if err := client.SetVariable("tessedit_ocr_engine_mode", strconv.Itoa(cfg.EngineMode)); err != nil {
		return domain.OcrResult{}, fmt.Errorf("ocr: setting engine mode: %w", err)
	}
	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return domain.OcrResult{}, fmt.Errorf("ocr: setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return domain.OcrResult{}, fmt.Errorf("ocr: recognizing text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	var confidences []float64
	if err == nil {
		confidences = make([]float64, 0, len(boxes))
		for _, b := range boxes {
			confidences = append(confidences, b.Confidence/100.0)
		}
	}
	mean, median := summarizeConfidences(confidences)

	return domain.OcrResult{
		Text:             text,
		MeanConfidence:   mean,
		MedianConfidence: median,
		WordConfidences:  confidences,
		LanguageUsed:     language,
	}, nil
}
