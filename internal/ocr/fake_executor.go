package ocr

import (
	"context"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
)

// FakeExecutor is a deterministic Executor used by tests and by the
// enhancement-loop evaluation harness (spec.md §8): it maps exact byte
// slices to canned results instead of invoking a real OCR engine.
type FakeExecutor struct {
	// Responses maps a string(imageBytes) key to the OcrResult returned for
	// that exact input. Unregistered inputs fall back to Default.
	Responses map[string]domain.OcrResult
	Default   domain.OcrResult
	Err       error
}

// NewFakeExecutor returns an empty FakeExecutor; populate Responses/Default
// before use.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{Responses: make(map[string]domain.OcrResult)}
}

// Execute implements Executor.
func (f *FakeExecutor) Execute(ctx context.Context, imageBytes []byte, cfg domain.OcrConfig) (domain.OcrResult, error) {
	if err := validateInput(imageBytes); err != nil {
		return domain.OcrResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.OcrResult{}, err
	}
	if f.Err != nil {
		return domain.OcrResult{}, f.Err
	}
	if result, ok := f.Responses[string(imageBytes)]; ok {
		return result, nil
	}
	return f.Default, nil
}
