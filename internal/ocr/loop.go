package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/enhance"
	"github.com/cnbv-expediente/expediente-core/internal/filterselect"
	"github.com/cnbv-expediente/expediente-core/internal/quality"
)

// Loop implements the OCR Enhancement Loop of spec.md §4.5: it runs OCR on
// the raw bytes, decides whether filtering would help using the quality
// assessment and a filter-selection strategy, and returns whichever result
// the Comparator prefers. A failure past the baseline OCR (decode, analysis,
// filter, enhanced OCR) downgrades to the baseline result with a warning;
// only a baseline OCR failure or a cancelled context returns an error.
type Loop struct {
	Analyzer   quality.Analyzer
	Strategy   filterselect.Strategy
	Filter     enhance.Filter
	Executor   Executor
	Comparator Comparator
}

// NewLoop wires the default production Loop.
func NewLoop(analyzer quality.Analyzer, strategy filterselect.Strategy, filter enhance.Filter, executor Executor, comparator Comparator) *Loop {
	return &Loop{Analyzer: analyzer, Strategy: strategy, Filter: filter, Executor: executor, Comparator: comparator}
}

// Run executes the loop and returns the winning OCR result plus any
// non-fatal warnings collected along the way.
func (l *Loop) Run(ctx context.Context, rawBytes []byte, cfg domain.OcrConfig) (domain.OcrResult, []string, error) {
	var warnings []string

	baseline, err := l.Executor.Execute(ctx, rawBytes, cfg)
	if err != nil {
		return domain.OcrResult{}, warnings, fmt.Errorf("ocr: baseline OCR failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return baseline, warnings, err
	}

	img, _, err := image.Decode(bytes.NewReader(rawBytes))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr loop: could not decode image for quality analysis: %v", err))
		return baseline, warnings, nil
	}

	assessment, err := l.Analyzer.Analyze(img)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr loop: quality analysis failed: %v", err))
		return baseline, warnings, nil
	}

	filterCfg := l.Strategy.SelectFilter(assessment)
	if !filterCfg.EnableEnhancement {
		return baseline, warnings, nil
	}

	enhancedBytes, err := l.Filter.Enhance(rawBytes, filterCfg)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr loop: filter failed, using baseline: %v", err))
		return baseline, warnings, nil
	}

	if err := ctx.Err(); err != nil {
		return baseline, warnings, err
	}

	enhanced, err := l.Executor.Execute(ctx, enhancedBytes, cfg)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ocr loop: enhanced OCR failed, using baseline: %v", err))
		return baseline, warnings, nil
	}

	if l.Comparator.Prefer(baseline, enhanced) {
		return enhanced, warnings, nil
	}
	return baseline, warnings, nil
}
