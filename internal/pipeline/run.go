package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cnbv-expediente/expediente-core/internal/classify"
	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/extract/docx"
	"github.com/cnbv-expediente/expediente-core/internal/extract/pdfsource"
	"github.com/cnbv-expediente/expediente-core/internal/extract/xmlsource"
	"github.com/cnbv-expediente/expediente-core/internal/fusion"
)

// slotResult is one source's extraction outcome, written into its fixed
// index of domain.SourceOrder so fusion input ordering never depends on
// which goroutine finishes first (spec.md §4.9.4, §5) — the same
// fixed-slot-array technique as the teacher's internal/pipeline/parallel.go.
type slotResult struct {
	input    fusion.DocumentInput
	warnings []string
	err      error
}

// Run executes the full per-Expediente pipeline: the three source
// extractors run concurrently into fixed slots, their outputs are fused,
// and the fused Expediente is classified (spec.md §4.6-§4.11).
func (p *Pipeline) Run(ctx context.Context, doc Document) (Result, error) {
	started := time.Now()
	result, err := p.run(ctx, doc)
	if p.metrics != nil {
		p.metrics.observeRun(started, result, err)
	}
	return result, err
}

func (p *Pipeline) run(ctx context.Context, doc Document) (Result, error) {
	var slots [3]slotResult
	var wg sync.WaitGroup

	extractCtx, cancel := context.WithTimeout(ctx, p.cfg.ExtractionTimeout)
	defer cancel()

	for _, source := range domain.SourceOrder {
		source := source
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx := slotIndex(source)
			slots[idx] = p.extractSource(extractCtx, source, doc)
		}()
	}
	wg.Wait()

	var warnings []string
	var inputs [3]fusion.DocumentInput
	for i, slot := range slots {
		inputs[i] = slot.input
		warnings = append(warnings, slot.warnings...)
		if slot.err != nil {
			warnings = append(warnings, fmt.Sprintf("pipeline: %s extraction failed: %v", domain.SourceOrder[i], slot.err))
		}
	}

	fusionResult := p.fusionEngine.Fuse(inputs)
	if fusionResult.Expediente == nil {
		return Result{Fusion: fusionResult, Warnings: warnings}, fmt.Errorf("pipeline: fusion produced no Expediente")
	}

	classification := classify.Classify(fusionResult.Expediente)

	return Result{
		Fusion:         fusionResult,
		Classification: classification,
		Warnings:       warnings,
	}, nil
}

func slotIndex(source domain.SourceKind) int {
	for i, s := range domain.SourceOrder {
		if s == source {
			return i
		}
	}
	return 0
}

func (p *Pipeline) extractSource(ctx context.Context, source domain.SourceKind, doc Document) slotResult {
	switch source {
	case domain.SourceXML:
		return p.extractXML(doc.XML)
	case domain.SourcePDF:
		return p.extractPDF(ctx, doc.PDF)
	case domain.SourceDOCX:
		return p.extractDOCX(ctx, doc.DOCX)
	default:
		return slotResult{input: fusion.DocumentInput{Source: source, Present: false}}
	}
}

func (p *Pipeline) extractXML(data []byte) slotResult {
	if len(data) == 0 {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourceXML, Present: false}}
	}
	expediente, meta, additionalFields, warnings, err := xmlsource.Parse(data)
	if err != nil {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourceXML, Present: false}, warnings: warnings, err: err}
	}
	return slotResult{
		input: fusion.DocumentInput{
			Source:   domain.SourceXML,
			Present:  true,
			XML:      expediente,
			Fields:   domain.ExtractedFields{AdditionalFields: additionalFields},
			Metadata: meta,
		},
		warnings: warnings,
	}
}

func (p *Pipeline) extractPDF(ctx context.Context, data []byte) slotResult {
	if len(data) == 0 {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourcePDF, Present: false}}
	}

	img, err := pdfsource.ExtractFirstPageImage(data)
	if err != nil {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourcePDF, Present: false}, err: err}
	}

	imageBytes, err := encodePNG(img)
	if err != nil {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourcePDF, Present: false}, err: err}
	}

	ocrCtx, cancel := context.WithTimeout(ctx, p.cfg.OCRTimeout)
	defer cancel()

	ocrResult, warnings, err := p.ocrLoop.Run(ocrCtx, imageBytes, p.cfg.OCR)
	if err != nil {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourcePDF, Present: false}, warnings: warnings, err: err}
	}

	fields, meta := pdfsource.ExtractFields(ocrResult.Text)
	meta.MeanConfidence = &ocrResult.MeanConfidence
	return slotResult{
		input:    fusion.DocumentInput{Source: domain.SourcePDF, Present: true, Fields: fields, Metadata: meta},
		warnings: warnings,
	}
}

func (p *Pipeline) extractDOCX(ctx context.Context, data []byte) slotResult {
	if len(data) == 0 {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourceDOCX, Present: false}}
	}

	parsed, err := docx.ParseDocument(data)
	if err != nil {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourceDOCX, Present: false}, err: err}
	}

	fields, err := p.docxOrchestrator.Extract(ctx, parsed, p.cfg.DocxMode, nil)
	if err != nil {
		return slotResult{input: fusion.DocumentInput{Source: domain.SourceDOCX, Present: false}, err: err}
	}

	meta := domain.ExtractionMetadata{Source: domain.SourceDOCX}
	return slotResult{input: fusion.DocumentInput{Source: domain.SourceDOCX, Present: true, Fields: fields, Metadata: meta}}
}
