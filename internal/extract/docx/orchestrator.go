package docx

import (
	"context"
	"sync"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/extract/merge"
)

// Mode selects one of the three orchestration behaviors of spec.md §4.7.
type Mode int

const (
	BestStrategy Mode = iota
	MergeAll
	Complement
)

// Orchestrator wires the four registered DOCX extraction strategies together
// and dispatches between them per the active Mode.
type Orchestrator struct {
	strategies []Strategy
}

// NewOrchestrator builds an Orchestrator with the standard strategy set:
// TableBased, KeyValueBoldLabel, Search, and Fuzzy. Complement mode runs
// whichever of these wins and fills the existing set's gaps with
// complementFields, so ComplementStrategy is not registered.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		strategies: []Strategy{
			NewTableBasedStrategy(),
			NewKeyValueBoldStrategy(),
			NewSearchStrategy(),
			NewFuzzyStrategy(),
		},
	}
}

// Extract runs the orchestrator against a parsed DOCX document. existing is
// the pre-fusion field set from other sources (XML/OCR); it is only
// consulted in Complement mode and may be nil.
func (o *Orchestrator) Extract(ctx context.Context, doc *ParsedDocument, mode Mode, existing *domain.ExtractedFields) (domain.ExtractedFields, error) {
	structure := AnalyzeStructure(doc)

	if err := ctx.Err(); err != nil {
		return domain.NewExtractedFields(), err
	}

	switch mode {
	case MergeAll:
		return o.mergeAll(ctx, doc, structure)
	case Complement:
		if existing == nil {
			return o.bestStrategy(ctx, doc, structure)
		}
		return o.complement(ctx, doc, structure, *existing)
	default:
		return o.bestStrategy(ctx, doc, structure)
	}
}

func (o *Orchestrator) bestStrategy(ctx context.Context, doc *ParsedDocument, structure DocxStructure) (domain.ExtractedFields, error) {
	best := o.pickBest(structure)
	if best == nil {
		return domain.NewExtractedFields(), nil
	}
	return best.Extract(ctx, doc)
}

func (o *Orchestrator) pickBest(structure DocxStructure) Strategy {
	var best Strategy
	bestConfidence := 0.0
	for _, s := range o.strategies {
		if !s.CanHandle(structure) {
			continue
		}
		c := s.Confidence(structure)
		if c > bestConfidence {
			bestConfidence = c
			best = s
		}
	}
	return best
}

func (o *Orchestrator) mergeAll(ctx context.Context, doc *ParsedDocument, structure DocxStructure) (domain.ExtractedFields, error) {
	type outcome struct {
		fields domain.ExtractedFields
		err    error
	}

	var applicable []Strategy
	for _, s := range o.strategies {
		if s.CanHandle(structure) && s.Confidence(structure) > 0 {
			applicable = append(applicable, s)
		}
	}
	if len(applicable) == 0 {
		return domain.NewExtractedFields(), nil
	}

	results := make([]outcome, len(applicable))
	var wg sync.WaitGroup
	for i, s := range applicable {
		wg.Add(1)
		go func(i int, s Strategy) {
			defer wg.Done()
			fields, err := s.Extract(ctx, doc)
			results[i] = outcome{fields: fields, err: err}
		}(i, s)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.NewExtractedFields(), err
	}

	inputs := make([]domain.ExtractedFields, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			continue
		}
		inputs = append(inputs, r.fields)
	}
	return merge.MultiSource(inputs...).Fields, nil
}

func (o *Orchestrator) complement(ctx context.Context, doc *ParsedDocument, structure DocxStructure, existing domain.ExtractedFields) (domain.ExtractedFields, error) {
	candidate, err := o.bestStrategy(ctx, doc, structure)
	if err != nil {
		return existing, err
	}
	if err := ctx.Err(); err != nil {
		return existing, err
	}
	return complementFields(existing, candidate), nil
}
