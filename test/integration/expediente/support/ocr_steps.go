package support

import (
	"strings"

	"github.com/cucumber/godog"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/ocr"
)

// RegisterOCRSteps wires the OCR enhancement loop scenarios. The reference
// text and both readings are synthesized as runs of "a" so the Levenshtein
// distance to the reference is exactly the literal figure each scenario
// names: the distance between a string and the empty reference is just its
// length, which keeps the scenario text's numbers exact without depending on
// real OCR output.
func (ctx *TestContext) RegisterOCRSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a baseline OCR reading at distance (\d+) from the reference text$`, ctx.baselineReadingAtDistance)
	sc.Step(`^an enhanced OCR reading at distance (\d+) from the reference text$`, ctx.enhancedReadingAtDistance)
	sc.Step(`^the evaluation comparator chooses between them$`, ctx.evaluationComparatorChooses)
	sc.Step(`^the baseline reading wins$`, ctx.baselineReadingWins)
	sc.Step(`^the enhanced reading wins$`, ctx.enhancedReadingWins)
}

func (ctx *TestContext) baselineReadingAtDistance(distance int) error {
	ctx.reference = ""
	ctx.baselineResult = domain.OcrResult{Text: strings.Repeat("a", distance)}
	return nil
}

func (ctx *TestContext) enhancedReadingAtDistance(distance int) error {
	ctx.enhancedResult = domain.OcrResult{Text: strings.Repeat("a", distance)}
	return nil
}

func (ctx *TestContext) evaluationComparatorChooses() error {
	comparator := ocr.EvaluationComparator{Reference: ctx.reference}
	ctx.preferEnhanced = comparator.Prefer(ctx.baselineResult, ctx.enhancedResult)
	return nil
}

func (ctx *TestContext) baselineReadingWins() error {
	return requireTrue(!ctx.preferEnhanced, "comparator preferred the enhanced reading, want baseline")
}

func (ctx *TestContext) enhancedReadingWins() error {
	return requireTrue(ctx.preferEnhanced, "comparator preferred the baseline reading, want enhanced")
}
