package support

import (
	"time"

	"github.com/cucumber/godog"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/fusion"
)

// RegisterFusionSteps wires the field-fusion decision scenarios.
func (ctx *TestContext) RegisterFusionSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the XML source reports case id "([^"]*)" with area "([^"]*)"$`, ctx.xmlReportsCaseIDAndArea)
	sc.Step(`^the PDF source reports the same case id$`, ctx.pdfReportsSameCaseID)
	sc.Step(`^the DOCX source reports the same case id$`, ctx.docxReportsSameCaseID)
	sc.Step(`^the PDF source reports case id "([^"]*)"$`, ctx.pdfReportsCaseID)
	sc.Step(`^fusion runs over the three sources$`, ctx.fusionRunsOverThreeSources)
	sc.Step(`^the case id decision is "([^"]*)" with confidence ([\d.]+)$`, ctx.caseIDDecisionIsWithConfidence)
	sc.Step(`^the case id decision is "([^"]*)"$`, ctx.caseIDDecisionIs)
	sc.Step(`^the next action is "([^"]*)"$`, ctx.nextActionIs)
	sc.Step(`^the fused case id is "([^"]*)"$`, ctx.fusedCaseIDIs)

	sc.Step(`^two area description readings of "([^"]*)" and "([^"]*)" with nearly equal source reliability$`, ctx.twoAreaReadingsNearlyEqualReliability)
	sc.Step(`^field fusion decides the area description field alone$`, ctx.fieldFusionDecidesAreaAlone)
	sc.Step(`^the decision is "([^"]*)"$`, ctx.decisionIs)
	sc.Step(`^the field requires manual review$`, ctx.fieldRequiresManualReview)
}

// xmlExpedienteFor builds an Expediente with every fusable field populated,
// so the only source of disagreement between scenarios is the field each
// scenario deliberately varies (the case id). A sparsely-populated fixture
// would leave most optional fields at AllSourcesNull and drag the aggregate
// score below the AutoProcess threshold regardless of how well the sources
// agree on the fields under test.
func xmlExpedienteFor(caseID, area string) *domain.Expediente {
	return &domain.Expediente{
		CaseID:               caseID,
		OficioID:             "OF-778",
		Folio:                "F-100",
		Anio:                 2025,
		AreaCodigo:           "AS",
		AreaDescripcion:      area,
		FechaPublicacion:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		PlazoDias:            10,
		AutoridadSolicitante: "Fiscalia General",
		Referencias:          [3]string{"REF-1", "REF-2", "REF-3"},
		TieneAseguramiento:   true,
		Causa:                "Lavado de dinero",
		AccionSolicitada:     "Aseguramiento de cuentas",
	}
}

func (ctx *TestContext) xmlReportsCaseIDAndArea(caseID, area string) error {
	ctx.xmlExpediente = xmlExpedienteFor(caseID, area)
	return nil
}

func (ctx *TestContext) pdfReportsSameCaseID() error {
	ctx.pdfCaseID = strPtr(ctx.xmlExpediente.CaseID)
	return nil
}

func (ctx *TestContext) docxReportsSameCaseID() error {
	ctx.docxCaseID = strPtr(ctx.xmlExpediente.CaseID)
	return nil
}

func (ctx *TestContext) pdfReportsCaseID(caseID string) error {
	ctx.pdfCaseID = strPtr(caseID)
	return nil
}

func (ctx *TestContext) fusionRunsOverThreeSources() error {
	engine := fusion.NewEngine(domain.DefaultFusionCoefficients())

	inputs := [3]fusion.DocumentInput{
		{Source: domain.SourceXML, Present: true, XML: ctx.xmlExpediente, Metadata: domain.NewXMLMetadata()},
	}
	if ctx.pdfCaseID != nil {
		meanConf, quality := 0.95, 0.9
		words, lowConf := 100, 2
		inputs[1] = fusion.DocumentInput{
			Source: domain.SourcePDF, Present: true,
			Fields: domain.ExtractedFields{CaseID: ctx.pdfCaseID, AdditionalFields: map[string]string{}},
			Metadata: domain.ExtractionMetadata{
				Source: domain.SourcePDF, MeanConfidence: &meanConf, WordCount: &words,
				LowConfWords: &lowConf, QualityIndex: &quality, TotalFieldsExtracted: 1, RegexMatches: 1,
			},
		}
	} else {
		inputs[1] = fusion.DocumentInput{Source: domain.SourcePDF, Present: false}
	}
	if ctx.docxCaseID != nil {
		inputs[2] = fusion.DocumentInput{
			Source: domain.SourceDOCX, Present: true,
			Fields:   domain.ExtractedFields{CaseID: ctx.docxCaseID, AdditionalFields: map[string]string{}},
			Metadata: domain.ExtractionMetadata{Source: domain.SourceDOCX, TotalFieldsExtracted: 1},
		}
	} else {
		inputs[2] = fusion.DocumentInput{Source: domain.SourceDOCX, Present: false}
	}

	ctx.fusionResult = engine.Fuse(inputs)
	return nil
}

func (ctx *TestContext) caseIDDecisionIsWithConfidence(decision string, confidence float64) error {
	result := ctx.fusionResult.FieldResults["case_id"]
	if err := requireTrue(result.Decision.String() == decision, "case id decision is %q, want %q", result.Decision.String(), decision); err != nil {
		return err
	}
	return requireTrue(result.Confidence == confidence, "case id confidence is %v, want %v", result.Confidence, confidence)
}

func (ctx *TestContext) caseIDDecisionIs(decision string) error {
	got := ctx.fusionResult.FieldResults["case_id"].Decision.String()
	return requireTrue(got == decision, "case id decision is %q, want %q", got, decision)
}

func (ctx *TestContext) nextActionIs(action string) error {
	got := ctx.fusionResult.NextAction.String()
	return requireTrue(got == action, "next action is %q, want %q", got, action)
}

func (ctx *TestContext) fusedCaseIDIs(caseID string) error {
	if ctx.fusionResult.Expediente == nil {
		return requireTrue(false, "fusion produced no expediente")
	}
	return requireTrue(ctx.fusionResult.Expediente.CaseID == caseID, "fused case id is %q, want %q", ctx.fusionResult.Expediente.CaseID, caseID)
}

func (ctx *TestContext) twoAreaReadingsNearlyEqualReliability(first, second string) error {
	ctx.areaCandidates = []domain.FieldCandidate{
		{Source: domain.SourceXML, Value: strPtr(first), Reliability: 0.60, MatchesPattern: true, MatchesCatalog: true},
		{Source: domain.SourcePDF, Value: strPtr(second), Reliability: 0.59, MatchesPattern: true, MatchesCatalog: true},
	}
	return nil
}

func (ctx *TestContext) fieldFusionDecidesAreaAlone() error {
	ctx.fieldDecision = fusion.DecideField("area_descripcion", ctx.areaCandidates, domain.DefaultFusionCoefficients())
	return nil
}

func (ctx *TestContext) decisionIs(decision string) error {
	got := ctx.fieldDecision.Decision.String()
	return requireTrue(got == decision, "decision is %q, want %q", got, decision)
}

func (ctx *TestContext) fieldRequiresManualReview() error {
	return requireTrue(ctx.fieldDecision.RequiresManualReview, "field does not require manual review")
}
