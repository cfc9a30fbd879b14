package support

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/cnbv-expediente/expediente-core/internal/domain"
	"github.com/cnbv-expediente/expediente-core/internal/extract/docx"
)

// RegisterDocxSteps wires the DOCX complement-mode scenarios.
func (ctx *TestContext) RegisterDocxSteps(sc *godog.ScenarioContext) {
	sc.Step(`^an existing field set with case id "([^"]*)" and no RFC$`, ctx.existingFieldSetWithCaseID)
	sc.Step(`^a DOCX document whose body contains "([^"]*)"$`, ctx.docxDocumentWhoseBodyContains)
	sc.Step(`^the orchestrator runs in complement mode$`, ctx.orchestratorRunsInComplementMode)
	sc.Step(`^the case id remains "([^"]*)"$`, ctx.caseIDRemains)
	sc.Step(`^the additional field "([^"]*)" is "([^"]*)"$`, ctx.additionalFieldIs)
}

func (ctx *TestContext) existingFieldSetWithCaseID(caseID string) error {
	ctx.existingFields = domain.ExtractedFields{
		CaseID:           strPtr(caseID),
		AdditionalFields: make(map[string]string),
	}
	return nil
}

func (ctx *TestContext) docxDocumentWhoseBodyContains(bodyLine string) error {
	documentXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>%s</w:t></w:r></w:p>
  </w:body>
</w:document>`, bodyLine)

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	ctx.docxBytes = buf.Bytes()
	return nil
}

func (ctx *TestContext) orchestratorRunsInComplementMode() error {
	doc, err := docx.ParseDocument(ctx.docxBytes)
	if err != nil {
		return err
	}
	orchestrator := docx.NewOrchestrator()
	out, err := orchestrator.Extract(context.Background(), doc, docx.Complement, &ctx.existingFields)
	ctx.complementOut = out
	return err
}

func (ctx *TestContext) caseIDRemains(caseID string) error {
	if ctx.complementOut.CaseID == nil {
		return fmt.Errorf("complement result has no case id")
	}
	return requireTrue(*ctx.complementOut.CaseID == caseID, "case id is %q, want %q", *ctx.complementOut.CaseID, caseID)
}

func (ctx *TestContext) additionalFieldIs(key, value string) error {
	got, ok := ctx.complementOut.AdditionalFields[key]
	if !ok {
		return fmt.Errorf("additional field %q not present", key)
	}
	return requireTrue(got == value, "additional field %q is %q, want %q", key, got, value)
}
