// Package docx implements the Adaptive DOCX Orchestrator of spec.md §4.7: a
// WordprocessingML reader plus a set of polymorphic extraction strategies
// dispatched by a structure analysis of the document.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxNode is a generic WordprocessingML element. Namespace prefixes (w:,
// etc.) are stripped by encoding/xml, leaving just the local tag name
// (p, r, t, b, tbl, tr, tc, ...), which is all the structure analysis needs.
type docxNode struct {
	XMLName xml.Name
	Content string     `xml:",chardata"`
	Nodes   []docxNode `xml:",any"`
}

// Paragraph is one <w:p> with its concatenated run text and whether any run
// in it carries bold formatting.
type Paragraph struct {
	Text string
	Bold bool
}

// TableRow is one <w:tr>'s cell texts, in column order.
type TableRow struct {
	Cells []string
}

// Table is one <w:tbl>'s rows.
type Table struct {
	Rows []TableRow
}

// ParsedDocument is the flattened view of a WordprocessingML body that the
// structure analyzer and extraction strategies operate over.
type ParsedDocument struct {
	Paragraphs []Paragraph
	Tables     []Table
	FullText   string
}

// ParseDocument reads the "word/document.xml" part of a .docx ZIP archive
// and flattens it into a ParsedDocument. Text runs within a paragraph are
// concatenated with single spaces, per spec.md §6.
func ParseDocument(data []byte) (*ParsedDocument, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("docx: empty input")
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx: not a valid zip archive: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("docx: opening word/document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return nil, fmt.Errorf("docx: reading word/document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("docx: archive has no word/document.xml")
	}

	var root docxNode
	if err := xml.Unmarshal(docXML, &root); err != nil {
		return nil, fmt.Errorf("docx: malformed document.xml: %w", err)
	}

	body := findChild(root, "body")
	if body == nil {
		return nil, fmt.Errorf("docx: document.xml has no body")
	}

	parsed := &ParsedDocument{}
	var fullTextParts []string

	for _, child := range body.Nodes {
		switch child.XMLName.Local {
		case "p":
			p := extractParagraph(child)
			parsed.Paragraphs = append(parsed.Paragraphs, p)
			if p.Text != "" {
				fullTextParts = append(fullTextParts, p.Text)
			}
		case "tbl":
			parsed.Tables = append(parsed.Tables, extractTable(child))
		}
	}

	parsed.FullText = strings.Join(fullTextParts, "\n")
	return parsed, nil
}

func findChild(n docxNode, local string) *docxNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

func extractParagraph(p docxNode) Paragraph {
	var runTexts []string
	bold := false
	for _, run := range p.Nodes {
		if run.XMLName.Local != "r" {
			continue
		}
		if runIsBold(run) {
			bold = true
		}
		if text := collectText(run); text != "" {
			runTexts = append(runTexts, text)
		}
	}
	return Paragraph{Text: strings.Join(runTexts, " "), Bold: bold}
}

func runIsBold(run docxNode) bool {
	rPr := findChild(run, "rPr")
	if rPr == nil {
		return false
	}
	return findChild(*rPr, "b") != nil
}

// collectText concatenates every descendant <w:t> element's character data,
// depth-first, joined by spaces.
func collectText(n docxNode) string {
	var parts []string
	if n.XMLName.Local == "t" {
		parts = append(parts, strings.TrimSpace(n.Content))
	}
	for _, child := range n.Nodes {
		if text := collectText(child); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func extractTable(tbl docxNode) Table {
	var table Table
	for _, row := range tbl.Nodes {
		if row.XMLName.Local != "tr" {
			continue
		}
		var cells []string
		for _, cell := range row.Nodes {
			if cell.XMLName.Local != "tc" {
				continue
			}
			cells = append(cells, collectText(cell))
		}
		table.Rows = append(table.Rows, TableRow{Cells: cells})
	}
	return table
}
