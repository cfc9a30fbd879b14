package docx

import (
	"regexp"
	"strings"
)

// TableStructure describes the shape of one table found during structure
// analysis (spec.md §4.7).
type TableStructure struct {
	RowCount       int
	HasHeaderRow   bool
	ColumnHeaders  []string
}

// DocxStructure is the output of analyze_structure (spec.md §4.7): a set of
// structural flags plus the shape of each detected table.
type DocxStructure struct {
	HasTables           bool
	HasBoldLabels       bool
	HasCrossReferences  bool
	HasStructuredFormat bool
	HasKeyValuePairs    bool
	Tables              []TableStructure
}

// RecommendedStrategy is the structure analyzer's suggested strategy name,
// for diagnostics; the orchestrator itself always consults every
// strategy's own Confidence rather than trusting this alone.
type RecommendedStrategy string

const (
	RecommendTableBased RecommendedStrategy = "TableBased"
	RecommendFuzzy      RecommendedStrategy = "Fuzzy"
	RecommendHybrid     RecommendedStrategy = "Hybrid"
)

var crossReferencePhrases = []string{
	"arriba mencionada", "arriba mencionado", "anteriormente indicado", "previamente", "antes señalado", "antes mencionado",
}

var keyValueLine = regexp.MustCompile(`^[A-Za-zÀ-ÿ0-9 ._-]{2,40}:\s*\S`)

// AnalyzeStructure implements spec.md §4.7's analyze_structure(bytes) →
// DocxStructure contract, operating on an already-parsed document.
func AnalyzeStructure(doc *ParsedDocument) DocxStructure {
	s := DocxStructure{}

	for _, table := range doc.Tables {
		ts := TableStructure{RowCount: len(table.Rows)}
		if len(table.Rows) > 0 {
			ts.HasHeaderRow = true
			ts.ColumnHeaders = table.Rows[0].Cells
		}
		s.Tables = append(s.Tables, ts)
	}
	s.HasTables = len(doc.Tables) > 0

	for _, p := range doc.Paragraphs {
		if p.Bold {
			s.HasBoldLabels = true
		}
		lower := strings.ToLower(p.Text)
		for _, phrase := range crossReferencePhrases {
			if strings.Contains(lower, phrase) {
				s.HasCrossReferences = true
				break
			}
		}
		if keyValueLine.MatchString(strings.TrimSpace(p.Text)) {
			s.HasKeyValuePairs = true
		}
	}

	s.HasStructuredFormat = s.HasTables || s.HasKeyValuePairs

	return s
}

// Recommend implements the "Recommends a strategy" language of spec.md
// §4.7: TableBased when a header row and ≥2 data rows exist; Fuzzy when no
// structural signals exist; Hybrid when cross-references and structure
// coexist.
func (s DocxStructure) Recommend() RecommendedStrategy {
	for _, t := range s.Tables {
		if t.HasHeaderRow && t.RowCount >= 3 {
			return RecommendTableBased
		}
	}
	if s.HasCrossReferences && s.HasStructuredFormat {
		return RecommendHybrid
	}
	if !s.HasTables && !s.HasBoldLabels && !s.HasKeyValuePairs && !s.HasCrossReferences {
		return RecommendFuzzy
	}
	return RecommendFuzzy
}
