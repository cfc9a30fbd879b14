package domain

// FusionDecision is the outcome of reconciling one field's candidates across
// sources (spec.md §3, §4.9.2).
type FusionDecision int

const (
	AllSourcesNull FusionDecision = iota
	AllAgree
	FuzzyAgreement
	WeightedVoting
	BestEffort
	Conflict
)

func (d FusionDecision) String() string {
	switch d {
	case AllSourcesNull:
		return "AllSourcesNull"
	case AllAgree:
		return "AllAgree"
	case FuzzyAgreement:
		return "FuzzyAgreement"
	case WeightedVoting:
		return "WeightedVoting"
	case BestEffort:
		return "BestEffort"
	case Conflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// ConflictingValue pairs a source with the value it contributed when a field
// could not be reconciled.
type ConflictingValue struct {
	Source SourceKind
	Value  string
}

// FieldFusionResult is the fusion outcome for a single field (spec.md §3).
type FieldFusionResult struct {
	Field               string
	SelectedValue       *string
	Confidence          float64
	Decision            FusionDecision
	ContributingSources []SourceKind
	WinningSource       *SourceKind
	FuzzySimilarity      *float64
	RequiresManualReview bool
	SuggestReview        bool
	ConflictingValues    []ConflictingValue
}

// NextAction is the terminal decision of the pipeline (spec.md §4.9.3).
type NextAction int

const (
	AutoProcess NextAction = iota
	ReviewRecommended
	ManualReviewRequired
)

func (a NextAction) String() string {
	switch a {
	case AutoProcess:
		return "AutoProcess"
	case ReviewRecommended:
		return "ReviewRecommended"
	case ManualReviewRequired:
		return "ManualReviewRequired"
	default:
		return "Unknown"
	}
}

// FusionResult is the final, fused outcome of a pipeline run (spec.md §3).
type FusionResult struct {
	Expediente             *Expediente
	OverallConfidence      float64
	RequiredFieldsScore    float64
	OptionalFieldsScore    float64
	ConflictingFields      []string
	MissingRequiredFields  []string
	NextAction             NextAction
	FieldResults           map[string]FieldFusionResult
	SourceReliability      map[SourceKind]float64
}
