// Package models defines the domain types for design evaluation.
package models

// Winner identifies the outcome of a two-design comparison.
type Winner string

// Comparison outcomes.
const (
	WinnerDesignA Winner = "design_a"
	WinnerDesignB Winner = "design_b"
	WinnerTie     Winner = "tie"
)

// RawRecord is the untrusted mapping parsed from a model reply. It has no
// guaranteed shape; all field reads go through the normalizer, which converts
// it into a schema-valid AnalysisRecord. Nothing downstream of the normalizer
// touches a RawRecord.
type RawRecord map[string]any

// AnalysisRecord is the normalized, schema-valid scoring result for one
// design. Both per-heuristic maps cover the full heuristic catalog.
// Records are constructed once per request and never mutated.
type AnalysisRecord struct {
	OverallScore        float64            `json:"overall_score"`
	HeuristicScores     map[string]float64 `json:"heuristic_scores"`
	HeuristicReasoning  map[string]string  `json:"heuristic_reasoning"`
	Recommendations     []string           `json:"recommendations"`
	Strengths           []string           `json:"strengths"`
	AreasForImprovement []string           `json:"areas_for_improvement"`
	Summary             string             `json:"summary"`
}

// ComparisonResult is the derived outcome of scoring two designs. It is only
// ever computed from two normalized AnalysisRecords, never constructed from
// model output directly.
type ComparisonResult struct {
	Winner          Winner          `json:"winner"`
	Reasoning       string          `json:"reasoning"`
	DesignAScore    float64         `json:"design_a_score"`
	DesignBScore    float64         `json:"design_b_score"`
	Recommendations []string        `json:"recommendations"`
	DesignAAnalysis *AnalysisRecord `json:"design_a_analysis,omitempty"`
	DesignBAnalysis *AnalysisRecord `json:"design_b_analysis,omitempty"`
}
