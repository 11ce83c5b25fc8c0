package analysis

import (
	"strconv"

	"github.com/designeval/design-evaluator-api/internal/heuristics"
	"github.com/designeval/design-evaluator-api/internal/models"
)

// Defaults applied when the model omits or garbles a field.
const (
	DefaultOverallScore   = 75.0
	DefaultHeuristicScore = 7.5
	DefaultSummary        = "Analysis completed."

	fallbackReasoning = "Analysis parsing failed - generic score provided"
	backfillReasoning = "No reasoning provided for this heuristic."
)

// Normalize converts an untrusted RawRecord into a complete AnalysisRecord.
// Missing or malformed fields get defaults; per-heuristic maps are back-filled
// so they always cover the full heuristic catalog, and keys outside the
// catalog are dropped. Scores are clamped to their declared domains.
func Normalize(raw models.RawRecord) *models.AnalysisRecord {
	rec := &models.AnalysisRecord{
		OverallScore:        clamp(numberField(raw, "overall_score", DefaultOverallScore), 0, 100),
		HeuristicScores:     make(map[string]float64, heuristics.Count()),
		HeuristicReasoning:  make(map[string]string, heuristics.Count()),
		Recommendations:     stringListField(raw, "recommendations"),
		Strengths:           stringListField(raw, "strengths"),
		AreasForImprovement: stringListField(raw, "areas_for_improvement"),
		Summary:             stringField(raw, "summary", DefaultSummary),
	}

	scores, _ := raw["heuristic_scores"].(map[string]any)
	reasoning, _ := raw["heuristic_reasoning"].(map[string]any)

	for _, key := range heuristics.Keys() {
		score := DefaultHeuristicScore
		if v, ok := scores[key]; ok {
			if n, ok := asNumber(v); ok {
				score = clamp(n, 0, 10)
			}
		}
		rec.HeuristicScores[key] = score

		text := backfillReasoning
		if v, ok := reasoning[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				text = s
			}
		}
		rec.HeuristicReasoning[key] = text
	}

	return rec
}

// FallbackRecord builds the schema-valid record substituted when a model
// reply cannot be parsed into usable data. diag is the extraction diagnostic
// surfaced to the caller inside the recommendations list.
func FallbackRecord(diag string) *models.AnalysisRecord {
	scores := make(map[string]float64, heuristics.Count())
	reasoning := make(map[string]string, heuristics.Count())
	for _, key := range heuristics.Keys() {
		scores[key] = DefaultHeuristicScore
		reasoning[key] = fallbackReasoning
	}

	return &models.AnalysisRecord{
		OverallScore:       DefaultOverallScore,
		HeuristicScores:    scores,
		HeuristicReasoning: reasoning,
		Recommendations: []string{
			"JSON parsing failed: " + diag,
			"The AI provided an analysis but in an unexpected format",
		},
		Strengths:           []string{"AI response received but parsing failed"},
		AreasForImprovement: []string{"Please try uploading the image again"},
		Summary:             "Analysis completed but detailed parsing failed - check server logs",
	}
}

// numberField reads a numeric field, falling back to def when the value is
// absent or not numeric.
func numberField(raw models.RawRecord, key string, def float64) float64 {
	if v, ok := raw[key]; ok {
		if n, ok := asNumber(v); ok {
			return n
		}
	}
	return def
}

// stringField reads a string field with a default.
func stringField(raw models.RawRecord, key, def string) string {
	if s, ok := raw[key].(string); ok && s != "" {
		return s
	}
	return def
}

// stringListField reads a list of strings, skipping non-string entries.
// Always returns a non-nil slice so the JSON encoding is [] rather than null.
func stringListField(raw models.RawRecord, key string) []string {
	out := []string{}
	items, ok := raw[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asNumber accepts JSON numbers and numeric strings. Models sometimes quote
// scores (e.g. "overall_score": "85").
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
