// Package analysis implements the response-normalization pipeline: extracting
// a JSON object from a free-text model reply, normalizing it into a
// schema-valid AnalysisRecord, and comparing two records.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/designeval/design-evaluator-api/internal/models"
)

// ErrExtractionFailed is returned when no parseable JSON object can be
// located in a model reply. Callers absorb it into a fallback record; it is
// never surfaced as an HTTP error.
var ErrExtractionFailed = errors.New("no valid JSON object in model response")

var (
	// Fenced code block, optionally tagged as json, containing an object.
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

	// Trailing commas before a closing brace or bracket.
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON locates and parses the single JSON object in a model reply,
// tolerating markdown fences, surrounding prose, and trailing commas.
// Candidates are tried in order of preference: fenced block, first-{ to
// last-} span, whole trimmed input. A candidate that parses to anything
// other than an object is an extraction failure.
func ExtractJSON(text string) (models.RawRecord, error) {
	candidate := findCandidate(text)
	if candidate == "" {
		return nil, fmt.Errorf("%w: empty response", ErrExtractionFailed)
	}

	var parsed models.RawRecord
	if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
		return parsed, nil
	}

	// Repair pass: models frequently emit trailing commas, which strict JSON
	// rejects. Strip them and retry once.
	repaired := trailingCommaRe.ReplaceAllString(candidate, "$1")
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return parsed, nil
}

// findCandidate picks the most likely JSON span from the reply.
func findCandidate(text string) string {
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
