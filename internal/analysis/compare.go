package analysis

import (
	"fmt"
	"strings"

	"github.com/designeval/design-evaluator-api/internal/models"
)

// TieBand is the score difference below which two designs are considered
// equivalent. Differences under 5 points are within model scoring noise.
const TieBand = 5.0

// maxMergedRecommendations caps the merged recommendation list.
const maxMergedRecommendations = 4

// genericRecommendations is substituted when neither record carries any
// recommendations.
var genericRecommendations = []string{
	"Focus on improving visual hierarchy and consistency",
	"Consider user testing to validate the design choice",
	"Iterate on the weaker areas identified in the analysis",
}

// Compare derives a ComparisonResult from two normalized records. Inputs are
// always schema-valid (the normalizer absorbs upstream failures), so Compare
// itself cannot fail.
func Compare(a, b *models.AnalysisRecord) *models.ComparisonResult {
	winner := pickWinner(a.OverallScore, b.OverallScore)

	return &models.ComparisonResult{
		Winner:          winner,
		Reasoning:       composeReasoning(winner, a, b),
		DesignAScore:    a.OverallScore,
		DesignBScore:    b.OverallScore,
		Recommendations: mergeRecommendations(a.Recommendations, b.Recommendations),
		DesignAAnalysis: a,
		DesignBAnalysis: b,
	}
}

// pickWinner applies the tie band, then the sign of the score difference.
func pickWinner(scoreA, scoreB float64) models.Winner {
	d := scoreA - scoreB
	if d < 0 {
		d = -d
	}
	if d < TieBand {
		return models.WinnerTie
	}
	if scoreA > scoreB {
		return models.WinnerDesignA
	}
	return models.WinnerDesignB
}

// composeReasoning builds the deterministic explanation from the two scores
// and summaries. All numbers are formatted to one decimal place.
func composeReasoning(winner models.Winner, a, b *models.AnalysisRecord) string {
	parts := []string{
		fmt.Sprintf("Design A scored %.1f/100. %s", a.OverallScore, a.Summary),
		fmt.Sprintf("Design B scored %.1f/100. %s", b.OverallScore, b.Summary),
	}

	gap := a.OverallScore - b.OverallScore
	if gap < 0 {
		gap = -gap
	}

	if winner == models.WinnerTie {
		parts = append(parts, fmt.Sprintf("The designs are very close in quality (difference: %.1f points).", gap))
	} else {
		parts = append(parts, fmt.Sprintf("The winning design scored %.1f points higher.", gap))
	}

	return strings.Join(parts, " ")
}

// mergeRecommendations takes up to two recommendations from each record and
// caps the combined list at four, substituting a generic set when both
// records are empty.
func mergeRecommendations(recsA, recsB []string) []string {
	merged := []string{}
	merged = append(merged, firstN(recsA, 2)...)
	merged = append(merged, firstN(recsB, 2)...)

	if len(merged) == 0 {
		return append([]string{}, genericRecommendations...)
	}
	if len(merged) > maxMergedRecommendations {
		merged = merged[:maxMergedRecommendations]
	}
	return merged
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}
