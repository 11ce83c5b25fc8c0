package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/designeval/design-evaluator-api/internal/models"
	"github.com/designeval/design-evaluator-api/internal/service"
)

// EvaluateHandler handles URL-based evaluation endpoints.
type EvaluateHandler struct {
	svc *service.EvaluatorService
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(svc *service.EvaluatorService) *EvaluateHandler {
	return &EvaluateHandler{svc: svc}
}

// URLAnalysisInput represents a URL analysis or comparison request.
type URLAnalysisInput struct {
	Body struct {
		URL           string `json:"url" minLength:"1" doc:"URL to capture and evaluate"`
		AnalysisType  string `json:"analysis_type,omitempty" enum:"heuristic,comparison" default:"heuristic" doc:"Evaluation mode"`
		ComparisonURL string `json:"comparison_url,omitempty" doc:"Second URL for comparisons"`
	}
}

// AnalysisOutput wraps a single-design evaluation result.
type AnalysisOutput struct {
	Body models.AnalysisRecord
}

// ComparisonOutput wraps a two-design comparison result.
type ComparisonOutput struct {
	Body models.ComparisonResult
}

// AnalyzeURL captures a screenshot of the request URL and evaluates it.
func (h *EvaluateHandler) AnalyzeURL(ctx context.Context, input *URLAnalysisInput) (*AnalysisOutput, error) {
	record, err := h.svc.AnalyzeURL(ctx, input.Body.URL)
	if err != nil {
		return nil, newServiceError(err, "URL analysis failed")
	}
	return &AnalysisOutput{Body: *record}, nil
}

// CompareURLs captures screenshots of both request URLs and compares them.
func (h *EvaluateHandler) CompareURLs(ctx context.Context, input *URLAnalysisInput) (*ComparisonOutput, error) {
	if input.Body.ComparisonURL == "" {
		return nil, huma.Error400BadRequest("comparison_url is required for URL comparison")
	}

	result, err := h.svc.CompareURLs(ctx, input.Body.URL, input.Body.ComparisonURL)
	if err != nil {
		return nil, newServiceError(err, "URL comparison failed")
	}
	return &ComparisonOutput{Body: *result}, nil
}
