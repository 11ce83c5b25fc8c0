// Package service orchestrates the scoring pipeline: screenshot or upload →
// model call → JSON extraction → normalization → (comparison).
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/designeval/design-evaluator-api/internal/analysis"
	"github.com/designeval/design-evaluator-api/internal/heuristics"
	"github.com/designeval/design-evaluator-api/internal/models"
)

// ModelClient sends one prompt plus one image to the multimodal model.
type ModelClient interface {
	AnalyzeImage(ctx context.Context, prompt string, image []byte) (string, error)
}

// Capturer renders a URL to a PNG screenshot.
type Capturer interface {
	Capture(ctx context.Context, url string) ([]byte, error)
}

// EvaluatorService runs design evaluations. Extraction failures are always
// absorbed into fallback records; only model and capture failures propagate.
type EvaluatorService struct {
	model    ModelClient
	capturer Capturer
	logger   *slog.Logger
}

// NewEvaluatorService creates an evaluator service.
func NewEvaluatorService(model ModelClient, capturer Capturer, logger *slog.Logger) *EvaluatorService {
	return &EvaluatorService{
		model:    model,
		capturer: capturer,
		logger:   logger,
	}
}

// AnalyzeImage scores one design image against the heuristic catalog.
// The returned record is always schema-valid: an unparseable model reply
// yields the fallback record, not an error.
func (s *EvaluatorService) AnalyzeImage(ctx context.Context, image []byte) (*models.AnalysisRecord, error) {
	requestID := ulid.Make().String()

	s.logger.Info("starting design analysis",
		"request_id", requestID,
		"image_bytes", len(image),
	)

	reply, err := s.model.AnalyzeImage(ctx, heuristics.EvaluationPrompt(), image)
	if err != nil {
		s.logger.Error("model request failed", "request_id", requestID, "error", err)
		return nil, err
	}

	record := s.normalizeReply(requestID, reply)

	s.logger.Info("design analysis complete",
		"request_id", requestID,
		"overall_score", record.OverallScore,
	)

	return record, nil
}

// CompareImages scores two design images and derives a winner. The two model
// calls are independent, so they run concurrently and are joined before the
// comparator executes.
func (s *EvaluatorService) CompareImages(ctx context.Context, imageA, imageB []byte) (*models.ComparisonResult, error) {
	var recordA, recordB *models.AnalysisRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recordA, err = s.AnalyzeImage(gctx, imageA)
		return err
	})
	g.Go(func() error {
		var err error
		recordB, err = s.AnalyzeImage(gctx, imageB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analysis.Compare(recordA, recordB), nil
}

// AnalyzeURL captures a screenshot of url and scores it.
func (s *EvaluatorService) AnalyzeURL(ctx context.Context, url string) (*models.AnalysisRecord, error) {
	png, err := s.capturer.Capture(ctx, NormalizeURL(url))
	if err != nil {
		return nil, err
	}
	return s.AnalyzeImage(ctx, png)
}

// CompareURLs captures both URLs and compares the two designs. Captures run
// concurrently; so do the two analyses behind CompareImages.
func (s *EvaluatorService) CompareURLs(ctx context.Context, urlA, urlB string) (*models.ComparisonResult, error) {
	var pngA, pngB []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pngA, err = s.capturer.Capture(gctx, NormalizeURL(urlA))
		return err
	})
	g.Go(func() error {
		var err error
		pngB, err = s.capturer.Capture(gctx, NormalizeURL(urlB))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.CompareImages(ctx, pngA, pngB)
}

// normalizeReply turns a raw model reply into a schema-valid record,
// absorbing extraction failures into the fallback record.
func (s *EvaluatorService) normalizeReply(requestID, reply string) *models.AnalysisRecord {
	raw, err := analysis.ExtractJSON(reply)
	if err != nil {
		preview := reply
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		s.logger.Warn("failed to parse model response, using fallback record",
			"request_id", requestID,
			"error", err,
			"response_preview", preview,
		)
		return analysis.FallbackRecord(extractionDiag(err))
	}
	return analysis.Normalize(raw)
}

// extractionDiag strips the sentinel prefix so the fallback record carries
// just the decoder diagnostic.
func extractionDiag(err error) string {
	msg := err.Error()
	prefix := analysis.ErrExtractionFailed.Error() + ": "
	return strings.TrimPrefix(msg, prefix)
}

// NormalizeURL adds https:// when the URL has no scheme.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}
