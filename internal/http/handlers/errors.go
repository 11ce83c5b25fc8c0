package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/designeval/design-evaluator-api/internal/screenshot"
)

// newServiceError maps a service failure to an HTTP error. Capture failures
// are attributed to the caller-supplied URL (400); everything else, including
// model provider failures, is a 500 under the endpoint-specific prefix.
func newServiceError(err error, prefix string) error {
	var capErr *screenshot.CaptureError
	if errors.As(err, &capErr) {
		return huma.Error400BadRequest("Failed to capture screenshot: " + capErr.Err.Error())
	}
	return huma.Error500InternalServerError(prefix + ": " + err.Error())
}
