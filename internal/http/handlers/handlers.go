// Package handlers contains HTTP handlers for the API.
package handlers

import (
	"context"
)

// RootOutput represents the service banner response.
type RootOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// Root returns the service banner.
func Root(ctx context.Context, input *struct{}) (*RootOutput, error) {
	out := &RootOutput{}
	out.Body.Message = "Design Evaluator API is running"
	return out, nil
}

// HealthCheckOutput represents the health check response.
type HealthCheckOutput struct {
	Body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
}

// HealthCheck reports liveness. It performs no dependency probes; a process
// that can serve the route is healthy.
func HealthCheck(ctx context.Context, input *struct{}) (*HealthCheckOutput, error) {
	out := &HealthCheckOutput{}
	out.Body.Status = "healthy"
	out.Body.Message = "Design Evaluator API is operational"
	return out, nil
}
