package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health, the instance ID and the number of stored presets",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status      string `json:"status" doc:"healthy or unhealthy"`
	InstanceID  string `json:"instance_id,omitempty" doc:"Server instance ID"`
	Version     string `json:"version,omitempty" doc:"Server version"`
	PresetCount int    `json:"preset_count" doc:"Stored presets, not counting the built-in default"`
	Latency     string `json:"latency" doc:"Database round trip"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := HealthResponse{Status: "healthy"}
	start := time.Now()

	if s.store != nil {
		if inst, err := s.store.GetInstance(ctx); err == nil {
			resp.InstanceID = inst.ID
			resp.Version = inst.Version
		}
	}

	n, err := s.services.Presets.Count(ctx)
	if err != nil {
		s.logger.Error("health check: count presets", "error", err)
		resp.Status = "unhealthy"
	}
	resp.PresetCount = n
	resp.Latency = time.Since(start).String()

	return &HealthOutput{Body: resp}, nil
}
