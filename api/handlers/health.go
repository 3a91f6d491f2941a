// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports liveness and the configured indexers

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// IndexerLister lists the configured indexer names
type IndexerLister interface {
	Indexers() []string
}

// HealthHandler handles the health endpoint
type HealthHandler struct {
	indexers IndexerLister
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(indexers IndexerLister) *HealthHandler {
	return &HealthHandler{indexers: indexers}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput is the health response
type HealthOutput struct {
	Body struct {
		Status   string   `json:"status" example:"ok"`
		Indexers []string `json:"indexers"`
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"
	out.Body.Indexers = h.indexers.Indexers()
	return out, nil
}
