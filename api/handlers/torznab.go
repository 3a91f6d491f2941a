// ABOUTME: Torznab handler for the Huma API
// ABOUTME: Serves capabilities and search feeds as raw XML documents

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/interfaces"
	"indexer-aggregator-api/core/search"
)

// TorznabService answers Torznab requests
type TorznabService interface {
	Handle(ctx context.Context, q search.Query) (search.Response, error)
}

// TorznabHandler handles the Torznab endpoint
type TorznabHandler struct {
	service TorznabService
	logger  interfaces.Logger
}

// NewTorznabHandler creates a new Torznab handler
func NewTorznabHandler(service TorznabService, logger interfaces.Logger) *TorznabHandler {
	return &TorznabHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the Torznab route
func (h *TorznabHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "torznab",
		Method:      http.MethodGet,
		Path:        "/api/torznab",
		Summary:     "Torznab endpoint",
		Description: "Returns the capabilities document or an RSS feed of torrents found on every configured indexer",
		Tags:        []string{"Torznab"},
	}, h.Torznab)
}

// TorznabInput defines the query parameters of a Torznab request
type TorznabInput struct {
	T      string `query:"t" doc:"Function: caps, search, tvsearch, movie, music or book" example:"search"`
	Q      string `query:"q" doc:"Search terms"`
	Cat    string `query:"cat" doc:"Comma separated category codes, the first one is used" example:"2000"`
	Season string `query:"season" doc:"Season number for tvsearch"`
	Ep     string `query:"ep" doc:"Episode number for tvsearch"`
	Limit  int    `query:"limit" minimum:"0" doc:"Maximum number of items, capped at 100"`
	Offset int    `query:"offset" minimum:"0" doc:"Number of items to skip"`
}

// TorznabOutput is a raw XML document
type TorznabOutput struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Torznab handles GET /api/torznab
func (h *TorznabHandler) Torznab(ctx context.Context, input *TorznabInput) (*TorznabOutput, error) {
	resp, err := h.service.Handle(ctx, search.Query{
		T:      input.T,
		Q:      input.Q,
		Cat:    input.Cat,
		Season: input.Season,
		Ep:     input.Ep,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		status, body := toTorznabError(err)
		fields := map[string]interface{}{
			"t":      input.T,
			"status": status,
			"error":  err.Error(),
		}
		if errors.IsValidation(err) {
			h.logger.Debug("Torznab request rejected", fields)
		} else {
			h.logger.Error("Torznab request failed", fields)
		}
		return &TorznabOutput{Status: status, ContentType: search.ContentType, Body: body}, nil
	}

	return &TorznabOutput{
		Status:      http.StatusOK,
		ContentType: resp.ContentType,
		Body:        resp.Body,
	}, nil
}
