// ABOUTME: Huma API server configuration and setup
// ABOUTME: Builds the chi router with CORS and request logging and exposes OpenAPI docs

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"indexer-aggregator-api/api/middleware"
	"indexer-aggregator-api/core/interfaces"
)

const (
	// Title is the OpenAPI title of the service
	Title = "Indexer Aggregator API"
	// Version is the OpenAPI version of the service
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run before anything that can reject the request
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Torznab endpoint aggregating search results from public torrent indexers"

	// The OpenAPI spec is available at /openapi.json and the docs at /docs
	api := humachi.New(router, config)

	return api, router
}
