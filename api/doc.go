// Package api provides the HTTP API layer for the indexer aggregator.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// parameter validation and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration, CORS and middleware
// - handlers/: the Torznab and health handlers
// - middleware/: request logging with request ids
//
// # Endpoints
//
// GET /api/torznab serves the Torznab protocol. Responses are raw XML:
//
//	/api/torznab?t=caps
//	/api/torznab?t=search&q=ubuntu
//	/api/torznab?t=tvsearch&q=the+expanse&season=1&ep=2
//	/api/torznab?t=movie&cat=2000&limit=50&offset=50
//
// Invalid parameters return 400 with a Torznab error document:
//
//	<error code="201" description="validation error on field 'cat': ..."></error>
//
// GET /health reports liveness and the configured indexers as JSON.
//
// The OpenAPI spec is available at /openapi.json and interactive docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{Logger: logger})
//	handlers.NewTorznabHandler(searchService, logger).RegisterRoutes(humaAPI)
//	handlers.NewHealthHandler(aggregator).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":3000", router)
package api
