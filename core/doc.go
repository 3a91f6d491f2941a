// Package core contains the business logic of the indexer aggregator.
// It is framework-agnostic: every external concern is injected through
// the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: entries, batches and the Torznab category taxonomy
// - errors: indexer failure reasons and request errors
// - interfaces: contracts for cache, HTTP, logger and indexers
// - indexer: the closed set of site adapters and their builder
// - manager: concurrent fan-out over all indexers with ordered merge
// - torznab: capabilities and RSS feed rendering
// - search: the Torznab request service
//
// # Design Principles
//
// - An indexer never fails as a whole. Problems travel as IndexerErrors
// inside the batch next to the entries that did parse.
// - Results are merged in registration order, whatever the completion order.
// - Selector tables are built once per adapter and owned by it.
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	}
//
//	indexers, err := indexer.BuildAll(indexer.DefaultConfigs(), deps)
//	aggregator := manager.New(indexers, deps.Logger, 20*time.Second)
//
//	batch := aggregator.Search(ctx, "ubuntu")
//	for _, e := range batch.Errors {
//	    log.Println(e)
//	}
package core
