// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines the contract every torrent indexer adapter fulfils

package interfaces

import (
	"context"

	"indexer-aggregator-api/core/domain"
)

// Indexer searches one torrent site and normalizes its listings.
//
// Search and Feed never fail as a whole: every problem is reported as an
// IndexerError inside the returned batch. A category the site does not
// carry yields an empty batch.
type Indexer interface {
	// Name returns the configured name of the indexer
	Name() string

	// Search returns the listings matching query
	Search(ctx context.Context, query string) domain.Batch

	// Feed returns the latest listings of category
	Feed(ctx context.Context, category domain.Category) domain.Batch
}
