// ABOUTME: Pagination of aggregated entries for Torznab responses
// ABOUTME: Applies offset and limit with the protocol default and maximum

package search

import (
	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/torznab"
)

// Paginate returns the entries selected by offset and limit.
// A zero limit selects the default, larger limits are capped.
func Paginate(entries []domain.Entry, offset, limit int) []domain.Entry {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = torznab.DefaultLimit
	}
	if limit > torznab.MaxLimit {
		limit = torznab.MaxLimit
	}

	if offset >= len(entries) {
		return []domain.Entry{}
	}

	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}
