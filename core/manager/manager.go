// ABOUTME: Aggregation manager fanning a query out to every configured indexer
// ABOUTME: Merges per-indexer batches in registration order and logs each indexer error

// Package manager queries all indexers concurrently and merges their results.
package manager

import (
	"context"
	"sync"
	"time"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/interfaces"
)

// DefaultTimeout bounds a single aggregated request
const DefaultTimeout = 20 * time.Second

// Manager owns the fixed, ordered set of indexers built at startup
type Manager struct {
	indexers []interfaces.Indexer
	logger   interfaces.Logger
	timeout  time.Duration
}

// New creates a manager. A zero or negative timeout disables the deadline.
func New(indexers []interfaces.Indexer, logger interfaces.Logger, timeout time.Duration) *Manager {
	return &Manager{
		indexers: indexers,
		logger:   logger,
		timeout:  timeout,
	}
}

// Indexers returns the registered indexer names in order
func (m *Manager) Indexers() []string {
	names := make([]string, len(m.indexers))
	for i, ix := range m.indexers {
		names[i] = ix.Name()
	}
	return names
}

// Search queries every indexer for query
func (m *Manager) Search(ctx context.Context, query string) domain.Batch {
	return m.fanOut(ctx, "search", func(ctx context.Context, ix interfaces.Indexer) domain.Batch {
		return ix.Search(ctx, query)
	})
}

// Feed collects the latest listings of category from every indexer
func (m *Manager) Feed(ctx context.Context, category domain.Category) domain.Batch {
	return m.fanOut(ctx, "feed", func(ctx context.Context, ix interfaces.Indexer) domain.Batch {
		return ix.Feed(ctx, category)
	})
}

func (m *Manager) fanOut(ctx context.Context, op string, call func(context.Context, interfaces.Indexer) domain.Batch) domain.Batch {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	started := time.Now()
	slots := make([]domain.Batch, len(m.indexers))

	var wg sync.WaitGroup
	for i, ix := range m.indexers {
		wg.Add(1)
		go func(i int, ix interfaces.Indexer) {
			defer wg.Done()
			slots[i] = call(ctx, ix)
		}(i, ix)
	}
	wg.Wait()

	var batch domain.Batch
	for _, slot := range slots {
		batch = batch.Merge(slot)
	}
	rejected := 0
	for _, err := range batch.Errors {
		if errors.IsExternalAPI(err) {
			rejected++
		}
		m.logger.Warn("Indexer error", err.Fields())
	}

	m.logger.Info("Aggregation completed", map[string]interface{}{
		"operation": op,
		"indexers":  len(m.indexers),
		"entries":   len(batch.Entries),
		"errors":    len(batch.Errors),
		"rejected":  rejected,
		"duration":  time.Since(started).String(),
	})
	return batch
}
