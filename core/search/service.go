// ABOUTME: Torznab request service turning protocol requests into XML documents
// ABOUTME: Validates parameters, queries the aggregation manager and caches rendered feeds

package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/interfaces"
	"indexer-aggregator-api/core/torznab"
	"indexer-aggregator-api/pkg/featureflags"
)

// ContentType is the media type of every Torznab document
const ContentType = "application/xml; charset=utf-8"

// DefaultCacheTTL applies when the service is built without a TTL
const DefaultCacheTTL = 60 * time.Second

// Aggregator queries all indexers at once
type Aggregator interface {
	Search(ctx context.Context, query string) domain.Batch
	Feed(ctx context.Context, category domain.Category) domain.Batch
}

// Response is a rendered Torznab document
type Response struct {
	Body        []byte
	ContentType string
}

// Service answers Torznab requests
type Service struct {
	aggregator Aggregator
	emitter    *torznab.Emitter
	flags      featureflags.Manager
	cache      interfaces.Cache
	logger     interfaces.Logger
	ttl        time.Duration
}

// NewService creates a request service. A nil cache disables caching.
func NewService(aggregator Aggregator, emitter *torznab.Emitter, flags featureflags.Manager, deps interfaces.Dependencies, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &Service{
		aggregator: aggregator,
		emitter:    emitter,
		flags:      flags,
		cache:      deps.Cache,
		logger:     deps.Logger,
		ttl:        ttl,
	}
}

// Handle answers one Torznab request. Invalid parameters give a ValidationError.
func (s *Service) Handle(ctx context.Context, q Query) (Response, error) {
	req, err := q.normalize()
	if err != nil {
		return Response{}, err
	}
	if req.mode == ModeCaps {
		return Response{Body: s.emitter.Capabilities(), ContentType: ContentType}, nil
	}

	cacheOn := s.cache != nil && s.flags.IsEnabled(ctx, featureflags.CacheEnabled)
	key := cacheKey(req)
	if cacheOn {
		if body, err := s.cache.Get(ctx, key); err == nil && len(body) > 0 {
			s.logger.Debug("Torznab cache hit", map[string]interface{}{
				"mode":  string(req.mode),
				"query": req.query,
			})
			return Response{Body: body, ContentType: ContentType}, nil
		}
	}

	batch := s.collect(ctx, req)
	entries := Paginate(batch.Entries, req.offset, req.limit)

	body, err := s.emitter.Feed(req.category, entries)
	if err != nil {
		return Response{}, errors.WrapError(err, "rendering feed")
	}

	s.logger.Info("Torznab request served", map[string]interface{}{
		"mode":     string(req.mode),
		"query":    req.query,
		"category": req.category.Code(),
		"found":    len(batch.Entries),
		"returned": len(entries),
		"errors":   len(batch.Errors),
	})

	if cacheOn {
		if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
			s.logger.Warn("Failed to cache torznab response", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return Response{Body: body, ContentType: ContentType}, nil
}

func (s *Service) collect(ctx context.Context, req request) domain.Batch {
	if req.query != "" {
		return s.aggregator.Search(ctx, req.query)
	}
	if s.flags.IsEnabled(ctx, featureflags.EmptyQueryFeed) {
		return s.aggregator.Feed(ctx, req.category)
	}
	return domain.Batch{}
}

func cacheKey(req request) string {
	raw := fmt.Sprintf("%s|%s|%d|%s|%d|%d", req.mode, req.category, req.category.Code(), req.query, req.limit, req.offset)
	sum := sha256.Sum256([]byte(raw))
	return "torznab:" + hex.EncodeToString(sum[:])
}
