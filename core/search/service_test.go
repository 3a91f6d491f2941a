package search

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/indexer/indexertest"
	"indexer-aggregator-api/core/interfaces"
	"indexer-aggregator-api/core/torznab"
	"indexer-aggregator-api/pkg/featureflags"
)

type mockAggregator struct {
	mock.Mock
}

func (m *mockAggregator) Search(ctx context.Context, query string) domain.Batch {
	return m.Called(query).Get(0).(domain.Batch)
}

func (m *mockAggregator) Feed(ctx context.Context, category domain.Category) domain.Batch {
	return m.Called(category).Get(0).(domain.Batch)
}

// mapCache is an in-memory interfaces.Cache recording its calls
type mapCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	sets   int
	ttl    time.Duration
	setErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.ttl = ttl
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func entries(n int) []domain.Entry {
	out := make([]domain.Entry, n)
	for i := range out {
		out[i] = domain.Entry{
			Name:   fmt.Sprintf("entry %d", i),
			URL:    fmt.Sprintf("https://example.test/%d", i),
			Magnet: fmt.Sprintf("magnet:?xt=urn:btih:%d", i),
		}
	}
	return out
}

type fixture struct {
	agg    *mockAggregator
	cache  *mapCache
	flags  *featureflags.StaticManager
	logger *indexertest.Logger
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	emitter, err := torznab.NewEmitter("Aggregator", "test", "http://localhost:3000")
	require.NoError(t, err)

	f := &fixture{
		agg:    &mockAggregator{},
		cache:  newMapCache(),
		flags:  featureflags.NewStaticManager(featureflags.Defaults),
		logger: &indexertest.Logger{},
	}
	deps := interfaces.Dependencies{Cache: f.cache, Logger: f.logger}
	f.svc = NewService(f.agg, emitter, f.flags, deps, 0)
	return f
}

func parseItems(t *testing.T, body []byte) []*gofeed.Item {
	t.Helper()
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	require.NoError(t, err)
	return feed.Items
}

func TestHandle_Caps(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.Handle(context.Background(), Query{T: "caps"})
	require.NoError(t, err)

	assert.Equal(t, ContentType, resp.ContentType)
	assert.Contains(t, string(resp.Body), "<caps>")
	assert.Equal(t, 0, f.cache.sets)
	f.agg.AssertNotCalled(t, "Search", mock.Anything)
}

func TestHandle_SearchEmitsFeed(t *testing.T) {
	f := newFixture(t)
	f.agg.On("Search", "ubuntu").Return(domain.Batch{
		Entries: entries(3),
		Errors:  []*errors.IndexerError{errors.MissingField("bitsearch", "seeders")},
	})

	resp, err := f.svc.Handle(context.Background(), Query{T: "search", Q: "  ubuntu "})
	require.NoError(t, err)

	items := parseItems(t, resp.Body)
	assert.Len(t, items, 3)
	assert.Contains(t, string(resp.Body), "<category>2000</category>")
	f.agg.AssertExpectations(t)
}

func TestHandle_FoldsSeasonAndEpisode(t *testing.T) {
	tests := []struct {
		name   string
		query  Query
		expect string
	}{
		{"season and episode", Query{T: "tvsearch", Q: "The Expanse", Season: "1", Ep: "2"}, "The Expanse S01E02"},
		{"season only", Query{T: "tvsearch", Q: "The Expanse", Season: "3"}, "The Expanse S03"},
		{"episode only", Query{T: "tvsearch", Q: "The Expanse", Ep: "12"}, "The Expanse E12"},
		{"no query", Query{T: "tvsearch", Season: "10"}, "S10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.agg.On("Search", tt.expect).Return(domain.Batch{Entries: entries(1)})

			resp, err := f.svc.Handle(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Contains(t, string(resp.Body), "<category>5000</category>")
			f.agg.AssertExpectations(t)
		})
	}
}

func TestHandle_EmptyQueryServesCategoryFeed(t *testing.T) {
	f := newFixture(t)
	f.agg.On("Feed", domain.CategoryMusic).Return(domain.Batch{Entries: entries(4)})

	resp, err := f.svc.Handle(context.Background(), Query{T: "music"})
	require.NoError(t, err)

	assert.Len(t, parseItems(t, resp.Body), 4)
	f.agg.AssertNotCalled(t, "Search", mock.Anything)
	f.agg.AssertExpectations(t)
}

func TestHandle_EmptyQueryWithFeedDisabled(t *testing.T) {
	f := newFixture(t)
	f.flags.SetEnabled(featureflags.EmptyQueryFeed, false)

	resp, err := f.svc.Handle(context.Background(), Query{T: "movie"})
	require.NoError(t, err)

	assert.Empty(t, parseItems(t, resp.Body))
	f.agg.AssertNotCalled(t, "Feed", mock.Anything)
	f.agg.AssertNotCalled(t, "Search", mock.Anything)
}

func TestHandle_CategoryResolution(t *testing.T) {
	tests := []struct {
		name   string
		query  Query
		expect domain.Category
	}{
		{"tvsearch default", Query{T: "tvsearch"}, domain.CategoryTv},
		{"movie default", Query{T: "movie"}, domain.CategoryMovie},
		{"book default", Query{T: "book"}, domain.CategoryBook},
		{"search default", Query{T: "search"}, domain.CategoryMovie},
		{"explicit cat", Query{T: "search", Cat: "5000"}, domain.CategoryTv},
		{"first of list", Query{T: "search", Cat: "7000,2000"}, domain.CategoryBook},
		{"audio code", Query{T: "search", Cat: "3000"}, domain.CategoryAudio},
		{"music mode audio code", Query{T: "music", Cat: "3000"}, domain.CategoryMusic},
		{"mode is case insensitive", Query{T: "TVSearch"}, domain.CategoryTv},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.agg.On("Feed", tt.expect).Return(domain.Batch{})

			_, err := f.svc.Handle(context.Background(), tt.query)
			require.NoError(t, err)
			f.agg.AssertExpectations(t)
		})
	}
}

func TestHandle_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		field string
	}{
		{"unknown function", Query{T: "details"}, "t"},
		{"missing function", Query{}, "t"},
		{"unknown category code", Query{T: "search", Cat: "4000"}, "cat"},
		{"non numeric category", Query{T: "search", Cat: "movies"}, "cat"},
		{"non numeric season", Query{T: "tvsearch", Season: "one"}, "season"},
		{"non numeric episode", Query{T: "tvsearch", Ep: "x"}, "ep"},
		{"negative offset", Query{T: "search", Q: "x", Offset: -1}, "offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Handle(context.Background(), tt.query)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))

			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestHandle_Pagination(t *testing.T) {
	f := newFixture(t)
	f.agg.On("Search", "big").Return(domain.Batch{Entries: entries(250)})

	resp, err := f.svc.Handle(context.Background(), Query{T: "search", Q: "big"})
	require.NoError(t, err)
	assert.Len(t, parseItems(t, resp.Body), torznab.DefaultLimit)

	resp, err = f.svc.Handle(context.Background(), Query{T: "search", Q: "big", Offset: 240, Limit: 50})
	require.NoError(t, err)
	items := parseItems(t, resp.Body)
	require.Len(t, items, 10)
	assert.Equal(t, "entry 240", items[0].Title)
}

func TestHandle_CacheHitSkipsAggregator(t *testing.T) {
	f := newFixture(t)
	f.agg.On("Search", "ubuntu").Return(domain.Batch{Entries: entries(2)}).Once()

	first, err := f.svc.Handle(context.Background(), Query{T: "search", Q: "ubuntu"})
	require.NoError(t, err)
	second, err := f.svc.Handle(context.Background(), Query{T: "search", Q: "ubuntu"})
	require.NoError(t, err)

	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, 1, f.cache.sets)
	assert.Equal(t, DefaultCacheTTL, f.cache.ttl)
	f.agg.AssertNumberOfCalls(t, "Search", 1)
}

func TestHandle_CacheDisabledByFlag(t *testing.T) {
	f := newFixture(t)
	f.flags.SetEnabled(featureflags.CacheEnabled, false)
	f.agg.On("Search", "ubuntu").Return(domain.Batch{Entries: entries(2)})

	for i := 0; i < 2; i++ {
		_, err := f.svc.Handle(context.Background(), Query{T: "search", Q: "ubuntu"})
		require.NoError(t, err)
	}

	assert.Equal(t, 0, f.cache.sets)
	f.agg.AssertNumberOfCalls(t, "Search", 2)
}

func TestHandle_CacheFailureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.cache.setErr = fmt.Errorf("redis down")
	f.agg.On("Search", "ubuntu").Return(domain.Batch{Entries: entries(1)})

	resp, err := f.svc.Handle(context.Background(), Query{T: "search", Q: "ubuntu"})
	require.NoError(t, err)
	assert.Len(t, parseItems(t, resp.Body), 1)
	assert.Equal(t, 1, f.logger.Count("warn"))
}

func TestHandle_WithoutCache(t *testing.T) {
	emitter, err := torznab.NewEmitter("Aggregator", "test", "http://localhost:3000")
	require.NoError(t, err)
	agg := &mockAggregator{}
	agg.On("Search", "x").Return(domain.Batch{})

	svc := NewService(agg, emitter, nil, interfaces.Dependencies{Logger: &indexertest.Logger{}}, time.Minute)
	resp, err := svc.Handle(context.Background(), Query{T: "search", Q: "x"})
	require.NoError(t, err)
	assert.Empty(t, parseItems(t, resp.Body))
}

func TestCacheKey_DistinguishesRequests(t *testing.T) {
	base := request{mode: ModeSearch, category: domain.CategoryMovie, query: "x"}
	other := base
	other.offset = 100
	music := request{mode: ModeMusic, category: domain.CategoryMusic}
	audio := request{mode: ModeSearch, category: domain.CategoryAudio}

	assert.Equal(t, cacheKey(base), cacheKey(base))
	assert.NotEqual(t, cacheKey(base), cacheKey(other))
	assert.NotEqual(t, cacheKey(music), cacheKey(audio))
}
