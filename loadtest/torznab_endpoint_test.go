// ABOUTME: Load tests for the torznab endpoint
// ABOUTME: Drives the full request path under concurrent load with slow stub indexers

package loadtest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"indexer-aggregator-api/api"
	"indexer-aggregator-api/api/handlers"
	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/interfaces"
	"indexer-aggregator-api/core/manager"
	"indexer-aggregator-api/core/search"
	"indexer-aggregator-api/core/torznab"
	"indexer-aggregator-api/infrastructure/cache/memory"
	"indexer-aggregator-api/pkg/featureflags"
)

// stubIndexer answers after a fixed delay with a fixed number of entries
type stubIndexer struct {
	name    string
	delay   time.Duration
	entries int
}

func (s *stubIndexer) Name() string { return s.name }

func (s *stubIndexer) answer(ctx context.Context, label string) domain.Batch {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return domain.Batch{}
	}
	batch := domain.Batch{}
	for i := 0; i < s.entries; i++ {
		batch.AddEntry(domain.Entry{
			Name:        fmt.Sprintf("%s %s %d", s.name, label, i),
			URL:         fmt.Sprintf("https://%s.test/%d", s.name, i),
			PublishedAt: time.Now().UTC(),
			Size:        uint64(i) * 1 << 20,
			Seeders:     uint32(i),
			Magnet:      fmt.Sprintf("magnet:?xt=urn:btih:%040d", i),
			Origin:      s.name,
		})
	}
	return batch
}

func (s *stubIndexer) Search(ctx context.Context, query string) domain.Batch {
	return s.answer(ctx, query)
}

func (s *stubIndexer) Feed(ctx context.Context, category domain.Category) domain.Batch {
	return s.answer(ctx, category.String())
}

type quietLogger struct{}

func (quietLogger) Debug(string, map[string]interface{}) {}
func (quietLogger) Info(string, map[string]interface{})  {}
func (quietLogger) Warn(string, map[string]interface{})  {}
func (quietLogger) Error(string, map[string]interface{}) {}

// LoadTestMetrics tracks performance metrics
type LoadTestMetrics struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AvgLatency     time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration
	RequestsPerSec float64
}

func newServer(t *testing.T, cacheEnabled bool) *httptest.Server {
	t.Helper()
	logger := quietLogger{}
	indexers := []interfaces.Indexer{
		&stubIndexer{name: "alpha", delay: 10 * time.Millisecond, entries: 40},
		&stubIndexer{name: "beta", delay: 20 * time.Millisecond, entries: 40},
		&stubIndexer{name: "gamma", delay: 5 * time.Millisecond, entries: 40},
	}
	aggregator := manager.New(indexers, logger, 2*time.Second)

	emitter, err := torznab.NewEmitter("Load", "load test", "http://localhost")
	if err != nil {
		t.Fatalf("creating emitter: %v", err)
	}
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.EmptyQueryFeed: true,
		featureflags.CacheEnabled:   cacheEnabled,
	})
	deps := interfaces.Dependencies{Cache: memory.NewMemoryCache(time.Minute), Logger: logger}
	svc := search.NewService(aggregator, emitter, flags, deps, time.Minute)

	humaAPI, router := api.NewAPI()
	handlers.NewTorznabHandler(svc, logger).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(aggregator).RegisterRoutes(humaAPI)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func runLoad(t *testing.T, server *httptest.Server, concurrency, perWorker int, target func(worker, j int) string) LoadTestMetrics {
	t.Helper()
	var (
		successCount int64
		failCount    int64
		latencies    []time.Duration
		mu           sync.Mutex
	)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	startTime := time.Now()

	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{Timeout: 30 * time.Second}

			for j := 0; j < perWorker; j++ {
				reqStart := time.Now()
				resp, err := client.Get(server.URL + target(workerID, j))
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode == http.StatusOK {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
			}
		}(i)
	}
	wg.Wait()

	metrics := calculateMetrics(latencies, time.Since(startTime), concurrency*perWorker)
	metrics.SuccessfulReqs = successCount
	metrics.FailedReqs = failCount
	return metrics
}

func logMetrics(t *testing.T, title string, m LoadTestMetrics) {
	t.Logf("Load Test Results - %s", title)
	t.Logf("Total Requests: %d", m.TotalRequests)
	t.Logf("Successful: %d", m.SuccessfulReqs)
	t.Logf("Failed: %d", m.FailedReqs)
	t.Logf("Total Duration: %v", m.TotalDuration)
	t.Logf("Requests/sec: %.2f", m.RequestsPerSec)
	t.Logf("Avg Latency: %v", m.AvgLatency)
	t.Logf("P95 Latency: %v", m.P95Latency)
	t.Logf("P99 Latency: %v", m.P99Latency)
	t.Logf("Max Latency: %v", m.MaxLatency)
}

func TestTorznabEndpoint_100ConcurrentSearches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}
	server := newServer(t, false)

	metrics := runLoad(t, server, 100, 10, func(worker, j int) string {
		q := url.QueryEscape(fmt.Sprintf("release %d %d", worker, j))
		return "/api/torznab?t=search&q=" + q
	})
	logMetrics(t, "100 concurrent uncached searches", metrics)

	if metrics.FailedReqs > 0 {
		t.Errorf("Had %d failed requests", metrics.FailedReqs)
	}
	// every request waits for the slowest stub indexer, 20ms
	if metrics.P95Latency > time.Second {
		t.Errorf("P95 latency too high: %v", metrics.P95Latency)
	}
}

func TestTorznabEndpoint_CachedFeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}
	server := newServer(t, true)
	modes := []string{"movie", "tvsearch", "music", "book"}

	metrics := runLoad(t, server, 50, 20, func(worker, j int) string {
		return "/api/torznab?t=" + modes[(worker+j)%len(modes)]
	})
	logMetrics(t, "cached category feeds", metrics)

	if metrics.FailedReqs > 0 {
		t.Errorf("Had %d failed requests", metrics.FailedReqs)
	}
}

// calculateMetrics computes performance metrics from latency data
func calculateMetrics(latencies []time.Duration, totalDuration time.Duration, totalRequests int) LoadTestMetrics {
	if len(latencies) == 0 {
		return LoadTestMetrics{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	return LoadTestMetrics{
		TotalRequests:  int64(totalRequests),
		TotalDuration:  totalDuration,
		MinLatency:     sorted[0],
		MaxLatency:     sorted[len(sorted)-1],
		AvgLatency:     sum / time.Duration(len(latencies)),
		P95Latency:     sorted[int(float64(len(sorted))*0.95)],
		P99Latency:     sorted[int(float64(len(sorted))*0.99)],
		RequestsPerSec: float64(totalRequests) / totalDuration.Seconds(),
	}
}
