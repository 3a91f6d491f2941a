// ABOUTME: Indexer for 1337x, a two-phase scraper resolving magnets on detail pages
// ABOUTME: Listing rows are resolved concurrently and recombined in listing order

package leetx

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/indexer/scrape"
	"indexer-aggregator-api/core/interfaces"
	timeutil "indexer-aggregator-api/pkg/utils/time"
)

const (
	// Kind is the indexer type name used in configuration
	Kind = "1337x"
	// DefaultBaseURL is the public 1337x site
	DefaultBaseURL = "https://1337x.to"

	maxConcurrentDetails = 10
	detailTimeout        = 15 * time.Second
)

// Indexer scrapes 1337x listing pages and their detail pages
type Indexer struct {
	name     string
	baseURL  string
	client   interfaces.HTTPClient
	logger   interfaces.Logger
	listing  *listingParser
	resolver *magnetResolver
}

// New creates a 1337x indexer. An empty baseURL selects DefaultBaseURL.
func New(name, baseURL string, deps interfaces.Dependencies) *Indexer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if name == "" {
		name = Kind
	}
	return &Indexer{
		name:    name,
		baseURL: baseURL,
		client:  deps.HTTPClient,
		logger:  deps.Logger,
		listing: &listingParser{
			origin:  name,
			baseURL: baseURL,
			sel:     newListingSelectors(),
			dates:   timeutil.NewListingDateParser(),
			now:     time.Now,
		},
		resolver: &magnetResolver{origin: name, timeout: detailTimeout},
	}
}

// Name implements interfaces.Indexer
func (ix *Indexer) Name() string {
	return ix.name
}

// Search implements interfaces.Indexer
func (ix *Indexer) Search(ctx context.Context, query string) domain.Batch {
	ix.logger.Debug("Searching indexer", map[string]interface{}{
		"indexer": ix.name,
		"query":   query,
	})
	path := "/search/" + query + "/1/"
	rawPath := "/search/" + url.PathEscape(query) + "/1/"
	target, err := scrape.BuildURL(ix.name, ix.baseURL, path, rawPath, nil)
	if err != nil {
		return domain.BatchFromError(err)
	}
	return ix.run(ctx, target)
}

// Feed implements interfaces.Indexer
func (ix *Indexer) Feed(ctx context.Context, category domain.Category) domain.Batch {
	var path string
	switch category {
	case domain.CategoryAudio, domain.CategoryMusic:
		path = "/cat/Music/1/"
	case domain.CategoryMovie:
		path = "/cat/Movies/1/"
	case domain.CategoryTv:
		path = "/cat/TV/1/"
	case domain.CategoryBook:
		path = "/cat/Other/1/"
	default:
		return domain.Batch{}
	}

	ix.logger.Debug("Fetching indexer feed", map[string]interface{}{
		"indexer":  ix.name,
		"category": category.String(),
	})
	target, err := scrape.BuildURL(ix.name, ix.baseURL, path, "", nil)
	if err != nil {
		return domain.BatchFromError(err)
	}
	return ix.run(ctx, target)
}

func (ix *Indexer) run(ctx context.Context, target string) domain.Batch {
	doc, err := scrape.FetchDocument(ctx, ix.client, ix.name, target)
	if err != nil {
		return domain.BatchFromError(err)
	}

	provisionals, errs := ix.listing.parse(doc)
	resolved := ix.resolveAll(ctx, provisionals)
	return domain.Batch{Errors: errs}.Merge(resolved)
}

// resolution is the phase-two outcome of one provisional entry
type resolution struct {
	entry domain.Entry
	err   *errors.IndexerError
}

// resolveAll fetches every detail page concurrently and keeps listing order
func (ix *Indexer) resolveAll(ctx context.Context, provisionals []Provisional) domain.Batch {
	results := make([]resolution, len(provisionals))
	semaphore := make(chan struct{}, maxConcurrentDetails)
	var wg sync.WaitGroup

	for i, p := range provisionals {
		wg.Add(1)
		go func(i int, p Provisional) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			magnet, err := ix.resolver.resolve(ctx, p.URL)
			if err != nil {
				results[i] = resolution{err: err}
				return
			}
			results[i] = resolution{entry: p.Resolve(magnet)}
		}(i, p)
	}
	wg.Wait()

	var batch domain.Batch
	for _, r := range results {
		if r.err != nil {
			batch.AddError(r.err)
			continue
		}
		batch.AddEntry(r.entry)
	}
	return batch
}
