// ABOUTME: Indexer for The Pirate Bay backed by the apibay JSON API
// ABOUTME: Magnet links are built locally from the info hash and a tracker list

package piratebay

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/indexer/scrape"
	"indexer-aggregator-api/core/interfaces"
)

const (
	// Kind is the indexer type name used in configuration
	Kind = "thepiratebay"
	// DefaultAPIURL is the public apibay endpoint
	DefaultAPIURL = "https://apibay.org"
	// DefaultBaseURL is the site detail pages link to
	DefaultBaseURL = "https://thepiratebay.org"
)

// top100 list ids per category
var (
	musicLists = []int{101, 104}
	movieLists = []int{201, 202, 207}
	tvLists    = []int{205, 208}
	bookLists  = []int{601}
)

// Indexer queries the apibay JSON API
type Indexer struct {
	name    string
	apiURL  string
	baseURL string
	client  interfaces.HTTPClient
	logger  interfaces.Logger
}

// New creates a piratebay indexer. Empty URLs select the public defaults.
func New(name, apiURL, baseURL string, deps interfaces.Dependencies) *Indexer {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if name == "" {
		name = Kind
	}
	return &Indexer{
		name:    name,
		apiURL:  apiURL,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  deps.HTTPClient,
		logger:  deps.Logger,
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
	target, err := scrape.BuildURL(ix.name, ix.apiURL, "/q.php", "", nil)
	if err != nil {
		return domain.BatchFromError(err)
	}
	target += "?q=" + url.QueryEscape(query) + "&cat=0"

	var records []searchRecord
	if err := scrape.FetchJSON(ctx, ix.client, ix.name, target, &records); err != nil {
		return domain.BatchFromError(err)
	}

	var batch domain.Batch
	for _, record := range records {
		if record.ID == noResultsID {
			continue
		}
		entry, err := record.toEntry(ix.name, ix.baseURL)
		if err != nil {
			batch.AddError(err)
			continue
		}
		batch.AddEntry(entry)
	}
	return batch
}

// Feed implements interfaces.Indexer
func (ix *Indexer) Feed(ctx context.Context, category domain.Category) domain.Batch {
	var lists []int
	switch category {
	case domain.CategoryAudio, domain.CategoryMusic:
		lists = musicLists
	case domain.CategoryMovie:
		lists = movieLists
	case domain.CategoryTv:
		lists = tvLists
	case domain.CategoryBook:
		lists = bookLists
	default:
		return domain.Batch{}
	}

	ix.logger.Debug("Fetching indexer feed", map[string]interface{}{
		"indexer":  ix.name,
		"category": category.String(),
		"lists":    len(lists),
	})

	results := make([]domain.Batch, len(lists))
	var wg sync.WaitGroup
	for i, list := range lists {
		wg.Add(1)
		go func(i, list int) {
			defer wg.Done()
			results[i] = ix.fetchList(ctx, list)
		}(i, list)
	}
	wg.Wait()

	var batch domain.Batch
	for _, result := range results {
		batch = batch.Merge(result)
	}
	return batch
}

func (ix *Indexer) fetchList(ctx context.Context, list int) domain.Batch {
	path := "/precompiled/data_top100_" + strconv.Itoa(list) + ".json"
	target, err := scrape.BuildURL(ix.name, ix.apiURL, path, "", nil)
	if err != nil {
		return domain.BatchFromError(err)
	}

	var records []feedRecord
	if err := scrape.FetchJSON(ctx, ix.client, ix.name, target, &records); err != nil {
		return domain.BatchFromError(err)
	}

	batch := domain.Batch{Entries: make([]domain.Entry, 0, len(records))}
	for _, record := range records {
		entry, err := record.toEntry(ix.name, ix.baseURL)
		if err != nil {
			batch.AddError(err)
			continue
		}
		batch.AddEntry(entry)
	}
	return batch
}
