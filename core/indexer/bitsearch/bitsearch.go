// ABOUTME: Indexer for bitsearch.to, scraping search and library listing pages
// ABOUTME: Every listing row carries its magnet link so one fetch per request is enough

package bitsearch

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/indexer/scrape"
	"indexer-aggregator-api/core/interfaces"
	"indexer-aggregator-api/pkg/utils/html"
	"indexer-aggregator-api/pkg/utils/parse"
	timeutil "indexer-aggregator-api/pkg/utils/time"
)

const (
	// Kind is the indexer type name used in configuration
	Kind = "bitsearch"
	// DefaultBaseURL is the public bitsearch site
	DefaultBaseURL = "https://bitsearch.to"
)

// selectors is the fixed structural query table for bitsearch listings
type selectors struct {
	row      goquery.Matcher
	link     goquery.Matcher
	size     goquery.Matcher
	seeders  goquery.Matcher
	leechers goquery.Matcher
	date     goquery.Matcher
	magnet   goquery.Matcher
}

func newSelectors() selectors {
	return selectors{
		row:      scrape.Selector(".card.search-result"),
		link:     scrape.Selector("h5.title a"),
		size:     scrape.Selector(".stats div:nth-child(2)"),
		seeders:  scrape.Selector(".stats div:nth-child(3)"),
		leechers: scrape.Selector(".stats div:nth-child(4)"),
		date:     scrape.Selector(`.stats img[alt="Date"]`),
		magnet:   scrape.Selector("a.dl-magnet"),
	}
}

// Indexer scrapes bitsearch listing pages
type Indexer struct {
	name    string
	baseURL string
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	counts  *parse.CountParser
	sel     selectors
}

// New creates a bitsearch indexer. An empty baseURL selects DefaultBaseURL.
func New(name, baseURL string, deps interfaces.Dependencies) *Indexer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if name == "" {
		name = Kind
	}
	return &Indexer{
		name:    name,
		baseURL: baseURL,
		client:  deps.HTTPClient,
		logger:  deps.Logger,
		counts:  parse.NewCountParser(),
		sel:     newSelectors(),
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
	target, err := scrape.BuildURL(ix.name, ix.baseURL, "/search", "", url.Values{"q": {query}})
	if err != nil {
		return domain.BatchFromError(err)
	}
	return ix.scrape(ctx, target)
}

// Feed implements interfaces.Indexer. Books are not listed by bitsearch.
func (ix *Indexer) Feed(ctx context.Context, category domain.Category) domain.Batch {
	var path string
	var query url.Values
	switch category {
	case domain.CategoryAudio, domain.CategoryMusic:
		path = "/music"
	case domain.CategoryMovie:
		path = "/libraries"
	case domain.CategoryTv:
		path = "/libraries"
		query = url.Values{"type": {"tvSeries"}}
	default:
		return domain.Batch{}
	}

	ix.logger.Debug("Fetching indexer feed", map[string]interface{}{
		"indexer":  ix.name,
		"category": category.String(),
	})
	target, err := scrape.BuildURL(ix.name, ix.baseURL, path, "", query)
	if err != nil {
		return domain.BatchFromError(err)
	}
	return ix.scrape(ctx, target)
}

func (ix *Indexer) scrape(ctx context.Context, target string) domain.Batch {
	doc, err := scrape.FetchDocument(ctx, ix.client, ix.name, target)
	if err != nil {
		return domain.BatchFromError(err)
	}
	return ix.parseListing(doc)
}

func (ix *Indexer) parseListing(doc *goquery.Document) domain.Batch {
	entries, errs := scrape.Rows(ix.name, doc, ix.sel.row, ix.parseRow)
	return domain.Batch{Entries: entries, Errors: errs}
}

func (ix *Indexer) parseRow(row scrape.Row) (domain.Entry, *errors.IndexerError) {
	link, err := row.Find("name", ix.sel.link)
	if err != nil {
		return domain.Entry{}, err
	}
	name := html.CollapseWhitespace(link.Text())
	if name == "" {
		return domain.Entry{}, errors.MissingField(ix.name, "name")
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return domain.Entry{}, errors.MissingField(ix.name, "link")
	}
	detailURL, err := scrape.ResolveLink(ix.name, ix.baseURL, href)
	if err != nil {
		return domain.Entry{}, err
	}

	sizeText, err := row.Text("size", ix.sel.size)
	if err != nil {
		return domain.Entry{}, err
	}
	size, perr := parse.Size(sizeText)
	if perr != nil {
		return domain.Entry{}, errors.InvalidField(ix.name, "size", perr)
	}

	seeders, err := ix.count(row, "seeders", ix.sel.seeders)
	if err != nil {
		return domain.Entry{}, err
	}
	leechers, err := ix.count(row, "leechers", ix.sel.leechers)
	if err != nil {
		return domain.Entry{}, err
	}

	icon, err := row.Find("date", ix.sel.date)
	if err != nil {
		return domain.Entry{}, err
	}
	publishedAt, perr := timeutil.ParseCalendarDate(icon.Parent().Text())
	if perr != nil {
		return domain.Entry{}, errors.InvalidField(ix.name, "date", perr)
	}

	magnet, err := row.Attr("magnet", ix.sel.magnet, "href")
	if err != nil {
		return domain.Entry{}, err
	}

	return domain.Entry{
		Name:        name,
		URL:         detailURL,
		PublishedAt: publishedAt,
		Size:        size,
		Seeders:     seeders,
		Leechers:    leechers,
		Magnet:      magnet,
		Origin:      ix.name,
	}, nil
}

func (ix *Indexer) count(row scrape.Row, field string, m goquery.Matcher) (uint32, *errors.IndexerError) {
	text, err := row.Text(field, m)
	if err != nil {
		return 0, err
	}
	n, perr := ix.counts.Uint32(text)
	if perr != nil {
		return 0, errors.InvalidField(ix.name, field, perr)
	}
	return n, nil
}
