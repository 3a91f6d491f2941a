// ABOUTME: Listing page parsing for 1337x into provisional entries
// ABOUTME: A provisional entry still points at the detail page holding its magnet

package leetx

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/indexer/scrape"
	"indexer-aggregator-api/pkg/utils/parse"
	timeutil "indexer-aggregator-api/pkg/utils/time"
)

// Provisional is a listing row before its magnet link is known
type Provisional struct {
	Name        string
	URL         string
	PublishedAt time.Time
	Size        uint64
	Seeders     uint32
	Leechers    uint32
	Origin      string
	// DetailPath is the site path of the page carrying the magnet link
	DetailPath string
}

// Resolve returns the final entry for the magnet found on the detail page
func (p Provisional) Resolve(magnet string) domain.Entry {
	return domain.Entry{
		Name:        p.Name,
		URL:         p.URL,
		PublishedAt: p.PublishedAt,
		Size:        p.Size,
		Seeders:     p.Seeders,
		Leechers:    p.Leechers,
		Magnet:      magnet,
		Origin:      p.Origin,
	}
}

// listingSelectors is the fixed structural query table for listing pages
type listingSelectors struct {
	row      goquery.Matcher
	link     goquery.Matcher
	seeders  goquery.Matcher
	leechers goquery.Matcher
	size     goquery.Matcher
	date     goquery.Matcher
}

func newListingSelectors() listingSelectors {
	return listingSelectors{
		row:      scrape.Selector(".table-list tbody tr"),
		link:     scrape.Selector("td.name a:nth-child(2)"),
		seeders:  scrape.Selector("td.seeds"),
		leechers: scrape.Selector("td.leeches"),
		size:     scrape.Selector("td.size"),
		date:     scrape.Selector("td.coll-date"),
	}
}

// listingParser turns listing pages into provisional entries
type listingParser struct {
	origin  string
	baseURL string
	sel     listingSelectors
	dates   *timeutil.ListingDateParser
	now     func() time.Time
}

func (p *listingParser) parse(doc *goquery.Document) ([]Provisional, []*errors.IndexerError) {
	return scrape.Rows(p.origin, doc, p.sel.row, p.parseRow)
}

func (p *listingParser) parseRow(row scrape.Row) (Provisional, *errors.IndexerError) {
	name, err := row.Text("name", p.sel.link)
	if err != nil {
		return Provisional{}, err
	}
	path, err := row.Attr("link", p.sel.link, "href")
	if err != nil {
		return Provisional{}, err
	}

	seeders, err := p.peers(row, "seeders", p.sel.seeders)
	if err != nil {
		return Provisional{}, err
	}
	leechers, err := p.peers(row, "leechers", p.sel.leechers)
	if err != nil {
		return Provisional{}, err
	}

	sizeText, err := row.OwnText("size", p.sel.size)
	if err != nil {
		return Provisional{}, err
	}
	size, perr := parse.Size(sizeText)
	if perr != nil {
		return Provisional{}, errors.InvalidField(p.origin, "size", perr)
	}

	dateText, err := row.OwnText("date", p.sel.date)
	if err != nil {
		return Provisional{}, err
	}
	date, perr := p.dates.Parse(dateText)
	if perr != nil {
		return Provisional{}, errors.InvalidField(p.origin, "date", perr)
	}

	return Provisional{
		Name:        name,
		URL:         p.baseURL + path,
		PublishedAt: date.On(p.now()),
		Size:        size,
		Seeders:     seeders,
		Leechers:    leechers,
		Origin:      p.origin,
		DetailPath:  path,
	}, nil
}

func (p *listingParser) peers(row scrape.Row, field string, m goquery.Matcher) (uint32, *errors.IndexerError) {
	text, err := row.Text(field, m)
	if err != nil {
		return 0, err
	}
	n, perr := parse.Uint32(text)
	if perr != nil {
		return 0, errors.InvalidField(p.origin, field, perr)
	}
	return n, nil
}
