// ABOUTME: JSON record shapes returned by the apibay search and top100 endpoints
// ABOUTME: Search records carry numbers as strings, top100 records as numbers

package piratebay

import (
	"strconv"
	"strings"
	"time"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/pkg/utils/parse"
	timeutil "indexer-aggregator-api/pkg/utils/time"
)

// noResultsID is the id of the placeholder record sent for empty searches
const noResultsID = "0"

// searchRecord is one element of the q.php response
type searchRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	InfoHash string `json:"info_hash"`
	Leechers string `json:"leechers"`
	Seeders  string `json:"seeders"`
	Added    string `json:"added"`
	Size     string `json:"size"`
}

func (r searchRecord) toEntry(origin, baseURL string) (domain.Entry, *errors.IndexerError) {
	size, err := parse.Uint64(r.Size)
	if err != nil {
		return domain.Entry{}, errors.InvalidField(origin, "size", err)
	}
	seeders, err := parse.Uint32(r.Seeders)
	if err != nil {
		return domain.Entry{}, errors.InvalidField(origin, "seeders", err)
	}
	leechers, err := parse.Uint32(r.Leechers)
	if err != nil {
		return domain.Entry{}, errors.InvalidField(origin, "leechers", err)
	}
	added, err := timeutil.ParseUnix(r.Added)
	if err != nil {
		return domain.Entry{}, errors.InvalidField(origin, "date", err)
	}
	return newEntry(origin, baseURL, r.ID, r.Name, r.InfoHash, added, size, seeders, leechers)
}

// feedRecord is one element of a precompiled top100 list
type feedRecord struct {
	ID       uint64 `json:"id"`
	InfoHash string `json:"info_hash"`
	Name     string `json:"name"`
	Leechers uint32 `json:"leechers"`
	Seeders  uint32 `json:"seeders"`
	Added    int64  `json:"added"`
	Size     uint64 `json:"size"`
}

func (r feedRecord) toEntry(origin, baseURL string) (domain.Entry, *errors.IndexerError) {
	id := strconv.FormatUint(r.ID, 10)
	return newEntry(origin, baseURL, id, r.Name, r.InfoHash, timeutil.FromUnix(r.Added), r.Size, r.Seeders, r.Leechers)
}

func newEntry(origin, baseURL, id, name, infoHash string, added time.Time, size uint64, seeders, leechers uint32) (domain.Entry, *errors.IndexerError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Entry{}, errors.MissingField(origin, "name")
	}
	infoHash = strings.TrimSpace(infoHash)
	if infoHash == "" {
		return domain.Entry{}, errors.MissingField(origin, "info_hash")
	}
	return domain.Entry{
		Name:        name,
		URL:         baseURL + "/description.php?id=" + id,
		PublishedAt: added,
		Size:        size,
		Seeders:     seeders,
		Leechers:    leechers,
		Magnet:      magnetURI(name, infoHash),
		Origin:      origin,
	}, nil
}
