// ABOUTME: Entry domain model represents one torrent discovered by an indexer
// ABOUTME: Entries are built once by an indexer and only read afterwards

package domain

import (
	"strconv"
	"time"
)

// Entry represents a torrent listed by an indexer
type Entry struct {
	// Name is the torrent display name
	Name string

	// URL is the detail page of the torrent on the indexer site
	URL string

	// PublishedAt is the upload instant in UTC
	PublishedAt time.Time

	// Size is the total payload size in bytes
	Size uint64

	// Seeders is the number of seeding peers
	Seeders uint32

	// Leechers is the number of downloading peers
	Leechers uint32

	// Magnet is the magnet URI of the torrent
	Magnet string

	// Origin is the name of the indexer that produced the entry
	Origin string
}

// SizeString returns the byte size as a decimal string
func (e Entry) SizeString() string {
	return strconv.FormatUint(e.Size, 10)
}
