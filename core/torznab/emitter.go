// ABOUTME: Torznab protocol emitter rendering capabilities and RSS result feeds
// ABOUTME: Documents are marshalled from typed structs so all values are escaped

// Package torznab renders the XML documents of the Torznab protocol.
package torznab

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
)

const (
	// DefaultLimit is the number of items returned when no limit is given
	DefaultLimit = 100
	// MaxLimit caps the number of items of a single response
	MaxLimit = 100

	atomNamespace    = "http://www.w3.org/2005/Atom"
	torznabNamespace = "http://torznab.com/schemas/2015/feed"
	enclosureType    = "application/x-bittorrent"
)

// Emitter renders documents describing one aggregated indexer
type Emitter struct {
	name        string
	description string
	baseURL     string
	caps        []byte
}

// NewEmitter creates an emitter and renders its capabilities document
func NewEmitter(name, description, baseURL string) (*Emitter, error) {
	e := &Emitter{
		name:        name,
		description: description,
		baseURL:     baseURL,
	}
	caps, err := marshal(newCapabilities(name))
	if err != nil {
		return nil, errors.WrapError(err, "rendering capabilities")
	}
	e.caps = caps
	return e, nil
}

// Capabilities returns the capabilities document
func (e *Emitter) Capabilities() []byte {
	return bytes.Clone(e.caps)
}

// Feed renders entries as a Torznab RSS feed tagged with category
func (e *Emitter) Feed(category domain.Category, entries []domain.Entry) ([]byte, error) {
	doc := rss{
		Version:   "2.0",
		XMLNSAtom: atomNamespace,
		XMLNSTorz: torznabNamespace,
		Channel: channel{
			AtomLink: atomLink{
				Href: e.baseURL,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Title:       e.name,
			Description: e.description,
			Link:        e.baseURL,
			Language:    "en-US",
			Category:    "search",
			Items:       make([]item, 0, len(entries)),
		},
	}
	code := category.Code()
	for _, entry := range entries {
		doc.Channel.Items = append(doc.Channel.Items, newItem(entry, code))
	}
	return marshal(doc)
}

// Error renders a Torznab error document
func Error(code int, description string) []byte {
	out, err := marshal(errorDoc{Code: code, Description: description})
	if err != nil {
		// errorDoc has no field that can fail to marshal
		return []byte(xml.Header + `<error code="900" description="internal error"/>`)
	}
	return out
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newItem(entry domain.Entry, code int) item {
	return item{
		Title:    entry.Name,
		GUID:     entry.URL,
		Type:     "public",
		Comments: entry.URL,
		PubDate:  entry.PublishedAt.UTC().Format(time.RFC1123Z),
		Size:     entry.Size,
		Link:     entry.Magnet,
		Enclosure: enclosure{
			URL:    entry.Magnet,
			Length: entry.Size,
			Type:   enclosureType,
		},
		Category: code,
		Attrs: []attr{
			{Name: "genre", Value: ""},
			{Name: "downloadvolumefactor", Value: "0"},
			{Name: "uploadvolumefactor", Value: "1"},
			{Name: "magneturl", Value: entry.Magnet},
			{Name: "category", Value: fmt.Sprint(code)},
			{Name: "seeders", Value: fmt.Sprint(entry.Seeders)},
			{Name: "peers", Value: fmt.Sprint(entry.Leechers)},
		},
	}
}
