// ABOUTME: XML document shapes of the Torznab protocol
// ABOUTME: Prefixed element names are spelled out literally in the struct tags

package torznab

import (
	"encoding/xml"

	"indexer-aggregator-api/core/domain"
)

type rss struct {
	XMLName   xml.Name `xml:"rss"`
	Version   string   `xml:"version,attr"`
	XMLNSAtom string   `xml:"xmlns:atom,attr"`
	XMLNSTorz string   `xml:"xmlns:torznab,attr"`
	Channel   channel  `xml:"channel"`
}

type channel struct {
	AtomLink    atomLink `xml:"atom:link"`
	Title       string   `xml:"title"`
	Description string   `xml:"description"`
	Link        string   `xml:"link"`
	Language    string   `xml:"language"`
	Category    string   `xml:"category"`
	Items       []item   `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type item struct {
	Title       string    `xml:"title"`
	GUID        string    `xml:"guid"`
	Type        string    `xml:"type"`
	Comments    string    `xml:"comments"`
	PubDate     string    `xml:"pubDate"`
	Size        uint64    `xml:"size"`
	Link        string    `xml:"link"`
	Enclosure   enclosure `xml:"enclosure"`
	Description string    `xml:"description"`
	Category    int       `xml:"category"`
	Attrs       []attr    `xml:"torznab:attr"`
}

type enclosure struct {
	URL    string `xml:"url,attr"`
	Length uint64 `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type attr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type errorDoc struct {
	XMLName     xml.Name `xml:"error"`
	Code        int      `xml:"code,attr"`
	Description string   `xml:"description,attr"`
}

type capabilities struct {
	XMLName    xml.Name       `xml:"caps"`
	Server     server         `xml:"server"`
	Limits     limits         `xml:"limits"`
	Searching  searching      `xml:"searching"`
	Categories []capsCategory `xml:"categories>category"`
}

type server struct {
	Title string `xml:",chardata"`
}

type limits struct {
	Default int `xml:"default,attr"`
	Max     int `xml:"max,attr"`
}

type searching struct {
	Search      searchMode `xml:"search"`
	TvSearch    searchMode `xml:"tv-search"`
	MovieSearch searchMode `xml:"movie-search"`
	MusicSearch searchMode `xml:"music-search"`
	BookSearch  searchMode `xml:"book-search"`
}

type searchMode struct {
	Available       string `xml:"available,attr"`
	SupportedParams string `xml:"supportedParams,attr"`
}

type capsCategory struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

func newCapabilities(name string) capabilities {
	return capabilities{
		Server: server{Title: name},
		Limits: limits{Default: DefaultLimit, Max: MaxLimit},
		Searching: searching{
			Search:      searchMode{Available: "yes", SupportedParams: "q"},
			TvSearch:    searchMode{Available: "yes", SupportedParams: "q,season,ep"},
			MovieSearch: searchMode{Available: "yes", SupportedParams: "q"},
			MusicSearch: searchMode{Available: "yes", SupportedParams: "q"},
			BookSearch:  searchMode{Available: "yes", SupportedParams: "q"},
		},
		Categories: []capsCategory{
			{ID: domain.CodeMovie, Name: "Movies"},
			{ID: domain.CodeAudio, Name: "Audio"},
			{ID: domain.CodeTv, Name: "TV"},
			{ID: domain.CodeBook, Name: "Books"},
		},
	}
}
