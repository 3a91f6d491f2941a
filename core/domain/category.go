// ABOUTME: Category domain model for the Torznab category taxonomy
// ABOUTME: Maps categories to and from their wire-visible numeric codes

package domain

import "fmt"

// Category is one of the fixed Torznab content categories
type Category int

const (
	// CategoryAudio covers audio content (code 3000)
	CategoryAudio Category = iota + 1
	// CategoryBook covers books (code 7000)
	CategoryBook
	// CategoryMovie covers movies (code 2000)
	CategoryMovie
	// CategoryMusic covers music, sharing the audio code
	CategoryMusic
	// CategoryTv covers TV shows (code 5000)
	CategoryTv
)

// Torznab category codes
const (
	CodeMovie = 2000
	CodeAudio = 3000
	CodeTv    = 5000
	CodeBook  = 7000
)

// Code returns the Torznab numeric code of the category
func (c Category) Code() int {
	switch c {
	case CategoryAudio, CategoryMusic:
		return CodeAudio
	case CategoryMovie:
		return CodeMovie
	case CategoryTv:
		return CodeTv
	case CategoryBook:
		return CodeBook
	default:
		return 0
	}
}

// String returns a lowercase name for logging
func (c Category) String() string {
	switch c {
	case CategoryAudio:
		return "audio"
	case CategoryBook:
		return "book"
	case CategoryMovie:
		return "movie"
	case CategoryMusic:
		return "music"
	case CategoryTv:
		return "tv"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// CategoryFromCode maps a Torznab numeric code to its category.
// Codes outside the fixed table are rejected.
func CategoryFromCode(code int) (Category, error) {
	switch code {
	case CodeMovie:
		return CategoryMovie, nil
	case CodeAudio:
		return CategoryAudio, nil
	case CodeTv:
		return CategoryTv, nil
	case CodeBook:
		return CategoryBook, nil
	default:
		return 0, fmt.Errorf("invalid category %d", code)
	}
}
