// ABOUTME: Torznab request parameters and their normalization
// ABOUTME: Resolves the search mode, category and season/episode token of a request

package search

import (
	"fmt"
	"strconv"
	"strings"

	"indexer-aggregator-api/core/domain"
	"indexer-aggregator-api/core/errors"
)

// Mode is the Torznab function requested through the t parameter
type Mode string

const (
	ModeCaps     Mode = "caps"
	ModeSearch   Mode = "search"
	ModeTvSearch Mode = "tvsearch"
	ModeMovie    Mode = "movie"
	ModeMusic    Mode = "music"
	ModeBook     Mode = "book"
)

// defaultCategories is the category used when a request carries no cat
var defaultCategories = map[Mode]domain.Category{
	ModeSearch:   domain.CategoryMovie,
	ModeTvSearch: domain.CategoryTv,
	ModeMovie:    domain.CategoryMovie,
	ModeMusic:    domain.CategoryMusic,
	ModeBook:     domain.CategoryBook,
}

// Query holds the raw parameters of a Torznab request
type Query struct {
	T      string
	Q      string
	Cat    string
	Season string
	Ep     string
	Limit  int
	Offset int
}

// request is a validated Query
type request struct {
	mode     Mode
	category domain.Category
	query    string
	limit    int
	offset   int
}

func parseMode(t string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(t)))
	if mode == ModeCaps {
		return mode, nil
	}
	if _, ok := defaultCategories[mode]; !ok {
		return "", &errors.ValidationError{Field: "t", Message: fmt.Sprintf("unsupported function %q", t)}
	}
	return mode, nil
}

// parseCategory resolves cat, using the first code of a comma separated list
func parseCategory(mode Mode, cat string) (domain.Category, error) {
	first := strings.TrimSpace(strings.SplitN(cat, ",", 2)[0])
	if first == "" {
		return defaultCategories[mode], nil
	}
	code, err := strconv.Atoi(first)
	if err != nil {
		return 0, &errors.ValidationError{Field: "cat", Message: fmt.Sprintf("not a category code: %q", first)}
	}
	category, err := domain.CategoryFromCode(code)
	if err != nil {
		return 0, &errors.ValidationError{Field: "cat", Message: err.Error()}
	}
	if mode == ModeMusic && category == domain.CategoryAudio {
		category = domain.CategoryMusic
	}
	return category, nil
}

// episodeToken renders season and episode as S01E02, S01 or E02
func episodeToken(season, ep string) (string, error) {
	var token strings.Builder
	for _, part := range []struct {
		field, prefix, value string
	}{
		{"season", "S", season},
		{"ep", "E", ep},
	} {
		value := strings.TrimSpace(part.value)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return "", &errors.ValidationError{Field: part.field, Message: fmt.Sprintf("not a number: %q", part.value)}
		}
		fmt.Fprintf(&token, "%s%02d", part.prefix, n)
	}
	return token.String(), nil
}

func (q Query) normalize() (request, error) {
	mode, err := parseMode(q.T)
	if err != nil {
		return request{}, err
	}
	req := request{mode: mode}
	if mode == ModeCaps {
		return req, nil
	}

	if req.category, err = parseCategory(mode, q.Cat); err != nil {
		return request{}, err
	}

	token, err := episodeToken(q.Season, q.Ep)
	if err != nil {
		return request{}, err
	}
	req.query = strings.Join(strings.Fields(q.Q+" "+token), " ")

	if q.Offset < 0 {
		return request{}, &errors.ValidationError{Field: "offset", Message: "must not be negative"}
	}
	if q.Limit < 0 {
		return request{}, &errors.ValidationError{Field: "limit", Message: "must not be negative"}
	}
	req.limit, req.offset = q.Limit, q.Offset
	return req, nil
}
