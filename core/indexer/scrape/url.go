package scrape

import (
	"net/url"

	"indexer-aggregator-api/core/errors"
)

// BuildURL resolves path and query against base. When rawPath is set it is
// used as the already escaped form of path.
func BuildURL(origin, base, path, rawPath string, query url.Values) (string, *errors.IndexerError) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", errors.URLBuildFailure(origin, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return "", errors.URLBuildFailure(origin, &url.Error{Op: "parse", URL: base, Err: errInvalidBase})
	}
	ref := &url.URL{Path: path, RawPath: rawPath}
	if len(query) > 0 {
		ref.RawQuery = query.Encode()
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// ResolveLink resolves a scraped href against base
func ResolveLink(origin, base, href string) (string, *errors.IndexerError) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", errors.URLBuildFailure(origin, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", errors.InvalidField(origin, "link", err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
