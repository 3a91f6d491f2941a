// ABOUTME: Fetch helpers shared by indexers for HTML pages and JSON endpoints
// ABOUTME: Every failure is returned as an IndexerError ready to attach to a batch

package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/interfaces"
)

// maxBodySize caps how much of a response is read
const maxBodySize = 10 * 1024 * 1024

var (
	errEmptyResponse = stderrors.New("empty response")
	errInvalidBase   = stderrors.New("base url needs a scheme and a host")
)

// Fetch performs a GET request and returns the response body
func Fetch(ctx context.Context, client interfaces.HTTPClient, origin, url string) ([]byte, *errors.IndexerError) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, errors.NetworkFailure(origin, url, err)
	}
	body := resp.Body()
	if body == nil {
		return nil, errors.ReadFailure(origin, url, errEmptyResponse)
	}
	defer body.Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, errors.NetworkFailure(origin, url, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
			API:        origin,
		})
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, errors.ReadFailure(origin, url, err)
	}
	return data, nil
}

// FetchDocument fetches url and parses it as HTML
func FetchDocument(ctx context.Context, client interfaces.HTTPClient, origin, url string) (*goquery.Document, *errors.IndexerError) {
	data, ierr := Fetch(ctx, client, origin, url)
	if ierr != nil {
		return nil, ierr
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ReadFailure(origin, url, err)
	}
	return doc, nil
}

// FetchJSON fetches url and decodes the JSON body into v
func FetchJSON(ctx context.Context, client interfaces.HTTPClient, origin, url string, v interface{}) *errors.IndexerError {
	data, ierr := Fetch(ctx, client, origin, url)
	if ierr != nil {
		return ierr
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.ReadFailure(origin, url, err)
	}
	return nil
}
