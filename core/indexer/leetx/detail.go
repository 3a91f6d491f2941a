// ABOUTME: Detail page magnet resolution for 1337x using a colly collector
// ABOUTME: Takes the first magnet href inside the torrent detail download box

package leetx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly"

	"indexer-aggregator-api/core/errors"
)

const (
	detailUserAgent   = "IndexerAggregator/1.0"
	detailMaxBodySize = 5 * 1024 * 1024
	magnetPrefix      = "magnet:?"
	magnetRegion      = "main.container div.row div.page-content div.box-info.torrent-detail-page div.no-top-radius div ul li a"
)

// magnetResolver fetches detail pages and extracts their magnet link
type magnetResolver struct {
	origin  string
	timeout time.Duration
}

// resolve visits detailURL and returns the first magnet link of the
// download region. The request timeout never exceeds the ctx deadline.
func (r *magnetResolver) resolve(ctx context.Context, detailURL string) (string, *errors.IndexerError) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", errors.NetworkFailure(r.origin, detailURL, context.DeadlineExceeded)
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return "", errors.NetworkFailure(r.origin, detailURL, err)
	}

	c := colly.NewCollector(
		colly.UserAgent(detailUserAgent),
		colly.MaxBodySize(detailMaxBodySize),
		colly.AllowURLRevisit(),
	)
	c.WithTransport(contextTransport{ctx: ctx, next: http.DefaultTransport})
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}
	c.OnRequest(func(req *colly.Request) {
		if ctx.Err() != nil {
			req.Abort()
		}
	})

	var magnet string
	c.OnHTML(magnetRegion, func(e *colly.HTMLElement) {
		if magnet != "" {
			return
		}
		if href := strings.TrimSpace(e.Attr("href")); strings.HasPrefix(href, magnetPrefix) {
			magnet = href
		}
	})

	var status int
	c.OnError(func(resp *colly.Response, err error) {
		if resp != nil {
			status = resp.StatusCode
		}
	})

	visitErr := c.Visit(detailURL)
	if magnet == "" {
		if err := ctx.Err(); err != nil {
			return "", errors.NetworkFailure(r.origin, detailURL, err)
		}
	}
	if err := visitErr; err != nil {
		if status >= 400 {
			return "", errors.NetworkFailure(r.origin, detailURL, &errors.ExternalAPIError{
				StatusCode: status,
				Message:    err.Error(),
				API:        r.origin,
			})
		}
		return "", errors.NetworkFailure(r.origin, detailURL, err)
	}
	if magnet == "" {
		return "", errors.MagnetNotFound(r.origin, detailURL)
	}
	return magnet, nil
}

// contextTransport binds every collector request to ctx so a cancelled
// search stops detail fetches already in flight
type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}
