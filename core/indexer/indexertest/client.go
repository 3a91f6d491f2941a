// ABOUTME: Fixture-backed HTTP client for indexer tests
// ABOUTME: Serves canned bodies per URL and records every requested URL

// Package indexertest provides test doubles for indexer packages.
package indexertest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"indexer-aggregator-api/core/interfaces"
)

// Route is the canned answer for one URL
type Route struct {
	Status int
	Body   string
	Err    error
	// Delay holds the answer back, honoring context cancellation
	Delay time.Duration
}

// Client implements interfaces.HTTPClient from a URL to Route table
type Client struct {
	mu       sync.Mutex
	routes   map[string]Route
	requests []string
}

// NewClient creates an empty fixture client
func NewClient() *Client {
	return &Client{routes: make(map[string]Route)}
}

// Handle registers a 200 response with body for url
func (c *Client) Handle(url, body string) *Client {
	return c.HandleRoute(url, Route{Status: http.StatusOK, Body: body})
}

// HandleRoute registers an arbitrary route for url
func (c *Client) HandleRoute(url string, route Route) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[url] = route
	return c
}

// Requests returns the URLs requested so far in call order
func (c *Client) Requests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.requests))
	copy(out, c.requests)
	return out
}

// Get implements interfaces.HTTPClient
func (c *Client) Get(ctx context.Context, url string) (interfaces.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, url)
	route, ok := c.routes[url]
	c.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no fixture for %s", url)
	}
	if route.Delay > 0 {
		select {
		case <-time.After(route.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if route.Err != nil {
		return nil, route.Err
	}
	return &Response{Status: route.Status, Content: route.Body}, nil
}

// Response is a canned interfaces.Response
type Response struct {
	Status  int
	Content string
	Headers map[string]string
}

// StatusCode implements interfaces.Response
func (r *Response) StatusCode() int {
	return r.Status
}

// Body implements interfaces.Response
func (r *Response) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(r.Content))
}

// Header implements interfaces.Response
func (r *Response) Header(key string) string {
	return r.Headers[key]
}
