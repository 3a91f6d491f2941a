// ABOUTME: Row engine that applies a parser to every repeated element of a listing
// ABOUTME: Each row is parsed independently so one broken row never hides the others

package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"indexer-aggregator-api/core/errors"
)

// Selector compiles a CSS selector once. It panics on invalid input, so it
// belongs in constructors building fixed selector tables.
func Selector(css string) goquery.Matcher {
	return cascadia.MustCompile(css)
}

// RowParser turns one listing row into a value or a single error
type RowParser[T any] func(row Row) (T, *errors.IndexerError)

// Rows runs parse over every element of doc matched by rows
func Rows[T any](origin string, doc *goquery.Document, rows goquery.Matcher, parse RowParser[T]) ([]T, []*errors.IndexerError) {
	var values []T
	var errs []*errors.IndexerError

	doc.FindMatcher(rows).Each(func(_ int, sel *goquery.Selection) {
		value, err := parse(Row{origin: origin, sel: sel})
		if err != nil {
			errs = append(errs, err)
			return
		}
		values = append(values, value)
	})

	return values, errs
}

// Row is one listing element with field lookup helpers
type Row struct {
	origin string
	sel    *goquery.Selection
}

// Find returns the first element matching m, or a missing-field error
func (r Row) Find(field string, m goquery.Matcher) (*goquery.Selection, *errors.IndexerError) {
	found := r.sel.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, errors.MissingField(r.origin, field)
	}
	return found, nil
}

// Text returns the trimmed text content of the first element matching m.
// Blank text counts as missing.
func (r Row) Text(field string, m goquery.Matcher) (string, *errors.IndexerError) {
	found, err := r.Find(field, m)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(found.Text())
	if text == "" {
		return "", errors.MissingField(r.origin, field)
	}
	return text, nil
}

// OwnText returns the first non-blank text node directly under the first
// element matching m, ignoring text of nested elements
func (r Row) OwnText(field string, m goquery.Matcher) (string, *errors.IndexerError) {
	found, err := r.Find(field, m)
	if err != nil {
		return "", err
	}
	text := ""
	found.Contents().EachWithBreak(func(_ int, node *goquery.Selection) bool {
		if goquery.NodeName(node) != "#text" {
			return true
		}
		if value := strings.TrimSpace(node.Text()); value != "" {
			text = value
			return false
		}
		return true
	})
	if text == "" {
		return "", errors.MissingField(r.origin, field)
	}
	return text, nil
}

// Attr returns attribute attr of the first element matching m
func (r Row) Attr(field string, m goquery.Matcher, attr string) (string, *errors.IndexerError) {
	found, err := r.Find(field, m)
	if err != nil {
		return "", err
	}
	value, ok := found.Attr(attr)
	if !ok || strings.TrimSpace(value) == "" {
		return "", errors.MissingField(r.origin, field)
	}
	return strings.TrimSpace(value), nil
}
