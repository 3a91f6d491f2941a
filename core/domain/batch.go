// ABOUTME: Batch domain model groups the entries and errors of indexer calls
// ABOUTME: Batches from several indexers are combined by concatenation

package domain

import "indexer-aggregator-api/core/errors"

// Batch is the unit every indexer and the manager exchange
type Batch struct {
	Entries []Entry
	Errors  []*errors.IndexerError
}

// BatchFromError returns a batch holding a single error
func BatchFromError(err *errors.IndexerError) Batch {
	return Batch{Errors: []*errors.IndexerError{err}}
}

// Merge returns a new batch with the entries and errors of other appended
// after those of b. The receiver is left untouched.
func (b Batch) Merge(other Batch) Batch {
	merged := Batch{}
	if n := len(b.Entries) + len(other.Entries); n > 0 {
		merged.Entries = make([]Entry, 0, n)
		merged.Entries = append(merged.Entries, b.Entries...)
		merged.Entries = append(merged.Entries, other.Entries...)
	}
	if n := len(b.Errors) + len(other.Errors); n > 0 {
		merged.Errors = make([]*errors.IndexerError, 0, n)
		merged.Errors = append(merged.Errors, b.Errors...)
		merged.Errors = append(merged.Errors, other.Errors...)
	}
	return merged
}

// AddEntry appends an entry to the batch
func (b *Batch) AddEntry(entry Entry) {
	b.Entries = append(b.Entries, entry)
}

// AddError appends an error to the batch
func (b *Batch) AddError(err *errors.IndexerError) {
	b.Errors = append(b.Errors, err)
}

// IsEmpty reports whether the batch holds neither entries nor errors
func (b Batch) IsEmpty() bool {
	return len(b.Entries) == 0 && len(b.Errors) == 0
}
