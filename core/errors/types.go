// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for indexer failures, validation and upstream APIs

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an unexpected response from an indexer site
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// Reason is the closed set of indexer failure kinds
type Reason string

const (
	ReasonMissingField   Reason = "missing-field"
	ReasonInvalidField   Reason = "invalid-field"
	ReasonNetworkFailure Reason = "network-failure"
	ReasonReadFailure    Reason = "read-failure"
	ReasonURLBuild       Reason = "url-build-failure"
	ReasonMagnetNotFound Reason = "magnet-not-found"
)

// IndexerError describes one failure inside an indexer call.
// It is attached to a batch, never returned across the indexer boundary.
type IndexerError struct {
	Origin string
	Reason Reason
	// Field is set for missing-field and invalid-field
	Field string
	// URL is set for network-failure and read-failure
	URL   string
	Cause error
}

// Error implements the error interface
func (e *IndexerError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Origin, e.Reason)
	if e.Field != "" {
		msg += fmt.Sprintf(" field=%s", e.Field)
	}
	if e.URL != "" {
		msg += fmt.Sprintf(" url=%s", e.URL)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *IndexerError) Unwrap() error {
	return e.Cause
}

// Fields returns the error as structured log fields
func (e *IndexerError) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"origin": e.Origin,
		"reason": string(e.Reason),
	}
	if e.Field != "" {
		fields["field"] = e.Field
	}
	if e.URL != "" {
		fields["url"] = e.URL
	}
	if e.Cause != nil {
		fields["error"] = e.Cause.Error()
	}
	return fields
}

// MissingField reports a row without the named field
func MissingField(origin, field string) *IndexerError {
	return &IndexerError{Origin: origin, Reason: ReasonMissingField, Field: field}
}

// InvalidField reports a named field whose value failed to parse
func InvalidField(origin, field string, cause error) *IndexerError {
	return &IndexerError{Origin: origin, Reason: ReasonInvalidField, Field: field, Cause: cause}
}

// NetworkFailure reports a request that could not be completed
func NetworkFailure(origin, url string, cause error) *IndexerError {
	return &IndexerError{Origin: origin, Reason: ReasonNetworkFailure, URL: url, Cause: cause}
}

// ReadFailure reports a response body that could not be read or decoded
func ReadFailure(origin, url string, cause error) *IndexerError {
	return &IndexerError{Origin: origin, Reason: ReasonReadFailure, URL: url, Cause: cause}
}

// URLBuildFailure reports a request URL that could not be built
func URLBuildFailure(origin string, cause error) *IndexerError {
	return &IndexerError{Origin: origin, Reason: ReasonURLBuild, Cause: cause}
}

// MagnetNotFound reports a detail page without a magnet link
func MagnetNotFound(origin, url string) *IndexerError {
	return &IndexerError{Origin: origin, Reason: ReasonMagnetNotFound, URL: url}
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
