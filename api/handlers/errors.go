// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts request errors into HTTP status codes and Torznab error documents

package handlers

import (
	stderrors "errors"
	"net/http"

	"indexer-aggregator-api/core/errors"
	"indexer-aggregator-api/core/torznab"
)

// Torznab error codes
const (
	codeIncorrectParameter  = 201
	codeFunctionUnavailable = 203
	codeUnknownError        = 900
)

// toTorznabError maps err to an HTTP status and a Torznab error document
func toTorznabError(err error) (int, []byte) {
	var validation *errors.ValidationError
	if stderrors.As(err, &validation) {
		code := codeIncorrectParameter
		if validation.Field == "t" {
			code = codeFunctionUnavailable
		}
		return http.StatusBadRequest, torznab.Error(code, validation.Error())
	}
	return http.StatusInternalServerError, torznab.Error(codeUnknownError, "internal error")
}
