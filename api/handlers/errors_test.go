package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"indexer-aggregator-api/core/errors"
)

func TestToTorznabError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid parameter", &errors.ValidationError{Field: "season", Message: "not a number"}, http.StatusBadRequest, `code="201"`},
		{"wrapped validation", fmt.Errorf("handling: %w", &errors.ValidationError{Field: "cat"}), http.StatusBadRequest, `code="201"`},
		{"unsupported function", &errors.ValidationError{Field: "t"}, http.StatusBadRequest, `code="203"`},
		{"anything else", fmt.Errorf("boom"), http.StatusInternalServerError, `code="900"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := toTorznabError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, string(body), tt.code)
		})
	}
}
