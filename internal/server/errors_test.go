package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/seo-analyzer/internal/ingestion"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/quality"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "required"}
	assert.Equal(t, "validation error: text - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", &ErrValidation{Field: "max", Message: "max"}, http.StatusBadRequest},
		{"Invalid input", &quality.InputError{Message: "text is not valid UTF-8"}, http.StatusBadRequest},
		{"Wrapped invalid input", fmt.Errorf("analysis failed: %w", &quality.InputError{Message: "keyword 0"}), http.StatusBadRequest},
		{"No input", pipeline.ErrNoInput, http.StatusBadRequest},
		{"Keywords unavailable", ErrKeywordsUnavailable, http.StatusServiceUnavailable},
		{"Extraction failed", fmt.Errorf("%w: empty", ingestion.ErrContentExtractionFailed), http.StatusUnprocessableEntity},
		{"No keywords", &keywords.ValidationError{Message: "no valid keywords found in any group"}, http.StatusUnprocessableEntity},
		{"Fetch failed", fmt.Errorf("%w: timeout", ingestion.ErrHTTPRequestFailed), http.StatusBadGateway},
		{"Provider failed", &keywords.APICallError{Message: "generate"}, http.StatusBadGateway},
		{"Bad provider output", &keywords.ParseError{Message: "not JSON"}, http.StatusBadGateway},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
