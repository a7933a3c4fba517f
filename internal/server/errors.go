// Package server provides the HTTP API for article analysis and keyword extraction.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/seo-analyzer/internal/ingestion"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/quality"
)

// ErrKeywordsUnavailable is returned when keyword extraction is requested but
// no LLM provider is configured
var ErrKeywordsUnavailable = errors.New("keyword extraction is not configured")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var inputErr *quality.InputError
	var keywordsValidationErr *keywords.ValidationError
	var apiErr *keywords.APICallError
	var parseErr *keywords.ParseError

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &inputErr),
		errors.Is(err, pipeline.ErrNoInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrKeywordsUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ingestion.ErrContentExtractionFailed),
		errors.As(err, &keywordsValidationErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.As(err, &apiErr),
		errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
