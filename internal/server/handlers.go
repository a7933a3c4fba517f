package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/seo-analyzer/internal/ingestion"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/types"
)

// AnalyzeRequest is the body of POST /analyze and POST /analyze/stream.
// Text is analyzed as given; URL is fetched and extracted instead when Text is empty.
type AnalyzeRequest struct {
	Text            string          `json:"text"`
	URL             string          `json:"url,omitempty" validate:"omitempty,url"`
	Keywords        []types.Keyword `json:"keywords,omitempty" validate:"omitempty,dive"`
	ExtractKeywords bool            `json:"extract_keywords,omitempty"`

	// Refresh re-fetches URL instead of reusing a cached page
	Refresh bool `json:"refresh,omitempty"`
}

// AnalyzeResponse is the body returned by POST /analyze
type AnalyzeResponse struct {
	RequestID string               `json:"request_id"`
	Source    string               `json:"source"`
	Metadata  *ingestion.Metadata  `json:"metadata,omitempty"`
	Keywords  *types.KeywordResult `json:"keywords,omitempty"`
	Report    *types.QualityReport `json:"report"`
	Dashboard types.Dashboard      `json:"dashboard"`
}

// KeywordsRequest is the body of POST /keywords
type KeywordsRequest struct {
	Text string `json:"text" validate:"required"`
	Max  int    `json:"max,omitempty" validate:"omitempty,min=1,max=50"`
}

// KeywordsResponse is the body returned by POST /keywords
type KeywordsResponse struct {
	RequestID string               `json:"request_id"`
	Language  keywords.Language    `json:"language"`
	Keywords  *types.KeywordResult `json:"keywords"`
}

// decodeRequest reads a JSON body into dst and validates it
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError converts the first validator failure into an ErrValidation
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &ErrValidation{Field: fe.Namespace(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// handleAnalyze scores an article and returns the report with its dashboard
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	result, err := pipeline.Run(r.Context(), s.pipelineDeps(req), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		RequestID: RequestID(r.Context()),
		Source:    result.Source,
		Metadata:  result.Metadata,
		Keywords:  result.Keywords,
		Report:    result.Report,
		Dashboard: result.Dashboard,
	})
}

// handleAnalyzeStream runs the full pipeline and reports each step as a
// server-sent event, ending with a "complete" or "error" event.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	input := req.input()
	input.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			s.logger.WithError(err).Debug("client went away")
		}
	}

	result, err := pipeline.Run(r.Context(), s.pipelineDeps(req), input)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(RequestID(r.Context()), result)
}

// decodeAnalyzeRequest reads an analyze body and rejects requests that cannot
// run, so both analyze endpoints answer them with the same status
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return req, false
	}
	if req.Text == "" && req.URL == "" {
		s.writeError(w, r, pipeline.ErrNoInput)
		return req, false
	}
	if req.ExtractKeywords && len(req.Keywords) == 0 && s.keywords == nil {
		s.writeError(w, r, ErrKeywordsUnavailable)
		return req, false
	}
	return req, true
}

func (req AnalyzeRequest) input() pipeline.Input {
	return pipeline.Input{
		Text:     req.Text,
		URL:      req.URL,
		Keywords: req.Keywords,
		Refresh:  req.Refresh,
	}
}

// pipelineDeps returns the pipeline collaborators for a request; keyword
// extraction is only used when the request asks for it
func (s *Server) pipelineDeps(req AnalyzeRequest) pipeline.Deps {
	deps := s.deps
	if !req.ExtractKeywords {
		deps.Keywords = nil
	}
	return deps
}

// handleKeywords extracts keywords from an article with the configured LLM provider
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	if s.keywords == nil {
		s.writeError(w, r, ErrKeywordsUnavailable)
		return
	}

	var req KeywordsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.keywords.Extract(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("keyword extraction failed: %w", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, KeywordsResponse{
		RequestID: RequestID(r.Context()),
		Language:  keywords.DetectLanguage(req.Text),
		Keywords:  limitGroups(result, req.Max),
	})
}

// limitGroups returns a copy of result with each group cut to limit entries; 0 keeps all
func limitGroups(result *types.KeywordResult, limit int) *types.KeywordResult {
	cut := func(group []types.Keyword) []types.Keyword {
		if limit > 0 && len(group) > limit {
			group = group[:limit]
		}
		return append([]types.Keyword{}, group...)
	}
	return &types.KeywordResult{
		Primary:   cut(result.Primary),
		Secondary: cut(result.Secondary),
		Longtail:  cut(result.Longtail),
	}
}
