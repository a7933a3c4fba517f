package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/quality"
	"github.com/jonathan/seo-analyzer/internal/server/ratelimit"
	"github.com/jonathan/seo-analyzer/internal/types"
)

const testArticle = `Metro rail hours extended

Dhaka metro rail will run until midnight from next month, the operator said.

"We want the metro to serve everyone," said the project director.`

// mockSource implements keywords.Source
type mockSource struct {
	mu     sync.Mutex
	calls  int
	result *types.KeywordResult
	err    error
}

func (m *mockSource) Extract(context.Context, string) (*types.KeywordResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.result, m.err
}

func newMockSource() *mockSource {
	return &mockSource{result: &types.KeywordResult{
		Primary:   []types.Keyword{{Term: "metro rail"}, {Term: "dhaka metro"}},
		Secondary: []types.Keyword{{Term: "midnight"}, {Term: "operator"}, {Term: "project director"}},
		Longtail:  []types.Keyword{},
	}}
}

func newTestServer(t *testing.T, source keywords.Source) *Server {
	t.Helper()
	cfg := Config{RateLimit: &ratelimit.Config{Enabled: false}}
	if source != nil {
		cfg.Keywords = source
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	message, _ := resp["error"].(string)
	return message
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(Config{Port: 70000})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","cached_pages":0,"cached_keywords":0}`, w.Body.String())
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

// newCountingPage serves a short article and counts how often it is fetched
func newCountingPage(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`<html><head><title>Budget passed</title></head><body><article>
<h1>Budget passed</h1>
<p>The budget was passed in parliament on Thursday after a long debate between the parties.</p>
<h2>Taxes</h2><p>Income tax bands were widened for the first time in five years, officials said.</p>
</article></body></html>`))
	}))
	t.Cleanup(page.Close)
	return page, &hits
}

func newCachingServer(t *testing.T, source keywords.Source) *Server {
	t.Helper()
	s, err := New(Config{
		RateLimit: &ratelimit.Config{Enabled: false},
		Keywords:  keywords.NewCachedExtractor(source, time.Minute),
		Fetcher:   fetch.NewCachedFetcher(nil),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestHealthEndpoint_CacheSizes(t *testing.T) {
	page, _ := newCountingPage(t)
	s := newCachingServer(t, newMockSource())

	w := doRequest(s, http.MethodPost, "/analyze", `{"url": "`+page.URL+`", "extract_keywords": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.CachedPages)
	assert.Equal(t, 1, resp.CachedKeywords)
}

func TestAnalyzeEndpoint_RefreshRefetchesURL(t *testing.T) {
	page, hits := newCountingPage(t)
	s := newCachingServer(t, newMockSource())
	body := `{"url": "` + page.URL + `"}`

	for range 2 {
		w := doRequest(s, http.MethodPost, "/analyze", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, int32(1), hits.Load(), "second request is served from the page cache")

	w := doRequest(s, http.MethodPost, "/analyze", `{"url": "`+page.URL+`", "refresh": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int32(2), hits.Load())
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t, nil)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text": "Short"}`))
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.RequestID)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodOptions, "/analyze", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	keywordList := []types.Keyword{{Term: "metro rail"}}
	body, err := json.Marshal(AnalyzeRequest{Text: testArticle, Keywords: keywordList})
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/analyze", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	expected, err := quality.AnalyzeContentQuality(testArticle, keywordList)
	require.NoError(t, err)
	assert.Equal(t, expected, resp.Report)
	assert.Equal(t, quality.BuildDashboard(expected), resp.Dashboard)
	assert.Equal(t, w.Header().Get("X-Request-ID"), resp.RequestID)
	assert.Equal(t, "inline text", resp.Source)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "Metro rail hours extended", resp.Metadata.Title)
	assert.Nil(t, resp.Keywords)
}

func TestAnalyzeEndpoints_TextIsNotCleaned(t *testing.T) {
	text := "Metro  rail   hours\n\n\n\nThe metro  opened . Riders   cheered ."
	expected, err := quality.AnalyzeContentQuality(text, nil)
	require.NoError(t, err)
	body, err := json.Marshal(AnalyzeRequest{Text: text})
	require.NoError(t, err)

	s := newTestServer(t, nil)
	w := doRequest(s, http.MethodPost, "/analyze", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, expected, resp.Report)

	stream := doRequest(s, http.MethodPost, "/analyze/stream", string(body)).Body.String()
	reportJSON, err := json.Marshal(expected)
	require.NoError(t, err)
	assert.Contains(t, stream, string(reportJSON))
}

func TestAnalyzeEndpoints_NoInput(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/analyze", "/analyze/stream"} {
		for _, body := range []string{`{}`, `{"text": ""}`, `{"keywords": [{"term": "metro"}]}`} {
			t.Run(path+" "+body, func(t *testing.T) {
				w := doRequest(s, http.MethodPost, path, body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.Equal(t, pipeline.ErrNoInput.Error(), decodeError(t, w))
			})
		}
	}
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{"Invalid JSON", `{"text": `, "invalid JSON"},
		{"Wrong type", `{"text": 42}`, "invalid JSON"},
		{"Empty keyword term", `{"text": "news", "keywords": [{"term": ""}]}`, "Term"},
		{"Unknown difficulty", `{"text": "news", "keywords": [{"term": "rain", "difficulty": "extreme"}]}`, "Difficulty"},
		{"Malformed URL", `{"url": "not a url"}`, "URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(s, http.MethodPost, "/analyze", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w), tt.expectedError)
		})
	}
}

func TestAnalyzeEndpoint_ExtractKeywords(t *testing.T) {
	source := newMockSource()
	s := newTestServer(t, source)

	w := doRequest(s, http.MethodPost, "/analyze", `{"text": "Metro rail news\n\nThe metro rail opened.", "extract_keywords": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, source.result, resp.Keywords)
	assert.True(t, resp.Report.SEO.KeywordInTitle)
	assert.Equal(t, "inline text", resp.Source)

	// supplied keywords win over extraction
	w = doRequest(s, http.MethodPost, "/analyze", `{"text": "news", "keywords": [{"term": "news"}], "extract_keywords": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, source.calls)
}

func TestAnalyzeEndpoint_OnlyPrimaryKeywordsScored(t *testing.T) {
	source := &mockSource{result: &types.KeywordResult{
		Secondary: []types.Keyword{{Term: "metro rail"}},
	}}
	s := newTestServer(t, source)
	body, err := json.Marshal(AnalyzeRequest{Text: testArticle, ExtractKeywords: true})
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/analyze", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50.0, resp.Report.SEO.SEOHealthScore)
	assert.False(t, resp.Report.SEO.KeywordInTitle)
	assert.Equal(t, source.result, resp.Keywords)
}

func TestAnalyzeEndpoint_ExtractKeywordsUnavailable(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/analyze", "/analyze/stream"} {
		w := doRequest(s, http.MethodPost, path, `{"text": "news", "extract_keywords": true}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Equal(t, ErrKeywordsUnavailable.Error(), decodeError(t, w))
	}
}

func TestAnalyzeEndpoint_URL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Budget passed</title></head><body><article>
<h1>Budget passed</h1>
<p>The budget was passed in parliament on Thursday after a long debate between the parties.</p>
<h2>Taxes</h2><p>Income tax bands were widened for the first time in five years, officials said.</p>
</article></body></html>`))
	}))
	defer page.Close()

	s := newTestServer(t, nil)
	w := doRequest(s, http.MethodPost, "/analyze", `{"url": "`+page.URL+`", "keywords": [{"term": "budget"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, page.URL, resp.Source)
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, page.URL, resp.Metadata.URL)
	assert.True(t, resp.Report.SEO.KeywordInTitle)
}

func TestAnalyzeEndpoint_URLFetchFails(t *testing.T) {
	page := httptest.NewServer(http.NotFoundHandler())
	defer page.Close()

	s := newTestServer(t, nil)
	w := doRequest(s, http.MethodPost, "/analyze", `{"url": "`+page.URL+`/missing"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEmpty(t, decodeError(t, w))
}

func TestAnalyzeStreamEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	body, err := json.Marshal(AnalyzeRequest{Text: testArticle, Keywords: []types.Keyword{{Term: "metro"}}})
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/analyze/stream", string(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	stream := w.Body.String()
	assert.Equal(t, 4, strings.Count(stream, "event: progress\n"))
	assert.Contains(t, stream, `"step":"dashboard"`)
	assert.Contains(t, stream, "event: complete\n")
	assert.NotContains(t, stream, "event: error\n")
}

func TestAnalyzeStreamEndpoint_Error(t *testing.T) {
	page := httptest.NewServer(http.NotFoundHandler())
	defer page.Close()
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodPost, "/analyze/stream", `{"url": "`+page.URL+`/missing"}`)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	stream := w.Body.String()
	assert.Contains(t, stream, "event: error\n")
	assert.NotContains(t, stream, "event: complete\n")
}

func TestKeywordsEndpoint(t *testing.T) {
	source := newMockSource()
	s := newTestServer(t, source)

	w := doRequest(s, http.MethodPost, "/keywords", `{"text": "Metro rail news", "max": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp KeywordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, keywords.LanguageEnglish, resp.Language)
	assert.Len(t, resp.Keywords.Primary, 2)
	assert.Len(t, resp.Keywords.Secondary, 2)
	assert.Empty(t, resp.Keywords.Longtail)
	assert.Len(t, source.result.Secondary, 3, "source result is not modified")
	assert.NotEmpty(t, resp.RequestID)
}

func TestKeywordsEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name     string
		source   *mockSource
		body     string
		expected int
	}{
		{"Not configured", nil, `{"text": "news"}`, http.StatusServiceUnavailable},
		{"Missing text", newMockSource(), `{}`, http.StatusBadRequest},
		{"Max out of range", newMockSource(), `{"text": "news", "max": 500}`, http.StatusBadRequest},
		{"Provider failure", &mockSource{err: &keywords.APICallError{Message: "quota", Cause: errors.New("429")}}, `{"text": "news"}`, http.StatusBadGateway},
		{"Nothing usable", &mockSource{err: &keywords.ValidationError{Message: "no valid keywords found in any group"}}, `{"text": "news"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Server
			if tt.source == nil {
				s = newTestServer(t, nil)
			} else {
				s = newTestServer(t, tt.source)
			}

			w := doRequest(s, http.MethodPost, "/keywords", tt.body)

			assert.Equal(t, tt.expected, w.Code)
			assert.NotEmpty(t, decodeError(t, w))
		})
	}
}

func TestKeywordsEndpoint_RateLimited(t *testing.T) {
	s, err := New(Config{
		Keywords: newMockSource(),
		RateLimit: &ratelimit.Config{
			Enabled: true,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/keywords", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		},
	})
	require.NoError(t, err)
	defer s.Close()

	w := doRequest(s, http.MethodPost, "/keywords", `{"text": "news"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = doRequest(s, http.MethodPost, "/keywords", `{"text": "news"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate limit exceeded", decodeError(t, w))

	// health is never limited
	w = doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusNotFound, doRequest(s, http.MethodGet, "/missing", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(s, http.MethodGet, "/analyze", "").Code)
}
