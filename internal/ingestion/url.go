package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/logging"
	"github.com/sirupsen/logrus"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// renderWithBrowser is replaced in tests
var renderWithBrowser = fetch.WithBrowser

// URLOptions configures FromURL
type URLOptions struct {
	// UseBrowser re-renders the page in a headless browser when the fetched HTML
	// yields too little text.
	UseBrowser     bool
	BrowserTimeout time.Duration
	// Fetcher caches pages between calls; nil fetches directly.
	Fetcher *fetch.CachedFetcher
	Logger  logrus.FieldLogger
}

// FromURL fetches an article page, extracts its text and returns it with metadata.
// If the extracted text is too short and UseBrowser is set, the page is rendered in
// a headless browser and extracted again; browser failures keep the HTTP result.
func FromURL(ctx context.Context, urlStr string, opts *URLOptions) (*Article, *Metadata, error) {
	if opts == nil {
		opts = &URLOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger = logger.WithFields(logrus.Fields{"url": urlStr, "platform": platform})

	html, err := fetchHTML(ctx, urlStr, opts.Fetcher)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger.WithField("bytes", len(html)).Debug("fetched page")

	article, err := FromHTML(html, urlStr)
	if err != nil && !opts.UseBrowser {
		return nil, nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && (article == nil || fetch.ShouldUseBrowser(article.Text)) {
		logger.Debug("extracted text too short, rendering with browser")

		timeout := opts.BrowserTimeout
		if timeout == 0 {
			timeout = fetch.DefaultBrowserTimeout
		}
		browserHTML, browserErr := renderWithBrowser(ctx, urlStr, timeout, logger)
		if browserErr != nil {
			logger.WithError(browserErr).Warn("browser rendering failed, using HTTP content")
		} else if rendered, renderErr := FromHTML(browserHTML, urlStr); renderErr != nil {
			logger.WithError(renderErr).Warn("browser content extraction failed")
		} else {
			article = rendered
		}
	}

	if article == nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.WithFields(logrus.Fields{
		"extractor": article.Extractor,
		"chars":     len(article.Text),
	}).Debug("extracted article")

	metadata := NewMetadata(article.Text, urlStr)
	metadata.Platform = string(platform)
	metadata.ApplyArticle(article)

	return article, metadata, nil
}

func fetchHTML(ctx context.Context, urlStr string, fetcher *fetch.CachedFetcher) (string, error) {
	if fetcher != nil {
		result, err := fetcher.Fetch(ctx, urlStr)
		if err != nil {
			return "", err
		}
		return result.HTML, nil
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}
