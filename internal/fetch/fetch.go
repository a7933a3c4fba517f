// Package fetch downloads article pages and turns their HTML into paragraph text.
package fetch

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/seo-analyzer/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SEOAnalyzer/1.0)"

// blockSelector lists the elements whose text becomes its own paragraph
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// Result is a fetched page. Text is only filled by CachedFetcher.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
}

// Error is returned for every failed fetch, including non-2xx responses.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a fetch. A nil Client gets one built from Timeout.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
	Client       *http.Client
}

// DefaultOptions returns the options used when nil is passed to URL.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// URL downloads an http or https page. A non-2xx status returns both the
// Result and an *Error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	fail := func(message string, cause error) *Error {
		return &Error{URL: urlStr, Message: message, Cause: cause}
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fail("invalid URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fail("failed to create request", err)
	}
	req.Header.Set("User-Agent", cmp.Or(opts.UserAgent, DefaultUserAgent))
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: cmp.Or(opts.Timeout, DefaultTimeout)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fail("HTTP request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, cmp.Or(opts.MaxBodyBytes, DefaultMaxBodyBytes)))
	if err != nil {
		return nil, fail("failed to read response body", err)
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, fail(fmt.Sprintf("HTTP status %d", resp.StatusCode), nil)
	}
	return result, nil
}

// ExtractMainText parses HTML and returns the main body text with one blank line
// between paragraphs. It removes noise elements using noiseSelectors, then finds
// content using contentSelectors, falling back to the body element.
// List items are prefixed with "- " so they survive as list lines.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove common unwanted elements (nav, footer, scripts, ads, etc.)
	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	if len(noiseSelectors) > 0 {
		noiseSelector := strings.Join(noiseSelectors, ", ")
		if noiseSelector != "" {
			doc.Find(noiseSelector).Remove()
		}
	}

	mainContent := selectMain(doc, contentSelectors)

	paragraphs := blockTexts(mainContent)
	if len(paragraphs) == 0 {
		return cleanWhitespace(mainContent.Text()), nil
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// HTMLToText converts an HTML fragment to paragraph-separated text using the
// same block rules as ExtractMainText, without noise removal.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	paragraphs := blockTexts(doc.Selection)
	if len(paragraphs) == 0 {
		return cleanWhitespace(doc.Text()), nil
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// CountHeadings counts h2 to h6 elements inside the main content of a page.
// The page title (h1) is not a section heading and is not counted.
func CountHeadings(html string, contentSelectors []string) (types.Headings, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.Headings{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	main := selectMain(doc, contentSelectors)
	return types.Headings{
		H2: main.Find("h2").Length(),
		H3: main.Find("h3").Length(),
		H4: main.Find("h4").Length(),
		H5: main.Find("h5").Length(),
		H6: main.Find("h6").Length(),
	}, nil
}

func selectMain(doc *goquery.Document, contentSelectors []string) *goquery.Selection {
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			return selection.First()
		}
	}
	return doc.Find("body")
}

// blockTexts returns the whitespace-normalized text of each innermost block element
func blockTexts(sel *goquery.Selection) []string {
	var paragraphs []string
	sel.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		// Outer blocks are skipped; their nested blocks are visited on their own
		if block.Find(blockSelector).Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(block.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(block) == "li" {
			text = "- " + text
		}
		paragraphs = append(paragraphs, text)
	})
	return paragraphs
}

// ArticleSelectors returns selectors optimized for news article pages.
func ArticleSelectors() []string {
	return []string{
		"[itemprop='articleBody']",
		".article-body",
		".article-content",
		".story-content",
		".entry-content",
		".post-content",
		"article",
		"main",
		"#content",
	}
}

// cleanWhitespace normalizes whitespace in text.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
