package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/types"
)

// Extractor names the method that produced an article's text
type Extractor string

// Extraction methods, in order of preference
const (
	ExtractorReadability Extractor = "readability"
	ExtractorSelectors   Extractor = "selectors"
	ExtractorText        Extractor = "text"
)

// Article is an extracted article ready for analysis.
// Text begins with the title line followed by a blank line, so the title is the
// first line and first paragraph seen by the analyzer.
type Article struct {
	Title     string
	Byline    string
	SiteName  string
	Text      string
	Extractor Extractor
	// Headings is set when the source was HTML and heading markup could be counted
	Headings *types.Headings
}

// ExtractionError represents a failure to obtain article text from HTML.
type ExtractionError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	source := e.URL
	if source == "" {
		source = "document"
	}
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", source, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", source, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// FromHTML extracts the article from a full HTML page.
// Readability extraction is tried first; when it fails or finds no text, the
// platform's content selectors are used instead. pageURL may be empty.
func FromHTML(html string, pageURL string) (*Article, error) {
	if article := fromReadability(html, pageURL); article != nil {
		return article, nil
	}

	platform := fetch.DetectPlatform(pageURL)
	selectors := fetch.PlatformContentSelectors(platform)
	body, err := fetch.ExtractMainText(html, selectors, fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Message: "failed to parse HTML", Cause: err}
	}
	body = CleanText(body)
	if body == "" {
		return nil, &ExtractionError{URL: pageURL, Message: "no article text found"}
	}

	title := pageTitle(html)
	headings, err := fetch.CountHeadings(html, selectors)
	if err != nil {
		return nil, &ExtractionError{URL: pageURL, Message: "failed to count headings", Cause: err}
	}

	return &Article{
		Title:     title,
		Text:      withTitle(title, body),
		Extractor: ExtractorSelectors,
		Headings:  &headings,
	}, nil
}

// fromReadability returns nil when readability cannot produce article text
func fromReadability(html string, pageURL string) *Article {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = &url.URL{}
	}

	extracted, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil
	}

	body, err := fetch.HTMLToText(extracted.Content)
	if err != nil {
		return nil
	}
	body = CleanText(body)
	if body == "" {
		return nil
	}

	headings, err := fetch.CountHeadings(extracted.Content, nil)
	if err != nil {
		return nil
	}

	title := strings.TrimSpace(extracted.Title)
	return &Article{
		Title:     title,
		Byline:    strings.TrimSpace(extracted.Byline),
		SiteName:  strings.TrimSpace(extracted.SiteName),
		Text:      withTitle(title, body),
		Extractor: ExtractorReadability,
		Headings:  &headings,
	}
}

// pageTitle returns the first h1, or the document title when there is none
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return strings.Join(strings.Fields(h1), " ")
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// withTitle puts the title on its own paragraph ahead of body unless body already opens with it
func withTitle(title, body string) string {
	if title == "" || strings.HasPrefix(body, title) {
		return body
	}
	return title + "\n\n" + body
}
