package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// DefaultBrowserTimeout bounds a headless render
const DefaultBrowserTimeout = 30 * time.Second

// MinContentLength is the number of characters below which extracted article text
// is treated as a script-rendered page.
const MinContentLength = 500

// settleDelay gives client-side rendering time to fill in the story body
const settleDelay = 3 * time.Second

// overlaySelector matches consent and subscription dialog buttons
const overlaySelector = `button[id*="accept"], button[class*="accept"], button[class*="close"], button[aria-label="Close"]`

// ShouldUseBrowser reports whether extracted text is too short to be a full article.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentLength
}

var browserFlags = append(chromedp.DefaultExecAllocatorOptions[:],
	chromedp.Flag("headless", true),
	chromedp.Flag("disable-gpu", true),
	chromedp.Flag("no-sandbox", true),
	chromedp.Flag("disable-dev-shm-usage", true),
	chromedp.Flag("blink-settings", "imagesEnabled=false"),
)

// WithBrowser renders url in headless Chrome and returns the page HTML once the
// body is ready and overlays have been dismissed. Chrome or Chromium must be installed.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, logger logrus.FieldLogger) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	logger = logger.WithField("url", url)
	started := time.Now()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, browserFlags...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	if err := chromedp.Run(browserCtx, renderTasks(url, &html)); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"bytes":    len(html),
		"duration": time.Since(started).Round(time.Millisecond),
	}).Debug("rendered page in browser")
	return html, nil
}

func renderTasks(url string, html *string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// overlays are optional; a page without one is fine
			_ = chromedp.Click(overlaySelector, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", html),
	}
}
