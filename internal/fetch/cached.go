// Package fetch provides generic URL fetching with optional caching.
package fetch

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultPageCacheTTL is how long a fetched page is reused
const DefaultPageCacheTTL = time.Hour

// CachedFetcher wraps URL fetching with an in-memory page cache.
// It is safe for concurrent use.
type CachedFetcher struct {
	pages     *cache.Cache
	options   *Options
	cacheTTL  time.Duration
	skipCache bool // For testing or forcing fresh fetches
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultPageCacheTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultPageCacheTTL
	}
	return &CachedFetcher{
		pages:     cache.New(config.CacheTTL, 2*config.CacheTTL),
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool // Whether this result came from cache
}

// Fetch retrieves a URL, using the cache if a fresh copy exists.
// Only successful fetches are cached; the extracted text uses the detected
// platform's selectors.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if !f.skipCache {
		if cached, ok := f.pages.Get(urlStr); ok {
			result := *cached.(*Result)
			return &CachedResult{Result: &result, FromCache: true}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	text, _ := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	result.Text = text

	if !f.skipCache {
		stored := *result
		f.pages.Set(urlStr, &stored, f.cacheTTL)
	}

	return &CachedResult{
		Result:    result,
		FromCache: false,
	}, nil
}

// InvalidateCache drops a cached page, forcing a re-fetch on next request.
func (f *CachedFetcher) InvalidateCache(urlStr string) {
	f.pages.Delete(urlStr)
}

// CachedCount returns the number of pages currently cached, including expired
// pages not yet cleaned up.
func (f *CachedFetcher) CachedCount() int {
	return f.pages.ItemCount()
}
