package keywords

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonathan/seo-analyzer/internal/types"
	"github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is how long extracted keywords are reused for identical text
const DefaultCacheTTL = time.Hour

// CachedExtractor reuses keyword results for identical article text.
// It is safe for concurrent use.
type CachedExtractor struct {
	source Source
	store  *cache.Cache
	ttl    time.Duration
}

var _ Source = (*CachedExtractor)(nil)

// NewCachedExtractor wraps source with a cache. ttl <= 0 uses DefaultCacheTTL.
func NewCachedExtractor(source Source, ttl time.Duration) *CachedExtractor {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedExtractor{
		source: source,
		store:  cache.New(ttl, 2*ttl),
		ttl:    ttl,
	}
}

// Extract returns cached keywords for articleText, calling the wrapped source on a
// miss. Errors are not cached.
func (c *CachedExtractor) Extract(ctx context.Context, articleText string) (*types.KeywordResult, error) {
	key := cacheKey(articleText)
	if cached, ok := c.store.Get(key); ok {
		return copyResult(cached.(*types.KeywordResult)), nil
	}

	result, err := c.source.Extract(ctx, articleText)
	if err != nil {
		return nil, err
	}

	c.store.Set(key, copyResult(result), c.ttl)
	return result, nil
}

// Len returns the number of cached results, including expired ones not yet evicted
func (c *CachedExtractor) Len() int {
	return c.store.ItemCount()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func copyResult(r *types.KeywordResult) *types.KeywordResult {
	return &types.KeywordResult{
		Primary:   append([]types.Keyword(nil), r.Primary...),
		Secondary: append([]types.Keyword(nil), r.Secondary...),
		Longtail:  append([]types.Keyword(nil), r.Longtail...),
	}
}
