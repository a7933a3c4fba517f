// Package fetch - platform.go provides publisher detection and publisher-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known news publishing platform.
type Platform string

const (
	// PlatformDailyStar is The Daily Star (thedailystar.net)
	PlatformDailyStar Platform = "dailystar"
	// PlatformProthomAlo is Prothom Alo (prothomalo.com), built on Quintype
	PlatformProthomAlo Platform = "prothomalo"
	// PlatformWordPress is any WordPress-hosted site recognized from its URL
	PlatformWordPress Platform = "wordpress"
	// PlatformMedium is Medium (medium.com)
	PlatformMedium Platform = "medium"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the publishing platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "thedailystar.net"):
		return PlatformDailyStar
	case strings.Contains(host, "prothomalo.com"):
		return PlatformProthomAlo
	case strings.Contains(host, "medium.com"):
		return PlatformMedium
	case strings.Contains(host, "wordpress.com") ||
		strings.Contains(parsed.Path, "/wp-content/") ||
		parsed.Query().Has("p"):
		return PlatformWordPress
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformDailyStar:
		return []string{
			".section-content .clearfix", // Story body
			".article-section",
			"[itemprop='articleBody']",
			"article",
		}
	case PlatformProthomAlo:
		return []string{
			".story-element-text",
			".story-content",
			"[itemprop='articleBody']",
			"article",
		}
	case PlatformMedium:
		return []string{
			"article section",
			"article",
		}
	case PlatformWordPress:
		return []string{
			".entry-content",
			".post-content",
			"article",
		}
	default:
		return ArticleSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all news sites
	common := []string{
		// Sharing and social
		".social-share",
		".share-buttons",
		".social-links",

		// Related content and comments
		".related-news",
		".related-posts",
		".more-news",
		"#comments",
		".comments",

		// Subscriptions and promos
		".newsletter",
		".subscribe",
		".promo",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Media captions are not body text
		"figcaption",
	}

	switch platform {
	case PlatformDailyStar:
		return append(common,
			".follow-google-news",
			".tags",
			".author-info",
		)
	case PlatformProthomAlo:
		return append(common,
			".story-card",
			".tag-wrapper",
		)
	case PlatformMedium:
		return append(common,
			".pw-multi-vote-count",
			".speechify-ignore",
		)
	case PlatformWordPress:
		return append(common,
			".sharedaddy",
			".jp-relatedposts",
			".post-navigation",
		)
	default:
		return common
	}
}
