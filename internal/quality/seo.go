package quality

import (
	"regexp"
	"strings"

	"github.com/jonathan/seo-analyzer/internal/types"
)

const (
	// neutralSEOScore is reported when there is no keyword to evaluate against
	neutralSEOScore = 50
	minDensity      = 0.5
	maxDensity      = 2.5
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// AnalyzeSEO evaluates keyword usage and links in text against the first primary keyword.
// With no keywords the report is neutral with a score of 50.
func (a *Analyzer) AnalyzeSEO(text string, primaryKeywords []types.Keyword) types.SEOHealthReport {
	if len(primaryKeywords) == 0 {
		return types.SEOHealthReport{
			KeywordDistribution: types.DistributionEven,
			SEOHealthScore:      neutralSEOScore,
		}
	}

	keyword := strings.ToLower(primaryKeywords[0].Term)
	wordCount := orOne(len(splitWords(text)))

	density := float64(countKeyword(text, keyword)) / float64(wordCount) * 100
	distribution := keywordDistribution(text, keyword)

	lines := splitLines(text)
	title := ""
	if len(lines) > 0 {
		title = lines[0]
	}
	paragraphs := splitParagraphs(text)

	report := types.SEOHealthReport{
		KeywordDensity:          roundTo(density, 2),
		KeywordDistribution:     distribution,
		KeywordInTitle:          containsFold(title, keyword),
		KeywordInFirstParagraph: containsFold(paragraphs[0], keyword),
		KeywordInLastParagraph:  containsFold(paragraphs[len(paragraphs)-1], keyword),
	}
	report.InternalLinksCount, report.ExternalLinksCount = a.countLinks(text)

	score := float64(neutralSEOScore)
	if density >= minDensity && density <= maxDensity {
		score += 15
	}
	if report.KeywordInTitle {
		score += 15
	}
	if report.KeywordInFirstParagraph {
		score += 10
	}
	if distribution == types.DistributionEven || distribution == types.DistributionTopHeavy {
		score += 10
	}
	report.SEOHealthScore = clampScore(score)

	return report
}

// countKeyword counts non-overlapping case-insensitive occurrences of a lower-cased keyword
func countKeyword(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), keyword)
}

func containsFold(text, keyword string) bool {
	return keyword != "" && strings.Contains(strings.ToLower(text), keyword)
}

// keywordDistribution reports which character third of text holds the most keyword
// occurrences. A third must strictly exceed both others; any tie is even.
func keywordDistribution(text, keyword string) types.KeywordDistribution {
	runes := []rune(text)
	n := len(runes)
	first := countKeyword(string(runes[:n/3]), keyword)
	middle := countKeyword(string(runes[n/3:2*n/3]), keyword)
	last := countKeyword(string(runes[2*n/3:]), keyword)

	switch {
	case first > middle && first > last:
		return types.DistributionTopHeavy
	case last > first && last > middle:
		return types.DistributionBottomHeavy
	case middle > first && middle > last:
		return types.DistributionMiddleHeavy
	default:
		return types.DistributionEven
	}
}

// countLinks splits bare URLs in text into those on the publisher's domain and the rest
func (a *Analyzer) countLinks(text string) (internal, external int) {
	for _, u := range urlPattern.FindAllString(text, -1) {
		if a.publisherDomain != "" && strings.Contains(u, a.publisherDomain) {
			internal++
		} else {
			external++
		}
	}
	return internal, external
}
