package quality

import "github.com/jonathan/seo-analyzer/internal/types"

// Thresholds shared by the issue and recommendation rules
const (
	difficultReadingScore = 50
	maxAvgSentenceLength  = 25
	minWordCount          = 300
	minParagraphCount     = 3
	lowKeywordDensity     = 0.5
	stuffedKeywordDensity = 3
)

// DetectIssues evaluates the rule set over the four analyzer reports.
// Issues are returned in a fixed order: readability, then depth, then SEO.
func DetectIssues(readability types.ReadabilityReport, depth types.DepthReport, _ types.EngagementReport, seo types.SEOHealthReport) []types.Issue {
	issues := make([]types.Issue, 0)

	// Readability
	if readability.FleschKincaidScore < difficultReadingScore {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning,
			Type:     types.IssueReadability,
			Message:  "Content is difficult to read",
			Fix:      "Use shorter sentences and simpler words",
			Impact:   "May lose readers with complex language",
		})
	}
	if readability.AvgSentenceLength > maxAvgSentenceLength {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning,
			Type:     types.IssueReadability,
			Message:  "Sentences are too long (avg > 25 words)",
			Fix:      "Break long sentences into shorter ones",
			Impact:   "Reduces readability and engagement",
		})
	}

	// Depth
	if depth.WordCount < minWordCount {
		issues = append(issues, types.Issue{
			Severity: types.SeverityCritical,
			Type:     types.IssueContent,
			Message:  "Content too short (< 300 words)",
			Fix:      "Add more depth and detail to the article",
			Impact:   "Google prefers longer, comprehensive content",
		})
	}
	if depth.ParagraphCount < minParagraphCount {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning,
			Type:     types.IssueStructure,
			Message:  "Too few paragraphs",
			Fix:      "Break content into more paragraphs",
			Impact:   "Large text blocks discourage reading",
		})
	}

	// SEO
	if !seo.KeywordInTitle {
		issues = append(issues, types.Issue{
			Severity: types.SeverityError,
			Type:     types.IssueSEO,
			Message:  "Primary keyword not in title",
			Fix:      "Include primary keyword in the title",
			Impact:   "Major SEO ranking factor",
		})
	}
	if !seo.KeywordInFirstParagraph {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning,
			Type:     types.IssueSEO,
			Message:  "Primary keyword not in first paragraph",
			Fix:      "Mention primary keyword early in content",
			Impact:   "Helps search engines understand topic",
		})
	}
	if seo.KeywordDensity < lowKeywordDensity {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning,
			Type:     types.IssueSEO,
			Message:  "Keyword density too low (< 0.5%)",
			Fix:      "Use primary keyword more naturally throughout",
			Impact:   "Search engines may not recognize topic relevance",
		})
	}
	if seo.KeywordDensity > stuffedKeywordDensity {
		issues = append(issues, types.Issue{
			Severity: types.SeverityError,
			Type:     types.IssueSEO,
			Message:  "Keyword stuffing detected (> 3%)",
			Fix:      "Reduce keyword usage, use synonyms",
			Impact:   "Google penalty risk",
		})
	}

	return issues
}
