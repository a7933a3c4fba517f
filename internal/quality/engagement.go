package quality

import (
	"regexp"
	"strings"

	"github.com/jonathan/seo-analyzer/internal/types"
)

var (
	statisticPattern = regexp.MustCompile(`(?i)\d+(\.\d+)?%|\d+\s*(percent|per cent)`)
	// quotePattern matches the shortest span between a pair of straight or curly quotes on one line
	quotePattern        = regexp.MustCompile(`["“].*?["”]|['‘].*?['’]`)
	examplePattern      = regexp.MustCompile(`(?i)for example|such as|for instance|e\.g\.`)
	bulletListPattern   = regexp.MustCompile(`(?m)^\s*[-•*]\s`)
	numberedListPattern = regexp.MustCompile(`(?m)^\s*\d+\.\s`)
)

// AnalyzeEngagement counts the elements that keep readers on the page:
// questions, statistics, quotes, examples and list items.
func AnalyzeEngagement(text string) types.EngagementReport {
	report := types.EngagementReport{
		QuestionsCount:  strings.Count(text, "?"),
		StatisticsCount: countMatches(statisticPattern, text),
		QuotesCount:     countMatches(quotePattern, text),
		ExamplesCount:   countMatches(examplePattern, text),
		ListsCount:      countMatches(bulletListPattern, text) + countMatches(numberedListPattern, text),
		TablesCount:     0, // no table signal in plain text
	}

	score := 40.0
	if report.QuestionsCount > 0 {
		score += 10
	}
	if report.StatisticsCount >= 3 {
		score += 15
	}
	if report.QuotesCount >= 2 {
		score += 15
	}
	if report.ExamplesCount >= 1 {
		score += 10
	}
	if report.ListsCount >= 1 {
		score += 10
	}
	report.EngagementScore = clampScore(score)

	return report
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}
