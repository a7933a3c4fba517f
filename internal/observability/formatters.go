// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/seo-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintQualityReport outputs the four analyzer scores and their key statistics.
func (p *Printer) PrintQualityReport(report *types.QualityReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score:  %.0f/100\n\n", report.OverallScore))

	r := report.Readability
	sb.WriteString(fmt.Sprintf("Readability:    %.0f  (%s, grade %.1f)\n", r.FleschKincaidScore, r.ReadingLevel, r.FleschKincaidGrade))
	sb.WriteString(fmt.Sprintf("  %.1f words/sentence, %d min read\n", r.AvgSentenceLength, r.ReadingTime))

	d := report.Depth
	sb.WriteString(fmt.Sprintf("Depth:          %.0f  (%d words, %d paragraphs)\n", d.DepthScore, d.WordCount, d.ParagraphCount))
	sb.WriteString(fmt.Sprintf("  %d headings\n", d.Headings.Total()))

	e := report.Engagement
	sb.WriteString(fmt.Sprintf("Engagement:     %.0f\n", e.EngagementScore))
	sb.WriteString(fmt.Sprintf("  %d questions, %d stats, %d quotes, %d lists\n", e.QuestionsCount, e.StatisticsCount, e.QuotesCount, e.ListsCount))

	s := report.SEO
	sb.WriteString(fmt.Sprintf("SEO health:     %.0f  (density %.2f%%, %s)\n", s.SEOHealthScore, s.KeywordDensity, s.KeywordDistribution))
	sb.WriteString(fmt.Sprintf("  title %s  first para %s  last para %s\n", check(s.KeywordInTitle), check(s.KeywordInFirstParagraph), check(s.KeywordInLastParagraph)))
	sb.WriteString(fmt.Sprintf("  %d internal, %d external links", s.InternalLinksCount, s.ExternalLinksCount))

	p.printBox("CONTENT QUALITY", sb.String())
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// PrintIssues outputs the detected issues, or a single line when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []types.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ISSUES FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))

	for i, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ [%s] %s\n", issue.Severity, issue.Message))
		sb.WriteString(fmt.Sprintf("  Fix: %s\n", issue.Fix))
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the editorial recommendations.
func (p *Printer) PrintRecommendations(recommendations []types.Recommendation) {
	if len(recommendations) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recommendations {
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", rec.Priority, rec.Recommendation))
		sb.WriteString(fmt.Sprintf("  %s: %s", rec.Category, rec.ExpectedImpact))
		if i < len(recommendations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", sb.String())
}

// PrintDashboard outputs the publish decision.
func (p *Printer) PrintDashboard(dashboard *types.Dashboard) {
	if dashboard == nil {
		return
	}

	var sb strings.Builder
	status := "✅ READY TO PUBLISH"
	if !dashboard.ReadyForPublish {
		status = "⛔ NOT READY"
	}
	sb.WriteString(fmt.Sprintf("%s  (score %.0f, %d critical)\n", status, dashboard.OverallScore, dashboard.CriticalIssues))
	for _, rec := range dashboard.Recommendations {
		sb.WriteString(fmt.Sprintf("  • %s\n", rec))
	}

	p.printBox("DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the extracted keyword groups.
func (p *Printer) PrintKeywords(result *types.KeywordResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	groups := []struct {
		name     string
		keywords []types.Keyword
	}{
		{"Primary", result.Primary},
		{"Secondary", result.Secondary},
		{"Long-tail", result.Longtail},
	}

	for i, group := range groups {
		sb.WriteString(fmt.Sprintf("%s (%d):\n", group.name, len(group.keywords)))
		count := min(len(group.keywords), maxItemsToShow)
		for j := 0; j < count; j++ {
			keyword := group.keywords[j]
			sb.WriteString(fmt.Sprintf("  • %s", keyword.Term))
			if keyword.SearchIntent != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", keyword.SearchIntent))
			}
			sb.WriteString("\n")
		}
		if len(group.keywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(group.keywords)-maxItemsToShow))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}
