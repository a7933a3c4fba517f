package quality

import "github.com/jonathan/seo-analyzer/internal/types"

const (
	// publishScoreThreshold is the minimum overall score for a publishable article
	publishScoreThreshold = 70
	shortArticleWordCount = 500
)

// BuildDashboard summarizes a report into a publish decision.
// An article is ready when its overall score reaches 70 and it has no critical issue.
func BuildDashboard(report *types.QualityReport) types.Dashboard {
	critical := report.CountBySeverity(types.SeverityCritical)
	ready := report.OverallScore >= publishScoreThreshold && critical == 0

	recommendations := make([]string, 0, 3)
	if !ready {
		recommendations = append(recommendations, "Fix critical issues before publishing")
	}
	if report.Depth.WordCount < shortArticleWordCount {
		recommendations = append(recommendations, "Expand article content")
	}
	if report.SEO.SEOHealthScore < targetSEOScore {
		recommendations = append(recommendations, "Improve keyword placement")
	}

	return types.Dashboard{
		OverallScore:    report.OverallScore,
		ReadyForPublish: ready,
		CriticalIssues:  critical,
		Recommendations: recommendations,
	}
}
