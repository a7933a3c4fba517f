package quality

import "github.com/jonathan/seo-analyzer/internal/types"

const (
	targetWordCount      = 800
	minStatistics        = 2
	minQuotes            = 1
	targetSEOScore       = 70
	standardReadingScore = 60
)

// GenerateRecommendations produces prioritized editorial advice from the four analyzer reports.
// The rules overlap with DetectIssues in places but describe what to add, not what is wrong.
func GenerateRecommendations(readability types.ReadabilityReport, depth types.DepthReport, engagement types.EngagementReport, seo types.SEOHealthReport) []types.Recommendation {
	recommendations := make([]types.Recommendation, 0)

	if depth.WordCount < targetWordCount {
		recommendations = append(recommendations, types.Recommendation{
			Category:       "Content Depth",
			Priority:       types.PriorityHigh,
			Recommendation: "Expand article to 800-1500 words for better SEO",
			ExpectedImpact: "Improved rankings and authority",
		})
	}

	if engagement.StatisticsCount < minStatistics {
		recommendations = append(recommendations, types.Recommendation{
			Category:       "Engagement",
			Priority:       types.PriorityMedium,
			Recommendation: "Add statistics and data to support claims",
			ExpectedImpact: "Increases credibility and engagement",
		})
	}

	if engagement.QuotesCount < minQuotes {
		recommendations = append(recommendations, types.Recommendation{
			Category:       "Engagement",
			Priority:       types.PriorityMedium,
			Recommendation: "Include expert quotes or statements",
			ExpectedImpact: "Adds authority and E-E-A-T signals",
		})
	}

	if seo.SEOHealthScore < targetSEOScore {
		recommendations = append(recommendations, types.Recommendation{
			Category:       "SEO",
			Priority:       types.PriorityHigh,
			Recommendation: "Improve keyword placement and density",
			ExpectedImpact: "Better search engine visibility",
		})
	}

	if readability.FleschKincaidScore < standardReadingScore {
		recommendations = append(recommendations, types.Recommendation{
			Category:       "Readability",
			Priority:       types.PriorityMedium,
			Recommendation: "Simplify language for broader audience",
			ExpectedImpact: "Better user engagement and time on page",
		})
	}

	return recommendations
}
