// Package quality provides deterministic content-quality analysis of article text:
// readability, structural depth, engagement, keyword SEO health, issue detection,
// recommendations and a weighted overall score.
//
// Analysis is a pure function of its inputs. An Analyzer holds no mutable state and
// may be shared between goroutines.
package quality

import (
	"fmt"
	"unicode/utf8"

	"github.com/jonathan/seo-analyzer/internal/types"
)

// DefaultPublisherDomain is the domain whose URLs count as internal links
const DefaultPublisherDomain = "thedailystar.net"

// Weights of each composite score in the overall score
const (
	readabilityWeight = 0.2
	depthWeight       = 0.3
	engagementWeight  = 0.2
	seoWeight         = 0.3
)

// Options configures an Analyzer
type Options struct {
	// PublisherDomain identifies internal links; empty means every link is external
	PublisherDomain string
}

// DefaultOptions returns the options used by AnalyzeContentQuality
func DefaultOptions() Options {
	return Options{PublisherDomain: DefaultPublisherDomain}
}

// Analyzer runs the content-quality pipeline
type Analyzer struct {
	publisherDomain string
}

// New creates an Analyzer from options
func New(opts Options) *Analyzer {
	return &Analyzer{publisherDomain: opts.PublisherDomain}
}

// PublisherDomain returns the domain used to classify internal links
func (a *Analyzer) PublisherDomain() string {
	return a.publisherDomain
}

// AnalyzeContentQuality analyzes articleText against the first of primaryKeywords
// using the default options.
func AnalyzeContentQuality(articleText string, primaryKeywords []types.Keyword) (*types.QualityReport, error) {
	return New(DefaultOptions()).Analyze(articleText, primaryKeywords)
}

// Analyze runs every analyzer over articleText and composes the report.
// It fails only on malformed input (invalid UTF-8 or an invalid keyword) and never
// returns a partial report.
func (a *Analyzer) Analyze(articleText string, primaryKeywords []types.Keyword) (*types.QualityReport, error) {
	if err := validateInput(articleText, primaryKeywords); err != nil {
		return nil, err
	}

	readability := AnalyzeReadability(articleText)
	depth := AnalyzeDepth(articleText)
	engagement := AnalyzeEngagement(articleText)
	seo := a.AnalyzeSEO(articleText, primaryKeywords)

	return compose(readability, depth, engagement, seo), nil
}

// AnalyzeWithHeadings is Analyze with an already-parsed heading count replacing the
// plain-text heading estimate.
func (a *Analyzer) AnalyzeWithHeadings(articleText string, primaryKeywords []types.Keyword, headings types.Headings) (*types.QualityReport, error) {
	if err := validateInput(articleText, primaryKeywords); err != nil {
		return nil, err
	}

	readability := AnalyzeReadability(articleText)
	depth := AnalyzeDepthWithHeadings(articleText, headings)
	engagement := AnalyzeEngagement(articleText)
	seo := a.AnalyzeSEO(articleText, primaryKeywords)

	return compose(readability, depth, engagement, seo), nil
}

func compose(readability types.ReadabilityReport, depth types.DepthReport, engagement types.EngagementReport, seo types.SEOHealthReport) *types.QualityReport {
	return &types.QualityReport{
		Readability:     readability,
		Depth:           depth,
		Engagement:      engagement,
		SEO:             seo,
		Issues:          DetectIssues(readability, depth, engagement, seo),
		Recommendations: GenerateRecommendations(readability, depth, engagement, seo),
		OverallScore:    OverallScore(readability, depth, engagement, seo),
	}
}

// OverallScore is the weighted sum of the four composite scores, rounded and clamped.
// Readability contributes its reading-ease score; the grade level is not consulted.
func OverallScore(readability types.ReadabilityReport, depth types.DepthReport, engagement types.EngagementReport, seo types.SEOHealthReport) float64 {
	weighted := readability.FleschKincaidScore*readabilityWeight +
		depth.DepthScore*depthWeight +
		engagement.EngagementScore*engagementWeight +
		seo.SEOHealthScore*seoWeight
	return clampScore(roundTo(weighted, 0))
}

func validateInput(articleText string, primaryKeywords []types.Keyword) error {
	if !utf8.ValidString(articleText) {
		return &InputError{Message: "article text is not valid UTF-8"}
	}
	for i := range primaryKeywords {
		if err := primaryKeywords[i].Validate(); err != nil {
			return &InputError{
				Message: fmt.Sprintf("keyword %d", i),
				Cause:   err,
			}
		}
	}
	return nil
}
