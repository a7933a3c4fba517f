//nolint:revive // types is a standard Go package name pattern
package types

// ReadingLevel is the Flesch reading-ease band of a text
type ReadingLevel string

// Reading levels from easiest to hardest
const (
	LevelVeryEasy        ReadingLevel = "Very Easy"
	LevelEasy            ReadingLevel = "Easy"
	LevelFairlyEasy      ReadingLevel = "Fairly Easy"
	LevelStandard        ReadingLevel = "Standard"
	LevelFairlyDifficult ReadingLevel = "Fairly Difficult"
	LevelDifficult       ReadingLevel = "Difficult"
	LevelVeryDifficult   ReadingLevel = "Very Difficult"
)

// KeywordDistribution describes which third of an article holds most keyword occurrences
type KeywordDistribution string

// Keyword distribution values
const (
	DistributionEven        KeywordDistribution = "even"
	DistributionTopHeavy    KeywordDistribution = "top-heavy"
	DistributionMiddleHeavy KeywordDistribution = "middle-heavy"
	DistributionBottomHeavy KeywordDistribution = "bottom-heavy"
)

// Severity ranks how urgently an issue must be addressed
type Severity string

// Issue severities
const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// IssueType is the area of the article an issue concerns
type IssueType string

// Issue types
const (
	IssueReadability IssueType = "readability"
	IssueSEO         IssueType = "seo"
	IssueStructure   IssueType = "structure"
	IssueContent     IssueType = "content"
	IssueTechnical   IssueType = "technical"
)

// Priority ranks a recommendation
type Priority string

// Recommendation priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ReadabilityReport holds Flesch-Kincaid statistics for an article
type ReadabilityReport struct {
	FleschKincaidScore float64      `json:"fleschKincaidScore"` // 0-100, higher = easier
	FleschKincaidGrade float64      `json:"fleschKincaidGrade"`
	AvgSentenceLength  float64      `json:"avgSentenceLength"`
	AvgWordLength      float64      `json:"avgWordLength"`
	ComplexWords       int          `json:"complexWords"`
	SyllablesPerWord   float64      `json:"syllablesPerWord"`
	ReadingLevel       ReadingLevel `json:"readingLevel"`
	ReadingTime        int          `json:"readingTime"` // Minutes
}

// Headings counts headings per level
type Headings struct {
	H2 int `json:"h2"`
	H3 int `json:"h3"`
	H4 int `json:"h4"`
	H5 int `json:"h5"`
	H6 int `json:"h6"`
}

// Total returns the number of headings across all levels
func (h Headings) Total() int {
	return h.H2 + h.H3 + h.H4 + h.H5 + h.H6
}

// DepthReport holds structural statistics for an article
type DepthReport struct {
	WordCount          int      `json:"wordCount"`
	CharacterCount     int      `json:"characterCount"`
	ParagraphCount     int      `json:"paragraphCount"`
	SentenceCount      int      `json:"sentenceCount"`
	Headings           Headings `json:"headings"`
	AvgParagraphLength float64  `json:"avgParagraphLength"`
	AvgSentenceLength  float64  `json:"avgSentenceLength"`
	DepthScore         float64  `json:"depthScore"`       // 0-100
	OptimalWordCount   string   `json:"optimalWordCount"` // Advisory range, not scored
}

// EngagementReport counts reader-engagement elements in an article
type EngagementReport struct {
	QuestionsCount  int     `json:"questionsCount"`
	StatisticsCount int     `json:"statisticsCount"`
	QuotesCount     int     `json:"quotesCount"`
	ExamplesCount   int     `json:"examplesCount"`
	ListsCount      int     `json:"listsCount"`
	TablesCount     int     `json:"tablesCount"`
	EngagementScore float64 `json:"engagementScore"` // 0-100
}

// SEOHealthReport describes how well an article uses its primary keyword
type SEOHealthReport struct {
	KeywordDensity          float64             `json:"keywordDensity"` // Percentage
	KeywordDistribution     KeywordDistribution `json:"keywordDistribution"`
	KeywordInTitle          bool                `json:"keywordInTitle"`
	KeywordInFirstParagraph bool                `json:"keywordInFirstParagraph"`
	KeywordInLastParagraph  bool                `json:"keywordInLastParagraph"`
	InternalLinksCount      int                 `json:"internalLinksCount"`
	ExternalLinksCount      int                 `json:"externalLinksCount"`
	BrokenLinksCount        int                 `json:"brokenLinksCount"`
	ImageCount              int                 `json:"imageCount"`
	ImagesWithAlt           int                 `json:"imagesWithAlt"`
	SEOHealthScore          float64             `json:"seoHealthScore"` // 0-100
}

// Issue is a single problem found in an article
type Issue struct {
	Severity Severity  `json:"severity"`
	Type     IssueType `json:"type"`
	Message  string    `json:"message"`
	Location string    `json:"location,omitempty"`
	Fix      string    `json:"fix"`
	Impact   string    `json:"impact"`
}

// Recommendation is forward-looking editorial advice
type Recommendation struct {
	Category       string   `json:"category"`
	Priority       Priority `json:"priority"`
	Recommendation string   `json:"recommendation"`
	ExpectedImpact string   `json:"expectedImpact"`
}

// QualityReport is the complete content-quality analysis of one article
type QualityReport struct {
	Readability     ReadabilityReport `json:"readability"`
	Depth           DepthReport       `json:"depth"`
	Engagement      EngagementReport  `json:"engagement"`
	SEO             SEOHealthReport   `json:"seo"`
	Issues          []Issue           `json:"issues"`
	Recommendations []Recommendation  `json:"recommendations"`
	OverallScore    float64           `json:"overallScore"` // 0-100
}

// CountBySeverity returns the number of issues with the given severity
func (r *QualityReport) CountBySeverity(severity Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}

// Dashboard summarizes a QualityReport into a publish decision
type Dashboard struct {
	OverallScore    float64  `json:"overallScore"`
	ReadyForPublish bool     `json:"readinessForPublish"`
	CriticalIssues  int      `json:"criticalIssues"`
	Recommendations []string `json:"recommendations"`
}
