package quality

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/seo-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

// sectionedArticle returns sections paragraphs, each a heading line followed by a
// body line, every paragraph totalling 100 words.
func sectionedArticle(sections int) string {
	parts := make([]string, sections)
	for i := range parts {
		heading := fmt.Sprintf("Heading number %d here", i+1)
		body := wordsText(95, "word") + " end."
		parts[i] = heading + "\n" + body
	}
	return strings.Join(parts, "\n\n")
}

func TestAnalyzeDepth_EmptyText(t *testing.T) {
	report := AnalyzeDepth("")

	assert.Equal(t, 0, report.WordCount)
	assert.Equal(t, 0, report.CharacterCount)
	assert.Equal(t, 0, report.ParagraphCount)
	assert.Equal(t, 1, report.SentenceCount)
	assert.Equal(t, 0, report.Headings.Total())
	assert.Equal(t, 0.0, report.AvgParagraphLength)
	assert.Equal(t, 0.0, report.AvgSentenceLength)
	assert.Equal(t, 50.0, report.DepthScore)
	assert.Equal(t, "500-800 words", report.OptimalWordCount)
}

func TestAnalyzeDepth_FullMarks(t *testing.T) {
	report := AnalyzeDepth(sectionedArticle(10))

	assert.Equal(t, 1000, report.WordCount)
	assert.Equal(t, 10, report.ParagraphCount)
	assert.Equal(t, 10, report.SentenceCount)
	assert.Equal(t, 10, report.Headings.H2)
	assert.Equal(t, 0, report.Headings.H3)
	assert.Equal(t, 0, report.Headings.H4)
	assert.Equal(t, 100.0, report.AvgParagraphLength)
	assert.Equal(t, 100.0, report.AvgSentenceLength)
	// 50 base + 20 length + 10 paragraphs + 10 headings + 10 paragraph length
	assert.Equal(t, 100.0, report.DepthScore)
	assert.Equal(t, "1000-2000 words (excellent)", report.OptimalWordCount)
}

func TestAnalyzeDepth_HeadingEstimateCapped(t *testing.T) {
	report := AnalyzeDepth(sectionedArticle(12))

	assert.Equal(t, 10, report.Headings.H2)
	assert.Equal(t, 100.0, report.DepthScore)
}

func TestAnalyzeDepth_LongSingleParagraph(t *testing.T) {
	report := AnalyzeDepth(wordsText(2500, "word"))

	assert.Equal(t, 2500, report.WordCount)
	assert.Equal(t, 1, report.ParagraphCount)
	// 50 base + 30 length only
	assert.Equal(t, 80.0, report.DepthScore)
	assert.Equal(t, "1500-2500 words (comprehensive)", report.OptimalWordCount)
}

func TestAnalyzeDepth_ScoreRules(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"Short text", wordsText(50, "word"), 50},
		{"Single paragraph of ideal length", wordsText(100, "word"), 60},
		{"Lower length bound", wordsText(800, "word"), 70},
		{"Upper length bound", wordsText(2000, "word"), 70},
		{"Past upper bound", wordsText(2001, "word"), 80},
		{
			name:     "Five paragraphs of ideal length",
			text:     strings.Join([]string{wordsText(80, "w"), wordsText(80, "w"), wordsText(80, "w"), wordsText(80, "w"), wordsText(80, "w")}, "\n\n"),
			expected: 70,
		},
		{
			name:     "Paragraphs just too short",
			text:     strings.Join([]string{wordsText(79, "w"), wordsText(79, "w"), wordsText(79, "w"), wordsText(79, "w"), wordsText(79, "w")}, "\n\n"),
			expected: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnalyzeDepth(tt.text).DepthScore)
		})
	}
}

func TestEstimateHeadings(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"Empty", "", 0},
		{"Heading line", "Breaking News Today", 1},
		{"Too short", "Short", 0},
		{"Exactly ten runes", "abcdefghij", 0},
		{"Ends with period", "This is a full sentence.", 0},
		{"Ends with question", "Is this a heading at all?", 0},
		{"Too long", strings.Repeat("x", 100), 0},
		{"Trailing space before period", "Closing statement here. ", 0},
		{"Mixed", "Election Results Announced\nShort\nVoters turned out in record numbers today.\nWhat Happens Next", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimateHeadings(tt.text))
		})
	}
}

func TestAnalyzeDepthWithHeadings(t *testing.T) {
	text := wordsText(1000, "word")
	headings := types.Headings{H2: 3, H3: 2, H4: 1}

	report := AnalyzeDepthWithHeadings(text, headings)

	assert.Equal(t, headings, report.Headings)
	// 50 base + 20 length + 10 headings
	assert.Equal(t, 80.0, report.DepthScore)
	assert.Equal(t, 70.0, AnalyzeDepth(text).DepthScore)
}

func TestAnalyzeDepth_CountsRunes(t *testing.T) {
	report := AnalyzeDepth("শিরোনাম খবর")

	assert.Equal(t, 2, report.WordCount)
	assert.Equal(t, 11, report.CharacterCount)
}

func TestOptimalWordCount(t *testing.T) {
	tests := []struct {
		words    int
		expected string
	}{
		{0, "500-800 words"},
		{499, "500-800 words"},
		{500, "800-1500 words (good)"},
		{999, "800-1500 words (good)"},
		{1000, "1000-2000 words (excellent)"},
		{1999, "1000-2000 words (excellent)"},
		{2000, "1500-2500 words (comprehensive)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, optimalWordCount(tt.words), "optimalWordCount(%d)", tt.words)
	}
}
