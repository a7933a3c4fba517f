package quality

import (
	"strings"

	"github.com/jonathan/seo-analyzer/internal/types"
)

const (
	// maxEstimatedHeadings caps the heading estimate from plain text
	maxEstimatedHeadings = 10
	minHeadingLength     = 10
	maxHeadingLength     = 100
)

// AnalyzeDepth measures the length and structure of text.
//
// Plain text carries no heading markup, so headings are estimated: a non-blank line
// longer than 10 and shorter than 100 characters that does not end in terminal
// punctuation counts as a potential heading. The estimate is recorded as H2 only.
func AnalyzeDepth(text string) types.DepthReport {
	potential := estimateHeadings(text)
	report := analyzeDepth(text, potential)
	report.Headings = types.Headings{H2: min(potential, maxEstimatedHeadings)}
	return report
}

// AnalyzeDepthWithHeadings measures depth using an already-parsed heading count
// instead of the plain-text estimate. Scoring is identical to AnalyzeDepth.
func AnalyzeDepthWithHeadings(text string, headings types.Headings) types.DepthReport {
	report := analyzeDepth(text, headings.Total())
	report.Headings = headings
	return report
}

func analyzeDepth(text string, potentialHeadings int) types.DepthReport {
	wordCount := len(splitWords(text))
	paragraphCount := len(nonBlank(splitParagraphs(text)))
	sentenceCount := orOne(len(splitSentences(text)))

	avgParagraphLength := 0.0
	if paragraphCount > 0 {
		avgParagraphLength = float64(wordCount) / float64(paragraphCount)
	}
	avgSentenceLength := float64(wordCount) / float64(sentenceCount)

	score := 50.0
	if wordCount >= 800 && wordCount <= 2000 {
		score += 20
	}
	if wordCount > 2000 {
		score += 30
	}
	if paragraphCount >= 5 {
		score += 10
	}
	if potentialHeadings >= 3 {
		score += 10
	}
	if avgParagraphLength >= 80 && avgParagraphLength <= 150 {
		score += 10
	}

	return types.DepthReport{
		WordCount:          wordCount,
		CharacterCount:     runeLen(text),
		ParagraphCount:     paragraphCount,
		SentenceCount:      sentenceCount,
		AvgParagraphLength: roundTo(avgParagraphLength, 0),
		AvgSentenceLength:  roundTo(avgSentenceLength, 1),
		DepthScore:         clampScore(score),
		OptimalWordCount:   optimalWordCount(wordCount),
	}
}

// estimateHeadings counts lines that look like headings
func estimateHeadings(text string) int {
	count := 0
	for _, line := range splitLines(text) {
		n := runeLen(line)
		if n <= minHeadingLength || n >= maxHeadingLength {
			continue
		}
		if strings.ContainsAny(lastRune(strings.TrimSpace(line)), ".!?") {
			continue
		}
		count++
	}
	return count
}

func lastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[len(r)-1])
}

// optimalWordCount returns the advisory target range for a news article of the given length
func optimalWordCount(wordCount int) string {
	switch {
	case wordCount < 500:
		return "500-800 words"
	case wordCount < 1000:
		return "800-1500 words (good)"
	case wordCount < 2000:
		return "1000-2000 words (excellent)"
	default:
		return "1500-2500 words (comprehensive)"
	}
}
