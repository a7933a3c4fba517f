package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// sentenceSplitPattern splits text into sentences on runs of terminal punctuation
	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
	// paragraphSplitPattern splits text into paragraphs on two or more newlines
	paragraphSplitPattern = regexp.MustCompile(`\n\n+`)
	nonLetterPattern      = regexp.MustCompile(`[^a-z]`)
	vowelRunPattern       = regexp.MustCompile(`[aeiouy]+`)
)

// splitSentences returns the non-blank sentence fragments of text
func splitSentences(text string) []string {
	return nonBlank(sentenceSplitPattern.Split(text, -1))
}

// splitWords returns the whitespace-separated tokens of text
func splitWords(text string) []string {
	return strings.Fields(text)
}

// splitParagraphs returns the raw chunks between blank-line separators, including empty ones
func splitParagraphs(text string) []string {
	return paragraphSplitPattern.Split(text, -1)
}

// splitLines returns the non-blank lines of text, untrimmed
func splitLines(text string) []string {
	return nonBlank(strings.Split(text, "\n"))
}

func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// countSyllables estimates the syllables in a word.
// Words of three letters or fewer count as one; otherwise vowel runs are counted,
// with a silent trailing "e" removed and a trailing "le" restored.
func countSyllables(word string) int {
	word = nonLetterPattern.ReplaceAllString(strings.ToLower(word), "")
	if len(word) <= 3 {
		return 1
	}

	count := len(vowelRunPattern.FindAllStringIndex(word, -1))
	if strings.HasSuffix(word, "e") {
		count--
	}
	if strings.HasSuffix(word, "le") && len(word) > 2 {
		count++
	}

	return max(1, count)
}

// runeLen returns the number of Unicode code points in s
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// orOne substitutes 1 for a zero denominator
func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// roundTo rounds v to the given number of decimal places, halves rounding up
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

// clampScore limits a composite score to [0, 100]
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
