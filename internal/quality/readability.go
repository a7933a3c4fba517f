package quality

import (
	"math"

	"github.com/jonathan/seo-analyzer/internal/types"
)

const (
	// wordsPerMinute is the average adult reading speed used for reading time
	wordsPerMinute = 250
	// complexWordSyllables is the syllable count at which a word is considered complex
	complexWordSyllables = 3
)

// AnalyzeReadability computes Flesch-Kincaid reading ease and grade level for text.
// Empty text is valid: sentence, word and syllable counts fall back to 1.
func AnalyzeReadability(text string) types.ReadabilityReport {
	sentences := splitSentences(text)
	words := splitWords(text)

	syllables := 0
	complexWords := 0
	letters := 0
	for _, word := range words {
		n := countSyllables(word)
		syllables += n
		if n >= complexWordSyllables {
			complexWords++
		}
		letters += runeLen(word)
	}

	sentenceCount := float64(orOne(len(sentences)))
	wordCount := float64(orOne(len(words)))
	syllableCount := float64(orOne(syllables))

	avgSentenceLength := wordCount / sentenceCount
	syllablesPerWord := syllableCount / wordCount
	avgWordLength := float64(letters) / wordCount

	ease := clampScore(206.835 - 1.015*avgSentenceLength - 84.6*syllablesPerWord)
	grade := 0.39*avgSentenceLength + 11.8*syllablesPerWord - 15.59

	return types.ReadabilityReport{
		FleschKincaidScore: roundTo(ease, 0),
		FleschKincaidGrade: roundTo(grade, 1),
		AvgSentenceLength:  roundTo(avgSentenceLength, 1),
		AvgWordLength:      roundTo(avgWordLength, 1),
		ComplexWords:       complexWords,
		SyllablesPerWord:   roundTo(syllablesPerWord, 1),
		ReadingLevel:       readingLevel(ease),
		ReadingTime:        int(math.Ceil(wordCount / wordsPerMinute)),
	}
}

// readingLevel maps a reading-ease score onto its band
func readingLevel(score float64) types.ReadingLevel {
	switch {
	case score >= 90:
		return types.LevelVeryEasy
	case score >= 80:
		return types.LevelEasy
	case score >= 70:
		return types.LevelFairlyEasy
	case score >= 60:
		return types.LevelStandard
	case score >= 50:
		return types.LevelFairlyDifficult
	case score >= 30:
		return types.LevelDifficult
	default:
		return types.LevelVeryDifficult
	}
}
