package keywords

import (
	"strings"

	"github.com/jonathan/seo-analyzer/internal/types"
)

// DuplicateThreshold is the word similarity at which two terms count as the same keyword
const DuplicateThreshold = 0.8

// Similarity returns the Jaccard similarity of the lowercase word sets of a and b
func Similarity(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1
	}

	intersection := 0
	for word := range wordsA {
		if wordsB[word] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = true
	}
	return set
}

// RemoveDuplicates drops keywords whose term is at least threshold-similar to an
// earlier kept keyword. The first occurrence wins.
func RemoveDuplicates(keywords []types.Keyword, threshold float64) []types.Keyword {
	result := make([]types.Keyword, 0, len(keywords))
	for _, keyword := range keywords {
		if !isDuplicate(keyword, result, threshold) {
			result = append(result, keyword)
		}
	}
	return result
}

func isDuplicate(keyword types.Keyword, kept []types.Keyword, threshold float64) bool {
	for _, existing := range kept {
		if Similarity(keyword.Term, existing.Term) >= threshold {
			return true
		}
	}
	return false
}

// normalizeKeyword trims fields and lowercases enum values. Unknown enum values are
// cleared so that the keyword still validates.
func normalizeKeyword(k types.Keyword) types.Keyword {
	k.Term = strings.Join(strings.Fields(k.Term), " ")
	k.Rationale = strings.TrimSpace(k.Rationale)
	k.SearchVolume = strings.TrimSpace(k.SearchVolume)
	k.TermBangla = strings.TrimSpace(k.TermBangla)
	k.TermEnglish = strings.TrimSpace(k.TermEnglish)

	k.SearchIntent = types.SearchIntent(strings.ToLower(strings.TrimSpace(string(k.SearchIntent))))
	switch k.SearchIntent {
	case types.IntentInformational, types.IntentNavigational, types.IntentTransactional, types.IntentCommercial, "":
	default:
		k.SearchIntent = ""
	}

	k.Difficulty = strings.ToLower(strings.TrimSpace(k.Difficulty))
	switch k.Difficulty {
	case "easy", "medium", "hard", "":
	default:
		k.Difficulty = ""
	}
	return k
}

// PostProcess normalizes every keyword, drops invalid ones and near-duplicates
// (across all groups, in primary, secondary, longtail order) and keeps at most
// maxPerGroup keywords per group. maxPerGroup <= 0 keeps all.
func PostProcess(result *types.KeywordResult, maxPerGroup int) (*types.KeywordResult, error) {
	var kept []types.Keyword
	clean := func(group []types.Keyword) []types.Keyword {
		out := make([]types.Keyword, 0, len(group))
		for _, keyword := range group {
			keyword = normalizeKeyword(keyword)
			if keyword.Validate() != nil {
				continue
			}
			if isDuplicate(keyword, kept, DuplicateThreshold) {
				continue
			}
			kept = append(kept, keyword)
			out = append(out, keyword)
		}
		if maxPerGroup > 0 && len(out) > maxPerGroup {
			out = out[:maxPerGroup]
		}
		return out
	}

	processed := &types.KeywordResult{
		Primary:   clean(result.Primary),
		Secondary: clean(result.Secondary),
		Longtail:  clean(result.Longtail),
	}

	if len(processed.All()) == 0 {
		return nil, &ValidationError{Message: "no valid keywords found in any group"}
	}
	return processed, nil
}
