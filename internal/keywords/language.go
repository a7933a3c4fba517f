package keywords

import "unicode"

// Language is the dominant script of an article
type Language string

// Languages recognized by DetectLanguage
const (
	LanguageEnglish Language = "english"
	LanguageBangla  Language = "bangla"
	LanguageMixed   Language = "mixed"
)

// DetectLanguage classifies text by the share of Bengali-script characters among
// non-space characters: above 60% is Bangla, above 20% with some Latin letters is
// mixed, anything else is English.
func DetectLanguage(text string) Language {
	var bangla, total int
	hasLatin := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case r >= 0x0980 && r <= 0x09FF:
			bangla++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLatin = true
		}
	}
	if total == 0 {
		return LanguageEnglish
	}

	percent := float64(bangla) / float64(total) * 100
	switch {
	case percent > 60:
		return LanguageBangla
	case hasLatin && percent > 20:
		return LanguageMixed
	default:
		return LanguageEnglish
	}
}
