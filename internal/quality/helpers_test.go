package quality

import "strings"

// buildArticle returns total words of "alpha" with keyword placed at the given word
// indices. A newline follows titleWords words and a blank line follows every
// paragraphWords words. Every word is five letters so character position tracks
// word index.
func buildArticle(total, titleWords, paragraphWords int, keyword string, at ...int) string {
	words := make([]string, total)
	for i := range words {
		words[i] = "alpha"
	}
	for _, i := range at {
		words[i] = keyword
	}

	var sb strings.Builder
	for i, w := range words {
		sb.WriteString(w)
		switch {
		case i == total-1:
		case paragraphWords > 0 && (i+1)%paragraphWords == 0:
			sb.WriteString("\n\n")
		case i+1 == titleWords:
			sb.WriteString("\n")
		default:
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// wordsText returns n copies of word separated by spaces
func wordsText(n int, word string) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}
