package textutil

import "strings"

// Truncate shortens text to at most maxLength characters, appending suffix
// when truncation happens.
func Truncate(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= len(suffix) {
		return text[:maxLength]
	}
	return text[:maxLength-len(suffix)] + suffix
}

// WordPreview returns the first maxWords words of text, and whether the text
// was cut short.
func WordPreview(text string, maxWords int) (string, bool) {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " "), false
	}
	return strings.Join(words[:maxWords], " "), true
}

// EstimateTokens approximates the LLM token count of text.
// Rough approximation: 1 token per 4 characters.
func EstimateTokens(text string) int {
	return len(text) / 4
}
