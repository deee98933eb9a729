package htmltree

import (
	"strings"
	"unicode"
)

// NormalizeSpace collapses every run of whitespace to a single space and
// trims both ends.
func NormalizeSpace(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	prevSpace := false
	for _, char := range text {
		if unicode.IsSpace(char) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		} else {
			result.WriteRune(char)
			prevSpace = false
		}
	}

	return result.String()
}

// TruncateText cuts text to at most maxRunes runes.
func TruncateText(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}
