// Package preprocess turns raw spreadsheet cells into normalized Indonesian
// text for the classifier: cleaning, stopword removal, stemming and slang
// normalization.
package preprocess

import (
	"strings"
	"unicode"
)

// CleanText lowercases v and keeps only letters and whitespace, trimmed.
// Anything that is not a string (numbers, booleans, empty cells) yields "".
func CleanText(v any) string {
	text, ok := v.(string)
	if !ok {
		return ""
	}

	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	return strings.TrimSpace(text)
}
