package preprocess

import (
	"strings"

	"github.com/RadhiFadlillah/go-sastrawi"
)

var stemmer = sastrawi.NewStemmer(sastrawi.DefaultDictionary())

// Stem reduces every word of text to its Indonesian root form.
func Stem(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = stemmer.Stem(w)
	}
	return strings.Join(words, " ")
}
