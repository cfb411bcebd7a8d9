package sentiment

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more word characters, unicode aware.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// tfidf turns text into a sparse L2-normalized tf-idf vector over vocab.
// Tokens missing from vocab are ignored.
func tfidf(text string, vocab map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64)
	for _, tok := range tokenize(text) {
		if idx, ok := vocab[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for idx, tf := range vec {
		w := tf * idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}
