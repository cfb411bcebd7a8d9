package sentiment

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
)

// Train fits a tf-idf + multinomial Naive Bayes model on labelled texts.
// alpha is the additive smoothing parameter; values <= 0 fall back to 1.
func Train(texts []string, labels []models.Label, alpha float64) (*NaiveBayes, error) {
	if len(texts) == 0 {
		return nil, errors.New("no training examples")
	}
	if len(texts) != len(labels) {
		return nil, fmt.Errorf("got %d texts and %d labels", len(texts), len(labels))
	}
	if alpha <= 0 {
		alpha = 1
	}

	classIndex := make(map[models.Label]int)
	var classes []models.Label
	for i, l := range labels {
		if !l.Valid() {
			return nil, fmt.Errorf("invalid label %q at row %d", l, i)
		}
		if _, ok := classIndex[l]; !ok {
			classIndex[l] = -1
			classes = append(classes, l)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for i, l := range classes {
		classIndex[l] = i
	}

	// vocabulary in sorted term order, document frequencies alongside
	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(texts))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	featureCount := make([][]float64, len(classes))
	for c := range featureCount {
		featureCount[c] = make([]float64, len(terms))
	}
	classCount := make([]float64, len(classes))
	for i, text := range texts {
		c := classIndex[labels[i]]
		classCount[c]++
		for idx, w := range tfidf(text, vocab, idf) {
			featureCount[c][idx] += w
		}
	}

	nb := &NaiveBayes{
		Version:        naiveBayesModelVersion,
		Labels:         classes,
		Vocabulary:     vocab,
		IDF:            idf,
		ClassLogPrior:  make([]float64, len(classes)),
		FeatureLogProb: make([][]float64, len(classes)),
		Alpha:          alpha,
		TrainedAt:      time.Now().UTC(),
	}
	for c := range classes {
		nb.ClassLogPrior[c] = math.Log(classCount[c] / n)

		var total float64
		for _, v := range featureCount[c] {
			total += v + alpha
		}
		row := make([]float64, len(terms))
		for j, v := range featureCount[c] {
			row[j] = math.Log((v + alpha) / total)
		}
		nb.FeatureLogProb[c] = row
	}

	return nb, nil
}
