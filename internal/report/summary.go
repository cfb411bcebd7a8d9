// Package report aggregates predicted labels and renders the result images.
package report

import (
	"encoding/base64"

	"github.com/spacesedan/sentiview/internal/models"
)

// Summarize counts labels and converts them to percentages of the batch.
// Every known label is present in the result, with zero when unseen.
func Summarize(labels []models.Label) (map[models.Label]int, map[models.Label]float64) {
	counts := make(map[models.Label]int, len(models.Labels))
	for _, l := range models.Labels {
		counts[l] = 0
	}
	for _, l := range labels {
		counts[l]++
	}

	percentages := make(map[models.Label]float64, len(counts))
	for l, c := range counts {
		if len(labels) == 0 {
			percentages[l] = 0
			continue
		}
		percentages[l] = float64(c) / float64(len(labels)) * 100
	}
	return counts, percentages
}

// Base64 encodes rendered PNG bytes for a data: URI.
func Base64(png []byte) string {
	return base64.StdEncoding.EncodeToString(png)
}
