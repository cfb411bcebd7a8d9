// Package sentiment holds the classifier backends that turn cleaned text
// into positive/negative labels.
package sentiment

import (
	"context"
	"fmt"

	"github.com/spacesedan/sentiview/internal/models"
)

// Classifier predicts one label per input text, in input order.
// Implementations are read-only after construction and safe for concurrent use.
type Classifier interface {
	Name() string
	Predict(ctx context.Context, texts []string) ([]models.Label, error)
}

func checkPredictions(name string, texts []string, labels []models.Label) error {
	if len(labels) != len(texts) {
		return fmt.Errorf("[%s] got %d labels for %d texts", name, len(labels), len(texts))
	}
	for i, l := range labels {
		if !l.Valid() {
			return fmt.Errorf("[%s] invalid label %q at index %d", name, l, i)
		}
	}
	return nil
}
