package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
)

const (
	NaiveBayesName         = "naivebayes"
	naiveBayesModelVersion = 1
)

var ErrInvalidModel = errors.New("invalid naive bayes model")

// NaiveBayes is a tf-idf vectorizer followed by a multinomial Naive Bayes
// model. It is built by Train or loaded from a JSON artifact and never
// mutated afterwards.
type NaiveBayes struct {
	Version        int            `json:"version"`
	Labels         []models.Label `json:"labels"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	Alpha          float64        `json:"alpha"`
	TrainedAt      time.Time      `json:"trained_at"`
}

// LoadNaiveBayes reads and validates a model artifact from path.
func LoadNaiveBayes(path string) (*NaiveBayes, error) {
	start := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}

	var nb NaiveBayes
	if err := json.Unmarshal(raw, &nb); err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	if err := nb.validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	slog.Info("[NaiveBayes] Model loaded",
		slog.String("path", path),
		slog.Int("vocabulary", len(nb.Vocabulary)),
		slog.Duration("elapsed", time.Since(start)))
	return &nb, nil
}

// Save writes the model as JSON to path.
func (nb *NaiveBayes) Save(path string) error {
	raw, err := json.Marshal(nb)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write model %s: %w", path, err)
	}
	return nil
}

func (nb *NaiveBayes) validate() error {
	if nb.Version != naiveBayesModelVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidModel, nb.Version)
	}
	if len(nb.Labels) == 0 {
		return fmt.Errorf("%w: no labels", ErrInvalidModel)
	}
	for _, l := range nb.Labels {
		if !l.Valid() {
			return fmt.Errorf("%w: unknown label %q", ErrInvalidModel, l)
		}
	}
	if len(nb.ClassLogPrior) != len(nb.Labels) || len(nb.FeatureLogProb) != len(nb.Labels) {
		return fmt.Errorf("%w: class dimensions do not match labels", ErrInvalidModel)
	}
	if len(nb.IDF) != len(nb.Vocabulary) {
		return fmt.Errorf("%w: idf has %d entries for %d terms", ErrInvalidModel, len(nb.IDF), len(nb.Vocabulary))
	}
	for c, row := range nb.FeatureLogProb {
		if len(row) != len(nb.Vocabulary) {
			return fmt.Errorf("%w: class %d has %d features, want %d", ErrInvalidModel, c, len(row), len(nb.Vocabulary))
		}
	}
	for term, idx := range nb.Vocabulary {
		if idx < 0 || idx >= len(nb.IDF) {
			return fmt.Errorf("%w: term %q has out of range index %d", ErrInvalidModel, term, idx)
		}
	}
	return nil
}

func (nb *NaiveBayes) Name() string { return NaiveBayesName }

// Predict returns the label with the highest joint log likelihood for every
// text. Ties go to the label listed first in the model.
func (nb *NaiveBayes) Predict(ctx context.Context, texts []string) ([]models.Label, error) {
	labels := make([]models.Label, len(texts))
	for i, text := range texts {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		labels[i] = nb.predictOne(text)
	}
	return labels, nil
}

func (nb *NaiveBayes) predictOne(text string) models.Label {
	vec := tfidf(text, nb.Vocabulary, nb.IDF)

	best := 0
	bestScore := math.Inf(-1)
	for c := range nb.Labels {
		score := nb.ClassLogPrior[c]
		for idx, w := range vec {
			score += w * nb.FeatureLogProb[c][idx]
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return nb.Labels[best]
}
