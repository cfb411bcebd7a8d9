package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spacesedan/sentiview/internal/logging"
	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/preprocess"
	"github.com/spacesedan/sentiview/internal/sentiment"
	"github.com/spacesedan/sentiview/internal/spreadsheet"
)

func main() {
	input := flag.String("input", "", "Labelled .xlsx training file")
	textColumn := flag.String("text", "content", "Column holding the text")
	labelColumn := flag.String("label", "sentiment", "Column holding positive/negative labels")
	withPreprocessing := flag.Bool("preprocess", false, "Apply stopword removal, stemming and slang normalization")
	alpha := flag.Float64("alpha", 1.0, "Additive smoothing")
	out := flag.String("out", "models/sentiment_model.json", "Where to write the model")
	flag.Parse()

	logging.InitLogger(slog.LevelInfo)

	if *input == "" {
		slog.Error("[Train] -input is required")
		flag.Usage()
		os.Exit(2)
	}

	start := time.Now()
	texts, labels, err := loadExamples(*input, *textColumn, *labelColumn, preprocess.Pipeline{Enabled: *withPreprocessing})
	if err != nil {
		slog.Error("[Train] Failed to load training data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	model, err := sentiment.Train(texts, labels, *alpha)
	if err != nil {
		slog.Error("[Train] Training failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := model.Save(*out); err != nil {
		slog.Error("[Train] Failed to save model", slog.String("error", err.Error()))
		os.Exit(1)
	}

	acc, err := accuracy(model, texts, labels)
	if err != nil {
		slog.Warn("[Train] Could not score training set", slog.String("error", err.Error()))
	}
	slog.Info("[Train] Model written",
		slog.String("path", *out),
		slog.Int("examples", len(texts)),
		slog.Int("vocabulary", len(model.Vocabulary)),
		slog.Float64("training_accuracy", acc),
		slog.Duration("elapsed", time.Since(start)))
}

// loadExamples reads text and label columns from the first sheet. Rows with
// an empty label are skipped; any other unknown label is an error.
func loadExamples(path, textColumn, labelColumn string, pipeline preprocess.Pipeline) ([]string, []models.Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	table, err := spreadsheet.Read(f)
	if err != nil {
		return nil, nil, err
	}
	rawTexts, err := table.Column(textColumn)
	if err != nil {
		return nil, nil, err
	}
	rawLabels, err := table.Column(labelColumn)
	if err != nil {
		return nil, nil, err
	}

	var (
		texts  []string
		labels []models.Label
	)
	for i := range rawTexts {
		s, _ := rawLabels[i].(string)
		if s == "" {
			continue
		}
		label, err := models.ParseLabel(s)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		texts = append(texts, pipeline.Apply(rawTexts[i]))
		labels = append(labels, label)
	}
	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("no labelled rows in %s", path)
	}
	return texts, labels, nil
}

func accuracy(c sentiment.Classifier, texts []string, labels []models.Label) (float64, error) {
	predicted, err := c.Predict(context.Background(), texts)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, l := range predicted {
		if l == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels)), nil
}
