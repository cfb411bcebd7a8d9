package sentiment

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spacesedan/sentiview/internal/models"
)

var trainingTexts = []string{
	"pelayanan bagus sekali dan ramah",
	"makanan enak bagus puas",
	"sangat puas produk bagus",
	"ramah cepat enak",
	"pelayanan buruk dan lambat",
	"makanan basi kecewa buruk",
	"sangat kecewa produk rusak",
	"lambat rusak kecewa",
}

var trainingLabels = []models.Label{
	models.LabelPositive, models.LabelPositive, models.LabelPositive, models.LabelPositive,
	models.LabelNegative, models.LabelNegative, models.LabelNegative, models.LabelNegative,
}

func trainFixture(t *testing.T) *NaiveBayes {
	t.Helper()
	nb, err := Train(trainingTexts, trainingLabels, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	return nb
}

func TestTrainAndPredict(t *testing.T) {
	nb := trainFixture(t)

	texts := []string{"bagus enak", "buruk kecewa", "rusak lambat", "puas ramah"}
	want := []models.Label{models.LabelPositive, models.LabelNegative, models.LabelNegative, models.LabelPositive}

	got, err := nb.Predict(context.Background(), texts)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Predict(%q) = %q, want %q", texts[i], got[i], want[i])
		}
	}
}

func TestTrainModelShape(t *testing.T) {
	nb := trainFixture(t)

	if len(nb.Labels) != 2 || nb.Labels[0] != models.LabelNegative || nb.Labels[1] != models.LabelPositive {
		t.Fatalf("unexpected labels: %v", nb.Labels)
	}
	if err := nb.validate(); err != nil {
		t.Fatalf("trained model invalid: %v", err)
	}
	for c, row := range nb.FeatureLogProb {
		var total float64
		for _, lp := range row {
			total += math.Exp(lp)
		}
		if math.Abs(total-1) > 1e-9 {
			t.Errorf("class %d feature probabilities sum to %f", c, total)
		}
	}
	if got := math.Exp(nb.ClassLogPrior[0]) + math.Exp(nb.ClassLogPrior[1]); math.Abs(got-1) > 1e-9 {
		t.Errorf("class priors sum to %f", got)
	}
}

func TestPredictUnknownTextFallsBackToPrior(t *testing.T) {
	texts := []string{"bagus", "bagus", "buruk"}
	labels := []models.Label{models.LabelPositive, models.LabelPositive, models.LabelNegative}
	nb, err := Train(texts, labels, 1)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	got, err := nb.Predict(context.Background(), []string{"", "tidak dikenal"})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i, l := range got {
		if l != models.LabelPositive {
			t.Errorf("[%d] = %q, want majority class positive", i, l)
		}
	}
}

func TestTrainRejectsBadInput(t *testing.T) {
	if _, err := Train(nil, nil, 1); err == nil {
		t.Error("expected error for empty training set")
	}
	if _, err := Train([]string{"a"}, nil, 1); err == nil {
		t.Error("expected error for length mismatch")
	}
	if _, err := Train([]string{"a"}, []models.Label{"neutral"}, 1); err == nil {
		t.Error("expected error for unknown label")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	nb := trainFixture(t)
	path := filepath.Join(t.TempDir(), "model.json")

	if err := nb.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadNaiveBayes(path)
	if err != nil {
		t.Fatalf("LoadNaiveBayes: %v", err)
	}

	want, _ := nb.Predict(context.Background(), trainingTexts)
	got, err := loaded.Predict(context.Background(), trainingTexts)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] loaded model predicts %q, original %q", i, got[i], want[i])
		}
	}
}

func TestLoadNaiveBayesRejectsInvalidArtifacts(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"not json", "pickle", false},
		{"wrong version", `{"version": 9, "labels": ["positive"]}`, true},
		{"unknown label", `{"version": 1, "labels": ["neutral"], "class_log_prior": [0], "feature_log_prob": [[]]}`, true},
		{"dimension mismatch", `{"version": 1, "labels": ["positive", "negative"], "class_log_prior": [0], "feature_log_prob": [[]]}`, true},
		{"idf mismatch", `{"version": 1, "labels": ["positive"], "vocabulary": {"ok": 0}, "idf": [], "class_log_prior": [0], "feature_log_prob": [[0]]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadNaiveBayes(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidModel) {
				t.Fatalf("expected ErrInvalidModel, got %v", err)
			}
		})
	}

	if _, err := LoadNaiveBayes(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPredictHonoursCancelledContext(t *testing.T) {
	nb := trainFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := nb.Predict(ctx, []string{"bagus"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Bagus!! a ok_2 çok, 42")
	want := []string{"bagus", "ok_2", "çok", "42"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokenize = %v, want %v", got, want)
		}
	}
}
