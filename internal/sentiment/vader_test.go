package sentiment

import (
	"context"
	"testing"

	"github.com/spacesedan/sentiview/internal/models"
)

func TestConvertMarkdownToText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**great** product", "great product"},
		{"see [the docs](https://example.com/docs) now", "see the docs now"},
		{"visit https://example.com today", "visit today"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ConvertMarkdownToText(tt.input); got != tt.want {
			t.Errorf("ConvertMarkdownToText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVaderPredict(t *testing.T) {
	v := NewVader()
	texts := []string{"I love this, it is great", "this is terrible and awful", ""}
	want := []models.Label{models.LabelPositive, models.LabelNegative, models.LabelPositive}

	got, err := v.Predict(context.Background(), texts)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if err := checkPredictions(v.Name(), texts, got); err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Predict(%q) = %q, want %q", texts[i], got[i], want[i])
		}
	}
}
