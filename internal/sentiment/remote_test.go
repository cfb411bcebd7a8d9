package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spacesedan/sentiview/internal/models"
)

type fakeAnalyzer struct {
	batches int
	reverse bool
	drop    bool
	err     error
}

func (f *fakeAnalyzer) AnalyzeBatch(_ context.Context, input []models.RemoteSentimentRequest) ([]models.RemoteSentimentResponse, error) {
	f.batches++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.RemoteSentimentResponse, 0, len(input))
	for _, in := range input {
		resp := models.RemoteSentimentResponse{ContentID: in.ContentID}
		switch {
		case strings.Contains(in.Text, "bagus"):
			resp.SentimentLabel = "POSITIVE"
		case strings.Contains(in.Text, "biasa"):
			resp.SentimentLabel = "neutral"
			resp.SentimentScore = -0.1
		default:
			resp.SentimentLabel = "negative"
		}
		out = append(out, resp)
	}
	if f.reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if f.drop {
		out = out[1:]
	}
	return out, nil
}

func TestRemotePredictKeepsOrderAcrossBatches(t *testing.T) {
	texts := make([]string, remoteBatchSize+3)
	for i := range texts {
		if i%2 == 0 {
			texts[i] = "bagus"
		} else {
			texts[i] = "jelek"
		}
	}
	texts[len(texts)-1] = "biasa saja"

	analyzer := &fakeAnalyzer{reverse: true}
	labels, err := NewRemote(analyzer).Predict(context.Background(), texts)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if analyzer.batches != 2 {
		t.Fatalf("expected 2 batches, got %d", analyzer.batches)
	}
	for i, l := range labels[:len(labels)-1] {
		want := models.LabelNegative
		if i%2 == 0 {
			want = models.LabelPositive
		}
		if l != want {
			t.Fatalf("label %d = %q, want %q", i, l, want)
		}
	}
	if labels[len(labels)-1] != models.LabelNegative {
		t.Fatal("neutral with negative score should map to negative")
	}
}

func TestRemotePredictErrors(t *testing.T) {
	tests := []struct {
		name     string
		analyzer *fakeAnalyzer
	}{
		{"service failure", &fakeAnalyzer{err: errors.New("503")}},
		{"missing results", &fakeAnalyzer{drop: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRemote(tt.analyzer).Predict(context.Background(), []string{"a", "b"}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
