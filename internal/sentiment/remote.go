package sentiment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/utils"
)

const (
	RemoteName      = "remote"
	remoteBatchSize = 64
)

// BatchAnalyzer scores a batch of texts on a remote sentiment service.
type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, input []models.RemoteSentimentRequest) ([]models.RemoteSentimentResponse, error)
}

// Remote delegates classification to an HTTP sentiment service.
type Remote struct {
	analyzer BatchAnalyzer
}

func NewRemote(analyzer BatchAnalyzer) *Remote {
	return &Remote{analyzer: analyzer}
}

func (r *Remote) Name() string { return RemoteName }

func (r *Remote) Predict(ctx context.Context, texts []string) ([]models.Label, error) {
	labels := make([]models.Label, len(texts))
	offset := 0
	for _, batch := range utils.Chunk(texts, remoteBatchSize) {
		req := make([]models.RemoteSentimentRequest, len(batch))
		for i, text := range batch {
			req[i] = models.RemoteSentimentRequest{ContentID: strconv.Itoa(offset + i), Text: text}
		}

		resp, err := r.analyzer.AnalyzeBatch(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("[RemoteClassifier] %w", err)
		}
		if len(resp) != len(batch) {
			return nil, fmt.Errorf("[RemoteClassifier] got %d results for %d texts", len(resp), len(batch))
		}

		seen := make(map[int]bool, len(resp))
		for _, item := range resp {
			idx, err := strconv.Atoi(item.ContentID)
			if err != nil || idx < offset || idx >= offset+len(batch) || seen[idx] {
				return nil, fmt.Errorf("[RemoteClassifier] unexpected content_id %q", item.ContentID)
			}
			seen[idx] = true
			labels[idx] = remoteLabel(item)
		}
		offset += len(batch)
	}

	if err := checkPredictions(RemoteName, texts, labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// remoteLabel folds the service's label set into positive/negative. Labels
// other than those two fall back to the sign of the score.
func remoteLabel(r models.RemoteSentimentResponse) models.Label {
	if l, err := models.ParseLabel(r.SentimentLabel); err == nil {
		return l
	}
	if r.SentimentScore < 0 {
		return models.LabelNegative
	}
	return models.LabelPositive
}
