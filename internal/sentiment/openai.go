package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/utils"
)

const (
	OpenAIName      = "openai"
	openAIBatchSize = 50
	openAIAttempts  = 3
)

const openAIPrompt = `You label the sentiment of short Indonesian texts (reviews, comments, tweets).
The user message is a JSON array of texts. Some texts may be empty; label those "positive".

Return ONLY valid JSON of the form:
{"labels": ["positive", "negative", ...]}

Rules:
- Exactly one label per input text, in the same order.
- Each label is either "positive" or "negative". No other values.
- No Markdown, no code fences, no explanation.`

// Completer sends one chat exchange to a language model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAI labels texts zero-shot through a chat model.
type OpenAI struct {
	completer  Completer
	retryDelay time.Duration
}

func NewOpenAI(completer Completer) *OpenAI {
	return &OpenAI{completer: completer, retryDelay: 2 * time.Second}
}

func (o *OpenAI) Name() string { return OpenAIName }

func (o *OpenAI) Predict(ctx context.Context, texts []string) ([]models.Label, error) {
	labels := make([]models.Label, 0, len(texts))
	for i, batch := range utils.Chunk(texts, openAIBatchSize) {
		batchLabels, err := o.labelBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("[OpenAIClassifier] batch %d: %w", i, err)
		}
		labels = append(labels, batchLabels...)
	}
	return labels, nil
}

func (o *OpenAI) labelBatch(ctx context.Context, batch []string) ([]models.Label, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= openAIAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(o.retryDelay):
			}
		}

		raw, err := o.completer.Complete(ctx, openAIPrompt, string(payload))
		if err != nil {
			lastErr = err
			slog.Warn("[OpenAIClassifier] completion failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}

		labels, err := parseOpenAILabels(raw)
		if err == nil {
			err = checkPredictions(OpenAIName, batch, labels)
		}
		if err != nil {
			lastErr = err
			slog.Warn("[OpenAIClassifier] unusable response, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}
		return labels, nil
	}

	return nil, fmt.Errorf("gave up after %d attempts: %w", openAIAttempts, lastErr)
}

func parseOpenAILabels(raw string) ([]models.Label, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var resp struct {
		Labels []string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}

	labels := make([]models.Label, len(resp.Labels))
	for i, l := range resp.Labels {
		labels[i] = models.Label(strings.ToLower(strings.TrimSpace(l)))
	}
	return labels, nil
}
