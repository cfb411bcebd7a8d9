package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
)

// SentimentServiceClient talks to an HTTP batch sentiment service, such as
// a model hosted on a Hugging Face Space.
type SentimentServiceClient struct {
	Client   *http.Client
	endpoint string
	backoff  time.Duration
}

func NewSentimentServiceClient(endpoint string, timeout time.Duration) *SentimentServiceClient {
	slog.Info("[SentimentServiceClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout))
	return &SentimentServiceClient{
		Client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		backoff:  INITIAL_BACKOFF,
	}
}

// DoWithRetry retries transport errors and 5xx responses with exponential
// backoff. newReq is called per attempt so the body is fresh each time.
func (s *SentimentServiceClient) DoWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := s.backoff

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		req, reqErr := newReq()
		if reqErr != nil {
			return nil, reqErr
		}
		resp, err = s.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[SentimentServiceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
		}
		if attempt == MAX_RETRIES-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	if err == nil {
		err = fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil, err
}

func (s *SentimentServiceClient) AnalyzeBatch(ctx context.Context, input []models.RemoteSentimentRequest) ([]models.RemoteSentimentResponse, error) {
	var result []models.RemoteSentimentResponse
	slog.Debug("[SentimentServiceClient] Requesting sentiment analysis",
		slog.Int("items", len(input)))
	start := time.Now()

	if err := s.postJSON(ctx, input, &result); err != nil {
		slog.Error("[SentimentServiceClient] Sentiment analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	slog.Debug("[SentimentServiceClient] Sentiment analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (s *SentimentServiceClient) postJSON(ctx context.Context, input any, output any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := s.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)
		return req, nil
	})
	if err != nil {
		slog.Error("[SentimentServiceClient] Failed request after retries",
			slog.String("endpoint", s.endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sentiment service returned %d: %s", resp.StatusCode, preview(respBody))
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[SentimentServiceClient] Failed to unmarshal response",
			slog.String("endpoint", s.endpoint),
			slog.String("error", err.Error()),
			slog.String("raw_response", preview(respBody)),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func preview(respBody []byte) string {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
