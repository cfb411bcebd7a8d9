package models

// Request and response items for a remote batch sentiment service.
type (
	RemoteSentimentRequest struct {
		ContentID string `json:"content_id"`
		Text      string `json:"text"`
	}
	RemoteSentimentResponse struct {
		ContentID      string  `json:"content_id"`
		SentimentScore float64 `json:"sentiment_score"`
		SentimentLabel string  `json:"sentiment_label"`
		Confidence     float64 `json:"confidence"`
	}
)
