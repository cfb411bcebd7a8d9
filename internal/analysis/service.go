// Package analysis runs one uploaded spreadsheet through preprocessing,
// classification and rendering, and records the outcome in the optional
// side stores.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/preprocess"
	"github.com/spacesedan/sentiview/internal/report"
	"github.com/spacesedan/sentiview/internal/sentiment"
	"github.com/spacesedan/sentiview/internal/spreadsheet"
)

// HistoryStore records summaries of finished analyses.
type HistoryStore interface {
	Save(ctx context.Context, summary models.Summary) error
	Recent(ctx context.Context, limit int) ([]models.Summary, error)
}

// EventPublisher announces finished analyses.
type EventPublisher interface {
	PublishSummary(ctx context.Context, summary models.Summary) error
}

// Upload is one submitted spreadsheet.
type Upload struct {
	Filename      string
	Data          []byte
	Preprocessing bool
}

type Service struct {
	classifier sentiment.Classifier
	textColumn string
	maxWords   int

	cache        ReportCache
	cacheHealthy *atomic.Bool
	history      HistoryStore
	events       EventPublisher

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithCache enables the report cache. The cache is skipped whenever healthy
// is false; a nil healthy means always use it.
func WithCache(cache ReportCache, healthy *atomic.Bool) Option {
	return func(s *Service) {
		s.cache = cache
		s.cacheHealthy = healthy
	}
}

func WithHistory(history HistoryStore) Option {
	return func(s *Service) { s.history = history }
}

func WithEvents(events EventPublisher) Option {
	return func(s *Service) { s.events = events }
}

func NewService(classifier sentiment.Classifier, textColumn string, maxWords int, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		textColumn: textColumn,
		maxWords:   maxWords,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ClassifierName() string { return s.classifier.Name() }

func (s *Service) TextColumn() string { return s.textColumn }

func (s *Service) cacheUsable() bool {
	return s.cache != nil && (s.cacheHealthy == nil || s.cacheHealthy.Load())
}

// CacheState is "disabled", "healthy" or "unhealthy".
func (s *Service) CacheState() string {
	switch {
	case s.cache == nil:
		return "disabled"
	case s.cacheUsable():
		return "healthy"
	default:
		return "unhealthy"
	}
}

// Analyze produces the full report for up or fails as a whole.
func (s *Service) Analyze(ctx context.Context, up Upload) (*models.Report, error) {
	start := time.Now()
	if err := ValidateFilename(up.Filename); err != nil {
		return nil, err
	}

	key := cacheKey(up.Data, up.Preprocessing, s.classifier.Name(), s.textColumn, s.maxWords)
	if cached := s.cachedReport(ctx, key); cached != nil {
		slog.Info("[AnalysisService] Served report from cache",
			slog.String("filename", up.Filename),
			slog.String("analysis_id", cached.Summary.ID))
		return cached, nil
	}

	table, err := spreadsheet.Read(bytes.NewReader(up.Data))
	if err != nil {
		return nil, err
	}
	values, err := table.Column(s.textColumn)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmptyBatch
	}

	pipeline := preprocess.Pipeline{Enabled: up.Preprocessing}
	batch := make(models.Batch, len(values))
	for i, v := range values {
		batch[i] = models.Record{
			Row:         i + 2,
			Content:     v,
			CleanedText: pipeline.Apply(v),
		}
	}

	labels, err := s.classifier.Predict(ctx, batch.CleanedTexts())
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	if len(labels) != len(batch) {
		return nil, fmt.Errorf("classifier returned %d labels for %d rows", len(labels), len(batch))
	}
	for i := range batch {
		batch[i].Sentiment = labels[i]
	}

	counts, percentages := report.Summarize(labels)
	summary := models.Summary{
		ID:            s.newID(),
		Filename:      up.Filename,
		Preprocessing: up.Preprocessing,
		Backend:       s.classifier.Name(),
		Total:         len(batch),
		Counts:        counts,
		Percentages:   percentages,
		CreatedAt:     s.now(),
	}

	rep, err := s.render(batch, summary)
	if err != nil {
		return nil, err
	}

	slog.Info("[AnalysisService] Analysis complete",
		slog.String("analysis_id", summary.ID),
		slog.String("filename", up.Filename),
		slog.Int("rows", summary.Total),
		slog.Int("positive", counts[models.LabelPositive]),
		slog.Int("negative", counts[models.LabelNegative]),
		slog.Bool("preprocessing", up.Preprocessing),
		slog.Duration("elapsed", time.Since(start)))

	s.record(ctx, key, rep)
	return rep, nil
}

func (s *Service) render(batch models.Batch, summary models.Summary) (*models.Report, error) {
	segmentation, err := report.SegmentationChart(summary.Counts, summary.Percentages)
	if err != nil {
		return nil, fmt.Errorf("failed to render segmentation chart: %w", err)
	}

	clouds := make(map[models.Label]string, len(models.Labels))
	for _, label := range models.Labels {
		var texts []string
		for _, r := range batch {
			if r.Sentiment == label {
				texts = append(texts, r.CleanedText)
			}
		}
		title := fmt.Sprintf("Word Cloud for %s Sentiment", displayName(label))
		img, err := report.WordCloud(report.WordFrequencies(texts, s.maxWords), title)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s word cloud: %w", label, err)
		}
		clouds[label] = report.Base64(img)
	}

	return &models.Report{
		Summary:              summary,
		SegmentationPNG:      report.Base64(segmentation),
		PositiveWordCloudPNG: clouds[models.LabelPositive],
		NegativeWordCloudPNG: clouds[models.LabelNegative],
	}, nil
}

func displayName(l models.Label) string {
	switch l {
	case models.LabelPositive:
		return "Positive"
	case models.LabelNegative:
		return "Negative"
	default:
		return string(l)
	}
}

func (s *Service) cachedReport(ctx context.Context, key string) *models.Report {
	if !s.cacheUsable() {
		return nil
	}
	rep, found, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[AnalysisService] Cache lookup failed",
			slog.String("error", err.Error()))
		return nil
	}
	if !found {
		return nil
	}
	return rep
}

// record pushes a finished report to the side stores. Their failures are
// logged and never fail the analysis.
func (s *Service) record(ctx context.Context, key string, rep *models.Report) {
	if s.cacheUsable() {
		if err := s.cache.Put(ctx, key, rep); err != nil {
			slog.Warn("[AnalysisService] Failed to cache report",
				slog.String("analysis_id", rep.Summary.ID),
				slog.String("error", err.Error()))
		}
	}
	if s.history != nil {
		if err := s.history.Save(ctx, rep.Summary); err != nil {
			slog.Warn("[AnalysisService] Failed to store summary",
				slog.String("analysis_id", rep.Summary.ID),
				slog.String("error", err.Error()))
		}
	}
	if s.events != nil {
		if err := s.events.PublishSummary(ctx, rep.Summary); err != nil {
			slog.Warn("[AnalysisService] Failed to publish summary",
				slog.String("analysis_id", rep.Summary.ID),
				slog.String("error", err.Error()))
		}
	}
}

// Recent lists stored summaries, or nothing when history is disabled.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Summary, error) {
	if s.history == nil {
		return []models.Summary{}, nil
	}
	return s.history.Recent(ctx, limit)
}
