package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
)

const cacheKeyPrefix = "sentiview:report:"

// ReportCache stores finished reports by upload fingerprint.
type ReportCache interface {
	Get(ctx context.Context, key string) (*models.Report, bool, error)
	Put(ctx context.Context, key string, report *models.Report) error
}

// BytesStore is the key/value surface a ReportCache needs from a backend
// such as clients.ValkeyClient.
type BytesStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type storeCache struct {
	store BytesStore
	ttl   time.Duration
}

// NewReportCache serializes reports as JSON into store.
func NewReportCache(store BytesStore, ttl time.Duration) ReportCache {
	return &storeCache{store: store, ttl: ttl}
}

func (c *storeCache) Get(ctx context.Context, key string) (*models.Report, bool, error) {
	raw, found, err := c.store.GetBytes(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	var report models.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, true, nil
}

func (c *storeCache) Put(ctx context.Context, key string, report *models.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return c.store.SetBytes(ctx, key, raw, c.ttl)
}

// cacheKey fingerprints everything that changes the resulting report.
func cacheKey(data []byte, preprocessing bool, backend, column string, maxWords int) string {
	h := sha256.New()
	h.Write(data)
	for _, part := range []string{strconv.FormatBool(preprocessing), backend, column, strconv.Itoa(maxWords)} {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
