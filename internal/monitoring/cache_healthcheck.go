package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorCacheHealth pings the cache every interval and records the result
// in healthy until ctx is cancelled.
func MonitorCacheHealth(ctx context.Context, pinger Pinger, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval/2)
			err := pinger.Ping(pingCtx)
			cancel()

			wasHealthy := healthy.Swap(err == nil)
			if err != nil && wasHealthy {
				slog.Warn("[HealthCheck] Cache is unhealthy",
					slog.String("error", err.Error()))
			} else if err == nil && !wasHealthy {
				slog.Info("[HealthCheck] Cache recovered")
			}
		}
	}
}
