package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/observability"
)

// Prefetcher is implemented by the forecast layer to populate the cache for a
// city. Defined here to avoid a circular dependency on the forecast package.
type Prefetcher interface {
	Prefetch(ctx context.Context, city string) error
}

// ForecastWarmer warms the cache by prefetching forecast reports for a list of
// cities, so the first plan request of the day for a popular destination hits
// cache instead of the provider.
type ForecastWarmer struct {
	fetcher Prefetcher
	logger  *zap.Logger
}

// NewForecastWarmer creates a ForecastWarmer that uses the given fetcher and logger.
func NewForecastWarmer(fetcher Prefetcher, logger *zap.Logger) *ForecastWarmer {
	return &ForecastWarmer{fetcher: fetcher, logger: logger}
}

// Warm prefetches each city concurrently and populates the cache via the fetcher.
// Returns an error if any city failed (aggregated).
func (w *ForecastWarmer) Warm(ctx context.Context, cities []string) error {
	start := time.Now()
	observability.CacheWarmingTotal.Inc()
	if w.logger != nil {
		w.logger.Info("warming forecast cache", zap.Int("cities", len(cities)))
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(cities))
	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()
			if err := w.fetcher.Prefetch(ctx, city); err != nil {
				errCh <- fmt.Errorf("warm %s: %w", city, err)
			}
		}(city)
	}
	wg.Wait()
	close(errCh)
	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	duration := time.Since(start).Seconds()
	observability.CacheWarmingDurationSeconds.Observe(duration)
	if w.logger != nil {
		w.logger.Info("forecast cache warming complete",
			zap.Int("cities", len(cities)),
			zap.Int("errors", len(errs)),
			zap.Float64("duration_seconds", duration))
	}
	if len(errs) > 0 {
		observability.CacheWarmingErrorsTotal.Inc()
		return fmt.Errorf("cache warming: %v", errs)
	}
	return nil
}

// WarmPeriodic runs an initial Warm, then refreshes at the given interval until
// ctx is done. Day-keyed entries go stale at midnight, so an interval under 24h
// keeps tracked cities warm across the rotation.
func (w *ForecastWarmer) WarmPeriodic(ctx context.Context, cities []string, interval time.Duration) error {
	if err := w.Warm(ctx, cities); err != nil && w.logger != nil {
		w.logger.Warn("initial cache warm failed", zap.Error(err))
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Warm(ctx, cities); err != nil && w.logger != nil {
				w.logger.Warn("periodic cache warm failed", zap.Error(err))
			}
		}
	}
}
