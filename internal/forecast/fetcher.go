package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/cache"
	"github.com/kjstillabower/trip-planner-service/internal/client"
	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/observability"
)

// Fetcher produces the per-city forecast report: one provider call, date-range
// filtering, daily aggregation, rendering, and a day-keyed cache write.
type Fetcher struct {
	client client.ForecastClient
	cache  cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewFetcher returns a Fetcher backed by the given provider client and cache.
func NewFetcher(c client.ForecastClient, cacheSvc cache.Cache, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: c,
		cache:  cacheSvc,
		logger: logger,
		now:    time.Now,
	}
}

// Fetch returns the rendered forecast report for one city, consulting the
// day-keyed cache first. Every failure mode ends up inside the Result; Fetch
// itself never aborts a batch.
func (f *Fetcher) Fetch(ctx context.Context, entry models.CityDateRange) Result {
	key := cache.DayKey(entry.City, f.now())

	cached, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		observability.CacheErrorsTotal.WithLabelValues("get", categorizeCacheError(err)).Inc()
		if f.logger != nil {
			f.logger.Warn("cache get failed", zap.String("city", entry.City), zap.Error(err))
		}
	} else if ok {
		observability.CacheHitsTotal.WithLabelValues("forecast").Inc()
		if f.logger != nil {
			f.logger.Debug("returning cached forecast", zap.String("city", entry.City))
		}
		return Result{City: entry.City, Report: cached}
	}

	if f.logger != nil {
		f.logger.Info("fetching forecast",
			zap.String("city", entry.City),
			zap.String("start_date", entry.StartDate),
			zap.String("end_date", entry.EndDate))
	}

	samples, err := f.client.GetForecast(ctx, entry.City)
	if err != nil {
		r := errorResult(entry.City, classifyClientError(err), clientErrorMessage(err))
		observability.CityFetchesTotal.WithLabelValues(string(r.Err.Kind)).Inc()
		return r
	}

	start, end := f.parseRange(entry)
	filtered := filterSamples(samples, start, end)
	days := buildDailySummaries(filtered)
	if len(days) == 0 {
		observability.CityFetchesTotal.WithLabelValues(string(ErrorKindNoData)).Inc()
		return errorResult(entry.City, ErrorKindNoData, "No forecast data available for the requested date range")
	}

	report := renderReport(entry.City, days)

	if err := f.cache.Set(ctx, key, report); err != nil {
		observability.CacheErrorsTotal.WithLabelValues("set", categorizeCacheError(err)).Inc()
		if f.logger != nil {
			f.logger.Warn("cache set failed", zap.String("city", entry.City), zap.Error(err))
		}
	}

	observability.CityFetchesTotal.WithLabelValues("success").Inc()
	return Result{City: entry.City, Report: report}
}

// Prefetch populates the cache for a city with no date bounds. Used by cache warming.
func (f *Fetcher) Prefetch(ctx context.Context, city string) error {
	r := f.Fetch(ctx, models.CityDateRange{City: city})
	if r.Err != nil {
		return fmt.Errorf("prefetch %s: %s", city, r.Err.Message)
	}
	return nil
}

// parseRange parses the entry's date bounds. Missing or unparsable bounds
// disable filtering; that is logged but not surfaced, matching the tolerant
// contract for model-supplied arguments.
func (f *Fetcher) parseRange(entry models.CityDateRange) (*time.Time, *time.Time) {
	if entry.StartDate == "" || entry.EndDate == "" {
		return nil, nil
	}
	start, err1 := time.Parse(dateLayout, entry.StartDate)
	end, err2 := time.Parse(dateLayout, entry.EndDate)
	if err1 != nil || err2 != nil {
		if f.logger != nil {
			f.logger.Warn("unparsable date range, using all samples",
				zap.String("city", entry.City),
				zap.String("start_date", entry.StartDate),
				zap.String("end_date", entry.EndDate))
		}
		return nil, nil
	}
	return &start, &end
}

func classifyClientError(err error) ErrorKind {
	switch {
	case errors.Is(err, client.ErrNoForecast), errors.Is(err, client.ErrCityNotFound):
		return ErrorKindNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorKindTimeout
	case strings.Contains(err.Error(), "parse response"):
		return ErrorKindMalformed
	case strings.Contains(err.Error(), "timeout"):
		return ErrorKindTimeout
	default:
		return ErrorKindTransport
	}
}

func clientErrorMessage(err error) string {
	switch classifyClientError(err) {
	case ErrorKindNotFound:
		return fmt.Sprintf("No forecast data available or city not found (%v)", err)
	case ErrorKindMalformed:
		return "Invalid response format"
	case ErrorKindTimeout:
		return fmt.Sprintf("API request timed out - %v", err)
	default:
		return fmt.Sprintf("API request failed - %v", err)
	}
}

func categorizeCacheError(err error) string {
	if err == nil {
		return "unknown"
	}
	errStr := err.Error()
	if strings.Contains(errStr, "timeout") {
		return "timeout"
	}
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") {
		return "connection"
	}
	return "unknown"
}
