package forecast

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/observability"
)

// noCitiesMessage is returned for an empty request without any I/O.
const noCitiesMessage = "No cities provided for weather forecast."

// DefaultMaxWorkers bounds simultaneous provider fetches per aggregation,
// keeping load on the weather API flat regardless of how many cities the
// model asks for.
const DefaultMaxWorkers = 5

// DefaultFetchTimeout is the upper bound for one city's fetch inside an
// aggregation. It is enforced as a context deadline, so the underlying HTTP
// request is actually cancelled rather than abandoned.
const DefaultFetchTimeout = 15 * time.Second

// CityFetcher is the per-city fetch dependency of the Orchestrator.
type CityFetcher interface {
	Fetch(ctx context.Context, entry models.CityDateRange) Result
}

// Orchestrator fans out forecast fetches for several cities with bounded
// parallelism and merges the outcomes into one textual report.
type Orchestrator struct {
	fetcher      CityFetcher
	maxWorkers   int
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewOrchestrator returns an Orchestrator over the given fetcher. maxWorkers
// and fetchTimeout fall back to the package defaults when non-positive.
func NewOrchestrator(fetcher CityFetcher, maxWorkers int, fetchTimeout time.Duration, logger *zap.Logger) *Orchestrator {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Orchestrator{
		fetcher:      fetcher,
		maxWorkers:   maxWorkers,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Aggregate fetches every requested city concurrently, min(N, maxWorkers) at
// a time, and joins the per-city strings with newlines. Per-city failures are
// embedded as one-line error strings; the aggregate call itself never fails,
// so the returned error is always nil today and exists for the handler
// contract. Output order reflects completion order, not request order.
func (o *Orchestrator) Aggregate(ctx context.Context, entries []models.CityDateRange) (string, error) {
	if len(entries) == 0 {
		return noCitiesMessage, nil
	}

	workers := len(entries)
	if workers > o.maxWorkers {
		workers = o.maxWorkers
	}

	jobs := make(chan models.CityDateRange)
	results := make(chan Result, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				results <- o.fetchOne(ctx, entry)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, entry := range entries {
			select {
			case jobs <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	lines := make([]string, 0, len(entries))
	for r := range results {
		if r.Err != nil {
			if o.logger != nil {
				o.logger.Error("forecast fetch failed",
					zap.String("city", r.City),
					zap.String("kind", string(r.Err.Kind)),
					zap.String("message", r.Err.Message))
			}
			lines = append(lines, "Error fetching weather for "+r.City+": "+r.Err.Message)
			continue
		}
		lines = append(lines, r.Report)
	}

	return strings.Join(lines, "\n"), nil
}

// fetchOne runs a single fetch under the per-city deadline.
func (o *Orchestrator) fetchOne(ctx context.Context, entry models.CityDateRange) Result {
	observability.ForecastWorkersInFlight.Inc()
	defer observability.ForecastWorkersInFlight.Dec()

	fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()
	return o.fetcher.Fetch(fetchCtx, entry)
}
