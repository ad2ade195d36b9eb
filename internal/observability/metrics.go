package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate for the web form server. Watch for: sudden drops (service down) or spikes.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Plan generation dominates; expect seconds, not millis.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation during long plan generations.
	HTTPRequestsInFlight prometheus.Gauge

	// OpenWeatherMap forecast API call rate. Watch for: error vs success ratio.
	ForecastAPICallsTotal *prometheus.CounterVec

	// Forecast API latency per request. Watch for: p95 > 2s (upstream degradation).
	ForecastAPIDuration *prometheus.HistogramVec

	// Per-city fetch outcomes inside one aggregation. Labels: success, transport_error,
	// not_found, no_data, timeout.
	CityFetchesTotal *prometheus.CounterVec

	// Forecast workers currently running inside aggregations. Bounded by the worker ceiling.
	ForecastWorkersInFlight prometheus.Gauge

	// Forecast report cache hits. Misses = cityFetchesTotal{status="success"}.
	CacheHitsTotal *prometheus.CounterVec

	// Cache backend failures by operation (get, set) and category.
	CacheErrorsTotal *prometheus.CounterVec

	// Cache warming runs, failures, and duration.
	CacheWarmingTotal           prometheus.Counter
	CacheWarmingErrorsTotal     prometheus.Counter
	CacheWarmingDurationSeconds prometheus.Histogram

	// Tool invocations mediated per assistant turn. Labels: tool name and outcome
	// (success, handler_error, unknown).
	ToolCallsTotal *prometheus.CounterVec

	// Turns that hit the tool-call ceiling while the model was still requesting tools.
	ToolLoopCeilingTotal prometheus.Counter

	// Plan generations by outcome (success, invalid_input, error).
	PlanRequestsTotal *prometheus.CounterVec

	// End-to-end plan generation latency, model turns included.
	PlanDurationSeconds prometheus.Histogram

	// Rate limit denials on the plan endpoint. Watch for: overload.
	RateLimitDeniedTotal prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	ForecastAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastApiCallsTotal",
			Help: "Total number of OpenWeatherMap forecast API calls",
		},
		[]string{"status"},
	)
	ForecastAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forecastApiDurationSeconds",
			Help:    "OpenWeatherMap forecast API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	CityFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityFetchesTotal",
			Help: "Per-city forecast fetch outcomes inside aggregations",
		},
		[]string{"status"},
	)
	ForecastWorkersInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forecastWorkersInFlight",
			Help: "Forecast fetch workers currently running",
		},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheHitsTotal",
			Help: "Total number of forecast report cache hits",
		},
		[]string{"cacheType"},
	)
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheErrorsTotal",
			Help: "Cache backend failures by operation and category",
		},
		[]string{"operation", "category"},
	)
	CacheWarmingTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingTotal",
			Help: "Total number of cache warming runs",
		},
	)
	CacheWarmingErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingErrorsTotal",
			Help: "Cache warming runs that had at least one failed city",
		},
	)
	CacheWarmingDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cacheWarmingDurationSeconds",
			Help:    "Cache warming run duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30},
		},
	)
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolCallsTotal",
			Help: "Tool invocations mediated per assistant turn, by tool and outcome",
		},
		[]string{"tool", "status"},
	)
	ToolLoopCeilingTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "toolLoopCeilingTotal",
			Help: "Assistant turns that hit the tool-call ceiling",
		},
	)
	PlanRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planRequestsTotal",
			Help: "Plan generations by outcome",
		},
		[]string{"status"},
	)
	PlanDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planDurationSeconds",
			Help:    "End-to-end plan generation latency in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		ForecastAPICallsTotal, ForecastAPIDuration,
		CityFetchesTotal, ForecastWorkersInFlight,
		CacheHitsTotal, CacheErrorsTotal,
		CacheWarmingTotal, CacheWarmingErrorsTotal, CacheWarmingDurationSeconds,
		ToolCallsTotal, ToolLoopCeilingTotal,
		PlanRequestsTotal, PlanDurationSeconds,
		RateLimitDeniedTotal,
	)
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
