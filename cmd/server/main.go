package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/trip-planner-service/internal/cache"
	"github.com/kjstillabower/trip-planner-service/internal/client"
	"github.com/kjstillabower/trip-planner-service/internal/config"
	"github.com/kjstillabower/trip-planner-service/internal/forecast"
	"github.com/kjstillabower/trip-planner-service/internal/gemini"
	httphandler "github.com/kjstillabower/trip-planner-service/internal/http"
	"github.com/kjstillabower/trip-planner-service/internal/lifecycle"
	"github.com/kjstillabower/trip-planner-service/internal/mediator"
	"github.com/kjstillabower/trip-planner-service/internal/observability"
	"github.com/kjstillabower/trip-planner-service/internal/planner"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	weatherClient, err := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		logger.Fatal("weather client", zap.Error(err))
	}

	var cacheSvc cache.Cache
	var memcacheCloser *cache.MemcachedCache
	switch cfg.CacheBackend {
	case "memcached":
		mc, err := cache.NewMemcachedCache(cfg.MemcachedAddrs, cfg.MemcachedTimeout, cfg.MemcachedMaxIdleConns)
		if err != nil {
			logger.Fatal("memcached cache", zap.Error(err))
		}
		memcacheCloser = mc
		cacheSvc = mc
		logger.Info("cache backend: memcached", zap.String("addrs", cfg.MemcachedAddrs))
	default:
		cacheSvc = cache.NewInMemoryCache()
		logger.Info("cache backend: in_memory")
	}

	fetcher := forecast.NewFetcher(weatherClient, cacheSvc, logger)
	orchestrator := forecast.NewOrchestrator(fetcher, cfg.MaxWorkers, cfg.FetchTimeout, logger)
	med := mediator.New(orchestrator, cfg.MaxToolCalls, logger)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	geminiClient, err := gemini.NewClient(startCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		startCancel()
		logger.Fatal("gemini client", zap.Error(err))
	}

	tripPlanner, err := planner.New(startCtx, planner.Deps{
		Sessions:      geminiClient,
		Mediator:      med,
		WeatherClient: weatherClient,
		Logger:        logger,
	})
	startCancel()
	if err != nil {
		logger.Fatal("planner", zap.Error(err))
	}

	if cfg.WarmCache && len(cfg.TrackedCities) > 0 {
		warmer := cache.NewForecastWarmer(fetcher, logger)
		warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := warmer.Warm(warmCtx, cfg.TrackedCities); err != nil {
			logger.Warn("cache warming failed", zap.Error(err))
		}
		warmCancel()
		if cfg.WarmInterval > 0 {
			go func() {
				if err := warmer.WarmPeriodic(context.Background(), cfg.TrackedCities, cfg.WarmInterval); err != nil && err != context.Canceled {
					logger.Error("periodic cache warming stopped", zap.Error(err))
				}
			}()
		}
	}

	var cachePing func() error
	if memcacheCloser != nil {
		cachePing = memcacheCloser.Ping
	}
	handler := httphandler.NewHandler(tripPlanner, weatherClient, logger, cachePing)

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/", handler.GetForm).Methods("GET")
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())
	planRouter := router.NewRoute().Subrouter()
	planRouter.Use(httphandler.RateLimitMiddleware(limiter))
	planRouter.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	planRouter.HandleFunc("/plan", handler.PostPlan).Methods("POST")
	planRouter.HandleFunc("/api/plan", handler.PostPlanAPI).Methods("POST")

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
		// Write timeout must cover full plan generation; reads are tiny forms.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	inFlight := httphandler.InFlightCount()
	logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}

	if memcacheCloser != nil {
		if err := memcacheCloser.Close(); err != nil {
			logger.Error("memcached close", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
