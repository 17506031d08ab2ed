package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gradstat/placement-backend/internal/cache"
	"github.com/gradstat/placement-backend/internal/config"
	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/handler"
	"github.com/gradstat/placement-backend/internal/logger"
	"github.com/gradstat/placement-backend/internal/router"
	"github.com/gradstat/placement-backend/internal/service"
	"github.com/gradstat/placement-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Placement Analytics Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Dataset ──────────────────────────────────────────────────
	// A positional argument overrides DATA_PATH from the environment.
	dataPath := cfg.DataPath
	if len(os.Args) > 1 {
		dataPath = os.Args[1]
	}
	data, err := dataset.Open(dataPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", dataPath).Msg("Failed to load placement dataset")
	}

	// ─── Initialize Memoization Store ──────────────────────────────────
	var store cache.Store
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		store = rdb
	} else {
		store = cache.NewMemory()
		log.Info().Msg("Using in-process memoization store")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	analyticsService := service.NewAnalyticsService(data, log)
	chartService := service.NewChartService(data, store, cfg.CacheTTL, log)
	exportService := service.NewExportService(data, store, cfg.CacheTTL, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Dashboard: handler.NewDashboardHandler(analyticsService),
		Chart:     handler.NewChartHandler(chartService),
		Export:    handler.NewExportHandler(exportService, log),
		Filter:    handler.NewFilterHandler(data),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
