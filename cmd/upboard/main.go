package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"upboard/internal/config"
	"upboard/internal/handler"
	"upboard/internal/infra/observability"
	"upboard/internal/infra/resilience"
	"upboard/internal/service"
	"upboard/internal/session"
	"upboard/internal/upbank"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("up_api_base_url", cfg.UpAPIBaseURL),
		zap.Int("page_size", cfg.PageSize),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("session_ttl", cfg.SessionTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "upboard")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("up-api", upbank.BreakerIsSuccessful)

	// --- Up API client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	bank := upbank.NewClient(httpClient, cfg.UpAPIBaseURL, cfg.PageSize, cb, resilienceCfg, metrics, logger)

	// --- Sessions ---
	sealKey := cfg.SessionSealKey
	if sealKey == "" {
		// Ephemeral key: sessions won't survive a restart.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			logger.Fatal("failed to generate seal key", zap.Error(err))
		}
		sealKey = hex.EncodeToString(buf)
		logger.Warn("SESSION_SEAL_KEY not set, using an ephemeral key; sessions will be invalidated on restart")
	}
	sessions, err := session.NewManager(cfg.SessionSecret, sealKey, cfg.SessionTTL)
	if err != nil {
		logger.Fatal("failed to init session manager", zap.Error(err))
	}

	// --- Services ---
	dashboardSvc := service.NewDashboardService(bank, cfg.CacheTTL, cfg.MaxConcurrency, metrics, logger)
	defer dashboardSvc.Close()

	// --- Router ---
	router := handler.NewRouter(dashboardSvc, sessions, handler.RouterConfig{SessionTTL: cfg.SessionTTL}, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
