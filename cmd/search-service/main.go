// cmd/search-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"property-search/internal/common/cache"
	"property-search/internal/common/config"
	"property-search/internal/common/logger"
	"property-search/internal/common/observability"
	"property-search/internal/pipeline/predict"
	"property-search/internal/pipeline/sanitize"
	"property-search/internal/pipeline/search"
	"property-search/internal/scansan"
	"property-search/internal/server"
	"property-search/pkg/areas"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting search service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Re-create the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	registry := areas.Default()

	// --- Build the pipeline ---
	predictor, err := predict.New(cfg.Model.ArtifactPath)
	if err != nil {
		zapLog.Fatal("model artifact load failed", zap.Error(err))
	}
	if predictor.SchemaVersion() != sanitize.SchemaVersion {
		zapLog.Fatal("model artifact was trained against a different feature schema",
			zap.String("artifact", predictor.SchemaVersion()),
			zap.String("sanitizer", sanitize.SchemaVersion),
		)
	}

	mock := scansan.NewMockGenerator(registry, cfg.Search.MockRecordCount)
	client := scansan.NewClient(cfg.Scansan, mock, log)
	sanitizer := sanitize.New()
	orchestrator := search.New(client, sanitizer, predictor, registry, log)

	// --- Optional redis response cache ---
	var responseCache server.ResponseCache
	if cfg.Cache.Enabled {
		redisCache := cache.New(cfg.Cache)
		if err := redisCache.Ping(ctx); err != nil {
			// The cache is an optimization: start without it.
			zapLog.Warn("redis unreachable, serving uncached", zap.Error(err))
		} else {
			responseCache = redisCache
			defer redisCache.Close()
			zapLog.Info("Redis cache connected successfully")
		}
	}

	srv := server.New(orchestrator, client, registry, responseCache, obs, log)

	mux := srv.Router()
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Search service stopped")
}
