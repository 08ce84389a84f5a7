package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/agri-dashboard-service/internal/adapter/file"
	httpadapter "github.com/couchcryptid/agri-dashboard-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/agri-dashboard-service/internal/adapter/kafka"
	"github.com/couchcryptid/agri-dashboard-service/internal/config"
	"github.com/couchcryptid/agri-dashboard-service/internal/dashboard"
	"github.com/couchcryptid/agri-dashboard-service/internal/observability"
	"github.com/couchcryptid/agri-dashboard-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	manifest, err := config.LoadManifest(cfg.Manifest)
	if err != nil {
		logger.Error("failed to load dataset manifest", "path", cfg.Manifest, "error", err)
		os.Exit(1)
	}
	source := file.NewDirSource(cfg.DataDir, manifest.Files())

	// Publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(source, publisher, logger, metrics, cfg.LoadTimeout)
	svc := dashboard.NewService(p, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the catalog. /readyz reports the last error until it succeeds.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
