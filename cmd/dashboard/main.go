package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/vivmon/viveiro-dashboard/internal/adapter/http"
	kafkaadapter "github.com/vivmon/viveiro-dashboard/internal/adapter/kafka"
	"github.com/vivmon/viveiro-dashboard/internal/adapter/sheets"
	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/observability"
	"github.com/vivmon/viveiro-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	source := sheets.NewClient(cfg.SheetID, cfg.SheetGID, cfg.FetchTimeout, logger)

	// Alert publishing is feature-flagged via KAFKA_BROKERS.
	var alerts pipeline.AlertSink
	var alertWriter *kafkaadapter.AlertWriter
	if cfg.AlertsEnabled {
		alertWriter = kafkaadapter.NewAlertWriter(cfg, logger)
		alerts = alertWriter
		metrics.AlertsEnabled.Set(1)
		logger.Info("divergence alerts enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("divergence alerts disabled")
	}

	p := pipeline.New(source, alerts, cfg.Columns, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
