package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"campaign-optimizer/internal/app"
	"campaign-optimizer/internal/config"
	"campaign-optimizer/internal/config/configs"
)

// The worker consumes the AMQP analysis queue and runs each deferred
// analysis against the shared database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	cfg.Optimizer.AnalysisMode = configs.AnalysisAMQP
	logger := cfg.Log.New(os.Stdout).With(slog.String("component", "worker"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup error", slog.Any("error", err))
		os.Exit(1)
	}
	defer application.Close(context.Background())

	logger.Info("worker running, waiting for messages", slog.String("queue", cfg.AMQP.Queue))
	if err = application.AMQP.Consume(ctx, application.Handler()); err != nil {
		logger.Error("consumer stopped", slog.Any("error", err))
		return
	}
	logger.Info("worker stopped")
}
