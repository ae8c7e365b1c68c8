// Package app wires adapters and use cases from configuration. The server,
// the worker and the CLI share it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	goredis "github.com/redis/go-redis/v9"

	"campaign-optimizer/internal/adapter/gateway"
	"campaign-optimizer/internal/adapter/memory"
	"campaign-optimizer/internal/adapter/postgres"
	"campaign-optimizer/internal/adapter/queue"
	"campaign-optimizer/internal/adapter/redis"
	"campaign-optimizer/internal/adapter/usecase"
	"campaign-optimizer/internal/config"
	"campaign-optimizer/internal/config/configs"
	"campaign-optimizer/internal/core/port"
	"campaign-optimizer/internal/db"
)

// App holds the wired services and everything that must be closed.
type App struct {
	Optimizer *usecase.OptimizerService
	Market    *usecase.MarketIntelligenceService
	// AMQP is set in amqp analysis mode.
	AMQP *queue.AMQP

	pool    *pgxpool.Pool
	sqlDB   *sql.DB
	redis   *goredis.Client
	workers *queue.InProcess
	logger  *slog.Logger
}

// NewMarket builds the market intelligence service over the configured
// gateways and the given cache.
func NewMarket(cfg config.Config, cache port.MarketCache, logger *slog.Logger) *usecase.MarketIntelligenceService {
	doer := gateway.NewRetryClient(&http.Client{Timeout: cfg.Gateway.Timeout}, cfg.Gateway.MaxRetries,
		gateway.WithRateLimit(cfg.Gateway.RatePerSecond),
		gateway.WithRetryLogger(logger))

	var consumer port.ConsumerBehaviorSource
	if cfg.Gateway.ConsumerURL != "" {
		consumer = gateway.NewConsumerAPI(cfg.Gateway.ConsumerURL, doer)
	}
	opts := []usecase.MarketOption{
		usecase.WithCacheTTL(cfg.Optimizer.CacheTTL),
		usecase.WithMarketDefaults(cfg.Optimizer.Geography, cfg.Optimizer.LookbackMonths),
	}
	if cfg.Gateway.BankOfCanadaURL != "" {
		opts = append(opts, usecase.WithCentralBank(gateway.NewBankOfCanada(cfg.Gateway.BankOfCanadaURL, doer)))
	}
	return usecase.NewMarketIntelligenceService(
		gateway.NewStatCan(cfg.Gateway.StatCanURL, doer, logger), consumer, cache, logger, opts...)
}

// New connects to Postgres (and Redis when configured) and wires the
// optimizer for the configured analysis mode.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	a := &App{pool: pool, logger: logger}

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	var (
		cache  port.MarketCache
		locker port.Locker
	)
	if cfg.Redis.Enabled() {
		a.redis = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err = a.redis.Ping(ctx).Err(); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("redis connection: %w", err)
		}
		cache = redis.NewMarketCache(a.redis)
		locker = redis.NewLocker(a.redis, cfg.Redis.LockTTL)
	} else {
		a.sqlDB = stdlib.OpenDBFromPool(pool)
		cache = postgres.NewMarketCache(pool)
		locker = postgres.NewAdvisoryLocker(a.sqlDB)
	}

	a.Market = NewMarket(cfg, cache, logger)

	opts := []usecase.OptimizerOption{usecase.WithLocker(locker)}
	switch cfg.Optimizer.AnalysisMode {
	case configs.AnalysisAsync:
		a.workers = queue.NewInProcess(cfg.Optimizer.Workers, cfg.Optimizer.QueueBuffer, logger)
		opts = append(opts, usecase.WithQueue(a.workers))
	case configs.AnalysisAMQP:
		a.AMQP, err = queue.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Queue, logger)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		opts = append(opts, usecase.WithQueue(a.AMQP))
	}

	a.Optimizer = usecase.NewOptimizerService(
		postgres.NewCampaignRepository(pool),
		postgres.NewOptimizationRepository(pool),
		a.Market,
		usecase.NewQuestionnaireService(nil),
		logger,
		opts...,
	)
	if a.workers != nil {
		a.workers.Start(a.runAnalysis)
	}
	return a, nil
}

// runAnalysis is the queue handler shared by the in-process pool and the
// AMQP worker.
func (a *App) runAnalysis(ctx context.Context, optimizationID string) error {
	_, err := a.Optimizer.RunAnalysis(ctx, optimizationID)
	if errors.Is(err, port.ErrLockNotAcquired) {
		a.logger.Info("analysis already running elsewhere", slog.String("optimization_id", optimizationID))
		return nil
	}
	return err
}

// Handler returns the queue handler for external consumers.
func (a *App) Handler() queue.Handler {
	return a.runAnalysis
}

// Close drains queued analyses and releases connections.
func (a *App) Close(ctx context.Context) {
	if a.workers != nil {
		if err := a.workers.Close(ctx); err != nil {
			a.logger.Warn("analysis queue did not drain", slog.Any("error", err))
		}
	}
	if a.AMQP != nil {
		if err := a.AMQP.Close(); err != nil {
			a.logger.Warn("close amqp", slog.Any("error", err))
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	a.pool.Close()
}

// InMemory wires the optimizer over in-memory stores and a market service
// with the given cache. The CLI uses it; nothing is persisted.
func InMemory(cfg config.Config, logger *slog.Logger) (*usecase.MarketIntelligenceService, *memory.CampaignStore, *usecase.OptimizerService) {
	market := NewMarket(cfg, memory.NewMarketCache(nil), logger)
	campaigns := memory.NewCampaignStore()
	opt := usecase.NewOptimizerService(campaigns, memory.NewOptimizationStore(), market,
		usecase.NewQuestionnaireService(nil), logger)
	return market, campaigns, opt
}
