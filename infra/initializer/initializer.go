package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/atm/infra"
	infra_cache "github.com/amirasaad/atm/infra/cache"
	infra_eventbus "github.com/amirasaad/atm/infra/eventbus"
	infra_repository "github.com/amirasaad/atm/infra/repository"
	"github.com/amirasaad/atm/pkg/cache"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/eventbus"
)

const pingTimeout = 3 * time.Second

// InitializeDependencies wires the database, rate table and event bus described by cfg.
// The returned cleanup releases network resources and is safe to call once.
func InitializeDependencies(cfg *config.App) (deps *config.Deps, cleanup func(), err error) {
	logger := SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}

	var closers []func() error
	cleanup = func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("Cleanup failed", "error", err)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	rates, closeRates, err := initRateTable(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize rate table: %w", err)
	}
	if closeRates != nil {
		closers = append(closers, closeRates)
	}

	bus, closeBus, err := initEventBus(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	if closeBus != nil {
		closers = append(closers, closeBus)
	}

	deps = &config.Deps{
		Uow:       infra_repository.NewUoW(db),
		RateTable: rates,
		EventBus:  bus,
		Logger:    logger,
		Config:    cfg,
	}
	return deps, cleanup, nil
}

// initRateTable picks the rate table backend. An unreachable redis falls back to memory.
func initRateTable(cfg *config.App, logger *slog.Logger) (cache.RateTable, func() error, error) {
	backend := config.RateBackendMemory
	if cfg.RateCache != nil && cfg.RateCache.Backend != "" {
		backend = cfg.RateCache.Backend
	}

	switch backend {
	case config.RateBackendMemory:
		logger.Info("Using in-memory rate table")
		return infra_cache.NewMemoryRateTable(), nil, nil
	case config.RateBackendRedis:
		table, err := infra_cache.NewRedisRateTable(cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := table.Ping(ctx); err != nil {
			_ = table.Close()
			logger.Warn("Redis unreachable, falling back to in-memory rate table", "error", err)
			return infra_cache.NewMemoryRateTable(), nil, nil
		}
		logger.Info("Using redis rate table")
		return table, table.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown rate cache backend %q", backend)
	}
}

func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, func() error, error) {
	driver := config.EventBusMemory
	if cfg.EventBus != nil && cfg.EventBus.Driver != "" {
		driver = cfg.EventBus.Driver
	}

	switch driver {
	case config.EventBusMemory:
		return infra_eventbus.NewWithMemory(logger), nil, nil
	case config.EventBusNone:
		return infra_eventbus.NoopEventBus{}, nil, nil
	case config.EventBusKafka:
		if cfg.EventBus == nil {
			return nil, nil, errors.New("kafka driver requires event bus configuration")
		}
		bus, err := infra_eventbus.NewWithKafka(cfg.EventBus, logger)
		if err != nil {
			return nil, nil, err
		}
		return bus, bus.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown event bus driver %q", driver)
	}
}
