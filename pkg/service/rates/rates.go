// Package rates keeps the in-process currency rate table in step with the stored rates.
package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/atm/pkg/cache"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/google/uuid"
)

// ErrNoRateTable is returned when the refresher is built without a table to fill.
var ErrNoRateTable = errors.New("no rate table configured")

// Summary reports what a refresh did.
type Summary struct {
	Loaded  int
	Skipped int
}

// Refresher copies the stored currency rates into a RateTable.
type Refresher struct {
	uow    repository.UnitOfWork
	table  cache.RateTable
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewRefresher creates a Refresher. bus may be nil.
func NewRefresher(
	uow repository.UnitOfWork,
	table cache.RateTable,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{uow: uow, table: table, bus: bus, logger: logger.With("component", "rates")}
}

// Refresh loads every stored rate and puts the complete ones into the table.
// Incomplete records are skipped. An empty source leaves the table untouched.
func (r *Refresher) Refresh(ctx context.Context) (Summary, error) {
	var summary Summary
	r.logger.Info("Refresh started")
	if r.table == nil {
		return summary, ErrNoRateTable
	}

	repo, err := r.uow.CurrencyRateRepository()
	if err != nil {
		r.logger.Error("Refresh failed: CurrencyRateRepository error", "error", err)
		return summary, err
	}
	stored, err := repo.List(ctx)
	if err != nil {
		r.logger.Error("Refresh failed: rate lookup error", "error", err)
		return summary, fmt.Errorf("list currency rates: %w", err)
	}
	if len(stored) == 0 {
		r.logger.Warn("Refresh found no stored rates, table unchanged")
		return summary, nil
	}

	for _, rate := range stored {
		if !rate.Complete() {
			r.logger.Warn("Refresh skipping incomplete rate",
				"currency", rate.CurrencyCode,
				"operator", string(rate.Operator),
				"has_rate", rate.Rate.Valid,
			)
			summary.Skipped++
			continue
		}
		rate.CurrencyCode = atm.RateKey(rate.CurrencyCode)
		if err := r.table.Put(ctx, rate); err != nil {
			r.logger.Error("Refresh failed: rate table write error", "currency", rate.CurrencyCode, "error", err)
			return summary, fmt.Errorf("put rate %s: %w", rate.CurrencyCode, err)
		}
		summary.Loaded++
	}

	r.logger.Info("Refresh completed", "loaded", summary.Loaded, "skipped", summary.Skipped)
	if r.bus != nil {
		e := &events.RatesRefreshed{
			ID:        uuid.New(),
			Loaded:    summary.Loaded,
			Skipped:   summary.Skipped,
			Timestamp: time.Now().UTC(),
		}
		if err := r.bus.Emit(ctx, e); err != nil {
			r.logger.Warn("event publish failed", "event", e.Type(), "error", err)
		}
	}
	return summary, nil
}

// Run satisfies the scheduler job signature.
func (r *Refresher) Run(ctx context.Context) error {
	_, err := r.Refresh(ctx)
	return err
}
