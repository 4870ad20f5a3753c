// Package audit holds event handlers that record what the ATM network did.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/amirasaad/atm/pkg/money"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/shopspring/decimal"
)

// Withdrawal logs every dispensed withdrawal.
func Withdrawal(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		log := logger.With("handler", "Withdrawal", "event_type", e.Type())
		wd, ok := e.(*events.WithdrawalDispensed)
		if !ok {
			log.Debug("Skipping unexpected event", "event", e)
			return nil
		}
		notes := 0
		for _, n := range wd.Notes {
			notes += n.Count
		}
		log.Info("Withdrawal dispensed",
			"trace_id", wd.TraceID,
			"client_id", wd.ClientID,
			"atm_id", wd.AtmID,
			"account_number", wd.AccountNumber,
			"amount", wd.Amount.StringFixed(money.DisplayScale),
			"notes", notes,
		)
		return nil
	}
}

// CashLevel warns when the ATM of a withdrawal holds less dispensable cash than threshold.
func CashLevel(uow repository.UnitOfWork, threshold decimal.Decimal, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		log := logger.With("handler", "CashLevel", "event_type", e.Type())
		wd, ok := e.(*events.WithdrawalDispensed)
		if !ok {
			log.Debug("Skipping unexpected event", "event", e)
			return nil
		}
		repo, err := uow.AllocationRepository()
		if err != nil {
			return err
		}
		allocs, err := repo.ListByAtm(ctx, wd.AtmID)
		if err != nil {
			log.Error("Cash level check failed", "atm_id", wd.AtmID, "error", err)
			return err
		}
		total := decimal.Zero
		for _, a := range allocs {
			if a.Denomination.Dispensable() {
				total = total.Add(a.Denomination.Value.Mul(decimal.NewFromInt(int64(a.Count))))
			}
		}
		if total.LessThan(threshold) {
			log.Warn("ATM cash low",
				"atm_id", wd.AtmID,
				"remaining", total.StringFixed(money.DisplayScale),
				"threshold", threshold.StringFixed(money.DisplayScale),
			)
		}
		return nil
	}
}

// RatesRefreshed logs the outcome of a rate table refresh.
func RatesRefreshed(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		rr, ok := e.(*events.RatesRefreshed)
		if !ok {
			return nil
		}
		logger.Info("Rates refreshed", "loaded", rr.Loaded, "skipped", rr.Skipped)
		return nil
	}
}

// ReportWritten logs every report file produced.
func ReportWritten(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e eventbus.Event) error {
		rw, ok := e.(*events.ReportWritten)
		if !ok {
			return nil
		}
		logger.Info("Report written", "report", rw.Report, "path", rw.Path, "rows", rw.Rows)
		return nil
	}
}
