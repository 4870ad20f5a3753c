package app

import (
	"log/slog"

	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/handler/audit"
)

// setupEventBus registers all event handlers with the app's event bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "audit")

	bus.Register(events.EventTypeWithdrawalDispensed.String(), audit.Withdrawal(logger))
	bus.Register(
		events.EventTypeWithdrawalDispensed.String(),
		audit.CashLevel(a.Deps.Uow, a.lowCashThreshold(), logger),
	)
	bus.Register(events.EventTypeRatesRefreshed.String(), audit.RatesRefreshed(logger))
	bus.Register(events.EventTypeReportWritten.String(), audit.ReportWritten(logger))
}
