package app

import (
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/pkg/service/rates"
	"github.com/amirasaad/atm/pkg/service/report"
	"github.com/shopspring/decimal"
)

type App struct {
	Deps          *config.Deps
	Config        *config.App
	AtmService    *atm.Service
	RateRefresher *rates.Refresher
	ReportService *report.Service
}

// New builds the services over deps and registers the event handlers on its bus.
func New(deps *config.Deps) *App {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.App{}
		deps.Config = cfg
	}
	reportDir := "reports"
	if cfg.Report != nil && cfg.Report.Dir != "" {
		reportDir = cfg.Report.Dir
	}

	a := &App{
		Deps:          deps,
		Config:        cfg,
		AtmService:    atm.NewService(*deps),
		RateRefresher: rates.NewRefresher(deps.Uow, deps.RateTable, deps.EventBus, deps.Logger),
		ReportService: report.NewService(deps.Uow, reportDir, deps.EventBus, deps.Logger),
	}
	a.setupEventBus()
	return a
}

func (a *App) lowCashThreshold() decimal.Decimal {
	if a.Config.Bank != nil && !a.Config.Bank.LowCashThreshold.IsZero() {
		return a.Config.Bank.LowCashThreshold
	}
	return decimal.NewFromInt(1000)
}
