package app

import (
	"time"

	"github.com/amirasaad/atm/pkg/scheduler"
)

const (
	JobRefreshRates   = "refresh_rates"
	JobMonthlyReports = "monthly_reports"
)

// Jobs returns the background jobs of the app: the rate table refresh, run at start-up
// and then every RATE_CACHE_REFRESH_INTERVAL, and the month-end reports.
func (a *App) Jobs() []scheduler.Job {
	interval := time.Hour
	if a.Config.RateCache != nil && a.Config.RateCache.RefreshInterval > 0 {
		interval = a.Config.RateCache.RefreshInterval
	}
	return []scheduler.Job{
		{
			Name:       JobRefreshRates,
			Schedule:   scheduler.Every(interval),
			RunAtStart: true,
			Timeout:    time.Minute,
			Run:        a.RateRefresher.Run,
		},
		{
			Name:     JobMonthlyReports,
			Schedule: scheduler.EndOfMonth(),
			Timeout:  10 * time.Minute,
			Run:      a.ReportService.WriteAll,
		},
	}
}
