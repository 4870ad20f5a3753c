package cache

import (
	"context"
	"time"

	"github.com/amirasaad/atm/pkg/domain/atm"
)

// RateTable holds the live conversion rate of every currency, keyed by uppercased currency code.
// Writes replace whole entries so concurrent readers never observe a partially updated rate.
type RateTable interface {
	// Get returns the rate of a currency and false when there is none.
	Get(ctx context.Context, code string) (atm.CurrencyRate, bool, error)
	// Put stores a rate, replacing any previous entry for the same currency.
	Put(ctx context.Context, rate atm.CurrencyRate) error
	// Snapshot returns a copy of all entries.
	Snapshot(ctx context.Context) (map[string]atm.CurrencyRate, error)
	// LastUpdated returns the time of the latest Put, zero when the table was never written.
	LastUpdated(ctx context.Context) (time.Time, error)
}
