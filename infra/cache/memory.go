package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/atm/pkg/cache"
	"github.com/amirasaad/atm/pkg/domain/atm"
)

// MemoryRateTable implements cache.RateTable using in-memory storage.
type MemoryRateTable struct {
	mu      sync.RWMutex
	rates   map[string]atm.CurrencyRate
	updated time.Time
	now     func() time.Time
}

// NewMemoryRateTable creates an empty in-memory rate table.
func NewMemoryRateTable() *MemoryRateTable {
	return &MemoryRateTable{
		rates: make(map[string]atm.CurrencyRate),
		now:   time.Now,
	}
}

// Get returns the rate stored for code.
func (t *MemoryRateTable) Get(_ context.Context, code string) (atm.CurrencyRate, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rate, ok := t.rates[atm.RateKey(code)]
	return rate, ok, nil
}

// Put replaces the entry of rate's currency.
func (t *MemoryRateTable) Put(_ context.Context, rate atm.CurrencyRate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rate.CurrencyCode = rate.Key()
	t.rates[rate.CurrencyCode] = rate
	t.updated = t.now()
	return nil
}

// Snapshot returns a copy of every entry.
func (t *MemoryRateTable) Snapshot(context.Context) (map[string]atm.CurrencyRate, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]atm.CurrencyRate, len(t.rates))
	for k, v := range t.rates {
		out[k] = v
	}
	return out, nil
}

func (t *MemoryRateTable) LastUpdated(context.Context) (time.Time, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updated, nil
}

var _ cache.RateTable = (*MemoryRateTable)(nil)
