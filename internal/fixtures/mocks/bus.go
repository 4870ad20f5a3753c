package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/stretchr/testify/mock"
)

type MockBus struct{ mock.Mock }

func NewMockBus(t T) *MockBus {
	m := &MockBus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBus) Emit(ctx context.Context, event eventbus.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockBus) Register(eventType string, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

// RateTable is a fixed in-memory rate table.
type RateTable struct {
	mu      sync.Mutex
	Rates   map[string]atm.CurrencyRate
	Updated time.Time
	Err     error
}

func (r *RateTable) Get(_ context.Context, code string) (atm.CurrencyRate, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.Rates[atm.RateKey(code)]
	return rate, ok, r.Err
}

func (r *RateTable) Put(_ context.Context, rate atm.CurrencyRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.Rates == nil {
		r.Rates = map[string]atm.CurrencyRate{}
	}
	r.Rates[rate.Key()] = rate
	r.Updated = time.Now()
	return nil
}

func (r *RateTable) Snapshot(context.Context) (map[string]atm.CurrencyRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[string]atm.CurrencyRate, len(r.Rates))
	for k, v := range r.Rates {
		out[k] = v
	}
	return out, nil
}

func (r *RateTable) LastUpdated(context.Context) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Updated, r.Err
}
