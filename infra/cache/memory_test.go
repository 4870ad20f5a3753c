package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(rate string) atm.CurrencyRate {
	return atm.CurrencyRate{
		CurrencyCode: "usd",
		Operator:     atm.OperatorMultiply,
		Rate:         decimal.NewNullDecimal(decimal.RequireFromString(rate)),
	}
}

func TestMemoryRateTable_PutGet(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryRateTable()

	_, ok, err := table.Get(ctx, "USD")
	require.NoError(t, err)
	assert.False(t, ok)

	updated, err := table.LastUpdated(ctx)
	require.NoError(t, err)
	assert.True(t, updated.IsZero())

	require.NoError(t, table.Put(ctx, usd("18.5")))
	rate, ok, err := table.Get(ctx, " Usd ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "USD", rate.CurrencyCode)
	assert.True(t, rate.Rate.Decimal.Equal(decimal.RequireFromString("18.5")))

	require.NoError(t, table.Put(ctx, usd("19")))
	rate, _, _ = table.Get(ctx, "USD")
	assert.True(t, rate.Rate.Decimal.Equal(decimal.NewFromInt(19)))

	updated, err = table.LastUpdated(ctx)
	require.NoError(t, err)
	assert.False(t, updated.IsZero())
}

func TestMemoryRateTable_SnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryRateTable()
	require.NoError(t, table.Put(ctx, usd("18.5")))

	snap, err := table.Snapshot(ctx)
	require.NoError(t, err)
	delete(snap, "USD")

	_, ok, _ := table.Get(ctx, "USD")
	assert.True(t, ok)
}

func TestMemoryRateTable_LastUpdatedUsesClock(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	table := NewMemoryRateTable()
	table.now = func() time.Time { return at }

	require.NoError(t, table.Put(ctx, usd("1")))
	updated, _ := table.LastUpdated(ctx)
	assert.Equal(t, at, updated)
}

func TestMemoryRateTable_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryRateTable()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = table.Put(ctx, usd("18.5"))
		}()
		go func() {
			defer wg.Done()
			snap, _ := table.Snapshot(ctx)
			if r, ok := snap["USD"]; ok {
				assert.True(t, r.Usable())
			}
		}()
	}
	wg.Wait()
}
