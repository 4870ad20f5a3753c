package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCodec(t *testing.T) {
	data, err := encodeRate(usd("18.50000000"))
	require.NoError(t, err)

	rate, err := decodeRate(data)
	require.NoError(t, err)
	assert.Equal(t, "USD", rate.CurrencyCode)
	assert.Equal(t, atm.OperatorMultiply, rate.Operator)
	require.True(t, rate.Rate.Valid)
	assert.True(t, rate.Rate.Decimal.Equal(decimal.RequireFromString("18.5")))

	missing, err := decodeRate([]byte(`{"currencyCode":"GBP","operator":"/","rate":null}`))
	require.NoError(t, err)
	assert.False(t, missing.Rate.Valid)

	_, err = decodeRate([]byte("not json"))
	assert.Error(t, err)
}

func TestNewRedisRateTable_InvalidConfig(t *testing.T) {
	_, err := NewRedisRateTable(nil, nil)
	assert.Error(t, err)

	_, err = NewRedisRateTable(&config.Redis{URL: "://bad"}, nil)
	assert.Error(t, err)
}

// TestRedisRateTable runs against a live server named by REDIS_TEST_URL.
func TestRedisRateTable(t *testing.T) {
	url := config.GetEnv("REDIS_TEST_URL", "")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table, err := NewRedisRateTable(&config.Redis{URL: url, KeyPrefix: "atm-test:" + uuid.NewString() + ":"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = table.Close() })
	require.NoError(t, table.Ping(ctx))

	_, ok, err := table.Get(ctx, "USD")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, table.Put(ctx, usd("18.5")))
	rate, ok, err := table.Get(ctx, "usd")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rate.Rate.Decimal.Equal(decimal.RequireFromString("18.5")))

	snap, err := table.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap, 1)

	updated, err := table.LastUpdated(ctx)
	require.NoError(t, err)
	assert.False(t, updated.IsZero())
}
