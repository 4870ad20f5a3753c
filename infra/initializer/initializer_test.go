package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	infra_cache "github.com/amirasaad/atm/infra/cache"
	infra_eventbus "github.com/amirasaad/atm/infra/eventbus"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitEventBus(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *config.App
		want   any
		errMsg string
	}{
		{name: "defaults to memory", cfg: &config.App{}, want: &infra_eventbus.MemoryEventBus{}},
		{name: "memory", cfg: &config.App{EventBus: &config.EventBus{Driver: "memory"}}, want: &infra_eventbus.MemoryEventBus{}},
		{name: "none", cfg: &config.App{EventBus: &config.EventBus{Driver: "none"}}, want: infra_eventbus.NoopEventBus{}},
		{
			name: "kafka",
			cfg: &config.App{EventBus: &config.EventBus{
				Driver: "kafka", Brokers: []string{"localhost:9092"}, Topic: "atm.withdrawals",
			}},
			want: &infra_eventbus.KafkaEventBus{},
		},
		{name: "kafka without brokers", cfg: &config.App{EventBus: &config.EventBus{Driver: "kafka", Topic: "t"}}, errMsg: "brokers"},
		{name: "unknown", cfg: &config.App{EventBus: &config.EventBus{Driver: "nats"}}, errMsg: "unknown event bus driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus, closeBus, err := initEventBus(tt.cfg, discard())
			if tt.errMsg != "" {
				assert.ErrorContains(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, bus)
			if closeBus != nil {
				assert.NoError(t, closeBus())
			}
		})
	}
}

func TestInitRateTable_Memory(t *testing.T) {
	table, closeTable, err := initRateTable(&config.App{}, discard())
	require.NoError(t, err)
	assert.Nil(t, closeTable)
	assert.IsType(t, &infra_cache.MemoryRateTable{}, table)
}

func TestInitRateTable_RedisFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		RateCache: &config.RateCache{Backend: "redis"},
		Redis:     &config.Redis{URL: "redis://127.0.0.1:1/0"},
	}
	table, closeTable, err := initRateTable(cfg, discard())
	require.NoError(t, err)
	assert.Nil(t, closeTable)
	assert.IsType(t, &infra_cache.MemoryRateTable{}, table)
}

func TestInitRateTable_Errors(t *testing.T) {
	_, _, err := initRateTable(&config.App{RateCache: &config.RateCache{Backend: "redis"}}, discard())
	assert.Error(t, err)

	_, _, err = initRateTable(&config.App{RateCache: &config.RateCache{Backend: "etcd"}}, discard())
	assert.ErrorContains(t, err, "unknown rate cache backend")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Level: 0, Prefix: "[atm]"})
	logger.Info("Withdrawal started", "atm_id", 7)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "Withdrawal started")
	assert.Contains(t, out, "atm_id")
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	newLogger(&buf, nil).Info("text format")
	assert.Contains(t, buf.String(), "text format")
}
