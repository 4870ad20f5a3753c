package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/atm/pkg/cache"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	ratesKey   = "rates"
	updatedKey = "rates:last_update"
)

// rateEntry is the stored form of a rate. The rate is kept as a decimal string.
type rateEntry struct {
	CurrencyCode string              `json:"currencyCode"`
	Operator     string              `json:"operator"`
	Rate         decimal.NullDecimal `json:"rate"`
}

func encodeRate(rate atm.CurrencyRate) ([]byte, error) {
	return json.Marshal(rateEntry{
		CurrencyCode: rate.Key(),
		Operator:     string(rate.Operator),
		Rate:         rate.Rate,
	})
}

func decodeRate(data []byte) (atm.CurrencyRate, error) {
	var e rateEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return atm.CurrencyRate{}, err
	}
	return atm.CurrencyRate{
		CurrencyCode: e.CurrencyCode,
		Operator:     atm.Operator(e.Operator),
		Rate:         e.Rate,
	}, nil
}

// RedisRateTable implements cache.RateTable on one Redis hash keyed by currency code.
// Each field is replaced with a single HSET so readers never see half a rate.
type RedisRateTable struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisRateTable creates a RedisRateTable from the redis configuration.
func NewRedisRateTable(cfg *config.Redis, logger *slog.Logger) (*RedisRateTable, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}
	return NewRedisRateTableWithClient(redis.NewClient(opt), cfg.KeyPrefix, logger), nil
}

// NewRedisRateTableWithClient wraps an existing client.
func NewRedisRateTableWithClient(client *redis.Client, prefix string, logger *slog.Logger) *RedisRateTable {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRateTable{client: client, prefix: prefix, logger: logger.With("component", "redis_rate_table")}
}

func (r *RedisRateTable) key(k string) string {
	return r.prefix + k
}

// Ping checks the connection.
func (r *RedisRateTable) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *RedisRateTable) Close() error {
	return r.client.Close()
}

func (r *RedisRateTable) Get(ctx context.Context, code string) (atm.CurrencyRate, bool, error) {
	code = atm.RateKey(code)
	val, err := r.client.HGet(ctx, r.key(ratesKey), code).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis rate miss", "currency", code)
		return atm.CurrencyRate{}, false, nil
	}
	if err != nil {
		r.logger.Error("Redis rate get failed", "currency", code, "error", err)
		return atm.CurrencyRate{}, false, err
	}
	rate, err := decodeRate(val)
	if err != nil {
		r.logger.Error("Redis rate decode failed", "currency", code, "error", err)
		return atm.CurrencyRate{}, false, err
	}
	return rate, true, nil
}

func (r *RedisRateTable) Put(ctx context.Context, rate atm.CurrencyRate) error {
	data, err := encodeRate(rate)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.key(ratesKey), rate.Key(), data)
		p.Set(ctx, r.key(updatedKey), time.Now().UTC().Format(time.RFC3339Nano), 0)
		return nil
	})
	if err != nil {
		r.logger.Error("Redis rate put failed", "currency", rate.Key(), "error", err)
		return err
	}
	r.logger.Debug("Redis rate put", "currency", rate.Key())
	return nil
}

func (r *RedisRateTable) Snapshot(ctx context.Context) (map[string]atm.CurrencyRate, error) {
	fields, err := r.client.HGetAll(ctx, r.key(ratesKey)).Result()
	if err != nil {
		r.logger.Error("Redis rate snapshot failed", "error", err)
		return nil, err
	}
	out := make(map[string]atm.CurrencyRate, len(fields))
	for code, raw := range fields {
		rate, err := decodeRate([]byte(raw))
		if err != nil {
			r.logger.Warn("Redis rate entry skipped", "currency", code, "error", err)
			continue
		}
		out[code] = rate
	}
	return out, nil
}

func (r *RedisRateTable) LastUpdated(ctx context.Context) (time.Time, error) {
	val, err := r.client.Get(ctx, r.key(updatedKey)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, val)
}

var _ cache.RateTable = (*RedisRateTable)(nil)
