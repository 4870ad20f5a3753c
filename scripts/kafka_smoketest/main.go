package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	infra_eventbus "github.com/amirasaad/atm/infra/eventbus"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// RunSmokeTest publishes one withdrawal event through the kafka event bus
// and reads it back from the configured topic.
func RunSmokeTest() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	bus, err := infra_eventbus.NewWithKafka(cfg.EventBus, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), config.GetEnvAsDuration("SMOKETEST_TIMEOUT", 30*time.Second))
	defer cancel()

	sent := &events.WithdrawalDispensed{
		ID:            uuid.New(),
		TraceID:       "smoketest",
		ClientID:      1,
		AtmID:         1,
		AccountNumber: "0000000000",
		Amount:        decimal.NewFromInt(10),
		Timestamp:     time.Now().UTC(),
	}
	if err := bus.Emit(ctx, sent); err != nil {
		logger.Error("produce failed", "topic", cfg.EventBus.Topic, "error", err)
		return err
	}
	logger.Info("produced", "topic", cfg.EventBus.Topic, "event_id", sent.ID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.EventBus.Brokers,
		GroupID:     "atm-smoketest-" + sent.ID.String(),
		Topic:       cfg.EventBus.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer func() { _ = r.Close() }()

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			logger.Error("fetch failed", "topic", cfg.EventBus.Topic, "error", err)
			return err
		}
		var env struct {
			Type    string                     `json:"type"`
			Payload events.WithdrawalDispensed `json:"payload"`
		}
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		_ = r.CommitMessages(ctx, msg)
		if env.Payload.ID == sent.ID {
			logger.Info("consumed", "topic", msg.Topic, "type", env.Type, "key", string(msg.Key))
			break
		}
	}

	logger.Info("kafka smoke test passed")
	return nil
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	if err := RunSmokeTest(); err != nil {
		os.Exit(1)
	}
}
