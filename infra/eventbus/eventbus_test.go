package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Message string `json:"message"`
}

func (e *testEvent) Type() string { return "test.event" }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryEventBus(t *testing.T) {
	bus := NewWithMemory(discard())
	var got []string
	bus.Register("test.event", func(_ context.Context, e eventbus.Event) error {
		got = append(got, e.(*testEvent).Message)
		return nil
	})
	bus.Register("test.event", func(context.Context, eventbus.Event) error {
		return errors.New("handler failed")
	})
	bus.Register("test.event", func(context.Context, eventbus.Event) error {
		panic("boom")
	})

	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "hello"}))
	require.NoError(t, bus.Emit(context.Background(), &events.RatesRefreshed{Loaded: 1}))

	assert.Equal(t, []string{"hello"}, got)
	assert.Len(t, bus.Published(), 2)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestNoopEventBus(t *testing.T) {
	var bus eventbus.Bus = NoopEventBus{}
	bus.Register("test.event", func(context.Context, eventbus.Event) error {
		t.Fatal("noop bus ran a handler")
		return nil
	})
	assert.NoError(t, bus.Emit(context.Background(), &testEvent{}))
}

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	deadline bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, w.deadline = ctx.Deadline()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaEventBus_Emit(t *testing.T) {
	w := &fakeWriter{}
	bus := newKafkaBus(w, "atm.withdrawals", time.Second, discard())
	handled := 0
	bus.Register(events.EventTypeWithdrawalDispensed.String(), func(context.Context, eventbus.Event) error {
		handled++
		return nil
	})

	err := bus.Emit(context.Background(), &events.WithdrawalDispensed{AtmID: 7, AccountNumber: "4000"})
	require.NoError(t, err)
	require.NoError(t, bus.Emit(context.Background(), &testEvent{Message: "x"}))

	require.Len(t, w.messages, 2)
	assert.True(t, w.deadline)
	assert.Equal(t, "7", string(w.messages[0].Key))
	assert.Equal(t, "test.event", string(w.messages[1].Key))
	assert.Equal(t, 1, handled)

	var env envelope
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &env))
	assert.Equal(t, events.EventTypeWithdrawalDispensed.String(), env.Type)
	var payload events.WithdrawalDispensed
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, int64(7), payload.AtmID)
	assert.Equal(t, "4000", payload.AccountNumber)
}

func TestKafkaEventBus_EmitFailure(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	bus := newKafkaBus(w, "atm.withdrawals", 0, discard())
	bus.Register("test.event", func(context.Context, eventbus.Event) error {
		t.Fatal("handler ran after failed publish")
		return nil
	})

	err := bus.Emit(context.Background(), &testEvent{})
	assert.ErrorContains(t, err, "broker down")
	assert.False(t, w.deadline)
}

func TestNewWithKafka_Validation(t *testing.T) {
	_, err := NewWithKafka(nil, discard())
	assert.Error(t, err)

	_, err = NewWithKafka(&config.EventBus{Brokers: []string{" "}, Topic: "t"}, discard())
	assert.ErrorContains(t, err, "brokers")

	_, err = NewWithKafka(&config.EventBus{Brokers: []string{"localhost:9092"}}, discard())
	assert.ErrorContains(t, err, "topic")

	bus, err := NewWithKafka(&config.EventBus{Brokers: []string{"localhost:9092"}, Topic: "atm.withdrawals"}, discard())
	require.NoError(t, err)
	assert.NoError(t, bus.Close())
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2", "c:3"}, parseBrokers([]string{"a:1, b:2", "", "c:3"}))
}
