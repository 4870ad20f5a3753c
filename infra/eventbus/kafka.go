package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// messageWriter is the part of *kafka.Writer the bus uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventBus publishes every event to one topic as a JSON envelope.
// Handlers registered on it run in-process after a successful publish.
type KafkaEventBus struct {
	writer       messageWriter
	topic        string
	writeTimeout time.Duration
	logger       *slog.Logger

	handlers    map[string][]eventbus.HandlerFunc
	handlersMtx sync.RWMutex
}

// NewWithKafka creates a Kafka-backed event bus from the event bus configuration.
func NewWithKafka(cfg *config.EventBus, logger *slog.Logger) (*KafkaEventBus, error) {
	if cfg == nil {
		return nil, errors.New("kafka event bus: configuration is required")
	}
	brokers := parseBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, errors.New("kafka event bus: brokers are required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("kafka event bus: topic is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}
	bus := newKafkaBus(writer, cfg.Topic, cfg.WriteTimeout, logger)
	bus.logger.Info("Kafka event bus initialized", "brokers", brokers, "topic", cfg.Topic)
	return bus, nil
}

func newKafkaBus(w messageWriter, topic string, timeout time.Duration, logger *slog.Logger) *KafkaEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaEventBus{
		writer:       w,
		topic:        topic,
		writeTimeout: timeout,
		logger:       logger.With("bus", "kafka"),
		handlers:     make(map[string][]eventbus.HandlerFunc),
	}
}

// Close flushes and closes the writer.
func (b *KafkaEventBus) Close() error {
	if b == nil || b.writer == nil {
		return nil
	}
	return b.writer.Close()
}

// Register registers an in-process handler for a specific event type.
func (b *KafkaEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.handlersMtx.Lock()
	defer b.handlersMtx.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes the event and then runs the local handlers of its type.
func (b *KafkaEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	if b == nil || b.writer == nil {
		return errors.New("kafka event bus: writer not initialized")
	}
	value, err := buildEnvelope(event)
	if err != nil {
		return err
	}
	if b.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.writeTimeout)
		defer cancel()
	}
	msg := kafka.Message{
		Key:   []byte(messageKey(event)),
		Value: value,
		Time:  time.Now(),
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}

	b.handlersMtx.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[event.Type()]...)
	b.handlersMtx.RUnlock()
	for _, handler := range handlers {
		dispatch(ctx, b.logger, handler, event)
	}
	return nil
}

// messageKey keeps the events of one ATM on one partition.
func messageKey(event eventbus.Event) string {
	if w, ok := event.(*events.WithdrawalDispensed); ok {
		return strconv.FormatInt(w.AtmID, 10)
	}
	return event.Type()
}

func buildEnvelope(event eventbus.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("kafka event bus: marshal failed: %w", err)
	}
	out, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return nil, fmt.Errorf("kafka event bus: envelope marshal failed: %w", err)
	}
	return out, nil
}

func parseBrokers(brokers []string) []string {
	out := make([]string, 0, len(brokers))
	for _, b := range brokers {
		for _, p := range strings.Split(b, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
