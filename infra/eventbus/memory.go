package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/atm/pkg/eventbus"
)

// MemoryEventBus dispatches events synchronously to the handlers registered in-process.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []eventbus.Event
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryEventBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit records the event and runs every handler of its type.
// Handler failures are logged; they never fail the emitter.
func (b *MemoryEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	b.mu.Lock()
	b.published = append(b.published, event)
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[event.Type()]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		dispatch(ctx, b.logger, handler, event)
	}
	return nil
}

// Published returns the events emitted so far.
func (b *MemoryEventBus) Published() []eventbus.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]eventbus.Event(nil), b.published...)
}

// ClearPublished forgets the recorded events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

func dispatch(ctx context.Context, logger *slog.Logger, handler eventbus.HandlerFunc, event eventbus.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered in event handler", "type", event.Type(), "panic", r)
		}
	}()
	if err := handler(ctx, event); err != nil {
		logger.Error("failed to process event", "type", event.Type(), "error", err)
	}
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)

// NoopEventBus drops every event.
type NoopEventBus struct{}

func (NoopEventBus) Emit(context.Context, eventbus.Event) error { return nil }

func (NoopEventBus) Register(string, eventbus.HandlerFunc) {}

var _ eventbus.Bus = NoopEventBus{}
