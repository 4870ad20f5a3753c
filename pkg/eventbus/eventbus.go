package eventbus

import "context"

// Event is anything that can travel on a bus.
type Event interface {
	Type() string
}

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus defines the contract for publishing events and registering handlers.
type Bus interface {
	Emit(ctx context.Context, event Event) error
	Register(eventType string, handler HandlerFunc)
}
