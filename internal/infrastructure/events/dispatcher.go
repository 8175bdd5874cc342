package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/estantedev/estante/internal/domain/events"
)

// InMemoryDispatcher dispatches domain events synchronously in-process.
type InMemoryDispatcher struct {
	handlers map[string][]events.Handler
	mu       sync.RWMutex
}

// NewInMemoryDispatcher creates a new in-memory dispatcher.
func NewInMemoryDispatcher() *InMemoryDispatcher {
	return &InMemoryDispatcher{
		handlers: make(map[string][]events.Handler),
	}
}

// RegisterHandler registers a handler for specific event types.
func (d *InMemoryDispatcher) RegisterHandler(handler events.Handler, eventTypes ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, eventType := range eventTypes {
		d.handlers[eventType] = append(d.handlers[eventType], handler)
	}
}

// Dispatch synchronously invokes all registered handlers for the event's
// type, stopping at the first handler failure.
func (d *InMemoryDispatcher) Dispatch(ctx context.Context, event events.Event) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventType()]
	d.mu.RUnlock()

	for _, handler := range handlers {
		if !handler.CanHandle(event.EventType()) {
			continue
		}
		if err := handler.HandleEvent(ctx, event); err != nil {
			return fmt.Errorf("handler error for event %s: %w", event.EventType(), err)
		}
	}
	return nil
}
