package events

import "context"

// Handler handles domain events in-process.
type Handler interface {
	// HandleEvent processes a domain event synchronously
	HandleEvent(ctx context.Context, event Event) error
	// CanHandle returns true if this handler can process the given event type
	CanHandle(eventType string) bool
}

// Dispatcher dispatches domain events to registered handlers. Command
// handlers drain an aggregate's queued events after commit and dispatch
// them in emission order.
type Dispatcher interface {
	// RegisterHandler registers a handler for specific event types
	RegisterHandler(handler Handler, eventTypes ...string)
	// Dispatch synchronously dispatches an event to all registered handlers
	Dispatch(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to the Handler interface for a fixed set
// of event types.
type HandlerFunc struct {
	eventTypes map[string]bool
	fn         func(ctx context.Context, event Event) error
}

// NewHandlerFunc creates a Handler from a function.
func NewHandlerFunc(fn func(ctx context.Context, event Event) error, eventTypes ...string) Handler {
	types := make(map[string]bool, len(eventTypes))
	for _, et := range eventTypes {
		types[et] = true
	}
	return &HandlerFunc{eventTypes: types, fn: fn}
}

// HandleEvent processes a domain event.
func (h *HandlerFunc) HandleEvent(ctx context.Context, event Event) error {
	return h.fn(ctx, event)
}

// CanHandle returns true if this handler can process the given event type.
func (h *HandlerFunc) CanHandle(eventType string) bool {
	return h.eventTypes[eventType]
}
