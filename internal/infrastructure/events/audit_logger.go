package events

import (
	"context"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	"github.com/estantedev/estante/pkg/interfaces"
)

// AuditLogger records every catalog mutation in the structured log,
// including the acting user on deletions.
type AuditLogger struct {
	logger interfaces.Logger
}

// NewAuditLogger creates the audit handler.
func NewAuditLogger(logger interfaces.Logger) *AuditLogger {
	return &AuditLogger{logger: logger.WithFields(interfaces.String("component", "audit"))}
}

// Register subscribes the audit handler to every mutation event type.
func (a *AuditLogger) Register(dispatcher events.Dispatcher) {
	dispatcher.RegisterHandler(a, MutationEventTypes...)
}

// HandleEvent logs the mutation.
func (a *AuditLogger) HandleEvent(ctx context.Context, event events.Event) error {
	fields := []interfaces.Field{
		interfaces.String("event_type", event.EventType()),
		interfaces.String("aggregate_type", event.AggregateType()),
		interfaces.String("aggregate_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case catalog.BookDeletedEvent:
		fields = append(fields,
			interfaces.String("actor_id", e.ActorID.String()),
			interfaces.String("actor_name", e.ActorName))
	case catalog.GenderDeletedEvent:
		fields = append(fields,
			interfaces.String("actor_id", e.ActorID.String()),
			interfaces.String("actor_name", e.ActorName))
	case catalog.PublisherDeletedEvent:
		fields = append(fields,
			interfaces.String("actor_id", e.ActorID.String()),
			interfaces.String("actor_name", e.ActorName))
	}

	a.logger.WithContext(ctx).Info("catalog mutation", fields...)
	return nil
}

// CanHandle reports whether the event type mutates aggregate state.
func (a *AuditLogger) CanHandle(eventType string) bool {
	for _, et := range MutationEventTypes {
		if et == eventType {
			return true
		}
	}
	return false
}
