package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event raised by an aggregate.
type Event interface {
	ID() uuid.UUID
	AggregateID() uuid.UUID
	AggregateType() string
	EventType() string
	OccurredAt() time.Time
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	id            uuid.UUID
	aggregateID   uuid.UUID
	aggregateType string
	eventType     string
	occurredAt    time.Time
}

// NewBaseEvent creates a new base event
func NewBaseEvent(aggregateID uuid.UUID, aggregateType, eventType string) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		eventType:     eventType,
		occurredAt:    time.Now(),
	}
}

// ID returns the event ID
func (e BaseEvent) ID() uuid.UUID {
	return e.id
}

// AggregateID returns the aggregate ID
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.aggregateID
}

// AggregateType returns the aggregate type
func (e BaseEvent) AggregateType() string {
	return e.aggregateType
}

// EventType returns the event type
func (e BaseEvent) EventType() string {
	return e.eventType
}

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}
