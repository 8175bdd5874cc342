package catalog

import (
	"github.com/google/uuid"

	"github.com/estantedev/estante/internal/domain/events"
)

// Aggregate types
const (
	AggregateTypeBook      = "book"
	AggregateTypeGender    = "gender"
	AggregateTypePublisher = "publisher"
)

// Event types
const (
	EventBookCreated      = "book.created"
	EventBookUpdated      = "book.updated"
	EventBookCoverUpdated = "book.cover_updated"
	EventBookDisabled     = "book.disabled"
	EventBookActivated    = "book.activated"
	EventBookDeleted      = "book.deleted"

	EventGenderCreated   = "gender.created"
	EventGenderUpdated   = "gender.updated"
	EventGenderDisabled  = "gender.disabled"
	EventGenderActivated = "gender.activated"
	EventGenderDeleted   = "gender.deleted"

	EventPublisherCreated   = "publisher.created"
	EventPublisherUpdated   = "publisher.updated"
	EventPublisherDisabled  = "publisher.disabled"
	EventPublisherActivated = "publisher.activated"
	EventPublisherDeleted   = "publisher.deleted"
)

// BookEvent carries the book's post-mutation state.
type BookEvent struct {
	events.BaseEvent
	Book *Book `json:"book"`
}

func newBookEvent(book *Book, eventType string) BookEvent {
	return BookEvent{
		BaseEvent: events.NewBaseEvent(book.ID, AggregateTypeBook, eventType),
		Book:      book,
	}
}

// BookDeletedEvent additionally records the acting user.
type BookDeletedEvent struct {
	BookEvent
	ActorID   uuid.UUID `json:"actor_id"`
	ActorName string    `json:"actor_name"`
}

// NewBookCreated creates a book.created event.
func NewBookCreated(book *Book) BookEvent { return newBookEvent(book, EventBookCreated) }

// NewBookUpdated creates a book.updated event.
func NewBookUpdated(book *Book) BookEvent { return newBookEvent(book, EventBookUpdated) }

// NewBookCoverUpdated creates a book.cover_updated event.
func NewBookCoverUpdated(book *Book) BookEvent { return newBookEvent(book, EventBookCoverUpdated) }

// NewBookDisabled creates a book.disabled event.
func NewBookDisabled(book *Book) BookEvent { return newBookEvent(book, EventBookDisabled) }

// NewBookActivated creates a book.activated event.
func NewBookActivated(book *Book) BookEvent { return newBookEvent(book, EventBookActivated) }

// NewBookDeleted creates a book.deleted event recording the acting user.
func NewBookDeleted(book *Book, actorID uuid.UUID, actorName string) BookDeletedEvent {
	return BookDeletedEvent{
		BookEvent: newBookEvent(book, EventBookDeleted),
		ActorID:   actorID,
		ActorName: actorName,
	}
}

// GenderEvent carries the gender's post-mutation state.
type GenderEvent struct {
	events.BaseEvent
	Gender *Gender `json:"gender"`
}

func newGenderEvent(gender *Gender, eventType string) GenderEvent {
	return GenderEvent{
		BaseEvent: events.NewBaseEvent(gender.ID, AggregateTypeGender, eventType),
		Gender:    gender,
	}
}

// GenderDeletedEvent additionally records the acting user.
type GenderDeletedEvent struct {
	GenderEvent
	ActorID   uuid.UUID `json:"actor_id"`
	ActorName string    `json:"actor_name"`
}

// NewGenderCreated creates a gender.created event.
func NewGenderCreated(gender *Gender) GenderEvent { return newGenderEvent(gender, EventGenderCreated) }

// NewGenderUpdated creates a gender.updated event.
func NewGenderUpdated(gender *Gender) GenderEvent { return newGenderEvent(gender, EventGenderUpdated) }

// NewGenderDisabled creates a gender.disabled event.
func NewGenderDisabled(gender *Gender) GenderEvent {
	return newGenderEvent(gender, EventGenderDisabled)
}

// NewGenderActivated creates a gender.activated event.
func NewGenderActivated(gender *Gender) GenderEvent {
	return newGenderEvent(gender, EventGenderActivated)
}

// NewGenderDeleted creates a gender.deleted event recording the acting user.
func NewGenderDeleted(gender *Gender, actorID uuid.UUID, actorName string) GenderDeletedEvent {
	return GenderDeletedEvent{
		GenderEvent: newGenderEvent(gender, EventGenderDeleted),
		ActorID:     actorID,
		ActorName:   actorName,
	}
}

// PublisherEvent carries the publisher's post-mutation state.
type PublisherEvent struct {
	events.BaseEvent
	Publisher *Publisher `json:"publisher"`
}

func newPublisherEvent(publisher *Publisher, eventType string) PublisherEvent {
	return PublisherEvent{
		BaseEvent: events.NewBaseEvent(publisher.ID, AggregateTypePublisher, eventType),
		Publisher: publisher,
	}
}

// PublisherDeletedEvent additionally records the acting user.
type PublisherDeletedEvent struct {
	PublisherEvent
	ActorID   uuid.UUID `json:"actor_id"`
	ActorName string    `json:"actor_name"`
}

// NewPublisherCreated creates a publisher.created event.
func NewPublisherCreated(publisher *Publisher) PublisherEvent {
	return newPublisherEvent(publisher, EventPublisherCreated)
}

// NewPublisherUpdated creates a publisher.updated event.
func NewPublisherUpdated(publisher *Publisher) PublisherEvent {
	return newPublisherEvent(publisher, EventPublisherUpdated)
}

// NewPublisherDisabled creates a publisher.disabled event.
func NewPublisherDisabled(publisher *Publisher) PublisherEvent {
	return newPublisherEvent(publisher, EventPublisherDisabled)
}

// NewPublisherActivated creates a publisher.activated event.
func NewPublisherActivated(publisher *Publisher) PublisherEvent {
	return newPublisherEvent(publisher, EventPublisherActivated)
}

// NewPublisherDeleted creates a publisher.deleted event recording the acting user.
func NewPublisherDeleted(publisher *Publisher, actorID uuid.UUID, actorName string) PublisherDeletedEvent {
	return PublisherDeletedEvent{
		PublisherEvent: newPublisherEvent(publisher, EventPublisherDeleted),
		ActorID:        actorID,
		ActorName:      actorName,
	}
}
