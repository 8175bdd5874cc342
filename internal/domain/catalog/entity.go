package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/estantedev/estante/internal/domain/events"
)

// Aggregate is the base interface for all aggregates in the catalog domain.
type Aggregate interface {
	GetID() uuid.UUID
	IsValid() bool
	ValidationErrors() []string
	// Events returns a copy of the queued events without draining them.
	Events() []events.Event
	// TakeEvents drains the queued events in emission order. Ownership of
	// the queue is exclusive to the aggregate until the orchestrating
	// handler drains it.
	TakeEvents() []events.Event
}

// Entity provides identity, soft-delete lifecycle, validation state and the
// domain-event queue shared by every persisted catalog aggregate.
type Entity struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	// touch/markDeleted/markActive are the only writers; gorm must not
	// stamp this on insert or the column stops meaning "last mutation".
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;default:false;index"`

	// gorm and encoding/json both skip unexported fields, so validation
	// state and queued events never leak into the database or payloads.
	errs   []string
	events []events.Event
}

// NewEntity creates a base entity with a fresh id and creation timestamp.
func NewEntity() Entity {
	return Entity{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// GetID returns the aggregate's id.
func (e *Entity) GetID() uuid.UUID {
	return e.ID
}

// IsValid reports whether the last Validate pass produced no errors.
func (e *Entity) IsValid() bool {
	return len(e.errs) == 0
}

// ValidationErrors returns the messages produced by the last Validate pass.
func (e *Entity) ValidationErrors() []string {
	out := make([]string, len(e.errs))
	copy(out, e.errs)
	return out
}

// Events returns a copy of the queued events without draining them.
func (e *Entity) Events() []events.Event {
	out := make([]events.Event, len(e.events))
	copy(out, e.events)
	return out
}

// TakeEvents drains the queued events in emission order.
func (e *Entity) TakeEvents() []events.Event {
	out := e.events
	e.events = nil
	return out
}

// record appends a domain event to the queue.
func (e *Entity) record(event events.Event) {
	e.events = append(e.events, event)
}

// fail appends a validation message.
func (e *Entity) fail(message string) {
	e.errs = append(e.errs, message)
}

// resetValidation clears the error list before a Validate pass recomputes it.
func (e *Entity) resetValidation() {
	e.errs = nil
}

// touch marks the entity as mutated.
func (e *Entity) touch() {
	now := time.Now()
	e.UpdatedAt = &now
}

// markDeleted flips the entity into the disabled/deleted state.
func (e *Entity) markDeleted() {
	now := time.Now()
	e.IsDeleted = true
	e.DeletedAt = &now
	e.UpdatedAt = &now
}

// markActive flips the entity back into the active state. Idempotent: an
// already-active entity keeps IsDeleted=false and a nil DeletedAt.
func (e *Entity) markActive() {
	now := time.Now()
	e.IsDeleted = false
	e.DeletedAt = nil
	e.UpdatedAt = &now
}

// validateEntity checks the invariants shared by every aggregate.
func (e *Entity) validateEntity() {
	if e.ID == uuid.Nil {
		e.fail("id é obrigatório")
	}
	if !timestampInRange(e.CreatedAt) {
		e.fail("data de criação inválida")
	}
	if e.UpdatedAt != nil && !timestampInRange(*e.UpdatedAt) {
		e.fail("data de atualização inválida")
	}
	if e.DeletedAt != nil && !timestampInRange(*e.DeletedAt) {
		e.fail("data de exclusão inválida")
	}
}
