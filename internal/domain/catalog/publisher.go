package catalog

import (
	"github.com/google/uuid"
)

// Publisher is a book publisher ("editora").
type Publisher struct {
	Entity

	Name        string `json:"name" gorm:"not null;index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// TableName sets the publishers table name.
func (Publisher) TableName() string {
	return "publishers"
}

// NewPublisher creates a Publisher in the active state, queues a created
// event and runs validation.
func NewPublisher(name, description string) *Publisher {
	publisher := &Publisher{
		Entity:      NewEntity(),
		Name:        name,
		Description: description,
	}
	publisher.record(NewPublisherCreated(publisher))
	publisher.Validate()
	return publisher
}

// Update replaces the publisher's fields, queues an updated event and
// re-runs validation.
func (p *Publisher) Update(name, description string) {
	p.Name = name
	p.Description = description
	p.touch()
	p.record(NewPublisherUpdated(p))
	p.Validate()
}

// Disabled soft-deletes the publisher.
func (p *Publisher) Disabled() {
	p.markDeleted()
	p.record(NewPublisherDisabled(p))
}

// Activate reverses a soft delete.
func (p *Publisher) Activate() {
	p.markActive()
	p.record(NewPublisherActivated(p))
}

// Delete soft-deletes the publisher recording the acting user.
func (p *Publisher) Delete(actorID uuid.UUID, actorName string) {
	p.markDeleted()
	p.record(NewPublisherDeleted(p, actorID, actorName))
}

// Validate recomputes the error list from scratch.
func (p *Publisher) Validate() {
	p.resetValidation()
	p.validateEntity()

	if isBlank(p.Name) {
		p.fail("nome é obrigatório")
	} else if len(p.Name) > maxNameLength {
		p.fail("nome deve ter no máximo 100 caracteres")
	}

	if len(p.Description) > maxDescriptionLength {
		p.fail("descrição deve ter no máximo 500 caracteres")
	}
}
