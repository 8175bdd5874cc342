package catalog

import (
	"github.com/google/uuid"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// Gender is a book genre ("gênero literário").
type Gender struct {
	Entity

	Name        string `json:"name" gorm:"not null;index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// TableName sets the genders table name.
func (Gender) TableName() string {
	return "genders"
}

// NewGender creates a Gender in the active state, queues a created event
// and runs validation.
func NewGender(name, description string) *Gender {
	gender := &Gender{
		Entity:      NewEntity(),
		Name:        name,
		Description: description,
	}
	gender.record(NewGenderCreated(gender))
	gender.Validate()
	return gender
}

// Update replaces the gender's fields, queues an updated event and re-runs
// validation.
func (g *Gender) Update(name, description string) {
	g.Name = name
	g.Description = description
	g.touch()
	g.record(NewGenderUpdated(g))
	g.Validate()
}

// Disabled soft-deletes the gender.
func (g *Gender) Disabled() {
	g.markDeleted()
	g.record(NewGenderDisabled(g))
}

// Activate reverses a soft delete.
func (g *Gender) Activate() {
	g.markActive()
	g.record(NewGenderActivated(g))
}

// Delete soft-deletes the gender recording the acting user.
func (g *Gender) Delete(actorID uuid.UUID, actorName string) {
	g.markDeleted()
	g.record(NewGenderDeleted(g, actorID, actorName))
}

// Validate recomputes the error list from scratch.
func (g *Gender) Validate() {
	g.resetValidation()
	g.validateEntity()

	if isBlank(g.Name) {
		g.fail("nome é obrigatório")
	} else if len(g.Name) > maxNameLength {
		g.fail("nome deve ter no máximo 100 caracteres")
	}

	if len(g.Description) > maxDescriptionLength {
		g.fail("descrição deve ter no máximo 500 caracteres")
	}
}
