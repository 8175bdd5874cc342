package catalog

import (
	"github.com/google/uuid"
)

const (
	maxTitleLength    = 150
	maxAuthorLength   = 100
	maxSynopsisLength = 5000
)

// Book is the catalog's central aggregate. Every mutation is side-effect
// free on storage: it flips in-memory state, queues exactly one domain
// event and re-runs validation.
type Book struct {
	Entity

	Title       string    `json:"title" gorm:"not null;index"`
	Author      string    `json:"author" gorm:"not null;index"`
	ISBN        string    `json:"isbn" gorm:"type:varchar(17);not null;index"`
	Synopsis    string    `json:"synopsis,omitempty" gorm:"type:text"`
	GenderID    uuid.UUID `json:"gender_id" gorm:"type:uuid;not null;index"`
	PublisherID uuid.UUID `json:"publisher_id" gorm:"type:uuid;not null;index"`
	CoverPath   string    `json:"cover_path,omitempty"`
	CoverName   string    `json:"cover_name,omitempty"`
}

// TableName sets the books table name.
func (Book) TableName() string {
	return "books"
}

// NewBook creates a Book in the active state, queues a created event and
// runs validation. Callers must check IsValid before persisting.
func NewBook(title, author, isbn, synopsis string, genderID, publisherID uuid.UUID) *Book {
	book := &Book{
		Entity:      NewEntity(),
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		Synopsis:    synopsis,
		GenderID:    genderID,
		PublisherID: publisherID,
	}
	book.record(NewBookCreated(book))
	book.Validate()
	return book
}

// Update replaces the book's fields, queues an updated event and re-runs
// validation.
func (b *Book) Update(title, author, isbn, synopsis string, genderID, publisherID uuid.UUID) {
	b.Title = title
	b.Author = author
	b.ISBN = isbn
	b.Synopsis = synopsis
	b.GenderID = genderID
	b.PublisherID = publisherID
	b.touch()
	b.record(NewBookUpdated(b))
	b.Validate()
}

// SetCover records where the book's cover image was stored.
func (b *Book) SetCover(path, storedName string) {
	b.CoverPath = path
	b.CoverName = storedName
	b.touch()
	b.record(NewBookCoverUpdated(b))
}

// Disabled soft-deletes the book.
func (b *Book) Disabled() {
	b.markDeleted()
	b.record(NewBookDisabled(b))
}

// Activate reverses a soft delete. Calling it on an active book keeps
// IsDeleted false and DeletedAt nil.
func (b *Book) Activate() {
	b.markActive()
	b.record(NewBookActivated(b))
}

// Delete soft-deletes the book recording the acting user. It is a distinct
// transition from Disabled: same state flip, different event.
func (b *Book) Delete(actorID uuid.UUID, actorName string) {
	b.markDeleted()
	b.record(NewBookDeleted(b, actorID, actorName))
}

// Validate recomputes the error list from scratch.
func (b *Book) Validate() {
	b.resetValidation()
	b.validateEntity()

	if isBlank(b.Title) {
		b.fail("título é obrigatório")
	} else if len(b.Title) > maxTitleLength {
		b.fail("título deve ter no máximo 150 caracteres")
	}

	if isBlank(b.Author) {
		b.fail("autor é obrigatório")
	} else if len(b.Author) > maxAuthorLength {
		b.fail("autor deve ter no máximo 100 caracteres")
	}

	if isBlank(b.ISBN) {
		b.fail("isbn é obrigatório")
	} else if !isValidISBN(b.ISBN) {
		b.fail("isbn inválido")
	}

	if len(b.Synopsis) > maxSynopsisLength {
		b.fail("sinopse deve ter no máximo 5000 caracteres")
	}

	if b.GenderID == uuid.Nil {
		b.fail("gênero é obrigatório")
	}
	if b.PublisherID == uuid.Nil {
		b.fail("editora é obrigatória")
	}
}
