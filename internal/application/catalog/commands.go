package catalog

import (
	"io"

	"github.com/google/uuid"
)

// CreateBookCommand creates a new book.
type CreateBookCommand struct {
	Title       string
	Author      string
	ISBN        string
	Synopsis    string
	GenderID    uuid.UUID
	PublisherID uuid.UUID
}

// UpdateBookCommand replaces a book's fields.
type UpdateBookCommand struct {
	BookID      uuid.UUID
	Title       string
	Author      string
	ISBN        string
	Synopsis    string
	GenderID    uuid.UUID
	PublisherID uuid.UUID
}

// DeletesBookCommand soft-deletes a batch of books recording the acting
// user. The batch is atomic: one transaction for every id.
type DeletesBookCommand struct {
	BookIDs []uuid.UUID
	UserID  uuid.UUID
}

// AtivesBookCommand reactivates a batch of soft-deleted books.
type AtivesBookCommand struct {
	BookIDs []uuid.UUID
}

// DisablesBookCommand soft-disables a batch of books.
type DisablesBookCommand struct {
	BookIDs []uuid.UUID
}

// UploadBookCoverCommand stores a cover image and records it on the book.
type UploadBookCoverCommand struct {
	BookID   uuid.UUID
	FileName string
	Content  io.Reader
}

// CreateGenderCommand creates a new gender.
type CreateGenderCommand struct {
	Name        string
	Description string
}

// UpdateGenderCommand replaces a gender's fields.
type UpdateGenderCommand struct {
	GenderID    uuid.UUID
	Name        string
	Description string
}

// DeleteGenderCommand soft-deletes a gender recording the acting user.
type DeleteGenderCommand struct {
	GenderID uuid.UUID
	UserID   uuid.UUID
}

// AtiveGenderCommand reactivates a soft-deleted gender.
type AtiveGenderCommand struct {
	GenderID uuid.UUID
}

// DisableGenderCommand soft-disables a gender.
type DisableGenderCommand struct {
	GenderID uuid.UUID
}

// CreatePublisherCommand creates a new publisher.
type CreatePublisherCommand struct {
	Name        string
	Description string
}

// UpdatePublisherCommand replaces a publisher's fields.
type UpdatePublisherCommand struct {
	PublisherID uuid.UUID
	Name        string
	Description string
}

// DeletePublisherCommand soft-deletes a publisher recording the acting user.
type DeletePublisherCommand struct {
	PublisherID uuid.UUID
	UserID      uuid.UUID
}

// AtivePublisherCommand reactivates a soft-deleted publisher.
type AtivePublisherCommand struct {
	PublisherID uuid.UUID
}

// DisablePublisherCommand soft-disables a publisher.
type DisablePublisherCommand struct {
	PublisherID uuid.UUID
}
