package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/pkg/pagination"
)

// GetBookQuery fetches one book by id.
type GetBookQuery struct {
	BookID uuid.UUID
}

// GetBookCoverQuery fetches a book's stored cover image.
type GetBookCoverQuery struct {
	BookID uuid.UUID
}

// GetGenderQuery fetches one gender by id.
type GetGenderQuery struct {
	GenderID uuid.UUID
}

// GetPublisherQuery fetches one publisher by id.
type GetPublisherQuery struct {
	PublisherID uuid.UUID
}

// SearchBooksQuery drives the paginated book search. Filter matches every
// free-text field; empty or whitespace filter fields add no clause.
type SearchBooksQuery struct {
	Filter      string
	Title       string
	Author      string
	ISBN        string
	ID          *uuid.UUID
	GenderID    *uuid.UUID
	PublisherID *uuid.UUID
	IsDeleted   *bool
	CreatedAt   *time.Time
	Order       string
	Page        int
	PageSize    int
}

// SearchGendersQuery drives the paginated gender search.
type SearchGendersQuery struct {
	Filter      string
	Name        string
	Description string
	ID          *uuid.UUID
	IsDeleted   *bool
	CreatedAt   *time.Time
	Order       string
	Page        int
	PageSize    int
}

// SearchPublishersQuery drives the paginated publisher search.
type SearchPublishersQuery struct {
	Filter      string
	Name        string
	Description string
	ID          *uuid.UUID
	IsDeleted   *bool
	CreatedAt   *time.Time
	Order       string
	Page        int
	PageSize    int
}

// BookView is the flat output record projected from a Book aggregate.
type BookView struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn"`
	Synopsis    string     `json:"synopsis,omitempty"`
	GenderID    uuid.UUID  `json:"gender_id"`
	PublisherID uuid.UUID  `json:"publisher_id"`
	CoverPath   string     `json:"cover_path,omitempty"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// GenderView is the flat output record projected from a Gender aggregate.
type GenderView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// PublisherView is the flat output record projected from a Publisher
// aggregate.
type PublisherView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsDeleted   bool       `json:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CoverView carries a stored cover image back to the caller.
type CoverView struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
}

func newBookView(book *catalog.Book) BookView {
	return BookView{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		ISBN:        book.ISBN,
		Synopsis:    book.Synopsis,
		GenderID:    book.GenderID,
		PublisherID: book.PublisherID,
		CoverPath:   book.CoverPath,
		IsDeleted:   book.IsDeleted,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

func newGenderView(gender *catalog.Gender) GenderView {
	return GenderView{
		ID:          gender.ID,
		Name:        gender.Name,
		Description: gender.Description,
		IsDeleted:   gender.IsDeleted,
		CreatedAt:   gender.CreatedAt,
		UpdatedAt:   gender.UpdatedAt,
	}
}

func newPublisherView(publisher *catalog.Publisher) PublisherView {
	return PublisherView{
		ID:          publisher.ID,
		Name:        publisher.Name,
		Description: publisher.Description,
		IsDeleted:   publisher.IsDeleted,
		CreatedAt:   publisher.CreatedAt,
		UpdatedAt:   publisher.UpdatedAt,
	}
}

func projectPage[T any, V any](page pagination.PagedResult[*T], project func(*T) V) pagination.PagedResult[V] {
	views := make([]V, 0, len(page.Data))
	for _, item := range page.Data {
		views = append(views, project(item))
	}
	return pagination.PagedResult[V]{
		Data:        views,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		RowCount:    page.RowCount,
		PageCount:   page.PageCount,
	}
}
