package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/estantedev/estante/internal/domain/specification"
	"github.com/estantedev/estante/pkg/pagination"
)

// Sort is a concrete ordering over a whitelisted column.
type Sort struct {
	Column string
	Desc   bool
}

// SearchQuery is the input to Repository.Search. A nil Spec matches
// everything; a nil OrderBy falls back to ascending id so repeated calls
// with identical inputs return identical pages.
type SearchQuery struct {
	Spec     specification.Specification
	OrderBy  *Sort
	Includes []string
	Page     int
	PageSize int
}

// Repository is the per-aggregate persistence gateway. "Not found" on
// reads is a nil result, not an error; RemoveByID, Disable and Activate
// return a typed NotFound error when the id does not resolve. Persistence
// failures are never swallowed here: they propagate so the unit of work
// can roll back.
type Repository[T any] interface {
	// Add stages an insert. Fails with an argument error on a nil entity.
	Add(ctx context.Context, entity *T) error
	// GetByID returns the aggregate or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	// GetByIDNoTracking reads on a detached session so the caller cannot
	// accidentally stage further mutation.
	GetByIDNoTracking(ctx context.Context, id uuid.UUID) (*T, error)
	// Update stages an update of every field.
	Update(ctx context.Context, entity *T) error
	// Remove stages a hard delete of the entity's row.
	Remove(ctx context.Context, entity *T) error
	// RemoveByID stages a hard delete by id.
	RemoveByID(ctx context.Context, id uuid.UUID) error
	// Disable flips the soft-delete flag server-side.
	Disable(ctx context.Context, id uuid.UUID) error
	// Activate clears the soft-delete flag server-side.
	Activate(ctx context.Context, id uuid.UUID) error
	// Exists reports whether any row matches the specification.
	Exists(ctx context.Context, spec specification.Specification) (bool, error)
	// Count counts rows matching the specification; nil counts all.
	Count(ctx context.Context, spec specification.Specification) (int64, error)
	// Find returns all rows matching the specification.
	Find(ctx context.Context, spec specification.Specification) ([]*T, error)
	// GetAll returns every row.
	GetAll(ctx context.Context) ([]*T, error)
	// Search returns one page plus row/page accounting computed before
	// paging is applied.
	Search(ctx context.Context, query SearchQuery) (pagination.PagedResult[*T], error)
}

// BookRepository is the Book persistence gateway.
type BookRepository interface {
	Repository[Book]
}

// GenderRepository is the Gender persistence gateway.
type GenderRepository interface {
	Repository[Gender]
}

// PublisherRepository is the Publisher persistence gateway.
type PublisherRepository interface {
	Repository[Publisher]
}

// UserResolver looks up the acting user before a transaction opens.
// A missing user is a nil result.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
