package catalog

import (
	"context"
	"errors"
	"io"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
)

// Unit of Work state errors. The unit of work enforces its state machine
// strictly: Idle -> TransactionOpen -> (Committed | RolledBack) -> Idle.
var (
	ErrTransactionOpen = errors.New("a transaction is already open")
	ErrNoTransaction   = errors.New("no open transaction")
)

// RepositoryFactory lazily constructs and caches one repository per
// aggregate type, all bound to the same underlying session.
type RepositoryFactory interface {
	Books() catalog.BookRepository
	Genders() catalog.GenderRepository
	Publishers() catalog.PublisherRepository
}

// UnitOfWork owns the transaction lifecycle for one business operation.
// Instances are request-scoped and must not be shared across concurrent
// requests.
type UnitOfWork interface {
	// BeginTransaction opens a transaction; fails with ErrTransactionOpen
	// if one is already open.
	BeginTransaction(ctx context.Context) error
	// Commit flushes and commits; if the commit itself fails the unit of
	// work rolls back before propagating, so commit is all-or-nothing.
	Commit(ctx context.Context) error
	// Rollback reverts all staged changes; fails with ErrNoTransaction when
	// nothing is open.
	Rollback(ctx context.Context) error
	// StageEvents serializes domain events into the outbox inside the open
	// transaction, so external delivery shares the data change's fate.
	StageEvents(ctx context.Context, eventList ...events.Event) error
	// Repositories exposes the factory bound to this unit of work's session.
	Repositories() RepositoryFactory
	// Close rolls back any still-open transaction and releases resources.
	Close() error
}

// UnitOfWorkFactory creates one UnitOfWork per logical business operation.
type UnitOfWorkFactory interface {
	NewUnitOfWork() UnitOfWork
}

// CoverStorage is the narrow boundary to cover-image blob storage.
type CoverStorage interface {
	// Save stores the content and returns the public path and stored name.
	Save(ctx context.Context, name string, content io.Reader) (path string, storedName string, err error)
	// Read returns the stored bytes, or nil when absent.
	Read(ctx context.Context, storedName string) ([]byte, error)
}
