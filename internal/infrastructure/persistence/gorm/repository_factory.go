package gorm

import (
	"gorm.io/gorm"

	"github.com/estantedev/estante/internal/domain/catalog"
)

// RepositoryFactory lazily constructs one repository per aggregate type.
// Every repository shares the same connection resolver, so repositories
// created before a transaction opens still participate in it.
type RepositoryFactory struct {
	conn func() *gorm.DB
	base *gorm.DB

	books      catalog.BookRepository
	genders    catalog.GenderRepository
	publishers catalog.PublisherRepository
}

// NewRepositoryFactory creates a factory over the given connection
// resolver. base is the untracked handle used for detached reads.
func NewRepositoryFactory(conn func() *gorm.DB, base *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{conn: conn, base: base}
}

// NewDetachedRepositoryFactory creates a factory that never joins a
// transaction. Query handlers use it for read-only access.
func NewDetachedRepositoryFactory(db *gorm.DB) *RepositoryFactory {
	return NewRepositoryFactory(func() *gorm.DB { return db }, db)
}

// Books returns the cached book repository.
func (f *RepositoryFactory) Books() catalog.BookRepository {
	if f.books == nil {
		f.books = newRepository[catalog.Book](f.conn, f.base)
	}
	return f.books
}

// Genders returns the cached gender repository.
func (f *RepositoryFactory) Genders() catalog.GenderRepository {
	if f.genders == nil {
		f.genders = newRepository[catalog.Gender](f.conn, f.base)
	}
	return f.genders
}

// Publishers returns the cached publisher repository.
func (f *RepositoryFactory) Publishers() catalog.PublisherRepository {
	if f.publishers == nil {
		f.publishers = newRepository[catalog.Publisher](f.conn, f.base)
	}
	return f.publishers
}
