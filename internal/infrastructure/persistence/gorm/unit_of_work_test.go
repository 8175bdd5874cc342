package gorm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	appcatalog "github.com/estantedev/estante/internal/application/catalog"
	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/infrastructure/outbox"
	gormpersist "github.com/estantedev/estante/internal/infrastructure/persistence/gorm"
	"github.com/estantedev/estante/pkg/logger"
	"github.com/estantedev/estante/test/testutil"
)

type UnitOfWorkTestSuite struct {
	suite.Suite

	ctx     context.Context
	db      *gorm.DB
	factory *gormpersist.UnitOfWorkFactory
	reader  *gormpersist.RepositoryFactory
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.factory = gormpersist.NewUnitOfWorkFactory(s.db, logger.NewNoop())
	s.reader = gormpersist.NewDetachedRepositoryFactory(s.db)
}

func (s *UnitOfWorkTestSuite) newBook() *catalog.Book {
	return catalog.NewBook("Dom Casmurro", "Machado de Assis", "9788520925089", "", uuid.New(), uuid.New())
}

func (s *UnitOfWorkTestSuite) TestBeginTwiceFails() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.ErrorIs(uow.BeginTransaction(s.ctx), appcatalog.ErrTransactionOpen)
}

func (s *UnitOfWorkTestSuite) TestCommitWithoutTransaction() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	s.ErrorIs(uow.Commit(s.ctx), appcatalog.ErrNoTransaction)
}

func (s *UnitOfWorkTestSuite) TestRollbackWithoutTransaction() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	s.ErrorIs(uow.Rollback(s.ctx), appcatalog.ErrNoTransaction)
}

func (s *UnitOfWorkTestSuite) TestCommitPersists() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Repositories().Books().Add(s.ctx, book))
	s.Require().NoError(uow.Commit(s.ctx))

	found, err := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.NotNil(found)
}

func (s *UnitOfWorkTestSuite) TestRollbackDiscardsChanges() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Repositories().Books().Add(s.ctx, book))
	s.Require().NoError(uow.Rollback(s.ctx))

	found, err := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *UnitOfWorkTestSuite) TestUnitOfWorkIsReusableAfterRollback() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Rollback(s.ctx))

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Repositories().Books().Add(s.ctx, book))
	s.Require().NoError(uow.Commit(s.ctx))

	found, err := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.NotNil(found)
}

func (s *UnitOfWorkTestSuite) TestRepositoriesCreatedBeforeBeginJoinTransaction() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	books := uow.Repositories().Books()

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(books.Add(s.ctx, book))
	s.Require().NoError(uow.Rollback(s.ctx))

	found, err := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *UnitOfWorkTestSuite) TestStageEventsRequiresOpenTransaction() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	book := s.newBook()
	s.ErrorIs(uow.StageEvents(s.ctx, book.Events()...), appcatalog.ErrNoTransaction)
}

func (s *UnitOfWorkTestSuite) TestStageEventsWritesOutboxInTransaction() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Repositories().Books().Add(s.ctx, book))
	s.Require().NoError(uow.StageEvents(s.ctx, book.Events()...))
	s.Require().NoError(uow.Commit(s.ctx))

	var messages []outbox.Message
	s.Require().NoError(s.db.Find(&messages).Error)
	s.Require().Len(messages, 1)
	s.Equal(catalog.EventBookCreated, messages[0].EventType)
	s.Equal(book.ID, messages[0].AggregateID)
	s.Equal(outbox.StatusPending, messages[0].Status)
	s.NotEmpty(messages[0].Payload)
}

func (s *UnitOfWorkTestSuite) TestStagedEventsRollBackWithData() {
	uow := s.factory.NewUnitOfWork()
	defer uow.Close()

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Repositories().Books().Add(s.ctx, book))
	s.Require().NoError(uow.StageEvents(s.ctx, book.Events()...))
	s.Require().NoError(uow.Rollback(s.ctx))

	var count int64
	s.Require().NoError(s.db.Model(&outbox.Message{}).Count(&count).Error)
	s.Zero(count)
}

func (s *UnitOfWorkTestSuite) TestCloseRollsBackOpenTransaction() {
	uow := s.factory.NewUnitOfWork()

	book := s.newBook()
	s.Require().NoError(uow.BeginTransaction(s.ctx))
	s.Require().NoError(uow.Repositories().Books().Add(s.ctx, book))
	s.Require().NoError(uow.Close())

	found, err := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.Nil(found)
}

func (s *UnitOfWorkTestSuite) TestCloseOnIdleIsNoop() {
	uow := s.factory.NewUnitOfWork()
	s.NoError(uow.Close())
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
