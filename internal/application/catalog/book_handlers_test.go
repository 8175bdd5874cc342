package catalog_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	appcatalog "github.com/estantedev/estante/internal/application/catalog"
	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	gormpersist "github.com/estantedev/estante/internal/infrastructure/persistence/gorm"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/logger"
	"github.com/estantedev/estante/test/testutil"
)

// recordingDispatcher captures dispatched event types in order.
type recordingDispatcher struct {
	dispatched []string
}

func (d *recordingDispatcher) RegisterHandler(handler events.Handler, eventTypes ...string) {}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event events.Event) error {
	d.dispatched = append(d.dispatched, event.EventType())
	return nil
}

// failingDispatcher fails every dispatch.
type failingDispatcher struct{}

func (d *failingDispatcher) RegisterHandler(handler events.Handler, eventTypes ...string) {}

func (d *failingDispatcher) Dispatch(ctx context.Context, event events.Event) error {
	return fmt.Errorf("broker unavailable")
}

// memoryCoverStorage keeps uploads in a map.
type memoryCoverStorage struct {
	files map[string][]byte
}

func newMemoryCoverStorage() *memoryCoverStorage {
	return &memoryCoverStorage{files: make(map[string][]byte)}
}

func (s *memoryCoverStorage) Save(ctx context.Context, name string, content io.Reader) (string, string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", "", err
	}
	stored := "stored-" + name
	s.files[stored] = data
	return "/covers/" + stored, stored, nil
}

func (s *memoryCoverStorage) Read(ctx context.Context, stored string) ([]byte, error) {
	data, ok := s.files[stored]
	if !ok {
		return nil, nil
	}
	return data, nil
}

type BookHandlerTestSuite struct {
	suite.Suite

	ctx        context.Context
	db         *gorm.DB
	dispatcher *recordingDispatcher
	storage    *memoryCoverStorage
	handler    *appcatalog.BookCommandHandler
	reader     *gormpersist.RepositoryFactory

	gender    *catalog.Gender
	publisher *catalog.Publisher
	user      *catalog.User
}

func (s *BookHandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewTestDB(s.T())
	s.dispatcher = &recordingDispatcher{}
	s.storage = newMemoryCoverStorage()
	s.reader = gormpersist.NewDetachedRepositoryFactory(s.db)

	s.handler = appcatalog.NewBookCommandHandler(
		gormpersist.NewUnitOfWorkFactory(s.db, logger.NewNoop()),
		s.dispatcher,
		gormpersist.NewUserResolver(s.db),
		s.storage,
		logger.NewNoop(),
	)

	s.gender = catalog.NewGender("Romance", "")
	s.Require().NoError(s.reader.Genders().Add(s.ctx, s.gender))
	s.publisher = catalog.NewPublisher("Companhia das Letras", "")
	s.Require().NoError(s.reader.Publishers().Add(s.ctx, s.publisher))

	s.user = &catalog.User{ID: uuid.New(), Name: "Maria Silva", Email: "maria@example.com", CreatedAt: time.Now()}
	s.Require().NoError(s.db.Create(s.user).Error)
}

func (s *BookHandlerTestSuite) createCommand() appcatalog.CreateBookCommand {
	return appcatalog.CreateBookCommand{
		Title:       "Dom Casmurro",
		Author:      "Machado de Assis",
		ISBN:        "9788520925089",
		GenderID:    s.gender.ID,
		PublisherID: s.publisher.ID,
	}
}

func (s *BookHandlerTestSuite) seedBook() *catalog.Book {
	book := catalog.NewBook("Dom Casmurro", "Machado de Assis", "9788520925089", "", s.gender.ID, s.publisher.ID)
	book.TakeEvents()
	s.Require().NoError(s.reader.Books().Add(s.ctx, book))
	return book
}

func (s *BookHandlerTestSuite) bookCount() int64 {
	var count int64
	s.Require().NoError(s.db.Model(&catalog.Book{}).Count(&count).Error)
	return count
}

func (s *BookHandlerTestSuite) TestCreateSucceeds() {
	result, err := s.handler.HandleCreate(s.ctx, s.createCommand())

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal("Book created successfully", result.Message)
	s.NotEqual(uuid.Nil, result.Data.ID)

	found, err := s.reader.Books().GetByID(s.ctx, result.Data.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("Dom Casmurro", found.Title)

	s.Equal([]string{catalog.EventBookCreated}, s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestCreateInvalidBookPersistsNothing() {
	cmd := s.createCommand()
	cmd.Title = "   "

	result, err := s.handler.HandleCreate(s.ctx, cmd)

	s.False(result.Success)
	s.Equal("Error creating Book", result.Message)
	s.True(pkgerrors.IsValidation(err))
	s.Contains(pkgerrors.Details(err), "título é obrigatório")

	s.Zero(s.bookCount())
	s.Empty(s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestCreateCollectsEveryValidationError() {
	cmd := s.createCommand()
	cmd.Title = ""
	cmd.Author = strings.Repeat("a", 101)
	cmd.ISBN = "nope"

	_, err := s.handler.HandleCreate(s.ctx, cmd)

	details := pkgerrors.Details(err)
	s.Contains(details, "título é obrigatório")
	s.Contains(details, "autor deve ter no máximo 100 caracteres")
	s.Contains(details, "isbn inválido")
}

func (s *BookHandlerTestSuite) TestCreateUnknownGender() {
	cmd := s.createCommand()
	cmd.GenderID = uuid.New()

	result, err := s.handler.HandleCreate(s.ctx, cmd)

	s.False(result.Success)
	s.True(pkgerrors.IsNotFound(err))
	s.Zero(s.bookCount())
}

func (s *BookHandlerTestSuite) TestCreateDisabledPublisherIsRejected() {
	s.Require().NoError(s.reader.Publishers().Disable(s.ctx, s.publisher.ID))

	result, err := s.handler.HandleCreate(s.ctx, s.createCommand())

	s.False(result.Success)
	s.True(pkgerrors.IsNotFound(err))
}

func (s *BookHandlerTestSuite) TestUpdateSucceeds() {
	book := s.seedBook()

	result, err := s.handler.HandleUpdate(s.ctx, appcatalog.UpdateBookCommand{
		BookID:      book.ID,
		Title:       "Memórias Póstumas",
		Author:      book.Author,
		ISBN:        book.ISBN,
		GenderID:    s.gender.ID,
		PublisherID: s.publisher.ID,
	})

	s.Require().NoError(err)
	s.True(result.Success)

	found, err := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.Equal("Memórias Póstumas", found.Title)
	s.Equal([]string{catalog.EventBookUpdated}, s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestUpdateMissingBook() {
	_, err := s.handler.HandleUpdate(s.ctx, appcatalog.UpdateBookCommand{
		BookID:      uuid.New(),
		Title:       "Qualquer",
		Author:      "Autor",
		ISBN:        "9788520925089",
		GenderID:    s.gender.ID,
		PublisherID: s.publisher.ID,
	})

	s.True(pkgerrors.IsNotFound(err))
}

func (s *BookHandlerTestSuite) TestDeletesBatchRecordsActor() {
	first := s.seedBook()
	second := s.seedBook()

	result, err := s.handler.HandleDeletes(s.ctx, appcatalog.DeletesBookCommand{
		BookIDs: []uuid.UUID{first.ID, second.ID},
		UserID:  s.user.ID,
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal("Book(s) deleted successfully", result.Message)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		found, err := s.reader.Books().GetByID(s.ctx, id)
		s.Require().NoError(err)
		s.True(found.IsDeleted)
	}
	s.Equal([]string{catalog.EventBookDeleted, catalog.EventBookDeleted}, s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestDeletesBatchIsAllOrNothing() {
	existing := s.seedBook()

	result, err := s.handler.HandleDeletes(s.ctx, appcatalog.DeletesBookCommand{
		BookIDs: []uuid.UUID{existing.ID, uuid.New()},
		UserID:  s.user.ID,
	})

	s.False(result.Success)
	s.Equal("Error deleting Book(s)", result.Message)
	s.True(pkgerrors.IsNotFound(err))

	found, readErr := s.reader.Books().GetByID(s.ctx, existing.ID)
	s.Require().NoError(readErr)
	s.False(found.IsDeleted)
	s.Empty(s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestDeletesUnknownUser() {
	book := s.seedBook()

	_, err := s.handler.HandleDeletes(s.ctx, appcatalog.DeletesBookCommand{
		BookIDs: []uuid.UUID{book.ID},
		UserID:  uuid.New(),
	})

	s.True(pkgerrors.IsNotFound(err))

	found, readErr := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(readErr)
	s.False(found.IsDeleted)
}

func (s *BookHandlerTestSuite) TestAtivesReactivatesAndDispatchesOnce() {
	book := s.seedBook()
	s.Require().NoError(s.reader.Books().Disable(s.ctx, book.ID))

	result, err := s.handler.HandleAtives(s.ctx, appcatalog.AtivesBookCommand{
		BookIDs: []uuid.UUID{book.ID},
	})

	s.Require().NoError(err)
	s.True(result.Success)

	found, readErr := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(readErr)
	s.False(found.IsDeleted)
	s.Nil(found.DeletedAt)

	s.Equal([]string{catalog.EventBookActivated}, s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestDisablesBatch() {
	book := s.seedBook()

	result, err := s.handler.HandleDisables(s.ctx, appcatalog.DisablesBookCommand{
		BookIDs: []uuid.UUID{book.ID},
	})

	s.Require().NoError(err)
	s.True(result.Success)

	found, readErr := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(readErr)
	s.True(found.IsDeleted)
	s.Equal([]string{catalog.EventBookDisabled}, s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestDispatchFailureAfterCommitIsReported() {
	failing := appcatalog.NewBookCommandHandler(
		gormpersist.NewUnitOfWorkFactory(s.db, logger.NewNoop()),
		&failingDispatcher{},
		gormpersist.NewUserResolver(s.db),
		s.storage,
		logger.NewNoop(),
	)

	result, err := failing.HandleCreate(s.ctx, s.createCommand())

	s.False(result.Success)
	s.Equal("Error creating Book", result.Message)
	s.True(pkgerrors.IsInternal(err))

	// the commit was durable; only the post-commit dispatch failed
	s.Equal(int64(1), s.bookCount())
}

func (s *BookHandlerTestSuite) TestUploadCover() {
	book := s.seedBook()

	result, err := s.handler.HandleUploadCover(s.ctx, appcatalog.UploadBookCoverCommand{
		BookID:   book.ID,
		FileName: "capa.png",
		Content:  strings.NewReader("png bytes"),
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal("Book cover updated successfully", result.Message)

	found, readErr := s.reader.Books().GetByID(s.ctx, book.ID)
	s.Require().NoError(readErr)
	s.Equal("stored-capa.png", found.CoverName)
	s.Equal("/covers/stored-capa.png", found.CoverPath)
	s.Equal([]string{catalog.EventBookCoverUpdated}, s.dispatcher.dispatched)
}

func (s *BookHandlerTestSuite) TestUploadCoverMissingBook() {
	_, err := s.handler.HandleUploadCover(s.ctx, appcatalog.UploadBookCoverCommand{
		BookID:   uuid.New(),
		FileName: "capa.png",
		Content:  strings.NewReader("png bytes"),
	})

	s.True(pkgerrors.IsNotFound(err))
}

func TestBookHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}
