package catalog

import (
	"context"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/interfaces"
)

// Stable user-facing envelope messages.
const (
	msgBookCreated      = "Book created successfully"
	msgBookUpdated      = "Book updated successfully"
	msgBooksDeleted     = "Book(s) deleted successfully"
	msgBooksActivated   = "Book(s) activated successfully"
	msgBooksDisabled    = "Book(s) disabled successfully"
	msgBookCoverUpdated = "Book cover updated successfully"

	msgErrCreatingBook   = "Error creating Book"
	msgErrUpdatingBook   = "Error updating Book"
	msgErrDeletingBooks  = "Error deleting Book(s)"
	msgErrActivatingBook = "Error activating Book(s)"
	msgErrDisablingBook  = "Error disabling Book(s)"
	msgErrUploadingCover = "Error uploading Book cover"
)

// BookCommandHandler orchestrates book mutations: resolve references and
// validate before any transaction opens, persist inside one transaction,
// publish queued events after commit.
type BookCommandHandler struct {
	uowFactory UnitOfWorkFactory
	dispatcher events.Dispatcher
	users      catalog.UserResolver
	storage    CoverStorage
	logger     interfaces.Logger
}

// NewBookCommandHandler creates a new book command handler.
func NewBookCommandHandler(
	uowFactory UnitOfWorkFactory,
	dispatcher events.Dispatcher,
	users catalog.UserResolver,
	storage CoverStorage,
	logger interfaces.Logger,
) *BookCommandHandler {
	return &BookCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		users:      users,
		storage:    storage,
		logger:     logger,
	}
}

// HandleCreate creates a book.
func (h *BookCommandHandler) HandleCreate(ctx context.Context, cmd CreateBookCommand) (DataResult[BookView], error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	ok, err := existsActive(ctx, repos.Genders(), cmd.GenderID)
	if err != nil {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.Persistence("checking gender reference", err)
	}
	if !ok {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.NotFound("gender not found")
	}

	ok, err = existsActive(ctx, repos.Publishers(), cmd.PublisherID)
	if err != nil {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.Persistence("checking publisher reference", err)
	}
	if !ok {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.NotFound("publisher not found")
	}

	book := catalog.NewBook(cmd.Title, cmd.Author, cmd.ISBN, cmd.Synopsis, cmd.GenderID, cmd.PublisherID)
	if !book.IsValid() {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.Validation("invalid book", book.ValidationErrors())
	}

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Books().Add(ctx, book); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[BookView](msgErrCreatingBook), pkgerrors.Persistence("adding book", err)
	}

	if err := stageAndCommit(ctx, uow, book); err != nil {
		return failureData[BookView](msgErrCreatingBook), pkgerrors.Persistence("committing book", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, book); err != nil {
		return failureData[BookView](msgErrCreatingBook), err
	}

	h.logger.Info("book created",
		interfaces.String("book_id", book.ID.String()),
		interfaces.String("title", book.Title))

	return successData(msgBookCreated, newBookView(book)), nil
}

// HandleUpdate replaces a book's fields.
func (h *BookCommandHandler) HandleUpdate(ctx context.Context, cmd UpdateBookCommand) (DataResult[BookView], error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	ok, err := existsActive(ctx, repos.Genders(), cmd.GenderID)
	if err != nil {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Persistence("checking gender reference", err)
	}
	if !ok {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.NotFound("gender not found")
	}

	ok, err = existsActive(ctx, repos.Publishers(), cmd.PublisherID)
	if err != nil {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Persistence("checking publisher reference", err)
	}
	if !ok {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.NotFound("publisher not found")
	}

	book, err := repos.Books().GetByID(ctx, cmd.BookID)
	if err != nil {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Persistence("loading book", err)
	}
	if book == nil {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.NotFound("book not found")
	}

	book.Update(cmd.Title, cmd.Author, cmd.ISBN, cmd.Synopsis, cmd.GenderID, cmd.PublisherID)
	if !book.IsValid() {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Validation("invalid book", book.ValidationErrors())
	}

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Books().Update(ctx, book); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Persistence("updating book", err)
	}

	if err := stageAndCommit(ctx, uow, book); err != nil {
		return failureData[BookView](msgErrUpdatingBook), pkgerrors.Persistence("committing book", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, book); err != nil {
		return failureData[BookView](msgErrUpdatingBook), err
	}

	return successData(msgBookUpdated, newBookView(book)), nil
}

// HandleDeletes soft-deletes a batch of books in one transaction,
// recording the acting user on every event. The batch is all-or-nothing:
// any missing id rolls back the whole batch.
func (h *BookCommandHandler) HandleDeletes(ctx context.Context, cmd DeletesBookCommand) (Result, error) {
	actor, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return failure(msgErrDeletingBooks), pkgerrors.Persistence("resolving user", err)
	}
	if actor == nil {
		return failure(msgErrDeletingBooks), pkgerrors.NotFound("user not found")
	}

	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrDeletingBooks), pkgerrors.Persistence("beginning transaction", err)
	}

	books := make([]catalog.Aggregate, 0, len(cmd.BookIDs))
	for _, id := range cmd.BookIDs {
		book, err := repos.Books().GetByID(ctx, id)
		if err != nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrDeletingBooks), pkgerrors.Persistence("loading book", err)
		}
		if book == nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrDeletingBooks), pkgerrors.NotFound("book not found")
		}

		book.Delete(actor.ID, actor.Name)
		if err := repos.Books().Update(ctx, book); err != nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrDeletingBooks), pkgerrors.Persistence("deleting book", err)
		}
		books = append(books, book)
	}

	if err := stageAndCommit(ctx, uow, books...); err != nil {
		return failure(msgErrDeletingBooks), pkgerrors.Persistence("committing batch", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, books...); err != nil {
		return failure(msgErrDeletingBooks), err
	}

	return success(msgBooksDeleted), nil
}

// HandleAtives reactivates a batch of soft-deleted books in one
// transaction.
func (h *BookCommandHandler) HandleAtives(ctx context.Context, cmd AtivesBookCommand) (Result, error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrActivatingBook), pkgerrors.Persistence("beginning transaction", err)
	}

	books := make([]catalog.Aggregate, 0, len(cmd.BookIDs))
	for _, id := range cmd.BookIDs {
		book, err := repos.Books().GetByID(ctx, id)
		if err != nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrActivatingBook), pkgerrors.Persistence("loading book", err)
		}
		if book == nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrActivatingBook), pkgerrors.NotFound("book not found")
		}

		book.Activate()
		if err := repos.Books().Activate(ctx, id); err != nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrActivatingBook), pkgerrors.Persistence("activating book", err)
		}
		books = append(books, book)
	}

	if err := stageAndCommit(ctx, uow, books...); err != nil {
		return failure(msgErrActivatingBook), pkgerrors.Persistence("committing batch", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, books...); err != nil {
		return failure(msgErrActivatingBook), err
	}

	return success(msgBooksActivated), nil
}

// HandleDisables soft-disables a batch of books in one transaction.
func (h *BookCommandHandler) HandleDisables(ctx context.Context, cmd DisablesBookCommand) (Result, error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrDisablingBook), pkgerrors.Persistence("beginning transaction", err)
	}

	books := make([]catalog.Aggregate, 0, len(cmd.BookIDs))
	for _, id := range cmd.BookIDs {
		book, err := repos.Books().GetByID(ctx, id)
		if err != nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrDisablingBook), pkgerrors.Persistence("loading book", err)
		}
		if book == nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrDisablingBook), pkgerrors.NotFound("book not found")
		}

		book.Disabled()
		if err := repos.Books().Disable(ctx, id); err != nil {
			rollback(ctx, uow, h.logger)
			return failure(msgErrDisablingBook), pkgerrors.Persistence("disabling book", err)
		}
		books = append(books, book)
	}

	if err := stageAndCommit(ctx, uow, books...); err != nil {
		return failure(msgErrDisablingBook), pkgerrors.Persistence("committing batch", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, books...); err != nil {
		return failure(msgErrDisablingBook), err
	}

	return success(msgBooksDisabled), nil
}

// HandleUploadCover stores a cover image and records its location on the
// book.
func (h *BookCommandHandler) HandleUploadCover(ctx context.Context, cmd UploadBookCoverCommand) (DataResult[BookView], error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	book, err := repos.Books().GetByID(ctx, cmd.BookID)
	if err != nil {
		return failureData[BookView](msgErrUploadingCover), pkgerrors.Persistence("loading book", err)
	}
	if book == nil {
		return failureData[BookView](msgErrUploadingCover), pkgerrors.NotFound("book not found")
	}

	path, storedName, err := h.storage.Save(ctx, cmd.FileName, cmd.Content)
	if err != nil {
		return failureData[BookView](msgErrUploadingCover), pkgerrors.Wrap(pkgerrors.ErrorTypeInternal, "storing cover image", err)
	}

	book.SetCover(path, storedName)

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[BookView](msgErrUploadingCover), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Books().Update(ctx, book); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[BookView](msgErrUploadingCover), pkgerrors.Persistence("updating book", err)
	}

	if err := stageAndCommit(ctx, uow, book); err != nil {
		return failureData[BookView](msgErrUploadingCover), pkgerrors.Persistence("committing book", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, book); err != nil {
		return failureData[BookView](msgErrUploadingCover), err
	}

	return successData(msgBookCoverUpdated, newBookView(book)), nil
}
