package catalog

import (
	"context"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	"github.com/estantedev/estante/internal/domain/specification"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/interfaces"
)

const (
	msgPublisherCreated   = "Publisher created successfully"
	msgPublisherUpdated   = "Publisher updated successfully"
	msgPublisherDeleted   = "Publisher deleted successfully"
	msgPublisherActivated = "Publisher activated successfully"
	msgPublisherDisabled  = "Publisher disabled successfully"

	msgErrCreatingPublisher   = "Error creating Publisher"
	msgErrUpdatingPublisher   = "Error updating Publisher"
	msgErrDeletingPublisher   = "Error deleting Publisher"
	msgErrActivatingPublisher = "Error activating Publisher"
	msgErrDisablingPublisher  = "Error disabling Publisher"
)

// PublisherCommandHandler orchestrates publisher mutations.
type PublisherCommandHandler struct {
	uowFactory UnitOfWorkFactory
	dispatcher events.Dispatcher
	users      catalog.UserResolver
	logger     interfaces.Logger
}

// NewPublisherCommandHandler creates a new publisher command handler.
func NewPublisherCommandHandler(
	uowFactory UnitOfWorkFactory,
	dispatcher events.Dispatcher,
	users catalog.UserResolver,
	logger interfaces.Logger,
) *PublisherCommandHandler {
	return &PublisherCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		users:      users,
		logger:     logger,
	}
}

// HandleCreate creates a publisher.
func (h *PublisherCommandHandler) HandleCreate(ctx context.Context, cmd CreatePublisherCommand) (DataResult[PublisherView], error) {
	publisher := catalog.NewPublisher(cmd.Name, cmd.Description)
	if !publisher.IsValid() {
		return failureData[PublisherView](msgErrCreatingPublisher), pkgerrors.Validation("invalid publisher", publisher.ValidationErrors())
	}

	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[PublisherView](msgErrCreatingPublisher), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := uow.Repositories().Publishers().Add(ctx, publisher); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[PublisherView](msgErrCreatingPublisher), pkgerrors.Persistence("adding publisher", err)
	}

	if err := stageAndCommit(ctx, uow, publisher); err != nil {
		return failureData[PublisherView](msgErrCreatingPublisher), pkgerrors.Persistence("committing publisher", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, publisher); err != nil {
		return failureData[PublisherView](msgErrCreatingPublisher), err
	}

	return successData(msgPublisherCreated, newPublisherView(publisher)), nil
}

// HandleUpdate replaces a publisher's fields.
func (h *PublisherCommandHandler) HandleUpdate(ctx context.Context, cmd UpdatePublisherCommand) (DataResult[PublisherView], error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	publisher, err := repos.Publishers().GetByID(ctx, cmd.PublisherID)
	if err != nil {
		return failureData[PublisherView](msgErrUpdatingPublisher), pkgerrors.Persistence("loading publisher", err)
	}
	if publisher == nil {
		return failureData[PublisherView](msgErrUpdatingPublisher), pkgerrors.NotFound("publisher not found")
	}

	publisher.Update(cmd.Name, cmd.Description)
	if !publisher.IsValid() {
		return failureData[PublisherView](msgErrUpdatingPublisher), pkgerrors.Validation("invalid publisher", publisher.ValidationErrors())
	}

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[PublisherView](msgErrUpdatingPublisher), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Publishers().Update(ctx, publisher); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[PublisherView](msgErrUpdatingPublisher), pkgerrors.Persistence("updating publisher", err)
	}

	if err := stageAndCommit(ctx, uow, publisher); err != nil {
		return failureData[PublisherView](msgErrUpdatingPublisher), pkgerrors.Persistence("committing publisher", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, publisher); err != nil {
		return failureData[PublisherView](msgErrUpdatingPublisher), err
	}

	return successData(msgPublisherUpdated, newPublisherView(publisher)), nil
}

// HandleDelete soft-deletes a publisher recording the acting user. A publisher
// still referenced by active books cannot be deleted.
func (h *PublisherCommandHandler) HandleDelete(ctx context.Context, cmd DeletePublisherCommand) (Result, error) {
	actor, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return failure(msgErrDeletingPublisher), pkgerrors.Persistence("resolving user", err)
	}
	if actor == nil {
		return failure(msgErrDeletingPublisher), pkgerrors.NotFound("user not found")
	}

	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	publisher, err := repos.Publishers().GetByID(ctx, cmd.PublisherID)
	if err != nil {
		return failure(msgErrDeletingPublisher), pkgerrors.Persistence("loading publisher", err)
	}
	if publisher == nil {
		return failure(msgErrDeletingPublisher), pkgerrors.NotFound("publisher not found")
	}

	inUse, err := repos.Books().Exists(ctx, specification.And(
		specification.Eq("publisher_id", cmd.PublisherID),
		specification.Eq("is_deleted", false),
	))
	if err != nil {
		return failure(msgErrDeletingPublisher), pkgerrors.Persistence("checking publisher references", err)
	}
	if inUse {
		return failure(msgErrDeletingPublisher), pkgerrors.Conflict("publisher is referenced by active books")
	}

	publisher.Delete(actor.ID, actor.Name)

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrDeletingPublisher), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Publishers().Update(ctx, publisher); err != nil {
		rollback(ctx, uow, h.logger)
		return failure(msgErrDeletingPublisher), pkgerrors.Persistence("deleting publisher", err)
	}

	if err := stageAndCommit(ctx, uow, publisher); err != nil {
		return failure(msgErrDeletingPublisher), pkgerrors.Persistence("committing publisher", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, publisher); err != nil {
		return failure(msgErrDeletingPublisher), err
	}

	return success(msgPublisherDeleted), nil
}

// HandleAtive reactivates a soft-deleted publisher.
func (h *PublisherCommandHandler) HandleAtive(ctx context.Context, cmd AtivePublisherCommand) (Result, error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	publisher, err := repos.Publishers().GetByID(ctx, cmd.PublisherID)
	if err != nil {
		return failure(msgErrActivatingPublisher), pkgerrors.Persistence("loading publisher", err)
	}
	if publisher == nil {
		return failure(msgErrActivatingPublisher), pkgerrors.NotFound("publisher not found")
	}

	publisher.Activate()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrActivatingPublisher), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Publishers().Activate(ctx, cmd.PublisherID); err != nil {
		rollback(ctx, uow, h.logger)
		return failure(msgErrActivatingPublisher), pkgerrors.Persistence("activating publisher", err)
	}

	if err := stageAndCommit(ctx, uow, publisher); err != nil {
		return failure(msgErrActivatingPublisher), pkgerrors.Persistence("committing publisher", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, publisher); err != nil {
		return failure(msgErrActivatingPublisher), err
	}

	return success(msgPublisherActivated), nil
}

// HandleDisable soft-disables a publisher.
func (h *PublisherCommandHandler) HandleDisable(ctx context.Context, cmd DisablePublisherCommand) (Result, error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	publisher, err := repos.Publishers().GetByID(ctx, cmd.PublisherID)
	if err != nil {
		return failure(msgErrDisablingPublisher), pkgerrors.Persistence("loading publisher", err)
	}
	if publisher == nil {
		return failure(msgErrDisablingPublisher), pkgerrors.NotFound("publisher not found")
	}

	publisher.Disabled()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrDisablingPublisher), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Publishers().Disable(ctx, cmd.PublisherID); err != nil {
		rollback(ctx, uow, h.logger)
		return failure(msgErrDisablingPublisher), pkgerrors.Persistence("disabling publisher", err)
	}

	if err := stageAndCommit(ctx, uow, publisher); err != nil {
		return failure(msgErrDisablingPublisher), pkgerrors.Persistence("committing publisher", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, publisher); err != nil {
		return failure(msgErrDisablingPublisher), err
	}

	return success(msgPublisherDisabled), nil
}
