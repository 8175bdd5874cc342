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
	msgGenderCreated   = "Gender created successfully"
	msgGenderUpdated   = "Gender updated successfully"
	msgGenderDeleted   = "Gender deleted successfully"
	msgGenderActivated = "Gender activated successfully"
	msgGenderDisabled  = "Gender disabled successfully"

	msgErrCreatingGender   = "Error creating Gender"
	msgErrUpdatingGender   = "Error updating Gender"
	msgErrDeletingGender   = "Error deleting Gender"
	msgErrActivatingGender = "Error activating Gender"
	msgErrDisablingGender  = "Error disabling Gender"
)

// GenderCommandHandler orchestrates gender mutations.
type GenderCommandHandler struct {
	uowFactory UnitOfWorkFactory
	dispatcher events.Dispatcher
	users      catalog.UserResolver
	logger     interfaces.Logger
}

// NewGenderCommandHandler creates a new gender command handler.
func NewGenderCommandHandler(
	uowFactory UnitOfWorkFactory,
	dispatcher events.Dispatcher,
	users catalog.UserResolver,
	logger interfaces.Logger,
) *GenderCommandHandler {
	return &GenderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		users:      users,
		logger:     logger,
	}
}

// HandleCreate creates a gender.
func (h *GenderCommandHandler) HandleCreate(ctx context.Context, cmd CreateGenderCommand) (DataResult[GenderView], error) {
	gender := catalog.NewGender(cmd.Name, cmd.Description)
	if !gender.IsValid() {
		return failureData[GenderView](msgErrCreatingGender), pkgerrors.Validation("invalid gender", gender.ValidationErrors())
	}

	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[GenderView](msgErrCreatingGender), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := uow.Repositories().Genders().Add(ctx, gender); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[GenderView](msgErrCreatingGender), pkgerrors.Persistence("adding gender", err)
	}

	if err := stageAndCommit(ctx, uow, gender); err != nil {
		return failureData[GenderView](msgErrCreatingGender), pkgerrors.Persistence("committing gender", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, gender); err != nil {
		return failureData[GenderView](msgErrCreatingGender), err
	}

	return successData(msgGenderCreated, newGenderView(gender)), nil
}

// HandleUpdate replaces a gender's fields.
func (h *GenderCommandHandler) HandleUpdate(ctx context.Context, cmd UpdateGenderCommand) (DataResult[GenderView], error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	gender, err := repos.Genders().GetByID(ctx, cmd.GenderID)
	if err != nil {
		return failureData[GenderView](msgErrUpdatingGender), pkgerrors.Persistence("loading gender", err)
	}
	if gender == nil {
		return failureData[GenderView](msgErrUpdatingGender), pkgerrors.NotFound("gender not found")
	}

	gender.Update(cmd.Name, cmd.Description)
	if !gender.IsValid() {
		return failureData[GenderView](msgErrUpdatingGender), pkgerrors.Validation("invalid gender", gender.ValidationErrors())
	}

	if err := uow.BeginTransaction(ctx); err != nil {
		return failureData[GenderView](msgErrUpdatingGender), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Genders().Update(ctx, gender); err != nil {
		rollback(ctx, uow, h.logger)
		return failureData[GenderView](msgErrUpdatingGender), pkgerrors.Persistence("updating gender", err)
	}

	if err := stageAndCommit(ctx, uow, gender); err != nil {
		return failureData[GenderView](msgErrUpdatingGender), pkgerrors.Persistence("committing gender", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, gender); err != nil {
		return failureData[GenderView](msgErrUpdatingGender), err
	}

	return successData(msgGenderUpdated, newGenderView(gender)), nil
}

// HandleDelete soft-deletes a gender recording the acting user. A gender
// still referenced by active books cannot be deleted.
func (h *GenderCommandHandler) HandleDelete(ctx context.Context, cmd DeleteGenderCommand) (Result, error) {
	actor, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return failure(msgErrDeletingGender), pkgerrors.Persistence("resolving user", err)
	}
	if actor == nil {
		return failure(msgErrDeletingGender), pkgerrors.NotFound("user not found")
	}

	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	gender, err := repos.Genders().GetByID(ctx, cmd.GenderID)
	if err != nil {
		return failure(msgErrDeletingGender), pkgerrors.Persistence("loading gender", err)
	}
	if gender == nil {
		return failure(msgErrDeletingGender), pkgerrors.NotFound("gender not found")
	}

	inUse, err := repos.Books().Exists(ctx, specification.And(
		specification.Eq("gender_id", cmd.GenderID),
		specification.Eq("is_deleted", false),
	))
	if err != nil {
		return failure(msgErrDeletingGender), pkgerrors.Persistence("checking gender references", err)
	}
	if inUse {
		return failure(msgErrDeletingGender), pkgerrors.Conflict("gender is referenced by active books")
	}

	gender.Delete(actor.ID, actor.Name)

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrDeletingGender), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Genders().Update(ctx, gender); err != nil {
		rollback(ctx, uow, h.logger)
		return failure(msgErrDeletingGender), pkgerrors.Persistence("deleting gender", err)
	}

	if err := stageAndCommit(ctx, uow, gender); err != nil {
		return failure(msgErrDeletingGender), pkgerrors.Persistence("committing gender", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, gender); err != nil {
		return failure(msgErrDeletingGender), err
	}

	return success(msgGenderDeleted), nil
}

// HandleAtive reactivates a soft-deleted gender.
func (h *GenderCommandHandler) HandleAtive(ctx context.Context, cmd AtiveGenderCommand) (Result, error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	gender, err := repos.Genders().GetByID(ctx, cmd.GenderID)
	if err != nil {
		return failure(msgErrActivatingGender), pkgerrors.Persistence("loading gender", err)
	}
	if gender == nil {
		return failure(msgErrActivatingGender), pkgerrors.NotFound("gender not found")
	}

	gender.Activate()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrActivatingGender), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Genders().Activate(ctx, cmd.GenderID); err != nil {
		rollback(ctx, uow, h.logger)
		return failure(msgErrActivatingGender), pkgerrors.Persistence("activating gender", err)
	}

	if err := stageAndCommit(ctx, uow, gender); err != nil {
		return failure(msgErrActivatingGender), pkgerrors.Persistence("committing gender", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, gender); err != nil {
		return failure(msgErrActivatingGender), err
	}

	return success(msgGenderActivated), nil
}

// HandleDisable soft-disables a gender.
func (h *GenderCommandHandler) HandleDisable(ctx context.Context, cmd DisableGenderCommand) (Result, error) {
	uow := h.uowFactory.NewUnitOfWork()
	defer uow.Close()
	repos := uow.Repositories()

	gender, err := repos.Genders().GetByID(ctx, cmd.GenderID)
	if err != nil {
		return failure(msgErrDisablingGender), pkgerrors.Persistence("loading gender", err)
	}
	if gender == nil {
		return failure(msgErrDisablingGender), pkgerrors.NotFound("gender not found")
	}

	gender.Disabled()

	if err := uow.BeginTransaction(ctx); err != nil {
		return failure(msgErrDisablingGender), pkgerrors.Persistence("beginning transaction", err)
	}

	if err := repos.Genders().Disable(ctx, cmd.GenderID); err != nil {
		rollback(ctx, uow, h.logger)
		return failure(msgErrDisablingGender), pkgerrors.Persistence("disabling gender", err)
	}

	if err := stageAndCommit(ctx, uow, gender); err != nil {
		return failure(msgErrDisablingGender), pkgerrors.Persistence("committing gender", err)
	}

	if err := publishEvents(ctx, h.dispatcher, uow, h.logger, gender); err != nil {
		return failure(msgErrDisablingGender), err
	}

	return success(msgGenderDisabled), nil
}
