package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	"github.com/estantedev/estante/internal/domain/specification"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/interfaces"
)

// stageAndCommit writes the aggregates' queued events to the outbox inside
// the open transaction, then commits. The commit implementation rolls back
// before propagating its own failure.
func stageAndCommit(ctx context.Context, uow UnitOfWork, aggregates ...catalog.Aggregate) error {
	for _, aggregate := range aggregates {
		if err := uow.StageEvents(ctx, aggregate.Events()...); err != nil {
			_ = uow.Rollback(ctx)
			return err
		}
	}
	return uow.Commit(ctx)
}

// publishEvents drains each aggregate's queue and dispatches in emission
// order. A dispatch failure after a durable commit is reported to the
// caller: the handler's logical state is rolled back (best effort, the
// transaction is already closed) and the error propagates.
func publishEvents(ctx context.Context, dispatcher events.Dispatcher, uow UnitOfWork, logger interfaces.Logger, aggregates ...catalog.Aggregate) error {
	for _, aggregate := range aggregates {
		for _, event := range aggregate.TakeEvents() {
			if err := dispatcher.Dispatch(ctx, event); err != nil {
				logger.Error("event dispatch failed after commit",
					interfaces.String("event_type", event.EventType()),
					interfaces.String("aggregate_id", event.AggregateID().String()),
					interfaces.Error(err))
				_ = uow.Rollback(ctx)
				return pkgerrors.Internal("event dispatch failed")
			}
		}
	}
	return nil
}

// rollback reverts an open transaction, logging instead of masking the
// original failure.
func rollback(ctx context.Context, uow UnitOfWork, logger interfaces.Logger) {
	if err := uow.Rollback(ctx); err != nil {
		logger.Error("rollback failed", interfaces.Error(err))
	}
}

// existsActive reports whether an aggregate with the given id exists and is
// not soft-deleted.
func existsActive[T any](ctx context.Context, repo catalog.Repository[T], id uuid.UUID) (bool, error) {
	return repo.Exists(ctx, specification.And(
		specification.Eq("id", id),
		specification.Eq("is_deleted", false),
	))
}
