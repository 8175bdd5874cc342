package gorm

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	appcatalog "github.com/estantedev/estante/internal/application/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	"github.com/estantedev/estante/internal/infrastructure/outbox"
	"github.com/estantedev/estante/pkg/interfaces"
)

type txState int

const (
	stateIdle txState = iota
	stateOpen
)

// UnitOfWork is the GORM-backed unit of work. It is request-scoped and not
// safe for concurrent use.
type UnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	state  txState
	repos  *RepositoryFactory
	logger interfaces.Logger
}

// NewUnitOfWork creates a unit of work over the given database handle.
func NewUnitOfWork(db *gorm.DB, logger interfaces.Logger) *UnitOfWork {
	uow := &UnitOfWork{db: db, logger: logger}
	uow.repos = NewRepositoryFactory(uow.conn, db)
	return uow
}

// conn resolves to the open transaction, or the base handle when idle.
// Repositories hold this resolver instead of a session so they follow the
// unit of work through its whole lifecycle.
func (u *UnitOfWork) conn() *gorm.DB {
	if u.state == stateOpen {
		return u.tx
	}
	return u.db
}

// BeginTransaction opens a transaction.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.state == stateOpen {
		return appcatalog.ErrTransactionOpen
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	u.tx = tx
	u.state = stateOpen
	return nil
}

// Commit commits the open transaction. A failed commit rolls back before
// propagating so the operation stays all-or-nothing.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.state != stateOpen {
		return appcatalog.ErrNoTransaction
	}

	if err := u.tx.Commit().Error; err != nil {
		if rbErr := u.tx.Rollback().Error; rbErr != nil {
			u.logger.Error("rollback after failed commit", interfaces.Error(rbErr))
		}
		u.reset()
		return fmt.Errorf("commit transaction: %w", err)
	}

	u.reset()
	return nil
}

// Rollback reverts the open transaction.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.state != stateOpen {
		return appcatalog.ErrNoTransaction
	}

	err := u.tx.Rollback().Error
	u.reset()
	if err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// StageEvents writes the events into the outbox inside the open
// transaction, so external delivery shares the data change's fate.
func (u *UnitOfWork) StageEvents(ctx context.Context, eventList ...events.Event) error {
	if u.state != stateOpen {
		return appcatalog.ErrNoTransaction
	}

	for _, evt := range eventList {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		msg := outbox.Message{
			EventID:       evt.ID(),
			AggregateID:   evt.AggregateID(),
			AggregateType: evt.AggregateType(),
			EventType:     evt.EventType(),
			Payload:       payload,
			Status:        outbox.StatusPending,
			CreatedAt:     evt.OccurredAt().UTC(),
		}
		if err := u.tx.WithContext(ctx).Create(&msg).Error; err != nil {
			return fmt.Errorf("stage event %s: %w", evt.EventType(), err)
		}
	}
	return nil
}

// Repositories exposes the factory bound to this unit of work's session.
func (u *UnitOfWork) Repositories() appcatalog.RepositoryFactory {
	return u.repos
}

// Close rolls back any still-open transaction.
func (u *UnitOfWork) Close() error {
	if u.state != stateOpen {
		return nil
	}
	err := u.tx.Rollback().Error
	u.reset()
	return err
}

func (u *UnitOfWork) reset() {
	u.tx = nil
	u.state = stateIdle
}

// UnitOfWorkFactory creates one UnitOfWork per business operation.
type UnitOfWorkFactory struct {
	db     *gorm.DB
	logger interfaces.Logger
}

// NewUnitOfWorkFactory creates the factory.
func NewUnitOfWorkFactory(db *gorm.DB, logger interfaces.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, logger: logger}
}

// NewUnitOfWork creates a fresh unit of work in the idle state.
func (f *UnitOfWorkFactory) NewUnitOfWork() appcatalog.UnitOfWork {
	return NewUnitOfWork(f.db, f.logger)
}
