package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/specification"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/pagination"
)

// repository is the generic GORM-backed implementation of the per-aggregate
// persistence gateway. conn resolves to the open transaction when the owning
// unit of work has one, and to the base handle otherwise; base is always the
// untracked handle used for detached reads.
type repository[T any] struct {
	conn func() *gorm.DB
	base *gorm.DB
}

func newRepository[T any](conn func() *gorm.DB, base *gorm.DB) *repository[T] {
	return &repository[T]{conn: conn, base: base}
}

func (r *repository[T]) Add(ctx context.Context, entity *T) error {
	if entity == nil {
		return pkgerrors.Argument("entity must not be nil")
	}
	if err := r.conn().WithContext(ctx).Create(entity).Error; err != nil {
		if pkgerrors.IsDuplicateError(err) {
			return pkgerrors.Conflict("entity already exists")
		}
		return err
	}
	return nil
}

func (r *repository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return first[T](ctx, r.conn(), id)
}

func (r *repository[T]) GetByIDNoTracking(ctx context.Context, id uuid.UUID) (*T, error) {
	return first[T](ctx, r.base, id)
}

func first[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var entity T
	if err := db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *repository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return pkgerrors.Argument("entity must not be nil")
	}
	return r.conn().WithContext(ctx).Save(entity).Error
}

func (r *repository[T]) Remove(ctx context.Context, entity *T) error {
	if entity == nil {
		return pkgerrors.Argument("entity must not be nil")
	}
	return r.conn().WithContext(ctx).Delete(entity).Error
}

func (r *repository[T]) RemoveByID(ctx context.Context, id uuid.UUID) error {
	var entity T
	result := r.conn().WithContext(ctx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NotFound("entity not found for deletion")
	}
	return nil
}

func (r *repository[T]) Disable(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.setDeleted(ctx, id, map[string]interface{}{
		"is_deleted": true,
		"deleted_at": &now,
		"updated_at": &now,
	})
}

func (r *repository[T]) Activate(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.setDeleted(ctx, id, map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
		"updated_at": &now,
	})
}

func (r *repository[T]) setDeleted(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	var entity T
	result := r.conn().WithContext(ctx).
		Model(&entity).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NotFound("entity not found")
	}
	return nil
}

func (r *repository[T]) Exists(ctx context.Context, spec specification.Specification) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository[T]) Count(ctx context.Context, spec specification.Specification) (int64, error) {
	var entity T
	var count int64
	query := r.conn().WithContext(ctx).Model(&entity)
	query = applySpec(query, spec)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository[T]) Find(ctx context.Context, spec specification.Specification) ([]*T, error) {
	var entities []*T
	query := applySpec(r.conn().WithContext(ctx), spec)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *repository[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	if err := r.conn().WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *repository[T]) Search(ctx context.Context, query catalog.SearchQuery) (pagination.PagedResult[*T], error) {
	var zero pagination.PagedResult[*T]

	if err := pagination.Validate(query.Page, query.PageSize); err != nil {
		return zero, err
	}

	var entity T
	counting := applySpec(r.conn().WithContext(ctx).Model(&entity), query.Spec)

	var rowCount int64
	if err := counting.Count(&rowCount).Error; err != nil {
		return zero, err
	}

	listing := applySpec(r.conn().WithContext(ctx), query.Spec)
	for _, include := range query.Includes {
		listing = listing.Preload(include)
	}
	listing = listing.Order(orderClause(query.OrderBy)).
		Offset(pagination.Offset(query.Page, query.PageSize)).
		Limit(query.PageSize)

	var entities []*T
	if err := listing.Find(&entities).Error; err != nil {
		return zero, err
	}

	return pagination.NewPagedResult(entities, query.Page, query.PageSize, rowCount), nil
}

func applySpec(db *gorm.DB, spec specification.Specification) *gorm.DB {
	if spec == nil {
		return db
	}
	clause, args := spec.ToSQL()
	return db.Where(clause, args...)
}

// orderClause renders the ordering. Callers whitelist columns before they
// reach this point; a nil sort defaults to ascending id so identical
// queries page identically.
func orderClause(sort *catalog.Sort) string {
	if sort == nil {
		return "id asc"
	}
	direction := "asc"
	if sort.Desc {
		direction = "desc"
	}
	return fmt.Sprintf("%s %s", sort.Column, direction)
}
