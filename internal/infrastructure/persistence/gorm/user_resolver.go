package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estantedev/estante/internal/domain/catalog"
)

// UserResolver looks up acting users outside any transaction.
type UserResolver struct {
	db *gorm.DB
}

// NewUserResolver creates a resolver over the given database handle.
func NewUserResolver(db *gorm.DB) *UserResolver {
	return &UserResolver{db: db}
}

// GetByID returns the user or nil when absent.
func (r *UserResolver) GetByID(ctx context.Context, id uuid.UUID) (*catalog.User, error) {
	var user catalog.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
