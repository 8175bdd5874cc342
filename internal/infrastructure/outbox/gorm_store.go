package outbox

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GormStore is the relational outbox store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over the given database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FetchPending returns pending messages in insertion order. Messages that
// exhausted their retry budget are excluded.
func (s *GormStore) FetchPending(ctx context.Context, limit int) ([]Message, error) {
	var messages []Message
	err := s.db.WithContext(ctx).
		Where("status = ? AND attempts < ?", StatusPending, maxAttempts).
		Order("id asc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkPublished records a successful delivery.
func (s *GormStore) MarkPublished(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(&Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       StatusPublished,
			"published_at": &now,
		}).Error
}

// MarkFailed bumps the attempt counter; the message flips to failed once
// the retry budget is spent.
func (s *GormStore) MarkFailed(ctx context.Context, id uint, cause error) error {
	return s.db.WithContext(ctx).
		Model(&Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause.Error(),
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts, StatusFailed, StatusPending,
			),
		}).Error
}
