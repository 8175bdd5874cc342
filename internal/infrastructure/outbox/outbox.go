package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message statuses.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Message is one staged domain event awaiting external delivery. Rows are
// inserted in the same transaction as the aggregate change they describe,
// so delivery never outruns the data.
type Message struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"`
	EventID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	AggregateID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AggregateType string     `gorm:"not null"`
	EventType     string     `gorm:"not null"`
	Payload       []byte     `gorm:"not null"`
	Status        string     `gorm:"not null;default:pending;index"`
	Attempts      int        `gorm:"not null;default:0"`
	LastError     string     `gorm:""`
	CreatedAt     time.Time  `gorm:"not null"`
	PublishedAt   *time.Time `gorm:""`
}

// TableName returns the outbox table name.
func (Message) TableName() string {
	return "outbox_messages"
}

// Store reads and updates staged messages for the relay.
type Store interface {
	// FetchPending returns up to limit pending messages, oldest first.
	FetchPending(ctx context.Context, limit int) ([]Message, error)
	// MarkPublished records a successful delivery.
	MarkPublished(ctx context.Context, id uint) error
	// MarkFailed records a failed attempt; the message stays eligible for
	// retry until maxAttempts is reached.
	MarkFailed(ctx context.Context, id uint, cause error) error
}

// Publisher delivers one staged message to the external broker.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
