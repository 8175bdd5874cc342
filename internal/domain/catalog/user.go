package catalog

import (
	"time"

	"github.com/google/uuid"
)

// User is the acting user recorded on delete transitions. Identity
// management itself lives outside this service; only the lookup surface is
// consumed here.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the users table name.
func (User) TableName() string {
	return "users"
}
