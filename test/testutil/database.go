package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/infrastructure/outbox"
)

// NewTestDB opens an in-memory SQLite database migrated with the full
// catalog schema. Each test gets its own named database with a shared
// cache, so the transaction and detached-read connections of one unit of
// work see the same data; the pool keeps one idle connection so the
// database survives between queries.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&catalog.Gender{},
		&catalog.Publisher{},
		&catalog.Book{},
		&catalog.User{},
		&outbox.Message{},
	)
	require.NoError(t, err)

	return db
}
