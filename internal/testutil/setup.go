package testutil

import (
	"fmt"
	"testing"

	"buddylist/backend/internal/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory SQLite database and migrates it.
// It needs no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Connect(database.Config{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
	}, zerolog.Nop())
	require.NoError(t, err, "SetupTestDB: Connect")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
