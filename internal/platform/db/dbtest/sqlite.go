// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo_backend/internal/platform/db"
)

// OpenSQLite returns an in-memory SQLite database migrated with models.
// The pool is pinned to one connection because every new connection to
// ":memory:" would see an empty database.
func OpenSQLite(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.NewGormConfig())
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		require.NoError(t, db.Migrate(gdb, models...), "failed to migrate tables")
	}
	return gdb
}
