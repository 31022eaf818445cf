// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"idcard/internal/config"
	"idcard/internal/db"
	"idcard/internal/logger"
)

// Config returns a SQLite configuration backed by a file in a temp dir.
func Config(t testing.TB) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		DSN:            filepath.Join(t.TempDir(), "idcard.db"),
		ConnectTimeout: 5 * time.Second,
		SocketTimeout:  5 * time.Second,
	}
}

// Open returns a migrated database closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(Config(t), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(context.Background(), gdb))
	return gdb
}
