// Package testutil wires throwaway infrastructure for package tests: a
// migrated SQLite file per test, an in-memory Redis and a quiet logger.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"go-appointment-scheduling/internal/infrastructure/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "test.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func NewRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
