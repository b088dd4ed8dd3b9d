package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection opens a file-backed SQLite database. Used for local runs
// without PostgreSQL and by the package tests.
func NewSQLiteConnection(path string, logMode logger.LogLevel) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	logrus.Infof("Successfully opened SQLite database at %s", path)

	return db, nil
}
