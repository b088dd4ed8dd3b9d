package database

import (
	"fmt"

	"go-appointment-scheduling/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the store selected by cfg.Driver.
func Open(cfg config.DBConfig, logMode logger.LogLevel) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "postgres":
		return NewPostgresConnection(cfg, logMode)
	case "sqlite":
		return NewSQLiteConnection(cfg.Path, logMode)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
