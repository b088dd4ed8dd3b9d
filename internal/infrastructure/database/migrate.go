package database

import (
	"fmt"

	"go-appointment-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

// Models lists every table owned by the application, parents first.
var Models = []interface{}{
	&entity.User{},
	&entity.Service{},
	&entity.Professional{},
	&entity.Appointment{},
	&entity.AuditLog{},
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
