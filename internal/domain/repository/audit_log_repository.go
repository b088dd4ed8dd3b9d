package repository

import (
	"go-appointment-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB) ([]entity.AuditLog, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	FindByEntity(db *gorm.DB, entityName, entityID string) ([]entity.AuditLog, error)
}
