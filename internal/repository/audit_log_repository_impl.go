package repository

import (
	"errors"

	"go-appointment-scheduling/internal/domain/entity"
	domainRepo "go-appointment-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Omit("User").Create(log).Error
}

func (r *auditLogRepository) FindAll(db *gorm.DB) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Preload("User").Order("created_at DESC").Order("id DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Preload("User").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// FindByEntity returns the trail of one record, oldest first.
func (r *auditLogRepository) FindByEntity(db *gorm.DB, entityName, entityID string) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := db.Preload("User").
		Where("metadata->>'entity' = ? AND metadata->>'entity_id' = ?", entityName, entityID).
		Order("id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
