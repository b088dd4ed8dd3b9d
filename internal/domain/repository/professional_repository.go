package repository

import (
	"go-appointment-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(db *gorm.DB, professional *entity.Professional) error
	Update(db *gorm.DB, professional *entity.Professional) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Professional, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Professional, error)
	ExistsByUserID(db *gorm.DB, userID uuid.UUID) (bool, error)
	FindAll(db *gorm.DB) ([]entity.Professional, error)
	FindActive(db *gorm.DB) ([]entity.Professional, error)
	SearchBySpecialty(db *gorm.DB, specialty string, activeOnly bool) ([]entity.Professional, error)
	CountActive(db *gorm.DB) (int64, error)
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
