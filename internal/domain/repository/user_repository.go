package repository

import (
	"go-appointment-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	Update(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	FindAll(db *gorm.DB) ([]entity.User, error)
	FindActive(db *gorm.DB) ([]entity.User, error)
	SearchByName(db *gorm.DB, name string) ([]entity.User, error)
	FindByRole(db *gorm.DB, role string) ([]entity.User, error)
	Count(db *gorm.DB) (int64, error)
	CountActive(db *gorm.DB) (int64, error)
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
