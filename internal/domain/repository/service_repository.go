package repository

import (
	"go-appointment-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	Update(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
	FindActive(db *gorm.DB) ([]entity.Service, error)
	SearchByName(db *gorm.DB, name string, activeOnly bool) ([]entity.Service, error)
	FindByPriceRange(db *gorm.DB, minPrice, maxPrice decimal.Decimal) ([]entity.Service, error)
	FindByMaxPrice(db *gorm.DB, maxPrice decimal.Decimal) ([]entity.Service, error)
	FindAllOrderByPrice(db *gorm.DB) ([]entity.Service, error)
	FindAllOrderByName(db *gorm.DB) ([]entity.Service, error)
	CountActive(db *gorm.DB) (int64, error)
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
