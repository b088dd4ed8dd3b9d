package repository

import (
	"errors"

	"go-appointment-scheduling/internal/domain/entity"
	domainRepo "go-appointment-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) Create(db *gorm.DB, service *entity.Service) error {
	return db.Create(service).Error
}

func (r *serviceRepository) Update(db *gorm.DB, service *entity.Service) error {
	return db.Save(service).Error
}

func (r *serviceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindAll(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	if err := db.Order("created_at ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindActive(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	if err := db.Where("is_active = ?", true).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) SearchByName(db *gorm.DB, name string, activeOnly bool) ([]entity.Service, error) {
	var services []entity.Service
	query := db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(name))
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindByPriceRange returns services priced within [minPrice, maxPrice].
func (r *serviceRepository) FindByPriceRange(db *gorm.DB, minPrice, maxPrice decimal.Decimal) ([]entity.Service, error) {
	var services []entity.Service
	err := db.Where("price >= ? AND price <= ?", minPrice, maxPrice).
		Order("price ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByMaxPrice(db *gorm.DB, maxPrice decimal.Decimal) ([]entity.Service, error) {
	var services []entity.Service
	if err := db.Where("price <= ?", maxPrice).Order("price ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindAllOrderByPrice(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	if err := db.Order("price ASC").Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindAllOrderByName(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	if err := db.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Service{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *serviceRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Service{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *serviceRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Service{})
	return result.RowsAffected, result.Error
}
