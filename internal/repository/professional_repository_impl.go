package repository

import (
	"errors"

	"go-appointment-scheduling/internal/domain/entity"
	domainRepo "go-appointment-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(db *gorm.DB, professional *entity.Professional) error {
	return db.Omit(clause.Associations).Create(professional).Error
}

func (r *professionalRepository) Update(db *gorm.DB, professional *entity.Professional) error {
	return db.Omit(clause.Associations).Save(professional).Error
}

func (r *professionalRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Professional, error) {
	var professional entity.Professional
	err := db.Preload("User").Where("id = ?", id).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Professional, error) {
	var professional entity.Professional
	err := db.Preload("User").Where("user_id = ?", userID).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) ExistsByUserID(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.Professional{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *professionalRepository) FindAll(db *gorm.DB) ([]entity.Professional, error) {
	var professionals []entity.Professional
	if err := db.Preload("User").Order("created_at ASC").Find(&professionals).Error; err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) FindActive(db *gorm.DB) ([]entity.Professional, error) {
	var professionals []entity.Professional
	err := db.Preload("User").
		Where("is_active = ?", true).
		Order("specialty ASC").
		Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

// SearchBySpecialty matches a case-insensitive substring of the specialty.
func (r *professionalRepository) SearchBySpecialty(db *gorm.DB, specialty string, activeOnly bool) ([]entity.Professional, error) {
	var professionals []entity.Professional
	query := db.Preload("User").Where(`LOWER(specialty) LIKE ? ESCAPE '\'`, containsPattern(specialty))
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("specialty ASC").Find(&professionals).Error; err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Professional{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *professionalRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Professional{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *professionalRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Professional{})
	return result.RowsAffected, result.Error
}
