package repository

import (
	"errors"

	"go-appointment-scheduling/internal/domain/entity"
	domainRepo "go-appointment-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	if err := db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindActive(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	if err := db.Where("is_active = ?", true).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SearchByName matches a case-insensitive substring of the user's name.
func (r *userRepository) SearchByName(db *gorm.DB, name string) ([]entity.User, error) {
	var users []entity.User
	err := db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(name)).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByRole(db *gorm.DB, role string) ([]entity.User, error) {
	var users []entity.User
	if err := db.Where("role = ?", role).Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// Deactivate flips is_active off. Returns affected rows: 0 means no such user.
func (r *userRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.User{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *userRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, result.Error
}
