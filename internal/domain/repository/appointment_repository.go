package repository

import (
	"time"

	"go-appointment-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository reads always preload User, Service and Professional.User
// so callers can build the denormalized projection.
type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error)
	FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) ([]entity.Appointment, error)
	FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Appointment, error)
	FindByStatus(db *gorm.DB, status string) ([]entity.Appointment, error)
	FindUpcoming(db *gorm.DB, now time.Time) ([]entity.Appointment, error)
	FindPast(db *gorm.DB, now time.Time) ([]entity.Appointment, error)
	FindInRange(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status string) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByUserID(db *gorm.DB, userID uuid.UUID) (int64, error)
	DeleteByServiceID(db *gorm.DB, serviceID uuid.UUID) (int64, error)
	DeleteByProfessionalID(db *gorm.DB, professionalID uuid.UUID) (int64, error)
}
