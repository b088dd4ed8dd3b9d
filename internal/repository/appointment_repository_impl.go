package repository

import (
	"errors"
	"time"

	"go-appointment-scheduling/internal/domain/entity"
	domainRepo "go-appointment-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// withRelations preloads everything the projection needs.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Service").Preload("Professional.User")
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

// Update writes the appointment's own columns. Preloaded relations are never
// written back, so changing ServiceID or ProfessionalID is enough to re-point it.
func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := withRelations(db).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := withRelations(db).Order("date_time DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := withRelations(db).
		Where("user_id = ?", userID).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := withRelations(db).
		Where("professional_id = ?", professionalID).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := withRelations(db).
		Where("service_id = ?", serviceID).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByStatus(db *gorm.DB, status string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := withRelations(db).
		Where("status = ?", status).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindUpcoming returns appointments at or after now, soonest first.
func (r *appointmentRepository) FindUpcoming(db *gorm.DB, now time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := withRelations(db).
		Where("date_time >= ?", now.UTC()).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindPast returns appointments strictly before now, most recent first.
func (r *appointmentRepository) FindPast(db *gorm.DB, now time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := withRelations(db).
		Where("date_time < ?", now.UTC()).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindInRange(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := withRelations(db).Where("date_time BETWEEN ? AND ?", filter.Start.UTC(), filter.End.UTC())
	if filter.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *filter.ProfessionalID)
	}
	if err := query.Order("date_time ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, status string) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByUserID(db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByServiceID(db *gorm.DB, serviceID uuid.UUID) (int64, error) {
	result := db.Where("service_id = ?", serviceID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByProfessionalID(db *gorm.DB, professionalID uuid.UUID) (int64, error) {
	result := db.Where("professional_id = ?", professionalID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
