package repository_test

import (
	"testing"
	"time"

	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, name, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:         name,
		Email:        email,
		Password:     "hash",
		RegisteredAt: time.Now().UTC(),
		Role:         entity.RoleClient,
		IsActive:     true,
	}
	require.NoError(t, repository.NewUserRepository().Create(db, user))
	return user
}

func createService(t *testing.T, db *gorm.DB, name string, price string) *entity.Service {
	t.Helper()
	service := &entity.Service{
		Name:     name,
		Duration: "30 min",
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	require.NoError(t, repository.NewServiceRepository().Create(db, service))
	return service
}

func createProfessional(t *testing.T, db *gorm.DB, userID uuid.UUID, specialty string) *entity.Professional {
	t.Helper()
	professional := &entity.Professional{
		Specialty: specialty,
		UserID:    userID,
		IsActive:  true,
	}
	require.NoError(t, repository.NewProfessionalRepository().Create(db, professional))
	return professional
}

func createAppointment(t *testing.T, db *gorm.DB, user *entity.User, service *entity.Service, professional *entity.Professional, at time.Time) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		DateTime:       at,
		UserID:         user.ID,
		ServiceID:      service.ID,
		ProfessionalID: professional.ID,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repository.NewAppointmentRepository().Create(db, appointment))
	return appointment
}
