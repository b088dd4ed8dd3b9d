package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-appointment-scheduling/config"
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/infrastructure/cache"
	"go-appointment-scheduling/internal/repository"
	"go-appointment-scheduling/internal/service"
	"go-appointment-scheduling/internal/testutil"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	redis *miniredis.Miniredis

	jwt    *jwt.JWTService
	tokens service.TokenService

	users         usecase.UserUsecase
	services      usecase.ServiceUsecase
	professionals usecase.ProfessionalUsecase
	appointments  usecase.AppointmentUsecase
	auth          usecase.AuthUsecase
	auditLogs     usecase.AuditLogUsecase
	dashboard     usecase.DashboardUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	log := testutil.NewLogger()
	dashboardCache := cache.New(rdb, log)

	userRepo := repository.NewUserRepository()
	serviceRepo := repository.NewServiceRepository()
	professionalRepo := repository.NewProfessionalRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	tokenService := service.NewTokenService(rdb, log)
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})

	users := usecase.NewUserUsecase(db, log, dashboardCache, userRepo, professionalRepo, appointmentRepo, auditService, tokenService)

	return &testEnv{
		db:            db,
		redis:         mr,
		jwt:           jwtService,
		tokens:        tokenService,
		users:         users,
		services:      usecase.NewServiceUsecase(db, log, dashboardCache, serviceRepo, appointmentRepo, auditService),
		professionals: usecase.NewProfessionalUsecase(db, log, dashboardCache, userRepo, professionalRepo, appointmentRepo, auditService),
		appointments:  usecase.NewAppointmentUsecase(db, log, dashboardCache, appointmentRepo, userRepo, serviceRepo, professionalRepo, auditService),
		auth:          usecase.NewAuthUsecase(db, log, userRepo, users, jwtService, tokenService),
		auditLogs:     usecase.NewAuditLogUsecase(db, log, auditLogRepo),
		dashboard:     usecase.NewDashboardUsecase(db, log, dashboardCache, time.Minute, userRepo, serviceRepo, professionalRepo, appointmentRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string) *dto.UserResponse {
	t.Helper()
	user, err := e.users.Create(context.Background(), &dto.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Phone:    "3001234567",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createService(t *testing.T, name, price string) *dto.ServiceResponse {
	t.Helper()
	svc, err := e.services.Create(context.Background(), &dto.ServiceRequest{
		Name:     name,
		Duration: "30 min",
		Price:    decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return svc
}

func (e *testEnv) createProfessional(t *testing.T, userID uuid.UUID, specialty string) *dto.ProfessionalResponse {
	t.Helper()
	professional, err := e.professionals.Create(context.Background(), &dto.CreateProfessionalRequest{
		UserID:    userID,
		Specialty: specialty,
	})
	require.NoError(t, err)
	return professional
}

func (e *testEnv) createAppointment(t *testing.T, userID, serviceID, professionalID uuid.UUID, at time.Time) *dto.AppointmentResponse {
	t.Helper()
	appointment, err := e.appointments.Create(context.Background(), &dto.CreateAppointmentRequest{
		UserID:         userID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		DateTime:       at,
	})
	require.NoError(t, err)
	return appointment
}

func (e *testEnv) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table(table).Count(&n).Error)
	return n
}

// tomorrow is truncated to the second so round trips through the store compare equal.
func tomorrow() time.Time {
	return time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
}
