package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-appointment-scheduling/internal/converter"
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/infrastructure/cache"
	"go-appointment-scheduling/internal/repository"
	"go-appointment-scheduling/internal/service"
	"go-appointment-scheduling/internal/testutil"
	"go-appointment-scheduling/internal/usecase"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAppointmentUsecase_BookingScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana := env.createUser(t, "Ana", "ana@example.com")
	haircut := env.createService(t, "Haircut", "20")
	bob := env.createUser(t, "Bob", "bob@example.com")
	barber := env.createProfessional(t, bob.ID, "Barber")

	at := tomorrow()
	appointment, err := env.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		UserID:         ana.ID,
		ServiceID:      haircut.ID,
		ProfessionalID: barber.ID,
		DateTime:       at,
		Notes:          "first visit",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, appointment.ID)
	assert.Equal(t, entity.AppointmentStatusPending, appointment.Status)
	assert.True(t, at.Equal(appointment.DateTime))
	assert.Equal(t, "first visit", appointment.Notes)
	assert.Equal(t, ana.ID, appointment.UserID)
	assert.Equal(t, "Ana", appointment.UserName)
	assert.Equal(t, "Haircut", appointment.ServiceName)
	assert.True(t, decimal.NewFromInt(20).Equal(appointment.ServicePrice))
	assert.Equal(t, "Bob", appointment.ProfessionalName)
	assert.Equal(t, "Barber", appointment.ProfessionalSpecialty)
	assert.False(t, appointment.CreatedAt.IsZero())

	stored, err := env.appointments.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.ServiceName, stored.ServiceName)
	assert.Equal(t, appointment.ProfessionalName, stored.ProfessionalName)
	assert.True(t, at.Equal(stored.DateTime))

	byUser, err := env.appointments.GetByUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, byUser.Total)
}

func TestAppointmentUsecase_CreateKeepsExplicitStatus(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")

	appointment, err := env.appointments.Create(context.Background(), &dto.CreateAppointmentRequest{
		UserID:         user.ID,
		ServiceID:      svc.ID,
		ProfessionalID: professional.ID,
		DateTime:       tomorrow(),
		Status:         entity.AppointmentStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConfirmed, appointment.Status)
}

func TestAppointmentUsecase_CreateUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")

	tests := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		wantErr error
	}{
		{
			name:    "unknown service",
			req:     dto.CreateAppointmentRequest{UserID: user.ID, ServiceID: uuid.New(), ProfessionalID: professional.ID},
			wantErr: usecase.ErrServiceNotFound,
		},
		{
			name:    "unknown professional",
			req:     dto.CreateAppointmentRequest{UserID: user.ID, ServiceID: svc.ID, ProfessionalID: uuid.New()},
			wantErr: usecase.ErrProfessionalNotFound,
		},
		{
			name:    "user is resolved first",
			req:     dto.CreateAppointmentRequest{UserID: uuid.New(), ServiceID: uuid.New(), ProfessionalID: uuid.New()},
			wantErr: usecase.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.DateTime = tomorrow()

			_, err := env.appointments.Create(ctx, &req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, usecase.ErrNotFound)
			assert.Zero(t, env.count(t, "appointments"))
		})
	}
}

func TestAppointmentUsecase_CreateRejectsPastDate(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")

	_, err := env.appointments.Create(context.Background(), &dto.CreateAppointmentRequest{
		UserID:         user.ID,
		ServiceID:      svc.ID,
		ProfessionalID: professional.ID,
		DateTime:       time.Now().Add(-time.Hour),
	})
	require.ErrorIs(t, err, usecase.ErrAppointmentNotFuture)
	assert.ErrorIs(t, err, usecase.ErrValidation)
	assert.Zero(t, env.count(t, "appointments"))
}

func TestAppointmentUsecase_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	haircut := env.createService(t, "Haircut", "20")
	shave := env.createService(t, "Shave", "12.50")
	barber := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	stylist := env.createProfessional(t, env.createUser(t, "Cleo", "cleo@example.com").ID, "Stylist")

	appointment := env.createAppointment(t, user.ID, haircut.ID, barber.ID, tomorrow())
	newTime := tomorrow().Add(2 * time.Hour)

	updated, err := env.appointments.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{
		ServiceID:      shave.ID,
		ProfessionalID: stylist.ID,
		DateTime:       newTime,
		Status:         entity.AppointmentStatusConfirmed,
		Notes:          "moved",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.UserID)
	assert.Equal(t, "Shave", updated.ServiceName)
	assert.True(t, decimal.RequireFromString("12.50").Equal(updated.ServicePrice))
	assert.Equal(t, "Cleo", updated.ProfessionalName)
	assert.Equal(t, "Stylist", updated.ProfessionalSpecialty)
	assert.Equal(t, entity.AppointmentStatusConfirmed, updated.Status)
	assert.Equal(t, "moved", updated.Notes)
	assert.True(t, newTime.Equal(updated.DateTime))

	stored, err := env.appointments.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, shave.ID, stored.ServiceID)
	assert.Equal(t, stylist.ID, stored.ProfessionalID)
}

func TestAppointmentUsecase_UpdateUnknownProfessionalLeavesRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	barber := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	appointment := env.createAppointment(t, user.ID, svc.ID, barber.ID, tomorrow())

	_, err := env.appointments.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{
		ServiceID:      svc.ID,
		ProfessionalID: uuid.New(),
		DateTime:       tomorrow().Add(time.Hour),
		Status:         "CONFIRMED",
	})
	require.ErrorIs(t, err, usecase.ErrProfessionalNotFound)

	stored, err := env.appointments.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, barber.ID, stored.ProfessionalID)
	assert.Equal(t, entity.AppointmentStatusPending, stored.Status)

	_, err = env.appointments.Update(ctx, uuid.New(), &dto.UpdateAppointmentRequest{
		ServiceID:      svc.ID,
		ProfessionalID: barber.ID,
		DateTime:       tomorrow(),
		Status:         "CONFIRMED",
	})
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)
}

func TestAppointmentUsecase_UpdateRejectsBlankStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	barber := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	appointment := env.createAppointment(t, user.ID, svc.ID, barber.ID, tomorrow())

	_, err := env.appointments.Update(ctx, appointment.ID, &dto.UpdateAppointmentRequest{
		ServiceID:      svc.ID,
		ProfessionalID: barber.ID,
		DateTime:       tomorrow().Add(time.Hour),
		Status:         "  ",
		Notes:          "moved",
	})
	require.ErrorIs(t, err, usecase.ErrBlankStatus)

	stored, err := env.appointments.GetByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusPending, stored.Status)
	assert.Empty(t, stored.Notes)
}

func TestAppointmentUsecase_ChangeStatusIsFreeform(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	appointment := env.createAppointment(t, user.ID, svc.ID, professional.ID, tomorrow())

	for _, status := range []string{entity.AppointmentStatusCompleted, entity.AppointmentStatusPending, "NO_SHOW"} {
		changed, err := env.appointments.ChangeStatus(ctx, appointment.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, changed.Status)
	}

	for _, blank := range []string{"", "   ", "\t"} {
		_, err := env.appointments.ChangeStatus(ctx, appointment.ID, blank)
		require.ErrorIs(t, err, usecase.ErrBlankStatus)
		assert.ErrorIs(t, err, usecase.ErrValidation)
	}

	byStatus, err := env.appointments.GetByStatus(ctx, "NO_SHOW")
	require.NoError(t, err)
	assert.Equal(t, 1, byStatus.Total)

	_, err = env.appointments.ChangeStatus(ctx, uuid.New(), "CONFIRMED")
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)
}

func TestAppointmentUsecase_DeleteLeavesReferencedRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	appointment := env.createAppointment(t, user.ID, svc.ID, professional.ID, tomorrow())

	require.NoError(t, env.appointments.Delete(ctx, appointment.ID))

	_, err := env.appointments.GetByID(ctx, appointment.ID)
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)
	assert.Equal(t, int64(2), env.count(t, "users"))
	assert.Equal(t, int64(1), env.count(t, "services"))
	assert.Equal(t, int64(1), env.count(t, "professionals"))

	assert.ErrorIs(t, env.appointments.Delete(ctx, appointment.ID), usecase.ErrAppointmentNotFound)
}

func TestAppointmentUsecase_ProjectionFailsOnDanglingReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	appointment := env.createAppointment(t, user.ID, svc.ID, professional.ID, tomorrow())

	// SQLite does not enforce foreign keys here, so the row can be removed underneath.
	require.NoError(t, env.db.Exec("DELETE FROM services WHERE id = ?", svc.ID).Error)

	_, err := env.appointments.GetByID(ctx, appointment.ID)
	require.ErrorIs(t, err, converter.ErrIncompleteAppointment)

	_, err = env.appointments.GetAll(ctx)
	assert.ErrorIs(t, err, converter.ErrIncompleteAppointment)
}

func TestAppointmentUsecase_TimeQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "Ana", "ana@example.com")
	svc := env.createService(t, "Haircut", "20")
	barber := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")
	stylist := env.createProfessional(t, env.createUser(t, "Cleo", "cleo@example.com").ID, "Stylist")

	past := &entity.Appointment{
		DateTime:       time.Now().Add(-48 * time.Hour).UTC(),
		UserID:         user.ID,
		ServiceID:      svc.ID,
		ProfessionalID: barber.ID,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repository.NewAppointmentRepository().Create(env.db, past))

	soon := env.createAppointment(t, user.ID, svc.ID, barber.ID, tomorrow())
	later := env.createAppointment(t, user.ID, svc.ID, stylist.ID, tomorrow().Add(72*time.Hour))

	upcoming, err := env.appointments.GetUpcoming(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, upcoming.Total)
	assert.Equal(t, soon.ID, upcoming.Appointments[0].ID)
	assert.Equal(t, later.ID, upcoming.Appointments[1].ID)

	pastList, err := env.appointments.GetPast(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, pastList.Total)
	assert.Equal(t, past.ID, pastList.Appointments[0].ID)

	inRange, err := env.appointments.GetInRange(ctx, time.Now(), tomorrow().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, inRange.Total)
	assert.Equal(t, soon.ID, inRange.Appointments[0].ID)

	agenda, err := env.appointments.GetByProfessionalInRange(ctx, stylist.ID, time.Now(), tomorrow().Add(96*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, agenda.Total)
	assert.Equal(t, later.ID, agenda.Appointments[0].ID)

	_, err = env.appointments.GetInRange(ctx, tomorrow(), time.Now())
	assert.ErrorIs(t, err, usecase.ErrInvalidTimeRange)
	_, err = env.appointments.GetByProfessionalInRange(ctx, barber.ID, tomorrow(), time.Now())
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestAppointmentUsecase_WritesAuditTrail(t *testing.T) {
	env := newTestEnv(t)

	actor := env.createUser(t, "Admin", "admin@example.com")
	ctx := service.WithActor(context.Background(), actor.ID)

	svc := env.createService(t, "Haircut", "20")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")

	appointment, err := env.appointments.Create(ctx, &dto.CreateAppointmentRequest{
		UserID:         actor.ID,
		ServiceID:      svc.ID,
		ProfessionalID: professional.ID,
		DateTime:       tomorrow(),
	})
	require.NoError(t, err)
	_, err = env.appointments.ChangeStatus(ctx, appointment.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	require.NoError(t, env.appointments.Delete(ctx, appointment.ID))

	history, err := env.auditLogs.GetByEntity(context.Background(), "appointment", appointment.ID.String())
	require.NoError(t, err)
	require.Equal(t, 3, history.Total)

	actions := make([]string, 0, history.Total)
	for _, l := range history.Logs {
		actions = append(actions, l.Action)
		require.NotNil(t, l.User)
		assert.Equal(t, actor.ID, l.User.ID)
	}
	assert.ElementsMatch(t, []string{
		entity.AuditActionAppointmentCreate,
		entity.AuditActionAppointmentStatus,
		entity.AuditActionAppointmentDelete,
	}, actions)
}

func TestAppointmentUsecase_StoreFailureIsPropagated(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	log := testutil.NewLogger()
	rdb, _ := testutil.NewRedis(t)
	uc := usecase.NewAppointmentUsecase(
		db, log, cache.New(rdb, log),
		repository.NewAppointmentRepository(),
		repository.NewUserRepository(),
		repository.NewServiceRepository(),
		repository.NewProfessionalRepository(),
		service.NewAuditService(log, repository.NewAuditLogRepository()),
	)

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery(".*").WillReturnError(boom)
	mock.ExpectRollback()

	_, err = uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		UserID:         uuid.New(),
		ServiceID:      uuid.New(),
		ProfessionalID: uuid.New(),
		DateTime:       tomorrow(),
	})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, usecase.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
