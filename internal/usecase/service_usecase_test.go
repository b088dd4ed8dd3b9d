package usecase_test

import (
	"context"
	"testing"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceUsecase_CreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svc := env.createService(t, "Haircut", "20")
	assert.True(t, svc.IsActive)

	updated, err := env.services.Update(ctx, svc.ID, &dto.ServiceRequest{
		Name:        "Haircut Deluxe",
		Description: "wash included",
		Duration:    "45 min",
		Price:       decimal.RequireFromString("27.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Haircut Deluxe", updated.Name)
	assert.Equal(t, "45 min", updated.Duration)
	assert.True(t, decimal.RequireFromString("27.50").Equal(updated.Price))

	stored, err := env.services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "wash included", stored.Description)

	_, err = env.services.Update(ctx, uuid.New(), &dto.ServiceRequest{Name: "x", Duration: "1", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, usecase.ErrServiceNotFound)
}

func TestServiceUsecase_PriceQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createService(t, "Shave", "12.50")
	env.createService(t, "Haircut", "20")
	env.createService(t, "Color", "45")

	inRange, err := env.services.GetByPriceRange(ctx, decimal.NewFromInt(12), decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, 2, inRange.Total)

	cheap, err := env.services.GetByMaxPrice(ctx, decimal.NewFromInt(15))
	require.NoError(t, err)
	require.Equal(t, 1, cheap.Total)
	assert.Equal(t, "Shave", cheap.Services[0].Name)

	byPrice, err := env.services.GetAllOrderedByPrice(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, byPrice.Total)
	assert.Equal(t, "Shave", byPrice.Services[0].Name)
	assert.Equal(t, "Color", byPrice.Services[2].Name)

	byName, err := env.services.GetAllOrderedByName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Color", byName.Services[0].Name)

	_, err = env.services.GetByPriceRange(ctx, decimal.NewFromInt(50), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, usecase.ErrInvalidPriceRange)
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestServiceUsecase_DeactivateKeepsRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	svc := env.createService(t, "Haircut", "20")
	env.createService(t, "Shave", "12")

	require.NoError(t, env.services.Deactivate(ctx, svc.ID))

	stored, err := env.services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := env.services.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active.Total)

	activeMatches, err := env.services.SearchByName(ctx, "hair", true)
	require.NoError(t, err)
	assert.Zero(t, activeMatches.Total)

	allMatches, err := env.services.SearchByName(ctx, "hair", false)
	require.NoError(t, err)
	assert.Equal(t, 1, allMatches.Total)

	n, err := env.services.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestServiceUsecase_DeletePermanentlyCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana := env.createUser(t, "Ana", "ana@example.com")
	haircut := env.createService(t, "Haircut", "20")
	shave := env.createService(t, "Shave", "12")
	professional := env.createProfessional(t, env.createUser(t, "Bob", "bob@example.com").ID, "Barber")

	env.createAppointment(t, ana.ID, haircut.ID, professional.ID, tomorrow())
	kept := env.createAppointment(t, ana.ID, shave.ID, professional.ID, tomorrow())

	require.NoError(t, env.services.DeletePermanently(ctx, haircut.ID))

	_, err := env.services.GetByID(ctx, haircut.ID)
	assert.ErrorIs(t, err, usecase.ErrServiceNotFound)

	remaining, err := env.appointments.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, remaining.Total)
	assert.Equal(t, kept.ID, remaining.Appointments[0].ID)
	assert.Equal(t, int64(2), env.count(t, "users"))

	assert.ErrorIs(t, env.services.DeletePermanently(ctx, haircut.ID), usecase.ErrServiceNotFound)
}
