package service_test

import (
	"context"
	"testing"

	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/repository"
	"go-appointment-scheduling/internal/service"
	"go-appointment-scheduling/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RecordsActorAndValues(t *testing.T) {
	db := testutil.NewDB(t)
	auditRepo := repository.NewAuditLogRepository()
	svc := service.NewAuditService(testutil.NewLogger(), auditRepo)

	actorID := uuid.New()
	ctx := service.WithActor(context.Background(), actorID)

	tx := db.Begin()
	require.NoError(t, svc.LogUpdate(ctx, tx, entity.AuditActionAppointmentStatus, "appointment", "a-1",
		map[string]string{"status": "PENDING"}, map[string]string{"status": "CONFIRMED"}))
	require.NoError(t, tx.Commit().Error)

	logs, err := auditRepo.FindByEntity(db, "appointment", "a-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, actorID, *logs[0].UserID)
	assert.Equal(t, entity.AuditActionAppointmentStatus, logs[0].Action)
	assert.Equal(t, map[string]interface{}{"status": "PENDING"}, logs[0].Metadata["old_value"])
	assert.Equal(t, map[string]interface{}{"status": "CONFIRMED"}, logs[0].Metadata["new_value"])
}

func TestAuditService_RolledBackWithCaller(t *testing.T) {
	db := testutil.NewDB(t)
	auditRepo := repository.NewAuditLogRepository()
	svc := service.NewAuditService(testutil.NewLogger(), auditRepo)

	tx := db.Begin()
	require.NoError(t, svc.LogDelete(context.Background(), tx, entity.AuditActionServiceDelete, "service", "s-1", nil))
	require.NoError(t, tx.Rollback().Error)

	logs, err := auditRepo.FindAll(db)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestActorFromContext(t *testing.T) {
	assert.Nil(t, service.ActorFromContext(context.Background()))
	assert.Nil(t, service.ActorFromContext(service.WithActor(context.Background(), uuid.Nil)))
}
