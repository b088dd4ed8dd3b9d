package repository_test

import (
	"testing"

	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/repository"
	"go-appointment-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogRepository_FindByEntity(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	actor := createUser(t, db, "Root", "root@x.com")

	require.NoError(t, repo.Create(db, &entity.AuditLog{
		UserID:   &actor.ID,
		Action:   entity.AuditActionServiceCreate,
		Metadata: entity.JSON{"entity": "service", "entity_id": "s-1"},
	}))
	require.NoError(t, repo.Create(db, &entity.AuditLog{
		Action:   entity.AuditActionServiceUpdate,
		Metadata: entity.JSON{"entity": "service", "entity_id": "s-2"},
	}))

	logs, err := repo.FindByEntity(db, "service", "s-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionServiceCreate, logs[0].Action)
	require.NotNil(t, logs[0].User)
	assert.Equal(t, "Root", logs[0].User.Name)

	missing, err := repo.FindByID(db, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.FindAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
