package service

import (
	"context"

	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type actorKey struct{}

// WithActor records who is acting so audit entries can name them.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns nil for unauthenticated or system calls.
func ActorFromContext(ctx context.Context) *uuid.UUID {
	userID, ok := ctx.Value(actorKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil
	}
	return &userID
}

// AuditService writes audit entries inside the caller's transaction.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, action, entityName, entityID, nil, newValue)
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, action, entityName, entityID, oldValue, newValue)
}

func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, tx, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, action, entityName, entityID string, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		UserID: ActorFromContext(ctx),
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	// A savepoint keeps a failed insert from aborting the caller's transaction.
	err := tx.Transaction(func(sp *gorm.DB) error {
		return s.auditRepo.Create(sp, auditLog)
	})
	if err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
