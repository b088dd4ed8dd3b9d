package usecase

import (
	"context"

	"go-appointment-scheduling/internal/converter"
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	GetAll(ctx context.Context) (*dto.AuditLogListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
	GetByEntity(ctx context.Context, entityName, entityID string) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAll(ctx context.Context) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

// GetByEntity returns the history of one record, e.g. ("appointment", id).
func (u *auditLogUsecase) GetByEntity(ctx context.Context, entityName, entityID string) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindByEntity(u.db.WithContext(ctx), entityName, entityID)
	if err != nil {
		u.log.Warnf("Failed to find audit logs for %s %s: %+v", entityName, entityID, err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
