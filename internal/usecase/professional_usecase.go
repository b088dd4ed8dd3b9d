package usecase

import (
	"context"

	"go-appointment-scheduling/internal/converter"
	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/domain/repository"
	"go-appointment-scheduling/internal/infrastructure/cache"
	"go-appointment-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfessionalUsecase interface {
	Create(ctx context.Context, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.ProfessionalResponse, error)
	GetAll(ctx context.Context) (*dto.ProfessionalListResponse, error)
	GetActive(ctx context.Context) (*dto.ProfessionalListResponse, error)
	SearchBySpecialty(ctx context.Context, specialty string, activeOnly bool) (*dto.ProfessionalListResponse, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeletePermanently(ctx context.Context, id uuid.UUID) error
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cache            *cache.Cache
	userRepo         repository.UserRepository
	professionalRepo repository.ProfessionalRepository
	appointmentRepo  repository.AppointmentRepository
	auditService     service.AuditService
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dashboardCache *cache.Cache,
	userRepo repository.UserRepository,
	professionalRepo repository.ProfessionalRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		cache:            dashboardCache,
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		appointmentRepo:  appointmentRepo,
		auditService:     auditService,
	}
}

// Create requires the backing user to exist and not to back another professional.
func (u *professionalUsecase) Create(ctx context.Context, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	taken, err := u.professionalRepo.ExistsByUserID(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to check professional of user %s: %+v", req.UserID, err)
		return nil, err
	}
	if taken {
		return nil, ErrProfessionalAlreadyExists
	}

	professional := &entity.Professional{
		Specialty:         req.Specialty,
		AvailableSchedule: req.AvailableSchedule,
		IsActive:          true,
		UserID:            user.ID,
		User:              *user,
	}

	if err := u.professionalRepo.Create(tx, professional); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrProfessionalAlreadyExists
		}
		if isForeignKeyError(err, "user") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create professional: %+v", err)
		return nil, err
	}

	resp := converter.ProfessionalToResponse(professional)
	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionProfessionalCreate, "professional", professional.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.log.Infof("Professional created: id=%s, user=%s", professional.ID, user.ID)
	return resp, nil
}

func (u *professionalUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find professional of user %s: %+v", userID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) GetAll(ctx context.Context) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.professionalRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all professionals: %+v", err)
		return nil, err
	}
	return professionalList(professionals), nil
}

func (u *professionalUsecase) GetActive(ctx context.Context) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.professionalRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find active professionals: %+v", err)
		return nil, err
	}
	return professionalList(professionals), nil
}

func (u *professionalUsecase) SearchBySpecialty(ctx context.Context, specialty string, activeOnly bool) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.professionalRepo.SearchBySpecialty(u.db.WithContext(ctx), specialty, activeOnly)
	if err != nil {
		u.log.Warnf("Failed to search professionals by specialty: %+v", err)
		return nil, err
	}
	return professionalList(professionals), nil
}

func (u *professionalUsecase) CountActive(ctx context.Context) (int64, error) {
	count, err := u.professionalRepo.CountActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count active professionals: %+v", err)
		return 0, err
	}
	return count, nil
}

// Update only touches specialty and available schedule.
func (u *professionalUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	oldValue := converter.ProfessionalToResponse(professional)

	professional.Specialty = req.Specialty
	professional.AvailableSchedule = req.AvailableSchedule

	if err := u.professionalRepo.Update(tx, professional); err != nil {
		u.log.Warnf("Failed to update professional %s: %+v", id, err)
		return nil, err
	}

	resp := converter.ProfessionalToResponse(professional)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionProfessionalUpdate, "professional", id.String(), oldValue, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	return resp, nil
}

func (u *professionalUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return err
	}
	if professional == nil {
		return ErrProfessionalNotFound
	}

	if _, err := u.professionalRepo.Deactivate(tx, id); err != nil {
		u.log.Warnf("Failed to deactivate professional %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionProfessionalDeactivate, "professional", id.String(),
		map[string]bool{"is_active": professional.IsActive}, map[string]bool{"is_active": false}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	return nil
}

// DeletePermanently removes the professional and its appointments. The backing
// user is left in place.
func (u *professionalUsecase) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return err
	}
	if professional == nil {
		return ErrProfessionalNotFound
	}

	removed, err := u.appointmentRepo.DeleteByProfessionalID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointments of professional %s: %+v", id, err)
		return err
	}

	if _, err := u.professionalRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete professional %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionProfessionalDelete, "professional", id.String(), converter.ProfessionalToResponse(professional)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.log.Warnf("Professional permanently deleted: id=%s, appointments=%d", id, removed)
	return nil
}

func professionalList(professionals []entity.Professional) *dto.ProfessionalListResponse {
	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalsToResponses(professionals),
		Total:         len(professionals),
	}
}
