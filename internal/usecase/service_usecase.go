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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ServiceUsecase manages the service catalog.
type ServiceUsecase interface {
	Create(ctx context.Context, req *dto.ServiceRequest) (*dto.ServiceResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	GetAll(ctx context.Context) (*dto.ServiceListResponse, error)
	GetActive(ctx context.Context) (*dto.ServiceListResponse, error)
	SearchByName(ctx context.Context, name string, activeOnly bool) (*dto.ServiceListResponse, error)
	GetByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) (*dto.ServiceListResponse, error)
	GetByMaxPrice(ctx context.Context, maxPrice decimal.Decimal) (*dto.ServiceListResponse, error)
	GetAllOrderedByPrice(ctx context.Context) (*dto.ServiceListResponse, error)
	GetAllOrderedByName(ctx context.Context) (*dto.ServiceListResponse, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.ServiceRequest) (*dto.ServiceResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeletePermanently(ctx context.Context, id uuid.UUID) error
}

type serviceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cache           *cache.Cache
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dashboardCache *cache.Cache,
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:              db,
		log:             log,
		cache:           dashboardCache,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, req *dto.ServiceRequest) (*dto.ServiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		IsActive:    true,
	}

	if err := u.serviceRepo.Create(tx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	resp := converter.ServiceToResponse(svc)
	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionServiceCreate, "service", svc.ID.String(), resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	return resp, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) GetAll(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all services: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) GetActive(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find active services: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) SearchByName(ctx context.Context, name string, activeOnly bool) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.SearchByName(u.db.WithContext(ctx), name, activeOnly)
	if err != nil {
		u.log.Warnf("Failed to search services by name: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) GetByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) (*dto.ServiceListResponse, error) {
	if minPrice.GreaterThan(maxPrice) {
		return nil, ErrInvalidPriceRange
	}

	services, err := u.serviceRepo.FindByPriceRange(u.db.WithContext(ctx), minPrice, maxPrice)
	if err != nil {
		u.log.Warnf("Failed to find services by price range: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) GetByMaxPrice(ctx context.Context, maxPrice decimal.Decimal) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindByMaxPrice(u.db.WithContext(ctx), maxPrice)
	if err != nil {
		u.log.Warnf("Failed to find services by max price: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) GetAllOrderedByPrice(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAllOrderByPrice(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list services by price: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) GetAllOrderedByName(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAllOrderByName(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list services by name: %+v", err)
		return nil, err
	}
	return serviceList(services), nil
}

func (u *serviceUsecase) CountActive(ctx context.Context) (int64, error) {
	count, err := u.serviceRepo.CountActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count active services: %+v", err)
		return 0, err
	}
	return count, nil
}

// Update overwrites every field except id and the active flag.
func (u *serviceUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.ServiceRequest) (*dto.ServiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	oldValue := converter.ServiceToResponse(svc)

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Duration = req.Duration
	svc.Price = req.Price

	if err := u.serviceRepo.Update(tx, svc); err != nil {
		u.log.Warnf("Failed to update service %s: %+v", id, err)
		return nil, err
	}

	resp := converter.ServiceToResponse(svc)
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionServiceUpdate, "service", id.String(), oldValue, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	return resp, nil
}

func (u *serviceUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	if _, err := u.serviceRepo.Deactivate(tx, id); err != nil {
		u.log.Warnf("Failed to deactivate service %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionServiceDeactivate, "service", id.String(),
		map[string]bool{"is_active": svc.IsActive}, map[string]bool{"is_active": false}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	return nil
}

// DeletePermanently removes the service and every appointment booked for it.
func (u *serviceUsecase) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	removed, err := u.appointmentRepo.DeleteByServiceID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointments of service %s: %+v", id, err)
		return err
	}

	if _, err := u.serviceRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete service %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionServiceDelete, "service", id.String(), converter.ServiceToResponse(svc)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.log.Warnf("Service permanently deleted: id=%s, appointments=%d", id, removed)
	return nil
}

func serviceList(services []entity.Service) *dto.ServiceListResponse {
	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}
}
