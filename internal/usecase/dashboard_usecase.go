package usecase

import (
	"context"
	"time"

	"go-appointment-scheduling/internal/delivery/dto"
	"go-appointment-scheduling/internal/domain/entity"
	"go-appointment-scheduling/internal/domain/repository"
	"go-appointment-scheduling/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const DashboardCacheKey = "dashboard:stats"

type DashboardUsecase interface {
	GetStats(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cache            *cache.Cache
	ttl              time.Duration
	userRepo         repository.UserRepository
	serviceRepo      repository.ServiceRepository
	professionalRepo repository.ProfessionalRepository
	appointmentRepo  repository.AppointmentRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	c *cache.Cache,
	ttl time.Duration,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	professionalRepo repository.ProfessionalRepository,
	appointmentRepo repository.AppointmentRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		cache:            c,
		ttl:              ttl,
		userRepo:         userRepo,
		serviceRepo:      serviceRepo,
		professionalRepo: professionalRepo,
		appointmentRepo:  appointmentRepo,
	}
}

// GetStats serves the counters from Redis for up to ttl. Committed writes in
// the other usecases drop the cached copy.
func (u *dashboardUsecase) GetStats(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := cache.GetOrLoadJSON(ctx, u.cache, DashboardCacheKey, u.ttl, u.load)
	if err != nil {
		u.log.Warnf("Failed to load dashboard stats: %+v", err)
		return nil, err
	}
	return stats, nil
}

func (u *dashboardUsecase) load(ctx context.Context) (*dto.DashboardResponse, error) {
	db := u.db.WithContext(ctx)
	stats := &dto.DashboardResponse{
		AppointmentsByStatus: make(map[string]int64, len(entity.KnownAppointmentStatuses)),
	}

	var err error
	if stats.TotalAppointments, err = u.appointmentRepo.Count(db); err != nil {
		return nil, err
	}
	if stats.ActiveServices, err = u.serviceRepo.CountActive(db); err != nil {
		return nil, err
	}
	if stats.ActiveProfessionals, err = u.professionalRepo.CountActive(db); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = u.userRepo.CountActive(db); err != nil {
		return nil, err
	}

	for _, status := range entity.KnownAppointmentStatuses {
		n, err := u.appointmentRepo.CountByStatus(db, status)
		if err != nil {
			return nil, err
		}
		stats.AppointmentsByStatus[status] = n
	}

	return stats, nil
}

// invalidateDashboard drops the cached counters after a committed write. A
// failure leaves the counters stale until the ttl expires.
func invalidateDashboard(ctx context.Context, c *cache.Cache, log *logrus.Logger) {
	if err := c.Invalidate(ctx, DashboardCacheKey); err != nil {
		log.Warnf("Failed to invalidate dashboard cache: %+v", err)
	}
}
