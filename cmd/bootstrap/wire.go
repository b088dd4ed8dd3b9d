package bootstrap

import (
	"net/http"

	"go-appointment-scheduling/config"
	deliveryHttp "go-appointment-scheduling/internal/delivery/http"
	"go-appointment-scheduling/internal/delivery/http/handler"
	"go-appointment-scheduling/internal/delivery/http/middleware"
	"go-appointment-scheduling/internal/infrastructure/cache"
	"go-appointment-scheduling/internal/repository"
	"go-appointment-scheduling/internal/service"
	"go-appointment-scheduling/internal/usecase"
	"go-appointment-scheduling/pkg/jwt"
	"go-appointment-scheduling/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewHandler wires every layer and returns the root HTTP handler.
func NewHandler(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, registry *prometheus.Registry) http.Handler {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	serviceRepo := repository.NewServiceRepository()
	professionalRepo := repository.NewProfessionalRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenService := service.NewTokenService(redisClient, log)
	dashboardCache := cache.New(redisClient, log)

	// Initialize usecases
	userUsecase := usecase.NewUserUsecase(db, log, dashboardCache, userRepo, professionalRepo, appointmentRepo, auditService, tokenService)
	serviceUsecase := usecase.NewServiceUsecase(db, log, dashboardCache, serviceRepo, appointmentRepo, auditService)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, dashboardCache, userRepo, professionalRepo, appointmentRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, dashboardCache, appointmentRepo, userRepo, serviceRepo, professionalRepo, auditService)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, userUsecase, jwtService, tokenService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, dashboardCache, cfg.Cache.DashboardTTL,
		userRepo, serviceRepo, professionalRepo, appointmentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	professionalHandler := handler.NewProfessionalHandler(professionalUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenService)
	metricsMiddleware := middleware.NewMetricsMiddleware(registry)
	corsMiddleware := middleware.NewCORSMiddleware()
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		serviceHandler,
		professionalHandler,
		appointmentHandler,
		dashboardHandler,
		auditLogHandler,
		authMiddleware,
		metricsMiddleware,
		registry,
	)

	return middleware.Chain(router.Setup(),
		middleware.RequestID,
		middleware.AccessLog(log),
		corsMiddleware.Handle,
		rateLimiter.Handle,
	)
}
