package http

import (
	"net/http"

	"go-appointment-scheduling/internal/delivery/http/handler"
	"go-appointment-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	serviceHandler      *handler.ServiceHandler
	professionalHandler *handler.ProfessionalHandler
	appointmentHandler  *handler.AppointmentHandler
	dashboardHandler    *handler.DashboardHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	gatherer            prometheus.Gatherer
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	serviceHandler *handler.ServiceHandler,
	professionalHandler *handler.ProfessionalHandler,
	appointmentHandler *handler.AppointmentHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	gatherer prometheus.Gatherer,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		serviceHandler:      serviceHandler,
		professionalHandler: professionalHandler,
		appointmentHandler:  appointmentHandler,
		dashboardHandler:    dashboardHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		metricsMiddleware:   metricsMiddleware,
		gatherer:            gatherer,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	api.Handle("/dashboard", r.authMiddleware.Authenticate(http.HandlerFunc(r.dashboardHandler.GetStats))).Methods(http.MethodGet)

	r.setupServiceRoutes(api.PathPrefix("/services").Subrouter())
	r.setupProfessionalRoutes(api.PathPrefix("/professionals").Subrouter())
	r.setupAppointmentRoutes(api.PathPrefix("/appointments").Subrouter())

	// User management (admin)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.Use(middleware.RequireAdmin)
	users.HandleFunc("", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	users.HandleFunc("", r.userHandler.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("/active", r.userHandler.GetActiveUsers).Methods(http.MethodGet)
	users.HandleFunc("/search", r.userHandler.SearchUsers).Methods(http.MethodGet)
	users.HandleFunc("/role/{role}", r.userHandler.GetUsersByRole).Methods(http.MethodGet)
	users.HandleFunc("/email/{email}", r.userHandler.GetUserByEmail).Methods(http.MethodGet)
	users.HandleFunc("/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", r.userHandler.DeactivateUser).Methods(http.MethodDelete)
	users.HandleFunc("/{id}/permanent", r.userHandler.DeleteUserPermanently).Methods(http.MethodDelete)

	// Audit trail (admin)
	auditLogs := api.PathPrefix("/audit-logs").Subrouter()
	auditLogs.Use(r.authMiddleware.Authenticate)
	auditLogs.Use(middleware.RequireAdmin)
	auditLogs.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) setupServiceRoutes(services *mux.Router) {
	services.Use(r.authMiddleware.Authenticate)
	services.HandleFunc("", r.serviceHandler.GetAllServices).Methods(http.MethodGet)
	services.HandleFunc("", r.serviceHandler.CreateService).Methods(http.MethodPost)
	services.HandleFunc("/active", r.serviceHandler.GetActiveServices).Methods(http.MethodGet)
	services.HandleFunc("/search", r.serviceHandler.SearchServices).Methods(http.MethodGet)
	services.HandleFunc("/price-range", r.serviceHandler.GetServicesByPriceRange).Methods(http.MethodGet)
	services.HandleFunc("/max-price", r.serviceHandler.GetServicesByMaxPrice).Methods(http.MethodGet)
	services.HandleFunc("/order/price", r.serviceHandler.GetServicesOrderedByPrice).Methods(http.MethodGet)
	services.HandleFunc("/order/name", r.serviceHandler.GetServicesOrderedByName).Methods(http.MethodGet)
	services.HandleFunc("/{id}", r.serviceHandler.GetService).Methods(http.MethodGet)
	services.HandleFunc("/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	services.HandleFunc("/{id}", r.serviceHandler.DeactivateService).Methods(http.MethodDelete)
	services.Handle("/{id}/permanent", middleware.RequireAdmin(http.HandlerFunc(r.serviceHandler.DeleteServicePermanently))).Methods(http.MethodDelete)
}

func (r *Router) setupProfessionalRoutes(professionals *mux.Router) {
	professionals.Use(r.authMiddleware.Authenticate)
	professionals.HandleFunc("", r.professionalHandler.GetAllProfessionals).Methods(http.MethodGet)
	professionals.HandleFunc("", r.professionalHandler.CreateProfessional).Methods(http.MethodPost)
	professionals.HandleFunc("/active", r.professionalHandler.GetActiveProfessionals).Methods(http.MethodGet)
	professionals.HandleFunc("/search", r.professionalHandler.SearchProfessionals).Methods(http.MethodGet)
	professionals.HandleFunc("/user/{userId}", r.professionalHandler.GetProfessionalByUser).Methods(http.MethodGet)
	professionals.HandleFunc("/{id}", r.professionalHandler.GetProfessional).Methods(http.MethodGet)
	professionals.HandleFunc("/{id}", r.professionalHandler.UpdateProfessional).Methods(http.MethodPut)
	professionals.HandleFunc("/{id}", r.professionalHandler.DeactivateProfessional).Methods(http.MethodDelete)
	professionals.Handle("/{id}/permanent", middleware.RequireAdmin(http.HandlerFunc(r.professionalHandler.DeleteProfessionalPermanently))).Methods(http.MethodDelete)
}

func (r *Router) setupAppointmentRoutes(appointments *mux.Router) {
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/upcoming", r.appointmentHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/past", r.appointmentHandler.GetPastAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/range", r.appointmentHandler.GetAppointmentsInRange).Methods(http.MethodGet)
	appointments.HandleFunc("/user/{userId}", r.appointmentHandler.GetAppointmentsByUser).Methods(http.MethodGet)
	appointments.HandleFunc("/professional/{professionalId}", r.appointmentHandler.GetAppointmentsByProfessional).Methods(http.MethodGet)
	appointments.HandleFunc("/professional/{professionalId}/range", r.appointmentHandler.GetProfessionalAgenda).Methods(http.MethodGet)
	appointments.HandleFunc("/service/{serviceId}", r.appointmentHandler.GetAppointmentsByService).Methods(http.MethodGet)
	appointments.HandleFunc("/status/{status}", r.appointmentHandler.GetAppointmentsByStatus).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.ChangeAppointmentStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
