package usecase

import (
	"context"
	"strings"
	"time"

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

// AppointmentUsecase drives the appointment lifecycle. Every read returns the
// denormalized projection.
type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetByProfessional(ctx context.Context, professionalID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetByProfessionalInRange(ctx context.Context, professionalID uuid.UUID, start, end time.Time) (*dto.AppointmentListResponse, error)
	GetByService(ctx context.Context, serviceID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetByStatus(ctx context.Context, status string) (*dto.AppointmentListResponse, error)
	GetUpcoming(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetPast(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetInRange(ctx context.Context, start, end time.Time) (*dto.AppointmentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cache            *cache.Cache
	appointmentRepo  repository.AppointmentRepository
	userRepo         repository.UserRepository
	serviceRepo      repository.ServiceRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dashboardCache *cache.Cache,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		cache:            dashboardCache,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		serviceRepo:      serviceRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

// Create resolves user, service and professional, in that order, before
// anything is written. The status defaults to PENDING when blank.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	now := time.Now()
	if !req.DateTime.After(now) {
		return nil, ErrAppointmentNotFuture
	}

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

	svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	professional, err := u.professionalRepo.FindByID(tx, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.AppointmentStatusPending
	}

	appointment := &entity.Appointment{
		DateTime:       req.DateTime,
		Status:         status,
		Notes:          req.Notes,
		UserID:         user.ID,
		ServiceID:      svc.ID,
		ProfessionalID: professional.ID,
		CreatedAt:      now.UTC(),
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if err := foreignKeyToNotFound(err); err != nil {
			return nil, err
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.User = *user
	appointment.Service = *svc
	appointment.Professional = *professional

	resp, err := converter.AppointmentToResponse(appointment)
	if err != nil {
		u.log.Warnf("Failed to build appointment projection: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointmentSnapshot(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.log.Infof("Appointment created: id=%s, user=%s, professional=%s, at=%s", appointment.ID, user.ID, professional.ID, appointment.DateTime.Format(time.RFC3339))
	return resp, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	resp, err := converter.AppointmentToResponse(appointment)
	if err != nil {
		u.log.Warnf("Failed to build appointment projection: %+v", err)
		return nil, err
	}
	return resp, nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	return u.list(appointments, err, "all")
}

func (u *appointmentUsecase) GetByUser(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByUserID(u.db.WithContext(ctx), userID)
	return u.list(appointments, err, "by user")
}

func (u *appointmentUsecase) GetByProfessional(ctx context.Context, professionalID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByProfessionalID(u.db.WithContext(ctx), professionalID)
	return u.list(appointments, err, "by professional")
}

// GetByProfessionalInRange lists a professional's agenda within [start, end].
// It is informational only: bookings are never rejected for overlapping.
func (u *appointmentUsecase) GetByProfessionalInRange(ctx context.Context, professionalID uuid.UUID, start, end time.Time) (*dto.AppointmentListResponse, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	appointments, err := u.appointmentRepo.FindInRange(u.db.WithContext(ctx), entity.AppointmentFilter{
		Start:          start,
		End:            end,
		ProfessionalID: &professionalID,
	})
	return u.list(appointments, err, "by professional in range")
}

func (u *appointmentUsecase) GetByService(ctx context.Context, serviceID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByServiceID(u.db.WithContext(ctx), serviceID)
	return u.list(appointments, err, "by service")
}

func (u *appointmentUsecase) GetByStatus(ctx context.Context, status string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByStatus(u.db.WithContext(ctx), status)
	return u.list(appointments, err, "by status")
}

func (u *appointmentUsecase) GetUpcoming(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindUpcoming(u.db.WithContext(ctx), time.Now())
	return u.list(appointments, err, "upcoming")
}

func (u *appointmentUsecase) GetPast(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindPast(u.db.WithContext(ctx), time.Now())
	return u.list(appointments, err, "past")
}

func (u *appointmentUsecase) GetInRange(ctx context.Context, start, end time.Time) (*dto.AppointmentListResponse, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	appointments, err := u.appointmentRepo.FindInRange(u.db.WithContext(ctx), entity.AppointmentFilter{Start: start, End: end})
	return u.list(appointments, err, "in range")
}

// Update re-resolves the service and professional only when their ids change,
// then overwrites date, status and notes. The owning user never changes and a
// blank status fails the whole update.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	oldValue := appointmentSnapshot(appointment)

	if req.ServiceID != appointment.ServiceID {
		svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
		if err != nil {
			u.log.Warnf("Failed to find service %s: %+v", req.ServiceID, err)
			return nil, err
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		appointment.ServiceID = svc.ID
		appointment.Service = *svc
	}

	if req.ProfessionalID != appointment.ProfessionalID {
		professional, err := u.professionalRepo.FindByID(tx, req.ProfessionalID)
		if err != nil {
			u.log.Warnf("Failed to find professional %s: %+v", req.ProfessionalID, err)
			return nil, err
		}
		if professional == nil {
			return nil, ErrProfessionalNotFound
		}
		appointment.ProfessionalID = professional.ID
		appointment.Professional = *professional
	}

	appointment.DateTime = req.DateTime
	if !appointment.ChangeStatus(req.Status) {
		return nil, ErrBlankStatus
	}
	appointment.Notes = req.Notes

	return u.save(ctx, tx, appointment, entity.AuditActionAppointmentUpdate, oldValue)
}

// ChangeStatus accepts any non-blank tag regardless of the current one.
func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	oldValue := appointmentSnapshot(appointment)

	if !appointment.ChangeStatus(status) {
		return nil, ErrBlankStatus
	}

	return u.save(ctx, tx, appointment, entity.AuditActionAppointmentStatus, oldValue)
}

// Delete removes one appointment. Nothing else is touched.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if _, err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, entity.AuditActionAppointmentDelete, "appointment", id.String(), appointmentSnapshot(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

func (u *appointmentUsecase) save(ctx context.Context, tx *gorm.DB, appointment *entity.Appointment, action string, oldValue map[string]interface{}) (*dto.AppointmentResponse, error) {
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if err := foreignKeyToNotFound(err); err != nil {
			return nil, err
		}
		u.log.Warnf("Failed to update appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	resp, err := converter.AppointmentToResponse(appointment)
	if err != nil {
		u.log.Warnf("Failed to build appointment projection: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, action, "appointment", appointment.ID.String(), oldValue, appointmentSnapshot(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateDashboard(ctx, u.cache, u.log)

	return resp, nil
}

func (u *appointmentUsecase) list(appointments []entity.Appointment, err error, what string) (*dto.AppointmentListResponse, error) {
	if err != nil {
		u.log.Warnf("Failed to find appointments %s: %+v", what, err)
		return nil, err
	}

	responses, err := converter.AppointmentsToResponses(appointments)
	if err != nil {
		u.log.Warnf("Failed to build appointment projection: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

// appointmentSnapshot is the audit representation. It only uses the
// appointment's own columns so it works even when a relation is gone.
func appointmentSnapshot(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"date_time":       a.DateTime.UTC().Format(time.RFC3339),
		"status":          a.Status,
		"notes":           a.Notes,
		"user_id":         a.UserID.String(),
		"service_id":      a.ServiceID.String(),
		"professional_id": a.ProfessionalID.String(),
	}
}

// foreignKeyToNotFound maps a reference removed between the lookup and the
// write to the matching not-found error. Returns nil for any other error.
func foreignKeyToNotFound(err error) error {
	switch {
	case isForeignKeyError(err, "fk_appointments_user"):
		return ErrUserNotFound
	case isForeignKeyError(err, "fk_appointments_service"):
		return ErrServiceNotFound
	case isForeignKeyError(err, "fk_appointments_professional"):
		return ErrProfessionalNotFound
	}
	return nil
}
