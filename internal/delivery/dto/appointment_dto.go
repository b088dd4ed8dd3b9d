package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// CreateAppointmentRequest: an empty Status becomes PENDING.
type CreateAppointmentRequest struct {
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	ServiceID      uuid.UUID `json:"service_id" validate:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	DateTime       time.Time `json:"date_time" validate:"required,future"`
	Status         string    `json:"status" validate:"omitempty,max=50"`
	Notes          string    `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateAppointmentRequest never changes the owning user.
type UpdateAppointmentRequest struct {
	ServiceID      uuid.UUID `json:"service_id" validate:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	DateTime       time.Time `json:"date_time" validate:"required,future"`
	Status         string    `json:"status" validate:"required,max=50"`
	Notes          string    `json:"notes" validate:"omitempty,max=1000"`
}

type ChangeAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// Response DTOs

// AppointmentResponse is the denormalized projection of an appointment.
type AppointmentResponse struct {
	ID                    uuid.UUID       `json:"id"`
	DateTime              time.Time       `json:"date_time"`
	Status                string          `json:"status"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UserID                uuid.UUID       `json:"user_id"`
	UserName              string          `json:"user_name"`
	ServiceID             uuid.UUID       `json:"service_id"`
	ServiceName           string          `json:"service_name"`
	ServicePrice          decimal.Decimal `json:"service_price"`
	ProfessionalID        uuid.UUID       `json:"professional_id"`
	ProfessionalName      string          `json:"professional_name"`
	ProfessionalSpecialty string          `json:"professional_specialty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
