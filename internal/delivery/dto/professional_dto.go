package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateProfessionalRequest struct {
	UserID            uuid.UUID  `json:"user_id" validate:"required"`
	Specialty         string     `json:"specialty" validate:"required,min=2,max=255"`
	AvailableSchedule *time.Time `json:"available_schedule"`
}

// UpdateProfessionalRequest never re-parents the professional to another user.
type UpdateProfessionalRequest struct {
	Specialty         string     `json:"specialty" validate:"required,min=2,max=255"`
	AvailableSchedule *time.Time `json:"available_schedule"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID                uuid.UUID  `json:"id"`
	Specialty         string     `json:"specialty"`
	AvailableSchedule *time.Time `json:"available_schedule,omitempty"`
	IsActive          bool       `json:"is_active"`
	UserID            uuid.UUID  `json:"user_id"`
	UserName          string     `json:"user_name"`
	UserEmail         string     `json:"user_email"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}
