package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// ServiceRequest is used for both create and full-overwrite update.
type ServiceRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Duration    string          `json:"duration" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
}

// Response DTOs

type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Duration    string          `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
