package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for time-window queries.
// Both bounds are inclusive. ProfessionalID narrows the window to one provider.
type AppointmentFilter struct {
	Start          time.Time
	End            time.Time
	ProfessionalID *uuid.UUID
}
