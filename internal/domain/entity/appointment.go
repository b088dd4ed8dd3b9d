package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known appointment statuses. Status is a free-form tag: any non-empty
// value is stored and no transition order is enforced.
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCancelled = "CANCELLED"
	AppointmentStatusCompleted = "COMPLETED"
)

// KnownAppointmentStatuses lists the tags reported on the dashboard.
var KnownAppointmentStatuses = []string{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCancelled,
	AppointmentStatusCompleted,
}

// Appointment binds a User, a Service and a Professional at a point in time.
type Appointment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DateTime       time.Time `gorm:"not null;index" json:"date_time"`
	Status         string    `gorm:"type:varchar(50);not null;index" json:"status"`
	Notes          string    `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	// Relationships
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Service      Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if strings.TrimSpace(a.Status) == "" {
		a.Status = AppointmentStatusPending
	}
	return nil
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.DateTime = a.DateTime.UTC()
	return nil
}

// ChangeStatus overwrites the status tag and reports whether it did. Blank
// values are refused so the status is never emptied.
func (a *Appointment) ChangeStatus(status string) bool {
	if strings.TrimSpace(status) == "" {
		return false
	}
	a.Status = status
	return true
}
