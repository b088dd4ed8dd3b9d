package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is one entry of the mutation trail. Metadata carries the entity
// name, its id and the old/new values.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions recorded by the lifecycle operations
const (
	AuditActionUserCreate             = "user.create"
	AuditActionUserUpdate             = "user.update"
	AuditActionUserDeactivate         = "user.deactivate"
	AuditActionUserDelete             = "user.delete"
	AuditActionServiceCreate          = "service.create"
	AuditActionServiceUpdate          = "service.update"
	AuditActionServiceDeactivate      = "service.deactivate"
	AuditActionServiceDelete          = "service.delete"
	AuditActionProfessionalCreate     = "professional.create"
	AuditActionProfessionalUpdate     = "professional.update"
	AuditActionProfessionalDeactivate = "professional.deactivate"
	AuditActionProfessionalDelete     = "professional.delete"
	AuditActionAppointmentCreate      = "appointment.create"
	AuditActionAppointmentUpdate      = "appointment.update"
	AuditActionAppointmentStatus      = "appointment.status"
	AuditActionAppointmentDelete      = "appointment.delete"
)
