package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Professional is a service provider backed by exactly one User.
// A User may back at most one Professional.
type Professional struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Specialty         string     `gorm:"type:varchar(255);not null;index" json:"specialty"`
	AvailableSchedule *time.Time `json:"available_schedule,omitempty"`
	IsActive          bool       `gorm:"not null;default:true;index" json:"is_active"`
	UserID            uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Professional) TableName() string {
	return "professionals"
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Professional) BeforeSave(tx *gorm.DB) error {
	if p.AvailableSchedule != nil {
		utc := p.AvailableSchedule.UTC()
		p.AvailableSchedule = &utc
	}
	return nil
}
