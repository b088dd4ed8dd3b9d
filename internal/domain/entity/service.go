package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a catalog entry. Duration is a free-text descriptor such as "45 min".
type Service struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string          `gorm:"type:varchar(1000)" json:"description,omitempty"`
	Duration    string          `gorm:"type:varchar(255);not null" json:"duration"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive    bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
