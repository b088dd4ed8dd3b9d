package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a client or staff account. Email is unique and stored as given.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:text;not null" json:"-"`
	Phone        string    `gorm:"type:varchar(255)" json:"phone,omitempty"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
	Role         string    `gorm:"type:varchar(50);not null;index" json:"role"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
