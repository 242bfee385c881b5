package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents an account in the system. Each account carries exactly one
// application role; the role both gates sign-in (unassigned/blocked accounts
// are refused a session) and decides which routes are reachable.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DisplayName string         `gorm:"size:255;not null" json:"display_name"`
	Email       string         `gorm:"size:255;unique;not null" json:"email"`
	Phone       *string        `gorm:"size:50" json:"phone,omitempty"`
	Password    string         `gorm:"size:255" json:"-"`
	Role        enum.UserRole  `gorm:"size:50;default:'unassigned';index" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchases []Purchase `gorm:"foreignKey:CreatedByID" json:"-"`
	Invoices  []Invoice  `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
