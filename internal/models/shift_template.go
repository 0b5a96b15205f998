package models

import (
	"time"

	"gorm.io/gorm"
)

// ShiftTemplate is a user's container for shift type definitions.
// Each user owns exactly one active (non-deleted) template; it is created
// inside the signup transaction and never hard-deleted.
type ShiftTemplate struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"index;not null" json:"user_id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User       User                   `gorm:"foreignKey:UserID" json:"-"`
	Versions   []ShiftTemplateVersion `gorm:"foreignKey:ShiftTemplateID" json:"versions,omitempty"`
	ShiftTypes []ShiftType            `gorm:"foreignKey:ShiftTemplateID" json:"shift_types,omitempty"`
}
