package models

import (
	"time"

	"gorm.io/gorm"
)

// ShiftType is a named work category (Day, Night, Off, ...) scoped to a
// template. Codes are unique among a template's live types by application
// check, not by constraint. A template holds at most ten live types.
type ShiftType struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	ShiftTemplateID uint64         `gorm:"index;not null" json:"shift_template_id"`
	Code            string         `gorm:"type:varchar(20);not null" json:"code"`
	Name            string         `gorm:"type:varchar(50);not null" json:"name"`
	Color           *int64         `json:"color"`
	SortOrder       int            `gorm:"not null" json:"sort_order"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	ShiftTemplate ShiftTemplate       `gorm:"foreignKey:ShiftTemplateID" json:"-"`
	Schedules     []ShiftTypeSchedule `gorm:"foreignKey:ShiftTypeID" json:"schedules,omitempty"`
}
