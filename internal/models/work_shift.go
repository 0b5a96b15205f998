package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkShift assigns a shift type schedule to one calendar date for one user.
// The unique index on (user_id, work_date) spans soft-deleted rows: upserting
// a date whose row was soft-deleted revives it through the conflict clause
// instead of inserting a second row.
type WorkShift struct {
	ID                  uint64         `gorm:"primarykey" json:"id"`
	UserID              uint64         `gorm:"not null;uniqueIndex:idx_user_work_date" json:"user_id"`
	WorkDate            time.Time      `gorm:"type:date;not null;uniqueIndex:idx_user_work_date" json:"work_date"`
	ShiftTypeScheduleID uint64         `gorm:"index;not null" json:"shift_type_schedule_id"`
	Note                *string        `gorm:"type:varchar(500)" json:"note"`
	Visibility          int            `gorm:"not null;default:0" json:"visibility"`
	CreatedBy           uint64         `gorm:"not null" json:"created_by"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy           *uint64        `json:"-"`

	// Relations
	User              User              `gorm:"foreignKey:UserID" json:"-"`
	ShiftTypeSchedule ShiftTypeSchedule `gorm:"foreignKey:ShiftTypeScheduleID" json:"schedule,omitempty"`
}
