package models

import "time"

// ShiftTypeSchedule binds a shift type to one template version and carries
// the time-of-day definition in force for that version. Exactly one row per
// (version, shift type); rows are created lazily on first resolution, with
// both times nil for a type whose hours are not yet set. Start and end are
// either both present or both nil. Rows belonging to historical versions are
// never mutated; only the current version's row is updated in place.
type ShiftTypeSchedule struct {
	ID                     uint64    `gorm:"primarykey" json:"id"`
	ShiftTypeID            uint64    `gorm:"not null;uniqueIndex:idx_version_shift_type" json:"shift_type_id"`
	ShiftTemplateVersionID uint64    `gorm:"not null;uniqueIndex:idx_version_shift_type" json:"shift_template_version_id"`
	StartTime              *string   `gorm:"type:varchar(5)" json:"start_time"`
	EndTime                *string   `gorm:"type:varchar(5)" json:"end_time"`
	CrossesMidnight        bool      `gorm:"not null;default:false" json:"crosses_midnight"`
	DurationMinutes        int       `gorm:"not null;default:0" json:"duration_minutes"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`

	// Relations
	ShiftType            ShiftType            `gorm:"foreignKey:ShiftTypeID" json:"shift_type,omitempty"`
	ShiftTemplateVersion ShiftTemplateVersion `gorm:"foreignKey:ShiftTemplateVersionID" json:"-"`
}

// Timed reports whether the schedule carries a concrete time-of-day range.
func (s *ShiftTypeSchedule) Timed() bool {
	return s.StartTime != nil && s.EndTime != nil
}
