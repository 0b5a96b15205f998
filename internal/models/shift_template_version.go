package models

import "time"

// ShiftTemplateVersion is an immutable effective-dated snapshot of a
// template's schedule configuration. Version numbers start at 1 and only
// grow; no two versions of a template may share an effective date.
// "Current version" is always derived as the greatest effective_from,
// never cached on a row.
type ShiftTemplateVersion struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	ShiftTemplateID uint64    `gorm:"not null;uniqueIndex:idx_template_version_no;uniqueIndex:idx_template_effective_from" json:"shift_template_id"`
	VersionNo       int       `gorm:"not null;uniqueIndex:idx_template_version_no" json:"version_no"`
	EffectiveFrom   time.Time `gorm:"type:date;not null;uniqueIndex:idx_template_effective_from" json:"effective_from"`
	CreatedBy       uint64    `gorm:"not null" json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	ShiftTemplate ShiftTemplate       `gorm:"foreignKey:ShiftTemplateID" json:"-"`
	Schedules     []ShiftTypeSchedule `gorm:"foreignKey:ShiftTemplateVersionID" json:"schedules,omitempty"`
}
