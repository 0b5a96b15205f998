package database

import (
	"time"

	"gorm.io/gorm"
)

// WorkDateBetween restricts a work-shift query to an inclusive calendar
// date range.
func WorkDateBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("work_shifts.work_date >= ? AND work_shifts.work_date <= ?", from, to)
	}
}
