package repository

import (
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithShiftTemplate creates a user, their shift template, and the
	// template's first version within a single transaction.
	CreateWithShiftTemplate(user *models.User, template *models.ShiftTemplate, version *models.ShiftTemplateVersion) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ShiftTemplateRepository defines the interface for shift template and
// template version data access
type ShiftTemplateRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) ShiftTemplateRepository

	// FindActiveByUserID finds the user's non-deleted template
	FindActiveByUserID(userID uint64) (*models.ShiftTemplate, error)

	// FindActiveByUserIDWithDetails finds the user's non-deleted template
	// with versions and live shift types preloaded
	FindActiveByUserIDWithDetails(userID uint64) (*models.ShiftTemplate, error)

	// Update updates a template
	Update(template *models.ShiftTemplate) error

	// CountActiveByUserAndName counts the user's non-deleted templates
	// holding the given name, excluding one template ID
	CountActiveByUserAndName(userID uint64, name string, excludeID uint64) (int64, error)

	// CreateVersion creates a new template version
	CreateVersion(version *models.ShiftTemplateVersion) error

	// FindLatestVersion finds the version with the greatest effective_from
	FindLatestVersion(templateID uint64) (*models.ShiftTemplateVersion, error)

	// FindVersionOnOrBefore finds the version with the greatest
	// effective_from that does not exceed the given date
	FindVersionOnOrBefore(templateID uint64, date time.Time) (*models.ShiftTemplateVersion, error)

	// FindEarliestVersion finds the version with the smallest effective_from
	FindEarliestVersion(templateID uint64) (*models.ShiftTemplateVersion, error)

	// MaxVersionNo returns the greatest version number of a template, 0 when
	// the template has no versions
	MaxVersionNo(templateID uint64) (int, error)

	// CountVersionsAt counts versions of a template effective exactly on the
	// given date
	CountVersionsAt(templateID uint64, date time.Time) (int64, error)
}

// ShiftTypeRepository defines the interface for shift type and shift type
// schedule data access
type ShiftTypeRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) ShiftTypeRepository

	// CreateWithSchedule creates a shift type and its schedule row for the
	// current template version within a single transaction
	CreateWithSchedule(shiftType *models.ShiftType, schedule *models.ShiftTypeSchedule) error

	// Update updates a shift type
	Update(shiftType *models.ShiftType) error

	// Delete soft deletes a shift type
	Delete(id uint64) error

	// FindLiveByID finds a non-deleted shift type by ID
	FindLiveByID(id uint64) (*models.ShiftType, error)

	// FindLiveByCode finds a non-deleted shift type by code within a template
	FindLiveByCode(templateID uint64, code string) (*models.ShiftType, error)

	// ListLive lists a template's non-deleted shift types by sort order
	ListLive(templateID uint64) ([]models.ShiftType, error)

	// CountLive counts a template's non-deleted shift types
	CountLive(templateID uint64) (int64, error)

	// MaxSortOrder returns the greatest sort order among a template's
	// non-deleted shift types, 0 when there are none
	MaxSortOrder(templateID uint64) (int, error)

	// FindSchedule finds the unique schedule row for a (version, shift type)
	FindSchedule(versionID, shiftTypeID uint64) (*models.ShiftTypeSchedule, error)

	// CreateSchedule creates a schedule row
	CreateSchedule(schedule *models.ShiftTypeSchedule) error

	// UpdateSchedule updates a schedule row in place
	UpdateSchedule(schedule *models.ShiftTypeSchedule) error

	// DeleteSchedule removes a schedule row
	DeleteSchedule(id uint64) error

	// ListScheduleIDsByShiftType returns the IDs of every schedule bound to
	// a shift type across all versions
	ListScheduleIDsByShiftType(shiftTypeID uint64) ([]uint64, error)
}

// WorkShiftRepository defines the interface for work shift data access
type WorkShiftRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) WorkShiftRepository

	// Transaction runs fn inside a single database transaction
	Transaction(fn func(tx *gorm.DB) error) error

	// Upsert writes a work shift keyed by (user, work date), overwriting the
	// schedule reference and note of an existing row and reviving a
	// soft-deleted one
	Upsert(shift *models.WorkShift) error

	// FindLiveByUserAndDate finds the live work shift for one calendar date
	FindLiveByUserAndDate(userID uint64, date time.Time) (*models.WorkShift, error)

	// ListByUserAndDates lists live work shifts for the given dates with
	// schedule and shift type detail preloaded
	ListByUserAndDates(userID uint64, dates []time.Time) ([]models.WorkShift, error)

	// ListByUserBetween lists live work shifts in an inclusive date range
	// with schedule and shift type detail preloaded
	ListByUserBetween(userID uint64, from, to time.Time) ([]models.WorkShift, error)

	// SoftDelete soft deletes the live work shift for one calendar date,
	// recording who deleted it
	SoftDelete(userID uint64, date time.Time, deletedBy uint64) error

	// CountLiveBySchedules counts live work shifts referencing any of the
	// given schedule IDs
	CountLiveBySchedules(scheduleIDs []uint64) (int64, error)
}
