package repository

import (
	"time"

	"github.com/shiftcal/shiftcal-api/internal/database"
	"github.com/shiftcal/shiftcal-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkShiftRepository is a GORM implementation of WorkShiftRepository
type GormWorkShiftRepository struct {
	db *gorm.DB
}

// NewWorkShiftRepository creates a new WorkShiftRepository
func NewWorkShiftRepository(db *gorm.DB) WorkShiftRepository {
	return &GormWorkShiftRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormWorkShiftRepository) WithTx(tx *gorm.DB) WorkShiftRepository {
	return &GormWorkShiftRepository{db: tx}
}

// Transaction runs fn inside a single database transaction
func (r *GormWorkShiftRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Upsert writes a work shift keyed by (user, work date). A conflicting row,
// live or soft-deleted, keeps its identity, creator, and creation time; the
// schedule reference and note are overwritten and the deletion marks cleared.
func (r *GormWorkShiftRepository) Upsert(shift *models.WorkShift) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"shift_type_schedule_id": shift.ShiftTypeScheduleID,
				"note":                   shift.Note,
				"updated_at":             time.Now(),
				"deleted_at":             gorm.Expr("NULL"),
				"deleted_by":             gorm.Expr("NULL"),
			}),
		}).
		Create(shift).Error
}

// FindLiveByUserAndDate finds the live work shift for one calendar date
func (r *GormWorkShiftRepository) FindLiveByUserAndDate(userID uint64, date time.Time) (*models.WorkShift, error) {
	var shift models.WorkShift
	err := r.db.Where("user_id = ? AND work_date = ?", userID, date).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// ListByUserAndDates lists live work shifts for the given dates with schedule
// and shift type detail preloaded
func (r *GormWorkShiftRepository) ListByUserAndDates(userID uint64, dates []time.Time) ([]models.WorkShift, error) {
	var shifts []models.WorkShift
	err := r.db.
		Preload("ShiftTypeSchedule").
		Preload("ShiftTypeSchedule.ShiftType").
		Where("user_id = ? AND work_date IN ?", userID, dates).
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// ListByUserBetween lists live work shifts in an inclusive date range with
// schedule and shift type detail preloaded
func (r *GormWorkShiftRepository) ListByUserBetween(userID uint64, from, to time.Time) ([]models.WorkShift, error) {
	var shifts []models.WorkShift
	err := r.db.
		Preload("ShiftTypeSchedule").
		Preload("ShiftTypeSchedule.ShiftType").
		Where("work_shifts.user_id = ?", userID).
		Scopes(database.WorkDateBetween(from, to)).
		Order("work_shifts.work_date ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// SoftDelete soft deletes the live work shift for one calendar date,
// recording who deleted it
func (r *GormWorkShiftRepository) SoftDelete(userID uint64, date time.Time, deletedBy uint64) error {
	result := r.db.Model(&models.WorkShift{}).
		Where("user_id = ? AND work_date = ?", userID, date).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountLiveBySchedules counts live work shifts referencing any of the given
// schedule IDs
func (r *GormWorkShiftRepository) CountLiveBySchedules(scheduleIDs []uint64) (int64, error) {
	if len(scheduleIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.WorkShift{}).
		Where("shift_type_schedule_id IN ?", scheduleIDs).
		Count(&count).Error
	return count, err
}
