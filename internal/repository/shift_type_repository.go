package repository

import (
	"github.com/shiftcal/shiftcal-api/internal/models"
	"gorm.io/gorm"
)

// GormShiftTypeRepository is a GORM implementation of ShiftTypeRepository
type GormShiftTypeRepository struct {
	db *gorm.DB
}

// NewShiftTypeRepository creates a new ShiftTypeRepository
func NewShiftTypeRepository(db *gorm.DB) ShiftTypeRepository {
	return &GormShiftTypeRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormShiftTypeRepository) WithTx(tx *gorm.DB) ShiftTypeRepository {
	return &GormShiftTypeRepository{db: tx}
}

// CreateWithSchedule creates a shift type and its schedule row atomically.
// The schedule is keyed to the shift type after the insert assigns its ID.
func (r *GormShiftTypeRepository) CreateWithSchedule(shiftType *models.ShiftType, schedule *models.ShiftTypeSchedule) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shiftType).Error; err != nil {
			return err
		}

		schedule.ShiftTypeID = shiftType.ID

		return tx.Create(schedule).Error
	})
}

// Update updates a shift type
func (r *GormShiftTypeRepository) Update(shiftType *models.ShiftType) error {
	return r.db.Save(shiftType).Error
}

// Delete soft deletes a shift type. Its schedule rows stay behind as the
// historical record for versions that referenced them.
func (r *GormShiftTypeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ShiftType{}, id).Error
}

// FindLiveByID finds a non-deleted shift type by ID
func (r *GormShiftTypeRepository) FindLiveByID(id uint64) (*models.ShiftType, error) {
	var shiftType models.ShiftType
	if err := r.db.First(&shiftType, id).Error; err != nil {
		return nil, err
	}
	return &shiftType, nil
}

// FindLiveByCode finds a non-deleted shift type by code within a template
func (r *GormShiftTypeRepository) FindLiveByCode(templateID uint64, code string) (*models.ShiftType, error) {
	var shiftType models.ShiftType
	err := r.db.Where("shift_template_id = ? AND code = ?", templateID, code).
		First(&shiftType).Error
	if err != nil {
		return nil, err
	}
	return &shiftType, nil
}

// ListLive lists a template's non-deleted shift types by sort order
func (r *GormShiftTypeRepository) ListLive(templateID uint64) ([]models.ShiftType, error) {
	var shiftTypes []models.ShiftType
	err := r.db.Where("shift_template_id = ?", templateID).
		Order("sort_order ASC").
		Find(&shiftTypes).Error
	if err != nil {
		return nil, err
	}
	return shiftTypes, nil
}

// CountLive counts a template's non-deleted shift types
func (r *GormShiftTypeRepository) CountLive(templateID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ShiftType{}).
		Where("shift_template_id = ?", templateID).
		Count(&count).Error
	return count, err
}

// MaxSortOrder returns the greatest sort order among a template's non-deleted
// shift types, 0 when there are none
func (r *GormShiftTypeRepository) MaxSortOrder(templateID uint64) (int, error) {
	var max *int
	err := r.db.Model(&models.ShiftType{}).
		Where("shift_template_id = ?", templateID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// FindSchedule finds the unique schedule row for a (version, shift type)
func (r *GormShiftTypeRepository) FindSchedule(versionID, shiftTypeID uint64) (*models.ShiftTypeSchedule, error) {
	var schedule models.ShiftTypeSchedule
	err := r.db.Where("shift_template_version_id = ? AND shift_type_id = ?", versionID, shiftTypeID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CreateSchedule creates a schedule row
func (r *GormShiftTypeRepository) CreateSchedule(schedule *models.ShiftTypeSchedule) error {
	return r.db.Create(schedule).Error
}

// UpdateSchedule updates a schedule row in place
func (r *GormShiftTypeRepository) UpdateSchedule(schedule *models.ShiftTypeSchedule) error {
	return r.db.Save(schedule).Error
}

// DeleteSchedule removes a schedule row
func (r *GormShiftTypeRepository) DeleteSchedule(id uint64) error {
	return r.db.Delete(&models.ShiftTypeSchedule{}, id).Error
}

// ListScheduleIDsByShiftType returns the IDs of every schedule bound to a
// shift type across all versions
func (r *GormShiftTypeRepository) ListScheduleIDsByShiftType(shiftTypeID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.ShiftTypeSchedule{}).
		Where("shift_type_id = ?", shiftTypeID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
