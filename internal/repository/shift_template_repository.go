package repository

import (
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"gorm.io/gorm"
)

// GormShiftTemplateRepository is a GORM implementation of ShiftTemplateRepository
type GormShiftTemplateRepository struct {
	db *gorm.DB
}

// NewShiftTemplateRepository creates a new ShiftTemplateRepository
func NewShiftTemplateRepository(db *gorm.DB) ShiftTemplateRepository {
	return &GormShiftTemplateRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormShiftTemplateRepository) WithTx(tx *gorm.DB) ShiftTemplateRepository {
	return &GormShiftTemplateRepository{db: tx}
}

// FindActiveByUserID finds the user's non-deleted template
func (r *GormShiftTemplateRepository) FindActiveByUserID(userID uint64) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	if err := r.db.Where("user_id = ?", userID).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindActiveByUserIDWithDetails finds the user's non-deleted template with
// versions (newest first) and live shift types preloaded
func (r *GormShiftTemplateRepository) FindActiveByUserIDWithDetails(userID uint64) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	err := r.db.
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("effective_from DESC")
		}).
		Preload("ShiftTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("user_id = ?", userID).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// Update updates a template
func (r *GormShiftTemplateRepository) Update(template *models.ShiftTemplate) error {
	return r.db.Save(template).Error
}

// CountActiveByUserAndName counts the user's non-deleted templates holding
// the given name, excluding one template ID
func (r *GormShiftTemplateRepository) CountActiveByUserAndName(userID uint64, name string, excludeID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ShiftTemplate{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, excludeID).
		Count(&count).Error
	return count, err
}

// CreateVersion creates a new template version
func (r *GormShiftTemplateRepository) CreateVersion(version *models.ShiftTemplateVersion) error {
	return r.db.Create(version).Error
}

// FindLatestVersion finds the version with the greatest effective_from
func (r *GormShiftTemplateRepository) FindLatestVersion(templateID uint64) (*models.ShiftTemplateVersion, error) {
	var version models.ShiftTemplateVersion
	err := r.db.Where("shift_template_id = ?", templateID).
		Order("effective_from DESC").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// FindVersionOnOrBefore finds the version with the greatest effective_from
// that does not exceed the given date
func (r *GormShiftTemplateRepository) FindVersionOnOrBefore(templateID uint64, date time.Time) (*models.ShiftTemplateVersion, error) {
	var version models.ShiftTemplateVersion
	err := r.db.Where("shift_template_id = ? AND effective_from <= ?", templateID, date).
		Order("effective_from DESC").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// FindEarliestVersion finds the version with the smallest effective_from
func (r *GormShiftTemplateRepository) FindEarliestVersion(templateID uint64) (*models.ShiftTemplateVersion, error) {
	var version models.ShiftTemplateVersion
	err := r.db.Where("shift_template_id = ?", templateID).
		Order("effective_from ASC").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// MaxVersionNo returns the greatest version number of a template, 0 when the
// template has no versions
func (r *GormShiftTemplateRepository) MaxVersionNo(templateID uint64) (int, error) {
	var max *int
	err := r.db.Model(&models.ShiftTemplateVersion{}).
		Where("shift_template_id = ?", templateID).
		Select("MAX(version_no)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// CountVersionsAt counts versions of a template effective exactly on the
// given date
func (r *GormShiftTemplateRepository) CountVersionsAt(templateID uint64, date time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ShiftTemplateVersion{}).
		Where("shift_template_id = ? AND effective_from = ?", templateID, date).
		Count(&count).Error
	return count, err
}
