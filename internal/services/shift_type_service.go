package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiftcal/shiftcal-api/internal/constants"
	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrShiftTypeNotFound       = errors.New("shift type not found")
	ErrShiftTypeCodeRequired   = errors.New("shift type code is required")
	ErrShiftTypeNameRequired   = errors.New("shift type name is required")
	ErrNotTemplateOwner        = errors.New("shift type belongs to another user's template")
	ErrMaxShiftTypesExceeded   = errors.New("a template can hold at most 10 shift types")
	ErrDuplicateShiftTypeCode  = errors.New("a live shift type already uses this code")
	ErrShiftTypeInUse          = errors.New("shift type is referenced by live work shifts")
	ErrTemplateVersionNotFound = errors.New("template has no versions")
)

// ShiftTypeService handles the shift type registry business logic.
type ShiftTypeService struct {
	templateRepo  repository.ShiftTemplateRepository
	shiftTypeRepo repository.ShiftTypeRepository
	workShiftRepo repository.WorkShiftRepository
}

// NewShiftTypeService creates a new ShiftTypeService.
func NewShiftTypeService(templateRepo repository.ShiftTemplateRepository, shiftTypeRepo repository.ShiftTypeRepository, workShiftRepo repository.WorkShiftRepository) *ShiftTypeService {
	return &ShiftTypeService{
		templateRepo:  templateRepo,
		shiftTypeRepo: shiftTypeRepo,
		workShiftRepo: workShiftRepo,
	}
}

// CreateShiftTypeInput represents input for creating a shift type.
type CreateShiftTypeInput struct {
	Code      string
	Name      string
	Color     *int64
	StartTime *string
	EndTime   *string
	SortOrder *int
}

// List returns the live shift types of the caller's template by sort order.
func (s *ShiftTypeService) List(userID uint64) ([]models.ShiftType, error) {
	template, err := s.resolveTemplate(userID)
	if err != nil {
		return nil, err
	}

	shiftTypes, err := s.shiftTypeRepo.ListLive(template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	return shiftTypes, nil
}

// Create registers a new shift type on the caller's template and
// materializes its schedule row against the current version, untimed when no
// times were given. A work shift can only reference a schedule, so the row
// must exist even before the hours are decided.
func (s *ShiftTypeService) Create(userID uint64, input CreateShiftTypeInput) (*models.ShiftType, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrShiftTypeCodeRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrShiftTypeNameRequired
	}

	timeInfo, err := ComputeTimeInfo(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}

	template, err := s.resolveTemplate(userID)
	if err != nil {
		return nil, err
	}

	count, err := s.shiftTypeRepo.CountLive(template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count shift types: %w", err)
	}
	if count >= constants.MaxShiftTypesPerTemplate {
		return nil, ErrMaxShiftTypesExceeded
	}

	if _, err := s.shiftTypeRepo.FindLiveByCode(template.ID, code); err == nil {
		return nil, ErrDuplicateShiftTypeCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check shift type code: %w", err)
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		maxOrder, err := s.shiftTypeRepo.MaxSortOrder(template.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to determine sort order: %w", err)
		}
		sortOrder = maxOrder + 1
	}

	currentVersion, err := s.templateRepo.FindLatestVersion(template.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateVersionNotFound
		}
		return nil, fmt.Errorf("failed to resolve current version: %w", err)
	}

	shiftType := &models.ShiftType{
		ShiftTemplateID: template.ID,
		Code:            code,
		Name:            name,
		Color:           input.Color,
		SortOrder:       sortOrder,
	}

	schedule := &models.ShiftTypeSchedule{
		ShiftTemplateVersionID: currentVersion.ID,
		StartTime:              input.StartTime,
		EndTime:                input.EndTime,
	}
	if timeInfo != nil {
		schedule.CrossesMidnight = timeInfo.CrossesMidnight
		schedule.DurationMinutes = timeInfo.DurationMinutes
	}

	if err := s.shiftTypeRepo.CreateWithSchedule(shiftType, schedule); err != nil {
		return nil, fmt.Errorf("failed to create shift type: %w", err)
	}

	return shiftType, nil
}

// UpdateShiftTypeInput represents input for a partial shift type update.
// Time fields follow a tri-state: nil start and end means preserve, both set
// means recompute, ClearTime means drop the time definition.
type UpdateShiftTypeInput struct {
	Code      *string
	Name      *string
	Color     *int64
	SortOrder *int
	StartTime *string
	EndTime   *string
	ClearTime bool
}

// Update applies a partial update to a shift type owned by the caller. Time
// changes touch only the current version's schedule row; historical
// versions keep their definitions. Clearing the times of a schedule still
// referenced by a live work shift zeroes the row in place, since deleting it
// would orphan the reference; an unreferenced schedule row is deleted.
func (s *ShiftTypeService) Update(userID, shiftTypeID uint64, input UpdateShiftTypeInput) (*models.ShiftType, error) {
	shiftType, template, err := s.resolveOwnedShiftType(userID, shiftTypeID)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		code := strings.TrimSpace(*input.Code)
		if code == "" {
			return nil, ErrShiftTypeCodeRequired
		}
		if code != shiftType.Code {
			if _, err := s.shiftTypeRepo.FindLiveByCode(template.ID, code); err == nil {
				return nil, ErrDuplicateShiftTypeCode
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check shift type code: %w", err)
			}
		}
		shiftType.Code = code
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrShiftTypeNameRequired
		}
		shiftType.Name = name
	}
	if input.Color != nil {
		shiftType.Color = input.Color
	}
	if input.SortOrder != nil {
		shiftType.SortOrder = *input.SortOrder
	}

	if err := s.applyTimeUpdate(template.ID, shiftType.ID, input); err != nil {
		return nil, err
	}

	if err := s.shiftTypeRepo.Update(shiftType); err != nil {
		return nil, fmt.Errorf("failed to update shift type: %w", err)
	}

	return shiftType, nil
}

// Delete soft deletes a shift type owned by the caller. The delete is
// refused while any schedule of the type, on any version, is referenced by a
// live work shift. Schedule rows are left behind as the historical record.
func (s *ShiftTypeService) Delete(userID, shiftTypeID uint64) error {
	shiftType, _, err := s.resolveOwnedShiftType(userID, shiftTypeID)
	if err != nil {
		return err
	}

	scheduleIDs, err := s.shiftTypeRepo.ListScheduleIDsByShiftType(shiftType.ID)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	count, err := s.workShiftRepo.CountLiveBySchedules(scheduleIDs)
	if err != nil {
		return fmt.Errorf("failed to count work shift references: %w", err)
	}
	if count > 0 {
		return ErrShiftTypeInUse
	}

	if err := s.shiftTypeRepo.Delete(shiftType.ID); err != nil {
		return fmt.Errorf("failed to delete shift type: %w", err)
	}

	return nil
}

// applyTimeUpdate reconciles the current version's schedule row with the
// requested time change.
func (s *ShiftTypeService) applyTimeUpdate(templateID, shiftTypeID uint64, input UpdateShiftTypeInput) error {
	if !input.ClearTime && input.StartTime == nil && input.EndTime == nil {
		// Times omitted: the existing schedule stays as it is.
		return nil
	}

	currentVersion, err := s.templateRepo.FindLatestVersion(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateVersionNotFound
		}
		return fmt.Errorf("failed to resolve current version: %w", err)
	}

	if input.ClearTime {
		schedule, err := s.shiftTypeRepo.FindSchedule(currentVersion.ID, shiftTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Nothing materialized for the current version yet, so
				// there is no time definition to drop.
				return nil
			}
			return fmt.Errorf("failed to find schedule: %w", err)
		}

		count, err := s.workShiftRepo.CountLiveBySchedules([]uint64{schedule.ID})
		if err != nil {
			return fmt.Errorf("failed to count work shift references: %w", err)
		}
		if count > 0 {
			schedule.StartTime = nil
			schedule.EndTime = nil
			schedule.CrossesMidnight = false
			schedule.DurationMinutes = 0
			if err := s.shiftTypeRepo.UpdateSchedule(schedule); err != nil {
				return fmt.Errorf("failed to clear schedule: %w", err)
			}
			return nil
		}

		if err := s.shiftTypeRepo.DeleteSchedule(schedule.ID); err != nil {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}
		return nil
	}

	timeInfo, err := ComputeTimeInfo(input.StartTime, input.EndTime)
	if err != nil {
		return err
	}

	schedule, err := resolveOrCreateSchedule(s.shiftTypeRepo, shiftTypeID, currentVersion.ID)
	if err != nil {
		return err
	}

	schedule.StartTime = input.StartTime
	schedule.EndTime = input.EndTime
	schedule.CrossesMidnight = timeInfo.CrossesMidnight
	schedule.DurationMinutes = timeInfo.DurationMinutes
	if err := s.shiftTypeRepo.UpdateSchedule(schedule); err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	return nil
}

// resolveTemplate finds the caller's active template.
func (s *ShiftTypeService) resolveTemplate(userID uint64) (*models.ShiftTemplate, error) {
	template, err := s.templateRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}

// resolveOwnedShiftType loads a live shift type and verifies it belongs to
// the caller's template. Ownership is checked right after existence, before
// any further resolution.
func (s *ShiftTypeService) resolveOwnedShiftType(userID, shiftTypeID uint64) (*models.ShiftType, *models.ShiftTemplate, error) {
	shiftType, err := s.shiftTypeRepo.FindLiveByID(shiftTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrShiftTypeNotFound
		}
		return nil, nil, fmt.Errorf("failed to find shift type: %w", err)
	}

	template, err := s.resolveTemplate(userID)
	if err != nil {
		return nil, nil, err
	}
	if shiftType.ShiftTemplateID != template.ID {
		return nil, nil, ErrNotTemplateOwner
	}

	return shiftType, template, nil
}
