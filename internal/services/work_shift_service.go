package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiftcal/shiftcal-api/internal/constants"
	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"github.com/shiftcal/shiftcal-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrWorkShiftNotFound = errors.New("work shift not found")
	ErrBatchEmpty        = errors.New("batch contains no entries")
	ErrBatchTooLarge     = errors.New("batch exceeds the maximum number of entries")
	ErrInvalidDateRange  = errors.New("from date must not be after to date")
)

// InvalidShiftTypeError reports a batch entry whose shift type code does not
// match any live shift type of the caller's template.
type InvalidShiftTypeError struct {
	Code string
	Date time.Time
}

func (e *InvalidShiftTypeError) Error() string {
	return fmt.Sprintf("unknown shift type code %q for %s", e.Code, utils.FormatDate(e.Date))
}

// DuplicateDatesError reports work dates appearing more than once in one
// batch request.
type DuplicateDatesError struct {
	Dates []time.Time
}

func (e *DuplicateDatesError) Error() string {
	formatted := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		formatted[i] = utils.FormatDate(d)
	}
	return fmt.Sprintf("duplicate work dates in batch: %s", strings.Join(formatted, ", "))
}

// WorkShiftService reconciles day-by-day shift assignments against the
// template version in force for each date.
type WorkShiftService struct {
	templateRepo  repository.ShiftTemplateRepository
	shiftTypeRepo repository.ShiftTypeRepository
	workShiftRepo repository.WorkShiftRepository
}

// NewWorkShiftService creates a new WorkShiftService.
func NewWorkShiftService(templateRepo repository.ShiftTemplateRepository, shiftTypeRepo repository.ShiftTypeRepository, workShiftRepo repository.WorkShiftRepository) *WorkShiftService {
	return &WorkShiftService{
		templateRepo:  templateRepo,
		shiftTypeRepo: shiftTypeRepo,
		workShiftRepo: workShiftRepo,
	}
}

// UpsertInput represents one work shift assignment.
type UpsertInput struct {
	WorkDate      time.Time
	ShiftTypeCode string
	Note          *string
}

// Upsert assigns a shift type to one calendar date, overwriting whatever the
// date held before. The shift type code resolves against the caller's active
// template and the schedule against the template's current version.
func (s *WorkShiftService) Upsert(userID uint64, input UpsertInput) (*models.WorkShift, error) {
	workDate := utils.NormalizeDate(input.WorkDate)

	template, err := s.resolveTemplate(userID)
	if err != nil {
		return nil, err
	}

	shiftType, err := s.shiftTypeRepo.FindLiveByCode(template.ID, input.ShiftTypeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTypeNotFound
		}
		return nil, fmt.Errorf("failed to find shift type: %w", err)
	}

	currentVersion, err := s.templateRepo.FindLatestVersion(template.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateVersionNotFound
		}
		return nil, fmt.Errorf("failed to resolve current version: %w", err)
	}

	schedule, err := resolveOrCreateSchedule(s.shiftTypeRepo, shiftType.ID, currentVersion.ID)
	if err != nil {
		return nil, err
	}

	shift := &models.WorkShift{
		UserID:              userID,
		WorkDate:            workDate,
		ShiftTypeScheduleID: schedule.ID,
		Note:                input.Note,
		CreatedBy:           userID,
	}
	if err := s.workShiftRepo.Upsert(shift); err != nil {
		return nil, fmt.Errorf("failed to upsert work shift: %w", err)
	}

	shifts, err := s.workShiftRepo.ListByUserAndDates(userID, []time.Time{workDate})
	if err != nil {
		return nil, fmt.Errorf("failed to reload work shift: %w", err)
	}
	if len(shifts) == 0 {
		return nil, fmt.Errorf("work shift vanished after upsert")
	}
	return &shifts[0], nil
}

// BatchEntry is one (date, shift type code, note) element of a batch upsert.
type BatchEntry struct {
	WorkDate      time.Time
	ShiftTypeCode string
	Note          *string
}

// BatchUpsert applies up to MaxBatchUpsertSize assignments in one database
// transaction. Duplicate dates are rejected before the transaction opens.
// Entries are processed in list order and each entry's version is resolved
// against its own date, so entries straddling a version boundary bind to
// different schedules. Any entry failure rolls back the whole batch; the
// returned rows are re-read after commit, ordered by the store rather than
// by input position.
func (s *WorkShiftService) BatchUpsert(userID uint64, entries []BatchEntry) ([]models.WorkShift, error) {
	if len(entries) == 0 {
		return nil, ErrBatchEmpty
	}
	if len(entries) > constants.MaxBatchUpsertSize {
		return nil, ErrBatchTooLarge
	}

	dates := make([]time.Time, len(entries))
	seen := make(map[string]bool, len(entries))
	var duplicates []time.Time
	for i, entry := range entries {
		date := utils.NormalizeDate(entry.WorkDate)
		dates[i] = date
		key := utils.FormatDate(date)
		if seen[key] {
			duplicates = append(duplicates, date)
			continue
		}
		seen[key] = true
	}
	if len(duplicates) > 0 {
		return nil, &DuplicateDatesError{Dates: duplicates}
	}

	template, err := s.resolveTemplate(userID)
	if err != nil {
		return nil, err
	}

	err = s.workShiftRepo.Transaction(func(tx *gorm.DB) error {
		templateRepo := s.templateRepo.WithTx(tx)
		shiftTypeRepo := s.shiftTypeRepo.WithTx(tx)
		workShiftRepo := s.workShiftRepo.WithTx(tx)

		for i, entry := range entries {
			workDate := dates[i]

			shiftType, err := shiftTypeRepo.FindLiveByCode(template.ID, entry.ShiftTypeCode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &InvalidShiftTypeError{Code: entry.ShiftTypeCode, Date: workDate}
				}
				return fmt.Errorf("failed to find shift type: %w", err)
			}

			version, err := resolveVersionForDate(templateRepo, template.ID, workDate, false)
			if err != nil {
				return err
			}

			schedule, err := resolveOrCreateSchedule(shiftTypeRepo, shiftType.ID, version.ID)
			if err != nil {
				return err
			}

			shift := &models.WorkShift{
				UserID:              userID,
				WorkDate:            workDate,
				ShiftTypeScheduleID: schedule.ID,
				Note:                entry.Note,
				CreatedBy:           userID,
			}
			if err := workShiftRepo.Upsert(shift); err != nil {
				return fmt.Errorf("failed to upsert work shift for %s: %w", utils.FormatDate(workDate), err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	shifts, err := s.workShiftRepo.ListByUserAndDates(userID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to reload work shifts: %w", err)
	}
	return shifts, nil
}

// ListRange returns the caller's live work shifts in an inclusive calendar
// date range with schedule and shift type detail.
func (s *WorkShiftService) ListRange(userID uint64, from, to time.Time) ([]models.WorkShift, error) {
	from = utils.NormalizeDate(from)
	to = utils.NormalizeDate(to)
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	shifts, err := s.workShiftRepo.ListByUserBetween(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}
	return shifts, nil
}

// Delete soft deletes the live work shift on one calendar date, recording
// the caller as the deleter.
func (s *WorkShiftService) Delete(userID uint64, date time.Time) error {
	date = utils.NormalizeDate(date)

	if err := s.workShiftRepo.SoftDelete(userID, date, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkShiftNotFound
		}
		return fmt.Errorf("failed to delete work shift: %w", err)
	}
	return nil
}

// resolveTemplate finds the caller's active template.
func (s *WorkShiftService) resolveTemplate(userID uint64) (*models.ShiftTemplate, error) {
	template, err := s.templateRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}
