package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"github.com/shiftcal/shiftcal-api/internal/utils"
	"gorm.io/gorm"
)

// NoValidVersionError reports a date earlier than every version of a
// template when fallback resolution is disabled.
type NoValidVersionError struct {
	Date                time.Time
	EarliestVersionDate time.Time
}

func (e *NoValidVersionError) Error() string {
	return fmt.Sprintf("no version is effective on %s; the earliest version starts %s",
		utils.FormatDate(e.Date), utils.FormatDate(e.EarliestVersionDate))
}

// resolveVersionForDate picks the template version in force on the given
// date: the one with the greatest effective_from not exceeding it. For a
// date earlier than every version, non-strict resolution falls back to the
// globally latest version so that back-dated shifts still get a best-effort
// definition; strict resolution reports NoValidVersionError instead. A
// template with no versions at all resolves to ErrTemplateNotFound.
func resolveVersionForDate(repo repository.ShiftTemplateRepository, templateID uint64, date time.Time, strict bool) (*models.ShiftTemplateVersion, error) {
	version, err := repo.FindVersionOnOrBefore(templateID, date)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve version for date: %w", err)
	}

	latest, err := repo.FindLatestVersion(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to resolve latest version: %w", err)
	}

	if strict {
		earliest, err := repo.FindEarliestVersion(templateID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve earliest version: %w", err)
		}
		return nil, &NoValidVersionError{Date: date, EarliestVersionDate: earliest.EffectiveFrom}
	}

	return latest, nil
}

// resolveOrCreateSchedule returns the unique schedule binding a shift type
// to a version, lazily creating an untimed zero-duration row when the
// version has none for that type yet. A shift type whose hours are not set
// for a version must still be assignable to a work shift.
func resolveOrCreateSchedule(repo repository.ShiftTypeRepository, shiftTypeID, versionID uint64) (*models.ShiftTypeSchedule, error) {
	schedule, err := repo.FindSchedule(versionID, shiftTypeID)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}

	schedule = &models.ShiftTypeSchedule{
		ShiftTypeID:            shiftTypeID,
		ShiftTemplateVersionID: versionID,
	}
	if err := repo.CreateSchedule(schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}
