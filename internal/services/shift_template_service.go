package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"github.com/shiftcal/shiftcal-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound      = errors.New("shift template not found")
	ErrTemplateNameRequired  = errors.New("template name is required")
	ErrDuplicateTemplateName = errors.New("another template already has this name")
	ErrVersionDateTaken      = errors.New("a version is already effective on this date")
)

// ShiftTemplateService handles shift template and template version business logic.
type ShiftTemplateService struct {
	templateRepo repository.ShiftTemplateRepository
}

// NewShiftTemplateService creates a new ShiftTemplateService.
func NewShiftTemplateService(templateRepo repository.ShiftTemplateRepository) *ShiftTemplateService {
	return &ShiftTemplateService{
		templateRepo: templateRepo,
	}
}

// GetMyTemplate returns the caller's active template with version history and
// live shift types.
func (s *ShiftTemplateService) GetMyTemplate(userID uint64) (*models.ShiftTemplate, error) {
	template, err := s.templateRepo.FindActiveByUserIDWithDetails(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}

// Rename changes the display name of the caller's template. The name must be
// unique among the owner's non-deleted templates.
func (s *ShiftTemplateService) Rename(userID uint64, name string) (*models.ShiftTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTemplateNameRequired
	}

	template, err := s.templateRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	count, err := s.templateRepo.CountActiveByUserAndName(userID, name, template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check template name: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateTemplateName
	}

	template.Name = name
	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to rename template: %w", err)
	}

	return template, nil
}

// CreateVersion opens a new effective-dated version of the caller's
// template, numbered one past the current maximum. Existing versions and
// their schedules are left untouched; the new version's schedules are
// materialized lazily as shift types get resolved against it.
func (s *ShiftTemplateService) CreateVersion(userID uint64, effectiveFrom time.Time) (*models.ShiftTemplateVersion, error) {
	effectiveFrom = utils.NormalizeDate(effectiveFrom)

	template, err := s.templateRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	count, err := s.templateRepo.CountVersionsAt(template.ID, effectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("failed to check effective date: %w", err)
	}
	if count > 0 {
		return nil, ErrVersionDateTaken
	}

	maxNo, err := s.templateRepo.MaxVersionNo(template.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine version number: %w", err)
	}

	version := &models.ShiftTemplateVersion{
		ShiftTemplateID: template.ID,
		VersionNo:       maxNo + 1,
		EffectiveFrom:   effectiveFrom,
		CreatedBy:       userID,
	}
	if err := s.templateRepo.CreateVersion(version); err != nil {
		// A concurrent creation can slip past the pre-checks; the unique
		// constraints on (template, version_no) and (template,
		// effective_from) are the final arbiter.
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	return version, nil
}
