package dto

import (
	"time"

	"github.com/shiftcal/shiftcal-api/internal/models"
	"github.com/shiftcal/shiftcal-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ShiftTypeDTO represents a shift type in API responses
type ShiftTypeDTO struct {
	ID        uint64    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Color     *int64    `json:"color"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ScheduleDTO represents a shift type schedule in API responses
type ScheduleDTO struct {
	ID              uint64        `json:"id"`
	StartTime       *string       `json:"start_time"`
	EndTime         *string       `json:"end_time"`
	CrossesMidnight bool          `json:"crosses_midnight"`
	DurationMinutes int           `json:"duration_minutes"`
	ShiftType       *ShiftTypeDTO `json:"shift_type,omitempty"`
}

// WorkShiftDTO represents a work shift in API responses
type WorkShiftDTO struct {
	ID        uint64       `json:"id"`
	WorkDate  string       `json:"work_date"`
	Note      *string      `json:"note"`
	Schedule  *ScheduleDTO `json:"schedule,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TemplateVersionDTO represents a template version in API responses
type TemplateVersionDTO struct {
	ID            uint64    `json:"id"`
	VersionNo     int       `json:"version_no"`
	EffectiveFrom string    `json:"effective_from"`
	CreatedAt     time.Time `json:"created_at"`
}

// ShiftTemplateDTO represents a shift template in API responses
type ShiftTemplateDTO struct {
	ID         uint64               `json:"id"`
	Name       string               `json:"name"`
	CreatedAt  time.Time            `json:"created_at"`
	Versions   []TemplateVersionDTO `json:"versions,omitempty"`
	ShiftTypes []ShiftTypeDTO       `json:"shift_types,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToShiftTypeDTO converts a ShiftType model to ShiftTypeDTO
func ToShiftTypeDTO(shiftType models.ShiftType) ShiftTypeDTO {
	return ShiftTypeDTO{
		ID:        shiftType.ID,
		Code:      shiftType.Code,
		Name:      shiftType.Name,
		Color:     shiftType.Color,
		SortOrder: shiftType.SortOrder,
		CreatedAt: shiftType.CreatedAt,
	}
}

// ToScheduleDTO converts a ShiftTypeSchedule model to ScheduleDTO
func ToScheduleDTO(schedule models.ShiftTypeSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:              schedule.ID,
		StartTime:       schedule.StartTime,
		EndTime:         schedule.EndTime,
		CrossesMidnight: schedule.CrossesMidnight,
		DurationMinutes: schedule.DurationMinutes,
	}

	// Include shift type if preloaded
	if schedule.ShiftType.ID != 0 {
		shiftType := ToShiftTypeDTO(schedule.ShiftType)
		dto.ShiftType = &shiftType
	}

	return dto
}

// ToWorkShiftDTO converts a WorkShift model to WorkShiftDTO
func ToWorkShiftDTO(shift models.WorkShift) WorkShiftDTO {
	dto := WorkShiftDTO{
		ID:        shift.ID,
		WorkDate:  utils.FormatDate(shift.WorkDate),
		Note:      shift.Note,
		CreatedAt: shift.CreatedAt,
		UpdatedAt: shift.UpdatedAt,
	}

	// Include schedule if preloaded
	if shift.ShiftTypeSchedule.ID != 0 {
		schedule := ToScheduleDTO(shift.ShiftTypeSchedule)
		dto.Schedule = &schedule
	}

	return dto
}

// ToWorkShiftDTOs converts a slice of work shifts
func ToWorkShiftDTOs(shifts []models.WorkShift) []WorkShiftDTO {
	dtos := make([]WorkShiftDTO, len(shifts))
	for i, shift := range shifts {
		dtos[i] = ToWorkShiftDTO(shift)
	}
	return dtos
}

// ToTemplateVersionDTO converts a ShiftTemplateVersion model to TemplateVersionDTO
func ToTemplateVersionDTO(version models.ShiftTemplateVersion) TemplateVersionDTO {
	return TemplateVersionDTO{
		ID:            version.ID,
		VersionNo:     version.VersionNo,
		EffectiveFrom: utils.FormatDate(version.EffectiveFrom),
		CreatedAt:     version.CreatedAt,
	}
}

// ToShiftTemplateDTO converts a ShiftTemplate model to ShiftTemplateDTO
func ToShiftTemplateDTO(template models.ShiftTemplate) ShiftTemplateDTO {
	dto := ShiftTemplateDTO{
		ID:        template.ID,
		Name:      template.Name,
		CreatedAt: template.CreatedAt,
	}

	if len(template.Versions) > 0 {
		dto.Versions = make([]TemplateVersionDTO, len(template.Versions))
		for i, version := range template.Versions {
			dto.Versions[i] = ToTemplateVersionDTO(version)
		}
	}

	if len(template.ShiftTypes) > 0 {
		dto.ShiftTypes = make([]ShiftTypeDTO, len(template.ShiftTypes))
		for i, shiftType := range template.ShiftTypes {
			dto.ShiftTypes[i] = ToShiftTypeDTO(shiftType)
		}
	}

	return dto
}
