package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shiftcal/shiftcal-api/internal/constants"
	"github.com/shiftcal/shiftcal-api/internal/dto"
	apierrors "github.com/shiftcal/shiftcal-api/internal/errors"
	"github.com/shiftcal/shiftcal-api/internal/middleware"
	"github.com/shiftcal/shiftcal-api/internal/services"
	"github.com/shiftcal/shiftcal-api/internal/utils"
)

// WorkShiftHandler coordinates work shift HTTP handlers.
type WorkShiftHandler struct {
	workShiftService *services.WorkShiftService
}

// NewWorkShiftHandler creates a new WorkShiftHandler.
func NewWorkShiftHandler(workShiftService *services.WorkShiftService) *WorkShiftHandler {
	return &WorkShiftHandler{
		workShiftService: workShiftService,
	}
}

// workShiftEntry is the wire form of one work shift assignment.
type workShiftEntry struct {
	WorkDate      string  `json:"work_date" binding:"required"`
	ShiftTypeCode string  `json:"shift_type_code" binding:"required,max=20"`
	Note          *string `json:"note" binding:"omitempty,max=500"`
}

// UpsertWorkShift assigns a shift type to one calendar date.
func (h *WorkShiftHandler) UpsertWorkShift(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req workShiftEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workDate, err := utils.ParseDate(req.WorkDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	shift, err := h.workShiftService.Upsert(userID, services.UpsertInput{
		WorkDate:      workDate,
		ShiftTypeCode: req.ShiftTypeCode,
		Note:          req.Note,
	})
	if err != nil {
		respondWorkShiftError(c, err, &workDate)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkShiftDTO(*shift))
}

// BatchUpsertWorkShifts applies a list of assignments in one transaction.
// The response rows carry no ordering guarantee relative to the request.
func (h *WorkShiftHandler) BatchUpsertWorkShifts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type BatchRequest struct {
		Entries []workShiftEntry `json:"entries" binding:"required"`
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]services.BatchEntry, len(req.Entries))
	for i, entry := range req.Entries {
		workDate, err := utils.ParseDate(entry.WorkDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		entries[i] = services.BatchEntry{
			WorkDate:      workDate,
			ShiftTypeCode: entry.ShiftTypeCode,
			Note:          entry.Note,
		}
	}

	shifts, err := h.workShiftService.BatchUpsert(userID, entries)
	if err != nil {
		respondWorkShiftError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_shifts": dto.ToWorkShiftDTOs(shifts)})
}

// ListWorkShifts returns the caller's shifts in a calendar date range.
func (h *WorkShiftHandler) ListWorkShifts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid from date")
		return
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid to date")
		return
	}

	shifts, err := h.workShiftService.ListRange(userID, from, to)
	if err != nil {
		respondWorkShiftError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"work_shifts": dto.ToWorkShiftDTOs(shifts)})
}

// DeleteWorkShift soft deletes the shift on one calendar date.
func (h *WorkShiftHandler) DeleteWorkShift(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	date, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	if err := h.workShiftService.Delete(userID, date); err != nil {
		respondWorkShiftError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work shift deleted",
	})
}

// respondWorkShiftError maps reconciler errors to API error codes. workDate
// enriches the TEMPLATE_VERSION_NOT_FOUND details on the single upsert path,
// where the service reports the condition without a date of its own.
func respondWorkShiftError(c *gin.Context, err error, workDate *time.Time) {
	var invalidShiftType *services.InvalidShiftTypeError
	var duplicateDates *services.DuplicateDatesError
	var noValidVersion *services.NoValidVersionError

	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTemplateNotFound, err.Error())
	case errors.Is(err, services.ErrShiftTypeNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeShiftTypeNotFound, err.Error())
	case errors.Is(err, services.ErrWorkShiftNotFound):
		apierrors.NotFound(c, "", err.Error())
	case errors.Is(err, services.ErrTemplateVersionNotFound):
		var details interface{}
		if workDate != nil {
			details = gin.H{"date": utils.FormatDate(*workDate)}
		}
		apierrors.NotFoundWithDetails(c, apierrors.ErrCodeTemplateVersionNotFound, err.Error(), details)
	case errors.As(err, &invalidShiftType):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidShiftType, err.Error(), gin.H{
			"code": invalidShiftType.Code,
			"date": utils.FormatDate(invalidShiftType.Date),
		})
	case errors.As(err, &duplicateDates):
		formatted := make([]string, len(duplicateDates.Dates))
		for i, d := range duplicateDates.Dates {
			formatted[i] = utils.FormatDate(d)
		}
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeDuplicateDate, err.Error(), gin.H{
			"dates": formatted,
		})
	case errors.As(err, &noValidVersion):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeNoValidVersionForDate, err.Error(), gin.H{
			"date":                  utils.FormatDate(noValidVersion.Date),
			"earliest_version_date": utils.FormatDate(noValidVersion.EarliestVersionDate),
		})
	case errors.Is(err, services.ErrBatchEmpty),
		errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBatchTooLarge):
		apierrors.BadRequest(c, fmt.Sprintf("Batch may hold at most %d entries", constants.MaxBatchUpsertSize))
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
