package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftcal/shiftcal-api/internal/dto"
	apierrors "github.com/shiftcal/shiftcal-api/internal/errors"
	"github.com/shiftcal/shiftcal-api/internal/middleware"
	"github.com/shiftcal/shiftcal-api/internal/services"
)

// ShiftTypeHandler coordinates shift type registry HTTP handlers.
type ShiftTypeHandler struct {
	shiftTypeService *services.ShiftTypeService
}

// NewShiftTypeHandler creates a new ShiftTypeHandler.
func NewShiftTypeHandler(shiftTypeService *services.ShiftTypeService) *ShiftTypeHandler {
	return &ShiftTypeHandler{
		shiftTypeService: shiftTypeService,
	}
}

// ListShiftTypes returns the live shift types of the caller's template.
func (h *ShiftTypeHandler) ListShiftTypes(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shiftTypes, err := h.shiftTypeService.List(userID)
	if err != nil {
		respondShiftTypeError(c, err)
		return
	}

	dtos := make([]dto.ShiftTypeDTO, len(shiftTypes))
	for i, shiftType := range shiftTypes {
		dtos[i] = dto.ToShiftTypeDTO(shiftType)
	}

	c.JSON(http.StatusOK, gin.H{"shift_types": dtos})
}

// CreateShiftType registers a new shift type.
func (h *ShiftTypeHandler) CreateShiftType(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateRequest struct {
		Code      string  `json:"code" binding:"required,max=20"`
		Name      string  `json:"name" binding:"required,max=50"`
		Color     *int64  `json:"color"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		SortOrder *int    `json:"sort_order"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	shiftType, err := h.shiftTypeService.Create(userID, services.CreateShiftTypeInput{
		Code:      req.Code,
		Name:      req.Name,
		Color:     req.Color,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondShiftTypeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftTypeDTO(*shiftType))
}

// UpdateShiftType applies a partial update to a shift type.
func (h *ShiftTypeHandler) UpdateShiftType(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shiftTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid shift type ID")
		return
	}

	type UpdateRequest struct {
		Code      *string `json:"code"`
		Name      *string `json:"name"`
		Color     *int64  `json:"color"`
		SortOrder *int    `json:"sort_order"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		ClearTime bool    `json:"clear_time"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	shiftType, err := h.shiftTypeService.Update(userID, shiftTypeID, services.UpdateShiftTypeInput{
		Code:      req.Code,
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ClearTime: req.ClearTime,
	})
	if err != nil {
		respondShiftTypeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftTypeDTO(*shiftType))
}

// DeleteShiftType soft deletes a shift type.
func (h *ShiftTypeHandler) DeleteShiftType(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shiftTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid shift type ID")
		return
	}

	if err := h.shiftTypeService.Delete(userID, shiftTypeID); err != nil {
		respondShiftTypeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift type deleted",
	})
}

func respondShiftTypeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTemplateNotFound, err.Error())
	case errors.Is(err, services.ErrShiftTypeNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeShiftTypeNotFound, err.Error())
	case errors.Is(err, services.ErrTemplateVersionNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTemplateVersionNotFound, err.Error())
	case errors.Is(err, services.ErrNotTemplateOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMaxShiftTypesExceeded):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeMaxShiftTypesExceeded, err.Error(), nil)
	case errors.Is(err, services.ErrDuplicateShiftTypeCode):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateName, err.Error())
	case errors.Is(err, services.ErrShiftTypeInUse):
		apierrors.Conflict(c, apierrors.ErrCodeInUse, err.Error())
	case errors.Is(err, services.ErrShiftTypeCodeRequired),
		errors.Is(err, services.ErrShiftTypeNameRequired),
		errors.Is(err, services.ErrTimeRangeIncomplete),
		errors.Is(err, services.ErrInvalidTime):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
