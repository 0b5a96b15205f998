package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shiftcal/shiftcal-api/internal/dto"
	apierrors "github.com/shiftcal/shiftcal-api/internal/errors"
	"github.com/shiftcal/shiftcal-api/internal/middleware"
	"github.com/shiftcal/shiftcal-api/internal/services"
	"github.com/shiftcal/shiftcal-api/internal/utils"
)

// ShiftTemplateHandler coordinates shift template HTTP handlers.
type ShiftTemplateHandler struct {
	templateService *services.ShiftTemplateService
}

// NewShiftTemplateHandler creates a new ShiftTemplateHandler.
func NewShiftTemplateHandler(templateService *services.ShiftTemplateService) *ShiftTemplateHandler {
	return &ShiftTemplateHandler{
		templateService: templateService,
	}
}

// GetMyTemplate returns the caller's template with versions and shift types.
func (h *ShiftTemplateHandler) GetMyTemplate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	template, err := h.templateService.GetMyTemplate(userID)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftTemplateDTO(*template))
}

// Rename changes the caller's template display name.
func (h *ShiftTemplateHandler) Rename(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RenameRequest struct {
		Name string `json:"name" binding:"required,max=100"`
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.Rename(userID, req.Name)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftTemplateDTO(*template))
}

// CreateVersion opens a new effective-dated version of the caller's template.
func (h *ShiftTemplateHandler) CreateVersion(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateVersionRequest struct {
		EffectiveFrom string `json:"effective_from" binding:"required"`
	}

	var req CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	effectiveFrom, err := utils.ParseDate(req.EffectiveFrom)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	version, err := h.templateService.CreateVersion(userID, effectiveFrom)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateVersionDTO(*version))
}

func respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTemplateNotFound, err.Error())
	case errors.Is(err, services.ErrTemplateNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateTemplateName):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateName, err.Error())
	case errors.Is(err, services.ErrVersionDateTaken):
		apierrors.Conflict(c, "", err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
