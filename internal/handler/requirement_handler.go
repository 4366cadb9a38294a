package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	"github.com/edusuite/timetable-api/internal/service"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
	"github.com/edusuite/timetable-api/pkg/response"
)

type requirementManager interface {
	List(ctx context.Context, classSectionID string) ([]models.WeeklyRequirementDetail, error)
	Create(ctx context.Context, classSectionID string, req dto.CreateRequirementRequest) (*models.WeeklyRequirement, error)
	Update(ctx context.Context, id string, req dto.UpdateRequirementRequest) (*models.WeeklyRequirement, error)
	Delete(ctx context.Context, id string) error
}

// RequirementHandler manages weekly requirement endpoints.
type RequirementHandler struct {
	service requirementManager
}

// NewRequirementHandler constructs handler.
func NewRequirementHandler(svc *service.RequirementService) *RequirementHandler {
	return &RequirementHandler{service: svc}
}

// List godoc
// @Summary List weekly requirements for a class section
// @Tags Requirements
// @Produce json
// @Param id path string true "Class section ID"
// @Success 200 {object} response.Envelope
// @Router /class-sections/{id}/requirements [get]
func (h *RequirementHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Add a weekly requirement
// @Tags Requirements
// @Accept json
// @Produce json
// @Param id path string true "Class section ID"
// @Param payload body dto.CreateRequirementRequest true "Requirement payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /class-sections/{id}/requirements [post]
func (h *RequirementHandler) Create(c *gin.Context) {
	var req dto.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	requirement, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, requirement)
}

// Update godoc
// @Summary Change a weekly requirement's period count
// @Tags Requirements
// @Accept json
// @Produce json
// @Param requirementId path string true "Requirement ID"
// @Param payload body dto.UpdateRequirementRequest true "Requirement payload"
// @Success 200 {object} response.Envelope
// @Router /requirements/{requirementId} [put]
func (h *RequirementHandler) Update(c *gin.Context) {
	var req dto.UpdateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	requirement, err := h.service.Update(c.Request.Context(), c.Param("requirementId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requirement, nil)
}

// Delete godoc
// @Summary Remove a weekly requirement
// @Tags Requirements
// @Produce json
// @Param requirementId path string true "Requirement ID"
// @Success 204
// @Router /requirements/{requirementId} [delete]
func (h *RequirementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("requirementId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
