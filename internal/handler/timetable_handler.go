package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/service"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
	"github.com/edusuite/timetable-api/pkg/response"
)

type timetableManager interface {
	GetGrid(ctx context.Context, classSectionID string) (*dto.GridResponse, error)
	Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResult, error)
	UpdateSlot(ctx context.Context, classSectionID string, req dto.UpdateSlotRequest) (*dto.GridResponse, error)
}

// TimetableHandler manages weekly grid endpoints.
type TimetableHandler struct {
	service timetableManager
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// GetGrid godoc
// @Summary Read the weekly timetable grid
// @Tags Timetable
// @Produce json
// @Param id path string true "Class section ID"
// @Success 200 {object} response.Envelope
// @Router /class-sections/{id}/timetable [get]
func (h *TimetableHandler) GetGrid(c *gin.Context) {
	grid, err := h.service.GetGrid(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Generate godoc
// @Summary Generate the weekly timetable
// @Tags Timetable
// @Produce json
// @Param id path string true "Class section ID"
// @Param preserve query bool false "Keep existing slots instead of rebuilding"
// @Success 200 {object} response.Envelope
// @Router /class-sections/{id}/timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	preserve, _ := strconv.ParseBool(c.DefaultQuery("preserve", "false"))
	result, err := h.service.Generate(c.Request.Context(), dto.GenerateRequest{
		ClassSectionID:   c.Param("id"),
		PreserveExisting: preserve,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{"placed": result.Placed, "incomplete": result.Incomplete}
	if len(result.Unplaced) > 0 {
		meta["unplaced"] = result.Unplaced
	}
	response.JSON(c, http.StatusOK, result.Grid, nil, meta)
}

// UpdateSlot godoc
// @Summary Edit a single timetable cell
// @Tags Timetable
// @Accept json
// @Produce json
// @Param id path string true "Class section ID"
// @Param payload body dto.UpdateSlotRequest true "Slot edit payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /class-sections/{id}/timetable/slots [patch]
func (h *TimetableHandler) UpdateSlot(c *gin.Context) {
	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grid, err := h.service.UpdateSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}
