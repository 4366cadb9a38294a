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

type settingsManager interface {
	Get(ctx context.Context) (*models.TimetableSettings, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*models.TimetableSettings, error)
}

// SettingsHandler manages the timetable settings endpoints.
type SettingsHandler struct {
	service settingsManager
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Get godoc
// @Summary Read timetable settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Update timetable settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpdateSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
