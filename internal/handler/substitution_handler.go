package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	"github.com/edusuite/timetable-api/internal/service"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
	"github.com/edusuite/timetable-api/pkg/response"
)

type substitutionAdvisor interface {
	Suggest(ctx context.Context, req dto.SuggestSubstitutesRequest) ([]dto.SubstituteCandidate, error)
	Create(ctx context.Context, req dto.CreateSubstitutionRequest) (*models.Substitution, error)
	ListByDate(ctx context.Context, rawDate string) ([]models.Substitution, error)
}

// SubstitutionHandler manages substitution endpoints.
type SubstitutionHandler struct {
	service substitutionAdvisor
}

// NewSubstitutionHandler constructs handler.
func NewSubstitutionHandler(svc *service.SubstitutionService) *SubstitutionHandler {
	return &SubstitutionHandler{service: svc}
}

// Suggest godoc
// @Summary Rank substitute teachers for a cell
// @Tags Substitutions
// @Produce json
// @Param id path string true "Class section ID"
// @Param period query int true "Period number"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param subjectId query string false "Subject being taught"
// @Param absentTeacherId query string false "Absent teacher to exclude"
// @Success 200 {object} response.Envelope
// @Router /class-sections/{id}/substitutes [get]
func (h *SubstitutionHandler) Suggest(c *gin.Context) {
	period, err := strconv.Atoi(c.Query("period"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period must be a number"))
		return
	}

	candidates, err := h.service.Suggest(c.Request.Context(), dto.SuggestSubstitutesRequest{
		ClassSectionID:  c.Param("id"),
		Period:          period,
		Date:            c.Query("date"),
		SubjectID:       c.Query("subjectId"),
		AbsentTeacherID: c.Query("absentTeacherId"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidates, nil)
}

// Create godoc
// @Summary Record an approved substitution
// @Tags Substitutions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubstitutionRequest true "Substitution payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /substitutions [post]
func (h *SubstitutionHandler) Create(c *gin.Context) {
	var req dto.CreateSubstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sub, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

// ListByDate godoc
// @Summary List substitutions for a date
// @Tags Substitutions
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /substitutions [get]
func (h *SubstitutionHandler) ListByDate(c *gin.Context) {
	subs, err := h.service.ListByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, nil)
}
