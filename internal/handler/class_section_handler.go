package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/timetable-api/internal/models"
	"github.com/edusuite/timetable-api/internal/service"
	"github.com/edusuite/timetable-api/pkg/response"
)

type classSectionDirectory interface {
	List(ctx context.Context, filter models.ClassSectionFilter) ([]models.ClassSection, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.ClassSection, error)
	Resolve(ctx context.Context, grade, section string) (*models.ClassSection, error)
	AvailableSubjects(ctx context.Context, id string) ([]models.Subject, error)
}

// ClassSectionHandler serves class section reference data.
type ClassSectionHandler struct {
	service classSectionDirectory
}

// NewClassSectionHandler constructs handler.
func NewClassSectionHandler(svc *service.ClassSectionService) *ClassSectionHandler {
	return &ClassSectionHandler{service: svc}
}

// List godoc
// @Summary List class sections
// @Tags ClassSections
// @Produce json
// @Param grade query string false "Filter by grade"
// @Param search query string false "Search by name"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /class-sections [get]
func (h *ClassSectionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := models.ClassSectionFilter{
		Grade:     c.Query("grade"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	sections, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, pagination)
}

// Get godoc
// @Summary Get a class section
// @Tags ClassSections
// @Produce json
// @Param id path string true "Class section ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class-sections/{id} [get]
func (h *ClassSectionHandler) Get(c *gin.Context) {
	cs, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cs, nil)
}

// Subjects godoc
// @Summary List subjects schedulable on a class section
// @Tags ClassSections
// @Produce json
// @Param id path string true "Class section ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class-sections/{id}/subjects [get]
func (h *ClassSectionHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.AvailableSubjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Resolve godoc
// @Summary Resolve a class section from grade and section letter
// @Tags ClassSections
// @Produce json
// @Param grade query string true "Grade"
// @Param section query string true "Section letter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class-sections/resolve [get]
func (h *ClassSectionHandler) Resolve(c *gin.Context) {
	cs, err := h.service.Resolve(c.Request.Context(), c.Query("grade"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cs, nil)
}
