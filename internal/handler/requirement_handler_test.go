package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type requirementManagerMock struct {
	items       []models.WeeklyRequirementDetail
	requirement *models.WeeklyRequirement
	err         error
}

func (m *requirementManagerMock) List(ctx context.Context, classSectionID string) ([]models.WeeklyRequirementDetail, error) {
	return m.items, m.err
}

func (m *requirementManagerMock) Create(ctx context.Context, classSectionID string, req dto.CreateRequirementRequest) (*models.WeeklyRequirement, error) {
	return m.requirement, m.err
}

func (m *requirementManagerMock) Update(ctx context.Context, id string, req dto.UpdateRequirementRequest) (*models.WeeklyRequirement, error) {
	return m.requirement, m.err
}

func (m *requirementManagerMock) Delete(ctx context.Context, id string) error {
	return m.err
}

func TestRequirementHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &requirementManagerMock{
		requirement: &models.WeeklyRequirement{ID: "req-1", SubjectID: "math", WeeklyPeriods: 5},
	}
	handler := &RequirementHandler{service: mockSvc}
	router := gin.New()
	router.POST("/class-sections/:id/requirements", handler.Create)

	w := httptest.NewRecorder()
	body := []byte(`{"subject_id":"math","weekly_periods":5}`)
	req, _ := http.NewRequest(http.MethodPost, "/class-sections/cs-1/requirements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRequirementHandlerCreateDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &requirementManagerMock{err: appErrors.Clone(appErrors.ErrConflict, "a requirement for this subject already exists")}
	handler := &RequirementHandler{service: mockSvc}
	router := gin.New()
	router.POST("/class-sections/:id/requirements", handler.Create)

	w := httptest.NewRecorder()
	body := []byte(`{"subject_id":"math","weekly_periods":5}`)
	req, _ := http.NewRequest(http.MethodPost, "/class-sections/cs-1/requirements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRequirementHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RequirementHandler{service: &requirementManagerMock{}}
	router := gin.New()
	router.DELETE("/requirements/:requirementId", handler.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/requirements/req-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
}
