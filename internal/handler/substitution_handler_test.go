package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type substitutionAdvisorMock struct {
	candidates  []dto.SubstituteCandidate
	sub         *models.Substitution
	subs        []models.Substitution
	err         error
	capturedReq dto.SuggestSubstitutesRequest
}

func (m *substitutionAdvisorMock) Suggest(ctx context.Context, req dto.SuggestSubstitutesRequest) ([]dto.SubstituteCandidate, error) {
	m.capturedReq = req
	return m.candidates, m.err
}

func (m *substitutionAdvisorMock) Create(ctx context.Context, req dto.CreateSubstitutionRequest) (*models.Substitution, error) {
	return m.sub, m.err
}

func (m *substitutionAdvisorMock) ListByDate(ctx context.Context, rawDate string) ([]models.Substitution, error) {
	return m.subs, m.err
}

func TestSubstitutionHandlerSuggest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &substitutionAdvisorMock{
		candidates: []dto.SubstituteCandidate{{TeacherID: "t2", DayLoad: 1}},
	}
	handler := &SubstitutionHandler{service: mockSvc}
	router := gin.New()
	router.GET("/class-sections/:id/substitutes", handler.Suggest)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/class-sections/cs-1/substitutes?period=3&date=2026-09-07&subjectId=math&absentTeacherId=t1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "cs-1", mockSvc.capturedReq.ClassSectionID)
	require.Equal(t, 3, mockSvc.capturedReq.Period)
	require.Equal(t, "math", mockSvc.capturedReq.SubjectID)
	require.Equal(t, "t1", mockSvc.capturedReq.AbsentTeacherID)
}

func TestSubstitutionHandlerSuggestBadPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &SubstitutionHandler{service: &substitutionAdvisorMock{}}
	router := gin.New()
	router.GET("/class-sections/:id/substitutes", handler.Suggest)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/class-sections/cs-1/substitutes?period=abc&date=2026-09-07", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubstitutionHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &substitutionAdvisorMock{
		sub: &models.Substitution{ID: "sub-1", SubstituteTeacherID: "t2"},
	}
	handler := &SubstitutionHandler{service: mockSvc}
	router := gin.New()
	router.POST("/substitutions", handler.Create)

	w := httptest.NewRecorder()
	body := []byte(`{"date":"2026-09-07","class_section_id":"cs-1","period":3,"substitute_teacher_id":"t2","reason":"illness"}`)
	req, _ := http.NewRequest(http.MethodPost, "/substitutions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope struct {
		Data models.Substitution `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "sub-1", envelope.Data.ID)
}

func TestSubstitutionHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &substitutionAdvisorMock{err: appErrors.Clone(appErrors.ErrConflict, "substitute already holds a slot at this day and period")}
	handler := &SubstitutionHandler{service: mockSvc}
	router := gin.New()
	router.POST("/substitutions", handler.Create)

	w := httptest.NewRecorder()
	body := []byte(`{"date":"2026-09-07","class_section_id":"cs-1","period":3,"substitute_teacher_id":"t2"}`)
	req, _ := http.NewRequest(http.MethodPost, "/substitutions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSubstitutionHandlerListByDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &substitutionAdvisorMock{
		subs: []models.Substitution{{ID: "sub-1"}, {ID: "sub-2"}},
	}
	handler := &SubstitutionHandler{service: mockSvc}
	router := gin.New()
	router.GET("/substitutions", handler.ListByDate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/substitutions?date=2026-09-07", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Substitution `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
}
