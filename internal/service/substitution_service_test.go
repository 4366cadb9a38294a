package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

// 2026-09-07 is a Monday.
const mondayDate = "2026-09-07"

func TestSubstitutionServiceSuggestRanksByLoad(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{
		eligible: map[string][]string{"math": {"teacher-1", "teacher-2", "teacher-3"}},
		loads:    map[string]int{"teacher-1": 4, "teacher-2": 1, "teacher-3": 2},
	})

	candidates, err := service.Suggest(context.Background(), dto.SuggestSubstitutesRequest{
		ClassSectionID: "cs-1",
		Period:         3,
		Date:           mondayDate,
		SubjectID:      "math",
	})
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "teacher-2", candidates[0].TeacherID)
	assert.Equal(t, "teacher-3", candidates[1].TeacherID)
	assert.Equal(t, "teacher-1", candidates[2].TeacherID)
}

func TestSubstitutionServiceSuggestExcludesBusyAndAbsent(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{
		eligible: map[string][]string{"math": {"teacher-1", "teacher-2", "teacher-3"}},
		busy:     []string{"teacher-2"},
	})

	candidates, err := service.Suggest(context.Background(), dto.SuggestSubstitutesRequest{
		ClassSectionID:  "cs-1",
		Period:          3,
		Date:            mondayDate,
		SubjectID:       "math",
		AbsentTeacherID: "teacher-1",
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "teacher-3", candidates[0].TeacherID)
}

func TestSubstitutionServiceSuggestFlagsLoad(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{
		eligible: map[string][]string{"math": {"teacher-1", "teacher-2", "teacher-3"}},
		loads:    map[string]int{"teacher-1": 8, "teacher-2": 7, "teacher-3": 2},
	})

	candidates, err := service.Suggest(context.Background(), dto.SuggestSubstitutesRequest{
		ClassSectionID: "cs-1",
		Period:         3,
		Date:           mondayDate,
		SubjectID:      "math",
	})
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	flags := map[string]string{}
	for _, candidate := range candidates {
		flags[candidate.TeacherID] = candidate.Flag
	}
	assert.Equal(t, dto.CandidateFlagOverloaded, flags["teacher-1"])
	assert.Equal(t, dto.CandidateFlagNearCap, flags["teacher-2"])
	assert.Empty(t, flags["teacher-3"])
}

func TestSubstitutionServiceSuggestFallsBackToActiveRoster(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{
		activeIDs: []string{"teacher-1", "teacher-2"},
	})

	candidates, err := service.Suggest(context.Background(), dto.SuggestSubstitutesRequest{
		ClassSectionID: "cs-1",
		Period:         3,
		Date:           mondayDate,
	})
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestSubstitutionServiceSuggestRejectsWeekend(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{})

	// 2026-09-06 is a Sunday.
	_, err := service.Suggest(context.Background(), dto.SuggestSubstitutesRequest{
		ClassSectionID: "cs-1",
		Period:         3,
		Date:           "2026-09-06",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSubstitutionServiceCreateSuccess(t *testing.T) {
	store := &substitutionStoreStub{}
	service := newSubstitutionFixture(t, substitutionFixtureConfig{store: store})

	sub, err := service.Create(context.Background(), dto.CreateSubstitutionRequest{
		Date:                mondayDate,
		ClassSectionID:      "cs-1",
		Period:              3,
		SubstituteTeacherID: "teacher-2",
		Reason:              "illness cover",
	})
	require.NoError(t, err)
	assert.Equal(t, "teacher-2", sub.SubstituteTeacherID)
	require.Len(t, store.created, 1)
	assert.Equal(t, "cs-1", store.created[0].ClassSectionID)
}

func TestSubstitutionServiceCreateRejectsDuplicateCell(t *testing.T) {
	store := &substitutionStoreStub{
		existing: []models.Substitution{
			{ID: "sub-1", ClassSectionID: "cs-1", Period: 3, Date: mustParseDate(t, mondayDate)},
		},
	}
	service := newSubstitutionFixture(t, substitutionFixtureConfig{store: store})

	_, err := service.Create(context.Background(), dto.CreateSubstitutionRequest{
		Date:                mondayDate,
		ClassSectionID:      "cs-1",
		Period:              3,
		SubstituteTeacherID: "teacher-2",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestSubstitutionServiceCreateRejectsBusySubstitute(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{busy: []string{"teacher-2"}})

	_, err := service.Create(context.Background(), dto.CreateSubstitutionRequest{
		Date:                mondayDate,
		ClassSectionID:      "cs-1",
		Period:              3,
		SubstituteTeacherID: "teacher-2",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestSubstitutionServiceCreateRejectsAlreadyCoveringSubstitute(t *testing.T) {
	store := &substitutionStoreStub{substituteBooked: true}
	service := newSubstitutionFixture(t, substitutionFixtureConfig{store: store})

	_, err := service.Create(context.Background(), dto.CreateSubstitutionRequest{
		Date:                mondayDate,
		ClassSectionID:      "cs-1",
		Period:              3,
		SubstituteTeacherID: "teacher-2",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestSubstitutionServiceListByDateRejectsBadDate(t *testing.T) {
	service := newSubstitutionFixture(t, substitutionFixtureConfig{})

	_, err := service.ListByDate(context.Background(), "07-09-2026")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

// --- Fixtures ---

type substitutionFixtureConfig struct {
	store     *substitutionStoreStub
	eligible  map[string][]string
	activeIDs []string
	busy      []string
	loads     map[string]int
}

func newSubstitutionFixture(t *testing.T, cfg substitutionFixtureConfig) *SubstitutionService {
	t.Helper()
	store := cfg.store
	if store == nil {
		store = &substitutionStoreStub{}
	}
	defaults := models.DefaultTimetableSettings()

	return NewSubstitutionService(
		store,
		slotLoadReaderStub{busy: cfg.busy, loads: cfg.loads},
		eligibilityResolverStub{eligible: cfg.eligible},
		teacherRosterStub{activeIDs: cfg.activeIDs},
		settingsProviderStub{settings: &defaults},
		nil,
		nil,
		nil,
	)
}

func mustParseDate(t *testing.T, raw string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return date
}

type substitutionStoreStub struct {
	existing         []models.Substitution
	created          []models.Substitution
	substituteBooked bool
}

func (s *substitutionStoreStub) FindByCell(ctx context.Context, date time.Time, classSectionID string, period int) (*models.Substitution, error) {
	for i := range s.existing {
		sub := s.existing[i]
		if sub.ClassSectionID == classSectionID && sub.Period == period && sub.Date.Equal(date) {
			return &sub, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *substitutionStoreStub) ExistsForSubstituteAt(ctx context.Context, teacherID string, date time.Time, period int) (bool, error) {
	return s.substituteBooked, nil
}

func (s *substitutionStoreStub) ListByDate(ctx context.Context, date time.Time) ([]models.Substitution, error) {
	return s.existing, nil
}

func (s *substitutionStoreStub) Create(ctx context.Context, sub *models.Substitution) error {
	sub.ID = "sub-created"
	s.created = append(s.created, *sub)
	return nil
}

type slotLoadReaderStub struct {
	busy  []string
	loads map[string]int
}

func (s slotLoadReaderStub) ListBusyTeacherIDs(ctx context.Context, dayOfWeek, period int) ([]string, error) {
	return s.busy, nil
}

func (s slotLoadReaderStub) CountByTeacherForDay(ctx context.Context, dayOfWeek int) (map[string]int, error) {
	return s.loads, nil
}

type teacherRosterStub struct {
	activeIDs []string
}

func (s teacherRosterStub) ListByIDs(ctx context.Context, ids []string) ([]models.Teacher, error) {
	teachers := make([]models.Teacher, 0, len(ids))
	for _, id := range ids {
		teachers = append(teachers, models.Teacher{ID: id, FullName: "Teacher " + id, Active: true})
	}
	return teachers, nil
}

func (s teacherRosterStub) ListActiveIDs(ctx context.Context) ([]string, error) {
	return s.activeIDs, nil
}
