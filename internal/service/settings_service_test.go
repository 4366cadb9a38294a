package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

func TestSettingsServiceGetCreatesDefaults(t *testing.T) {
	store := &settingsStoreStub{}
	service := NewSettingsService(store, nil, nil)

	settings, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPeriodsPerDay, settings.PeriodsPerDay)
	assert.Equal(t, models.DefaultLunchPeriod, settings.LunchPeriod)
	assert.Equal(t, models.DefaultWorkingDaysMask, settings.WorkingDays)
	assert.True(t, store.createCalled, "missing settings must be lazily created")
}

func TestSettingsServiceGetNormalizesPartialRow(t *testing.T) {
	store := &settingsStoreStub{
		settings: &models.TimetableSettings{ID: "settings-1", PeriodsPerDay: 6},
	}
	service := NewSettingsService(store, nil, nil)

	settings, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, settings.PeriodsPerDay)
	assert.Equal(t, models.DefaultLunchPeriod, settings.LunchPeriod)
	assert.Equal(t, 6, settings.MaxDailyLoad)
	assert.False(t, store.createCalled)
}

func TestSettingsServiceUpdate(t *testing.T) {
	store := &settingsStoreStub{
		settings: &models.TimetableSettings{ID: "settings-1", PeriodsPerDay: 8, PeriodMinutes: 45, LunchPeriod: 5, MaxDailyLoad: 8, WorkingDays: 31},
	}
	service := NewSettingsService(store, nil, nil)

	updated, err := service.Update(context.Background(), dto.UpdateSettingsRequest{
		WorkingDays:   0b01111,
		PeriodsPerDay: 7,
		PeriodMinutes: 40,
		LunchPeriod:   4,
		MaxDailyLoad:  6,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.PeriodsPerDay)
	assert.Equal(t, 4, updated.LunchPeriod)
	assert.Equal(t, []int{1, 2, 3, 4}, updated.WorkingDayNumbers())
	assert.True(t, store.updateCalled)
}

func TestSettingsServiceUpdateRejectsLunchOutsideDay(t *testing.T) {
	store := &settingsStoreStub{}
	service := NewSettingsService(store, nil, nil)

	_, err := service.Update(context.Background(), dto.UpdateSettingsRequest{
		WorkingDays:   31,
		PeriodsPerDay: 6,
		PeriodMinutes: 45,
		LunchPeriod:   7,
		MaxDailyLoad:  6,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.False(t, store.updateCalled)
}

type settingsStoreStub struct {
	settings     *models.TimetableSettings
	createCalled bool
	updateCalled bool
}

func (s *settingsStoreStub) Get(ctx context.Context) (*models.TimetableSettings, error) {
	if s.settings == nil {
		return nil, sql.ErrNoRows
	}
	copied := *s.settings
	return &copied, nil
}

func (s *settingsStoreStub) Create(ctx context.Context, settings *models.TimetableSettings) error {
	s.createCalled = true
	settings.ID = "settings-created"
	copied := *settings
	s.settings = &copied
	return nil
}

func (s *settingsStoreStub) Update(ctx context.Context, settings *models.TimetableSettings) error {
	s.updateCalled = true
	copied := *settings
	s.settings = &copied
	return nil
}
