package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type settingsStore interface {
	Get(ctx context.Context) (*models.TimetableSettings, error)
	Create(ctx context.Context, settings *models.TimetableSettings) error
	Update(ctx context.Context, settings *models.TimetableSettings) error
}

// SettingsService manages the timetable settings singleton. Missing settings
// are lazily created with defaults on first read so callers always receive a
// complete configuration.
type SettingsService struct {
	store     settingsStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService wires the settings service.
func NewSettingsService(store settingsStore, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, validator: validate, logger: logger}
}

// Get returns the settings, creating the default singleton when absent.
func (s *SettingsService) Get(ctx context.Context) (*models.TimetableSettings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable settings")
		}
		defaults := models.DefaultTimetableSettings()
		if err := s.store.Create(ctx, &defaults); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create default timetable settings")
		}
		s.logger.Info("created default timetable settings", zap.String("id", defaults.ID))
		settings = &defaults
	}
	settings.Normalize()
	return settings, nil
}

// Update replaces the singleton's values.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*models.TimetableSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	if req.LunchPeriod > req.PeriodsPerDay {
		return nil, appErrors.Clone(appErrors.ErrValidation, "lunch period must fall within the school day")
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.WorkingDays = req.WorkingDays
	settings.PeriodsPerDay = req.PeriodsPerDay
	settings.PeriodMinutes = req.PeriodMinutes
	settings.LunchPeriod = req.LunchPeriod
	settings.MaxDailyLoad = req.MaxDailyLoad
	settings.Normalize()

	if err := s.store.Update(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timetable settings")
	}
	return settings, nil
}
