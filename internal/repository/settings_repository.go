package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// SettingsRepository persists the timetable settings singleton.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the settings row. Returns sql.ErrNoRows when none exists yet; the
// service lazily creates defaults in that case.
func (r *SettingsRepository) Get(ctx context.Context) (*models.TimetableSettings, error) {
	const query = `SELECT id, working_days, periods_per_day, period_minutes, lunch_period, max_daily_load, created_at, updated_at FROM timetable_settings ORDER BY created_at ASC LIMIT 1`
	var settings models.TimetableSettings
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create stores the settings singleton.
func (r *SettingsRepository) Create(ctx context.Context, settings *models.TimetableSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	const query = `INSERT INTO timetable_settings (id, working_days, periods_per_day, period_minutes, lunch_period, max_daily_load, created_at, updated_at) VALUES (:id, :working_days, :periods_per_day, :period_minutes, :lunch_period, :max_daily_load, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("create timetable settings: %w", err)
	}
	return nil
}

// Update modifies the settings singleton.
func (r *SettingsRepository) Update(ctx context.Context, settings *models.TimetableSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	const query = `UPDATE timetable_settings SET working_days = :working_days, periods_per_day = :periods_per_day, period_minutes = :period_minutes, lunch_period = :lunch_period, max_daily_load = :max_daily_load, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("update timetable settings: %w", err)
	}
	return nil
}
