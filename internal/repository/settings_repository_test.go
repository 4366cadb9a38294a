package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/timetable-api/internal/models"
)

func newSettingsRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSettingsRepositoryGet(t *testing.T) {
	db, mock, cleanup := newSettingsRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	rows := sqlmock.NewRows([]string{"id", "working_days", "periods_per_day", "period_minutes", "lunch_period", "max_daily_load", "created_at", "updated_at"}).
		AddRow("settings-1", 31, 8, 45, 5, 8, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_settings ORDER BY created_at ASC LIMIT 1")).
		WillReturnRows(rows)

	settings, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, settings.PeriodsPerDay)
	assert.Equal(t, 31, settings.WorkingDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newSettingsRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_settings ORDER BY created_at ASC LIMIT 1")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSettingsRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newSettingsRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectExec("INSERT INTO timetable_settings").
		WillReturnResult(sqlmock.NewResult(1, 1))

	settings := models.DefaultTimetableSettings()
	require.NoError(t, repo.Create(context.Background(), &settings))
	assert.NotEmpty(t, settings.ID)

	mock.ExpectExec("UPDATE timetable_settings SET working_days").
		WillReturnResult(sqlmock.NewResult(1, 1))

	settings.PeriodsPerDay = 7
	require.NoError(t, repo.Update(context.Background(), &settings))
	assert.NoError(t, mock.ExpectationsWereMet())
}
