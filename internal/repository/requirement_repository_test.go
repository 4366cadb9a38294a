package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/timetable-api/internal/models"
)

func newRequirementRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRequirementRepositoryListByClassSection(t *testing.T) {
	db, mock, cleanup := newRequirementRepoMock(t)
	defer cleanup()
	repo := NewRequirementRepository(db)

	rows := sqlmock.NewRows([]string{"id", "class_section_id", "subject_id", "weekly_periods", "created_at", "updated_at", "subject_code", "subject_name"}).
		AddRow("r1", "cs-1", "math", 5, time.Now(), time.Now(), "MTH", "Mathematics").
		AddRow("r2", "cs-1", "art", 2, time.Now(), time.Now(), "ART", "Art")
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY wr.weekly_periods DESC, wr.subject_id ASC")).
		WithArgs("cs-1").
		WillReturnRows(rows)

	items, err := repo.ListByClassSection(context.Background(), "cs-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Mathematics", items[0].SubjectName)
	assert.Equal(t, 5, items[0].WeeklyPeriods)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequirementRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRequirementRepoMock(t)
	defer cleanup()
	repo := NewRequirementRepository(db)

	mock.ExpectExec("INSERT INTO weekly_requirements").
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := &models.WeeklyRequirement{ClassSectionID: "cs-1", SubjectID: "math", WeeklyPeriods: 5}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.NotEmpty(t, req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequirementRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRequirementRepoMock(t)
	defer cleanup()
	repo := NewRequirementRepository(db)

	mock.ExpectExec("UPDATE weekly_requirements SET weekly_periods").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Update(context.Background(), &models.WeeklyRequirement{ID: "r1", WeeklyPeriods: 4}))

	mock.ExpectExec("DELETE FROM weekly_requirements WHERE id").
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
