package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEligibilityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEligibilityRepositoryListEligibleTeacherIDs(t *testing.T) {
	db, mock, cleanup := newEligibilityRepoMock(t)
	defer cleanup()
	repo := NewEligibilityRepository(db)

	rows := sqlmock.NewRows([]string{"teacher_id"}).
		AddRow("t1").
		AddRow("t2")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ts.subject_id = $1 AND tca.class_section_id = $2")).
		WithArgs("math", "cs-1").
		WillReturnRows(rows)

	ids, err := repo.ListEligibleTeacherIDs(context.Background(), "cs-1", "math")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEligibilityRepositoryListAssignedTeacherIDs(t *testing.T) {
	db, mock, cleanup := newEligibilityRepoMock(t)
	defer cleanup()
	repo := NewEligibilityRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT teacher_id FROM teacher_class_assignments WHERE class_section_id = $1 ORDER BY teacher_id ASC")).
		WithArgs("cs-1").
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id"}).AddRow("t1"))

	ids, err := repo.ListAssignedTeacherIDs(context.Background(), "cs-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEligibilityRepositoryIsEligible(t *testing.T) {
	db, mock, cleanup := newEligibilityRepoMock(t)
	defer cleanup()
	repo := NewEligibilityRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("t1", "math", "cs-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsEligible(context.Background(), "t1", "cs-1", "math")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEligibilityRepositoryListRequirementSubjectIDs(t *testing.T) {
	db, mock, cleanup := newEligibilityRepoMock(t)
	defer cleanup()
	repo := NewEligibilityRepository(db)

	rows := sqlmock.NewRows([]string{"subject_id"}).
		AddRow("math").
		AddRow("science")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT subject_id FROM weekly_requirements WHERE class_section_id = $1 ORDER BY subject_id ASC")).
		WithArgs("cs-1").
		WillReturnRows(rows)

	ids, err := repo.ListRequirementSubjectIDs(context.Background(), "cs-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"math", "science"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEligibilityRepositoryListSubjectIDsForClassSection(t *testing.T) {
	db, mock, cleanup := newEligibilityRepoMock(t)
	defer cleanup()
	repo := NewEligibilityRepository(db)

	rows := sqlmock.NewRows([]string{"subject_id"}).
		AddRow("art").
		AddRow("math")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT ts.subject_id")).
		WithArgs("cs-1").
		WillReturnRows(rows)

	ids, err := repo.ListSubjectIDsForClassSection(context.Background(), "cs-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"art", "math"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
