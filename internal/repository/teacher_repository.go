package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// TeacherRepository provides read access to teacher reference data.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID loads a teacher by id.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `SELECT id, full_name, department, active, created_at, updated_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ListByIDs returns the teachers matching the given ids. Used for display
// enrichment and substitute candidate annotation.
func (r *TeacherRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Teacher, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, full_name, department, active, created_at, updated_at FROM teachers WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build teacher lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, fmt.Errorf("list teachers by ids: %w", err)
	}
	return teachers, nil
}

// ListActiveIDs returns every active teacher id in stable order. Used by the
// substitution advisor when no subject filter is given.
func (r *TeacherRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM teachers WHERE active = true ORDER BY id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list active teachers: %w", err)
	}
	return ids, nil
}
