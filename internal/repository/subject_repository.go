package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// SubjectRepository provides read access to subject reference data.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// FindByID loads a subject by id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, code, name, created_at, updated_at FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListByIDs returns the subjects matching the given ids. Used for best-effort
// display enrichment of grid responses.
func (r *SubjectRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, code, name, created_at, updated_at FROM subjects WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build subject lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects by ids: %w", err)
	}
	return subjects, nil
}
