package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// RequirementRepository provides persistence for weekly subject requirements.
type RequirementRepository struct {
	db *sqlx.DB
}

// NewRequirementRepository creates a new requirement repository.
func NewRequirementRepository(db *sqlx.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

// ListByClassSection returns requirements for a class section with subject
// display fields, ordered for deterministic generation input.
func (r *RequirementRepository) ListByClassSection(ctx context.Context, classSectionID string) ([]models.WeeklyRequirementDetail, error) {
	const query = `SELECT wr.id, wr.class_section_id, wr.subject_id, wr.weekly_periods, wr.created_at, wr.updated_at,
			COALESCE(s.code, '') AS subject_code, COALESCE(s.name, '') AS subject_name
		FROM weekly_requirements wr
		LEFT JOIN subjects s ON s.id = wr.subject_id
		WHERE wr.class_section_id = $1
		ORDER BY wr.weekly_periods DESC, wr.subject_id ASC`
	var items []models.WeeklyRequirementDetail
	if err := r.db.SelectContext(ctx, &items, query, classSectionID); err != nil {
		return nil, fmt.Errorf("list weekly requirements: %w", err)
	}
	return items, nil
}

// FindByID loads a requirement by id.
func (r *RequirementRepository) FindByID(ctx context.Context, id string) (*models.WeeklyRequirement, error) {
	const query = `SELECT id, class_section_id, subject_id, weekly_periods, created_at, updated_at FROM weekly_requirements WHERE id = $1`
	var item models.WeeklyRequirement
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create stores a new requirement. The (class_section_id, subject_id) pair is
// unique; violations surface as database errors for the service to translate.
func (r *RequirementRepository) Create(ctx context.Context, req *models.WeeklyRequirement) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	const query = `INSERT INTO weekly_requirements (id, class_section_id, subject_id, weekly_periods, created_at, updated_at) VALUES (:id, :class_section_id, :subject_id, :weekly_periods, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("create weekly requirement: %w", err)
	}
	return nil
}

// Update modifies the weekly period count of a requirement.
func (r *RequirementRepository) Update(ctx context.Context, req *models.WeeklyRequirement) error {
	req.UpdatedAt = time.Now().UTC()
	const query = `UPDATE weekly_requirements SET weekly_periods = :weekly_periods, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("update weekly requirement: %w", err)
	}
	return nil
}

// Delete removes a requirement by id.
func (r *RequirementRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM weekly_requirements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete weekly requirement: %w", err)
	}
	return nil
}
