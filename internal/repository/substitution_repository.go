package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// SubstitutionRepository provides persistence for teacher substitutions.
type SubstitutionRepository struct {
	db *sqlx.DB
}

// NewSubstitutionRepository creates a new substitution repository.
func NewSubstitutionRepository(db *sqlx.DB) *SubstitutionRepository {
	return &SubstitutionRepository{db: db}
}

const substitutionColumns = `id, date, class_section_id, period, original_teacher_id, substitute_teacher_id, reason, approved_by, created_at`

// FindByCell loads the substitution for one (date, class section, period) cell.
func (r *SubstitutionRepository) FindByCell(ctx context.Context, date time.Time, classSectionID string, period int) (*models.Substitution, error) {
	query := fmt.Sprintf(`SELECT %s FROM substitutions WHERE date = $1 AND class_section_id = $2 AND period = $3`, substitutionColumns)
	var sub models.Substitution
	if err := r.db.GetContext(ctx, &sub, query, date, classSectionID, period); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ExistsForSubstituteAt reports whether the teacher is already booked as a
// substitute for the date/period in any class section.
func (r *SubstitutionRepository) ExistsForSubstituteAt(ctx context.Context, teacherID string, date time.Time, period int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM substitutions WHERE substitute_teacher_id = $1 AND date = $2 AND period = $3)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, teacherID, date, period); err != nil {
		return false, fmt.Errorf("check substitute booking: %w", err)
	}
	return ok, nil
}

// ListByDate returns substitutions for a date ordered by class section/period.
func (r *SubstitutionRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Substitution, error) {
	query := fmt.Sprintf(`SELECT %s FROM substitutions WHERE date = $1 ORDER BY class_section_id ASC, period ASC`, substitutionColumns)
	var subs []models.Substitution
	if err := r.db.SelectContext(ctx, &subs, query, date); err != nil {
		return nil, fmt.Errorf("list substitutions by date: %w", err)
	}
	return subs, nil
}

// Create stores a new substitution record.
func (r *SubstitutionRepository) Create(ctx context.Context, sub *models.Substitution) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO substitutions (id, date, class_section_id, period, original_teacher_id, substitute_teacher_id, reason, approved_by, created_at) VALUES (:id, :date, :class_section_id, :period, :original_teacher_id, :substitute_teacher_id, :reason, :approved_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create substitution: %w", err)
	}
	return nil
}
