package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EligibilityRepository answers teacher eligibility queries from the
// teacher_subjects and teacher_class_assignments relations.
type EligibilityRepository struct {
	db *sqlx.DB
}

// NewEligibilityRepository creates a new eligibility repository.
func NewEligibilityRepository(db *sqlx.DB) *EligibilityRepository {
	return &EligibilityRepository{db: db}
}

// ListEligibleTeacherIDs returns teachers qualified for a (class section,
// subject) cell: the intersection of "may teach this subject" and "assigned to
// this class section". Ordered by teacher id so callers get a stable
// tie-breaking sequence.
func (r *EligibilityRepository) ListEligibleTeacherIDs(ctx context.Context, classSectionID, subjectID string) ([]string, error) {
	const query = `SELECT ts.teacher_id
		FROM teacher_subjects ts
		JOIN teacher_class_assignments tca ON tca.teacher_id = ts.teacher_id
		WHERE ts.subject_id = $1 AND tca.class_section_id = $2
		ORDER BY ts.teacher_id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, subjectID, classSectionID); err != nil {
		return nil, fmt.Errorf("list eligible teachers: %w", err)
	}
	return ids, nil
}

// ListAssignedTeacherIDs returns every teacher assigned to a class section,
// ordered by teacher id.
func (r *EligibilityRepository) ListAssignedTeacherIDs(ctx context.Context, classSectionID string) ([]string, error) {
	const query = `SELECT teacher_id FROM teacher_class_assignments WHERE class_section_id = $1 ORDER BY teacher_id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, classSectionID); err != nil {
		return nil, fmt.Errorf("list assigned teachers: %w", err)
	}
	return ids, nil
}

// ListRequirementSubjectIDs returns the subjects for which the class section
// has weekly requirements, ordered by subject id.
func (r *EligibilityRepository) ListRequirementSubjectIDs(ctx context.Context, classSectionID string) ([]string, error) {
	const query = `SELECT subject_id FROM weekly_requirements WHERE class_section_id = $1 ORDER BY subject_id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, classSectionID); err != nil {
		return nil, fmt.Errorf("list requirement subjects: %w", err)
	}
	return ids, nil
}

// ListSubjectIDsForClassSection returns the union of subjects taught by any
// teacher assigned to the class section. Used as a fallback when no weekly
// requirements exist.
func (r *EligibilityRepository) ListSubjectIDsForClassSection(ctx context.Context, classSectionID string) ([]string, error) {
	const query = `SELECT DISTINCT ts.subject_id
		FROM teacher_subjects ts
		JOIN teacher_class_assignments tca ON tca.teacher_id = ts.teacher_id
		WHERE tca.class_section_id = $1
		ORDER BY ts.subject_id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, classSectionID); err != nil {
		return nil, fmt.Errorf("list subjects for class section: %w", err)
	}
	return ids, nil
}

// IsEligible reports whether both eligibility relations hold for the tuple.
func (r *EligibilityRepository) IsEligible(ctx context.Context, teacherID, classSectionID, subjectID string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM teacher_subjects ts
		JOIN teacher_class_assignments tca ON tca.teacher_id = ts.teacher_id
		WHERE ts.teacher_id = $1 AND ts.subject_id = $2 AND tca.class_section_id = $3
	)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, teacherID, subjectID, classSectionID); err != nil {
		return false, fmt.Errorf("check eligibility: %w", err)
	}
	return ok, nil
}
