package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// ClassSectionRepository provides read access to class section reference data.
type ClassSectionRepository struct {
	db *sqlx.DB
}

// NewClassSectionRepository creates a new class section repository.
func NewClassSectionRepository(db *sqlx.DB) *ClassSectionRepository {
	return &ClassSectionRepository{db: db}
}

// FindByID loads a class section by id.
func (r *ClassSectionRepository) FindByID(ctx context.Context, id string) (*models.ClassSection, error) {
	const query = `SELECT id, grade, section, name, created_at, updated_at FROM class_sections WHERE id = $1`
	var cs models.ClassSection
	if err := r.db.GetContext(ctx, &cs, query, id); err != nil {
		return nil, err
	}
	return &cs, nil
}

// FindByGradeSection resolves a class section from its grade and section
// letter, normalising the legacy call sites that address sections by letter
// instead of id.
func (r *ClassSectionRepository) FindByGradeSection(ctx context.Context, grade, section string) (*models.ClassSection, error) {
	const query = `SELECT id, grade, section, name, created_at, updated_at FROM class_sections WHERE grade = $1 AND UPPER(section) = UPPER($2)`
	var cs models.ClassSection
	if err := r.db.GetContext(ctx, &cs, query, grade, section); err != nil {
		return nil, err
	}
	return &cs, nil
}

// List returns class sections with optional filtering and pagination.
func (r *ClassSectionRepository) List(ctx context.Context, filter models.ClassSectionFilter) ([]models.ClassSection, int, error) {
	base := "FROM class_sections WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Grade != "" {
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)+1))
		args = append(args, filter.Grade)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"grade": true, "section": true, "name": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "grade"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, grade, section, name, created_at, updated_at %s ORDER BY %s %s, section ASC LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var sections []models.ClassSection
	if err := r.db.SelectContext(ctx, &sections, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list class sections: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count class sections: %w", err)
	}

	return sections, total, nil
}
