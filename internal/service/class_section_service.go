package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type classSectionStore interface {
	FindByID(ctx context.Context, id string) (*models.ClassSection, error)
	FindByGradeSection(ctx context.Context, grade, section string) (*models.ClassSection, error)
	List(ctx context.Context, filter models.ClassSectionFilter) ([]models.ClassSection, int, error)
}

type sectionSubjectResolver interface {
	SubjectsForClassSection(ctx context.Context, classSectionID string) ([]string, error)
}

// ClassSectionService exposes the class section reference data used across the
// timetable endpoints.
type ClassSectionService struct {
	store       classSectionStore
	subjectList sectionSubjectResolver
	subjects    subjectLookup
	logger      *zap.Logger
}

// NewClassSectionService wires the class section service.
func NewClassSectionService(store classSectionStore, subjectList sectionSubjectResolver, subjects subjectLookup, logger *zap.Logger) *ClassSectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassSectionService{store: store, subjectList: subjectList, subjects: subjects, logger: logger}
}

// List returns class sections matching the filter along with pagination metadata.
func (s *ClassSectionService) List(ctx context.Context, filter models.ClassSectionFilter) ([]models.ClassSection, *models.Pagination, error) {
	sections, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class sections")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return sections, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get loads a single class section by id.
func (s *ClassSectionService) Get(ctx context.Context, id string) (*models.ClassSection, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	cs, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	return cs, nil
}

// AvailableSubjects lists the subjects schedulable on the class section:
// requirement-driven when weekly requirements exist, otherwise the union of
// subjects taught by the assigned teachers.
func (s *ClassSectionService) AvailableSubjects(ctx context.Context, id string) ([]models.Subject, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}

	ids, err := s.subjectList.SubjectsForClassSection(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Subject{}, nil
	}
	subjects, err := s.subjects.ListByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	return subjects, nil
}

// Resolve maps a grade plus section letter onto the canonical class section
// record. Older client integrations address sections this way instead of by id.
func (s *ClassSectionService) Resolve(ctx context.Context, grade, section string) (*models.ClassSection, error) {
	if grade == "" || section == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade and section are required")
	}
	cs, err := s.store.FindByGradeSection(ctx, grade, section)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve class section")
	}
	return cs, nil
}
