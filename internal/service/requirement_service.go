package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type requirementStore interface {
	ListByClassSection(ctx context.Context, classSectionID string) ([]models.WeeklyRequirementDetail, error)
	FindByID(ctx context.Context, id string) (*models.WeeklyRequirement, error)
	Create(ctx context.Context, req *models.WeeklyRequirement) error
	Update(ctx context.Context, req *models.WeeklyRequirement) error
	Delete(ctx context.Context, id string) error
}

// RequirementService manages weekly subject requirements for class sections.
type RequirementService struct {
	store         requirementStore
	classSections classSectionReader
	subjects      subjectLookup
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewRequirementService wires the requirement service.
func NewRequirementService(store requirementStore, classSections classSectionReader, subjects subjectLookup, validate *validator.Validate, logger *zap.Logger) *RequirementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequirementService{store: store, classSections: classSections, subjects: subjects, validator: validate, logger: logger}
}

// List returns the requirements of a class section.
func (s *RequirementService) List(ctx context.Context, classSectionID string) ([]models.WeeklyRequirementDetail, error) {
	if classSectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	items, err := s.store.ListByClassSection(ctx, classSectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requirements")
	}
	return items, nil
}

// Create adds a requirement after verifying the referenced entities exist.
func (s *RequirementService) Create(ctx context.Context, classSectionID string, req dto.CreateRequirementRequest) (*models.WeeklyRequirement, error) {
	if classSectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid requirement payload")
	}

	if s.classSections != nil {
		if _, err := s.classSections.FindByID(ctx, classSectionID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "class section not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
		}
	}
	if s.subjects != nil {
		if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
		}
	}

	requirement := &models.WeeklyRequirement{
		ClassSectionID: classSectionID,
		SubjectID:      req.SubjectID,
		WeeklyPeriods:  req.WeeklyPeriods,
	}
	if err := s.store.Create(ctx, requirement); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a requirement for this subject already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create requirement")
	}
	return requirement, nil
}

// Update changes the weekly period count of a requirement.
func (s *RequirementService) Update(ctx context.Context, id string, req dto.UpdateRequirementRequest) (*models.WeeklyRequirement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid requirement payload")
	}
	requirement, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "requirement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requirement")
	}
	requirement.WeeklyPeriods = req.WeeklyPeriods
	if err := s.store.Update(ctx, requirement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update requirement")
	}
	return requirement, nil
}

// Delete removes a requirement.
func (s *RequirementService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "requirement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requirement")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete requirement")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
