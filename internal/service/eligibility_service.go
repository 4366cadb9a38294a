package service

import (
	"context"

	"go.uber.org/zap"

	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type eligibilityStore interface {
	ListEligibleTeacherIDs(ctx context.Context, classSectionID, subjectID string) ([]string, error)
	ListAssignedTeacherIDs(ctx context.Context, classSectionID string) ([]string, error)
	ListRequirementSubjectIDs(ctx context.Context, classSectionID string) ([]string, error)
	ListSubjectIDsForClassSection(ctx context.Context, classSectionID string) ([]string, error)
	IsEligible(ctx context.Context, teacherID, classSectionID, subjectID string) (bool, error)
}

// EligibilityService resolves which teachers may take a (class section,
// subject) cell. An empty result is a valid answer meaning "unschedulable",
// never an error.
type EligibilityService struct {
	store  eligibilityStore
	logger *zap.Logger
}

// NewEligibilityService wires the resolver.
func NewEligibilityService(store eligibilityStore, logger *zap.Logger) *EligibilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityService{store: store, logger: logger}
}

// EligibleTeachers returns teacher ids qualified for the subject on the class
// section, in stable (id ascending) order. When subjectID is empty, every
// teacher assigned to the class section is returned.
func (s *EligibilityService) EligibleTeachers(ctx context.Context, classSectionID, subjectID string) ([]string, error) {
	if classSectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	if subjectID == "" {
		ids, err := s.store.ListAssignedTeacherIDs(ctx, classSectionID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assigned teachers")
		}
		return ids, nil
	}
	ids, err := s.store.ListEligibleTeacherIDs(ctx, classSectionID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve eligible teachers")
	}
	return ids, nil
}

// SubjectsForClassSection lists subjects schedulable on the class section.
// The requirement-driven list wins when present; with no weekly requirements
// it falls back to the union of subjects taught by the assigned teachers.
func (s *EligibilityService) SubjectsForClassSection(ctx context.Context, classSectionID string) ([]string, error) {
	if classSectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	ids, err := s.store.ListRequirementSubjectIDs(ctx, classSectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requirement subjects")
	}
	if len(ids) > 0 {
		return ids, nil
	}
	ids, err = s.store.ListSubjectIDsForClassSection(ctx, classSectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class section subjects")
	}
	return ids, nil
}

// IsEligible checks both relations for one teacher.
func (s *EligibilityService) IsEligible(ctx context.Context, teacherID, classSectionID, subjectID string) (bool, error) {
	ok, err := s.store.IsEligible(ctx, teacherID, classSectionID, subjectID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check eligibility")
	}
	return ok, nil
}
