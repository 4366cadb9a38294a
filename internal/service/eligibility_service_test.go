package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type eligibilityStoreStub struct {
	eligible            map[string][]string
	assigned            []string
	requirementSubjects []string
	unionSubjects       []string
	isEligible          bool
}

func (s *eligibilityStoreStub) ListEligibleTeacherIDs(_ context.Context, _, subjectID string) ([]string, error) {
	return s.eligible[subjectID], nil
}

func (s *eligibilityStoreStub) ListAssignedTeacherIDs(_ context.Context, _ string) ([]string, error) {
	return s.assigned, nil
}

func (s *eligibilityStoreStub) ListRequirementSubjectIDs(_ context.Context, _ string) ([]string, error) {
	return s.requirementSubjects, nil
}

func (s *eligibilityStoreStub) ListSubjectIDsForClassSection(_ context.Context, _ string) ([]string, error) {
	return s.unionSubjects, nil
}

func (s *eligibilityStoreStub) IsEligible(_ context.Context, _, _, _ string) (bool, error) {
	return s.isEligible, nil
}

func TestEligibilityServiceSubjectsPrefersRequirements(t *testing.T) {
	store := &eligibilityStoreStub{
		requirementSubjects: []string{"math", "science"},
		unionSubjects:       []string{"art", "math", "music", "science"},
	}
	svc := NewEligibilityService(store, nil)

	subjects, err := svc.SubjectsForClassSection(context.Background(), "cs-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"math", "science"}, subjects)
}

func TestEligibilityServiceSubjectsFallsBackToTaughtUnion(t *testing.T) {
	store := &eligibilityStoreStub{
		unionSubjects: []string{"art", "math"},
	}
	svc := NewEligibilityService(store, nil)

	subjects, err := svc.SubjectsForClassSection(context.Background(), "cs-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"art", "math"}, subjects)
}

func TestEligibilityServiceSubjectsRequiresClassSection(t *testing.T) {
	svc := NewEligibilityService(&eligibilityStoreStub{}, nil)

	_, err := svc.SubjectsForClassSection(context.Background(), "")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEligibilityServiceEligibleTeachersWithoutSubject(t *testing.T) {
	store := &eligibilityStoreStub{assigned: []string{"teacher-1", "teacher-2"}}
	svc := NewEligibilityService(store, nil)

	ids, err := svc.EligibleTeachers(context.Background(), "cs-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"teacher-1", "teacher-2"}, ids)
}
