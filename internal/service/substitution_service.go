package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type substitutionStore interface {
	FindByCell(ctx context.Context, date time.Time, classSectionID string, period int) (*models.Substitution, error)
	ExistsForSubstituteAt(ctx context.Context, teacherID string, date time.Time, period int) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Substitution, error)
	Create(ctx context.Context, sub *models.Substitution) error
}

type slotLoadReader interface {
	ListBusyTeacherIDs(ctx context.Context, dayOfWeek, period int) ([]string, error)
	CountByTeacherForDay(ctx context.Context, dayOfWeek int) (map[string]int, error)
}

type teacherRoster interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Teacher, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

// SubstitutionService ranks replacement teachers for ad-hoc absences and
// records approved substitutions. Unlike the generation engine's run-scoped
// load tracker, load here is computed from the committed schedule.
type SubstitutionService struct {
	subs        substitutionStore
	slots       slotLoadReader
	eligibility eligibilityResolver
	teachers    teacherRoster
	settings    settingsProvider
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSubstitutionService wires the substitution advisor.
func NewSubstitutionService(
	subs substitutionStore,
	slots slotLoadReader,
	eligibility eligibilityResolver,
	teachers teacherRoster,
	settings settingsProvider,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *SubstitutionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstitutionService{
		subs:        subs,
		slots:       slots,
		eligibility: eligibility,
		teachers:    teachers,
		settings:    settings,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

const dateLayout = "2006-01-02"

func schoolDay(date time.Time) (int, error) {
	day := int(date.Weekday())
	if day < 1 || day > models.WeekdayCount {
		return 0, appErrors.Clone(appErrors.ErrValidation, "date must fall on a school weekday")
	}
	return day, nil
}

// Suggest returns candidate substitutes for one cell, ranked by their current
// load on that day of week, least loaded first.
func (s *SubstitutionService) Suggest(ctx context.Context, req dto.SuggestSubstitutesRequest) ([]dto.SubstituteCandidate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitute query")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	day, err := schoolDay(date)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var candidateIDs []string
	if req.SubjectID != "" {
		candidateIDs, err = s.eligibility.EligibleTeachers(ctx, req.ClassSectionID, req.SubjectID)
	} else {
		candidateIDs, err = s.teachers.ListActiveIDs(ctx)
	}
	if err != nil {
		return nil, err
	}

	busyIDs, err := s.slots.ListBusyTeacherIDs(ctx, day, req.Period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher bookings")
	}
	busy := make(map[string]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	loads, err := s.slots.CountByTeacherForDay(ctx, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher day loads")
	}

	available := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if id == req.AbsentTeacherID {
			continue
		}
		if _, taken := busy[id]; taken {
			continue
		}
		available = append(available, id)
	}

	names := make(map[string]models.Teacher)
	if len(available) > 0 {
		// Display enrichment only; a failed lookup leaves names blank.
		teachers, lookupErr := s.teachers.ListByIDs(ctx, available)
		if lookupErr != nil {
			s.logger.Warn("substitute name enrichment skipped", zap.Error(lookupErr))
		}
		for _, teacher := range teachers {
			names[teacher.ID] = teacher
		}
	}

	candidates := make([]dto.SubstituteCandidate, 0, len(available))
	for _, id := range available {
		load := loads[id]
		candidate := dto.SubstituteCandidate{TeacherID: id, DayLoad: load}
		if teacher, ok := names[id]; ok {
			candidate.TeacherName = teacher.FullName
			candidate.Department = teacher.Department
		}
		switch {
		case load >= settings.MaxDailyLoad:
			candidate.Flag = dto.CandidateFlagOverloaded
		case load == settings.MaxDailyLoad-1:
			candidate.Flag = dto.CandidateFlagNearCap
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DayLoad < candidates[j].DayLoad
	})

	if s.metrics != nil {
		s.metrics.RecordSubstitution("suggest", "ok")
	}
	return candidates, nil
}

// Create records an approved substitution after re-validating the substitute
// is genuinely free at that day/period.
func (s *SubstitutionService) Create(ctx context.Context, req dto.CreateSubstitutionRequest) (*models.Substitution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitution payload")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	day, err := schoolDay(date)
	if err != nil {
		return nil, err
	}

	if _, err := s.subs.FindByCell(ctx, date, req.ClassSectionID, req.Period); err == nil {
		if s.metrics != nil {
			s.metrics.RecordSubstitution("create", "duplicate")
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "a substitution already exists for this date, class section and period")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing substitution")
	}

	busyIDs, err := s.slots.ListBusyTeacherIDs(ctx, day, req.Period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher bookings")
	}
	for _, id := range busyIDs {
		if id == req.SubstituteTeacherID {
			if s.metrics != nil {
				s.metrics.RecordSubstitution("create", "conflict")
			}
			return nil, appErrors.Clone(appErrors.ErrConflict, "substitute already holds a slot at this day and period")
		}
	}

	booked, err := s.subs.ExistsForSubstituteAt(ctx, req.SubstituteTeacherID, date, req.Period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check substitute bookings")
	}
	if booked {
		if s.metrics != nil {
			s.metrics.RecordSubstitution("create", "conflict")
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "substitute already covers another class at this date and period")
	}

	sub := &models.Substitution{
		Date:                date,
		ClassSectionID:      req.ClassSectionID,
		Period:              req.Period,
		OriginalTeacherID:   req.OriginalTeacherID,
		SubstituteTeacherID: req.SubstituteTeacherID,
		Reason:              req.Reason,
		ApprovedBy:          req.ApprovedBy,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create substitution")
	}

	if s.metrics != nil {
		s.metrics.RecordSubstitution("create", "ok")
	}
	s.logger.Info("substitution recorded",
		zap.String("class_section_id", req.ClassSectionID),
		zap.String("substitute_teacher_id", req.SubstituteTeacherID),
		zap.Int("period", req.Period),
	)
	return sub, nil
}

// ListByDate returns the substitutions recorded for one date.
func (s *SubstitutionService) ListByDate(ctx context.Context, rawDate string) ([]models.Substitution, error) {
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD format")
	}
	subs, err := s.subs.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list substitutions")
	}
	return subs, nil
}
