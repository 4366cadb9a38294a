package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/edusuite/timetable-api/internal/dto"
	"github.com/edusuite/timetable-api/internal/models"
	appErrors "github.com/edusuite/timetable-api/pkg/errors"
)

type slotStore interface {
	ListByClassSection(ctx context.Context, classSectionID string) ([]models.TimetableSlot, error)
	FindByCell(ctx context.Context, classSectionID string, dayOfWeek, period int) (*models.TimetableSlot, error)
	FindTeacherConflicts(ctx context.Context, teacherID string, dayOfWeek, period int, excludeClassSectionID string) ([]models.TimetableSlot, error)
	DeleteByClassSectionTx(ctx context.Context, tx *sqlx.Tx, classSectionID string) error
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, slots []models.TimetableSlot) error
	Upsert(ctx context.Context, slot *models.TimetableSlot) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type requirementLister interface {
	ListByClassSection(ctx context.Context, classSectionID string) ([]models.WeeklyRequirementDetail, error)
}

type classSectionReader interface {
	FindByID(ctx context.Context, id string) (*models.ClassSection, error)
}

type subjectLookup interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Subject, error)
}

type teacherLookup interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Teacher, error)
}

type eligibilityResolver interface {
	EligibleTeachers(ctx context.Context, classSectionID, subjectID string) ([]string, error)
	IsEligible(ctx context.Context, teacherID, classSectionID, subjectID string) (bool, error)
}

type settingsProvider interface {
	Get(ctx context.Context) (*models.TimetableSettings, error)
}

// TimetableService owns the weekly grid: generation, reads and manual edits.
type TimetableService struct {
	classSections classSectionReader
	slots         slotStore
	requirements  requirementLister
	settings      settingsProvider
	eligibility   eligibilityResolver
	subjects      subjectLookup
	teachers      teacherLookup
	cache         *CacheService
	metrics       *MetricsService
	tx            txProvider
	validator     *validator.Validate
	logger        *zap.Logger
	locks         sectionLocks
}

// NewTimetableService wires the timetable service.
func NewTimetableService(
	classSections classSectionReader,
	slots slotStore,
	requirements requirementLister,
	settings settingsProvider,
	eligibility eligibilityResolver,
	subjects subjectLookup,
	teachers teacherLookup,
	cache *CacheService,
	metrics *MetricsService,
	tx txProvider,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		classSections: classSections,
		slots:         slots,
		requirements:  requirements,
		settings:      settings,
		eligibility:   eligibility,
		subjects:      subjects,
		teachers:      teachers,
		cache:         cache,
		metrics:       metrics,
		tx:            tx,
		validator:     validate,
		logger:        logger,
	}
}

func gridCacheKey(classSectionID string) string {
	return "timetable:grid:" + classSectionID
}

// GetGrid returns the persisted weekly grid for a class section.
func (s *TimetableService) GetGrid(ctx context.Context, classSectionID string) (*dto.GridResponse, error) {
	if classSectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	if err := s.ensureClassSection(ctx, classSectionID); err != nil {
		return nil, err
	}

	if s.cache.Enabled() {
		var cached dto.GridResponse
		if hit, _ := s.cache.Get(ctx, gridCacheKey(classSectionID), &cached); hit {
			return &cached, nil
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	grid, err := s.readGrid(ctx, classSectionID, settings)
	if err != nil {
		return nil, err
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, gridCacheKey(classSectionID), grid, 0)
	}
	return grid, nil
}

// workItem is one pending (subject, remaining periods) pair in the greedy
// placement queue.
type workItem struct {
	subjectID string
	remaining int
}

// Generate runs the greedy day-rotating placement engine and commits the
// resulting slots in one transaction. An infeasible requirement stops the
// run; what was placed up to that point is still committed and the remainder
// reported as unplaced.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}
	if err := s.ensureClassSection(ctx, req.ClassSectionID); err != nil {
		return nil, err
	}

	// Same-section regenerations race on the delete+rebuild sequence, so they
	// are serialized here. Different sections proceed in parallel.
	unlock := s.locks.acquire(req.ClassSectionID)
	defer unlock()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var existing []models.TimetableSlot
	if req.PreserveExisting {
		existing, err = s.slots.ListByClassSection(ctx, req.ClassSectionID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing slots")
		}
	}

	grid := buildWeekGrid(req.ClassSectionID, *settings, existing)

	requirements, err := s.requirements.ListByClassSection(ctx, req.ClassSectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly requirements")
	}

	queue := make([]workItem, 0, len(requirements))
	eligible := make(map[string][]string, len(requirements))
	for _, requirement := range requirements {
		if requirement.WeeklyPeriods <= 0 {
			continue
		}
		queue = append(queue, workItem{subjectID: requirement.SubjectID, remaining: requirement.WeeklyPeriods})
		teachers, err := s.eligibility.EligibleTeachers(ctx, req.ClassSectionID, requirement.SubjectID)
		if err != nil {
			return nil, err
		}
		eligible[requirement.SubjectID] = teachers
	}

	tracker := newLoadTracker()
	days := settings.WorkingDayNumbers()
	rotate := 0
	placed := 0
	incomplete := false
	var unplaced []dto.UnplacedRequirement

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		day, period, found := findPlacement(grid, days, rotate, item.subjectID)
		if !found {
			// Infeasibility signal: stop the whole run rather than skipping
			// the subject silently. Everything still queued is reported back.
			incomplete = true
			unplaced = append(unplaced, dto.UnplacedRequirement{SubjectID: item.subjectID, Remaining: item.remaining})
			for _, rest := range queue {
				unplaced = append(unplaced, dto.UnplacedRequirement{SubjectID: rest.subjectID, Remaining: rest.remaining})
			}
			break
		}

		teacherID := pickTeacher(eligible[item.subjectID], tracker, day, settings.MaxDailyLoad)
		grid.place(day, period, item.subjectID, teacherID)
		if teacherID != nil {
			tracker.RecordAssignment(day, *teacherID)
		}
		placed++

		item.remaining--
		if item.remaining > 0 {
			queue = append(queue, item)
		}
		rotate = (rotate + 1) % len(days)
	}

	if err := s.commitGrid(ctx, req.ClassSectionID, grid, !req.PreserveExisting); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, gridCacheKey(req.ClassSectionID))
	if s.metrics != nil {
		totalUnplaced := 0
		for _, u := range unplaced {
			totalUnplaced += u.Remaining
		}
		s.metrics.RecordGeneration(placed, totalUnplaced, incomplete)
	}
	s.logger.Info("timetable generated",
		zap.String("class_section_id", req.ClassSectionID),
		zap.Int("placed", placed),
		zap.Bool("incomplete", incomplete),
	)

	response, err := s.readGrid(ctx, req.ClassSectionID, settings)
	if err != nil {
		return nil, err
	}
	return &dto.GenerateResult{
		Grid:       *response,
		Placed:     placed,
		Incomplete: incomplete,
		Unplaced:   unplaced,
	}, nil
}

// UpdateSlot validates and applies a single manual cell edit.
func (s *TimetableService) UpdateSlot(ctx context.Context, classSectionID string, req dto.UpdateSlotRequest) (*dto.GridResponse, error) {
	if classSectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class section id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if err := s.ensureClassSection(ctx, classSectionID); err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if req.Period > settings.PeriodsPerDay {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("period must be between 1 and %d", settings.PeriodsPerDay))
	}

	slot, err := s.slots.FindByCell(ctx, classSectionID, req.DayOfWeek, req.Period)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
		}
		slot = &models.TimetableSlot{
			ClassSectionID: classSectionID,
			DayOfWeek:      req.DayOfWeek,
			Period:         req.Period,
			Source:         models.SlotSourceManual,
		}
	}

	if slot.Locked {
		if s.metrics != nil {
			s.metrics.RecordEditConflict()
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "slot is locked and cannot be edited")
	}

	if req.TeacherID != nil && *req.TeacherID != "" {
		conflicts, err := s.slots.FindTeacherConflicts(ctx, *req.TeacherID, req.DayOfWeek, req.Period, classSectionID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher conflicts")
		}
		if len(conflicts) > 0 {
			if s.metrics != nil {
				s.metrics.RecordEditConflict()
			}
			return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already holds a slot at this day and period")
		}
	}

	if req.SubjectID != nil && *req.SubjectID != "" && req.TeacherID != nil && *req.TeacherID != "" {
		ok, err := s.eligibility.IsEligible(ctx, *req.TeacherID, classSectionID, *req.SubjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrUnprocessable, "teacher is not eligible for this subject and class section")
		}
	}

	if req.SubjectID != nil {
		if *req.SubjectID == "" {
			slot.SubjectID = nil
		} else {
			slot.SubjectID = req.SubjectID
		}
	}
	if req.TeacherID != nil {
		if *req.TeacherID == "" {
			slot.TeacherID = nil
		} else {
			slot.TeacherID = req.TeacherID
		}
	}
	if req.Locked != nil {
		slot.Locked = *req.Locked
	}
	slot.Source = models.SlotSourceManual

	if err := s.slots.Upsert(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist slot")
	}

	s.cache.Invalidate(ctx, gridCacheKey(classSectionID))
	return s.readGrid(ctx, classSectionID, settings)
}

func (s *TimetableService) ensureClassSection(ctx context.Context, classSectionID string) error {
	if s.classSections == nil {
		return nil
	}
	if _, err := s.classSections.FindByID(ctx, classSectionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class section not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class section")
	}
	return nil
}

// commitGrid persists a generation run atomically: optional delete of prior
// slots plus the batch insert of newly produced cells, in one transaction.
func (s *TimetableService) commitGrid(ctx context.Context, classSectionID string, grid *weekGrid, replace bool) error {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if replace {
		if err = s.slots.DeleteByClassSectionTx(ctx, tx, classSectionID); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous slots")
		}
	}
	if err = s.slots.BulkCreateWithTx(ctx, tx, grid.newSlots()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist generated slots")
	}
	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit generated slots")
	}
	return nil
}

// readGrid loads persisted slots and shapes the response, with best-effort
// display enrichment.
func (s *TimetableService) readGrid(ctx context.Context, classSectionID string, settings *models.TimetableSettings) (*dto.GridResponse, error) {
	slots, err := s.slots.ListByClassSection(ctx, classSectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}

	workingDays := make([]string, 0, models.WeekdayCount)
	for _, day := range settings.WorkingDayNumbers() {
		workingDays = append(workingDays, models.WeekdayName(day))
	}

	response := &dto.GridResponse{
		ClassSectionID: classSectionID,
		PeriodsPerDay:  settings.PeriodsPerDay,
		LunchPeriod:    settings.LunchPeriod,
		WorkingDays:    workingDays,
		Grid:           make(map[int]map[int]dto.GridCell, models.WeekdayCount),
	}

	for _, slot := range slots {
		if slot.DayOfWeek < 1 || slot.DayOfWeek > models.WeekdayCount {
			continue
		}
		dayIndex := slot.DayOfWeek - 1
		if response.Grid[dayIndex] == nil {
			response.Grid[dayIndex] = make(map[int]dto.GridCell)
		}
		response.Grid[dayIndex][slot.Period] = dto.GridCell{
			SubjectID: slot.SubjectID,
			TeacherID: slot.TeacherID,
			Locked:    slot.Locked,
			Source:    string(slot.Source),
		}
	}

	s.enrichGrid(ctx, response, slots)
	return response, nil
}

// enrichGrid decorates cells with subject and teacher display names. Lookup
// failures degrade to bare identifiers instead of failing the read.
func (s *TimetableService) enrichGrid(ctx context.Context, response *dto.GridResponse, slots []models.TimetableSlot) {
	if s.subjects == nil && s.teachers == nil {
		return
	}

	subjectIDs := make(map[string]struct{})
	teacherIDs := make(map[string]struct{})
	for _, slot := range slots {
		if slot.HasSubject() {
			subjectIDs[*slot.SubjectID] = struct{}{}
		}
		if slot.HasTeacher() {
			teacherIDs[*slot.TeacherID] = struct{}{}
		}
	}

	subjectNames := make(map[string]models.Subject)
	if s.subjects != nil && len(subjectIDs) > 0 {
		subjects, err := s.subjects.ListByIDs(ctx, keys(subjectIDs))
		if err != nil {
			s.logger.Warn("subject enrichment skipped", zap.Error(err))
		}
		for _, subject := range subjects {
			subjectNames[subject.ID] = subject
		}
	}

	teacherNames := make(map[string]string)
	if s.teachers != nil && len(teacherIDs) > 0 {
		teachers, err := s.teachers.ListByIDs(ctx, keys(teacherIDs))
		if err != nil {
			s.logger.Warn("teacher enrichment skipped", zap.Error(err))
		}
		for _, teacher := range teachers {
			teacherNames[teacher.ID] = teacher.FullName
		}
	}

	for dayIndex, periods := range response.Grid {
		for period, cell := range periods {
			if cell.SubjectID != nil {
				if subject, ok := subjectNames[*cell.SubjectID]; ok {
					cell.SubjectCode = subject.Code
					cell.SubjectName = subject.Name
				}
			}
			if cell.TeacherID != nil {
				if name, ok := teacherNames[*cell.TeacherID]; ok {
					cell.TeacherName = name
				}
			}
			response.Grid[dayIndex][period] = cell
		}
	}
}

// findPlacement scans working days starting at the rotating pointer, wrapping
// around once, skipping days where the subject already appears, then probes
// periods in order for the first open unlocked cell.
func findPlacement(grid *weekGrid, days []int, rotate int, subjectID string) (int, int, bool) {
	if len(days) == 0 {
		return 0, 0, false
	}
	for offset := 0; offset < len(days); offset++ {
		day := days[(rotate+offset)%len(days)]
		if grid.subjectOnDay(day, subjectID) {
			continue
		}
		for period := 1; period <= grid.settings.PeriodsPerDay; period++ {
			if grid.openForPlacement(day, period) {
				return day, period, true
			}
		}
	}
	return 0, 0, false
}

// pickTeacher chooses the least loaded eligible teacher strictly below the
// daily cap, ties broken by resolver order. A nil result means the subject is
// placed without a teacher; only a missing free period aborts generation.
func pickTeacher(eligible []string, tracker *loadTracker, day, maxDailyLoad int) *string {
	var chosen *string
	best := 0
	for i := range eligible {
		id := eligible[i]
		load := tracker.CurrentLoad(day, id)
		if load >= maxDailyLoad {
			continue
		}
		if chosen == nil || load < best {
			chosen = &eligible[i]
			best = load
		}
	}
	if chosen == nil {
		return nil
	}
	value := *chosen
	return &value
}

// sectionLocks serializes concurrent operations per class section.
type sectionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *sectionLocks) acquire(key string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	return out
}
