package dto

// GridCell is one rendered timetable cell. Display fields are best-effort
// enrichment and may be empty when the lookup store is unavailable.
type GridCell struct {
	SubjectID   *string `json:"subject_id,omitempty"`
	TeacherID   *string `json:"teacher_id,omitempty"`
	Locked      bool    `json:"locked"`
	Source      string  `json:"source"`
	SubjectCode string  `json:"subject_code,omitempty"`
	SubjectName string  `json:"subject_name,omitempty"`
	TeacherName string  `json:"teacher_name,omitempty"`
}

// GridResponse shapes the weekly grid. Day indices are 0-based starting at
// Monday and always span the five weekdays; days outside the working-day mask
// simply carry no cells. Periods are 1-based.
type GridResponse struct {
	ClassSectionID string                   `json:"class_section_id"`
	PeriodsPerDay  int                      `json:"periods_per_day"`
	LunchPeriod    int                      `json:"lunch_period"`
	WorkingDays    []string                 `json:"working_days"`
	Grid           map[int]map[int]GridCell `json:"grid"`
}

// UnplacedRequirement reports a subject the generator could not fully place.
type UnplacedRequirement struct {
	SubjectID string `json:"subject_id"`
	Remaining int    `json:"remaining"`
}

// GenerateResult wraps a generation run outcome. Incomplete is true when the
// engine stopped before satisfying every weekly requirement; the grid then
// holds the partial result that was still committed.
type GenerateResult struct {
	Grid       GridResponse          `json:"grid"`
	Placed     int                   `json:"placed"`
	Incomplete bool                  `json:"incomplete"`
	Unplaced   []UnplacedRequirement `json:"unplaced,omitempty"`
}

// GenerateRequest parameterises a generation run.
type GenerateRequest struct {
	ClassSectionID   string `json:"-" validate:"required"`
	PreserveExisting bool   `json:"preserve_existing"`
}

// UpdateSlotRequest describes a single manual cell edit. Subject, teacher and
// locked may each be supplied independently.
type UpdateSlotRequest struct {
	DayOfWeek int     `json:"day_of_week" validate:"required,min=1,max=5"`
	Period    int     `json:"period" validate:"required,min=1"`
	SubjectID *string `json:"subject_id,omitempty"`
	TeacherID *string `json:"teacher_id,omitempty"`
	Locked    *bool   `json:"locked,omitempty"`
}

// SubstituteCandidate is one ranked replacement teacher suggestion.
type SubstituteCandidate struct {
	TeacherID   string  `json:"teacher_id"`
	TeacherName string  `json:"teacher_name,omitempty"`
	Department  *string `json:"department,omitempty"`
	DayLoad     int     `json:"day_load"`
	Flag        string  `json:"flag,omitempty"`
}

// Candidate flags emitted by the substitution advisor.
const (
	CandidateFlagOverloaded = "OVERLOADED"
	CandidateFlagNearCap    = "NEAR_CAP"
)

// SuggestSubstitutesRequest asks for ranked substitutes for one cell.
type SuggestSubstitutesRequest struct {
	ClassSectionID  string `json:"-" validate:"required"`
	Period          int    `json:"-" validate:"required,min=1"`
	Date            string `json:"-" validate:"required,datetime=2006-01-02"`
	SubjectID       string `json:"-"`
	AbsentTeacherID string `json:"-"`
}

// CreateSubstitutionRequest records an approved substitution.
type CreateSubstitutionRequest struct {
	Date                string  `json:"date" validate:"required,datetime=2006-01-02"`
	ClassSectionID      string  `json:"class_section_id" validate:"required"`
	Period              int     `json:"period" validate:"required,min=1"`
	OriginalTeacherID   *string `json:"original_teacher_id,omitempty"`
	SubstituteTeacherID string  `json:"substitute_teacher_id" validate:"required"`
	Reason              string  `json:"reason"`
	ApprovedBy          *string `json:"approved_by,omitempty"`
}

// CreateRequirementRequest adds a weekly requirement for a class section.
type CreateRequirementRequest struct {
	SubjectID     string `json:"subject_id" validate:"required"`
	WeeklyPeriods int    `json:"weekly_periods" validate:"required,min=1"`
}

// UpdateRequirementRequest changes the weekly period count.
type UpdateRequirementRequest struct {
	WeeklyPeriods int `json:"weekly_periods" validate:"required,min=1"`
}

// UpdateSettingsRequest replaces the timetable settings singleton.
type UpdateSettingsRequest struct {
	WorkingDays   int `json:"working_days" validate:"required,min=1,max=31"`
	PeriodsPerDay int `json:"periods_per_day" validate:"required,min=1,max=12"`
	PeriodMinutes int `json:"period_minutes" validate:"required,min=15,max=120"`
	LunchPeriod   int `json:"lunch_period" validate:"required,min=1"`
	MaxDailyLoad  int `json:"max_daily_load" validate:"required,min=1"`
}
