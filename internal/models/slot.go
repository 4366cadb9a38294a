package models

import "time"

// SlotSource records how a slot came to exist.
type SlotSource string

const (
	SlotSourceAuto   SlotSource = "AUTO"
	SlotSourceManual SlotSource = "MANUAL"
)

// TimetableSlot is the atomic scheduling unit: one (class section, day,
// period) cell of the weekly grid. DayOfWeek is 1-based (1 = Monday).
// At most one slot exists per cell. Locked slots are never touched by the
// generation engine and reject manual edits.
type TimetableSlot struct {
	ID             string     `db:"id" json:"id"`
	ClassSectionID string     `db:"class_section_id" json:"class_section_id"`
	DayOfWeek      int        `db:"day_of_week" json:"day_of_week"`
	Period         int        `db:"period" json:"period"`
	SubjectID      *string    `db:"subject_id" json:"subject_id,omitempty"`
	TeacherID      *string    `db:"teacher_id" json:"teacher_id,omitempty"`
	Locked         bool       `db:"locked" json:"locked"`
	Source         SlotSource `db:"source" json:"source"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// HasSubject reports whether the slot carries a subject assignment.
func (s TimetableSlot) HasSubject() bool {
	return s.SubjectID != nil && *s.SubjectID != ""
}

// HasTeacher reports whether the slot carries a teacher assignment.
func (s TimetableSlot) HasTeacher() bool {
	return s.TeacherID != nil && *s.TeacherID != ""
}
