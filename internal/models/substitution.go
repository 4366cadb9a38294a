package models

import "time"

// Substitution records a one-off teacher replacement for a single date,
// class section and period. At most one substitution exists per cell.
type Substitution struct {
	ID                  string    `db:"id" json:"id"`
	Date                time.Time `db:"date" json:"date"`
	ClassSectionID      string    `db:"class_section_id" json:"class_section_id"`
	Period              int       `db:"period" json:"period"`
	OriginalTeacherID   *string   `db:"original_teacher_id" json:"original_teacher_id,omitempty"`
	SubstituteTeacherID string    `db:"substitute_teacher_id" json:"substitute_teacher_id"`
	Reason              string    `db:"reason" json:"reason"`
	ApprovedBy          *string   `db:"approved_by" json:"approved_by,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}
