package models

import "time"

// TeacherSubjectEligibility marks a teacher as qualified to teach a subject.
type TeacherSubjectEligibility struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeacherClassAssignment attaches a teacher to a class section. A teacher is
// eligible for a (class section, subject) cell only when both this relation
// and the subject eligibility hold.
type TeacherClassAssignment struct {
	ID             string    `db:"id" json:"id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	ClassSectionID string    `db:"class_section_id" json:"class_section_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
