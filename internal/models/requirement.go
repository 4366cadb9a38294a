package models

import "time"

// WeeklyRequirement declares how many periods per week a subject needs for a
// class section. Edited by administrators, read by the generation engine.
type WeeklyRequirement struct {
	ID             string    `db:"id" json:"id"`
	ClassSectionID string    `db:"class_section_id" json:"class_section_id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	WeeklyPeriods  int       `db:"weekly_periods" json:"weekly_periods"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// WeeklyRequirementDetail enriches a requirement with subject display fields.
type WeeklyRequirementDetail struct {
	WeeklyRequirement
	SubjectCode string `db:"subject_code" json:"subject_code"`
	SubjectName string `db:"subject_name" json:"subject_name"`
}
