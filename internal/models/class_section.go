package models

import "time"

// ClassSection identifies a grade plus a section group, e.g. "Grade 5, Section A".
type ClassSection struct {
	ID        string    `db:"id" json:"id"`
	Grade     string    `db:"grade" json:"grade"`
	Section   string    `db:"section" json:"section"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassSectionFilter defines filter criteria for listing class sections.
type ClassSectionFilter struct {
	Grade     string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
