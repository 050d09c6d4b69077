package models

import "time"

// Subject represents an academic subject. In the solver's vocabulary this
// is the "Course" entity of spec.md §3: CareerID/TermIndex/WeeklyHours are
// the columns the timetable solver reads.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Track        string    `db:"track" json:"track"`
	SubjectGroup string    `db:"subject_group" json:"subject_group"`
	CareerID     string    `db:"career_id" json:"career_id,omitempty"`
	TermIndex    int       `db:"term_index" json:"term_index,omitempty"`
	WeeklyHours  int       `db:"weekly_hours" json:"weekly_hours,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
