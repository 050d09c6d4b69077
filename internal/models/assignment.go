package models

import "time"

// AvailabilityCell records whether an instructor may teach a given
// (weekday, slot). Absent rows default to available=true (spec.md §4.1).
type AvailabilityCell struct {
	ID         string    `db:"id" json:"id"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	TimeSlotID string    `db:"time_slot_id" json:"time_slot_id"`
	Available  bool      `db:"available" json:"available"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Assignment is the solver's persisted output: one (instructor, course,
// slot, weekday) quadruple for an academic period. Assignments are never
// mutated in place — a new run deactivates the prior run's rows for the
// same (academic_period, career_id) before inserting (spec.md §3 Lifecycle).
type Assignment struct {
	ID              string    `db:"id" json:"id"`
	TeacherID       string    `db:"teacher_id" json:"teacher_id"`
	CourseID        string    `db:"course_id" json:"course_id"`
	CareerID        string    `db:"career_id" json:"career_id"`
	TimeSlotID      string    `db:"time_slot_id" json:"time_slot_id"`
	DayOfWeek       int       `db:"day_of_week" json:"day_of_week"`
	AcademicPeriod  string    `db:"academic_period" json:"academic_period"`
	GroupLabel      string    `db:"group_label" json:"group_label"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	CreatedBy       string    `db:"created_by" json:"created_by"`
}

// AssignmentKey identifies a unique (weekday, slot) cell inside a single run.
type AssignmentKey struct {
	DayOfWeek  int
	TimeSlotID string
}
