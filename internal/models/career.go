package models

import "time"

// Career represents an academic program (spec.md §3). Courses are owned by
// exactly one career; instructors may belong to several via CareerMembership.
type Career struct {
	ID                string    `db:"id" json:"id"`
	Code              string    `db:"code" json:"code"`
	Name              string    `db:"name" json:"name"`
	ChairInstructorID *string   `db:"chair_instructor_id" json:"chair_instructor_id,omitempty"`
	Active            bool      `db:"active" json:"active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// CareerMembership links an instructor to a career they may teach in. A
// chair instructor who is active is schedulable like any other member
// (spec.md §9 resolves the chair/role ambiguity this way).
type CareerMembership struct {
	ID         string    `db:"id" json:"id"`
	CareerID   string    `db:"career_id" json:"career_id"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	IsChair    bool      `db:"is_chair" json:"is_chair"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
