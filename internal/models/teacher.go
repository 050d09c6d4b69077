package models

import "time"

// EmploymentClass distinguishes the two workload caps the solver enforces.
type EmploymentClass string

const (
	EmploymentFullTime EmploymentClass = "full_time"
	EmploymentAdjunct  EmploymentClass = "adjunct"
)

// WeeklyCap returns the workload-cap in spec.md §3: 40 for full-time, 20 for adjunct.
func (c EmploymentClass) WeeklyCap() int {
	if c == EmploymentAdjunct {
		return 20
	}
	return 40
}

// Teacher represents an instructor record. In the solver's vocabulary this
// is the "Instructor" entity of spec.md §3.
type Teacher struct {
	ID              string          `db:"id" json:"id"`
	NIP             *string         `db:"nip" json:"nip,omitempty"`
	Email           string          `db:"email" json:"email"`
	FullName        string          `db:"full_name" json:"full_name"`
	Phone           *string         `db:"phone" json:"phone,omitempty"`
	Expertise       *string         `db:"expertise" json:"expertise,omitempty"`
	EmploymentClass EmploymentClass `db:"employment_class" json:"employment_class"`
	Active          bool            `db:"active" json:"active"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
