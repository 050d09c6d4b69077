// Package solver implements the timetable constraint solver: the Input
// Loader, Conflict Oracle, Distribution Policy, primary CP-SAT solver,
// greedy fallback, and Materializer described in spec.md.
package solver

import (
	"fmt"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// SlotKey identifies a (weekday, time-slot) cell, the solver's unit of
// exclusivity (spec.md §3, §4.4 constraint 3).
type SlotKey struct {
	Day    int
	SlotID string
}

// MarshalText lets SlotKey serve as a JSON object key, so maps keyed by it
// (Availability, Blackouts) round-trip through the context cache.
func (k SlotKey) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d|%s", k.Day, k.SlotID)), nil
}

// UnmarshalText parses the "day|slotID" form written by MarshalText.
func (k *SlotKey) UnmarshalText(text []byte) error {
	var day int
	var slotID string
	if _, err := fmt.Sscanf(string(text), "%d|%s", &day, &slotID); err != nil {
		return fmt.Errorf("parse slot key %q: %w", text, err)
	}
	k.Day = day
	k.SlotID = slotID
	return nil
}

// Course is the solver's dense view of a weekly-hour-load subject owned by
// a career (spec.md §3).
type Course struct {
	ID          string
	Code        string
	CareerID    string
	WeeklyHours int
}

// Instructor is the solver's dense view of a schedulable teacher.
type Instructor struct {
	ID    string
	Class models.EmploymentClass
}

// Cap returns the weekly assignment ceiling for this instructor.
func (i Instructor) Cap() int {
	return i.Class.WeeklyCap()
}

// SolveContext is the immutable problem instance built by the Input Loader
// (spec.md §4.1). It is owned by a single run and never shared.
type SolveContext struct {
	Request       Request
	Instructors   []Instructor
	Courses       []Course
	Slots         []models.TimeSlot
	Availability  map[string]map[SlotKey]bool // teacherID -> cell -> available
	Blackouts     map[string]map[SlotKey]bool // teacherID -> cell -> blacked out
	CareerMembers map[string]map[string]bool  // courseID -> teacherID -> eligible
}

// Request mirrors dto.SolveRequest with weekday mask normalized to a set.
type Request struct {
	CareerID            string
	TermIndex           int
	Shift               string
	Weekdays            []int
	AcademicPeriod      string
	SubmitterID         string
	SolverBudgetSeconds int
	PreferFallback      bool
	GroupLabel          string
}

// Placement is a single (instructor, course, slot, weekday) quadruple chosen
// by either solver, prior to materialization.
type Placement struct {
	InstructorID string
	CourseID     string
	SlotID       string
	Day          int
}

// Phase names the solver's state machine states (spec.md §4.7).
type Phase string

const (
	PhaseCreated      Phase = "created"
	PhaseLoaded       Phase = "loaded"
	PhaseModeled      Phase = "modeled"
	PhaseSolved       Phase = "solved"
	PhaseFallback     Phase = "fallback"
	PhaseMaterialized Phase = "materialized"
	PhaseFailed       Phase = "failed"
)

// Algorithm names which solver produced the final placement set.
type Algorithm string

const (
	AlgorithmPrimary  Algorithm = "primary"
	AlgorithmFallback Algorithm = "fallback"
)
