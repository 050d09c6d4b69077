package solver

import (
	"context"
	"fmt"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// careerInstructorReader fetches the instructor set for a career.
type careerInstructorReader interface {
	ListMemberInstructors(ctx context.Context, careerID string) ([]models.Teacher, error)
}

// courseReader fetches the course set for a career+term.
type courseReader interface {
	ListByCareerTerm(ctx context.Context, careerID string, termIndex int) ([]models.Subject, error)
}

// slotReader fetches the time-slot set for a shift.
type slotReader interface {
	ListByShift(ctx context.Context, shift string) ([]models.TimeSlot, error)
}

// availabilityReader fetches stored availability overrides.
type availabilityReader interface {
	ListForInstructors(ctx context.Context, teacherIDs []string) ([]models.AvailabilityCell, error)
}

// Loader is the Input Loader component (spec.md §4.1): it transforms a
// Request into a dense SolveContext.
type Loader struct {
	instructors  careerInstructorReader
	courses      courseReader
	slots        slotReader
	availability availabilityReader
	conflicts    *ConflictOracle
}

// NewLoader wires the loader's read-only data sources.
func NewLoader(instructors careerInstructorReader, courses courseReader, slots slotReader, availability availabilityReader, conflicts *ConflictOracle) *Loader {
	return &Loader{instructors: instructors, courses: courses, slots: slots, availability: availability, conflicts: conflicts}
}

// Load builds the dense SolveContext for a single run.
func (l *Loader) Load(ctx context.Context, req Request) (*SolveContext, error) {
	instructors, err := l.instructors.ListMemberInstructors(ctx, req.CareerID)
	if err != nil {
		return nil, fmt.Errorf("load instructors: %w", err)
	}
	if len(instructors) == 0 {
		return nil, ErrNoInstructors
	}

	subjects, err := l.courses.ListByCareerTerm(ctx, req.CareerID, req.TermIndex)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	if len(subjects) == 0 {
		return nil, ErrNoCourses
	}

	slots, err := l.slots.ListByShift(ctx, req.Shift)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	instructorIDs := make([]string, 0, len(instructors))
	denseInstructors := make([]Instructor, 0, len(instructors))
	for _, t := range instructors {
		instructorIDs = append(instructorIDs, t.ID)
		denseInstructors = append(denseInstructors, Instructor{ID: t.ID, Class: t.EmploymentClass})
	}

	courses := make([]Course, 0, len(subjects))
	for _, s := range subjects {
		courses = append(courses, Course{ID: s.ID, Code: s.Code, CareerID: s.CareerID, WeeklyHours: s.WeeklyHours})
	}

	availability := l.buildAvailability(ctx, instructorIDs, req.Weekdays, slots)

	blackouts := make(map[string]map[SlotKey]bool)
	if l.conflicts != nil {
		blackouts, err = l.conflicts.Blackouts(ctx, req.AcademicPeriod, req.CareerID, instructorIDs)
		if err != nil {
			return nil, fmt.Errorf("load blackouts: %w", err)
		}
	}

	careerMembers := make(map[string]map[string]bool, len(courses))
	for _, c := range courses {
		eligible := make(map[string]bool, len(denseInstructors))
		for _, i := range denseInstructors {
			eligible[i.ID] = true
		}
		careerMembers[c.ID] = eligible
	}

	return &SolveContext{
		Request:       req,
		Instructors:   denseInstructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  availability,
		Blackouts:     blackouts,
		CareerMembers: careerMembers,
	}, nil
}

// buildAvailability materializes the dense instructor x weekday x slot
// tensor, defaulting every cell to available=true and overriding from
// stored rows (spec.md §4.1, §9 "implicit default behavior").
func (l *Loader) buildAvailability(ctx context.Context, instructorIDs []string, weekdays []int, slots []models.TimeSlot) map[string]map[SlotKey]bool {
	dense := make(map[string]map[SlotKey]bool, len(instructorIDs))
	for _, id := range instructorIDs {
		cells := make(map[SlotKey]bool)
		for _, day := range weekdays {
			for _, slot := range slots {
				cells[SlotKey{Day: day, SlotID: slot.ID}] = true
			}
		}
		dense[id] = cells
	}

	if l.availability == nil {
		return dense
	}
	cells, err := l.availability.ListForInstructors(ctx, instructorIDs)
	if err != nil {
		return dense
	}
	for _, cell := range cells {
		teacher, ok := dense[cell.TeacherID]
		if !ok {
			continue
		}
		key := SlotKey{Day: cell.DayOfWeek, SlotID: cell.TimeSlotID}
		if _, tracked := teacher[key]; !tracked {
			continue
		}
		teacher[key] = cell.Available
	}
	return dense
}
