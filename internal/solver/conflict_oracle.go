package solver

import (
	"context"
	"fmt"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// blackoutReader fetches active assignments for the same academic period
// but a different career, for a given set of instructors.
type blackoutReader interface {
	ListBlackouts(ctx context.Context, academicPeriod, excludeCareerID string, teacherIDs []string) ([]models.Assignment, error)
}

// ConflictOracle is the cross-career blackout component (spec.md §4.2),
// grounded on defaultScheduleConflictChecker.Check: it turns existing
// commitments into a per-instructor set of occupied cells the solvers must
// treat as unavailable.
type ConflictOracle struct {
	assignments blackoutReader
}

// NewConflictOracle wires the assignment store the oracle reads from.
func NewConflictOracle(assignments blackoutReader) *ConflictOracle {
	return &ConflictOracle{assignments: assignments}
}

// Blackouts computes an instructor-indexed set of (weekday, slot) cells
// already committed in other careers during academicPeriod. The returned
// map is immutable; instructors absent from the current problem are never
// queried or present.
func (o *ConflictOracle) Blackouts(ctx context.Context, academicPeriod, careerID string, instructorIDs []string) (map[string]map[SlotKey]bool, error) {
	result := make(map[string]map[SlotKey]bool, len(instructorIDs))
	if len(instructorIDs) == 0 {
		return result, nil
	}

	rows, err := o.assignments.ListBlackouts(ctx, academicPeriod, careerID, instructorIDs)
	if err != nil {
		return nil, fmt.Errorf("query cross-career blackouts: %w", err)
	}

	for _, row := range rows {
		cells, ok := result[row.TeacherID]
		if !ok {
			cells = make(map[SlotKey]bool)
			result[row.TeacherID] = cells
		}
		cells[SlotKey{Day: row.DayOfWeek, SlotID: row.TimeSlotID}] = true
	}
	return result, nil
}
