package solver

import (
	"sort"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// occupiedKey is one (instructor, weekday) bucket used to count placements
// already reserved for that instructor on that day.
type occupiedKey struct {
	instructorID string
	day          int
}

// GreedySolver is the deterministic Fallback Solver (spec.md §4.5), grounded
// on the teacher's schedulerState/teacherAvailability machinery generalized
// to the spec's disperse/cluster placement rules.
type GreedySolver struct{}

// NewGreedySolver constructs the stateless fallback.
func NewGreedySolver() *GreedySolver {
	return &GreedySolver{}
}

// Solve runs the greedy placement algorithm over sc, returning a full
// placement set or ErrUnsatisfiable if any course cannot be completed.
func (g *GreedySolver) Solve(sc *SolveContext) ([]Placement, error) {
	if sc == nil || len(sc.Instructors) == 0 {
		return nil, ErrNoInstructors
	}

	days := make([]int, len(sc.Request.Weekdays))
	copy(days, sc.Request.Weekdays)
	sort.Ints(days)

	slots := make([]models.TimeSlot, len(sc.Slots))
	copy(slots, sc.Slots)
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Shift != slots[j].Shift {
			return slots[i].Shift < slots[j].Shift
		}
		return slots[i].Ordinal < slots[j].Ordinal
	})

	// Order courses by (-weekly-hour-load, code) so the hardest courses are
	// placed first (spec.md §4.5 step 1).
	courses := make([]Course, len(sc.Courses))
	copy(courses, sc.Courses)
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].WeeklyHours != courses[j].WeeklyHours {
			return courses[i].WeeklyHours > courses[j].WeeklyHours
		}
		if courses[i].Code != courses[j].Code {
			return courses[i].Code < courses[j].Code
		}
		return courses[i].ID < courses[j].ID
	})

	load := make(map[string]int, len(sc.Instructors))
	capOf := make(map[string]int, len(sc.Instructors))
	for _, inst := range sc.Instructors {
		capOf[inst.ID] = inst.Cap()
	}

	// The two mutable indices: cell -> courseID, and (instructor, day) ->
	// set of held slotIDs.
	assignedBySlot := make(map[SlotKey]string)
	assignedByInstructor := make(map[occupiedKey]map[string]bool)

	reserve := func(instructorID, courseID string, day int, slotID string) {
		assignedBySlot[SlotKey{Day: day, SlotID: slotID}] = courseID
		key := occupiedKey{instructorID: instructorID, day: day}
		held, ok := assignedByInstructor[key]
		if !ok {
			held = make(map[string]bool)
			assignedByInstructor[key] = held
		}
		held[slotID] = true
		load[instructorID]++
	}

	var placements []Placement

	for _, course := range courses {
		candidates := eligibleInstructors(sc, course, capOf, load)
		if len(candidates) == 0 {
			return nil, ErrUnsatisfiable
		}

		rule := Distribute(course.WeeklyHours)
		placed := false
		for _, instructorID := range candidates {
			attempt := placeCourse(sc, course, instructorID, rule, days, slots, assignedBySlot, assignedByInstructor)
			if attempt == nil {
				continue
			}
			for _, p := range attempt {
				reserve(instructorID, course.ID, p.Day, p.SlotID)
			}
			placements = append(placements, attempt...)
			placed = true
			break
		}
		if !placed {
			return nil, ErrUnsatisfiable
		}
	}

	return placements, nil
}

// eligibleInstructors returns career members with remaining capacity,
// ordered by (current load ascending, stable id) per spec.md §4.5 step 2.
func eligibleInstructors(sc *SolveContext, course Course, capOf, load map[string]int) []string {
	members := sc.CareerMembers[course.ID]
	var ids []string
	for _, inst := range sc.Instructors {
		if members != nil && !members[inst.ID] {
			continue
		}
		if load[inst.ID]+course.WeeklyHours > capOf[inst.ID] {
			continue
		}
		ids = append(ids, inst.ID)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if load[ids[i]] != load[ids[j]] {
			return load[ids[i]] < load[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// placeCourse attempts to complete course.WeeklyHours placements for
// instructorID under rule, using disperse for h<=5 and cluster for h>5
// (spec.md §4.5 steps 4-5). Returns nil if the instructor cannot complete it.
func placeCourse(sc *SolveContext, course Course, instructorID string, rule DistributionRule, days []int, slots []models.TimeSlot, assignedBySlot map[SlotKey]string, assignedByInstructor map[occupiedKey]map[string]bool) []Placement {
	canUse := func(day int, slotID string) bool {
		if assignedBySlot[SlotKey{Day: day, SlotID: slotID}] != "" {
			return false
		}
		if held := assignedByInstructor[occupiedKey{instructorID: instructorID, day: day}]; held[slotID] {
			return false
		}
		cells := sc.Availability[instructorID]
		if cells != nil {
			if available, tracked := cells[SlotKey{Day: day, SlotID: slotID}]; tracked && !available {
				return false
			}
		}
		if blackouts := sc.Blackouts[instructorID]; blackouts != nil && blackouts[SlotKey{Day: day, SlotID: slotID}] {
			return false
		}
		return true
	}

	remaining := course.WeeklyHours
	if remaining <= 0 {
		return nil
	}

	var placements []Placement
	perDay := make(map[int]int)

	if course.WeeklyHours <= 5 {
		perDayCap := rule.MaxPerDay
		for pass := 0; pass < 2 && remaining > 0; pass++ {
			for _, day := range days {
				if remaining == 0 {
					break
				}
				if perDay[day] >= perDayCap {
					continue
				}
				for _, slot := range slots {
					if canUse(day, slot.ID) {
						placements = append(placements, Placement{InstructorID: instructorID, CourseID: course.ID, SlotID: slot.ID, Day: day})
						assignedBySlot[SlotKey{Day: day, SlotID: slot.ID}] = course.ID
						perDay[day]++
						remaining--
						break
					}
				}
			}
		}
	} else {
		targetDays := rule.MinDistinctDays
		if targetDays > len(days) {
			targetDays = len(days)
		}
		base := course.WeeklyHours / targetDays
		extra := course.WeeklyHours % targetDays
		for di := 0; di < targetDays && remaining > 0; di++ {
			day := days[di]
			quota := base
			if di < extra {
				quota++
			}
			if quota > rule.MaxPerDay {
				quota = rule.MaxPerDay
			}
			placedToday := 0
			for _, slot := range slots {
				if placedToday >= quota || remaining == 0 {
					break
				}
				if canUse(day, slot.ID) {
					placements = append(placements, Placement{InstructorID: instructorID, CourseID: course.ID, SlotID: slot.ID, Day: day})
					assignedBySlot[SlotKey{Day: day, SlotID: slot.ID}] = course.ID
					placedToday++
					remaining--
				}
			}
		}
	}

	if remaining > 0 {
		// undo the tentative slot claims; this instructor cannot complete it
		for _, p := range placements {
			delete(assignedBySlot, SlotKey{Day: p.Day, SlotID: p.SlotID})
		}
		return nil
	}
	return placements
}
