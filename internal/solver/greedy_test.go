package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-platform/campus-timetable/internal/models"
)

func fullAvailability(instructorIDs []string, days []int, slots []models.TimeSlot) map[string]map[SlotKey]bool {
	avail := make(map[string]map[SlotKey]bool, len(instructorIDs))
	for _, id := range instructorIDs {
		cells := make(map[SlotKey]bool)
		for _, d := range days {
			for _, s := range slots {
				cells[SlotKey{Day: d, SlotID: s.ID}] = true
			}
		}
		avail[id] = cells
	}
	return avail
}

func fiveSlots() []models.TimeSlot {
	slots := make([]models.TimeSlot, 5)
	for i := range slots {
		slots[i] = models.TimeSlot{ID: "slot-" + string(rune('A'+i)), Shift: models.ShiftMorning, Ordinal: i + 1}
	}
	return slots
}

func careerMembers(courseIDs []string, instructorIDs []string) map[string]map[string]bool {
	members := make(map[string]map[string]bool, len(courseIDs))
	for _, c := range courseIDs {
		set := make(map[string]bool, len(instructorIDs))
		for _, i := range instructorIDs {
			set[i] = true
		}
		members[c] = set
	}
	return members
}

// S1: trivial feasible — 1 instructor, 1 course of 3 hours, 5 slots x 5 days.
func TestGreedySolveTrivialFeasible(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{{ID: "i1", Class: models.EmploymentFullTime}}
	courses := []Course{{ID: "c1", CareerID: "career-a", WeeklyHours: 3}}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  fullAvailability([]string{"i1"}, days, slots),
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers([]string{"c1"}, []string{"i1"}),
	}

	placements, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	assert.Len(t, placements, 3)

	distinctDays := map[int]bool{}
	for _, p := range placements {
		distinctDays[p.Day] = true
	}
	assert.Equal(t, 3, len(distinctDays), "expected dispersion across 3 distinct weekdays")
}

// S2: five-hour rule — exactly one assignment per weekday.
func TestGreedySolveFiveHourRule(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{{ID: "i1", Class: models.EmploymentFullTime}}
	courses := []Course{{ID: "c1", CareerID: "career-a", WeeklyHours: 5}}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  fullAvailability([]string{"i1"}, days, slots),
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers([]string{"c1"}, []string{"i1"}),
	}

	placements, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	require.Len(t, placements, 5)

	perDay := map[int]int{}
	for _, p := range placements {
		perDay[p.Day]++
	}
	for _, day := range days {
		assert.Equal(t, 1, perDay[day], "day %d should have exactly one hour", day)
	}
}

// S3: long course cluster — 7 hours, >= 3 distinct days, <= 3 hours/day, total 7.
func TestGreedySolveLongCourseCluster(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{{ID: "i1", Class: models.EmploymentFullTime}}
	courses := []Course{{ID: "c1", CareerID: "career-a", WeeklyHours: 7}}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  fullAvailability([]string{"i1"}, days, slots),
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers([]string{"c1"}, []string{"i1"}),
	}

	placements, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	require.Len(t, placements, 7)

	perDay := map[int]int{}
	for _, p := range placements {
		perDay[p.Day]++
	}
	assert.GreaterOrEqual(t, len(perDay), 3)
	for day, count := range perDay {
		assert.LessOrEqual(t, count, 3, "day %d exceeds per-day cap", day)
	}
}

// S4: availability mask — instructor A unavailable Monday, instructor B unavailable Friday.
func TestGreedySolveAvailabilityMask(t *testing.T) {
	days := []int{0, 1, 2, 3, 4} // Mon=0 .. Fri=4
	slots := fiveSlots()
	instructors := []Instructor{
		{ID: "a", Class: models.EmploymentFullTime},
		{ID: "b", Class: models.EmploymentFullTime},
	}
	courses := []Course{
		{ID: "c1", CareerID: "career-a", WeeklyHours: 2},
		{ID: "c2", CareerID: "career-a", WeeklyHours: 2},
	}

	availability := fullAvailability([]string{"a", "b"}, days, slots)
	for _, slot := range slots {
		availability["a"][SlotKey{Day: 0, SlotID: slot.ID}] = false
		availability["b"][SlotKey{Day: 4, SlotID: slot.ID}] = false
	}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  availability,
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers([]string{"c1", "c2"}, []string{"a", "b"}),
	}

	placements, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	for _, p := range placements {
		if p.InstructorID == "a" {
			assert.NotEqual(t, 0, p.Day, "instructor a must not be placed on Monday")
		}
		if p.InstructorID == "b" {
			assert.NotEqual(t, 4, p.Day, "instructor b must not be placed on Friday")
		}
	}
}

// S5: infeasible — 1 instructor capped at 20, courses totaling 25 hours.
func TestGreedySolveInfeasibleOverCapacity(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{{ID: "i1", Class: models.EmploymentAdjunct}} // cap 20
	courses := []Course{
		{ID: "c1", CareerID: "career-a", WeeklyHours: 13},
		{ID: "c2", CareerID: "career-a", WeeklyHours: 12},
	}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  fullAvailability([]string{"i1"}, days, slots),
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers([]string{"c1", "c2"}, []string{"i1"}),
	}

	_, err := NewGreedySolver().Solve(sc)
	assert.ErrorIs(t, err, ErrUnsatisfiable)
}

// Rerunning the greedy over an unchanged context must yield the identical
// placement set: the ordering of courses, instructors, days and slots is
// fully deterministic.
func TestGreedySolveDeterministicRerun(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{
		{ID: "i1", Class: models.EmploymentFullTime},
		{ID: "i2", Class: models.EmploymentAdjunct},
	}
	courses := []Course{
		{ID: "c1", Code: "MAT101", CareerID: "career-a", WeeklyHours: 4},
		{ID: "c2", Code: "FIS102", CareerID: "career-a", WeeklyHours: 4},
		{ID: "c3", Code: "QUI103", CareerID: "career-a", WeeklyHours: 6},
	}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  fullAvailability([]string{"i1", "i2"}, days, slots),
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers([]string{"c1", "c2", "c3"}, []string{"i1", "i2"}),
	}

	first, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	second, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// All hard invariants at once over a multi-instructor, multi-course run:
// hour exactness, slot and instructor non-collision, per-day ceilings and
// workload caps.
func TestGreedySolveHonoursAllInvariants(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{
		{ID: "i1", Class: models.EmploymentFullTime},
		{ID: "i2", Class: models.EmploymentFullTime},
		{ID: "i3", Class: models.EmploymentAdjunct},
	}
	courses := []Course{
		{ID: "c1", Code: "MAT201", CareerID: "career-a", WeeklyHours: 7},
		{ID: "c2", Code: "FIS202", CareerID: "career-a", WeeklyHours: 5},
		{ID: "c3", Code: "QUI203", CareerID: "career-a", WeeklyHours: 4},
		{ID: "c4", Code: "BIO204", CareerID: "career-a", WeeklyHours: 2},
	}
	courseIDs := []string{"c1", "c2", "c3", "c4"}
	instructorIDs := []string{"i1", "i2", "i3"}

	sc := &SolveContext{
		Request:       Request{CareerID: "career-a", Weekdays: days},
		Instructors:   instructors,
		Courses:       courses,
		Slots:         slots,
		Availability:  fullAvailability(instructorIDs, days, slots),
		Blackouts:     map[string]map[SlotKey]bool{},
		CareerMembers: careerMembers(courseIDs, instructorIDs),
	}

	placements, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)

	hoursByCourse := map[string]int{}
	perCell := map[SlotKey]int{}
	perInstructorCell := map[string]map[SlotKey]int{}
	loadByInstructor := map[string]int{}
	perCourseDay := map[string]map[int]int{}
	for _, p := range placements {
		hoursByCourse[p.CourseID]++
		cell := SlotKey{Day: p.Day, SlotID: p.SlotID}
		perCell[cell]++
		if perInstructorCell[p.InstructorID] == nil {
			perInstructorCell[p.InstructorID] = map[SlotKey]int{}
		}
		perInstructorCell[p.InstructorID][cell]++
		loadByInstructor[p.InstructorID]++
		if perCourseDay[p.CourseID] == nil {
			perCourseDay[p.CourseID] = map[int]int{}
		}
		perCourseDay[p.CourseID][p.Day]++
	}

	for _, c := range courses {
		assert.Equal(t, c.WeeklyHours, hoursByCourse[c.ID], "course %s hour exactness", c.ID)
		rule := Distribute(c.WeeklyHours)
		assert.GreaterOrEqual(t, len(perCourseDay[c.ID]), rule.MinDistinctDays, "course %s distinct days", c.ID)
		for day, count := range perCourseDay[c.ID] {
			assert.LessOrEqual(t, count, rule.MaxPerDay, "course %s day %d ceiling", c.ID, day)
		}
	}
	for cell, count := range perCell {
		assert.LessOrEqual(t, count, 1, "slot collision at %v", cell)
	}
	for id, cells := range perInstructorCell {
		for cell, count := range cells {
			assert.LessOrEqual(t, count, 1, "instructor %s collision at %v", id, cell)
		}
	}
	for _, inst := range instructors {
		assert.LessOrEqual(t, loadByInstructor[inst.ID], inst.Cap(), "instructor %s workload cap", inst.ID)
	}
}

// S6: cross-career blackout — instructor X already committed at (Mon, slot1).
func TestGreedySolveCrossCareerBlackout(t *testing.T) {
	days := []int{0, 1, 2, 3, 4}
	slots := fiveSlots()
	instructors := []Instructor{{ID: "x", Class: models.EmploymentFullTime}}
	courses := []Course{{ID: "c1", CareerID: "career-a", WeeklyHours: 1}}

	sc := &SolveContext{
		Request:      Request{CareerID: "career-a", Weekdays: days},
		Instructors:  instructors,
		Courses:      courses,
		Slots:        slots,
		Availability: fullAvailability([]string{"x"}, days, slots),
		Blackouts: map[string]map[SlotKey]bool{
			"x": {SlotKey{Day: 0, SlotID: slots[0].ID}: true},
		},
		CareerMembers: careerMembers([]string{"c1"}, []string{"x"}),
	}

	placements, err := NewGreedySolver().Solve(sc)
	require.NoError(t, err)
	for _, p := range placements {
		assert.False(t, p.Day == 0 && p.SlotID == slots[0].ID, "must not place in blacked-out cell")
	}
}
