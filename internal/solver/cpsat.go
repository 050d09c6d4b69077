package solver

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// varKey identifies one decision variable x[i,c,s,d].
type varKey struct {
	instructor int
	course     int
	slot       int
	day        int
}

// CPSATSolver is the Primary Solver (spec.md §4.4), grounded on
// other_examples/2a0ff009_google-or-tools__ortools-sat-samples-nurses_sat.go.go:
// one BoolVar per pruned (instructor, course, slot, weekday) quadruple, nine
// hard constraints, and a linear max-minus-min surrogate objective in place
// of the true quadratic workload variance.
type CPSATSolver struct {
	WallClockBudget time.Duration
	MaxWorkers      int
}

// NewCPSATSolver applies the spec.md §4.4 defaults (300s, 8 workers) when
// the caller leaves them unset.
func NewCPSATSolver(budget time.Duration, maxWorkers int) *CPSATSolver {
	if budget <= 0 {
		budget = 300 * time.Second
	}
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &CPSATSolver{WallClockBudget: budget, MaxWorkers: maxWorkers}
}

// Solve builds and solves the CP model for ctx, returning the chosen
// placements on OPTIMAL or FEASIBLE. Any other status is reported as a
// solver error so the Engine can fall back to the greedy solver.
func (c *CPSATSolver) Solve(parent context.Context, sc *SolveContext) ([]Placement, error) {
	if sc == nil || len(sc.Instructors) == 0 || len(sc.Courses) == 0 || len(sc.Slots) == 0 {
		return nil, ErrUnsatisfiable
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	budget := c.WallClockBudget
	if sc.Request.SolverBudgetSeconds > 0 {
		budget = time.Duration(sc.Request.SolverBudgetSeconds) * time.Second
	}

	instructors := sortedInstructorIDs(sc.Instructors)
	courses := sortedCourseIDs(sc.Courses)
	days := make([]int, len(sc.Request.Weekdays))
	copy(days, sc.Request.Weekdays)
	sort.Ints(days)
	slotIDs := make([]string, 0, len(sc.Slots))
	for _, s := range sc.Slots {
		slotIDs = append(slotIDs, s.ID)
	}

	courseByID := make(map[string]Course, len(sc.Courses))
	for _, course := range sc.Courses {
		courseByID[course.ID] = course
	}
	instructorByID := make(map[string]Instructor, len(sc.Instructors))
	for _, inst := range sc.Instructors {
		instructorByID[inst.ID] = inst
	}

	model := cpmodel.NewCpModelBuilder()
	vars := make(map[varKey]cpmodel.BoolVar)

	isEligible := func(courseID, instructorID string) bool {
		members := sc.CareerMembers[courseID]
		return members != nil && members[instructorID]
	}
	isAvailable := func(instructorID string, day int, slotID string) bool {
		cells := sc.Availability[instructorID]
		if cells == nil {
			return true
		}
		available, tracked := cells[SlotKey{Day: day, SlotID: slotID}]
		return !tracked || available
	}
	isBlackout := func(instructorID string, day int, slotID string) bool {
		cells := sc.Blackouts[instructorID]
		return cells != nil && cells[SlotKey{Day: day, SlotID: slotID}]
	}

	for ii, instructorID := range instructors {
		for ci, courseID := range courses {
			if !isEligible(courseID, instructorID) {
				continue
			}
			for si, slotID := range slotIDs {
				for _, day := range days {
					if !isAvailable(instructorID, day, slotID) || isBlackout(instructorID, day, slotID) {
						continue
					}
					key := varKey{instructor: ii, course: ci, slot: si, day: day}
					vars[key] = model.NewBoolVar().WithName(fmt.Sprintf("x_i%d_c%d_s%d_d%d", ii, ci, si, day))
				}
			}
		}
	}

	// 1. Course-hour exactness: sum over (i,s,d) equals h(c).
	for ci, courseID := range courses {
		hours := courseByID[courseID].WeeklyHours
		expr := cpmodel.NewLinearExpr()
		for ii := range instructors {
			for si := range slotIDs {
				for _, day := range days {
					if v, ok := vars[varKey{instructor: ii, course: ci, slot: si, day: day}]; ok {
						expr.Add(v)
					}
				}
			}
		}
		model.AddEquality(expr, cpmodel.NewConstant(int64(hours)))
	}

	// 2. Instructor-slot exclusivity: at most one course per (i,s,d).
	for ii := range instructors {
		for si := range slotIDs {
			for _, day := range days {
				var bucket []cpmodel.BoolVar
				for ci := range courses {
					if v, ok := vars[varKey{instructor: ii, course: ci, slot: si, day: day}]; ok {
						bucket = append(bucket, v)
					}
				}
				if len(bucket) > 1 {
					model.AddAtMostOne(bucket...)
				}
			}
		}
	}

	// 3. Slot exclusivity: at most one (instructor, course) per (s,d).
	for si := range slotIDs {
		for _, day := range days {
			var bucket []cpmodel.BoolVar
			for ii := range instructors {
				for ci := range courses {
					if v, ok := vars[varKey{instructor: ii, course: ci, slot: si, day: day}]; ok {
						bucket = append(bucket, v)
					}
				}
			}
			if len(bucket) > 1 {
				model.AddAtMostOne(bucket...)
			}
		}
	}
	// Constraint 4 (availability) and 9 (blackout) are already enforced by
	// construction: no variable exists for an unavailable or blacked-out cell.

	// 5. Instructor workload cap.
	loadExprs := make([]cpmodel.LinearExpr, len(instructors))
	for ii, instructorID := range instructors {
		expr := cpmodel.NewLinearExpr()
		for ci := range courses {
			for si := range slotIDs {
				for _, day := range days {
					if v, ok := vars[varKey{instructor: ii, course: ci, slot: si, day: day}]; ok {
						expr.Add(v)
					}
				}
			}
		}
		loadExprs[ii] = expr
		cap := instructorByID[instructorID].Cap()
		model.AddLessOrEqual(expr, cpmodel.NewConstant(int64(cap)))
	}

	// 6, 7, 8: per-day course ceilings and spread rules.
	for ci, courseID := range courses {
		rule := Distribute(courseByID[courseID].WeeklyHours)
		dayLoadExprs := make(map[int]cpmodel.LinearExpr, len(days))
		for _, day := range days {
			expr := cpmodel.NewLinearExpr()
			for ii := range instructors {
				for si := range slotIDs {
					if v, ok := vars[varKey{instructor: ii, course: ci, slot: si, day: day}]; ok {
						expr.Add(v)
					}
				}
			}
			dayLoadExprs[day] = expr
			if rule.MaxPerDay > 0 {
				model.AddLessOrEqual(expr, cpmodel.NewConstant(int64(rule.MaxPerDay)))
			}
		}

		hours := courseByID[courseID].WeeklyHours
		if hours > 5 {
			spreadTotal := cpmodel.NewLinearExpr()
			for _, day := range days {
				indicator := model.NewBoolVar().WithName(fmt.Sprintf("y_c%d_d%d", ci, day))
				dayExpr := dayLoadExprs[day]
				model.AddLessOrEqual(indicator, dayExpr)
				model.AddLessOrEqual(dayExpr, scaleExpr(indicator, 3))
				spreadTotal.Add(indicator)
			}
			model.AddLessOrEqual(cpmodel.NewConstant(int64(rule.MinDistinctDays)), spreadTotal)
		}
	}

	// Objective: minimize max-load minus min-load (linear surrogate for the
	// quadratic variance spec.md §4.4 allows when unsupported by the engine).
	if len(loadExprs) > 0 {
		maxLoad := model.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(maxInstructorCap(sc.Instructors))))
		minLoad := model.NewIntVarFromDomain(cpmodel.NewDomain(0, int64(maxInstructorCap(sc.Instructors))))
		for _, expr := range loadExprs {
			model.AddLessOrEqual(expr, maxLoad)
			model.AddLessOrEqual(minLoad, expr)
		}
		spread := cpmodel.NewLinearExpr()
		spread.Add(maxLoad)
		spread.AddTerm(minLoad, -1)
		model.Minimize(spread)
	}

	m, err := model.Model()
	if err != nil {
		return nil, fmt.Errorf("instantiate cp model: %w", err)
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(budget.Seconds()),
		NumWorkers:       proto.Int32(int32(c.MaxWorkers)),
	}

	response, err := cpmodel.SolveCpModelWithParameters(m, params)
	if err != nil {
		log.Warningf("cp-sat solve failed: %v", err)
		return nil, ErrEngineUnavailable
	}

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		// fall through to extraction
	case cmpb.CpSolverStatus_INFEASIBLE:
		return nil, ErrInfeasible
	default:
		return nil, ErrTimeout
	}

	var placements []Placement
	for key, v := range vars {
		if cpmodel.SolutionBooleanValue(response, v) {
			placements = append(placements, Placement{
				InstructorID: instructors[key.instructor],
				CourseID:     courses[key.course],
				SlotID:       slotIDs[key.slot],
				Day:          key.day,
			})
		}
	}
	return placements, nil
}

func sortedInstructorIDs(instructors []Instructor) []string {
	ids := make([]string, len(instructors))
	for i, inst := range instructors {
		ids[i] = inst.ID
	}
	sort.Strings(ids)
	return ids
}

func sortedCourseIDs(courses []Course) []string {
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	sort.Strings(ids)
	return ids
}

func maxInstructorCap(instructors []Instructor) int {
	max := 0
	for _, inst := range instructors {
		if cap := inst.Cap(); cap > max {
			max = cap
		}
	}
	return max
}

// scaleExpr builds a linear expression equal to factor*v, used for the long
// course spread constraint y[c,d] <= load <= 3*y[c,d].
func scaleExpr(v cpmodel.BoolVar, factor int64) cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	expr.AddTerm(v, factor)
	return expr
}
