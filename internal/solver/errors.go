package solver

import appErrors "github.com/edu-platform/campus-timetable/pkg/errors"

// Error kinds from spec.md §7. engine-unavailable is recovered locally by
// the Engine and never surfaces past Solve.
const (
	KindInputEmpty        = "INPUT_EMPTY"
	KindEngineUnavailable = "ENGINE_UNAVAILABLE"
	KindInfeasible        = "INFEASIBLE"
	KindTimeout           = "TIMEOUT"
	KindUnsatisfiable     = "UNSATISFIABLE"
	KindPersistence       = "PERSISTENCE"
	KindCancelled         = "CANCELLED"
)

// ErrNoInstructors, ErrNoCourses and ErrNoSlots are the three input-empty
// failures the Input Loader can report (spec.md §4.1).
var (
	ErrNoInstructors = appErrors.New(KindInputEmpty, 422, "no active instructors for this career")
	ErrNoCourses     = appErrors.New(KindInputEmpty, 422, "no active courses for this career and term")
	ErrNoSlots       = appErrors.New(KindInputEmpty, 422, "no active time slots for this shift")

	ErrEngineUnavailable = appErrors.New(KindEngineUnavailable, 0, "primary CP-SAT engine unavailable")
	ErrInfeasible        = appErrors.New(KindInfeasible, 409, "primary solver found no feasible solution")
	ErrTimeout           = appErrors.New(KindTimeout, 409, "primary solver exceeded its wall-clock budget")
	ErrUnsatisfiable     = appErrors.New(KindUnsatisfiable, 409, "no assignment satisfies the required constraints")
	ErrPersistence       = appErrors.New(KindPersistence, 500, "failed to persist the solved timetable")
	ErrCancelled         = appErrors.New(KindCancelled, 499, "solve run cancelled")
)
