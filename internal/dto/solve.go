package dto

// DefaultGroupLabel is used when a SolveRequest omits groupLabel.
const DefaultGroupLabel = "A"

// SolveRequest is the sole external entrypoint of the timetable core
// (spec.md §6): solve(SolveRequest) -> SolveReport. An omitted GroupLabel
// defaults to DefaultGroupLabel before the request reaches the solver.
type SolveRequest struct {
	CareerID            string `json:"careerId" validate:"required"`
	TermIndex           int    `json:"termIndex" validate:"required,min=1,max=12"`
	Shift               string `json:"shift" validate:"required,oneof=morning afternoon both"`
	WeekdayMask         []int  `json:"weekdayMask" validate:"required,min=1,dive,min=0,max=5"`
	AcademicPeriod      string `json:"academicPeriod" validate:"required,max=20"`
	SubmitterID         string `json:"submitterId" validate:"required"`
	SolverBudgetSeconds int    `json:"solverBudgetSeconds,omitempty"`
	PreferFallback      bool   `json:"preferFallback,omitempty"`
	GroupLabel          string `json:"groupLabel,omitempty"`
}

// SolveReportCounts summarises the materialized (or attempted) run.
type SolveReportCounts struct {
	TotalAssignments      int     `json:"totalAssignments"`
	DistinctInstructors   int     `json:"distinctInstructors"`
	DistinctCourses       int     `json:"distinctCourses"`
	CourseCoveragePercent float64 `json:"courseCoveragePercent"`
}

// AssignmentDetail is one row of the optional detail list in SolveReport.
type AssignmentDetail struct {
	InstructorID string `json:"instructorId"`
	CourseID     string `json:"courseId"`
	TimeSlotID   string `json:"timeSlotId"`
	DayOfWeek    int    `json:"dayOfWeek"`
	GroupLabel   string `json:"groupLabel"`
}

// SolveReport is the result of a solve() invocation (spec.md §6).
type SolveReport struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Algorithm string             `json:"algorithm"`
	Counts    SolveReportCounts  `json:"counts"`
	Detail    []AssignmentDetail `json:"detail,omitempty"`
}
