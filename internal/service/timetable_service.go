package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edu-platform/campus-timetable/internal/dto"
	"github.com/edu-platform/campus-timetable/internal/solver"
	appErrors "github.com/edu-platform/campus-timetable/pkg/errors"
)

type timetableEngine interface {
	Solve(ctx context.Context, req solver.Request) (*dto.SolveReport, solver.Phase, error)
}

type timetableMetricsRecorder interface {
	ObserveTimetableSolve(algorithm, outcome string, duration time.Duration)
}

// TimetableService is the sole external entrypoint of the timetable core
// (spec.md §6): it validates a SolveRequest, normalizes it into a
// solver.Request, and drives the Engine to a terminal state.
type TimetableService struct {
	engine    timetableEngine
	validator *validator.Validate
	metrics   timetableMetricsRecorder
	logger    *zap.Logger
}

// NewTimetableService wires the orchestrator behind the solve() operation.
func NewTimetableService(engine timetableEngine, validate *validator.Validate, metrics timetableMetricsRecorder, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	return &TimetableService{engine: engine, validator: validate, metrics: metrics, logger: logger}
}

// Solve validates req and runs it through the solver Engine to completion.
func (s *TimetableService) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve request")
	}

	start := time.Now()
	report, phase, err := s.engine.Solve(ctx, toSolverRequest(req))
	duration := time.Since(start)

	if err != nil {
		s.recordMetric("none", "failed", duration)
		// report still carries the structured success=false result for
		// in-process callers; the HTTP layer responds from the typed error.
		return report, translateSolverError(err)
	}

	algorithm := report.Algorithm
	outcome := "materialized"
	if phase != solver.PhaseMaterialized {
		outcome = string(phase)
	}
	s.recordMetric(algorithm, outcome, duration)

	if s.logger != nil {
		s.logger.Info("timetable solve completed",
			zap.String("algorithm", algorithm),
			zap.String("phase", string(phase)),
			zap.Int("totalAssignments", report.Counts.TotalAssignments),
			zap.Duration("duration", duration),
		)
	}

	return report, nil
}

func (s *TimetableService) recordMetric(algorithm, outcome string, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveTimetableSolve(algorithm, outcome, duration)
}

func toSolverRequest(req dto.SolveRequest) solver.Request {
	weekdays := make([]int, 0, len(req.WeekdayMask))
	seen := make(map[int]bool, len(req.WeekdayMask))
	for _, d := range req.WeekdayMask {
		if !seen[d] {
			seen[d] = true
			weekdays = append(weekdays, d)
		}
	}
	groupLabel := req.GroupLabel
	if groupLabel == "" {
		groupLabel = dto.DefaultGroupLabel
	}
	return solver.Request{
		CareerID:            req.CareerID,
		TermIndex:           req.TermIndex,
		Shift:               req.Shift,
		Weekdays:            weekdays,
		AcademicPeriod:      req.AcademicPeriod,
		SubmitterID:         req.SubmitterID,
		SolverBudgetSeconds: req.SolverBudgetSeconds,
		PreferFallback:      req.PreferFallback,
		GroupLabel:          groupLabel,
	}
}

// translateSolverError passes typed solver errors straight through; they
// already carry the appErrors.Error taxonomy from spec.md §7.
func translateSolverError(err error) error {
	return appErrors.FromError(err)
}
