package solver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edu-platform/campus-timetable/internal/dto"
)

// inputLoader loads a Request into a SolveContext.
type inputLoader interface {
	Load(ctx context.Context, req Request) (*SolveContext, error)
}

// primarySolver is the CP-SAT stage.
type primarySolver interface {
	Solve(ctx context.Context, sc *SolveContext) ([]Placement, error)
}

// fallbackSolver is the deterministic greedy stage.
type fallbackSolver interface {
	Solve(sc *SolveContext) ([]Placement, error)
}

// resultMaterializer persists the chosen placement set.
type resultMaterializer interface {
	Materialize(ctx context.Context, sc *SolveContext, placements []Placement, algorithm Algorithm) (*dto.SolveReport, error)
}

// Engine is the orchestrator (spec.md §4.7): it drives a single solve run
// through created -> loaded -> modeled -> solved|fallback ->
// materialized|failed, forbidding the solved -> fallback transition.
// Grounded on ScheduleGeneratorService.Generate+Save, merged into the
// spec's one-shot solve operation.
type Engine struct {
	loader        inputLoader
	primary       primarySolver
	fallback      fallbackSolver
	materializer  resultMaterializer
	cpsatDisabled bool
	logger        *zap.Logger
}

// NewEngine wires every solver stage. cpsatDisabled forces the fallback
// path directly from loaded, modeling the "primary-engine absence" branch
// of the state machine.
func NewEngine(loader inputLoader, primary primarySolver, fallback fallbackSolver, materializer resultMaterializer, cpsatDisabled bool, logger *zap.Logger) *Engine {
	return &Engine{
		loader:        loader,
		primary:       primary,
		fallback:      fallback,
		materializer:  materializer,
		cpsatDisabled: cpsatDisabled,
		logger:        logger,
	}
}

// Solve runs one solve invocation to completion. The returned phase is
// always a terminal state: materialized or failed. On failure the report is
// still populated with success=false and the failure message, so in-process
// callers always receive the structured result.
func (e *Engine) Solve(ctx context.Context, req Request) (*dto.SolveReport, Phase, error) {
	log := e.logger
	if log == nil {
		log = zap.NewNop()
	}

	sc, err := e.loader.Load(ctx, req)
	if err != nil {
		log.Warn("solve run failed at load", zap.Error(err))
		return failureReport("", err), PhaseFailed, err
	}
	if ctx.Err() != nil {
		return failureReport("", ErrCancelled), PhaseFailed, ErrCancelled
	}

	var placements []Placement
	var algorithm Algorithm
	var phase Phase

	if req.PreferFallback || e.cpsatDisabled || e.primary == nil {
		placements, err = e.fallback.Solve(sc)
		if err != nil {
			log.Warn("fallback solver failed from loaded", zap.Error(err))
			return failureReport(AlgorithmFallback, err), PhaseFailed, err
		}
		algorithm = AlgorithmFallback
		phase = PhaseFallback
	} else {
		placements, err = e.primary.Solve(ctx, sc)
		if err != nil {
			log.Info("primary solver did not yield a solution, entering fallback", zap.Error(err))
			placements, err = e.fallback.Solve(sc)
			if err != nil {
				log.Warn("fallback solver failed after modeled", zap.Error(err))
				return failureReport(AlgorithmFallback, err), PhaseFailed, err
			}
			algorithm = AlgorithmFallback
			phase = PhaseFallback
		} else {
			algorithm = AlgorithmPrimary
			phase = PhaseSolved
		}
	}

	if ctx.Err() != nil {
		return failureReport(algorithm, ErrCancelled), PhaseFailed, ErrCancelled
	}

	report, err := e.materializer.Materialize(ctx, sc, placements, algorithm)
	if err != nil {
		log.Error("materialize failed", zap.String("phase", string(phase)), zap.Error(err))
		return failureReport(algorithm, err), PhaseFailed, fmt.Errorf("materialize: %w", err)
	}

	return report, PhaseMaterialized, nil
}

// failureReport builds the success=false result every failed run carries
// alongside its error.
func failureReport(algorithm Algorithm, err error) *dto.SolveReport {
	return &dto.SolveReport{
		Success:   false,
		Message:   err.Error(),
		Algorithm: string(algorithm),
	}
}
