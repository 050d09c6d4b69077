package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-platform/campus-timetable/internal/dto"
	"github.com/edu-platform/campus-timetable/internal/solver"
	appErrors "github.com/edu-platform/campus-timetable/pkg/errors"
)

type fakeEngine struct {
	report  *dto.SolveReport
	phase   solver.Phase
	err     error
	gotReq  solver.Request
	invoked bool
}

func (f *fakeEngine) Solve(ctx context.Context, req solver.Request) (*dto.SolveReport, solver.Phase, error) {
	f.invoked = true
	f.gotReq = req
	return f.report, f.phase, f.err
}

type fakeMetrics struct {
	algorithm string
	outcome   string
	calls     int
}

func (f *fakeMetrics) ObserveTimetableSolve(algorithm, outcome string, duration time.Duration) {
	f.algorithm = algorithm
	f.outcome = outcome
	f.calls++
}

func validRequest() dto.SolveRequest {
	return dto.SolveRequest{
		CareerID:       "career-1",
		TermIndex:      3,
		Shift:          "morning",
		WeekdayMask:    []int{0, 1, 2, 3, 4},
		AcademicPeriod: "2026-1",
		SubmitterID:    "user-1",
	}
}

func TestTimetableServiceSolveSuccess(t *testing.T) {
	engine := &fakeEngine{
		report: &dto.SolveReport{Success: true, Algorithm: string(solver.AlgorithmPrimary)},
		phase:  solver.PhaseMaterialized,
	}
	metrics := &fakeMetrics{}
	svc := NewTimetableService(engine, nil, metrics, nil)

	report, err := svc.Solve(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, 1, metrics.calls)
	assert.Equal(t, "primary", metrics.algorithm)
	assert.Equal(t, "materialized", metrics.outcome)
}

func TestTimetableServiceRejectsInvalidRequest(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.SolveRequest)
	}{
		{"missing career", func(r *dto.SolveRequest) { r.CareerID = "" }},
		{"term out of range", func(r *dto.SolveRequest) { r.TermIndex = 13 }},
		{"bad shift", func(r *dto.SolveRequest) { r.Shift = "evening" }},
		{"empty weekday mask", func(r *dto.SolveRequest) { r.WeekdayMask = nil }},
		{"weekday out of range", func(r *dto.SolveRequest) { r.WeekdayMask = []int{6} }},
		{"period too long", func(r *dto.SolveRequest) { r.AcademicPeriod = "veinte-veintiseis-uno-extra" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{}
			svc := NewTimetableService(engine, nil, nil, nil)

			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Solve(context.Background(), req)
			require.Error(t, err)
			assert.False(t, engine.invoked, "engine must not run on invalid input")
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestTimetableServiceDeduplicatesWeekdayMask(t *testing.T) {
	engine := &fakeEngine{
		report: &dto.SolveReport{Success: true, Algorithm: string(solver.AlgorithmFallback)},
		phase:  solver.PhaseMaterialized,
	}
	svc := NewTimetableService(engine, nil, nil, nil)

	req := validRequest()
	req.WeekdayMask = []int{0, 1, 1, 2, 0}

	_, err := svc.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, engine.gotReq.Weekdays)
}

func TestTimetableServiceDefaultsGroupLabel(t *testing.T) {
	engine := &fakeEngine{
		report: &dto.SolveReport{Success: true, Algorithm: string(solver.AlgorithmFallback)},
		phase:  solver.PhaseMaterialized,
	}
	svc := NewTimetableService(engine, nil, nil, nil)

	req := validRequest()
	req.GroupLabel = ""
	_, err := svc.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultGroupLabel, engine.gotReq.GroupLabel)

	req.GroupLabel = "B"
	_, err = svc.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "B", engine.gotReq.GroupLabel)
}

func TestTimetableServiceSurfacesEngineError(t *testing.T) {
	engine := &fakeEngine{err: solver.ErrUnsatisfiable, phase: solver.PhaseFailed}
	metrics := &fakeMetrics{}
	svc := NewTimetableService(engine, nil, metrics, nil)

	_, err := svc.Solve(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, "UNSATISFIABLE", appErrors.FromError(err).Code)
	assert.Equal(t, "failed", metrics.outcome)
}
