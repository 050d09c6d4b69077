package solver

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/edu-platform/campus-timetable/internal/dto"
	"github.com/edu-platform/campus-timetable/internal/models"
	appErrors "github.com/edu-platform/campus-timetable/pkg/errors"
)

// assignmentWriter is the repository surface the Materializer writes
// through, scoped to a single transaction.
type assignmentWriter interface {
	DeactivatePeriodCareer(ctx context.Context, exec sqlx.ExtContext, academicPeriod, careerID string) error
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, assignments []models.Assignment) error
}

// Materializer is the transactional persistence component (spec.md §4.6),
// grounded on ScheduleGeneratorService.Save: single sqlx.Tx, deactivate then
// insert, rollback on any failure.
type Materializer struct {
	db          *sqlx.DB
	assignments assignmentWriter
}

// NewMaterializer wires the database handle and assignment repository.
func NewMaterializer(db *sqlx.DB, assignments assignmentWriter) *Materializer {
	return &Materializer{db: db, assignments: assignments}
}

// Materialize deactivates prior assignments for (academic-period, career) and
// inserts the new placement set within one serializable transaction,
// returning the SolveReport counts spec.md §4.6 defines. On any failure the
// transaction is rolled back and the error surfaced; no partial writes occur.
func (m *Materializer) Materialize(ctx context.Context, sc *SolveContext, placements []Placement, algorithm Algorithm) (*dto.SolveReport, error) {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, appErrors.Wrap(err, KindPersistence, ErrPersistence.Status, "begin materialize transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := m.assignments.DeactivatePeriodCareer(ctx, tx, sc.Request.AcademicPeriod, sc.Request.CareerID); err != nil {
		return nil, appErrors.Wrap(err, KindPersistence, ErrPersistence.Status, "deactivate prior assignments")
	}

	rows := make([]models.Assignment, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, models.Assignment{
			TeacherID:      p.InstructorID,
			CourseID:       p.CourseID,
			CareerID:       sc.Request.CareerID,
			TimeSlotID:     p.SlotID,
			DayOfWeek:      p.Day,
			AcademicPeriod: sc.Request.AcademicPeriod,
			GroupLabel:     sc.Request.GroupLabel,
			CreatedBy:      sc.Request.SubmitterID,
		})
	}

	if err := m.assignments.InsertBatch(ctx, tx, rows); err != nil {
		return nil, appErrors.Wrap(err, KindPersistence, ErrPersistence.Status, "insert assignments")
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, KindPersistence, ErrPersistence.Status, "commit materialize transaction")
	}
	committed = true

	return buildReport(sc, rows, algorithm), nil
}

func buildReport(sc *SolveContext, rows []models.Assignment, algorithm Algorithm) *dto.SolveReport {
	instructors := make(map[string]bool)
	courses := make(map[string]bool)
	detail := make([]dto.AssignmentDetail, 0, len(rows))
	for _, row := range rows {
		instructors[row.TeacherID] = true
		courses[row.CourseID] = true
		detail = append(detail, dto.AssignmentDetail{
			InstructorID: row.TeacherID,
			CourseID:     row.CourseID,
			TimeSlotID:   row.TimeSlotID,
			DayOfWeek:    row.DayOfWeek,
			GroupLabel:   row.GroupLabel,
		})
	}

	coverage := 0.0
	if total := len(sc.Courses); total > 0 {
		coverage = 100 * float64(len(courses)) / float64(total)
	}

	return &dto.SolveReport{
		Success:   true,
		Message:   "timetable materialized",
		Algorithm: string(algorithm),
		Counts: dto.SolveReportCounts{
			TotalAssignments:      len(rows),
			DistinctInstructors:   len(instructors),
			DistinctCourses:       len(courses),
			CourseCoveragePercent: coverage,
		},
		Detail: detail,
	}
}
