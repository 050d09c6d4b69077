package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// AssignmentRepository persists the solver's output: one row per
// (instructor, course, slot, weekday) quadruple in a solve run. Grounded on
// SemesterScheduleSlotRepository's batch-upsert/versioned pattern.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// DeactivatePeriodCareer logically deletes every active assignment for the
// given (academic_period, career) tuple, within the caller's transaction.
// This is the "invalidates all prior schedule rows" step of spec.md §4.6.
func (r *AssignmentRepository) DeactivatePeriodCareer(ctx context.Context, exec sqlx.ExtContext, academicPeriod, careerID string) error {
	const query = `UPDATE assignments SET active = false WHERE academic_period = $1 AND career_id = $2 AND active = true`
	if _, err := exec.ExecContext(ctx, query, academicPeriod, careerID); err != nil {
		return fmt.Errorf("deactivate prior assignments: %w", err)
	}
	return nil
}

// InsertBatch writes the new assignment rows within the caller's transaction.
func (r *AssignmentRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range assignments {
		if assignments[i].ID == "" {
			assignments[i].ID = uuid.NewString()
		}
		if assignments[i].CreatedAt.IsZero() {
			assignments[i].CreatedAt = now
		}
		assignments[i].Active = true
	}

	const query = `
INSERT INTO assignments (id, teacher_id, course_id, career_id, time_slot_id, day_of_week, academic_period, group_label, active, created_at, created_by)
VALUES (:id, :teacher_id, :course_id, :career_id, :time_slot_id, :day_of_week, :academic_period, :group_label, :active, :created_at, :created_by)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, assignments); err != nil {
		return fmt.Errorf("insert assignments: %w", err)
	}
	return nil
}

// ListBlackouts returns (day_of_week, time_slot_id) pairs already committed
// to OTHER careers, in the same academic period, for the given instructors —
// the Conflict Oracle's read path (spec.md §4.2).
func (r *AssignmentRepository) ListBlackouts(ctx context.Context, academicPeriod, excludeCareerID string, teacherIDs []string) ([]models.Assignment, error) {
	if len(teacherIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
SELECT id, teacher_id, course_id, career_id, time_slot_id, day_of_week, academic_period, group_label, active, created_at, created_by
FROM assignments
WHERE academic_period = ? AND career_id <> ? AND active = true AND teacher_id IN (?)`,
		academicPeriod, excludeCareerID, teacherIDs)
	if err != nil {
		return nil, fmt.Errorf("build blackout query: %w", err)
	}
	query = r.db.Rebind(query)

	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list blackout assignments: %w", err)
	}
	return assignments, nil
}

// ListByPeriodCareer returns the active assignments for a materialized run.
func (r *AssignmentRepository) ListByPeriodCareer(ctx context.Context, academicPeriod, careerID string) ([]models.Assignment, error) {
	const query = `
SELECT id, teacher_id, course_id, career_id, time_slot_id, day_of_week, academic_period, group_label, active, created_at, created_by
FROM assignments WHERE academic_period = $1 AND career_id = $2 AND active = true
ORDER BY day_of_week ASC, time_slot_id ASC`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, academicPeriod, careerID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}
