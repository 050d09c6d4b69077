package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// TimeSlotRepository reads the finite set of schedulable time slots.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs the repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// ListByShift returns active slots for the given shift, sorted by
// (shift, ordinal) as spec.md §4.1 requires. An empty shift returns all.
func (r *TimeSlotRepository) ListByShift(ctx context.Context, shift string) ([]models.TimeSlot, error) {
	query := `SELECT id, shift, ordinal, start_time, end_time, schedulable, active, created_at
FROM time_slots WHERE active = true AND schedulable = true`
	args := []interface{}{}
	if shift != "" && shift != "both" {
		query += " AND shift = $1"
		args = append(args, shift)
	}
	query += " ORDER BY shift ASC, ordinal ASC"

	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

// AvailabilityRepository reads per-instructor availability cells.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListForInstructors returns every stored availability cell for the given
// instructors. Cells absent from the result default to available=true,
// per spec.md §4.1 and §9 ("implicit default behavior").
func (r *AvailabilityRepository) ListForInstructors(ctx context.Context, teacherIDs []string) ([]models.AvailabilityCell, error) {
	if len(teacherIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, teacher_id, day_of_week, time_slot_id, available, updated_at
FROM availability_cells WHERE teacher_id IN (?)`, teacherIDs)
	if err != nil {
		return nil, fmt.Errorf("build availability query: %w", err)
	}
	query = r.db.Rebind(query)

	var cells []models.AvailabilityCell
	if err := r.db.SelectContext(ctx, &cells, query, args...); err != nil {
		return nil, fmt.Errorf("list availability cells: %w", err)
	}
	return cells, nil
}
